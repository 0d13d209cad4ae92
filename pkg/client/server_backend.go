package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"keystone-server/shared/models"
)

// Compile-time check to ensure ServerBackend implements Backend
var _ Backend = (*ServerBackend)(nil)

// ServerBackend maps every logical path 1:1 onto a live HTTP API.
type ServerBackend struct {
	baseURL    string
	httpClient *http.Client
}

// NewServerBackend creates a backend against the API at baseURL (e.g.
// "http://localhost:8080"). httpClient may be nil; a client with a
// 15 second timeout is used then.
func NewServerBackend(baseURL string, httpClient *http.Client) *ServerBackend {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &ServerBackend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (b *ServerBackend) Get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	return b.do(req)
}

func (b *ServerBackend) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode body for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return b.do(req)
}

func (b *ServerBackend) do(req *http.Request) ([]byte, error) {
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", req.URL.Path, err)
	}

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return data, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", req.URL.Path, models.ErrNotFound)
	default:
		return nil, fmt.Errorf("%s: %d: %s", req.URL.Path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
}
