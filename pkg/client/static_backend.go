package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"keystone-server/shared/constants"
	"keystone-server/shared/models"
)

// Compile-time check to ensure StaticBackend implements Backend
var _ Backend = (*StaticBackend)(nil)

var progressPathRe = regexp.MustCompile(`^/api/users/([^/]+)/progress$`)

// StaticBackend serves a deployment with no live API. GET paths are
// rewritten to pre-exported JSON files under the base URL; mutations
// never leave the machine and are replayed against a LocalStore overlay
// using the same accumulation rule the server applies.
type StaticBackend struct {
	baseURL    string
	httpClient *http.Client
	store      LocalStore
	demoUserID string
	logger     *zap.Logger

	mu     sync.Mutex
	deltas map[string]models.ConsequenceModifiers // choiceId -> deltas, lazily built from the export
}

// NewStaticBackend creates a backend over the exported JSON tree rooted
// at baseURL, persisting reader state in store. httpClient may be nil.
func NewStaticBackend(baseURL string, store LocalStore, httpClient *http.Client, logger *zap.Logger) *StaticBackend {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &StaticBackend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		store:      store,
		demoUserID: constants.DefaultDemoUserID,
		logger:     logger.Named("StaticBackend"),
	}
}

// Get fetches the exported snapshot for the path. Progress reads are the
// one special case: the snapshot is only a baseline, merged field by
// field with the locally persisted overlay (overlay wins, baseline next,
// zero default last).
func (b *StaticBackend) Get(ctx context.Context, path string) ([]byte, error) {
	if m := progressPathRe.FindStringSubmatch(path); m != nil {
		return b.mergedProgress(ctx, m[1])
	}
	return b.fetch(ctx, path)
}

// Post intercepts mutations. Choice submissions mutate the local
// overlay and synthesize the server's 201 payload; every other mutation
// is acknowledged with an empty success and no state change.
func (b *StaticBackend) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	if path == constants.APIBasePath+"/choices" {
		return b.submitChoiceLocally(ctx, body)
	}
	b.logger.Debug("Static mode swallowed mutation", zap.String("path", path))
	return nil, nil
}

// fetch resolves the logical path to its exported file: same relative
// path with a .json suffix, plus a cache-busting query parameter so a
// CDN or browser cache never serves a stale snapshot.
func (b *StaticBackend) fetch(ctx context.Context, path string) ([]byte, error) {
	url := b.baseURL + path + ".json?v=" + strconv.FormatInt(time.Now().UnixNano(), 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return data, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", path, models.ErrNotFound)
	default:
		return nil, fmt.Errorf("%s: %d: %s", path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
}

// progressOverlay mirrors the numeric fields of UserProgress with
// pointer fields, so "field present in the overlay" is distinguishable
// from "field is zero". The merge is last-write-wins per field, not per
// record; there is no versioning or conflict detection.
type progressOverlay struct {
	CurrentChapter  *int `json:"currentChapter,omitempty"`
	TotalChoices    *int `json:"totalChoices,omitempty"`
	TrustNetwork    *int `json:"trustNetwork,omitempty"`
	CouncilStanding *int `json:"councilStanding,omitempty"`
	CrewLoyalty     *int `json:"crewLoyalty,omitempty"`
}

func overlayKey(userID string) string {
	return constants.ProgressStoreKeyPrefix + userID
}

func (b *StaticBackend) readOverlay(userID string) (progressOverlay, error) {
	var overlay progressOverlay
	raw, ok, err := b.store.Get(overlayKey(userID))
	if err != nil {
		return overlay, err
	}
	if !ok {
		return overlay, nil
	}
	if err := json.Unmarshal(raw, &overlay); err != nil {
		return progressOverlay{}, fmt.Errorf("corrupt local progress for %s: %w", userID, err)
	}
	return overlay, nil
}

// mergedProgress builds the progress record the live server would have
// returned: exported baseline first, overlay fields on top. A missing or
// unreadable baseline degrades to zeros rather than failing the read.
func (b *StaticBackend) mergedProgress(ctx context.Context, userID string) ([]byte, error) {
	progress := models.UserProgress{UserID: userID}

	if baseline, err := b.fetch(ctx, fmt.Sprintf("%s/users/%s/progress", constants.APIBasePath, userID)); err == nil {
		if err := json.Unmarshal(baseline, &progress); err != nil {
			b.logger.Warn("Ignoring unreadable progress baseline", zap.String("userId", userID), zap.Error(err))
			progress = models.UserProgress{UserID: userID}
		}
	} else {
		b.logger.Debug("No progress baseline, using zeros", zap.String("userId", userID), zap.Error(err))
	}

	overlay, err := b.readOverlay(userID)
	if err != nil {
		return nil, err
	}
	applyOverlay(&progress, overlay)

	if progress.CurrentChapter == 0 {
		progress.CurrentChapter = 3
	}
	if progress.CompletedStories == nil {
		progress.CompletedStories = []string{}
	}

	return json.Marshal(&progress)
}

func applyOverlay(progress *models.UserProgress, overlay progressOverlay) {
	if overlay.CurrentChapter != nil {
		progress.CurrentChapter = *overlay.CurrentChapter
	}
	if overlay.TotalChoices != nil {
		progress.TotalChoices = *overlay.TotalChoices
	}
	if overlay.TrustNetwork != nil {
		progress.TrustNetwork = *overlay.TrustNetwork
	}
	if overlay.CouncilStanding != nil {
		progress.CouncilStanding = *overlay.CouncilStanding
	}
	if overlay.CrewLoyalty != nil {
		progress.CrewLoyalty = *overlay.CrewLoyalty
	}
}

// submitChoiceLocally replays the server's choice submission against the
// overlay: look the choice's deltas up, apply the shared accumulation
// rule to the overlay snapshot, persist, and synthesize the created log
// entry. The read-modify-write runs under a mutex.
func (b *StaticBackend) submitChoiceLocally(ctx context.Context, body interface{}) ([]byte, error) {
	var req struct {
		UserID   string `json:"userId"`
		ChoiceID string `json:"choiceId"`
		StoryID  string `json:"storyId"`
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode choice submission: %w", err)
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("failed to decode choice submission: %w", err)
	}
	if req.UserID == "" {
		req.UserID = b.demoUserID
	}

	deltas, err := b.deltaTable(ctx)
	if err != nil {
		return nil, err
	}
	mods, ok := deltas[req.ChoiceID]
	if !ok {
		return nil, fmt.Errorf("choice %s: %w", req.ChoiceID, models.ErrChoiceNotFound)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	overlay, err := b.readOverlay(req.UserID)
	if err != nil {
		return nil, err
	}

	snapshot := models.UserProgress{CurrentChapter: 3}
	applyOverlay(&snapshot, overlay)
	snapshot.ApplyConsequences(mods)

	next := progressOverlay{
		CurrentChapter:  &snapshot.CurrentChapter,
		TotalChoices:    &snapshot.TotalChoices,
		TrustNetwork:    &snapshot.TrustNetwork,
		CouncilStanding: &snapshot.CouncilStanding,
		CrewLoyalty:     &snapshot.CrewLoyalty,
	}
	persisted, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("failed to encode local progress: %w", err)
	}
	if err := b.store.Set(overlayKey(req.UserID), persisted); err != nil {
		return nil, err
	}

	userChoice := models.UserChoice{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		ChoiceID:  req.ChoiceID,
		StoryID:   req.StoryID,
		Timestamp: time.Now().UTC(),
	}
	b.logger.Info("Choice submitted locally",
		zap.String("userId", req.UserID),
		zap.String("choiceId", req.ChoiceID),
	)
	return json.Marshal(&userChoice)
}

// deltaTable builds the choiceId -> consequence deltas map from the
// exported story snapshot. The export is the same data the server seeds
// from, so server mode and static mode accumulate from one source of
// truth instead of a hand-maintained mirror.
func (b *StaticBackend) deltaTable(ctx context.Context) (map[string]models.ConsequenceModifiers, error) {
	b.mu.Lock()
	if b.deltas != nil {
		table := b.deltas
		b.mu.Unlock()
		return table, nil
	}
	b.mu.Unlock()

	data, err := b.fetch(ctx, constants.APIBasePath+"/stories/current")
	if err != nil {
		return nil, fmt.Errorf("failed to load exported story for delta table: %w", err)
	}

	var detail models.StoryDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, fmt.Errorf("failed to decode exported story: %w", err)
	}

	table := make(map[string]models.ConsequenceModifiers, len(detail.Choices))
	for _, choice := range detail.Choices {
		table[choice.ID] = choice.Modifiers()
	}

	b.mu.Lock()
	b.deltas = table
	b.mu.Unlock()
	return table, nil
}
