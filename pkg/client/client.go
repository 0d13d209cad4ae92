// Package client is the data layer used by reader frontends. A Client
// speaks logical API paths; the Backend decides how they are satisfied:
// against a live server, or — for deployments on a plain file host with
// no backend — against pre-exported JSON snapshots plus a local store
// that replays server mutation semantics on the reader's machine.
package client

import (
	"context"
	"encoding/json"
	"fmt"

	"keystone-server/shared/constants"
	"keystone-server/shared/models"
)

// Backend routes one logical API call to a physical backend.
type Backend interface {
	// Get fetches the JSON payload of a logical GET path (e.g.
	// /api/stories/current).
	Get(ctx context.Context, path string) ([]byte, error)
	// Post performs a logical mutation and returns the response payload,
	// which may be empty.
	Post(ctx context.Context, path string, body interface{}) ([]byte, error)
}

// Client exposes typed operations over a Backend.
type Client struct {
	backend Backend
}

// New creates a Client over the given backend.
func New(backend Backend) *Client {
	return &Client{backend: backend}
}

// CurrentStory fetches the active story with choices and vote numbers.
func (c *Client) CurrentStory(ctx context.Context) (*models.StoryDetail, error) {
	var detail models.StoryDetail
	if err := c.getJSON(ctx, constants.APIBasePath+"/stories/current", &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Progress fetches the reader's progress record.
func (c *Client) Progress(ctx context.Context, userID string) (*models.UserProgress, error) {
	var progress models.UserProgress
	path := fmt.Sprintf("%s/users/%s/progress", constants.APIBasePath, userID)
	if err := c.getJSON(ctx, path, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// SaveProgress creates or patches the reader's progress.
func (c *Client) SaveProgress(ctx context.Context, userID string, patch models.UserProgressPatch) (*models.UserProgress, error) {
	path := fmt.Sprintf("%s/users/%s/progress", constants.APIBasePath, userID)
	data, err := c.backend.Post(ctx, path, patch)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		// Static mode synthesizes an empty success for this mutation.
		return nil, nil
	}
	var progress models.UserProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, fmt.Errorf("failed to decode progress response: %w", err)
	}
	return &progress, nil
}

// SubmitChoice records a selection and returns the created log entry.
func (c *Client) SubmitChoice(ctx context.Context, userID, choiceID, storyID string) (*models.UserChoice, error) {
	body := map[string]string{
		"userId":   userID,
		"choiceId": choiceID,
		"storyId":  storyID,
	}
	data, err := c.backend.Post(ctx, constants.APIBasePath+"/choices", body)
	if err != nil {
		return nil, err
	}
	var userChoice models.UserChoice
	if err := json.Unmarshal(data, &userChoice); err != nil {
		return nil, fmt.Errorf("failed to decode choice response: %w", err)
	}
	return &userChoice, nil
}

// Characters fetches the character roster.
func (c *Client) Characters(ctx context.Context) ([]models.Character, error) {
	var characters []models.Character
	if err := c.getJSON(ctx, constants.APIBasePath+"/characters", &characters); err != nil {
		return nil, err
	}
	return characters, nil
}

// Character fetches one character by id.
func (c *Client) Character(ctx context.Context, id string) (*models.Character, error) {
	var character models.Character
	if err := c.getJSON(ctx, fmt.Sprintf("%s/characters/%s", constants.APIBasePath, id), &character); err != nil {
		return nil, err
	}
	return &character, nil
}

// StoryChoices fetches the reader's logged selections for one story.
func (c *Client) StoryChoices(ctx context.Context, userID, storyID string) ([]models.UserChoice, error) {
	var choices []models.UserChoice
	path := fmt.Sprintf("%s/users/%s/choices/%s", constants.APIBasePath, userID, storyID)
	if err := c.getJSON(ctx, path, &choices); err != nil {
		return nil, err
	}
	return choices, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	data, err := c.backend.Get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response for %s: %w", path, err)
	}
	return nil
}
