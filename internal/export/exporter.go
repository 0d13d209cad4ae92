package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"keystone-server/internal/service"
	"keystone-server/shared/constants"
)

// Exporter renders the seed data to the static-mode JSON layout: every
// GET endpoint gets a pre-rendered file at the same relative path with a
// .json suffix. A deployment served from a plain file host plus these
// files behaves like the live API for reads.
type Exporter struct {
	stories    service.StoryService
	progress   service.ProgressService
	characters service.CharacterService
	demoUserID string
	logger     *zap.Logger
}

// NewExporter creates an exporter over the same services the HTTP
// handlers use, so exported bytes match live responses.
func NewExporter(
	stories service.StoryService,
	progress service.ProgressService,
	characters service.CharacterService,
	demoUserID string,
	logger *zap.Logger,
) *Exporter {
	return &Exporter{
		stories:    stories,
		progress:   progress,
		characters: characters,
		demoUserID: demoUserID,
		logger:     logger.Named("Exporter"),
	}
}

// Export writes the JSON tree under dir. Existing files are overwritten.
func (e *Exporter) Export(ctx context.Context, dir string) error {
	apiDir := filepath.Join(dir, "api")

	detail, err := e.stories.GetCurrentStory(ctx)
	if err != nil {
		return fmt.Errorf("failed to load current story: %w", err)
	}
	if err := e.writeJSON(filepath.Join(apiDir, "stories", "current.json"), detail); err != nil {
		return err
	}

	characters, err := e.characters.ListCharacters(ctx)
	if err != nil {
		return fmt.Errorf("failed to load characters: %w", err)
	}
	if err := e.writeJSON(filepath.Join(apiDir, "characters.json"), characters); err != nil {
		return err
	}
	for _, character := range characters {
		if err := e.writeJSON(filepath.Join(apiDir, "characters", character.ID+".json"), character); err != nil {
			return err
		}
	}

	progress, err := e.progress.GetProgress(ctx, e.demoUserID)
	if err != nil {
		return fmt.Errorf("failed to load demo progress: %w", err)
	}
	userDir := filepath.Join(apiDir, "users", e.demoUserID)
	if err := e.writeJSON(filepath.Join(userDir, "progress.json"), progress); err != nil {
		return err
	}

	choices, err := e.progress.GetStoryChoices(ctx, e.demoUserID, constants.SeedStoryID)
	if err != nil {
		return fmt.Errorf("failed to load demo choice log: %w", err)
	}
	if err := e.writeJSON(filepath.Join(userDir, "choices", constants.SeedStoryID+".json"), choices); err != nil {
		return err
	}

	e.logger.Info("Static export complete", zap.String("dir", dir))
	return nil
}

func (e *Exporter) writeJSON(path string, payload interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	e.logger.Debug("Wrote export file", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
