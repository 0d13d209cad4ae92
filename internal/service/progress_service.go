package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"keystone-server/internal/repository"
	"keystone-server/shared/models"
)

// ProgressService owns the consequence accumulation model: reading and
// patching a reader's progress, and folding submitted choices into it.
type ProgressService interface {
	GetProgress(ctx context.Context, userID string) (*models.UserProgress, error)
	UpsertProgress(ctx context.Context, userID string, patch models.UserProgressPatch) (*models.UserProgress, error)
	SubmitChoice(ctx context.Context, userID, choiceID, storyID string) (*models.UserChoice, error)
	GetStoryChoices(ctx context.Context, userID, storyID string) ([]models.UserChoice, error)
}

// Compile-time check to ensure progressServiceImpl implements ProgressService
var _ ProgressService = (*progressServiceImpl)(nil)

type progressServiceImpl struct {
	storage  repository.Storage
	logger   *zap.Logger
	submitMu sync.Mutex
}

// NewProgressService creates a new ProgressService backed by the given
// storage.
func NewProgressService(storage repository.Storage, logger *zap.Logger) ProgressService {
	return &progressServiceImpl{
		storage: storage,
		logger:  logger.Named("ProgressService"),
	}
}

// GetProgress returns the reader's progress record. The storage layer
// provisions the demo identity lazily; every other unknown user surfaces
// ErrProgressNotFound.
func (s *progressServiceImpl) GetProgress(ctx context.Context, userID string) (*models.UserProgress, error) {
	return s.storage.GetUserProgress(ctx, userID)
}

// UpsertProgress patches the existing record, or creates one from the
// patch when the user has none yet.
func (s *progressServiceImpl) UpsertProgress(ctx context.Context, userID string, patch models.UserProgressPatch) (*models.UserProgress, error) {
	progress, err := s.storage.UpdateUserProgress(ctx, userID, patch)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, models.ErrProgressNotFound) {
		return nil, fmt.Errorf("failed to update progress for user %s: %w", userID, err)
	}

	fresh := models.UserProgress{UserID: userID}
	fresh.Merge(patch)
	return s.storage.CreateUserProgress(ctx, fresh)
}

// SubmitChoice records a reader's selection. The choice must exist;
// otherwise the submission is rejected and the progress record stays
// untouched. For a known choice the consequence deltas are accumulated
// into the progress totals, totalChoices is incremented, and a log entry
// is appended. The log append happens even when the user has no progress
// record to update (that asymmetry matches the storage policy of only
// provisioning the demo identity).
//
// The update-then-append pair runs under a mutex so the two writes keep a
// single-writer discipline on a multi-threaded runtime.
func (s *progressServiceImpl) SubmitChoice(ctx context.Context, userID, choiceID, storyID string) (*models.UserChoice, error) {
	choice, err := s.storage.GetChoice(ctx, choiceID)
	if err != nil {
		s.logger.Warn("Choice submission for unknown choice",
			zap.String("userId", userID),
			zap.String("choiceId", choiceID),
		)
		return nil, err
	}

	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	progress, err := s.storage.GetUserProgress(ctx, userID)
	switch {
	case err == nil:
		updated := *progress
		updated.ApplyConsequences(choice.Modifiers())
		patch := models.UserProgressPatch{
			TotalChoices:    &updated.TotalChoices,
			TrustNetwork:    &updated.TrustNetwork,
			CouncilStanding: &updated.CouncilStanding,
			CrewLoyalty:     &updated.CrewLoyalty,
		}
		if _, err := s.storage.UpdateUserProgress(ctx, userID, patch); err != nil {
			return nil, fmt.Errorf("failed to persist progress for user %s: %w", userID, err)
		}
	case errors.Is(err, models.ErrProgressNotFound):
		s.logger.Warn("Choice submitted by user without progress record",
			zap.String("userId", userID),
			zap.String("choiceId", choiceID),
		)
	default:
		return nil, fmt.Errorf("failed to load progress for user %s: %w", userID, err)
	}

	userChoice, err := s.storage.CreateUserChoice(ctx, userID, choiceID, storyID)
	if err != nil {
		return nil, fmt.Errorf("failed to append choice log entry: %w", err)
	}

	s.logger.Info("Choice submitted",
		zap.String("userId", userID),
		zap.String("choiceId", choiceID),
		zap.String("storyId", storyID),
	)
	return userChoice, nil
}

// GetStoryChoices lists the reader's logged selections for one story, in
// submission order.
func (s *progressServiceImpl) GetStoryChoices(ctx context.Context, userID, storyID string) ([]models.UserChoice, error) {
	return s.storage.GetUserChoicesByStory(ctx, userID, storyID)
}
