package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"keystone-server/internal/repository"
	"keystone-server/shared/models"
)

// StoryService serves the reading surface: the currently active chapter
// with its choices and community vote numbers.
type StoryService interface {
	GetCurrentStory(ctx context.Context) (*models.StoryDetail, error)
}

// Compile-time check to ensure storyServiceImpl implements StoryService
var _ StoryService = (*storyServiceImpl)(nil)

type storyServiceImpl struct {
	storage repository.Storage
	logger  *zap.Logger
}

// NewStoryService creates a new StoryService backed by the given storage.
func NewStoryService(storage repository.Storage, logger *zap.Logger) StoryService {
	return &storyServiceImpl{
		storage: storage,
		logger:  logger.Named("StoryService"),
	}
}

// GetCurrentStory returns the active story, or the first story by chapter
// order when none is flagged active. Each choice is augmented with its
// vote count and percentage; choices without a vote record report zeros.
func (s *storyServiceImpl) GetCurrentStory(ctx context.Context) (*models.StoryDetail, error) {
	stories, err := s.storage.GetAllStories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	if len(stories) == 0 {
		return nil, models.ErrStoryNotFound
	}

	current := stories[0]
	for _, story := range stories {
		if story.IsActive {
			current = story
			break
		}
	}

	choices, err := s.storage.GetChoicesByStory(ctx, current.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load choices for story %s: %w", current.ID, err)
	}

	detail := &models.StoryDetail{
		Story:   current,
		Choices: make([]models.ChoiceWithVotes, 0, len(choices)),
	}
	for _, choice := range choices {
		withVotes := models.ChoiceWithVotes{Choice: choice}
		vote, err := s.storage.GetCommunityVotes(ctx, choice.ID)
		switch {
		case err == nil:
			withVotes.VoteCount = vote.VoteCount
			withVotes.Percentage = vote.Percentage
		case errors.Is(err, models.ErrNotFound):
			// no votes recorded yet, keep zeros
		default:
			return nil, fmt.Errorf("failed to load votes for choice %s: %w", choice.ID, err)
		}
		detail.Choices = append(detail.Choices, withVotes)
	}

	return detail, nil
}
