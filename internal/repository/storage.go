package repository

import (
	"context"

	"keystone-server/shared/models"
)

// Storage is the process-lifetime record store behind the API. Every
// lookup failure is reported through the sentinel errors in
// shared/models; implementations never return partial results.
type Storage interface {
	// User methods
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, username, password string) (*models.User, error)

	// Story methods
	GetStory(ctx context.Context, id string) (*models.Story, error)
	GetStoriesByChapter(ctx context.Context, chapter int) ([]models.Story, error)
	GetAllStories(ctx context.Context) ([]models.Story, error)
	CreateStory(ctx context.Context, story models.Story) (*models.Story, error)

	// Choice methods
	GetChoice(ctx context.Context, id string) (*models.Choice, error)
	GetChoicesByStory(ctx context.Context, storyID string) ([]models.Choice, error)
	CreateChoice(ctx context.Context, choice models.Choice) (*models.Choice, error)

	// User choice methods
	GetUserChoices(ctx context.Context, userID string) ([]models.UserChoice, error)
	GetUserChoicesByStory(ctx context.Context, userID, storyID string) ([]models.UserChoice, error)
	CreateUserChoice(ctx context.Context, userID, choiceID, storyID string) (*models.UserChoice, error)

	// User progress methods
	GetUserProgress(ctx context.Context, userID string) (*models.UserProgress, error)
	CreateUserProgress(ctx context.Context, progress models.UserProgress) (*models.UserProgress, error)
	UpdateUserProgress(ctx context.Context, userID string, patch models.UserProgressPatch) (*models.UserProgress, error)

	// Character methods
	GetCharacter(ctx context.Context, id string) (*models.Character, error)
	GetAllCharacters(ctx context.Context) ([]models.Character, error)
	CreateCharacter(ctx context.Context, character models.Character) (*models.Character, error)

	// Community vote methods. Votes are keyed by choice id with
	// replace-on-write semantics.
	GetCommunityVotes(ctx context.Context, choiceID string) (*models.CommunityVote, error)
	UpdateCommunityVotes(ctx context.Context, choiceID string, vote models.CommunityVote) (*models.CommunityVote, error)
}
