package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"keystone-server/shared/models"
)

// Compile-time check to ensure MemoryStorage implements Storage
var _ Storage = (*MemoryStorage)(nil)

// MemoryStorage keeps every record in process memory for the lifetime of
// the server. One RWMutex guards all maps; gin serves requests on
// independent goroutines, so unsynchronized access is not an option here.
type MemoryStorage struct {
	mu         sync.RWMutex
	demoUserID string
	logger     *zap.Logger

	users       map[string]models.User
	stories     map[string]models.Story
	choices     map[string]models.Choice
	choiceOrder []string
	userChoices []models.UserChoice
	progress    map[string]models.UserProgress // keyed by record id, looked up by userId scan
	characters  map[string]models.Character
	charOrder   []string
	votes       map[string]models.CommunityVote // keyed by choiceId, replace-on-write
}

// NewMemoryStorage creates a storage pre-populated with the seed story,
// its choices, the character roster and the community vote numbers.
// demoUserID is the single identity that gets a progress record
// provisioned lazily on first read.
func NewMemoryStorage(demoUserID string, logger *zap.Logger) *MemoryStorage {
	s := &MemoryStorage{
		demoUserID: demoUserID,
		logger:     logger.Named("MemoryStorage"),
		users:      make(map[string]models.User),
		stories:    make(map[string]models.Story),
		choices:    make(map[string]models.Choice),
		progress:   make(map[string]models.UserProgress),
		characters: make(map[string]models.Character),
		votes:      make(map[string]models.CommunityVote),
	}
	s.seed()
	return s
}

// --- User methods ---

func (s *MemoryStorage) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return &user, nil
}

func (s *MemoryStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

// CreateUser registers a new user and provisions their initial progress
// record (chapter 1, all totals zero).
func (s *MemoryStorage) CreateUser(_ context.Context, username, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			return nil, models.ErrUserAlreadyExists
		}
	}

	user := models.User{
		ID:       uuid.NewString(),
		Username: username,
		Password: password,
	}
	s.users[user.ID] = user

	s.createProgressLocked(models.UserProgress{
		UserID:         user.ID,
		CurrentChapter: 1,
	})

	s.logger.Debug("User created", zap.String("userId", user.ID), zap.String("username", username))
	return &user, nil
}

// --- Story methods ---

func (s *MemoryStorage) GetStory(_ context.Context, id string) (*models.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	story, ok := s.stories[id]
	if !ok {
		return nil, models.ErrStoryNotFound
	}
	return &story, nil
}

func (s *MemoryStorage) GetStoriesByChapter(_ context.Context, chapter int) ([]models.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Story
	for _, story := range s.stories {
		if story.ChapterNumber == chapter {
			out = append(out, story)
		}
	}
	sortStories(out)
	return out, nil
}

func (s *MemoryStorage) GetAllStories(_ context.Context) ([]models.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Story, 0, len(s.stories))
	for _, story := range s.stories {
		out = append(out, story)
	}
	sortStories(out)
	return out, nil
}

func (s *MemoryStorage) CreateStory(_ context.Context, story models.Story) (*models.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	story.ID = uuid.NewString()
	story.CreatedAt = time.Now().UTC()
	s.stories[story.ID] = story
	return &story, nil
}

// sortStories orders by chapter number ascending, then id for a stable
// order between identically numbered chapters.
func sortStories(stories []models.Story) {
	sort.Slice(stories, func(i, j int) bool {
		if stories[i].ChapterNumber != stories[j].ChapterNumber {
			return stories[i].ChapterNumber < stories[j].ChapterNumber
		}
		return stories[i].ID < stories[j].ID
	})
}

// --- Choice methods ---

func (s *MemoryStorage) GetChoice(_ context.Context, id string) (*models.Choice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	choice, ok := s.choices[id]
	if !ok {
		return nil, models.ErrChoiceNotFound
	}
	return &choice, nil
}

// GetChoicesByStory returns the story's choices in insertion order, which
// keeps repeated reads of the story endpoint byte-identical.
func (s *MemoryStorage) GetChoicesByStory(_ context.Context, storyID string) ([]models.Choice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Choice
	for _, id := range s.choiceOrder {
		if choice := s.choices[id]; choice.StoryID == storyID {
			out = append(out, choice)
		}
	}
	return out, nil
}

func (s *MemoryStorage) CreateChoice(_ context.Context, choice models.Choice) (*models.Choice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	choice.ID = uuid.NewString()
	s.putChoiceLocked(choice)
	return &choice, nil
}

func (s *MemoryStorage) putChoiceLocked(choice models.Choice) {
	s.choices[choice.ID] = choice
	s.choiceOrder = append(s.choiceOrder, choice.ID)
}

// --- User choice methods ---

func (s *MemoryStorage) GetUserChoices(_ context.Context, userID string) ([]models.UserChoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.UserChoice{}
	for _, uc := range s.userChoices {
		if uc.UserID == userID {
			out = append(out, uc)
		}
	}
	return out, nil
}

func (s *MemoryStorage) GetUserChoicesByStory(_ context.Context, userID, storyID string) ([]models.UserChoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.UserChoice{}
	for _, uc := range s.userChoices {
		if uc.UserID == userID && uc.StoryID == storyID {
			out = append(out, uc)
		}
	}
	return out, nil
}

// CreateUserChoice appends to the choice log. The log is append-only and
// performs no dedupe: repeat submissions for the same (user, story) all
// land as separate entries.
func (s *MemoryStorage) CreateUserChoice(_ context.Context, userID, choiceID, storyID string) (*models.UserChoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uc := models.UserChoice{
		ID:        uuid.NewString(),
		UserID:    userID,
		ChoiceID:  choiceID,
		StoryID:   storyID,
		Timestamp: time.Now().UTC(),
	}
	s.userChoices = append(s.userChoices, uc)
	return &uc, nil
}

// --- User progress methods ---

// GetUserProgress looks the record up by user id. The demo identity is
// provisioned lazily with the chapter-3 defaults on first read; any other
// unknown user gets ErrProgressNotFound.
func (s *MemoryStorage) GetUserProgress(_ context.Context, userID string) (*models.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if progress, ok := s.findProgressLocked(userID); ok {
		return &progress, nil
	}

	if userID == s.demoUserID {
		s.logger.Info("Provisioning demo user progress", zap.String("userId", userID))
		progress := s.createProgressLocked(models.UserProgress{
			UserID:         userID,
			CurrentChapter: 3,
		})
		return &progress, nil
	}

	return nil, models.ErrProgressNotFound
}

func (s *MemoryStorage) CreateUserProgress(_ context.Context, progress models.UserProgress) (*models.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.createProgressLocked(progress)
	return &created, nil
}

// UpdateUserProgress shallow-merges the patch over the existing record.
// Fields absent from the patch keep their values; CompletedStories is
// replaced wholesale when present.
func (s *MemoryStorage) UpdateUserProgress(_ context.Context, userID string, patch models.UserProgressPatch) (*models.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress, ok := s.findProgressLocked(userID)
	if !ok {
		return nil, models.ErrProgressNotFound
	}

	progress.Merge(patch)
	s.progress[progress.ID] = progress
	return &progress, nil
}

func (s *MemoryStorage) findProgressLocked(userID string) (models.UserProgress, bool) {
	for _, progress := range s.progress {
		if progress.UserID == userID {
			return progress, true
		}
	}
	return models.UserProgress{}, false
}

// createProgressLocked fills defaults (chapter 1, empty completed list)
// and stores the record under a fresh id.
func (s *MemoryStorage) createProgressLocked(progress models.UserProgress) models.UserProgress {
	progress.ID = uuid.NewString()
	if progress.CurrentChapter == 0 {
		progress.CurrentChapter = 1
	}
	if progress.CompletedStories == nil {
		progress.CompletedStories = []string{}
	}
	s.progress[progress.ID] = progress
	return progress
}

// --- Character methods ---

func (s *MemoryStorage) GetCharacter(_ context.Context, id string) (*models.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	character, ok := s.characters[id]
	if !ok {
		return nil, models.ErrCharacterNotFound
	}
	return &character, nil
}

func (s *MemoryStorage) GetAllCharacters(_ context.Context) ([]models.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Character, 0, len(s.charOrder))
	for _, id := range s.charOrder {
		out = append(out, s.characters[id])
	}
	return out, nil
}

func (s *MemoryStorage) CreateCharacter(_ context.Context, character models.Character) (*models.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	character.ID = uuid.NewString()
	s.putCharacterLocked(character)
	return &character, nil
}

func (s *MemoryStorage) putCharacterLocked(character models.Character) {
	s.characters[character.ID] = character
	s.charOrder = append(s.charOrder, character.ID)
}

// --- Community vote methods ---

func (s *MemoryStorage) GetCommunityVotes(_ context.Context, choiceID string) (*models.CommunityVote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vote, ok := s.votes[choiceID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &vote, nil
}

// UpdateCommunityVotes replaces the vote record for the choice. The
// record's own id is regenerated on every write; lookups only ever go
// through the choice id.
func (s *MemoryStorage) UpdateCommunityVotes(_ context.Context, choiceID string, vote models.CommunityVote) (*models.CommunityVote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vote.ID = uuid.NewString()
	vote.ChoiceID = choiceID
	s.votes[choiceID] = vote
	return &vote, nil
}
