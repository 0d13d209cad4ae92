package service

import (
	"context"

	"go.uber.org/zap"

	"keystone-server/internal/repository"
	"keystone-server/shared/models"
)

// CharacterService serves the read-only character roster.
type CharacterService interface {
	ListCharacters(ctx context.Context) ([]models.Character, error)
	GetCharacter(ctx context.Context, id string) (*models.Character, error)
}

// Compile-time check to ensure characterServiceImpl implements CharacterService
var _ CharacterService = (*characterServiceImpl)(nil)

type characterServiceImpl struct {
	storage repository.Storage
	logger  *zap.Logger
}

// NewCharacterService creates a new CharacterService backed by the given
// storage.
func NewCharacterService(storage repository.Storage, logger *zap.Logger) CharacterService {
	return &characterServiceImpl{
		storage: storage,
		logger:  logger.Named("CharacterService"),
	}
}

func (s *characterServiceImpl) ListCharacters(ctx context.Context) ([]models.Character, error) {
	return s.storage.GetAllCharacters(ctx)
}

func (s *characterServiceImpl) GetCharacter(ctx context.Context, id string) (*models.Character, error) {
	return s.storage.GetCharacter(ctx, id)
}
