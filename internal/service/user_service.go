package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"keystone-server/internal/repository"
	"keystone-server/shared/models"
)

// UserService handles reader registration. Creating a user also
// provisions their initial progress record (the storage does both).
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
}

// Compile-time check to ensure userServiceImpl implements UserService
var _ UserService = (*userServiceImpl)(nil)

type userServiceImpl struct {
	storage repository.Storage
	logger  *zap.Logger
}

// NewUserService creates a new UserService backed by the given storage.
func NewUserService(storage repository.Storage, logger *zap.Logger) UserService {
	return &userServiceImpl{
		storage: storage,
		logger:  logger.Named("UserService"),
	}
}

func (s *userServiceImpl) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, models.ErrInvalidInput
	}

	user, err := s.storage.CreateUser(ctx, username, password)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("userId", user.ID), zap.String("username", user.Username))
	return user, nil
}
