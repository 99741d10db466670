package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Kamol1dd1nbek/quote-backend/domain"
)

// UserServiceImpl implements domain.UserService
type UserServiceImpl struct {
	userRepo  domain.UserRepository
	fileStore domain.FileStore
	logger    *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo domain.UserRepository, fileStore domain.FileStore, logger *zap.Logger) domain.UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserServiceImpl{
		userRepo:  userRepo,
		fileStore: fileStore,
		logger:    logger,
	}
}

// List implements domain.UserService
func (s *UserServiceImpl) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) == 0 {
		return nil, domain.ErrNoUsers
	}
	return users, nil
}

// Update implements domain.UserService. A profile can be changed by
// its owner or by an admin; avatar bytes are uploaded to the file
// store and the public URL persisted.
func (s *UserServiceImpl) Update(ctx context.Context, targetID, actorID uint, actorAdmin bool, input domain.UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.ID != actorID && !actorAdmin {
		return nil, domain.ErrAccessDenied
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if len(input.Avatar) > 0 {
		url, err := s.fileStore.Store(ctx, input.Avatar, input.AvatarContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to store avatar: %w", err)
		}
		user.AvatarURL = url
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("user updated", zap.Uint("user_id", user.ID), zap.Uint("actor_id", actorID))
	return user, nil
}

// Delete implements domain.UserService. Admin-only; an admin cannot
// remove their own account.
func (s *UserServiceImpl) Delete(ctx context.Context, targetID, actorID uint) error {
	if targetID == actorID {
		return domain.ErrSelfDelete
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", zap.Uint("user_id", targetID), zap.Uint("actor_id", actorID))
	return nil
}
