package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/salonworks/booking-api/internal/domain"
	"github.com/salonworks/booking-api/internal/store"
)

// UserService provides account management operations.
type UserService interface {
	// CreateUser registers a new user from a plaintext password.
	CreateUser(ctx context.Context, username, email, password string) (*domain.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves all users, newest first.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// UpdateUser applies a partial update to an existing user and returns
	// the updated user.
	UpdateUser(ctx context.Context, userID uuid.UUID, update *domain.UserUpdate) (*domain.User, error)

	// DeleteUser removes a user by ID. Returns store.ErrReferenced when
	// appointments or notifications still reference the user.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements UserService backed by a UserStore.
type UserServiceImpl struct {
	userStore store.UserStore
	db        *sql.DB
	logger    *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService.
func NewUserService(userStore store.UserStore, db *sql.DB, logger *slog.Logger) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		db:        db,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// CreateUser implements UserService.CreateUser.
func (s *UserServiceImpl) CreateUser(
	ctx context.Context,
	username, email, password string,
) (*domain.User, error) {
	user, err := domain.NewUser(username, email, password)
	if err != nil {
		s.logger.Warn("invalid user data",
			"error", err,
			"username", username)
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		s.logger.Error("failed to create user",
			"error", err,
			"username", username)
		return nil, err
	}

	s.logger.Info("user created",
		"user_id", user.ID,
		"username", user.Username)
	return user, nil
}

// GetUser implements UserService.GetUser.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByUsername implements UserService.GetUserByUsername.
func (s *UserServiceImpl) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers implements UserService.ListUsers.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userStore.List(ctx)
}

// UpdateUser implements UserService.UpdateUser. The read and write share
// one transaction so a concurrent delete cannot slip between them.
func (s *UserServiceImpl) UpdateUser(
	ctx context.Context,
	userID uuid.UUID,
	update *domain.UserUpdate,
) (*domain.User, error) {
	if err := update.Validate(); err != nil {
		s.logger.Warn("invalid user update",
			"error", err,
			"user_id", userID)
		return nil, err
	}

	var updated *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		update.Apply(user)
		user.UpdatedAt = time.Now().UTC()
		if err := user.Validate(); err != nil {
			return err
		}

		if err := txStore.Update(ctx, user); err != nil {
			return err
		}

		updated = user
		return nil
	})
	if err != nil {
		s.logger.Error("failed to update user",
			"error", err,
			"user_id", userID)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", userID)
	return updated, nil
}

// DeleteUser implements UserService.DeleteUser.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.userStore.Delete(ctx, userID); err != nil {
		s.logger.Error("failed to delete user",
			"error", err,
			"user_id", userID)
		return err
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}
