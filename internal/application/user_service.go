package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	userDomain "github.com/shareit-platform/service-booking/internal/domain/user"
	"github.com/shareit-platform/service-booking/internal/events/schema"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
)

// UserService keeps the local user replica in step with the identity service.
type UserService struct {
	users  userDomain.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users userDomain.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// ApplyUserChanged stores a registered or updated account.
func (s *UserService) ApplyUserChanged(ctx context.Context, evt schema.UserEvent) error {
	if evt.UserID == uuid.Nil {
		return domain.NewValidationError("user event without user_id")
	}

	u := &userDomain.User{
		ID:        evt.UserID,
		Name:      evt.Name,
		Email:     evt.Email,
		UpdatedAt: evt.OccurredAt.UTC(),
	}
	if err := s.users.Upsert(ctx, u); err != nil {
		return err
	}

	s.logger.Info("user replica updated", zap.String("user_id", evt.UserID.String()))
	return nil
}

// ApplyUserDeleted removes an account from the replica.
func (s *UserService) ApplyUserDeleted(ctx context.Context, evt schema.UserEvent) error {
	if evt.UserID == uuid.Nil {
		return domain.NewValidationError("user event without user_id")
	}
	if err := s.users.Delete(ctx, evt.UserID); err != nil {
		return err
	}

	s.logger.Info("user replica removed", zap.String("user_id", evt.UserID.String()))
	return nil
}

// requireUser fails with NotFound unless the user is in the replica.
func requireUser(ctx context.Context, users userDomain.UserRepository, userID uuid.UUID) error {
	ok, err := users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFoundError("User", userID.String())
	}
	return nil
}
