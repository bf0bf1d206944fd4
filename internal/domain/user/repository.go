package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository reads and maintains the user replica.
type UserRepository interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error)
	// Upsert inserts or replaces the replica row. Older versions (by UpdatedAt) are ignored.
	Upsert(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
