package item

import (
	"context"

	"github.com/google/uuid"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
)

// ItemRepository defines persistence operations for items.
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Item, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, page domain.PageRequest) ([]*Item, int64, error)
	CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error)
	// FindByRequestIDs returns the items answering any of the given requests, newest first.
	FindByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) ([]*Item, error)
	// Search matches text case-insensitively against name or description of available items.
	Search(ctx context.Context, text string, page domain.PageRequest) ([]*Item, int64, error)
	Save(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
}
