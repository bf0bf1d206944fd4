package request

import (
	"context"

	"github.com/google/uuid"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
)

// ItemRequestRepository defines persistence operations for item requests.
// Listings are newest first.
type ItemRequestRepository interface {
	Save(ctx context.Context, r *ItemRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*ItemRequest, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]*ItemRequest, error)
	// FindOthers pages through the requests of every user except userID.
	FindOthers(ctx context.Context, userID uuid.UUID, page domain.PageRequest) ([]*ItemRequest, int64, error)
}
