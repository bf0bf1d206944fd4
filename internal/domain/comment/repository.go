package comment

import (
	"context"

	"github.com/google/uuid"
)

// CommentRepository defines persistence operations for item comments.
type CommentRepository interface {
	Save(ctx context.Context, comment *Comment) error
	FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*Comment, error)
	// FindByItemIDs returns the comments of all given items newest first,
	// with author names resolved in the same query.
	FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*Comment, error)
}
