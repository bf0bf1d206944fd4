package comment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
)

// Comment is feedback left on an item by a user who has borrowed it.
type Comment struct {
	id         uuid.UUID
	itemID     uuid.UUID
	authorID   uuid.UUID
	authorName string
	text       string
	createdAt  time.Time
}

// NewComment creates a new comment. Eligibility of the author is checked by the caller.
func NewComment(itemID, authorID uuid.UUID, text string, now time.Time) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("comment text is required")
	}
	if itemID == uuid.Nil || authorID == uuid.Nil {
		return nil, domain.NewValidationError("item and author are required")
	}

	return &Comment{
		id:        uuid.New(),
		itemID:    itemID,
		authorID:  authorID,
		text:      text,
		createdAt: now,
	}, nil
}

// Reconstruct rebuilds a Comment from persistence. authorName comes from the
// user replica and is empty when the author is no longer known.
func Reconstruct(id, itemID, authorID uuid.UUID, authorName, text string, createdAt time.Time) *Comment {
	return &Comment{
		id:         id,
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		createdAt:  createdAt,
	}
}

// Getters.
func (c *Comment) ID() uuid.UUID        { return c.id }
func (c *Comment) ItemID() uuid.UUID    { return c.itemID }
func (c *Comment) AuthorID() uuid.UUID  { return c.authorID }
func (c *Comment) AuthorName() string   { return c.authorName }
func (c *Comment) Text() string         { return c.text }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }

// GroupByItem indexes comments by item id, preserving input order.
func GroupByItem(comments []*Comment) map[uuid.UUID][]*Comment {
	groups := make(map[uuid.UUID][]*Comment)
	for _, c := range comments {
		groups[c.itemID] = append(groups[c.itemID], c)
	}
	return groups
}
