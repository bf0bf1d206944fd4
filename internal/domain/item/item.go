package item

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
)

// Item is the aggregate root for a thing a user offers for lending.
type Item struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	description string
	available   bool
	requestID   *uuid.UUID
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewItem creates a new item with validated fields.
func NewItem(ownerID uuid.UUID, name, description string, available *bool, requestID *uuid.UUID, now time.Time) (*Item, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("item name is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, domain.NewValidationError("item description is required")
	}
	if available == nil {
		return nil, domain.NewValidationError("item availability is required")
	}

	return &Item{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   *available,
		requestID:   requestID,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	name, description string,
	available bool,
	requestID *uuid.UUID,
	version int64,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (i *Item) ID() uuid.UUID         { return i.id }
func (i *Item) OwnerID() uuid.UUID    { return i.ownerID }
func (i *Item) Name() string          { return i.name }
func (i *Item) Description() string   { return i.description }
func (i *Item) Available() bool       { return i.available }
func (i *Item) RequestID() *uuid.UUID { return i.requestID }
func (i *Item) Version() int64        { return i.version }
func (i *Item) CreatedAt() time.Time  { return i.createdAt }
func (i *Item) UpdatedAt() time.Time  { return i.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the item belongs to the given user.
func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.ownerID == userID
}

// Update applies a partial update. Blank strings and a nil availability leave the field unchanged.
// The version is bumped so the repository can detect concurrent edits.
func (i *Item) Update(name, description string, available *bool, now time.Time) {
	if strings.TrimSpace(name) != "" {
		i.name = name
	}
	if strings.TrimSpace(description) != "" {
		i.description = description
	}
	if available != nil {
		i.available = *available
	}
	i.version++
	i.updatedAt = now
}

// GroupByRequest indexes items by the request they answer, preserving input order.
// Items that answer no request are skipped.
func GroupByRequest(items []*Item) map[uuid.UUID][]*Item {
	groups := make(map[uuid.UUID][]*Item)
	for _, it := range items {
		if it.requestID == nil {
			continue
		}
		groups[*it.requestID] = append(groups[*it.requestID], it)
	}
	return groups
}
