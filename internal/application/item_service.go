package application

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/shareit-platform/service-booking/internal/domain/booking"
	commentDomain "github.com/shareit-platform/service-booking/internal/domain/comment"
	itemDomain "github.com/shareit-platform/service-booking/internal/domain/item"
	requestDomain "github.com/shareit-platform/service-booking/internal/domain/request"
	userDomain "github.com/shareit-platform/service-booking/internal/domain/user"
	"github.com/shareit-platform/service-booking/internal/platform/clock"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
)

// CreateItemRequest is the request DTO for listing a new item.
type CreateItemRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Available   *bool      `json:"available"`
	RequestID   *uuid.UUID `json:"request_id"`
}

// UpdateItemRequest is a partial update. Omitted fields keep their value.
type UpdateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

// CreateCommentRequest is the request DTO for commenting on an item.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// ItemDTO is the API response representation of an item.
type ItemDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Available   bool       `json:"available"`
	RequestID   *uuid.UUID `json:"request_id,omitempty"`
}

// ItemService implements item management, listings and comments.
type ItemService struct {
	items      itemDomain.ItemRepository
	requests   requestDomain.ItemRequestRepository
	bookings   bookingDomain.BookingRepository
	comments   commentDomain.CommentRepository
	users      userDomain.UserRepository
	aggregator *ListingAggregator
	clock      clock.Clock
	logger     *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.ItemRepository,
	requests requestDomain.ItemRequestRepository,
	bookings bookingDomain.BookingRepository,
	comments commentDomain.CommentRepository,
	users userDomain.UserRepository,
	clk clock.Clock,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:      items,
		requests:   requests,
		bookings:   bookings,
		comments:   comments,
		users:      users,
		aggregator: NewListingAggregator(bookings, comments),
		clock:      clk,
		logger:     logger,
	}
}

// CreateItem lists a new item for the given owner, optionally in answer to a request.
func (s *ItemService) CreateItem(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	if err := requireUser(ctx, s.users, ownerID); err != nil {
		return nil, err
	}
	if req.RequestID != nil {
		ok, err := s.requests.Exists(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.NewNotFoundError("Item request", req.RequestID.String())
		}
	}

	it, err := itemDomain.NewItem(ownerID, req.Name, req.Description, req.Available, req.RequestID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.items.Save(ctx, it); err != nil {
		s.logger.Error("failed to create item", zap.Error(err))
		return nil, err
	}

	s.logger.Info("item created",
		zap.String("item_id", it.ID().String()),
		zap.String("user_id", ownerID.String()),
	)
	result := toItemDTO(it)
	return &result, nil
}

// UpdateItem applies a partial update, verifying ownership.
func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(ownerID) {
		return nil, domain.NewForbiddenError("only the owner can edit an item")
	}

	it.Update(req.Name, req.Description, req.Available, s.clock.Now())
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}

	s.logger.Info("item updated", zap.String("item_id", itemID.String()))
	result := toItemDTO(it)
	return &result, nil
}

// ListOwned returns a page of the owner's items with booking hints and comments.
func (s *ItemService) ListOwned(ctx context.Context, ownerID uuid.UUID, from, size int) (*domain.PaginatedResult[ItemListingDTO], error) {
	if err := requireUser(ctx, s.users, ownerID); err != nil {
		return nil, err
	}
	page, err := domain.NewPageRequest(from, size)
	if err != nil {
		return nil, err
	}

	items, total, err := s.items.FindByOwnerID(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}
	listings, err := s.aggregator.Aggregate(ctx, items, s.clock.Now(), true)
	if err != nil {
		return nil, err
	}

	result := domain.NewPaginatedResult(listings, total, page)
	return &result, nil
}

// GetItem returns one item. Only its owner sees the last and next bookings.
func (s *ItemService) GetItem(ctx context.Context, callerID, itemID uuid.UUID) (*ItemListingDTO, error) {
	if err := requireUser(ctx, s.users, callerID); err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	listings, err := s.aggregator.Aggregate(ctx, []*itemDomain.Item{it}, s.clock.Now(), it.IsOwnedBy(callerID))
	if err != nil {
		return nil, err
	}
	return &listings[0], nil
}

// Search finds available items whose name or description contains text.
// Blank text yields an empty page.
func (s *ItemService) Search(ctx context.Context, callerID uuid.UUID, text string, from, size int) (*domain.PaginatedResult[ItemDTO], error) {
	if err := requireUser(ctx, s.users, callerID); err != nil {
		return nil, err
	}
	page, err := domain.NewPageRequest(from, size)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		result := domain.NewPaginatedResult([]ItemDTO{}, 0, page)
		return &result, nil
	}

	items, total, err := s.items.Search(ctx, strings.TrimSpace(text), page)
	if err != nil {
		return nil, err
	}
	dtos := make([]ItemDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, toItemDTO(it))
	}

	result := domain.NewPaginatedResult(dtos, total, page)
	return &result, nil
}

// AddComment records a comment from a user who has finished an approved booking of the item.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID uuid.UUID, req CreateCommentRequest) (*CommentDTO, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	c, err := commentDomain.NewComment(it.ID(), authorID, req.Text, now)
	if err != nil {
		return nil, err
	}

	completed, err := s.bookings.HasCompletedBooking(ctx, it.ID(), authorID, now)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, domain.NewConflictError("user has no completed booking of this item")
	}

	if err := s.comments.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("comment added",
		zap.String("item_id", it.ID().String()),
		zap.String("user_id", authorID.String()),
	)
	result := toCommentDTO(c, author.Name)
	return &result, nil
}

func toItemDTO(it *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		RequestID:   it.RequestID(),
	}
}
