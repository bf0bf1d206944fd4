package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/shareit-platform/service-booking/internal/domain/booking"
	itemDomain "github.com/shareit-platform/service-booking/internal/domain/item"
	userDomain "github.com/shareit-platform/service-booking/internal/domain/user"
	"github.com/shareit-platform/service-booking/internal/events/schema"
	"github.com/shareit-platform/service-booking/internal/metrics"
	"github.com/shareit-platform/service-booking/internal/platform/clock"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
	"github.com/shareit-platform/service-booking/internal/platform/kafka"
)

const eventSource = "service-booking"

// EventPublisher delivers CloudEvents to a topic.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event kafka.CloudEvent) error
}

// CreateBookingRequest holds the data needed to request a booking.
type CreateBookingRequest struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// UserRefDTO identifies a user by id and display name.
type UserRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ItemRefDTO identifies an item by id and name.
type ItemRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID     uuid.UUID  `json:"id"`
	Start  time.Time  `json:"start"`
	End    time.Time  `json:"end"`
	Status string     `json:"status"`
	Booker UserRefDTO `json:"booker"`
	Item   ItemRefDTO `json:"item"`
}

// BookingStatsDTO counts bookings on an owner's items by status.
type BookingStatsDTO struct {
	Total    int64 `json:"total"`
	Waiting  int64 `json:"waiting"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	bookings  bookingDomain.BookingRepository
	items     itemDomain.ItemRepository
	users     userDomain.UserRepository
	publisher EventPublisher
	clock     clock.Clock
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	publisher EventPublisher,
	clk clock.Clock,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		items:     items,
		users:     users,
		publisher: publisher,
		clock:     clk,
		logger:    logger,
	}
}

// CreateBooking requests a booking of an item on behalf of bookerID.
func (s *BookingService) CreateBooking(ctx context.Context, bookerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	if err := bookingDomain.ValidatePeriod(req.Start, req.End); err != nil {
		return nil, err
	}
	if err := requireUser(ctx, s.users, bookerID); err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available() {
		return nil, domain.NewConflictError(fmt.Sprintf("item %s is unavailable", it.ID()))
	}
	if it.IsOwnedBy(bookerID) {
		return nil, domain.NewConflictError("owner cannot book their own item")
	}

	bk, err := bookingDomain.NewBooking(it.ID(), bookerID, req.Start, req.End, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	s.logger.Info("booking requested",
		zap.String("booking_id", bk.ID().String()),
		zap.String("item_id", it.ID().String()),
		zap.String("user_id", bookerID.String()),
	)
	s.publishBookingEvent(ctx, schema.BookingRequested, bk, it.OwnerID())

	return s.toBookingDTO(ctx, bk, it)
}

// Decide approves or rejects a waiting booking. Only the item owner may decide.
func (s *BookingService) Decide(ctx context.Context, ownerID, bookingID uuid.UUID, approve bool) (*BookingDTO, error) {
	if err := requireUser(ctx, s.users, ownerID); err != nil {
		return nil, err
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(ownerID) {
		return nil, domain.NewForbiddenError("only the item owner can decide on a booking")
	}

	if err := bk.Decide(approve, s.clock.Now()); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		if domain.IsConflict(err) {
			return nil, s.lostDecision(ctx, bookingID, bk.Status())
		}
		return nil, err
	}

	metrics.IncBookingTransition(bk.Status().String())
	s.logger.Info("booking decided",
		zap.String("booking_id", bk.ID().String()),
		zap.String("user_id", ownerID.String()),
		zap.String("status", bk.Status().String()),
	)

	eventType := schema.BookingRejected
	if approve {
		eventType = schema.BookingApproved
	}
	s.publishBookingEvent(ctx, eventType, bk, ownerID)

	return s.toBookingDTO(ctx, bk, it)
}

// lostDecision explains a failed versioned update. When another decision
// reached the store first the booking is terminal and the caller gets an
// invalid-state error; any other concurrent write is reported as a conflict.
func (s *BookingService) lostDecision(ctx context.Context, bookingID uuid.UUID, target bookingDomain.BookingStatus) error {
	current, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if !current.Status().IsTerminal() {
		return domain.NewConflictError("booking was modified concurrently, retry the decision")
	}
	return domain.NewInvalidStateError(current.Status().String(), target.String())
}

// GetBooking returns a booking visible to its booker or to the item owner.
func (s *BookingService) GetBooking(ctx context.Context, callerID, bookingID uuid.UUID) (*BookingDTO, error) {
	if err := requireUser(ctx, s.users, callerID); err != nil {
		return nil, err
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !bk.IsBookedBy(callerID) && !it.IsOwnedBy(callerID) {
		return nil, domain.NewForbiddenError("booking is visible only to its booker and the item owner")
	}

	return s.toBookingDTO(ctx, bk, it)
}

// ListForBooker returns a page of the caller's own bookings in one bucket.
func (s *BookingService) ListForBooker(ctx context.Context, callerID uuid.UUID, state string, from, size int) (*domain.PaginatedResult[BookingDTO], error) {
	filter, page, err := s.listArgs(ctx, callerID, state, from, size)
	if err != nil {
		return nil, err
	}

	bookings, total, err := s.bookings.FindByBooker(ctx, callerID, filter, page)
	if err != nil {
		return nil, err
	}
	return s.toPage(ctx, bookings, total, page)
}

// ListForOwner returns a page of bookings on the caller's items in one bucket.
func (s *BookingService) ListForOwner(ctx context.Context, callerID uuid.UUID, state string, from, size int) (*domain.PaginatedResult[BookingDTO], error) {
	filter, page, err := s.listArgs(ctx, callerID, state, from, size)
	if err != nil {
		return nil, err
	}

	owned, err := s.items.CountByOwnerID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if owned == 0 {
		return nil, domain.NewNotFoundError("Items of user", callerID.String())
	}

	bookings, total, err := s.bookings.FindByItemOwner(ctx, callerID, filter, page)
	if err != nil {
		return nil, err
	}
	return s.toPage(ctx, bookings, total, page)
}

// OwnerStats counts bookings on the caller's items by status.
func (s *BookingService) OwnerStats(ctx context.Context, ownerID uuid.UUID) (*BookingStatsDTO, error) {
	if err := requireUser(ctx, s.users, ownerID); err != nil {
		return nil, err
	}

	counts, err := s.bookings.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats := &BookingStatsDTO{
		Waiting:  counts[bookingDomain.StatusWaiting.String()],
		Approved: counts[bookingDomain.StatusApproved.String()],
		Rejected: counts[bookingDomain.StatusRejected.String()],
	}
	stats.Total = stats.Waiting + stats.Approved + stats.Rejected
	return stats, nil
}

// listArgs resolves the caller, bucket and page shared by both listings.
// The bucket is evaluated against a single instant for the whole request.
func (s *BookingService) listArgs(ctx context.Context, callerID uuid.UUID, state string, from, size int) (bookingDomain.StateFilter, domain.PageRequest, error) {
	if err := requireUser(ctx, s.users, callerID); err != nil {
		return bookingDomain.StateFilter{}, domain.PageRequest{}, err
	}
	st, err := bookingDomain.ParseState(state)
	if err != nil {
		return bookingDomain.StateFilter{}, domain.PageRequest{}, err
	}
	page, err := domain.NewPageRequest(from, size)
	if err != nil {
		return bookingDomain.StateFilter{}, domain.PageRequest{}, err
	}
	return bookingDomain.StateFilter{State: st, Now: s.clock.Now()}, page, nil
}

func (s *BookingService) toPage(ctx context.Context, bookings []*bookingDomain.Booking, total int64, page domain.PageRequest) (*domain.PaginatedResult[BookingDTO], error) {
	dtos, err := s.toBookingDTOs(ctx, bookings)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(dtos, total, page)
	return &result, nil
}

// toBookingDTO leaves the booker name empty when the booker has left the replica.
func (s *BookingService) toBookingDTO(ctx context.Context, bk *bookingDomain.Booking, it *itemDomain.Item) (*BookingDTO, error) {
	bookers, err := s.users.FindByIDs(ctx, []uuid.UUID{bk.BookerID()})
	if err != nil {
		return nil, err
	}
	result := newBookingDTO(bk, userNamesByID(bookers)[bk.BookerID()], it.Name())
	return &result, nil
}

// toBookingDTOs resolves bookers and items for a page in one lookup each.
func (s *BookingService) toBookingDTOs(ctx context.Context, bookings []*bookingDomain.Booking) ([]BookingDTO, error) {
	if len(bookings) == 0 {
		return []BookingDTO{}, nil
	}

	itemIDs := make([]uuid.UUID, 0, len(bookings))
	bookerIDs := make([]uuid.UUID, 0, len(bookings))
	for _, bk := range bookings {
		itemIDs = append(itemIDs, bk.ItemID())
		bookerIDs = append(bookerIDs, bk.BookerID())
	}

	items, err := s.items.FindByIDs(ctx, uniqueIDs(itemIDs))
	if err != nil {
		return nil, err
	}
	users, err := s.users.FindByIDs(ctx, uniqueIDs(bookerIDs))
	if err != nil {
		return nil, err
	}

	itemNames := make(map[uuid.UUID]string, len(items))
	for _, it := range items {
		itemNames[it.ID()] = it.Name()
	}
	userNames := userNamesByID(users)

	dtos := make([]BookingDTO, 0, len(bookings))
	for _, bk := range bookings {
		dtos = append(dtos, newBookingDTO(bk, userNames[bk.BookerID()], itemNames[bk.ItemID()]))
	}
	return dtos, nil
}

func newBookingDTO(bk *bookingDomain.Booking, bookerName, itemName string) BookingDTO {
	return BookingDTO{
		ID:     bk.ID(),
		Start:  bk.Start(),
		End:    bk.End(),
		Status: bk.Status().String(),
		Booker: UserRefDTO{ID: bk.BookerID(), Name: bookerName},
		Item:   ItemRefDTO{ID: bk.ItemID(), Name: itemName},
	}
}

func (s *BookingService) publishBookingEvent(ctx context.Context, eventType string, bk *bookingDomain.Booking, ownerID uuid.UUID) {
	evt := schema.BookingEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.ItemID(),
		BookerID:   bk.BookerID(),
		OwnerID:    ownerID,
		Start:      bk.Start(),
		End:        bk.End(),
		Status:     bk.Status().String(),
		OccurredAt: s.clock.Now(),
	}
	publishEvent(ctx, s.publisher, s.logger, schema.TopicBookingEvents, eventType, bk.ID().String(), evt)
}

// publishEvent wraps data in a CloudEvent and sends it. Failures are logged only.
func publishEvent(ctx context.Context, publisher EventPublisher, logger *zap.Logger, topic, eventType, key string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := publisher.PublishEvent(ctx, topic, key, cloudEvent); err != nil {
		logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func userNamesByID(users []*userDomain.User) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}
