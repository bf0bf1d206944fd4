package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	bookingDomain "github.com/shareit-platform/service-booking/internal/domain/booking"
	commentDomain "github.com/shareit-platform/service-booking/internal/domain/comment"
	itemDomain "github.com/shareit-platform/service-booking/internal/domain/item"
	"github.com/shareit-platform/service-booking/internal/metrics"
)

// BookingSummaryDTO is the short form of a booking attached to an item listing.
type BookingSummaryDTO struct {
	ID       uuid.UUID `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Status   string    `json:"status"`
	BookerID uuid.UUID `json:"booker_id"`
}

// CommentDTO is the response representation of a comment.
type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	Created    time.Time `json:"created"`
}

// ItemListingDTO is an item together with its booking hints and comments.
type ItemListingDTO struct {
	ItemDTO
	LastBooking *BookingSummaryDTO `json:"last_booking,omitempty"`
	NextBooking *BookingSummaryDTO `json:"next_booking,omitempty"`
	Comments    []CommentDTO       `json:"comments"`
}

// ListingAggregator attaches approved bookings and comments to a page of items.
// Bookings and comments are each fetched in one query for the whole page.
type ListingAggregator struct {
	bookings bookingDomain.BookingRepository
	comments commentDomain.CommentRepository
}

// NewListingAggregator creates a new ListingAggregator.
func NewListingAggregator(bookings bookingDomain.BookingRepository, comments commentDomain.CommentRepository) *ListingAggregator {
	return &ListingAggregator{bookings: bookings, comments: comments}
}

// Aggregate builds one listing per item in input order. When withBookings is
// false the booking hints are left empty and no bookings are read; callers
// use that for viewers other than the owner.
func (a *ListingAggregator) Aggregate(ctx context.Context, items []*itemDomain.Item, now time.Time, withBookings bool) ([]ItemListingDTO, error) {
	started := time.Now()
	defer func() { metrics.ObserveAggregation(time.Since(started)) }()

	if len(items) == 0 {
		return []ItemListingDTO{}, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID())
	}

	var bookingsByItem map[uuid.UUID][]*bookingDomain.Booking
	if withBookings {
		approved, err := a.bookings.FindApprovedByItemIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		bookingsByItem = bookingDomain.GroupByItem(approved)
	}

	comments, err := a.findComments(ctx, ids)
	if err != nil {
		return nil, err
	}
	commentsByItem := commentDomain.GroupByItem(comments)

	listings := make([]ItemListingDTO, 0, len(items))
	for _, it := range items {
		listing := ItemListingDTO{
			ItemDTO:  toItemDTO(it),
			Comments: toCommentDTOs(commentsByItem[it.ID()]),
		}
		if withBookings {
			last, next := bookingDomain.SelectLastNext(bookingsByItem[it.ID()], now)
			listing.LastBooking = toBookingSummary(last)
			listing.NextBooking = toBookingSummary(next)
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func (a *ListingAggregator) findComments(ctx context.Context, itemIDs []uuid.UUID) ([]*commentDomain.Comment, error) {
	if len(itemIDs) == 1 {
		return a.comments.FindByItemID(ctx, itemIDs[0])
	}
	return a.comments.FindByItemIDs(ctx, itemIDs)
}

func toBookingSummary(bk *bookingDomain.Booking) *BookingSummaryDTO {
	if bk == nil {
		return nil
	}
	return &BookingSummaryDTO{
		ID:       bk.ID(),
		Start:    bk.Start(),
		End:      bk.End(),
		Status:   bk.Status().String(),
		BookerID: bk.BookerID(),
	}
}

func toCommentDTO(c *commentDomain.Comment, authorName string) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		Text:       c.Text(),
		AuthorName: authorName,
		Created:    c.CreatedAt(),
	}
}

func toCommentDTOs(comments []*commentDomain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, toCommentDTO(c, c.AuthorName()))
	}
	return dtos
}
