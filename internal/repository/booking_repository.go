package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	bookingDomain "github.com/shareit-platform/service-booking/internal/domain/booking"
	"github.com/shareit-platform/service-booking/internal/platform/database"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	BookerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	StartAt   time.Time `gorm:"not null;index"`
	EndAt     time.Time `gorm:"not null"`
	Status    string    `gorm:"not null;size:20;index"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByBooker retrieves a page of the booker's bookings in one bucket.
func (r *GormBookingRepository) FindByBooker(ctx context.Context, bookerID uuid.UUID, filter bookingDomain.StateFilter, page domain.PageRequest) ([]*bookingDomain.Booking, int64, error) {
	return r.findPage(ctx, filter, page, sq.Eq{"booker_id": bookerID.String()})
}

// FindByItemOwner retrieves a page of bookings on the owner's items in one bucket.
func (r *GormBookingRepository) FindByItemOwner(ctx context.Context, ownerID uuid.UUID, filter bookingDomain.StateFilter, page domain.PageRequest) ([]*bookingDomain.Booking, int64, error) {
	scope, err := ownedItemsPredicate(ownerID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build owner scope: %w", err)
	}
	return r.findPage(ctx, filter, page, scope)
}

func (r *GormBookingRepository) findPage(ctx context.Context, filter bookingDomain.StateFilter, page domain.PageRequest, scope sq.Sqlizer) ([]*bookingDomain.Booking, int64, error) {
	bucket, err := bucketPredicate(filter)
	if err != nil {
		return nil, 0, err
	}

	countQuery, err := applyPredicates(r.db.WithContext(ctx).Model(&BookingModel{}), scope, bucket)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build booking query: %w", err)
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	findQuery, err := applyPredicates(r.db.WithContext(ctx), scope, bucket)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build booking query: %w", err)
	}
	var models []BookingModel
	if err := findQuery.
		Order("start_at DESC").
		Order("id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// FindApprovedByItemIDs bulk-loads approved bookings for a set of items in one query.
func (r *GormBookingRepository) FindApprovedByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*bookingDomain.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("item_id IN ? AND status = ?", itemIDs, string(bookingDomain.StatusApproved)).
		Order("start_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find approved bookings: %w", err)
	}
	return toDomainBookings(models)
}

// HasCompletedBooking reports whether the user finished an approved booking of the item before now.
func (r *GormBookingRepository) HasCompletedBooking(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("item_id = ? AND booker_id = ? AND status = ? AND end_at < ?",
			itemID, bookerID, string(bookingDomain.StatusApproved), now).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check completed bookings: %w", err)
	}
	return count > 0, nil
}

// CountByStatus returns booking counts on the owner's items grouped by status.
func (r *GormBookingRepository) CountByStatus(ctx context.Context, ownerID uuid.UUID) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	scope, err := ownedItemsPredicate(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to build owner scope: %w", err)
	}
	query, err := applyPredicates(r.db.WithContext(ctx).Model(&BookingModel{}), scope)
	if err != nil {
		return nil, fmt.Errorf("failed to build owner scope: %w", err)
	}

	var results []statusCount
	if err := query.
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if database.IsForeignKeyViolation(err) {
			return domain.NewNotFoundError("Item", bk.ItemID().String())
		}
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	// Only update if the stored version is the one this aggregate was loaded with.
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"start_at":   model.StartAt,
			"end_at":     model.EndAt,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		StartAt:   bk.Start(),
		EndAt:     bk.End(),
		Status:    string(bk.Status()),
		Version:   bk.Version(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.ReconstructBooking(
		m.ID,
		m.ItemID,
		m.BookerID,
		m.StartAt.UTC(),
		m.EndAt.UTC(),
		status,
		m.Version,
		m.CreatedAt.UTC(),
		m.UpdatedAt.UTC(),
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
