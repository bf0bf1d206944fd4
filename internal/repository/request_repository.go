package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	requestDomain "github.com/shareit-platform/service-booking/internal/domain/request"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
	"gorm.io/gorm"
)

// ItemRequestModel is the GORM model for the item_requests table.
type ItemRequestModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index"`
	Description string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (ItemRequestModel) TableName() string { return "item_requests" }

// GormItemRequestRepository implements ItemRequestRepository using GORM.
type GormItemRequestRepository struct {
	db *gorm.DB
}

func NewGormItemRequestRepository(db *gorm.DB) *GormItemRequestRepository {
	return &GormItemRequestRepository{db: db}
}

func (r *GormItemRequestRepository) Save(ctx context.Context, req *requestDomain.ItemRequest) error {
	model := ItemRequestModel{
		ID:          req.ID(),
		RequesterID: req.RequesterID(),
		Description: req.Description(),
		CreatedAt:   req.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save item request: %w", err)
	}
	return nil
}

func (r *GormItemRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*requestDomain.ItemRequest, error) {
	var model ItemRequestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Item request", id.String())
		}
		return nil, fmt.Errorf("failed to find item request: %w", err)
	}
	return toItemRequestDomain(&model), nil
}

func (r *GormItemRequestRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ItemRequestModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check item request: %w", err)
	}
	return count > 0, nil
}

func (r *GormItemRequestRepository) FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]*requestDomain.ItemRequest, error) {
	var models []ItemRequestModel
	if err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Order("id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find own item requests: %w", err)
	}
	return toItemRequestDomains(models), nil
}

func (r *GormItemRequestRepository) FindOthers(ctx context.Context, userID uuid.UUID, page domain.PageRequest) ([]*requestDomain.ItemRequest, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&ItemRequestModel{}).
		Where("requester_id <> ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count item requests: %w", err)
	}

	var models []ItemRequestModel
	if err := r.db.WithContext(ctx).
		Where("requester_id <> ?", userID).
		Order("created_at DESC").
		Order("id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find item requests: %w", err)
	}
	return toItemRequestDomains(models), total, nil
}

func toItemRequestDomain(m *ItemRequestModel) *requestDomain.ItemRequest {
	return requestDomain.Reconstruct(m.ID, m.RequesterID, m.Description, m.CreatedAt.UTC())
}

func toItemRequestDomains(models []ItemRequestModel) []*requestDomain.ItemRequest {
	out := make([]*requestDomain.ItemRequest, len(models))
	for i := range models {
		out[i] = toItemRequestDomain(&models[i])
	}
	return out
}
