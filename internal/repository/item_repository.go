package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	itemDomain "github.com/shareit-platform/service-booking/internal/domain/item"
	"github.com/shareit-platform/service-booking/internal/platform/database"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
	"gorm.io/gorm"
)

// ItemModel is the GORM model for the items table.
type ItemModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text;not null"`
	Available   bool       `gorm:"not null"`
	RequestID   *uuid.UUID `gorm:"type:uuid;index"`
	Version     int64      `gorm:"not null;default:1"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

func (ItemModel) TableName() string { return "items" }

// GormItemRepository implements ItemRepository using GORM.
type GormItemRepository struct {
	db *gorm.DB
}

func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	var model ItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Item", id.String())
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return toItemDomain(&model), nil
}

// FindByIDs returns the items that exist among ids, in no particular order.
func (r *GormItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*itemDomain.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []ItemModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find items: %w", err)
	}
	return toItemDomains(models), nil
}

func (r *GormItemRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, page domain.PageRequest) ([]*itemDomain.Item, int64, error) {
	total, err := r.CountByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}

	var models []ItemModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at").
		Order("id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find owner items: %w", err)
	}
	return toItemDomains(models), total, nil
}

func (r *GormItemRepository) CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ItemModel{}).Where("owner_id = ?", ownerID).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count owner items: %w", err)
	}
	return total, nil
}

func (r *GormItemRepository) FindByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) ([]*itemDomain.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	var models []ItemModel
	if err := r.db.WithContext(ctx).
		Where("request_id IN ?", requestIDs).
		Order("created_at DESC").
		Order("id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find items by request: %w", err)
	}
	return toItemDomains(models), nil
}

func (r *GormItemRepository) Search(ctx context.Context, text string, page domain.PageRequest) ([]*itemDomain.Item, int64, error) {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(text))) + "%"
	pred := sq.And{
		sq.Eq{"available": true},
		sq.Or{
			sq.Expr(`LOWER(name) LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`LOWER(description) LIKE ? ESCAPE '\'`, pattern),
		},
	}

	countQuery, err := applyPredicates(r.db.WithContext(ctx).Model(&ItemModel{}), pred)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build search query: %w", err)
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	findQuery, err := applyPredicates(r.db.WithContext(ctx), pred)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build search query: %w", err)
	}
	var models []ItemModel
	if err := findQuery.
		Order("created_at").
		Order("id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search items: %w", err)
	}
	return toItemDomains(models), total, nil
}

func (r *GormItemRepository) Save(ctx context.Context, it *itemDomain.Item) error {
	if err := r.db.WithContext(ctx).Create(toItemModel(it)).Error; err != nil {
		if database.IsForeignKeyViolation(err) && it.RequestID() != nil {
			return domain.NewNotFoundError("Item request", it.RequestID().String())
		}
		return fmt.Errorf("failed to save item: %w", err)
	}
	return nil
}

func (r *GormItemRepository) Update(ctx context.Context, it *itemDomain.Item) error {
	model := toItemModel(it)
	previousVersion := it.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"description": model.Description,
			"available":   model.Available,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("item was modified by another transaction")
	}
	return nil
}

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}

func toItemModel(it *itemDomain.Item) *ItemModel {
	return &ItemModel{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		RequestID:   it.RequestID(),
		Version:     it.Version(),
		CreatedAt:   it.CreatedAt(),
		UpdatedAt:   it.UpdatedAt(),
	}
}

func toItemDomain(m *ItemModel) *itemDomain.Item {
	return itemDomain.Reconstruct(
		m.ID, m.OwnerID,
		m.Name, m.Description,
		m.Available,
		m.RequestID,
		m.Version,
		m.CreatedAt.UTC(), m.UpdatedAt.UTC(),
	)
}

func toItemDomains(models []ItemModel) []*itemDomain.Item {
	items := make([]*itemDomain.Item, len(models))
	for i := range models {
		items[i] = toItemDomain(&models[i])
	}
	return items
}
