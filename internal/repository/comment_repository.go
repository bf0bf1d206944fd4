package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	commentDomain "github.com/shareit-platform/service-booking/internal/domain/comment"
	"github.com/shareit-platform/service-booking/internal/platform/database"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
	"gorm.io/gorm"
)

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (CommentModel) TableName() string { return "comments" }

// GormCommentRepository implements CommentRepository using GORM.
type GormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Save(ctx context.Context, c *commentDomain.Comment) error {
	model := toCommentModel(c)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if database.IsForeignKeyViolation(err) {
			return domain.NewNotFoundError("Item", c.ItemID().String())
		}
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return nil
}

func (r *GormCommentRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*commentDomain.Comment, error) {
	return r.FindByItemIDs(ctx, []uuid.UUID{itemID})
}

// commentRow is a comment joined with its author's replica name.
type commentRow struct {
	CommentModel
	AuthorName string
}

// FindByItemIDs bulk-loads comments for a set of items, newest first.
func (r *GormCommentRepository) FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*commentDomain.Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var rows []commentRow
	if err := r.db.WithContext(ctx).
		Model(&CommentModel{}).
		Select("comments.*, COALESCE(users.name, '') AS author_name").
		Joins("LEFT JOIN users ON users.id = comments.author_id").
		Where("comments.item_id IN ?", itemIDs).
		Order("comments.created_at DESC").
		Order("comments.id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	comments := make([]*commentDomain.Comment, len(rows))
	for i := range rows {
		comments[i] = toCommentDomain(&rows[i].CommentModel, rows[i].AuthorName)
	}
	return comments, nil
}

func toCommentModel(c *commentDomain.Comment) CommentModel {
	return CommentModel{
		ID:        c.ID(),
		ItemID:    c.ItemID(),
		AuthorID:  c.AuthorID(),
		Text:      c.Text(),
		CreatedAt: c.CreatedAt(),
	}
}

func toCommentDomain(m *CommentModel, authorName string) *commentDomain.Comment {
	return commentDomain.Reconstruct(m.ID, m.ItemID, m.AuthorID, authorName, m.Text, m.CreatedAt.UTC())
}
