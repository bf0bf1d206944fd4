package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestDB opens an isolated in-memory SQLite database with the service schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&UserModel{}, &ItemRequestModel{}, &ItemModel{}, &BookingModel{}, &CommentModel{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedItem(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name, description string, available bool) ItemModel {
	t.Helper()
	m := ItemModel{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Available:   available,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func seedBooking(t *testing.T, db *gorm.DB, itemID, bookerID uuid.UUID, start, end time.Time, status string) BookingModel {
	t.Helper()
	m := BookingModel{
		ID:        uuid.New(),
		ItemID:    itemID,
		BookerID:  bookerID,
		StartAt:   start,
		EndAt:     end,
		Status:    status,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}
