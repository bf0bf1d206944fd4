package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	itemDomain "github.com/shareit-platform/service-booking/internal/domain/item"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormItemRepository_SaveUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()

	available := true
	it, err := itemDomain.NewItem(uuid.New(), "Drill", "Cordless drill", &available, nil, now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, it))

	loaded, err := repo.FindByID(ctx, it.ID())
	require.NoError(t, err)
	unavailable := false
	loaded.Update("Impact drill", "", &unavailable, now.Add(time.Minute))
	require.NoError(t, repo.Update(ctx, loaded))

	// it still carries version 1; its update is rejected.
	it.Update("Stale", "", nil, now.Add(2*time.Minute))
	assert.True(t, domain.IsConflict(repo.Update(ctx, it)))

	reloaded, err := repo.FindByID(ctx, it.ID())
	require.NoError(t, err)
	assert.Equal(t, "Impact drill", reloaded.Name())
	assert.Equal(t, "Cordless drill", reloaded.Description())
	assert.False(t, reloaded.Available())

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, domain.IsNotFound(err))
}

func TestGormItemRepository_Search(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()

	drill := seedItem(t, db, uuid.New(), "Power DRILL", "Cordless", true)
	brush := seedItem(t, db, uuid.New(), "Brush", "for drilling holes? no, paint", true)
	seedItem(t, db, uuid.New(), "Old drill", "Broken", false)
	seedItem(t, db, uuid.New(), "Saw", "100% steel", true)

	got, total, err := repo.Search(ctx, "dRiLl", domain.PageRequest{From: 0, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	gotIDs := []uuid.UUID{got[0].ID(), got[1].ID()}
	assert.ElementsMatch(t, []uuid.UUID{drill.ID, brush.ID}, gotIDs)

	got, _, err = repo.Search(ctx, "0%", domain.PageRequest{From: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Saw", got[0].Name())

	got, _, err = repo.Search(ctx, "_", domain.PageRequest{From: 0, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGormItemRepository_FindByOwnerAndIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	a := seedItem(t, db, owner, "A", "a", true)
	seedItem(t, db, owner, "B", "b", false)
	c := seedItem(t, db, uuid.New(), "C", "c", true)

	items, total, err := repo.FindByOwnerID(ctx, owner, domain.PageRequest{From: 0, Size: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 1)

	count, err := repo.CountByOwnerID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, count)

	byIDs, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, c.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)
}
