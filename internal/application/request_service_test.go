package application_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit-platform/service-booking/internal/application"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
)

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "alice")

	got, err := f.request.CreateRequest(ctx, alice, application.CreateRequestRequest{Description: " Need a ladder "})
	require.NoError(t, err)
	assert.Equal(t, "Need a ladder", got.Description)
	assert.Equal(t, alice, got.RequesterID)
	assert.Equal(t, now, got.Created)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)

	_, err = f.request.CreateRequest(ctx, alice, application.CreateRequestRequest{Description: "  "})
	requireCode(t, err, domain.CodeValidation)

	_, err = f.request.CreateRequest(ctx, uuid.New(), application.CreateRequestRequest{Description: "Tent"})
	requireCode(t, err, domain.CodeNotFound)
}

func TestRequest_AnsweredByItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "alice")
	owner := f.user(t, "owner")

	req, err := f.request.CreateRequest(ctx, alice, application.CreateRequestRequest{Description: "Need a ladder"})
	require.NoError(t, err)

	answer, err := f.item.CreateItem(ctx, owner, application.CreateItemRequest{
		Name:        "Ladder",
		Description: "Aluminium ladder",
		Available:   boolPtr(true),
		RequestID:   &req.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, answer.RequestID)
	assert.Equal(t, req.ID, *answer.RequestID)
	f.itemOf(t, owner, "Drill", true)

	got, err := f.request.GetRequest(ctx, owner, req.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, answer.ID, got.Items[0].ID)
	assert.Equal(t, owner, got.Items[0].OwnerID)
	assert.Equal(t, req.ID, got.Items[0].RequestID)

	own, err := f.request.ListOwn(ctx, alice)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Len(t, own[0].Items, 1)

	_, err = f.request.GetRequest(ctx, owner, uuid.New())
	requireCode(t, err, domain.CodeNotFound)

	_, err = f.request.GetRequest(ctx, uuid.New(), req.ID)
	requireCode(t, err, domain.CodeNotFound)
}

func TestListOthers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	for _, d := range []string{"Tent", "Kayak", "Saw"} {
		_, err := f.request.CreateRequest(ctx, bob, application.CreateRequestRequest{Description: d})
		require.NoError(t, err)
	}
	_, err := f.request.CreateRequest(ctx, alice, application.CreateRequestRequest{Description: "Ladder"})
	require.NoError(t, err)

	page, err := f.request.ListOthers(ctx, alice, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 2)
	for _, r := range page.Items {
		assert.Equal(t, bob, r.RequesterID)
	}

	page, err = f.request.ListOthers(ctx, alice, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	mine, err := f.request.ListOthers(ctx, bob, 0, 10)
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, "Ladder", mine.Items[0].Description)

	_, err = f.request.ListOthers(ctx, alice, 0, 0)
	requireCode(t, err, domain.CodeValidation)

	own, err := f.request.ListOwn(ctx, alice)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "Ladder", own[0].Description)
}
