package application_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shareit-platform/service-booking/internal/application"
	"github.com/shareit-platform/service-booking/internal/events/schema"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
)

func TestUserService_Replica(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := application.NewUserService(f.users, zap.NewNop())
	id := uuid.New()

	require.NoError(t, svc.ApplyUserChanged(ctx, schema.UserEvent{UserID: id, Name: "Ann", Email: "ann@example.com", OccurredAt: now}))
	require.NoError(t, svc.ApplyUserChanged(ctx, schema.UserEvent{UserID: id, Name: "Ann Lee", Email: "ann@example.com", OccurredAt: now.Add(hours(1))}))
	// Out-of-order delivery of an older snapshot is ignored.
	require.NoError(t, svc.ApplyUserChanged(ctx, schema.UserEvent{UserID: id, Name: "Stale", Email: "ann@example.com", OccurredAt: now}))

	u, err := f.users.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", u.Name)

	require.NoError(t, svc.ApplyUserDeleted(ctx, schema.UserEvent{UserID: id}))
	exists, err := f.users.Exists(ctx, id)
	require.NoError(t, err)
	assert.False(t, exists)

	err = svc.ApplyUserChanged(ctx, schema.UserEvent{Name: "Nobody"})
	requireCode(t, err, domain.CodeValidation)
}
