package request

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemRequest(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	requester := uuid.New()

	r, err := NewItemRequest(requester, "  need a ladder for the weekend ", now)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, r.ID())
	assert.Equal(t, requester, r.RequesterID())
	assert.Equal(t, "need a ladder for the weekend", r.Description())
	assert.Equal(t, now, r.CreatedAt())

	for name, tc := range map[string]struct {
		requester   uuid.UUID
		description string
	}{
		"no requester":      {uuid.Nil, "ladder"},
		"blank description": {requester, "   "},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewItemRequest(tc.requester, tc.description, now)
			code, ok := domain.CodeOf(err)
			require.True(t, ok)
			assert.Equal(t, domain.CodeValidation, code)
		})
	}
}
