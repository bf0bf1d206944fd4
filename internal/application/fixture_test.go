package application_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shareit-platform/service-booking/internal/application"
	bookingDomain "github.com/shareit-platform/service-booking/internal/domain/booking"
	commentDomain "github.com/shareit-platform/service-booking/internal/domain/comment"
	itemDomain "github.com/shareit-platform/service-booking/internal/domain/item"
	requestDomain "github.com/shareit-platform/service-booking/internal/domain/request"
	userDomain "github.com/shareit-platform/service-booking/internal/domain/user"
	"github.com/shareit-platform/service-booking/internal/platform/clock"
	"github.com/shareit-platform/service-booking/internal/platform/kafka"
	"github.com/shareit-platform/service-booking/internal/repository"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishEvent(ctx context.Context, topic, key string, event kafka.CloudEvent) error {
	return m.Called(ctx, topic, key, event).Error(0)
}

// eventTypes lists the CloudEvent types published so far, in order.
func (m *mockPublisher) eventTypes() []string {
	var types []string
	for _, call := range m.Calls {
		types = append(types, call.Arguments.Get(3).(kafka.CloudEvent).Type)
	}
	return types
}

type fixture struct {
	db        *gorm.DB
	bookings  bookingDomain.BookingRepository
	items     itemDomain.ItemRepository
	requests  requestDomain.ItemRequestRepository
	comments  commentDomain.CommentRepository
	users     userDomain.UserRepository
	publisher *mockPublisher
	booking   *application.BookingService
	item      *application.ItemService
	request   *application.RequestService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.ItemRequestModel{},
		&repository.ItemModel{},
		&repository.BookingModel{},
		&repository.CommentModel{},
	))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	f := &fixture{
		db:        db,
		bookings:  repository.NewGormBookingRepository(db),
		items:     repository.NewGormItemRepository(db),
		requests:  repository.NewGormItemRequestRepository(db),
		comments:  repository.NewGormCommentRepository(db),
		users:     repository.NewGormUserRepository(db),
		publisher: &mockPublisher{},
	}
	f.publisher.On("PublishEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.rebuild(f.bookings)
	return f
}

// rebuild wires the services against the given booking repository.
func (f *fixture) rebuild(bookings bookingDomain.BookingRepository) {
	clk := clock.Fixed(now)
	f.booking = application.NewBookingService(bookings, f.items, f.users, f.publisher, clk, zap.NewNop())
	f.item = application.NewItemService(f.items, f.requests, bookings, f.comments, f.users, clk, zap.NewNop())
	f.request = application.NewRequestService(f.requests, f.items, f.users, clk, zap.NewNop())
}

func (f *fixture) user(t *testing.T, name string) uuid.UUID {
	t.Helper()
	u := &userDomain.User{ID: uuid.New(), Name: name, Email: name + "@example.com", UpdatedAt: now}
	require.NoError(t, f.users.Upsert(context.Background(), u))
	return u.ID
}

func (f *fixture) itemOf(t *testing.T, ownerID uuid.UUID, name string, available bool) uuid.UUID {
	t.Helper()
	it, err := itemDomain.NewItem(ownerID, name, name+" for rent", &available, nil, now)
	require.NoError(t, err)
	require.NoError(t, f.items.Save(context.Background(), it))
	return it.ID()
}

// bookingOf stores a booking directly, decided when status is not WAITING.
func (f *fixture) bookingOf(t *testing.T, itemID, bookerID uuid.UUID, start, end time.Time, status bookingDomain.BookingStatus) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	bk, err := bookingDomain.NewBooking(itemID, bookerID, start, end, now)
	require.NoError(t, err)
	require.NoError(t, f.bookings.Save(ctx, bk))
	if status != bookingDomain.StatusWaiting {
		require.NoError(t, bk.Decide(status == bookingDomain.StatusApproved, now))
		bk.IncrementVersion()
		require.NoError(t, f.bookings.Update(ctx, bk))
	}
	return bk.ID()
}

func hours(n int) time.Duration {
	return time.Duration(n) * time.Hour
}
