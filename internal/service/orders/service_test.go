package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	orderRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/order"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/orders/models"
)

var testNow = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

type fakeOrderRepo struct {
	orders      map[string]*domain.Order
	updated     []domain.OrderStatus
	deactivated map[string]*domain.OrderStatus
	err         error
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus, comment *string, _ time.Time) error {
	f.updated = append(f.updated, status)
	f.orders[id].Status = status
	return nil
}

func (f *fakeOrderRepo) Deactivate(_ context.Context, id string, status *domain.OrderStatus, _ time.Time) error {
	if f.deactivated == nil {
		f.deactivated = make(map[string]*domain.OrderStatus)
	}
	f.deactivated[id] = status
	return nil
}

type fakeSlotRepo struct {
	released []string
}

func (f *fakeSlotRepo) DeactivateByOrder(_ context.Context, orderID string) (int64, error) {
	f.released = append(f.released, orderID)
	return 2, nil
}

type fakePublisher struct {
	intents []*domain.NotifyIntent
	err     error
}

func (f *fakePublisher) Publish(_ context.Context, intent *domain.NotifyIntent) error {
	f.intents = append(f.intents, intent)
	return f.err
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixedTime struct{}

func (fixedTime) Now() time.Time { return testNow }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(orders ...*domain.Order) (*Service, *fakeOrderRepo, *fakeSlotRepo, *fakePublisher) {
	repo := &fakeOrderRepo{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	slots := &fakeSlotRepo{}
	pub := &fakePublisher{}
	return NewService(repo, slots, pub, fakeTx{}, fixedTime{}, nopLogger{}), repo, slots, pub
}

func newOrder(id string, status domain.OrderStatus, typ domain.OrderType) *domain.Order {
	return &domain.Order{
		ID:        id,
		OrderNo:   "ORD-250310-ABCDEF",
		CreatedBy: "user-1",
		Amount:    100,
		Status:    status,
		Type:      typ,
		Active:    true,
		Slots: []domain.Slot{
			{Date: testNow, Window: domain.TimeWindow{Start: "16:00", End: "16:30"}, UnitPrice: 50, Active: true},
			{Date: testNow, Window: domain.TimeWindow{Start: "16:30", End: "17:00"}, UnitPrice: 50, Active: true},
		},
	}
}

func TestService_GetByID(t *testing.T) {
	svc, _, _, _ := newTestService(
		newOrder("o1", domain.StatusNew, domain.OrderTypeB2C),
		newOrder("o2", domain.StatusNew, domain.OrderTypeB2B),
	)

	resp, err := svc.GetByID(context.Background(), "o1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "100", resp.Amount)
	require.Len(t, resp.Times, 2)
	assert.Equal(t, "2025-03-10", resp.Times[0].Date)
	assert.Equal(t, "16:00", resp.Times[0].StartTime)

	_, err = svc.GetByID(context.Background(), "o1", "user-2")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.GetByID(context.Background(), "o2", "user-1")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.GetByID(context.Background(), "missing", "user-1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestService_GetByID_RepositoryError(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.err = errors.New("db down")

	_, err := svc.GetByID(context.Background(), "o1", "user-1")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_UpdateStatus(t *testing.T) {
	svc, repo, _, pub := newTestService(newOrder("o1", domain.StatusNew, domain.OrderTypeB2C))
	comment := "paid by card"

	resp, err := svc.UpdateStatus(context.Background(), "o1", &models.UpdateStatusRequest{
		UserID: "reviewer", Status: "paid", Comment: &comment,
	})

	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.Status)
	assert.Equal(t, []domain.OrderStatus{domain.StatusPaid}, repo.updated)
	require.Len(t, pub.intents, 1)
	assert.Equal(t, "user-1", pub.intents[0].RecipientID)
	assert.Equal(t, "order paid, awaiting review", pub.intents[0].Message)
}

func TestService_UpdateStatus_Errors(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		status  string
		wantErr error
	}{
		{"unknown status", "o1", "DONE", ErrInvalidInput},
		{"back to new", "o1", "NEW", ErrInvalidTransition},
		{"approve unpaid", "o1", "APPROVED", ErrInvalidTransition},
		{"missing order", "missing", "PAID", ErrOrderNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, pub := newTestService(newOrder("o1", domain.StatusNew, domain.OrderTypeB2C))

			_, err := svc.UpdateStatus(context.Background(), tt.id, &models.UpdateStatusRequest{Status: tt.status})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.updated)
			assert.Empty(t, pub.intents)
		})
	}
}

func TestService_UpdateStatus_B2BNotNotified(t *testing.T) {
	svc, _, _, pub := newTestService(newOrder("o1", domain.StatusPaid, domain.OrderTypeB2B))

	_, err := svc.UpdateStatus(context.Background(), "o1", &models.UpdateStatusRequest{Status: "APPROVED"})

	require.NoError(t, err)
	assert.Empty(t, pub.intents)
}

func TestService_UpdateStatus_PublishFailureIsNotFatal(t *testing.T) {
	svc, _, _, pub := newTestService(newOrder("o1", domain.StatusPaid, domain.OrderTypeB2C))
	pub.err = errors.New("broker down")

	resp, err := svc.UpdateStatus(context.Background(), "o1", &models.UpdateStatusRequest{Status: "REJECTED"})

	require.NoError(t, err)
	assert.Equal(t, "REJECTED", resp.Status)
}

func TestService_Delete(t *testing.T) {
	t.Run("new order is cancelled", func(t *testing.T) {
		svc, repo, slots, pub := newTestService(newOrder("o1", domain.StatusNew, domain.OrderTypeB2C))

		require.NoError(t, svc.Delete(context.Background(), "o1", "user-1"))

		require.Contains(t, repo.deactivated, "o1")
		require.NotNil(t, repo.deactivated["o1"])
		assert.Equal(t, domain.StatusCancelled, *repo.deactivated["o1"])
		assert.Equal(t, []string{"o1"}, slots.released)
		require.Len(t, pub.intents, 1)
		assert.Equal(t, domain.StatusCancelled, pub.intents[0].NewStatus)
	})

	t.Run("paid order keeps its status", func(t *testing.T) {
		svc, repo, slots, pub := newTestService(newOrder("o1", domain.StatusPaid, domain.OrderTypeB2C))

		require.NoError(t, svc.Delete(context.Background(), "o1", "user-1"))

		assert.Nil(t, repo.deactivated["o1"])
		assert.Equal(t, []string{"o1"}, slots.released)
		assert.Empty(t, pub.intents)
	})

	t.Run("foreign order", func(t *testing.T) {
		svc, repo, slots, _ := newTestService(newOrder("o1", domain.StatusNew, domain.OrderTypeB2C))

		err := svc.Delete(context.Background(), "o1", "user-2")

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, repo.deactivated)
		assert.Empty(t, slots.released)
	})
}
