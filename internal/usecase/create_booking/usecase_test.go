package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	facilityRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/facility"
	templateRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/template"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/userservice"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/pricing"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
	"github.com/m04kA/SMC-FacilityBooking/pkg/txmanager"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeOrderRepo struct {
	created []*domain.Order
	err     error
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, order)
	return order, nil
}

type fakeFacilityRepo struct{}

func (fakeFacilityRepo) GetByID(_ context.Context, id string) (*domain.Facility, error) {
	switch id {
	case "facility-1":
		return &domain.Facility{ID: id, Active: true}, nil
	case "closed":
		return &domain.Facility{ID: id, Active: false}, nil
	default:
		return nil, facilityRepo.ErrFacilityNotFound
	}
}

type fakeTemplateRepo struct{}

func (fakeTemplateRepo) GetByID(_ context.Context, id string) (*domain.Template, error) {
	switch id {
	case "tpl-1":
		return &domain.Template{ID: id, Active: true}, nil
	case "tpl-off":
		return &domain.Template{ID: id, Active: false}, nil
	default:
		return nil, templateRepo.ErrTemplateNotFound
	}
}

type fakeUserClient struct{}

func (fakeUserClient) GetUser(_ context.Context, userID string) (*userservice.User, error) {
	if userID != "user-1" {
		return nil, userservice.ErrUserNotFound
	}
	return &userservice.User{ID: userID, Active: true}, nil
}

type fakePrices struct {
	rules []*domain.PriceRule
}

func (f *fakePrices) Load(_ context.Context, _ string, date time.Time) (*pricing.PriceTable, error) {
	return pricing.NewPriceTable(date, nil, f.rules, 50), nil
}

type fakePublisher struct {
	intents []*domain.NotifyIntent
	err     error
}

func (f *fakePublisher) Publish(_ context.Context, intent *domain.NotifyIntent) error {
	f.intents = append(f.intents, intent)
	return f.err
}

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

type testDeps struct {
	orders    *fakeOrderRepo
	publisher *fakePublisher
	tx        *fakeTxManager
	catalog   *fakeCatalog
	slots     *fakeSlotRepo
}

func newTestUseCase() (*UseCase, *testDeps) {
	deps := &testDeps{
		orders:    &fakeOrderRepo{},
		publisher: &fakePublisher{},
		tx:        &fakeTxManager{},
		catalog:   nightCatalog(),
		slots:     &fakeSlotRepo{},
	}
	log := logger.NewDiscard()
	guard := NewGuard(deps.catalog, deps.slots, testSettings(), log)
	prices := &fakePrices{rules: []*domain.PriceRule{{
		ConditionID: domain.ConditionNormal,
		Window:      domain.TimeWindow{Start: "08:00", End: "12:00"},
		Price:       80,
	}}}

	uc := NewUseCase(deps.orders, fakeFacilityRepo{}, fakeTemplateRepo{}, fakeUserClient{},
		guard, prices, deps.publisher, deps.tx, fixedTime{now: testNow}, log)
	return uc, deps
}

func ptr[T any](v T) *T { return &v }

func TestExecute_DuplicateIntervalsYieldOneSlot(t *testing.T) {
	uc, deps := newTestUseCase()

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     "user-1",
		FacilityID: "facility-1",
		Times: []RequestedInterval{
			interval(tomorrow, "09:00", "09:30"),
			interval(tomorrow, "09:00", "09:30"),
		},
	})

	require.NoError(t, err)
	require.Len(t, resp.Times, 1)
	assert.Equal(t, domain.Money(80), resp.Times[0].Price)
	assert.Equal(t, domain.Money(80), resp.Amount)
	assert.Equal(t, string(domain.StatusNew), resp.Status)
	assert.Equal(t, string(domain.OrderTypeB2C), resp.Type)
	assert.Regexp(t, `^ORD-250310-`, resp.OrderNo)
	require.Len(t, deps.orders.created, 1)
	assert.Len(t, deps.orders.created[0].Slots, 1)
}

func TestExecute_PricesPerSlotAndPublishes(t *testing.T) {
	uc, deps := newTestUseCase()
	msg := "birthday"

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     "user-1",
		FacilityID: "facility-1",
		Times: []RequestedInterval{
			interval(tomorrow, "11:00", "11:30"),
			interval(tomorrow, "12:30", "13:00"),
		},
		Stories: []StoryRequest{{TemplateID: ptr("tpl-1"), Message: &msg, Priority: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.Money(130), resp.Amount)

	order := deps.orders.created[0]
	require.Len(t, order.Stories, 1)
	assert.Equal(t, order.ID, order.Stories[0].OrderID)

	require.Len(t, deps.publisher.intents, 1)
	intent := deps.publisher.intents[0]
	assert.Equal(t, "user-1", intent.RecipientID)
	assert.Equal(t, resp.ID, intent.OrderID)
	assert.Equal(t, domain.StatusNew, intent.NewStatus)
	assert.Equal(t, "order created", intent.Message)
}

func TestExecute_PublishFailureDoesNotFailBooking(t *testing.T) {
	uc, deps := newTestUseCase()
	deps.publisher.err = errors.New("kafka down")

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     "user-1",
		FacilityID: "facility-1",
		Times:      []RequestedInterval{interval(tomorrow, "09:00", "09:30")},
	})
	assert.NoError(t, err)
}

func TestExecute_SixIntervalsFailBeforeConflictCheck(t *testing.T) {
	uc, deps := newTestUseCase()

	times := make([]RequestedInterval, 0, 6)
	for _, start := range []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00"} {
		end, _ := time.Parse("15:04", start)
		times = append(times, interval(tomorrow, start, end.Add(30*time.Minute).Format("15:04")))
	}

	_, err := uc.Execute(context.Background(), &Request{UserID: "user-1", FacilityID: "facility-1", Times: times})
	assert.ErrorIs(t, err, ErrSlotLimitExceeded)
	assert.Zero(t, deps.catalog.calls)
	assert.Zero(t, deps.slots.calls)
	assert.Empty(t, deps.orders.created)
}

func TestExecute_CommitConflictIsTimeConflict(t *testing.T) {
	uc, deps := newTestUseCase()
	deps.tx.err = txmanager.ErrConflict

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     "user-1",
		FacilityID: "facility-1",
		Times:      []RequestedInterval{interval(tomorrow, "09:00", "09:30")},
	})
	assert.ErrorIs(t, err, ErrTimeConflict)
	assert.Empty(t, deps.publisher.intents)
}

func TestExecute_Errors(t *testing.T) {
	valid := []RequestedInterval{interval(tomorrow, "09:00", "09:30")}

	testCases := []struct {
		name        string
		req         *Request
		expectedErr error
	}{
		{
			name:        "missing user",
			req:         &Request{FacilityID: "facility-1", Times: valid},
			expectedErr: ErrInvalidInput,
		},
		{
			name:        "unknown facility",
			req:         &Request{UserID: "user-1", FacilityID: "nope", Times: valid},
			expectedErr: ErrFacilityNotFound,
		},
		{
			name:        "inactive facility",
			req:         &Request{UserID: "user-1", FacilityID: "closed", Times: valid},
			expectedErr: ErrFacilityNotFound,
		},
		{
			name:        "unknown user",
			req:         &Request{UserID: "ghost", FacilityID: "facility-1", Times: valid},
			expectedErr: ErrUserNotFound,
		},
		{
			name: "story without template and message",
			req: &Request{UserID: "user-1", FacilityID: "facility-1", Times: valid,
				Stories: []StoryRequest{{Priority: 1}}},
			expectedErr: ErrInvalidStory,
		},
		{
			name: "unknown template",
			req: &Request{UserID: "user-1", FacilityID: "facility-1", Times: valid,
				Stories: []StoryRequest{{TemplateID: ptr("tpl-x")}}},
			expectedErr: ErrTemplateNotFound,
		},
		{
			name: "inactive template",
			req: &Request{UserID: "user-1", FacilityID: "facility-1", Times: valid,
				Stories: []StoryRequest{{TemplateID: ptr("tpl-off")}}},
			expectedErr: ErrTemplateNotFound,
		},
		{
			name:        "no intervals",
			req:         &Request{UserID: "user-1", FacilityID: "facility-1"},
			expectedErr: ErrInvalidInterval,
		},
		{
			name: "blackout",
			req: &Request{UserID: "user-1", FacilityID: "facility-1",
				Times: []RequestedInterval{interval(tomorrow, "01:00", "01:30")}},
			expectedErr: ErrTimeConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, deps := newTestUseCase()

			_, err := uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Empty(t, deps.orders.created)
		})
	}
}
