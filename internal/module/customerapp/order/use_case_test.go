package order

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crave-catering/cc-order/internal/module/customerapp/payment"
	"github.com/crave-catering/cc-order/internal/module/customerapp/promotion"
	"github.com/crave-catering/cc-order/internal/pkg/session"
	"github.com/crave-catering/cc-order/pkg/errors"
	"github.com/crave-catering/cc-order/pkg/gctasks"
	"github.com/crave-catering/cc-order/pkg/status"
)

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(*sql.Tx)
	return tx, args.Error(1)
}

func (m *mockOrderRepository) CommitTx(ctx context.Context, tx *sql.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *mockOrderRepository) Rollback(ctx context.Context, tx *sql.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *mockOrderRepository) Save(ctx context.Context, o Order, tx *sql.Tx) error {
	return m.Called(ctx, o, tx).Error(0)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, ID string, tx *sql.Tx) (Order, error) {
	args := m.Called(ctx, ID, tx)
	return args.Get(0).(Order), args.Error(1)
}

func (m *mockOrderRepository) FindByTransactionID(ctx context.Context, transactionID string, tx *sql.Tx) (Order, error) {
	args := m.Called(ctx, transactionID, tx)
	return args.Get(0).(Order), args.Error(1)
}

func (m *mockOrderRepository) FindManyByCustomerID(ctx context.Context, customerID int64, offset, limit int64, tx *sql.Tx) ([]Order, error) {
	args := m.Called(ctx, customerID, offset, limit, tx)
	orders, _ := args.Get(0).([]Order)
	return orders, args.Error(1)
}

func (m *mockOrderRepository) CountByCustomerID(ctx context.Context, customerID int64, tx *sql.Tx) (int64, error) {
	args := m.Called(ctx, customerID, tx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepository) Update(ctx context.Context, ID string, o Order, tx *sql.Tx) error {
	return m.Called(ctx, ID, o, tx).Error(0)
}

type mockLunchSelectionRepository struct {
	mock.Mock
}

func (m *mockLunchSelectionRepository) Upsert(ctx context.Context, selection LunchSelection, tx *sql.Tx) error {
	return m.Called(ctx, selection, tx).Error(0)
}

func (m *mockLunchSelectionRepository) FindManyByOrderID(ctx context.Context, orderID string, tx *sql.Tx) ([]LunchSelection, error) {
	args := m.Called(ctx, orderID, tx)
	selections, _ := args.Get(0).([]LunchSelection)
	return selections, args.Error(1)
}

type mockPromotionRepository struct {
	mock.Mock
}

func (m *mockPromotionRepository) FindByCode(ctx context.Context, code string, tx *sql.Tx) (promotion.Promotion, error) {
	args := m.Called(ctx, code, tx)
	return args.Get(0).(promotion.Promotion), args.Error(1)
}

func (m *mockPromotionRepository) IncrementUsage(ctx context.Context, ID int64, tx *sql.Tx) error {
	return m.Called(ctx, ID, tx).Error(0)
}

type mockPaymentRepository struct {
	mock.Mock
}

func (m *mockPaymentRepository) Charge(ctx context.Context, req payment.ChargeRequest) (payment.ChargeResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(payment.ChargeResponse), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic, key string, headers map[string]string, message []byte) error {
	return m.Called(ctx, topic, key, headers, message).Error(0)
}

func (m *mockPublisher) Close() {
	m.Called()
}

type mockCloudTask struct {
	mock.Mock
}

func (m *mockCloudTask) CreateQueue(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockCloudTask) CreateTask(queueID string, request gctasks.Request) error {
	return m.Called(queueID, request).Error(0)
}

func (m *mockCloudTask) DeferCreateTaskInDuration(queueID string, request gctasks.Request, duration time.Duration) error {
	return m.Called(queueID, request, duration).Error(0)
}

func (m *mockCloudTask) DeferCreateTaskInTime(queueID string, request gctasks.Request, schedule time.Time) error {
	return m.Called(queueID, request, schedule).Error(0)
}

func (m *mockCloudTask) Close() error {
	return m.Called().Error(0)
}

type useCaseMocks struct {
	orderRepo     *mockOrderRepository
	selectionRepo *mockLunchSelectionRepository
	promoRepo     *mockPromotionRepository
	paymentRepo   *mockPaymentRepository
	publisher     *mockPublisher
	cloudTask     *mockCloudTask
}

func newUseCase() (OrderUseCase, *useCaseMocks) {
	m := &useCaseMocks{
		orderRepo:     &mockOrderRepository{},
		selectionRepo: &mockLunchSelectionRepository{},
		promoRepo:     &mockPromotionRepository{},
		paymentRepo:   &mockPaymentRepository{},
		publisher:     &mockPublisher{},
		cloudTask:     &mockCloudTask{},
	}

	u := NewOrderUseCase(OrderUseCaseProperty{
		Logger:                   logrus.New(),
		Timeout:                  5 * time.Second,
		BaseURL:                  "https://order.cravecatering.example",
		OrderExpireDuration:      24 * time.Hour,
		OrderRepository:          m.orderRepo,
		LunchSelectionRepository: m.selectionRepo,
		PromotionRepository:      m.promoRepo,
		PaymentRepository:        m.paymentRepo,
		Publisher:                m.publisher,
		CloudTask:                m.cloudTask,
	})

	return u, m
}

func customerCtx(accountID int64) context.Context {
	return session.SetAccountToCtx(context.Background(), session.Account{
		ID:    accountID,
		Name:  "Dana Reyes",
		Email: "dana@example.com",
		Type:  session.TypeCustomer,
	})
}

func ownedOrder(accountID int64, s Status) Order {
	return Order{
		ID:            "CO1756700000000123",
		CustomerID:    &accountID,
		CustomerName:  "Dana Reyes",
		CustomerEmail: "dana@example.com",
		CustomerPhone: "555-0100",
		Status:        s,
		EventName:     "Quarterly Planning",
		EventDate:     "2026-10-01",
		EventTime:     "09:00",
		Headcount:     12,
		Breakfast:     nil,
		Subtotal:      395.40,
		Tax:           32.62,
		DeliveryFee:   25.00,
		Total:         453.02,
	}
}

func TestCreateOrderComputesTotals(t *testing.T) {
	u, m := newUseCase()

	var saved Order
	m.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("Order"), (*sql.Tx)(nil)).
		Run(func(args mock.Arguments) { saved = args.Get(1).(Order) }).
		Return(nil)

	resp, err := u.CreateOrder(customerCtx(77), CreateOrderRequest{
		EventName:    "Quarterly Planning",
		EventDate:    "2026-10-01",
		EventTime:    "09:00",
		Headcount:    12,
		ContactName:  "Dana Reyes",
		ContactEmail: "dana@example.com",
		ContactPhone: "555-0100",
		Breakfast:    &BreakfastSelectionRequest{PackageType: "hot", Headcount: 12},
	})

	require.NoError(t, err)
	assert.Equal(t, string(StatusDraft), resp.Status)
	assert.Equal(t, 395.40, resp.Subtotal)
	assert.Equal(t, 32.62, resp.Tax)
	assert.Equal(t, 25.00, resp.DeliveryFee)
	assert.Equal(t, 453.02, resp.Total)

	require.NotNil(t, saved.CustomerID)
	assert.Equal(t, int64(77), *saved.CustomerID)
	assert.NotEmpty(t, saved.ID)
}

func TestCreateOrderWithoutSessionFails(t *testing.T) {
	u, _ := newUseCase()

	_, err := u.CreateOrder(context.Background(), CreateOrderRequest{})
	assert.Error(t, err)
}

func TestCreateGuestOrderHasNoOwner(t *testing.T) {
	u, m := newUseCase()

	var saved Order
	m.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("Order"), (*sql.Tx)(nil)).
		Run(func(args mock.Arguments) { saved = args.Get(1).(Order) }).
		Return(nil)

	_, err := u.CreateGuestOrder(context.Background(), CreateOrderRequest{
		EventName:    "Offsite",
		EventDate:    "2026-11-15",
		EventTime:    "12:00",
		Headcount:    15,
		ContactName:  "Sam Ko",
		ContactEmail: "sam@example.com",
		ContactPhone: "555-0200",
	})

	require.NoError(t, err)
	assert.Nil(t, saved.CustomerID)
}

func TestGetOrderMasksForeignOrder(t *testing.T) {
	u, m := newUseCase()

	o := ownedOrder(99, StatusDraft)
	m.orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)

	_, err := u.GetOrder(customerCtx(77), o.ID)

	require.Error(t, err)
	ae := errors.Destruct(err)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatusCode)
	assert.Equal(t, status.NOT_FOUND, ae.Status)
}

func TestUpdateOrderRejectedOnceConfirmed(t *testing.T) {
	u, m := newUseCase()

	o := ownedOrder(77, StatusConfirmed)
	m.orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)

	_, err := u.UpdateOrder(customerCtx(77), o.ID, UpdateOrderRequest{
		EventName:    "Quarterly Planning",
		EventDate:    "2026-10-01",
		EventTime:    "09:00",
		Headcount:    12,
		ContactName:  "Dana Reyes",
		ContactEmail: "dana@example.com",
		ContactPhone: "555-0100",
	})

	require.Error(t, err)
	ae := errors.Destruct(err)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatusCode)
	assert.Equal(t, status.ORDER_CANNOT_MODIFY, ae.Status)
	m.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderRecomputesTotals(t *testing.T) {
	u, m := newUseCase()

	o := ownedOrder(77, StatusDraft)
	m.orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)
	m.selectionRepo.On("FindManyByOrderID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return([]LunchSelection{
		{AttendeeEmail: "a@example.com"},
		{AttendeeEmail: "b@example.com"},
	}, nil)
	m.orderRepo.On("Update", mock.Anything, o.ID, mock.AnythingOfType("Order"), (*sql.Tx)(nil)).Return(nil)

	resp, err := u.UpdateOrder(customerCtx(77), o.ID, UpdateOrderRequest{
		EventName:    "Quarterly Planning",
		EventDate:    "2026-10-01",
		EventTime:    "09:00",
		Headcount:    12,
		ContactName:  "Dana Reyes",
		ContactEmail: "dana@example.com",
		ContactPhone: "555-0100",
		Breakfast:    &BreakfastSelectionRequest{PackageType: "hot", Headcount: 12},
	})

	require.NoError(t, err)
	// 12 hot breakfasts plus 2 lunches: 395.40 + 49.90 = 445.30 subtotal
	assert.Equal(t, 445.30, resp.Subtotal)
	assert.Equal(t, 36.74, resp.Tax)
	assert.Equal(t, 507.04, resp.Total)
}

func TestCancelOrderByStatus(t *testing.T) {
	tests := []struct {
		current Status
		allowed bool
	}{
		{current: StatusDraft, allowed: true},
		{current: StatusPendingPayment, allowed: true},
		{current: StatusConfirmed, allowed: true},
		{current: StatusPreparing, allowed: false},
		{current: StatusOutForDelivery, allowed: false},
		{current: StatusDelivered, allowed: false},
		{current: StatusCancelled, allowed: false},
	}

	for _, tc := range tests {
		t.Run(string(tc.current), func(t *testing.T) {
			u, m := newUseCase()

			o := ownedOrder(77, tc.current)
			m.orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)

			if tc.allowed {
				m.orderRepo.On("Update", mock.Anything, o.ID, mock.AnythingOfType("Order"), (*sql.Tx)(nil)).Return(nil)
				m.publisher.On("Publish", mock.Anything, "order-cancelled", o.ID, mock.Anything, mock.Anything).Return(nil)
			}

			resp, err := u.CancelOrder(customerCtx(77), o.ID)

			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, string(StatusCancelled), resp.Status)
			} else {
				require.Error(t, err)
				ae := errors.Destruct(err)
				assert.Equal(t, http.StatusConflict, ae.HTTPStatusCode)
				assert.Equal(t, status.ORDER_INVALID_STATUS, ae.Status)
			}
		})
	}
}

func TestCheckoutChargesAndSchedulesExpiry(t *testing.T) {
	u, m := newUseCase()

	o := ownedOrder(77, StatusDraft)
	m.orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)
	m.paymentRepo.On("Charge", mock.Anything, payment.ChargeRequest{
		OrderID:       o.ID,
		Amount:        o.Total,
		Currency:      "USD",
		CustomerEmail: o.CustomerEmail,
	}).Return(payment.ChargeResponse{
		TransactionID:     "trx-001",
		TransactionStatus: payment.TransactionStatusPending,
		PaymentURL:        "https://pay.example/trx-001",
	}, nil)
	m.orderRepo.On("Update", mock.Anything, o.ID, mock.AnythingOfType("Order"), (*sql.Tx)(nil)).Return(nil)
	m.publisher.On("Publish", mock.Anything, "order-checkout", o.ID, mock.Anything, mock.Anything).Return(nil)
	m.cloudTask.On("DeferCreateTaskInDuration", "expire-order", mock.AnythingOfType("gctasks.Request"), 24*time.Hour).Return(nil)

	resp, err := u.Checkout(customerCtx(77), o.ID)

	require.NoError(t, err)
	assert.Equal(t, string(StatusPendingPayment), resp.Status)
	m.cloudTask.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

func TestCheckoutRejectedWhenNotDraft(t *testing.T) {
	u, m := newUseCase()

	o := ownedOrder(77, StatusConfirmed)
	m.orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)

	_, err := u.Checkout(customerCtx(77), o.ID)

	require.Error(t, err)
	ae := errors.Destruct(err)
	assert.Equal(t, status.ORDER_INVALID_STATUS, ae.Status)
	m.paymentRepo.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
}

func TestOnPaymentNotificationConfirmsOrder(t *testing.T) {
	u, m := newUseCase()

	code := "WELCOME10"
	o := ownedOrder(77, StatusPendingPayment)
	o.PromotionCode = &code

	m.orderRepo.On("BeginTx", mock.Anything).Return((*sql.Tx)(nil), nil)
	m.orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)
	m.orderRepo.On("Update", mock.Anything, o.ID, mock.AnythingOfType("Order"), (*sql.Tx)(nil)).Return(nil)
	m.promoRepo.On("FindByCode", mock.Anything, code, (*sql.Tx)(nil)).Return(promotion.Promotion{ID: 5, Code: code}, nil)
	m.promoRepo.On("IncrementUsage", mock.Anything, int64(5), (*sql.Tx)(nil)).Return(nil)
	m.orderRepo.On("CommitTx", mock.Anything, (*sql.Tx)(nil)).Return(nil)
	m.publisher.On("Publish", mock.Anything, "order-confirmed", o.ID, mock.Anything, mock.Anything).Return(nil)

	err := u.OnPaymentNotification(context.Background(), PaymentNotificationEvent{
		TransactionID:     "trx-001",
		TransactionStatus: payment.TransactionStatusSettlement,
		OrderID:           o.ID,
	})

	require.NoError(t, err)
	m.promoRepo.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

func TestOnPaymentNotificationResolvesByTransactionID(t *testing.T) {
	u, m := newUseCase()

	trxID := "trx-002"
	o := ownedOrder(77, StatusPendingPayment)
	o.TransactionID = &trxID

	m.orderRepo.On("BeginTx", mock.Anything).Return((*sql.Tx)(nil), nil)
	m.orderRepo.On("FindByTransactionID", mock.Anything, trxID, (*sql.Tx)(nil)).Return(o, nil)
	m.orderRepo.On("Update", mock.Anything, o.ID, mock.AnythingOfType("Order"), (*sql.Tx)(nil)).Return(nil)
	m.orderRepo.On("CommitTx", mock.Anything, (*sql.Tx)(nil)).Return(nil)
	m.publisher.On("Publish", mock.Anything, "order-confirmed", o.ID, mock.Anything, mock.Anything).Return(nil)

	err := u.OnPaymentNotification(context.Background(), PaymentNotificationEvent{
		TransactionID:     trxID,
		TransactionStatus: payment.TransactionStatusSettlement,
	})

	require.NoError(t, err)
	m.orderRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
	m.orderRepo.AssertExpectations(t)
}

func TestOnPaymentNotificationIgnoresNonSettlement(t *testing.T) {
	u, m := newUseCase()

	err := u.OnPaymentNotification(context.Background(), PaymentNotificationEvent{
		TransactionID:     "trx-001",
		TransactionStatus: payment.TransactionStatusFailed,
		OrderID:           "CO1",
	})

	require.NoError(t, err)
	m.orderRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestOnExpireOrderCancelsPendingPayment(t *testing.T) {
	u, m := newUseCase()

	o := ownedOrder(77, StatusPendingPayment)
	m.orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)
	m.orderRepo.On("Update", mock.Anything, o.ID, mock.AnythingOfType("Order"), (*sql.Tx)(nil)).Return(nil)
	m.publisher.On("Publish", mock.Anything, "order-cancelled", o.ID, mock.Anything, mock.Anything).Return(nil)

	err := u.OnExpireOrder(context.Background(), ExpireOrderEvent{ID: o.ID})

	require.NoError(t, err)
	m.orderRepo.AssertExpectations(t)
}

func TestOnExpireOrderLeavesConfirmedAlone(t *testing.T) {
	u, m := newUseCase()

	o := ownedOrder(77, StatusConfirmed)
	m.orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)

	err := u.OnExpireOrder(context.Background(), ExpireOrderEvent{ID: o.ID})

	require.NoError(t, err)
	m.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateShareLinkIssuesSingleToken(t *testing.T) {
	u, m := newUseCase()

	old := "previously-issued"
	o := ownedOrder(77, StatusConfirmed)
	o.ShareToken = &old

	var updated Order
	m.orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)
	m.orderRepo.On("Update", mock.Anything, o.ID, mock.AnythingOfType("Order"), (*sql.Tx)(nil)).
		Run(func(args mock.Arguments) { updated = args.Get(2).(Order) }).
		Return(nil)

	resp, err := u.GenerateShareLink(customerCtx(77), o.ID)

	require.NoError(t, err)
	require.NotNil(t, updated.ShareToken)
	assert.NotEqual(t, old, *updated.ShareToken)
	assert.Len(t, *updated.ShareToken, 64)
	assert.Contains(t, resp.URL, fmt.Sprintf("/orders/%s/lunch?token=%s", o.ID, *updated.ShareToken))
	assert.WithinDuration(t, time.Now().Add(ShareTokenTTL), resp.ExpiresAt, 5*time.Second)
}

func TestGenerateShareLinkRejectedOutForDelivery(t *testing.T) {
	u, m := newUseCase()

	o := ownedOrder(77, StatusOutForDelivery)
	m.orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)

	_, err := u.GenerateShareLink(customerCtx(77), o.ID)

	require.Error(t, err)
	ae := errors.Destruct(err)
	assert.Equal(t, status.ORDER_INVALID_STATUS, ae.Status)
}

func TestRevokeShareLinkClearsToken(t *testing.T) {
	u, m := newUseCase()

	token := "tok"
	expiry := time.Now().Add(time.Hour)
	o := ownedOrder(77, StatusConfirmed)
	o.ShareToken = &token
	o.ShareTokenExpiresAt = &expiry

	var updated Order
	m.orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)
	m.orderRepo.On("Update", mock.Anything, o.ID, mock.AnythingOfType("Order"), (*sql.Tx)(nil)).
		Run(func(args mock.Arguments) { updated = args.Get(2).(Order) }).
		Return(nil)

	err := u.RevokeShareLink(customerCtx(77), o.ID)

	require.NoError(t, err)
	assert.Nil(t, updated.ShareToken)
	assert.Nil(t, updated.ShareTokenExpiresAt)
}

func TestGetSharedOrderTokenChecks(t *testing.T) {
	token := "valid-token"

	tests := []struct {
		name      string
		expiresIn time.Duration
		supplied  string
		found     bool
	}{
		{name: "valid_token", expiresIn: time.Hour, supplied: token, found: true},
		{name: "wrong_token", expiresIn: time.Hour, supplied: "other", found: false},
		{name: "expired_token", expiresIn: -time.Second, supplied: token, found: false},
		{name: "empty_token", expiresIn: time.Hour, supplied: "", found: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, m := newUseCase()

			expiry := time.Now().Add(tc.expiresIn)
			o := ownedOrder(77, StatusConfirmed)
			o.ShareToken = &token
			o.ShareTokenExpiresAt = &expiry

			m.orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)
			if tc.found {
				m.selectionRepo.On("FindManyByOrderID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return([]LunchSelection{}, nil)
			}

			resp, err := u.GetSharedOrder(context.Background(), o.ID, tc.supplied)

			if tc.found {
				require.NoError(t, err)
				assert.Equal(t, o.ID, resp.ID)
			} else {
				require.Error(t, err)
				ae := errors.Destruct(err)
				assert.Equal(t, http.StatusNotFound, ae.HTTPStatusCode)
			}
		})
	}
}

func TestSubmitLunchSelectionRecomputesWhileMutable(t *testing.T) {
	u, m := newUseCase()

	token := "valid-token"
	expiry := time.Now().Add(time.Hour)
	o := ownedOrder(77, StatusDraft)
	o.ShareToken = &token
	o.ShareTokenExpiresAt = &expiry

	m.orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)
	m.orderRepo.On("BeginTx", mock.Anything).Return((*sql.Tx)(nil), nil)
	m.selectionRepo.On("Upsert", mock.Anything, mock.AnythingOfType("LunchSelection"), (*sql.Tx)(nil)).Return(nil)
	m.selectionRepo.On("FindManyByOrderID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return([]LunchSelection{
		{AttendeeEmail: "a@example.com"},
	}, nil)

	var updated Order
	m.orderRepo.On("Update", mock.Anything, o.ID, mock.AnythingOfType("Order"), (*sql.Tx)(nil)).
		Run(func(args mock.Arguments) { updated = args.Get(2).(Order) }).
		Return(nil)
	m.orderRepo.On("CommitTx", mock.Anything, (*sql.Tx)(nil)).Return(nil)

	err := u.SubmitLunchSelection(context.Background(), o.ID, token, SubmitLunchSelectionRequest{
		AttendeeName:  "Alex P",
		AttendeeEmail: "a@example.com",
		Entree:        "grilled chicken",
	})

	require.NoError(t, err)
	// one lunch on top of the stored order: 395.40 + 24.95 = 420.35 subtotal
	assert.Equal(t, 420.35, updated.Subtotal)
	assert.Equal(t, 480.03, updated.Total)
}

func TestSubmitLunchSelectionRejectedWhenTerminal(t *testing.T) {
	u, m := newUseCase()

	token := "valid-token"
	expiry := time.Now().Add(time.Hour)
	o := ownedOrder(77, StatusCancelled)
	o.ShareToken = &token
	o.ShareTokenExpiresAt = &expiry

	m.orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)

	err := u.SubmitLunchSelection(context.Background(), o.ID, token, SubmitLunchSelectionRequest{
		AttendeeName:  "Alex P",
		AttendeeEmail: "a@example.com",
		Entree:        "grilled chicken",
	})

	require.Error(t, err)
	ae := errors.Destruct(err)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatusCode)
	m.selectionRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitLunchSelectionConfirmedOrderSkipsRecompute(t *testing.T) {
	u, m := newUseCase()

	o := ownedOrder(77, StatusConfirmed)
	m.orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)
	m.orderRepo.On("BeginTx", mock.Anything).Return((*sql.Tx)(nil), nil)
	m.selectionRepo.On("Upsert", mock.Anything, mock.AnythingOfType("LunchSelection"), (*sql.Tx)(nil)).Return(nil)
	m.orderRepo.On("CommitTx", mock.Anything, (*sql.Tx)(nil)).Return(nil)

	err := u.SubmitLunchSelection(customerCtx(77), o.ID, "", SubmitLunchSelectionRequest{
		AttendeeName:  "Alex P",
		AttendeeEmail: "a@example.com",
		Entree:        "grilled chicken",
	})

	// confirmed orders still accept selections but the money stays frozen
	require.NoError(t, err)
	m.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPreviewPriceWithPromotion(t *testing.T) {
	u, m := newUseCase()

	m.promoRepo.On("FindByCode", mock.Anything, "TEN", (*sql.Tx)(nil)).Return(promotion.Promotion{
		ID:         1,
		Code:       "TEN",
		Type:       promotion.TypePercentage,
		Value:      10,
		Status:     promotion.StatusActive,
		ValidFrom:  time.Now().Add(-time.Hour),
		ValidUntil: time.Now().Add(time.Hour),
	}, nil)

	quote, err := u.PreviewPrice(context.Background(), PricePreviewRequest{
		Headcount:     12,
		LunchCount:    12,
		Breakfast:     &BreakfastSelectionRequest{PackageType: "hot", Headcount: 12},
		PromotionCode: "TEN",
	})

	require.NoError(t, err)
	assert.Equal(t, 694.80, quote.Subtotal)
	assert.Equal(t, 69.48, quote.Discount)
	assert.Equal(t, 51.59, quote.Tax)
	assert.Equal(t, 701.91, quote.Total)
}

func TestPreviewPriceCanonicalScenario(t *testing.T) {
	u, _ := newUseCase()

	quote, err := u.PreviewPrice(context.Background(), PricePreviewRequest{
		Headcount:  12,
		LunchCount: 12,
		Breakfast:  &BreakfastSelectionRequest{PackageType: "hot", Headcount: 12},
	})

	require.NoError(t, err)
	assert.Equal(t, 694.80, quote.Subtotal)
	assert.Equal(t, 57.32, quote.Tax)
	assert.Equal(t, 777.12, quote.Total)
}
