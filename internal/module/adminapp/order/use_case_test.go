package order

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crave-catering/cc-order/internal/module/adminapp/dispatch"
	"github.com/crave-catering/cc-order/pkg/errors"
	"github.com/crave-catering/cc-order/pkg/status"
)

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) FindByID(ctx context.Context, ID string, tx *sql.Tx) (Order, error) {
	args := m.Called(ctx, ID, tx)
	return args.Get(0).(Order), args.Error(1)
}

func (m *mockOrderRepository) FindMany(ctx context.Context, filterStatus string, offset, limit int64, tx *sql.Tx) ([]Order, error) {
	args := m.Called(ctx, filterStatus, offset, limit, tx)
	orders, _ := args.Get(0).([]Order)
	return orders, args.Error(1)
}

func (m *mockOrderRepository) Count(ctx context.Context, filterStatus string, tx *sql.Tx) (int64, error) {
	args := m.Called(ctx, filterStatus, tx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, ID string, newStatus Status, dispatchReference *string, tx *sql.Tx) error {
	return m.Called(ctx, ID, newStatus, dispatchReference, tx).Error(0)
}

type mockDispatchRepository struct {
	mock.Mock
}

func (m *mockDispatchRepository) Book(ctx context.Context, req dispatch.BookingRequest) (dispatch.BookingResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dispatch.BookingResponse), args.Error(1)
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

func newUseCase() (OrderUseCase, *mockOrderRepository, *mockDispatchRepository, *mockPublisher) {
	orderRepo := &mockOrderRepository{}
	dispatchRepo := &mockDispatchRepository{}
	publisher := &mockPublisher{}

	u := NewOrderUseCase(OrderUseCaseProperty{
		Logger:             logrus.New(),
		Timeout:            5 * time.Second,
		OrderRepository:    orderRepo,
		DispatchRepository: dispatchRepo,
		Publisher:          publisher,
		PickupName:         "Crave Catering Kitchen",
	})

	return u, orderRepo, dispatchRepo, publisher
}

func sampleOrder(s Status) Order {
	return Order{
		ID:            "CO1756700000000789",
		CustomerName:  "Dana Reyes",
		CustomerPhone: "555-0100",
		Status:        s,
		EventName:     "Quarterly Planning",
		Headcount:     12,
		Delivery: &DeliveryInfo{
			Address:       "400 Market St",
			City:          "Austin",
			State:         "TX",
			Zip:           "78701",
			PreferredTime: "08:30",
		},
		Total: 777.12,
	}
}

func TestAdvanceStatusHappyPath(t *testing.T) {
	u, orderRepo, _, publisher := newUseCase()

	o := sampleOrder(StatusConfirmed)
	orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)
	orderRepo.On("UpdateStatus", mock.Anything, o.ID, StatusPreparing, (*string)(nil), (*sql.Tx)(nil)).Return(nil)
	publisher.On("Publish", mock.Anything, "order-status-changed", o.ID, mock.Anything, mock.Anything).Return(nil)

	resp, err := u.AdvanceStatus(context.Background(), o.ID, AdvanceStatusRequest{Status: "preparing"})

	require.NoError(t, err)
	assert.Equal(t, "preparing", resp.Status)
	assert.Equal(t, "Preparing", resp.StatusLabel)
	publisher.AssertExpectations(t)
}

func TestAdvanceStatusRejectsInvalidTransition(t *testing.T) {
	tests := []struct {
		name   string
		from   Status
		target string
	}{
		{name: "skip_preparing", from: StatusConfirmed, target: "ready_for_delivery"},
		{name: "backwards", from: StatusDelivered, target: "preparing"},
		{name: "cancel_after_preparing", from: StatusPreparing, target: "cancelled"},
		{name: "deliver_from_confirmed", from: StatusConfirmed, target: "delivered"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, orderRepo, _, _ := newUseCase()

			o := sampleOrder(tc.from)
			orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)

			_, err := u.AdvanceStatus(context.Background(), o.ID, AdvanceStatusRequest{Status: tc.target})

			require.Error(t, err)
			ae := errors.Destruct(err)
			assert.Equal(t, http.StatusConflict, ae.HTTPStatusCode)
			assert.Equal(t, status.ORDER_INVALID_STATUS, ae.Status)
			orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAdvanceStatusBooksDispatch(t *testing.T) {
	u, orderRepo, dispatchRepo, publisher := newUseCase()

	o := sampleOrder(StatusReadyForDelivery)
	orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)

	dispatchRepo.On("Book", mock.Anything, dispatch.BookingRequest{
		OrderID:        o.ID,
		PickupName:     "Crave Catering Kitchen",
		DropoffAddress: o.Delivery.Address,
		DropoffCity:    o.Delivery.City,
		DropoffState:   o.Delivery.State,
		DropoffZip:     o.Delivery.Zip,
		PreferredTime:  o.Delivery.PreferredTime,
		ContactName:    o.CustomerName,
		ContactPhone:   o.CustomerPhone,
	}).Return(dispatch.BookingResponse{Reference: "disp-456", Status: "PENDING"}, nil)

	ref := "disp-456"
	orderRepo.On("UpdateStatus", mock.Anything, o.ID, StatusOutForDelivery, &ref, (*sql.Tx)(nil)).Return(nil)
	publisher.On("Publish", mock.Anything, "order-status-changed", o.ID, mock.Anything, mock.Anything).Return(nil)

	resp, err := u.AdvanceStatus(context.Background(), o.ID, AdvanceStatusRequest{Status: "out_for_delivery"})

	require.NoError(t, err)
	require.NotNil(t, resp.DispatchReference)
	assert.Equal(t, "disp-456", *resp.DispatchReference)
	dispatchRepo.AssertExpectations(t)
}

func TestAdvanceStatusDispatchWithoutDeliveryInfo(t *testing.T) {
	u, orderRepo, _, _ := newUseCase()

	o := sampleOrder(StatusReadyForDelivery)
	o.Delivery = nil
	orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)

	_, err := u.AdvanceStatus(context.Background(), o.ID, AdvanceStatusRequest{Status: "out_for_delivery"})

	require.Error(t, err)
	ae := errors.Destruct(err)
	assert.Equal(t, http.StatusUnprocessableEntity, ae.HTTPStatusCode)
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvanceStatusBookingFailureLeavesOrderUntouched(t *testing.T) {
	u, orderRepo, dispatchRepo, _ := newUseCase()

	o := sampleOrder(StatusReadyForDelivery)
	orderRepo.On("FindByID", mock.Anything, o.ID, (*sql.Tx)(nil)).Return(o, nil)
	dispatchRepo.On("Book", mock.Anything, mock.AnythingOfType("dispatch.BookingRequest")).
		Return(dispatch.BookingResponse{}, errors.New(http.StatusBadGateway, status.INTERNAL_SERVER_ERROR, "dispatch provider returned an error"))

	_, err := u.AdvanceStatus(context.Background(), o.ID, AdvanceStatusRequest{Status: "out_for_delivery"})

	require.Error(t, err)
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListOrdersPagination(t *testing.T) {
	u, orderRepo, _, _ := newUseCase()

	orderRepo.On("FindMany", mock.Anything, "confirmed", int64(20), int64(20), (*sql.Tx)(nil)).
		Return([]Order{sampleOrder(StatusConfirmed)}, nil)
	orderRepo.On("Count", mock.Anything, "confirmed", (*sql.Tx)(nil)).Return(int64(21), nil)

	resp, err := u.ListOrders(context.Background(), ListOrdersRequest{Status: "confirmed", Page: 2, Size: 20})

	require.NoError(t, err)
	assert.Len(t, resp.Orders, 1)
	assert.Equal(t, int64(21), resp.Total)
	assert.Equal(t, int64(2), resp.Page)
}
