package order

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/crave-catering/cc-order/internal/module/adminapp/dispatch"
	"github.com/crave-catering/cc-order/pkg/errors"
	"github.com/crave-catering/cc-order/pkg/pubsub"
	"github.com/crave-catering/cc-order/pkg/status"
)

type OrderUseCase interface {
	GetOrder(ctx context.Context, ID string) (OrderResponse, error)
	ListOrders(ctx context.Context, req ListOrdersRequest) (ListOrdersResponse, error)
	AdvanceStatus(ctx context.Context, ID string, req AdvanceStatusRequest) (OrderResponse, error)
}

type orderUseCase struct {
	logger             *logrus.Logger
	timeout            time.Duration
	orderRepository    OrderRepository
	dispatchRepository dispatch.DispatchRepository
	publisher          pubsub.Publisher
	pickupName         string
}

type OrderUseCaseProperty struct {
	Logger             *logrus.Logger
	Timeout            time.Duration
	OrderRepository    OrderRepository
	DispatchRepository dispatch.DispatchRepository
	Publisher          pubsub.Publisher
	PickupName         string
}

func NewOrderUseCase(props OrderUseCaseProperty) OrderUseCase {
	return &orderUseCase{
		logger:             props.Logger,
		timeout:            props.Timeout,
		orderRepository:    props.OrderRepository,
		dispatchRepository: props.DispatchRepository,
		publisher:          props.Publisher,
		pickupName:         props.PickupName,
	}
}

// GetOrder implements OrderUseCase.
func (u *orderUseCase) GetOrder(ctx context.Context, ID string) (OrderResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	o, err := u.orderRepository.FindByID(ctx, ID, nil)
	if err != nil {
		return OrderResponse{}, err
	}

	resp := OrderResponse{}
	resp.PopulateFromEntity(o)

	return resp, nil
}

// ListOrders implements OrderUseCase.
func (u *orderUseCase) ListOrders(ctx context.Context, req ListOrdersRequest) (ListOrdersResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	offset := (req.Page - 1) * req.Size

	bunchOfOrders, err := u.orderRepository.FindMany(ctx, req.Status, offset, req.Size, nil)
	if err != nil {
		return ListOrdersResponse{}, err
	}

	total, err := u.orderRepository.Count(ctx, req.Status, nil)
	if err != nil {
		return ListOrdersResponse{}, err
	}

	orders := make([]OrderResponse, 0, len(bunchOfOrders))
	for _, o := range bunchOfOrders {
		resp := OrderResponse{}
		resp.PopulateFromEntity(o)
		orders = append(orders, resp)
	}

	return ListOrdersResponse{
		Orders: orders,
		Total:  total,
		Page:   req.Page,
		Size:   req.Size,
	}, nil
}

// bookDispatch hands the order to the delivery provider and returns the
// provider's booking reference.
func (u *orderUseCase) bookDispatch(ctx context.Context, o Order) (*string, error) {
	if o.Delivery == nil {
		return nil, errors.New(http.StatusUnprocessableEntity, status.UNPROCESSABLE_ENTITY, "order has no delivery information")
	}

	booking, err := u.dispatchRepository.Book(ctx, dispatch.BookingRequest{
		OrderID:        o.ID,
		PickupName:     u.pickupName,
		DropoffAddress: o.Delivery.Address,
		DropoffCity:    o.Delivery.City,
		DropoffState:   o.Delivery.State,
		DropoffZip:     o.Delivery.Zip,
		PreferredTime:  o.Delivery.PreferredTime,
		Instructions:   o.Delivery.Instructions,
		ContactName:    o.CustomerName,
		ContactPhone:   o.CustomerPhone,
	})
	if err != nil {
		return nil, err
	}

	return &booking.Reference, nil
}

// AdvanceStatus implements OrderUseCase. Moving an order to out_for_delivery
// books the delivery with the dispatch provider before the status is written.
func (u *orderUseCase) AdvanceStatus(ctx context.Context, ID string, req AdvanceStatusRequest) (OrderResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	o, err := u.orderRepository.FindByID(ctx, ID, nil)
	if err != nil {
		return OrderResponse{}, err
	}

	target := Status(req.Status)

	if !o.Status.CanTransitionTo(target) {
		message := fmt.Sprintf("order with status '%s' cannot move to '%s'", o.Status, target)
		return OrderResponse{}, errors.New(http.StatusConflict, status.ORDER_INVALID_STATUS, message)
	}

	var dispatchReference *string
	if target == StatusOutForDelivery {
		dispatchReference, err = u.bookDispatch(ctx, o)
		if err != nil {
			return OrderResponse{}, err
		}
	}

	if err := u.orderRepository.UpdateStatus(ctx, ID, target, dispatchReference, nil); err != nil {
		return OrderResponse{}, err
	}

	event := OrderStatusChangedEvent{
		ID:                o.ID,
		PreviousStatus:    string(o.Status),
		Status:            string(target),
		DispatchReference: dispatchReference,
	}
	buff, _ := json.Marshal(event)
	u.publisher.Publish(ctx, "order-status-changed", o.ID, nil, buff)

	o.Status = target
	if dispatchReference != nil {
		o.DispatchReference = dispatchReference
	}
	o.UpdatedAt = time.Now()

	resp := OrderResponse{}
	resp.PopulateFromEntity(o)

	return resp, nil
}
