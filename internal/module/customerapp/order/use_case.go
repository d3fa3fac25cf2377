package order

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"github.com/sirupsen/logrus"

	"github.com/crave-catering/cc-order/internal/module/customerapp/payment"
	"github.com/crave-catering/cc-order/internal/module/customerapp/pricing"
	"github.com/crave-catering/cc-order/internal/module/customerapp/promotion"
	"github.com/crave-catering/cc-order/internal/pkg/session"
	"github.com/crave-catering/cc-order/internal/pkg/util"
	"github.com/crave-catering/cc-order/pkg/errors"
	"github.com/crave-catering/cc-order/pkg/gctasks"
	"github.com/crave-catering/cc-order/pkg/pubsub"
	"github.com/crave-catering/cc-order/pkg/status"
)

type OrderUseCase interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (OrderResponse, error)
	CreateGuestOrder(ctx context.Context, req CreateOrderRequest) (OrderResponse, error)
	GetOrder(ctx context.Context, ID string) (OrderResponse, error)
	ListOrders(ctx context.Context, req ListOrdersRequest) (ListOrdersResponse, error)
	UpdateOrder(ctx context.Context, ID string, req UpdateOrderRequest) (OrderResponse, error)
	CancelOrder(ctx context.Context, ID string) (OrderResponse, error)
	Checkout(ctx context.Context, ID string) (OrderResponse, error)
	OnPaymentNotification(ctx context.Context, e PaymentNotificationEvent) error
	OnExpireOrder(ctx context.Context, e ExpireOrderEvent) error

	GenerateShareLink(ctx context.Context, ID string) (ShareLinkResponse, error)
	RevokeShareLink(ctx context.Context, ID string) error
	GetSharedOrder(ctx context.Context, ID, token string) (SharedOrderResponse, error)

	SubmitLunchSelection(ctx context.Context, ID, token string, req SubmitLunchSelectionRequest) error
	ListLunchSelections(ctx context.Context, ID, token string) ([]LunchSelectionResponse, error)

	PreviewPrice(ctx context.Context, req PricePreviewRequest) (pricing.Quote, error)
}

type orderUseCase struct {
	logger                   *logrus.Logger
	timeout                  time.Duration
	baseURL                  string
	orderExpireDuration      time.Duration
	orderRepository          OrderRepository
	lunchSelectionRepository LunchSelectionRepository
	promotionRepository      promotion.PromotionRepository
	paymentRepository        payment.PaymentRepository
	publisher                pubsub.Publisher
	cloudTask                gctasks.Client
}

type OrderUseCaseProperty struct {
	Logger                   *logrus.Logger
	Timeout                  time.Duration
	BaseURL                  string
	OrderExpireDuration      time.Duration
	OrderRepository          OrderRepository
	LunchSelectionRepository LunchSelectionRepository
	PromotionRepository      promotion.PromotionRepository
	PaymentRepository        payment.PaymentRepository
	Publisher                pubsub.Publisher
	CloudTask                gctasks.Client
}

func NewOrderUseCase(props OrderUseCaseProperty) OrderUseCase {
	return &orderUseCase{
		logger:                   props.Logger,
		timeout:                  props.Timeout,
		baseURL:                  props.BaseURL,
		orderExpireDuration:      props.OrderExpireDuration,
		orderRepository:          props.OrderRepository,
		lunchSelectionRepository: props.LunchSelectionRepository,
		promotionRepository:      props.PromotionRepository,
		paymentRepository:        props.PaymentRepository,
		publisher:                props.Publisher,
		cloudTask:                props.CloudTask,
	}
}

func errOrderNotFound() error {
	return errors.New(http.StatusNotFound, status.NOT_FOUND, "order is not found")
}

// resolvePromotion validates a code and resolves it into a discount against
// the given subtotal. An empty code is not an error.
func (u *orderUseCase) resolvePromotion(ctx context.Context, code string, subtotal float64) (*promotion.Promotion, float64, error) {
	if code == "" {
		return nil, 0, nil
	}

	p, err := u.promotionRepository.FindByCode(ctx, code, nil)
	if err != nil {
		return nil, 0, err
	}

	if err := p.Usable(time.Now()); err != nil {
		return nil, 0, err
	}

	return &p, p.Discount(subtotal), nil
}

func buildSelection(headcount, lunchCount int64, breakfast *BreakfastSelectionRequest, snacks *SnackSelectionRequest) pricing.Selection {
	sel := pricing.Selection{
		Headcount:  headcount,
		LunchCount: lunchCount,
	}
	if breakfast != nil {
		sel.Breakfast = &pricing.BreakfastSelection{
			PackageType: breakfast.PackageType,
			Headcount:   breakfast.Headcount,
		}
	}
	if snacks != nil {
		sel.Snacks = &pricing.SnackSelection{PackageType: snacks.PackageType}
	}

	return sel
}

func (u *orderUseCase) create(ctx context.Context, req CreateOrderRequest, customerID *int64) (OrderResponse, error) {
	sel := buildSelection(req.Headcount, 0, req.Breakfast, req.Snacks)

	promo, discount, err := u.resolvePromotion(ctx, req.PromotionCode, pricing.Calculate(sel).Subtotal)
	if err != nil {
		return OrderResponse{}, err
	}

	sel.Discount = discount
	if promo != nil && promo.WaivesDeliveryFee() {
		sel.WaiveDeliveryFee = true
	}

	quote := pricing.Calculate(sel)

	now := time.Now()
	o := Order{
		ID:            util.GenerateTimestampWithPrefix("CO"),
		CustomerID:    customerID,
		CustomerName:  req.ContactName,
		CustomerEmail: req.ContactEmail,
		CustomerPhone: req.ContactPhone,
		Status:        StatusDraft,
		EventName:     req.EventName,
		EventDate:     req.EventDate,
		EventTime:     req.EventTime,
		Headcount:     req.Headcount,
		Breakfast:     sel.Breakfast,
		Snacks:        sel.Snacks,
		Subtotal:      quote.Subtotal,
		Discount:      quote.Discount,
		Tax:           quote.Tax,
		DeliveryFee:   quote.DeliveryFee,
		Total:         quote.Total,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if req.Delivery != nil {
		o.Delivery = &DeliveryInfo{
			Address:       req.Delivery.Address,
			City:          req.Delivery.City,
			State:         req.Delivery.State,
			Zip:           req.Delivery.Zip,
			PreferredTime: req.Delivery.PreferredTime,
			Instructions:  req.Delivery.Instructions,
		}
	}
	if req.PromotionCode != "" {
		o.PromotionCode = &req.PromotionCode
	}

	if err := u.orderRepository.Save(ctx, o, nil); err != nil {
		return OrderResponse{}, err
	}

	resp := OrderResponse{}
	resp.PopulateFromEntity(o)

	return resp, nil
}

// CreateOrder implements OrderUseCase.
func (u *orderUseCase) CreateOrder(ctx context.Context, req CreateOrderRequest) (OrderResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	acc, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		return OrderResponse{}, err
	}

	return u.create(ctx, req, &acc.ID)
}

// CreateGuestOrder implements OrderUseCase. Guest orders carry contact info
// only; the guest email is the sole owner reference.
func (u *orderUseCase) CreateGuestOrder(ctx context.Context, req CreateOrderRequest) (OrderResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	return u.create(ctx, req, nil)
}

// findOwnedOrder loads an order and verifies ownership. A missing order and
// a foreign order yield the same not-found error so callers cannot probe
// for existence.
func (u *orderUseCase) findOwnedOrder(ctx context.Context, ID string) (Order, error) {
	acc, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		return Order{}, err
	}

	o, err := u.orderRepository.FindByID(ctx, ID, nil)
	if err != nil {
		return Order{}, err
	}

	if !o.OwnedBy(acc.ID) {
		return Order{}, errOrderNotFound()
	}

	return o, nil
}

// GetOrder implements OrderUseCase.
func (u *orderUseCase) GetOrder(ctx context.Context, ID string) (OrderResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	o, err := u.findOwnedOrder(ctx, ID)
	if err != nil {
		return OrderResponse{}, err
	}

	selections, err := u.lunchSelectionRepository.FindManyByOrderID(ctx, o.ID, nil)
	if err != nil {
		return OrderResponse{}, err
	}
	o.LunchSelections = selections

	resp := OrderResponse{}
	resp.PopulateFromEntity(o)

	return resp, nil
}

// ListOrders implements OrderUseCase.
func (u *orderUseCase) ListOrders(ctx context.Context, req ListOrdersRequest) (ListOrdersResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	acc, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		return ListOrdersResponse{}, err
	}

	offset := (req.Page - 1) * req.Size

	orders, err := u.orderRepository.FindManyByCustomerID(ctx, acc.ID, offset, req.Size, nil)
	if err != nil {
		return ListOrdersResponse{}, err
	}

	total, err := u.orderRepository.CountByCustomerID(ctx, acc.ID, nil)
	if err != nil {
		return ListOrdersResponse{}, err
	}

	resp := ListOrdersResponse{
		Orders: make([]OrderResponse, len(orders)),
		Total:  total,
	}
	for k, o := range orders {
		resp.Orders[k].PopulateFromEntity(o)
	}

	return resp, nil
}

// UpdateOrder implements OrderUseCase. The request replaces the order's
// composition wholesale, so the money fields are derived from it in the
// same write; a partially patched order can never persist stale totals.
func (u *orderUseCase) UpdateOrder(ctx context.Context, ID string, req UpdateOrderRequest) (OrderResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	o, err := u.findOwnedOrder(ctx, ID)
	if err != nil {
		return OrderResponse{}, err
	}

	if !o.Status.Mutable() {
		return OrderResponse{}, errors.New(http.StatusConflict, status.ORDER_CANNOT_MODIFY, fmt.Sprintf("order in status '%s' cannot be modified", o.Status))
	}

	selections, err := u.lunchSelectionRepository.FindManyByOrderID(ctx, o.ID, nil)
	if err != nil {
		return OrderResponse{}, err
	}

	sel := buildSelection(req.Headcount, int64(len(selections)), req.Breakfast, req.Snacks)

	code := ""
	if o.PromotionCode != nil {
		code = *o.PromotionCode
	}
	promo, discount, err := u.resolvePromotion(ctx, code, pricing.Calculate(sel).Subtotal)
	if err != nil {
		return OrderResponse{}, err
	}
	sel.Discount = discount
	if promo != nil && promo.WaivesDeliveryFee() {
		sel.WaiveDeliveryFee = true
	}

	quote := pricing.Calculate(sel)

	o.EventName = req.EventName
	o.EventDate = req.EventDate
	o.EventTime = req.EventTime
	o.Headcount = req.Headcount
	o.CustomerName = req.ContactName
	o.CustomerEmail = req.ContactEmail
	o.CustomerPhone = req.ContactPhone
	o.Breakfast = sel.Breakfast
	o.Snacks = sel.Snacks
	o.Delivery = nil
	if req.Delivery != nil {
		o.Delivery = &DeliveryInfo{
			Address:       req.Delivery.Address,
			City:          req.Delivery.City,
			State:         req.Delivery.State,
			Zip:           req.Delivery.Zip,
			PreferredTime: req.Delivery.PreferredTime,
			Instructions:  req.Delivery.Instructions,
		}
	}
	o.Subtotal = quote.Subtotal
	o.Discount = quote.Discount
	o.Tax = quote.Tax
	o.DeliveryFee = quote.DeliveryFee
	o.Total = quote.Total
	o.UpdatedAt = time.Now()
	o.LunchSelections = selections

	if err := u.orderRepository.Update(ctx, o.ID, o, nil); err != nil {
		return OrderResponse{}, err
	}

	resp := OrderResponse{}
	resp.PopulateFromEntity(o)

	return resp, nil
}

// CancelOrder implements OrderUseCase.
func (u *orderUseCase) CancelOrder(ctx context.Context, ID string) (OrderResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	o, err := u.findOwnedOrder(ctx, ID)
	if err != nil {
		return OrderResponse{}, err
	}

	if !o.Status.Cancellable() {
		return OrderResponse{}, errors.New(http.StatusConflict, status.ORDER_INVALID_STATUS, fmt.Sprintf("order in status '%s' cannot be cancelled", o.Status))
	}

	o.Status = StatusCancelled
	o.UpdatedAt = time.Now()

	if err := u.orderRepository.Update(ctx, o.ID, o, nil); err != nil {
		return OrderResponse{}, err
	}

	buff, _ := json.Marshal(o)
	u.publisher.Publish(ctx, "order-cancelled", o.ID, nil, buff)

	resp := OrderResponse{}
	resp.PopulateFromEntity(o)

	return resp, nil
}

// Checkout implements OrderUseCase. It moves a draft to pending_payment,
// charges the payment processor, and schedules an expiry task that cancels
// the order if payment never settles.
func (u *orderUseCase) Checkout(ctx context.Context, ID string) (OrderResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	o, err := u.findOwnedOrder(ctx, ID)
	if err != nil {
		return OrderResponse{}, err
	}

	if !o.Status.CanTransitionTo(StatusPendingPayment) {
		return OrderResponse{}, errors.New(http.StatusConflict, status.ORDER_INVALID_STATUS, fmt.Sprintf("order in status '%s' cannot be checked out", o.Status))
	}

	chargeResp, err := u.paymentRepository.Charge(ctx, payment.ChargeRequest{
		OrderID:       o.ID,
		Amount:        o.Total,
		Currency:      "USD",
		CustomerEmail: o.CustomerEmail,
	})
	if err != nil {
		return OrderResponse{}, err
	}

	o.Status = StatusPendingPayment
	o.TransactionID = &chargeResp.TransactionID
	o.UpdatedAt = time.Now()

	if err := u.orderRepository.Update(ctx, o.ID, o, nil); err != nil {
		return OrderResponse{}, err
	}

	buff, _ := json.Marshal(o)
	u.publisher.Publish(ctx, "order-checkout", o.ID, nil, buff)

	expireBuff, _ := json.Marshal(ExpireOrderEvent{ID: o.ID})
	u.cloudTask.DeferCreateTaskInDuration("expire-order", gctasks.Request{
		URL:    fmt.Sprintf("%s/cc-order/v1/customerapp/orders/on-expire", u.baseURL),
		Method: cloudtaskspb.HttpMethod_POST,
		Body:   expireBuff,
	}, u.orderExpireDuration)

	resp := OrderResponse{}
	resp.PopulateFromEntity(o)

	return resp, nil
}

// OnPaymentNotification implements OrderUseCase.
func (u *orderUseCase) OnPaymentNotification(ctx context.Context, e PaymentNotificationEvent) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	if e.TransactionStatus != payment.TransactionStatusSettlement {
		return nil
	}

	tx, err := u.orderRepository.BeginTx(ctx)
	if err != nil {
		return err
	}

	// Some provider notifications omit the merchant order id; the
	// transaction id recorded at checkout resolves those.
	var o Order
	if e.OrderID != "" {
		o, err = u.orderRepository.FindByID(ctx, e.OrderID, tx)
	} else {
		o, err = u.orderRepository.FindByTransactionID(ctx, e.TransactionID, tx)
	}
	if err != nil {
		u.orderRepository.Rollback(ctx, tx)
		return err
	}

	if o.Status != StatusPendingPayment {
		u.orderRepository.Rollback(ctx, tx)
		return nil
	}

	o.Status = StatusConfirmed
	o.UpdatedAt = time.Now()

	if err := u.orderRepository.Update(ctx, o.ID, o, tx); err != nil {
		u.orderRepository.Rollback(ctx, tx)
		return err
	}

	if o.PromotionCode != nil {
		p, err := u.promotionRepository.FindByCode(ctx, *o.PromotionCode, tx)
		if err == nil {
			if err := u.promotionRepository.IncrementUsage(ctx, p.ID, tx); err != nil {
				u.orderRepository.Rollback(ctx, tx)
				return err
			}
		}
	}

	if err := u.orderRepository.CommitTx(ctx, tx); err != nil {
		return err
	}

	buff, _ := json.Marshal(o)
	u.publisher.Publish(ctx, "order-confirmed", o.ID, nil, buff)

	return nil
}

// OnExpireOrder implements OrderUseCase. Fired by the deferred task; only
// orders still waiting for payment get cancelled.
func (u *orderUseCase) OnExpireOrder(ctx context.Context, e ExpireOrderEvent) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	o, err := u.orderRepository.FindByID(ctx, e.ID, nil)
	if err != nil {
		return err
	}

	if o.Status != StatusPendingPayment {
		return nil
	}

	o.Status = StatusCancelled
	o.UpdatedAt = time.Now()

	if err := u.orderRepository.Update(ctx, o.ID, o, nil); err != nil {
		return err
	}

	buff, _ := json.Marshal(o)
	u.publisher.Publish(ctx, "order-cancelled", o.ID, nil, buff)

	return nil
}

// GenerateShareLink implements OrderUseCase. A fresh token supersedes any
// prior one; there is never more than one valid token per order.
func (u *orderUseCase) GenerateShareLink(ctx context.Context, ID string) (ShareLinkResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	o, err := u.findOwnedOrder(ctx, ID)
	if err != nil {
		return ShareLinkResponse{}, err
	}

	if !o.Status.Shareable() {
		return ShareLinkResponse{}, errors.New(http.StatusConflict, status.ORDER_INVALID_STATUS, fmt.Sprintf("order in status '%s' cannot be shared", o.Status))
	}

	token, err := util.GenerateSecureToken(32)
	if err != nil {
		u.logger.WithContext(ctx).WithError(err).Error()
		return ShareLinkResponse{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while generating the share token")
	}

	expiresAt := time.Now().Add(ShareTokenTTL)

	o.ShareToken = &token
	o.ShareTokenExpiresAt = &expiresAt
	o.UpdatedAt = time.Now()

	if err := u.orderRepository.Update(ctx, o.ID, o, nil); err != nil {
		return ShareLinkResponse{}, err
	}

	return ShareLinkResponse{
		URL:       fmt.Sprintf("%s/orders/%s/lunch?token=%s", u.baseURL, o.ID, token),
		ExpiresAt: expiresAt,
	}, nil
}

// RevokeShareLink implements OrderUseCase.
func (u *orderUseCase) RevokeShareLink(ctx context.Context, ID string) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	o, err := u.findOwnedOrder(ctx, ID)
	if err != nil {
		return err
	}

	o.ShareToken = nil
	o.ShareTokenExpiresAt = nil
	o.UpdatedAt = time.Now()

	return u.orderRepository.Update(ctx, o.ID, o, nil)
}

// findSharedOrder loads an order for a token holder. Any failure collapses
// to not-found so the endpoint leaks nothing about order existence.
func (u *orderUseCase) findSharedOrder(ctx context.Context, ID, token string) (Order, error) {
	o, err := u.orderRepository.FindByID(ctx, ID, nil)
	if err != nil {
		return Order{}, errOrderNotFound()
	}

	if !o.ShareTokenValid(token, time.Now()) {
		return Order{}, errOrderNotFound()
	}

	return o, nil
}

// GetSharedOrder implements OrderUseCase.
func (u *orderUseCase) GetSharedOrder(ctx context.Context, ID, token string) (SharedOrderResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	o, err := u.findSharedOrder(ctx, ID, token)
	if err != nil {
		return SharedOrderResponse{}, err
	}

	selections, err := u.lunchSelectionRepository.FindManyByOrderID(ctx, o.ID, nil)
	if err != nil {
		return SharedOrderResponse{}, err
	}
	o.LunchSelections = selections

	resp := SharedOrderResponse{}
	resp.PopulateFromEntity(o)

	return resp, nil
}

// resolveLunchAccess authorizes lunch-selection operations through either a
// share token or the owning session.
func (u *orderUseCase) resolveLunchAccess(ctx context.Context, ID, token string) (Order, error) {
	if token != "" {
		return u.findSharedOrder(ctx, ID, token)
	}

	return u.findOwnedOrder(ctx, ID)
}

// SubmitLunchSelection implements OrderUseCase. While the order is still
// mutable the money fields are recomputed in the same transaction, so a new
// attendee response immediately shows up in the totals.
func (u *orderUseCase) SubmitLunchSelection(ctx context.Context, ID, token string, req SubmitLunchSelectionRequest) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	o, err := u.resolveLunchAccess(ctx, ID, token)
	if err != nil {
		return err
	}

	if o.Status.Terminal() {
		return errors.New(http.StatusConflict, status.ORDER_INVALID_STATUS, fmt.Sprintf("order in status '%s' no longer accepts lunch selections", o.Status))
	}

	tx, err := u.orderRepository.BeginTx(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	selection := LunchSelection{
		OrderID:       o.ID,
		AttendeeName:  req.AttendeeName,
		AttendeeEmail: req.AttendeeEmail,
		Entree:        req.Entree,
		DietaryNote:   req.DietaryNote,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := u.lunchSelectionRepository.Upsert(ctx, selection, tx); err != nil {
		u.orderRepository.Rollback(ctx, tx)
		return err
	}

	if o.Status.Mutable() {
		selections, err := u.lunchSelectionRepository.FindManyByOrderID(ctx, o.ID, tx)
		if err != nil {
			u.orderRepository.Rollback(ctx, tx)
			return err
		}

		sel := o.Selection()
		sel.LunchCount = int64(len(selections))
		quote := pricing.Calculate(sel)

		o.Subtotal = quote.Subtotal
		o.Discount = quote.Discount
		o.Tax = quote.Tax
		o.DeliveryFee = quote.DeliveryFee
		o.Total = quote.Total
		o.UpdatedAt = now

		if err := u.orderRepository.Update(ctx, o.ID, o, tx); err != nil {
			u.orderRepository.Rollback(ctx, tx)
			return err
		}
	}

	return u.orderRepository.CommitTx(ctx, tx)
}

// ListLunchSelections implements OrderUseCase.
func (u *orderUseCase) ListLunchSelections(ctx context.Context, ID, token string) ([]LunchSelectionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	o, err := u.resolveLunchAccess(ctx, ID, token)
	if err != nil {
		return nil, err
	}

	selections, err := u.lunchSelectionRepository.FindManyByOrderID(ctx, o.ID, nil)
	if err != nil {
		return nil, err
	}

	resp := make([]LunchSelectionResponse, len(selections))
	for k, v := range selections {
		resp[k] = LunchSelectionResponse{
			AttendeeName:  v.AttendeeName,
			AttendeeEmail: v.AttendeeEmail,
			Entree:        v.Entree,
			DietaryNote:   v.DietaryNote,
			SubmittedAt:   v.UpdatedAt,
		}
	}

	return resp, nil
}

// PreviewPrice implements OrderUseCase. Nothing is persisted; the wizard
// calls this on every step to refresh the displayed totals.
func (u *orderUseCase) PreviewPrice(ctx context.Context, req PricePreviewRequest) (pricing.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	sel := req.selection()

	promo, discount, err := u.resolvePromotion(ctx, req.PromotionCode, pricing.Calculate(sel).Subtotal)
	if err != nil {
		return pricing.Quote{}, err
	}

	sel.Discount = discount
	if promo != nil && promo.WaivesDeliveryFee() {
		sel.WaiveDeliveryFee = true
	}

	return pricing.Calculate(sel), nil
}
