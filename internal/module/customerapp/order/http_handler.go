package order

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	internalMiddleware "github.com/crave-catering/cc-order/internal/pkg/middleware"
	"github.com/crave-catering/cc-order/pkg/errors"
	publicMiddleware "github.com/crave-catering/cc-order/pkg/middleware"
	"github.com/crave-catering/cc-order/pkg/response"
	"github.com/crave-catering/cc-order/pkg/status"
)

type HTTPHandler struct {
	SessionMiddleware *internalMiddleware.CustomerSession
	Validate          *validator.Validate
	OrderUseCase      OrderUseCase
}

func InitHTTPHandler(router *mux.Router, customerSession *internalMiddleware.CustomerSession, validate *validator.Validate, orderUseCase OrderUseCase) {
	handler := &HTTPHandler{
		Validate:     validate,
		OrderUseCase: orderUseCase,
	}

	router.HandleFunc("/cc-order/v1/customerapp/orders", publicMiddleware.SetRouteChain(handler.CreateOrder, customerSession.Verify)).Methods(http.MethodPost)
	router.HandleFunc("/cc-order/v1/customerapp/orders/guest", publicMiddleware.SetRouteChain(handler.CreateGuestOrder)).Methods(http.MethodPost)
	router.HandleFunc("/cc-order/v1/customerapp/orders", publicMiddleware.SetRouteChain(handler.ListOrders, customerSession.Verify)).Methods(http.MethodGet)
	router.HandleFunc("/cc-order/v1/customerapp/orders/price-preview", publicMiddleware.SetRouteChain(handler.PreviewPrice)).Methods(http.MethodPost)
	router.HandleFunc("/cc-order/v1/customerapp/orders/on-payment-notification", publicMiddleware.SetRouteChain(handler.OnPaymentNotification)).Methods(http.MethodPost)
	router.HandleFunc("/cc-order/v1/customerapp/orders/on-expire", publicMiddleware.SetRouteChain(handler.OnExpireOrder)).Methods(http.MethodPost)
	router.HandleFunc("/cc-order/v1/customerapp/orders/{id}", publicMiddleware.SetRouteChain(handler.GetOrder, customerSession.Verify)).Methods(http.MethodGet)
	router.HandleFunc("/cc-order/v1/customerapp/orders/{id}", publicMiddleware.SetRouteChain(handler.UpdateOrder, customerSession.Verify)).Methods(http.MethodPut)
	router.HandleFunc("/cc-order/v1/customerapp/orders/{id}/cancel", publicMiddleware.SetRouteChain(handler.CancelOrder, customerSession.Verify)).Methods(http.MethodPost)
	router.HandleFunc("/cc-order/v1/customerapp/orders/{id}/checkout", publicMiddleware.SetRouteChain(handler.Checkout, customerSession.Verify)).Methods(http.MethodPost)
	router.HandleFunc("/cc-order/v1/customerapp/orders/{id}/share-link", publicMiddleware.SetRouteChain(handler.GenerateShareLink, customerSession.Verify)).Methods(http.MethodPost)
	router.HandleFunc("/cc-order/v1/customerapp/orders/{id}/share-link", publicMiddleware.SetRouteChain(handler.RevokeShareLink, customerSession.Verify)).Methods(http.MethodDelete)
	router.HandleFunc("/cc-order/v1/customerapp/orders/{id}/shared", publicMiddleware.SetRouteChain(handler.GetSharedOrder)).Methods(http.MethodGet)
	router.HandleFunc("/cc-order/v1/customerapp/orders/{id}/lunch-selections", publicMiddleware.SetRouteChain(handler.SubmitLunchSelection, customerSession.VerifyOptional)).Methods(http.MethodPost)
	router.HandleFunc("/cc-order/v1/customerapp/orders/{id}/lunch-selections", publicMiddleware.SetRouteChain(handler.ListLunchSelections, customerSession.VerifyOptional)).Methods(http.MethodGet)
}

func (handler HTTPHandler) validate(ctx context.Context, payload interface{}) error {
	err := handler.Validate.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	errorFields := err.(validator.ValidationErrors)

	errMessages := make([]string, len(errorFields))

	for k, errorField := range errorFields {
		errMessages[k] = fmt.Sprintf("invalid '%s' with value '%v'", errorField.Field(), errorField.Value())
	}

	return fmt.Errorf("%s", strings.Join(errMessages, ", "))
}

func writeError(w http.ResponseWriter, err error) {
	ae := errors.Destruct(err)
	response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
		Status:  ae.Status,
		Message: ae.Message,
	})
}

func writeValidationError(w http.ResponseWriter, err error) {
	response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
		Status:  status.BAD_REQUEST,
		Message: err.Error(),
	})
}

func writeBodyError(w http.ResponseWriter) {
	response.JSON(w, http.StatusUnprocessableEntity, response.RESTEnvelope{
		Status:  status.UNPROCESSABLE_ENTITY,
		Message: "invalid request body",
	})
}

func (handler HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := CreateOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w)
		return
	}

	if err := handler.validate(ctx, req); err != nil {
		writeValidationError(w, err)
		return
	}

	resp, err := handler.OrderUseCase.CreateOrder(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RESTEnvelope{
		Status:  status.CREATED,
		Message: "order has been created",
		Data:    resp,
	})
}

func (handler HTTPHandler) CreateGuestOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := CreateOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w)
		return
	}

	if err := handler.validate(ctx, req); err != nil {
		writeValidationError(w, err)
		return
	}

	resp, err := handler.OrderUseCase.CreateGuestOrder(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RESTEnvelope{
		Status:  status.CREATED,
		Message: "order has been created",
		Data:    resp,
	})
}

func (handler HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	qs := r.URL.Query()

	req := ListOrdersRequest{}
	req.Page, _ = strconv.ParseInt(qs.Get("page"), 10, 64)
	req.Size, _ = strconv.ParseInt(qs.Get("size"), 10, 64)

	if err := handler.validate(ctx, req); err != nil {
		writeValidationError(w, err)
		return
	}

	resp, err := handler.OrderUseCase.ListOrders(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "list of orders",
		Data:    resp,
	})
}

func (handler HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.OrderUseCase.GetOrder(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "order's detail",
		Data:    resp,
	})
}

func (handler HTTPHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := UpdateOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w)
		return
	}

	if err := handler.validate(ctx, req); err != nil {
		writeValidationError(w, err)
		return
	}

	resp, err := handler.OrderUseCase.UpdateOrder(ctx, mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "order has been updated",
		Data:    resp,
	})
}

func (handler HTTPHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.OrderUseCase.CancelOrder(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "order has been cancelled",
		Data:    resp,
	})
}

func (handler HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.OrderUseCase.Checkout(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "order is waiting for payment",
		Data:    resp,
	})
}

func (handler HTTPHandler) OnPaymentNotification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	e := PaymentNotificationEvent{}
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeBodyError(w)
		return
	}

	if err := handler.OrderUseCase.OnPaymentNotification(ctx, e); err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "payment notification has been processed",
	})
}

func (handler HTTPHandler) OnExpireOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	e := ExpireOrderEvent{}
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeBodyError(w)
		return
	}

	if err := handler.OrderUseCase.OnExpireOrder(ctx, e); err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "order expiry has been processed",
	})
}

func (handler HTTPHandler) GenerateShareLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.OrderUseCase.GenerateShareLink(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RESTEnvelope{
		Status:  status.CREATED,
		Message: "share link has been generated",
		Data:    resp,
	})
}

func (handler HTTPHandler) RevokeShareLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := handler.OrderUseCase.RevokeShareLink(ctx, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "share link has been revoked",
	})
}

func (handler HTTPHandler) GetSharedOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.OrderUseCase.GetSharedOrder(ctx, mux.Vars(r)["id"], r.URL.Query().Get("token"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "shared order's detail",
		Data:    resp,
	})
}

// SubmitLunchSelection serves both token holders and owners: with a token
// query parameter it is unauthenticated, without one the session middleware
// chain on the owner routes applies.
func (handler HTTPHandler) SubmitLunchSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := SubmitLunchSelectionRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w)
		return
	}

	if err := handler.validate(ctx, req); err != nil {
		writeValidationError(w, err)
		return
	}

	err := handler.OrderUseCase.SubmitLunchSelection(ctx, mux.Vars(r)["id"], r.URL.Query().Get("token"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RESTEnvelope{
		Status:  status.CREATED,
		Message: "lunch selection has been submitted",
	})
}

func (handler HTTPHandler) ListLunchSelections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.OrderUseCase.ListLunchSelections(ctx, mux.Vars(r)["id"], r.URL.Query().Get("token"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "list of lunch selections",
		Data:    resp,
	})
}

func (handler HTTPHandler) PreviewPrice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := PricePreviewRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w)
		return
	}

	if err := handler.validate(ctx, req); err != nil {
		writeValidationError(w, err)
		return
	}

	resp, err := handler.OrderUseCase.PreviewPrice(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "price preview",
		Data:    resp,
	})
}
