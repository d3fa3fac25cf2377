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
	"github.com/crave-catering/cc-order/internal/pkg/middleware"
	"github.com/crave-catering/cc-order/pkg/errors"
	publicMiddleware "github.com/crave-catering/cc-order/pkg/middleware"
	"github.com/crave-catering/cc-order/pkg/response"
	"github.com/crave-catering/cc-order/pkg/status"
)

type HTTPHandler struct {
	SessionMiddleware *middleware.AdminSession
	Validate          *validator.Validate
	OrderUseCase      OrderUseCase
}

func InitHTTPHandler(router *mux.Router, adminSession *middleware.AdminSession, validate *validator.Validate, orderUseCase OrderUseCase) {
	handler := &HTTPHandler{
		Validate:     validate,
		OrderUseCase: orderUseCase,
	}

	router.HandleFunc("/cc-order/v1/adminapp/orders", publicMiddleware.SetRouteChain(handler.ListOrders, adminSession.Verify)).Methods(http.MethodGet)
	router.HandleFunc("/cc-order/v1/adminapp/orders/{id}", publicMiddleware.SetRouteChain(handler.GetOrder, adminSession.Verify)).Methods(http.MethodGet)
	router.HandleFunc("/cc-order/v1/adminapp/orders/{id}/status", publicMiddleware.SetRouteChain(handler.AdvanceStatus, adminSession.Verify)).Methods(http.MethodPost)
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

	errorMessage := strings.Join(errMessages, ", ")

	return fmt.Errorf(errorMessage)
}

func (handler HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}
	size, _ := strconv.ParseInt(r.URL.Query().Get("size"), 10, 64)
	if size < 1 {
		size = 20
	}

	req := ListOrdersRequest{
		Status: r.URL.Query().Get("status"),
		Page:   page,
		Size:   size,
	}

	if err := handler.validate(ctx, req); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: err.Error(),
		})

		return
	}

	resp, err := handler.OrderUseCase.ListOrders(ctx, req)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

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
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "order detail",
		Data:    resp,
	})
}

func (handler HTTPHandler) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := AdvanceStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.JSON(w, http.StatusUnprocessableEntity, response.RESTEnvelope{
			Status:  status.UNPROCESSABLE_ENTITY,
			Message: err.Error(),
		})

		return
	}

	if err := handler.validate(ctx, req); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: err.Error(),
		})

		return
	}

	resp, err := handler.OrderUseCase.AdvanceStatus(ctx, mux.Vars(r)["id"], req)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "order's status has been successfully updated",
		Data:    resp,
	})
}
