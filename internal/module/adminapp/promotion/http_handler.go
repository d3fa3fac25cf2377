package promotion

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
	PromotionUseCase  PromotionUseCase
}

func InitHTTPHandler(router *mux.Router, adminSession *middleware.AdminSession, validate *validator.Validate, promotionUseCase PromotionUseCase) {
	handler := &HTTPHandler{
		Validate:         validate,
		PromotionUseCase: promotionUseCase,
	}

	router.HandleFunc("/cc-order/v1/adminapp/promotions", publicMiddleware.SetRouteChain(handler.CreatePromotion, adminSession.Verify)).Methods(http.MethodPost)
	router.HandleFunc("/cc-order/v1/adminapp/promotions", publicMiddleware.SetRouteChain(handler.ListPromotions, adminSession.Verify)).Methods(http.MethodGet)
	router.HandleFunc("/cc-order/v1/adminapp/promotions/{id}", publicMiddleware.SetRouteChain(handler.GetPromotion, adminSession.Verify)).Methods(http.MethodGet)
	router.HandleFunc("/cc-order/v1/adminapp/promotions/{id}", publicMiddleware.SetRouteChain(handler.UpdatePromotion, adminSession.Verify)).Methods(http.MethodPut)
	router.HandleFunc("/cc-order/v1/adminapp/promotions/{id}", publicMiddleware.SetRouteChain(handler.DeletePromotion, adminSession.Verify)).Methods(http.MethodDelete)
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

func promotionID(r *http.Request) (int64, error) {
	ID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, errors.New(http.StatusBadRequest, status.BAD_REQUEST, "invalid promotion id")
	}

	return ID, nil
}

func (handler HTTPHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := CreatePromotionRequest{}
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

	resp, err := handler.PromotionUseCase.CreatePromotion(ctx, req)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}

	response.JSON(w, http.StatusCreated, response.RESTEnvelope{
		Status:  status.CREATED,
		Message: "promotion has been successfully created",
		Data:    resp,
	})
}

func (handler HTTPHandler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.PromotionUseCase.ListPromotions(ctx, r.URL.Query().Get("status"))
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
		Message: "list of promotions",
		Data:    resp,
	})
}

func (handler HTTPHandler) GetPromotion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ID, err := promotionID(r)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}

	resp, err := handler.PromotionUseCase.GetPromotion(ctx, ID)
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
		Message: "promotion detail",
		Data:    resp,
	})
}

func (handler HTTPHandler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ID, err := promotionID(r)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}

	req := UpdatePromotionRequest{}
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

	resp, err := handler.PromotionUseCase.UpdatePromotion(ctx, ID, req)
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
		Message: "promotion has been successfully updated",
		Data:    resp,
	})
}

func (handler HTTPHandler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ID, err := promotionID(r)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}

	if err := handler.PromotionUseCase.DeletePromotion(ctx, ID); err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "promotion has been successfully deleted",
	})
}
