package menu

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
	PackageUseCase    PackageUseCase
}

func InitHTTPHandler(router *mux.Router, adminSession *middleware.AdminSession, validate *validator.Validate, packageUseCase PackageUseCase) {
	handler := &HTTPHandler{
		Validate:       validate,
		PackageUseCase: packageUseCase,
	}

	router.HandleFunc("/cc-order/v1/adminapp/packages", publicMiddleware.SetRouteChain(handler.CreatePackage, adminSession.Verify)).Methods(http.MethodPost)
	router.HandleFunc("/cc-order/v1/adminapp/packages", publicMiddleware.SetRouteChain(handler.ListPackages, adminSession.Verify)).Methods(http.MethodGet)
	router.HandleFunc("/cc-order/v1/adminapp/packages/{id}", publicMiddleware.SetRouteChain(handler.GetPackage, adminSession.Verify)).Methods(http.MethodGet)
	router.HandleFunc("/cc-order/v1/adminapp/packages/{id}", publicMiddleware.SetRouteChain(handler.UpdatePackage, adminSession.Verify)).Methods(http.MethodPut)
	router.HandleFunc("/cc-order/v1/adminapp/packages/{id}", publicMiddleware.SetRouteChain(handler.DeletePackage, adminSession.Verify)).Methods(http.MethodDelete)
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

func packageID(r *http.Request) (int64, error) {
	ID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, errors.New(http.StatusBadRequest, status.BAD_REQUEST, "invalid package id")
	}

	return ID, nil
}

func (handler HTTPHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := CreatePackageRequest{}
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

	resp, err := handler.PackageUseCase.CreatePackage(ctx, req)
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
		Message: "package has been successfully created",
		Data:    resp,
	})
}

func (handler HTTPHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.PackageUseCase.ListPackages(ctx, r.URL.Query().Get("category"))
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
		Message: "list of packages",
		Data:    resp,
	})
}

func (handler HTTPHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ID, err := packageID(r)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}

	resp, err := handler.PackageUseCase.GetPackage(ctx, ID)
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
		Message: "package detail",
		Data:    resp,
	})
}

func (handler HTTPHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ID, err := packageID(r)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}

	req := UpdatePackageRequest{}
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

	resp, err := handler.PackageUseCase.UpdatePackage(ctx, ID, req)
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
		Message: "package has been successfully updated",
		Data:    resp,
	})
}

func (handler HTTPHandler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ID, err := packageID(r)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}

	if err := handler.PackageUseCase.DeletePackage(ctx, ID); err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "package has been successfully deleted",
	})
}
