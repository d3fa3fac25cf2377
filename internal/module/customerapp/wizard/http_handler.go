package wizard

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	internalMiddleware "github.com/crave-catering/cc-order/internal/pkg/middleware"
	"github.com/crave-catering/cc-order/internal/pkg/session"
	"github.com/crave-catering/cc-order/pkg/errors"
	publicMiddleware "github.com/crave-catering/cc-order/pkg/middleware"
	"github.com/crave-catering/cc-order/pkg/response"
	"github.com/crave-catering/cc-order/pkg/status"
)

type HTTPHandler struct {
	Store Store
}

func InitHTTPHandler(router *mux.Router, customerSession *internalMiddleware.CustomerSession, store Store) {
	handler := &HTTPHandler{
		Store: store,
	}

	router.HandleFunc("/cc-order/v1/customerapp/wizard", publicMiddleware.SetRouteChain(handler.GetState, customerSession.Verify)).Methods(http.MethodGet)
	router.HandleFunc("/cc-order/v1/customerapp/wizard", publicMiddleware.SetRouteChain(handler.SaveState, customerSession.Verify)).Methods(http.MethodPut)
	router.HandleFunc("/cc-order/v1/customerapp/wizard", publicMiddleware.SetRouteChain(handler.ClearState, customerSession.Verify)).Methods(http.MethodDelete)
}

func (handler HTTPHandler) GetState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	acc, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})
		return
	}

	state, err := handler.Store.Load(ctx, acc.ID)
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
		Message: "wizard state",
		Data:    state,
	})
}

func (handler HTTPHandler) SaveState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	acc, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})
		return
	}

	state := New()
	if err := json.NewDecoder(r.Body).Decode(state); err != nil {
		response.JSON(w, http.StatusUnprocessableEntity, response.RESTEnvelope{
			Status:  status.UNPROCESSABLE_ENTITY,
			Message: "invalid request body",
		})
		return
	}

	if indexOf(state.Current) < 0 {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: "unknown wizard step",
		})
		return
	}

	if err := handler.Store.Save(ctx, acc.ID, state); err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})
		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "wizard state saved",
		Data:    state,
	})
}

func (handler HTTPHandler) ClearState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	acc, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})
		return
	}

	if err := handler.Store.Clear(ctx, acc.ID); err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})
		return
	}

	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "wizard state cleared",
	})
}
