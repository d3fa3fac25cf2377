package dispatch

import (
	"net/http"

	"github.com/gorilla/mux"

	internalMiddleware "github.com/crave-catering/cc-order/internal/pkg/middleware"
	"github.com/crave-catering/cc-order/pkg/errors"
	publicMiddleware "github.com/crave-catering/cc-order/pkg/middleware"
	"github.com/crave-catering/cc-order/pkg/response"
	"github.com/crave-catering/cc-order/pkg/status"
)

type HTTPHandler struct {
	TrackingUseCase TrackingUseCase
}

func InitHTTPHandler(router *mux.Router, customerSession *internalMiddleware.CustomerSession, trackingUseCase TrackingUseCase) {
	handler := &HTTPHandler{
		TrackingUseCase: trackingUseCase,
	}

	router.HandleFunc("/cc-order/v1/customerapp/orders/{id}/tracking", publicMiddleware.SetRouteChain(handler.GetTracking, customerSession.Verify)).Methods(http.MethodGet)
}

func (handler HTTPHandler) GetTracking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.TrackingUseCase.GetTracking(ctx, mux.Vars(r)["id"])
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
		Message: "delivery tracking",
		Data:    resp,
	})
}
