package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/crave-catering/cc-order/pkg/errors"
	"github.com/crave-catering/cc-order/pkg/status"
)

type DispatchRepository interface {
	Book(ctx context.Context, req BookingRequest) (BookingResponse, error)
}

type dispatchRepository struct {
	baseURL string
	apiKey  string
	logger  *logrus.Logger
	hc      *http.Client
}

func NewDispatchRepository(baseURL string, apiKey string, logger *logrus.Logger, hc *http.Client) DispatchRepository {
	return &dispatchRepository{
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
		hc:      hc,
	}
}

// Book implements DispatchRepository.
func (r *dispatchRepository) Book(ctx context.Context, req BookingRequest) (BookingResponse, error) {
	url := fmt.Sprintf("%s/v1/deliveries", r.baseURL)

	body, err := json.Marshal(req)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return BookingResponse{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while booking delivery")
	}

	hr, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return BookingResponse{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while booking delivery")
	}

	hr.Header.Add("Accept", "application/json")
	hr.Header.Add("Content-Type", "application/json")
	hr.Header.Add("X-Api-Key", r.apiKey)

	hresp, err := r.hc.Do(hr)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return BookingResponse{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while booking delivery")
	}

	defer hresp.Body.Close()

	respBody, err := io.ReadAll(hresp.Body)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return BookingResponse{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while booking delivery")
	}

	if hresp.StatusCode < 200 || hresp.StatusCode > 299 {
		r.logger.WithContext(ctx).WithField("response", string(respBody)).Error("dispatch provider returned an error")
		return BookingResponse{}, errors.New(http.StatusBadGateway, status.INTERNAL_SERVER_ERROR, "dispatch provider returned an error")
	}

	var resp BookingResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return BookingResponse{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while booking delivery")
	}

	return resp, nil
}
