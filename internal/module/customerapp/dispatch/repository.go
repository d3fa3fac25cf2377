package dispatch

import (
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
	GetTracking(ctx context.Context, reference string) (ProviderTracking, error)
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

// GetTracking implements DispatchRepository.
func (r *dispatchRepository) GetTracking(ctx context.Context, reference string) (ProviderTracking, error) {
	url := fmt.Sprintf("%s/v1/deliveries/%s", r.baseURL, reference)

	hr, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return ProviderTracking{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting delivery tracking")
	}

	hr.Header.Add("Accept", "application/json")
	hr.Header.Add("X-Api-Key", r.apiKey)

	hresp, err := r.hc.Do(hr)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return ProviderTracking{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting delivery tracking")
	}

	defer hresp.Body.Close()

	respBody, err := io.ReadAll(hresp.Body)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return ProviderTracking{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting delivery tracking")
	}

	if hresp.StatusCode < 200 || hresp.StatusCode > 299 {
		r.logger.WithContext(ctx).WithField("response", string(respBody)).Error("dispatch provider returned an error")
		return ProviderTracking{}, errors.New(http.StatusBadGateway, status.INTERNAL_SERVER_ERROR, "dispatch provider returned an error")
	}

	var resp ProviderTracking
	if err := json.Unmarshal(respBody, &resp); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return ProviderTracking{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting delivery tracking")
	}

	return resp, nil
}
