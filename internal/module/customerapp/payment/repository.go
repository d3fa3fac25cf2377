package payment

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

type PaymentRepository interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResponse, error)
}

type paymentRepository struct {
	baseURL      string
	basicAuthKey string
	logger       *logrus.Logger
	hc           *http.Client
}

func NewPaymentRepository(baseURL string, basicAuthKey string, logger *logrus.Logger, hc *http.Client) PaymentRepository {
	return &paymentRepository{
		baseURL:      baseURL,
		basicAuthKey: basicAuthKey,
		logger:       logger,
		hc:           hc,
	}
}

// Charge implements PaymentRepository.
func (r *paymentRepository) Charge(ctx context.Context, req ChargeRequest) (ChargeResponse, error) {
	reqBuff, _ := json.Marshal(req)
	body := bytes.NewBuffer(reqBuff)
	url := fmt.Sprintf("%s/v1/charges", r.baseURL)

	hr, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return ChargeResponse{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while charging payment")
	}

	hr.Header.Add("Content-Type", "application/json")
	hr.Header.Add("Accept", "application/json")
	hr.Header.Add("Authorization", fmt.Sprintf("Basic %s", r.basicAuthKey))

	hresp, err := r.hc.Do(hr)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return ChargeResponse{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while charging payment")
	}

	defer hresp.Body.Close()

	respBody, err := io.ReadAll(hresp.Body)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return ChargeResponse{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while charging payment")
	}

	if hresp.StatusCode < 200 || hresp.StatusCode > 299 {
		r.logger.WithContext(ctx).WithField("response", string(respBody)).Error("payment processor rejected the charge")
		return ChargeResponse{}, errors.New(http.StatusBadGateway, status.PAYMENT_FAILED, "payment processor rejected the charge")
	}

	var resp ChargeResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return ChargeResponse{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while charging payment")
	}

	return resp, nil
}
