package promotion

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/crave-catering/cc-order/pkg/pubsub"
)

type PromotionUseCase interface {
	CreatePromotion(ctx context.Context, req CreatePromotionRequest) (PromotionResponse, error)
	GetPromotion(ctx context.Context, ID int64) (PromotionResponse, error)
	ListPromotions(ctx context.Context, filterStatus string) (ListPromotionsResponse, error)
	UpdatePromotion(ctx context.Context, ID int64, req UpdatePromotionRequest) (PromotionResponse, error)
	DeletePromotion(ctx context.Context, ID int64) error
}

type promotionUseCase struct {
	logger              *logrus.Logger
	timeout             time.Duration
	promotionRepository PromotionRepository
	publisher           pubsub.Publisher
}

type PromotionUseCaseProperty struct {
	Logger              *logrus.Logger
	Timeout             time.Duration
	PromotionRepository PromotionRepository
	Publisher           pubsub.Publisher
}

func NewPromotionUseCase(props PromotionUseCaseProperty) PromotionUseCase {
	return &promotionUseCase{
		logger:              props.Logger,
		timeout:             props.Timeout,
		promotionRepository: props.PromotionRepository,
		publisher:           props.Publisher,
	}
}

// syncToCRM pushes the promotion change to the marketing side. A failed sync
// never fails the admin operation, the CRM catches up from the topic later.
func (u *promotionUseCase) syncToCRM(ctx context.Context, action string, p Promotion) {
	event := PromotionSyncEvent{
		Action:    action,
		Promotion: p,
	}

	buff, _ := json.Marshal(event)
	if err := u.publisher.Publish(ctx, "crm-promotion-sync", fmt.Sprintf("%d", p.ID), nil, buff); err != nil {
		u.logger.WithContext(ctx).WithError(err).Warn("unable to publish promotion sync event")
	}
}

// CreatePromotion implements PromotionUseCase.
func (u *promotionUseCase) CreatePromotion(ctx context.Context, req CreatePromotionRequest) (PromotionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	now := time.Now()

	p := Promotion{
		Code:       req.Code,
		Type:       req.Type,
		Value:      req.Value,
		Status:     req.Status,
		ValidFrom:  req.ValidFrom,
		ValidUntil: req.ValidUntil,
		UsageLimit: req.UsageLimit,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	ID, err := u.promotionRepository.Save(ctx, p, nil)
	if err != nil {
		return PromotionResponse{}, err
	}
	p.ID = ID

	u.syncToCRM(ctx, "created", p)

	resp := PromotionResponse{}
	resp.PopulateFromEntity(p)

	return resp, nil
}

// GetPromotion implements PromotionUseCase.
func (u *promotionUseCase) GetPromotion(ctx context.Context, ID int64) (PromotionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	p, err := u.promotionRepository.FindByID(ctx, ID, nil)
	if err != nil {
		return PromotionResponse{}, err
	}

	resp := PromotionResponse{}
	resp.PopulateFromEntity(p)

	return resp, nil
}

// ListPromotions implements PromotionUseCase.
func (u *promotionUseCase) ListPromotions(ctx context.Context, filterStatus string) (ListPromotionsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	bunchOfPromotions, err := u.promotionRepository.FindMany(ctx, filterStatus, nil)
	if err != nil {
		return ListPromotionsResponse{}, err
	}

	promotions := make([]PromotionResponse, 0, len(bunchOfPromotions))
	for _, p := range bunchOfPromotions {
		resp := PromotionResponse{}
		resp.PopulateFromEntity(p)
		promotions = append(promotions, resp)
	}

	return ListPromotionsResponse{Promotions: promotions}, nil
}

// UpdatePromotion implements PromotionUseCase.
func (u *promotionUseCase) UpdatePromotion(ctx context.Context, ID int64, req UpdatePromotionRequest) (PromotionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	p, err := u.promotionRepository.FindByID(ctx, ID, nil)
	if err != nil {
		return PromotionResponse{}, err
	}

	p.Code = req.Code
	p.Type = req.Type
	p.Value = req.Value
	p.Status = req.Status
	p.ValidFrom = req.ValidFrom
	p.ValidUntil = req.ValidUntil
	p.UsageLimit = req.UsageLimit
	p.UpdatedAt = time.Now()

	if err := u.promotionRepository.Update(ctx, ID, p, nil); err != nil {
		return PromotionResponse{}, err
	}

	u.syncToCRM(ctx, "updated", p)

	resp := PromotionResponse{}
	resp.PopulateFromEntity(p)

	return resp, nil
}

// DeletePromotion implements PromotionUseCase.
func (u *promotionUseCase) DeletePromotion(ctx context.Context, ID int64) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	p, err := u.promotionRepository.FindByID(ctx, ID, nil)
	if err != nil {
		return err
	}

	if err := u.promotionRepository.Delete(ctx, ID, nil); err != nil {
		return err
	}

	u.syncToCRM(ctx, "deleted", p)

	return nil
}
