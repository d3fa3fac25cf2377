package dispatch

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/crave-catering/cc-order/internal/module/customerapp/order"
	"github.com/crave-catering/cc-order/internal/pkg/session"
	"github.com/crave-catering/cc-order/pkg/errors"
	"github.com/crave-catering/cc-order/pkg/status"
)

// FreshnessWindow bounds how often the dispatch provider is polled per
// order.
const FreshnessWindow = 30 * time.Second

type TrackingUseCase interface {
	GetTracking(ctx context.Context, orderID string) (Tracking, error)
}

type trackingUseCase struct {
	logger             *logrus.Logger
	timeout            time.Duration
	orderRepository    order.OrderRepository
	dispatchRepository DispatchRepository
	cache              TrackingCache
}

type TrackingUseCaseProperty struct {
	Logger             *logrus.Logger
	Timeout            time.Duration
	OrderRepository    order.OrderRepository
	DispatchRepository DispatchRepository
	Cache              TrackingCache
}

func NewTrackingUseCase(props TrackingUseCaseProperty) TrackingUseCase {
	return &trackingUseCase{
		logger:             props.Logger,
		timeout:            props.Timeout,
		orderRepository:    props.OrderRepository,
		dispatchRepository: props.DispatchRepository,
		cache:              props.Cache,
	}
}

// GetTracking implements TrackingUseCase. The lookup degrades through three
// tiers: fresh cache, live provider, stale cache, and finally a status
// derived from the order itself. Provider failures never surface to the
// caller.
func (u *trackingUseCase) GetTracking(ctx context.Context, orderID string) (Tracking, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	acc, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		return Tracking{}, err
	}

	o, err := u.orderRepository.FindByID(ctx, orderID, nil)
	if err != nil {
		return Tracking{}, err
	}

	if !o.OwnedBy(acc.ID) {
		return Tracking{}, errors.New(http.StatusNotFound, status.NOT_FOUND, "order is not found")
	}

	now := time.Now()

	cached, hasCache := u.cache.Get(ctx, o.ID)
	if hasCache && cached.Fresh(now, FreshnessWindow) {
		return cached, nil
	}

	if o.DispatchReference == nil {
		return u.fromOrderStatus(o, now), nil
	}

	provider, err := u.dispatchRepository.GetTracking(ctx, *o.DispatchReference)
	if err != nil {
		u.logger.WithContext(ctx).WithError(err).Warn("dispatch provider unavailable, serving degraded tracking")

		if hasCache {
			return cached, nil
		}
		return u.fromOrderStatus(o, now), nil
	}

	t := Tracking{
		OrderID:     o.ID,
		Status:      MapProviderStatus(provider.Status),
		DriverName:  provider.DriverName,
		DriverPhone: provider.DriverPhone,
		UpdatedAt:   now,
		FetchedAt:   now,
	}
	if provider.Latitude != nil && provider.Longitude != nil {
		t.Location = &Geolocation{
			Latitude:  *provider.Latitude,
			Longitude: *provider.Longitude,
		}
	}
	if parsed, err := time.Parse(time.RFC3339, provider.UpdatedAt); err == nil {
		t.UpdatedAt = parsed
	}

	u.cache.Set(ctx, t)

	return t, nil
}

func (u *trackingUseCase) fromOrderStatus(o order.Order, now time.Time) Tracking {
	return Tracking{
		OrderID:   o.ID,
		Status:    MapOrderStatus(o.Status),
		UpdatedAt: o.UpdatedAt,
		FetchedAt: now,
	}
}
