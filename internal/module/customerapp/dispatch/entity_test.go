package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/crave-catering/cc-order/internal/module/customerapp/order"
)

func TestMapProviderStatus(t *testing.T) {
	tests := []struct {
		provider string
		expected DeliveryStatus
	}{
		{provider: "PENDING", expected: DeliveryStatusPending},
		{provider: "ASSIGNED", expected: DeliveryStatusAssigned},
		{provider: "STARTED", expected: DeliveryStatusAssigned},
		{provider: "PICKED_UP", expected: DeliveryStatusPickedUp},
		{provider: "ON_THE_WAY", expected: DeliveryStatusInTransit},
		{provider: "ARRIVING", expected: DeliveryStatusArriving},
		{provider: "ARRIVED", expected: DeliveryStatusArriving},
		{provider: "DELIVERED", expected: DeliveryStatusDelivered},
		{provider: "CANCELLED", expected: DeliveryStatusFailed},
		{provider: "FAILED", expected: DeliveryStatusFailed},
		{provider: "SOMETHING_NEW", expected: DeliveryStatusPending},
		{provider: "", expected: DeliveryStatusPending},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, MapProviderStatus(tc.provider), "provider status %q", tc.provider)
	}
}

func TestMapOrderStatus(t *testing.T) {
	assert.Equal(t, DeliveryStatusAssigned, MapOrderStatus(order.StatusReadyForDelivery))
	assert.Equal(t, DeliveryStatusInTransit, MapOrderStatus(order.StatusOutForDelivery))
	assert.Equal(t, DeliveryStatusDelivered, MapOrderStatus(order.StatusDelivered))
	assert.Equal(t, DeliveryStatusFailed, MapOrderStatus(order.StatusCancelled))
	assert.Equal(t, DeliveryStatusPending, MapOrderStatus(order.StatusConfirmed))
	assert.Equal(t, DeliveryStatusPending, MapOrderStatus(order.StatusDraft))
}

func TestTrackingFresh(t *testing.T) {
	now := time.Now()

	fresh := Tracking{FetchedAt: now.Add(-10 * time.Second)}
	assert.True(t, fresh.Fresh(now, FreshnessWindow))

	stale := Tracking{FetchedAt: now.Add(-FreshnessWindow)}
	assert.False(t, stale.Fresh(now, FreshnessWindow))
}
