package dispatch

import (
	"time"

	"github.com/crave-catering/cc-order/internal/module/customerapp/order"
)

// DeliveryStatus is this system's own delivery vocabulary, decoupled from
// whatever the dispatch provider reports.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusAssigned  DeliveryStatus = "assigned"
	DeliveryStatusPickedUp  DeliveryStatus = "picked_up"
	DeliveryStatusInTransit DeliveryStatus = "in_transit"
	DeliveryStatusArriving  DeliveryStatus = "arriving"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusFailed    DeliveryStatus = "failed"
)

// providerStatusMap translates the provider's vocabulary. Unrecognized
// provider statuses fall back to pending rather than erroring.
var providerStatusMap = map[string]DeliveryStatus{
	"PENDING":    DeliveryStatusPending,
	"ASSIGNED":   DeliveryStatusAssigned,
	"STARTED":    DeliveryStatusAssigned,
	"PICKED_UP":  DeliveryStatusPickedUp,
	"ON_THE_WAY": DeliveryStatusInTransit,
	"ARRIVING":   DeliveryStatusArriving,
	"ARRIVED":    DeliveryStatusArriving,
	"DELIVERED":  DeliveryStatusDelivered,
	"CANCELLED":  DeliveryStatusFailed,
	"FAILED":     DeliveryStatusFailed,
}

func MapProviderStatus(providerStatus string) DeliveryStatus {
	if s, ok := providerStatusMap[providerStatus]; ok {
		return s
	}

	return DeliveryStatusPending
}

// MapOrderStatus derives a delivery status purely from the order's own
// lifecycle, for orders with no dispatch record yet.
func MapOrderStatus(orderStatus order.Status) DeliveryStatus {
	switch orderStatus {
	case order.StatusReadyForDelivery:
		return DeliveryStatusAssigned
	case order.StatusOutForDelivery:
		return DeliveryStatusInTransit
	case order.StatusDelivered:
		return DeliveryStatusDelivered
	case order.StatusCancelled:
		return DeliveryStatusFailed
	default:
		return DeliveryStatusPending
	}
}

type Geolocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Tracking is the read-mostly delivery projection surfaced to customers.
type Tracking struct {
	OrderID     string         `json:"order_id"`
	Status      DeliveryStatus `json:"status"`
	DriverName  string         `json:"driver_name,omitempty"`
	DriverPhone string         `json:"driver_phone,omitempty"`
	Location    *Geolocation   `json:"location,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at"`
	FetchedAt   time.Time      `json:"fetched_at"`
}

// Fresh reports whether the projection was fetched recently enough to be
// served without consulting the provider again.
func (t Tracking) Fresh(now time.Time, window time.Duration) bool {
	return now.Sub(t.FetchedAt) < window
}

// ProviderTracking is the dispatch provider's wire shape.
type ProviderTracking struct {
	Reference   string   `json:"reference"`
	Status      string   `json:"status"`
	DriverName  string   `json:"driver_name"`
	DriverPhone string   `json:"driver_phone"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	UpdatedAt   string   `json:"updated_at"`
}
