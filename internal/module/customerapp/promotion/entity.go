package promotion

import (
	"net/http"
	"time"

	"github.com/crave-catering/cc-order/internal/module/customerapp/pricing"
	"github.com/crave-catering/cc-order/pkg/errors"
	"github.com/crave-catering/cc-order/pkg/status"
)

const (
	TypePercentage   = "percentage"
	TypeFixedAmount  = "fixed_amount"
	TypeFreeItem     = "free_item"
	TypeFreeDelivery = "free_delivery"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Promotion struct {
	ID         int64
	Code       string
	Type       string
	Value      float64
	Status     string
	ValidFrom  time.Time
	ValidUntil time.Time
	UsageLimit *int64
	UsageCount int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Usable checks the promotion gate: active, inside its validity window and
// under its usage limit when one is set.
func (p Promotion) Usable(now time.Time) error {
	if p.Status != StatusActive {
		return errors.New(http.StatusBadRequest, status.PROMOTION_INVALID, "promotion code is not active")
	}

	if now.Before(p.ValidFrom) || now.After(p.ValidUntil) {
		return errors.New(http.StatusBadRequest, status.PROMOTION_EXPIRED, "promotion code is outside its validity window")
	}

	if p.UsageLimit != nil && p.UsageCount >= *p.UsageLimit {
		return errors.New(http.StatusBadRequest, status.PROMOTION_USAGE_LIMIT, "promotion code has reached its usage limit")
	}

	return nil
}

// Discount resolves the promotion into a discount amount against the given
// subtotal. free_delivery waives the fee instead of discounting, and
// free_item is informational only; both return zero here.
func (p Promotion) Discount(subtotal float64) float64 {
	switch p.Type {
	case TypePercentage:
		return pricing.Round2(subtotal * p.Value / 100)
	case TypeFixedAmount:
		if p.Value > subtotal {
			return subtotal
		}
		return p.Value
	default:
		return 0
	}
}

// WaivesDeliveryFee reports whether the promotion zeroes the delivery fee.
func (p Promotion) WaivesDeliveryFee() bool {
	return p.Type == TypeFreeDelivery
}
