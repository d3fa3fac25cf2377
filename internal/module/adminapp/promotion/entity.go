package promotion

import "time"

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
