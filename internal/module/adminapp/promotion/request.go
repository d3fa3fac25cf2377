package promotion

import "time"

type CreatePromotionRequest struct {
	Code       string    `json:"code" validate:"required,uppercase"`
	Type       string    `json:"type" validate:"oneof=percentage fixed_amount free_item free_delivery"`
	Value      float64   `json:"value" validate:"gte=0"`
	Status     string    `json:"status" validate:"oneof=active inactive"`
	ValidFrom  time.Time `json:"valid_from" validate:"required"`
	ValidUntil time.Time `json:"valid_until" validate:"required,gtfield=ValidFrom"`
	UsageLimit *int64    `json:"usage_limit" validate:"omitempty,gte=1"`
}

type UpdatePromotionRequest struct {
	Code       string    `json:"code" validate:"required,uppercase"`
	Type       string    `json:"type" validate:"oneof=percentage fixed_amount free_item free_delivery"`
	Value      float64   `json:"value" validate:"gte=0"`
	Status     string    `json:"status" validate:"oneof=active inactive"`
	ValidFrom  time.Time `json:"valid_from" validate:"required"`
	ValidUntil time.Time `json:"valid_until" validate:"required,gtfield=ValidFrom"`
	UsageLimit *int64    `json:"usage_limit" validate:"omitempty,gte=1"`
}
