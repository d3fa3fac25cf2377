package promotion

import "time"

type PromotionResponse struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	Type       string    `json:"type"`
	Value      float64   `json:"value"`
	Status     string    `json:"status"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
	UsageLimit *int64    `json:"usage_limit,omitempty"`
	UsageCount int64     `json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (r *PromotionResponse) PopulateFromEntity(p Promotion) {
	r.ID = p.ID
	r.Code = p.Code
	r.Type = p.Type
	r.Value = p.Value
	r.Status = p.Status
	r.ValidFrom = p.ValidFrom
	r.ValidUntil = p.ValidUntil
	r.UsageLimit = p.UsageLimit
	r.UsageCount = p.UsageCount
	r.CreatedAt = p.CreatedAt
	r.UpdatedAt = p.UpdatedAt
}

type ListPromotionsResponse struct {
	Promotions []PromotionResponse `json:"promotions"`
}
