package order

import "time"

type OrderResponse struct {
	ID            string `json:"id"`
	CustomerID    *int64 `json:"customer_id,omitempty"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Status        string `json:"status"`
	StatusLabel   string `json:"status_label"`
	StatusColor   string `json:"status_color"`

	EventName string `json:"event_name"`
	EventDate string `json:"event_date"`
	EventTime string `json:"event_time"`
	Headcount int64  `json:"headcount"`

	Delivery *DeliveryInfo `json:"delivery,omitempty"`

	PromotionCode *string `json:"promotion_code,omitempty"`

	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`

	DispatchReference *string `json:"dispatch_reference,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *OrderResponse) PopulateFromEntity(o Order) {
	r.ID = o.ID
	r.CustomerID = o.CustomerID
	r.CustomerName = o.CustomerName
	r.CustomerEmail = o.CustomerEmail
	r.CustomerPhone = o.CustomerPhone
	r.Status = string(o.Status)
	r.StatusLabel = o.Status.Label()
	r.StatusColor = o.Status.Color()
	r.EventName = o.EventName
	r.EventDate = o.EventDate
	r.EventTime = o.EventTime
	r.Headcount = o.Headcount
	r.Delivery = o.Delivery
	r.PromotionCode = o.PromotionCode
	r.Subtotal = o.Subtotal
	r.Discount = o.Discount
	r.Tax = o.Tax
	r.DeliveryFee = o.DeliveryFee
	r.Total = o.Total
	r.DispatchReference = o.DispatchReference
	r.CreatedAt = o.CreatedAt
	r.UpdatedAt = o.UpdatedAt
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Page   int64           `json:"page"`
	Size   int64           `json:"size"`
}
