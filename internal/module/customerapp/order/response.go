package order

import (
	"time"

	"github.com/crave-catering/cc-order/internal/module/customerapp/pricing"
)

type OrderResponse struct {
	ID            string  `json:"id"`
	CustomerID    *int64  `json:"customer_id,omitempty"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone string  `json:"customer_phone"`
	Status        string  `json:"status"`
	StatusLabel   string  `json:"status_label"`
	StatusColor   string  `json:"status_color"`

	EventName string `json:"event_name"`
	EventDate string `json:"event_date"`
	EventTime string `json:"event_time"`
	Headcount int64  `json:"headcount"`

	Breakfast *pricing.BreakfastSelection `json:"breakfast,omitempty"`
	Snacks    *pricing.SnackSelection     `json:"snacks,omitempty"`
	Delivery  *DeliveryInfo               `json:"delivery,omitempty"`

	PromotionCode *string `json:"promotion_code,omitempty"`

	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`

	TransactionID *string `json:"transaction_id,omitempty"`

	LunchSelections []LunchSelectionResponse `json:"lunch_selections"`

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
	r.Breakfast = o.Breakfast
	r.Snacks = o.Snacks
	r.Delivery = o.Delivery
	r.PromotionCode = o.PromotionCode
	r.Subtotal = o.Subtotal
	r.Discount = o.Discount
	r.Tax = o.Tax
	r.DeliveryFee = o.DeliveryFee
	r.Total = o.Total
	r.TransactionID = o.TransactionID
	r.CreatedAt = o.CreatedAt
	r.UpdatedAt = o.UpdatedAt

	selections := make([]LunchSelectionResponse, len(o.LunchSelections))
	for k, v := range o.LunchSelections {
		selections[k] = LunchSelectionResponse{
			AttendeeName:  v.AttendeeName,
			AttendeeEmail: v.AttendeeEmail,
			Entree:        v.Entree,
			DietaryNote:   v.DietaryNote,
			SubmittedAt:   v.UpdatedAt,
		}
	}
	r.LunchSelections = selections
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
}

type LunchSelectionResponse struct {
	AttendeeName  string    `json:"attendee_name"`
	AttendeeEmail string    `json:"attendee_email"`
	Entree        string    `json:"entree"`
	DietaryNote   string    `json:"dietary_note,omitempty"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// SharedOrderResponse is the restricted projection returned to share-link
// holders: event details and lunch selections only.
type SharedOrderResponse struct {
	ID              string                   `json:"id"`
	EventName       string                   `json:"event_name"`
	EventDate       string                   `json:"event_date"`
	EventTime       string                   `json:"event_time"`
	Headcount       int64                    `json:"headcount"`
	LunchSelections []LunchSelectionResponse `json:"lunch_selections"`
}

func (r *SharedOrderResponse) PopulateFromEntity(o Order) {
	r.ID = o.ID
	r.EventName = o.EventName
	r.EventDate = o.EventDate
	r.EventTime = o.EventTime
	r.Headcount = o.Headcount

	selections := make([]LunchSelectionResponse, len(o.LunchSelections))
	for k, v := range o.LunchSelections {
		selections[k] = LunchSelectionResponse{
			AttendeeName:  v.AttendeeName,
			AttendeeEmail: v.AttendeeEmail,
			Entree:        v.Entree,
			DietaryNote:   v.DietaryNote,
			SubmittedAt:   v.UpdatedAt,
		}
	}
	r.LunchSelections = selections
}

type ShareLinkResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
