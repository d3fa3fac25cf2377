package order

import "github.com/crave-catering/cc-order/internal/module/customerapp/pricing"

type BreakfastSelectionRequest struct {
	PackageType string `json:"package_type" validate:"oneof=continental hot executive"`
	Headcount   int64  `json:"headcount" validate:"required,gt=0"`
}

type SnackSelectionRequest struct {
	PackageType string `json:"package_type" validate:"oneof=afternoon premium all_day"`
}

type DeliveryInfoRequest struct {
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	Zip           string `json:"zip" validate:"required"`
	PreferredTime string `json:"preferred_time" validate:"required"`
	Instructions  string `json:"instructions"`
}

type CreateOrderRequest struct {
	EventName    string `json:"event_name" validate:"required"`
	EventDate    string `json:"event_date" validate:"required"`
	EventTime    string `json:"event_time" validate:"required"`
	Headcount    int64  `json:"headcount" validate:"required,gte=10"`
	ContactName  string `json:"contact_name" validate:"required"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	ContactPhone string `json:"contact_phone" validate:"required"`

	Breakfast     *BreakfastSelectionRequest `json:"breakfast,omitempty"`
	Snacks        *SnackSelectionRequest     `json:"snacks,omitempty"`
	Delivery      *DeliveryInfoRequest       `json:"delivery,omitempty"`
	PromotionCode string                     `json:"promotion_code,omitempty"`
}

type UpdateOrderRequest struct {
	EventName    string `json:"event_name" validate:"required"`
	EventDate    string `json:"event_date" validate:"required"`
	EventTime    string `json:"event_time" validate:"required"`
	Headcount    int64  `json:"headcount" validate:"required,gte=10"`
	ContactName  string `json:"contact_name" validate:"required"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	ContactPhone string `json:"contact_phone" validate:"required"`

	Breakfast *BreakfastSelectionRequest `json:"breakfast,omitempty"`
	Snacks    *SnackSelectionRequest     `json:"snacks,omitempty"`
	Delivery  *DeliveryInfoRequest       `json:"delivery,omitempty"`
}

type ListOrdersRequest struct {
	Page int64 `validate:"required,gte=1"`
	Size int64 `validate:"required,gte=1,lte=100"`
}

type SubmitLunchSelectionRequest struct {
	AttendeeName  string `json:"attendee_name" validate:"required"`
	AttendeeEmail string `json:"attendee_email" validate:"required,email"`
	Entree        string `json:"entree" validate:"required"`
	DietaryNote   string `json:"dietary_note"`
}

type PricePreviewRequest struct {
	Headcount     int64                      `json:"headcount" validate:"required,gt=0"`
	LunchCount    int64                      `json:"lunch_count" validate:"gte=0"`
	Breakfast     *BreakfastSelectionRequest `json:"breakfast,omitempty"`
	Snacks        *SnackSelectionRequest     `json:"snacks,omitempty"`
	PromotionCode string                     `json:"promotion_code,omitempty"`
}

func (req PricePreviewRequest) selection() pricing.Selection {
	sel := pricing.Selection{
		LunchCount: req.LunchCount,
		Headcount:  req.Headcount,
	}
	if req.Breakfast != nil {
		sel.Breakfast = &pricing.BreakfastSelection{
			PackageType: req.Breakfast.PackageType,
			Headcount:   req.Breakfast.Headcount,
		}
	}
	if req.Snacks != nil {
		sel.Snacks = &pricing.SnackSelection{PackageType: req.Snacks.PackageType}
	}

	return sel
}
