package order

import (
	"time"
)

type Status string

const (
	StatusDraft            Status = "draft"
	StatusPendingPayment   Status = "pending_payment"
	StatusConfirmed        Status = "confirmed"
	StatusPreparing        Status = "preparing"
	StatusReadyForDelivery Status = "ready_for_delivery"
	StatusOutForDelivery   Status = "out_for_delivery"
	StatusDelivered        Status = "delivered"
	StatusCancelled        Status = "cancelled"
)

type statusProperty struct {
	Label       string
	Color       string
	AllowedFrom []Status
}

var statusTable = map[Status]statusProperty{
	StatusDraft:            {Label: "Draft", Color: "gray", AllowedFrom: nil},
	StatusPendingPayment:   {Label: "Pending Payment", Color: "yellow", AllowedFrom: []Status{StatusDraft}},
	StatusConfirmed:        {Label: "Confirmed", Color: "blue", AllowedFrom: []Status{StatusPendingPayment}},
	StatusPreparing:        {Label: "Preparing", Color: "orange", AllowedFrom: []Status{StatusConfirmed}},
	StatusReadyForDelivery: {Label: "Ready for Delivery", Color: "purple", AllowedFrom: []Status{StatusPreparing}},
	StatusOutForDelivery:   {Label: "Out for Delivery", Color: "indigo", AllowedFrom: []Status{StatusReadyForDelivery}},
	StatusDelivered:        {Label: "Delivered", Color: "green", AllowedFrom: []Status{StatusOutForDelivery}},
	StatusCancelled:        {Label: "Cancelled", Color: "red", AllowedFrom: []Status{StatusDraft, StatusPendingPayment, StatusConfirmed}},
}

func (s Status) Valid() bool {
	_, ok := statusTable[s]
	return ok
}

func (s Status) Label() string {
	return statusTable[s].Label
}

func (s Status) Color() string {
	return statusTable[s].Color
}

// CanTransitionTo reports whether the target status accepts s as a source.
func (s Status) CanTransitionTo(target Status) bool {
	for _, from := range statusTable[target].AllowedFrom {
		if from == s {
			return true
		}
	}

	return false
}

type DeliveryInfo struct {
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	PreferredTime string `json:"preferred_time"`
	Instructions  string `json:"instructions,omitempty"`
}

type Order struct {
	ID            string
	CustomerID    *int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Status        Status

	EventName string
	EventDate string
	EventTime string
	Headcount int64

	Delivery *DeliveryInfo

	PromotionCode *string

	Subtotal    float64
	Discount    float64
	Tax         float64
	DeliveryFee float64
	Total       float64

	DispatchReference *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
