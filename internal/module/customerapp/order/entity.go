package order

import (
	"time"

	"github.com/crave-catering/cc-order/internal/module/customerapp/pricing"
)

// ShareTokenTTL is how long a share link stays valid after issuance.
const ShareTokenTTL = 7 * 24 * time.Hour

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

	Breakfast *pricing.BreakfastSelection
	Snacks    *pricing.SnackSelection
	Delivery  *DeliveryInfo

	PromotionCode *string

	Subtotal    float64
	Discount    float64
	Tax         float64
	DeliveryFee float64
	Total       float64

	TransactionID       *string
	ShareToken          *string
	ShareTokenExpiresAt *time.Time
	DispatchReference   *string

	LunchSelections []LunchSelection

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Selection rebuilds the calculator input from the stored order, so money
// fields can be re-derived and validated at any time.
func (o Order) Selection() pricing.Selection {
	return pricing.Selection{
		Breakfast:        o.Breakfast,
		LunchCount:       int64(len(o.LunchSelections)),
		Snacks:           o.Snacks,
		Headcount:        o.Headcount,
		Discount:         o.Discount,
		WaiveDeliveryFee: o.DeliveryFee == 0,
	}
}

// OwnedBy reports whether the given customer account owns the order. Guest
// orders have no owning account.
func (o Order) OwnedBy(customerID int64) bool {
	return o.CustomerID != nil && *o.CustomerID == customerID
}

// ShareTokenValid reports whether the supplied token matches the stored one
// and the stored expiry is strictly in the future.
func (o Order) ShareTokenValid(token string, now time.Time) bool {
	if o.ShareToken == nil || o.ShareTokenExpiresAt == nil || token == "" {
		return false
	}

	return *o.ShareToken == token && now.Before(*o.ShareTokenExpiresAt)
}

// LunchSelection is one attendee's individually submitted meal choice,
// unique per order by attendee email.
type LunchSelection struct {
	ID            int64
	OrderID       string
	AttendeeName  string
	AttendeeEmail string
	Entree        string
	DietaryNote   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
