package order

// Status is the order lifecycle enumeration. Transitions move strictly
// forward; cancellation is the only exit from non-terminal states other
// than delivered.
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

// statusTable is the single source of truth for labels, display colors and
// legal predecessor states.
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

// CanTransitionTo reports whether moving from s to next is legal.
func (s Status) CanTransitionTo(next Status) bool {
	prop, ok := statusTable[next]
	if !ok {
		return false
	}

	for _, from := range prop.AllowedFrom {
		if from == s {
			return true
		}
	}

	return false
}

// Mutable reports whether the owner may still edit the order.
func (s Status) Mutable() bool {
	return s == StatusDraft || s == StatusPendingPayment
}

// Cancellable reports whether the order may still be cancelled.
func (s Status) Cancellable() bool {
	return s.CanTransitionTo(StatusCancelled)
}

// Shareable reports whether a share link may be issued for the order.
func (s Status) Shareable() bool {
	switch s {
	case StatusDraft, StatusPendingPayment, StatusConfirmed, StatusPreparing:
		return true
	default:
		return false
	}
}

// Terminal reports whether the order has reached an end state.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}
