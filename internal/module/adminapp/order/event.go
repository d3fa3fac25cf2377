package order

type OrderStatusChangedEvent struct {
	ID                string  `json:"id"`
	PreviousStatus    string  `json:"previous_status"`
	Status            string  `json:"status"`
	DispatchReference *string `json:"dispatch_reference,omitempty"`
}
