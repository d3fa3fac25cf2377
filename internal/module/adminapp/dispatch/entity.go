package dispatch

type BookingRequest struct {
	OrderID        string `json:"order_id"`
	PickupName     string `json:"pickup_name"`
	DropoffAddress string `json:"dropoff_address"`
	DropoffCity    string `json:"dropoff_city"`
	DropoffState   string `json:"dropoff_state"`
	DropoffZip     string `json:"dropoff_zip"`
	PreferredTime  string `json:"preferred_time"`
	Instructions   string `json:"instructions,omitempty"`
	ContactName    string `json:"contact_name"`
	ContactPhone   string `json:"contact_phone"`
}

type BookingResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}
