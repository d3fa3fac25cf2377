package payment

const (
	TransactionStatusPending    = "pending"
	TransactionStatusSettlement = "settlement"
	TransactionStatusFailed     = "failed"
)

type ChargeRequest struct {
	OrderID       string  `json:"order_id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	CustomerEmail string  `json:"customer_email"`
}

type ChargeResponse struct {
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	PaymentURL        string `json:"payment_url"`
}
