package order

type ListOrdersRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=draft pending_payment confirmed preparing ready_for_delivery out_for_delivery delivered cancelled"`
	Page   int64  `json:"page" validate:"gte=1"`
	Size   int64  `json:"size" validate:"gte=1,lte=100"`
}

type AdvanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed preparing ready_for_delivery out_for_delivery delivered cancelled"`
}
