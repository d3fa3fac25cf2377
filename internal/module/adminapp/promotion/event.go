package promotion

type PromotionSyncEvent struct {
	Action    string    `json:"action"`
	Promotion Promotion `json:"promotion"`
}
