package menu

import "time"

const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategorySnack     = "snack"
)

// CateringPackage is an admin-managed menu entry: the display menu behind
// the wizard's package choices.
type CateringPackage struct {
	ID             int64
	Category       string
	Code           string
	Name           string
	Description    string
	PricePerPerson float64
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
