package pricing

import "math"

// Process-wide pricing constants. The lunch rate is the single source of
// truth for per-attendee lunch pricing everywhere in the service.
const (
	TaxRate        = 0.0825
	DeliveryFee    = 25.00
	LunchPerPerson = 24.95
)

const (
	BreakfastContinental = "continental"
	BreakfastHot         = "hot"
	BreakfastExecutive   = "executive"

	SnackAfternoon = "afternoon"
	SnackPremium   = "premium"
	SnackAllDay    = "all_day"
)

var breakfastPricePerPerson = map[string]float64{
	BreakfastContinental: 24.95,
	BreakfastHot:         32.95,
	BreakfastExecutive:   42.95,
}

var snackPricePerPerson = map[string]float64{
	SnackAfternoon: 12.95,
	SnackPremium:   18.95,
	SnackAllDay:    24.95,
}

// BreakfastPrice returns the per-person rate for a breakfast package, or
// false for an unknown package type.
func BreakfastPrice(packageType string) (float64, bool) {
	p, ok := breakfastPricePerPerson[packageType]
	return p, ok
}

func SnackPrice(packageType string) (float64, bool) {
	p, ok := snackPricePerPerson[packageType]
	return p, ok
}

type BreakfastSelection struct {
	PackageType string `json:"package_type"`
	Headcount   int64  `json:"headcount"`
}

type SnackSelection struct {
	PackageType string `json:"package_type"`
}

// Selection is everything the calculator needs to derive an order's money
// fields. It is re-derivable from a stored order at any time.
type Selection struct {
	Breakfast        *BreakfastSelection
	LunchCount       int64
	Snacks           *SnackSelection
	Headcount        int64
	Discount         float64
	WaiveDeliveryFee bool
}

type Quote struct {
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
}

// Round2 rounds a money amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Calculate folds the selections into a quote. Missing selections
// contribute zero. The discount is applied before tax and clamps the
// post-discount subtotal at zero; it can never drive the total negative.
func Calculate(sel Selection) Quote {
	var subtotal float64

	if sel.Breakfast != nil {
		if price, ok := BreakfastPrice(sel.Breakfast.PackageType); ok {
			subtotal += price * float64(sel.Breakfast.Headcount)
		}
	}

	subtotal += LunchPerPerson * float64(sel.LunchCount)

	if sel.Snacks != nil {
		if price, ok := SnackPrice(sel.Snacks.PackageType); ok {
			subtotal += price * float64(sel.Headcount)
		}
	}

	subtotal = Round2(subtotal)

	discounted := subtotal - sel.Discount
	if discounted < 0 {
		discounted = 0
	}

	fee := DeliveryFee
	if sel.WaiveDeliveryFee {
		fee = 0
	}

	tax := Round2(discounted * TaxRate)

	return Quote{
		Subtotal:    subtotal,
		Discount:    Round2(subtotal - discounted),
		Tax:         tax,
		DeliveryFee: fee,
		Total:       Round2(discounted + tax + fee),
	}
}
