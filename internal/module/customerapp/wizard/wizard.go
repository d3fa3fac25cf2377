package wizard

import (
	"github.com/crave-catering/cc-order/internal/module/customerapp/pricing"
)

type Step string

const (
	StepEventDetails Step = "event-details"
	StepBreakfast    Step = "breakfast"
	StepLunch        Step = "lunch"
	StepSnacksDrinks Step = "snacks-drinks"
	StepDelivery     Step = "delivery"
	StepPayment      Step = "payment"
)

// Steps is the fixed wizard sequence; navigation never leaves it.
var Steps = []Step{
	StepEventDetails,
	StepBreakfast,
	StepLunch,
	StepSnacksDrinks,
	StepDelivery,
	StepPayment,
}

// MinimumHeadcount is the smallest event size the wizard accepts.
const MinimumHeadcount = 10

type EventDetails struct {
	EventName    string `json:"event_name"`
	EventDate    string `json:"event_date"`
	EventTime    string `json:"event_time"`
	Headcount    int64  `json:"headcount"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

type DeliveryInfo struct {
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	PreferredTime string `json:"preferred_time"`
	Instructions  string `json:"instructions"`
}

// Draft is the serializable in-progress order carried across steps.
type Draft struct {
	EventDetails  EventDetails                `json:"event_details"`
	Breakfast     *pricing.BreakfastSelection `json:"breakfast,omitempty"`
	LunchCount    int64                       `json:"lunch_count"`
	Snacks        *pricing.SnackSelection     `json:"snacks,omitempty"`
	Delivery      DeliveryInfo                `json:"delivery"`
	PromotionCode string                      `json:"promotion_code,omitempty"`
}

// Selection maps the draft onto the calculator's input shape.
func (d Draft) Selection(discount float64) pricing.Selection {
	return pricing.Selection{
		Breakfast:  d.Breakfast,
		LunchCount: d.LunchCount,
		Snacks:     d.Snacks,
		Headcount:  d.EventDetails.Headcount,
		Discount:   discount,
	}
}

// State holds the wizard's position, completion marks and draft. The zero
// value is not usable; start from New.
type State struct {
	Current   Step          `json:"current"`
	Completed map[Step]bool `json:"completed"`
	Draft     Draft         `json:"draft"`
}

func New() *State {
	return &State{
		Current:   StepEventDetails,
		Completed: map[Step]bool{},
	}
}

func indexOf(step Step) int {
	for i, s := range Steps {
		if s == step {
			return i
		}
	}
	return -1
}

// CanProceed reports whether the current step's required fields are filled.
// Only event-details and delivery carry requirements; the menu steps are
// optional.
func (s *State) CanProceed() bool {
	switch s.Current {
	case StepEventDetails:
		e := s.Draft.EventDetails
		return e.EventName != "" && e.EventDate != "" && e.EventTime != "" &&
			e.Headcount >= MinimumHeadcount &&
			e.ContactName != "" && e.ContactEmail != "" && e.ContactPhone != ""
	case StepDelivery:
		d := s.Draft.Delivery
		return d.Address != "" && d.City != "" && d.State != "" &&
			d.Zip != "" && d.PreferredTime != ""
	default:
		return true
	}
}

// Next marks the current step completed and advances one step. On the last
// step it stays put and reports submit=true: advancing from payment means
// the order is ready to be placed.
func (s *State) Next() (submit bool) {
	if !s.CanProceed() {
		return false
	}

	s.Completed[s.Current] = true

	i := indexOf(s.Current)
	if i == len(Steps)-1 {
		return true
	}

	s.Current = Steps[i+1]
	return false
}

// Previous retreats one step without touching completion marks.
func (s *State) Previous() {
	if i := indexOf(s.Current); i > 0 {
		s.Current = Steps[i-1]
	}
}

// GoToStep jumps directly to the named step. Unknown steps are ignored.
// Gating is advisory: callers wanting click-navigation rules should check
// CanNavigateTo first, deep links may jump anywhere.
func (s *State) GoToStep(step Step) {
	if indexOf(step) >= 0 {
		s.Current = step
	}
}

// CanNavigateTo reports whether a step is reachable by click navigation:
// already completed, or at-or-before the current position.
func (s *State) CanNavigateTo(step Step) bool {
	i := indexOf(step)
	if i < 0 {
		return false
	}

	return s.Completed[step] || i <= indexOf(s.Current)
}
