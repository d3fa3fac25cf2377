package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func completeEventDetails() EventDetails {
	return EventDetails{
		EventName:    "Quarterly Planning",
		EventDate:    "2026-10-01",
		EventTime:    "09:00",
		Headcount:    12,
		ContactName:  "Dana Reyes",
		ContactEmail: "dana@example.com",
		ContactPhone: "555-0100",
	}
}

func completeDelivery() DeliveryInfo {
	return DeliveryInfo{
		Address:       "400 Market St",
		City:          "Austin",
		State:         "TX",
		Zip:           "78701",
		PreferredTime: "08:30",
	}
}

func TestCanProceedEventDetails(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*EventDetails)
		expected bool
	}{
		{name: "all_fields_present", mutate: func(e *EventDetails) {}, expected: true},
		{name: "headcount_at_minimum", mutate: func(e *EventDetails) { e.Headcount = 10 }, expected: true},
		{name: "headcount_below_minimum", mutate: func(e *EventDetails) { e.Headcount = 9 }, expected: false},
		{name: "missing_event_name", mutate: func(e *EventDetails) { e.EventName = "" }, expected: false},
		{name: "missing_contact_email", mutate: func(e *EventDetails) { e.ContactEmail = "" }, expected: false},
		{name: "missing_contact_phone", mutate: func(e *EventDetails) { e.ContactPhone = "" }, expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New()
			e := completeEventDetails()
			tc.mutate(&e)
			s.Draft.EventDetails = e

			assert.Equal(t, tc.expected, s.CanProceed())
		})
	}
}

func TestCanProceedDelivery(t *testing.T) {
	s := New()
	s.Current = StepDelivery
	assert.False(t, s.CanProceed())

	s.Draft.Delivery = completeDelivery()
	assert.True(t, s.CanProceed())

	s.Draft.Delivery.Zip = ""
	assert.False(t, s.CanProceed())
}

func TestOptionalStepsAlwaysProceed(t *testing.T) {
	for _, step := range []Step{StepBreakfast, StepLunch, StepSnacksDrinks, StepPayment} {
		s := New()
		s.Current = step
		assert.True(t, s.CanProceed(), "step %s", step)
	}
}

func TestNextWalksTheFullSequence(t *testing.T) {
	s := New()
	s.Draft.EventDetails = completeEventDetails()
	s.Draft.Delivery = completeDelivery()

	expected := []Step{StepBreakfast, StepLunch, StepSnacksDrinks, StepDelivery, StepPayment}
	for _, want := range expected {
		submit := s.Next()
		assert.False(t, submit)
		assert.Equal(t, want, s.Current)
	}

	// Sixth call: already on payment, triggers submission and stays put.
	submit := s.Next()
	assert.True(t, submit)
	assert.Equal(t, StepPayment, s.Current)

	// A seventh call keeps reporting submit without advancing anywhere.
	assert.True(t, s.Next())
	assert.Equal(t, StepPayment, s.Current)
}

func TestNextBlockedWhenStepIncomplete(t *testing.T) {
	s := New()

	assert.False(t, s.Next())
	assert.Equal(t, StepEventDetails, s.Current)
	assert.False(t, s.Completed[StepEventDetails])
}

func TestPreviousKeepsCompletionMarks(t *testing.T) {
	s := New()
	s.Draft.EventDetails = completeEventDetails()

	s.Next()
	assert.Equal(t, StepBreakfast, s.Current)
	assert.True(t, s.Completed[StepEventDetails])

	s.Previous()
	assert.Equal(t, StepEventDetails, s.Current)
	assert.True(t, s.Completed[StepEventDetails])

	// Already at the first step; Previous is a no-op.
	s.Previous()
	assert.Equal(t, StepEventDetails, s.Current)
}

func TestGoToStep(t *testing.T) {
	s := New()

	s.GoToStep(StepDelivery)
	assert.Equal(t, StepDelivery, s.Current)

	s.GoToStep("checkout")
	assert.Equal(t, StepDelivery, s.Current)
}

func TestCanNavigateTo(t *testing.T) {
	s := New()
	s.Draft.EventDetails = completeEventDetails()
	s.Next()
	s.Next()

	assert.Equal(t, StepLunch, s.Current)
	assert.True(t, s.CanNavigateTo(StepEventDetails))
	assert.True(t, s.CanNavigateTo(StepBreakfast))
	assert.True(t, s.CanNavigateTo(StepLunch))
	assert.False(t, s.CanNavigateTo(StepDelivery))
	assert.False(t, s.CanNavigateTo("checkout"))
}
