package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{name: "draft_to_pending_payment", from: StatusDraft, to: StatusPendingPayment, allowed: true},
		{name: "pending_payment_to_confirmed", from: StatusPendingPayment, to: StatusConfirmed, allowed: true},
		{name: "confirmed_to_preparing", from: StatusConfirmed, to: StatusPreparing, allowed: true},
		{name: "preparing_to_ready", from: StatusPreparing, to: StatusReadyForDelivery, allowed: true},
		{name: "ready_to_out_for_delivery", from: StatusReadyForDelivery, to: StatusOutForDelivery, allowed: true},
		{name: "out_for_delivery_to_delivered", from: StatusOutForDelivery, to: StatusDelivered, allowed: true},
		{name: "draft_to_confirmed_skips_payment", from: StatusDraft, to: StatusConfirmed, allowed: false},
		{name: "confirmed_to_draft_goes_backwards", from: StatusConfirmed, to: StatusDraft, allowed: false},
		{name: "delivered_to_preparing_goes_backwards", from: StatusDelivered, to: StatusPreparing, allowed: false},
		{name: "draft_to_cancelled", from: StatusDraft, to: StatusCancelled, allowed: true},
		{name: "pending_payment_to_cancelled", from: StatusPendingPayment, to: StatusCancelled, allowed: true},
		{name: "confirmed_to_cancelled", from: StatusConfirmed, to: StatusCancelled, allowed: true},
		{name: "preparing_to_cancelled", from: StatusPreparing, to: StatusCancelled, allowed: false},
		{name: "out_for_delivery_to_cancelled", from: StatusOutForDelivery, to: StatusCancelled, allowed: false},
		{name: "delivered_to_cancelled", from: StatusDelivered, to: StatusCancelled, allowed: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatusCancellable(t *testing.T) {
	cancellable := map[Status]bool{
		StatusDraft:            true,
		StatusPendingPayment:   true,
		StatusConfirmed:        true,
		StatusPreparing:        false,
		StatusReadyForDelivery: false,
		StatusOutForDelivery:   false,
		StatusDelivered:        false,
		StatusCancelled:        false,
	}

	for s, expected := range cancellable {
		assert.Equal(t, expected, s.Cancellable(), "status %s", s)
	}
}

func TestStatusMutable(t *testing.T) {
	assert.True(t, StatusDraft.Mutable())
	assert.True(t, StatusPendingPayment.Mutable())
	assert.False(t, StatusConfirmed.Mutable())
	assert.False(t, StatusCancelled.Mutable())
}

func TestStatusShareable(t *testing.T) {
	assert.True(t, StatusDraft.Shareable())
	assert.True(t, StatusConfirmed.Shareable())
	assert.True(t, StatusPreparing.Shareable())
	assert.False(t, StatusReadyForDelivery.Shareable())
	assert.False(t, StatusDelivered.Shareable())
	assert.False(t, StatusCancelled.Shareable())
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusDraft.Terminal())
	assert.False(t, StatusOutForDelivery.Terminal())
}

func TestStatusLabelAndColor(t *testing.T) {
	assert.Equal(t, "Pending Payment", StatusPendingPayment.Label())
	assert.Equal(t, "green", StatusDelivered.Color())
	assert.False(t, Status("unknown").Valid())
}
