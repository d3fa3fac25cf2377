package promotion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crave-catering/cc-order/pkg/errors"
	"github.com/crave-catering/cc-order/pkg/status"
)

func activePromotion() Promotion {
	return Promotion{
		ID:         1,
		Code:       "TEAMLUNCH10",
		Type:       TypePercentage,
		Value:      10,
		Status:     StatusActive,
		ValidFrom:  time.Now().Add(-24 * time.Hour),
		ValidUntil: time.Now().Add(24 * time.Hour),
	}
}

func TestUsable(t *testing.T) {
	limit := int64(5)

	tests := []struct {
		name           string
		mutate         func(*Promotion)
		expectedStatus string
	}{
		{name: "active_within_window", mutate: func(p *Promotion) {}},
		{
			name:           "inactive",
			mutate:         func(p *Promotion) { p.Status = StatusInactive },
			expectedStatus: status.PROMOTION_INVALID,
		},
		{
			name:           "before_window",
			mutate:         func(p *Promotion) { p.ValidFrom = time.Now().Add(time.Hour) },
			expectedStatus: status.PROMOTION_EXPIRED,
		},
		{
			name:           "after_window",
			mutate:         func(p *Promotion) { p.ValidUntil = time.Now().Add(-time.Hour) },
			expectedStatus: status.PROMOTION_EXPIRED,
		},
		{
			name: "usage_limit_reached",
			mutate: func(p *Promotion) {
				p.UsageLimit = &limit
				p.UsageCount = 5
			},
			expectedStatus: status.PROMOTION_USAGE_LIMIT,
		},
		{
			name: "under_usage_limit",
			mutate: func(p *Promotion) {
				p.UsageLimit = &limit
				p.UsageCount = 4
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := activePromotion()
			tc.mutate(&p)

			err := p.Usable(time.Now())
			if tc.expectedStatus == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tc.expectedStatus, errors.Destruct(err).Status)
		})
	}
}

func TestDiscount(t *testing.T) {
	p := activePromotion()
	assert.Equal(t, 69.48, p.Discount(694.80))

	p.Type = TypeFixedAmount
	p.Value = 50
	assert.Equal(t, 50.0, p.Discount(694.80))

	// A fixed amount never discounts more than the subtotal.
	assert.Equal(t, 30.0, p.Discount(30))

	p.Type = TypeFreeDelivery
	assert.Equal(t, 0.0, p.Discount(694.80))
	assert.True(t, p.WaivesDeliveryFee())

	p.Type = TypeFreeItem
	assert.Equal(t, 0.0, p.Discount(694.80))
	assert.False(t, p.WaivesDeliveryFee())
}
