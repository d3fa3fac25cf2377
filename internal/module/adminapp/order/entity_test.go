package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerorder "github.com/crave-catering/cc-order/internal/module/customerapp/order"
)

// The back office renders the same labels and colors the customer app does.
func TestStatusDisplayMatchesCustomerApp(t *testing.T) {
	for s := range statusTable {
		cs := customerorder.Status(s)
		require.True(t, cs.Valid(), "status '%s' is unknown to the customer app", s)

		assert.Equal(t, cs.Label(), s.Label(), "label for '%s'", s)
		assert.Equal(t, cs.Color(), s.Color(), "color for '%s'", s)
	}
}
