package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradekit-io/unified/exchanges/order"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	d := &Data{Price: "39086", Amount: "0.5", Fee: order.Fee{Cost: "-0.0195"}}
	require.NoError(t, d.Normalize())
	assert.Equal(t, "19543", d.Cost, "cost must be derivable as price*amount when absent")
	assert.Equal(t, "0.0195", d.Fee.Cost, "fee cost must be sign-normalized to positive")

	// Reported cost is preserved
	d = &Data{Price: "39086", Amount: "0.5", Cost: "19542.9"}
	require.NoError(t, d.Normalize())
	assert.Equal(t, "19542.9", d.Cost)

	// Nothing to derive without price and amount
	d = &Data{Amount: "0.5"}
	require.NoError(t, d.Normalize())
	assert.Empty(t, d.Cost)
}
