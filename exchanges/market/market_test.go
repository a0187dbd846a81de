package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradekit-io/unified/currency"
)

func TestValidate(t *testing.T) {
	t.Parallel()
	m := &Market{Symbol: "BTC/USDT:USDT", Contract: true, Swap: true}
	assert.ErrorIs(t, m.Validate(), ErrContractSizeUnset)

	m.ContractSize = "0.001"
	assert.NoError(t, m.Validate())

	spot := &Market{Symbol: "BTC/USDT", Spot: true, Settle: currency.NewCode("USDT")}
	assert.ErrorIs(t, spot.Validate(), ErrSpotSettled)

	spot.Settle = ""
	assert.NoError(t, spot.Validate())
}

func TestStepFromScale(t *testing.T) {
	t.Parallel()
	for scale, exp := range map[int64]string{
		0: "1",
		1: "0.1",
		4: "0.0001",
		8: "0.00000001",
	} {
		step, err := StepFromScale(scale)
		require.NoErrorf(t, err, "scale %d", scale)
		assert.Equalf(t, exp, step, "scale %d", scale)
	}

	_, err := StepFromScale(-1)
	assert.Error(t, err)
}

func TestReconcilePrecision(t *testing.T) {
	t.Parallel()
	// Tick coarser than scale: tick wins
	step, err := ReconcilePrecision(4, "0.01")
	require.NoError(t, err)
	assert.Equal(t, "0.01", step)

	// Scale coarser than tick: scale wins
	step, err = ReconcilePrecision(2, "0.0001")
	require.NoError(t, err)
	assert.Equal(t, "0.01", step)

	// Agreement
	step, err = ReconcilePrecision(4, "0.0001")
	require.NoError(t, err)
	assert.Equal(t, "0.0001", step)

	// No explicit tick reported
	step, err = ReconcilePrecision(8, "")
	require.NoError(t, err)
	assert.Equal(t, "0.00000001", step)

	_, err = ReconcilePrecision(4, "three")
	assert.Error(t, err)
}
