package futures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveLiquidationPrice(t *testing.T) {
	t.Parallel()
	// Long: entry - collateral/size + (mmr+fee)*entry
	liq, err := DeriveLiquidationPrice(Long, "40000", "4000", "1", "", "0.004", "0.0006")
	require.NoError(t, err)
	assert.Equal(t, "36184", liq)

	// Short flips the subtraction order
	liq, err = DeriveLiquidationPrice(Short, "40000", "4000", "1", "", "0.004", "0.0006")
	require.NoError(t, err)
	assert.Equal(t, "43816", liq)

	// Collateral reconstructed from leverage when unreported
	liq, err = DeriveLiquidationPrice(Long, "40000", "", "1", "10", "0.004", "0.0006")
	require.NoError(t, err)
	assert.Equal(t, "36184", liq)

	// Fractional sizes stay exact
	liq, err = DeriveLiquidationPrice(Long, "40000", "2000", "0.5", "", "0.004", "0.0006")
	require.NoError(t, err)
	assert.Equal(t, "36184", liq)
}

func TestDeriveLiquidationPriceErrors(t *testing.T) {
	t.Parallel()
	_, err := DeriveLiquidationPrice(Long, "", "4000", "1", "", "0.004", "0.0006")
	assert.ErrorIs(t, err, ErrInsufficientInputs)

	_, err = DeriveLiquidationPrice(Long, "40000", "", "1", "", "0.004", "0.0006")
	assert.ErrorIs(t, err, ErrInsufficientInputs)

	_, err = DeriveLiquidationPrice(PositionSide("sideways"), "40000", "4000", "1", "", "0.004", "0.0006")
	assert.ErrorIs(t, err, errInvalidPositionSide)
}

func TestDeriveMarginRatio(t *testing.T) {
	t.Parallel()
	ratio, err := DeriveMarginRatio("20", "4000")
	require.NoError(t, err)
	assert.Equal(t, "0.005", ratio)

	_, err = DeriveMarginRatio("", "4000")
	assert.ErrorIs(t, err, ErrInsufficientInputs)
}
