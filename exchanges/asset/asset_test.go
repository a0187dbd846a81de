package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "spot", Spot.String())
	assert.Equal(t, "margin", Margin.String())
	assert.Equal(t, "swap", Swap.String())
	assert.Equal(t, "futures", Futures.String())
	assert.Equal(t, "option", Option.String())
	assert.Empty(t, Empty.String())
}

func TestNew(t *testing.T) {
	t.Parallel()
	for in, exp := range map[string]Item{
		"spot":      Spot,
		"SPOT":      Spot,
		"margin":    Margin,
		"swap":      Swap,
		"perpetual": Swap,
		"future":    Futures,
		"delivery":  Futures,
		"option":    Option,
	} {
		a, err := New(in)
		require.NoErrorf(t, err, "input %q", in)
		assert.Equalf(t, exp, a, "input %q", in)
	}

	_, err := New("prediction")
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestIsContract(t *testing.T) {
	t.Parallel()
	assert.False(t, Spot.IsContract())
	assert.False(t, Margin.IsContract())
	assert.True(t, Swap.IsContract())
	assert.True(t, Futures.IsContract())
	assert.True(t, Option.IsContract())
}

func TestIsValid(t *testing.T) {
	t.Parallel()
	assert.True(t, Spot.IsValid())
	assert.False(t, Empty.IsValid())
	assert.False(t, Item(1<<30).IsValid())
}
