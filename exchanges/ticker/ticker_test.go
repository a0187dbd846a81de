package ticker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveChange(t *testing.T) {
	t.Parallel()
	p := &Price{Open: "40000", Last: "39000"}
	require.NoError(t, p.DeriveChange())
	assert.Equal(t, "-1000", p.Change)
	assert.Equal(t, "-2.5", p.Percentage, "percentage must be x100 of the fractional change")

	// Reported values are never overwritten
	p = &Price{Open: "40000", Last: "39000", Change: "-999", Percentage: "-2.4"}
	require.NoError(t, p.DeriveChange())
	assert.Equal(t, "-999", p.Change)
	assert.Equal(t, "-2.4", p.Percentage)

	// Missing inputs leave the snapshot untouched
	p = &Price{Last: "39000"}
	require.NoError(t, p.DeriveChange())
	assert.Empty(t, p.Change)
}
