package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBalance(t *testing.T) {
	t.Parallel()
	b, err := NewBalance("0.1", "0.2")
	require.NoError(t, err)
	assert.Equal(t, "0.3", b.Total, "total must equal free+used exactly")

	b, err = NewBalance("5", "")
	require.NoError(t, err)
	assert.Equal(t, "5", b.Total)

	b, err = NewBalance("", "")
	require.NoError(t, err)
	assert.Equal(t, "0", b.Total)

	_, err = NewBalance("NaNsense", "1")
	assert.Error(t, err)
}
