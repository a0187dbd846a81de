package precise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringAdd(t *testing.T) {
	t.Parallel()
	out, err := StringAdd("0.1", "0.2")
	require.NoError(t, err)
	assert.Equal(t, "0.3", out, "addition must be exact for terminating decimals")

	out, err = StringAdd("-5", "5")
	require.NoError(t, err)
	assert.Equal(t, "0", out)

	out, err = StringAdd("1e-8", "0.00000001")
	require.NoError(t, err)
	assert.Equal(t, "0.00000002", out)

	_, err = StringAdd("bogus", "1")
	assert.ErrorIs(t, err, ErrNumeric)

	_, err = StringAdd("", "1")
	assert.ErrorIs(t, err, ErrNumeric)
}

func TestStringSub(t *testing.T) {
	t.Parallel()
	out, err := StringSub("0.3", "0.1")
	require.NoError(t, err)
	assert.Equal(t, "0.2", out)

	out, err = StringSub("1", "2")
	require.NoError(t, err)
	assert.Equal(t, "-1", out)
}

func TestStringMul(t *testing.T) {
	t.Parallel()
	out, err := StringMul("39086", "0.0006")
	require.NoError(t, err)
	assert.Equal(t, "23.4516", out)

	out, err = StringMul("-2", "3.5")
	require.NoError(t, err)
	assert.Equal(t, "-7", out)
}

func TestStringDiv(t *testing.T) {
	t.Parallel()
	out, err := StringDiv("1", "8")
	require.NoError(t, err)
	assert.Equal(t, "0.125", out)

	out, err = StringDiv("10", "3", 4)
	require.NoError(t, err)
	assert.Equal(t, "3.3333", out)

	_, err = StringDiv("1", "0")
	assert.ErrorIs(t, err, ErrNumeric)
}

func TestStringNegAbs(t *testing.T) {
	t.Parallel()
	out, err := StringNeg("1.5")
	require.NoError(t, err)
	assert.Equal(t, "-1.5", out)

	out, err = StringAbs("-1.5")
	require.NoError(t, err)
	assert.Equal(t, "1.5", out)
}

func TestStringComparisons(t *testing.T) {
	t.Parallel()
	assert.True(t, StringEq("1.0", "1"))
	assert.True(t, StringLt("-1", "0"))
	assert.True(t, StringGt("39087", "39086"))
	assert.False(t, StringEq("junk", "junk"))

	out, err := StringMax("0.001", "0.0001")
	require.NoError(t, err)
	assert.Equal(t, "0.001", out)

	out, err = StringMin("0.001", "0.0001")
	require.NoError(t, err)
	assert.Equal(t, "0.0001", out)
}
