package currency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairSymbol(t *testing.T) {
	t.Parallel()
	spot := NewPair(NewCode("btc"), NewCode("usdt"))
	assert.Equal(t, "BTC/USDT", spot.Symbol())

	swap := NewSettledPair(NewCode("BTC"), NewCode("USDT"), NewCode("USDT"))
	assert.Equal(t, "BTC/USDT:USDT", swap.Symbol())

	dated := swap
	dated.Expiry = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "BTC/USDT:USDT-240615", dated.Symbol())
}

func TestParseSymbol(t *testing.T) {
	t.Parallel()
	p, err := ParseSymbol("BTC/USDT")
	require.NoError(t, err)
	assert.Equal(t, NewCode("BTC"), p.Base)
	assert.Equal(t, NewCode("USDT"), p.Quote)
	assert.True(t, p.Settle.IsEmpty())

	p, err = ParseSymbol("ETH/USD:ETH")
	require.NoError(t, err)
	assert.Equal(t, NewCode("ETH"), p.Settle)
	assert.True(t, p.Expiry.IsZero())

	p, err = ParseSymbol("BTC/USDT:USDT-240615")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), p.Expiry)
	assert.Equal(t, "BTC/USDT:USDT-240615", p.Symbol())

	for _, bad := range []string{"", "BTCUSDT", "/USDT", "BTC/", "BTC/USDT:", "BTC/USDT:USDT-junk"} {
		_, err = ParseSymbol(bad)
		assert.Errorf(t, err, "expected error for %q", bad)
	}
}

func TestParseExpiry(t *testing.T) {
	t.Parallel()
	ts, err := ParseExpiry("240615")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15T00:00:00.000Z", ts.Format("2006-01-02T15:04:05.000Z"))

	_, err = ParseExpiry("2406")
	assert.Error(t, err)

	_, err = ParseExpiry("24O615")
	assert.Error(t, err)
}
