package bitget

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradekit-io/unified/currency"
	exchange "github.com/tradekit-io/unified/exchanges"
	"github.com/tradekit-io/unified/exchanges/asset"
	"github.com/tradekit-io/unified/exchanges/errs"
	"github.com/tradekit-io/unified/exchanges/futures"
	"github.com/tradekit-io/unified/exchanges/order"
	"github.com/tradekit-io/unified/exchanges/request"
)

type stubTransport struct {
	calls int
	resp  *request.Response
	err   error
}

func (s *stubTransport) Execute(_ context.Context, _ *request.Request) (*request.Response, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func newTestClient(t *testing.T, transport request.Transport, creds exchange.Credentials, sandbox bool) *Bitget {
	t.Helper()
	bi, err := New(exchange.Config{
		Credentials: creds,
		Sandbox:     sandbox,
		Transport:   transport,
	})
	require.NoError(t, err)
	return bi
}

func TestParseMarketID(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		id     string
		symbol string
		a      asset.Item
		linear bool
		err    bool
	}{
		{id: "BTCUSDT_SPBL", symbol: "BTC/USDT", a: asset.Spot},
		{id: "BTCUSDT", symbol: "BTC/USDT", a: asset.Spot},
		{id: "BTCUSDT_UMCBL", symbol: "BTC/USDT:USDT", a: asset.Swap, linear: true},
		{id: "ETHUSDC_CMCBL", symbol: "ETH/USDC:USDC", a: asset.Swap, linear: true},
		{id: "BTCUSD_DMCBL", symbol: "BTC/USD:BTC", a: asset.Swap},
		{id: "BTCUSDT_SUMCBL", symbol: "BTC/USDT:USDT", a: asset.Swap, linear: true},
		{id: "BTCUSDT_UMCBL_240615", symbol: "BTC/USDT:USDT-240615", a: asset.Futures, linear: true},
		{id: "XXX_YYY", err: true},
		{id: "BTCUSDT_BOGUS", err: true},
	} {
		pair, a, linear, err := parseMarketID(tc.id)
		if tc.err {
			assert.ErrorIs(t, err, errs.ErrBadSymbol, tc.id)
			continue
		}
		require.NoError(t, err, tc.id)
		assert.Equal(t, tc.symbol, pair.Symbol(), tc.id)
		assert.Equal(t, tc.a, a, tc.id)
		assert.Equal(t, tc.linear, linear, tc.id)
	}
}

func TestParseMarketIDExpiry(t *testing.T) {
	t.Parallel()
	pair, a, _, err := parseMarketID("BTCUSDT_UMCBL_240615")
	require.NoError(t, err)
	assert.Equal(t, asset.Futures, a)
	iso := pair.Expiry.UTC().Format("2006-01-02T15:04:05.000") + "Z"
	assert.Equal(t, "2024-06-15T00:00:00.000Z", iso)
}

func TestMarketIDRoundTrip(t *testing.T) {
	t.Parallel()
	bi := newTestClient(t, &stubTransport{}, exchange.Credentials{}, false)

	pair, err := currency.ParseSymbol("BTC/USDT:USDT")
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT_UMCBL", bi.marketID(pair, asset.Swap))

	spot, err := currency.ParseSymbol("BTC/USDT")
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT_SPBL", bi.marketID(spot, asset.Spot))

	dated, err := currency.ParseSymbol("BTC/USDT:USDT-240615")
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT_UMCBL_240615", bi.marketID(dated, asset.Swap))

	sandboxed := newTestClient(t, &stubTransport{}, exchange.Credentials{}, true)
	assert.Equal(t, "BTCUSDT_SUMCBL", sandboxed.marketID(pair, asset.Swap))
}

func TestParseTicker(t *testing.T) {
	t.Parallel()
	payload := []byte(`{
		"symbol":"BTCUSDT_UMCBL",
		"last":"39086",
		"bestAsk":"39087",
		"bestBid":"39086",
		"high24h":"40312",
		"low24h":"38524.5",
		"timestamp":"1645856591864"
	}`)
	var node map[string]any
	require.NoError(t, request.DecodeJSON(payload, &node))

	p, err := parseTicker(node)
	require.NoError(t, err)
	assert.Equal(t, "BTC/USDT:USDT", p.Symbol)
	assert.Equal(t, "39086", p.Bid)
	assert.Equal(t, "39087", p.Ask)
	assert.Equal(t, "40312", p.High)
	assert.Equal(t, "38524.5", p.Low)
	assert.Equal(t, int64(1645856591864), p.Timestamp.UnixMilli())
	assert.Equal(t, "39086", p.Last)
}

func TestFetchTickerEndToEnd(t *testing.T) {
	t.Parallel()
	transport := &stubTransport{resp: &request.Response{
		StatusCode: 200,
		Body: []byte(`{"code":"00000","msg":"success","data":{
			"symbol":"BTCUSDT_UMCBL","last":"39086","bestAsk":"39087",
			"bestBid":"39086","high24h":"40312","low24h":"38524.5",
			"timestamp":"1645856591864"}}`),
	}}
	bi := newTestClient(t, transport, exchange.Credentials{}, false)

	p, err := bi.FetchTicker(context.Background(), "BTC/USDT:USDT")
	require.NoError(t, err)
	assert.Equal(t, 1, transport.calls)
	assert.Equal(t, "39086", p.Bid)
	assert.Equal(t, "39087", p.Ask)
	assert.Equal(t, "38524.5", p.Low)
}

func TestParseSpotMarketReportedPair(t *testing.T) {
	t.Parallel()
	m, err := parseSpotMarket(&SpotMarketData{
		Symbol:        "ABCDAI_SPBL",
		BaseCoin:      "ABC",
		QuoteCoin:     "DAI",
		PriceScale:    4,
		QuantityScale: 2,
		Status:        "online",
	})
	require.NoError(t, err)
	assert.Equal(t, "ABC/DAI", m.Symbol)
	assert.Equal(t, "ABC", m.Base.String())
	assert.Equal(t, "DAI", m.Quote.String())
	assert.Equal(t, "0.0001", m.Precision.Price)
	assert.True(t, m.Active)
}

func TestParseContractMarketReportedPair(t *testing.T) {
	t.Parallel()
	m, err := parseContractMarket(&ContractMarketData{
		Symbol:       "ABCPERPUSDT_UMCBL",
		BaseCoin:     "ABCPERP",
		QuoteCoin:    "USDT",
		PricePlace:   3,
		VolumePlace:  1,
		SymbolStatus: "normal",
	})
	require.NoError(t, err)
	assert.Equal(t, "ABCPERP/USDT:USDT", m.Symbol)
	assert.True(t, m.Linear)
	assert.Equal(t, "USDT", m.Settle.String())
}

func TestFetchMarketsSkipsMalformedListing(t *testing.T) {
	t.Parallel()
	transport := &stubTransport{resp: &request.Response{
		StatusCode: 200,
		Body: []byte(`{"code":"00000","msg":"success","data":[
			{"symbol":"BTCUSDT_SPBL","baseCoin":"BTC","quoteCoin":"USDT",
			 "priceScale":"2","quantityScale":"4","status":"online"},
			{"symbol":"BROKEN_XXBL","priceScale":"2","quantityScale":"4","status":"online"},
			{"symbol":"ABCDAI_SPBL","baseCoin":"ABC","quoteCoin":"DAI",
			 "priceScale":"4","quantityScale":"2","status":"online"}]}`),
	}}
	bi := newTestClient(t, transport, exchange.Credentials{}, false)

	markets, err := bi.FetchMarkets(context.Background(), asset.Spot)
	require.NoError(t, err)
	require.Len(t, markets, 2)
	assert.Equal(t, "BTC/USDT", markets[0].Symbol)
	assert.Equal(t, "ABC/DAI", markets[1].Symbol)
}

func TestFetchTickersSpot(t *testing.T) {
	t.Parallel()
	transport := &stubTransport{resp: &request.Response{
		StatusCode: 200,
		Body: []byte(`{"code":"00000","msg":"success","data":[
			{"symbol":"BTCUSDT","close":"39086","high24h":"40312","low24h":"38524.5"},
			{"symbol":"ETHUSDT","close":"2890.1","high24h":"2950","low24h":"2800"}]}`),
	}}
	bi := newTestClient(t, transport, exchange.Credentials{}, false)

	tickers, err := bi.FetchTickers(context.Background(), asset.Spot)
	require.NoError(t, err)
	assert.Equal(t, 1, transport.calls)
	require.Len(t, tickers, 2)
	assert.Equal(t, "BTC/USDT", tickers[0].Symbol)
	assert.Equal(t, "39086", tickers[0].Last)
	assert.Equal(t, "ETH/USDT", tickers[1].Symbol)
}

func TestFetchTickerNativeError(t *testing.T) {
	t.Parallel()
	transport := &stubTransport{resp: &request.Response{
		StatusCode: 200,
		Body:       []byte(`{"code":"40102","msg":"contract configuration does not exist"}`),
	}}
	bi := newTestClient(t, transport, exchange.Credentials{}, false)

	_, err := bi.FetchTicker(context.Background(), "BTC/USDT:USDT")
	assert.ErrorIs(t, err, errs.ErrBadSymbol)
}

func TestSignatureDeterminism(t *testing.T) {
	t.Parallel()
	creds := &exchange.Credentials{Key: "key", Secret: "secret", Passphrase: "phrase"}
	ts := time.UnixMilli(1645856591864)
	q := url.Values{}
	q.Set("symbol", "BTCUSDT_UMCBL")
	q.Set("limit", "100")

	s := &signer{}
	first, _, err := s.Sign(creds, asset.Swap, "GET", "/api/mix/v1/market/fills", q, nil, ts)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, _, err := s.Sign(creds, asset.Swap, "GET", "/api/mix/v1/market/fills", q, nil, ts)
		require.NoError(t, err)
		assert.Equal(t, first["ACCESS-SIGN"], again["ACCESS-SIGN"])
	}
	assert.Equal(t, "key", first["ACCESS-KEY"])
	assert.Equal(t, "phrase", first["ACCESS-PASSPHRASE"])
	assert.Equal(t, "1645856591864", first["ACCESS-TIMESTAMP"])
}

func TestSignerRequiresPassphrase(t *testing.T) {
	t.Parallel()
	s := &signer{}
	_, _, err := s.Sign(&exchange.Credentials{Key: "key", Secret: "secret"}, asset.Spot,
		"GET", "/api/spot/v1/account/assets", nil, nil, time.Now())
	assert.ErrorIs(t, err, errs.ErrAuthentication)
}

func TestMissingCredentialFastFail(t *testing.T) {
	t.Parallel()
	transport := &stubTransport{}
	bi := newTestClient(t, transport, exchange.Credentials{}, false)

	_, err := bi.FetchBalance(context.Background(), asset.Spot)
	assert.ErrorIs(t, err, errs.ErrAuthentication)
	assert.Zero(t, transport.calls)
}

func TestParseOrder(t *testing.T) {
	t.Parallel()
	payload := []byte(`{
		"symbol":"BTCUSDT_SPBL",
		"orderId":"1001",
		"clientOrderId":"abc-1",
		"orderType":"limit",
		"side":"buy",
		"price":"39000",
		"fillPrice":"38995.5",
		"quantity":"2",
		"fillQuantity":"0.5",
		"status":"partial_fill",
		"cTime":"1645856591864"
	}`)
	var node map[string]any
	require.NoError(t, request.DecodeJSON(payload, &node))

	d, err := parseOrder(node)
	require.NoError(t, err)
	assert.Equal(t, "1001", d.ID)
	assert.Equal(t, "abc-1", d.ClientOrderID)
	assert.Equal(t, "BTC/USDT", d.Symbol)
	assert.Equal(t, order.Buy, d.Side)
	assert.Equal(t, order.Open, d.Status)
	assert.Equal(t, "38995.5", d.Average)
	assert.Equal(t, "1.5", d.Remaining)
	assert.Equal(t, "19497.75", d.Cost)
	assert.Equal(t, int64(1645856591864), d.Timestamp.UnixMilli())
}

func TestOrderStatusPassthrough(t *testing.T) {
	t.Parallel()
	assert.Equal(t, order.Closed, order.CanonicalStatus(bitgetOrderStatuses, "full_fill"))
	assert.Equal(t, order.Canceled, order.CanonicalStatus(bitgetOrderStatuses, "cancelled"))
	assert.Equal(t, order.Status("mystery_state"), order.CanonicalStatus(bitgetOrderStatuses, "mystery_state"))
}

func TestParsePositionDerivesLiquidation(t *testing.T) {
	t.Parallel()
	payload := []byte(`{
		"symbol":"BTCUSDT_UMCBL",
		"holdSide":"long",
		"total":"1",
		"averageOpenPrice":"40000",
		"margin":"4000",
		"leverage":"10",
		"marginMode":"fixed",
		"keepMarginRate":"0.004",
		"unrealizedPL":"-12.5"
	}`)
	var node map[string]any
	require.NoError(t, request.DecodeJSON(payload, &node))

	p, err := parsePosition(node)
	require.NoError(t, err)
	assert.Equal(t, "BTC/USDT:USDT", p.Symbol)
	assert.Equal(t, futures.Long, p.Side)
	assert.Equal(t, futures.Isolated, p.MarginMode)
	assert.Equal(t, "36184", p.LiquidationPrice)
}

func TestMixSide(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "open_long", mixSide(order.Buy, false))
	assert.Equal(t, "open_short", mixSide(order.Sell, false))
	assert.Equal(t, "close_short", mixSide(order.Buy, true))
	assert.Equal(t, "close_long", mixSide(order.Sell, true))
}

func TestClassifierPrecedence(t *testing.T) {
	t.Parallel()
	c := newClassifier()

	exact := c.Classify("CreateOrder", "43001", "order does not exist", nil)
	assert.ErrorIs(t, exact, errs.ErrOrderNotFound)

	broad := c.Classify("CreateOrder", "99999", "Insufficient balance in account", nil)
	assert.ErrorIs(t, broad, errs.ErrInsufficientFunds)

	generic := c.Classify("CreateOrder", "99999", "something novel", []byte(`{"code":"99999"}`))
	assert.ErrorIs(t, generic, errs.ErrExchange)
	var classified *errs.Error
	require.True(t, errors.As(generic, &classified))
	assert.Equal(t, `{"code":"99999"}`, classified.Body)
}

func TestCreateOrderValidation(t *testing.T) {
	t.Parallel()
	transport := &stubTransport{}
	bi := newTestClient(t, transport, exchange.Credentials{Key: "k", Secret: "s", Passphrase: "p"}, false)

	_, err := bi.CreateOrder(context.Background(), &exchange.OrderRequest{
		Symbol: "BTC/USDT", Side: order.Buy, Type: "limit",
	})
	assert.ErrorIs(t, err, errs.ErrArgumentsRequired)
	assert.Zero(t, transport.calls)

	_, err = bi.CreateOrder(context.Background(), &exchange.OrderRequest{
		Symbol: "BTC/USDT:USDT", Side: order.Buy, Type: "limit", Amount: "1",
		TriggerPrice: "40000", StopLossPrice: "38000",
	})
	assert.ErrorIs(t, err, errs.ErrBadRequest)
	assert.Zero(t, transport.calls)
}

func TestCreateOrderSpot(t *testing.T) {
	t.Parallel()
	transport := &stubTransport{resp: &request.Response{
		StatusCode: 200,
		Body:       []byte(`{"code":"00000","msg":"success","data":{"orderId":"2002","clientOrderId":"abc-2"}}`),
	}}
	bi := newTestClient(t, transport, exchange.Credentials{Key: "k", Secret: "s", Passphrase: "p"}, false)

	d, err := bi.CreateOrder(context.Background(), &exchange.OrderRequest{
		Symbol: "BTC/USDT", Side: order.Buy, Type: "limit", Amount: "0.5", Price: "39000",
	})
	require.NoError(t, err)
	assert.Equal(t, "2002", d.ID)
	assert.Equal(t, "abc-2", d.ClientOrderID)
	assert.Equal(t, order.Open, d.Status)
	assert.Equal(t, "0.5", d.Remaining)
}

func TestSupportsAsset(t *testing.T) {
	t.Parallel()
	bi := newTestClient(t, &stubTransport{}, exchange.Credentials{}, false)
	assert.True(t, bi.SupportsAsset(asset.Spot))
	assert.True(t, bi.SupportsAsset(asset.Swap))
	assert.False(t, bi.SupportsAsset(asset.Option))
}
