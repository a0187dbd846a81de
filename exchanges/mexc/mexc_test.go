package mexc

import (
	"context"
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
	calls   int
	lastReq *request.Request
	resp    *request.Response
	err     error
}

func (s *stubTransport) Execute(_ context.Context, req *request.Request) (*request.Response, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func newTestClient(t *testing.T, transport request.Transport, creds exchange.Credentials) *MEXC {
	t.Helper()
	m, err := New(exchange.Config{
		Credentials: creds,
		Transport:   transport,
	})
	require.NoError(t, err)
	return m
}

func TestNewRejectsSandbox(t *testing.T) {
	t.Parallel()
	_, err := New(exchange.Config{Sandbox: true, Transport: &stubTransport{}})
	assert.ErrorIs(t, err, errs.ErrNotSupported)
}

func TestParseMarketID(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		id     string
		symbol string
		a      asset.Item
		err    bool
	}{
		{id: "BTCUSDT", symbol: "BTC/USDT", a: asset.Spot},
		{id: "MXUSDT", symbol: "MX/USDT", a: asset.Spot},
		{id: "BTC_USDT", symbol: "BTC/USDT:USDT", a: asset.Swap},
		{id: "ETH_USDC", symbol: "ETH/USDC:USDC", a: asset.Swap},
		{id: "BOGUS", err: true},
		{id: "_USDT", err: true},
	} {
		pair, a, err := parseMarketID(tc.id)
		if tc.err {
			assert.ErrorIs(t, err, errs.ErrBadSymbol, tc.id)
			continue
		}
		require.NoError(t, err, tc.id)
		assert.Equal(t, tc.symbol, pair.Symbol(), tc.id)
		assert.Equal(t, tc.a, a, tc.id)
	}
}

func TestMarketIDRoundTrip(t *testing.T) {
	t.Parallel()
	swap, err := currency.ParseSymbol("BTC/USDT:USDT")
	require.NoError(t, err)
	assert.Equal(t, "BTC_USDT", marketID(swap, asset.Swap))

	spot, err := currency.ParseSymbol("BTC/USDT")
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", marketID(spot, asset.Spot))
}

func TestSpotSignature(t *testing.T) {
	t.Parallel()
	creds := &exchange.Credentials{Key: "key", Secret: "secret"}
	ts := time.UnixMilli(1645856591864)
	s := &signer{}

	q := url.Values{}
	q.Set("symbol", "BTCUSDT")
	headers, signed, err := s.Sign(creds, asset.Spot, "GET", "/api/v3/account", q, nil, ts)
	require.NoError(t, err)
	assert.Equal(t, "key", headers["X-MEXC-APIKEY"])
	assert.Equal(t, "1645856591864", signed.Get("timestamp"))
	assert.NotEmpty(t, signed.Get("signature"))

	q2 := url.Values{}
	q2.Set("symbol", "BTCUSDT")
	_, again, err := s.Sign(creds, asset.Spot, "GET", "/api/v3/account", q2, nil, ts)
	require.NoError(t, err)
	assert.Equal(t, signed.Get("signature"), again.Get("signature"))
}

func TestContractSignature(t *testing.T) {
	t.Parallel()
	creds := &exchange.Credentials{Key: "key", Secret: "secret"}
	ts := time.UnixMilli(1645856591864)
	s := &signer{}

	body := []byte(`{"symbol":"BTC_USDT","vol":"1"}`)
	headers, _, err := s.Sign(creds, asset.Swap, "POST", "/api/v1/private/order/submit", nil, body, ts)
	require.NoError(t, err)
	assert.Equal(t, "key", headers["ApiKey"])
	assert.Equal(t, "1645856591864", headers["Request-Time"])
	require.NotEmpty(t, headers["Signature"])

	again, _, err := s.Sign(creds, asset.Swap, "POST", "/api/v1/private/order/submit", nil, body, ts)
	require.NoError(t, err)
	assert.Equal(t, headers["Signature"], again["Signature"])
}

func TestParseTickerSpot(t *testing.T) {
	t.Parallel()
	payload := []byte(`{
		"symbol":"BTCUSDT",
		"lastPrice":"39086",
		"bidPrice":"39085.5",
		"askPrice":"39086.5",
		"highPrice":"40312",
		"lowPrice":"38524.5",
		"openPrice":"40000",
		"volume":"1234.5",
		"priceChangePercent":"-2.285",
		"closeTime":1645856591864
	}`)
	var node map[string]any
	require.NoError(t, request.DecodeJSON(payload, &node))

	p, err := parseTicker(node)
	require.NoError(t, err)
	assert.Equal(t, "BTC/USDT", p.Symbol)
	assert.Equal(t, "39085.5", p.Bid)
	assert.Equal(t, "39086.5", p.Ask)
	assert.Equal(t, "-2.285", p.Percentage)
	assert.Equal(t, "-914", p.Change)
	assert.Equal(t, int64(1645856591864), p.Timestamp.UnixMilli())
}

func TestParseTickerContract(t *testing.T) {
	t.Parallel()
	payload := []byte(`{
		"symbol":"BTC_USDT",
		"lastPrice":39086,
		"bid1":39085.5,
		"ask1":39086.5,
		"high24Price":40312,
		"lower24Price":38524.5,
		"volume24":98765,
		"riseFallRate":-0.0228,
		"timestamp":1645856591864
	}`)
	var node map[string]any
	require.NoError(t, request.DecodeJSON(payload, &node))

	p, err := parseTicker(node)
	require.NoError(t, err)
	assert.Equal(t, "BTC/USDT:USDT", p.Symbol)
	assert.Equal(t, "39085.5", p.Bid)
	assert.Equal(t, "39086.5", p.Ask)
	assert.Equal(t, "40312", p.High)
	assert.Equal(t, "38524.5", p.Low)
	assert.Equal(t, "-2.28", p.Percentage)
}

func TestParseOrderSpot(t *testing.T) {
	t.Parallel()
	payload := []byte(`{
		"symbol":"BTCUSDT",
		"orderId":"C02__443776428865216512",
		"clientOrderId":"abc-1",
		"price":"39000",
		"origQty":"2",
		"executedQty":"0.5",
		"cummulativeQuoteQty":"19500",
		"status":"PARTIALLY_FILLED",
		"type":"LIMIT",
		"side":"BUY",
		"time":1645856591864
	}`)
	var node map[string]any
	require.NoError(t, request.DecodeJSON(payload, &node))

	d, err := parseOrder(node)
	require.NoError(t, err)
	assert.Equal(t, "C02__443776428865216512", d.ID)
	assert.Equal(t, order.Buy, d.Side)
	assert.Equal(t, order.Open, d.Status)
	assert.Equal(t, "limit", d.Type)
	assert.Equal(t, "1.5", d.Remaining)
	assert.Equal(t, "19500", d.Cost)
}

func TestParseOrderContract(t *testing.T) {
	t.Parallel()
	payload := []byte(`{
		"symbol":"BTC_USDT",
		"orderId":102015012431,
		"externalOid":"xyz-9",
		"price":39000,
		"vol":10,
		"dealVol":10,
		"dealAvgPrice":38995.5,
		"state":3,
		"side":4,
		"createTime":1645856591864
	}`)
	var node map[string]any
	require.NoError(t, request.DecodeJSON(payload, &node))

	d, err := parseOrder(node)
	require.NoError(t, err)
	assert.Equal(t, "102015012431", d.ID)
	assert.Equal(t, "xyz-9", d.ClientOrderID)
	assert.Equal(t, order.Sell, d.Side)
	assert.Equal(t, order.Closed, d.Status)
	assert.Equal(t, "0", d.Remaining)
	assert.Equal(t, "389955", d.Cost)
}

func TestParsePosition(t *testing.T) {
	t.Parallel()
	payload := []byte(`{
		"symbol":"BTC_USDT",
		"positionType":1,
		"openType":1,
		"holdVol":10,
		"openAvgPrice":40000,
		"leverage":10,
		"im":4000,
		"mm":160,
		"liquidatePrice":36184,
		"profitRatio":-0.0375,
		"updateTime":1645856591864
	}`)
	var node map[string]any
	require.NoError(t, request.DecodeJSON(payload, &node))

	p, err := parsePosition(node)
	require.NoError(t, err)
	assert.Equal(t, "BTC/USDT:USDT", p.Symbol)
	assert.Equal(t, futures.Long, p.Side)
	assert.Equal(t, futures.Isolated, p.MarginMode)
	assert.Equal(t, "36184", p.LiquidationPrice)
	assert.Equal(t, "0.04", p.MarginRatio)
	assert.Empty(t, p.UnrealizedPnL)
	assert.Equal(t, "-3.75", p.UnrealizedPnLPercent)
}

func TestContractSide(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "1", contractSide(order.Buy, false))
	assert.Equal(t, "3", contractSide(order.Sell, false))
	assert.Equal(t, "2", contractSide(order.Buy, true))
	assert.Equal(t, "4", contractSide(order.Sell, true))
}

func TestClassifier(t *testing.T) {
	t.Parallel()
	c := newClassifier()
	assert.ErrorIs(t, c.Classify("CreateOrder", "700002", "", nil), errs.ErrAuthentication)
	assert.ErrorIs(t, c.Classify("CreateOrder", "-2011", "Unknown order sent.", nil), errs.ErrOrderNotFound)
	assert.ErrorIs(t, c.Classify("CreateOrder", "", "Oversold", nil), errs.ErrInsufficientFunds)
	assert.ErrorIs(t, c.Classify("CreateOrder", "424242", "novel failure", nil), errs.ErrExchange)
}

func TestMissingCredentialFastFail(t *testing.T) {
	t.Parallel()
	transport := &stubTransport{}
	m := newTestClient(t, transport, exchange.Credentials{})

	_, err := m.FetchBalance(context.Background(), asset.Spot)
	assert.ErrorIs(t, err, errs.ErrAuthentication)
	assert.Zero(t, transport.calls)
}

func TestFetchTickerContractEndToEnd(t *testing.T) {
	t.Parallel()
	transport := &stubTransport{resp: &request.Response{
		StatusCode: 200,
		Body: []byte(`{"success":true,"code":0,"data":{
			"symbol":"BTC_USDT","lastPrice":39086,"bid1":39085.5,"ask1":39086.5,
			"high24Price":40312,"lower24Price":38524.5,"timestamp":1645856591864}}`),
	}}
	m := newTestClient(t, transport, exchange.Credentials{})

	p, err := m.FetchTicker(context.Background(), "BTC/USDT:USDT")
	require.NoError(t, err)
	require.NotNil(t, transport.lastReq)
	assert.Contains(t, transport.lastReq.URL, mexcContractAPIURL)
	assert.Equal(t, "39085.5", p.Bid)
	assert.Equal(t, "39086.5", p.Ask)
}

func TestFetchTickerSpotEndToEnd(t *testing.T) {
	t.Parallel()
	transport := &stubTransport{resp: &request.Response{
		StatusCode: 200,
		Body: []byte(`{"symbol":"BTCUSDT","lastPrice":"39086","bidPrice":"39085.5",
			"askPrice":"39086.5","highPrice":"40312","lowPrice":"38524.5"}`),
	}}
	m := newTestClient(t, transport, exchange.Credentials{})

	p, err := m.FetchTicker(context.Background(), "BTC/USDT")
	require.NoError(t, err)
	assert.Contains(t, transport.lastReq.URL, mexcAPIURL)
	assert.Equal(t, "BTC/USDT", p.Symbol)
	assert.Equal(t, "39086", p.Last)
}

func TestParseSpotMarketReportedPair(t *testing.T) {
	t.Parallel()
	mk, err := parseSpotMarket(&SpotSymbol{
		Symbol:             "ABCDAI",
		Status:             "1",
		BaseAsset:          "ABC",
		QuoteAsset:         "DAI",
		BaseAssetPrecision: 2,
		QuotePrecision:     4,
	})
	require.NoError(t, err)
	assert.Equal(t, "ABC/DAI", mk.Symbol)
	assert.Equal(t, "ABC", mk.Base.String())
	assert.Equal(t, "DAI", mk.Quote.String())
	assert.True(t, mk.Active)
}

func TestCreateOrderContractNumericAck(t *testing.T) {
	t.Parallel()
	transport := &stubTransport{resp: &request.Response{
		StatusCode: 200,
		Body:       []byte(`{"success":true,"code":0,"data":102015012431}`),
	}}
	m := newTestClient(t, transport, exchange.Credentials{Key: "k", Secret: "s"})

	d, err := m.CreateOrder(context.Background(), &exchange.OrderRequest{
		Symbol: "BTC/USDT:USDT", Side: order.Buy, Type: "limit", Amount: "1", Price: "39000",
	})
	require.NoError(t, err)
	assert.Equal(t, "102015012431", d.ID)
	assert.Equal(t, order.Open, d.Status)
}

func TestCreateOrderContractQuotedAck(t *testing.T) {
	t.Parallel()
	transport := &stubTransport{resp: &request.Response{
		StatusCode: 200,
		Body:       []byte(`{"success":true,"code":0,"data":"102015012432"}`),
	}}
	m := newTestClient(t, transport, exchange.Credentials{Key: "k", Secret: "s"})

	d, err := m.CreateOrder(context.Background(), &exchange.OrderRequest{
		Symbol: "BTC/USDT:USDT", Side: order.Sell, Type: "market", Amount: "2",
	})
	require.NoError(t, err)
	assert.Equal(t, "102015012432", d.ID)
}

func TestFetchTickersSpot(t *testing.T) {
	t.Parallel()
	transport := &stubTransport{resp: &request.Response{
		StatusCode: 200,
		Body: []byte(`[
			{"symbol":"BTCUSDT","lastPrice":"39086","highPrice":"40312","lowPrice":"38524.5"},
			{"symbol":"ETHUSDT","lastPrice":"2890.1","highPrice":"2950","lowPrice":"2800"}]`),
	}}
	m := newTestClient(t, transport, exchange.Credentials{})

	tickers, err := m.FetchTickers(context.Background(), asset.Spot)
	require.NoError(t, err)
	assert.Equal(t, 1, transport.calls)
	require.Len(t, tickers, 2)
	assert.Equal(t, "BTC/USDT", tickers[0].Symbol)
	assert.Equal(t, "ETH/USDT", tickers[1].Symbol)
	assert.Equal(t, "2890.1", tickers[1].Last)
}

func TestFetchOrderContractNotFound(t *testing.T) {
	t.Parallel()
	transport := &stubTransport{resp: &request.Response{
		StatusCode: 200,
		Body:       []byte(`{"success":false,"code":2040,"message":"order not found"}`),
	}}
	m := newTestClient(t, transport, exchange.Credentials{Key: "k", Secret: "s"})

	_, err := m.FetchOrder(context.Background(), "BTC/USDT:USDT", "102015012431")
	assert.ErrorIs(t, err, errs.ErrOrderNotFound)
}
