// Package mexc implements the MEXC adapter over the generic exchange client.
// The venue runs two disjoint API surfaces, a spot line on api.mexc.com and a
// contract line on contract.mexc.com, each with its own signing convention;
// the endpoint table and signer dispatch between them by market type.
package mexc

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/tradekit-io/unified/currency"
	exchange "github.com/tradekit-io/unified/exchanges"
	"github.com/tradekit-io/unified/exchanges/asset"
	"github.com/tradekit-io/unified/exchanges/endpoint"
	"github.com/tradekit-io/unified/exchanges/errs"
	"github.com/tradekit-io/unified/exchanges/request"
	"github.com/tradekit-io/unified/types"
)

// MEXC is the overarching type across this package
type MEXC struct {
	*exchange.Base
}

var _ exchange.UnifiedExchange = (*MEXC)(nil)

const (
	mexcName           = "mexc"
	mexcAPIURL         = "https://api.mexc.com"
	mexcContractAPIURL = "https://contract.mexc.com"
)

// endpointTable wires every supported (operation, market type) combination.
// Contract paths are absolute because the derivative line lives on its own
// host.
func endpointTable() (*endpoint.Table, error) {
	c := func(p string) string { return mexcContractAPIURL + p }
	return endpoint.NewTable(mexcName, map[endpoint.Key]endpoint.Endpoint{
		{Op: endpoint.OpSyncTime, Asset: asset.Spot}:                {Method: http.MethodGet, Path: "/api/v3/time", Weight: 1},
		{Op: endpoint.OpFetchMarkets, Asset: asset.Spot}:            {Method: http.MethodGet, Path: "/api/v3/exchangeInfo", Weight: 10},
		{Op: endpoint.OpFetchMarkets, Asset: asset.Swap}:            {Method: http.MethodGet, Path: c("/api/v1/contract/detail"), Weight: 1},
		{Op: endpoint.OpFetchCurrencies, Asset: asset.Spot}:         {Method: http.MethodGet, Path: "/api/v3/capital/config/getall", Weight: 10, Auth: true},
		{Op: endpoint.OpFetchTicker, Asset: asset.Spot}:             {Method: http.MethodGet, Path: "/api/v3/ticker/24hr", Weight: 1},
		{Op: endpoint.OpFetchTicker, Asset: asset.Swap}:             {Method: http.MethodGet, Path: c("/api/v1/contract/ticker"), Weight: 1},
		{Op: endpoint.OpFetchTickers, Asset: asset.Spot}:            {Method: http.MethodGet, Path: "/api/v3/ticker/24hr", Weight: 40},
		{Op: endpoint.OpFetchTickers, Asset: asset.Swap}:            {Method: http.MethodGet, Path: c("/api/v1/contract/ticker"), Weight: 1},
		{Op: endpoint.OpFetchTrades, Asset: asset.Spot}:             {Method: http.MethodGet, Path: "/api/v3/trades", Weight: 5},
		{Op: endpoint.OpFetchTrades, Asset: asset.Swap}:             {Method: http.MethodGet, Path: c("/api/v1/contract/deals/{symbol}"), Weight: 1},
		{Op: endpoint.OpCreateOrder, Asset: asset.Spot}:             {Method: http.MethodPost, Path: "/api/v3/order", Weight: 1, Auth: true},
		{Op: endpoint.OpCreateOrder, Asset: asset.Swap}:             {Method: http.MethodPost, Path: c("/api/v1/private/order/submit"), Weight: 1, Auth: true},
		{Op: endpoint.OpCancelOrder, Asset: asset.Spot}:             {Method: http.MethodDelete, Path: "/api/v3/order", Weight: 1, Auth: true},
		{Op: endpoint.OpCancelOrder, Asset: asset.Swap}:             {Method: http.MethodPost, Path: c("/api/v1/private/order/cancel"), Weight: 1, Auth: true},
		{Op: endpoint.OpFetchOrder, Asset: asset.Spot}:              {Method: http.MethodGet, Path: "/api/v3/order", Weight: 2, Auth: true},
		{Op: endpoint.OpFetchOrder, Asset: asset.Swap}:              {Method: http.MethodGet, Path: c("/api/v1/private/order/get/{order_id}"), Weight: 2, Auth: true},
		{Op: endpoint.OpFetchOpenOrders, Asset: asset.Spot}:         {Method: http.MethodGet, Path: "/api/v3/openOrders", Weight: 3, Auth: true},
		{Op: endpoint.OpFetchOpenOrders, Asset: asset.Swap}:         {Method: http.MethodGet, Path: c("/api/v1/private/order/list/open_orders/{symbol}"), Weight: 2, Auth: true},
		{Op: endpoint.OpFetchMyTrades, Asset: asset.Spot}:           {Method: http.MethodGet, Path: "/api/v3/myTrades", Weight: 10, Auth: true},
		{Op: endpoint.OpFetchMyTrades, Asset: asset.Swap}:           {Method: http.MethodGet, Path: c("/api/v1/private/order/list/order_deals"), Weight: 2, Auth: true},
		{Op: endpoint.OpFetchBalance, Asset: asset.Spot}:            {Method: http.MethodGet, Path: "/api/v3/account", Weight: 10, Auth: true},
		{Op: endpoint.OpFetchBalance, Asset: asset.Swap}:            {Method: http.MethodGet, Path: c("/api/v1/private/account/assets"), Weight: 2, Auth: true},
		{Op: endpoint.OpFetchPositions, Asset: asset.Swap}:          {Method: http.MethodGet, Path: c("/api/v1/private/position/open_positions"), Weight: 2, Auth: true},
		{Op: endpoint.OpFetchFundingRate, Asset: asset.Swap}:        {Method: http.MethodGet, Path: c("/api/v1/contract/funding_rate/{symbol}"), Weight: 1},
		{Op: endpoint.OpFetchFundingRateHistory, Asset: asset.Swap}: {Method: http.MethodGet, Path: c("/api/v1/contract/funding_rate/history"), Weight: 1},
		{Op: endpoint.OpTransfer, Asset: asset.Spot}:                {Method: http.MethodPost, Path: "/api/v3/capital/transfer", Weight: 1, Auth: true},
		{Op: endpoint.OpFetchDeposits, Asset: asset.Spot}:           {Method: http.MethodGet, Path: "/api/v3/capital/deposit/hisrec", Weight: 1, Auth: true},
		{Op: endpoint.OpFetchWithdrawals, Asset: asset.Spot}:        {Method: http.MethodGet, Path: "/api/v3/capital/withdraw/history", Weight: 1, Auth: true},
		{Op: endpoint.OpWithdraw, Asset: asset.Spot}:                {Method: http.MethodPost, Path: "/api/v3/capital/withdraw/apply", Weight: 1, Auth: true},
	})
}

// New constructs a MEXC client. The venue has no sandbox namespace; sandbox
// configuration is rejected rather than silently trading live.
func New(cfg exchange.Config) (*MEXC, error) {
	if cfg.Sandbox {
		return nil, errs.New(mexcName, "", errs.ErrNotSupported, "", "mexc has no sandbox environment")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = mexcAPIURL
	}
	if cfg.Transport == nil {
		cfg.Transport = request.New(mexcName, nil, request.WithLogger(cfg.Logger))
	}
	table, err := endpointTable()
	if err != nil {
		return nil, err
	}
	base, err := exchange.NewBase(mexcName, cfg, table, &signer{}, newClassifier(), exchange.ResponseEnvelope{
		CodeKeys:     []string{"code"},
		MessageKeys:  []string{"msg", "message"},
		SuccessCodes: []string{"0", "200"},
	})
	if err != nil {
		return nil, err
	}
	return &MEXC{Base: base}, nil
}

// SupportsAsset reports whether the adapter services the market type
func (m *MEXC) SupportsAsset(a asset.Item) bool {
	return a == asset.Spot || a == asset.Swap
}

// SyncTime fetches the venue clock and caches the client/server offset used
// by signing timestamps
func (m *MEXC) SyncTime(ctx context.Context) (time.Time, error) {
	var resp struct {
		ServerTime types.Time `json:"serverTime"`
	}
	err := m.SendRequest(ctx, endpoint.OpSyncTime, asset.Spot, nil, nil, nil, &resp)
	if err != nil {
		return time.Time{}, err
	}
	serverTime := resp.ServerTime.Time()
	m.SyncClock(serverTime)
	return serverTime, nil
}

var knownQuotes = []string{"USDT", "USDC", "USD", "BTC", "ETH", "EUR", "TUSD", "MX"}

func splitBaseQuote(s string) (base, quote string) {
	for _, q := range knownQuotes {
		if len(s) > len(q) && strings.HasSuffix(s, q) {
			return s[:len(s)-len(q)], q
		}
	}
	return "", ""
}

// parseMarketID decomposes an exchange-native identifier. The contract line
// separates base and quote with an underscore (BTC_USDT); the spot line
// concatenates them (BTCUSDT). All contracts are linear and settle in the
// quote currency.
func parseMarketID(id string) (currency.Pair, asset.Item, error) {
	if base, quote, found := strings.Cut(id, "_"); found {
		if base == "" || quote == "" {
			return currency.Pair{}, asset.Empty,
				errs.New(mexcName, "", errs.ErrBadSymbol, "", "cannot parse market id "+id)
		}
		p := currency.NewSettledPair(currency.NewCode(base), currency.NewCode(quote), currency.NewCode(quote))
		return p, asset.Swap, nil
	}
	base, quote := splitBaseQuote(id)
	if base == "" {
		return currency.Pair{}, asset.Empty,
			errs.New(mexcName, "", errs.ErrBadSymbol, "", "cannot derive base/quote from market id "+id)
	}
	return currency.NewPair(currency.NewCode(base), currency.NewCode(quote)), asset.Spot, nil
}

// marketID renders the exchange-native identifier for a canonical pair
func marketID(pair currency.Pair, a asset.Item) string {
	if a == asset.Spot {
		return pair.Base.String() + pair.Quote.String()
	}
	return pair.Base.String() + "_" + pair.Quote.String()
}

func assetForSymbol(symbol string) (currency.Pair, asset.Item, error) {
	pair, err := currency.ParseSymbol(symbol)
	if err != nil {
		return currency.Pair{}, asset.Empty, errs.New(mexcName, "", errs.ErrBadSymbol, "", err.Error())
	}
	if pair.Settle.IsEmpty() {
		return pair, asset.Spot, nil
	}
	return pair, asset.Swap, nil
}
