// Package bitget implements the Bitget adapter over the generic exchange
// client: its endpoint table, signing convention, response parsers and error
// classification data
package bitget

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tradekit-io/unified/currency"
	exchange "github.com/tradekit-io/unified/exchanges"
	"github.com/tradekit-io/unified/exchanges/asset"
	"github.com/tradekit-io/unified/exchanges/endpoint"
	"github.com/tradekit-io/unified/exchanges/errs"
	"github.com/tradekit-io/unified/exchanges/request"
	"github.com/tradekit-io/unified/types"
)

// Bitget is the overarching type across this package
type Bitget struct {
	*exchange.Base
}

var _ exchange.UnifiedExchange = (*Bitget)(nil)

const (
	bitgetName   = "bitget"
	bitgetAPIURL = "https://api.bitget.com"

	// The assumed taker fee applied when deriving a liquidation price the
	// venue did not report
	bitgetAssumedTakerFee = "0.0006"
)

// endpointTable wires every supported (operation, market type) combination to
// its concrete verb, path and published rate weight. Everything here is
// static venue configuration; lookups of combinations absent from this table
// classify as NotSupported.
func endpointTable() (*endpoint.Table, error) {
	return endpoint.NewTable(bitgetName, map[endpoint.Key]endpoint.Endpoint{
		{Op: endpoint.OpSyncTime, Asset: asset.Spot}:                {Method: http.MethodGet, Path: "/api/spot/v1/public/time", Weight: 1},
		{Op: endpoint.OpFetchMarkets, Asset: asset.Spot}:            {Method: http.MethodGet, Path: "/api/spot/v1/public/products", Weight: 1},
		{Op: endpoint.OpFetchMarkets, Asset: asset.Swap}:            {Method: http.MethodGet, Path: "/api/mix/v1/market/contracts", Weight: 1},
		{Op: endpoint.OpFetchCurrencies, Asset: asset.Spot}:         {Method: http.MethodGet, Path: "/api/spot/v1/public/currencies", Weight: 1},
		{Op: endpoint.OpFetchTicker, Asset: asset.Spot}:             {Method: http.MethodGet, Path: "/api/spot/v1/market/ticker", Weight: 1},
		{Op: endpoint.OpFetchTicker, Asset: asset.Swap}:             {Method: http.MethodGet, Path: "/api/mix/v1/market/ticker", Weight: 1},
		{Op: endpoint.OpFetchTickers, Asset: asset.Spot}:            {Method: http.MethodGet, Path: "/api/spot/v1/market/tickers", Weight: 1},
		{Op: endpoint.OpFetchTickers, Asset: asset.Swap}:            {Method: http.MethodGet, Path: "/api/mix/v1/market/tickers", Weight: 1},
		{Op: endpoint.OpFetchTrades, Asset: asset.Spot}:             {Method: http.MethodGet, Path: "/api/spot/v1/market/fills", Weight: 2},
		{Op: endpoint.OpFetchTrades, Asset: asset.Swap}:             {Method: http.MethodGet, Path: "/api/mix/v1/market/fills", Weight: 2},
		{Op: endpoint.OpCreateOrder, Asset: asset.Spot}:             {Method: http.MethodPost, Path: "/api/spot/v1/trade/orders", Weight: 2, Auth: true},
		{Op: endpoint.OpCreateOrder, Asset: asset.Swap}:             {Method: http.MethodPost, Path: "/api/mix/v1/order/placeOrder", Weight: 2, Auth: true},
		{Op: endpoint.OpCancelOrder, Asset: asset.Spot}:             {Method: http.MethodPost, Path: "/api/spot/v1/trade/cancel-order", Weight: 2, Auth: true},
		{Op: endpoint.OpCancelOrder, Asset: asset.Swap}:             {Method: http.MethodPost, Path: "/api/mix/v1/order/cancel-order", Weight: 2, Auth: true},
		{Op: endpoint.OpFetchOrder, Asset: asset.Spot}:              {Method: http.MethodPost, Path: "/api/spot/v1/trade/orderInfo", Weight: 1, Auth: true},
		{Op: endpoint.OpFetchOrder, Asset: asset.Swap}:              {Method: http.MethodGet, Path: "/api/mix/v1/order/detail", Weight: 1, Auth: true},
		{Op: endpoint.OpFetchOpenOrders, Asset: asset.Spot}:         {Method: http.MethodPost, Path: "/api/spot/v1/trade/open-orders", Weight: 1, Auth: true},
		{Op: endpoint.OpFetchOpenOrders, Asset: asset.Swap}:         {Method: http.MethodGet, Path: "/api/mix/v1/order/current", Weight: 1, Auth: true},
		{Op: endpoint.OpFetchMyTrades, Asset: asset.Spot}:           {Method: http.MethodPost, Path: "/api/spot/v1/trade/fills", Weight: 1, Auth: true},
		{Op: endpoint.OpFetchMyTrades, Asset: asset.Swap}:           {Method: http.MethodGet, Path: "/api/mix/v1/order/fills", Weight: 1, Auth: true},
		{Op: endpoint.OpFetchBalance, Asset: asset.Spot}:            {Method: http.MethodGet, Path: "/api/spot/v1/account/assets", Weight: 2, Auth: true},
		{Op: endpoint.OpFetchBalance, Asset: asset.Swap}:            {Method: http.MethodGet, Path: "/api/mix/v1/account/accounts", Weight: 2, Auth: true},
		{Op: endpoint.OpFetchPositions, Asset: asset.Swap}:          {Method: http.MethodGet, Path: "/api/mix/v1/position/allPosition", Weight: 2, Auth: true},
		{Op: endpoint.OpFetchFundingRate, Asset: asset.Swap}:        {Method: http.MethodGet, Path: "/api/mix/v1/market/current-fundRate", Weight: 1},
		{Op: endpoint.OpFetchFundingRateHistory, Asset: asset.Swap}: {Method: http.MethodGet, Path: "/api/mix/v1/market/history-fundRate", Weight: 1},
		{Op: endpoint.OpTransfer, Asset: asset.Spot}:                {Method: http.MethodPost, Path: "/api/spot/v1/wallet/transfer", Weight: 2, Auth: true},
		{Op: endpoint.OpFetchDeposits, Asset: asset.Spot}:           {Method: http.MethodGet, Path: "/api/spot/v1/wallet/deposit-list", Weight: 1, Auth: true},
		{Op: endpoint.OpFetchWithdrawals, Asset: asset.Spot}:        {Method: http.MethodGet, Path: "/api/spot/v1/wallet/withdrawal-list", Weight: 1, Auth: true},
		{Op: endpoint.OpWithdraw, Asset: asset.Spot}:                {Method: http.MethodPost, Path: "/api/spot/v1/wallet/withdrawal", Weight: 2, Auth: true},
	})
}

// New constructs a Bitget client. Sandbox mode targets the venue's simulated
// product namespace through S-prefixed product types on the same host.
func New(cfg exchange.Config) (*Bitget, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = bitgetAPIURL
	}
	if cfg.Transport == nil {
		cfg.Transport = request.New(bitgetName, nil, request.WithLogger(cfg.Logger))
	}
	table, err := endpointTable()
	if err != nil {
		return nil, err
	}
	base, err := exchange.NewBase(bitgetName, cfg, table, &signer{}, newClassifier(), exchange.ResponseEnvelope{
		CodeKeys:     []string{"code"},
		MessageKeys:  []string{"msg"},
		SuccessCodes: []string{"00000"},
	})
	if err != nil {
		return nil, err
	}
	return &Bitget{Base: base}, nil
}

// SupportsAsset reports whether the adapter services the market type
func (bi *Bitget) SupportsAsset(a asset.Item) bool {
	return a == asset.Spot || a == asset.Swap
}

// productType returns the mix product-type request parameter for a settle
// currency, remapped to the S-prefixed simulation namespace in sandbox mode
func (bi *Bitget) productType(settle currency.Code) string {
	var pt string
	switch {
	case settle.Equal("USDT"):
		pt = "umcbl"
	case settle.Equal("USDC"):
		pt = "cmcbl"
	default:
		pt = "dmcbl"
	}
	if bi.Sandbox() {
		pt = "s" + pt
	}
	return pt
}

// SyncTime fetches the venue clock and caches the client/server offset used
// by signing timestamps
func (bi *Bitget) SyncTime(ctx context.Context) (time.Time, error) {
	var resp struct {
		Data types.Time `json:"data"`
	}
	err := bi.SendRequest(ctx, endpoint.OpSyncTime, asset.Spot, nil, nil, nil, &resp)
	if err != nil {
		return time.Time{}, err
	}
	serverTime := resp.Data.Time()
	bi.SyncClock(serverTime)
	return serverTime, nil
}

func assetForSymbol(symbol string) (currency.Pair, asset.Item, error) {
	pair, err := currency.ParseSymbol(symbol)
	if err != nil {
		return currency.Pair{}, asset.Empty, errs.New(bitgetName, "", errs.ErrBadSymbol, "", err.Error())
	}
	if pair.Settle.IsEmpty() {
		return pair, asset.Spot, nil
	}
	// Dated futures dispatch through the same mix endpoints as perpetuals;
	// the canonical market type still distinguishes them
	return pair, asset.Swap, nil
}

func timeRangeValues(q url.Values, start, end time.Time) {
	if !start.IsZero() {
		q.Set("startTime", strconv.FormatInt(start.UnixMilli(), 10))
	}
	if !end.IsZero() {
		q.Set("endTime", strconv.FormatInt(end.UnixMilli(), 10))
	}
}
