package bitget

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/gofrs/uuid"

	"github.com/tradekit-io/unified/currency"
	exchange "github.com/tradekit-io/unified/exchanges"
	"github.com/tradekit-io/unified/exchanges/account"
	"github.com/tradekit-io/unified/exchanges/asset"
	"github.com/tradekit-io/unified/exchanges/endpoint"
	"github.com/tradekit-io/unified/exchanges/errs"
	"github.com/tradekit-io/unified/exchanges/futures"
	"github.com/tradekit-io/unified/exchanges/market"
	"github.com/tradekit-io/unified/exchanges/order"
	"github.com/tradekit-io/unified/exchanges/ticker"
	"github.com/tradekit-io/unified/exchanges/trade"
)

// mixProductTypes returns every mix product-type namespace the client
// queries when an operation spans the whole derivative account
func (bi *Bitget) mixProductTypes() []string {
	return []string{
		bi.productType(currency.NewCode("USDT")),
		bi.productType(currency.NewCode("USDC")),
		bi.productType(currency.NewCode("BTC")),
	}
}

// FetchMarkets returns the tradable markets of one market type
func (bi *Bitget) FetchMarkets(ctx context.Context, a asset.Item) ([]market.Market, error) {
	switch a {
	case asset.Spot:
		var resp struct {
			Data []SpotMarketData `json:"data"`
		}
		if err := bi.SendRequest(ctx, endpoint.OpFetchMarkets, a, nil, nil, nil, &resp); err != nil {
			return nil, err
		}
		markets := make([]market.Market, 0, len(resp.Data))
		for i := range resp.Data {
			m, err := parseSpotMarket(&resp.Data[i])
			if err != nil {
				// One malformed listing must not poison the whole call
				continue
			}
			markets = append(markets, *m)
		}
		return markets, nil
	case asset.Swap:
		var markets []market.Market
		for _, pt := range bi.mixProductTypes() {
			q := url.Values{}
			q.Set("productType", pt)
			var resp struct {
				Data []ContractMarketData `json:"data"`
			}
			if err := bi.SendRequest(ctx, endpoint.OpFetchMarkets, a, nil, q, nil, &resp); err != nil {
				return nil, err
			}
			for i := range resp.Data {
				m, err := parseContractMarket(&resp.Data[i])
				if err != nil {
					continue
				}
				markets = append(markets, *m)
			}
		}
		return markets, nil
	}
	return nil, errs.New(bitgetName, "FetchMarkets", errs.ErrNotSupported, "", "market type "+a.String())
}

// FetchCurrencies returns the venue's currency and transfer-network metadata
func (bi *Bitget) FetchCurrencies(ctx context.Context) ([]market.Currency, error) {
	var resp struct {
		Data []CurrencyData `json:"data"`
	}
	if err := bi.SendRequest(ctx, endpoint.OpFetchCurrencies, asset.Spot, nil, nil, nil, &resp); err != nil {
		return nil, err
	}
	currencies := make([]market.Currency, 0, len(resp.Data))
	for i := range resp.Data {
		currencies = append(currencies, *parseCurrency(&resp.Data[i]))
	}
	return currencies, nil
}

// FetchTicker returns the latest ticker snapshot for a unified symbol
func (bi *Bitget) FetchTicker(ctx context.Context, symbol string) (*ticker.Price, error) {
	pair, a, err := assetForSymbol(symbol)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("symbol", bi.marketID(pair, a))
	var resp struct {
		Data map[string]any `json:"data"`
	}
	if err := bi.SendRequest(ctx, endpoint.OpFetchTicker, a, nil, q, nil, &resp); err != nil {
		return nil, err
	}
	return parseTicker(resp.Data)
}

// FetchTickers returns statistics for every market of one market type. The
// mix product lines are queried per product type and merged.
func (bi *Bitget) FetchTickers(ctx context.Context, a asset.Item) ([]ticker.Price, error) {
	if !bi.SupportsAsset(a) {
		return nil, errs.New(bitgetName, "FetchTickers", errs.ErrNotSupported, "", "market type "+a.String())
	}
	queries := []url.Values{nil}
	if a == asset.Swap {
		queries = queries[:0]
		for _, pt := range bi.mixProductTypes() {
			q := url.Values{}
			q.Set("productType", pt)
			queries = append(queries, q)
		}
	}
	var tickers []ticker.Price
	for _, q := range queries {
		var resp struct {
			Data []map[string]any `json:"data"`
		}
		if err := bi.SendRequest(ctx, endpoint.OpFetchTickers, a, nil, q, nil, &resp); err != nil {
			return nil, err
		}
		for _, node := range resp.Data {
			p, err := parseTicker(node)
			if err != nil {
				return nil, err
			}
			tickers = append(tickers, *p)
		}
	}
	return tickers, nil
}

// FetchTrades returns recent public trades for a unified symbol
func (bi *Bitget) FetchTrades(ctx context.Context, symbol string, limit int64) ([]trade.Data, error) {
	pair, a, err := assetForSymbol(symbol)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("symbol", bi.marketID(pair, a))
	if limit > 0 {
		q.Set("limit", strconv.FormatInt(limit, 10))
	}
	var resp struct {
		Data []MarketTrade `json:"data"`
	}
	if err := bi.SendRequest(ctx, endpoint.OpFetchTrades, a, nil, q, nil, &resp); err != nil {
		return nil, err
	}
	trades := make([]trade.Data, 0, len(resp.Data))
	for i := range resp.Data {
		t, err := parsePublicTrade(&resp.Data[i], pair.Symbol())
		if err != nil {
			return nil, err
		}
		trades = append(trades, *t)
	}
	return trades, nil
}

// mixSide renders the compound direction string the mix order endpoint
// expects. Without reduce-only a buy opens a long and a sell opens a short;
// with reduce-only the same sides close the opposite direction.
func mixSide(side order.Side, reduceOnly bool) string {
	if reduceOnly {
		if side == order.Buy {
			return string(order.CloseShort)
		}
		return string(order.CloseLong)
	}
	if side == order.Buy {
		return string(order.OpenLong)
	}
	return string(order.OpenShort)
}

func clientOrderID(requested string) string {
	if requested != "" {
		return requested
	}
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return id.String()
}

// CreateOrder places an order and returns its canonical detail. The venue
// acknowledges with identifiers only; the returned detail reflects the
// request with status open.
func (bi *Bitget) CreateOrder(ctx context.Context, req *exchange.OrderRequest) (*order.Detail, error) {
	if err := req.Validate(bitgetName); err != nil {
		return nil, err
	}
	pair, a, err := assetForSymbol(req.Symbol)
	if err != nil {
		return nil, err
	}
	clientOID := clientOrderID(req.ClientOrderID)
	body := map[string]string{
		"symbol":    bi.marketID(pair, a),
		"orderType": req.Type,
	}
	switch a {
	case asset.Spot:
		if req.TriggerPrice != "" || req.StopLossPrice != "" {
			return nil, errs.New(bitgetName, "CreateOrder", errs.ErrNotSupported, "",
				"trigger orders are not supported on spot markets")
		}
		body["side"] = req.Side.String()
		body["quantity"] = req.Amount
		body["force"] = "normal"
		body["clientOrderId"] = clientOID
		if req.Price != "" {
			body["price"] = req.Price
		}
	default:
		body["marginCoin"] = pair.Settle.String()
		body["side"] = mixSide(req.Side, req.ReduceOnly)
		body["size"] = req.Amount
		body["timeInForceValue"] = "normal"
		body["clientOid"] = clientOID
		if req.Price != "" {
			body["price"] = req.Price
		}
		if req.TriggerPrice != "" {
			body["triggerPrice"] = req.TriggerPrice
		}
		if req.StopLossPrice != "" {
			body["presetStopLossPrice"] = req.StopLossPrice
		}
	}
	var resp struct {
		Data OrderIDResult `json:"data"`
	}
	if err := bi.SendRequest(ctx, endpoint.OpCreateOrder, a, nil, nil, body, &resp); err != nil {
		return nil, err
	}
	id := resp.Data.OrderID
	if resp.Data.ClientOID != "" {
		clientOID = resp.Data.ClientOID
	}
	return &order.Detail{
		ID:            id,
		ClientOrderID: clientOID,
		Symbol:        pair.Symbol(),
		Type:          req.Type,
		Side:          order.CanonicalSide(req.Side.String()),
		Price:         req.Price,
		TriggerPrice:  req.TriggerPrice,
		Amount:        req.Amount,
		Remaining:     req.Amount,
		Status:        order.Open,
		Timestamp:     bi.Now(),
	}, nil
}

// CancelOrder cancels one resting order by exchange identifier
func (bi *Bitget) CancelOrder(ctx context.Context, symbol, orderID string) error {
	pair, a, err := assetForSymbol(symbol)
	if err != nil {
		return err
	}
	if orderID == "" {
		return errs.New(bitgetName, "CancelOrder", errs.ErrArgumentsRequired, "", "orderID is required")
	}
	body := map[string]string{
		"symbol":  bi.marketID(pair, a),
		"orderId": orderID,
	}
	if a != asset.Spot {
		body["marginCoin"] = pair.Settle.String()
	}
	return bi.SendRequest(ctx, endpoint.OpCancelOrder, a, nil, nil, body, nil)
}

// FetchOrder returns the canonical detail of one order by exchange identifier
func (bi *Bitget) FetchOrder(ctx context.Context, symbol, orderID string) (*order.Detail, error) {
	pair, a, err := assetForSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if orderID == "" {
		return nil, errs.New(bitgetName, "FetchOrder", errs.ErrArgumentsRequired, "", "orderID is required")
	}
	id := bi.marketID(pair, a)
	if a == asset.Spot {
		body := map[string]string{"symbol": id, "orderId": orderID}
		var resp struct {
			Data []map[string]any `json:"data"`
		}
		if err := bi.SendRequest(ctx, endpoint.OpFetchOrder, a, nil, nil, body, &resp); err != nil {
			return nil, err
		}
		if len(resp.Data) == 0 {
			return nil, errs.New(bitgetName, "FetchOrder", errs.ErrOrderNotFound, "", orderID)
		}
		return parseOrder(resp.Data[0])
	}
	q := url.Values{}
	q.Set("symbol", id)
	q.Set("orderId", orderID)
	var resp struct {
		Data map[string]any `json:"data"`
	}
	if err := bi.SendRequest(ctx, endpoint.OpFetchOrder, a, nil, q, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errs.New(bitgetName, "FetchOrder", errs.ErrOrderNotFound, "", orderID)
	}
	return parseOrder(resp.Data)
}

// FetchOpenOrders returns all resting orders on a unified symbol
func (bi *Bitget) FetchOpenOrders(ctx context.Context, symbol string) ([]order.Detail, error) {
	pair, a, err := assetForSymbol(symbol)
	if err != nil {
		return nil, err
	}
	id := bi.marketID(pair, a)
	var resp struct {
		Data []map[string]any `json:"data"`
	}
	if a == asset.Spot {
		body := map[string]string{"symbol": id}
		if err := bi.SendRequest(ctx, endpoint.OpFetchOpenOrders, a, nil, nil, body, &resp); err != nil {
			return nil, err
		}
	} else {
		q := url.Values{}
		q.Set("symbol", id)
		if err := bi.SendRequest(ctx, endpoint.OpFetchOpenOrders, a, nil, q, nil, &resp); err != nil {
			return nil, err
		}
	}
	orders := make([]order.Detail, 0, len(resp.Data))
	for i := range resp.Data {
		d, err := parseOrder(resp.Data[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, *d)
	}
	return orders, nil
}

// FetchMyTrades returns the account's own fills on a unified symbol
func (bi *Bitget) FetchMyTrades(ctx context.Context, symbol string, limit int64) ([]trade.Data, error) {
	pair, a, err := assetForSymbol(symbol)
	if err != nil {
		return nil, err
	}
	id := bi.marketID(pair, a)
	var resp struct {
		Data []PrivateFill `json:"data"`
	}
	if a == asset.Spot {
		body := map[string]string{"symbol": id}
		if limit > 0 {
			body["limit"] = strconv.FormatInt(limit, 10)
		}
		if err := bi.SendRequest(ctx, endpoint.OpFetchMyTrades, a, nil, nil, body, &resp); err != nil {
			return nil, err
		}
	} else {
		q := url.Values{}
		q.Set("symbol", id)
		if err := bi.SendRequest(ctx, endpoint.OpFetchMyTrades, a, nil, q, nil, &resp); err != nil {
			return nil, err
		}
	}
	trades := make([]trade.Data, 0, len(resp.Data))
	for i := range resp.Data {
		t, err := parsePrivateFill(&resp.Data[i], pair.Symbol())
		if err != nil {
			return nil, err
		}
		trades = append(trades, *t)
	}
	return trades, nil
}

// FetchBalance returns the account balances of one market type. Derivative
// balances aggregate every product-type namespace; the first namespace
// reporting a margin coin wins.
func (bi *Bitget) FetchBalance(ctx context.Context, a asset.Item) (*account.Holdings, error) {
	switch a {
	case asset.Spot:
		var resp struct {
			Data []SpotAsset `json:"data"`
		}
		if err := bi.SendRequest(ctx, endpoint.OpFetchBalance, a, nil, nil, nil, &resp); err != nil {
			return nil, err
		}
		return parseSpotBalances(resp.Data)
	case asset.Swap:
		merged := &account.Holdings{
			Exchange: bitgetName,
			Balances: make(map[currency.Code]account.Balance),
		}
		for _, pt := range bi.mixProductTypes() {
			q := url.Values{}
			q.Set("productType", pt)
			var resp struct {
				Data []MixAccount `json:"data"`
			}
			if err := bi.SendRequest(ctx, endpoint.OpFetchBalance, a, nil, q, nil, &resp); err != nil {
				return nil, err
			}
			h, err := parseMixBalances(resp.Data)
			if err != nil {
				return nil, err
			}
			for code, b := range h.Balances {
				if _, ok := merged.Balances[code]; !ok {
					merged.Balances[code] = b
				}
			}
		}
		return merged, nil
	}
	return nil, errs.New(bitgetName, "FetchBalance", errs.ErrNotSupported, "", "market type "+a.String())
}

// FetchPositions returns all open derivative positions
func (bi *Bitget) FetchPositions(ctx context.Context, a asset.Item) ([]futures.Position, error) {
	var positions []futures.Position
	for _, pt := range bi.mixProductTypes() {
		q := url.Values{}
		q.Set("productType", pt)
		var resp struct {
			Data []map[string]any `json:"data"`
		}
		if err := bi.SendRequest(ctx, endpoint.OpFetchPositions, a, nil, q, nil, &resp); err != nil {
			return nil, err
		}
		for i := range resp.Data {
			p, err := parsePosition(resp.Data[i])
			if err != nil {
				return nil, err
			}
			positions = append(positions, *p)
		}
	}
	return positions, nil
}

// FetchFundingRate returns the current funding rate of a perpetual market
func (bi *Bitget) FetchFundingRate(ctx context.Context, symbol string) (*futures.FundingRate, error) {
	pair, a, err := assetForSymbol(symbol)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("symbol", bi.marketID(pair, a))
	var resp struct {
		Data FundingRateData `json:"data"`
	}
	if err := bi.SendRequest(ctx, endpoint.OpFetchFundingRate, a, nil, q, nil, &resp); err != nil {
		return nil, err
	}
	fr, err := parseFundingRate(&resp.Data)
	if err != nil {
		return nil, err
	}
	fr.Timestamp = bi.Now()
	return fr, nil
}

// FetchFundingRateHistory returns past settled funding rates of a perpetual
// market, most recent first
func (bi *Bitget) FetchFundingRateHistory(ctx context.Context, symbol string, limit int64) ([]futures.FundingRate, error) {
	pair, a, err := assetForSymbol(symbol)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("symbol", bi.marketID(pair, a))
	if limit > 0 {
		q.Set("pageSize", strconv.FormatInt(limit, 10))
	}
	var resp struct {
		Data []FundingRateHistoryData `json:"data"`
	}
	if err := bi.SendRequest(ctx, endpoint.OpFetchFundingRateHistory, a, nil, q, nil, &resp); err != nil {
		return nil, err
	}
	rates := make([]futures.FundingRate, 0, len(resp.Data))
	for i := range resp.Data {
		rates = append(rates, futures.FundingRate{
			Symbol:    pair.Symbol(),
			Rate:      resp.Data[i].FundingRate.String(),
			Timestamp: resp.Data[i].SettleTime.Time(),
		})
	}
	return rates, nil
}

// Transfer moves funds between the venue's internal account types
func (bi *Bitget) Transfer(ctx context.Context, req *exchange.TransferRequest) (*account.Transfer, error) {
	if req.Currency.IsEmpty() {
		return nil, errs.New(bitgetName, "Transfer", errs.ErrArgumentsRequired, "", "currency is required")
	}
	from, ok := bitgetAccountTypes[req.FromAccount]
	if !ok {
		return nil, errs.New(bitgetName, "Transfer", errs.ErrBadRequest, "", "unknown account type "+req.FromAccount)
	}
	to, ok := bitgetAccountTypes[req.ToAccount]
	if !ok {
		return nil, errs.New(bitgetName, "Transfer", errs.ErrBadRequest, "", "unknown account type "+req.ToAccount)
	}
	body := map[string]string{
		"coin":      req.Currency.String(),
		"amount":    req.Amount,
		"fromType":  from,
		"toType":    to,
		"clientOid": clientOrderID(""),
	}
	var resp struct {
		Data TransferResult `json:"data"`
	}
	if err := bi.SendRequest(ctx, endpoint.OpTransfer, asset.Spot, nil, nil, body, &resp); err != nil {
		return nil, err
	}
	return &account.Transfer{
		ID:          resp.Data.TransferID,
		Currency:    req.Currency,
		Amount:      req.Amount,
		FromAccount: req.FromAccount,
		ToAccount:   req.ToAccount,
		Status:      "ok",
		Timestamp:   bi.Now(),
	}, nil
}

// FetchDeposits returns the deposit history of a currency over the venue's
// maximum queryable window
func (bi *Bitget) FetchDeposits(ctx context.Context, code currency.Code) ([]account.Transaction, error) {
	return bi.walletRecords(ctx, endpoint.OpFetchDeposits, code)
}

// FetchWithdrawals returns the withdrawal history of a currency over the
// venue's maximum queryable window
func (bi *Bitget) FetchWithdrawals(ctx context.Context, code currency.Code) ([]account.Transaction, error) {
	return bi.walletRecords(ctx, endpoint.OpFetchWithdrawals, code)
}

func (bi *Bitget) walletRecords(ctx context.Context, op endpoint.Operation, code currency.Code) ([]account.Transaction, error) {
	if code.IsEmpty() {
		return nil, errs.New(bitgetName, string(op), errs.ErrArgumentsRequired, "", "currency is required")
	}
	q := url.Values{}
	q.Set("coin", code.String())
	// The endpoint caps the queryable range at 90 days
	end := bi.Now()
	timeRangeValues(q, end.Add(-90*24*time.Hour), end)
	var resp struct {
		Data []WalletRecord `json:"data"`
	}
	if err := bi.SendRequest(ctx, op, asset.Spot, nil, q, nil, &resp); err != nil {
		return nil, err
	}
	records := make([]account.Transaction, 0, len(resp.Data))
	for i := range resp.Data {
		records = append(records, *parseWalletRecord(&resp.Data[i]))
	}
	return records, nil
}

// Withdraw requests an on-chain withdrawal and returns its pending record
func (bi *Bitget) Withdraw(ctx context.Context, req *exchange.WithdrawRequest) (*account.Transaction, error) {
	switch {
	case req.Currency.IsEmpty():
		return nil, errs.New(bitgetName, "Withdraw", errs.ErrArgumentsRequired, "", "currency is required")
	case req.Address == "":
		return nil, errs.New(bitgetName, "Withdraw", errs.ErrInvalidAddress, "", "address is required")
	case req.Amount == "":
		return nil, errs.New(bitgetName, "Withdraw", errs.ErrArgumentsRequired, "", "amount is required")
	}
	body := map[string]string{
		"coin":      req.Currency.String(),
		"address":   req.Address,
		"chain":     req.Network,
		"amount":    req.Amount,
		"clientOid": clientOrderID(""),
	}
	if req.Tag != "" {
		body["tag"] = req.Tag
	}
	var resp struct {
		Data string `json:"data"`
	}
	if err := bi.SendRequest(ctx, endpoint.OpWithdraw, asset.Spot, nil, nil, body, &resp); err != nil {
		return nil, err
	}
	return &account.Transaction{
		ID:        resp.Data,
		Network:   req.Network,
		Currency:  req.Currency,
		Amount:    req.Amount,
		AddressTo: req.Address,
		Tag:       req.Tag,
		Status:    account.TransactionPending,
		Timestamp: bi.Now(),
	}, nil
}
