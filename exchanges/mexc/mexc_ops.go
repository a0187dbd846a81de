package mexc

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
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

// Contract order types by numeric code
const (
	contractOrderLimit  = "1"
	contractOrderMarket = "5"
)

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

// contractSide renders the numeric compound direction the contract order
// endpoint expects: 1 opens a long, 2 closes a short, 3 opens a short, 4
// closes a long
func contractSide(side order.Side, reduceOnly bool) string {
	if reduceOnly {
		if side == order.Buy {
			return "2"
		}
		return "4"
	}
	if side == order.Buy {
		return "1"
	}
	return "3"
}

// FetchMarkets returns the tradable markets of one market type
func (m *MEXC) FetchMarkets(ctx context.Context, a asset.Item) ([]market.Market, error) {
	switch a {
	case asset.Spot:
		var resp SpotExchangeInfo
		if err := m.SendRequest(ctx, endpoint.OpFetchMarkets, a, nil, nil, nil, &resp); err != nil {
			return nil, err
		}
		markets := make([]market.Market, 0, len(resp.Symbols))
		for i := range resp.Symbols {
			mk, err := parseSpotMarket(&resp.Symbols[i])
			if err != nil {
				// One malformed listing must not poison the whole call
				continue
			}
			markets = append(markets, *mk)
		}
		return markets, nil
	case asset.Swap:
		var resp struct {
			Data []ContractDetail `json:"data"`
		}
		if err := m.SendRequest(ctx, endpoint.OpFetchMarkets, a, nil, nil, nil, &resp); err != nil {
			return nil, err
		}
		markets := make([]market.Market, 0, len(resp.Data))
		for i := range resp.Data {
			mk, err := parseContractMarket(&resp.Data[i])
			if err != nil {
				continue
			}
			markets = append(markets, *mk)
		}
		return markets, nil
	}
	return nil, errs.New(mexcName, "FetchMarkets", errs.ErrNotSupported, "", "market type "+a.String())
}

// FetchCurrencies returns the venue's currency and transfer-network metadata.
// The endpoint is authenticated on this venue.
func (m *MEXC) FetchCurrencies(ctx context.Context) ([]market.Currency, error) {
	var resp []CoinInfo
	if err := m.SendRequest(ctx, endpoint.OpFetchCurrencies, asset.Spot, nil, nil, nil, &resp); err != nil {
		return nil, err
	}
	currencies := make([]market.Currency, 0, len(resp))
	for i := range resp {
		currencies = append(currencies, *parseCurrency(&resp[i]))
	}
	return currencies, nil
}

// FetchTicker returns the latest ticker snapshot for a unified symbol
func (m *MEXC) FetchTicker(ctx context.Context, symbol string) (*ticker.Price, error) {
	pair, a, err := assetForSymbol(symbol)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("symbol", marketID(pair, a))
	if a == asset.Spot {
		var node map[string]any
		if err := m.SendRequest(ctx, endpoint.OpFetchTicker, a, nil, q, nil, &node); err != nil {
			return nil, err
		}
		return parseTicker(node)
	}
	var resp struct {
		Data map[string]any `json:"data"`
	}
	if err := m.SendRequest(ctx, endpoint.OpFetchTicker, a, nil, q, nil, &resp); err != nil {
		return nil, err
	}
	return parseTicker(resp.Data)
}

// FetchTickers returns statistics for every market of one market type.
// Requesting the 24hr endpoint without a symbol returns the whole venue.
func (m *MEXC) FetchTickers(ctx context.Context, a asset.Item) ([]ticker.Price, error) {
	var nodes []map[string]any
	switch a {
	case asset.Spot:
		if err := m.SendRequest(ctx, endpoint.OpFetchTickers, a, nil, nil, nil, &nodes); err != nil {
			return nil, err
		}
	case asset.Swap:
		var resp struct {
			Data []map[string]any `json:"data"`
		}
		if err := m.SendRequest(ctx, endpoint.OpFetchTickers, a, nil, nil, nil, &resp); err != nil {
			return nil, err
		}
		nodes = resp.Data
	default:
		return nil, errs.New(mexcName, "FetchTickers", errs.ErrNotSupported, "", "market type "+a.String())
	}
	tickers := make([]ticker.Price, 0, len(nodes))
	for _, node := range nodes {
		p, err := parseTicker(node)
		if err != nil {
			return nil, err
		}
		tickers = append(tickers, *p)
	}
	return tickers, nil
}

// FetchTrades returns recent public trades for a unified symbol
func (m *MEXC) FetchTrades(ctx context.Context, symbol string, limit int64) ([]trade.Data, error) {
	pair, a, err := assetForSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if a == asset.Spot {
		q := url.Values{}
		q.Set("symbol", marketID(pair, a))
		if limit > 0 {
			q.Set("limit", strconv.FormatInt(limit, 10))
		}
		var resp []SpotTrade
		if err := m.SendRequest(ctx, endpoint.OpFetchTrades, a, nil, q, nil, &resp); err != nil {
			return nil, err
		}
		trades := make([]trade.Data, 0, len(resp))
		for i := range resp {
			t, err := parseSpotTrade(&resp[i], pair.Symbol())
			if err != nil {
				return nil, err
			}
			trades = append(trades, *t)
		}
		return trades, nil
	}
	params := map[string]string{"symbol": marketID(pair, a)}
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.FormatInt(limit, 10))
	}
	var resp struct {
		Data []ContractDeal `json:"data"`
	}
	if err := m.SendRequest(ctx, endpoint.OpFetchTrades, a, params, q, nil, &resp); err != nil {
		return nil, err
	}
	trades := make([]trade.Data, 0, len(resp.Data))
	for i := range resp.Data {
		t, err := parseContractDeal(&resp.Data[i], pair.Symbol())
		if err != nil {
			return nil, err
		}
		trades = append(trades, *t)
	}
	return trades, nil
}

// CreateOrder places an order and returns its canonical detail. The spot
// line takes its parameters in the signed query; the contract line takes a
// signed JSON body.
func (m *MEXC) CreateOrder(ctx context.Context, req *exchange.OrderRequest) (*order.Detail, error) {
	if err := req.Validate(mexcName); err != nil {
		return nil, err
	}
	pair, a, err := assetForSymbol(req.Symbol)
	if err != nil {
		return nil, err
	}
	clientOID := clientOrderID(req.ClientOrderID)
	if a == asset.Spot {
		if req.TriggerPrice != "" || req.StopLossPrice != "" {
			return nil, errs.New(mexcName, "CreateOrder", errs.ErrNotSupported, "",
				"trigger orders are not supported on spot markets")
		}
		q := url.Values{}
		q.Set("symbol", marketID(pair, a))
		q.Set("side", strings.ToUpper(req.Side.String()))
		q.Set("type", strings.ToUpper(req.Type))
		q.Set("quantity", req.Amount)
		q.Set("newClientOrderId", clientOID)
		if req.Price != "" {
			q.Set("price", req.Price)
		}
		var resp SpotOrderAck
		if err := m.SendRequest(ctx, endpoint.OpCreateOrder, a, nil, q, nil, &resp); err != nil {
			return nil, err
		}
		return &order.Detail{
			ID:            resp.OrderID,
			ClientOrderID: clientOID,
			Symbol:        pair.Symbol(),
			Type:          req.Type,
			Side:          order.CanonicalSide(req.Side.String()),
			Price:         req.Price,
			Amount:        req.Amount,
			Remaining:     req.Amount,
			Status:        order.Open,
			Timestamp:     resp.TransactTime.Time(),
		}, nil
	}

	orderType := contractOrderLimit
	if strings.EqualFold(req.Type, "market") {
		orderType = contractOrderMarket
	}
	body := map[string]string{
		"symbol":      marketID(pair, a),
		"vol":         req.Amount,
		"side":        contractSide(req.Side, req.ReduceOnly),
		"type":        orderType,
		"openType":    "1",
		"externalOid": clientOID,
	}
	if req.Price != "" {
		body["price"] = req.Price
	}
	if req.TriggerPrice != "" {
		body["triggerPrice"] = req.TriggerPrice
	}
	if req.StopLossPrice != "" {
		body["stopLossPrice"] = req.StopLossPrice
	}
	var resp ContractOrderResult
	if err := m.SendRequest(ctx, endpoint.OpCreateOrder, a, nil, nil, body, &resp); err != nil {
		return nil, err
	}
	// The venue acknowledges with a bare order id, numeric or quoted
	var id string
	switch v := resp.Data.(type) {
	case string:
		id = v
	case json.Number:
		id = v.String()
	case float64:
		id = strconv.FormatInt(int64(v), 10)
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
		Timestamp:     m.Now(),
	}, nil
}

// CancelOrder cancels one resting order by exchange identifier
func (m *MEXC) CancelOrder(ctx context.Context, symbol, orderID string) error {
	pair, a, err := assetForSymbol(symbol)
	if err != nil {
		return err
	}
	if orderID == "" {
		return errs.New(mexcName, "CancelOrder", errs.ErrArgumentsRequired, "", "orderID is required")
	}
	if a == asset.Spot {
		q := url.Values{}
		q.Set("symbol", marketID(pair, a))
		q.Set("orderId", orderID)
		return m.SendRequest(ctx, endpoint.OpCancelOrder, a, nil, q, nil, nil)
	}
	// The contract line cancels by a JSON array of order ids
	return m.SendRequest(ctx, endpoint.OpCancelOrder, a, nil, nil, []string{orderID}, nil)
}

// FetchOrder returns the canonical detail of one order by exchange identifier
func (m *MEXC) FetchOrder(ctx context.Context, symbol, orderID string) (*order.Detail, error) {
	pair, a, err := assetForSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if orderID == "" {
		return nil, errs.New(mexcName, "FetchOrder", errs.ErrArgumentsRequired, "", "orderID is required")
	}
	if a == asset.Spot {
		q := url.Values{}
		q.Set("symbol", marketID(pair, a))
		q.Set("orderId", orderID)
		var node map[string]any
		if err := m.SendRequest(ctx, endpoint.OpFetchOrder, a, nil, q, nil, &node); err != nil {
			return nil, err
		}
		return parseOrder(node)
	}
	params := map[string]string{"order_id": orderID}
	var resp struct {
		Data map[string]any `json:"data"`
	}
	if err := m.SendRequest(ctx, endpoint.OpFetchOrder, a, params, nil, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errs.New(mexcName, "FetchOrder", errs.ErrOrderNotFound, "", orderID)
	}
	return parseOrder(resp.Data)
}

// FetchOpenOrders returns all resting orders on a unified symbol
func (m *MEXC) FetchOpenOrders(ctx context.Context, symbol string) ([]order.Detail, error) {
	pair, a, err := assetForSymbol(symbol)
	if err != nil {
		return nil, err
	}
	var nodes []map[string]any
	if a == asset.Spot {
		q := url.Values{}
		q.Set("symbol", marketID(pair, a))
		if err := m.SendRequest(ctx, endpoint.OpFetchOpenOrders, a, nil, q, nil, &nodes); err != nil {
			return nil, err
		}
	} else {
		params := map[string]string{"symbol": marketID(pair, a)}
		var resp struct {
			Data []map[string]any `json:"data"`
		}
		if err := m.SendRequest(ctx, endpoint.OpFetchOpenOrders, a, params, nil, nil, &resp); err != nil {
			return nil, err
		}
		nodes = resp.Data
	}
	orders := make([]order.Detail, 0, len(nodes))
	for i := range nodes {
		d, err := parseOrder(nodes[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, *d)
	}
	return orders, nil
}

// FetchMyTrades returns the account's own fills on a unified symbol
func (m *MEXC) FetchMyTrades(ctx context.Context, symbol string, limit int64) ([]trade.Data, error) {
	pair, a, err := assetForSymbol(symbol)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("symbol", marketID(pair, a))
	if a == asset.Spot {
		if limit > 0 {
			q.Set("limit", strconv.FormatInt(limit, 10))
		}
		var resp []SpotMyTrade
		if err := m.SendRequest(ctx, endpoint.OpFetchMyTrades, a, nil, q, nil, &resp); err != nil {
			return nil, err
		}
		trades := make([]trade.Data, 0, len(resp))
		for i := range resp {
			t, err := parseSpotMyTrade(&resp[i], pair.Symbol())
			if err != nil {
				return nil, err
			}
			trades = append(trades, *t)
		}
		return trades, nil
	}
	if limit > 0 {
		q.Set("page_size", strconv.FormatInt(limit, 10))
	}
	var resp struct {
		Data []ContractOrderDeal `json:"data"`
	}
	if err := m.SendRequest(ctx, endpoint.OpFetchMyTrades, a, nil, q, nil, &resp); err != nil {
		return nil, err
	}
	trades := make([]trade.Data, 0, len(resp.Data))
	for i := range resp.Data {
		t, err := parseContractMyTrade(&resp.Data[i], pair.Symbol())
		if err != nil {
			return nil, err
		}
		trades = append(trades, *t)
	}
	return trades, nil
}

// FetchBalance returns the account balances of one market type
func (m *MEXC) FetchBalance(ctx context.Context, a asset.Item) (*account.Holdings, error) {
	switch a {
	case asset.Spot:
		var resp SpotAccount
		if err := m.SendRequest(ctx, endpoint.OpFetchBalance, a, nil, nil, nil, &resp); err != nil {
			return nil, err
		}
		return parseSpotBalances(resp.Balances)
	case asset.Swap:
		var resp struct {
			Data []ContractAsset `json:"data"`
		}
		if err := m.SendRequest(ctx, endpoint.OpFetchBalance, a, nil, nil, nil, &resp); err != nil {
			return nil, err
		}
		return parseContractBalances(resp.Data)
	}
	return nil, errs.New(mexcName, "FetchBalance", errs.ErrNotSupported, "", "market type "+a.String())
}

// FetchPositions returns all open derivative positions
func (m *MEXC) FetchPositions(ctx context.Context, a asset.Item) ([]futures.Position, error) {
	var resp struct {
		Data []map[string]any `json:"data"`
	}
	if err := m.SendRequest(ctx, endpoint.OpFetchPositions, a, nil, nil, nil, &resp); err != nil {
		return nil, err
	}
	positions := make([]futures.Position, 0, len(resp.Data))
	for i := range resp.Data {
		p, err := parsePosition(resp.Data[i])
		if err != nil {
			return nil, err
		}
		positions = append(positions, *p)
	}
	return positions, nil
}

// FetchFundingRate returns the current funding rate of a perpetual market
func (m *MEXC) FetchFundingRate(ctx context.Context, symbol string) (*futures.FundingRate, error) {
	pair, a, err := assetForSymbol(symbol)
	if err != nil {
		return nil, err
	}
	params := map[string]string{"symbol": marketID(pair, a)}
	var resp struct {
		Data ContractFundingRate `json:"data"`
	}
	if err := m.SendRequest(ctx, endpoint.OpFetchFundingRate, a, params, nil, nil, &resp); err != nil {
		return nil, err
	}
	return parseFundingRate(&resp.Data)
}

// FetchFundingRateHistory returns past settled funding rates of a perpetual
// market
func (m *MEXC) FetchFundingRateHistory(ctx context.Context, symbol string, limit int64) ([]futures.FundingRate, error) {
	pair, a, err := assetForSymbol(symbol)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("symbol", marketID(pair, a))
	if limit > 0 {
		q.Set("page_size", strconv.FormatInt(limit, 10))
	}
	var resp struct {
		Data FundingRateHistoryPage `json:"data"`
	}
	if err := m.SendRequest(ctx, endpoint.OpFetchFundingRateHistory, a, nil, q, nil, &resp); err != nil {
		return nil, err
	}
	rates := make([]futures.FundingRate, 0, len(resp.Data.ResultList))
	for i := range resp.Data.ResultList {
		rates = append(rates, futures.FundingRate{
			Symbol:    pair.Symbol(),
			Rate:      resp.Data.ResultList[i].FundingRate.String(),
			Timestamp: resp.Data.ResultList[i].SettleTime.Time(),
		})
	}
	return rates, nil
}

// Transfer moves funds between the venue's internal account types
func (m *MEXC) Transfer(ctx context.Context, req *exchange.TransferRequest) (*account.Transfer, error) {
	if req.Currency.IsEmpty() {
		return nil, errs.New(mexcName, "Transfer", errs.ErrArgumentsRequired, "", "currency is required")
	}
	from, ok := mexcAccountTypes[req.FromAccount]
	if !ok {
		return nil, errs.New(mexcName, "Transfer", errs.ErrBadRequest, "", "unknown account type "+req.FromAccount)
	}
	to, ok := mexcAccountTypes[req.ToAccount]
	if !ok {
		return nil, errs.New(mexcName, "Transfer", errs.ErrBadRequest, "", "unknown account type "+req.ToAccount)
	}
	q := url.Values{}
	q.Set("asset", req.Currency.String())
	q.Set("amount", req.Amount)
	q.Set("fromAccountType", from)
	q.Set("toAccountType", to)
	var resp struct {
		TranID string `json:"tranId"`
	}
	if err := m.SendRequest(ctx, endpoint.OpTransfer, asset.Spot, nil, q, nil, &resp); err != nil {
		return nil, err
	}
	return &account.Transfer{
		ID:          resp.TranID,
		Currency:    req.Currency,
		Amount:      req.Amount,
		FromAccount: req.FromAccount,
		ToAccount:   req.ToAccount,
		Status:      "ok",
		Timestamp:   m.Now(),
	}, nil
}

// FetchDeposits returns the deposit history of a currency
func (m *MEXC) FetchDeposits(ctx context.Context, code currency.Code) ([]account.Transaction, error) {
	if code.IsEmpty() {
		return nil, errs.New(mexcName, "FetchDeposits", errs.ErrArgumentsRequired, "", "currency is required")
	}
	q := url.Values{}
	q.Set("coin", code.String())
	var resp []DepositRecord
	if err := m.SendRequest(ctx, endpoint.OpFetchDeposits, asset.Spot, nil, q, nil, &resp); err != nil {
		return nil, err
	}
	records := make([]account.Transaction, 0, len(resp))
	for i := range resp {
		records = append(records, *parseDeposit(&resp[i]))
	}
	return records, nil
}

// FetchWithdrawals returns the withdrawal history of a currency
func (m *MEXC) FetchWithdrawals(ctx context.Context, code currency.Code) ([]account.Transaction, error) {
	if code.IsEmpty() {
		return nil, errs.New(mexcName, "FetchWithdrawals", errs.ErrArgumentsRequired, "", "currency is required")
	}
	q := url.Values{}
	q.Set("coin", code.String())
	var resp []WithdrawRecord
	if err := m.SendRequest(ctx, endpoint.OpFetchWithdrawals, asset.Spot, nil, q, nil, &resp); err != nil {
		return nil, err
	}
	records := make([]account.Transaction, 0, len(resp))
	for i := range resp {
		records = append(records, *parseWithdrawal(&resp[i]))
	}
	return records, nil
}

// Withdraw requests an on-chain withdrawal and returns its pending record
func (m *MEXC) Withdraw(ctx context.Context, req *exchange.WithdrawRequest) (*account.Transaction, error) {
	switch {
	case req.Currency.IsEmpty():
		return nil, errs.New(mexcName, "Withdraw", errs.ErrArgumentsRequired, "", "currency is required")
	case req.Address == "":
		return nil, errs.New(mexcName, "Withdraw", errs.ErrInvalidAddress, "", "address is required")
	case req.Amount == "":
		return nil, errs.New(mexcName, "Withdraw", errs.ErrArgumentsRequired, "", "amount is required")
	}
	q := url.Values{}
	q.Set("coin", req.Currency.String())
	q.Set("address", req.Address)
	q.Set("amount", req.Amount)
	if req.Network != "" {
		q.Set("netWork", req.Network)
	}
	if req.Tag != "" {
		q.Set("memo", req.Tag)
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := m.SendRequest(ctx, endpoint.OpWithdraw, asset.Spot, nil, q, nil, &resp); err != nil {
		return nil, err
	}
	return &account.Transaction{
		ID:        resp.ID,
		Network:   req.Network,
		Currency:  req.Currency,
		Amount:    req.Amount,
		AddressTo: req.Address,
		Tag:       req.Tag,
		Status:    account.TransactionPending,
		Timestamp: m.Now(),
	}, nil
}
