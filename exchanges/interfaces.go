package exchanges

import (
	"context"
	"time"

	"github.com/tradekit-io/unified/currency"
	"github.com/tradekit-io/unified/exchanges/account"
	"github.com/tradekit-io/unified/exchanges/asset"
	"github.com/tradekit-io/unified/exchanges/errs"
	"github.com/tradekit-io/unified/exchanges/futures"
	"github.com/tradekit-io/unified/exchanges/market"
	"github.com/tradekit-io/unified/exchanges/order"
	"github.com/tradekit-io/unified/exchanges/ticker"
	"github.com/tradekit-io/unified/exchanges/trade"
)

// OrderRequest carries the caller's intent for CreateOrder. Monetary fields
// are decimal strings. TriggerPrice and StopLossPrice are mutually exclusive
// on a single order.
type OrderRequest struct {
	Symbol        string
	Type          string
	Side          order.Side
	Amount        string
	Price         string
	TriggerPrice  string
	StopLossPrice string
	ClientOrderID string
	ReduceOnly    bool
}

// Validate checks local preconditions so a malformed order never costs a
// round trip
func (r *OrderRequest) Validate(exchange string) error {
	switch {
	case r.Symbol == "":
		return errs.New(exchange, "CreateOrder", errs.ErrArgumentsRequired, "", "symbol is required")
	case r.Side == "":
		return errs.New(exchange, "CreateOrder", errs.ErrArgumentsRequired, "", "side is required")
	case r.Type == "":
		return errs.New(exchange, "CreateOrder", errs.ErrArgumentsRequired, "", "type is required")
	case r.Amount == "":
		return errs.New(exchange, "CreateOrder", errs.ErrArgumentsRequired, "", "amount is required")
	case r.TriggerPrice != "" && r.StopLossPrice != "":
		return errs.New(exchange, "CreateOrder", errs.ErrBadRequest, "",
			"triggerPrice and stopLossPrice cannot be combined on one order")
	}
	return nil
}

// TransferRequest carries the caller's intent for an internal transfer
type TransferRequest struct {
	Currency    currency.Code
	Amount      string
	FromAccount string
	ToAccount   string
}

// WithdrawRequest carries the caller's intent for an on-chain withdrawal
type WithdrawRequest struct {
	Currency currency.Code
	Network  string
	Amount   string
	Address  string
	Tag      string
}

// UnifiedExchange is the capability surface an adapter exposes to callers.
// Operation support varies by venue and market type; unsupported
// combinations classify as NotSupported at dispatch.
type UnifiedExchange interface {
	Name() string
	SupportsAsset(a asset.Item) bool

	SyncTime(ctx context.Context) (time.Time, error)
	FetchMarkets(ctx context.Context, a asset.Item) ([]market.Market, error)
	FetchCurrencies(ctx context.Context) ([]market.Currency, error)
	FetchTicker(ctx context.Context, symbol string) (*ticker.Price, error)
	FetchTickers(ctx context.Context, a asset.Item) ([]ticker.Price, error)
	FetchTrades(ctx context.Context, symbol string, limit int64) ([]trade.Data, error)
	CreateOrder(ctx context.Context, req *OrderRequest) (*order.Detail, error)
	CancelOrder(ctx context.Context, symbol, orderID string) error
	FetchOrder(ctx context.Context, symbol, orderID string) (*order.Detail, error)
	FetchOpenOrders(ctx context.Context, symbol string) ([]order.Detail, error)
	FetchMyTrades(ctx context.Context, symbol string, limit int64) ([]trade.Data, error)
	FetchBalance(ctx context.Context, a asset.Item) (*account.Holdings, error)
	FetchPositions(ctx context.Context, a asset.Item) ([]futures.Position, error)
	FetchFundingRate(ctx context.Context, symbol string) (*futures.FundingRate, error)
	Transfer(ctx context.Context, req *TransferRequest) (*account.Transfer, error)
	FetchDeposits(ctx context.Context, code currency.Code) ([]account.Transaction, error)
	FetchWithdrawals(ctx context.Context, code currency.Code) ([]account.Transaction, error)
	Withdraw(ctx context.Context, req *WithdrawRequest) (*account.Transaction, error)
}
