package bitget

import (
	"strings"

	"github.com/tradekit-io/unified/currency"
	"github.com/tradekit-io/unified/exchanges/account"
	"github.com/tradekit-io/unified/exchanges/asset"
	"github.com/tradekit-io/unified/exchanges/futures"
	"github.com/tradekit-io/unified/exchanges/market"
	"github.com/tradekit-io/unified/exchanges/order"
	"github.com/tradekit-io/unified/exchanges/ticker"
	"github.com/tradekit-io/unified/exchanges/trade"
	"github.com/tradekit-io/unified/fields"
	"github.com/tradekit-io/unified/precise"
)

// Native order statuses. Unlisted statuses pass through unmapped.
var bitgetOrderStatuses = map[string]order.Status{
	"init":             order.Open,
	"new":              order.Open,
	"not_trigger":      order.Open,
	"partial_fill":     order.Open,
	"partially_filled": order.Open,
	"full_fill":        order.Closed,
	"filled":           order.Closed,
	"cancelled":        order.Canceled,
	"canceled":         order.Canceled,
	"triggered":        order.Closed,
}

// Native wallet record statuses
var bitgetTransactionStatuses = map[string]account.TransactionStatus{
	"success": account.TransactionOK,
	"pending": account.TransactionPending,
	"fail":    account.TransactionFailed,
	"cancel":  account.TransactionCanceled,
}

// Canonical account-type names to the venue's transfer account identifiers
var bitgetAccountTypes = map[string]string{
	"spot":     "spot",
	"swap":     "mix_usdt",
	"swap_usd": "mix_usd",
	"margin":   "margin",
}

// parseTicker normalizes one ticker node. Spot and mix tickers share most
// fields but rename the quote levels, hence the fallback keys.
func parseTicker(node map[string]any) (*ticker.Price, error) {
	id, _ := fields.String(node, "symbol")
	pair, _, _, err := parseMarketID(id)
	if err != nil {
		return nil, err
	}
	p := &ticker.Price{
		Symbol:      pair.Symbol(),
		High:        fields.NumberOr(node, "", "high24h"),
		Low:         fields.NumberOr(node, "", "low24h"),
		Open:        fields.NumberOr(node, "", "openUtc0", "openUtc", "open"),
		Last:        fields.NumberOr(node, "", "last", "close"),
		Bid:         fields.NumberOr(node, "", "bestBid", "buyOne", "bidPr"),
		BidVolume:   fields.NumberOr(node, "", "bidSz"),
		Ask:         fields.NumberOr(node, "", "bestAsk", "sellOne", "askPr"),
		AskVolume:   fields.NumberOr(node, "", "askSz"),
		Change:      fields.NumberOr(node, "", "chgUtc"),
		BaseVolume:  fields.NumberOr(node, "", "baseVol", "baseVolume", "quantity"),
		QuoteVolume: fields.NumberOr(node, "", "quoteVol", "quoteVolume", "usdtVol"),
		Info:        node,
	}
	p.Close = p.Last
	if ts, ok := fields.TimeMS(node, "timestamp", "ts"); ok {
		p.Timestamp = ts
	}
	// The venue reports the raw fractional change; canonical is x100
	if p.Change != "" {
		pct, err := precise.StringMul(p.Change, "100")
		if err != nil {
			return nil, err
		}
		p.Percentage = pct
		p.Change = ""
	}
	if err := p.DeriveChange(); err != nil {
		return nil, err
	}
	return p, nil
}

// parseOrder normalizes one order node from either product line. Spot
// reports filled quantity and averages under different keys than mix.
func parseOrder(node map[string]any) (*order.Detail, error) {
	id, _ := fields.String(node, "symbol")
	pair, _, _, err := parseMarketID(id)
	if err != nil {
		return nil, err
	}
	d := &order.Detail{
		ID:            fields.StringOr(node, "", "orderId", "orderID", "id"),
		ClientOrderID: fields.StringOr(node, "", "clientOrderId", "clientOid"),
		Symbol:        pair.Symbol(),
		Type:          strings.ToLower(fields.StringOr(node, "", "orderType", "type")),
		Side:          order.CanonicalSide(fields.StringOr(node, "", "side")),
		Price:         fields.NumberOr(node, "", "price"),
		TriggerPrice:  fields.NumberOr(node, "", "triggerPrice"),
		Average:       fields.NumberOr(node, "", "fillPrice", "priceAvg", "avgPrice"),
		Amount:        fields.NumberOr(node, "", "quantity", "size", "amount"),
		Filled:        fields.NumberOr(node, "", "fillQuantity", "filledQty", "baseVolume"),
		Cost:          fields.NumberOr(node, "", "fillTotalAmount", "quoteVolume"),
		Status:        order.CanonicalStatus(bitgetOrderStatuses, fields.StringOr(node, "", "status", "state")),
		Info:          node,
	}
	if ts, ok := fields.TimeMS(node, "cTime", "ctime", "createTime"); ok {
		d.Timestamp = ts
	}
	if ts, ok := fields.TimeMS(node, "uTime", "utime", "updateTime"); ok {
		d.LastUpdated = ts
	}
	if d.Amount != "" && d.Filled != "" {
		remaining, err := precise.StringSub(d.Amount, d.Filled)
		if err != nil {
			return nil, err
		}
		d.Remaining = remaining
	}
	if d.Cost == "" && d.Average != "" && d.Filled != "" {
		cost, err := precise.StringMul(d.Average, d.Filled)
		if err != nil {
			return nil, err
		}
		d.Cost = cost
	}
	if fee, ok := fields.Number(node, "fee", "totalFee"); ok {
		abs, err := precise.StringAbs(fee)
		if err != nil {
			return nil, err
		}
		d.Fee = order.Fee{
			Currency: currency.NewCode(fields.StringOr(node, "", "feeCcy", "feeCoin")),
			Cost:     abs,
		}
	}
	return d, nil
}

func parseSpotMarket(raw *SpotMarketData) (*market.Market, error) {
	pair, _, _, err := reportedMarketID(raw.Symbol, raw.BaseCoin, raw.QuoteCoin)
	if err != nil {
		return nil, err
	}
	priceStep, err := market.StepFromScale(raw.PriceScale)
	if err != nil {
		return nil, err
	}
	amountStep, err := market.StepFromScale(raw.QuantityScale)
	if err != nil {
		return nil, err
	}
	m := &market.Market{
		ID:     raw.Symbol,
		Symbol: pair.Symbol(),
		Base:   pair.Base,
		Quote:  pair.Quote,
		Type:   asset.Spot,
		Spot:   true,
		Active: strings.EqualFold(raw.Status, "online"),
		Maker:  raw.MakerFeeRate.String(),
		Taker:  raw.TakerFeeRate.String(),
		Precision: market.Precision{
			Amount: amountStep,
			Price:  priceStep,
		},
		Limits: market.Limits{
			Amount: market.MinMax{
				Min: raw.MinTradeAmount.String(),
				Max: raw.MaxTradeAmount.String(),
			},
		},
	}
	return m, m.Validate()
}

func parseContractMarket(raw *ContractMarketData) (*market.Market, error) {
	pair, a, linear, err := reportedMarketID(raw.Symbol, raw.BaseCoin, raw.QuoteCoin)
	if err != nil {
		return nil, err
	}
	tick := ""
	if !raw.PriceEndStep.IsZero() {
		// priceEndStep counts multiples of the smallest displayed digit
		step, err := market.StepFromScale(raw.PricePlace)
		if err != nil {
			return nil, err
		}
		tick, err = precise.StringMul(raw.PriceEndStep.String(), step)
		if err != nil {
			return nil, err
		}
	}
	priceStep, err := market.ReconcilePrecision(raw.PricePlace, tick)
	if err != nil {
		return nil, err
	}
	amountStep, err := market.StepFromScale(raw.VolumePlace)
	if err != nil {
		return nil, err
	}
	contractSize := raw.SizeMultiplier.String()
	if contractSize == "" {
		contractSize = "1"
	}
	m := &market.Market{
		ID:           raw.Symbol,
		Symbol:       pair.Symbol(),
		Base:         pair.Base,
		Quote:        pair.Quote,
		Settle:       pair.Settle,
		Type:         a,
		Swap:         a == asset.Swap,
		Future:       a == asset.Futures,
		Contract:     true,
		Linear:       linear,
		Inverse:      !linear,
		Active:       strings.EqualFold(raw.SymbolStatus, "normal"),
		ContractSize: contractSize,
		Expiry:       pair.Expiry,
		Maker:        raw.MakerFeeRate.String(),
		Taker:        raw.TakerFeeRate.String(),
		Precision: market.Precision{
			Amount: amountStep,
			Price:  priceStep,
		},
		Limits: market.Limits{
			Amount: market.MinMax{Min: raw.MinTradeNum.String()},
		},
	}
	return m, m.Validate()
}

func parseCurrency(raw *CurrencyData) *market.Currency {
	c := &market.Currency{
		Code:     currency.NewCode(raw.CoinName),
		ID:       raw.CoinID,
		Name:     raw.CoinName,
		Networks: make(map[string]market.NetworkEntry, len(raw.Chains)),
	}
	for i := range raw.Chains {
		ch := raw.Chains[i]
		entry := market.NetworkEntry{
			ID:       ch.Chain,
			Network:  strings.ToUpper(ch.Chain),
			Deposit:  ch.Rechargeable == "true",
			Withdraw: ch.Withdrawable == "true",
			Fee:      ch.WithdrawFee.String(),
			Limits: market.MinMax{
				Min: ch.MinWithdrawAmount.String(),
			},
		}
		c.Networks[entry.Network] = entry
		if entry.Deposit {
			c.Deposit = true
		}
		if entry.Withdraw {
			c.Withdraw = true
			if c.Fee == "" {
				c.Fee = entry.Fee
			}
		}
	}
	return c
}

func parsePublicTrade(raw *MarketTrade, symbol string) (*trade.Data, error) {
	d := &trade.Data{
		ID:        raw.TradeID,
		Symbol:    symbol,
		Side:      order.CanonicalSide(raw.Side),
		Price:     raw.FillPrice.String(),
		Amount:    raw.FillQty.String(),
		Timestamp: raw.FillTime.Time(),
	}
	return d, d.Normalize()
}

func parsePrivateFill(raw *PrivateFill, symbol string) (*trade.Data, error) {
	d := &trade.Data{
		ID:           raw.FillID,
		OrderID:      raw.OrderID,
		Symbol:       symbol,
		Type:         strings.ToLower(raw.OrderType),
		Side:         order.CanonicalSide(raw.Side),
		TakerOrMaker: strings.ToLower(raw.TakerMaker),
		Price:        raw.FillPrice.String(),
		Amount:       raw.FillQty.String(),
		Cost:         raw.FillTotal.String(),
		Fee: order.Fee{
			Currency: currency.NewCode(raw.FeeCcy),
			Cost:     raw.Fees.String(),
		},
		Timestamp: raw.CTime.Time(),
	}
	return d, d.Normalize()
}

func parseSpotBalances(raw []SpotAsset) (*account.Holdings, error) {
	h := &account.Holdings{
		Exchange: bitgetName,
		Balances: make(map[currency.Code]account.Balance, len(raw)),
	}
	for i := range raw {
		frozen := raw[i].Frozen.String()
		if frozen == "" {
			frozen = "0"
		}
		lock := raw[i].Lock.String()
		if lock == "" {
			lock = "0"
		}
		used, err := precise.StringAdd(frozen, lock)
		if err != nil {
			return nil, err
		}
		b, err := account.NewBalance(raw[i].Available.String(), used)
		if err != nil {
			return nil, err
		}
		h.Balances[currency.NewCode(raw[i].CoinName)] = b
	}
	return h, nil
}

func parseMixBalances(raw []MixAccount) (*account.Holdings, error) {
	h := &account.Holdings{
		Exchange: bitgetName,
		Balances: make(map[currency.Code]account.Balance, len(raw)),
	}
	for i := range raw {
		b, err := account.NewBalance(raw[i].Available.String(), raw[i].Locked.String())
		if err != nil {
			return nil, err
		}
		h.Balances[currency.NewCode(raw[i].MarginCoin)] = b
	}
	return h, nil
}

// parsePosition normalizes one mix position node. Bitget omits the
// liquidation price on some product lines; when absent it is estimated
// through the margin-based derivation with the assumed taker fee.
func parsePosition(node map[string]any) (*futures.Position, error) {
	id, _ := fields.String(node, "symbol")
	pair, _, _, err := parseMarketID(id)
	if err != nil {
		return nil, err
	}
	side := futures.PositionSide(strings.ToLower(fields.StringOr(node, "", "holdSide", "side")))
	p := &futures.Position{
		Symbol:                   pair.Symbol(),
		Side:                     side,
		Contracts:                fields.NumberOr(node, "", "total", "holdAmount", "size"),
		EntryPrice:               fields.NumberOr(node, "", "averageOpenPrice", "openPriceAvg"),
		MarkPrice:                fields.NumberOr(node, "", "marketPrice", "markPrice"),
		Leverage:                 fields.NumberOr(node, "", "leverage"),
		Collateral:               fields.NumberOr(node, "", "margin", "marginSize"),
		MaintenanceMarginPercent: fields.NumberOr(node, "", "keepMarginRate"),
		LiquidationPrice:         fields.NumberOr(node, "", "liquidationPrice", "liqPx"),
		UnrealizedPnL:            fields.NumberOr(node, "", "unrealizedPL", "upl"),
		Info:                     node,
	}
	switch fields.StringOr(node, "", "marginMode") {
	case "fixed":
		p.MarginMode = futures.Isolated
	case "crossed":
		p.MarginMode = futures.Cross
	}
	if ts, ok := fields.TimeMS(node, "uTime", "utime", "cTime", "ctime"); ok {
		p.Timestamp = ts
	}
	if p.MarkPrice != "" && p.Contracts != "" {
		notional, err := precise.StringMul(p.MarkPrice, p.Contracts)
		if err != nil {
			return nil, err
		}
		p.Notional = notional
	}
	if p.LiquidationPrice == "" && p.MaintenanceMarginPercent != "" {
		liq, err := futures.DeriveLiquidationPrice(side, p.EntryPrice, p.Collateral,
			p.Contracts, p.Leverage, p.MaintenanceMarginPercent, bitgetAssumedTakerFee)
		if err == nil {
			p.LiquidationPrice = liq
		}
	}
	return p, nil
}

func parseFundingRate(raw *FundingRateData) (*futures.FundingRate, error) {
	pair, _, _, err := parseMarketID(raw.Symbol)
	if err != nil {
		return nil, err
	}
	return &futures.FundingRate{
		Symbol: pair.Symbol(),
		Rate:   raw.FundingRate.String(),
	}, nil
}

func parseWalletRecord(raw *WalletRecord) *account.Transaction {
	var status account.TransactionStatus
	if s, ok := bitgetTransactionStatuses[strings.ToLower(raw.Status)]; ok {
		status = s
	} else {
		status = account.TransactionStatus(raw.Status)
	}
	return &account.Transaction{
		ID:        raw.ID,
		TxID:      raw.TxID,
		Network:   strings.ToUpper(raw.Chain),
		Currency:  currency.NewCode(raw.Coin),
		Amount:    raw.Amount.String(),
		AddressTo: raw.ToAddress,
		Tag:       raw.Tag,
		Status:    status,
		Fee:       raw.Fee.String(),
		Timestamp: raw.CTime.Time(),
		Updated:   raw.UTime.Time(),
	}
}
