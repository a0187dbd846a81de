package mexc

import (
	"strconv"
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

// Native order statuses. The spot line reports Binance-style strings, the
// contract line numeric states; unlisted statuses pass through unmapped.
var mexcOrderStatuses = map[string]order.Status{
	"NEW":                order.Open,
	"PARTIALLY_FILLED":   order.Open,
	"FILLED":             order.Closed,
	"CANCELED":           order.Canceled,
	"PARTIALLY_CANCELED": order.Canceled,
	"1": order.Open,
	"2": order.Open,
	"3": order.Closed,
	"4": order.Canceled,
	"5": order.Canceled,
}

// Contract compound sides by numeric code: 1 opens a long, 2 closes a short,
// 3 opens a short, 4 closes a long
var mexcContractSides = map[string]order.Side{
	"1": order.Buy,
	"2": order.Buy,
	"3": order.Sell,
	"4": order.Sell,
}

// Deposit states from the capital endpoints
var mexcDepositStatuses = map[int64]account.TransactionStatus{
	1: account.TransactionPending,
	2: account.TransactionPending,
	3: account.TransactionPending,
	4: account.TransactionPending,
	5: account.TransactionOK,
	6: account.TransactionPending,
	7: account.TransactionFailed,
}

// Withdrawal states from the capital endpoints
var mexcWithdrawStatuses = map[int64]account.TransactionStatus{
	1:  account.TransactionPending,
	2:  account.TransactionPending,
	3:  account.TransactionPending,
	4:  account.TransactionPending,
	5:  account.TransactionPending,
	6:  account.TransactionPending,
	7:  account.TransactionOK,
	8:  account.TransactionFailed,
	9:  account.TransactionCanceled,
	10: account.TransactionPending,
}

// Canonical account-type names to the venue's transfer account identifiers
var mexcAccountTypes = map[string]string{
	"spot": "SPOT",
	"swap": "FUTURES",
}

func mexcSide(native string) order.Side {
	if s, ok := mexcContractSides[native]; ok {
		return s
	}
	return order.CanonicalSide(native)
}

// parseTicker normalizes one ticker node from either product line. The spot
// line reports a percent change; the contract riseFallRate is a raw fraction
// and is scaled to match.
func parseTicker(node map[string]any) (*ticker.Price, error) {
	id, _ := fields.String(node, "symbol")
	pair, _, err := parseMarketID(id)
	if err != nil {
		return nil, err
	}
	p := &ticker.Price{
		Symbol:      pair.Symbol(),
		High:        fields.NumberOr(node, "", "highPrice", "high24Price"),
		Low:         fields.NumberOr(node, "", "lowPrice", "lower24Price"),
		Open:        fields.NumberOr(node, "", "openPrice"),
		Last:        fields.NumberOr(node, "", "lastPrice"),
		Bid:         fields.NumberOr(node, "", "bidPrice", "bid1"),
		BidVolume:   fields.NumberOr(node, "", "bidQty"),
		Ask:         fields.NumberOr(node, "", "askPrice", "ask1"),
		AskVolume:   fields.NumberOr(node, "", "askQty"),
		Change:      fields.NumberOr(node, "", "priceChange"),
		Percentage:  fields.NumberOr(node, "", "priceChangePercent"),
		BaseVolume:  fields.NumberOr(node, "", "volume", "volume24"),
		QuoteVolume: fields.NumberOr(node, "", "quoteVolume", "amount24"),
		Info:        node,
	}
	p.Close = p.Last
	if ts, ok := fields.TimeMS(node, "closeTime", "timestamp"); ok {
		p.Timestamp = ts
	}
	if p.Percentage == "" {
		if rate, ok := fields.Number(node, "riseFallRate"); ok {
			pct, err := precise.StringMul(rate, "100")
			if err != nil {
				return nil, err
			}
			p.Percentage = pct
		}
	}
	if err := p.DeriveChange(); err != nil {
		return nil, err
	}
	return p, nil
}

// parseOrder normalizes one order node from either product line
func parseOrder(node map[string]any) (*order.Detail, error) {
	id, _ := fields.String(node, "symbol")
	pair, _, err := parseMarketID(id)
	if err != nil {
		return nil, err
	}
	d := &order.Detail{
		ID:            fields.StringOr(node, "", "orderId", "id"),
		ClientOrderID: fields.StringOr(node, "", "clientOrderId", "externalOid"),
		Symbol:        pair.Symbol(),
		Type:          strings.ToLower(fields.StringOr(node, "", "type", "orderType")),
		Side:          mexcSide(fields.StringOr(node, "", "side")),
		Price:         fields.NumberOr(node, "", "price"),
		TriggerPrice:  fields.NumberOr(node, "", "stopPrice", "triggerPrice"),
		Average:       fields.NumberOr(node, "", "dealAvgPrice", "avgPrice"),
		Amount:        fields.NumberOr(node, "", "origQty", "vol"),
		Filled:        fields.NumberOr(node, "", "executedQty", "dealVol"),
		Cost:          fields.NumberOr(node, "", "cummulativeQuoteQty"),
		Status:        order.CanonicalStatus(mexcOrderStatuses, fields.StringOr(node, "", "status", "state")),
		Info:          node,
	}
	if ts, ok := fields.TimeMS(node, "time", "createTime", "transactTime"); ok {
		d.Timestamp = ts
	}
	if ts, ok := fields.TimeMS(node, "updateTime"); ok {
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
	return d, nil
}

func parseSpotMarket(raw *SpotSymbol) (*market.Market, error) {
	// The payload reports base and quote authoritatively; the concatenated
	// id heuristic is only a fallback
	pair := currency.NewPair(currency.NewCode(raw.BaseAsset), currency.NewCode(raw.QuoteAsset))
	if raw.BaseAsset == "" || raw.QuoteAsset == "" {
		var err error
		pair, _, err = parseMarketID(raw.Symbol)
		if err != nil {
			return nil, err
		}
	}
	priceStep, err := market.StepFromScale(raw.QuotePrecision)
	if err != nil {
		return nil, err
	}
	amountStep, err := market.StepFromScale(raw.BaseAssetPrecision)
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
		Active: raw.Status == "1" || strings.EqualFold(raw.Status, "ENABLED"),
		Maker:  raw.MakerCommission.String(),
		Taker:  raw.TakerCommission.String(),
		Precision: market.Precision{
			Amount: amountStep,
			Price:  priceStep,
		},
		Limits: market.Limits{
			Amount: market.MinMax{Min: raw.BaseSizePrecision.String()},
			Cost: market.MinMax{
				Min: raw.QuoteAmountPrecision.String(),
				Max: raw.MaxQuoteAmount.String(),
			},
		},
	}
	return m, m.Validate()
}

func parseContractMarket(raw *ContractDetail) (*market.Market, error) {
	pair, a, err := parseMarketID(raw.Symbol)
	if err != nil {
		return nil, err
	}
	if raw.SettleCoin != "" {
		pair.Settle = currency.NewCode(raw.SettleCoin)
	}
	linear := pair.Settle == pair.Quote
	priceStep, err := market.ReconcilePrecision(raw.PriceScale, raw.PriceUnit.String())
	if err != nil {
		return nil, err
	}
	amountStep, err := market.StepFromScale(raw.VolScale)
	if err != nil {
		return nil, err
	}
	contractSize := raw.ContractSize.String()
	if contractSize == "" {
		contractSize = "1"
	}
	m := &market.Market{
		ID:           raw.Symbol,
		Symbol:       pair.Symbol(),
		Base:         currency.NewCode(raw.BaseCoin),
		Quote:        currency.NewCode(raw.QuoteCoin),
		Settle:       pair.Settle,
		Type:         a,
		Swap:         true,
		Contract:     true,
		Linear:       linear,
		Inverse:      !linear,
		Active:       raw.State == 0,
		ContractSize: contractSize,
		Maker:        raw.MakerFeeRate.String(),
		Taker:        raw.TakerFeeRate.String(),
		Precision: market.Precision{
			Amount: amountStep,
			Price:  priceStep,
		},
		Limits: market.Limits{
			Amount: market.MinMax{
				Min: raw.MinVol.String(),
				Max: raw.MaxVol.String(),
			},
			Leverage: market.MinMax{
				Min: raw.MinLeverage.String(),
				Max: raw.MaxLeverage.String(),
			},
		},
	}
	return m, m.Validate()
}

func parseCurrency(raw *CoinInfo) *market.Currency {
	c := &market.Currency{
		Code:     currency.NewCode(raw.Coin),
		ID:       raw.Coin,
		Name:     raw.Name,
		Networks: make(map[string]market.NetworkEntry, len(raw.NetworkList)),
	}
	for i := range raw.NetworkList {
		n := raw.NetworkList[i]
		id := n.Network
		if id == "" {
			id = n.NetWork
		}
		entry := market.NetworkEntry{
			ID:       id,
			Network:  strings.ToUpper(id),
			Deposit:  n.DepositEnable,
			Withdraw: n.WithdrawEnable,
			Fee:      n.WithdrawFee.String(),
			Limits: market.MinMax{
				Min: n.WithdrawMin.String(),
				Max: n.WithdrawMax.String(),
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

func parseSpotTrade(raw *SpotTrade, symbol string) (*trade.Data, error) {
	side := order.Buy
	if raw.IsBuyerMaker {
		side = order.Sell
	}
	d := &trade.Data{
		ID:        raw.ID,
		Symbol:    symbol,
		Side:      side,
		Price:     raw.Price.String(),
		Amount:    raw.Qty.String(),
		Cost:      raw.QuoteQty.String(),
		Timestamp: raw.Time.Time(),
	}
	return d, d.Normalize()
}

func parseContractDeal(raw *ContractDeal, symbol string) (*trade.Data, error) {
	side := order.Buy
	if raw.TakerSide == 2 {
		side = order.Sell
	}
	d := &trade.Data{
		Symbol:    symbol,
		Side:      side,
		Price:     raw.Price.String(),
		Amount:    raw.Volume.String(),
		Timestamp: raw.Timestamp.Time(),
	}
	return d, d.Normalize()
}

func parseSpotMyTrade(raw *SpotMyTrade, symbol string) (*trade.Data, error) {
	side := order.Sell
	if raw.IsBuyer {
		side = order.Buy
	}
	takerMaker := "taker"
	if raw.IsMaker {
		takerMaker = "maker"
	}
	d := &trade.Data{
		ID:           raw.ID,
		OrderID:      raw.OrderID,
		Symbol:       symbol,
		Side:         side,
		TakerOrMaker: takerMaker,
		Price:        raw.Price.String(),
		Amount:       raw.Qty.String(),
		Cost:         raw.QuoteQty.String(),
		Fee: order.Fee{
			Currency: currency.NewCode(raw.CommissionAsset),
			Cost:     raw.Commission.String(),
		},
		Timestamp: raw.Time.Time(),
	}
	return d, d.Normalize()
}

func parseContractMyTrade(raw *ContractOrderDeal, symbol string) (*trade.Data, error) {
	takerMaker := "maker"
	if raw.IsTaker {
		takerMaker = "taker"
	}
	d := &trade.Data{
		ID:           strconv.FormatInt(raw.ID, 10),
		OrderID:      strconv.FormatInt(raw.OrderID, 10),
		Symbol:       symbol,
		Side:         mexcSide(strconv.FormatInt(raw.Side, 10)),
		TakerOrMaker: takerMaker,
		Price:        raw.Price.String(),
		Amount:       raw.Vol.String(),
		Fee: order.Fee{
			Currency: currency.NewCode(raw.FeeCurrency),
			Cost:     raw.Fee.String(),
		},
		Timestamp: raw.Timestamp.Time(),
	}
	return d, d.Normalize()
}

func parseSpotBalances(raw []SpotBalance) (*account.Holdings, error) {
	h := &account.Holdings{
		Exchange: mexcName,
		Balances: make(map[currency.Code]account.Balance, len(raw)),
	}
	for i := range raw {
		b, err := account.NewBalance(raw[i].Free.String(), raw[i].Locked.String())
		if err != nil {
			return nil, err
		}
		h.Balances[currency.NewCode(raw[i].Asset)] = b
	}
	return h, nil
}

func parseContractBalances(raw []ContractAsset) (*account.Holdings, error) {
	h := &account.Holdings{
		Exchange: mexcName,
		Balances: make(map[currency.Code]account.Balance, len(raw)),
	}
	for i := range raw {
		frozen := raw[i].FrozenBalance.String()
		if frozen == "" {
			frozen = "0"
		}
		positionMargin := raw[i].PositionMargin.String()
		if positionMargin == "" {
			positionMargin = "0"
		}
		used, err := precise.StringAdd(frozen, positionMargin)
		if err != nil {
			return nil, err
		}
		b, err := account.NewBalance(raw[i].AvailableBalance.String(), used)
		if err != nil {
			return nil, err
		}
		h.Balances[currency.NewCode(raw[i].Currency)] = b
	}
	return h, nil
}

// parsePosition normalizes one contract position node. positionType 1 is a
// long, 2 a short; openType 1 is isolated margin, 2 cross.
func parsePosition(node map[string]any) (*futures.Position, error) {
	id, _ := fields.String(node, "symbol")
	pair, _, err := parseMarketID(id)
	if err != nil {
		return nil, err
	}
	p := &futures.Position{
		Symbol:            pair.Symbol(),
		Contracts:         fields.NumberOr(node, "", "holdVol", "vol"),
		EntryPrice:        fields.NumberOr(node, "", "openAvgPrice", "holdAvgPrice"),
		Leverage:          fields.NumberOr(node, "", "leverage"),
		Collateral:        fields.NumberOr(node, "", "im", "margin"),
		InitialMargin:     fields.NumberOr(node, "", "oim"),
		LiquidationPrice:  fields.NumberOr(node, "", "liquidatePrice"),
		UnrealizedPnL:     fields.NumberOr(node, "", "unrealized"),
		MaintenanceMargin: fields.NumberOr(node, "", "mm"),
		Info:              node,
	}
	// profitRatio is a fraction of the position margin, not an absolute PnL
	if ratio, ok := fields.Number(node, "profitRatio"); ok {
		pct, err := precise.StringMul(ratio, "100")
		if err != nil {
			return nil, err
		}
		p.UnrealizedPnLPercent = pct
	}
	if pt, ok := fields.Int(node, "positionType"); ok {
		if pt == 1 {
			p.Side = futures.Long
		} else {
			p.Side = futures.Short
		}
	}
	if ot, ok := fields.Int(node, "openType"); ok {
		if ot == 1 {
			p.MarginMode = futures.Isolated
		} else {
			p.MarginMode = futures.Cross
		}
	}
	if ts, ok := fields.TimeMS(node, "updateTime", "createTime"); ok {
		p.Timestamp = ts
	}
	if p.MaintenanceMargin != "" && p.Collateral != "" {
		ratio, err := futures.DeriveMarginRatio(p.MaintenanceMargin, p.Collateral)
		if err == nil {
			p.MarginRatio = ratio
		}
	}
	return p, nil
}

func parseFundingRate(raw *ContractFundingRate) (*futures.FundingRate, error) {
	pair, _, err := parseMarketID(raw.Symbol)
	if err != nil {
		return nil, err
	}
	return &futures.FundingRate{
		Symbol:          pair.Symbol(),
		Rate:            raw.FundingRate.String(),
		Timestamp:       raw.Timestamp.Time(),
		NextFundingTime: raw.NextSettleTime.Time(),
	}, nil
}

func parseDeposit(raw *DepositRecord) *account.Transaction {
	status, ok := mexcDepositStatuses[raw.Status]
	if !ok {
		status = account.TransactionStatus(strconv.FormatInt(raw.Status, 10))
	}
	return &account.Transaction{
		TxID:      raw.TxID,
		Network:   strings.ToUpper(raw.Network),
		Currency:  currency.NewCode(raw.Coin),
		Amount:    raw.Amount.String(),
		AddressTo: raw.Address,
		Tag:       raw.Memo,
		Status:    status,
		Timestamp: raw.InsertTime.Time(),
	}
}

func parseWithdrawal(raw *WithdrawRecord) *account.Transaction {
	status, ok := mexcWithdrawStatuses[raw.Status]
	if !ok {
		status = account.TransactionStatus(strconv.FormatInt(raw.Status, 10))
	}
	return &account.Transaction{
		ID:        raw.ID,
		TxID:      raw.TxID,
		Network:   strings.ToUpper(raw.Network),
		Currency:  currency.NewCode(raw.Coin),
		Amount:    raw.Amount.String(),
		AddressTo: raw.Address,
		Tag:       raw.Memo,
		Status:    status,
		Fee:       raw.TransactionFee.String(),
		Timestamp: raw.ApplyTime.Time(),
		Updated:   raw.UpdateTime.Time(),
	}
}
