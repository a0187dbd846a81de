package bitget

import (
	"github.com/tradekit-io/unified/types"
)

// SpotMarketData holds a spot product description from public/products
type SpotMarketData struct {
	Symbol         string       `json:"symbol"`
	SymbolName     string       `json:"symbolName"`
	BaseCoin       string       `json:"baseCoin"`
	QuoteCoin      string       `json:"quoteCoin"`
	MinTradeAmount types.Number `json:"minTradeAmount"`
	MaxTradeAmount types.Number `json:"maxTradeAmount"`
	TakerFeeRate   types.Number `json:"takerFeeRate"`
	MakerFeeRate   types.Number `json:"makerFeeRate"`
	PriceScale     int64        `json:"priceScale,string"`
	QuantityScale  int64        `json:"quantityScale,string"`
	Status         string       `json:"status"`
}

// ContractMarketData holds a mix contract description from market/contracts
type ContractMarketData struct {
	Symbol             string       `json:"symbol"`
	BaseCoin           string       `json:"baseCoin"`
	QuoteCoin          string       `json:"quoteCoin"`
	SymbolType         string       `json:"symbolType"`
	SupportMarginCoins []string     `json:"supportMarginCoins"`
	MakerFeeRate       types.Number `json:"makerFeeRate"`
	TakerFeeRate       types.Number `json:"takerFeeRate"`
	FeeRateUpRatio     types.Number `json:"feeRateUpRatio"`
	MinTradeNum        types.Number `json:"minTradeNum"`
	PriceEndStep       types.Number `json:"priceEndStep"`
	PricePlace         int64        `json:"pricePlace,string"`
	VolumePlace        int64        `json:"volumePlace,string"`
	SizeMultiplier     types.Number `json:"sizeMultiplier"`
	SymbolStatus       string       `json:"symbolStatus"`
	OffTime            types.Number `json:"offTime"`
	LimitOpenTime      types.Number `json:"limitOpenTime"`
}

// CurrencyChain holds one transfer network of a currency
type CurrencyChain struct {
	Chain             string       `json:"chain"`
	NeedTag           string       `json:"needTag"`
	Withdrawable      string       `json:"withdrawable"`
	Rechargeable      string       `json:"rechargeable"`
	WithdrawFee       types.Number `json:"withdrawFee"`
	DepositConfirm    types.Number `json:"depositConfirm"`
	WithdrawConfirm   types.Number `json:"withdrawConfirm"`
	MinDepositAmount  types.Number `json:"minDepositAmount"`
	MinWithdrawAmount types.Number `json:"minWithdrawAmount"`
}

// CurrencyData holds a currency description from public/currencies
type CurrencyData struct {
	CoinID   string          `json:"coinId"`
	CoinName string          `json:"coinName"`
	Transfer string          `json:"transfer"`
	Chains   []CurrencyChain `json:"chains"`
}

// MarketTrade holds one public fill from market/fills
type MarketTrade struct {
	Symbol    string       `json:"symbol"`
	TradeID   string       `json:"tradeId"`
	Side      string       `json:"side"`
	FillPrice types.Number `json:"fillPrice"`
	FillQty   types.Number `json:"fillQuantity"`
	FillTime  types.Time   `json:"fillTime"`
}

// PrivateFill holds one of the account's own fills
type PrivateFill struct {
	AccountID  string       `json:"accountId"`
	Symbol     string       `json:"symbol"`
	OrderID    string       `json:"orderId"`
	FillID     string       `json:"fillId"`
	OrderType  string       `json:"orderType"`
	Side       string       `json:"side"`
	FillPrice  types.Number `json:"fillPrice"`
	FillQty    types.Number `json:"fillQuantity"`
	FillTotal  types.Number `json:"fillTotalAmount"`
	CTime      types.Time   `json:"cTime"`
	FeeCcy     string       `json:"feeCcy"`
	Fees       types.Number `json:"fees"`
	TakerMaker string       `json:"execType"`
}

// SpotAsset holds one currency's spot balances
type SpotAsset struct {
	CoinID    string       `json:"coinId"`
	CoinName  string       `json:"coinName"`
	Available types.Number `json:"available"`
	Frozen    types.Number `json:"frozen"`
	Lock      types.Number `json:"lock"`
	UTime     types.Time   `json:"uTime"`
}

// MixAccount holds one margin-coin account on the mix product
type MixAccount struct {
	MarginCoin        string       `json:"marginCoin"`
	Locked            types.Number `json:"locked"`
	Available         types.Number `json:"available"`
	CrossMaxAvailable types.Number `json:"crossMaxAvailable"`
	FixedMaxAvailable types.Number `json:"fixedMaxAvailable"`
	MaxTransferOut    types.Number `json:"maxTransferOut"`
	Equity            types.Number `json:"equity"`
	UsdtEquity        types.Number `json:"usdtEquity"`
}

// FundingRateData holds the current funding rate of a contract
type FundingRateData struct {
	Symbol      string       `json:"symbol"`
	FundingRate types.Number `json:"fundingRate"`
}

// FundingRateHistoryData holds one settled funding rate
type FundingRateHistoryData struct {
	Symbol      string       `json:"symbol"`
	FundingRate types.Number `json:"fundingRate"`
	SettleTime  types.Time   `json:"settleTime"`
}

// WalletRecord holds one deposit or withdrawal record
type WalletRecord struct {
	ID        string       `json:"id"`
	TxID      string       `json:"txId"`
	Coin      string       `json:"coin"`
	Type      string       `json:"type"`
	Amount    types.Number `json:"amount"`
	Status    string       `json:"status"`
	ToAddress string       `json:"toAddress"`
	Fee       types.Number `json:"fee"`
	Chain     string       `json:"chain"`
	Confirm   types.Number `json:"confirm"`
	Tag       string       `json:"tag"`
	CTime     types.Time   `json:"cTime"`
	UTime     types.Time   `json:"uTime"`
}

// TransferResult holds the acknowledgement of a wallet transfer
type TransferResult struct {
	TransferID string `json:"transferId"`
	ClientOID  string `json:"clientOid"`
}

// OrderIDResult holds the acknowledgement of an order mutation
type OrderIDResult struct {
	OrderID   string `json:"orderId"`
	ClientOID string `json:"clientOrderId"`
}
