package mexc

import (
	"github.com/tradekit-io/unified/types"
)

// SpotSymbol holds one spot market description from exchangeInfo
type SpotSymbol struct {
	Symbol               string       `json:"symbol"`
	Status               string       `json:"status"`
	BaseAsset            string       `json:"baseAsset"`
	QuoteAsset           string       `json:"quoteAsset"`
	BaseAssetPrecision   int64        `json:"baseAssetPrecision"`
	QuotePrecision       int64        `json:"quotePrecision"`
	BaseSizePrecision    types.Number `json:"baseSizePrecision"`
	QuoteAmountPrecision types.Number `json:"quoteAmountPrecision"`
	MaxQuoteAmount       types.Number `json:"maxQuoteAmount"`
	MakerCommission      types.Number `json:"makerCommission"`
	TakerCommission      types.Number `json:"takerCommission"`
	IsSpotTradingAllowed bool         `json:"isSpotTradingAllowed"`
}

// SpotExchangeInfo is the exchangeInfo response envelope
type SpotExchangeInfo struct {
	Timezone   string       `json:"timezone"`
	ServerTime types.Time   `json:"serverTime"`
	Symbols    []SpotSymbol `json:"symbols"`
}

// ContractDetail holds one contract description from contract/detail
type ContractDetail struct {
	Symbol        string       `json:"symbol"`
	DisplayName   string       `json:"displayName"`
	BaseCoin      string       `json:"baseCoin"`
	QuoteCoin     string       `json:"quoteCoin"`
	SettleCoin    string       `json:"settleCoin"`
	ContractSize  types.Number `json:"contractSize"`
	MinLeverage   types.Number `json:"minLeverage"`
	MaxLeverage   types.Number `json:"maxLeverage"`
	PriceScale    int64        `json:"priceScale"`
	VolScale      int64        `json:"volScale"`
	PriceUnit     types.Number `json:"priceUnit"`
	VolUnit       types.Number `json:"volUnit"`
	MinVol        types.Number `json:"minVol"`
	MaxVol        types.Number `json:"maxVol"`
	MakerFeeRate  types.Number `json:"makerFeeRate"`
	TakerFeeRate  types.Number `json:"takerFeeRate"`
	State         int64        `json:"state"`
	APIAllowed    bool         `json:"apiAllowed"`
	IsNew         bool         `json:"isNew"`
	ConceptPlates []string     `json:"conceptPlate"`
}

// NetworkListItem holds one transfer network of a currency
type NetworkListItem struct {
	Coin            string       `json:"coin"`
	Network         string       `json:"network"`
	NetWork         string       `json:"netWork"`
	DepositEnable   bool         `json:"depositEnable"`
	WithdrawEnable  bool         `json:"withdrawEnable"`
	WithdrawFee     types.Number `json:"withdrawFee"`
	WithdrawMin     types.Number `json:"withdrawMin"`
	WithdrawMax     types.Number `json:"withdrawMax"`
	Contract        string       `json:"contract"`
	WithdrawTips    string       `json:"withdrawTips"`
	DepositTips     string       `json:"depositTips"`
	MinConfirm      int64        `json:"minConfirm"`
	SameAddress     bool         `json:"sameAddress"`
	TransferEnabled bool         `json:"transferEnabled"`
}

// CoinInfo holds a currency description from capital/config/getall
type CoinInfo struct {
	Coin        string            `json:"coin"`
	Name        string            `json:"name"`
	NetworkList []NetworkListItem `json:"networkList"`
}

// SpotTrade holds one public spot trade
type SpotTrade struct {
	ID           string       `json:"id"`
	Price        types.Number `json:"price"`
	Qty          types.Number `json:"qty"`
	QuoteQty     types.Number `json:"quoteQty"`
	Time         types.Time   `json:"time"`
	IsBuyerMaker bool         `json:"isBuyerMaker"`
	TradeType    string       `json:"tradeType"`
}

// ContractDeal holds one public contract trade
type ContractDeal struct {
	Price     types.Number `json:"p"`
	Volume    types.Number `json:"v"`
	TakerSide int64        `json:"T"`
	Timestamp types.Time   `json:"t"`
}

// SpotBalance holds one currency's spot balances
type SpotBalance struct {
	Asset  string       `json:"asset"`
	Free   types.Number `json:"free"`
	Locked types.Number `json:"locked"`
}

// SpotAccount is the spot account response
type SpotAccount struct {
	AccountType string        `json:"accountType"`
	CanTrade    bool          `json:"canTrade"`
	CanDeposit  bool          `json:"canDeposit"`
	CanWithdraw bool          `json:"canWithdraw"`
	Balances    []SpotBalance `json:"balances"`
}

// ContractAsset holds one margin currency's contract-account balances
type ContractAsset struct {
	Currency         string       `json:"currency"`
	PositionMargin   types.Number `json:"positionMargin"`
	AvailableBalance types.Number `json:"availableBalance"`
	FrozenBalance    types.Number `json:"frozenBalance"`
	Equity           types.Number `json:"equity"`
	Unrealized       types.Number `json:"unrealized"`
	Bonus            types.Number `json:"bonus"`
}

// ContractFundingRate holds the current funding rate of a contract
type ContractFundingRate struct {
	Symbol         string       `json:"symbol"`
	FundingRate    types.Number `json:"fundingRate"`
	MaxFundingRate types.Number `json:"maxFundingRate"`
	MinFundingRate types.Number `json:"minFundingRate"`
	CollectCycle   int64        `json:"collectCycle"`
	NextSettleTime types.Time   `json:"nextSettleTime"`
	Timestamp      types.Time   `json:"timestamp"`
}

// FundingRateHistoryPage is the paged funding-rate history response
type FundingRateHistoryPage struct {
	PageSize    int64 `json:"pageSize"`
	TotalCount  int64 `json:"totalCount"`
	TotalPage   int64 `json:"totalPage"`
	CurrentPage int64 `json:"currentPage"`
	ResultList  []struct {
		Symbol      string       `json:"symbol"`
		FundingRate types.Number `json:"fundingRate"`
		SettleTime  types.Time   `json:"settleTime"`
	} `json:"resultList"`
}

// DepositRecord holds one deposit from capital/deposit/hisrec
type DepositRecord struct {
	Amount        types.Number `json:"amount"`
	Coin          string       `json:"coin"`
	Network       string       `json:"network"`
	Status        int64        `json:"status"`
	Address       string       `json:"address"`
	AddressTag    string       `json:"addressTag"`
	TxID          string       `json:"txId"`
	InsertTime    types.Time   `json:"insertTime"`
	UnlockConfirm string       `json:"unlockConfirm"`
	ConfirmTimes  string       `json:"confirmTimes"`
	Memo          string       `json:"memo"`
}

// WithdrawRecord holds one withdrawal from capital/withdraw/history
type WithdrawRecord struct {
	ID             string       `json:"id"`
	TxID           string       `json:"txId"`
	Coin           string       `json:"coin"`
	Network        string       `json:"network"`
	Address        string       `json:"address"`
	Amount         types.Number `json:"amount"`
	TransferType   int64        `json:"transferType"`
	Status         int64        `json:"status"`
	TransactionFee types.Number `json:"transactionFee"`
	ConfirmNo      int64        `json:"confirmNo"`
	ApplyTime      types.Time   `json:"applyTime"`
	Remark         string       `json:"remark"`
	Memo           string       `json:"memo"`
	TransHash      string       `json:"transHash"`
	UpdateTime     types.Time   `json:"updateTime"`
	CoinID         string       `json:"coinId"`
	VcoinID        string       `json:"vcoinId"`
}

// SpotMyTrade holds one of the account's own spot fills
type SpotMyTrade struct {
	Symbol          string       `json:"symbol"`
	ID              string       `json:"id"`
	OrderID         string       `json:"orderId"`
	Price           types.Number `json:"price"`
	Qty             types.Number `json:"qty"`
	QuoteQty        types.Number `json:"quoteQty"`
	Commission      types.Number `json:"commission"`
	CommissionAsset string       `json:"commissionAsset"`
	Time            types.Time   `json:"time"`
	IsBuyer         bool         `json:"isBuyer"`
	IsMaker         bool         `json:"isMaker"`
}

// ContractOrderDeal holds one of the account's own contract fills
type ContractOrderDeal struct {
	ID          int64        `json:"id"`
	Symbol      string       `json:"symbol"`
	Side        int64        `json:"side"`
	Vol         types.Number `json:"vol"`
	Price       types.Number `json:"price"`
	Fee         types.Number `json:"fee"`
	FeeCurrency string       `json:"feeCurrency"`
	Profit      types.Number `json:"profit"`
	IsTaker     bool         `json:"isTaker"`
	Category    int64        `json:"category"`
	OrderID     int64        `json:"orderId"`
	Timestamp   types.Time   `json:"timestamp"`
}

// ContractOrderResult is the acknowledgement of a contract order mutation;
// the data field carries the order id
type ContractOrderResult struct {
	Success bool   `json:"success"`
	Code    int64  `json:"code"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// SpotOrderAck is the acknowledgement of a spot order mutation
type SpotOrderAck struct {
	Symbol       string       `json:"symbol"`
	OrderID      string       `json:"orderId"`
	OrderListID  int64        `json:"orderListId"`
	Price        types.Number `json:"price"`
	OrigQty      types.Number `json:"origQty"`
	Type         string       `json:"type"`
	Side         string       `json:"side"`
	TransactTime types.Time   `json:"transactTime"`
}
