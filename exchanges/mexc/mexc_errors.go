package mexc

import (
	"github.com/tradekit-io/unified/exchanges/errs"
)

// newClassifier builds the native error tables. The spot line reports
// negative Binance-style codes, the contract line positive ones; both feed
// the same envelope keys so a single table covers them.
func newClassifier() *errs.Classifier {
	return &errs.Classifier{
		Exchange: mexcName,
		Exact: map[string]error{
			"-1121":  errs.ErrBadSymbol,          // invalid symbol
			"-1102":  errs.ErrBadRequest,         // mandatory parameter missing
			"-1128":  errs.ErrBadRequest,         // combination of optional parameters invalid
			"-2011":  errs.ErrOrderNotFound,      // unknown order sent
			"-2013":  errs.ErrOrderNotFound,      // order does not exist
			"-2015":  errs.ErrAuthentication,     // invalid api key, ip, or permissions
			"400":    errs.ErrBadRequest,         // invalid parameter
			"401":    errs.ErrAuthentication,     // unauthorized
			"403":    errs.ErrPermissionDenied,   // access denied
			"429":    errs.ErrDDoSProtection,     // too many requests at gateway
			"510":    errs.ErrRateLimitExceeded,  // request frequency too fast
			"600":    errs.ErrBadRequest,         // parameter error
			"602":    errs.ErrAuthentication,     // signature verification failed
			"701":    errs.ErrPermissionDenied,   // no transaction permission
			"703":    errs.ErrPermissionDenied,   // no withdrawal permission
			"1002":   errs.ErrBadSymbol,          // contract not activated
			"2005":   errs.ErrInsufficientFunds,  // insufficient balance
			"2011":   errs.ErrInvalidOrder,       // invalid order price
			"2013":   errs.ErrInvalidOrder,       // invalid order volume
			"2018":   errs.ErrInsufficientFunds,  // insufficient margin
			"2034":   errs.ErrInvalidOrder,       // order volume below minimum
			"2038":   errs.ErrCancelPending,      // order is already cancelling
			"2040":   errs.ErrOrderNotFound,      // order not found
			"10072":  errs.ErrAuthentication,     // invalid access key
			"10073":  errs.ErrInvalidNonce,       // invalid request time
			"10101":  errs.ErrInsufficientFunds,  // insufficient account balance
			"10216":  errs.ErrInvalidAddress,     // no available deposit address
			"10232":  errs.ErrBadSymbol,          // currency does not exist
			"30000":  errs.ErrOnMaintenance,      // trading suspended on the pair
			"30001":  errs.ErrInvalidOrder,       // trade direction not allowed
			"30002":  errs.ErrInvalidOrder,       // below minimum transaction volume
			"30004":  errs.ErrInsufficientFunds,  // insufficient position
			"30005":  errs.ErrInsufficientFunds,  // oversell error
			"30016":  errs.ErrOnMaintenance,      // trading disabled
			"33333":  errs.ErrOrderNotFound,      // order does not exist
			"700002": errs.ErrAuthentication,     // signature for this request is not valid
			"700003": errs.ErrInvalidNonce,       // timestamp outside the recvWindow
			"700007": errs.ErrPermissionDenied,   // no permission to access the endpoint
		},
		Broad: []errs.BroadRule{
			{Fragment: "insufficient", Kind: errs.ErrInsufficientFunds},
			{Fragment: "oversold", Kind: errs.ErrInsufficientFunds},
			{Fragment: "too many requests", Kind: errs.ErrRateLimitExceeded},
			{Fragment: "requested too frequent", Kind: errs.ErrRateLimitExceeded},
			{Fragment: "unknown order", Kind: errs.ErrOrderNotFound},
			{Fragment: "order does not exist", Kind: errs.ErrOrderNotFound},
			{Fragment: "invalid symbol", Kind: errs.ErrBadSymbol},
			{Fragment: "signature", Kind: errs.ErrAuthentication},
			{Fragment: "api key", Kind: errs.ErrAuthentication},
			{Fragment: "maintenance", Kind: errs.ErrOnMaintenance},
			{Fragment: "withdraw address", Kind: errs.ErrInvalidAddress},
		},
	}
}
