package bitget

import (
	"github.com/tradekit-io/unified/exchanges/errs"
)

// newClassifier builds the native error tables. Exact entries are keyed by
// the numeric code the envelope carries; broad rules catch the message
// families that span many codes.
func newClassifier() *errs.Classifier {
	return &errs.Classifier{
		Exchange: bitgetName,
		Exact: map[string]error{
			"40001": errs.ErrAuthentication,     // ACCESS_KEY cannot be empty
			"40002": errs.ErrAuthentication,     // ACCESS_SIGN cannot be empty
			"40003": errs.ErrAuthentication,     // signature cannot be empty
			"40005": errs.ErrInvalidNonce,       // invalid ACCESS_TIMESTAMP
			"40006": errs.ErrAuthentication,     // invalid ACCESS_KEY
			"40008": errs.ErrInvalidNonce,       // request timestamp expired
			"40009": errs.ErrAuthentication,     // signature verification failed
			"40011": errs.ErrAuthentication,     // ACCESS_PASSPHRASE cannot be empty
			"40012": errs.ErrAuthentication,     // apikey/passphrase incorrect
			"40013": errs.ErrAccountSuspended,   // user frozen
			"40014": errs.ErrPermissionDenied,   // incorrect permissions
			"40015": errs.ErrExchange,           // system error
			"40016": errs.ErrOnMaintenance,      // user must bind phone or google auth
			"40017": errs.ErrAuthentication,     // parameter verification failed
			"40018": errs.ErrPermissionDenied,   // invalid request IP
			"40019": errs.ErrBadRequest,         // parameter cannot be empty
			"40020": errs.ErrBadRequest,         // parameter error
			"40034": errs.ErrBadRequest,         // parameter does not exist
			"40102": errs.ErrBadSymbol,          // contract configuration does not exist
			"40109": errs.ErrOrderNotFound,      // order data does not exist
			"40201": errs.ErrInvalidOrder,       // order amount exceeds the limit
			"40301": errs.ErrPermissionDenied,   // permission has not been opened
			"40309": errs.ErrBadSymbol,          // symbol has been removed
			"40725": errs.ErrExchange,           // service returned an error
			"40762": errs.ErrInsufficientFunds,  // order size greater than available
			"40774": errs.ErrInvalidOrder,       // unilateral position order mismatch
			"40808": errs.ErrBadRequest,         // request parameter format verification
			"43001": errs.ErrOrderNotFound,      // order does not exist
			"43002": errs.ErrInvalidOrder,       // pending order cannot be placed
			"43004": errs.ErrOrderNotFound,      // no pending order to cancel
			"43011": errs.ErrInvalidOrder,       // parameter does not meet specification
			"43012": errs.ErrInsufficientFunds,  // insufficient balance
			"43025": errs.ErrOrderNotFound,      // plan order does not exist
			"43115": errs.ErrOnMaintenance,      // trading pair opening soon
			"45110": errs.ErrInvalidOrder,       // less than the minimum trading volume
			"70001": errs.ErrBadRequest,         // date range error
			"70002": errs.ErrBadRequest,         // start date is more than 90 days
			"429":   errs.ErrDDoSProtection,     // too many requests at gateway
			"30001": errs.ErrRateLimitExceeded,  // request too frequent
		},
		Broad: []errs.BroadRule{
			{Fragment: "insufficient", Kind: errs.ErrInsufficientFunds},
			{Fragment: "too many requests", Kind: errs.ErrRateLimitExceeded},
			{Fragment: "request too frequent", Kind: errs.ErrRateLimitExceeded},
			{Fragment: "order does not exist", Kind: errs.ErrOrderNotFound},
			{Fragment: "invalid symbol", Kind: errs.ErrBadSymbol},
			{Fragment: "symbol does not exist", Kind: errs.ErrBadSymbol},
			{Fragment: "signature", Kind: errs.ErrAuthentication},
			{Fragment: "maintenance", Kind: errs.ErrOnMaintenance},
			{Fragment: "address", Kind: errs.ErrInvalidAddress},
		},
	}
}
