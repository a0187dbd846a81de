package bitget

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tradekit-io/unified/common/crypto"
	"github.com/tradekit-io/unified/currency"
	exchange "github.com/tradekit-io/unified/exchanges"
	"github.com/tradekit-io/unified/exchanges/asset"
	"github.com/tradekit-io/unified/exchanges/errs"
)

// signer implements Bitget's signing convention: HMAC-SHA256 over
// timestamp + method + requestPath(+query) + body, base64 encoded, delivered
// through the ACCESS-* header set. A trading passphrase is mandatory.
type signer struct{}

func (s *signer) Sign(creds *exchange.Credentials, _ asset.Item, method, path string, query url.Values, body []byte, timestamp time.Time) (map[string]string, url.Values, error) {
	if creds.Passphrase == "" {
		return nil, nil, errs.New(bitgetName, "", errs.ErrAuthentication, "", "passphrase must be configured")
	}
	requestPath := path
	if len(query) > 0 {
		// Encode sorts keys, keeping the signed string deterministic
		requestPath += "?" + query.Encode()
	}
	ts := strconv.FormatInt(timestamp.UnixMilli(), 10)
	message := ts + method + requestPath + string(body)
	mac := crypto.GetHMAC(crypto.HashSHA256, []byte(message), []byte(creds.Secret))
	headers := map[string]string{
		"ACCESS-KEY":        creds.Key,
		"ACCESS-SIGN":       crypto.Base64Encode(mac),
		"ACCESS-TIMESTAMP":  ts,
		"ACCESS-PASSPHRASE": creds.Passphrase,
		"locale":            "en-US",
	}
	return headers, query, nil
}

// Product-type suffixes embedded in Bitget market identifiers. The sandbox
// namespace prefixes each with S.
var productSuffixes = map[string]struct {
	a       asset.Item
	linear  bool
	usdc    bool
	inverse bool
}{
	"SPBL":   {a: asset.Spot},
	"UMCBL":  {a: asset.Swap, linear: true},
	"CMCBL":  {a: asset.Swap, linear: true, usdc: true},
	"DMCBL":  {a: asset.Swap, inverse: true},
	"SUMCBL": {a: asset.Swap, linear: true},
	"SCMCBL": {a: asset.Swap, linear: true, usdc: true},
	"SDMCBL": {a: asset.Swap, inverse: true},
}

var knownQuotes = []string{"USDT", "USDC", "BTC", "ETH", "EUR", "USD"}

func splitBaseQuote(s string) (base, quote string) {
	for _, q := range knownQuotes {
		if len(s) > len(q) && strings.HasSuffix(s, q) {
			return s[:len(s)-len(q)], q
		}
	}
	return "", ""
}

// parseMarketID decomposes an exchange-native market identifier such as
// BTCUSDT_UMCBL or BTCUSDT_UMCBL_240615 into a canonical pair plus its
// contract linearity. Spot identifiers carry the SPBL suffix.
func parseMarketID(id string) (currency.Pair, asset.Item, bool, error) {
	base, quote := splitBaseQuote(strings.SplitN(id, "_", 2)[0])
	if base == "" {
		return currency.Pair{}, asset.Empty, false,
			errs.New(bitgetName, "", errs.ErrBadSymbol, "", "cannot derive base/quote from market id "+id)
	}
	pair := currency.NewPair(currency.NewCode(base), currency.NewCode(quote))
	return classifyMarketID(id, pair)
}

// reportedMarketID builds the canonical pair from the base and quote
// currencies the venue reports alongside the identifier, using the id only
// for its product suffix. Markets quoted in currencies the suffix heuristic
// does not know still parse this way.
func reportedMarketID(id, baseCoin, quoteCoin string) (currency.Pair, asset.Item, bool, error) {
	if baseCoin == "" || quoteCoin == "" {
		return parseMarketID(id)
	}
	pair := currency.NewPair(currency.NewCode(baseCoin), currency.NewCode(quoteCoin))
	return classifyMarketID(id, pair)
}

// classifyMarketID applies the product suffix of a market identifier to an
// already-resolved base/quote pair: market type, linearity, settle currency
// and delivery date.
func classifyMarketID(id string, pair currency.Pair) (currency.Pair, asset.Item, bool, error) {
	parts := strings.Split(id, "_")
	if len(parts) == 1 {
		return pair, asset.Spot, false, nil
	}
	info, ok := productSuffixes[strings.ToUpper(parts[1])]
	if !ok {
		return currency.Pair{}, asset.Empty, false,
			errs.New(bitgetName, "", errs.ErrBadSymbol, "", "unknown product type in market id "+id)
	}
	a := info.a
	if a == asset.Spot {
		return pair, a, false, nil
	}
	switch {
	case info.usdc:
		pair.Settle = currency.NewCode("USDC")
	case info.linear:
		pair.Settle = pair.Quote
	default:
		// Inverse contracts settle in the base currency
		pair.Settle = pair.Base
	}
	if len(parts) > 2 {
		expiry, err := currency.ParseExpiry(parts[2])
		if err != nil {
			return currency.Pair{}, asset.Empty, false,
				errs.New(bitgetName, "", errs.ErrBadSymbol, "", err.Error())
		}
		pair.Expiry = expiry
		a = asset.Futures
	}
	return pair, a, info.linear, nil
}

// marketID renders the exchange-native identifier for a canonical pair
func (bi *Bitget) marketID(pair currency.Pair, a asset.Item) string {
	id := pair.Base.String() + pair.Quote.String()
	switch a {
	case asset.Spot:
		return id + "_SPBL"
	default:
		suffix := strings.ToUpper(bi.productType(pair.Settle))
		id += "_" + suffix
		if !pair.Expiry.IsZero() {
			id += "_" + pair.Expiry.UTC().Format("060102")
		}
		return id
	}
}
