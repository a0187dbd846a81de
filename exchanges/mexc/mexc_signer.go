package mexc

import (
	"net/url"
	"strconv"
	"time"

	"github.com/tradekit-io/unified/common/crypto"
	exchange "github.com/tradekit-io/unified/exchanges"
	"github.com/tradekit-io/unified/exchanges/asset"
)

// signer dispatches between the venue's two signing conventions by market
// type.
//
// Spot signs the encoded query string, extended with the timestamp, and
// appends the hex HMAC-SHA256 digest as a signature query parameter with the
// key in the X-MEXC-APIKEY header.
//
// Contract signs accessKey + timestamp + paramString, where paramString is
// the encoded query for reads and the raw JSON body for writes, and delivers
// the digest through the ApiKey/Request-Time/Signature header set.
type signer struct{}

const recvWindow = "5000"

func (s *signer) Sign(creds *exchange.Credentials, a asset.Item, method, path string, query url.Values, body []byte, timestamp time.Time) (map[string]string, url.Values, error) {
	ts := strconv.FormatInt(timestamp.UnixMilli(), 10)
	if a == asset.Spot {
		if query == nil {
			query = url.Values{}
		}
		query.Set("timestamp", ts)
		query.Set("recvWindow", recvWindow)
		// Encode sorts keys, keeping the signed string deterministic
		payload := query.Encode()
		if len(body) > 0 {
			payload += string(body)
		}
		mac := crypto.GetHMAC(crypto.HashSHA256, []byte(payload), []byte(creds.Secret))
		query.Set("signature", crypto.HexEncodeToString(mac))
		headers := map[string]string{
			"X-MEXC-APIKEY": creds.Key,
		}
		return headers, query, nil
	}

	param := query.Encode()
	if len(body) > 0 {
		param = string(body)
	}
	mac := crypto.GetHMAC(crypto.HashSHA256, []byte(creds.Key+ts+param), []byte(creds.Secret))
	headers := map[string]string{
		"ApiKey":       creds.Key,
		"Request-Time": ts,
		"Signature":    crypto.HexEncodeToString(mac),
	}
	return headers, query, nil
}
