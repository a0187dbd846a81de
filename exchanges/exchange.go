// Package exchanges provides the generic exchange client that adapter
// packages compose: an endpoint dispatch table, a signing strategy, an error
// classifier and a pluggable transport. Adapters supply those pieces as
// static configuration; this package owns the request lifecycle from logical
// operation to decoded canonical response.
package exchanges

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/tradekit-io/unified/common"
	"github.com/tradekit-io/unified/exchanges/asset"
	"github.com/tradekit-io/unified/exchanges/endpoint"
	"github.com/tradekit-io/unified/exchanges/errs"
	"github.com/tradekit-io/unified/exchanges/request"
)

var (
	errTransportNil  = errors.New("transport is nil")
	errTableNil      = errors.New("endpoint table is nil")
	errClassifierNil = errors.New("error classifier is nil")
	errBaseURLEmpty  = errors.New("base url is empty")
)

// Credentials holds the API authentication material. The secret never leaves
// the signer; it is used to key the HMAC and nothing else.
type Credentials struct {
	Key        string
	Secret     string
	Passphrase string
}

// IsComplete reports whether key and secret are both set. Passphrase
// requirements vary by exchange and are enforced by its signer.
func (c *Credentials) IsComplete() bool {
	return c.Key != "" && c.Secret != ""
}

// Config is the immutable construction-time configuration of a client.
// Sandbox mode selects the venue's parallel test product namespace; it is a
// constructor decision, never a runtime toggle.
type Config struct {
	Credentials Credentials
	BaseURL     string
	Sandbox     bool
	Verbose     bool
	Transport   request.Transport
	Logger      *zap.Logger
}

// Signer builds the authentication material for one request following the
// venue's signing convention. Implementations receive the pre-resolved path
// and canonical query and return the auth headers plus the possibly-extended
// query. The signature input string layout is venue configuration; the
// protocol steps are uniform.
type Signer interface {
	Sign(creds *Credentials, a asset.Item, method, path string, query url.Values, body []byte, timestamp time.Time) (headers map[string]string, signedQuery url.Values, err error)
}

// ResponseEnvelope describes where a venue reports its native status code
// and message, and which codes indicate success
type ResponseEnvelope struct {
	CodeKeys     []string
	MessageKeys  []string
	SuccessCodes []string
}

// Base is the generic exchange client composed by adapter packages
type Base struct {
	name        string
	baseURL     string
	creds       Credentials
	sandbox     bool
	table       *endpoint.Table
	signer      Signer
	transport   request.Transport
	classifier  *errs.Classifier
	envelope    ResponseEnvelope
	success     map[string]struct{}
	clockOffset atomic.Int64
	log         *zap.Logger
}

// NewBase validates and assembles a client core
func NewBase(name string, cfg Config, table *endpoint.Table, signer Signer, classifier *errs.Classifier, envelope ResponseEnvelope) (*Base, error) {
	if cfg.Transport == nil {
		return nil, errTransportNil
	}
	if table == nil {
		return nil, errTableNil
	}
	if classifier == nil {
		return nil, errClassifierNil
	}
	if cfg.BaseURL == "" {
		return nil, errBaseURLEmpty
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Base{
		name:       name,
		baseURL:    cfg.BaseURL,
		creds:      cfg.Credentials,
		sandbox:    cfg.Sandbox,
		table:      table,
		signer:     signer,
		transport:  cfg.Transport,
		classifier: classifier,
		envelope:   envelope,
		success:    make(map[string]struct{}, len(envelope.SuccessCodes)),
		log:        logger,
	}
	for _, c := range envelope.SuccessCodes {
		b.success[c] = struct{}{}
	}
	return b, nil
}

// Name returns the exchange name
func (b *Base) Name() string { return b.name }

// Sandbox reports whether the client targets the venue's test namespace
func (b *Base) Sandbox() bool { return b.sandbox }

// Supports reports whether an operation is registered for a market type
func (b *Base) Supports(op endpoint.Operation, a asset.Item) bool {
	return b.table.Supports(op, a)
}

// Operations enumerates the client's registered capability set
func (b *Base) Operations() []endpoint.Key {
	return b.table.Operations()
}

// GetCredentials returns the configured credentials, failing fast before any
// network call when they are incomplete
func (b *Base) GetCredentials(operation string) (*Credentials, error) {
	if !b.creds.IsComplete() {
		return nil, errs.New(b.name, operation, errs.ErrAuthentication, "",
			"apiKey and secret must be configured")
	}
	return &b.creds, nil
}

// SetClockOffset caches the client/server clock delta applied to signing
// timestamps. Written once per session by SyncClock, read by every
// authenticated request.
func (b *Base) SetClockOffset(offset time.Duration) {
	b.clockOffset.Store(int64(offset))
}

// SyncClock derives and caches the clock offset from an authoritative server
// timestamp
func (b *Base) SyncClock(serverTime time.Time) {
	b.clockOffset.Store(int64(time.Until(serverTime)))
}

// Now returns the current time adjusted by the cached server clock offset
func (b *Base) Now() time.Time {
	return time.Now().Add(time.Duration(b.clockOffset.Load()))
}

// SendRequest resolves, signs, executes and decodes one logical operation.
// pathParams fill {placeholder} path segments; query carries GET parameters;
// body is JSON-marshalled for write verbs. On an indicated failure the
// classified canonical error is returned and result is left untouched.
func (b *Base) SendRequest(ctx context.Context, op endpoint.Operation, a asset.Item, pathParams map[string]string, query url.Values, body, result any) error {
	e, err := b.table.Resolve(op, a)
	if err != nil {
		return err
	}
	path, err := endpoint.SubstitutePath(e.Path, pathParams)
	if err != nil {
		return errs.New(b.name, string(op), errs.ErrArgumentsRequired, "", err.Error())
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: marshalling body: %w", b.name, op, err)
		}
	}

	headers := map[string]string{"Content-Type": "application/json"}
	if e.Auth {
		creds, err := b.GetCredentials(string(op))
		if err != nil {
			return err
		}
		signed, signedQuery, err := b.signer.Sign(creds, a, e.Method, path, query, payload, b.Now())
		if err != nil {
			return err
		}
		for k, v := range signed {
			headers[k] = v
		}
		query = signedQuery
	}

	// Endpoint paths may be absolute when a venue splits product lines
	// across hosts
	target := b.baseURL + path
	if strings.HasPrefix(path, "http") {
		target = path
	}

	resp, err := b.transport.Execute(ctx, &request.Request{
		Method:  e.Method,
		URL:     common.EncodeURLValues(target, query),
		Headers: headers,
		Body:    payload,
		Weight:  e.Weight,
	})
	if err != nil {
		return errs.New(b.name, string(op), errs.ErrExchangeNotAvailable, "", err.Error())
	}

	code, message := errs.Sniff(resp.Body, b.envelope.CodeKeys, b.envelope.MessageKeys)
	if b.failureIndicated(resp.StatusCode, code) {
		return b.classifier.Classify(string(op), code, message, resp.Body)
	}

	if result == nil {
		return nil
	}
	if err := request.DecodeJSON(resp.Body, result); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", b.name, op, err)
	}
	return nil
}

func (b *Base) failureIndicated(status int, code string) bool {
	if status >= 400 {
		return true
	}
	if code == "" || len(b.success) == 0 {
		return false
	}
	_, ok := b.success[code]
	return !ok
}
