// Package endpoint resolves logical operations to concrete exchange
// endpoints. The mapping from (operation, market type) to verb, path template
// and rate weight is static per-exchange configuration registered once at
// client construction; unsupported combinations fail at lookup with a
// NotSupported classification rather than a silent no-op.
package endpoint

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tradekit-io/unified/exchanges/asset"
	"github.com/tradekit-io/unified/exchanges/errs"
)

// Operation names a logical unified API call
type Operation string

// Unified operations serviced by adapters
const (
	OpSyncTime                Operation = "SyncTime"
	OpFetchMarkets            Operation = "FetchMarkets"
	OpFetchCurrencies         Operation = "FetchCurrencies"
	OpFetchTicker             Operation = "FetchTicker"
	OpFetchTickers            Operation = "FetchTickers"
	OpFetchTrades             Operation = "FetchTrades"
	OpCreateOrder             Operation = "CreateOrder"
	OpCancelOrder             Operation = "CancelOrder"
	OpFetchOrder              Operation = "FetchOrder"
	OpFetchOpenOrders         Operation = "FetchOpenOrders"
	OpFetchMyTrades           Operation = "FetchMyTrades"
	OpFetchBalance            Operation = "FetchBalance"
	OpFetchPositions          Operation = "FetchPositions"
	OpFetchFundingRate        Operation = "FetchFundingRate"
	OpFetchFundingRateHistory Operation = "FetchFundingRateHistory"
	OpTransfer                Operation = "Transfer"
	OpFetchDeposits           Operation = "FetchDeposits"
	OpFetchWithdrawals        Operation = "FetchWithdrawals"
	OpWithdraw                Operation = "Withdraw"
)

// Endpoint is a concrete verb, path template and rate weight triple. Path
// templates may contain {placeholder} segments substituted from request
// parameters. Auth marks endpoints requiring a signed request.
type Endpoint struct {
	Method string
	Path   string
	Weight int
	Auth   bool
}

// Key identifies a registration
type Key struct {
	Op    Operation
	Asset asset.Item
}

var (
	errEmptyEndpoint    = errors.New("endpoint method and path must be set")
	errMissingPathParam = errors.New("missing path parameter")
)

// Table maps registered operations to endpoints. Construct via NewTable; the
// table is immutable afterwards and safe for concurrent lookups.
type Table struct {
	name string
	m    map[Key]Endpoint
}

// NewTable validates and freezes an endpoint registration set
func NewTable(name string, registrations map[Key]Endpoint) (*Table, error) {
	m := make(map[Key]Endpoint, len(registrations))
	for k, e := range registrations {
		if e.Method == "" || e.Path == "" {
			return nil, fmt.Errorf("%w: %s %s/%s", errEmptyEndpoint, name, k.Op, k.Asset)
		}
		if !k.Asset.IsValid() {
			return nil, fmt.Errorf("%w: %q registering %s", asset.ErrNotSupported, k.Asset, k.Op)
		}
		m[k] = e
	}
	return &Table{name: name, m: m}, nil
}

// Resolve returns the endpoint registered for the operation and market type
func (t *Table) Resolve(op Operation, a asset.Item) (Endpoint, error) {
	e, ok := t.m[Key{Op: op, Asset: a}]
	if !ok {
		return Endpoint{}, errs.New(t.name, string(op), errs.ErrNotSupported, "",
			fmt.Sprintf("no %s endpoint for market type %s", op, a))
	}
	return e, nil
}

// Supports reports whether the operation is registered for the market type
func (t *Table) Supports(op Operation, a asset.Item) bool {
	_, ok := t.m[Key{Op: op, Asset: a}]
	return ok
}

// Operations enumerates registered operation/market-type pairs in a stable
// order, for capability discovery
func (t *Table) Operations() []Key {
	keys := make([]Key, 0, len(t.m))
	for k := range t.m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Op != keys[j].Op {
			return keys[i].Op < keys[j].Op
		}
		return keys[i].Asset < keys[j].Asset
	})
	return keys
}

// SubstitutePath replaces {placeholder} segments with values from params,
// removing consumed entries so the remainder can be sent as query or body
func SubstitutePath(path string, params map[string]string) (string, error) {
	for {
		start := strings.IndexByte(path, '{')
		if start == -1 {
			return path, nil
		}
		end := strings.IndexByte(path[start:], '}')
		if end == -1 {
			return "", fmt.Errorf("unterminated placeholder in path %q", path)
		}
		name := path[start+1 : start+end]
		v, ok := params[name]
		if !ok || v == "" {
			return "", fmt.Errorf("%w: %q in path %q", errMissingPathParam, name, path)
		}
		delete(params, name)
		path = path[:start] + v + path[start+end+1:]
	}
}
