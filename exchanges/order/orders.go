// Package order defines the canonical order shape produced by exchange
// adapters along with side and status canonicalization
package order

import (
	"strings"
	"time"

	"github.com/tradekit-io/unified/currency"
)

// Side is the canonical order side
type Side string

// Canonical and exchange-compound order sides. Derivative venues report
// position-direction compound sides which canonicalize to buy or sell.
const (
	Buy        Side = "buy"
	Sell       Side = "sell"
	OpenLong   Side = "open_long"
	OpenShort  Side = "open_short"
	CloseLong  Side = "close_long"
	CloseShort Side = "close_short"
)

// Status is the canonical order state. Open transitions to exactly one of
// Closed or Canceled, both terminal.
type Status string

// Canonical order statuses
const (
	Open     Status = "open"
	Closed   Status = "closed"
	Canceled Status = "canceled"
)

// Fee holds a fee amount in a given currency; Cost is a decimal string,
// sign-normalized to positive
type Fee struct {
	Currency currency.Code
	Cost     string
}

// Detail is the canonical, exchange-agnostic order representation. Monetary
// fields are decimal strings; empty means the exchange did not report the
// field and it could not be derived.
type Detail struct {
	ID            string
	ClientOrderID string
	Symbol        string
	Type          string
	Side          Side
	Price         string
	TriggerPrice  string
	Average       string
	Amount        string
	Filled        string
	Remaining     string
	Cost          string
	Status        Status
	Timestamp     time.Time
	LastUpdated   time.Time
	Fee           Fee
	Info          map[string]any
}

// String implements the stringer interface
func (s Side) String() string { return string(s) }

// String implements the stringer interface
func (s Status) String() string { return string(s) }

// CanonicalSide maps an exchange side string onto buy or sell. Opening a long
// or closing a short is a buy; opening a short or closing a long is a sell.
// Already-canonical sides map to themselves and unrecognised strings pass
// through unchanged so undocumented exchange additions surface in the result
// rather than breaking the parse.
func CanonicalSide(side string) Side {
	switch Side(strings.ToLower(side)) {
	case Buy, OpenLong, CloseShort:
		return Buy
	case Sell, OpenShort, CloseLong:
		return Sell
	}
	return Side(side)
}

// CanonicalStatus resolves an exchange status string against a per-exchange
// mapping table. Unmapped statuses pass through unchanged; the mapping must
// be total over the exchange's documented statuses, passthrough exists for
// the undocumented ones.
func CanonicalStatus(statuses map[string]Status, native string) Status {
	if s, ok := statuses[native]; ok {
		return s
	}
	return Status(native)
}
