// Package market defines the canonical market and currency metadata shapes
package market

import (
	"errors"
	"fmt"
	"time"

	"github.com/tradekit-io/unified/currency"
	"github.com/tradekit-io/unified/exchanges/asset"
	"github.com/tradekit-io/unified/precise"
)

var (
	// ErrContractSizeUnset is returned when a contract market is built
	// without a contract size
	ErrContractSizeUnset = errors.New("contract markets require a contract size")
	// ErrSpotSettled is returned when a spot market carries a settle
	// currency
	ErrSpotSettled = errors.New("spot markets cannot have a settle currency")
)

// MinMax bounds a market limit; either side may be empty when unreported
type MinMax struct {
	Min string
	Max string
}

// Limits bounds order placement on a market
type Limits struct {
	Amount   MinMax
	Price    MinMax
	Cost     MinMax
	Leverage MinMax
}

// Precision holds the decimal step sizes for a market. Both values are
// normalized tick sizes, never digit counts.
type Precision struct {
	Amount string
	Price  string
}

// Market is the canonical, exchange-agnostic market description
type Market struct {
	ID           string
	Symbol       string
	Base         currency.Code
	Quote        currency.Code
	Settle       currency.Code
	Type         asset.Item
	Spot         bool
	Margin       bool
	Swap         bool
	Future       bool
	Option       bool
	Contract     bool
	Linear       bool
	Inverse      bool
	Active       bool
	ContractSize string
	Expiry       time.Time
	Maker        string
	Taker        string
	Precision    Precision
	Limits       Limits
	Info         map[string]any
}

// Validate enforces the cross-field invariants of the canonical shape
func (m *Market) Validate() error {
	if m.Contract && m.ContractSize == "" {
		return fmt.Errorf("%w: %s", ErrContractSizeUnset, m.Symbol)
	}
	if m.Spot && !m.Settle.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrSpotSettled, m.Symbol)
	}
	return nil
}

// NetworkEntry describes one transfer network of a currency. Entries are
// owned exclusively by their Currency and keyed by canonical network code.
type NetworkEntry struct {
	ID       string
	Network  string
	Deposit  bool
	Withdraw bool
	Fee      string
	Limits   MinMax
	Info     map[string]any
}

// Currency is the canonical currency description with per-network sub-entries
type Currency struct {
	Code     currency.Code
	ID       string
	Name     string
	Deposit  bool
	Withdraw bool
	Fee      string
	Networks map[string]NetworkEntry
	Info     map[string]any
}

// StepFromScale converts a count of decimal places into a decimal step size,
// e.g. scale 4 -> "0.0001"
func StepFromScale(scale int64) (string, error) {
	if scale < 0 || scale > 30 {
		return "", fmt.Errorf("%w: scale %d out of range", precise.ErrNumeric, scale)
	}
	if scale == 0 {
		return "1", nil
	}
	return precise.StringDiv("1", "1"+zeros(scale), int32(scale))
}

func zeros(n int64) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}

// ReconcilePrecision normalizes a decimal-place scale and an explicit tick
// size to a single step, taking the coarser of the two. Exchanges report
// precision both ways, sometimes disagreeing on the same market; the coarser
// step is always safe to round to.
func ReconcilePrecision(scale int64, tick string) (string, error) {
	fromScale, err := StepFromScale(scale)
	if err != nil {
		return "", err
	}
	if tick == "" {
		return fromScale, nil
	}
	return precise.StringMax(fromScale, tick)
}
