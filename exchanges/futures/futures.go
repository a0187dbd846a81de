// Package futures defines the canonical derivative position and funding rate
// shapes, along with the risk-figure derivations venues omit
package futures

import (
	"errors"
	"fmt"
	"time"

	"github.com/tradekit-io/unified/precise"
)

// PositionSide is the direction of a derivative position
type PositionSide string

// Position directions
const (
	Long  PositionSide = "long"
	Short PositionSide = "short"
)

// MarginMode scopes the collateral backing a position
type MarginMode string

// Margin modes
const (
	Isolated MarginMode = "isolated"
	Cross    MarginMode = "cross"
)

var (
	errInvalidPositionSide = errors.New("invalid position side")
	// ErrInsufficientInputs is returned when a derivation lacks the fields
	// it needs
	ErrInsufficientInputs = errors.New("insufficient inputs for derivation")
)

// Position is the canonical, exchange-agnostic derivative position. Monetary
// fields are decimal strings.
type Position struct {
	Symbol                   string
	Side                     PositionSide
	Contracts                string
	ContractSize             string
	EntryPrice               string
	MarkPrice                string
	Notional                 string
	Leverage                 string
	MarginMode               MarginMode
	Collateral               string
	InitialMargin            string
	InitialMarginPercent     string
	MaintenanceMargin        string
	MaintenanceMarginPercent string
	LiquidationPrice         string
	UnrealizedPnL            string
	UnrealizedPnLPercent     string
	MarginRatio              string
	Hedged                   bool
	Timestamp                time.Time
	Info                     map[string]any
}

// FundingRate is the canonical funding rate snapshot for a perpetual market
type FundingRate struct {
	Symbol              string
	Rate                string
	Timestamp           time.Time
	NextFundingTime     time.Time
	PreviousFundingTime time.Time
	Info                map[string]any
}

// DeriveLiquidationPrice estimates the liquidation price for a position whose
// venue response omits it, from the entry price, collateral, position size,
// leverage, maintenance-margin rate and an assumed taker-fee rate. When
// collateral is unreported it is reconstructed as entry*size/leverage. The
// side-asymmetric subtraction order mirrors the venue's observed behaviour;
// the formula is inferred from sample payloads and remains unverified against
// official documentation, so treat the result as an estimate.
//
// long:  liq = entry - collateral/size + (mmr+fee)*entry
// short: liq = entry + collateral/size - (mmr+fee)*entry
func DeriveLiquidationPrice(side PositionSide, entryPrice, collateral, size, leverage, maintMarginRate, takerFeeRate string) (string, error) {
	if entryPrice == "" || size == "" || maintMarginRate == "" || takerFeeRate == "" {
		return "", fmt.Errorf("%w: entry price, size, maintenance margin rate and taker fee required", ErrInsufficientInputs)
	}
	if collateral == "" {
		if leverage == "" {
			return "", fmt.Errorf("%w: collateral or leverage required", ErrInsufficientInputs)
		}
		notional, err := precise.StringMul(entryPrice, size)
		if err != nil {
			return "", err
		}
		collateral, err = precise.StringDiv(notional, leverage)
		if err != nil {
			return "", err
		}
	}
	rate, err := precise.StringAdd(maintMarginRate, takerFeeRate)
	if err != nil {
		return "", err
	}
	adjustment, err := precise.StringMul(rate, entryPrice)
	if err != nil {
		return "", err
	}
	collateralPerUnit, err := precise.StringDiv(collateral, size)
	if err != nil {
		return "", err
	}
	switch side {
	case Long:
		buffer, err := precise.StringSub(entryPrice, collateralPerUnit)
		if err != nil {
			return "", err
		}
		return precise.StringAdd(buffer, adjustment)
	case Short:
		buffer, err := precise.StringAdd(entryPrice, collateralPerUnit)
		if err != nil {
			return "", err
		}
		return precise.StringSub(buffer, adjustment)
	}
	return "", fmt.Errorf("%w: %q", errInvalidPositionSide, side)
}

// DeriveMarginRatio computes maintenanceMargin/collateral, the position's
// distance to liquidation
func DeriveMarginRatio(maintenanceMargin, collateral string) (string, error) {
	if maintenanceMargin == "" || collateral == "" {
		return "", fmt.Errorf("%w: maintenance margin and collateral required", ErrInsufficientInputs)
	}
	return precise.StringDiv(maintenanceMargin, collateral, 4)
}
