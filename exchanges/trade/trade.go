// Package trade defines the canonical trade / fill shape
package trade

import (
	"time"

	"github.com/tradekit-io/unified/exchanges/order"
	"github.com/tradekit-io/unified/precise"
)

// Data is the canonical, exchange-agnostic trade representation. OrderID and
// TakerOrMaker are empty when the venue does not report them.
type Data struct {
	ID           string
	OrderID      string
	Symbol       string
	Type         string
	Side         order.Side
	TakerOrMaker string
	Price        string
	Amount       string
	Cost         string
	Fee          order.Fee
	Timestamp    time.Time
	Info         map[string]any
}

// Normalize derives Cost as price*amount when the venue omits it and
// sign-normalizes the fee cost to positive. Venues report rebates and fees
// with inconsistent signs; the canonical shape always carries magnitude.
func (d *Data) Normalize() error {
	if d.Cost == "" && d.Price != "" && d.Amount != "" {
		cost, err := precise.StringMul(d.Price, d.Amount)
		if err != nil {
			return err
		}
		d.Cost = cost
	}
	if d.Fee.Cost != "" {
		abs, err := precise.StringAbs(d.Fee.Cost)
		if err != nil {
			return err
		}
		d.Fee.Cost = abs
	}
	return nil
}
