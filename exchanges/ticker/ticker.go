// Package ticker defines the canonical ticker snapshot shape
package ticker

import (
	"time"

	"github.com/tradekit-io/unified/precise"
)

// Price is the canonical, exchange-agnostic ticker snapshot. Monetary fields
// are decimal strings; empty means not reported by the venue.
type Price struct {
	Symbol      string
	Timestamp   time.Time
	High        string
	Low         string
	Open        string
	Close       string
	Last        string
	Bid         string
	BidVolume   string
	Ask         string
	AskVolume   string
	Change      string
	Percentage  string
	BaseVolume  string
	QuoteVolume string
	Info        map[string]any
}

// DeriveChange fills Change and Percentage from Open and Last when the venue
// omits them. Percentage is expressed x100 of the raw fractional change.
func (p *Price) DeriveChange() error {
	if p.Open == "" || p.Last == "" {
		return nil
	}
	if p.Change == "" {
		change, err := precise.StringSub(p.Last, p.Open)
		if err != nil {
			return err
		}
		p.Change = change
	}
	if p.Percentage == "" {
		frac, err := precise.StringDiv(p.Change, p.Open, 8)
		if err != nil {
			return err
		}
		pct, err := precise.StringMul(frac, "100")
		if err != nil {
			return err
		}
		p.Percentage = pct
	}
	return nil
}
