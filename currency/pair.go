package currency

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Pair identifies a market in exchange-agnostic terms. Settle is set for
// contract markets only; Expiry is set for dated futures only.
type Pair struct {
	Base   Code
	Quote  Code
	Settle Code
	Expiry time.Time
}

// NewPair returns a spot pair
func NewPair(base, quote Code) Pair {
	return Pair{Base: base, Quote: quote}
}

// NewSettledPair returns a perpetual contract pair
func NewSettledPair(base, quote, settle Code) Pair {
	return Pair{Base: base, Quote: quote, Settle: settle}
}

// IsEmpty returns true if the pair is unset
func (p Pair) IsEmpty() bool {
	return p.Base.IsEmpty() && p.Quote.IsEmpty()
}

// Symbol renders the canonical unified symbol:
//
//	BASE/QUOTE                spot
//	BASE/QUOTE:SETTLE         perpetual swap
//	BASE/QUOTE:SETTLE-YYMMDD  dated future
func (p Pair) Symbol() string {
	s := p.Base.String() + "/" + p.Quote.String()
	if p.Settle.IsEmpty() {
		return s
	}
	s += ":" + p.Settle.String()
	if !p.Expiry.IsZero() {
		s += "-" + p.Expiry.UTC().Format("060102")
	}
	return s
}

// ParseSymbol parses a canonical unified symbol back into a Pair
func ParseSymbol(symbol string) (Pair, error) {
	if symbol == "" {
		return Pair{}, ErrSymbolStringEmpty
	}
	base, rest, found := strings.Cut(symbol, "/")
	if !found || base == "" || rest == "" {
		return Pair{}, fmt.Errorf("cannot parse symbol %q: missing quote delimiter", symbol)
	}
	quote, settlePart, hasSettle := strings.Cut(rest, ":")
	if quote == "" {
		return Pair{}, fmt.Errorf("cannot parse symbol %q: empty quote", symbol)
	}
	p := Pair{Base: NewCode(base), Quote: NewCode(quote)}
	if !hasSettle {
		return p, nil
	}
	settle, expiry, hasExpiry := strings.Cut(settlePart, "-")
	if settle == "" {
		return Pair{}, fmt.Errorf("cannot parse symbol %q: empty settle", symbol)
	}
	p.Settle = NewCode(settle)
	if hasExpiry {
		t, err := ParseExpiry(expiry)
		if err != nil {
			return Pair{}, fmt.Errorf("cannot parse symbol %q: %w", symbol, err)
		}
		p.Expiry = t
	}
	return p, nil
}

// ParseExpiry converts a YYMMDD expiry substring, as embedded in dated future
// market identifiers, to its UTC midnight timestamp
func ParseExpiry(yymmdd string) (time.Time, error) {
	if len(yymmdd) != 6 {
		return time.Time{}, fmt.Errorf("invalid expiry %q: want YYMMDD", yymmdd)
	}
	if _, err := strconv.Atoi(yymmdd); err != nil {
		return time.Time{}, fmt.Errorf("invalid expiry %q: %w", yymmdd, err)
	}
	t, err := time.Parse("060102", yymmdd)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid expiry %q: %w", yymmdd, err)
	}
	return t.UTC(), nil
}
