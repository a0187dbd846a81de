// Package currency defines currency codes, pairs and the canonical symbol
// format shared across exchange adapters
package currency

import (
	"errors"
	"strings"
)

var (
	// ErrCurrencyCodeEmpty is returned when an operation requires a currency
	// code and none was supplied
	ErrCurrencyCodeEmpty = errors.New("currency code is empty")
	// ErrSymbolStringEmpty is returned when an operation requires a symbol
	// and none was supplied
	ErrSymbolStringEmpty = errors.New("symbol string is empty")
)

// Code is an upper-cased currency identifier e.g. BTC
type Code string

// NewCode returns a Code from a raw currency string
func NewCode(s string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(s)))
}

// String implements the stringer interface
func (c Code) String() string { return string(c) }

// IsEmpty returns true if the code is unset
func (c Code) IsEmpty() bool { return c == "" }

// Equal reports case-insensitive equality with a raw string
func (c Code) Equal(s string) bool {
	return strings.EqualFold(string(c), s)
}
