// Package asset enumerates the market types an exchange adapter can service
package asset

import (
	"errors"
	"fmt"
	"strings"
)

// Item stores the market type
type Item uint32

// Supported market types
const (
	Empty Item = 0
	Spot  Item = 1 << iota
	Margin
	Swap
	Futures
	Option
)

// ErrNotSupported is returned when the supplied market type is not supported
var ErrNotSupported = errors.New("market type not supported")

var supported = []Item{Spot, Margin, Swap, Futures, Option}

// String implements the stringer interface
func (a Item) String() string {
	switch a {
	case Spot:
		return "spot"
	case Margin:
		return "margin"
	case Swap:
		return "swap"
	case Futures:
		return "futures"
	case Option:
		return "option"
	}
	return ""
}

// IsValid returns whether the item is a recognised market type
func (a Item) IsValid() bool {
	for i := range supported {
		if a == supported[i] {
			return true
		}
	}
	return false
}

// IsContract returns whether the item is a derivative contract type
func (a Item) IsContract() bool {
	return a == Swap || a == Futures || a == Option
}

// New parses a market type string
func New(input string) (Item, error) {
	switch strings.ToLower(input) {
	case "spot":
		return Spot, nil
	case "margin":
		return Margin, nil
	case "swap", "perpetual":
		return Swap, nil
	case "futures", "future", "delivery":
		return Futures, nil
	case "option":
		return Option, nil
	}
	return Empty, fmt.Errorf("%w: %q", ErrNotSupported, input)
}
