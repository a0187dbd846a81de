package types

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Number is a decimal value that preserves the exact lexical form the
// exchange sent, whether it arrived as a JSON number or a quoted string.
// Monetary values must stay in this form until they reach decimal arithmetic;
// converting through float64 loses precision.
type Number string

// UnmarshalJSON deserializes a quoted or bare JSON number
func (n *Number) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*n = ""
		return nil
	}
	if len(s) > 1 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		*n = ""
		return nil
	}
	if _, err := decimal.NewFromString(s); err != nil {
		return fmt.Errorf("cannot unmarshal %s into Number: %w", string(data), err)
	}
	*n = Number(s)
	return nil
}

// MarshalJSON serializes the number as a bare JSON number
func (n Number) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("null"), nil
	}
	return []byte(n), nil
}

// String implements the stringer interface
func (n Number) String() string { return string(n) }

// Decimal converts to a decimal.Decimal, empty values yield zero
func (n Number) Decimal() decimal.Decimal {
	if n == "" {
		return decimal.Decimal{}
	}
	d, err := decimal.NewFromString(string(n))
	if err != nil {
		return decimal.Decimal{}
	}
	return d
}

// Float64 converts to a float64 for display purposes only
func (n Number) Float64() float64 {
	f, _ := strconv.ParseFloat(string(n), 64)
	return f
}

// IsZero reports whether the number is unset or exactly zero
func (n Number) IsZero() bool {
	return n == "" || n.Decimal().IsZero()
}
