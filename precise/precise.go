// Package precise implements arbitrary-precision arithmetic on base-10
// string-encoded numbers. Prices, amounts and fees cross the wire as decimal
// strings; every derivation on them routes through this package so binary
// floating point never touches a monetary value.
package precise

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNumeric is the parent classification for malformed numeric input and
// undefined operations such as division by zero
var ErrNumeric = errors.New("numeric error")

// defaultDivisionPrecision matches decimal places retained when dividing
// without an explicit precision
const defaultDivisionPrecision = 18

func parse(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: empty numeric string", ErrNumeric)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrNumeric, err)
	}
	return d, nil
}

// StringAdd adds two decimal strings
func StringAdd(a, b string) (string, error) {
	da, err := parse(a)
	if err != nil {
		return "", err
	}
	db, err := parse(b)
	if err != nil {
		return "", err
	}
	return da.Add(db).String(), nil
}

// StringSub subtracts b from a
func StringSub(a, b string) (string, error) {
	da, err := parse(a)
	if err != nil {
		return "", err
	}
	db, err := parse(b)
	if err != nil {
		return "", err
	}
	return da.Sub(db).String(), nil
}

// StringMul multiplies two decimal strings
func StringMul(a, b string) (string, error) {
	da, err := parse(a)
	if err != nil {
		return "", err
	}
	db, err := parse(b)
	if err != nil {
		return "", err
	}
	return da.Mul(db).String(), nil
}

// StringDiv divides a by b. An optional precision limits the quotient to that
// many decimal places, rounding half away from zero; when omitted the
// quotient is kept to eighteen places.
func StringDiv(a, b string, precision ...int32) (string, error) {
	da, err := parse(a)
	if err != nil {
		return "", err
	}
	db, err := parse(b)
	if err != nil {
		return "", err
	}
	if db.IsZero() {
		return "", fmt.Errorf("%w: division by zero", ErrNumeric)
	}
	places := int32(defaultDivisionPrecision)
	if len(precision) > 0 {
		places = precision[0]
	}
	return da.DivRound(db, places).String(), nil
}

// StringNeg negates a decimal string
func StringNeg(a string) (string, error) {
	da, err := parse(a)
	if err != nil {
		return "", err
	}
	return da.Neg().String(), nil
}

// StringAbs returns the absolute value of a decimal string
func StringAbs(a string) (string, error) {
	da, err := parse(a)
	if err != nil {
		return "", err
	}
	return da.Abs().String(), nil
}

// StringCmp compares two decimal strings, returning -1, 0 or 1
func StringCmp(a, b string) (int, error) {
	da, err := parse(a)
	if err != nil {
		return 0, err
	}
	db, err := parse(b)
	if err != nil {
		return 0, err
	}
	return da.Cmp(db), nil
}

// StringEq reports a == b numerically; malformed input compares unequal
func StringEq(a, b string) bool {
	c, err := StringCmp(a, b)
	return err == nil && c == 0
}

// StringLt reports a < b numerically
func StringLt(a, b string) bool {
	c, err := StringCmp(a, b)
	return err == nil && c < 0
}

// StringGt reports a > b numerically
func StringGt(a, b string) bool {
	c, err := StringCmp(a, b)
	return err == nil && c > 0
}

// StringMax returns the numerically larger of two decimal strings
func StringMax(a, b string) (string, error) {
	c, err := StringCmp(a, b)
	if err != nil {
		return "", err
	}
	if c >= 0 {
		return a, nil
	}
	return b, nil
}

// StringMin returns the numerically smaller of two decimal strings
func StringMin(a, b string) (string, error) {
	c, err := StringCmp(a, b)
	if err != nil {
		return "", err
	}
	if c <= 0 {
		return a, nil
	}
	return b, nil
}
