// Package fields provides null-tolerant readers over the heterogeneous maps
// produced by decoding exchange JSON. Exchanges rename fields between endpoint
// versions and interchange strings and numbers freely; each reader takes
// candidate keys in precedence order and coerces the first present, non-null
// value to the requested type. Missing keys are never an error; parsing
// favours partial data over hard failure.
package fields

import (
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func lookup(node map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := node[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// String returns the first present value coerced to a string
func String(node map[string]any, keys ...string) (string, bool) {
	v, ok := lookup(node, keys...)
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return "", false
		}
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

// StringOr behaves as String with a caller-supplied default
func StringOr(node map[string]any, def string, keys ...string) string {
	if s, ok := String(node, keys...); ok {
		return s
	}
	return def
}

// Number returns the first present value as a decimal string, preserving the
// source's lexical form where possible. Non-numeric strings yield absent
// rather than an error.
func Number(node map[string]any, keys ...string) (string, bool) {
	v, ok := lookup(node, keys...)
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		if _, err := decimal.NewFromString(t); err != nil {
			return "", false
		}
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", false
}

// NumberOr behaves as Number with a caller-supplied default
func NumberOr(node map[string]any, def string, keys ...string) string {
	if s, ok := Number(node, keys...); ok {
		return s
	}
	return def
}

// Int returns the first present value coerced to an int64
func Int(node map[string]any, keys ...string) (int64, bool) {
	s, ok := Number(node, keys...)
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Tolerate a fractional representation of an integral value
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, false
		}
		return int64(f), true
	}
	return i, true
}

// Float returns the first present value coerced to a float64. Never use the
// result for monetary arithmetic; it exists for display and non-monetary
// scalars such as leverage.
func Float(node map[string]any, keys ...string) (float64, bool) {
	s, ok := Number(node, keys...)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Bool returns the first present value coerced to a bool. Accepts native
// booleans and the string forms "true"/"false" in any case
func Bool(node map[string]any, keys ...string) (bool, bool) {
	v, ok := lookup(node, keys...)
	if !ok {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(t) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// Map returns the first present value that is itself an object
func Map(node map[string]any, keys ...string) (map[string]any, bool) {
	v, ok := lookup(node, keys...)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// Slice returns the first present value that is an array
func Slice(node map[string]any, keys ...string) ([]any, bool) {
	v, ok := lookup(node, keys...)
	if !ok {
		return nil, false
	}
	s, ok := v.([]any)
	return s, ok
}

// TimeMS returns the first present value interpreted as a unix millisecond
// timestamp
func TimeMS(node map[string]any, keys ...string) (time.Time, bool) {
	i, ok := Int(node, keys...)
	if !ok || i == 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(i), true
}
