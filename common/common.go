// Package common holds request helpers shared across exchange adapter packages
package common

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

var (
	// ErrDateUnset is returned when a start or end date is a zero value
	ErrDateUnset = errors.New("start or end date unset")
	// ErrStartAfterEnd is returned when a start date is after an end date
	ErrStartAfterEnd = errors.New("start date after end date")
	// ErrStartEqualsEnd is returned when a start date equals an end date
	ErrStartEqualsEnd = errors.New("start date equals end date")
	// ErrStartAfterTimeNow is returned when a start date is in the future
	ErrStartAfterTimeNow = errors.New("start date is after current time")
)

// EncodeURLValues appends and encodes url.Values to a url string; key order in
// the encoded output is deterministic (sorted by key)
func EncodeURLValues(urlPath string, values url.Values) string {
	u := urlPath
	if len(values) > 0 {
		u += "?" + values.Encode()
	}
	return u
}

// StartEndTimeCheck provides some basic checks which occur across codebase
// usage of start and end date ranges
func StartEndTimeCheck(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w start: %v end: %v", ErrDateUnset, start, end)
	}
	if start.After(end) {
		return ErrStartAfterEnd
	}
	if start.Equal(end) {
		return ErrStartEqualsEnd
	}
	if start.After(time.Now()) {
		return ErrStartAfterTimeNow
	}
	return nil
}
