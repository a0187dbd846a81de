// Package types holds the loosely-typed JSON scalar wrappers shared by the
// exchange adapter packages. Exchanges interchange numbers as strings, strings
// as numbers and timestamps in any unit they fancy; these types absorb that at
// the unmarshalling boundary so the rest of the codebase stays typed.
package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Time represents a time.Time object that can be unmarshalled from a unix
// timestamp in seconds, milliseconds, microseconds or nanoseconds, quoted or
// not. The unit is inferred from digit length.
type Time time.Time

// UnmarshalJSON deserializes json timestamp information
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	switch s {
	case "null", "0", `""`, `"0"`:
		*t = Time(time.Time{})
		return nil
	}

	if len(s) > 1 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	// Truncate a fractional component; sub-unit resolution is never needed
	if dot := strings.IndexByte(s, '.'); dot != -1 {
		s = s[:dot]
	}

	standard, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("cannot unmarshal %s into Time: %w", string(data), err)
	}

	switch len(s) {
	case 10:
		*t = Time(time.Unix(standard, 0))
	case 13:
		*t = Time(time.UnixMilli(standard))
	case 16:
		*t = Time(time.UnixMicro(standard))
	case 19:
		*t = Time(time.Unix(0, standard))
	default:
		return fmt.Errorf("cannot unmarshal %s into Time: unhandled timestamp length %d", string(data), len(s))
	}
	return nil
}

// Time returns the time.Time representation
func (t Time) Time() time.Time { return time.Time(t) }

// String implements the stringer interface
func (t Time) String() string { return t.Time().String() }

// MarshalJSON serializes the time to json
func (t Time) MarshalJSON() ([]byte, error) {
	return t.Time().MarshalJSON()
}
