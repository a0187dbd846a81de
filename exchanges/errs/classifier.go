package errs

import (
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
)

// BroadRule maps a message fragment to a canonical kind. Rules are evaluated
// in declaration order so the table owner controls tie-breaks.
type BroadRule struct {
	Fragment string
	Kind     error
}

// Classifier holds the per-exchange classification tables. Exact maps are
// keyed by the full native message or code; Broad rules substring-match the
// message. All tables are static configuration injected at construction.
type Classifier struct {
	Exchange string
	Exact    map[string]error
	Broad    []BroadRule
}

// Classify resolves an exchange-native failure to a canonical error.
// Precedence: exact message match, then exact code match, then broad message
// fragment, then generic ErrExchange. A failure is never swallowed; callers
// invoke Classify only once non-success is indicated, and the result is
// always non-nil.
func (c *Classifier) Classify(operation, code, message string, body []byte) *Error {
	if message != "" {
		if kind, ok := c.Exact[message]; ok {
			return New(c.Exchange, operation, kind, code, message)
		}
	}
	if code != "" {
		if kind, ok := c.Exact[code]; ok {
			return New(c.Exchange, operation, kind, code, message)
		}
	}
	if message != "" {
		lower := strings.ToLower(message)
		for i := range c.Broad {
			if strings.Contains(lower, strings.ToLower(c.Broad[i].Fragment)) {
				return New(c.Exchange, operation, c.Broad[i].Kind, code, message)
			}
		}
	}
	e := New(c.Exchange, operation, ErrExchange, code, message)
	e.Body = string(body)
	return e
}

// Sniff pulls the native status code and message out of a raw response body
// without a full decode. Key candidates cover the field names used across
// supported exchanges; absent keys yield empty strings.
func Sniff(body []byte, codeKeys, messageKeys []string) (code, message string) {
	for _, k := range codeKeys {
		if v, err := jsonparser.GetString(body, k); err == nil && v != "" {
			code = v
			break
		}
		if v, err := jsonparser.GetInt(body, k); err == nil {
			code = strconv.FormatInt(v, 10)
			break
		}
	}
	for _, k := range messageKeys {
		if v, err := jsonparser.GetString(body, k); err == nil && v != "" {
			message = v
			break
		}
	}
	return code, message
}
