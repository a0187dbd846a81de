// Package errs defines the canonical error taxonomy shared by all exchange
// adapters and the classifier that maps exchange-native failures onto it
package errs

import (
	"errors"
	"fmt"
)

// Canonical error kinds. Adapters never surface raw exchange failures; every
// exchange-reported error is classified as exactly one of these sentinels so
// callers can branch with errors.Is regardless of venue.
var (
	ErrAuthentication       = errors.New("authentication error")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrInvalidNonce         = errors.New("invalid nonce")
	ErrBadRequest           = errors.New("bad request")
	ErrBadSymbol            = errors.New("bad symbol")
	ErrInvalidOrder         = errors.New("invalid order")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrOrderNotFound        = errors.New("order not found")
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrDDoSProtection       = errors.New("ddos protection triggered")
	ErrRequestTimeout       = errors.New("request timed out")
	ErrExchangeNotAvailable = errors.New("exchange not available")
	ErrOnMaintenance        = errors.New("exchange on maintenance")
	ErrAccountSuspended     = errors.New("account suspended")
	ErrArgumentsRequired    = errors.New("arguments required")
	ErrNotSupported         = errors.New("not supported")
	ErrCancelPending        = errors.New("cancel pending")
	ErrInvalidAddress       = errors.New("invalid address")
	ErrExchange             = errors.New("exchange error")
)

// Error carries a classified exchange failure along with the context needed
// to distinguish a malformed request from a business rejection from an outage
type Error struct {
	Exchange  string
	Operation string
	Code      string
	Message   string
	Body      string
	kind      error
}

// New returns a classified error for the given exchange and operation
func New(exchange, operation string, kind error, code, message string) *Error {
	if kind == nil {
		kind = ErrExchange
	}
	return &Error{
		Exchange:  exchange,
		Operation: operation,
		Code:      code,
		Message:   message,
		kind:      kind,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	s := e.Exchange
	if e.Operation != "" {
		s += " " + e.Operation
	}
	s = fmt.Sprintf("%s: %v", s, e.kind)
	if e.Code != "" {
		s += fmt.Sprintf(" code: %s", e.Code)
	}
	if e.Message != "" {
		s += fmt.Sprintf(" message: %s", e.Message)
	}
	return s
}

// Unwrap exposes the canonical kind for errors.Is
func (e *Error) Unwrap() error { return e.kind }

// Kind returns the canonical classification sentinel
func (e *Error) Kind() error { return e.kind }
