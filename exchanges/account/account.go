// Package account defines the canonical balance, transfer and transaction
// shapes produced by exchange adapters
package account

import (
	"time"

	"github.com/tradekit-io/unified/currency"
	"github.com/tradekit-io/unified/precise"
)

// Balance holds one currency's funds split by availability. All fields are
// decimal strings; Total is always free + used under decimal arithmetic.
type Balance struct {
	Free  string
	Used  string
	Total string
}

// Holdings aggregates balances keyed by canonical currency code
type Holdings struct {
	Exchange string
	Balances map[currency.Code]Balance
	Info     map[string]any
}

// NewBalance derives the total from free and used amounts. Either component
// may be empty, in which case it contributes zero.
func NewBalance(free, used string) (Balance, error) {
	b := Balance{Free: free, Used: used}
	f := free
	if f == "" {
		f = "0"
	}
	u := used
	if u == "" {
		u = "0"
	}
	total, err := precise.StringAdd(f, u)
	if err != nil {
		return Balance{}, err
	}
	b.Total = total
	return b, nil
}

// TransactionStatus is the canonical deposit/withdrawal state
type TransactionStatus string

// Canonical transaction statuses
const (
	TransactionOK       TransactionStatus = "ok"
	TransactionPending  TransactionStatus = "pending"
	TransactionFailed   TransactionStatus = "failed"
	TransactionCanceled TransactionStatus = "canceled"
)

// Transaction is the canonical deposit or withdrawal record
type Transaction struct {
	ID          string
	TxID        string
	Network     string
	Currency    currency.Code
	Amount      string
	Address     string
	AddressFrom string
	AddressTo   string
	Tag         string
	Status      TransactionStatus
	Fee         string
	Timestamp   time.Time
	Updated     time.Time
	Info        map[string]any
}

// Transfer is the canonical internal funds movement between account types.
// FromAccount and ToAccount are canonical account-type names, already
// translated from the venue's native account-type strings.
type Transfer struct {
	ID          string
	Currency    currency.Code
	Amount      string
	FromAccount string
	ToAccount   string
	Status      string
	Timestamp   time.Time
	Info        map[string]any
}
