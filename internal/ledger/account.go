package ledger

import (
	"fmt"
	"strings"
	"time"
)

type Currency string

const (
	CurrencyHTG Currency = "HTG"
	CurrencyUSD Currency = "USD"
)

// ParseCurrency normalizes a currency code coming from outside the core.
// Upstream data mixes numeric enum values and textual codes.
func ParseCurrency(raw string) (Currency, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "0", "HTG":
		return CurrencyHTG, nil
	case "1", "USD":
		return CurrencyUSD, nil
	default:
		return "", fmt.Errorf("unknown currency code '%s'", raw)
	}
}

type AccountStatus string

const (
	StatusActive    AccountStatus = "ACTIVE"
	StatusInactive  AccountStatus = "INACTIVE"
	StatusSuspended AccountStatus = "SUSPENDED"
	StatusClosed    AccountStatus = "CLOSED"
)

// Limits are the per-account business limits, in centimes. A zero value
// means the limit is not set and is not enforced.
type Limits struct {
	DailyWithdrawal     int64
	DailyDeposit        int64
	MonthlyWithdrawal   int64
	MaxBalance          int64
	MinWithdrawalAmount int64
	MaxWithdrawalAmount int64
}

// Account is the balance/limit record for one savings account. All amounts
// are int64 centimes; Balance is the authoritative total and
// AvailableBalance is Balance minus holds (holds always <= Balance).
//
// Version increments on every committed mutation. A commit applied against
// a snapshot whose Version no longer matches the authoritative record is a
// stale commit and must be rejected.
type Account struct {
	ID               string
	AccountNumber    string
	CustomerID       string
	Currency         Currency
	Balance          int64
	AvailableBalance int64
	MinimumBalance   int64
	Status           AccountStatus
	Limits           Limits
	Version          int64

	OpeningDate       time.Time
	LastTransactionAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	ClosedAt      *time.Time
	ClosedBy      string
	ClosureReason string
}

// Clone returns a deep copy. The engine mutates copies so a failed commit
// never leaves a half-updated snapshot visible to the caller.
func (a *Account) Clone() *Account {
	c := *a
	if a.LastTransactionAt != nil {
		t := *a.LastTransactionAt
		c.LastTransactionAt = &t
	}
	if a.ClosedAt != nil {
		t := *a.ClosedAt
		c.ClosedAt = &t
	}
	return &c
}
