// Package stats derives point-in-time statistics from the transaction log
// and account snapshots. It is read-only, recomputes everything from its
// inputs on every call, and never fails on a malformed record: unknown
// type/status codes pass through as-is so statistics stay available even
// with partially inconsistent upstream data.
package stats

import (
	"strings"

	"github.com/tmervil/sere/internal/ledger"
)

// Canonical transaction classes. Upstream systems encode types both as
// enum ordinals ("0".."4") and as labels; everything funnels through
// NormalizeType before the aggregator branches on it.
const (
	ClassDeposit        = "Deposit"
	ClassWithdrawal     = "Withdrawal"
	ClassInterest       = "Interest"
	ClassOpeningDeposit = "OpeningDeposit"
)

// NormalizeType maps a raw transaction type code to a canonical class.
// Unknown codes are returned verbatim rather than rejected.
func NormalizeType(raw string) string {
	s := strings.TrimSpace(raw)
	switch s {
	case "0":
		return ClassDeposit
	case "1":
		return ClassWithdrawal
	case "2":
		return ClassInterest
	case "3", "4":
		return ClassOpeningDeposit
	}
	switch strings.ToLower(strings.ReplaceAll(s, " ", "")) {
	case "deposit":
		return ClassDeposit
	case "withdrawal":
		return ClassWithdrawal
	case "interest":
		return ClassInterest
	case "openingdeposit", "initialdeposit":
		return ClassOpeningDeposit
	}
	return s
}

// NormalizeStatus maps a raw transaction status code to its canonical
// label, tolerating ordinals and casing variants.
func NormalizeStatus(raw string) string {
	s := strings.TrimSpace(strings.ToUpper(raw))
	switch s {
	case "0", "PENDING":
		return string(ledger.TxPending)
	case "1", "PROCESSING", "IN_PROGRESS":
		return string(ledger.TxProcessing)
	case "2", "COMPLETED":
		return string(ledger.TxCompleted)
	case "3", "CANCELLED", "CANCELED":
		return string(ledger.TxCancelled)
	case "4", "FAILED", "ERROR":
		return string(ledger.TxFailed)
	}
	if s == "" {
		return ""
	}
	return s[:1] + strings.ToLower(s[1:])
}

// isDeposit reports whether a class counts as a deposit. Opening deposits
// are folded into deposits everywhere the statistics care.
func isDeposit(class string) bool {
	return class == ClassDeposit || class == ClassOpeningDeposit
}

func isWithdrawal(class string) bool {
	return class == ClassWithdrawal
}
