package ledger

import (
	"fmt"
	"strings"
)

// Kind identifies a rule violation. Kinds are values, not error types, so
// callers can match on them without unwrapping chains.
type Kind string

const (
	KindInvalidAmount          Kind = "InvalidAmount"
	KindAccountNotActive       Kind = "AccountNotActive"
	KindLimitExceeded          Kind = "LimitExceeded"
	KindInsufficientFunds      Kind = "InsufficientFunds"
	KindMinimumBalance         Kind = "MinimumBalanceViolation"
	KindMaxBalanceExceeded     Kind = "MaxBalanceExceeded"
	KindCurrencyMismatch       Kind = "CurrencyMismatch"
	KindSameAccountTransfer    Kind = "SameAccountTransfer"
	KindStaleSnapshot          Kind = "StaleSnapshot"
	KindPartialTransferFailure Kind = "PartialTransferFailure"
)

// Limit names which limit a KindLimitExceeded reason refers to.
type Limit string

const (
	LimitMinDeposit          Limit = "MinDeposit"
	LimitMaxDeposit          Limit = "MaxDeposit"
	LimitMinWithdrawalAmount Limit = "MinWithdrawalAmount"
	LimitMaxWithdrawalAmount Limit = "MaxWithdrawalAmount"
	LimitDailyDeposit        Limit = "DailyDepositLimit"
	LimitDailyWithdrawal     Limit = "DailyWithdrawalLimit"
	LimitMonthlyWithdrawal   Limit = "MonthlyWithdrawalLimit"
)

// Reason is one violated rule. Detail distinguishes the account involved
// when a transfer check applies to the destination side.
type Reason struct {
	Kind   Kind
	Limit  Limit
	Detail string
}

func (r Reason) String() string {
	s := string(r.Kind)
	if r.Limit != "" {
		s += "(" + string(r.Limit) + ")"
	}
	if r.Detail != "" {
		s += ": " + r.Detail
	}
	return s
}

// Rejection carries every violated rule in the fixed evaluation order, so a
// caller can render the complete list at once. It is always recoverable.
type Rejection struct {
	Reasons []Reason
}

func (r *Rejection) Error() string {
	parts := make([]string, 0, len(r.Reasons))
	for _, reason := range r.Reasons {
		parts = append(parts, reason.String())
	}
	return "transaction rejected: " + strings.Join(parts, "; ")
}

// Has reports whether the rejection contains a reason of the given kind.
func (r *Rejection) Has(kind Kind) bool {
	for _, reason := range r.Reasons {
		if reason.Kind == kind {
			return true
		}
	}
	return false
}

// CommitError is returned when the engine aborts a mutation. Account state
// is unchanged when it is returned; for a transfer that failed after the
// source debit was attempted, FailedTransaction holds the rolled-back
// record (Status Failed) for the audit log.
type CommitError struct {
	Kind              Kind
	Limit             Limit
	FailedTransaction *Transaction
	msg               string
}

// NewCommitError builds a CommitError for callers outside the engine,
// e.g. the persistence layer surfacing an optimistic-concurrency conflict
// as StaleSnapshot.
func NewCommitError(kind Kind, format string, args ...any) *CommitError {
	return &CommitError{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

func (e *CommitError) Error() string {
	if e.msg != "" {
		return fmt.Sprintf("commit aborted: %s: %s", e.Kind, e.msg)
	}
	return fmt.Sprintf("commit aborted: %s", e.Kind)
}
