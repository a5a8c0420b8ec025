package ledger

// DepositPolicy bounds a single deposit. These are policy constants per
// currency, not account fields; the caller resolves them from config.
type DepositPolicy struct {
	MinDeposit int64
	MaxDeposit int64
}

// PeriodTotals are the cumulative same-type totals already committed for
// the source account in the current calendar day and month. The validator
// performs no I/O; the caller supplies these from the transaction log.
type PeriodTotals struct {
	DailyDeposits      int64
	DailyWithdrawals   int64
	MonthlyWithdrawals int64
}

// ValidationResult is either approved or carries every violated rule.
type ValidationResult struct {
	Reasons []Reason
}

func (r ValidationResult) Approved() bool { return len(r.Reasons) == 0 }

// Rejection converts a failed result into an error. Returns nil when the
// result is approved.
func (r ValidationResult) Rejection() error {
	if r.Approved() {
		return nil
	}
	return &Rejection{Reasons: r.Reasons}
}

// Validate decides whether an intent may proceed against the given account
// snapshots. All rules are evaluated; reasons accumulate in a fixed order
// so identical inputs always produce identical results:
//
//  1. amount must be positive
//  2. source (and destination, for transfers) must be ACTIVE
//  3. amount within type-specific bounds
//  4. debits must keep balance >= minimum and amount <= available
//  5. transfer pair checks: distinct accounts, same currency
//  6. credits must keep balance <= max balance
//  7. period limits (daily/monthly) including this intent's amount
//
// dest is ignored unless intent.Type is TypeTransfer.
func Validate(intent Intent, source *Account, dest *Account, policy DepositPolicy, totals PeriodTotals) ValidationResult {
	var reasons []Reason
	add := func(r Reason) { reasons = append(reasons, r) }

	isTransfer := intent.Type == TypeTransfer
	isDebit := intent.Type == TypeWithdrawal || isTransfer

	// 1. amount
	if intent.Amount <= 0 {
		add(Reason{Kind: KindInvalidAmount})
	}

	// 2. account status
	if source.Status != StatusActive {
		add(Reason{Kind: KindAccountNotActive, Detail: "source account " + source.AccountNumber})
	}
	if isTransfer && dest != nil && dest.Status != StatusActive {
		add(Reason{Kind: KindAccountNotActive, Detail: "destination account " + dest.AccountNumber})
	}

	// 3. per-transaction amount bounds
	switch {
	case intent.Type == TypeDeposit:
		if policy.MinDeposit > 0 && intent.Amount < policy.MinDeposit {
			add(Reason{Kind: KindLimitExceeded, Limit: LimitMinDeposit})
		}
		if policy.MaxDeposit > 0 && intent.Amount > policy.MaxDeposit {
			add(Reason{Kind: KindLimitExceeded, Limit: LimitMaxDeposit})
		}
	case isDebit:
		if source.Limits.MinWithdrawalAmount > 0 && intent.Amount < source.Limits.MinWithdrawalAmount {
			add(Reason{Kind: KindLimitExceeded, Limit: LimitMinWithdrawalAmount})
		}
		if source.Limits.MaxWithdrawalAmount > 0 && intent.Amount > source.Limits.MaxWithdrawalAmount {
			add(Reason{Kind: KindLimitExceeded, Limit: LimitMaxWithdrawalAmount})
		}
	}

	// 4. balance floor and availability on debits
	if isDebit {
		if source.Balance-intent.Amount < source.MinimumBalance {
			add(Reason{Kind: KindMinimumBalance})
		}
		if intent.Amount > source.AvailableBalance {
			add(Reason{Kind: KindInsufficientFunds})
		}
	}

	// 5. transfer pair checks. No balance-floor check on the destination:
	// a credit never violates a floor.
	if isTransfer && dest != nil {
		if source.ID == dest.ID {
			add(Reason{Kind: KindSameAccountTransfer})
		}
		if source.Currency != dest.Currency {
			add(Reason{Kind: KindCurrencyMismatch})
		}
	}

	// 6. balance ceiling on credits
	if intent.Type == TypeDeposit {
		if source.Limits.MaxBalance > 0 && source.Balance+intent.Amount > source.Limits.MaxBalance {
			add(Reason{Kind: KindMaxBalanceExceeded})
		}
	}
	if isTransfer && dest != nil {
		if dest.Limits.MaxBalance > 0 && dest.Balance+intent.Amount > dest.Limits.MaxBalance {
			add(Reason{Kind: KindMaxBalanceExceeded, Detail: "destination account " + dest.AccountNumber})
		}
	}

	// 7. period limits on the source account
	switch {
	case intent.Type == TypeDeposit:
		if source.Limits.DailyDeposit > 0 && totals.DailyDeposits+intent.Amount > source.Limits.DailyDeposit {
			add(Reason{Kind: KindLimitExceeded, Limit: LimitDailyDeposit})
		}
	case isDebit:
		if source.Limits.DailyWithdrawal > 0 && totals.DailyWithdrawals+intent.Amount > source.Limits.DailyWithdrawal {
			add(Reason{Kind: KindLimitExceeded, Limit: LimitDailyWithdrawal})
		}
		if source.Limits.MonthlyWithdrawal > 0 && totals.MonthlyWithdrawals+intent.Amount > source.Limits.MonthlyWithdrawal {
			add(Reason{Kind: KindLimitExceeded, Limit: LimitMonthlyWithdrawal})
		}
	}

	return ValidationResult{Reasons: reasons}
}
