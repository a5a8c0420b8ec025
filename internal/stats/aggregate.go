package stats

import (
	"time"

	"github.com/tmervil/sere/internal/ledger"
)

// CurrencyStats is the per-currency slice of the book.
type CurrencyStats struct {
	Accounts   int
	Balance    int64
	Percentage float64
}

// PeriodStats counts completed deposits/withdrawals inside one period.
type PeriodStats struct {
	DepositCount    int
	WithdrawalCount int
	DepositTotal    int64
	WithdrawalTotal int64
}

// MonthlyStats extends the calendar-month rollup with averages and the
// growth rate (net monthly flow over total balance, in percent).
type MonthlyStats struct {
	PeriodStats
	AvgDeposit    int64
	AvgWithdrawal int64
	GrowthRate    float64
}

// Snapshot is derived, never authoritative. Recomputed on demand from the
// supplied transactions and accounts; nothing here is persisted.
type Snapshot struct {
	AsOf time.Time

	TotalAccounts  int
	ActiveAccounts int
	TotalBalance   int64
	ByCurrency     map[ledger.Currency]CurrencyStats

	Daily   PeriodStats
	Monthly MonthlyStats

	InterestPaid        int64
	AccountsOpenedToday int
}

// Aggregate folds the transaction window and account set into a snapshot
// as of the given time. Daily counters cover the local calendar day of
// asOf and only Completed transactions; monthly counters cover the
// calendar month from its first moment.
func Aggregate(transactions []*ledger.Transaction, accounts []*ledger.Account, asOf time.Time) *Snapshot {
	snap := &Snapshot{
		AsOf:       asOf,
		ByCurrency: make(map[ledger.Currency]CurrencyStats),
	}

	for _, acct := range accounts {
		snap.TotalAccounts++
		if acct.Status == ledger.StatusActive {
			snap.ActiveAccounts++
		}
		snap.TotalBalance += acct.Balance

		cs := snap.ByCurrency[acct.Currency]
		cs.Accounts++
		cs.Balance += acct.Balance
		snap.ByCurrency[acct.Currency] = cs

		if sameDay(acct.CreatedAt, asOf) {
			snap.AccountsOpenedToday++
		}
	}

	for cur, cs := range snap.ByCurrency {
		if snap.TotalBalance > 0 {
			cs.Percentage = float64(cs.Balance) / float64(snap.TotalBalance) * 100
		}
		snap.ByCurrency[cur] = cs
	}

	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())

	for _, tx := range transactions {
		class := NormalizeType(string(tx.Type))
		status := NormalizeStatus(string(tx.Status))

		if !tx.ProcessedAt.Before(monthStart) && !tx.ProcessedAt.After(asOf) {
			switch {
			case isDeposit(class):
				snap.Monthly.DepositCount++
				snap.Monthly.DepositTotal += tx.Amount
			case isWithdrawal(class):
				snap.Monthly.WithdrawalCount++
				snap.Monthly.WithdrawalTotal += tx.Amount
			case class == ClassInterest:
				snap.InterestPaid += tx.Amount
			}
		}

		if status != string(ledger.TxCompleted) || !sameDay(tx.ProcessedAt, asOf) {
			continue
		}
		switch {
		case isDeposit(class):
			snap.Daily.DepositCount++
			snap.Daily.DepositTotal += tx.Amount
		case isWithdrawal(class):
			snap.Daily.WithdrawalCount++
			snap.Daily.WithdrawalTotal += tx.Amount
		}
	}

	if snap.Monthly.DepositCount > 0 {
		snap.Monthly.AvgDeposit = snap.Monthly.DepositTotal / int64(snap.Monthly.DepositCount)
	}
	if snap.Monthly.WithdrawalCount > 0 {
		snap.Monthly.AvgWithdrawal = snap.Monthly.WithdrawalTotal / int64(snap.Monthly.WithdrawalCount)
	}
	if snap.TotalBalance > 0 {
		net := snap.Monthly.DepositTotal - snap.Monthly.WithdrawalTotal
		snap.Monthly.GrowthRate = float64(net) / float64(snap.TotalBalance) * 100
	}

	return snap
}

func sameDay(t, ref time.Time) bool {
	y1, m1, d1 := t.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
