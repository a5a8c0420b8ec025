package service

import (
	"time"

	"github.com/tmervil/sere/internal/ledger"
	"github.com/tmervil/sere/internal/stats"
	"github.com/tmervil/sere/internal/store"
)

type ReportingService struct {
	repo store.Repository
}

func NewReportingService(repo store.Repository) *ReportingService {
	return &ReportingService{repo: repo}
}

// Statistics recomputes the branch snapshot as of the given time from the
// current month's transactions and every account on the book.
func (rs *ReportingService) Statistics(asOf time.Time) (*stats.Snapshot, error) {
	accounts, err := rs.repo.ListAccounts()
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	dayEnd := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location()).AddDate(0, 0, 1)

	transactions, err := rs.repo.ListTransactionsInRange("", monthStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return stats.Aggregate(transactions, accounts, asOf), nil
}

// Statement is one account's activity over [From, To) with the balances
// bracketing the window.
type Statement struct {
	Account        *ledger.Account
	From           time.Time
	To             time.Time
	OpeningBalance int64
	ClosingBalance int64
	TotalCredits   int64
	TotalDebits    int64
	Transactions   []*ledger.Transaction
}

// Statement builds an account statement for [from, to). Opening and
// closing balances come from the recorded before/after balances of the
// completed entries in the window, so the statement reconciles even when
// the live balance has since moved on.
func (rs *ReportingService) Statement(accountNumber string, from, to time.Time) (*Statement, error) {
	account, err := rs.repo.GetAccountByNumber(accountNumber)
	if err != nil {
		return nil, err
	}

	transactions, err := rs.repo.ListTransactionsInRange(account.ID, from, to)
	if err != nil {
		return nil, err
	}

	st := &Statement{
		Account:      account,
		From:         from,
		To:           to,
		Transactions: transactions,
	}

	first := true
	for _, tx := range transactions {
		if tx.Status != ledger.TxCompleted && tx.Status != ledger.TxCancelled {
			continue
		}
		if first {
			st.OpeningBalance = tx.BalanceBefore
			first = false
		}
		st.ClosingBalance = tx.BalanceAfter
		switch stats.NormalizeType(string(tx.Type)) {
		case stats.ClassWithdrawal:
			st.TotalDebits += tx.Amount
		default:
			st.TotalCredits += tx.Amount
		}
	}
	if first {
		// No activity in the window: the statement brackets the live balance.
		st.OpeningBalance = account.Balance
		st.ClosingBalance = account.Balance
	}

	return st, nil
}
