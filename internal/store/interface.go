package store

import (
	"time"

	"github.com/tmervil/sere/internal/ledger"
)

type Repository interface {
	// Account Operations
	CreateAccount(a *ledger.Account) error
	GetAccountByID(id string) (*ledger.Account, error)
	GetAccountByNumber(number string) (*ledger.Account, error)
	AccountNumberExists(number string) (bool, error)
	ListAccounts() ([]*ledger.Account, error)

	// UpdateAccount replaces the whole snapshot. The row must still carry
	// the version the snapshot was loaded with (a.Version-1 after the
	// engine bumped it); ErrVersionConflict otherwise.
	UpdateAccount(a *ledger.Account) error

	// Transaction Operations
	CreateTransaction(t *ledger.Transaction) error
	GetTransactionByID(id string) (*ledger.Transaction, error)
	ListTransactions(limit int) ([]*ledger.Transaction, error)
	ListAccountTransactions(accountID string, limit int) ([]*ledger.Transaction, error)

	// ListTransactionsInRange returns transactions with processed_at in
	// [from, to). An empty accountID means all accounts.
	ListTransactionsInRange(accountID string, from, to time.Time) ([]*ledger.Transaction, error)

	// PeriodTotal sums completed same-type transaction amounts for one
	// account with processed_at in [from, to).
	PeriodTotal(accountID string, txType ledger.TxType, from, to time.Time) (int64, error)

	UpdateTransactionStatus(id string, status ledger.TxStatus, notes string) error

	ExecTx(fn func(Repository) error) error
	Close() error
}
