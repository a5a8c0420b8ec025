package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmervil/sere/internal/ledger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "sere_test.db"), os.DirFS("../.."))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func storedAccount(number string) *ledger.Account {
	now := time.Now().Truncate(time.Second)
	return &ledger.Account{
		ID:               uuid.NewString(),
		AccountNumber:    number,
		CustomerID:       "C-1",
		Currency:         ledger.CurrencyHTG,
		Balance:          150000,
		AvailableBalance: 150000,
		MinimumBalance:   50000,
		Status:           ledger.StatusActive,
		Limits: ledger.Limits{
			DailyWithdrawal:     20000000,
			DailyDeposit:        100000000,
			MonthlyWithdrawal:   200000000,
			MaxBalance:          1000000000,
			MinWithdrawalAmount: 10000,
			MaxWithdrawalAmount: 5000000,
		},
		Version:     1,
		OpeningDate: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func storedTx(account *ledger.Account, txType ledger.TxType, amount int64, status ledger.TxStatus, processedAt time.Time) *ledger.Transaction {
	return &ledger.Transaction{
		ID:            uuid.NewString(),
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		Type:          txType,
		Amount:        amount,
		Currency:      account.Currency,
		BalanceBefore: account.Balance,
		BalanceAfter:  account.Balance + amount,
		Description:   "test",
		Reference:     "DEP-20260901-000000-0001",
		ReceiptNumber: "RCT-20260901-" + uuid.NewString()[:8],
		ProcessedBy:   "teller-1",
		Status:        status,
		ProcessedAt:   processedAt,
		CreatedAt:     processedAt,
	}
}

func TestAccountRoundTrip(t *testing.T) {
	s := newTestStore(t)
	acc := storedAccount("010200000001")

	require.NoError(t, s.CreateAccount(acc))

	got, err := s.GetAccountByNumber(acc.AccountNumber)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)
	assert.Equal(t, acc.Balance, got.Balance)
	assert.Equal(t, acc.Limits, got.Limits)
	assert.Equal(t, acc.Status, got.Status)
	assert.Nil(t, got.LastTransactionAt)

	byID, err := s.GetAccountByID(acc.ID)
	require.NoError(t, err)
	assert.Equal(t, got.AccountNumber, byID.AccountNumber)

	exists, err := s.AccountNumberExists(acc.AccountNumber)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCreateAccountDuplicateNumber(t *testing.T) {
	s := newTestStore(t)
	acc := storedAccount("010200000001")
	require.NoError(t, s.CreateAccount(acc))

	dup := storedAccount("010200000001")
	err := s.CreateAccount(dup)
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestGetAccountNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetAccountByNumber("999999999999")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestUpdateAccountVersionConflict(t *testing.T) {
	s := newTestStore(t)
	acc := storedAccount("010200000001")
	require.NoError(t, s.CreateAccount(acc))

	updated := acc.Clone()
	updated.Balance = 250000
	updated.Version = 2
	require.NoError(t, s.UpdateAccount(updated))

	// Same snapshot again: the row is now at version 2, not 1.
	stale := acc.Clone()
	stale.Balance = 999
	stale.Version = 2
	err := s.UpdateAccount(stale)
	assert.ErrorIs(t, err, ErrVersionConflict)

	got, err := s.GetAccountByNumber(acc.AccountNumber)
	require.NoError(t, err)
	assert.Equal(t, int64(250000), got.Balance)
	assert.Equal(t, int64(2), got.Version)
}

func TestTransactionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	acc := storedAccount("010200000001")
	require.NoError(t, s.CreateAccount(acc))

	now := time.Now().Truncate(time.Second)
	tx := storedTx(acc, ledger.TypeDeposit, 100000, ledger.TxCompleted, now)
	require.NoError(t, s.CreateTransaction(tx))

	got, err := s.GetTransactionByID(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.Reference, got.Reference)
	assert.Equal(t, tx.Amount, got.Amount)
	assert.Equal(t, ledger.TxCompleted, got.Status)
	assert.Equal(t, "", got.RelatedTransactionID)
	assert.True(t, tx.ProcessedAt.Equal(got.ProcessedAt))
}

func TestPeriodTotalCompletedSameTypeOnly(t *testing.T) {
	s := newTestStore(t)
	acc := storedAccount("010200000001")
	require.NoError(t, s.CreateAccount(acc))

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	inWindow := day.Add(10 * time.Hour)

	require.NoError(t, s.CreateTransaction(storedTx(acc, ledger.TypeWithdrawal, 50000, ledger.TxCompleted, inWindow)))
	require.NoError(t, s.CreateTransaction(storedTx(acc, ledger.TypeWithdrawal, 70000, ledger.TxCompleted, inWindow.Add(time.Hour))))
	// Wrong status, wrong type and out-of-window rows are all excluded.
	require.NoError(t, s.CreateTransaction(storedTx(acc, ledger.TypeWithdrawal, 999, ledger.TxFailed, inWindow)))
	require.NoError(t, s.CreateTransaction(storedTx(acc, ledger.TypeDeposit, 999, ledger.TxCompleted, inWindow)))
	require.NoError(t, s.CreateTransaction(storedTx(acc, ledger.TypeWithdrawal, 999, ledger.TxCompleted, day.AddDate(0, 0, 1))))

	total, err := s.PeriodTotal(acc.ID, ledger.TypeWithdrawal, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(120000), total)
}

func TestListTransactionsInRange(t *testing.T) {
	s := newTestStore(t)
	a := storedAccount("010200000001")
	b := storedAccount("010200000002")
	require.NoError(t, s.CreateAccount(a))
	require.NoError(t, s.CreateAccount(b))

	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateTransaction(storedTx(a, ledger.TypeDeposit, 1, ledger.TxCompleted, base)))
	require.NoError(t, s.CreateTransaction(storedTx(b, ledger.TypeDeposit, 2, ledger.TxCompleted, base.Add(time.Hour))))
	require.NoError(t, s.CreateTransaction(storedTx(a, ledger.TypeDeposit, 3, ledger.TxCompleted, base.Add(48*time.Hour))))

	from, to := base.Add(-time.Minute), base.Add(24*time.Hour)

	all, err := s.ListTransactionsInRange("", from, to)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyA, err := s.ListTransactionsInRange(a.ID, from, to)
	require.NoError(t, err)
	require.Len(t, onlyA, 1)
	assert.Equal(t, int64(1), onlyA[0].Amount)
}

func TestExecTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	acc := storedAccount("010200000001")

	err := s.ExecTx(func(repo Repository) error {
		if err := repo.CreateAccount(acc); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	_, err = s.GetAccountByNumber(acc.AccountNumber)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestUpdateTransactionStatus(t *testing.T) {
	s := newTestStore(t)
	acc := storedAccount("010200000001")
	require.NoError(t, s.CreateAccount(acc))

	tx := storedTx(acc, ledger.TypeDeposit, 100000, ledger.TxCompleted, time.Now().Truncate(time.Second))
	require.NoError(t, s.CreateTransaction(tx))

	require.NoError(t, s.UpdateTransactionStatus(tx.ID, ledger.TxCancelled, "CANCELLED: teller error"))

	got, err := s.GetTransactionByID(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.TxCancelled, got.Status)
	assert.Equal(t, "CANCELLED: teller error", got.Notes)
}
