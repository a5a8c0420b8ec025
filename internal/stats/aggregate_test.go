package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmervil/sere/internal/ledger"
)

func statsAccount(id string, currency ledger.Currency, balance int64, status ledger.AccountStatus, createdAt time.Time) *ledger.Account {
	return &ledger.Account{
		ID:            id,
		AccountNumber: "0102" + id,
		Currency:      currency,
		Balance:       balance,
		Status:        status,
		CreatedAt:     createdAt,
		OpeningDate:   createdAt,
	}
}

func statsTx(txType ledger.TxType, amount int64, status ledger.TxStatus, processedAt time.Time) *ledger.Transaction {
	return &ledger.Transaction{
		Type:        txType,
		Amount:      amount,
		Status:      status,
		ProcessedAt: processedAt,
	}
}

func TestAggregateEmptyBook(t *testing.T) {
	asOf := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	snap := Aggregate(nil, nil, asOf)

	assert.Zero(t, snap.TotalAccounts)
	assert.Zero(t, snap.TotalBalance)
	assert.Zero(t, snap.Monthly.GrowthRate)
	assert.Zero(t, snap.Monthly.AvgDeposit)
	assert.Empty(t, snap.ByCurrency)
}

func TestAggregateCurrencyShares(t *testing.T) {
	asOf := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	opened := asOf.AddDate(0, -2, 0)

	accounts := []*ledger.Account{
		statsAccount("a1", ledger.CurrencyHTG, 600000, ledger.StatusActive, opened),
		statsAccount("a2", ledger.CurrencyHTG, 200000, ledger.StatusSuspended, opened),
		statsAccount("a3", ledger.CurrencyUSD, 200000, ledger.StatusActive, asOf.Add(-time.Hour)),
	}

	snap := Aggregate(nil, accounts, asOf)

	assert.Equal(t, 3, snap.TotalAccounts)
	assert.Equal(t, 2, snap.ActiveAccounts)
	assert.Equal(t, int64(1000000), snap.TotalBalance)
	assert.Equal(t, 1, snap.AccountsOpenedToday)

	htg := snap.ByCurrency[ledger.CurrencyHTG]
	usd := snap.ByCurrency[ledger.CurrencyUSD]
	assert.Equal(t, 2, htg.Accounts)
	assert.InDelta(t, 80.0, htg.Percentage, 0.001)
	assert.InDelta(t, 20.0, usd.Percentage, 0.001)
	assert.InDelta(t, 100.0, htg.Percentage+usd.Percentage, 0.001)
}

func TestAggregateZeroBalancePercentages(t *testing.T) {
	asOf := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	accounts := []*ledger.Account{
		statsAccount("a1", ledger.CurrencyHTG, 0, ledger.StatusActive, asOf.AddDate(0, -1, 0)),
	}

	snap := Aggregate(nil, accounts, asOf)

	// No division by zero: share and growth stay at 0.
	assert.Zero(t, snap.ByCurrency[ledger.CurrencyHTG].Percentage)
	assert.Zero(t, snap.Monthly.GrowthRate)
}

func TestAggregateDailyCountsCompletedOnly(t *testing.T) {
	asOf := time.Date(2026, 9, 15, 18, 0, 0, 0, time.UTC)

	transactions := []*ledger.Transaction{
		statsTx(ledger.TypeDeposit, 100000, ledger.TxCompleted, asOf.Add(-2*time.Hour)),
		statsTx(ledger.TypeDeposit, 50000, ledger.TxPending, asOf.Add(-time.Hour)),
		statsTx(ledger.TypeWithdrawal, 30000, ledger.TxCompleted, asOf.Add(-3*time.Hour)),
		statsTx(ledger.TypeWithdrawal, 90000, ledger.TxFailed, asOf.Add(-time.Hour)),
		// Yesterday, excluded from daily.
		statsTx(ledger.TypeDeposit, 70000, ledger.TxCompleted, asOf.AddDate(0, 0, -1)),
	}

	snap := Aggregate(transactions, nil, asOf)

	assert.Equal(t, 1, snap.Daily.DepositCount)
	assert.Equal(t, int64(100000), snap.Daily.DepositTotal)
	assert.Equal(t, 1, snap.Daily.WithdrawalCount)
	assert.Equal(t, int64(30000), snap.Daily.WithdrawalTotal)
}

func TestAggregateMonthlyIncludesAllStatuses(t *testing.T) {
	asOf := time.Date(2026, 9, 15, 18, 0, 0, 0, time.UTC)
	monthStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	transactions := []*ledger.Transaction{
		statsTx(ledger.TypeDeposit, 100000, ledger.TxCompleted, monthStart.Add(time.Hour)),
		statsTx(ledger.TypeDeposit, 200000, ledger.TxPending, asOf.AddDate(0, 0, -3)),
		statsTx(ledger.TypeOpeningDeposit, 60000, ledger.TxCompleted, asOf.AddDate(0, 0, -1)),
		statsTx(ledger.TypeWithdrawal, 90000, ledger.TxCompleted, asOf.AddDate(0, 0, -2)),
		statsTx(ledger.TypeInterest, 5000, ledger.TxCompleted, asOf.AddDate(0, 0, -4)),
		// Previous month, excluded entirely.
		statsTx(ledger.TypeDeposit, 999999, ledger.TxCompleted, monthStart.Add(-time.Hour)),
	}

	snap := Aggregate(transactions, nil, asOf)

	// Monthly counters are date-filtered only; opening deposits fold into
	// deposits and interest is tracked separately.
	assert.Equal(t, 3, snap.Monthly.DepositCount)
	assert.Equal(t, int64(360000), snap.Monthly.DepositTotal)
	assert.Equal(t, 1, snap.Monthly.WithdrawalCount)
	assert.Equal(t, int64(90000), snap.Monthly.WithdrawalTotal)
	assert.Equal(t, int64(5000), snap.InterestPaid)
	assert.Equal(t, int64(120000), snap.Monthly.AvgDeposit)
	assert.Equal(t, int64(90000), snap.Monthly.AvgWithdrawal)
}

func TestAggregateGrowthRate(t *testing.T) {
	asOf := time.Date(2026, 9, 15, 18, 0, 0, 0, time.UTC)
	accounts := []*ledger.Account{
		statsAccount("a1", ledger.CurrencyHTG, 1000000, ledger.StatusActive, asOf.AddDate(0, -3, 0)),
	}
	transactions := []*ledger.Transaction{
		statsTx(ledger.TypeDeposit, 300000, ledger.TxCompleted, asOf.AddDate(0, 0, -5)),
		statsTx(ledger.TypeWithdrawal, 100000, ledger.TxCompleted, asOf.AddDate(0, 0, -4)),
	}

	snap := Aggregate(transactions, accounts, asOf)

	// Net +2,000.00 over 10,000.00 total.
	require.NotZero(t, snap.TotalBalance)
	assert.InDelta(t, 20.0, snap.Monthly.GrowthRate, 0.001)
}
