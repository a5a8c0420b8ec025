package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccount(id, number string) *Account {
	return &Account{
		ID:               id,
		AccountNumber:    number,
		CustomerID:       "C-1",
		Currency:         CurrencyHTG,
		Balance:          1500000, // 15,000.00 HTG
		AvailableBalance: 1500000,
		MinimumBalance:   50000, // 500.00 HTG
		Status:           StatusActive,
		Limits: Limits{
			DailyWithdrawal:     20000000,
			DailyDeposit:        100000000,
			MonthlyWithdrawal:   200000000,
			MaxBalance:          1000000000,
			MinWithdrawalAmount: 10000,
			MaxWithdrawalAmount: 5000000,
		},
	}
}

func htgDepositPolicy() DepositPolicy {
	return DepositPolicy{MinDeposit: 10000, MaxDeposit: 100000000}
}

func TestValidateDeposit(t *testing.T) {
	acc := testAccount("a1", "010200000001")

	res := Validate(Intent{Type: TypeDeposit, SourceAccountID: acc.ID, Amount: 50000}, acc, nil, htgDepositPolicy(), PeriodTotals{})
	assert.True(t, res.Approved())
	assert.NoError(t, res.Rejection())

	res = Validate(Intent{Type: TypeDeposit, SourceAccountID: acc.ID, Amount: 5000}, acc, nil, htgDepositPolicy(), PeriodTotals{})
	require.False(t, res.Approved())
	assert.Equal(t, KindLimitExceeded, res.Reasons[0].Kind)
	assert.Equal(t, LimitMinDeposit, res.Reasons[0].Limit)
}

func TestValidateWithdrawalMinimumBalance(t *testing.T) {
	acc := testAccount("a1", "010200000001")

	// Leaves exactly 950.00 above the floor.
	res := Validate(Intent{Type: TypeWithdrawal, SourceAccountID: acc.ID, Amount: 1355000}, acc, nil, htgDepositPolicy(), PeriodTotals{})
	assert.True(t, res.Approved())

	// Would leave 447.50, below the 500.00 floor.
	res = Validate(Intent{Type: TypeWithdrawal, SourceAccountID: acc.ID, Amount: 1455250}, acc, nil, htgDepositPolicy(), PeriodTotals{})
	require.False(t, res.Approved())

	var rej *Rejection
	require.ErrorAs(t, res.Rejection(), &rej)
	assert.True(t, rej.Has(KindMinimumBalance))
}

func TestValidateAccumulatesAllReasons(t *testing.T) {
	acc := testAccount("a1", "010200000001")
	acc.Status = StatusSuspended

	res := Validate(Intent{Type: TypeWithdrawal, SourceAccountID: acc.ID, Amount: -5}, acc, nil, htgDepositPolicy(), PeriodTotals{})
	require.False(t, res.Approved())

	// Negative amount and inactive account are both reported, amount first.
	require.GreaterOrEqual(t, len(res.Reasons), 2)
	assert.Equal(t, KindInvalidAmount, res.Reasons[0].Kind)
	assert.Equal(t, KindAccountNotActive, res.Reasons[1].Kind)
}

func TestValidateIsDeterministic(t *testing.T) {
	acc := testAccount("a1", "010200000001")
	acc.Balance = 20000
	acc.AvailableBalance = 20000

	intent := Intent{Type: TypeWithdrawal, SourceAccountID: acc.ID, Amount: 5000}

	first := Validate(intent, acc, nil, htgDepositPolicy(), PeriodTotals{})
	second := Validate(intent, acc, nil, htgDepositPolicy(), PeriodTotals{})
	assert.Equal(t, first, second)
}

func TestValidateTransferChecks(t *testing.T) {
	src := testAccount("a1", "010200000001")
	dst := testAccount("a2", "010200000002")
	dst.Currency = CurrencyUSD

	intent := Intent{
		Type:                 TypeTransfer,
		SourceAccountID:      src.ID,
		DestinationAccountID: dst.ID,
		Amount:               100000,
	}

	res := Validate(intent, src, dst, htgDepositPolicy(), PeriodTotals{})
	require.False(t, res.Approved())

	var rej *Rejection
	require.ErrorAs(t, res.Rejection(), &rej)
	assert.True(t, rej.Has(KindCurrencyMismatch))
	assert.False(t, rej.Has(KindSameAccountTransfer))

	// Same account and same currency: only the pair check fires.
	res = Validate(intent, src, src, htgDepositPolicy(), PeriodTotals{})
	require.False(t, res.Approved())
	require.ErrorAs(t, res.Rejection(), &rej)
	assert.True(t, rej.Has(KindSameAccountTransfer))
}

func TestValidateTransferSuspendedDestination(t *testing.T) {
	src := testAccount("a1", "010200000001")
	dst := testAccount("a2", "010200000002")
	dst.Status = StatusSuspended

	intent := Intent{
		Type:                 TypeTransfer,
		SourceAccountID:      src.ID,
		DestinationAccountID: dst.ID,
		Amount:               100000,
	}

	res := Validate(intent, src, dst, htgDepositPolicy(), PeriodTotals{})
	require.False(t, res.Approved())
	assert.Equal(t, KindAccountNotActive, res.Reasons[0].Kind)
	assert.Contains(t, res.Reasons[0].Detail, dst.AccountNumber)
}

func TestValidatePeriodLimits(t *testing.T) {
	acc := testAccount("a1", "010200000001")
	acc.Balance = 500000000
	acc.AvailableBalance = 500000000
	acc.Limits.MaxWithdrawalAmount = 0 // unenforced

	// Prior withdrawals leave 1,000.00 of daily headroom.
	totals := PeriodTotals{DailyWithdrawals: acc.Limits.DailyWithdrawal - 100000}

	res := Validate(Intent{Type: TypeWithdrawal, SourceAccountID: acc.ID, Amount: 100000}, acc, nil, htgDepositPolicy(), totals)
	assert.True(t, res.Approved())

	res = Validate(Intent{Type: TypeWithdrawal, SourceAccountID: acc.ID, Amount: 100001}, acc, nil, htgDepositPolicy(), totals)
	require.False(t, res.Approved())
	assert.Equal(t, LimitDailyWithdrawal, res.Reasons[0].Limit)
}

func TestValidateZeroLimitUnenforced(t *testing.T) {
	acc := testAccount("a1", "010200000001")
	acc.Limits = Limits{} // nothing set

	res := Validate(Intent{Type: TypeWithdrawal, SourceAccountID: acc.ID, Amount: 1000000}, acc, nil, DepositPolicy{}, PeriodTotals{
		DailyWithdrawals: 1 << 40,
	})
	assert.True(t, res.Approved())
}

func TestValidateMaxBalanceCeiling(t *testing.T) {
	acc := testAccount("a1", "010200000001")
	acc.Balance = acc.Limits.MaxBalance - 100
	acc.AvailableBalance = acc.Balance

	res := Validate(Intent{Type: TypeDeposit, SourceAccountID: acc.ID, Amount: 10000}, acc, nil, htgDepositPolicy(), PeriodTotals{})
	require.False(t, res.Approved())

	var rej *Rejection
	require.ErrorAs(t, res.Rejection(), &rej)
	assert.True(t, rej.Has(KindMaxBalanceExceeded))
}
