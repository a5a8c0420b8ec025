package ledger

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine() *Engine {
	e := NewEngine()
	e.Now = func() time.Time {
		return time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	}
	return e
}

func TestCommitDeposit(t *testing.T) {
	e := testEngine()
	acc := testAccount("a1", "010200000001")

	res, err := e.Commit(Intent{Type: TypeDeposit, SourceAccountID: acc.ID, Amount: 250000}, acc, nil, "teller-1")
	require.NoError(t, err)

	tx := res.Transaction()
	updated := res.Account()

	assert.Equal(t, int64(1750000), updated.Balance)
	assert.Equal(t, int64(1750000), updated.AvailableBalance)
	assert.Equal(t, acc.Version+1, updated.Version)

	assert.Equal(t, TxCompleted, tx.Status)
	assert.Equal(t, int64(1500000), tx.BalanceBefore)
	assert.Equal(t, int64(1750000), tx.BalanceAfter)
	assert.Equal(t, "DEP-20260901-103000-0001", tx.Reference)
	assert.Equal(t, "teller-1", tx.ProcessedBy)

	// The input snapshot is never mutated.
	assert.Equal(t, int64(1500000), acc.Balance)
	assert.Equal(t, int64(0), acc.Version)
}

func TestCommitWithdrawalFloor(t *testing.T) {
	e := testEngine()
	acc := testAccount("a1", "010200000001")

	// Take the balance down to 950.00...
	res, err := e.Commit(Intent{Type: TypeWithdrawal, SourceAccountID: acc.ID, Amount: 1405000}, acc, nil, "teller-1")
	require.NoError(t, err)
	assert.Equal(t, int64(95000), res.Account().Balance)

	// ...then a withdrawal breaching the 500.00 floor is refused and the
	// snapshot stays as committed.
	fresh := res.Account()
	_, err = e.Commit(Intent{Type: TypeWithdrawal, SourceAccountID: acc.ID, Amount: 50000}, fresh, nil, "teller-1")
	require.Error(t, err)

	var ce *CommitError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindMinimumBalance, ce.Kind)
	assert.Equal(t, int64(95000), fresh.Balance)
}

func TestCommitRejectsStaleSnapshot(t *testing.T) {
	e := testEngine()
	acc := testAccount("a1", "010200000001")

	_, err := e.Commit(Intent{Type: TypeDeposit, SourceAccountID: acc.ID, Amount: 100000}, acc, nil, "teller-1")
	require.NoError(t, err)

	// Committing against the original (now outdated) snapshot must fail.
	_, err = e.Commit(Intent{Type: TypeDeposit, SourceAccountID: acc.ID, Amount: 100000}, acc, nil, "teller-1")
	var ce *CommitError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindStaleSnapshot, ce.Kind)
}

func TestConcurrentWithdrawalsOnlyOneWins(t *testing.T) {
	e := testEngine()
	acc := testAccount("a1", "010200000001")
	acc.Balance = 1000000 // 10,000.00
	acc.AvailableBalance = 1000000
	acc.MinimumBalance = 0

	// Two tellers race an 8,000.00 withdrawal from the same snapshot.
	// Serialization plus the staleness check allows exactly one through.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.Commit(Intent{Type: TypeWithdrawal, SourceAccountID: acc.ID, Amount: 800000}, acc.Clone(), nil, fmt.Sprintf("teller-%d", i))
		}(i)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			failures++
			var ce *CommitError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, KindStaleSnapshot, ce.Kind)
		}
	}
	assert.Equal(t, 1, failures)
}

func TestTransferConservesValue(t *testing.T) {
	e := testEngine()
	src := testAccount("a1", "010200000001")
	dst := testAccount("a2", "010200000002")

	intent := Intent{
		Type:                 TypeTransfer,
		SourceAccountID:      src.ID,
		DestinationAccountID: dst.ID,
		Amount:               400000,
	}

	res, err := e.Commit(intent, src, dst, "teller-1")
	require.NoError(t, err)
	require.Len(t, res.Transactions, 2)
	require.Len(t, res.Accounts, 2)

	before := src.Balance + dst.Balance
	after := res.Accounts[0].Balance + res.Accounts[1].Balance
	assert.Equal(t, before, after)

	srcTx, dstTx := res.Transactions[0], res.Transactions[1]
	assert.Equal(t, TypeWithdrawal, srcTx.Type)
	assert.Equal(t, TypeDeposit, dstTx.Type)
	assert.Equal(t, dstTx.ID, srcTx.RelatedTransactionID)
	assert.Equal(t, srcTx.ID, dstTx.RelatedTransactionID)
}

func TestTransferCurrencyMismatchLeavesStateUntouched(t *testing.T) {
	e := testEngine()
	src := testAccount("a1", "010200000001")
	dst := testAccount("a2", "010200000002")
	dst.Currency = CurrencyUSD

	intent := Intent{
		Type:                 TypeTransfer,
		SourceAccountID:      src.ID,
		DestinationAccountID: dst.ID,
		Amount:               400000,
	}

	_, err := e.Commit(intent, src, dst, "teller-1")
	var ce *CommitError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindCurrencyMismatch, ce.Kind)

	assert.Equal(t, int64(1500000), src.Balance)
	assert.Equal(t, int64(1500000), dst.Balance)
	assert.Equal(t, int64(0), src.Version)
	assert.Equal(t, int64(0), dst.Version)
}

func TestTransferDestinationFailureRollsBack(t *testing.T) {
	e := testEngine()
	src := testAccount("a1", "010200000001")
	dst := testAccount("a2", "010200000002")
	dst.Limits.MaxBalance = dst.Balance + 100 // almost no headroom

	intent := Intent{
		Type:                 TypeTransfer,
		SourceAccountID:      src.ID,
		DestinationAccountID: dst.ID,
		Amount:               400000,
	}

	_, err := e.Commit(intent, src, dst, "teller-1")
	var ce *CommitError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindPartialTransferFailure, ce.Kind)

	// The debit was rolled back and the failed source leg kept for audit.
	assert.Equal(t, int64(1500000), src.Balance)
	require.NotNil(t, ce.FailedTransaction)
	assert.Equal(t, TxFailed, ce.FailedTransaction.Status)
	assert.Equal(t, src.ID, ce.FailedTransaction.AccountID)

	// A retry from the same snapshots is not stale: nothing was committed.
	dst.Limits.MaxBalance = 0
	_, err = e.Commit(intent, src, dst, "teller-1")
	assert.NoError(t, err)
}

func TestOpposingTransfersDoNotDeadlock(t *testing.T) {
	e := testEngine()
	a := testAccount("a1", "010200000001")
	b := testAccount("a2", "010200000002")

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				e.Commit(Intent{Type: TypeTransfer, SourceAccountID: a.ID, DestinationAccountID: b.ID, Amount: 10000}, a.Clone(), b.Clone(), "t1")
			}()
			go func() {
				defer wg.Done()
				e.Commit(Intent{Type: TypeTransfer, SourceAccountID: b.ID, DestinationAccountID: a.ID, Amount: 10000}, b.Clone(), a.Clone(), "t2")
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("opposing transfers deadlocked")
	}
}

func TestRetriedCommitGetsFreshIdentifiers(t *testing.T) {
	e := testEngine()
	acc := testAccount("a1", "010200000001")

	first, err := e.Commit(Intent{Type: TypeDeposit, SourceAccountID: acc.ID, Amount: 100000}, acc, nil, "teller-1")
	require.NoError(t, err)

	second, err := e.Commit(Intent{Type: TypeDeposit, SourceAccountID: acc.ID, Amount: 100000}, first.Account(), nil, "teller-1")
	require.NoError(t, err)

	assert.NotEqual(t, first.Transaction().ID, second.Transaction().ID)
	assert.NotEqual(t, first.Transaction().ReceiptNumber, second.Transaction().ReceiptNumber)
}

func TestCommitInterestIgnoresDepositBounds(t *testing.T) {
	e := testEngine()
	acc := testAccount("a1", "010200000001")

	// 1.50 is below the minimum deposit but interest is not a deposit.
	res, err := e.Commit(Intent{Type: TypeInterest, SourceAccountID: acc.ID, Amount: 150}, acc, nil, "system")
	require.NoError(t, err)
	assert.Equal(t, "INT-20260901-103000-0001", res.Transaction().Reference)
	assert.Equal(t, acc.Balance+150, res.Account().Balance)
}

func TestCommitOnSuspendedAccount(t *testing.T) {
	e := testEngine()
	acc := testAccount("a1", "010200000001")
	acc.Status = StatusSuspended

	_, err := e.Commit(Intent{Type: TypeDeposit, SourceAccountID: acc.ID, Amount: 100000}, acc, nil, "teller-1")
	var ce *CommitError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindAccountNotActive, ce.Kind)
}
