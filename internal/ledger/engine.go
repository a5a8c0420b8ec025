package ledger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Engine commits approved intents as atomic balance mutations. It owns the
// per-account serialization guarantee: at most one in-flight commit holds a
// given account at a time, and a transfer locks both accounts in ascending
// id order so opposing transfers cannot deadlock.
//
// The engine mutates only the snapshots it is given (as copies); persisting
// the result is the caller's concern. It holds no account data of its own
// beyond the highest version it has committed per account, which backs the
// optimistic staleness check.
type Engine struct {
	// Now and NewID exist so tests can pin time and identifiers.
	Now   func() time.Time
	NewID func() string

	mu        sync.Mutex
	locks     map[string]*sync.Mutex
	committed map[string]int64
}

func NewEngine() *Engine {
	return &Engine{
		Now:       time.Now,
		NewID:     func() string { return uuid.NewString() },
		locks:     make(map[string]*sync.Mutex),
		committed: make(map[string]int64),
	}
}

// CommitResult holds the committed record(s) and updated snapshot(s).
// For a transfer, Transactions and Accounts list the source leg first.
type CommitResult struct {
	Transactions []*Transaction
	Accounts     []*Account
}

// Transaction returns the primary (source-side) record.
func (r *CommitResult) Transaction() *Transaction { return r.Transactions[0] }

// Account returns the primary (source-side) updated snapshot.
func (r *CommitResult) Account() *Account { return r.Accounts[0] }

// Commit applies an approved intent. It re-asserts the balance invariants
// as a last line of defense rather than trusting the validator alone: a
// breach detected here aborts the mutation, leaves the snapshots untouched
// and returns a *CommitError. The engine never retries on its own, and a
// retried commit always produces a fresh transaction record with fresh
// identifiers.
func (e *Engine) Commit(intent Intent, source *Account, dest *Account, processedBy string) (*CommitResult, error) {
	if intent.Type == TypeTransfer {
		if dest == nil {
			return nil, &CommitError{Kind: KindInvalidAmount, msg: "transfer requires a destination account"}
		}
		return e.commitTransfer(intent, source, dest, processedBy)
	}
	return e.commitSingle(intent, source, processedBy)
}

func (e *Engine) commitSingle(intent Intent, source *Account, processedBy string) (*CommitResult, error) {
	lock := e.lockFor(source.ID)
	lock.Lock()
	defer lock.Unlock()

	if err := e.checkFresh(source); err != nil {
		return nil, err
	}

	now := e.Now()
	acct := source.Clone()
	tx := e.newTransaction(intent.Type, intent, acct, processedBy, now)

	var err error
	switch intent.Type {
	case TypeWithdrawal:
		err = debit(acct, intent.Amount)
	case TypeDeposit, TypeInterest, TypeOpeningDeposit:
		err = credit(acct, intent.Amount)
	default:
		err = &CommitError{Kind: KindInvalidAmount, msg: fmt.Sprintf("unsupported transaction type %q", intent.Type)}
	}
	if err != nil {
		return nil, err
	}

	finalize(tx, acct, now)
	e.recordCommit(acct)

	return &CommitResult{
		Transactions: []*Transaction{tx},
		Accounts:     []*Account{acct},
	}, nil
}

func (e *Engine) commitTransfer(intent Intent, source *Account, dest *Account, processedBy string) (*CommitResult, error) {
	if source.ID == dest.ID {
		return nil, &CommitError{Kind: KindSameAccountTransfer}
	}
	if source.Currency != dest.Currency {
		return nil, &CommitError{Kind: KindCurrencyMismatch}
	}

	first, second := e.lockFor(source.ID), e.lockFor(dest.ID)
	if dest.ID < source.ID {
		first, second = second, first
	}
	first.Lock()
	defer first.Unlock()
	second.Lock()
	defer second.Unlock()

	if err := e.checkFresh(source); err != nil {
		return nil, err
	}
	if err := e.checkFresh(dest); err != nil {
		return nil, err
	}

	now := e.Now()
	src := source.Clone()
	dst := dest.Clone()

	srcTx := e.newTransaction(TypeWithdrawal, intent, src, processedBy, now)
	dstTx := e.newTransaction(TypeDeposit, intent, dst, processedBy, now)
	srcTx.RelatedTransactionID = dstTx.ID
	dstTx.RelatedTransactionID = srcTx.ID

	if err := debit(src, intent.Amount); err != nil {
		return nil, err
	}
	if err := credit(dst, intent.Amount); err != nil {
		// The debit applied only to a copy, so rolling back means dropping
		// it; no partial state is ever observable. The source record is
		// preserved as Failed for the audit trail.
		srcTx.Status = TxFailed
		var ce *CommitError
		if cerr, ok := err.(*CommitError); ok {
			ce = &CommitError{
				Kind:              KindPartialTransferFailure,
				Limit:             cerr.Limit,
				FailedTransaction: srcTx,
				msg:               cerr.Error(),
			}
		} else {
			ce = &CommitError{Kind: KindPartialTransferFailure, FailedTransaction: srcTx, msg: err.Error()}
		}
		return nil, ce
	}

	finalize(srcTx, src, now)
	finalize(dstTx, dst, now)
	e.recordCommit(src)
	e.recordCommit(dst)

	return &CommitResult{
		Transactions: []*Transaction{srcTx, dstTx},
		Accounts:     []*Account{src, dst},
	}, nil
}

func (e *Engine) lockFor(accountID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[accountID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[accountID] = l
	}
	return l
}

// checkFresh rejects a snapshot older than the last mutation this engine
// committed on the account. Callers retry by reloading the account.
func (e *Engine) checkFresh(a *Account) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if v, ok := e.committed[a.ID]; ok && a.Version < v {
		return &CommitError{
			Kind: KindStaleSnapshot,
			msg:  fmt.Sprintf("account %s snapshot version %d, last committed %d", a.AccountNumber, a.Version, v),
		}
	}
	return nil
}

func (e *Engine) recordCommit(a *Account) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.committed[a.ID] = a.Version
}

func debit(a *Account, amount int64) error {
	if amount <= 0 {
		return &CommitError{Kind: KindInvalidAmount}
	}
	if a.Status != StatusActive {
		return &CommitError{Kind: KindAccountNotActive, msg: "account " + a.AccountNumber}
	}
	if amount > a.AvailableBalance {
		return &CommitError{Kind: KindInsufficientFunds}
	}
	after := a.Balance - amount
	if after < 0 || after < a.MinimumBalance {
		return &CommitError{Kind: KindMinimumBalance}
	}
	a.Balance = after
	a.AvailableBalance -= amount
	return nil
}

func credit(a *Account, amount int64) error {
	if amount <= 0 {
		return &CommitError{Kind: KindInvalidAmount}
	}
	if a.Status != StatusActive {
		return &CommitError{Kind: KindAccountNotActive, msg: "account " + a.AccountNumber}
	}
	if a.Limits.MaxBalance > 0 && a.Balance+amount > a.Limits.MaxBalance {
		return &CommitError{Kind: KindMaxBalanceExceeded}
	}
	a.Balance += amount
	a.AvailableBalance += amount
	return nil
}

// newTransaction captures balanceBefore exactly once, from the authoritative
// pre-mutation value, and generates the commit-time identifiers.
func (e *Engine) newTransaction(txType TxType, intent Intent, acct *Account, processedBy string, now time.Time) *Transaction {
	id := e.NewID()
	return &Transaction{
		ID:                 id,
		AccountID:          acct.ID,
		AccountNumber:      acct.AccountNumber,
		Type:               txType,
		Amount:             intent.Amount,
		Currency:           acct.Currency,
		BalanceBefore:      acct.Balance,
		Description:        defaultDescription(txType, intent.Description),
		Reference:          reference(txType, acct.AccountNumber, now),
		ReceiptNumber:      receiptNumber(id, now),
		ProcessedBy:        processedBy,
		Status:             TxProcessing,
		ProcessedAt:        now,
		CreatedAt:          now,
		VerificationMethod: intent.VerificationMethod,
		Notes:              intent.Notes,
	}
}

func finalize(tx *Transaction, acct *Account, now time.Time) {
	tx.BalanceAfter = acct.Balance
	tx.Status = TxCompleted
	acct.Version++
	acct.LastTransactionAt = &now
	acct.UpdatedAt = now
}

func defaultDescription(txType TxType, given string) string {
	if given != "" {
		return given
	}
	switch txType {
	case TypeDeposit:
		return "Cash deposit"
	case TypeWithdrawal:
		return "Cash withdrawal"
	case TypeInterest:
		return "Interest credit"
	case TypeOpeningDeposit:
		return "Opening deposit"
	default:
		return "Transaction"
	}
}

func reference(txType TxType, accountNumber string, now time.Time) string {
	var prefix string
	switch txType {
	case TypeDeposit, TypeOpeningDeposit:
		prefix = "DEP"
	case TypeWithdrawal:
		prefix = "WDL"
	case TypeInterest:
		prefix = "INT"
	default:
		prefix = "TXN"
	}

	suffix := accountNumber
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return fmt.Sprintf("%s-%s-%s-%s", prefix, now.Format("20060102"), now.Format("150405"), suffix)
}

// receiptNumber derives the unique part from the transaction id so retried
// commits can never reuse a receipt.
func receiptNumber(txID string, now time.Time) string {
	compact := strings.ReplaceAll(txID, "-", "")
	if len(compact) > 8 {
		compact = compact[:8]
	}
	return fmt.Sprintf("RCT-%s-%s", now.Format("20060102"), strings.ToUpper(compact))
}
