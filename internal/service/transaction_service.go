package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/tmervil/sere/internal/config"
	"github.com/tmervil/sere/internal/ledger"
	"github.com/tmervil/sere/internal/store"
)

// cancelWindow is how long after processing a completed transaction may
// still be cancelled with a compensating entry.
const cancelWindow = 24 * time.Hour

type TransactionService struct {
	repo   store.Repository
	config *config.Config
	engine *ledger.Engine

	// now is swappable for tests.
	now func() time.Time
}

func NewTransactionService(repo store.Repository, cfg *config.Config, engine *ledger.Engine) *TransactionService {
	return &TransactionService{repo: repo, config: cfg, engine: engine, now: time.Now}
}

// TxOptions carries the teller-supplied metadata common to all operations.
type TxOptions struct {
	Description        string
	VerificationMethod string
	CustomerPresent    bool
	Notes              string
	Operator           string
}

func (o TxOptions) operator(cfg *config.Config) string {
	if o.Operator != "" {
		return o.Operator
	}
	return cfg.Defaults.Operator
}

// Deposit validates and commits a cash deposit on the account.
func (ts *TransactionService) Deposit(accountNumber string, amount int64, opts TxOptions) (*ledger.Transaction, *ledger.Account, error) {
	return ts.single(ledger.TypeDeposit, accountNumber, amount, opts)
}

// Withdraw validates and commits a cash withdrawal from the account.
func (ts *TransactionService) Withdraw(accountNumber string, amount int64, opts TxOptions) (*ledger.Transaction, *ledger.Account, error) {
	return ts.single(ledger.TypeWithdrawal, accountNumber, amount, opts)
}

func (ts *TransactionService) single(txType ledger.TxType, accountNumber string, amount int64, opts TxOptions) (*ledger.Transaction, *ledger.Account, error) {
	account, err := ts.repo.GetAccountByNumber(accountNumber)
	if err != nil {
		return nil, nil, err
	}

	intent := ledger.Intent{
		Type:               txType,
		SourceAccountID:    account.ID,
		Amount:             amount,
		Currency:           account.Currency,
		Description:        opts.Description,
		VerificationMethod: opts.VerificationMethod,
		CustomerPresent:    opts.CustomerPresent,
		Notes:              opts.Notes,
	}

	totals, err := ts.periodTotals(account.ID)
	if err != nil {
		return nil, nil, err
	}

	policy := ts.config.PolicyFor(account.Currency)
	if err := ledger.Validate(intent, account, nil, policy.DepositPolicy(), totals).Rejection(); err != nil {
		return nil, nil, err
	}

	result, err := ts.engine.Commit(intent, account, nil, opts.operator(ts.config))
	if err != nil {
		return nil, nil, err
	}

	if err := ts.persist(result); err != nil {
		return nil, nil, err
	}
	return result.Transaction(), result.Account(), nil
}

// TransferResult carries both legs of a committed transfer; value is
// conserved between the two accounts.
type TransferResult struct {
	SourceTransaction      *ledger.Transaction
	DestinationTransaction *ledger.Transaction
	SourceAccount          *ledger.Account
	DestinationAccount     *ledger.Account
}

// Transfer moves funds between two accounts of the same currency as one
// atomic commit: either both legs are recorded or neither is.
func (ts *TransactionService) Transfer(sourceNumber, destNumber string, amount int64, opts TxOptions) (*TransferResult, error) {
	source, err := ts.repo.GetAccountByNumber(sourceNumber)
	if err != nil {
		return nil, fmt.Errorf("source account: %w", err)
	}
	dest, err := ts.repo.GetAccountByNumber(destNumber)
	if err != nil {
		return nil, fmt.Errorf("destination account: %w", err)
	}

	intent := ledger.Intent{
		Type:                 ledger.TypeTransfer,
		SourceAccountID:      source.ID,
		DestinationAccountID: dest.ID,
		Amount:               amount,
		Currency:             source.Currency,
		Description:          opts.Description,
		VerificationMethod:   opts.VerificationMethod,
		CustomerPresent:      opts.CustomerPresent,
		Notes:                opts.Notes,
	}

	totals, err := ts.periodTotals(source.ID)
	if err != nil {
		return nil, err
	}

	policy := ts.config.PolicyFor(source.Currency)
	if err := ledger.Validate(intent, source, dest, policy.DepositPolicy(), totals).Rejection(); err != nil {
		return nil, err
	}

	result, err := ts.engine.Commit(intent, source, dest, opts.operator(ts.config))
	if err != nil {
		// A destination-side failure after the debit was attempted rolls
		// the debit back; the Failed source record is kept for audit.
		var ce *ledger.CommitError
		if errors.As(err, &ce) && ce.FailedTransaction != nil {
			if perr := ts.repo.CreateTransaction(ce.FailedTransaction); perr != nil {
				return nil, fmt.Errorf("%w (additionally failed to record the failure: %v)", err, perr)
			}
		}
		return nil, err
	}

	if err := ts.persist(result); err != nil {
		return nil, err
	}

	return &TransferResult{
		SourceTransaction:      result.Transactions[0],
		DestinationTransaction: result.Transactions[1],
		SourceAccount:          result.Accounts[0],
		DestinationAccount:     result.Accounts[1],
	}, nil
}

// PostInterest credits interest to the account. Interest postings are not
// subject to the deposit period limits; the engine still enforces the
// active status and the balance ceiling.
func (ts *TransactionService) PostInterest(accountNumber string, amount int64, opts TxOptions) (*ledger.Transaction, *ledger.Account, error) {
	account, err := ts.repo.GetAccountByNumber(accountNumber)
	if err != nil {
		return nil, nil, err
	}

	intent := ledger.Intent{
		Type:            ledger.TypeInterest,
		SourceAccountID: account.ID,
		Amount:          amount,
		Currency:        account.Currency,
		Description:     opts.Description,
		Notes:           opts.Notes,
	}

	result, err := ts.engine.Commit(intent, account, nil, opts.operator(ts.config))
	if err != nil {
		return nil, nil, err
	}
	if err := ts.persist(result); err != nil {
		return nil, nil, err
	}
	return result.Transaction(), result.Account(), nil
}

// Cancel reverses a completed transaction no older than 24 hours with a
// compensating entry and marks the original Cancelled. The reversal skips
// period limits but must still respect the balance floor and ceiling.
func (ts *TransactionService) Cancel(transactionID, reason string, opts TxOptions) (*ledger.Transaction, error) {
	original, err := ts.repo.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}
	if original.Status != ledger.TxCompleted {
		return nil, fmt.Errorf("only completed transactions can be cancelled (status %s)", original.Status)
	}
	now := ts.now()
	if now.Sub(original.ProcessedAt) > cancelWindow {
		return nil, fmt.Errorf("transaction %s is older than 24h and can no longer be cancelled", original.Reference)
	}

	account, err := ts.repo.GetAccountByID(original.AccountID)
	if err != nil {
		return nil, err
	}

	intent := ledger.Intent{
		Type:            reversalType(original.Type),
		SourceAccountID: account.ID,
		Amount:          original.Amount,
		Currency:        account.Currency,
		Description:     fmt.Sprintf("Cancellation of %s - %s", original.Reference, reason),
		Notes:           reason,
	}

	result, err := ts.engine.Commit(intent, account, nil, opts.operator(ts.config))
	if err != nil {
		return nil, err
	}

	reversal := result.Transaction()
	reversal.Reference = "REV-" + original.Reference
	reversal.RelatedTransactionID = original.ID

	cancelNote := original.Notes
	if cancelNote != "" {
		cancelNote += "\n"
	}
	cancelNote += fmt.Sprintf("CANCELLED: %s by %s at %s", reason, opts.operator(ts.config), now.Format("2006-01-02 15:04"))

	err = ts.repo.ExecTx(func(repo store.Repository) error {
		if err := repo.UpdateAccount(result.Account()); err != nil {
			return err
		}
		if err := repo.CreateTransaction(reversal); err != nil {
			return err
		}
		return repo.UpdateTransactionStatus(original.ID, ledger.TxCancelled, cancelNote)
	})
	if err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			return nil, ledger.NewCommitError(ledger.KindStaleSnapshot, "account %s was modified concurrently", account.AccountNumber)
		}
		return nil, err
	}

	return reversal, nil
}

func (ts *TransactionService) Get(transactionID string) (*ledger.Transaction, error) {
	return ts.repo.GetTransactionByID(transactionID)
}

func (ts *TransactionService) Recent(limit int) ([]*ledger.Transaction, error) {
	return ts.repo.ListTransactions(limit)
}

func (ts *TransactionService) History(accountNumber string, limit int) ([]*ledger.Transaction, error) {
	account, err := ts.repo.GetAccountByNumber(accountNumber)
	if err != nil {
		return nil, err
	}
	return ts.repo.ListAccountTransactions(account.ID, limit)
}

// persist writes a commit result in one store transaction: the replaced
// account snapshot(s) plus the new record(s). A version conflict means a
// concurrent commit won; surfaced as StaleSnapshot so the caller retries
// from a fresh snapshot.
func (ts *TransactionService) persist(result *ledger.CommitResult) error {
	err := ts.repo.ExecTx(func(repo store.Repository) error {
		for _, account := range result.Accounts {
			if err := repo.UpdateAccount(account); err != nil {
				return err
			}
		}
		for _, tx := range result.Transactions {
			if err := repo.CreateTransaction(tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			return ledger.NewCommitError(ledger.KindStaleSnapshot, "%v", err)
		}
		return err
	}
	return nil
}

// periodTotals loads the prior same-day and same-month committed totals
// the validator needs for its period-limit checks.
func (ts *TransactionService) periodTotals(accountID string) (ledger.PeriodTotals, error) {
	now := ts.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	var totals ledger.PeriodTotals
	var err error

	if totals.DailyDeposits, err = ts.repo.PeriodTotal(accountID, ledger.TypeDeposit, dayStart, dayEnd); err != nil {
		return totals, err
	}
	if totals.DailyWithdrawals, err = ts.repo.PeriodTotal(accountID, ledger.TypeWithdrawal, dayStart, dayEnd); err != nil {
		return totals, err
	}
	if totals.MonthlyWithdrawals, err = ts.repo.PeriodTotal(accountID, ledger.TypeWithdrawal, monthStart, monthEnd); err != nil {
		return totals, err
	}
	return totals, nil
}

func reversalType(original ledger.TxType) ledger.TxType {
	switch original {
	case ledger.TypeWithdrawal:
		return ledger.TypeDeposit
	default:
		// Deposits, opening deposits and interest all reverse as a debit.
		return ledger.TypeWithdrawal
	}
}
