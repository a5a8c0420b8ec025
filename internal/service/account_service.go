package service

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/tmervil/sere/internal/config"
	"github.com/tmervil/sere/internal/ledger"
	"github.com/tmervil/sere/internal/store"
	"github.com/tmervil/sere/internal/utils"
)

type AccountService struct {
	repo   store.Repository
	config *config.Config
	engine *ledger.Engine
}

func NewAccountService(repo store.Repository, cfg *config.Config, engine *ledger.Engine) *AccountService {
	return &AccountService{repo: repo, config: cfg, engine: engine}
}

type OpenAccountInput struct {
	CustomerID     string
	Currency       string
	InitialDeposit int64 // centimes
	Operator       string
}

// Open creates an account with the policy defaults for its currency and
// commits the opening deposit as the account's first transaction.
func (as *AccountService) Open(input OpenAccountInput) (*ledger.Account, *ledger.Transaction, error) {
	if input.CustomerID == "" {
		return nil, nil, fmt.Errorf("customer id is required")
	}

	currency, err := ledger.ParseCurrency(input.Currency)
	if err != nil {
		return nil, nil, err
	}

	policy := as.config.PolicyFor(currency)
	if input.InitialDeposit < policy.MinimumOpeningDeposit {
		return nil, nil, fmt.Errorf("opening deposit %s is below the required minimum %s %s",
			utils.FormatFromCents(input.InitialDeposit), utils.FormatFromCents(policy.MinimumOpeningDeposit), currency)
	}

	number, err := as.generateAccountNumber()
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	account := &ledger.Account{
		ID:             uuid.NewString(),
		AccountNumber:  number,
		CustomerID:     input.CustomerID,
		Currency:       currency,
		Status:         ledger.StatusActive,
		MinimumBalance: policy.MinimumBalance,
		Limits:         policy.DefaultLimits(),
		OpeningDate:    now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	intent := ledger.Intent{
		Type:            ledger.TypeOpeningDeposit,
		SourceAccountID: account.ID,
		Amount:          input.InitialDeposit,
		Currency:        currency,
	}

	result, err := as.engine.Commit(intent, account, nil, input.Operator)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to commit opening deposit: %w", err)
	}

	opened := result.Account()
	tx := result.Transaction()

	err = as.repo.ExecTx(func(repo store.Repository) error {
		if err := repo.CreateAccount(opened); err != nil {
			return err
		}
		return repo.CreateTransaction(tx)
	})
	if err != nil {
		return nil, nil, err
	}

	return opened, tx, nil
}

func (as *AccountService) GetByNumber(number string) (*ledger.Account, error) {
	return as.repo.GetAccountByNumber(number)
}

func (as *AccountService) List() ([]*ledger.Account, error) {
	return as.repo.ListAccounts()
}

// Suspend blocks all teller operations on the account until reactivation.
func (as *AccountService) Suspend(number string, reason string) (*ledger.Account, error) {
	return as.setStatus(number, ledger.StatusSuspended, reason, "",
		func(a *ledger.Account) error {
			if a.Status != ledger.StatusActive {
				return fmt.Errorf("only active accounts can be suspended (current status %s)", a.Status)
			}
			return nil
		})
}

func (as *AccountService) Reactivate(number string) (*ledger.Account, error) {
	return as.setStatus(number, ledger.StatusActive, "", "",
		func(a *ledger.Account) error {
			if a.Status != ledger.StatusSuspended && a.Status != ledger.StatusInactive {
				return fmt.Errorf("account %s is not suspended or inactive", number)
			}
			return nil
		})
}

// Close marks the account closed. The balance must be zero: remaining
// funds are withdrawn or transferred first.
func (as *AccountService) Close(number string, closedBy, reason string) (*ledger.Account, error) {
	return as.setStatus(number, ledger.StatusClosed, reason, closedBy,
		func(a *ledger.Account) error {
			if a.Status == ledger.StatusClosed {
				return fmt.Errorf("account %s is already closed", number)
			}
			if a.Balance != 0 {
				return fmt.Errorf("account %s still holds %s %s; balance must be zero before closure",
					number, utils.FormatFromCents(a.Balance), a.Currency)
			}
			return nil
		})
}

func (as *AccountService) setStatus(number string, status ledger.AccountStatus, reason, closedBy string, check func(*ledger.Account) error) (*ledger.Account, error) {
	account, err := as.repo.GetAccountByNumber(number)
	if err != nil {
		return nil, err
	}
	if err := check(account); err != nil {
		return nil, err
	}

	now := time.Now()
	updated := account.Clone()
	updated.Status = status
	updated.Version++
	updated.UpdatedAt = now

	if status == ledger.StatusClosed {
		updated.ClosedAt = &now
		updated.ClosedBy = closedBy
		updated.ClosureReason = reason
	} else {
		updated.ClosedAt = nil
		updated.ClosedBy = ""
		updated.ClosureReason = ""
	}

	if err := as.repo.UpdateAccount(updated); err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			return nil, ledger.NewCommitError(ledger.KindStaleSnapshot, "account %s was modified concurrently", number)
		}
		return nil, err
	}
	return updated, nil
}

// generateAccountNumber produces a 12-digit account number, retrying the
// unlikely collisions.
func (as *AccountService) generateAccountNumber() (string, error) {
	for range 5 {
		number := fmt.Sprintf("%012d", rand.Int64N(1_000_000_000_000))
		exists, err := as.repo.AccountNumberExists(number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique account number")
}
