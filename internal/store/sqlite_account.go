package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite "github.com/mattn/go-sqlite3"
	"github.com/tmervil/sere/internal/ledger"
)

const accountColumns = `id, account_number, customer_id, currency, balance, available_balance,
    minimum_balance, status, daily_withdrawal_limit, daily_deposit_limit,
    monthly_withdrawal_limit, max_balance, min_withdrawal_amount, max_withdrawal_amount,
    version, opening_date, last_transaction_at, created_at, updated_at,
    closed_at, closed_by, closure_reason`

func (s *Store) CreateAccount(a *ledger.Account) error {
	_, err := s.db.Exec(`
        INSERT INTO accounts (`+accountColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
    `,
		a.ID, a.AccountNumber, a.CustomerID, string(a.Currency), a.Balance, a.AvailableBalance,
		a.MinimumBalance, string(a.Status), a.Limits.DailyWithdrawal, a.Limits.DailyDeposit,
		a.Limits.MonthlyWithdrawal, a.Limits.MaxBalance, a.Limits.MinWithdrawalAmount, a.Limits.MaxWithdrawalAmount,
		a.Version, a.OpeningDate.Unix(), unixOrNil(a.LastTransactionAt), a.CreatedAt.Unix(), a.UpdatedAt.Unix(),
		unixOrNil(a.ClosedAt), a.ClosedBy, a.ClosureReason,
	)
	if err != nil {
		var sqliteErr sqlite.Error
		if errors.As(err, &sqliteErr) {
			if sqliteErr.Code == sqlite.ErrConstraint || sqliteErr.ExtendedCode == sqlite.ErrConstraintUnique {
				return fmt.Errorf("failed to create account '%s': %w", a.AccountNumber, ErrAccountExists)
			}
		}
		return fmt.Errorf("failed to insert account : %w", err)
	}
	return nil
}

func (s *Store) GetAccountByID(id string) (*ledger.Account, error) {
	row := s.db.QueryRow("SELECT "+accountColumns+" FROM accounts WHERE id = ?", id)
	acct, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account with ID %s: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account with ID %s: %w", id, err)
	}
	return acct, nil
}

func (s *Store) GetAccountByNumber(number string) (*ledger.Account, error) {
	row := s.db.QueryRow("SELECT "+accountColumns+" FROM accounts WHERE account_number = ?", number)
	acct, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account '%s': %w", number, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account '%s' : %w", number, err)
	}
	return acct, nil
}

func (s *Store) AccountNumberExists(number string) (bool, error) {
	var exists bool
	row := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM accounts WHERE account_number = ?)", number)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return exists, nil
}

func (s *Store) ListAccounts() ([]*ledger.Account, error) {
	rows, err := s.db.Query("SELECT " + accountColumns + " FROM accounts ORDER BY account_number")
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*ledger.Account
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}

// UpdateAccount replaces the whole row, guarded by the version the
// snapshot carried when it was loaded. Zero rows affected means another
// commit got there first.
func (s *Store) UpdateAccount(a *ledger.Account) error {
	result, err := s.db.Exec(`
        UPDATE accounts
        SET balance = ?, available_balance = ?, minimum_balance = ?, status = ?,
            daily_withdrawal_limit = ?, daily_deposit_limit = ?, monthly_withdrawal_limit = ?,
            max_balance = ?, min_withdrawal_amount = ?, max_withdrawal_amount = ?,
            version = ?, last_transaction_at = ?, updated_at = ?,
            closed_at = ?, closed_by = ?, closure_reason = ?
        WHERE id = ? AND version = ?
    `,
		a.Balance, a.AvailableBalance, a.MinimumBalance, string(a.Status),
		a.Limits.DailyWithdrawal, a.Limits.DailyDeposit, a.Limits.MonthlyWithdrawal,
		a.Limits.MaxBalance, a.Limits.MinWithdrawalAmount, a.Limits.MaxWithdrawalAmount,
		a.Version, unixOrNil(a.LastTransactionAt), a.UpdatedAt.Unix(),
		unixOrNil(a.ClosedAt), a.ClosedBy, a.ClosureReason,
		a.ID, a.Version-1,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("account %s at version %d: %w", a.AccountNumber, a.Version-1, ErrVersionConflict)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*ledger.Account, error) {
	acct := &ledger.Account{}
	var (
		currency, status                    string
		openingDate, createdAt, updatedAt   int64
		lastTransactionAt, closedAt         sql.NullInt64
	)

	err := row.Scan(
		&acct.ID, &acct.AccountNumber, &acct.CustomerID, &currency, &acct.Balance, &acct.AvailableBalance,
		&acct.MinimumBalance, &status, &acct.Limits.DailyWithdrawal, &acct.Limits.DailyDeposit,
		&acct.Limits.MonthlyWithdrawal, &acct.Limits.MaxBalance, &acct.Limits.MinWithdrawalAmount, &acct.Limits.MaxWithdrawalAmount,
		&acct.Version, &openingDate, &lastTransactionAt, &createdAt, &updatedAt,
		&closedAt, &acct.ClosedBy, &acct.ClosureReason,
	)
	if err != nil {
		return nil, err
	}

	acct.Currency = ledger.Currency(currency)
	acct.Status = ledger.AccountStatus(status)
	acct.OpeningDate = time.Unix(openingDate, 0)
	acct.CreatedAt = time.Unix(createdAt, 0)
	acct.UpdatedAt = time.Unix(updatedAt, 0)
	acct.LastTransactionAt = timeOrNil(lastTransactionAt)
	acct.ClosedAt = timeOrNil(closedAt)

	return acct, nil
}

func unixOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func timeOrNil(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0)
	return &t
}
