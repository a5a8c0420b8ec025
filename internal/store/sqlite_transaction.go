package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tmervil/sere/internal/ledger"
)

const transactionColumns = `id, account_id, account_number, type, amount, currency,
    balance_before, balance_after, description, reference, receipt_number,
    processed_by, status, processed_at, created_at, related_transaction_id,
    verification_method, notes`

func (s *Store) CreateTransaction(t *ledger.Transaction) error {
	var related any
	if t.RelatedTransactionID != "" {
		related = t.RelatedTransactionID
	}

	_, err := s.db.Exec(`
        INSERT INTO transactions (`+transactionColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
    `,
		t.ID, t.AccountID, t.AccountNumber, string(t.Type), t.Amount, string(t.Currency),
		t.BalanceBefore, t.BalanceAfter, t.Description, t.Reference, t.ReceiptNumber,
		t.ProcessedBy, string(t.Status), t.ProcessedAt.Unix(), t.CreatedAt.Unix(), related,
		t.VerificationMethod, t.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction : %w", err)
	}
	return nil
}

func (s *Store) GetTransactionByID(id string) (*ledger.Transaction, error) {
	row := s.db.QueryRow("SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	return tx, nil
}

func (s *Store) ListTransactions(limit int) ([]*ledger.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(`
        SELECT `+transactionColumns+`
        FROM transactions
        ORDER BY processed_at DESC, id DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (s *Store) ListAccountTransactions(accountID string, limit int) ([]*ledger.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(`
        SELECT `+transactionColumns+`
        FROM transactions
        WHERE account_id = ?
        ORDER BY processed_at DESC, id DESC
        LIMIT ?
    `, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (s *Store) ListTransactionsInRange(accountID string, from, to time.Time) ([]*ledger.Transaction, error) {
	query := `
        SELECT ` + transactionColumns + `
        FROM transactions
        WHERE processed_at >= ? AND processed_at < ?
    `
	args := []any{from.Unix(), to.Unix()}
	if accountID != "" {
		query += " AND account_id = ?"
		args = append(args, accountID)
	}
	query += " ORDER BY processed_at ASC, id ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by date range: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// PeriodTotal backs the validator's period-limit checks: the sum of
// completed same-type amounts for one account inside [from, to).
func (s *Store) PeriodTotal(accountID string, txType ledger.TxType, from, to time.Time) (int64, error) {
	var total sql.NullInt64
	err := s.db.QueryRow(`
        SELECT SUM(amount)
        FROM transactions
        WHERE account_id = ? AND type = ? AND status = ?
          AND processed_at >= ? AND processed_at < ?
    `, accountID, string(txType), string(ledger.TxCompleted), from.Unix(), to.Unix()).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate period total: %w", err)
	}

	if total.Valid {
		return total.Int64, nil
	}
	return 0, nil
}

func (s *Store) UpdateTransactionStatus(id string, status ledger.TxStatus, notes string) error {
	result, err := s.db.Exec(`
        UPDATE transactions
        SET status = ?, notes = ?
        WHERE id = ?
    `, string(status), notes, id)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("transaction %s: %w", id, ErrRecordNotFound)
	}
	return nil
}

func scanTransactions(rows *sql.Rows) ([]*ledger.Transaction, error) {
	var transactions []*ledger.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

func scanTransaction(row rowScanner) (*ledger.Transaction, error) {
	tx := &ledger.Transaction{}
	var (
		txType, currency, status string
		processedAt, createdAt   int64
		related                  sql.NullString
	)

	err := row.Scan(
		&tx.ID, &tx.AccountID, &tx.AccountNumber, &txType, &tx.Amount, &currency,
		&tx.BalanceBefore, &tx.BalanceAfter, &tx.Description, &tx.Reference, &tx.ReceiptNumber,
		&tx.ProcessedBy, &status, &processedAt, &createdAt, &related,
		&tx.VerificationMethod, &tx.Notes,
	)
	if err != nil {
		return nil, err
	}

	tx.Type = ledger.TxType(txType)
	tx.Currency = ledger.Currency(currency)
	tx.Status = ledger.TxStatus(status)
	tx.ProcessedAt = time.Unix(processedAt, 0)
	tx.CreatedAt = time.Unix(createdAt, 0)
	if related.Valid {
		tx.RelatedTransactionID = related.String
	}

	return tx, nil
}
