package ledger

import "time"

type TxType string

const (
	TypeDeposit        TxType = "Deposit"
	TypeWithdrawal     TxType = "Withdrawal"
	TypeInterest       TxType = "Interest"
	TypeOpeningDeposit TxType = "OpeningDeposit"

	// TypeTransfer only ever appears on an Intent. A committed transfer is
	// recorded as a Withdrawal on the source account and a Deposit on the
	// destination account, cross-linked via RelatedTransactionID.
	TypeTransfer TxType = "Transfer"
)

type TxStatus string

const (
	TxPending    TxStatus = "Pending"
	TxProcessing TxStatus = "Processing"
	TxCompleted  TxStatus = "Completed"
	TxCancelled  TxStatus = "Cancelled"
	TxFailed     TxStatus = "Failed"
)

// Intent is a proposed, not-yet-committed operation. It is transient: after
// validation it either becomes one or two Transaction records or is
// discarded with the rejection.
type Intent struct {
	Type                 TxType
	SourceAccountID      string
	DestinationAccountID string // required iff Type == TypeTransfer
	Amount               int64  // centimes, must be > 0
	Currency             Currency
	Description          string
	VerificationMethod   string
	CustomerPresent      bool
	Notes                string
}

// Transaction is the immutable record of a committed operation against one
// account. Once Status is Completed the record is append-only; corrections
// are new compensating transactions referencing this one.
type Transaction struct {
	ID            string
	AccountID     string
	AccountNumber string
	Type          TxType
	Amount        int64
	Currency      Currency
	BalanceBefore int64
	BalanceAfter  int64
	Description   string
	Reference     string
	ReceiptNumber string
	ProcessedBy   string
	Status        TxStatus
	ProcessedAt   time.Time
	CreatedAt     time.Time

	RelatedTransactionID string
	VerificationMethod   string
	Notes                string
}
