package views

import (
	"github.com/pterm/pterm"

	"github.com/tmervil/sere/internal/ledger"
	"github.com/tmervil/sere/internal/ui"
	"github.com/tmervil/sere/internal/utils"
)

// RenderReceipt prints the counter receipt handed to the customer after a
// completed operation.
func RenderReceipt(tx *ledger.Transaction, acc *ledger.Account) error {
	pterm.Println()
	ui.PrintL1Title("Receipt %s", tx.ReceiptNumber)

	tableData := pterm.TableData{
		{pterm.Blue("Date"), tx.ProcessedAt.Format("2006-01-02 15:04")},
		{pterm.Blue("Reference"), tx.Reference},
		{pterm.Blue("Operation"), string(tx.Type)},
		{pterm.Blue("Account"), acc.AccountNumber},
		{pterm.Blue("Amount"), utils.FormatMoney(tx.Amount, tx.Currency)},
		{pterm.Blue("New Balance"), utils.FormatMoney(tx.BalanceAfter, tx.Currency)},
		{pterm.Blue("Teller"), tx.ProcessedBy},
	}

	if err := pterm.DefaultTable.WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Success.Println("Transaction completed successfully!")
	return nil
}
