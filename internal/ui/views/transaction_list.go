package views

import (
	"github.com/pterm/pterm"

	"github.com/tmervil/sere/internal/ledger"
	"github.com/tmervil/sere/internal/ui"
	"github.com/tmervil/sere/internal/utils"
)

func RenderTransactionList(transactions []*ledger.Transaction) error {
	tableData := pterm.TableData{
		{"Reference", "Account", "Type", "Amount", "Status", "Processed", "By"},
	}

	for _, tx := range transactions {
		amount := utils.FormatMoney(tx.Amount, tx.Currency)
		switch tx.Type {
		case ledger.TypeWithdrawal:
			amount = pterm.Red("-" + amount)
		case ledger.TypeDeposit, ledger.TypeOpeningDeposit, ledger.TypeInterest:
			amount = pterm.Green("+" + amount)
		}

		tableData = append(tableData, []string{
			tx.Reference,
			tx.AccountNumber,
			string(tx.Type),
			amount,
			ui.StatusText(string(tx.Status)),
			tx.ProcessedAt.Format("2006-01-02 15:04"),
			tx.ProcessedBy,
		})
	}

	pterm.DefaultSection.Printf("Transactions")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d transactions\n", len(transactions))
	return nil
}

func RenderTransactionDetail(tx *ledger.Transaction) error {
	pterm.Println()
	ui.PrintL2Title("Transaction %s", tx.Reference)

	related := tx.RelatedTransactionID
	if related == "" {
		related = "-"
	}
	notes := tx.Notes
	if notes == "" {
		notes = "-"
	}

	tableData := pterm.TableData{
		{pterm.Blue("ID"), tx.ID},
		{pterm.Blue("Reference"), tx.Reference},
		{pterm.Blue("Receipt No."), tx.ReceiptNumber},
		{pterm.Blue("Account"), tx.AccountNumber},
		{pterm.Blue("Type"), string(tx.Type)},
		{pterm.Blue("Amount"), utils.FormatMoney(tx.Amount, tx.Currency)},
		{pterm.Blue("Balance Before"), utils.FormatMoney(tx.BalanceBefore, tx.Currency)},
		{pterm.Blue("Balance After"), utils.FormatMoney(tx.BalanceAfter, tx.Currency)},
		{pterm.Blue("Status"), ui.StatusText(string(tx.Status))},
		{pterm.Blue("Description"), tx.Description},
		{pterm.Blue("Processed At"), tx.ProcessedAt.Format("2006-01-02 15:04:05")},
		{pterm.Blue("Processed By"), tx.ProcessedBy},
		{pterm.Blue("Related Tx"), related},
		{pterm.Blue("Notes"), notes},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
