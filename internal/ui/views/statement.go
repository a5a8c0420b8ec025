package views

import (
	"github.com/pterm/pterm"

	"github.com/tmervil/sere/internal/ledger"
	"github.com/tmervil/sere/internal/service"
	"github.com/tmervil/sere/internal/ui"
	"github.com/tmervil/sere/internal/utils"
)

func RenderStatement(st *service.Statement) error {
	acc := st.Account

	pterm.Println()
	ui.PrintL1Title("Statement - %s", acc.AccountNumber)
	pterm.Printf("Customer %s, %s to %s\n\n",
		acc.CustomerID,
		st.From.Format("2006-01-02"),
		st.To.Format("2006-01-02"),
	)

	summaryData := pterm.TableData{
		{pterm.Blue("Opening Balance"), utils.FormatMoney(st.OpeningBalance, acc.Currency)},
		{pterm.Blue("Total Credits"), utils.FormatMoney(st.TotalCredits, acc.Currency)},
		{pterm.Blue("Total Debits"), utils.FormatMoney(st.TotalDebits, acc.Currency)},
		{pterm.Blue("Closing Balance"), utils.FormatMoney(st.ClosingBalance, acc.Currency)},
	}
	if err := pterm.DefaultTable.WithData(summaryData).Render(); err != nil {
		return err
	}

	if len(st.Transactions) == 0 {
		pterm.Info.Println("No transactions in this period")
		return nil
	}

	pterm.Println()
	ui.PrintL2Title("Activity")

	tableData := pterm.TableData{
		{"Date", "Reference", "Type", "Amount", "Balance", "Status"},
	}
	for _, tx := range st.Transactions {
		amount := utils.FormatFromCents(tx.Amount)
		if tx.Type == ledger.TypeWithdrawal {
			amount = pterm.Red("-" + amount)
		} else {
			amount = pterm.Green("+" + amount)
		}

		tableData = append(tableData, []string{
			tx.ProcessedAt.Format("2006-01-02"),
			tx.Reference,
			string(tx.Type),
			amount,
			utils.FormatFromCents(tx.BalanceAfter),
			ui.StatusText(string(tx.Status)),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}
