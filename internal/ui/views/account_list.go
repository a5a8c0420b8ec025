package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/tmervil/sere/internal/ledger"
	"github.com/tmervil/sere/internal/ui"
	"github.com/tmervil/sere/internal/utils"
)

func RenderAccountList(accounts []*ledger.Account) error {
	tableData := pterm.TableData{
		{"Account No.", "Customer", "Currency", "Balance", "Available", "Status", "Opened"},
	}

	for _, acc := range accounts {
		balance := utils.FormatFromCents(acc.Balance)
		available := utils.FormatFromCents(acc.AvailableBalance)

		if acc.Status == ledger.StatusActive {
			balance = pterm.Green(balance)
		} else {
			balance = pterm.Gray(balance)
		}

		tableData = append(tableData, []string{
			acc.AccountNumber,
			acc.CustomerID,
			string(acc.Currency),
			balance,
			available,
			ui.StatusText(string(acc.Status)),
			acc.OpeningDate.Format("2006-01-02"),
		})
	}

	pterm.DefaultSection.Printf("Account List")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d accounts\n", len(accounts))
	return nil
}

func RenderAccountDetail(acc *ledger.Account) error {
	pterm.Println()
	ui.PrintL2Title("Account %s", acc.AccountNumber)

	lastTx := "-"
	if acc.LastTransactionAt != nil {
		lastTx = acc.LastTransactionAt.Format("2006-01-02 15:04")
	}

	tableData := pterm.TableData{
		{pterm.Blue("Account No."), acc.AccountNumber},
		{pterm.Blue("Customer"), acc.CustomerID},
		{pterm.Blue("Currency"), string(acc.Currency)},
		{pterm.Blue("Balance"), utils.FormatMoney(acc.Balance, acc.Currency)},
		{pterm.Blue("Available"), utils.FormatMoney(acc.AvailableBalance, acc.Currency)},
		{pterm.Blue("Minimum Balance"), utils.FormatMoney(acc.MinimumBalance, acc.Currency)},
		{pterm.Blue("Status"), ui.StatusText(string(acc.Status))},
		{pterm.Blue("Opened"), acc.OpeningDate.Format("2006-01-02")},
		{pterm.Blue("Last Transaction"), lastTx},
		{pterm.Blue("Version"), fmt.Sprintf("%d", acc.Version)},
	}

	if acc.Status == ledger.StatusClosed {
		closedAt := "-"
		if acc.ClosedAt != nil {
			closedAt = acc.ClosedAt.Format("2006-01-02 15:04")
		}
		tableData = append(tableData,
			[]string{pterm.Blue("Closed At"), closedAt},
			[]string{pterm.Blue("Closed By"), acc.ClosedBy},
			[]string{pterm.Blue("Closure Reason"), acc.ClosureReason},
		)
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
