package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/tmervil/sere/internal/ledger"
	"github.com/tmervil/sere/internal/stats"
	"github.com/tmervil/sere/internal/ui"
	"github.com/tmervil/sere/internal/utils"
)

func RenderStats(snap *stats.Snapshot) error {
	pterm.Println()
	ui.PrintL1Title("Branch Statistics - %s", snap.AsOf.Format("2006-01-02"))

	overviewData := pterm.TableData{
		{pterm.Blue("Total Accounts"), fmt.Sprintf("%d", snap.TotalAccounts)},
		{pterm.Blue("Active Accounts"), fmt.Sprintf("%d", snap.ActiveAccounts)},
		{pterm.Blue("Total Balance"), utils.FormatFromCents(snap.TotalBalance)},
		{pterm.Blue("Opened Today"), fmt.Sprintf("%d", snap.AccountsOpenedToday)},
		{pterm.Blue("Interest Paid (month)"), utils.FormatFromCents(snap.InterestPaid)},
	}
	if err := pterm.DefaultTable.WithData(overviewData).Render(); err != nil {
		return err
	}

	pterm.Println()
	ui.PrintL2Title("By Currency")
	currencyData := pterm.TableData{
		{"Currency", "Accounts", "Balance", "Share"},
	}
	for _, cur := range []ledger.Currency{ledger.CurrencyHTG, ledger.CurrencyUSD} {
		cs, ok := snap.ByCurrency[cur]
		if !ok {
			continue
		}
		currencyData = append(currencyData, []string{
			string(cur),
			fmt.Sprintf("%d", cs.Accounts),
			utils.FormatFromCents(cs.Balance),
			fmt.Sprintf("%.1f%%", cs.Percentage),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(currencyData).Render(); err != nil {
		return err
	}

	pterm.Println()
	ui.PrintL2Title("Today")
	dailyData := pterm.TableData{
		{"", "Count", "Total"},
		{"Deposits", fmt.Sprintf("%d", snap.Daily.DepositCount), pterm.Green(utils.FormatFromCents(snap.Daily.DepositTotal))},
		{"Withdrawals", fmt.Sprintf("%d", snap.Daily.WithdrawalCount), pterm.Red(utils.FormatFromCents(snap.Daily.WithdrawalTotal))},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(dailyData).Render(); err != nil {
		return err
	}

	pterm.Println()
	ui.PrintL2Title("This Month")
	monthlyData := pterm.TableData{
		{"", "Count", "Total", "Average"},
		{"Deposits",
			fmt.Sprintf("%d", snap.Monthly.DepositCount),
			pterm.Green(utils.FormatFromCents(snap.Monthly.DepositTotal)),
			utils.FormatFromCents(snap.Monthly.AvgDeposit)},
		{"Withdrawals",
			fmt.Sprintf("%d", snap.Monthly.WithdrawalCount),
			pterm.Red(utils.FormatFromCents(snap.Monthly.WithdrawalTotal)),
			utils.FormatFromCents(snap.Monthly.AvgWithdrawal)},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(monthlyData).Render(); err != nil {
		return err
	}

	growth := fmt.Sprintf("%.2f%%", snap.Monthly.GrowthRate)
	if snap.Monthly.GrowthRate >= 0 {
		growth = pterm.Green(growth)
	} else {
		growth = pterm.Red(growth)
	}
	pterm.Info.Printf("Monthly growth rate: %s\n", growth)

	return nil
}
