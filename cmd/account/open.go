package account

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tmervil/sere/internal/service"
	"github.com/tmervil/sere/internal/ui"
	"github.com/tmervil/sere/internal/ui/prompts"
	"github.com/tmervil/sere/internal/ui/views"
	"github.com/tmervil/sere/internal/utils"
)

type openFlags struct {
	CustomerID string
	Currency   string
	Deposit    string
	Operator   string
}

type OpenCommandRunner struct {
	svc   *service.Service
	flags *openFlags
}

func NewOpenCmd(svc *service.Service) *cobra.Command {
	flags := &openFlags{}

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open a new savings account",
		Long: `Open a new savings account with an opening deposit.

The opening deposit must meet the currency's required minimum and becomes
the account's first transaction.

Example: sere account open --customer C-1042 --currency HTG --deposit 1500`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &OpenCommandRunner{svc: svc, flags: flags}

			if cmd.Flags().Changed("customer") {
				return runner.FlagsMode()
			}
			return runner.InteractiveMode()
		},
	}

	cmd.Flags().StringVar(&flags.CustomerID, "customer", "", "Customer identifier")
	cmd.Flags().StringVar(&flags.Currency, "currency", "", "Account currency (HTG or USD, defaults to config default)")
	cmd.Flags().StringVarP(&flags.Deposit, "deposit", "d", "", "Opening deposit amount")
	cmd.Flags().StringVar(&flags.Operator, "operator", "", "Teller performing the operation")

	return cmd
}

func (r *OpenCommandRunner) FlagsMode() error {
	if r.flags.Deposit == "" {
		return fmt.Errorf("--deposit is required")
	}

	deposit, err := utils.ParseToCents(r.flags.Deposit)
	if err != nil {
		return err
	}

	return r.open(r.flags.CustomerID, r.flags.Currency, deposit)
}

func (r *OpenCommandRunner) InteractiveMode() error {
	customerID, err := prompts.PromptCustomerID()
	if err != nil {
		return err
	}

	currency, err := prompts.PromptCurrency(r.svc.Config().Defaults.Currency)
	if err != nil {
		return err
	}

	deposit, err := prompts.PromptTransactionAmount("Opening deposit:")
	if err != nil {
		return err
	}

	confirm, err := prompts.PromptConfirm(
		fmt.Sprintf("Open a %s account for %s with %s?",
			currency, customerID, utils.FormatMoney(deposit, currency)),
		true,
	)
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("account opening cancelled")
	}

	return r.open(customerID, string(currency), deposit)
}

func (r *OpenCommandRunner) open(customerID, currency string, deposit int64) error {
	if currency == "" {
		currency = r.svc.Config().Defaults.Currency
	}

	acc, tx, err := r.svc.Account.Open(service.OpenAccountInput{
		CustomerID:     customerID,
		Currency:       currency,
		InitialDeposit: deposit,
		Operator:       r.flags.Operator,
	})
	if err != nil {
		return err
	}

	ui.Separator()
	if err := views.RenderAccountDetail(acc); err != nil {
		return err
	}
	if err := views.RenderReceipt(tx, acc); err != nil {
		return err
	}
	pterm.Success.Printf("Account %s opened\n", acc.AccountNumber)
	return nil
}
