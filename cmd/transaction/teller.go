package transaction

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmervil/sere/internal/ledger"
	"github.com/tmervil/sere/internal/service"
	"github.com/tmervil/sere/internal/ui/prompts"
	"github.com/tmervil/sere/internal/ui/views"
	"github.com/tmervil/sere/internal/utils"
)

// tellerFlags are shared by deposit and withdraw.
type tellerFlags struct {
	Account      string
	Amount       string
	Description  string
	Verification string
	Absent       bool
	Notes        string
	Operator     string
}

func (f *tellerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Account, "account", "a", "", "Account number")
	cmd.Flags().StringVarP(&f.Amount, "amount", "m", "", "Amount, e.g. 1500 or 1500.50")
	cmd.Flags().StringVarP(&f.Description, "description", "d", "", "Description printed on the statement")
	cmd.Flags().StringVar(&f.Verification, "verification", "", "How the customer was identified")
	cmd.Flags().BoolVar(&f.Absent, "absent", false, "Customer is not at the counter")
	cmd.Flags().StringVar(&f.Notes, "notes", "", "Internal notes")
	cmd.Flags().StringVar(&f.Operator, "operator", "", "Teller performing the operation")
}

func (f *tellerFlags) options() service.TxOptions {
	return service.TxOptions{
		Description:        f.Description,
		VerificationMethod: f.Verification,
		CustomerPresent:    !f.Absent,
		Notes:              f.Notes,
		Operator:           f.Operator,
	}
}

// TellerRunner drives deposit and withdrawal in both flags and
// interactive mode.
type TellerRunner struct {
	svc   *service.Service
	flags *tellerFlags
	kind  ledger.TxType
}

func (r *TellerRunner) Run(cmd *cobra.Command) error {
	if cmd.Flags().Changed("account") || cmd.Flags().Changed("amount") {
		return r.flagsMode()
	}
	return r.interactiveMode()
}

func (r *TellerRunner) flagsMode() error {
	if r.flags.Account == "" || r.flags.Amount == "" {
		return fmt.Errorf("both --account and --amount are required")
	}

	amount, err := utils.ParseToCents(r.flags.Amount)
	if err != nil {
		return err
	}

	return r.commit(r.flags.Account, amount, r.flags.options())
}

func (r *TellerRunner) interactiveMode() error {
	accounts, err := r.svc.Account.List()
	if err != nil {
		return err
	}

	acc, err := prompts.PromptAccountSelection(accounts, fmt.Sprintf("Select the account for the %s:", r.verb()))
	if err != nil {
		return err
	}

	amount, err := prompts.PromptTransactionAmount(fmt.Sprintf("%s amount (%s):", r.verb(), acc.Currency))
	if err != nil {
		return err
	}

	verification, err := prompts.PromptVerificationMethod()
	if err != nil {
		return err
	}

	present := true
	if r.kind == ledger.TypeWithdrawal {
		if present, err = prompts.PromptCustomerPresent(); err != nil {
			return err
		}
	}

	description, err := prompts.PromptDescription("Description (optional):", false)
	if err != nil {
		return err
	}

	confirm, err := prompts.PromptConfirm(
		fmt.Sprintf("%s %s on account %s?", r.verb(), utils.FormatMoney(amount, acc.Currency), acc.AccountNumber),
		true,
	)
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("%s cancelled", r.verb())
	}

	opts := r.flags.options()
	opts.VerificationMethod = verification
	opts.CustomerPresent = present
	opts.Description = description

	return r.commit(acc.AccountNumber, amount, opts)
}

func (r *TellerRunner) commit(accountNumber string, amount int64, opts service.TxOptions) error {
	var (
		tx  *ledger.Transaction
		acc *ledger.Account
		err error
	)

	if r.kind == ledger.TypeWithdrawal {
		tx, acc, err = r.svc.Transaction.Withdraw(accountNumber, amount, opts)
	} else {
		tx, acc, err = r.svc.Transaction.Deposit(accountNumber, amount, opts)
	}
	if err != nil {
		return err
	}

	return views.RenderReceipt(tx, acc)
}

func (r *TellerRunner) verb() string {
	if r.kind == ledger.TypeWithdrawal {
		return "Withdrawal"
	}
	return "Deposit"
}
