package transaction

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

type transferFlags struct {
	tellerFlags
	To string
}

type TransferRunner struct {
	svc   *service.Service
	flags *transferFlags
}

func NewTransferCmd(svc *service.Service) *cobra.Command {
	flags := &transferFlags{}

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer between two accounts",
		Long: `Transfer funds between two accounts of the same currency. The
transfer is atomic: either both the debit and the credit are recorded
or neither is.

Example: sere transaction transfer -a 010233445566 --to 010277889900 -m 500`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &TransferRunner{svc: svc, flags: flags}

			if cmd.Flags().Changed("account") || cmd.Flags().Changed("to") {
				return runner.FlagsMode()
			}
			return runner.InteractiveMode()
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.To, "to", "", "Destination account number")

	return cmd
}

func (r *TransferRunner) FlagsMode() error {
	if r.flags.Account == "" || r.flags.To == "" || r.flags.Amount == "" {
		return fmt.Errorf("--account, --to and --amount are all required")
	}

	amount, err := utils.ParseToCents(r.flags.Amount)
	if err != nil {
		return err
	}

	return r.commit(r.flags.Account, r.flags.To, amount, r.flags.options())
}

func (r *TransferRunner) InteractiveMode() error {
	accounts, err := r.svc.Account.List()
	if err != nil {
		return err
	}

	source, err := prompts.PromptAccountSelection(accounts, "Transfer from:")
	if err != nil {
		return err
	}

	dest, err := prompts.PromptAccountSelection(accounts, "Transfer to:")
	if err != nil {
		return err
	}

	amount, err := prompts.PromptTransactionAmount(fmt.Sprintf("Transfer amount (%s):", source.Currency))
	if err != nil {
		return err
	}

	description, err := prompts.PromptDescription("Description (optional):", false)
	if err != nil {
		return err
	}

	confirm, err := prompts.PromptConfirm(
		fmt.Sprintf("Transfer %s from %s to %s?",
			utils.FormatMoney(amount, source.Currency), source.AccountNumber, dest.AccountNumber),
		true,
	)
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("transfer cancelled")
	}

	opts := r.flags.options()
	opts.Description = description

	return r.commit(source.AccountNumber, dest.AccountNumber, amount, opts)
}

func (r *TransferRunner) commit(source, dest string, amount int64, opts service.TxOptions) error {
	result, err := r.svc.Transaction.Transfer(source, dest, amount, opts)
	if err != nil {
		return err
	}

	if err := views.RenderReceipt(result.SourceTransaction, result.SourceAccount); err != nil {
		return err
	}

	ui.Separator()
	pterm.Info.Printf("Destination %s credited, new balance %s\n",
		result.DestinationAccount.AccountNumber,
		utils.FormatMoney(result.DestinationAccount.Balance, result.DestinationAccount.Currency),
	)
	return nil
}
