package transaction

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tmervil/sere/internal/service"
	"github.com/tmervil/sere/internal/ui/prompts"
	"github.com/tmervil/sere/internal/ui/views"
)

func NewCancelCmd(svc *service.Service) *cobra.Command {
	var (
		reason   string
		operator string
	)

	cmd := &cobra.Command{
		Use:   "cancel <transaction-id>",
		Short: "Cancel a completed transaction",
		Long: `Cancel a completed transaction no older than 24 hours. The original
record stays on the ledger marked CANCELLED and a reversal entry
restores the balance.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := svc.Transaction.Get(args[0])
			if err != nil {
				return err
			}

			if err := views.RenderTransactionDetail(original); err != nil {
				return err
			}

			if reason == "" {
				reason, err = prompts.PromptCancellationReason()
				if err != nil {
					return err
				}
			}

			confirm, err := prompts.PromptConfirm(
				fmt.Sprintf("Cancel transaction %s?", original.Reference), false)
			if err != nil {
				return err
			}
			if !confirm {
				return fmt.Errorf("cancellation aborted")
			}

			reversal, err := svc.Transaction.Cancel(original.ID, reason, service.TxOptions{Operator: operator})
			if err != nil {
				return err
			}

			pterm.Success.Printf("Transaction %s cancelled, reversal %s posted\n",
				original.Reference, reversal.Reference)
			return nil
		},
	}

	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Cancellation reason")
	cmd.Flags().StringVar(&operator, "operator", "", "Teller performing the cancellation")

	return cmd
}
