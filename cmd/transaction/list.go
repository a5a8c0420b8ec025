package transaction

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmervil/sere/internal/ledger"
	"github.com/tmervil/sere/internal/service"
	"github.com/tmervil/sere/internal/ui/views"
)

type listFlags struct {
	Account string
	Limit   int
}

func NewListCmd(svc *service.Service) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent transactions",
		Long: `List recent transactions across the branch, newest first.
Use --account to restrict the list to one account.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var transactions []*ledger.Transaction
			var err error

			if flags.Account != "" {
				transactions, err = svc.Transaction.History(flags.Account, flags.Limit)
			} else {
				transactions, err = svc.Transaction.Recent(flags.Limit)
			}
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}

			return views.RenderTransactionList(transactions)
		},
	}

	cmd.Flags().StringVarP(&flags.Account, "account", "a", "", "Only show this account's transactions")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "n", 20, "Maximum number of transactions to show")

	return cmd
}

func NewShowCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "show <transaction-id>",
		Short: "Show one transaction's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := svc.Transaction.Get(args[0])
			if err != nil {
				return err
			}
			return views.RenderTransactionDetail(tx)
		},
	}
}
