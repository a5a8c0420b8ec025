package account

import (
	"github.com/spf13/cobra"

	"github.com/tmervil/sere/internal/service"
	"github.com/tmervil/sere/internal/ui/prompts"
	"github.com/tmervil/sere/internal/ui/views"
)

func NewShowCmd(svc *service.Service) *cobra.Command {
	var withHistory bool

	cmd := &cobra.Command{
		Use:   "show [account-number]",
		Short: "Show one account's details",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := resolveAccountNumber(svc, args, "Select an account:")
			if err != nil {
				return err
			}

			acc, err := svc.Account.GetByNumber(number)
			if err != nil {
				return err
			}

			if err := views.RenderAccountDetail(acc); err != nil {
				return err
			}

			if withHistory {
				transactions, err := svc.Transaction.History(number, 20)
				if err != nil {
					return err
				}
				return views.RenderTransactionList(transactions)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withHistory, "history", false, "Also show the last 20 transactions")

	return cmd
}

// resolveAccountNumber takes the number from args when given, otherwise
// prompts the teller to pick from the open accounts.
func resolveAccountNumber(svc *service.Service, args []string, message string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	accounts, err := svc.Account.List()
	if err != nil {
		return "", err
	}

	acc, err := prompts.PromptAccountSelection(accounts, message)
	if err != nil {
		return "", err
	}
	return acc.AccountNumber, nil
}
