package account

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tmervil/sere/internal/service"
	"github.com/tmervil/sere/internal/ui/prompts"
	"github.com/tmervil/sere/internal/utils"
)

func NewSuspendCmd(svc *service.Service) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "suspend [account-number]",
		Short: "Suspend an account",
		Long:  `Suspend an account. A suspended account rejects every teller operation until it is reactivated.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := resolveAccountNumber(svc, args, "Select the account to suspend:")
			if err != nil {
				return err
			}

			if reason == "" {
				reason, err = prompts.PromptInput("Suspension reason:", "", nil)
				if err != nil {
					return err
				}
			}

			acc, err := svc.Account.Suspend(number, reason)
			if err != nil {
				return err
			}

			pterm.Warning.Printf("Account %s suspended\n", acc.AccountNumber)
			return nil
		},
	}

	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Suspension reason")

	return cmd
}

func NewReactivateCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "reactivate [account-number]",
		Short: "Reactivate a suspended account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := resolveAccountNumber(svc, args, "Select the account to reactivate:")
			if err != nil {
				return err
			}

			acc, err := svc.Account.Reactivate(number)
			if err != nil {
				return err
			}

			pterm.Success.Printf("Account %s is active again\n", acc.AccountNumber)
			return nil
		},
	}
}

func NewCloseCmd(svc *service.Service) *cobra.Command {
	var (
		reason   string
		operator string
	)

	cmd := &cobra.Command{
		Use:   "close [account-number]",
		Short: "Close an account",
		Long: `Close an account permanently. The balance must be zero: withdraw or
transfer the remaining funds first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := resolveAccountNumber(svc, args, "Select the account to close:")
			if err != nil {
				return err
			}

			acc, err := svc.Account.GetByNumber(number)
			if err != nil {
				return err
			}

			if acc.Balance != 0 {
				return fmt.Errorf("account %s still holds %s; withdraw the balance before closing",
					acc.AccountNumber, utils.FormatMoney(acc.Balance, acc.Currency))
			}

			if reason == "" {
				reason, err = prompts.PromptClosureReason()
				if err != nil {
					return err
				}
			}

			confirm, err := prompts.PromptConfirm(
				fmt.Sprintf("Close account %s permanently?", acc.AccountNumber), false)
			if err != nil {
				return err
			}
			if !confirm {
				return fmt.Errorf("account closure cancelled")
			}

			if operator == "" {
				operator = svc.Config().Defaults.Operator
			}

			closed, err := svc.Account.Close(number, operator, reason)
			if err != nil {
				return err
			}

			pterm.Success.Printf("Account %s closed\n", closed.AccountNumber)
			return nil
		},
	}

	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Closure reason")
	cmd.Flags().StringVar(&operator, "operator", "", "Teller performing the closure")

	return cmd
}
