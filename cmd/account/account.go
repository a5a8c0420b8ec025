package account

import (
	"github.com/spf13/cobra"

	"github.com/tmervil/sere/internal/service"
)

func NewAccountCmd(svc *service.Service) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Open, inspect, suspend and close savings accounts",
		Long:  `Open, inspect, suspend and close savings accounts.`,
	}

	accountCmd.AddCommand(NewOpenCmd(svc))
	accountCmd.AddCommand(NewListCmd(svc))
	accountCmd.AddCommand(NewShowCmd(svc))
	accountCmd.AddCommand(NewSuspendCmd(svc))
	accountCmd.AddCommand(NewReactivateCmd(svc))
	accountCmd.AddCommand(NewCloseCmd(svc))
	accountCmd.AddCommand(NewStatementCmd(svc))

	return accountCmd
}
