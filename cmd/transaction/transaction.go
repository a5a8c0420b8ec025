package transaction

import (
	"github.com/spf13/cobra"

	"github.com/tmervil/sere/internal/service"
)

func NewTransactionCmd(svc *service.Service) *cobra.Command {
	transactionCmd := &cobra.Command{
		Use:     "transaction",
		Aliases: []string{"tx"},
		Short:   "Record deposits, withdrawals, transfers and cancellations",
		Long:    `Record deposits, withdrawals, transfers and cancellations.`,
	}

	transactionCmd.AddCommand(NewDepositCmd(svc))
	transactionCmd.AddCommand(NewWithdrawCmd(svc))
	transactionCmd.AddCommand(NewTransferCmd(svc))
	transactionCmd.AddCommand(NewCancelCmd(svc))
	transactionCmd.AddCommand(NewInterestCmd(svc))
	transactionCmd.AddCommand(NewListCmd(svc))
	transactionCmd.AddCommand(NewShowCmd(svc))

	return transactionCmd
}
