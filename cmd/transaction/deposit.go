package transaction

import (
	"github.com/spf13/cobra"

	"github.com/tmervil/sere/internal/ledger"
	"github.com/tmervil/sere/internal/service"
)

func NewDepositCmd(svc *service.Service) *cobra.Command {
	flags := &tellerFlags{}

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Record a cash deposit",
		Long: `Record a cash deposit on an account.

Run without flags for the interactive teller flow.

Example: sere transaction deposit -a 010233445566 -m 1500`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &TellerRunner{svc: svc, flags: flags, kind: ledger.TypeDeposit}
			return runner.Run(cmd)
		},
	}

	flags.register(cmd)

	return cmd
}
