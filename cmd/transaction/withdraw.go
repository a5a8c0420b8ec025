package transaction

import (
	"github.com/spf13/cobra"

	"github.com/tmervil/sere/internal/ledger"
	"github.com/tmervil/sere/internal/service"
)

func NewWithdrawCmd(svc *service.Service) *cobra.Command {
	flags := &tellerFlags{}

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Record a cash withdrawal",
		Long: `Record a cash withdrawal from an account. The withdrawal must leave
at least the account's minimum balance and respect the daily and
monthly limits.

Run without flags for the interactive teller flow.

Example: sere transaction withdraw -a 010233445566 -m 200`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &TellerRunner{svc: svc, flags: flags, kind: ledger.TypeWithdrawal}
			return runner.Run(cmd)
		},
	}

	flags.register(cmd)

	return cmd
}
