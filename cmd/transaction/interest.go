package transaction

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmervil/sere/internal/service"
	"github.com/tmervil/sere/internal/ui/views"
	"github.com/tmervil/sere/internal/utils"
)

func NewInterestCmd(svc *service.Service) *cobra.Command {
	var (
		account  string
		amount   string
		operator string
	)

	cmd := &cobra.Command{
		Use:   "interest",
		Short: "Post an interest credit",
		Long: `Post an interest credit on an account. Interest postings are exempt
from the deposit limits but cannot push the balance over its ceiling.

Example: sere transaction interest -a 010233445566 -m 12.50`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if account == "" || amount == "" {
				return fmt.Errorf("both --account and --amount are required")
			}

			cents, err := utils.ParseToCents(amount)
			if err != nil {
				return err
			}

			tx, acc, err := svc.Transaction.PostInterest(account, cents, service.TxOptions{
				Description: "Interest credit",
				Operator:    operator,
			})
			if err != nil {
				return err
			}

			return views.RenderReceipt(tx, acc)
		},
	}

	cmd.Flags().StringVarP(&account, "account", "a", "", "Account number")
	cmd.Flags().StringVarP(&amount, "amount", "m", "", "Interest amount")
	cmd.Flags().StringVar(&operator, "operator", "", "Operator posting the interest")

	return cmd
}
