package account

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmervil/sere/internal/service"
	"github.com/tmervil/sere/internal/ui/views"
)

type statementFlags struct {
	From string
	To   string
}

func NewStatementCmd(svc *service.Service) *cobra.Command {
	flags := &statementFlags{}

	cmd := &cobra.Command{
		Use:   "statement [account-number]",
		Short: "Print an account statement",
		Long: `Print an account statement for a date range. Without flags the
statement covers the current calendar month.

Example: sere account statement 010233445566 --from 2026-08-01 --to 2026-09-01`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := resolveAccountNumber(svc, args, "Select an account:")
			if err != nil {
				return err
			}

			now := time.Now()
			from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
			to := from.AddDate(0, 1, 0)

			if flags.From != "" {
				if from, err = time.ParseInLocation("2006-01-02", flags.From, time.Local); err != nil {
					return fmt.Errorf("invalid --from date (want YYYY-MM-DD): %w", err)
				}
			}
			if flags.To != "" {
				if to, err = time.ParseInLocation("2006-01-02", flags.To, time.Local); err != nil {
					return fmt.Errorf("invalid --to date (want YYYY-MM-DD): %w", err)
				}
			}
			if !to.After(from) {
				return fmt.Errorf("--to must be after --from")
			}

			statement, err := svc.Reporting.Statement(number, from, to)
			if err != nil {
				return err
			}

			return views.RenderStatement(statement)
		},
	}

	cmd.Flags().StringVar(&flags.From, "from", "", "Start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.To, "to", "", "End date, exclusive (YYYY-MM-DD)")

	return cmd
}
