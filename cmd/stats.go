package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmervil/sere/internal/service"
	"github.com/tmervil/sere/internal/ui/views"
)

type statsFlags struct {
	AsOf string
}

func NewStatsCmd(svc *service.Service) *cobra.Command {
	flags := &statsFlags{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show branch statistics",
		Long: `Show the derived branch statistics: account counts, balances by
currency, today's teller activity and the monthly rollup with its
growth rate. Statistics are recomputed from the ledger on every run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf := time.Now()
			if flags.AsOf != "" {
				parsed, err := time.ParseInLocation("2006-01-02", flags.AsOf, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --as-of date (want YYYY-MM-DD): %w", err)
				}
				// End of the requested day so its activity is included.
				asOf = parsed.AddDate(0, 0, 1).Add(-time.Second)
			}

			snap, err := svc.Reporting.Statistics(asOf)
			if err != nil {
				return fmt.Errorf("failed to compute statistics: %w", err)
			}

			return views.RenderStats(snap)
		},
	}

	cmd.Flags().StringVar(&flags.AsOf, "as-of", "", "Compute statistics as of this date (YYYY-MM-DD)")

	return cmd
}
