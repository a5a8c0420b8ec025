package account

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmervil/sere/internal/ledger"
	"github.com/tmervil/sere/internal/service"
	"github.com/tmervil/sere/internal/ui/views"
)

type listFlags struct {
	Status   string
	Currency string
}

type ListCommandRunner struct {
	svc   *service.Service
	flags *listFlags
}

func NewListCmd(svc *service.Service) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts with their balances",
		Long: `List accounts with their current and available balances.
You can filter by status or currency.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ListCommandRunner{svc: svc, flags: flags}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.Status, "status", "s", "", "Filter by status (ACTIVE, SUSPENDED, CLOSED, INACTIVE)")
	cmd.Flags().StringVar(&flags.Currency, "currency", "", "Filter by currency (HTG, USD)")

	return cmd
}

func (r *ListCommandRunner) Run() error {
	accounts, err := r.svc.Account.List()
	if err != nil {
		return fmt.Errorf("failed to get accounts: %w", err)
	}

	if r.flags.Status != "" || r.flags.Currency != "" {
		accounts = r.filter(accounts)
	}

	return views.RenderAccountList(accounts)
}

func (r *ListCommandRunner) filter(accounts []*ledger.Account) []*ledger.Account {
	var filtered []*ledger.Account
	for _, acc := range accounts {
		if r.flags.Status != "" && string(acc.Status) != r.flags.Status {
			continue
		}
		if r.flags.Currency != "" && string(acc.Currency) != r.flags.Currency {
			continue
		}
		filtered = append(filtered, acc)
	}
	return filtered
}
