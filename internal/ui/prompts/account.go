package prompts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/tmervil/sere/internal/ledger"
	"github.com/tmervil/sere/internal/utils"
)

// PromptCurrency prompts for the account currency
func PromptCurrency(defaultCurrency string) (ledger.Currency, error) {
	options := []string{
		"HTG - Haitian Gourde",
		"USD - US Dollar",
	}

	def := options[0]
	if strings.HasPrefix(defaultCurrency, "USD") {
		def = options[1]
	}

	selected, err := PromptSelect("Account currency:", options, def)
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}

	return ledger.ParseCurrency(strings.Split(selected, " ")[0])
}

// PromptCustomerID prompts for the customer identifier
func PromptCustomerID() (string, error) {
	return PromptInput("Customer ID:", "", func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("customer ID is required")
		}
		return nil
	})
}

// PromptAccountSelection prompts the teller to pick one account, showing
// the balance next to each entry.
func PromptAccountSelection(accounts []*ledger.Account, message string) (*ledger.Account, error) {
	var open []*ledger.Account
	for _, acc := range accounts {
		if acc.Status != ledger.StatusClosed {
			open = append(open, acc)
		}
	}

	if len(open) == 0 {
		return nil, fmt.Errorf("no open accounts available")
	}

	accountMap := make(map[string]*ledger.Account)
	var opts []huh.Option[string]

	for _, acc := range open {
		display := fmt.Sprintf("%s  %s  %s (%s)",
			acc.AccountNumber,
			acc.CustomerID,
			utils.FormatMoney(acc.Balance, acc.Currency),
			acc.Status,
		)
		opts = append(opts, huh.NewOption(display, display))
		accountMap[display] = acc
	}

	var selected string

	err := huh.NewSelect[string]().
		Title(message).
		Options(opts...).
		Value(&selected).
		Height(15).
		Run()

	if err != nil {
		return nil, fmt.Errorf("input cancelled: %w", err)
	}

	return accountMap[selected], nil
}

// PromptClosureReason asks why an account is being closed
func PromptClosureReason() (string, error) {
	return PromptInput("Closure reason:", "", func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("closure reason is required")
		}
		return nil
	})
}

// PromptInitCurrency runs on the first execution to pick the branch's
// default account currency.
func PromptInitCurrency(currDefault string) (string, error) {
	selection := currDefault
	if selection == "" {
		selection = "HTG"
	}

	err := huh.NewSelect[string]().
		Title("Welcome to sere! This is the first execution, please set the default currency:").
		Description("New accounts will default to this currency unless the teller picks another").
		Options(
			huh.NewOption("HTG", "HTG"),
			huh.NewOption("USD", "USD"),
		).
		Value(&selection).
		Run()

	if err != nil {
		return "", err
	}

	return selection, nil
}
