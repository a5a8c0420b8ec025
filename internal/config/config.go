package config

import (
	"github.com/tmervil/sere/internal/ledger"
)

type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Defaults   DefaultsConfig `mapstructure:"defaults"`
	Policy     PolicyConfig   `mapstructure:"policy"`
	ConfigPath string         `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type DefaultsConfig struct {
	Currency string `mapstructure:"currency"`
	// Operator is recorded as processed_by on every transaction until an
	// identity layer supplies it.
	Operator string `mapstructure:"operator"`
}

// CurrencyPolicy carries the product policy for one currency, in centimes.
// New accounts inherit the limit defaults; the per-transaction deposit
// bounds apply to every deposit regardless of account.
type CurrencyPolicy struct {
	MinimumOpeningDeposit  int64 `mapstructure:"minimum_opening_deposit"`
	MinimumBalance         int64 `mapstructure:"minimum_balance"`
	MinDeposit             int64 `mapstructure:"min_deposit"`
	MaxDeposit             int64 `mapstructure:"max_deposit"`
	DailyWithdrawalLimit   int64 `mapstructure:"daily_withdrawal_limit"`
	DailyDepositLimit      int64 `mapstructure:"daily_deposit_limit"`
	MonthlyWithdrawalLimit int64 `mapstructure:"monthly_withdrawal_limit"`
	MaxBalance             int64 `mapstructure:"max_balance"`
	MinWithdrawalAmount    int64 `mapstructure:"min_withdrawal_amount"`
	MaxWithdrawalAmount    int64 `mapstructure:"max_withdrawal_amount"`
}

type PolicyConfig struct {
	HTG CurrencyPolicy `mapstructure:"htg"`
	USD CurrencyPolicy `mapstructure:"usd"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ""},
		Defaults: DefaultsConfig{Currency: "HTG", Operator: "teller"},
		Policy: PolicyConfig{
			HTG: CurrencyPolicy{
				MinimumOpeningDeposit:  50000,
				MinimumBalance:         50000,
				MinDeposit:             10000,
				MaxDeposit:             100000000,
				DailyWithdrawalLimit:   20000000,
				DailyDepositLimit:      100000000,
				MonthlyWithdrawalLimit: 200000000,
				MaxBalance:             1000000000,
				MinWithdrawalAmount:    10000,
				MaxWithdrawalAmount:    5000000,
			},
			USD: CurrencyPolicy{
				MinimumOpeningDeposit:  2500,
				MinimumBalance:         2500,
				MinDeposit:             500,
				MaxDeposit:             1000000,
				DailyWithdrawalLimit:   200000,
				DailyDepositLimit:      1000000,
				MonthlyWithdrawalLimit: 2000000,
				MaxBalance:             10000000,
				MinWithdrawalAmount:    500,
				MaxWithdrawalAmount:    50000,
			},
		},
	}
}

// PolicyFor resolves the policy for a currency. Unknown currencies fall
// back to the HTG policy.
func (c *Config) PolicyFor(currency ledger.Currency) CurrencyPolicy {
	if currency == ledger.CurrencyUSD {
		return c.Policy.USD
	}
	return c.Policy.HTG
}

// DefaultLimits builds the account limits a newly opened account starts
// with under this policy.
func (p CurrencyPolicy) DefaultLimits() ledger.Limits {
	return ledger.Limits{
		DailyWithdrawal:     p.DailyWithdrawalLimit,
		DailyDeposit:        p.DailyDepositLimit,
		MonthlyWithdrawal:   p.MonthlyWithdrawalLimit,
		MaxBalance:          p.MaxBalance,
		MinWithdrawalAmount: p.MinWithdrawalAmount,
		MaxWithdrawalAmount: p.MaxWithdrawalAmount,
	}
}

// DepositPolicy is the validator-facing slice of the policy.
func (p CurrencyPolicy) DepositPolicy() ledger.DepositPolicy {
	return ledger.DepositPolicy{MinDeposit: p.MinDeposit, MaxDeposit: p.MaxDeposit}
}
