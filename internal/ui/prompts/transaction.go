package prompts

import (
	"fmt"
	"strings"

	"github.com/tmervil/sere/internal/utils"
)

// PromptOperationType prompts for the teller operation to perform
func PromptOperationType() (string, error) {
	options := []string{
		"Deposit",
		"Withdrawal",
		"Transfer",
	}

	selected, err := PromptSelect("Choose the operation:", options, "Deposit")
	if err != nil {
		return "", err
	}

	return selected, nil
}

// PromptTransactionAmount prompts for an amount and converts it to centimes
func PromptTransactionAmount(message string) (int64, error) {
	raw, err := PromptAmount(message, "e.g. 1500 or 1500.50", func(s string) error {
		v, err := utils.ParseToCents(s)
		if err != nil {
			return err
		}
		if v <= 0 {
			return fmt.Errorf("amount must be positive")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return utils.ParseToCents(raw)
}

// PromptVerificationMethod prompts for how the customer was identified
func PromptVerificationMethod() (string, error) {
	options := []string{
		"ID Card",
		"Passport",
		"Signature",
		"Known Customer",
	}

	selected, err := PromptSelect("Verification method:", options, "ID Card")
	if err != nil {
		return "", err
	}

	return selected, nil
}

// PromptCustomerPresent asks whether the customer is at the counter
func PromptCustomerPresent() (bool, error) {
	return PromptConfirm("Is the customer present?", true)
}

// PromptCancellationReason asks why a transaction is being cancelled
func PromptCancellationReason() (string, error) {
	return PromptInput("Cancellation reason:", "", func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("cancellation reason is required")
		}
		return nil
	})
}
