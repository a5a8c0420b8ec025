package utils

import (
	"fmt"
	"strings"

	"github.com/tmervil/sere/internal/ledger"
)

// centimesPerUnit converts between stored centimes and displayed units.
const centimesPerUnit = 100

func FormatFromCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s.%02d", sign, groupThousands(cents/centimesPerUnit), cents%centimesPerUnit)
}

// FormatMoney renders an amount with its currency, e.g. "1,500.00 HTG".
func FormatMoney(cents int64, currency ledger.Currency) string {
	return fmt.Sprintf("%s %s", FormatFromCents(cents), currency)
}

// ParseToCents parses a teller-typed amount ("150", "150.5", "150.50",
// "1,500.25") into centimes.
func ParseToCents(amountStr string) (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(amountStr), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}

	parts := strings.Split(cleaned, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid amount format: %s", amountStr)
	}

	var units int64
	if parts[0] != "" {
		if _, err := fmt.Sscanf(parts[0], "%d", &units); err != nil {
			return 0, fmt.Errorf("invalid amount: %s", amountStr)
		}
	}

	var centimes int64
	if len(parts) == 2 && parts[1] != "" {
		centStr := parts[1]
		if len(centStr) == 1 {
			centStr += "0" // "150.5" -> 50 centimes
		} else if len(centStr) > 2 {
			centStr = centStr[:2]
		}
		if _, err := fmt.Sscanf(centStr, "%d", &centimes); err != nil {
			return 0, fmt.Errorf("invalid centimes: %s", amountStr)
		}
	}

	return units*centimesPerUnit + centimes, nil
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
