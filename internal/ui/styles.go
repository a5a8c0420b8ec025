package ui

import (
	"fmt"

	"github.com/pterm/pterm"
)

func PrintL1Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	paddedText := fmt.Sprintf(" %s   ", text)

	style.Println(paddedText)
}

func PrintL2Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.FgCyan, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	paddedText := fmt.Sprintf("# %s   ", text)

	style.Println(paddedText)
}

// Separator prints the visual break used between a summary table and the
// confirmation that follows it.
func Separator() {
	pterm.Println(pterm.Green("----------------------------------------"))
}

// StatusText colors an account or transaction status for table cells.
func StatusText(status string) string {
	switch status {
	case "ACTIVE", "Completed":
		return pterm.Green(status)
	case "SUSPENDED", "Pending", "Processing":
		return pterm.Yellow(status)
	case "CLOSED", "Cancelled", "Failed":
		return pterm.Red(status)
	case "INACTIVE":
		return pterm.Gray(status)
	default:
		return status
	}
}
