package errhandler

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/pterm/pterm"

	"github.com/tmervil/sere/internal/ledger"
	"github.com/tmervil/sere/internal/store"
)

// HandleError prints one operator-facing line per failure class. A Ctrl-C
// out of a prompt exits quietly.
func HandleError(err error) {
	if errors.Is(err, terminal.InterruptErr) || strings.Contains(err.Error(), "interrupt") {
		pterm.Warning.Println("Operation Cancelled")
		os.Exit(0)
	}

	var rejection *ledger.Rejection
	if errors.As(err, &rejection) {
		pterm.Error.Println("Transaction rejected:")
		for _, reason := range rejection.Reasons {
			pterm.Println(pterm.Red("  - " + reason.String()))
		}
		return
	}

	var commitErr *ledger.CommitError
	if errors.As(err, &commitErr) {
		switch commitErr.Kind {
		case ledger.KindStaleSnapshot:
			pterm.Warning.Println("The account changed while this operation was running. Please retry.")
		case ledger.KindPartialTransferFailure:
			pterm.Error.Println("Transfer failed after the debit was attempted; it has been rolled back.")
			pterm.Println(pterm.Red("  " + commitErr.Error()))
		default:
			pterm.Error.Println(commitErr.Error())
		}
		return
	}

	if errors.Is(err, store.ErrRecordNotFound) {
		pterm.Error.Println("No matching record found.")
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
