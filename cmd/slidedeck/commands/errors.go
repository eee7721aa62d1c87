package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/slidedeck/internal/foundation/errors"
)

// ExitCode reports err on stderr and returns the process exit code.
func ExitCode(err error, verbose bool) int {
	return errors.NewCLIErrorAdapter(verbose, slog.Default()).Report(err)
}
