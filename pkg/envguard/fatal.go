package envguard

import (
	"io"
	"log/slog"
	"os"

	"mercator-hq/oneshot/pkg/telemetry/logging"
)

// FatalFunc handles an unrecoverable binding failure. It is not expected to
// return.
type FatalFunc func(msg string, err error)

// ExitOnFatal logs to stderr and exits with status 2.
func ExitOnFatal(msg string, err error) {
	fatalLogger(os.Stderr).Error(msg, "error", err)
	os.Exit(2)
}

// fatalLogger is a plain text logger on w. Configuration is read through the
// binding that just failed, so none of it applies here.
func fatalLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, nil)).With("component", logging.Component)
}
