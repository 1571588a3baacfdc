/*
Package cli provides command-line helpers for the oneshot command.

Output Formatting:

Command results can be printed as text or JSON:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Text output uses the value's String method when it has one.

Errors:

CommandError wraps a failed subcommand. ExitError carries a child process's
exit status up to main without printing anything extra:

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}

Signal Forwarding:

A launcher relays SIGINT, SIGTERM and SIGHUP to its child for as long as the
child runs:

	stop := cli.ForwardSignals(cmd.Process)
	defer stop()
*/
package cli
