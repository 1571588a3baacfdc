package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/oneshot/pkg/cli"
	"mercator-hq/oneshot/pkg/config"
	"mercator-hq/oneshot/pkg/envguard"
	"mercator-hq/oneshot/pkg/handoff"
	"mercator-hq/oneshot/pkg/telemetry/logging"
)

var (
	execTokensDir  string
	execHandoffDir string
)

var execCmd = &cobra.Command{
	Use:   "exec [flags] -- COMMAND [ARGS...]",
	Short: "Run a command with its credentials pre-staged",
	Long: `Collect the protected values, write them to a one-time hand-off file, and
run COMMAND with the protected names removed from its environment and
ONESHOT_CACHE_FILE pointing at the file. A guarded COMMAND loads the file at
startup and deletes it; the launcher removes it afterwards if it is still
there.

Values come from this process's environment and, with --tokens-dir, from one
file per name in a directory (mode 0600 or 0400). The environment wins.

SIGINT, SIGTERM and SIGHUP are forwarded to COMMAND, and its exit status is
passed on.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExec(cmd.Context(), args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func runExec(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// The launcher's own environment is read directly: it is the trusted side.
	cfg, cfgErr := config.Load(os.LookupEnv)
	logger := launcherLogger(cfg, stderr)
	if cfgErr != nil {
		logger.Warn("configuration problems, affected settings use defaults", "error", cfgErr)
	}

	names, source := envguard.ResolveNames(cfg.Tokens.String())

	sources := []handoff.Source{handoff.NewEnvSource()}
	if execTokensDir != "" {
		dir, err := handoff.NewDirSource(execTokensDir)
		if err != nil {
			return cli.NewCommandError("exec", err)
		}
		sources = append(sources, dir)
	}

	entries, err := handoff.Collect(ctx, names, sources...)
	if err != nil {
		return cli.NewCommandError("exec", err)
	}

	var path string
	if len(entries) > 0 {
		path, err = handoff.Write(execHandoffDir, entries)
		if err != nil {
			return cli.NewCommandError("exec", err)
		}
		defer func() {
			if err := handoff.Remove(path); err != nil {
				logger.Warn("failed to remove hand-off file", "path", path, "error", err)
			}
		}()
	}
	env := childEnv(os.Environ(), names, path)

	logger.Info("starting command",
		"command", argv[0],
		"staged", len(entries),
		"protected", len(names),
		"source", string(source),
	)

	return runChild(argv, env, stdin, stdout, stderr)
}

// runChild runs argv to completion. A non-zero exit status is returned as a
// *cli.ExitError.
func runChild(argv, env []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// #nosec G204 - running the operator's command is the purpose of exec
	c := exec.Command(argv[0], argv[1:]...)
	c.Env = env
	c.Stdin = stdin
	c.Stdout = stdout
	c.Stderr = stderr

	if err := c.Start(); err != nil {
		return cli.NewCommandError("exec", err)
	}

	stop := cli.ForwardSignals(c.Process)
	err := c.Wait()
	stop()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				// Killed by a signal.
				code = 1
			}
			return &cli.ExitError{Code: code}
		}
		return cli.NewCommandError("exec", fmt.Errorf("wait: %w", err))
	}
	return nil
}

// childEnv copies environ without the protected names and any inherited
// hand-off path, then points ONESHOT_CACHE_FILE at handoffPath when set.
func childEnv(environ, names []string, handoffPath string) []string {
	drop := make(map[string]bool, len(names)+1)
	for _, name := range names {
		drop[name] = true
	}
	drop[config.EnvCacheFile] = true

	env := make([]string, 0, len(environ)+1)
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if drop[name] {
			continue
		}
		env = append(env, kv)
	}

	if handoffPath != "" {
		env = append(env, config.EnvCacheFile+"="+handoffPath)
	}
	return env
}

func launcherLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level := cfg.Logging.Level
	if cfg.Logging.Debug {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, Format: cfg.Logging.Format, Writer: w})
	if err != nil {
		logger, _ = logging.New(logging.Config{Writer: w})
	}
	return logger
}

func init() {
	execCmd.Flags().StringVar(&execTokensDir, "tokens-dir", "", "directory with one secret file per protected name")
	execCmd.Flags().StringVar(&execHandoffDir, "handoff-dir", "", "directory for the hand-off file (default: system temp dir)")
	rootCmd.AddCommand(execCmd)
}
