package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mercator-hq/oneshot/pkg/cli"
	"mercator-hq/oneshot/pkg/envguard"
	"mercator-hq/oneshot/pkg/telemetry/logging"
)

var probeJSON bool

var probeCmd = &cobra.Command{
	Use:   "probe NAME...",
	Short: "Read names through the guard and report the result",
	Long: `Read each name twice through the guard and report what each read
returned (as a short preview) and whether the name is still visible in the
environment afterwards.

A protected name that was set should read the same value twice and no longer
be exposed. Unprotected names should stay exposed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := envguard.Default()
		results := probeNames(cmd.Context(), p.Engine, args)

		if err := p.WriteMetrics(); err != nil {
			p.Logger.Warn("failed to write metrics textfile", "error", err)
		}

		if err := outputFormatter(probeJSON).FormatTo(cmd.OutOrStdout(), probeReport(results)); err != nil {
			return cli.NewCommandError("probe", err)
		}
		return nil
	},
}

type probeResult struct {
	Name       string `json:"name"`
	Protected  bool   `json:"protected"`
	Present    bool   `json:"present"`
	First      string `json:"first"`
	Second     string `json:"second"`
	Consistent bool   `json:"consistent"`
	Exposed    bool   `json:"exposed"`
}

type probeReport []probeResult

func (r probeReport) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPROTECTED\tFIRST\tSECOND\tCONSISTENT\tEXPOSED")
	for _, res := range r {
		fmt.Fprintf(w, "%s\t%t\t%s\t%s\t%t\t%t\n",
			res.Name, res.Protected, res.First, res.Second, res.Consistent, res.Exposed)
	}
	_ = w.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}

// probeNames reads every name twice. Values are reported as previews only.
func probeNames(ctx context.Context, engine *envguard.Engine, names []string) []probeResult {
	results := make([]probeResult, 0, len(names))
	for _, name := range names {
		first, firstOK := engine.LookupEnvContext(ctx, name)
		second, secondOK := engine.LookupEnvContext(ctx, name)

		results = append(results, probeResult{
			Name:       name,
			Protected:  engine.Protected(ctx, name),
			Present:    firstOK,
			First:      previewOrAbsent(first, firstOK),
			Second:     previewOrAbsent(second, secondOK),
			Consistent: first == second && firstOK == secondOK,
			Exposed:    engine.Exposed(name),
		})
	}
	return results
}

func previewOrAbsent(value string, ok bool) string {
	if !ok {
		return "(absent)"
	}
	return logging.Preview(value)
}

func init() {
	probeCmd.Flags().BoolVar(&probeJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(probeCmd)
}
