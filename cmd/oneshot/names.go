package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/oneshot/pkg/cli"
	"mercator-hq/oneshot/pkg/envguard"
)

var namesJSON bool

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "List the protected names",
	Long: `List the names the guard protects and whether they come from
ONESHOT_TOKENS or the built-in defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, source := envguard.Default().Engine.Names(cmd.Context())
		result := namesResult{Names: names, Source: string(source)}

		if err := outputFormatter(namesJSON).FormatTo(cmd.OutOrStdout(), result); err != nil {
			return cli.NewCommandError("names", err)
		}
		return nil
	},
}

type namesResult struct {
	Names  []string `json:"names"`
	Source string   `json:"source"`
}

func (r namesResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d protected names (%s)", len(r.Names), r.Source)
	for _, name := range r.Names {
		b.WriteString("\n  ")
		b.WriteString(name)
	}
	return b.String()
}

func outputFormatter(asJSON bool) cli.Formatter {
	if asJSON {
		return cli.NewFormatter(cli.FormatJSON)
	}
	return cli.NewFormatter(cli.FormatText)
}

func init() {
	namesCmd.Flags().BoolVar(&namesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(namesCmd)
}
