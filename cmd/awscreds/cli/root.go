// Package cli implements the awscreds command-line interface using Cobra.
// It provides commands for inspecting credential resolution and for serving
// resolved credentials to local consumers.
package cli

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/majorcontext/awscreds/internal/log"
)

var (
	verbose    bool
	jsonOut    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "awscreds",
	Short: "awscreds - AWS credential resolution for applications",
	Long: `awscreds resolves an effective AWS credential provider from an
awscreds.yaml manifest: static keys, EC2 instance profile, a named
shared-config profile, STS web identity federation, or the SDK default
chain when nothing is configured. Several configured sources form a chain
tried in a fixed precedence order.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Init(log.Options{
			Verbose:     verbose,
			JSONFormat:  jsonOut,
			Interactive: isatty.IsTerminal(os.Stderr.Fd()),
		})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to awscreds.yaml (env: AWSCREDS_CONFIG)")
}
