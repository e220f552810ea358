package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/majorcontext/awscreds/internal/credentials"
)

var retrieveCreds bool

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the effective credential provider",
	Long: `Resolve loads the manifest, runs credential resolution and reports which
provider (or chain of providers) was selected. With --retrieve the
resolved provider is asked for credentials, printed in credential_process
format.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, _, provider, err := resolveProvider(ctx)
		if err != nil {
			return err
		}

		desc := credentials.Describe(provider)
		if jsonOut && !retrieveCreds {
			out, err := json.Marshal(map[string]string{"provider": desc})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}
		if !retrieveCreds {
			fmt.Fprintln(cmd.OutOrStdout(), desc)
			return nil
		}

		creds, err := provider.Retrieve(ctx)
		if err != nil {
			return fmt.Errorf("retrieving credentials from %s: %w", desc, err)
		}
		body, err := credentials.ProcessJSON(creds)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(body))
		return nil
	},
}

func init() {
	resolveCmd.Flags().BoolVar(&retrieveCreds, "retrieve", false, "retrieve credentials and print them in credential_process format")
	rootCmd.AddCommand(resolveCmd)
}
