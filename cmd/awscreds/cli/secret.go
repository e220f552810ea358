package cli

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/spf13/cobra"
)

var secretCmd = &cobra.Command{
	Use:   "secret <secret-id>",
	Short: "Fetch a Secrets Manager secret with the resolved credentials",
	Long: `Secret resolves the effective credential provider and fetches a secret
value from AWS Secrets Manager with it. The secret ID may be a name or a
full ARN. This exercises the resolved provider against a real service
client the way downstream application code would.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, regions, provider, err := resolveProvider(ctx)
		if err != nil {
			return err
		}

		reg, err := regions.Region(ctx)
		if err != nil {
			return fmt.Errorf("resolving region: %w", err)
		}

		client := secretsmanager.New(secretsmanager.Options{Region: reg, Credentials: provider})
		out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
			SecretId: aws.String(args[0]),
		})
		if err != nil {
			return fmt.Errorf("fetching secret %q: %w", args[0], err)
		}

		if out.SecretString != nil {
			fmt.Fprintln(cmd.OutOrStdout(), aws.ToString(out.SecretString))
			return nil
		}
		cmd.OutOrStdout().Write(out.SecretBinary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(secretCmd)
}
