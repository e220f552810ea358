package cli

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the caller identity for the resolved credentials",
	Long: `Whoami resolves the effective credential provider and calls
sts:GetCallerIdentity with it, printing the account, ARN and user ID.
Useful to verify that a manifest resolves to working credentials.`,
	Args: cobra.NoArgs,
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

		client := sts.New(sts.Options{Region: reg, Credentials: provider})
		out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
		if err != nil {
			return fmt.Errorf("calling sts:GetCallerIdentity: %w", err)
		}

		if jsonOut {
			body, err := json.Marshal(map[string]string{
				"account": aws.ToString(out.Account),
				"arn":     aws.ToString(out.Arn),
				"user_id": aws.ToString(out.UserId),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Account: %s\nArn:     %s\nUserId:  %s\n",
			aws.ToString(out.Account), aws.ToString(out.Arn), aws.ToString(out.UserId))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
