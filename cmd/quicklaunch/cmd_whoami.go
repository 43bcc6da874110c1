package main

import (
	"fmt"

	"github.com/spf13/cobra"

	awsprovider "github.com/yairfalse/quicklaunch/internal/provider/aws"
)

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show who the configured credentials authenticate as",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newSTSClient(cmd.Context(), cfg.AWS)
		if err != nil {
			return err
		}

		id, err := awsprovider.CallerIdentity(cmd.Context(), client)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "account: %s\narn:     %s\nuser:    %s\n", id.Account, id.ARN, id.UserID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
