package main

import (
	"github.com/spf13/cobra"
)

var regionsOutput string

// regionsCmd represents the regions command
var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List regions and their EC2 endpoints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateOutput(regionsOutput); err != nil {
			return err
		}

		l, err := currentLauncher(cmd)
		if err != nil {
			return err
		}

		regions, err := l.ListInstancesPerRegion(cmd.Context())
		if err != nil {
			return err
		}
		return writeRegions(cmd.OutOrStdout(), regionsOutput, regions)
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)

	regionsCmd.Flags().StringVarP(&regionsOutput, "output", "o", "table", "Output format: table, json")
}
