package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// tagCmd represents the tag command
var tagCmd = &cobra.Command{
	Use:   "tag <instance-id> <key=value>...",
	Short: "Merge tags into an instance's tags",
	Long: `Set tags on an instance. Keys that already exist are overwritten;
tags not named on the command line are left as they are.`,
	Example: `  quicklaunch tag i-e366c3eb Name="New Instance for ChefExp" purpose=ci`,
	Args:    cobra.MinimumNArgs(2),
	RunE:    runTag,
}

func init() {
	rootCmd.AddCommand(tagCmd)
}

// parseTags parses key=value pairs. The value may be empty or contain '='.
func parseTags(pairs []string) (map[string]string, error) {
	tags := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid tag %q: expected key=value", pair)
		}
		tags[key] = value
	}
	return tags, nil
}

func runTag(cmd *cobra.Command, args []string) error {
	tags, err := parseTags(args[1:])
	if err != nil {
		return err
	}

	l, err := currentLauncher(cmd)
	if err != nil {
		return err
	}

	if err := l.SetTags(cmd.Context(), args[0], tags); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "tagged %s (%d tags)\n", args[0], len(tags))
	return nil
}
