package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yairfalse/quicklaunch/internal/launcher"
)

func newLifecycleCmd(use, short, verb string, action func(*launcher.Launcher, context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <instance-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := currentLauncher(cmd)
			if err != nil {
				return err
			}
			if err := action(l, cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, args[0])
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(
		newLifecycleCmd("start", "Start a stopped instance", "starting", (*launcher.Launcher).Start),
		newLifecycleCmd("stop", "Stop a running instance", "stopping", (*launcher.Launcher).Stop),
		newLifecycleCmd("terminate", "Terminate an instance", "terminating", (*launcher.Launcher).Terminate),
	)
}
