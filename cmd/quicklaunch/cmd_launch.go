package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yairfalse/quicklaunch/internal/launcher"
)

var (
	launchName             string
	launchImageID          string
	launchInstanceType     string
	launchCount            int32
	launchSecurityGroups   []string
	launchKeyName          string
	launchAvailabilityZone string
)

// launchCmd represents the launch command
var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Launch one or more instances",
	Long: `Launch EC2 instances. Every flag left out falls back to its default:

  --image-id           ` + launcher.DefaultImageID + `
  --instance-type      ` + launcher.DefaultInstanceType + `
  --count              1
  --security-group     ` + launcher.DefaultSecurityGroup + `
  --key-name           ` + launcher.DefaultKeyName + `
  --availability-zone  ` + launcher.DefaultAvailabilityZone + `

With --name the new instances are tagged Name=<value>. The ids of the
created instances are printed one per line.`,
	Example: `  quicklaunch launch                                   # All defaults
  quicklaunch launch --name "New Instance" --count 2   # Two named instances
  quicklaunch launch --image-id ami-6cc2a85c --instance-type m1.small`,
	Args: cobra.NoArgs,
	RunE: runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)

	launchCmd.Flags().StringVarP(&launchName, "name", "n", "", "Name tag for the new instances")
	launchCmd.Flags().StringVar(&launchImageID, "image-id", "", "AMI to launch")
	launchCmd.Flags().StringVarP(&launchInstanceType, "instance-type", "t", "", "Instance type")
	launchCmd.Flags().Int32Var(&launchCount, "count", 0, "Number of instances")
	launchCmd.Flags().StringSliceVar(&launchSecurityGroups, "security-group", nil, "Security group name (repeatable)")
	launchCmd.Flags().StringVar(&launchKeyName, "key-name", "", "Key pair name")
	launchCmd.Flags().StringVar(&launchAvailabilityZone, "availability-zone", "", "Availability zone")
}

// launchRequest turns the flags the user actually set into a request;
// untouched flags stay unset so their defaults apply.
func launchRequest(cmd *cobra.Command) launcher.LaunchRequest {
	flags := cmd.Flags()
	var req launcher.LaunchRequest

	if flags.Changed("name") {
		req.Name = &launchName
	}
	if flags.Changed("image-id") {
		req.ImageID = &launchImageID
	}
	if flags.Changed("instance-type") {
		req.InstanceType = &launchInstanceType
	}
	if flags.Changed("count") {
		req.Count = &launchCount
	}
	if flags.Changed("security-group") {
		req.SecurityGroups = append([]string{}, launchSecurityGroups...)
	}
	if flags.Changed("key-name") {
		req.KeyName = &launchKeyName
	}
	if flags.Changed("availability-zone") {
		req.AvailabilityZone = &launchAvailabilityZone
	}
	return req
}

func runLaunch(cmd *cobra.Command, args []string) error {
	l, err := currentLauncher(cmd)
	if err != nil {
		return err
	}

	ids, err := l.Launch(cmd.Context(), launchRequest(cmd))
	for _, id := range ids {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return err
}
