package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yairfalse/quicklaunch/internal/filter"
	awsprovider "github.com/yairfalse/quicklaunch/internal/provider/aws"
	"github.com/yairfalse/quicklaunch/pkg/resource"
)

var (
	listOutput      string
	listAllRegions  bool
	listTags        []string
	listExcludeTags []string
	listStates      []string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List instances",
	Long: `List the instances visible in the configured region.

With --all-regions, every region returned by "quicklaunch regions" is
listed in turn through its own endpoint.

--tag, --exclude-tag and --state narrow the output after the instances
have been fetched.`,
	Example: `  quicklaunch list
  quicklaunch list --output json
  quicklaunch list --all-regions
  quicklaunch list --tag env=prod --state running`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "Output format: table, json")
	listCmd.Flags().BoolVar(&listAllRegions, "all-regions", false, "List instances in every region")
	listCmd.Flags().StringSliceVar(&listTags, "tag", nil, "Only instances with this key=value tag (repeatable)")
	listCmd.Flags().StringSliceVar(&listExcludeTags, "exclude-tag", nil, "Skip instances with this key=value tag (repeatable)")
	listCmd.Flags().StringSliceVar(&listStates, "state", nil, "Only instances in this state (repeatable)")
}

func listFilter() (*filter.Filter, error) {
	include, err := parseTags(listTags)
	if err != nil {
		return nil, err
	}
	exclude, err := parseTags(listExcludeTags)
	if err != nil {
		return nil, err
	}
	return filter.New(include, exclude, listStates), nil
}

func runList(cmd *cobra.Command, args []string) error {
	if err := validateOutput(listOutput); err != nil {
		return err
	}
	f, err := listFilter()
	if err != nil {
		return err
	}

	var resources []resource.Resource
	if listAllRegions {
		resources, err = listEveryRegion(cmd)
	} else {
		resources, err = listRegion(cmd, cfg.AWS.Region, endpointFlagOrConfig())
	}
	if err != nil {
		return err
	}

	return writeResources(cmd.OutOrStdout(), listOutput, f.Apply(resources))
}

func listRegion(cmd *cobra.Command, region, regionEndpoint string) ([]resource.Resource, error) {
	awsCfg := cfg.AWS
	awsCfg.Region = region

	l, err := newLauncher(cmd.Context(), awsCfg, regionEndpoint)
	if err != nil {
		return nil, err
	}

	instances, err := l.ListInstances(cmd.Context())
	if err != nil {
		return nil, err
	}

	resources := make([]resource.Resource, 0, len(instances))
	for _, inst := range instances {
		resources = append(resources, awsprovider.ToResource(inst, region))
	}
	return resources, nil
}

func listEveryRegion(cmd *cobra.Command) ([]resource.Resource, error) {
	l, err := currentLauncher(cmd)
	if err != nil {
		return nil, err
	}

	regions, err := l.ListInstancesPerRegion(cmd.Context())
	if err != nil {
		return nil, err
	}

	var all []resource.Resource
	for _, name := range sortedKeys(regions) {
		found, err := listRegion(cmd, name, regions[name])
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", name, err)
		}
		log.Debug().Str("region", name).Int("instances", len(found)).Msg("region listed")
		all = append(all, found...)
	}
	return all, nil
}
