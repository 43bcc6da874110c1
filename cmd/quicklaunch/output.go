package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/yairfalse/quicklaunch/pkg/resource"
)

func validateOutput(format string) error {
	switch format {
	case "table", "json":
		return nil
	}
	return fmt.Errorf("unknown output format %q (want table or json)", format)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetColumnSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func writeResources(w io.Writer, format string, resources []resource.Resource) error {
	if format == "json" {
		return writeJSON(w, resources)
	}

	table := newTable(w, []string{"ID", "NAME", "STATE", "TYPE", "ZONE", "LAUNCHED"})
	for _, r := range resources {
		launched := ""
		if !r.LaunchedAt.IsZero() {
			launched = r.LaunchedAt.UTC().Format(time.RFC3339)
		}
		table.Append([]string{r.ID, r.Name, r.Status, r.InstanceType, r.Zone, launched})
	}
	table.Render()
	return nil
}

func writeRegions(w io.Writer, format string, regions map[string]string) error {
	if format == "json" {
		return writeJSON(w, regions)
	}

	table := newTable(w, []string{"REGION", "ENDPOINT"})
	for _, name := range sortedKeys(regions) {
		table.Append([]string{name, regions[name]})
	}
	table.Render()
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
