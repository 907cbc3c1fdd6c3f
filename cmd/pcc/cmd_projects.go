// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
)

var (
	projectsSearch     string
	projectsJSONOutput bool
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects known to the gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/api/projects"
		if projectsSearch != "" {
			path += "?search=" + url.QueryEscape(projectsSearch)
		}

		var projects []datatypes.Project
		if err := getJSON(path, &projects); err != nil {
			return err
		}
		if projectsJSONOutput {
			return json.NewEncoder(os.Stdout).Encode(projects)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, bold("SLUG\tNAME\tCOMMITTEES\tMEETINGS"))
		for _, p := range projects {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", p.Slug, p.Name, p.CommitteeCount, p.MeetingCount)
		}
		return w.Flush()
	},
}

func init() {
	projectsCmd.Flags().StringVarP(&projectsSearch, "search", "s", "",
		"Filter projects by name or description")
	projectsCmd.Flags().BoolVar(&projectsJSONOutput, "json", false,
		"Output as JSON for scripting")
}
