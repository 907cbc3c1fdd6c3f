// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var healthJSONOutput bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check gateway liveness",
	RunE: func(cmd *cobra.Command, args []string) error {
		var status map[string]string
		if err := getJSON("/health", &status); err != nil {
			return err
		}
		if healthJSONOutput {
			return json.NewEncoder(os.Stdout).Encode(status)
		}
		fmt.Printf("%s %s (%s)\n", bold("gateway:"), status["status"], gatewayURL)
		return nil
	},
}

func init() {
	healthCmd.Flags().BoolVar(&healthJSONOutput, "json", false,
		"Output as JSON for scripting")
}
