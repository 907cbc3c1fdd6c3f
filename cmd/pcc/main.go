// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// pcc is the operator CLI for a running gateway: health checks,
// quick resource listings, and demo-store seeding.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var gatewayURL string

var rootCmd = &cobra.Command{
	Use:   "pcc",
	Short: "Operator CLI for the LFX PCC gateway",
	Long: `pcc talks to a running gateway over HTTP.

Examples:
  pcc health                    # Gateway liveness
  pcc projects                  # List projects
  pcc seed --data /var/lib/pcc  # Seed a persistent demo store
  pcc version                   # Build information`,
	SilenceUsage: true,
}

func init() {
	defaultURL := os.Getenv("PCC_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&gatewayURL, "url", defaultURL,
		"Base URL of the gateway (also via PCC_URL)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}
