// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linuxfoundation/lfx-pcc/services/gateway/store"
)

var seedDataDir string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a persistent demo store",
	Long: `Creates (or refreshes) the demo fixtures in a BadgerDB directory.

Point the gateway's demo_data_dir at the same directory to serve the
seeded data across restarts. Seeding is idempotent; rerunning restores
the fixtures to their original state without touching other records.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(store.DefaultConfig(seedDataDir))
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Seed(); err != nil {
			return err
		}
		fmt.Printf("seeded demo fixtures into %s\n", seedDataDir)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedDataDir, "data", "", "BadgerDB directory to seed")
	seedCmd.MarkFlagRequired("data")
}
