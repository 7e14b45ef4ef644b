// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package cmd

import (
	"fmt"

	"github.com/flamerite/emberctl/pkg/flamerite"
	"github.com/spf13/cobra"
)

var scanMaxDevices int

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover nearby fireplaces",
	Long: `Scan for advertised NITRAFlame fireplaces and list their addresses.

The scan runs for --scan-timeout, or stops early once --max devices have
been found. Use a listed address with --address on other commands.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanMaxDevices, "max", 0, "Stop after this many devices (0 scans until the timeout)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	ids, err := flamerite.Scan(scanTimeout, scanMaxDevices)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		fmt.Println("No devices found")
		return nil
	}

	fmt.Printf("Found %d device(s):\n", len(ids))
	for _, id := range ids {
		fmt.Printf("  %-20s %s\n", id.Address, id.Name)
	}
	return nil
}
