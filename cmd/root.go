// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package cmd

import (
	"time"

	"github.com/flamerite/emberctl/pkg/flamerite"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	deviceAddress string
	scanTimeout   time.Duration
	retryAttempts int
	debug         bool
)

var rootCmd = &cobra.Command{
	Use:   "emberctl",
	Short: "Flamerite NITRAFlame fireplace controller",
	Long: `Emberctl - control Flamerite NITRAFlame electric fireplaces over
Bluetooth Low Energy.

Provides commands for discovering fireplaces, reading their status, and
setting power, heat output, thermostat, flame and fuel bed brightness and
colors. An interactive TUI (emberctl control) and a WebSocket bridge
(emberctl bridge) are available for continuous use.

Device selection:
  Scanned:  run without flags; the first advertised device is used
  Direct:   --address AA:BB:CC:DD:EE:FF skips scanning`,
	Version: "1.0.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&deviceAddress, "address", "a", "", "Device address (skips scanning)")
	rootCmd.PersistentFlags().DurationVar(&scanTimeout, "scan-timeout", 10*time.Second, "How long to scan when no address is given")
	rootCmd.PersistentFlags().IntVar(&retryAttempts, "retries", flamerite.DefaultRetryAttempts, "Connection attempts before giving up")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
