// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pairpoold",
	Short: "Two-asset liquidity pool daemon",
	Long: `pairpoold serves a constant-function liquidity pool over JSON-RPC.

On first run it creates the pool and its asset ledgers from the
configured genesis. On later runs it reloads them from the database.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default pairpoold.yaml in . or $HOME/.pairpool)")
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(versionCmd)
}
