// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cfmm-labs/pairpool/consts"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(*cobra.Command, []string) {
		fmt.Printf("%s@%s\n", consts.Name, consts.Version)
	},
}
