// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

var versionVerbose bool

var versionCmd = &cobra.Command{
	Use:   "version [-v]",
	Short: "Print the version number of tsunamikit",
	RunE:  runVersionCmd,
}

func init() {
	versionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "Display full version information")
	rootCmd.AddCommand(versionCmd)
}

func runVersionCmd(cmd *cobra.Command, args []string) error {
	if !versionVerbose {
		WriteStdout("tsunamikit v%s\n", Version)
		return nil
	}
	WriteStdout("v%s (%s %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	WriteStdout("locale: %s\n", Config.Locale)
	WriteStdout("format: %s\n", Config.Format)
	WriteStdout("tick:   %s\n", Config.Tick)
	WriteStdout("addr:   %s\n", Config.Addr)
	return nil
}
