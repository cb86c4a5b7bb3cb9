// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/wavetermdev/tsunamikit/ui"
)

var formatTimeFormat string
var formatTimeLocale string

var formatTimeCmd = &cobra.Command{
	Use:   "formattime [-f format] [-l locale] seconds",
	Short: "Format a number of seconds",
	Args:  cobra.ExactArgs(1),
	RunE:  runFormatTimeCmd,
}

func init() {
	addTimeFlags(formatTimeCmd, &formatTimeFormat, &formatTimeLocale)
	rootCmd.AddCommand(formatTimeCmd)
}

func parseSecondsArg(arg string) (int, error) {
	seconds, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds %q: %w", arg, err)
	}
	if seconds < 0 {
		return 0, parseSecondsErr(seconds)
	}
	return seconds, nil
}

func parseSecondsErr(seconds int) error {
	return fmt.Errorf("seconds must not be negative, got %d", seconds)
}

func runFormatTimeCmd(cmd *cobra.Command, args []string) error {
	seconds, err := parseSecondsArg(args[0])
	if err != nil {
		return err
	}
	format, locale, err := resolveTimeFlags(formatTimeFormat, formatTimeLocale)
	if err != nil {
		return err
	}
	WriteStdout("%s\n", ui.FormatTime(seconds, format, locale))
	return nil
}
