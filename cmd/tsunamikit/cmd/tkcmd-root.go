// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/wavetermdev/tsunamikit/config"
	"github.com/wavetermdev/tsunamikit/ui"
)

var (
	rootCmd = &cobra.Command{
		Use:               "tsunamikit",
		Short:             "Declarative UI helpers for tsunami-style Go apps",
		Long:              `tsunamikit renders conditional trees, countdowns and attribute proxies, in the terminal or in a browser`,
		SilenceUsage:      true,
		PersistentPreRunE: preRunLoadConfig,
	}
)

var Version = "0.0.0"

var WrappedStdout io.Writer = os.Stdout
var WrappedStderr io.Writer = os.Stderr
var ExitCode int

var envFileArg string
var Config *config.Config

func WriteStderr(fmtStr string, args ...interface{}) {
	WrappedStderr.Write([]byte(fmt.Sprintf(fmtStr, args...)))
}

func WriteStdout(fmtStr string, args ...interface{}) {
	WrappedStdout.Write([]byte(fmt.Sprintf(fmtStr, args...)))
}

func preRunLoadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envFileArg)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	Config = cfg
	return nil
}

// addTimeFlags registers --format and --locale on cmd.  Unset flags fall back to
// the loaded config.
func addTimeFlags(cmd *cobra.Command, format *string, locale *string) {
	cmd.Flags().StringVarP(format, "format", "f", "", fmt.Sprintf("time format (%s)", joinNames(ui.AllFormats)))
	cmd.Flags().StringVarP(locale, "locale", "l", "", fmt.Sprintf("locale (%s)", joinNames(ui.AllLocales)))
}

func resolveTimeFlags(format string, locale string) (ui.Format, ui.Locale, error) {
	rtnFormat := Config.Format
	rtnLocale := Config.Locale
	if format != "" {
		parsed, err := ui.ParseFormat(format)
		if err != nil {
			return "", "", err
		}
		rtnFormat = parsed
	}
	if locale != "" {
		parsed, err := ui.ParseLocale(locale)
		if err != nil {
			return "", "", err
		}
		rtnLocale = parsed
	}
	return rtnFormat, rtnLocale, nil
}

func joinNames[T ~string](vals []T) string {
	rtn := ""
	for idx, val := range vals {
		if idx > 0 {
			rtn += ", "
		}
		rtn += fmt.Sprintf("%q", string(val))
	}
	return rtn
}

func Execute() {
	defer func() {
		r := recover()
		if r != nil {
			WriteStderr("[panic] %v\n", r)
			debug.PrintStack()
			os.Exit(1)
		}
		if ExitCode != 0 {
			os.Exit(ExitCode)
		}
	}()
	rootCmd.PersistentFlags().StringVarP(&envFileArg, "env", "e", config.DefaultEnvFile, "env file to load settings from")
	err := rootCmd.Execute()
	if err != nil {
		ExitCode = 1
	}
}
