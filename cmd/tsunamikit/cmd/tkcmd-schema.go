// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wavetermdev/tsunamikit/ui"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schemas of the component props",
	Args:  cobra.NoArgs,
	RunE:  runSchemaCmd,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchemaCmd(cmd *cobra.Command, args []string) error {
	barr, err := json.MarshalIndent(ui.PropsSchemas(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling schemas: %w", err)
	}
	WriteStdout("%s\n", barr)
	return nil
}
