// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/wavetermdev/tsunamikit/cmd/tsunamikit/cmd"
)

// set by the build
var TsunamiKitVersion = "0.0.0"

func main() {
	cmd.Version = TsunamiKitVersion
	cmd.Execute()
}
