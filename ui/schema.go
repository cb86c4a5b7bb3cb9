// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"github.com/invopop/jsonschema"
)

// PropsSchemas returns the json schema of the props of each registered ui component.
func PropsSchemas() map[string]*jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
	}
	return map[string]*jsonschema.Schema{
		"AttributeProxy": reflector.Reflect(&AttributeProxyProps{}),
		"Countdown":      reflector.Reflect(&CountdownProps{}),
	}
}
