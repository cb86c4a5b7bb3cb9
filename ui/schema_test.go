// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPropsSchemas(t *testing.T) {
	schemas := PropsSchemas()
	countdown, ok := schemas["Countdown"]
	if !ok {
		t.Fatalf("missing Countdown schema")
	}
	barr, err := json.Marshal(countdown)
	if err != nil {
		t.Fatalf("cannot marshal schema: %v", err)
	}
	str := string(barr)
	if !strings.Contains(str, `"seconds"`) || !strings.Contains(str, `"m:s"`) {
		t.Fatalf("unexpected countdown schema %s", str)
	}
	if strings.Contains(str, "onExpire") {
		t.Fatalf("func props should not be in the schema: %s", str)
	}
	if _, ok := schemas["AttributeProxy"]; !ok {
		t.Fatalf("missing AttributeProxy schema")
	}
}
