// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"errors"
	"fmt"
	"testing"
)

type testProps struct {
	Name     string         `json:"name"`
	Count    int            `json:"count,omitempty"`
	Attrs    map[string]any `json:"attrs"`
	OnChange func()         `json:"onChange"`
	Hidden   string         `json:"-"`
	internal int
}

func TestStructToMapRoundTrip(t *testing.T) {
	called := false
	attrs := map[string]any{"title": "x"}
	props := testProps{Name: "a", Attrs: attrs, OnChange: func() { called = true }, Hidden: "h", internal: 5}
	m, err := StructToMap(props)
	if err != nil {
		t.Fatalf("StructToMap: %v", err)
	}
	if _, ok := m["count"]; ok {
		t.Fatalf("omitempty field should be skipped: %v", m)
	}
	if _, ok := m["Hidden"]; ok {
		t.Fatalf("json:\"-\" field should be skipped: %v", m)
	}
	var out testProps
	if err := MapToStruct(m, &out); err != nil {
		t.Fatalf("MapToStruct: %v", err)
	}
	if out.Name != "a" {
		t.Errorf("name: %q", out.Name)
	}
	if !ValEqual(out.Attrs, attrs) {
		t.Errorf("attrs map should keep its identity")
	}
	out.OnChange()
	if !called {
		t.Errorf("func prop was not carried over")
	}
}

func TestMapToStructConvert(t *testing.T) {
	type namedInt int
	var out struct {
		Val namedInt `json:"val"`
	}
	if err := MapToStruct(map[string]any{"val": 7}, &out); err != nil {
		t.Fatalf("MapToStruct: %v", err)
	}
	if out.Val != 7 {
		t.Fatalf("val: %d", out.Val)
	}
	if err := MapToStruct(map[string]any{"val": "seven"}, &out); err == nil {
		t.Fatalf("expected conversion error")
	}
}

func TestDepsEqual(t *testing.T) {
	m := map[string]any{"a": 1}
	s := []int{1, 2}
	fn := func() {}
	tests := []struct {
		name string
		a, b []any
		want bool
	}{
		{"same scalars", []any{1, "x", true}, []any{1, "x", true}, true},
		{"numeric widen", []any{int64(3)}, []any{3.0}, true},
		{"changed scalar", []any{1}, []any{2}, false},
		{"number vs string", []any{1}, []any{"1"}, false},
		{"float32 widen", []any{float32(0.5)}, []any{0.5}, true},
		{"same map ref", []any{m}, []any{m}, true},
		{"other map", []any{m}, []any{map[string]any{"a": 1}}, false},
		{"same slice ref", []any{s}, []any{s}, true},
		{"func never equal", []any{fn}, []any{fn}, false},
		{"length", []any{1}, []any{1, 2}, false},
		{"nils", []any{nil}, []any{nil}, true},
	}
	for _, tc := range tests {
		if got := DepsEqual(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCodedError(t *testing.T) {
	err := Errorf("test:code", "bad value %d", 5)
	wrapped := fmt.Errorf("outer: %w", err)
	if GetErrorCode(wrapped) != "test:code" {
		t.Fatalf("code: %q", GetErrorCode(wrapped))
	}
	if GetErrorCode(errors.New("plain")) != "" {
		t.Fatalf("plain errors have no code")
	}
}

func TestPanicHandler(t *testing.T) {
	if PanicHandler("noop", nil) != nil {
		t.Fatalf("nil recover should produce nil error")
	}
	cause := errors.New("boom")
	err := PanicHandler("op", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("panic error should wrap the cause: %v", err)
	}
}
