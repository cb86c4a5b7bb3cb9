// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"testing"

	"github.com/wavetermdev/tsunamikit/cond"
	"github.com/wavetermdev/tsunamikit/vdom"
)

func counting(val bool, calls *int) cond.Condition {
	return cond.Func(func() bool {
		*calls++
		return val
	})
}

func TestIfFunctionChild(t *testing.T) {
	built := 0
	fn := func() any {
		built++
		return vdom.H("b", nil, "yes")
	}
	if got := renderHTML(t, If(cond.Bool(true), fn)); got != "<b>yes</b>" {
		t.Fatalf("expected fn result, got %q", got)
	}
	if got := renderHTML(t, If(cond.Bool(false), fn)); got != "" {
		t.Fatalf("expected nothing, got %q", got)
	}
	if built != 1 {
		t.Fatalf("expected fn to be called only for the true branch, called %d times", built)
	}
}

func TestIfEmpty(t *testing.T) {
	if If(cond.Bool(true)) != nil {
		t.Fatalf("If without children should render nothing")
	}
	if If(cond.Bool(true), nil, nil) != nil {
		t.Fatalf("If with only nil children should render nothing")
	}
}

func TestIfThenElse(t *testing.T) {
	calls := 0
	block := func(val bool) any {
		return If(counting(val, &calls),
			Then(vdom.H("i", nil, "then")),
			"plain",
			Else(vdom.H("u", nil, "else"), "!"),
		)
	}
	if got := renderHTML(t, block(true)); got != "<i>then</i>plain" {
		t.Fatalf("unexpected true render %q", got)
	}
	if got := renderHTML(t, block(false)); got != "plain<u>else</u>!" {
		t.Fatalf("unexpected false render %q", got)
	}
	if calls != 2 {
		t.Fatalf("expected one evaluation per If, got %d", calls)
	}
}

func TestIfBlockKeepsUntagged(t *testing.T) {
	if got := renderHTML(t, If(cond.Bool(false), "plain", Then("t"), Else("e"))); got != "plaine" {
		t.Fatalf("expected plaine, got %q", got)
	}
	if got := renderHTML(t, If(cond.Bool(true), "plain", Then("t"), Else("e"))); got != "plaint" {
		t.Fatalf("expected plaint, got %q", got)
	}
	if got := renderHTML(t, If(cond.Bool(false), "plain", Then("t"))); got != "plain" {
		t.Fatalf("expected plain, got %q", got)
	}
}

func TestIfUntaggedOnly(t *testing.T) {
	if got := renderHTML(t, If(cond.Bool(true), "a", "b")); got != "ab" {
		t.Fatalf("expected ab, got %q", got)
	}
	if got := renderHTML(t, If(cond.Bool(false), "a", "b")); got != "" {
		t.Fatalf("expected nothing, got %q", got)
	}
}

func TestElseIfChain(t *testing.T) {
	innerCalls := 0
	chain := func(first bool) any {
		return If(cond.Bool(first),
			Then("first"),
			ElseIf(counting(true, &innerCalls),
				Then("second"),
				Else("third"),
			),
		)
	}
	if got := renderHTML(t, chain(true)); got != "first" {
		t.Fatalf("expected first, got %q", got)
	}
	if innerCalls != 0 {
		t.Fatalf("inner condition must not run when the outer branch is true")
	}
	if got := renderHTML(t, chain(false)); got != "second" {
		t.Fatalf("expected second, got %q", got)
	}
	if innerCalls != 1 {
		t.Fatalf("expected inner condition to run once, ran %d", innerCalls)
	}
	got := renderHTML(t, If(cond.Bool(true), ThenIf(cond.Bool(false), Then("x"), Else("y"))))
	if got != "y" {
		t.Fatalf("expected y, got %q", got)
	}
}

func TestSwitch(t *testing.T) {
	tests := []struct {
		name string
		got  any
		want string
	}{
		{
			name: "first match",
			got:  Switch(Case(cond.Bool(false), "a"), Case(cond.Bool(true), "b"), Case(cond.Bool(true), "c"), Default("d")),
			want: "b",
		},
		{
			name: "default when nothing matches",
			got:  Switch(Case(cond.Bool(false), "a"), Default("d")),
			want: "d",
		},
		{
			name: "untagged children always render",
			got:  Switch("<", Case(cond.Bool(true), "a"), Default("d"), ">"),
			want: "&lt;a&gt;",
		},
		{
			name: "multiple",
			got:  SwitchMultiple(Case(cond.Bool(true), "a"), Case(cond.Bool(false), "b"), Case(cond.Bool(true), "c"), Default("d")),
			want: "ac",
		},
		{
			name: "break",
			got:  SwitchMultiple(Case(cond.Bool(true), "a").WithBreak(), Case(cond.Bool(true), "b")),
			want: "a",
		},
		{
			name: "elements",
			got:  Switch(Case(cond.Bool(true), vdom.H("p", nil, "x"), vdom.H("p", nil, "y"))),
			want: "<p>x</p><p>y</p>",
		},
		{
			name: "empty",
			got:  Switch(),
			want: "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := renderHTML(t, tc.got); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSwitchBreakSkipsConditions(t *testing.T) {
	calls := 0
	Switch(Case(cond.Bool(false), "a").WithBreak(), Case(counting(true, &calls), "b"))
	if calls != 0 {
		t.Fatalf("conditions after a break must not be evaluated")
	}
}

func TestWrapper(t *testing.T) {
	span := func(children any) any {
		return vdom.H("span", nil, children)
	}
	tests := []struct {
		name string
		got  any
		want string
	}{
		{"empty", Wrapper(WrapperOpts{In: false}), ""},
		{"children only", Wrapper(WrapperOpts{In: true}, "Test string"), "Test string"},
		{"component", Wrapper(WrapperOpts{In: true, Component: "span"}, "Test string"), "<span>Test string</span>"},
		{"wrap func", Wrapper(WrapperOpts{In: true, Wrap: span}, "Test string"), "<span>Test string</span>"},
		{"not in", Wrapper(WrapperOpts{In: false, Wrap: span}, "Test string"), "Test string"},
		{"func child", Wrapper(WrapperOpts{In: true, Wrap: span}, func() any { return "Test string" }), "<span>Test string</span>"},
		{"wrap returns nil", Wrapper(WrapperOpts{In: true, Wrap: func(any) any { return nil }}, "Test string"), ""},
		{"component props", Wrapper(WrapperOpts{In: true, Component: "em", Props: map[string]any{"className": "w"}}, "a", "b"), `<em class="w">ab</em>`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := renderHTML(t, tc.got); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
