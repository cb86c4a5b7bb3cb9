// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package ui has declarative helpers for tsunamikit components: conditional
// blocks, switches, wrappers, an attribute proxy, a countdown and a debounce hook.
package ui

import (
	"github.com/wavetermdev/tsunamikit/cond"
	"github.com/wavetermdev/tsunamikit/vdom"
)

// groups children into a single content value
func group(children []any) any {
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	}
	return children
}

// returns nil (not a typed nil) when there is nothing to render
func fragment(parts []any) any {
	elem := vdom.Fragment(parts...)
	if elem == nil {
		return nil
	}
	return elem
}

func allNil(children []any) bool {
	for _, c := range children {
		if c != nil {
			return false
		}
	}
	return true
}

// Then marks children that render when the enclosing If is true.
func Then(children ...any) cond.Child {
	return cond.Tagged(cond.RoleThen, group(children))
}

// Else marks children that render when the enclosing If is false.
func Else(children ...any) cond.Child {
	return cond.Tagged(cond.RoleElse, group(children))
}

// ElseIf is Else(If(c, children...)).  The inner If only runs when the Else branch is taken.
func ElseIf(c cond.Condition, children ...any) cond.Child {
	return Else(func() any { return If(c, children...) })
}

// ThenIf is Then(If(c, children...)).
func ThenIf(c cond.Condition, children ...any) cond.Child {
	return Then(func() any { return If(c, children...) })
}

// If renders its Then children when c is true and its Else children when c is
// false.  Untagged children always render next to Then/Else children; without
// any Then or Else child they are the Then branch.  A single func() any child is
// only called when c is true.  c is evaluated at most once.
func If(c cond.Condition, children ...any) any {
	if allNil(children) {
		return nil
	}
	if len(children) == 1 {
		if fn, ok := children[0].(func() any); ok {
			if cond.Eval(c) {
				return fn()
			}
			return nil
		}
	}
	truth := cond.Bool(cond.Eval(c))
	descs := cond.Children(children...)
	block := isBlock(descs)
	for idx, desc := range descs {
		switch desc.Role {
		case cond.RoleThen:
			descs[idx] = cond.Case(truth, desc.Content)
		case cond.RoleElse:
			descs[idx] = cond.Case(!truth, desc.Content)
		case cond.RolePlain:
			if !block && !desc.IsNull() {
				descs[idx] = cond.Case(truth, desc.Content)
			}
		}
	}
	return fragment(cond.Select(cond.Classify(descs), cond.ModeMultiple))
}

func isBlock(descs []cond.Child) bool {
	for _, desc := range descs {
		if desc.Role == cond.RoleThen || desc.Role == cond.RoleElse {
			return true
		}
	}
	return false
}

// Case renders its children when c is true (subject to the Switch mode).
func Case(c cond.Condition, children ...any) cond.Child {
	return cond.Case(c, group(children))
}

// Default renders its children only when no Case of the Switch matched.
func Default(children ...any) cond.Child {
	return cond.Default(group(children))
}

// Switch renders the first matching Case, plus any untagged children.
// When no Case matches every Default and untagged child renders.
func Switch(children ...any) any {
	return SwitchMode(cond.ModeSingle, children...)
}

// SwitchMultiple renders every matching Case.
func SwitchMultiple(children ...any) any {
	return SwitchMode(cond.ModeMultiple, children...)
}

func SwitchMode(mode cond.Mode, children ...any) any {
	return fragment(cond.Resolve(mode, children...))
}

type WrapperOpts struct {
	In        bool
	Wrap      func(children any) any
	Component string         // element tag or registered component to wrap with
	Props     map[string]any // props for Component
}

// Wrapper renders its children wrapped (by Wrap, or else in Component) when In
// is set, and bare otherwise.  A single func() any child is called to build the children.
func Wrapper(opts WrapperOpts, children ...any) any {
	var content any
	if len(children) == 1 {
		if fn, ok := children[0].(func() any); ok {
			content = fn()
		} else {
			content = children[0]
		}
	} else if !allNil(children) {
		content = children
	}
	if opts.In && opts.Wrap != nil {
		return opts.Wrap(content)
	}
	if opts.In && opts.Component != "" {
		var props map[string]any
		if len(opts.Props) > 0 {
			props = make(map[string]any, len(opts.Props))
			for k, v := range opts.Props {
				props[k] = v
			}
		}
		return vdom.H(opts.Component, props, content)
	}
	if content == nil {
		return nil
	}
	return fragment([]any{content})
}
