// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package cond resolves which children of a conditional block render.
package cond

import (
	"fmt"

	"github.com/wavetermdev/tsunamikit/util"
)

const ErrCodeBadCondition = "cond:badcondition"

// Condition is either a Bool literal or a Func predicate.
type Condition interface {
	isCondition()
}

type Bool bool

type Func func() bool

func (Bool) isCondition() {}
func (Func) isCondition() {}

// Of converts an untyped condition (bool, func() bool, or a Condition).
func Of(v any) (Condition, error) {
	switch c := v.(type) {
	case Bool:
		return c, nil
	case Func:
		if c == nil {
			return nil, util.Errorf(ErrCodeBadCondition, "nil condition func")
		}
		return c, nil
	case bool:
		return Bool(c), nil
	case func() bool:
		if c == nil {
			return nil, util.Errorf(ErrCodeBadCondition, "nil condition func")
		}
		return Func(c), nil
	}
	return nil, util.Errorf(ErrCodeBadCondition, "condition must be a bool or func() bool, got %T", v)
}

// MustOf is Of for conditions known to be valid, it panics otherwise.
func MustOf(v any) Condition {
	c, err := Of(v)
	if err != nil {
		panic(fmt.Sprintf("invalid condition: %v", err))
	}
	return c
}

// Eval reports the truth of c, invoking it if it is a Func.  A nil Condition is false.
func Eval(c Condition) bool {
	switch cv := c.(type) {
	case Bool:
		return bool(cv)
	case Func:
		if cv == nil {
			return false
		}
		return cv()
	}
	return false
}
