// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cond

type MatchType int

const (
	MatchAlways MatchType = iota
	MatchCondition
	MatchDefault
)

type Result struct {
	Content any
	Match   MatchType
}

type Mode int

const (
	ModeSingle Mode = iota
	ModeMultiple
)

// Classify evaluates case conditions in order.  Cases that evaluate false are
// dropped.  A case with Break ends classification whatever its outcome, so the
// conditions of later children are never evaluated.
func Classify(children []Child) []Result {
	results := make([]Result, 0, len(children))
	for _, child := range children {
		switch child.Role {
		case RoleCase:
			if Eval(child.Cond) {
				results = append(results, Result{Content: child.Content, Match: MatchCondition})
			}
			if child.Break {
				return results
			}
		case RoleDefault:
			results = append(results, Result{Content: child.Content, Match: MatchDefault})
		default:
			results = append(results, Result{Content: child.Content, Match: MatchAlways})
		}
	}
	return results
}

// Select picks the content to render, in input order.  When no case matched every
// Always and Default entry is kept.  Otherwise Default entries are dropped, and in
// ModeSingle only the first matched case is kept.
func Select(results []Result, mode Mode) []any {
	hasMatch := false
	for _, res := range results {
		if res.Match == MatchCondition {
			hasMatch = true
			break
		}
	}
	rtn := make([]any, 0, len(results))
	if !hasMatch {
		for _, res := range results {
			rtn = append(rtn, res.Content)
		}
		return rtn
	}
	matched := false
	for _, res := range results {
		switch res.Match {
		case MatchAlways:
			rtn = append(rtn, res.Content)
		case MatchCondition:
			if mode == ModeSingle && matched {
				continue
			}
			matched = true
			rtn = append(rtn, res.Content)
		}
	}
	return rtn
}

func Resolve(mode Mode, children ...any) []any {
	return Select(Classify(Children(children...)), mode)
}
