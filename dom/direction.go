// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package dom

import "golang.org/x/net/html"

// Direction names an element relative to an anchor element.
type Direction string

const (
	Self        Direction = "self"
	Parent      Direction = "parentElement"
	PrevSibling Direction = "previousElementSibling"
	NextSibling Direction = "nextElementSibling"
	FirstChild  Direction = "firstElementChild"
	LastChild   Direction = "lastElementChild"
)

var AllDirections = []Direction{Self, Parent, PrevSibling, NextSibling, FirstChild, LastChild}

func (d Direction) Valid() bool {
	for _, v := range AllDirections {
		if d == v {
			return true
		}
	}
	return false
}

// Find returns the element in direction d from anchor, skipping text and comment
// nodes.  Returns nil when there is no such element or d is unknown.
func Find(anchor *html.Node, d Direction) *html.Node {
	if anchor == nil {
		return nil
	}
	switch d {
	case Self:
		return anchor
	case Parent:
		if p := anchor.Parent; p != nil && p.Type == html.ElementNode {
			return p
		}
		return nil
	case PrevSibling:
		for n := anchor.PrevSibling; n != nil; n = n.PrevSibling {
			if n.Type == html.ElementNode {
				return n
			}
		}
	case NextSibling:
		for n := anchor.NextSibling; n != nil; n = n.NextSibling {
			if n.Type == html.ElementNode {
				return n
			}
		}
	case FirstChild:
		for n := anchor.FirstChild; n != nil; n = n.NextSibling {
			if n.Type == html.ElementNode {
				return n
			}
		}
	case LastChild:
		for n := anchor.LastChild; n != nil; n = n.PrevSibling {
			if n.Type == html.ElementNode {
				return n
			}
		}
	}
	return nil
}
