// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import "github.com/wavetermdev/tsunamikit/vdom"

type ChildKey struct {
	Tag string
	Idx int
	Key string
}

// ComponentImpl is a node of the shadow tree kept between renders.  Hooks,
// keys and ids live here; the VDomElem it was rendered from is replaced on every
// render.
//
// A node holds exactly one kind of content: Text for "#text", Children for base
// elements and fragments, RenderedComp for registered components.
type ComponentImpl struct {
	WaveId string
	Tag    string
	Key    string
	Elem   *vdom.VDomElem

	Hooks []*Hook

	Text         string
	Children     []*ComponentImpl
	RenderedComp *ComponentImpl
}

func (c *ComponentImpl) compMatch(tag string, key string) bool {
	if c == nil {
		return false
	}
	return c.Tag == tag && c.Key == key
}
