// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package vdom

const TextTag = "#text"
const FragmentTag = "#fragment"
const NullTag = "wave:null"

const KeyPropKey = "key"
const RefPropKey = "ref"
const ClassNamePropKey = "className"
const StylePropKey = "style"
const ChildrenPropKey = "children"

const ObjectType_Ref = "ref"

// vdom element
type VDomElem struct {
	Tag      string         `json:"tag"`
	Props    map[string]any `json:"props,omitempty"`
	Children []VDomElem     `json:"children,omitempty"`
	Text     string         `json:"text,omitempty"`
}

// a single prop, used by E() to tell props apart from children
type VDomProp struct {
	Key string
	Val any
}

// used in props.  Current is filled in by the host when the element is committed.
type VDomRef struct {
	Type       string `json:"type"`
	RefId      string `json:"refid"`
	HasCurrent bool   `json:"hascurrent,omitempty"`
	Current    any    `json:"-"`
}

type VDomSimpleRef[T any] struct {
	Current T `json:"current"`
}

// RenderedElem is the output of a render pass: base elements only (components are
// resolved), each tagged with the id of the component node that produced it.
type RenderedElem struct {
	WaveId   string         `json:"waveid,omitempty"`
	Tag      string         `json:"tag"`
	Props    map[string]any `json:"props,omitempty"`
	Children []RenderedElem `json:"children,omitempty"`
	Text     string         `json:"text,omitempty"`
}
