// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package dom

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wavetermdev/tsunamikit/vdom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const DefaultMountId = "root"

const emptyPage = `<!DOCTYPE html><html><head><meta charset="utf-8"></head><body><div id="root"></div></body></html>`

// committed state of one element, used to diff the next commit against
type nodeState struct {
	attrs   map[string]string
	classes []string
	style   []StyleDecl
	ref     *vdom.VDomRef
}

// Document is a host for engine.RootElem.  Rendered elements are committed into
// the children of a mount element.  Nodes keep their identity across commits,
// and only attributes that changed since the previous commit are written, so
// out-of-band changes (classes added by an effect) survive re-renders.
//
// A Document is not safe for concurrent use, it belongs to the root's loop goroutine.
type Document struct {
	root   *html.Node
	mount  *html.Node
	nodes  map[string]*html.Node
	states map[string]*nodeState
}

func NewDocument() *Document {
	doc, err := ParseDocument(emptyPage, DefaultMountId)
	if err != nil {
		panic(fmt.Sprintf("cannot parse empty page: %v", err))
	}
	return doc
}

// ParseDocument parses a host page.  Rendered output replaces the children of the
// element with id mountId.
func ParseDocument(src string, mountId string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("error parsing document: %w", err)
	}
	mount := findById(root, mountId)
	if mount == nil {
		return nil, fmt.Errorf("mount element #%s not found", mountId)
	}
	return &Document{
		root:   root,
		mount:  mount,
		nodes:  make(map[string]*html.Node),
		states: make(map[string]*nodeState),
	}, nil
}

func findById(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		if val, ok := GetAttr(n, "id"); ok && val == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findById(c, id); found != nil {
			return found
		}
	}
	return nil
}

func (d *Document) Mount() *html.Node {
	return d.mount
}

// Node returns the committed node for a rendered element id.
func (d *Document) Node(waveId string) *html.Node {
	return d.nodes[waveId]
}

func (d *Document) Commit(root *vdom.RenderedElem) {
	seen := make(map[string]bool)
	var elems []vdom.RenderedElem
	if root != nil {
		elems = []vdom.RenderedElem{*root}
	}
	d.syncChildren(d.mount, elems, seen)
	for waveId, node := range d.nodes {
		if seen[waveId] {
			continue
		}
		if state := d.states[waveId]; state != nil {
			clearRef(state.ref, node)
		}
		delete(d.nodes, waveId)
		delete(d.states, waveId)
	}
}

func clearRef(ref *vdom.VDomRef, node *html.Node) {
	if ref == nil || ref.Current != node {
		return
	}
	ref.HasCurrent = false
	ref.Current = nil
}

func (d *Document) syncChildren(parent *html.Node, elems []vdom.RenderedElem, seen map[string]bool) {
	var wanted []*html.Node
	d.collectNodes(elems, seen, &wanted)
	for c := parent.FirstChild; c != nil; {
		next := c.NextSibling
		parent.RemoveChild(c)
		c = next
	}
	for _, n := range wanted {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		parent.AppendChild(n)
	}
}

// fragments are spliced into their parent, null elements are dropped
func (d *Document) collectNodes(elems []vdom.RenderedElem, seen map[string]bool, out *[]*html.Node) {
	for idx := range elems {
		elem := &elems[idx]
		switch elem.Tag {
		case vdom.FragmentTag:
			d.collectNodes(elem.Children, seen, out)
		case vdom.NullTag, "":
			continue
		default:
			*out = append(*out, d.syncNode(elem, seen))
		}
	}
}

func (d *Document) syncNode(elem *vdom.RenderedElem, seen map[string]bool) *html.Node {
	seen[elem.WaveId] = true
	node := d.nodes[elem.WaveId]
	if elem.Tag == vdom.TextTag {
		if node == nil || node.Type != html.TextNode {
			node = &html.Node{Type: html.TextNode}
			d.nodes[elem.WaveId] = node
		}
		node.Data = elem.Text
		return node
	}
	state := d.states[elem.WaveId]
	if node == nil || node.Type != html.ElementNode || node.Data != elem.Tag {
		if node != nil && state != nil {
			clearRef(state.ref, node)
		}
		node = &html.Node{Type: html.ElementNode, Data: elem.Tag, DataAtom: atom.Lookup([]byte(elem.Tag))}
		state = &nodeState{}
		d.nodes[elem.WaveId] = node
		d.states[elem.WaveId] = state
	}
	d.syncAttrs(node, state, elem.Props)
	d.syncChildren(node, elem.Children, seen)
	return node
}

func (d *Document) syncAttrs(node *html.Node, state *nodeState, props map[string]any) {
	attrs := make(map[string]string)
	var classes []string
	var style []StyleDecl
	var ref *vdom.VDomRef
	for key, val := range props {
		switch key {
		case vdom.RefPropKey:
			if r, ok := val.(*vdom.VDomRef); ok {
				ref = r
			}
		case vdom.ClassNamePropKey, "class":
			classes = strings.Fields(fmt.Sprint(val))
		case vdom.StylePropKey:
			decls, err := StyleDecls(val)
			if err == nil {
				style = decls
			}
		case vdom.ChildrenPropKey, vdom.KeyPropKey:
			continue
		default:
			attrVal, ok := attrString(val)
			if ok {
				attrs[attrName(key)] = attrVal
			}
		}
	}

	// plain attributes, new ones in sorted order
	for key := range state.attrs {
		if _, ok := attrs[key]; !ok {
			RemoveAttr(node, key)
		}
	}
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if prev, ok := state.attrs[key]; ok && prev == attrs[key] {
			continue
		}
		SetAttr(node, key, attrs[key])
	}
	state.attrs = attrs

	var dropped []string
	for _, c := range state.classes {
		if !containsStr(classes, c) {
			dropped = append(dropped, c)
		}
	}
	RemoveClass(node, dropped...)
	AddClass(node, classes...)
	state.classes = classes

	var droppedStyle []string
	for _, decl := range state.style {
		if !hasDecl(style, decl.Name) {
			droppedStyle = append(droppedStyle, decl.Name)
		}
	}
	RemoveStyle(node, droppedStyle...)
	var changedStyle []StyleDecl
	for _, decl := range style {
		if prev, ok := findDecl(state.style, decl.Name); ok && prev == decl.Value {
			continue
		}
		changedStyle = append(changedStyle, decl)
	}
	MergeStyle(node, changedStyle)
	state.style = style

	if state.ref != nil && state.ref != ref {
		clearRef(state.ref, node)
	}
	if ref != nil {
		ref.HasCurrent = true
		ref.Current = node
	}
	state.ref = ref
}

func hasDecl(decls []StyleDecl, name string) bool {
	_, ok := findDecl(decls, name)
	return ok
}

func findDecl(decls []StyleDecl, name string) (string, bool) {
	for _, decl := range decls {
		if decl.Name == name {
			return decl.Value, true
		}
	}
	return "", false
}

func attrName(key string) string {
	switch key {
	case "htmlFor":
		return "for"
	case "tabIndex":
		return "tabindex"
	}
	return key
}

// returns false when the attribute should be absent
func attrString(val any) (string, bool) {
	switch v := val.(type) {
	case nil:
		return "", false
	case bool:
		if !v {
			return "", false
		}
		return "", true
	case string:
		return v, true
	}
	return fmt.Sprint(val), true
}

// HTML renders the whole document.
func (d *Document) HTML() string {
	return OuterHTML(d.root)
}

// MountHTML renders the children of the mount element.
func (d *Document) MountHTML() string {
	return InnerHTML(d.mount)
}

func InnerHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return ""
		}
	}
	return sb.String()
}

func OuterHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}
