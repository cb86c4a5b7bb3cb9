// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package dom

import (
	"reflect"
	"testing"

	"github.com/wavetermdev/tsunamikit/vdom"
	"golang.org/x/net/html"
)

func text(id string, s string) vdom.RenderedElem {
	return vdom.RenderedElem{WaveId: id, Tag: vdom.TextTag, Text: s}
}

func TestParseStyle(t *testing.T) {
	decls, err := ParseStyle(`color: red; background: url("a;b.png"); color: blue; width:calc(1px + 2px)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []StyleDecl{
		{Name: "color", Value: "blue"},
		{Name: "background", Value: `url("a;b.png")`},
		{Name: "width", Value: "calc(1px + 2px)"},
	}
	if !reflect.DeepEqual(decls, want) {
		t.Fatalf("expected %v, got %v", want, decls)
	}
	for _, bad := range []string{"color red", "width: calc(1px", `content: "x`, ": red"} {
		if _, err := ParseStyle(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestStyleDecls(t *testing.T) {
	decls, err := StyleDecls(map[string]any{"zIndex": 2, "backgroundColor": "red", "--gap": "4px"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := FormatStyle(decls); got != "--gap: 4px; background-color: red; z-index: 2" {
		t.Fatalf("unexpected style %q", got)
	}
	if _, err := StyleDecls(12); err == nil {
		t.Fatalf("expected error for non style value")
	}
}

func TestClassAndStyleMutation(t *testing.T) {
	n := &html.Node{Type: html.ElementNode, Data: "div"}
	added := AddClass(n, "a", "b", "a")
	if !reflect.DeepEqual(added, []string{"a", "b"}) {
		t.Fatalf("unexpected added classes %v", added)
	}
	if added := AddClass(n, "b"); len(added) != 0 {
		t.Fatalf("expected no classes added, got %v", added)
	}
	RemoveClass(n, "a")
	if HasClass(n, "a") || !HasClass(n, "b") {
		t.Fatalf("unexpected class list %v", ClassList(n))
	}
	RemoveClass(n, "b")
	if _, ok := GetAttr(n, "class"); ok {
		t.Fatalf("empty class attribute should be removed")
	}
	MergeStyle(n, []StyleDecl{{Name: "color", Value: "red"}})
	MergeStyle(n, []StyleDecl{{Name: "width", Value: "1px"}, {Name: "color", Value: "blue"}})
	if got, _ := GetAttr(n, "style"); got != "color: blue; width: 1px" {
		t.Fatalf("unexpected style %q", got)
	}
	RemoveStyle(n, "color")
	if v, ok := GetStyle(n, "width"); !ok || v != "1px" {
		t.Fatalf("expected width to remain")
	}
}

func TestFind(t *testing.T) {
	doc, err := ParseDocument(`<div id="root"><p id="a"></p> text <span id="b"><i id="c"></i>x<b id="d"></b></span><em id="e"></em></div>`, "root")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	b := findById(doc.root, "b")
	idOf := func(n *html.Node) string {
		v, _ := GetAttr(n, "id")
		return v
	}
	tests := []struct {
		dir  Direction
		want string
	}{
		{Self, "b"},
		{Parent, "root"},
		{PrevSibling, "a"},
		{NextSibling, "e"},
		{FirstChild, "c"},
		{LastChild, "d"},
	}
	for _, tc := range tests {
		if got := idOf(Find(b, tc.dir)); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.dir, tc.want, got)
		}
	}
	for _, dir := range AllDirections {
		if !dir.Valid() {
			t.Errorf("%s should be valid", dir)
		}
	}
	if Direction("sideways").Valid() || Direction("").Valid() {
		t.Fatalf("unknown direction reported valid")
	}
	if Find(b, Direction("sideways")) != nil {
		t.Fatalf("unknown direction should find nothing")
	}
	if Find(findById(doc.root, "a"), PrevSibling) != nil {
		t.Fatalf("first child has no previous element sibling")
	}
	if Find(nil, Self) != nil {
		t.Fatalf("nil anchor should find nothing")
	}
}

func TestCommit(t *testing.T) {
	doc := NewDocument()
	ref := &vdom.VDomRef{Type: vdom.ObjectType_Ref, RefId: "r:0"}
	tree := &vdom.RenderedElem{
		WaveId: "1", Tag: "div",
		Props: map[string]any{"className": "box", "id": "main", "hidden": false, "ref": ref, "style": map[string]any{"fontSize": "12px"}},
		Children: []vdom.RenderedElem{
			text("2", "hi "),
			{Tag: vdom.FragmentTag, Children: []vdom.RenderedElem{
				{WaveId: "3", Tag: "b", Children: []vdom.RenderedElem{text("4", "there")}},
			}},
			{WaveId: "5", Tag: vdom.NullTag},
		},
	}
	doc.Commit(tree)
	want := `<div id="main" class="box" style="font-size: 12px">hi <b>there</b></div>`
	if got := doc.MountHTML(); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if !ref.HasCurrent || ref.Current != doc.Node("1") {
		t.Fatalf("expected ref to point at the committed div")
	}

	// out-of-band changes survive a commit that does not touch them
	div := doc.Node("1")
	AddClass(div, "extra")
	SetAttr(div, "title", "t")
	tree.Props["className"] = "box wide"
	doc.Commit(tree)
	if doc.Node("1") != div {
		t.Fatalf("expected node identity to be kept")
	}
	if !reflect.DeepEqual(ClassList(div), []string{"box", "extra", "wide"}) {
		t.Fatalf("unexpected classes %v", ClassList(div))
	}
	if v, _ := GetAttr(div, "title"); v != "t" {
		t.Fatalf("expected out-of-band attribute to survive")
	}

	tree.Props["className"] = "wide"
	delete(tree.Props, "id")
	doc.Commit(tree)
	if !reflect.DeepEqual(ClassList(div), []string{"extra", "wide"}) {
		t.Fatalf("unexpected classes %v", ClassList(div))
	}
	if _, ok := GetAttr(div, "id"); ok {
		t.Fatalf("expected dropped prop to be removed")
	}

	doc.Commit(nil)
	if got := doc.MountHTML(); got != "" {
		t.Fatalf("expected empty mount, got %q", got)
	}
	if ref.HasCurrent || ref.Current != nil {
		t.Fatalf("expected ref to be cleared on removal")
	}
	if doc.Node("1") != nil {
		t.Fatalf("expected node to be forgotten")
	}
}

func TestParseDocumentMissingMount(t *testing.T) {
	if _, err := ParseDocument(`<div id="x"></div>`, "root"); err == nil {
		t.Fatalf("expected error for missing mount element")
	}
}
