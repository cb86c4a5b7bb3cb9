// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package dom

import (
	"log"
	"strings"

	"golang.org/x/net/html"
)

func GetAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func SetAttr(n *html.Node, key string, val string) {
	if n == nil {
		return
	}
	for idx := range n.Attr {
		if n.Attr[idx].Namespace == "" && n.Attr[idx].Key == key {
			n.Attr[idx].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func RemoveAttr(n *html.Node, key string) {
	if n == nil {
		return
	}
	attrs := n.Attr[:0]
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			continue
		}
		attrs = append(attrs, attr)
	}
	n.Attr = attrs
}

func ClassList(n *html.Node) []string {
	val, _ := GetAttr(n, "class")
	return strings.Fields(val)
}

func HasClass(n *html.Node, class string) bool {
	for _, c := range ClassList(n) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds the classes not already present and returns the ones it added.
func AddClass(n *html.Node, classes ...string) []string {
	if n == nil {
		return nil
	}
	list := ClassList(n)
	var added []string
	for _, class := range classes {
		if class == "" || containsStr(list, class) {
			continue
		}
		list = append(list, class)
		added = append(added, class)
	}
	if len(added) > 0 {
		SetAttr(n, "class", strings.Join(list, " "))
	}
	return added
}

func RemoveClass(n *html.Node, classes ...string) {
	if n == nil {
		return
	}
	list := ClassList(n)
	kept := list[:0]
	for _, c := range list {
		if containsStr(classes, c) {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func nodeStyle(n *html.Node) []StyleDecl {
	val, ok := GetAttr(n, "style")
	if !ok {
		return nil
	}
	decls, err := ParseStyle(val)
	if err != nil {
		log.Printf("dom: ignoring unparsable style %q: %v\n", val, err)
		return nil
	}
	return decls
}

func writeStyle(n *html.Node, decls []StyleDecl) {
	if len(decls) == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", FormatStyle(decls))
}

// MergeStyle sets the given declarations on the node's inline style, keeping
// every other declaration already present.
func MergeStyle(n *html.Node, decls []StyleDecl) {
	if n == nil || len(decls) == 0 {
		return
	}
	cur := nodeStyle(n)
	for _, decl := range decls {
		cur = setDecl(cur, decl.Name, decl.Value)
	}
	writeStyle(n, cur)
}

func RemoveStyle(n *html.Node, names ...string) {
	if n == nil || len(names) == 0 {
		return
	}
	cur := nodeStyle(n)
	kept := cur[:0]
	for _, decl := range cur {
		if containsStr(names, decl.Name) {
			continue
		}
		kept = append(kept, decl)
	}
	writeStyle(n, kept)
}

func GetStyle(n *html.Node, name string) (string, bool) {
	for _, decl := range nodeStyle(n) {
		if decl.Name == name {
			return decl.Value, true
		}
	}
	return "", false
}

// TextContent concatenates the text nodes under n.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(TextContent(c))
	}
	return sb.String()
}
