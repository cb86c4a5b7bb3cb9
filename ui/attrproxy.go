// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/wavetermdev/tsunamikit/app"
	"github.com/wavetermdev/tsunamikit/dom"
	"github.com/wavetermdev/tsunamikit/vdom"
	"golang.org/x/net/html"
)

type AttributeProxyProps struct {
	Component  string          `json:"component,omitempty"` // element tag to render, default "div"
	Attributes map[string]any  `json:"attributes,omitempty"`
	Direction  dom.Direction   `json:"direction,omitempty" jsonschema:"enum=self,enum=parentElement,enum=previousElementSibling,enum=nextElementSibling,enum=firstElementChild,enum=lastElementChild"` // default dom.Self
	Props      map[string]any  `json:"props,omitempty"`
	Children   []vdom.VDomElem `json:"children,omitempty"`
}

// AttributeProxy renders Component and, once committed, applies Attributes to
// the element found in Direction from it.  Classes are added and removed again
// on cleanup, style declarations are merged, other attributes are set.  The
// attributes are re-applied when the Attributes map (by identity) or the
// Direction changes.
var AttributeProxy = app.DefineComponent("AttributeProxy", func(props AttributeProxyProps) any {
	ref := app.UseVDomRef()
	id := app.UseId()
	attrs := props.Attributes
	direction := props.Direction
	if direction == "" {
		direction = dom.Self
	}
	app.UseEffect(func() func() {
		if !direction.Valid() {
			log.Printf("attribute proxy %s: unknown direction %q\n", id, direction)
			return nil
		}
		anchor, _ := ref.Current.(*html.Node)
		if !ref.HasCurrent || anchor == nil {
			return nil
		}
		target := dom.Find(anchor, direction)
		if target == nil {
			return nil
		}
		added := applyAttributes(target, attrs)
		if len(added) == 0 {
			return nil
		}
		return func() {
			dom.RemoveClass(target, added...)
		}
	}, []any{attrs, direction})

	tag := props.Component
	if tag == "" {
		tag = "div"
	}
	elemProps := make(map[string]any, len(props.Props)+1)
	for k, v := range props.Props {
		elemProps[k] = v
	}
	elemProps[vdom.RefPropKey] = ref
	return vdom.H(tag, elemProps, props.Children)
})

// returns the classes that were added (not already present)
func applyAttributes(target *html.Node, attrs map[string]any) []string {
	var added []string
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		val := attrs[key]
		if val == nil {
			continue
		}
		switch key {
		case vdom.ClassNamePropKey:
			added = append(added, dom.AddClass(target, strings.Fields(fmt.Sprint(val))...)...)
		case vdom.StylePropKey:
			decls, err := dom.StyleDecls(val)
			if err != nil {
				log.Printf("attribute proxy: bad style: %v\n", err)
				continue
			}
			dom.MergeStyle(target, decls)
		default:
			dom.SetAttr(target, key, fmt.Sprint(val))
		}
	}
	return added
}
