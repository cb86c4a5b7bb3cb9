// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/wavetermdev/tsunamikit/engine"
	"github.com/wavetermdev/tsunamikit/util"
	"github.com/wavetermdev/tsunamikit/vdom"
)

// DefineComponent registers renderFn under name for every root and returns a
// typed constructor for its elements.  Props fields map to element props by
// their json names; a "children" field receives the element's children.
// Panics if the name is invalid or already taken.
func DefineComponent[P any](name string, renderFn func(props P) any) vdom.Component[P] {
	err := engine.RegisterDefaultComponent(name, renderFn)
	if err != nil {
		panic(fmt.Sprintf("cannot define component %q: %v", name, err))
	}
	return func(props P) *vdom.VDomElem {
		propMap, err := util.StructToMap(props)
		if err != nil {
			panic(fmt.Sprintf("invalid props for component %q: %v", name, err))
		}
		elem := &vdom.VDomElem{Tag: name}
		if len(propMap) == 0 {
			return elem
		}
		elem.Props = make(map[string]any, len(propMap))
		for k, v := range propMap {
			if k == vdom.ChildrenPropKey {
				elem.Children = append(elem.Children, vdom.ToElems(v)...)
				continue
			}
			elem.Props[k] = v
		}
		return elem
	}
}
