// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"fmt"
	"reflect"
	"strings"
)

// ReactNode types = nil | string | Elem

type Component[P any] func(props P) *VDomElem

func (e *VDomElem) Key() string {
	keyVal, ok := e.Props[KeyPropKey]
	if !ok {
		return ""
	}
	keyStr, ok := keyVal.(string)
	if ok {
		return keyStr
	}
	return ""
}

func (e *VDomElem) WithKey(key string) *VDomElem {
	if e == nil {
		return nil
	}
	if e.Props == nil {
		e.Props = make(map[string]any)
	}
	e.Props[KeyPropKey] = key
	return e
}

func TextElem(text string) VDomElem {
	return VDomElem{Tag: TextTag, Text: text}
}

// Fragment groups parts without a wrapping element.  Returns nil when there is nothing to render.
func Fragment(parts ...any) *VDomElem {
	children := ToElems(parts)
	if len(children) == 0 {
		return nil
	}
	return &VDomElem{Tag: FragmentTag, Children: children}
}

func Classes(classes ...any) string {
	var parts []string
	for _, class := range classes {
		switch c := class.(type) {
		case nil:
			continue
		case string:
			if c != "" {
				parts = append(parts, c)
			}
		}
		// Ignore any other types
	}
	return strings.Join(parts, " ")
}

func H(tag string, props map[string]any, children ...any) *VDomElem {
	rtn := &VDomElem{Tag: tag, Props: props}
	if len(children) > 0 {
		for _, part := range children {
			elems := PartToElems(part)
			rtn.Children = append(rtn.Children, elems...)
		}
	}
	return rtn
}

// E builds an element from a mix of props (VDomProp or map[string]any) and children.
func E(tag string, parts ...any) *VDomElem {
	rtn := &VDomElem{Tag: tag}
	for _, part := range parts {
		switch p := part.(type) {
		case VDomProp:
			if rtn.Props == nil {
				rtn.Props = make(map[string]any)
			}
			rtn.Props[p.Key] = p.Val
		case map[string]any:
			if rtn.Props == nil {
				rtn.Props = make(map[string]any)
			}
			for k, v := range p {
				rtn.Props[k] = v
			}
		default:
			rtn.Children = append(rtn.Children, PartToElems(part)...)
		}
	}
	return rtn
}

func P(key string, val any) VDomProp {
	return VDomProp{Key: key, Val: val}
}

func Class(className string) VDomProp {
	return VDomProp{Key: ClassNamePropKey, Val: className}
}

func ForEach[T any](items []T, fn func(T, int) any) []any {
	elems := make([]any, 0, len(items))
	for idx, item := range items {
		elems = append(elems, fn(item, idx))
	}
	return elems
}

func ToElems(part any) []VDomElem {
	return PartToElems(part)
}

func PartToElems(part any) []VDomElem {
	if part == nil {
		return nil
	}
	switch partTyped := part.(type) {
	case string:
		return []VDomElem{TextElem(partTyped)}
	case bool:
		// matches react
		if partTyped {
			return []VDomElem{TextElem("true")}
		}
		return nil
	case VDomElem:
		return []VDomElem{partTyped}
	case *VDomElem:
		if partTyped == nil {
			return nil
		}
		return []VDomElem{*partTyped}
	case []VDomElem:
		return partTyped
	case func() any:
		// deferred content, built only when it is actually rendered
		return PartToElems(partTyped())
	default:
		partVal := reflect.ValueOf(part)
		if partVal.Kind() == reflect.Slice {
			var rtn []VDomElem
			for i := 0; i < partVal.Len(); i++ {
				rtn = append(rtn, PartToElems(partVal.Index(i).Interface())...)
			}
			return rtn
		}
		if partVal.Kind() == reflect.Ptr && partVal.IsNil() {
			return nil
		}
		return []VDomElem{TextElem(fmt.Sprint(part))}
	}
}
