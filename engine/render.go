// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"log"
	"reflect"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/wavetermdev/tsunamikit/util"
	"github.com/wavetermdev/tsunamikit/vdom"
)

func getElemKey(elem *vdom.VDomElem) string {
	if elem == nil {
		return ""
	}
	keyVal, ok := elem.Props[vdom.KeyPropKey]
	if !ok {
		return ""
	}
	return fmt.Sprint(keyVal)
}

func (r *RootElem) render(elem *vdom.VDomElem, comp **ComponentImpl) {
	if elem == nil || elem.Tag == "" {
		r.unmount(comp)
		return
	}
	elemKey := getElemKey(elem)
	if *comp == nil || !(*comp).compMatch(elem.Tag, elemKey) {
		r.unmount(comp)
		r.createComp(elem.Tag, elemKey, comp)
	}
	(*comp).Elem = elem
	if elem.Tag == vdom.TextTag {
		// Pattern 1: Text Nodes
		r.renderText(elem.Text, comp)
		return
	}
	if isBaseTag(elem.Tag) {
		// Pattern 2: Base elements
		r.renderSimple(elem, comp)
		return
	}
	cfunc := r.lookupCFunc(elem.Tag)
	if cfunc == nil {
		text := fmt.Sprintf("<%s>", elem.Tag)
		r.render(&vdom.VDomElem{Tag: vdom.TextTag, Text: text}, &(*comp).RenderedComp)
		return
	}
	// Pattern 3: components
	r.renderComponent(cfunc, elem, comp)
}

// Pattern 1
func (r *RootElem) renderText(text string, comp **ComponentImpl) {
	if (*comp).Text != text {
		(*comp).Text = text
	}
}

// Pattern 2
func (r *RootElem) renderSimple(elem *vdom.VDomElem, comp **ComponentImpl) {
	if (*comp).RenderedComp != nil {
		r.unmount(&(*comp).RenderedComp)
	}
	(*comp).Children = r.renderChildren(elem.Children, (*comp).Children)
}

// Pattern 3
func (r *RootElem) renderComponent(cfunc any, elem *vdom.VDomElem, comp **ComponentImpl) {
	if (*comp).Children != nil {
		for _, child := range (*comp).Children {
			r.unmount(&child)
		}
		(*comp).Children = nil
	}
	props := make(map[string]any)
	for k, v := range elem.Props {
		props[k] = v
	}
	if len(elem.Children) > 0 {
		props[vdom.ChildrenPropKey] = elem.Children
	}
	vc := makeContextVal(r, *comp)
	rtnElemArr := withGlobalCtx(vc, func() []vdom.VDomElem {
		renderedElem := callCFuncWithErrorGuard(cfunc, props, elem.Tag)
		return vdom.ToElems(renderedElem)
	})
	var rtnElem *vdom.VDomElem
	if len(rtnElemArr) == 0 {
		rtnElem = nil
	} else if len(rtnElemArr) == 1 {
		rtnElem = &rtnElemArr[0]
	} else {
		rtnElem = &vdom.VDomElem{Tag: vdom.FragmentTag, Children: rtnElemArr}
	}
	r.render(rtnElem, &(*comp).RenderedComp)
}

func (r *RootElem) unmount(comp **ComponentImpl) {
	if *comp == nil {
		return
	}
	waveId := (*comp).WaveId
	for _, hook := range (*comp).Hooks {
		if hook.UnmountFn != nil {
			r.runHookCleanup(waveId, (*comp).Tag, hook)
		}
	}
	if (*comp).RenderedComp != nil {
		r.unmount(&(*comp).RenderedComp)
	}
	if (*comp).Children != nil {
		for _, child := range (*comp).Children {
			r.unmount(&child)
		}
	}
	delete(r.CompMap, waveId)
	*comp = nil
}

func (r *RootElem) createComp(tag string, key string, comp **ComponentImpl) {
	*comp = &ComponentImpl{WaveId: uuid.New().String(), Tag: tag, Key: key}
	r.CompMap[(*comp).WaveId] = *comp
}

// handles reconcilation
// maps children via key or index (exclusively)
func (r *RootElem) renderChildren(elems []vdom.VDomElem, curChildren []*ComponentImpl) []*ComponentImpl {
	newChildren := make([]*ComponentImpl, len(elems))
	curCM := make(map[ChildKey]*ComponentImpl)
	usedMap := make(map[*ComponentImpl]bool)
	for idx, child := range curChildren {
		if child == nil {
			continue
		}
		if child.Key != "" {
			curCM[ChildKey{Tag: child.Tag, Idx: 0, Key: child.Key}] = child
		} else {
			curCM[ChildKey{Tag: child.Tag, Idx: idx, Key: ""}] = child
		}
	}
	for idx := range elems {
		elem := &elems[idx]
		elemKey := getElemKey(elem)
		var curChild *ComponentImpl
		if elemKey != "" {
			curChild = curCM[ChildKey{Tag: elem.Tag, Idx: 0, Key: elemKey}]
		} else {
			curChild = curCM[ChildKey{Tag: elem.Tag, Idx: idx, Key: ""}]
		}
		if curChild != nil {
			usedMap[curChild] = true
		}
		newChildren[idx] = curChild
		r.render(elem, &newChildren[idx])
	}
	for _, child := range curChildren {
		if child != nil && !usedMap[child] {
			r.unmount(&child)
		}
	}
	return newChildren
}

// creates an error component for display when a component panics
func renderErrorComponent(componentName string, errorMsg string) any {
	return vdom.H("div", map[string]any{
		"className": "tsunami-error",
	},
		vdom.H("div", map[string]any{
			"className": "tsunami-error-title",
		}, fmt.Sprintf("Component Error: %s", componentName)),
		vdom.H("div", nil, errorMsg),
	)
}

// safely calls the component function with panic recovery
func callCFuncWithErrorGuard(cfunc any, props map[string]any, componentName string) (result any) {
	defer func() {
		if panicErr := util.PanicHandler(fmt.Sprintf("render component '%s'", componentName), recover()); panicErr != nil {
			result = renderErrorComponent(componentName, panicErr.Error())
		}
	}()
	result = callCFunc(cfunc, props)
	return result
}

// uses reflection to call the component function
func callCFunc(cfunc any, props map[string]any) any {
	if mapFn, ok := cfunc.(func(map[string]any) any); ok {
		return mapFn(props)
	}
	rval := reflect.ValueOf(cfunc)
	argType := rval.Type().In(0)
	isPtr := argType.Kind() == reflect.Ptr
	if isPtr {
		argType = argType.Elem()
	}
	arg1Val := reflect.New(argType)
	switch {
	case argType.Kind() == reflect.Interface:
		arg1Val.Elem().Set(reflect.ValueOf(props))
	case argType.Kind() == reflect.Map:
		arg1Val.Elem().Set(reflect.ValueOf(props))
	default:
		if err := util.MapToStruct(props, arg1Val.Interface()); err != nil {
			log.Printf("error converting props: %v\n", err)
		}
	}
	var rtnVal []reflect.Value
	if isPtr {
		rtnVal = rval.Call([]reflect.Value{arg1Val})
	} else {
		rtnVal = rval.Call([]reflect.Value{arg1Val.Elem()})
	}
	if len(rtnVal) == 0 {
		return nil
	}
	return rtnVal[0].Interface()
}

// rendered props drop nil values and go funcs (there is no event channel to the DOM)
func convertPropsToVDom(props map[string]any) map[string]any {
	if len(props) == 0 {
		return nil
	}
	vdomProps := make(map[string]any)
	for k, v := range props {
		if v == nil || k == vdom.KeyPropKey {
			continue
		}
		if vdomRef, ok := v.(*vdom.VDomRef); ok {
			vdomRef.Type = vdom.ObjectType_Ref
			vdomProps[k] = vdomRef
			continue
		}
		if reflect.ValueOf(v).Kind() == reflect.Func {
			continue
		}
		vdomProps[k] = v
	}
	if len(vdomProps) == 0 {
		return nil
	}
	return vdomProps
}

func (r *RootElem) MakeRendered() *vdom.RenderedElem {
	if r.Root == nil {
		return nil
	}
	return r.convertCompToRendered(r.Root)
}

func (r *RootElem) convertCompToRendered(c *ComponentImpl) *vdom.RenderedElem {
	if c == nil {
		return nil
	}
	if c.RenderedComp != nil {
		return r.convertCompToRendered(c.RenderedComp)
	}
	if len(c.Children) == 0 && r.lookupCFunc(c.Tag) != nil {
		return nil
	}
	return r.convertBaseToRendered(c)
}

func (r *RootElem) convertBaseToRendered(c *ComponentImpl) *vdom.RenderedElem {
	elem := &vdom.RenderedElem{WaveId: c.WaveId, Tag: c.Tag}
	if c.Elem != nil {
		elem.Props = convertPropsToVDom(c.Elem.Props)
	}
	for _, child := range c.Children {
		childElem := r.convertCompToRendered(child)
		if childElem != nil {
			elem.Children = append(elem.Children, *childElem)
		}
	}
	if c.Tag == vdom.TextTag {
		elem.Text = c.Text
	}
	return elem
}

func isBaseTag(tag string) bool {
	if tag == "" {
		return false
	}
	if tag[0] == '#' || strings.HasPrefix(tag, "wave:") {
		return true
	}
	firstChar := rune(tag[0])
	return unicode.IsLower(firstChar)
}
