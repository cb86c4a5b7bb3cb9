// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"strconv"

	"github.com/wavetermdev/tsunamikit/clock"
	"github.com/wavetermdev/tsunamikit/util"
	"github.com/wavetermdev/tsunamikit/vdom"
)

// generic hook structure
type Hook struct {
	Init      bool          // is initialized
	Idx       int           // index in the hook array
	Fn        func() func() // for useEffect
	UnmountFn func()        // for useEffect
	Val       any           // for useState, useRef
	Deps      []any
}

type RenderContextImpl struct {
	Root    *RootElem
	Comp    *ComponentImpl
	HookIdx int
}

func makeContextVal(root *RootElem, comp *ComponentImpl) *RenderContextImpl {
	return &RenderContextImpl{
		Root:    root,
		Comp:    comp,
		HookIdx: 0,
	}
}

func (vc *RenderContextImpl) GetCompWaveId() string {
	if vc.Comp == nil {
		return ""
	}
	return vc.Comp.WaveId
}

func (vc *RenderContextImpl) getOrderedHook() *Hook {
	if vc.Comp == nil {
		panic("tsunami hooks must be called within a component (vc.Comp is nil)")
	}
	for len(vc.Comp.Hooks) <= vc.HookIdx {
		vc.Comp.Hooks = append(vc.Comp.Hooks, &Hook{Idx: len(vc.Comp.Hooks)})
	}
	hookVal := vc.Comp.Hooks[vc.HookIdx]
	vc.HookIdx++
	return hookVal
}

func UseId(vc *RenderContextImpl) string {
	return vc.GetCompWaveId()
}

func UseClock(vc *RenderContextImpl) clock.Clock {
	return vc.Root.Clock
}

// setters may be called from any goroutine.  the new value is applied by the
// root's next Flush, which re-renders the component if the value changed.
func UseState(vc *RenderContextImpl, initialVal any) (any, func(any), func(func(any) any)) {
	hookVal := vc.getOrderedHook()
	if !hookVal.Init {
		hookVal.Init = true
		hookVal.Val = initialVal
	}
	root := vc.Root
	waveId := vc.GetCompWaveId()
	applyVal := func(newVal any) {
		if !root.isMounted(waveId) {
			return
		}
		if util.ValEqual(hookVal.Val, newVal) {
			return
		}
		hookVal.Val = newVal
		root.addRenderWork(waveId)
	}
	setVal := func(newVal any) {
		root.queueUpdate(func() {
			applyVal(newVal)
		})
	}
	setFuncVal := func(updateFn func(any) any) {
		root.queueUpdate(func() {
			applyVal(updateFn(hookVal.Val))
		})
	}
	return hookVal.Val, setVal, setFuncVal
}

func UseVDomRef(vc *RenderContextImpl) any {
	hookVal := vc.getOrderedHook()
	if !hookVal.Init {
		hookVal.Init = true
		refId := vc.GetCompWaveId() + ":" + strconv.Itoa(hookVal.Idx)
		hookVal.Val = &vdom.VDomRef{Type: vdom.ObjectType_Ref, RefId: refId}
	}
	return hookVal.Val
}

func UseRef(vc *RenderContextImpl, hookInitialVal any) any {
	hookVal := vc.getOrderedHook()
	if !hookVal.Init {
		hookVal.Init = true
		hookVal.Val = hookInitialVal
	}
	return hookVal.Val
}

func UseEffect(vc *RenderContextImpl, fn func() func(), deps []any) {
	hookVal := vc.getOrderedHook()
	compTag := ""
	if vc.Comp != nil {
		compTag = vc.Comp.Tag
	}
	if !hookVal.Init {
		hookVal.Init = true
		hookVal.Fn = fn
		hookVal.Deps = deps
		vc.Root.addEffectWork(vc.GetCompWaveId(), hookVal.Idx, compTag)
		return
	}
	// If deps is nil, always run (like React with no dependency array)
	if deps == nil {
		hookVal.Fn = fn
		hookVal.Deps = deps
		vc.Root.addEffectWork(vc.GetCompWaveId(), hookVal.Idx, compTag)
		return
	}
	if util.DepsEqual(hookVal.Deps, deps) {
		return
	}
	hookVal.Fn = fn
	hookVal.Deps = deps
	vc.Root.addEffectWork(vc.GetCompWaveId(), hookVal.Idx, compTag)
}
