// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"

	"github.com/wavetermdev/tsunamikit/clock"
	"github.com/wavetermdev/tsunamikit/engine"
	"github.com/wavetermdev/tsunamikit/vdom"
)

func mustContext(hookName string) *engine.RenderContextImpl {
	rc := engine.GetGlobalContext()
	if rc == nil {
		panic(hookName + " must be called within a component (no context)")
	}
	return rc
}

// UseState is the tsunami analog to React's useState hook.
// It returns the current state value, a setter function, and an updater function.
// Setters may be called from any goroutine; the new value is applied on the next
// flush and causes a re-render when it differs from the current one.
// This hook must be called within a component context.
func UseState[T any](initialVal T) (T, func(T), func(func(T) T)) {
	rc := mustContext("UseState")
	val, setVal, setFn := engine.UseState(rc, initialVal)

	var rtnVal T
	if val != nil {
		var ok bool
		rtnVal, ok = val.(T)
		if !ok {
			panic("UseState hook value is not a state (possible out of order or conditional hooks)")
		}
	}
	typedSetVal := func(newVal T) {
		setVal(newVal)
	}
	typedSetFuncVal := func(updateFunc func(T) T) {
		setFn(func(oldVal any) any {
			var typedOld T
			if oldVal != nil {
				typedOld = oldVal.(T)
			}
			return updateFunc(typedOld)
		})
	}
	return rtnVal, typedSetVal, typedSetFuncVal
}

// UseVDomRef provides a reference to a DOM element in the VDOM tree.
// The ref is not current on the first render.  It becomes current once the host
// commits the element, so it is safe to read from a UseEffect.
// This hook must be called within a component context.
func UseVDomRef() *vdom.VDomRef {
	rc := mustContext("UseVDomRef")
	refVal, ok := engine.UseVDomRef(rc).(*vdom.VDomRef)
	if !ok {
		panic("UseVDomRef hook value is not a ref (possible out of order or conditional hooks)")
	}
	return refVal
}

// UseRef is the tsunami analog to React's useRef hook.
// It provides a mutable ref object that persists across re-renders.
func UseRef[T any](val T) *vdom.VDomSimpleRef[T] {
	rc := mustContext("UseRef")
	refVal := engine.UseRef(rc, &vdom.VDomSimpleRef[T]{Current: val})
	typedRef, ok := refVal.(*vdom.VDomSimpleRef[T])
	if !ok {
		panic("UseRef hook value is not a ref (possible out of order or conditional hooks)")
	}
	return typedRef
}

// UseId returns the underlying component's unique identifier (UUID).
// The ID persists across re-renders but is recreated when the component is remounted.
func UseId() string {
	return engine.UseId(mustContext("UseId"))
}

// UseClock returns the clock of the root being rendered.  Timers should be
// created from it (not the time package) so tests can drive them.
func UseClock() clock.Clock {
	return engine.UseClock(mustContext("UseClock"))
}

// UseEffect is the tsunami analog to React's useEffect hook.
// It queues effects to run after the render is committed.
// The function can return a cleanup function that runs before the next effect
// or when the component unmounts. Dependencies use shallow comparison, just like React.
// This hook must be called within a component context.
func UseEffect(fn func() func(), deps []any) {
	// note UseEffect never actually runs anything, it just queues the effect to run later
	engine.UseEffect(mustContext("UseEffect"), fn, deps)
}

// UseGoRoutine manages a goroutine lifecycle within a component.
// It spawns a new goroutine with the provided function when dependencies change,
// and cancels its context on dependency changes or component unmount.
func UseGoRoutine(fn func(ctx context.Context), deps []any) {
	mustContext("UseGoRoutine")
	cancelRef := UseRef[context.CancelFunc](nil)
	UseEffect(func() func() {
		if cancelRef.Current != nil {
			cancelRef.Current()
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancelRef.Current = cancel
		go fn(ctx)
		return func() {
			cancel()
		}
	}, deps)
}
