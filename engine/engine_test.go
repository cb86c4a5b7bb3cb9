// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/wavetermdev/tsunamikit/vdom"
)

type recordHost struct {
	commits []*vdom.RenderedElem
}

func (h *recordHost) Commit(root *vdom.RenderedElem) {
	h.commits = append(h.commits, root)
}

func (h *recordHost) last() *vdom.RenderedElem {
	if len(h.commits) == 0 {
		return nil
	}
	return h.commits[len(h.commits)-1]
}

func renderedText(elem *vdom.RenderedElem) string {
	if elem == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(elem.Text)
	for idx := range elem.Children {
		sb.WriteString(renderedText(&elem.Children[idx]))
	}
	return sb.String()
}

func TestRenderRunsEffectsAndUpdates(t *testing.T) {
	host := &recordHost{}
	root := MakeRoot(RootOpts{Host: host})
	effectRuns := 0
	root.RegisterComponent("Counter", func(props map[string]any) any {
		vc := GetGlobalContext()
		count, setCount, _ := UseState(vc, 0)
		UseEffect(vc, func() func() {
			effectRuns++
			setCount(1)
			return nil
		}, []any{})
		return vdom.H("div", nil, "count:", count)
	})
	root.Render(vdom.H("Counter", nil))
	if got := renderedText(host.last()); got != "count:1" {
		t.Fatalf("expected count:1, got %q", got)
	}
	if effectRuns != 1 {
		t.Fatalf("expected effect to run once, ran %d times", effectRuns)
	}
	if host.last().Tag != "div" {
		t.Fatalf("expected component to resolve to div, got %q", host.last().Tag)
	}
}

func TestSetterFromOtherGoroutine(t *testing.T) {
	host := &recordHost{}
	root := MakeRoot(RootOpts{Host: host})
	var setName func(any)
	root.RegisterComponent("Name", func(props map[string]any) any {
		vc := GetGlobalContext()
		name, setter, _ := UseState(vc, "a")
		setName = setter
		return vdom.H("span", nil, name)
	})
	root.Render(vdom.H("Name", nil))
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		setName("b")
	}()
	wg.Wait()
	if got := renderedText(host.last()); got != "a" {
		t.Fatalf("update should not apply before flush, got %q", got)
	}
	root.Flush()
	if got := renderedText(host.last()); got != "b" {
		t.Fatalf("expected b after flush, got %q", got)
	}
}

func TestUnmountRunsCleanup(t *testing.T) {
	host := &recordHost{}
	root := MakeRoot(RootOpts{Host: host})
	cleanups := 0
	root.RegisterComponent("Child", func(props map[string]any) any {
		vc := GetGlobalContext()
		UseEffect(vc, func() func() {
			return func() { cleanups++ }
		}, []any{})
		return vdom.H("i", nil, "child")
	})
	root.Render(vdom.H("div", nil, vdom.H("Child", nil)))
	if got := renderedText(host.last()); got != "child" {
		t.Fatalf("expected child, got %q", got)
	}
	root.Render(vdom.H("div", nil, "empty"))
	if cleanups != 1 {
		t.Fatalf("expected cleanup on unmount, got %d", cleanups)
	}
	if got := renderedText(host.last()); got != "empty" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestKeyedChildrenKeepState(t *testing.T) {
	root := MakeRoot(RootOpts{})
	mounts := map[string]int{}
	root.RegisterComponent("Item", func(props map[string]any) any {
		vc := GetGlobalContext()
		name, _ := props["name"].(string)
		UseEffect(vc, func() func() {
			mounts[name]++
			return nil
		}, []any{})
		return vdom.H("li", nil, name)
	})
	items := func(names ...string) *vdom.VDomElem {
		var children []any
		for _, name := range names {
			children = append(children, vdom.H("Item", map[string]any{"key": name, "name": name}))
		}
		return vdom.H("ul", nil, children...)
	}
	root.Render(items("a", "b"))
	root.Render(items("b", "a", "c"))
	if mounts["a"] != 1 || mounts["b"] != 1 || mounts["c"] != 1 {
		t.Fatalf("expected each keyed item mounted once, got %v", mounts)
	}
}

func TestComponentPanicRendersError(t *testing.T) {
	host := &recordHost{}
	root := MakeRoot(RootOpts{Host: host})
	root.RegisterComponent("Broken", func(props map[string]any) any {
		panic("boom")
	})
	root.Render(vdom.H("Broken", nil))
	got := renderedText(host.last())
	if !strings.Contains(got, "Component Error: Broken") || !strings.Contains(got, "boom") {
		t.Fatalf("expected error element, got %q", got)
	}
}

type greetProps struct {
	Name     string          `json:"name"`
	Children []vdom.VDomElem `json:"children"`
}

func TestStructProps(t *testing.T) {
	host := &recordHost{}
	root := MakeRoot(RootOpts{Host: host})
	err := root.RegisterComponent("Greet", func(props greetProps) any {
		return vdom.H("p", nil, "hi ", props.Name, props.Children)
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	root.Render(vdom.H("Greet", map[string]any{"name": "bob"}, "!"))
	if got := renderedText(host.last()); got != "hi bob!" {
		t.Fatalf("expected %q, got %q", "hi bob!", got)
	}
}

func TestRegisterComponentValidation(t *testing.T) {
	root := MakeRoot(RootOpts{})
	if err := root.RegisterComponent("lower", func(props map[string]any) any { return nil }); err == nil {
		t.Fatalf("expected error for lowercase component name")
	}
	if err := root.RegisterComponent("TwoArgs", func(a, b int) any { return nil }); err == nil {
		t.Fatalf("expected error for two argument component")
	}
	if err := root.RegisterComponent("BadMap", func(props map[int]any) any { return nil }); err == nil {
		t.Fatalf("expected error for non string-keyed map")
	}
}

func TestFlushIsBounded(t *testing.T) {
	root := MakeRoot(RootOpts{})
	root.RegisterComponent("Loop", func(props map[string]any) any {
		vc := GetGlobalContext()
		n, _, setFn := UseState(vc, 0)
		UseEffect(vc, func() func() {
			setFn(func(v any) any { return v.(int) + 1 })
			return nil
		}, nil)
		return vdom.H("b", nil, n)
	})
	root.Render(vdom.H("Loop", nil))
	if root.Flush() {
		t.Fatalf("expected flush of an endless update loop to report unsettled")
	}
}

func TestRunUnmountsOnCancel(t *testing.T) {
	host := &recordHost{}
	root := MakeRoot(RootOpts{Host: host})
	cleaned := make(chan struct{})
	var setVal func(any)
	root.RegisterComponent("Live", func(props map[string]any) any {
		vc := GetGlobalContext()
		val, setter, _ := UseState(vc, "start")
		setVal = setter
		UseEffect(vc, func() func() {
			return func() { close(cleaned) }
		}, []any{})
		return vdom.H("div", nil, val)
	})
	root.Render(vdom.H("Live", nil))
	flushed := make(chan struct{}, 10)
	root.OnFlush = func() { flushed <- struct{}{} }
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- root.Run(ctx)
	}()
	<-flushed
	setVal("next")
	<-flushed
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	select {
	case <-cleaned:
	default:
		t.Fatalf("expected cleanup to run when the loop stops")
	}
	if host.last() != nil {
		t.Fatalf("expected empty commit after close")
	}
	setVal("ignored")
	if root.hasPendingUpdates() {
		t.Fatalf("updates after close should be dropped")
	}
}

func TestQueueRender(t *testing.T) {
	host := &recordHost{}
	root := MakeRoot(RootOpts{Host: host})
	root.Render(vdom.H("div", nil, "a"))
	root.QueueRender(vdom.H("div", nil, "b"))
	if got := renderedText(host.last()); got != "a" {
		t.Fatalf("queued render must wait for flush, got %q", got)
	}
	root.Flush()
	if got := renderedText(host.last()); got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
}
