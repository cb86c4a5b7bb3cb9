// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"sync"

	"github.com/outrigdev/goid"
)

// renderBinding records which component is rendering, and on which goroutine.
// Hooks called from any other goroutine see no context.
type renderBinding struct {
	lock sync.Mutex
	vc   *RenderContextImpl
	goId uint64
}

var activeRender renderBinding

func (b *renderBinding) bind(vc *RenderContextImpl) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.vc = vc
	b.goId = goid.Get()
}

func (b *renderBinding) unbind() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.vc = nil
	b.goId = 0
}

func (b *renderBinding) current() *RenderContextImpl {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.vc == nil || b.goId != goid.Get() {
		return nil
	}
	return b.vc
}

func withGlobalCtx[T any](vc *RenderContextImpl, fn func() T) T {
	activeRender.bind(vc)
	defer activeRender.unbind()
	return fn()
}

// GetGlobalContext returns the render context of the component currently rendering
// on this goroutine, or nil.
func GetGlobalContext() *RenderContextImpl {
	return activeRender.current()
}
