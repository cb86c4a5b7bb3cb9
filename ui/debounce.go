// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"sync"
	"time"

	"github.com/wavetermdev/tsunamikit/app"
	"github.com/wavetermdev/tsunamikit/clock"
)

type debounceState[T any] struct {
	lock    sync.Mutex
	pending T
	timer   clock.Timer
	gen     int
	closed  bool
}

func (s *debounceState[T]) update(clk clock.Clock, delay time.Duration, fn func(T) T, publish func(T)) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.closed {
		return
	}
	s.pending = fn(s.pending)
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	val := s.pending
	s.timer = clk.AfterFunc(delay, func() {
		if !s.isCurrent(gen) {
			return
		}
		publish(val)
	})
}

// a stopped timer can still fire if its callback had already started
func (s *debounceState[T]) isCurrent(gen int) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return !s.closed && gen == s.gen
}

func (s *debounceState[T]) close() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// UseDebounced returns a value and an updater.  Updates apply to the latest
// pending value, and the returned value only changes once delay has passed
// without another update.  The updater may be called from any goroutine.
func UseDebounced[T any](initial T, delay time.Duration) (T, func(func(T) T)) {
	val, setVal, _ := app.UseState(initial)
	clk := app.UseClock()
	stateRef := app.UseRef[*debounceState[T]](nil)
	if stateRef.Current == nil {
		stateRef.Current = &debounceState[T]{pending: initial}
	}
	state := stateRef.Current
	app.UseEffect(func() func() {
		return state.close
	}, []any{})
	update := func(fn func(T) T) {
		state.update(clk, delay, fn, setVal)
	}
	return val, update
}
