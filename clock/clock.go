// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package clock is the time source for components: wall-clock reads plus
// one-shot and repeating callbacks.  Callbacks run on a goroutine owned by the
// clock, so they must only enqueue work (e.g. call a state setter).
package clock

import (
	"sync"
	"time"
)

type Timer interface {
	// Stop prevents any further callbacks.  Returns false if the timer was already stopped or had fired (one-shot).
	Stop() bool
}

type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
	// Every calls fn every d until the returned Timer is stopped.  Calls are sequential.
	Every(d time.Duration, fn func()) Timer
}

type realClock struct{}

var defaultClock Clock = realClock{}

// Real returns the process clock.
func Real() Clock {
	return defaultClock
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

type realTicker struct {
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

func (realClock) Every(d time.Duration, fn func()) Timer {
	rt := &realTicker{ticker: time.NewTicker(d), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-rt.done:
				return
			case <-rt.ticker.C:
				select {
				case <-rt.done:
					return
				default:
				}
				fn()
			}
		}
	}()
	return rt
}

func (rt *realTicker) Stop() bool {
	stopped := false
	rt.stopOnce.Do(func() {
		rt.ticker.Stop()
		close(rt.done)
		stopped = true
	})
	return stopped
}
