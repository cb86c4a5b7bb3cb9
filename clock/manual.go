// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"

	"github.com/emirpasic/gods/trees/binaryheap"
)

// Manual is a Clock that only moves when Advance is called.
// Due callbacks run synchronously inside Advance, in time order, on the caller's goroutine.
type Manual struct {
	lock    sync.Mutex
	now     time.Time
	seq     int64
	entries *binaryheap.Heap // of *manualTimer, ordered by (when, seq)
}

type manualTimer struct {
	clock   *Manual
	when    time.Time
	period  time.Duration // 0 for one-shot
	seq     int64
	fn      func()
	stopped bool
}

func timerComparator(aArg, bArg any) int {
	a := aArg.(*manualTimer)
	b := bArg.(*manualTimer)
	if a.when.Before(b.when) {
		return -1
	} else if a.when.After(b.when) {
		return 1
	}
	if a.seq < b.seq {
		return -1
	} else if a.seq > b.seq {
		return 1
	}
	return 0
}

func NewManual(start time.Time) *Manual {
	return &Manual{
		now:     start,
		entries: binaryheap.NewWith(timerComparator),
	}
}

func (m *Manual) Now() time.Time {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	return m.schedule(d, 0, fn)
}

func (m *Manual) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		panic("clock: non-positive interval for Every")
	}
	return m.schedule(d, d, fn)
}

func (m *Manual) schedule(d time.Duration, period time.Duration, fn func()) *manualTimer {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.seq++
	t := &manualTimer{clock: m, when: m.now.Add(d), period: period, seq: m.seq, fn: fn}
	m.entries.Push(t)
	return t
}

// Pending returns the number of live timers.
func (m *Manual) Pending() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	count := 0
	for _, v := range m.entries.Values() {
		if !v.(*manualTimer).stopped {
			count++
		}
	}
	return count
}

// Advance moves the clock forward by d, firing every callback that comes due.
// Callbacks may schedule or stop timers.
func (m *Manual) Advance(d time.Duration) {
	m.lock.Lock()
	target := m.now.Add(d)
	m.lock.Unlock()
	for {
		fn := m.popDue(target)
		if fn == nil {
			break
		}
		fn()
	}
	m.lock.Lock()
	if m.now.Before(target) {
		m.now = target
	}
	m.lock.Unlock()
}

func (m *Manual) popDue(target time.Time) func() {
	m.lock.Lock()
	defer m.lock.Unlock()
	for {
		top, ok := m.entries.Peek()
		if !ok {
			return nil
		}
		t := top.(*manualTimer)
		if t.stopped {
			m.entries.Pop()
			continue
		}
		if t.when.After(target) {
			return nil
		}
		m.entries.Pop()
		m.now = t.when
		fn := t.fn
		if t.period > 0 {
			// reuse the entry so the caller's handle still stops it
			m.seq++
			t.when = t.when.Add(t.period)
			t.seq = m.seq
			m.entries.Push(t)
		} else {
			t.stopped = true
		}
		return fn
	}
}

func (t *manualTimer) Stop() bool {
	t.clock.lock.Lock()
	defer t.clock.lock.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}
