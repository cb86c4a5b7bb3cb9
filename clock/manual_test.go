// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var testStart = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestManualAfterFunc(t *testing.T) {
	m := NewManual(testStart)
	fired := 0
	m.AfterFunc(100*time.Millisecond, func() { fired++ })
	m.Advance(99 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired early")
	}
	m.Advance(time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired=%d, want 1", fired)
	}
	m.Advance(time.Second)
	if fired != 1 {
		t.Fatalf("one-shot fired again")
	}
	if got := m.Now().Sub(testStart); got != 1100*time.Millisecond {
		t.Fatalf("now offset %v", got)
	}
}

func TestManualEveryOrderAndStop(t *testing.T) {
	m := NewManual(testStart)
	var seen []time.Duration
	var ticker Timer
	ticker = m.Every(100*time.Millisecond, func() {
		seen = append(seen, m.Now().Sub(testStart))
		if len(seen) == 3 {
			ticker.Stop()
		}
	})
	m.Advance(time.Second)
	if len(seen) != 3 {
		t.Fatalf("ticks=%v", seen)
	}
	for i, d := range seen {
		if d != time.Duration(i+1)*100*time.Millisecond {
			t.Fatalf("tick %d at %v", i, d)
		}
	}
	if m.Pending() != 0 {
		t.Fatalf("pending=%d after stop", m.Pending())
	}
	if ticker.Stop() {
		t.Fatalf("second Stop should report false")
	}
}

func TestManualInterleaving(t *testing.T) {
	m := NewManual(testStart)
	var order []string
	m.Every(300*time.Millisecond, func() { order = append(order, "tick") })
	m.AfterFunc(500*time.Millisecond, func() { order = append(order, "once") })
	m.Advance(time.Second)
	want := []string{"tick", "once", "tick", "tick"}
	if len(order) != len(want) {
		t.Fatalf("order=%v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order=%v, want %v", order, want)
		}
	}
}

func TestRealEveryStops(t *testing.T) {
	c := Real()
	ch := make(chan struct{}, 10)
	tm := c.Every(5*time.Millisecond, func() { ch <- struct{}{} })
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("real ticker never fired")
	}
	if !tm.Stop() {
		t.Fatalf("first Stop should report true")
	}
}
