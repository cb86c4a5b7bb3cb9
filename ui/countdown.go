// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"time"

	"github.com/wavetermdev/tsunamikit/app"
)

const DefaultTick = 100 * time.Millisecond

type CountdownProps struct {
	Seconds  int           `json:"seconds" jsonschema:"minimum=0"`
	Format   Format        `json:"format,omitempty" jsonschema:"enum=s,enum=ss,enum=mm ss,enum=m:s,enum=m,enum=mm"`
	Locale   Locale        `json:"locale,omitempty" jsonschema:"enum=en,enum=ru,enum=ru-passive"`
	OnExpire func()        `json:"onExpire,omitempty" jsonschema:"-"`
	Tick     time.Duration `json:"tick,omitempty" jsonschema:"description=tick period in nanoseconds"`
}

// RemainingSeconds is the countdown value after elapsed time.  Partial seconds
// count as a whole second gone, and the result never goes below 0.
func RemainingSeconds(seconds int, elapsed time.Duration) int {
	gone := int((elapsed + time.Second - 1) / time.Second)
	if elapsed <= 0 {
		gone = 0
	}
	remaining := seconds - gone
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Countdown renders the seconds left, ticking every Tick.  Once it reaches 0 the
// timer stops and OnExpire is called, once per mount.
var Countdown = app.DefineComponent("Countdown", func(props CountdownProps) any {
	initial := props.Seconds
	if initial < 0 {
		initial = 0
	}
	timeLeft, setTimeLeft, _ := app.UseState(initial)
	clk := app.UseClock()
	onExpireRef := app.UseRef[func()](nil)
	onExpireRef.Current = props.OnExpire
	firedRef := app.UseRef(false)
	tick := props.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	seconds := props.Seconds
	expired := timeLeft <= 0

	app.UseEffect(func() func() {
		if expired {
			if !firedRef.Current {
				firedRef.Current = true
				if onExpireRef.Current != nil {
					onExpireRef.Current()
				}
			}
			return nil
		}
		anchor := clk.Now()
		last := timeLeft
		timer := clk.Every(tick, func() {
			remaining := RemainingSeconds(seconds, clk.Now().Sub(anchor))
			if remaining != last {
				last = remaining
				setTimeLeft(remaining)
			}
		})
		return func() {
			timer.Stop()
		}
	}, []any{seconds, expired})

	format := props.Format
	if format == "" {
		format = DefaultFormat
	}
	locale := props.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	return FormatTime(timeLeft, format, locale)
})
