// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/wavetermdev/tsunamikit/dom"
	"github.com/wavetermdev/tsunamikit/engine"
	"github.com/wavetermdev/tsunamikit/ui"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

var countdownFormat string
var countdownLocale string
var countdownTick time.Duration

var countdownCmd = &cobra.Command{
	Use:   "countdown [-f format] [-l locale] [--tick duration] seconds",
	Short: "Run a countdown in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runCountdownCmd,
}

func init() {
	addTimeFlags(countdownCmd, &countdownFormat, &countdownLocale)
	countdownCmd.Flags().DurationVar(&countdownTick, "tick", 0, "tick period (defaults to the configured tick)")
	rootCmd.AddCommand(countdownCmd)
}

// lineWriter prints a line each time the text changes.  On a terminal the line
// is redrawn in place.
type lineWriter struct {
	isTty bool
	last  string
	wrote bool
}

func (lw *lineWriter) write(text string) {
	if lw.wrote && text == lw.last {
		return
	}
	lw.last = text
	lw.wrote = true
	if lw.isTty {
		WriteStdout("\r\x1b[K%s", text)
		return
	}
	WriteStdout("%s\n", text)
}

func (lw *lineWriter) finish() {
	if lw.isTty && lw.wrote {
		WriteStdout("\n")
	}
}

func runCountdownCmd(cmd *cobra.Command, args []string) error {
	seconds, err := parseSecondsArg(args[0])
	if err != nil {
		return err
	}
	format, locale, err := resolveTimeFlags(countdownFormat, countdownLocale)
	if err != nil {
		return err
	}
	tick := Config.Tick
	if countdownTick > 0 {
		tick = countdownTick
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()

	doc := dom.NewDocument()
	lw := &lineWriter{isTty: term.IsTerminal(int(os.Stdout.Fd()))}
	root := engine.MakeRoot(engine.RootOpts{
		Host: doc,
		OnFlush: func() {
			lw.write(dom.TextContent(doc.Mount()))
		},
	})
	root.Render(ui.Countdown(ui.CountdownProps{
		Seconds:  seconds,
		Format:   format,
		Locale:   locale,
		Tick:     tick,
		OnExpire: cancelFn,
	}))
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return root.Run(gctx)
	})
	err = g.Wait()
	lw.finish()
	return err
}
