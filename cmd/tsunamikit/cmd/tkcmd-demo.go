// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/wavetermdev/tsunamikit/app"
	"github.com/wavetermdev/tsunamikit/cond"
	"github.com/wavetermdev/tsunamikit/dom"
	"github.com/wavetermdev/tsunamikit/engine"
	"github.com/wavetermdev/tsunamikit/ui"
	"github.com/wavetermdev/tsunamikit/vdom"
)

const demoSeconds = 90

var demoSecondsArg int
var demoFormat string
var demoLocale string

var demoCmd = &cobra.Command{
	Use:   "demo [-s seconds] [-f format] [-l locale]",
	Short: "Print the HTML of the demo page",
	Args:  cobra.NoArgs,
	RunE:  runDemoCmd,
}

func init() {
	demoCmd.Flags().IntVarP(&demoSecondsArg, "seconds", "s", demoSeconds, "countdown length in seconds")
	addTimeFlags(demoCmd, &demoFormat, &demoLocale)
	rootCmd.AddCommand(demoCmd)
}

type demoPageProps struct {
	Seconds int           `json:"seconds"`
	Format  ui.Format     `json:"format"`
	Locale  ui.Locale     `json:"locale"`
	Tick    time.Duration `json:"tick"`
}

var demoHighlight = map[string]any{
	"className": "highlight",
	"style":     map[string]any{"fontWeight": "bold"},
}

var demoPage = app.DefineComponent("DemoPage", func(props demoPageProps) any {
	expired, setExpired, _ := app.UseState(false)
	onExpire := func() { setExpired(true) }
	return vdom.H("div", map[string]any{"className": "demo"},
		vdom.H("h1", nil, "tsunamikit"),
		vdom.H("p", map[string]any{"className": "countdown"},
			ui.Countdown(ui.CountdownProps{
				Seconds:  props.Seconds,
				Format:   props.Format,
				Locale:   props.Locale,
				Tick:     props.Tick,
				OnExpire: onExpire,
			}),
		),
		ui.AttributeProxy(ui.AttributeProxyProps{
			Direction:  dom.PrevSibling,
			Attributes: demoHighlight,
		}),
		ui.If(cond.Bool(expired),
			ui.Then(vdom.H("p", nil, "time is up")),
			ui.Else(vdom.H("p", nil, "counting down")),
		),
		ui.Switch(
			ui.Case(cond.MustOf(props.Seconds >= 60), vdom.H("p", nil, "long countdown")),
			ui.Case(cond.MustOf(func() bool { return props.Seconds > 0 }), vdom.H("p", nil, "short countdown")),
			ui.Default(vdom.H("p", nil, "no countdown")),
		),
		vdom.H("ul", map[string]any{"className": "formats"},
			vdom.ForEach(ui.AllFormats, func(f ui.Format, _ int) any {
				return vdom.H("li", nil, string(f), ": ", ui.FormatTime(props.Seconds, f, props.Locale)).WithKey(string(f))
			}),
		),
	)
})

func runDemoCmd(cmd *cobra.Command, args []string) error {
	if demoSecondsArg < 0 {
		return parseSecondsErr(demoSecondsArg)
	}
	format, locale, err := resolveTimeFlags(demoFormat, demoLocale)
	if err != nil {
		return err
	}
	doc := dom.NewDocument()
	root := engine.MakeRoot(engine.RootOpts{Host: doc})
	root.Render(demoPage(demoPageProps{Seconds: demoSecondsArg, Format: format, Locale: locale, Tick: Config.Tick}))
	WriteStdout("%s\n", doc.HTML())
	root.Close()
	return nil
}
