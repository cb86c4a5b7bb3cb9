// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"testing"
	"time"

	"github.com/wavetermdev/tsunamikit/clock"
	"github.com/wavetermdev/tsunamikit/dom"
	"github.com/wavetermdev/tsunamikit/engine"
	"github.com/wavetermdev/tsunamikit/vdom"
)

type testRoot struct {
	doc   *dom.Document
	clock *clock.Manual
	root  *engine.RootElem
}

func newTestRoot() *testRoot {
	tr := &testRoot{doc: dom.NewDocument(), clock: clock.NewManual(time.Unix(1700000000, 0))}
	tr.root = engine.MakeRoot(engine.RootOpts{Host: tr.doc, Clock: tr.clock})
	return tr
}

func (tr *testRoot) render(parts ...any) string {
	tr.root.Render(vdom.H("div", nil, parts...))
	return tr.html()
}

func (tr *testRoot) advance(d time.Duration) string {
	tr.clock.Advance(d)
	tr.root.Flush()
	return tr.html()
}

func (tr *testRoot) html() string {
	return dom.InnerHTML(dom.Find(tr.doc.Mount(), dom.FirstChild))
}

func renderHTML(t *testing.T, parts ...any) string {
	t.Helper()
	return newTestRoot().render(parts...)
}
