// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"sync"
	"unicode"

	"github.com/wavetermdev/tsunamikit/clock"
	"github.com/wavetermdev/tsunamikit/util"
	"github.com/wavetermdev/tsunamikit/vdom"
)

// a flush that still has work after this many passes is abandoned (render loop)
const MaxFlushIterations = 100

const rootRenderId = "#root"

// Host receives the rendered tree after every render pass, before effects run.
// Commit is always called on the loop goroutine.
type Host interface {
	Commit(root *vdom.RenderedElem)
}

type EffectWorkElem struct {
	WaveId      string
	EffectIndex int
	CompTag     string
}

type RootOpts struct {
	Host    Host
	Clock   clock.Clock // defaults to clock.Real()
	OnFlush func()      // called at the end of every Flush
}

type RootElem struct {
	Root            *ComponentImpl
	RootVDom        *vdom.VDomElem
	CFuncs          map[string]any            // component name => render function
	CompMap         map[string]*ComponentImpl // component waveid -> component
	EffectWorkQueue []*EffectWorkElem
	Clock           clock.Clock
	Host            Host
	OnFlush         func()

	needsRenderMap  map[string]bool // key: waveid
	needsRenderLock sync.Mutex
	updates         []func()
	updateLock      sync.Mutex
	closed          bool
	wakeCh          chan struct{}
}

func MakeRoot(opts RootOpts) *RootElem {
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real()
	}
	return &RootElem{
		CFuncs:  make(map[string]any),
		CompMap: make(map[string]*ComponentImpl),
		Clock:   clk,
		Host:    opts.Host,
		OnFlush: opts.OnFlush,
		wakeCh:  make(chan struct{}, 1),
	}
}

var defaultRegistry = struct {
	lock   sync.Mutex
	cfuncs map[string]any
}{cfuncs: make(map[string]any)}

func validateCFunc(cfunc any) error {
	if cfunc == nil {
		return fmt.Errorf("component function cannot be nil")
	}
	rval := reflect.ValueOf(cfunc)
	if rval.Kind() != reflect.Func {
		return fmt.Errorf("component function must be a function")
	}
	rtype := rval.Type()
	if rtype.NumIn() != 1 {
		return fmt.Errorf("component function must take exactly 1 argument")
	}
	if rtype.NumOut() != 1 {
		return fmt.Errorf("component function must return exactly 1 value")
	}
	// first argument can be a map[string]any, or a struct, or ptr to struct (we'll reflect the value into it)
	arg1Type := rtype.In(0)
	if arg1Type.Kind() == reflect.Ptr {
		arg1Type = arg1Type.Elem()
	}
	if arg1Type.Kind() == reflect.Map {
		if arg1Type.Key().Kind() != reflect.String ||
			!(arg1Type.Elem().Kind() == reflect.Interface && arg1Type.Elem().NumMethod() == 0) {
			return fmt.Errorf("map argument must be map[string]any")
		}
	} else if arg1Type.Kind() != reflect.Struct &&
		!(arg1Type.Kind() == reflect.Interface && arg1Type.NumMethod() == 0) {
		return fmt.Errorf("component function argument must be map[string]any, struct, or any")
	}
	return nil
}

func validateCompName(name string) error {
	if name == "" {
		return fmt.Errorf("component name cannot be empty")
	}
	if !unicode.IsUpper(rune(name[0])) {
		return fmt.Errorf("component name %q must start with an uppercase letter", name)
	}
	return nil
}

// RegisterDefaultComponent registers a component for every root.
// Components registered on a root with RegisterComponent take precedence.
func RegisterDefaultComponent(name string, cfunc any) error {
	if err := validateCompName(name); err != nil {
		return err
	}
	if err := validateCFunc(cfunc); err != nil {
		return err
	}
	defaultRegistry.lock.Lock()
	defer defaultRegistry.lock.Unlock()
	if _, found := defaultRegistry.cfuncs[name]; found {
		return fmt.Errorf("component %q already registered", name)
	}
	defaultRegistry.cfuncs[name] = cfunc
	return nil
}

func (r *RootElem) RegisterComponent(name string, cfunc any) error {
	if err := validateCompName(name); err != nil {
		return err
	}
	if err := validateCFunc(cfunc); err != nil {
		return err
	}
	r.CFuncs[name] = cfunc
	return nil
}

func (r *RootElem) lookupCFunc(tag string) any {
	if cfunc, ok := r.CFuncs[tag]; ok {
		return cfunc
	}
	defaultRegistry.lock.Lock()
	defer defaultRegistry.lock.Unlock()
	return defaultRegistry.cfuncs[tag]
}

// queueUpdate may be called from any goroutine
func (r *RootElem) queueUpdate(fn func()) {
	r.updateLock.Lock()
	if r.closed {
		r.updateLock.Unlock()
		return
	}
	r.updates = append(r.updates, fn)
	r.updateLock.Unlock()
	select {
	case r.wakeCh <- struct{}{}:
	default:
	}
}

func (r *RootElem) takeUpdates() []func() {
	r.updateLock.Lock()
	defer r.updateLock.Unlock()
	updates := r.updates
	r.updates = nil
	return updates
}

func (r *RootElem) hasPendingUpdates() bool {
	r.updateLock.Lock()
	defer r.updateLock.Unlock()
	return len(r.updates) > 0
}

func (r *RootElem) isMounted(waveId string) bool {
	_, ok := r.CompMap[waveId]
	return ok
}

func (r *RootElem) addRenderWork(id string) {
	r.needsRenderLock.Lock()
	defer r.needsRenderLock.Unlock()

	if r.needsRenderMap == nil {
		r.needsRenderMap = make(map[string]bool)
	}
	r.needsRenderMap[id] = true
}

func (r *RootElem) getAndClearRenderWork() []string {
	r.needsRenderLock.Lock()
	defer r.needsRenderLock.Unlock()

	if len(r.needsRenderMap) == 0 {
		return nil
	}
	ids := make([]string, 0, len(r.needsRenderMap))
	for id := range r.needsRenderMap {
		ids = append(ids, id)
	}
	r.needsRenderMap = nil
	return ids
}

func (r *RootElem) addEffectWork(id string, effectIndex int, compTag string) {
	r.EffectWorkQueue = append(r.EffectWorkQueue, &EffectWorkElem{WaveId: id, EffectIndex: effectIndex, CompTag: compTag})
}

// Render mounts (or re-renders) elem as the root of the tree and flushes.
func (r *RootElem) Render(elem *vdom.VDomElem) {
	r.RootVDom = elem
	r.renderRoot()
	r.Flush()
}

// QueueRender replaces the root element from any goroutine.  The new tree is
// rendered by the next Flush.
func (r *RootElem) QueueRender(elem *vdom.VDomElem) {
	r.queueUpdate(func() {
		r.RootVDom = elem
		r.addRenderWork(rootRenderId)
	})
}

func (r *RootElem) renderRoot() {
	r.render(r.RootVDom, &r.Root)
	if r.Host != nil {
		r.Host.Commit(r.MakeRendered())
	}
}

func (r *RootElem) runHookCleanup(waveId string, compTag string, hook *Hook) {
	defer func() {
		util.PanicHandler(fmt.Sprintf("UseEffect unmount - comp: %s (%s)", compTag, waveId), recover())
	}()
	unmountFn := hook.UnmountFn
	hook.UnmountFn = nil
	if unmountFn != nil {
		unmountFn()
	}
}

func (r *RootElem) runEffect(work *EffectWorkElem, hook *Hook) {
	defer func() {
		util.PanicHandler(fmt.Sprintf("UseEffect run - comp: %s (%s)", work.CompTag, work.WaveId), recover())
	}()
	if hook.Fn == nil {
		return
	}
	hook.UnmountFn = hook.Fn()
}

// runs queued effects, cleanups first
func (r *RootElem) runEffects() {
	workQueue := r.EffectWorkQueue
	r.EffectWorkQueue = nil
	for _, work := range workQueue {
		comp := r.CompMap[work.WaveId]
		if comp == nil || work.EffectIndex >= len(comp.Hooks) {
			continue
		}
		r.runHookCleanup(work.WaveId, work.CompTag, comp.Hooks[work.EffectIndex])
	}
	for _, work := range workQueue {
		comp := r.CompMap[work.WaveId]
		if comp == nil || work.EffectIndex >= len(comp.Hooks) {
			continue
		}
		r.runEffect(work, comp.Hooks[work.EffectIndex])
	}
}

func (r *RootElem) applyUpdates() {
	for _, fn := range r.takeUpdates() {
		func() {
			defer func() {
				util.PanicHandler("state update", recover())
			}()
			fn()
		}()
	}
}

// Flush runs effects, applies queued state updates and re-renders until the tree
// is idle.  Must be called on the loop goroutine.  Returns false if the tree did
// not settle within MaxFlushIterations.
func (r *RootElem) Flush() bool {
	settled := false
	for iter := 0; iter < MaxFlushIterations; iter++ {
		r.runEffects()
		r.applyUpdates()
		if len(r.getAndClearRenderWork()) == 0 {
			if len(r.EffectWorkQueue) == 0 && !r.hasPendingUpdates() {
				settled = true
				break
			}
			continue
		}
		if r.RootVDom != nil {
			r.renderRoot()
		}
	}
	if !settled {
		log.Printf("flush did not settle after %d iterations\n", MaxFlushIterations)
	}
	if r.OnFlush != nil {
		r.OnFlush()
	}
	return settled
}

// Run flushes whenever a state update is queued, until ctx is done.  The tree is
// unmounted before Run returns.
func (r *RootElem) Run(ctx context.Context) error {
	defer r.Close()
	r.Flush()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.wakeCh:
			r.Flush()
		}
	}
}

// Close unmounts the tree (running all effect cleanups) and drops further updates.
func (r *RootElem) Close() {
	r.updateLock.Lock()
	r.closed = true
	r.updates = nil
	r.updateLock.Unlock()
	r.unmount(&r.Root)
	r.RootVDom = nil
	r.EffectWorkQueue = nil
	if r.Host != nil {
		r.Host.Commit(nil)
	}
}
