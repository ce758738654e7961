// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camsync keeps the cameras of multiple named viewports
// synchronized: interaction on one viewport is propagated to all
// others, with a re-entrancy guard preventing feedback loops between
// their change events.
package camsync

import (
	"log/slog"
	"sync"
	"time"

	"cogentcore.org/xyzdiff/camera"
)

// Viewport is one synchronized 3D view: a camera paired with the
// interaction controller that drives it.
type Viewport interface {

	// Camera returns the viewport's camera.
	Camera() *camera.Camera

	// Controller returns the viewport's interaction controller.
	Controller() *camera.Controller
}

// Registry coordinates camera synchronization across named
// viewports. It is an explicit object owned by the application
// context (never package-global state), so its guard flag has a
// clear lifetime and tests do not share state.
//
// Propagation is best-effort: missing viewports are skipped, and
// propagation requests arriving while one is in flight are dropped,
// not queued. The most recent real camera state triggers its own
// sync once the guard clears, so dropped intermediate updates lose
// only intermediate frames.
type Registry struct {

	// ReenableDelay is how long a peer viewport's controller stays
	// disabled after a propagated camera write, letting the
	// controller's damping state settle instead of fighting the
	// externally imposed pose.
	ReenableDelay time.Duration

	// GuardDelay is how long the propagation guard stays set after
	// the peer updates are issued. It is clamped to at least
	// ReenableDelay so all peers settle before new propagation.
	GuardDelay time.Duration

	// AfterFunc schedules the deferred re-enable and guard-clear
	// callbacks. It defaults to [time.AfterFunc]; tests replace it
	// to run callbacks synchronously or capture them.
	AfterFunc func(d time.Duration, fn func())

	mu        sync.Mutex
	viewports map[string]Viewport
	order     []string
	syncing   bool
	enabled   bool
}

// NewRegistry returns a new empty registry with synchronization
// enabled and a 5ms re-enable delay.
func NewRegistry() *Registry {
	return &Registry{
		ReenableDelay: 5 * time.Millisecond,
		AfterFunc:     func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
		viewports:     map[string]Viewport{},
		enabled:       true,
	}
}

// Enabled reports whether synchronization is currently on.
func (r *Registry) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// SetEnabled toggles synchronization. While off, SyncFromSource is
// a no-op; Register, Unregister and ResetAll still work.
func (r *Registry) SetEnabled(on bool) {
	r.mu.Lock()
	r.enabled = on
	r.mu.Unlock()
}

// Register adds the viewport under the given identifier. Registering
// an identifier that is already present replaces the prior entry
// (last write wins) and logs a warning, as the usual cause is a
// caller forgetting to unregister before re-registering.
func (r *Registry) Register(id string, vp Viewport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.viewports[id]; ok {
		slog.Warn("camsync: replacing already registered viewport", "id", id)
	} else {
		r.order = append(r.order, id)
	}
	r.viewports[id] = vp
}

// Unregister removes the viewport with the given identifier.
// It is a no-op if the identifier is not registered. Any in-flight
// deferred callbacks for the viewport become no-ops.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.viewports[id]; !ok {
		return
	}
	delete(r.viewports, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the viewport registered under the given identifier.
func (r *Registry) Get(id string) (Viewport, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vp, ok := r.viewports[id]
	return vp, ok
}

// Has reports whether the given identifier is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// IDs returns the registered identifiers in registration order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Syncing reports whether a propagation is currently in flight.
func (r *Registry) Syncing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.syncing
}

// SyncFromSource propagates the camera state of the viewport with
// the given identifier to every other registered viewport, and
// reports whether propagation ran. It returns false without doing
// anything if synchronization is disabled, a propagation is already
// in flight (the anti-feedback guard), or the source is not
// registered; none of these is an error.
//
// The source state is snapshotted by value before any peer is
// touched. Each peer's controller is disabled before the state is
// copied onto its camera, and re-enabled after ReenableDelay; the
// guard clears after GuardDelay. Callers driving this from
// continuous interaction events should throttle to roughly one call
// per frame; see [Throttle].
func (r *Registry) SyncFromSource(id string) bool {
	r.mu.Lock()
	if !r.enabled || r.syncing {
		r.mu.Unlock()
		return false
	}
	src, ok := r.viewports[id]
	if !ok {
		// source may have been unregistered mid-event; not an error
		r.mu.Unlock()
		return false
	}
	r.syncing = true
	targets := make([]string, 0, len(r.order))
	for _, tid := range r.order {
		if tid != id {
			targets = append(targets, tid)
		}
	}
	r.mu.Unlock()

	st := src.Camera().State()
	for _, tid := range targets {
		r.applyState(tid, st)
	}
	r.clearGuardAfter()
	return true
}

// ResetAll applies the given reference camera state to every
// registered viewport, returning all views to a common framing.
// It follows the same disable / copy / re-enable / guard discipline
// as SyncFromSource, but takes the state directly instead of reading
// a registered source. It works even while synchronization is
// toggled off, since it is an explicit command rather than an
// interaction echo. It reports whether the reset ran (false if a
// propagation was already in flight).
func (r *Registry) ResetAll(ref camera.State) bool {
	r.mu.Lock()
	if r.syncing {
		r.mu.Unlock()
		return false
	}
	r.syncing = true
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	r.mu.Unlock()

	for _, id := range ids {
		r.applyState(id, ref)
	}
	r.clearGuardAfter()
	return true
}

// Suspend sets the propagation guard without propagating, so callers
// that mutate cameras directly (batch capture, scripted alignment)
// can hold off interaction-driven syncs for the duration. It reports
// whether the guard was acquired; false means a propagation is
// already in flight. Pair with [Registry.Resume].
func (r *Registry) Suspend() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.syncing {
		return false
	}
	r.syncing = true
	return true
}

// Resume clears the guard set by [Registry.Suspend].
func (r *Registry) Resume() {
	r.mu.Lock()
	r.syncing = false
	r.mu.Unlock()
}

// applyState copies the snapshotted state onto the identified
// viewport's camera under a temporary controller disable, scheduling
// the deferred re-enable. Viewports unregistered since the ids were
// collected are skipped.
func (r *Registry) applyState(id string, st camera.State) {
	r.mu.Lock()
	vp, ok := r.viewports[id]
	r.mu.Unlock()
	if !ok {
		return
	}
	ctl := vp.Controller()
	ctl.SetEnabled(false)
	vp.Camera().SetState(st) // also recomputes projection matrices
	r.AfterFunc(r.ReenableDelay, func() {
		// the viewport may have been unregistered or replaced while
		// this callback was pending
		r.mu.Lock()
		cur, ok := r.viewports[id]
		r.mu.Unlock()
		if !ok || cur != vp {
			return
		}
		ctl.SetEnabled(true)
	})
}

// clearGuardAfter schedules the guard clear, no sooner than the
// peer re-enable callbacks.
func (r *Registry) clearGuardAfter() {
	d := r.GuardDelay
	if d < r.ReenableDelay {
		d = r.ReenableDelay
	}
	r.AfterFunc(d, func() {
		r.mu.Lock()
		r.syncing = false
		r.mu.Unlock()
	})
}
