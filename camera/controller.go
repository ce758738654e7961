// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"sync"

	"cogentcore.org/core/math32"
)

// Controller processes interactive navigation input for a [Camera].
// It can be disabled while an external camera state is being imposed
// (e.g., during sync propagation), which drops input and suppresses
// change notifications so the write does not echo back as an event.
type Controller struct {

	// Cam is the camera this controller drives. The controller's
	// orbit target is the camera's Target.
	Cam *Camera

	// Damping scales incoming orbit / pan / dolly deltas.
	// 1 applies input directly; smaller values soften it.
	Damping float32

	// Inertia is the fraction of the last orbit delta carried over
	// as residual motion on each [Controller.Tick]. 0 disables
	// inertial updates.
	Inertia float32

	mu        sync.Mutex
	enabled   bool
	orbitVel  math32.Vector2
	listeners []func()
}

// NewController returns an enabled controller for the given camera,
// with no damping or inertia.
func NewController(cam *Camera) *Controller {
	return &Controller{Cam: cam, Damping: 1, enabled: true}
}

// Enabled reports whether the controller is currently processing
// interactive input.
func (ct *Controller) Enabled() bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.enabled
}

// SetEnabled turns interactive input processing on or off.
// Disabling also stops any residual inertial motion.
func (ct *Controller) SetEnabled(on bool) {
	ct.mu.Lock()
	ct.enabled = on
	if !on {
		ct.orbitVel = math32.Vector2{}
	}
	ct.mu.Unlock()
}

// OnChange registers a function called after every camera mutation
// this controller performs. Listeners are not called for mutations
// applied while the controller is disabled.
func (ct *Controller) OnChange(fn func()) {
	ct.mu.Lock()
	ct.listeners = append(ct.listeners, fn)
	ct.mu.Unlock()
}

func (ct *Controller) sendChange() {
	ct.mu.Lock()
	ls := ct.listeners
	ct.mu.Unlock()
	for _, fn := range ls {
		fn()
	}
}

// Orbit rotates the camera around the target by the given deltas in
// degrees, subject to damping, and records inertial velocity.
func (ct *Controller) Orbit(delX, delY float32) {
	if !ct.Enabled() {
		return
	}
	dx, dy := delX*ct.Damping, delY*ct.Damping
	ct.Cam.Orbit(dx, dy)
	ct.mu.Lock()
	ct.orbitVel = math32.Vec2(dx, dy).MulScalar(ct.Inertia)
	ct.mu.Unlock()
	ct.sendChange()
}

// Pan moves the camera and its target in the view plane.
func (ct *Controller) Pan(delX, delY float32) {
	if !ct.Enabled() {
		return
	}
	ct.Cam.Pan(delX*ct.Damping, delY*ct.Damping)
	ct.sendChange()
}

// Dolly moves the camera along the view axis by the given proportion
// of the distance to the target.
func (ct *Controller) Dolly(pct float32) {
	if !ct.Enabled() {
		return
	}
	ct.Cam.Dolly(pct * ct.Damping)
	ct.sendChange()
}

// Wheel applies a scroll-wheel zoom step, scaling the camera's
// projection magnification multiplicatively: positive steps zoom in.
func (ct *Controller) Wheel(steps float32) {
	if !ct.Enabled() {
		return
	}
	ct.Cam.SetZoom(ct.Cam.State().Zoom * math32.Pow(1.1, steps*ct.Damping))
	ct.sendChange()
}

// SetTarget sets the orbit target point and re-points the camera.
func (ct *Controller) SetTarget(target math32.Vector3) {
	if !ct.Enabled() {
		return
	}
	cam := ct.Cam
	cam.mu.Lock()
	cam.Target = target
	cam.mu.Unlock()
	cam.LookAtTarget()
	ct.sendChange()
}

// Tick advances inertial motion by one frame: any residual orbit
// velocity is applied and decayed. Call once per render tick.
func (ct *Controller) Tick() {
	ct.mu.Lock()
	vel := ct.orbitVel
	on := ct.enabled
	ct.mu.Unlock()
	if !on || (math32.Abs(vel.X) < 0.01 && math32.Abs(vel.Y) < 0.01) {
		return
	}
	ct.Cam.Orbit(vel.X, vel.Y)
	ct.mu.Lock()
	ct.orbitVel = vel.MulScalar(ct.Inertia)
	ct.mu.Unlock()
	ct.sendChange()
}
