// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cm := NewCamera()
	assert.Equal(t, float32(45), cm.FOV)
	assert.Equal(t, float32(1), cm.Zoom)
	assert.Equal(t, math32.Vec3(0, 0, 10), cm.Pos)
	assert.Equal(t, math32.Vector3{}, cm.Target)
	assert.Equal(t, math32.Vec3(0, 1, 0), cm.UpDir)
}

func TestStateRoundTrip(t *testing.T) {
	cm := NewCamera()
	st := State{
		Pos:    math32.Vec3(1, 2, 3),
		Quat:   math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.DegToRad(30)),
		FOV:    60,
		Zoom:   2,
		Target: math32.Vec3(0, 1, 0),
	}
	cm.SetState(st)
	assert.Equal(t, st, cm.State())
}

func TestStateIsValueCopy(t *testing.T) {
	a := NewCamera()
	b := NewCamera()
	b.SetState(a.State())
	// mutating the source after the copy must not affect the peer
	a.Pan(5, 0)
	assert.Equal(t, math32.Vec3(0, 0, 10), b.State().Pos)
}

func TestOrbitKeepsTargetDistance(t *testing.T) {
	cm := NewCamera()
	before := cm.ViewVector().Length()
	cm.Orbit(37, 14)
	after := cm.ViewVector().Length()
	assert.InDelta(t, before, after, 1e-3)
	assert.Equal(t, math32.Vector3{}, cm.Target)
	assert.NotEqual(t, math32.Vec3(0, 0, 10), cm.Pos)
}

func TestOrbitHorizontalKeepsHeight(t *testing.T) {
	cm := NewCamera()
	cm.Orbit(90, 0)
	assert.InDelta(t, 0, float64(cm.Pos.Y), 1e-4)
	assert.InDelta(t, 10, float64(cm.Pos.Length()), 1e-3)
}

func TestPanMovesCameraAndTarget(t *testing.T) {
	cm := NewCamera()
	cm.Pan(2, 3)
	del := cm.Pos.Sub(math32.Vec3(0, 0, 10))
	assert.InDelta(t, float64(del.X), float64(cm.Target.X), 1e-5)
	assert.InDelta(t, float64(del.Y), float64(cm.Target.Y), 1e-5)
	assert.InDelta(t, float64(del.Z), float64(cm.Target.Z), 1e-5)
	assert.NotEqual(t, math32.Vector3{}, cm.Target)
}

func TestDollyMovesAlongViewAxis(t *testing.T) {
	cm := NewCamera()
	cm.Dolly(-0.5)
	assert.InDelta(t, 5, float64(cm.ViewVector().Length()), 1e-4)
	cm.Dolly(1)
	assert.InDelta(t, 10, float64(cm.ViewVector().Length()), 1e-4)
}

func TestEffectiveFOV(t *testing.T) {
	assert.InDelta(t, 45, float64(EffectiveFOV(45, 1)), 1e-4)
	assert.Less(t, EffectiveFOV(45, 2), float32(45))
	assert.Greater(t, EffectiveFOV(45, 0.5), float32(45))
}

func TestControllerDisabledDropsInput(t *testing.T) {
	cm := NewCamera()
	ct := NewController(cm)
	fired := 0
	ct.OnChange(func() { fired++ })

	ct.SetEnabled(false)
	ct.Orbit(45, 0)
	ct.Pan(1, 1)
	ct.Dolly(0.5)
	ct.Wheel(2)
	assert.Equal(t, math32.Vec3(0, 0, 10), cm.State().Pos)
	assert.Equal(t, float32(1), cm.State().Zoom)
	assert.Equal(t, 0, fired)

	ct.SetEnabled(true)
	ct.Orbit(45, 0)
	assert.Equal(t, 1, fired)
	assert.NotEqual(t, math32.Vec3(0, 0, 10), cm.State().Pos)
}

func TestControllerWheelZoom(t *testing.T) {
	cm := NewCamera()
	ct := NewController(cm)
	ct.Wheel(1)
	assert.Greater(t, cm.State().Zoom, float32(1))
	ct.Wheel(-2)
	assert.Less(t, cm.State().Zoom, float32(1))
}

func TestControllerDamping(t *testing.T) {
	full := NewCamera()
	NewController(full).Dolly(-0.5)
	damped := NewCamera()
	dct := NewController(damped)
	dct.Damping = 0.5
	dct.Dolly(-0.5)
	assert.Greater(t, damped.ViewVector().Length(), full.ViewVector().Length())
}

func TestControllerInertia(t *testing.T) {
	cm := NewCamera()
	ct := NewController(cm)
	ct.Inertia = 0.5
	ct.Orbit(10, 0)
	after := cm.State().Pos
	ct.Tick()
	assert.NotEqual(t, after, cm.State().Pos)

	still := NewCamera()
	sct := NewController(still)
	sct.Orbit(10, 0) // Inertia 0
	pos := still.State().Pos
	sct.Tick()
	assert.Equal(t, pos, still.State().Pos)
}

func TestDegeneratePoseFallbacks(t *testing.T) {
	cm := NewCamera()
	// camera sitting on its target: the zero view vector falls back
	// to the +Z axis instead of producing NaN motion
	cm.SetState(State{Pos: math32.Vec3(1, 2, 3), Quat: math32.Quat{W: 1}, FOV: 45, Zoom: 1, Target: math32.Vec3(1, 2, 3)})
	assert.NotPanics(t, func() { cm.Orbit(10, 5) })
	assert.False(t, math32.IsNaN(cm.Pos.X))
	assert.NotPanics(t, func() { cm.Dolly(-0.5) })

	// zero up direction falls back to positive Y
	cm.LookAt(math32.Vector3{}, math32.Vector3{})
	assert.Equal(t, math32.Vec3(0, 1, 0), cm.UpDir)
}

func TestControllerSetTarget(t *testing.T) {
	cm := NewCamera()
	ct := NewController(cm)
	ct.SetTarget(math32.Vec3(1, 0, 0))
	assert.Equal(t, math32.Vec3(1, 0, 0), cm.State().Target)
}
