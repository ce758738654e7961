// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camera provides a perspective orbit camera and an interaction
// controller for synchronized 3D model viewports.
package camera

import (
	"sync"

	"cogentcore.org/core/math32"
)

// Camera is a perspective camera that orbits a target point.
// All mutating operations keep the derived view and projection
// matrices up to date, so the camera state can be pushed onto a
// rendering scene at any time.
type Camera struct {

	// Pos is the position of the camera in world coordinates.
	Pos math32.Vector3

	// Quat is the rotation of the camera, relative to pointing at
	// negative Z with positive Y up. Using a quaternion avoids any
	// gimbal ambiguity when copying orientation between viewports.
	Quat math32.Quat

	// Target is the location the camera is pointing at and orbits
	// around. It defaults to the origin and moves with panning.
	Target math32.Vector3

	// UpDir is the up direction for the camera. It defaults to
	// positive Y and is reset by a call to [Camera.LookAt].
	UpDir math32.Vector3

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Zoom is the magnification factor applied to the projection:
	// the effective field of view shrinks as Zoom grows.
	// 1 is no magnification. See [EffectiveFOV].
	Zoom float32

	// Aspect is the aspect ratio (width / height).
	Aspect float32

	// Near is the near plane z coordinate.
	Near float32

	// Far is the far plane z coordinate.
	Far float32

	// ViewMatrix is the inverse of the camera pose matrix.
	ViewMatrix math32.Matrix4

	// ProjectionMatrix transforms camera coordinates into normalized
	// render coordinates, incorporating FOV, Zoom and Aspect.
	ProjectionMatrix math32.Matrix4

	// InvProjectionMatrix is the inverse of the projection matrix.
	InvProjectionMatrix math32.Matrix4

	// mu protects camera data, which is read by sync and capture
	// while interaction events are mutating it.
	mu sync.RWMutex
}

// NewCamera returns a new camera with default parameters,
// positioned at (0,0,10) looking at the origin.
func NewCamera() *Camera {
	cm := &Camera{}
	cm.Defaults()
	return cm
}

// Defaults sets default camera parameters and pose.
func (cm *Camera) Defaults() {
	cm.FOV = 45
	cm.Zoom = 1
	cm.Aspect = 1.5
	cm.Near = 0.01
	cm.Far = 1000
	cm.DefaultPose()
}

// DefaultPose resets the camera to the default location and
// orientation, looking at the origin from (0,0,10) with up Y.
func (cm *Camera) DefaultPose() {
	cm.mu.Lock()
	cm.Pos = math32.Vec3(0, 0, 10)
	cm.mu.Unlock()
	cm.LookAt(math32.Vector3{}, math32.Vec3(0, 1, 0))
}

// EffectiveFOV returns the vertical field of view in degrees after
// applying the given zoom magnification factor.
func EffectiveFOV(fov, zoom float32) float32 {
	zoom = math32.Max(zoom, 0.001)
	return 2 * math32.RadToDeg(math32.Atan(math32.Tan(math32.DegToRad(fov)/2)/zoom))
}

// UpdateMatrix updates the view and projection matrices from the
// current pose and projection parameters.
func (cm *Camera) UpdateMatrix() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.updateMatrix()
}

// updateMatrix does the matrix updates; mu must be held.
func (cm *Camera) updateMatrix() {
	var pose math32.Matrix4
	pose.SetTransform(cm.Pos, cm.Quat, math32.Vec3(1, 1, 1))
	view, _ := pose.Inverse()
	cm.ViewMatrix = *view
	cm.ProjectionMatrix.SetPerspective(EffectiveFOV(cm.FOV, cm.Zoom), cm.Aspect, cm.Near, cm.Far)
	inv, _ := cm.ProjectionMatrix.Inverse()
	cm.InvProjectionMatrix = *inv
}

// LookAt points the camera at the given target location using the
// given up direction, and sets the Target and UpDir fields for
// future camera movements. A zero up direction means positive Y.
func (cm *Camera) LookAt(target, upDir math32.Vector3) {
	cm.mu.Lock()
	cm.Target = target
	if upDir == (math32.Vector3{}) {
		upDir = math32.Vec3(0, 1, 0)
	}
	cm.UpDir = upDir
	cm.Quat.SetFromRotationMatrix(math32.NewLookAt(cm.Pos, target, upDir))
	cm.updateMatrix()
	cm.mu.Unlock()
}

// LookAtOrigin points the camera at the origin with positive Y up.
func (cm *Camera) LookAtOrigin() {
	cm.LookAt(math32.Vector3{}, math32.Vec3(0, 1, 0))
}

// LookAtTarget points the camera at the current target using the
// current up direction.
func (cm *Camera) LookAtTarget() {
	cm.LookAt(cm.Target, cm.UpDir)
}

// ViewVector is the vector from the target to the camera position.
func (cm *Camera) ViewVector() math32.Vector3 {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.Pos.Sub(cm.Target)
}

// Orbit moves the camera along the given 2D axes in degrees
// (delX = left/right, delY = up/down), relative to the current
// position and orientation, keeping the same distance from the
// target and rotating the up direction to keep looking at it.
func (cm *Camera) Orbit(delX, delY float32) {
	ctdir := cm.ViewVector()
	if ctdir == (math32.Vector3{}) {
		ctdir = math32.Vec3(0, 0, 1)
	}
	dir := ctdir.Normal()

	cm.mu.Lock()
	up := cm.UpDir
	right := cm.UpDir.Cross(dir).Normal()

	// delX rotates around the up vector, delY around the right vector
	dxq := math32.NewQuatAxisAngle(up, math32.DegToRad(delX))
	dx := ctdir.MulQuat(dxq).Sub(ctdir)
	dyq := math32.NewQuatAxisAngle(right, math32.DegToRad(delY))
	dy := ctdir.MulQuat(dyq).Sub(ctdir)

	cm.Pos = cm.Pos.Add(dx).Add(dy)
	cm.UpDir = cm.UpDir.MulQuat(dyq) // only delY affects up
	cm.mu.Unlock()

	cm.LookAtTarget()
}

// Pan moves the camera along the given 2D axes (left/right, up/down)
// in the plane of the current view, moving the target by the same
// increment so the orbit point follows the pan.
func (cm *Camera) Pan(delX, delY float32) {
	cm.mu.Lock()
	dx := math32.Vec3(-delX, 0, 0).MulQuat(cm.Quat)
	dy := math32.Vec3(0, -delY, 0).MulQuat(cm.Quat)
	td := dx.Add(dy)
	cm.Pos.SetAdd(td)
	cm.Target.SetAdd(td)
	cm.updateMatrix()
	cm.mu.Unlock()
}

// PanTarget moves the target along world X,Y,Z axes and re-points
// the camera at the new target location.
func (cm *Camera) PanTarget(delX, delY, delZ float32) {
	cm.mu.Lock()
	cm.Target.SetAdd(math32.Vec3(-delX, -delY, delZ))
	cm.mu.Unlock()
	cm.LookAtTarget()
}

// Dolly moves the camera along the view axis by the given proportion
// of the current distance to the target: positive moves away,
// negative moves closer. The target also moves back when the camera
// gets within unit distance, so dollying never degenerates.
func (cm *Camera) Dolly(pct float32) {
	ctaxis := cm.ViewVector()
	if ctaxis == (math32.Vector3{}) {
		ctaxis = math32.Vec3(0, 0, 1)
	}
	dist := ctaxis.Length()
	del := ctaxis.MulScalar(pct)
	cm.mu.Lock()
	cm.Pos.SetAdd(del)
	if pct < 0 && dist < 1 {
		cm.Target.SetAdd(del)
	}
	cm.updateMatrix()
	cm.mu.Unlock()
}

// SetZoom sets the projection magnification factor and updates the
// projection matrix. Values are clamped to a small positive minimum.
func (cm *Camera) SetZoom(zoom float32) {
	cm.mu.Lock()
	cm.Zoom = math32.Max(zoom, 0.001)
	cm.updateMatrix()
	cm.mu.Unlock()
}
