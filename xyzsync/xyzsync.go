// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xyzsync binds a live [xyz.Scene] to the camsync viewport
// and capture source interfaces, so two scene views can be kept in
// lockstep and their frames compared.
package xyzsync

import (
	"fmt"
	"image"

	"cogentcore.org/core/base/iox/imagex"
	"cogentcore.org/core/xyz"
	"cogentcore.org/xyzdiff/camera"
)

// SceneView adapts an [xyz.Scene] to [camsync.Viewport] and
// [capture.Source]. It keeps its own [camera.Camera] mirroring the
// scene camera; controller input and sync writes land on the mirror
// and are pushed onto the scene via [SceneView.Apply].
type SceneView struct {

	// Scene is the underlying 3D scene.
	Scene *xyz.Scene

	cam *camera.Camera
	ctl *camera.Controller
}

// NewSceneView returns a view over the given scene, adopting the
// scene's current camera framing. Scene navigation events are
// disabled so all camera input flows through the controller.
func NewSceneView(sc *xyz.Scene) *SceneView {
	sc.NoNav = true
	sv := &SceneView{Scene: sc}
	sv.cam = camera.NewCamera()
	sv.cam.Pos = sc.Camera.Pose.Pos
	sv.cam.Quat = sc.Camera.Pose.Quat
	sv.cam.Target = sc.Camera.Target
	sv.cam.UpDir = sc.Camera.UpDir
	sv.cam.FOV = sc.Camera.FOV
	sv.cam.Aspect = sc.Camera.Aspect
	sv.cam.UpdateMatrix()
	sv.ctl = camera.NewController(sv.cam)
	sv.ctl.OnChange(sv.Apply)
	return sv
}

// Camera returns the mirrored camera.
func (sv *SceneView) Camera() *camera.Camera { return sv.cam }

// Controller returns the interaction controller.
func (sv *SceneView) Controller() *camera.Controller { return sv.ctl }

// Apply pushes the mirrored camera state onto the scene camera,
// folding the zoom magnification into the scene camera's field of
// view, and flags the scene for re-render.
func (sv *SceneView) Apply() {
	st := sv.cam.State()
	sc := sv.Scene
	sc.Camera.Pose.Pos = st.Pos
	sc.Camera.Pose.Quat = st.Quat
	sc.Camera.Target = st.Target
	sc.Camera.FOV = camera.EffectiveFOV(st.FOV, st.Zoom)
	sc.Camera.UpdateMatrix()
	sc.SetNeedsRender()
}

// CaptureFrame applies any pending camera state, renders the scene,
// and returns a persistent copy of the frame.
func (sv *SceneView) CaptureFrame() (*image.RGBA, error) {
	sv.Apply()
	sv.Scene.UpdateNodes()
	sv.Scene.Render()
	img, err := sv.Scene.ImageCopy()
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("xyzsync: scene render frame not ready")
	}
	// ImageCopy re-uses its buffer across calls
	return imagex.CloneAsRGBA(img), nil
}
