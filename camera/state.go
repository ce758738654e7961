// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import "cogentcore.org/core/math32"

// State is a value snapshot of the synchronized camera fields:
// position, orientation, field of view, zoom and the pan target.
// It is always copied by value between viewports, never shared,
// because the source camera keeps being mutated by live interaction.
type State struct {

	// Pos is the camera position in world coordinates.
	Pos math32.Vector3

	// Quat is the camera orientation.
	Quat math32.Quat

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Zoom is the projection magnification factor.
	Zoom float32

	// Target is the pan / orbit target point.
	Target math32.Vector3
}

// State returns a value snapshot of the camera's synchronized
// fields, read atomically in a single pass.
func (cm *Camera) State() State {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return State{
		Pos:    cm.Pos,
		Quat:   cm.Quat,
		FOV:    cm.FOV,
		Zoom:   cm.Zoom,
		Target: cm.Target,
	}
}

// SetState applies the given snapshot to this camera and recomputes
// the derived view and projection matrices.
func (cm *Camera) SetState(st State) {
	cm.mu.Lock()
	cm.Pos = st.Pos
	cm.Quat = st.Quat
	cm.FOV = st.FOV
	cm.Zoom = math32.Max(st.Zoom, 0.001)
	cm.Target = st.Target
	cm.updateMatrix()
	cm.mu.Unlock()
}
