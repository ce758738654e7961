// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camsync

import (
	"sync"
	"time"
)

// Throttle rate-limits continuous interaction events (drag, wheel)
// to roughly one per animation frame, since firing sync more often
// than the renderer's frame rate wastes work without improving
// perceived smoothness.
type Throttle struct {

	// Interval is the minimum time between admitted events.
	Interval time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewThrottle returns a throttle with the given minimum interval;
// an interval <= 0 uses one 60Hz frame (16ms).
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &Throttle{Interval: interval}
}

// Ready reports whether enough time has passed since the last
// admitted event, and if so admits this one.
func (th *Throttle) Ready() bool {
	th.mu.Lock()
	defer th.mu.Unlock()
	now := time.Now()
	if now.Sub(th.last) < th.Interval {
		return false
	}
	th.last = now
	return true
}
