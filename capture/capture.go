// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package capture orchestrates synchronized frame capture from two
// viewports and hands the rasters to the pixel comparator: cameras
// are aligned, interaction is suspended, at least one render tick is
// waited out, and each frame grab is retried once on failure.
package capture

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"cogentcore.org/xyzdiff/camera"
	"cogentcore.org/xyzdiff/camsync"
	"cogentcore.org/xyzdiff/compare"
)

var (
	// ErrMissingViewport indicates a comparison referenced an
	// identifier that is not registered, or whose viewport does not
	// provide frame capture (nothing loaded yet).
	ErrMissingViewport = errors.New("capture: viewport not registered")

	// ErrCaptureFailed indicates a viewport's render target did not
	// produce a frame, even after the single retry.
	ErrCaptureFailed = errors.New("capture: frame capture failed after retry")
)

// Source is a viewport whose render target can be read back.
// CaptureFrame must reflect a fully composited frame at the
// viewport's configured resolution, with alpha preserved if the
// renderer uses it.
type Source interface {
	camsync.Viewport

	// CaptureFrame returns the current rendered frame.
	CaptureFrame() (*image.RGBA, error)
}

// Session runs comparisons between registered viewports.
type Session struct {

	// Registry holds the viewports by identifier.
	Registry *camsync.Registry

	// Options are the pixel comparison parameters.
	Options *compare.Options

	// TickWait is how long to wait after camera state is applied
	// before reading back pixels, so at least one full render tick
	// completes; capturing immediately risks reading a stale frame.
	TickWait time.Duration

	// RetryDelay is the wait before the single capture retry.
	RetryDelay time.Duration

	// Sleep is the wait function, settable for tests.
	Sleep func(time.Duration)
}

// NewSession returns a session over the given registry with default
// comparison options, a one-frame tick wait and a 50ms retry delay.
func NewSession(reg *camsync.Registry) *Session {
	return &Session{
		Registry:   reg,
		Options:    compare.DefaultOptions(),
		TickWait:   16 * time.Millisecond,
		RetryDelay: 50 * time.Millisecond,
		Sleep:      time.Sleep,
	}
}

// Compare captures one frame from each of the two identified
// viewports and compares them. The registry's propagation guard is
// held for the duration, the second viewport's camera is aligned to
// the first's state, both controllers are disabled and re-enabled
// after the registry's re-enable delay, and a render tick is waited
// out before each readback. Rasters of differing sizes are compared
// over their overlap.
func (ss *Session) Compare(aID, bID string) (*compare.Result, error) {
	asrc, err := ss.source(aID)
	if err != nil {
		return nil, err
	}
	bsrc, err := ss.source(bID)
	if err != nil {
		return nil, err
	}

	// hold the propagation guard so interaction-driven syncs do not
	// overwrite the alignment while frames are being read back; if a
	// propagation is already in flight it completes synchronously
	// before this point, so failing to acquire is not fatal
	if ss.Registry.Suspend() {
		defer ss.Registry.Resume()
	}

	actl, bctl := asrc.Controller(), bsrc.Controller()
	actl.SetEnabled(false)
	bctl.SetEnabled(false)
	defer ss.reenable(actl)
	defer ss.reenable(bctl)

	// align the candidate to the reference framing; snapshot is by
	// value so live interaction on the source cannot tear it
	bsrc.Camera().SetState(asrc.Camera().State())

	ss.Sleep(ss.TickWait)

	aimg, err := ss.capture(asrc, aID)
	if err != nil {
		return nil, err
	}
	bimg, err := ss.capture(bsrc, bID)
	if err != nil {
		return nil, err
	}
	return compare.Images(aimg, bimg, ss.Options)
}

// reenable restores a controller after the registry's re-enable
// delay, using the same deferred scheduler as propagation so the
// controller's damping state settles before interaction resumes.
func (ss *Session) reenable(ctl *camera.Controller) {
	ss.Registry.AfterFunc(ss.Registry.ReenableDelay, func() {
		ctl.SetEnabled(true)
	})
}

// source resolves an identifier to a capturable viewport.
func (ss *Session) source(id string) (Source, error) {
	vp, ok := ss.Registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingViewport, id)
	}
	src, ok := vp.(Source)
	if !ok {
		return nil, fmt.Errorf("%w: %q does not provide frame capture", ErrMissingViewport, id)
	}
	return src, nil
}

// capture grabs a frame, retrying exactly once after RetryDelay.
// A nil frame with a nil error counts as a failure (render target
// not ready).
func (ss *Session) capture(src Source, id string) (*image.RGBA, error) {
	img, err := src.CaptureFrame()
	if err == nil && img != nil {
		return img, nil
	}
	slog.Warn("capture: frame grab failed, retrying", "viewport", id, "err", err)
	ss.Sleep(ss.RetryDelay)
	img, err = src.CaptureFrame()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrCaptureFailed, id, err)
	}
	if img == nil {
		return nil, fmt.Errorf("%w: %q: render target not ready", ErrCaptureFailed, id)
	}
	return img, nil
}
