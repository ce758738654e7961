// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compare implements a perceptual pixel-difference comparison
// between two RGBA rasters, producing a color-coded diff raster, a
// mismatch count and a similarity percentage.
package compare

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"cogentcore.org/core/base/iox/imagex"
	"cogentcore.org/core/math32"
)

// ErrDimensionMismatch is returned when a raw pixel buffer is shorter
// than its claimed width*height*4 bytes (truncated or corrupt input).
// Inputs whose dimensions merely differ from each other are not an
// error: the comparison operates on their overlapping region.
var ErrDimensionMismatch = errors.New("compare: pixel buffer too short for given dimensions")

// Method selects the pixel classification metric. The two methods
// are not numerically equivalent: the active one is recorded in
// [Result.Method] and consumers must not assume interchangeability.
type Method int32

const (
	// Perceptual classifies pixels by a luma-weighted Euclidean
	// distance over R,G,B, approximating human luminance
	// sensitivity. This is the default.
	Perceptual Method = iota

	// Absolute classifies pixels by the sum of unweighted
	// per-channel absolute differences: a simpler, less
	// perceptually accurate fallback.
	Absolute
)

func (m Method) String() string {
	switch m {
	case Absolute:
		return "absolute"
	default:
		return "perceptual"
	}
}

// Options are the comparison parameters.
type Options struct {

	// Threshold is the minimum normalized color distance in [0,1]
	// at which a pixel is classified as different.
	// Lower is more sensitive. Default is 0.1.
	Threshold float32 `default:"0.1"`

	// IncludeAlpha includes the alpha channel in the distance
	// calculation. Default is false.
	IncludeAlpha bool

	// Method is the statically selected classification metric.
	Method Method

	// DiffColor is the solid color marking differing pixels in the
	// diff raster. Default is opaque red.
	DiffColor color.RGBA

	// MatchColor is the neutral tone that matching pixels are
	// blended toward, preserving some visual context of
	// non-differing regions. Default is white.
	MatchColor color.RGBA

	// BlendFactor is the weight in [0,1] of the original color in
	// the blend written for matching pixels; the remainder goes to
	// MatchColor. Default is 0.1.
	BlendFactor float32 `default:"0.1"`
}

// Defaults sets the default option values.
func (o *Options) Defaults() {
	o.Threshold = 0.1
	o.BlendFactor = 0.1
	o.DiffColor = color.RGBA{R: 255, A: 255}
	o.MatchColor = color.RGBA{255, 255, 255, 255}
}

// DefaultOptions returns a new Options with default values.
func DefaultOptions() *Options {
	o := &Options{}
	o.Defaults()
	return o
}

// Result is the outcome of one comparison.
type Result struct {

	// Width and Height are the compared dimensions: the overlapping
	// region when the inputs differ in size.
	Width, Height int

	// TotalPixels is Width * Height.
	TotalPixels int

	// DiffPixels is the count of pixels classified as different.
	DiffPixels int

	// DiffPercentage is DiffPixels / TotalPixels * 100.
	DiffPercentage float64

	// SimilarityPercentage is 100 - DiffPercentage.
	SimilarityPercentage float64

	// Threshold is the sensitivity value that was used.
	Threshold float32

	// Method is the classification metric that was used.
	Method Method

	// Diff is the color-coded diff raster, with the same dimensions
	// as the compared region and fully opaque alpha.
	Diff *image.RGBA
}

// Images compares two images pixel by pixel and returns the
// difference result. The comparison is a pure function of its
// inputs: each pixel is classified independently with no cross-pixel
// state, so results are deterministic and symmetric in a and b.
//
// When the images differ in size, the overlapping region
// (min width x min height) is compared; the inputs are never
// rescaled. A nil opts uses [DefaultOptions].
func Images(a, b image.Image, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	ar := imagex.AsRGBA(a)
	br := imagex.AsRGBA(b)
	w := min(ar.Rect.Dx(), br.Rect.Dx())
	h := min(ar.Rect.Dy(), br.Rect.Dy())
	return compareRGBA(ar, br, w, h, opts), nil
}

// Pix compares two raw RGBA pixel buffers with the given per-buffer
// dimensions. It returns [ErrDimensionMismatch] if either buffer is
// shorter than its claimed width*height*4 bytes; this is fatal for
// the comparison, not the process. Buffers of differing dimensions
// are compared over their overlapping region.
func Pix(apix, bpix []byte, aWidth, aHeight, bWidth, bHeight int, opts *Options) (*Result, error) {
	if aWidth < 0 || aHeight < 0 || len(apix) < aWidth*aHeight*4 {
		return nil, fmt.Errorf("%w: buffer A has %d bytes for %dx%d", ErrDimensionMismatch, len(apix), aWidth, aHeight)
	}
	if bWidth < 0 || bHeight < 0 || len(bpix) < bWidth*bHeight*4 {
		return nil, fmt.Errorf("%w: buffer B has %d bytes for %dx%d", ErrDimensionMismatch, len(bpix), bWidth, bHeight)
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	ar := &image.RGBA{Pix: apix, Stride: aWidth * 4, Rect: image.Rect(0, 0, aWidth, aHeight)}
	br := &image.RGBA{Pix: bpix, Stride: bWidth * 4, Rect: image.Rect(0, 0, bWidth, bHeight)}
	return compareRGBA(ar, br, min(aWidth, bWidth), min(aHeight, bHeight), opts), nil
}

// compareRGBA classifies each pixel of the w x h overlap region.
func compareRGBA(a, b *image.RGBA, w, h int, opts *Options) *Result {
	res := &Result{
		Width:       w,
		Height:      h,
		TotalPixels: w * h,
		Threshold:   opts.Threshold,
		Method:      opts.Method,
		Diff:        image.NewRGBA(image.Rect(0, 0, w, h)),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pa := a.RGBAAt(a.Rect.Min.X+x, a.Rect.Min.Y+y)
			pb := b.RGBAAt(b.Rect.Min.X+x, b.Rect.Min.Y+y)
			var d float32
			if opts.Method == Absolute {
				d = absoluteDistance(pa, pb, opts.IncludeAlpha)
			} else {
				d = perceptualDistance(pa, pb, opts.IncludeAlpha)
			}
			if d > opts.Threshold {
				res.DiffPixels++
				res.Diff.SetRGBA(x, y, color.RGBA{opts.DiffColor.R, opts.DiffColor.G, opts.DiffColor.B, 255})
			} else {
				res.Diff.SetRGBA(x, y, blend(pa, opts.MatchColor, opts.BlendFactor))
			}
		}
	}
	if res.TotalPixels > 0 {
		res.DiffPercentage = float64(res.DiffPixels) / float64(res.TotalPixels) * 100
	}
	res.SimilarityPercentage = 100 - res.DiffPercentage
	return res
}

// luma weights approximating human luminance sensitivity
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// perceptualDistance is the luma-weighted Euclidean distance between
// two pixels, normalized to [0,1]. With includeAlpha, the normalized
// alpha difference participates as a lower bound on the distance, so
// fully transparent vs. opaque pixels always register.
func perceptualDistance(pa, pb color.RGBA, includeAlpha bool) float32 {
	dr := float32(pa.R) - float32(pb.R)
	dg := float32(pa.G) - float32(pb.G)
	db := float32(pa.B) - float32(pb.B)
	d := math32.Sqrt(lumaR*dr*dr+lumaG*dg*dg+lumaB*db*db) / 255
	if includeAlpha {
		da := math32.Abs(float32(pa.A)-float32(pb.A)) / 255
		d = math32.Max(d, da)
	}
	return d
}

// absoluteDistance is the sum of unweighted per-channel absolute
// differences, normalized to [0,1] (by 765 for RGB, 1020 with alpha).
func absoluteDistance(pa, pb color.RGBA, includeAlpha bool) float32 {
	sum := math32.Abs(float32(pa.R)-float32(pb.R)) +
		math32.Abs(float32(pa.G)-float32(pb.G)) +
		math32.Abs(float32(pa.B)-float32(pb.B))
	if includeAlpha {
		sum += math32.Abs(float32(pa.A) - float32(pb.A))
		return sum / 1020
	}
	return sum / 765
}

// blend mixes src toward the neutral tone by the given factor
// (factor = weight of src), always fully opaque.
func blend(src, toward color.RGBA, factor float32) color.RGBA {
	f := math32.Clamp(factor, 0, 1)
	mix := func(s, t uint8) uint8 {
		return uint8(f*float32(s) + (1-f)*float32(t) + 0.5)
	}
	return color.RGBA{mix(src.R, toward.R), mix(src.G, toward.G), mix(src.B, toward.B), 255}
}
