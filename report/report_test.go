// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/json"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"cogentcore.org/xyzdiff/compare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestReportRoundTrip(t *testing.T) {
	a := solid(4, 4, color.RGBA{0, 0, 0, 255})
	b := solid(4, 4, color.RGBA{255, 255, 255, 255})
	res, err := compare.Images(a, b, nil)
	require.NoError(t, err)

	fnm := filepath.Join(t.TempDir(), "diff.json")
	rp := New(res).SetSources(a, b)
	require.NoError(t, rp.Save(fnm))

	got, err := Open(fnm)
	require.NoError(t, err)
	assert.Equal(t, rp.Width, got.Width)
	assert.Equal(t, rp.Height, got.Height)
	assert.Equal(t, rp.TotalPixels, got.TotalPixels)
	assert.Equal(t, rp.DiffPixels, got.DiffPixels)
	assert.Equal(t, rp.DiffPercentage, got.DiffPercentage)
	assert.Equal(t, rp.SimilarityPercentage, got.SimilarityPercentage)
	assert.Equal(t, rp.Threshold, got.Threshold)
	assert.Equal(t, "perceptual", got.Method)

	// embedded rasters decode back at the compared dimensions
	require.NotNil(t, got.DiffImage)
	require.NotNil(t, got.DiffImage.Image)
	assert.Equal(t, image.Pt(4, 4), got.DiffImage.Image.Bounds().Size())
	require.NotNil(t, got.ImageA)
	assert.Equal(t, image.Pt(4, 4), got.ImageA.Image.Bounds().Size())
	require.NotNil(t, got.ImageB)
}

func TestBase64ImageEncoding(t *testing.T) {
	src := solid(3, 2, color.RGBA{20, 140, 250, 255})
	b, err := json.Marshal(NewBase64Image(src))
	require.NoError(t, err)
	// a JSON string, not a struct
	assert.True(t, len(b) > 2 && b[0] == '"')

	got := &Base64Image{}
	require.NoError(t, json.Unmarshal(b, got))
	require.NotNil(t, got.Image)
	assert.Equal(t, image.Pt(3, 2), got.Image.Bounds().Size())
	r, g, bl, _ := got.Image.At(1, 1).RGBA()
	assert.Equal(t, uint32(20), r>>8)
	assert.Equal(t, uint32(140), g>>8)
	assert.Equal(t, uint32(250), bl>>8)

	nb, err := json.Marshal(&Base64Image{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(nb))
}

func TestReportInvariants(t *testing.T) {
	a := solid(2, 2, color.RGBA{0, 0, 0, 255})
	res, err := compare.Images(a, a, nil)
	require.NoError(t, err)

	rp := New(res)
	assert.Equal(t, rp.TotalPixels, rp.Width*rp.Height)
	assert.Equal(t, 100.0, rp.DiffPercentage+rp.SimilarityPercentage)
	assert.LessOrEqual(t, rp.DiffPixels, rp.TotalPixels)
	assert.Nil(t, rp.ImageA)
	assert.Nil(t, rp.ImageB)
	assert.NotNil(t, rp.DiffImage)
	assert.Equal(t, "perceptual", rp.Method)
}

func TestReportAbsoluteMethodRecorded(t *testing.T) {
	a := solid(2, 2, color.RGBA{0, 0, 0, 255})
	opts := compare.DefaultOptions()
	opts.Method = compare.Absolute
	res, err := compare.Images(a, a, opts)
	require.NoError(t, err)
	assert.Equal(t, "absolute", New(res).Method)
}
