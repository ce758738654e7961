// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report serializes comparison results to a structured JSON
// record, with the source and diff rasters embedded as base64 PNG,
// matching the report shape of existing consumers.
package report

import (
	"encoding/json"
	"image"

	"cogentcore.org/core/base/iox/imagex"
	"cogentcore.org/core/base/iox/jsonx"
	"cogentcore.org/xyzdiff/compare"
)

// Base64Image is a wrapper around an [image.Image] that marshals to
// and from a base64-encoded PNG JSON string, so images embed directly
// in report fields. Must be a pointer type to support the custom
// unmarshal function.
type Base64Image struct {
	Image image.Image
}

// NewBase64Image returns a new [Base64Image] wrapper around given image.
func NewBase64Image(im image.Image) *Base64Image {
	return &Base64Image{Image: im}
}

func (bi *Base64Image) MarshalJSON() ([]byte, error) {
	if bi.Image == nil {
		return []byte("null"), nil
	}
	eb, _ := imagex.ToBase64PNG(bi.Image)
	return json.Marshal(string(eb))
}

func (bi *Base64Image) UnmarshalJSON(b []byte) error {
	var es string
	err := json.Unmarshal(b, &es)
	if err != nil || es == "" {
		bi.Image = nil
		return err
	}
	im, err := imagex.FromBase64PNG([]byte(es))
	if err != nil {
		bi.Image = nil
		return err
	}
	bi.Image = im
	return nil
}

// Report is the persistable record of one comparison.
type Report struct {
	Width                int     `json:"width"`
	Height               int     `json:"height"`
	TotalPixels          int     `json:"totalPixels"`
	DiffPixels           int     `json:"diffPixels"`
	DiffPercentage       float64 `json:"diffPercentage"`
	SimilarityPercentage float64 `json:"similarityPercentage"`
	Threshold            float32 `json:"threshold"`

	// Method records which comparison metric produced the numbers,
	// since the perceptual and absolute variants are not
	// numerically equivalent.
	Method string `json:"method"`

	// ImageA and ImageB are the two source rasters, when embedded.
	ImageA *Base64Image `json:"imageA,omitempty"`
	ImageB *Base64Image `json:"imageB,omitempty"`

	// DiffImage is the color-coded diff raster.
	DiffImage *Base64Image `json:"diffImage,omitempty"`
}

// New returns a report for the given result, embedding its diff
// raster. Use [Report.SetSources] to also embed the input images.
func New(res *compare.Result) *Report {
	rp := &Report{
		Width:                res.Width,
		Height:               res.Height,
		TotalPixels:          res.TotalPixels,
		DiffPixels:           res.DiffPixels,
		DiffPercentage:       res.DiffPercentage,
		SimilarityPercentage: res.SimilarityPercentage,
		Threshold:            res.Threshold,
		Method:               res.Method.String(),
	}
	if res.Diff != nil {
		rp.DiffImage = NewBase64Image(res.Diff)
	}
	return rp
}

// SetSources embeds the two compared source images in the report.
func (rp *Report) SetSources(a, b image.Image) *Report {
	if a != nil {
		rp.ImageA = NewBase64Image(a)
	}
	if b != nil {
		rp.ImageB = NewBase64Image(b)
	}
	return rp
}

// Save writes the report as JSON to the given filename.
func (rp *Report) Save(filename string) error {
	return jsonx.Save(rp, filename)
}

// Open reads a report from the given JSON filename.
func Open(filename string) (*Report, error) {
	rp := &Report{}
	err := jsonx.Open(rp, filename)
	if err != nil {
		return nil, err
	}
	return rp, nil
}
