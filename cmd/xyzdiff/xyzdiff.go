// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command xyzdiff compares two rendered model images pixel by pixel
// and reports their similarity, optionally writing a JSON report and
// a color-coded diff image.
package main

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/iox/imagex"
	"cogentcore.org/core/cli"
	"cogentcore.org/xyzdiff/compare"
	"cogentcore.org/xyzdiff/report"
)

// Config is the configuration information for the xyzdiff cli.
type Config struct {

	// ImageA is the first (reference) input image.
	ImageA string `posarg:"0"`

	// ImageB is the second (candidate) input image.
	ImageB string `posarg:"1"`

	// Threshold is the minimum normalized color distance in [0,1]
	// at which a pixel counts as different; lower is more sensitive.
	Threshold float32 `flag:"t,threshold" default:"0.1"`

	// Absolute selects the simpler absolute-difference metric
	// instead of the default perceptual one. The two produce
	// different numbers; the report records which was used.
	Absolute bool

	// IncludeAlpha includes the alpha channel in the comparison.
	IncludeAlpha bool

	// Report is the filename to write the JSON report to.
	Report string `flag:"r,report"`

	// Diff is the filename to write the color-coded diff image to.
	Diff string `flag:"d,diff"`

	// Embed also embeds the two input images in the JSON report,
	// in addition to the diff image, as base64 PNG.
	Embed bool

	// Quiet suppresses the similarity summary on stdout.
	Quiet bool `flag:"q,quiet"`
}

func main() { //types:skip
	opts := cli.DefaultOptions("xyzdiff", "Compares two rendered model images pixel by pixel and reports their similarity.")
	cli.Run(opts, &Config{}, Compare)
}

// Compare compares the two input images and writes the requested
// outputs, returning an error (and thus a non-zero exit) on any
// unreadable input or comparison failure.
func Compare(c *Config) error { //cli:cmd -root
	a, _, err := imagex.Open(c.ImageA)
	if err != nil {
		return fmt.Errorf("opening image A %q: %w", c.ImageA, err)
	}
	b, _, err := imagex.Open(c.ImageB)
	if err != nil {
		return fmt.Errorf("opening image B %q: %w", c.ImageB, err)
	}

	copts := compare.DefaultOptions()
	copts.Threshold = c.Threshold
	copts.IncludeAlpha = c.IncludeAlpha
	if c.Absolute {
		copts.Method = compare.Absolute
	}

	res, err := compare.Images(a, b, copts)
	if err != nil {
		return err
	}

	if c.Diff != "" {
		if err := imagex.Save(res.Diff, c.Diff); err != nil {
			return fmt.Errorf("saving diff image: %w", err)
		}
	}
	if c.Report != "" {
		rp := report.New(res)
		if c.Embed {
			rp.SetSources(a, b)
		}
		if err := errors.Log(rp.Save(c.Report)); err != nil {
			return err
		}
	}
	if !c.Quiet {
		fmt.Printf("similarity: %.2f%% (%d of %d pixels differ, threshold %g, %s)\n",
			res.SimilarityPercentage, res.DiffPixels, res.TotalPixels, res.Threshold, res.Method)
	}
	return nil
}
