// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package dockapp

import (
	"flag"
	"time"

	"github.com/pkg/errors"

	"github.com/phkaeser/wlmaker-sub002/config"
	"github.com/phkaeser/wlmaker-sub002/internal/render"
)

// Options is the merged result of preferences and CLI flags; flags win.
type Options struct {
	Interval    time.Duration
	BezelMargin int
	ColorMode   string
	Font        render.FontSpec
	NoLabel     bool
}

const (
	defaultInterval = 1.0
	defaultMargin   = 2
)

// parseOptions builds the flag set for the app. Palette and label
// flags only exist for apps that can use them; passing them elsewhere
// is an argument error like any unknown flag.
func parseOptions(cfg *Config, prefs config.Prefs, args []string) (Options, error) {
	fs := flag.NewFlagSet(cfg.Name, flag.ContinueOnError)

	defInterval := defaultInterval
	if prefs.Interval != nil {
		defInterval = *prefs.Interval
	}
	interval := fs.Float64("interval", defInterval,
		"seconds between samples, 0.01 to 3600")

	defMargin := defaultMargin
	if prefs.BezelMargin != nil {
		defMargin = *prefs.BezelMargin
	}
	margin := fs.Int("bezel-margin", defMargin,
		"bezel width in logical pixels at 64x64, 0 to 32")

	var colorMode *string
	if cfg.LUT == nil {
		def := "heat"
		if prefs.ColorMode != nil {
			def = *prefs.ColorMode
		}
		colorMode = fs.String("color-mode", def,
			`graph palette, "heat" or "alpha"`)
	}

	var fontSpec *string
	var noLabel *bool
	if cfg.HasLabel {
		def := render.DefaultFontSpec
		if prefs.Font != nil {
			def = *prefs.Font
		}
		fontSpec = fs.String("font", def,
			"label font as an XFT spec, e.g. Helvetica:size=12:weight=bold")
		defNo := false
		if prefs.NoLabel != nil {
			defNo = *prefs.NoLabel
		}
		noLabel = fs.Bool("no-label", defNo, "draw the graph without a label")
	}

	var opts Options
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if *interval < 0.01 || *interval > 3600 {
		return opts, errors.Errorf("interval %g out of range 0.01..3600", *interval)
	}
	if *margin < 0 || *margin > 32 {
		return opts, errors.Errorf("bezel margin %d out of range 0..32", *margin)
	}
	opts.Interval = time.Duration(*interval * float64(time.Second))
	opts.BezelMargin = *margin
	if colorMode != nil {
		if *colorMode != "heat" && *colorMode != "alpha" {
			return opts, errors.Errorf("unknown color mode %q", *colorMode)
		}
		opts.ColorMode = *colorMode
	}
	if fontSpec != nil {
		f, err := render.ParseFontSpec(*fontSpec)
		if err != nil {
			return opts, err
		}
		opts.Font = f
	}
	if noLabel != nil {
		opts.NoLabel = *noLabel
	}
	return opts, nil
}
