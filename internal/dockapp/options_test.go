// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package dockapp

import (
	"errors"
	"flag"
	"testing"
	"time"

	"github.com/phkaeser/wlmaker-sub002/config"
	"github.com/phkaeser/wlmaker-sub002/internal/graph"
)

func labeledConfig() *Config {
	return &Config{Name: "testgraph", Mode: graph.Independent, HasLabel: true}
}

func TestOptionDefaults(t *testing.T) {
	opts, err := parseOptions(labeledConfig(), config.Prefs{}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opts.Interval != time.Second {
		t.Errorf("interval = %v, want 1s", opts.Interval)
	}
	if opts.BezelMargin != 2 {
		t.Errorf("margin = %d, want 2", opts.BezelMargin)
	}
	if opts.ColorMode != "heat" {
		t.Errorf("color mode = %q, want heat", opts.ColorMode)
	}
	if opts.NoLabel {
		t.Errorf("no-label set by default")
	}
	if opts.Font.Size != 12 {
		t.Errorf("font size = %g, want 12", opts.Font.Size)
	}
}

func TestFlagsOverridePrefs(t *testing.T) {
	half := 0.5
	mode := "alpha"
	prefs := config.Prefs{Interval: &half, ColorMode: &mode}
	opts, err := parseOptions(labeledConfig(), prefs,
		[]string{"--interval", "2", "--font", "Mono:size=9:weight=bold"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opts.Interval != 2*time.Second {
		t.Errorf("interval = %v, want 2s", opts.Interval)
	}
	// Untouched flags keep the preference value.
	if opts.ColorMode != "alpha" {
		t.Errorf("color mode = %q, want alpha", opts.ColorMode)
	}
	if opts.Font.Family != "Mono" || !opts.Font.Bold {
		t.Errorf("font = %+v", opts.Font)
	}
}

func TestOptionValidation(t *testing.T) {
	cases := [][]string{
		{"--interval", "0.001"},
		{"--interval", "4000"},
		{"--bezel-margin", "-1"},
		{"--bezel-margin", "64"},
		{"--color-mode", "plasma"},
		{"--font", "Mono:size=bad"},
		{"--unknown-flag"},
	}
	for _, args := range cases {
		if _, err := parseOptions(labeledConfig(), config.Prefs{}, args); err == nil {
			t.Errorf("args %v accepted", args)
		}
	}
}

func TestHelpIsNotAnError(t *testing.T) {
	_, err := parseOptions(labeledConfig(), config.Prefs{}, []string{"--help"})
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("err = %v, want flag.ErrHelp", err)
	}
}

func TestUnlabeledAppRejectsLabelFlags(t *testing.T) {
	cfg := &Config{Name: "cpugraph", Mode: graph.Independent}
	if _, err := parseOptions(cfg, config.Prefs{}, []string{"--no-label"}); err == nil {
		t.Errorf("--no-label accepted without a label")
	}
}

func TestFixedPaletteRejectsColorMode(t *testing.T) {
	var lut [256]uint32
	cfg := &Config{Name: "memgraph", Mode: graph.Stacked, LUT: &lut}
	if _, err := parseOptions(cfg, config.Prefs{}, []string{"--color-mode", "heat"}); err == nil {
		t.Errorf("--color-mode accepted with a fixed palette")
	}
}
