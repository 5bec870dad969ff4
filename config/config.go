// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package config loads the optional per-app preferences file from the
// XDG config tree, e.g. ~/.config/wlmaker/cpugraph.toml. Every field
// is optional; CLI flags override whatever the file sets.
package config

import (
	"os"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Prefs struct {
	// Seconds between samples.
	Interval *float64 `toml:"interval,omitempty"`
	// Bezel margin in logical pixels at the 64-pixel base size.
	BezelMargin *int `toml:"bezel_margin,omitempty"`
	// "heat" or "alpha"; ignored by apps with a fixed palette.
	ColorMode *string `toml:"color_mode,omitempty"`
	// XFT-style font spec for the label.
	Font *string `toml:"font,omitempty"`
	// Suppress the label entirely.
	NoLabel *bool `toml:"no_label,omitempty"`
}

// Load reads wlmaker/<app>.toml from the XDG config directories. A
// missing file yields zero prefs; a malformed file is an error so a
// typo does not silently fall back to defaults.
func Load(app string) (Prefs, error) {
	var p Prefs
	path, err := xdg.SearchConfigFile("wlmaker/" + app + ".toml")
	if err != nil {
		logrus.WithField("app", app).Debugln("no preferences file")
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, errors.Wrapf(err, "reading %s", path)
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return p, errors.Wrapf(err, "parsing %s", path)
	}
	logrus.WithField("path", path).Debugln("preferences loaded")
	return p, nil
}
