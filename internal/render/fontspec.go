// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package render

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontSpec is a parsed XFT-style font request such as
// "Helvetica:size=12:weight=bold". Only size, weight and slant are
// honored; rendering always uses the bundled Go fonts, with the family
// kept for diagnostics.
type FontSpec struct {
	Family string
	Size   float64
	Bold   bool
	Italic bool
}

// DefaultFontSpec is used when neither CLI nor preferences set a font.
const DefaultFontSpec = "Helvetica:size=12"

// ParseFontSpec parses an XFT-style spec: a family name followed by
// colon-separated key=value properties.
func ParseFontSpec(s string) (FontSpec, error) {
	spec := FontSpec{Size: 12}
	for i, tok := range strings.Split(s, ":") {
		if tok == "" {
			continue
		}
		key, val, ok := strings.Cut(tok, "=")
		if !ok {
			if i != 0 {
				return spec, errors.Errorf("font property %q is not key=value", tok)
			}
			spec.Family = tok
			continue
		}
		switch key {
		case "size", "pixelsize":
			v, err := strconv.ParseFloat(val, 64)
			if err != nil || v <= 0 {
				return spec, errors.Errorf("bad font size %q", val)
			}
			spec.Size = v
		case "weight":
			switch strings.ToLower(val) {
			case "bold", "demibold", "black", "heavy":
				spec.Bold = true
			}
		case "slant":
			switch strings.ToLower(val) {
			case "italic", "oblique":
				spec.Italic = true
			}
		default:
			// Unknown XFT properties are accepted and ignored.
		}
	}
	return spec, nil
}

// Face builds a font.Face for the spec at the given pixel size.
func (s FontSpec) Face(px float64) (font.Face, error) {
	data := goregular.TTF
	switch {
	case s.Bold && s.Italic:
		data = gobolditalic.TTF
	case s.Bold:
		data = gobold.TTF
	case s.Italic:
		data = goitalic.TTF
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing font")
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(err, "building font face")
	}
	return face, nil
}
