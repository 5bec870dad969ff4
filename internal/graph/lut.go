// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package graph

// lerp interpolates one color channel over a 0..255 position.
func lerp(from, to uint8, pos int) uint32 {
	return uint32(int(from) + (int(to)-int(from))*pos/255)
}

// Ramp builds a 256-entry lookup table interpolating linearly between
// two packed 0xAARRGGBB colors.
func Ramp(from, to uint32) [256]uint32 {
	var lut [256]uint32
	for i := 0; i < 256; i++ {
		a := lerp(uint8(from>>24), uint8(to>>24), i)
		r := lerp(uint8(from>>16), uint8(to>>16), i)
		g := lerp(uint8(from>>8), uint8(to>>8), i)
		b := lerp(uint8(from), uint8(to), i)
		lut[i] = a<<24 | r<<16 | g<<8 | b
	}
	return lut
}

// heatStops is the opaque blue/cyan/green/yellow/red gradient.
var heatStops = [...]uint32{0xff0000ff, 0xff00ffff, 0xff00ff00, 0xffffff00, 0xffff0000}

// HeatLUT builds the default density palette: low row counts render
// cold (blue), high counts hot (red). Four 64-entry gradient segments.
func HeatLUT() [256]uint32 {
	var lut [256]uint32
	for i := 0; i < 256; i++ {
		seg := i / 64
		sub := Ramp(heatStops[seg], heatStops[seg+1])
		lut[i] = sub[(i%64)*255/63]
	}
	return lut
}

// AlphaLUT builds a premultiplied white palette where the row count
// drives opacity, so denser regions read brighter over any backdrop.
func AlphaLUT() [256]uint32 {
	var lut [256]uint32
	for i := 0; i < 256; i++ {
		v := uint32(i)
		lut[i] = v<<24 | v<<16 | v<<8 | v
	}
	return lut
}

func clamp255(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
