// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package render holds the client-side pixel buffer type and the
// overlay canvas used to draw bezels and labels onto it.
package render

import "encoding/binary"

// Buffer is a writable ARGB8888 pixel view. Pix holds Height rows of
// PixelsPerLine pixels, 4 bytes each, little endian (so a packed
// 0xAARRGGBB value written LE lands in wire order).
type Buffer struct {
	Width         int
	Height        int
	PixelsPerLine int
	Pix           []byte
}

// NewBuffer allocates a standalone buffer, used by tests and scratch
// surfaces; on-wire buffers alias shared memory instead.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{Width: w, Height: h, PixelsPerLine: w, Pix: make([]byte, w*h*4)}
}

// SetARGB writes one packed 0xAARRGGBB pixel.
func (b *Buffer) SetARGB(x, y int, argb uint32) {
	off := (y*b.PixelsPerLine + x) * 4
	binary.LittleEndian.PutUint32(b.Pix[off:], argb)
}

// ARGB reads one packed pixel back.
func (b *Buffer) ARGB(x, y int) uint32 {
	off := (y*b.PixelsPerLine + x) * 4
	return binary.LittleEndian.Uint32(b.Pix[off:])
}

// Clear fills the buffer with fully transparent pixels.
func (b *Buffer) Clear() {
	for i := range b.Pix {
		b.Pix[i] = 0
	}
}
