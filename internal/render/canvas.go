// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package render

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

// Canvas draws the icon overlay (bezel, label) with gg and composites
// the result over the graph pixels. It is allocated at resize time;
// per-frame drawing reuses the same context.
type Canvas struct {
	dc   *gg.Context
	w, h int
}

// NewCanvas allocates a canvas matching the icon size.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{dc: gg.NewContext(w, h), w: w, h: h}
}

// SetFont installs a face for label drawing at the given pixel size.
func (c *Canvas) SetFont(spec FontSpec, px float64) error {
	face, err := spec.Face(px)
	if err != nil {
		return errors.Wrap(err, "selecting label font")
	}
	c.dc.SetFontFace(face)
	return nil
}

// Begin resets the canvas to fully transparent.
func (c *Canvas) Begin() {
	c.dc.SetRGBA(0, 0, 0, 0)
	c.dc.Clear()
}

// DrawBezel strokes a raised frame: light on the top and left edges,
// dark on the bottom and right, each `margin` pixels wide.
func (c *Canvas) DrawBezel(margin int) {
	lw := float64(margin)
	w, h := float64(c.w), float64(c.h)
	c.dc.SetLineWidth(lw)

	c.dc.SetRGB255(200, 200, 200)
	c.dc.DrawLine(lw/2, h, lw/2, 0)
	c.dc.DrawLine(0, lw/2, w-lw, lw/2)
	c.dc.Stroke()

	c.dc.SetRGB255(60, 60, 60)
	c.dc.DrawLine(w-lw/2, 0, w-lw/2, h)
	c.dc.DrawLine(lw, h-lw/2, w, h-lw/2)
	c.dc.Stroke()
}

// DrawLabel stamps text with a one-pixel black outline and the given
// fill color, anchored so the baseline clears the top bezel.
func (c *Canvas) DrawLabel(text string, x, y float64, fill uint32) {
	c.dc.SetRGB(0, 0, 0)
	for dy := -1.0; dy <= 1; dy++ {
		for dx := -1.0; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			c.dc.DrawString(text, x+dx, y+dy)
		}
	}
	c.dc.SetRGBA255(
		int(fill>>16&0xff), int(fill>>8&0xff), int(fill&0xff), int(fill>>24&0xff))
	c.dc.DrawString(text, x, y)
}

// CompositeOver blends the canvas onto dst with source-over alpha.
// Both sides carry premultiplied color.
func (c *Canvas) CompositeOver(dst *Buffer) {
	img, ok := c.dc.Image().(*image.RGBA)
	if !ok {
		return
	}
	for y := 0; y < c.h && y < dst.Height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < c.w && x < dst.Width; x++ {
			r := uint32(row[x*4])
			g := uint32(row[x*4+1])
			b := uint32(row[x*4+2])
			a := uint32(row[x*4+3])
			if a == 0 {
				continue
			}
			if a == 255 {
				dst.SetARGB(x, y, a<<24|r<<16|g<<8|b)
				continue
			}
			d := dst.ARGB(x, y)
			inv := 255 - a
			oa := a + (d>>24&0xff)*inv/255
			or := r + (d>>16&0xff)*inv/255
			og := g + (d>>8&0xff)*inv/255
			ob := b + (d&0xff)*inv/255
			dst.SetARGB(x, y, oa<<24|or<<16|og<<8|ob)
		}
	}
}
