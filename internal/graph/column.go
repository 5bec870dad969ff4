// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package graph

// renderColumn paints sample s into column col and returns the pixel
// row of its peak line, or graphH when the sample is all zero.
//
// Row counts are built first: every category bar runs from its top to
// the bottom row. In Independent mode the top comes from the category
// value alone; in Stacked mode from the running sum of values so far,
// clamped to 255. The count then indexes the color table, spreading
// 1..len(values) across its 256 entries.
func (g *Graph) renderColumn(s *Sample, col int) int {
	h := g.graphH
	w := g.graphW
	for i := range g.rowCounts {
		g.rowCounts[i] = 0
	}
	switch g.mode {
	case Stacked:
		// Accumulated last to first, so the first category ends up as
		// the topmost stack segment.
		level := 0
		for i := len(s.Values) - 1; i >= 0; i-- {
			v := s.Values[i]
			if v == 0 {
				continue
			}
			level += int(v)
			for y := g.yOf(uint8(clamp255(level))); y < h; y++ {
				g.rowCounts[y]++
			}
		}
	default:
		for _, v := range s.Values {
			if v == 0 {
				continue
			}
			for y := g.yOf(v); y < h; y++ {
				g.rowCounts[y]++
			}
		}
	}

	yLine := g.yOf(s.Peak)

	// Clear leftover pixels from whatever this column showed before.
	// Everything above the old content is black, so the walk stops at
	// the first black pixel.
	for y := yLine - 1; y >= 0; y-- {
		if g.pixels[y*w+col] == colorBlack {
			break
		}
		g.pixels[y*w+col] = colorBlack
	}

	n := len(s.Values)
	for y := yLine; y < h; y++ {
		cnt := g.rowCounts[y]
		var px uint32
		switch {
		case cnt == 0:
			px = colorBlack
		case n <= 1:
			px = g.lut[255]
		default:
			px = g.lut[clamp255((cnt-1)*255/(n-1))]
		}
		g.pixels[y*w+col] = px
	}
	if yLine < h {
		g.pixels[yLine*w+col] = colorPeakLine
	}
	return yLine
}

// drawConnector joins the peak lines of two adjacent columns. The
// segment lands in whichever column's line sits lower, covering the
// rows strictly between the two line positions.
func (g *Graph) drawConnector(leftY, rightY, leftCol, rightCol int) {
	w := g.graphW
	switch {
	case leftY < rightY:
		for y := leftY; y < rightY; y++ {
			g.pixels[y*w+rightCol] = colorPeakLine
		}
	case rightY < leftY:
		for y := rightY; y < leftY; y++ {
			g.pixels[y*w+leftCol] = colorPeakLine
		}
	}
}
