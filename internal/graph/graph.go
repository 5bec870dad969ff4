// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package graph

import (
	"github.com/sirupsen/logrus"

	"github.com/phkaeser/wlmaker-sub002/internal/render"
)

// BaseIconSize is the logical dockapp edge length; bezel margins and
// font sizes scale proportionally to the actual icon size.
const BaseIconSize = 64

const (
	colorBlack    = 0xff000000
	colorPeakLine = 0xffffffff
)

// Sample is one ring node: per-category values plus the precomputed
// peak used for line drawing and top tracking.
type Sample struct {
	Values []uint8
	Peak   uint8
}

// Graph is the rolling graph state: a fixed-capacity sample ring sized
// to the drawable width (one column per sample) and the pixel image it
// renders into. All methods run on the single event-loop goroutine.
type Graph struct {
	mode          AccumulationMode
	lut           [256]uint32
	marginLogical int

	samples []Sample
	cur     int // index of the newest sample
	peakIdx int // ring index holding the visible top, -1 when none

	iconW, iconH   int
	graphW, graphH int
	marginPx       int

	pixels    []uint32
	rowCounts []int

	yMin     int // topmost drawn row across all visible columns
	yMinPrev int // yMin as of the previous completed tick
}

// New creates an empty engine. No pixels exist until the first Resize.
func New(mode AccumulationMode, lut [256]uint32, marginLogical int) *Graph {
	return &Graph{mode: mode, lut: lut, marginLogical: marginLogical, peakIdx: -1}
}

// MarginPx is the scaled bezel margin of the current size.
func (g *Graph) MarginPx() int { return g.marginPx }

// IconSize returns the icon dimensions of the last Resize.
func (g *Graph) IconSize() (w, h int) { return g.iconW, g.iconH }

// GraphSize returns the drawable interior dimensions.
func (g *Graph) GraphSize() (w, h int) { return g.graphW, g.graphH }

// yOf maps a 0..255 value to a pixel row; zero maps just below the
// bottom row so nothing is drawn for it.
func (g *Graph) yOf(v uint8) int {
	if v == 0 {
		return g.graphH
	}
	return g.graphH - 1 - int(v)*(g.graphH-1)/255
}

// Resize adapts the engine to a new icon size. The margin scales with
// the icon width relative to BaseIconSize. A changed interior width
// resizes the ring and discards history; a height-only change keeps
// all samples and re-renders them at the new height.
func (g *Graph) Resize(iconW, iconH int) {
	marginPx := g.marginLogical * iconW / BaseIconSize
	gw := iconW - 2*marginPx
	gh := iconH - 2*marginPx
	if gw < 0 {
		gw = 0
	}
	if gh < 0 {
		gh = 0
	}
	if gw != g.graphW {
		g.samples = make([]Sample, gw)
		g.cur = 0
	}
	if gw != g.graphW || gh != g.graphH {
		g.pixels = make([]uint32, gw*gh)
		g.rowCounts = make([]int, gh)
	}
	g.iconW, g.iconH = iconW, iconH
	g.graphW, g.graphH = gw, gh
	g.marginPx = marginPx
	g.Rebuild()
}

// Tick acquires one sample from src and folds it into the graph. With
// fewer than two columns there is nothing to roll, so the read is
// skipped entirely.
func (g *Graph) Tick(src Source) {
	if len(g.samples) < 2 {
		return
	}
	idx := (g.cur + 1) % len(g.samples)
	s := &g.samples[idx]
	switch src.Read(&s.Values) {
	case ReadFailed:
		// The ring does not advance; the display keeps its last state.
		logrus.Debugln("sample read failed, tick dropped")
	case ReadOKRegenerate:
		s.Peak = peakOf(s.Values, g.mode)
		g.cur = idx
		g.regenerate(src)
		g.Rebuild()
	case ReadOK:
		s.Peak = peakOf(s.Values, g.mode)
		g.advance(idx)
	}
}

// advance makes idx the newest sample and repaints incrementally:
// scroll rows that held pixels, render the new rightmost column, and
// maintain the peak tracking.
func (g *Graph) advance(idx int) {
	prevPeakY := g.yOf(g.samples[g.cur].Peak)
	overwrotePeak := g.peakIdx == idx

	// Rows above yMinPrev are known black on both sides of the scroll.
	for y := g.yMinPrev; y < g.graphH; y++ {
		row := g.pixels[y*g.graphW : (y+1)*g.graphW]
		copy(row, row[1:])
	}

	yLine := g.renderColumn(&g.samples[idx], g.graphW-1)
	g.cur = idx
	if overwrotePeak {
		g.rescanPeak()
	} else if yLine <= g.yMin && yLine < g.graphH {
		// Ties move to the newest holder so it expires last.
		g.yMin = yLine
		g.peakIdx = idx
	}
	g.yMinPrev = g.yMin

	g.drawConnector(prevPeakY, yLine, g.graphW-2, g.graphW-1)
}

// rescanPeak rediscovers the topmost row over the whole ring, newest
// to oldest. Strict comparison keeps the newest holder on ties.
func (g *Graph) rescanPeak() {
	g.yMin = g.graphH
	g.peakIdx = -1
	n := len(g.samples)
	for k := 0; k < n; k++ {
		idx := (g.cur - k + n) % n
		y := g.yOf(g.samples[idx].Peak)
		if y < g.yMin {
			g.yMin = y
			g.peakIdx = idx
		}
	}
}

// Rebuild repaints every column from the ring and rescans the peak.
// Used after resizes and scale regenerations.
func (g *Graph) Rebuild() {
	if g.graphW == 0 || g.graphH == 0 {
		g.yMin, g.yMinPrev = g.graphH, g.graphH
		g.peakIdx = -1
		return
	}
	for i := range g.pixels {
		g.pixels[i] = colorBlack
	}
	n := len(g.samples)
	rightY := 0
	for k := 0; k < n; k++ {
		col := g.graphW - 1 - k
		idx := (g.cur - k + n) % n
		y := g.renderColumn(&g.samples[idx], col)
		if k > 0 {
			g.drawConnector(y, rightY, col, col+1)
		}
		rightY = y
	}
	g.rescanPeak()
	g.yMinPrev = g.yMin
}

// regenerate rewrites the historical ring nodes from the source's
// rescaled history. Nodes beyond what the source returns are zeroed.
func (g *Graph) regenerate(src Source) {
	rg, ok := src.(Regenerator)
	if !ok {
		logrus.Warnln("source requested regeneration without history support")
		return
	}
	n := len(g.samples) - 1 // all nodes except the one just read
	hist := rg.RegenerateHistory(n)
	for k := 0; k < n; k++ {
		idx := (g.cur - 1 - k + len(g.samples)) % len(g.samples)
		s := &g.samples[idx]
		if k < len(hist) && hist[k] != nil {
			s.Values = hist[k]
		} else {
			for i := range s.Values {
				s.Values[i] = 0
			}
		}
		s.Peak = peakOf(s.Values, g.mode)
	}
}

// BlitTo copies the graph image into dst at the given offset.
func (g *Graph) BlitTo(dst *render.Buffer, offX, offY int) {
	for y := 0; y < g.graphH; y++ {
		row := g.pixels[y*g.graphW:]
		for x := 0; x < g.graphW; x++ {
			dst.SetARGB(offX+x, offY+y, row[x])
		}
	}
}
