// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package graph

import "testing"

// testLUT makes color assertions trivial: entry i encodes i.
func testLUT() [256]uint32 {
	var lut [256]uint32
	for i := range lut {
		lut[i] = 0xff000000 | uint32(i)
	}
	return lut
}

type fakeSource struct {
	values []uint8
	result ReadResult
	hist   [][]uint8
	reads  int
}

func (f *fakeSource) Read(values *[]uint8) ReadResult {
	f.reads++
	if f.result == ReadFailed {
		return ReadFailed
	}
	*values = append((*values)[:0], f.values...)
	return f.result
}

func (f *fakeSource) Close() error { return nil }

func (f *fakeSource) RegenerateHistory(int) [][]uint8 { return f.hist }

func (g *Graph) pixelAt(x, y int) uint32 { return g.pixels[y*g.graphW+x] }

func newTestGraph(mode AccumulationMode) *Graph {
	g := New(mode, testLUT(), 0)
	g.Resize(64, 64)
	return g
}

func TestIndependentSingleSample(t *testing.T) {
	g := newTestGraph(Independent)
	src := &fakeSource{values: []uint8{0, 0, 0, 255}, result: ReadOK}
	g.Tick(src)

	if got := g.samples[g.cur].Peak; got != 255 {
		t.Errorf("peak = %d, want 255", got)
	}
	if got := g.pixelAt(63, 0); got != colorPeakLine {
		t.Errorf("top pixel = %#x, want peak line", got)
	}
	// One of four categories covers the rows below the line.
	for y := 1; y < 64; y++ {
		if got := g.pixelAt(63, y); got != g.lut[0] {
			t.Errorf("pixel (63,%d) = %#x, want lut[0]", y, got)
		}
	}
	if g.yMin != 0 {
		t.Errorf("yMin = %d, want 0", g.yMin)
	}
}

func TestStackedRowCounts(t *testing.T) {
	g := newTestGraph(Stacked)
	src := &fakeSource{values: []uint8{80, 40, 40}, result: ReadOK}
	g.Tick(src)

	if got := g.samples[g.cur].Peak; got != 160 {
		t.Fatalf("peak = %d, want 160", got)
	}
	y160 := g.yOf(160)
	y80 := g.yOf(80)
	y40 := g.yOf(40)
	if got := g.pixelAt(63, y160); got != colorPeakLine {
		t.Errorf("peak row = %#x, want peak line", got)
	}
	checks := []struct {
		y    int
		want uint32
	}{
		{y160 + 1, g.lut[0]},   // one bar
		{y80, g.lut[127]},      // two bars
		{y40, g.lut[255]},      // all three bars
		{y160 - 1, colorBlack}, // above the stack
	}
	for _, c := range checks {
		if got := g.pixelAt(63, c.y); got != c.want {
			t.Errorf("pixel (63,%d) = %#x, want %#x", c.y, got, c.want)
		}
	}
}

func TestScrollKeepsPeak(t *testing.T) {
	g := newTestGraph(Independent)
	high := &fakeSource{values: []uint8{128}, result: ReadOK}
	for i := 0; i < 64; i++ {
		g.Tick(high)
	}
	y128 := g.yOf(128)
	if g.yMin != y128 {
		t.Fatalf("yMin = %d, want %d", g.yMin, y128)
	}

	g.Tick(&fakeSource{values: []uint8{64}, result: ReadOK})
	if g.yMin != y128 {
		t.Errorf("yMin = %d after low sample, want %d", g.yMin, y128)
	}
	y64 := g.yOf(64)
	if got := g.pixelAt(63, y64); got != colorPeakLine {
		t.Errorf("new peak row = %#x, want peak line", got)
	}
	// Connector joins the neighbor's higher line down to the new one.
	for y := y128; y < y64; y++ {
		if got := g.pixelAt(63, y); got != colorPeakLine {
			t.Errorf("connector pixel (63,%d) = %#x, want peak line", y, got)
		}
	}
	if got := g.pixelAt(63, y128-1); got != colorBlack {
		t.Errorf("pixel above connector = %#x, want black", got)
	}
}

func TestPeakEvictionRescans(t *testing.T) {
	g := newTestGraph(Independent)
	g.Tick(&fakeSource{values: []uint8{255}, result: ReadOK})
	low := &fakeSource{values: []uint8{10}, result: ReadOK}
	for i := 0; i < 63; i++ {
		g.Tick(low)
	}
	if g.yMin != 0 {
		t.Fatalf("yMin = %d while 255-sample visible, want 0", g.yMin)
	}
	// The next tick overwrites the 255-sample.
	g.Tick(low)
	if want := g.yOf(10); g.yMin != want {
		t.Errorf("yMin = %d after eviction, want %d", g.yMin, want)
	}
	if g.peakIdx < 0 {
		t.Errorf("peakIdx = %d, want a valid index", g.peakIdx)
	}
}

func TestAllZeroHasNoPeakHolder(t *testing.T) {
	g := newTestGraph(Independent)
	zero := &fakeSource{values: []uint8{0, 0}, result: ReadOK}
	for i := 0; i < 70; i++ {
		g.Tick(zero)
	}
	if g.peakIdx != -1 {
		t.Errorf("peakIdx = %d on all-zero history, want -1", g.peakIdx)
	}
	if g.yMin != g.graphH {
		t.Errorf("yMin = %d, want %d", g.yMin, g.graphH)
	}
}

func TestRebuildMatchesIncremental(t *testing.T) {
	g := newTestGraph(Independent)
	vals := []uint8{3, 250, 40, 128, 0, 77, 128, 9, 200, 200, 15}
	for i, v := range vals {
		g.Tick(&fakeSource{values: []uint8{v, vals[(i+3)%len(vals)]}, result: ReadOK})
	}
	before := make([]uint32, len(g.pixels))
	copy(before, g.pixels)
	g.Rebuild()
	for i := range before {
		if before[i] != g.pixels[i] {
			t.Fatalf("pixel %d differs after rebuild: %#x vs %#x",
				i, before[i], g.pixels[i])
		}
	}
}

func TestTooNarrowSkipsRead(t *testing.T) {
	g := New(Independent, testLUT(), 0)
	g.Resize(1, 64)
	src := &fakeSource{values: []uint8{100}, result: ReadOK}
	g.Tick(src)
	if src.reads != 0 {
		t.Errorf("reads = %d on a 1-column graph, want 0", src.reads)
	}
}

func TestFailedReadDropsTick(t *testing.T) {
	g := newTestGraph(Independent)
	g.Tick(&fakeSource{values: []uint8{200}, result: ReadOK})
	cur := g.cur
	before := make([]uint32, len(g.pixels))
	copy(before, g.pixels)
	g.Tick(&fakeSource{result: ReadFailed})
	if g.cur != cur {
		t.Errorf("ring advanced on failed read")
	}
	for i := range before {
		if before[i] != g.pixels[i] {
			t.Fatalf("pixels changed on failed read")
		}
	}
}

func TestWidthResizeDropsHistory(t *testing.T) {
	g := newTestGraph(Independent)
	g.Tick(&fakeSource{values: []uint8{255}, result: ReadOK})
	g.Resize(32, 64)
	if gw, _ := g.GraphSize(); gw != 32 {
		t.Fatalf("graph width = %d, want 32", gw)
	}
	if g.yMin != g.graphH || g.peakIdx != -1 {
		t.Errorf("history survived a width change: yMin=%d peakIdx=%d", g.yMin, g.peakIdx)
	}
	for i, px := range g.pixels {
		if px != colorBlack {
			t.Fatalf("pixel %d = %#x after width change, want black", i, px)
		}
	}
}

func TestHeightResizeKeepsHistory(t *testing.T) {
	g := newTestGraph(Independent)
	g.Tick(&fakeSource{values: []uint8{128}, result: ReadOK})
	g.Resize(64, 32)
	if gw, gh := g.GraphSize(); gw != 64 || gh != 32 {
		t.Fatalf("graph size = %dx%d, want 64x32", gw, gh)
	}
	want := g.yOf(128)
	if got := g.pixelAt(63, want); got != colorPeakLine {
		t.Errorf("peak row after height change = %#x, want peak line", got)
	}
	if g.yMin != want {
		t.Errorf("yMin = %d, want %d", g.yMin, want)
	}
}

func TestMarginScalesWithIconSize(t *testing.T) {
	g := New(Independent, testLUT(), 2)
	g.Resize(64, 64)
	if g.MarginPx() != 2 {
		t.Errorf("margin at 64 = %d, want 2", g.MarginPx())
	}
	if gw, gh := g.GraphSize(); gw != 60 || gh != 60 {
		t.Errorf("graph size = %dx%d, want 60x60", gw, gh)
	}
	g.Resize(128, 128)
	if g.MarginPx() != 4 {
		t.Errorf("margin at 128 = %d, want 4", g.MarginPx())
	}
}

func TestRegenerateRewritesHistory(t *testing.T) {
	g := newTestGraph(Independent)
	old := &fakeSource{values: []uint8{10}, result: ReadOK}
	for i := 0; i < 64; i++ {
		g.Tick(old)
	}
	src := &fakeSource{
		values: []uint8{255},
		result: ReadOKRegenerate,
		hist:   [][]uint8{{100}, {100}},
	}
	g.Tick(src)

	n := len(g.samples)
	if got := g.samples[g.cur].Values[0]; got != 255 {
		t.Errorf("current sample = %d, want 255", got)
	}
	for k := 1; k <= 2; k++ {
		if got := g.samples[(g.cur-k+n)%n].Values[0]; got != 100 {
			t.Errorf("history %d = %d, want 100", k, got)
		}
	}
	// Nodes beyond the provided history are zeroed.
	if got := g.samples[(g.cur-3+n)%n].Values[0]; got != 0 {
		t.Errorf("history 3 = %d, want 0", got)
	}
	// The full repaint reflects the rewritten ring.
	if got := g.pixelAt(62, g.yOf(100)); got != colorPeakLine {
		t.Errorf("rewritten column peak = %#x, want peak line", got)
	}
	if g.yMin != 0 {
		t.Errorf("yMin = %d, want 0 from the new sample", g.yMin)
	}
}
