// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package stats

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/phkaeser/wlmaker-sub002/internal/graph"
)

// rawRate is one tick of throughput in bytes per second, kept so the
// visible history can be rewritten when the scale changes.
type rawRate struct {
	rx, tx float64
}

const (
	// rawHistory caps the raw-rate ring; wider graphs simply lose the
	// oldest columns on regeneration.
	rawHistory = 512
	// peakFloor keeps the scale from collapsing on an idle link.
	peakFloor = 1e6 // 1 MB/s
)

// netScales are the selectable full-range rates, decimal units.
var netScales = [...]struct {
	rate  float64
	label string
}{
	{1e3, "1 KB/s"}, {1e4, "10 KB/s"}, {1e5, "100 KB/s"},
	{1e6, "1 MB/s"}, {1e7, "10 MB/s"}, {1e8, "100 MB/s"},
	{1e9, "1 GB/s"}, {1e10, "10 GB/s"}, {1e11, "100 GB/s"},
}

// pickScale returns the smallest scale covering rate.
func pickScale(rate float64) int {
	for i, s := range netScales {
		if s.rate >= rate {
			return i
		}
	}
	return len(netScales) - 1
}

// counterFunc returns total RX/TX byte counters summed over all
// non-loopback interfaces.
type counterFunc func() (rx, tx uint64, err error)

// Net reports [rx, tx] throughput scaled to an auto-ranging full
// scale. The peak rate rises immediately with traffic and bleeds off
// by 1/128 per tick, never below peakFloor.
type Net struct {
	counters counterFunc
	closer   func() error
	interval time.Duration

	prevRx, prevTx uint64
	primed         bool

	peak     float64
	scaleIdx int

	hist    [rawHistory]rawRate
	histN   int
	histCur int
}

// NewNet builds the source, preferring the rtnetlink counters and
// falling back to /proc/net/dev when the socket cannot be opened.
func NewNet(interval time.Duration) (*Net, error) {
	n := &Net{
		interval: interval,
		peak:     peakFloor,
		scaleIdx: pickScale(peakFloor),
		histCur:  rawHistory - 1,
	}
	counters, closer, err := newNetlinkCounters()
	if err != nil {
		logrus.WithError(err).Debugln("rtnetlink unavailable, using /proc/net/dev")
		counters, closer, err = newProcNetCounters()
		if err != nil {
			return nil, err
		}
	}
	n.counters = counters
	n.closer = closer
	return n, nil
}

// scaleByte maps a rate onto the current full scale.
func scaleByte(rate, scale float64) uint8 {
	v := int(rate * 255 / scale)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

func (n *Net) push(r rawRate) {
	n.histCur = (n.histCur + 1) % rawHistory
	n.hist[n.histCur] = r
	if n.histN < rawHistory {
		n.histN++
	}
}

// Read reports the RX and TX rates since the previous tick. A scale
// change is signaled through ReadOKRegenerate so the engine rewrites
// its visible history from the raw ring.
func (n *Net) Read(values *[]uint8) graph.ReadResult {
	rx, tx, err := n.counters()
	if err != nil {
		logrus.WithError(err).Debugln("net counters failed")
		return graph.ReadFailed
	}
	if cap(*values) < 2 {
		*values = make([]uint8, 2)
	}
	*values = (*values)[:2]
	if !n.primed {
		n.primed = true
		n.prevRx, n.prevTx = rx, tx
		(*values)[0], (*values)[1] = 0, 0
		n.push(rawRate{})
		return graph.ReadOK
	}
	dt := n.interval.Seconds()
	var r rawRate
	// Counters reset on interface bounce; treat a step back as zero.
	if rx >= n.prevRx {
		r.rx = float64(rx-n.prevRx) / dt
	}
	if tx >= n.prevTx {
		r.tx = float64(tx-n.prevTx) / dt
	}
	n.prevRx, n.prevTx = rx, tx
	n.push(r)

	top := r.rx
	if r.tx > top {
		top = r.tx
	}
	if top > n.peak {
		n.peak = top
	} else {
		n.peak -= n.peak / 128
		if n.peak < peakFloor {
			n.peak = peakFloor
		}
	}
	idx := pickScale(n.peak)
	scale := netScales[idx].rate
	(*values)[0] = scaleByte(r.rx, scale)
	(*values)[1] = scaleByte(r.tx, scale)
	if idx != n.scaleIdx {
		logrus.WithField("scale", netScales[idx].label).Debugln("net scale changed")
		n.scaleIdx = idx
		return graph.ReadOKRegenerate
	}
	return graph.ReadOK
}

// RegenerateHistory rewrites up to max historical ticks at the current
// scale, newest first, excluding the sample just read.
func (n *Net) RegenerateHistory(max int) [][]uint8 {
	avail := n.histN - 1
	if avail < 0 {
		avail = 0
	}
	if max < avail {
		avail = max
	}
	scale := netScales[n.scaleIdx].rate
	out := make([][]uint8, avail)
	for k := 0; k < avail; k++ {
		r := n.hist[(n.histCur-1-k+rawHistory)%rawHistory]
		out[k] = []uint8{scaleByte(r.rx, scale), scaleByte(r.tx, scale)}
	}
	return out
}

// Label captions the icon with the current full-scale rate.
func (n *Net) Label() (string, bool) {
	return netScales[n.scaleIdx].label, true
}

// Close releases the counter backend.
func (n *Net) Close() error {
	if n.closer != nil {
		return n.closer()
	}
	return nil
}
