// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package graph implements the rolling time-series engine behind the
// cpu/mem/net dockapp icons: a circular sample history, an
// incrementally repainted graph image with peak tracking, and the
// periodic sampling loop that feeds frames to the double buffer.
package graph

// ReadResult is the outcome of one stats acquisition.
type ReadResult int

const (
	// ReadOK: values were written; fold the sample in incrementally.
	ReadOK ReadResult = iota
	// ReadFailed: drop this tick, leave the display alone.
	ReadFailed
	// ReadOKRegenerate: values were written, but the source rescaled
	// and all visible history must be rewritten before rendering.
	ReadOKRegenerate
)

// Source produces one sample per tick. Read receives the values buffer
// of the ring node being overwritten and must resize it to the current
// category count before writing; the buffer stays owned by the ring.
type Source interface {
	Read(values *[]uint8) ReadResult
	Close() error
}

// Labeler is implemented by sources that caption the icon. Returning
// ok=false skips the label for this frame.
type Labeler interface {
	Label() (string, bool)
}

// Regenerator must be implemented by any source that returns
// ReadOKRegenerate. RegenerateHistory returns up to n rewritten value
// slices, newest first, excluding the sample just read; a nil entry
// means no history is available and the engine zeroes that node.
type Regenerator interface {
	RegenerateHistory(n int) [][]uint8
}

// AccumulationMode selects how categories combine within a sample.
type AccumulationMode uint8

const (
	// Independent overlays per-category bars; the peak is the maximum.
	Independent AccumulationMode = iota
	// Stacked sums categories; the peak is the sum clamped to 255.
	Stacked
)

// peakOf computes the sample peak for the given mode.
func peakOf(values []uint8, mode AccumulationMode) uint8 {
	if mode == Stacked {
		sum := 0
		for _, v := range values {
			sum += int(v)
		}
		if sum > 255 {
			sum = 255
		}
		return uint8(sum)
	}
	var max uint8
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}
