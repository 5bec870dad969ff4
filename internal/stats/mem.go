// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package stats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/phkaeser/wlmaker-sub002/internal/graph"
)

// Mem reads memory composition from /proc/meminfo. Three stacked
// categories: page cache (incl. reclaimable slab), buffers, and used.
type Mem struct {
	f     *os.File
	label string
}

// NewMem opens /proc/meminfo.
func NewMem() (*Mem, error) {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return nil, errors.Wrap(err, "opening /proc/meminfo")
	}
	return &Mem{f: f}, nil
}

// meminfo holds the fields the graph consumes, in kB.
type meminfo struct {
	total, free, buffers, cached, sreclaimable uint64
}

func parseMeminfo(r io.Reader) (meminfo, error) {
	var m meminfo
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		var dst *uint64
		switch fields[0] {
		case "MemTotal:":
			dst = &m.total
		case "MemFree:":
			dst = &m.free
		case "Buffers:":
			dst = &m.buffers
		case "Cached:":
			dst = &m.cached
		case "SReclaimable:":
			dst = &m.sreclaimable
		default:
			continue
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return m, errors.Wrapf(err, "parsing %q", fields[0])
		}
		*dst = v
	}
	if err := sc.Err(); err != nil {
		return m, err
	}
	if m.total == 0 {
		return m, errors.New("MemTotal missing or zero")
	}
	return m, nil
}

// Read reports [cached+sreclaimable, buffers, used] each scaled to the
// 0..255 range by total memory, bottom of the stack first.
func (mm *Mem) Read(values *[]uint8) graph.ReadResult {
	if _, err := mm.f.Seek(0, io.SeekStart); err != nil {
		logrus.WithError(err).Debugln("meminfo rewind failed")
		return graph.ReadFailed
	}
	m, err := parseMeminfo(mm.f)
	if err != nil {
		logrus.WithError(err).Debugln("meminfo parse failed")
		return graph.ReadFailed
	}
	reclaimable := m.cached + m.sreclaimable
	used := int64(m.total) - int64(m.free) - int64(m.buffers) - int64(reclaimable)
	if used < 0 {
		used = 0
	}
	if cap(*values) < 3 {
		*values = make([]uint8, 3)
	}
	*values = (*values)[:3]
	(*values)[0] = uint8(reclaimable * 255 / m.total)
	(*values)[1] = uint8(m.buffers * 255 / m.total)
	(*values)[2] = uint8(uint64(used) * 255 / m.total)
	mm.label = sizeLabel(uint64(used))
	return graph.ReadOK
}

// Label captions the icon with used memory.
func (mm *Mem) Label() (string, bool) { return mm.label, mm.label != "" }

// Close releases the /proc handle.
func (mm *Mem) Close() error { return mm.f.Close() }

// sizeLabel renders a kB count with a 1024-based unit and precision
// that narrows as the mantissa grows.
func sizeLabel(kb uint64) string {
	units := [...]string{"kB", "MB", "GB", "TB"}
	v := float64(kb)
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	switch {
	case i == 0:
		return fmt.Sprintf("%.0f %s", v, units[i])
	case v < 10:
		return fmt.Sprintf("%.2f %s", v, units[i])
	case v < 100:
		return fmt.Sprintf("%.1f %s", v, units[i])
	default:
		return fmt.Sprintf("%.0f %s", v, units[i])
	}
}
