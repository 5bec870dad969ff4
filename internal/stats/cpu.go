// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package stats provides the per-tick system readers feeding the graph
// engine: per-core CPU load from /proc/stat, memory composition from
// /proc/meminfo, and interface throughput via rtnetlink with a
// /proc/net/dev fallback.
package stats

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/phkaeser/wlmaker-sub002/internal/graph"
)

// cpuTimes is the aggregate of one cpuN line of /proc/stat.
type cpuTimes struct {
	total uint64
	idle  uint64
}

// CPU reads per-core load, one category per online core. The file
// stays open across ticks and is rewound for each read.
type CPU struct {
	f    *os.File
	prev []cpuTimes
}

// NewCPU opens /proc/stat and takes the priming reading so the first
// tick already has a delta to report.
func NewCPU() (*CPU, error) {
	f, err := os.Open("/proc/stat")
	if err != nil {
		return nil, errors.Wrap(err, "opening /proc/stat")
	}
	c := &CPU{f: f}
	c.prev, err = c.sample()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "priming cpu times")
	}
	return c, nil
}

// sample rewinds and parses every cpu<digit> line.
func (c *CPU) sample() ([]cpuTimes, error) {
	if _, err := c.f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return parseCPUTimes(c.f)
}

func parseCPUTimes(r io.Reader) ([]cpuTimes, error) {
	var out []cpuTimes
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "cpu") {
			continue
		}
		fields := strings.Fields(line)
		// "cpu" with no digit is the aggregate line.
		if len(fields) < 8 || len(fields[0]) == 3 {
			continue
		}
		var t cpuTimes
		for i := 1; i <= 7; i++ {
			v, err := strconv.ParseUint(fields[i], 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing %q", line)
			}
			t.total += v
			if i == 4 || i == 5 { // idle, iowait
				t.idle += v
			}
		}
		out = append(out, t)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.New("no per-core lines in /proc/stat")
	}
	return out, nil
}

// Read reports one usage byte per core from the delta since the last
// tick. A changed core count restarts delta tracking at zero usage.
func (c *CPU) Read(values *[]uint8) graph.ReadResult {
	cur, err := c.sample()
	if err != nil {
		logrus.WithError(err).Debugln("cpu sample failed")
		return graph.ReadFailed
	}
	if cap(*values) < len(cur) {
		*values = make([]uint8, len(cur))
	}
	*values = (*values)[:len(cur)]
	if len(cur) != len(c.prev) {
		logrus.WithField("cores", len(cur)).Debugln("cpu count changed")
		for i := range *values {
			(*values)[i] = 0
		}
		c.prev = cur
		return graph.ReadOK
	}
	for i, t := range cur {
		dTotal := t.total - c.prev[i].total
		dIdle := t.idle - c.prev[i].idle
		// Idle counters can outrun the total on some kernels.
		if dIdle > dTotal {
			dIdle = dTotal
		}
		if dTotal == 0 {
			(*values)[i] = 0
			continue
		}
		(*values)[i] = uint8((dTotal - dIdle) * 255 / dTotal)
	}
	c.prev = cur
	return graph.ReadOK
}

// Close releases the /proc handle.
func (c *CPU) Close() error { return c.f.Close() }
