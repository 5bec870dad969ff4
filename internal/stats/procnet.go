// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package stats

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// newProcNetCounters returns a counter function backed by
// /proc/net/dev, used when the rtnetlink socket is unavailable.
func newProcNetCounters() (counterFunc, func() error, error) {
	f, err := os.Open("/proc/net/dev")
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening /proc/net/dev")
	}
	counters := func() (uint64, uint64, error) {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return 0, 0, err
		}
		return parseProcNetDev(f)
	}
	return counters, f.Close, nil
}

// parseProcNetDev sums RX/TX bytes over all non-loopback interfaces.
// The first two lines are column headers.
func parseProcNetDev(r io.Reader) (uint64, uint64, error) {
	var rx, tx uint64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if line <= 2 {
			continue
		}
		name, rest, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(name) == "lo" {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) < 9 {
			continue
		}
		r, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "parsing rx bytes of %q", name)
		}
		t, err := strconv.ParseUint(fields[8], 10, 64)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "parsing tx bytes of %q", name)
		}
		rx += r
		tx += t
	}
	if err := sc.Err(); err != nil {
		return 0, 0, err
	}
	return rx, tx, nil
}
