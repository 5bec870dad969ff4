// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package stats

import (
	"os"
	"strings"
	"testing"

	"github.com/phkaeser/wlmaker-sub002/internal/graph"
)

const procStatA = `cpu  400 0 200 2000 100 0 0 0 0 0
cpu0 100 0 50 500 25 0 0 0 0 0
cpu1 100 0 50 500 25 0 0 0 0 0
intr 12345
ctxt 67890
`

const procStatB = `cpu  800 0 400 2200 100 0 0 0 0 0
cpu0 300 0 150 550 25 0 0 0 0 0
cpu1 100 0 50 600 25 0 0 0 0 0
intr 12346
ctxt 67891
`

func TestParseCPUTimes(t *testing.T) {
	times, err := parseCPUTimes(strings.NewReader(procStatA))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(times) != 2 {
		t.Fatalf("cores = %d, want 2", len(times))
	}
	if times[0].total != 675 {
		t.Errorf("total = %d, want 675", times[0].total)
	}
	if times[0].idle != 525 {
		t.Errorf("idle = %d, want 525", times[0].idle)
	}
}

func statFile(t *testing.T, content string) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "stat")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestCPUDelta(t *testing.T) {
	f := statFile(t, procStatB)
	defer f.Close()
	prev, err := parseCPUTimes(strings.NewReader(procStatA))
	if err != nil {
		t.Fatal(err)
	}
	c := &CPU{f: f, prev: prev}

	var values []uint8
	if got := c.Read(&values); got != graph.ReadOK {
		t.Fatalf("result = %v, want ReadOK", got)
	}
	if len(values) != 2 {
		t.Fatalf("categories = %d, want 2", len(values))
	}
	// cpu0: Δtotal=350, Δidle=50: usage 300·255/350.
	if want := uint8(300 * 255 / 350); values[0] != want {
		t.Errorf("cpu0 usage = %d, want %d", values[0], want)
	}
	// cpu1 only idled: Δtotal=100, Δidle=100.
	if values[1] != 0 {
		t.Errorf("cpu1 usage = %d, want 0", values[1])
	}
}

func TestCPUIdleClampedToTotal(t *testing.T) {
	f := statFile(t, procStatB)
	defer f.Close()
	prev, err := parseCPUTimes(strings.NewReader(procStatA))
	if err != nil {
		t.Fatal(err)
	}
	// Fake a previous reading so the idle delta outruns the total
	// delta: cpu1 moves to total=775/idle=625.
	prev[1].total = 700
	prev[1].idle = 500
	c := &CPU{f: f, prev: prev}
	var values []uint8
	if got := c.Read(&values); got != graph.ReadOK {
		t.Fatalf("result = %v, want ReadOK", got)
	}
	if values[1] != 0 {
		t.Errorf("usage = %d with clamped idle, want 0", values[1])
	}
}

func TestCPUHotplugResetsTracking(t *testing.T) {
	f := statFile(t, procStatB)
	defer f.Close()
	c := &CPU{f: f, prev: []cpuTimes{{total: 675, idle: 525}}} // one core before
	var values []uint8
	if got := c.Read(&values); got != graph.ReadOK {
		t.Fatalf("result = %v, want ReadOK", got)
	}
	if len(values) != 2 {
		t.Fatalf("categories = %d after hotplug, want 2", len(values))
	}
	for i, v := range values {
		if v != 0 {
			t.Errorf("values[%d] = %d on hotplug tick, want 0", i, v)
		}
	}
}
