// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// memgraph is a dockapp showing memory composition as a stacked
// rolling graph, labeled with used memory.
package main

import (
	"os"
	"time"

	"github.com/phkaeser/wlmaker-sub002/internal/dockapp"
	"github.com/phkaeser/wlmaker-sub002/internal/graph"
	"github.com/phkaeser/wlmaker-sub002/internal/stats"
)

// memLUT is a fixed green ramp; memgraph has no --color-mode flag.
var memLUT = graph.Ramp(0xff103f10, 0xff40ff40)

func main() {
	os.Exit(dockapp.Main(dockapp.Config{
		Name:     "memgraph",
		Mode:     graph.Stacked,
		LUT:      &memLUT,
		HasLabel: true,
		NewSource: func(time.Duration) (graph.Source, error) {
			return stats.NewMem()
		},
	}))
}
