// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// netgraph is a dockapp showing network throughput (RX and TX) on an
// auto-ranging rolling graph, labeled with the current full scale.
package main

import (
	"os"
	"time"

	"github.com/phkaeser/wlmaker-sub002/internal/dockapp"
	"github.com/phkaeser/wlmaker-sub002/internal/graph"
	"github.com/phkaeser/wlmaker-sub002/internal/stats"
)

func main() {
	os.Exit(dockapp.Main(dockapp.Config{
		Name:     "netgraph",
		Mode:     graph.Independent,
		HasLabel: true,
		NewSource: func(interval time.Duration) (graph.Source, error) {
			return stats.NewNet(interval)
		},
	}))
}
