// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// cpugraph is a dockapp showing per-core CPU load as a rolling graph.
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
		Name: "cpugraph",
		Mode: graph.Independent,
		NewSource: func(time.Duration) (graph.Source, error) {
			return stats.NewCPU()
		},
	}))
}
