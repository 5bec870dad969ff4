// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package dockapp

import (
	"testing"
	"time"
)

func TestDispatchDeadlineBoundsLongWaits(t *testing.T) {
	now := time.Now()
	if got := dispatchDeadline(now, now.Add(time.Hour)); !got.Equal(now.Add(time.Second)) {
		t.Errorf("deadline = %v, want now+1s", got)
	}
	near := now.Add(200 * time.Millisecond)
	if got := dispatchDeadline(now, near); !got.Equal(near) {
		t.Errorf("deadline = %v, want the tick time %v", got, near)
	}
	past := now.Add(-time.Second)
	if got := dispatchDeadline(now, past); !got.Equal(past) {
		t.Errorf("deadline = %v, want the overdue tick time %v", got, past)
	}
}
