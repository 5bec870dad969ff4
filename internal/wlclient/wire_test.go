// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package wlclient

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestMessageHeader(t *testing.T) {
	data, oob := newMessage(3, 2).putUint(7).finish()
	if len(data) != 12 {
		t.Fatalf("len = %d, want 12", len(data))
	}
	if got := hostOrder.Uint32(data[0:4]); got != 3 {
		t.Errorf("object = %d, want 3", got)
	}
	word := hostOrder.Uint32(data[4:8])
	if size := word >> 16; size != 12 {
		t.Errorf("size = %d, want 12", size)
	}
	if opcode := word & 0xffff; opcode != 2 {
		t.Errorf("opcode = %d, want 2", opcode)
	}
	if got := hostOrder.Uint32(data[8:12]); got != 7 {
		t.Errorf("arg = %d, want 7", got)
	}
	if oob != nil {
		t.Errorf("unexpected ancillary data")
	}
}

func TestStringPadding(t *testing.T) {
	// "hi" occupies 3 bytes with the terminator, padded to 4.
	data, _ := newMessage(1, 0).putString("hi").finish()
	if len(data) != 16 {
		t.Fatalf("len = %d, want 16", len(data))
	}
	if got := hostOrder.Uint32(data[8:12]); got != 3 {
		t.Errorf("string length = %d, want 3", got)
	}
	if data[12] != 'h' || data[13] != 'i' || data[14] != 0 || data[15] != 0 {
		t.Errorf("string bytes = %v", data[12:16])
	}

	r := &reader{data: data[8:]}
	if got := r.string(); got != "hi" {
		t.Errorf("decoded %q, want %q", got, "hi")
	}
	if r.bad {
		t.Errorf("reader flagged bad input")
	}
}

func TestFdTravelsOutOfBand(t *testing.T) {
	data, oob := newMessage(4, 0).putUint(9).putFd(5).putInt(-1).finish()
	if len(data) != 16 {
		t.Errorf("fd leaked into the message body, len = %d", len(data))
	}
	want := unix.UnixRights(5)
	if len(oob) != len(want) {
		t.Errorf("oob len = %d, want %d", len(oob), len(want))
	}
}

func TestReaderRoundtrip(t *testing.T) {
	data, _ := newMessage(1, 0).
		putUint(42).putInt(-7).putString("wl_compositor").putUint(6).finish()
	r := &reader{data: data[headerSize:]}
	if got := r.uint(); got != 42 {
		t.Errorf("uint = %d, want 42", got)
	}
	if got := r.int(); got != -7 {
		t.Errorf("int = %d, want -7", got)
	}
	if got := r.string(); got != "wl_compositor" {
		t.Errorf("string = %q", got)
	}
	if got := r.uint(); got != 6 {
		t.Errorf("trailing uint = %d, want 6", got)
	}
	if r.bad || r.remaining() != 0 {
		t.Errorf("bad=%v remaining=%d after full decode", r.bad, r.remaining())
	}
}

func TestReaderShortInput(t *testing.T) {
	r := &reader{data: []byte{1, 0}}
	r.uint()
	if !r.bad {
		t.Errorf("short read not flagged")
	}
}
