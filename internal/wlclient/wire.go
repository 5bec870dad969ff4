// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package wlclient

import (
	"encoding/binary"
	"unsafe"

	"golang.org/x/sys/unix"
)

// The Wayland wire format uses the host byte order, not network order.
var hostOrder binary.ByteOrder = binary.LittleEndian

func init() {
	n := uint32(1)
	if (*[4]byte)(unsafe.Pointer(&n))[0] == 0 {
		hostOrder = binary.BigEndian
	}
}

const headerSize = 8

// message is an outgoing request: 8 byte header (object id, then
// size<<16|opcode) followed by the arguments. File descriptors travel
// out-of-band as SCM_RIGHTS ancillary data.
type message struct {
	buf []byte
	fds []int
}

func newMessage(object uint32, opcode uint16) *message {
	m := &message{buf: make([]byte, headerSize, 40)}
	hostOrder.PutUint32(m.buf[0:4], object)
	hostOrder.PutUint32(m.buf[4:8], uint32(opcode))
	return m
}

func (m *message) putUint(v uint32) *message {
	var b [4]byte
	hostOrder.PutUint32(b[:], v)
	m.buf = append(m.buf, b[:]...)
	return m
}

func (m *message) putInt(v int32) *message {
	return m.putUint(uint32(v))
}

// putString appends a string argument: u32 length including the NUL
// terminator, the bytes, then padding to a 32-bit boundary.
func (m *message) putString(s string) *message {
	m.putUint(uint32(len(s) + 1))
	m.buf = append(m.buf, s...)
	m.buf = append(m.buf, 0)
	for len(m.buf)%4 != 0 {
		m.buf = append(m.buf, 0)
	}
	return m
}

func (m *message) putFd(fd int) *message {
	m.fds = append(m.fds, fd)
	return m
}

// finish patches the message size into the header and returns the wire
// bytes and ancillary data.
func (m *message) finish() (data, oob []byte) {
	opcode := hostOrder.Uint32(m.buf[4:8]) & 0xffff
	hostOrder.PutUint32(m.buf[4:8], uint32(len(m.buf))<<16|opcode)
	if len(m.fds) > 0 {
		oob = unix.UnixRights(m.fds...)
	}
	return m.buf, oob
}

// reader decodes the argument payload of one incoming event.
type reader struct {
	data []byte
	off  int
	bad  bool
}

func (r *reader) remaining() int { return len(r.data) - r.off }

func (r *reader) uint() uint32 {
	if r.remaining() < 4 {
		r.bad = true
		return 0
	}
	v := hostOrder.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

func (r *reader) int() int32 { return int32(r.uint()) }

func (r *reader) string() string {
	n := int(r.uint())
	if n == 0 || r.remaining() < n {
		r.bad = true
		return ""
	}
	s := string(r.data[r.off : r.off+n-1])
	r.off += (n + 3) &^ 3
	return s
}

// array reads a wl array of 32-bit words.
func (r *reader) array() []uint32 {
	n := int(r.uint())
	if r.remaining() < n {
		r.bad = true
		return nil
	}
	out := make([]uint32, n/4)
	for i := range out {
		out[i] = hostOrder.Uint32(r.data[r.off+4*i:])
	}
	r.off += (n + 3) &^ 3
	return out
}
