// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package wlclient speaks the client side of the Wayland protocol over
// the compositor's unix socket, and provides the shared-memory buffer
// pool and double-buffered surface presentation used by the dockapps.
package wlclient

import (
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// proxy is one bound protocol object. Events for its id are handed to
// dispatch with the opcode and argument payload.
type proxy interface {
	dispatch(opcode uint16, r *reader)
}

// Global describes one wl_registry global advertised by the compositor.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// Conn is a connection to a Wayland compositor. It is single-threaded
// and cooperative: all event callbacks run on the caller's goroutine,
// from inside DispatchUntil or Roundtrip.
type Conn struct {
	c       *net.UnixConn
	objects map[uint32]proxy
	nextID  uint32
	freeIDs []uint32
	rbuf    []byte
	err     error

	// Globals holds the registry contents after Connect returns.
	Globals map[string]Global

	registryID uint32
}

const displayID = 1

// Connect dials $WAYLAND_DISPLAY under the XDG runtime directory and
// performs the initial registry roundtrip.
func Connect() (*Conn, error) {
	name := os.Getenv("WAYLAND_DISPLAY")
	if name == "" {
		name = "wayland-0"
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(xdg.RuntimeDir, name)
	}
	uc, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to compositor at %s", path)
	}
	c := &Conn{
		c:       uc,
		objects: make(map[uint32]proxy),
		nextID:  2,
		Globals: make(map[string]Global),
	}
	c.registryID = c.newID()
	c.objects[c.registryID] = (*registry)(c)
	c.send(newMessage(displayID, 1).putUint(c.registryID)) // get_registry
	if err := c.Roundtrip(); err != nil {
		uc.Close()
		return nil, errors.Wrap(err, "registry roundtrip")
	}
	logrus.WithField("globals", len(c.Globals)).Debugln("connected to compositor")
	return c, nil
}

// Close shuts the connection down. Proxies must not be used afterwards.
func (c *Conn) Close() error {
	return c.c.Close()
}

// Err returns the first fatal protocol or transport error, if any.
func (c *Conn) Err() error { return c.err }

func (c *Conn) newID() uint32 {
	if n := len(c.freeIDs); n > 0 {
		id := c.freeIDs[n-1]
		c.freeIDs = c.freeIDs[:n-1]
		return id
	}
	id := c.nextID
	c.nextID++
	return id
}

func (c *Conn) send(m *message) {
	if c.err != nil {
		return
	}
	data, oob := m.finish()
	if _, _, err := c.c.WriteMsgUnix(data, oob, nil); err != nil {
		c.err = errors.Wrap(err, "writing request")
	}
}

// destroyed releases an object slot after a destructor request. The id
// is reused once the compositor acknowledges with delete_id.
func (c *Conn) destroyed(id uint32) {
	delete(c.objects, id)
}

// DispatchUntil reads and dispatches compositor events until the
// deadline passes. A nil return means the deadline expired; the
// connection is still healthy.
func (c *Conn) DispatchUntil(deadline time.Time) error {
	if err := c.c.SetReadDeadline(deadline); err != nil {
		return err
	}
	var buf [4096]byte
	var oob [512]byte
	for {
		if err := c.drain(); err != nil {
			return err
		}
		n, oobn, _, _, err := c.c.ReadMsgUnix(buf[:], oob[:])
		if n > 0 {
			c.rbuf = append(c.rbuf, buf[:n]...)
		}
		if oobn > 0 {
			c.discardFds(oob[:oobn])
		}
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				return c.drain()
			}
			c.err = errors.Wrap(err, "reading events")
			return c.err
		}
	}
}

// Roundtrip issues wl_display.sync and dispatches until the done event
// arrives, bounding the wait to keep a wedged compositor from hanging
// the client forever.
func (c *Conn) Roundtrip() error {
	done := false
	c.Sync(func() { done = true })
	deadline := time.Now().Add(10 * time.Second)
	for !done {
		if err := c.DispatchUntil(deadline); err != nil {
			return err
		}
		if !done && time.Now().After(deadline) {
			return errors.New("roundtrip timed out")
		}
	}
	return c.err
}

// Sync requests a wl_display.sync callback.
func (c *Conn) Sync(fn func()) {
	id := c.newID()
	cb := &Callback{c: c, id: id, OnDone: func(uint32) { fn() }}
	c.objects[id] = cb
	c.send(newMessage(displayID, 0).putUint(id)) // sync
}

// drain dispatches every complete buffered event.
func (c *Conn) drain() error {
	for {
		if c.err != nil {
			return c.err
		}
		if len(c.rbuf) < headerSize {
			return nil
		}
		object := hostOrder.Uint32(c.rbuf[0:4])
		word := hostOrder.Uint32(c.rbuf[4:8])
		size := int(word >> 16)
		opcode := uint16(word & 0xffff)
		if size < headerSize {
			c.err = errors.Errorf("malformed event header on object %d", object)
			return c.err
		}
		if len(c.rbuf) < size {
			return nil
		}
		payload := c.rbuf[headerSize:size]
		c.dispatchEvent(object, opcode, payload)
		c.rbuf = c.rbuf[size:]
	}
}

func (c *Conn) dispatchEvent(object uint32, opcode uint16, payload []byte) {
	r := &reader{data: payload}
	if object == displayID {
		c.displayEvent(opcode, r)
		return
	}
	obj, ok := c.objects[object]
	if !ok {
		// Events may race a client-side destroy; drop them.
		logrus.WithFields(logrus.Fields{
			"object": object,
			"opcode": opcode,
		}).Debugln("event for unknown object")
		return
	}
	obj.dispatch(opcode, r)
}

func (c *Conn) displayEvent(opcode uint16, r *reader) {
	switch opcode {
	case 0: // error
		object := r.uint()
		code := r.uint()
		msg := r.string()
		c.err = errors.Errorf("protocol error on object %d: %s (code %d)", object, msg, code)
		logrus.WithFields(logrus.Fields{
			"object": object,
			"code":   code,
		}).Errorln(msg)
	case 1: // delete_id
		id := r.uint()
		delete(c.objects, id)
		c.freeIDs = append(c.freeIDs, id)
	}
}

// discardFds closes descriptors arriving with events. None of the
// bound interfaces deliver any; leaving them open would leak.
func (c *Conn) discardFds(oob []byte) {
	fds, err := parseUnixRights(oob)
	if err != nil {
		logrus.WithError(err).Debugln("discarding ancillary data")
		return
	}
	for _, fd := range fds {
		unix.Close(fd)
	}
	if len(fds) > 0 {
		logrus.WithField("count", len(fds)).Debugln("closed unexpected descriptors")
	}
}

func parseUnixRights(oob []byte) ([]int, error) {
	scms, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return nil, err
	}
	var fds []int
	for _, scm := range scms {
		got, err := unix.ParseUnixRights(&scm)
		if err != nil {
			return nil, err
		}
		fds = append(fds, got...)
	}
	return fds, nil
}

// registry receives wl_registry events directly into the connection's
// global table.
type registry Conn

func (rg *registry) dispatch(opcode uint16, r *reader) {
	c := (*Conn)(rg)
	switch opcode {
	case 0: // global
		name := r.uint()
		iface := r.string()
		version := r.uint()
		c.Globals[iface] = Global{Name: name, Interface: iface, Version: version}
	case 1: // global_remove
		name := r.uint()
		for iface, g := range c.Globals {
			if g.Name == name {
				delete(c.Globals, iface)
			}
		}
	}
}

// bind issues wl_registry.bind for the named global.
func (c *Conn) bind(g Global, version uint32, id uint32) {
	if version > g.Version {
		version = g.Version
	}
	m := newMessage(c.registryID, 0)
	m.putUint(g.Name)
	m.putString(g.Interface)
	m.putUint(version)
	m.putUint(id)
	c.send(m)
}
