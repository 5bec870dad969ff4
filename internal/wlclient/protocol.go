// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package wlclient

import (
	"github.com/pkg/errors"
)

// Proxy objects for the protocol interfaces the dockapps consume.
// Events are surfaced as OnXxx callback fields; a nil field drops the
// event.

// FormatARGB8888 is the only pixel format the clients produce.
const FormatARGB8888 = 0

// Compositor wraps wl_compositor.
type Compositor struct {
	c  *Conn
	id uint32
}

// BindCompositor binds the wl_compositor global.
func (c *Conn) BindCompositor() (*Compositor, error) {
	g, ok := c.Globals["wl_compositor"]
	if !ok {
		return nil, errors.New("compositor does not advertise wl_compositor")
	}
	comp := &Compositor{c: c, id: c.newID()}
	c.objects[comp.id] = comp
	c.bind(g, 4, comp.id)
	return comp, nil
}

func (comp *Compositor) dispatch(uint16, *reader) {}

// CreateSurface creates a wl_surface.
func (comp *Compositor) CreateSurface() *Surface {
	s := &Surface{c: comp.c, id: comp.c.newID()}
	comp.c.objects[s.id] = s
	comp.c.send(newMessage(comp.id, 0).putUint(s.id))
	return s
}

// Shm wraps wl_shm.
type Shm struct {
	c  *Conn
	id uint32
}

// BindShm binds the wl_shm global.
func (c *Conn) BindShm() (*Shm, error) {
	g, ok := c.Globals["wl_shm"]
	if !ok {
		return nil, errors.New("compositor does not advertise wl_shm")
	}
	shm := &Shm{c: c, id: c.newID()}
	c.objects[shm.id] = shm
	c.bind(g, 1, shm.id)
	return shm, nil
}

// wl_shm only advertises pixel formats; ARGB8888 support is mandatory.
func (shm *Shm) dispatch(uint16, *reader) {}

// CreatePool hands fd to the compositor as a wl_shm_pool of the given
// size.
func (shm *Shm) CreatePool(fd int, size int32) *ShmPool {
	p := &ShmPool{c: shm.c, id: shm.c.newID()}
	shm.c.objects[p.id] = p
	shm.c.send(newMessage(shm.id, 0).putUint(p.id).putFd(fd).putInt(size))
	return p
}

// ShmPool wraps wl_shm_pool.
type ShmPool struct {
	c  *Conn
	id uint32
}

func (p *ShmPool) dispatch(uint16, *reader) {}

// CreateBuffer creates a wl_buffer viewing [offset, offset+stride*h) of
// the pool.
func (p *ShmPool) CreateBuffer(offset, width, height, stride int32, format uint32) *Buffer {
	b := &Buffer{c: p.c, id: p.c.newID()}
	p.c.objects[b.id] = b
	m := newMessage(p.id, 0)
	m.putUint(b.id).putInt(offset).putInt(width).putInt(height).putInt(stride).putUint(format)
	p.c.send(m)
	return b
}

// Destroy destroys the pool object. Buffers created from it keep their
// mapping alive on the compositor side.
func (p *ShmPool) Destroy() {
	p.c.send(newMessage(p.id, 1))
	p.c.destroyed(p.id)
}

// Buffer wraps wl_buffer.
type Buffer struct {
	c  *Conn
	id uint32

	// OnRelease fires when the compositor no longer reads the buffer.
	OnRelease func()
}

func (b *Buffer) dispatch(opcode uint16, _ *reader) {
	if opcode == 0 && b.OnRelease != nil {
		b.OnRelease()
	}
}

// Destroy destroys the buffer.
func (b *Buffer) Destroy() {
	b.c.send(newMessage(b.id, 0))
	b.c.destroyed(b.id)
}

// Callback wraps wl_callback. The compositor destroys it after done.
type Callback struct {
	c      *Conn
	id     uint32
	OnDone func(data uint32)
}

func (cb *Callback) dispatch(opcode uint16, r *reader) {
	if opcode != 0 {
		return
	}
	data := r.uint()
	// The object is dead after done; delete_id releases the id.
	delete(cb.c.objects, cb.id)
	if cb.OnDone != nil {
		cb.OnDone(data)
	}
}

// Surface wraps wl_surface.
type Surface struct {
	c  *Conn
	id uint32
}

// wl_surface only reports output enter/leave and scale hints; the
// dockapps track size through xdg configure instead.
func (s *Surface) dispatch(uint16, *reader) {}

// Attach attaches buf at (x, y). A nil buf detaches.
func (s *Surface) Attach(buf *Buffer, x, y int32) {
	var id uint32
	if buf != nil {
		id = buf.id
	}
	s.c.send(newMessage(s.id, 1).putUint(id).putInt(x).putInt(y))
}

// DamageBuffer marks a buffer-coordinate region as needing repaint.
func (s *Surface) DamageBuffer(x, y, w, h int32) {
	s.c.send(newMessage(s.id, 9).putInt(x).putInt(y).putInt(w).putInt(h))
}

// Frame requests a one-shot frame-done callback.
func (s *Surface) Frame(fn func()) {
	id := s.c.newID()
	cb := &Callback{c: s.c, id: id, OnDone: func(uint32) { fn() }}
	s.c.objects[id] = cb
	s.c.send(newMessage(s.id, 3).putUint(id))
}

// Commit atomically applies the pending surface state.
func (s *Surface) Commit() {
	s.c.send(newMessage(s.id, 6))
}

// Destroy destroys the surface.
func (s *Surface) Destroy() {
	s.c.send(newMessage(s.id, 0))
	s.c.destroyed(s.id)
}

// XdgWmBase wraps xdg_wm_base and answers pings itself.
type XdgWmBase struct {
	c  *Conn
	id uint32
}

// BindXdgWmBase binds the xdg_wm_base global.
func (c *Conn) BindXdgWmBase() (*XdgWmBase, error) {
	g, ok := c.Globals["xdg_wm_base"]
	if !ok {
		return nil, errors.New("compositor does not advertise xdg_wm_base")
	}
	wm := &XdgWmBase{c: c, id: c.newID()}
	c.objects[wm.id] = wm
	c.bind(g, 2, wm.id)
	return wm, nil
}

func (wm *XdgWmBase) dispatch(opcode uint16, r *reader) {
	if opcode == 0 { // ping
		serial := r.uint()
		wm.c.send(newMessage(wm.id, 3).putUint(serial)) // pong
	}
}

// GetXdgSurface assigns the xdg_surface role to s.
func (wm *XdgWmBase) GetXdgSurface(s *Surface) *XdgSurface {
	xs := &XdgSurface{c: wm.c, id: wm.c.newID()}
	wm.c.objects[xs.id] = xs
	wm.c.send(newMessage(wm.id, 2).putUint(xs.id).putUint(s.id))
	return xs
}

// XdgSurface wraps xdg_surface.
type XdgSurface struct {
	c  *Conn
	id uint32

	// OnConfigure fires per configure event; the serial has already
	// been acked when it runs.
	OnConfigure func(serial uint32)
}

func (xs *XdgSurface) dispatch(opcode uint16, r *reader) {
	if opcode != 0 {
		return
	}
	serial := r.uint()
	xs.c.send(newMessage(xs.id, 4).putUint(serial)) // ack_configure
	if xs.OnConfigure != nil {
		xs.OnConfigure(serial)
	}
}

// Destroy destroys the xdg_surface role object. The toplevel must be
// destroyed first.
func (xs *XdgSurface) Destroy() {
	xs.c.send(newMessage(xs.id, 0))
	xs.c.destroyed(xs.id)
}

// GetToplevel assigns the toplevel role.
func (xs *XdgSurface) GetToplevel() *XdgToplevel {
	t := &XdgToplevel{c: xs.c, id: xs.c.newID()}
	xs.c.objects[t.id] = t
	xs.c.send(newMessage(xs.id, 1).putUint(t.id))
	return t
}

// XdgToplevel wraps xdg_toplevel.
type XdgToplevel struct {
	c  *Conn
	id uint32

	// OnConfigure reports the size the compositor wants; zero means
	// the client decides.
	OnConfigure func(width, height int32)
	OnClose     func()
}

func (t *XdgToplevel) dispatch(opcode uint16, r *reader) {
	switch opcode {
	case 0: // configure
		w := r.int()
		h := r.int()
		r.array() // states
		if t.OnConfigure != nil {
			t.OnConfigure(w, h)
		}
	case 1: // close
		if t.OnClose != nil {
			t.OnClose()
		}
	}
}

// Destroy destroys the toplevel, unmapping the surface.
func (t *XdgToplevel) Destroy() {
	t.c.send(newMessage(t.id, 0))
	t.c.destroyed(t.id)
}

// SetTitle sets the toplevel title.
func (t *XdgToplevel) SetTitle(title string) {
	t.c.send(newMessage(t.id, 2).putString(title))
}

// SetAppID sets the application id used for dock matching.
func (t *XdgToplevel) SetAppID(appID string) {
	t.c.send(newMessage(t.id, 3).putString(appID))
}

// SetMinSize constrains the smallest usable size.
func (t *XdgToplevel) SetMinSize(w, h int32) {
	t.c.send(newMessage(t.id, 8).putInt(w).putInt(h))
}

// SetMaxSize constrains the largest usable size.
func (t *XdgToplevel) SetMaxSize(w, h int32) {
	t.c.send(newMessage(t.id, 7).putInt(w).putInt(h))
}
