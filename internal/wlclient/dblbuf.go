// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package wlclient

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/phkaeser/wlmaker-sub002/internal/render"
)

// ReadyFunc draws a frame into the handed buffer. Returning true
// presents the buffer; returning false hands it back untouched.
type ReadyFunc func(*render.Buffer) bool

type pageState uint8

const (
	pageReleased pageState = iota
	pageDrawing
	pageAttached
)

// BufferPage is one of the two pool pages, with its wl_buffer handle
// and the client-side pixel view aliasing the shared region.
type BufferPage struct {
	wl    *Buffer
	Img   *render.Buffer
	state pageState
}

// committer is the slice of wl_surface the double buffer needs to
// present a frame. *Surface satisfies it; tests substitute a fake.
type committer interface {
	Attach(buf *Buffer, x, y int32)
	DamageBuffer(x, y, w, h int32)
	Frame(fn func())
	Commit()
}

// DblBuf owns the two buffer pages of a surface and enforces the
// draw-when-ready-and-due contract: the registered callback runs
// exactly when a page has been released and the compositor has signaled
// that the next frame is due.
type DblBuf struct {
	surface committer
	pool    *Pool
	w, h    int

	pgs       [pages]*BufferPage
	released  [pages]*BufferPage
	nReleased int
	frameDue  bool
	callback  ReadyFunc
}

func newDblBuf(surface committer, w, h int) *DblBuf {
	// The very first frame has no preceding frame-done to wait on.
	return &DblBuf{surface: surface, w: w, h: h, frameDue: true}
}

// CreateDblBuf builds a double buffer over a fresh 2-page shm pool on
// the given surface. Any failure tears the partial state down and is
// fatal to the caller.
func CreateDblBuf(appID string, surface *Surface, shm *Shm, w, h int) (*DblBuf, error) {
	pool, err := NewPool(appID, shm, w, h)
	if err != nil {
		return nil, err
	}
	d := newDblBuf(surface, w, h)
	d.pool = pool
	for i := 0; i < pages; i++ {
		wl, img := pool.Page(i, w, h)
		pg := &BufferPage{wl: wl, Img: img, state: pageReleased}
		wl.OnRelease = func() { d.release(pg) }
		d.pgs[i] = pg
		d.push(pg)
	}
	if d.nReleased != pages {
		d.Destroy()
		return nil, errors.New("double buffer initialized with missing pages")
	}
	if err := shm.c.Err(); err != nil {
		d.Destroy()
		return nil, errors.Wrap(err, "creating buffers")
	}
	return d, nil
}

// Destroy tears down both buffers and the pool. It must not be called
// while a ready callback is in flight.
func (d *DblBuf) Destroy() {
	d.callback = nil
	for i, pg := range d.pgs {
		if pg == nil {
			continue
		}
		if pg.state == pageDrawing {
			logrus.Errorln("double buffer destroyed while drawing")
		}
		if pg.wl != nil {
			pg.wl.OnRelease = nil
			pg.wl.Destroy()
		}
		d.pgs[i] = nil
	}
	d.nReleased = 0
	if d.pool != nil {
		d.pool.Destroy()
		d.pool = nil
	}
}

// RegisterReadyCallback arms cb, replacing any previous callback. If a
// page is released and a frame is due, cb runs before this returns.
func (d *DblBuf) RegisterReadyCallback(cb ReadyFunc) {
	d.callback = cb
	d.maybeDraw()
}

func (d *DblBuf) push(pg *BufferPage) {
	pg.state = pageReleased
	d.released[d.nReleased] = pg
	d.nReleased++
}

func (d *DblBuf) pop() *BufferPage {
	d.nReleased--
	pg := d.released[d.nReleased]
	d.released[d.nReleased] = nil
	return pg
}

// release handles the compositor returning a page.
func (d *DblBuf) release(pg *BufferPage) {
	if pg.state != pageAttached {
		logrus.Debugln("release for a page the compositor does not hold")
		return
	}
	d.push(pg)
	d.maybeDraw()
}

// frameDone handles the surface's frame callback.
func (d *DblBuf) frameDone() {
	d.frameDue = true
	d.maybeDraw()
}

// maybeDraw runs the ready callback when armed, a frame is due, and a
// released page exists. These three call sites (register, release,
// frame done) are the only paths that can invoke the callback.
func (d *DblBuf) maybeDraw() {
	if d.callback == nil || !d.frameDue || d.nReleased == 0 {
		return
	}
	pg := d.pop()
	pg.state = pageDrawing
	cb := d.callback
	// Cleared before invocation so the callback may re-register
	// without re-entering this path.
	d.callback = nil
	d.frameDue = false
	if !cb(pg.Img) {
		d.push(pg)
		d.frameDue = true
		return
	}
	d.surface.Frame(d.frameDone)
	d.surface.DamageBuffer(0, 0, int32(d.w), int32(d.h))
	d.surface.Attach(pg.wl, 0, 0)
	d.surface.Commit()
	pg.state = pageAttached
}
