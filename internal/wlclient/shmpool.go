// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package wlclient

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/phkaeser/wlmaker-sub002/internal/render"
)

// ShmError reports a failed shared-memory setup step. Op is one of
// "open", "unlink", "truncate" or "mmap".
type ShmError struct {
	Op  string
	Err error
}

func (e *ShmError) Error() string { return fmt.Sprintf("shm %s: %v", e.Op, e.Err) }
func (e *ShmError) Unwrap() error { return e.Err }

// pages is the number of buffers a pool carries. The double buffer
// relies on exactly two.
const pages = 2

// Pool is a POSIX shared-memory region shared with the compositor,
// split into two equally sized ARGB8888 pages.
type Pool struct {
	size   int
	data   []byte
	wlPool *ShmPool
}

// shmDir is where shm_open places objects on Linux; opening O_EXCL
// there and unlinking immediately is exactly what libc does.
const shmDir = "/dev/shm"

// openShm creates an anonymous shared memory object. Up to 256 names
// of the form /<appID>_<pid>_shm_<usec>_<seq> are tried; the object is
// unlinked as soon as it is open, leaving only the descriptor.
func openShm(appID string, size int) (int, error) {
	var lastErr error
	for seq := 0; seq < 256; seq++ {
		name := fmt.Sprintf("%s_%d_shm_%d_%d",
			appID, os.Getpid(), time.Now().UnixMicro(), seq)
		fd, err := unix.Open(shmDir+"/"+name,
			unix.O_RDWR|unix.O_CREAT|unix.O_EXCL|unix.O_CLOEXEC, 0600)
		if err == unix.EEXIST {
			lastErr = err
			continue
		}
		if err != nil {
			return -1, &ShmError{Op: "open", Err: err}
		}
		if err := unix.Unlink(shmDir + "/" + name); err != nil {
			unix.Close(fd)
			return -1, &ShmError{Op: "unlink", Err: err}
		}
		for {
			err = unix.Ftruncate(fd, int64(size))
			if err != unix.EINTR {
				break
			}
		}
		if err != nil {
			unix.Close(fd)
			return -1, &ShmError{Op: "truncate", Err: err}
		}
		return fd, nil
	}
	return -1, &ShmError{Op: "open", Err: errors.Wrap(lastErr, "no free shm name")}
}

// NewPool creates a 2-page pool of w×h ARGB8888 buffers, maps it, and
// registers it with the compositor. The local descriptor is closed once
// the compositor holds its own reference.
func NewPool(appID string, shm *Shm, w, h int) (*Pool, error) {
	size := pages * w * h * 4
	fd, err := openShm(appID, size)
	if err != nil {
		return nil, err
	}
	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, &ShmError{Op: "mmap", Err: err}
	}
	p := &Pool{size: size, data: data, wlPool: shm.CreatePool(fd, int32(size))}
	unix.Close(fd)
	logrus.WithFields(logrus.Fields{
		"app_id": appID,
		"bytes":  size,
	}).Debugln("shm pool created")
	return p, nil
}

// Page returns the wl_buffer and the client pixel view for page 0 or 1.
func (p *Pool) Page(idx, w, h int) (*Buffer, *render.Buffer) {
	offset := idx * w * h * 4
	buf := p.wlPool.CreateBuffer(int32(offset), int32(w), int32(h), int32(w*4), FormatARGB8888)
	img := &render.Buffer{
		Width:         w,
		Height:        h,
		PixelsPerLine: w,
		Pix:           p.data[offset : offset+w*h*4],
	}
	return buf, img
}

// Destroy releases the compositor pool object and the local mapping.
func (p *Pool) Destroy() {
	if p.wlPool != nil {
		p.wlPool.Destroy()
		p.wlPool = nil
	}
	if p.data != nil {
		if err := unix.Munmap(p.data); err != nil {
			logrus.WithError(err).Debugln("munmap failed")
		}
		p.data = nil
	}
}
