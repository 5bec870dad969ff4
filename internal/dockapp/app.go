// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package dockapp ties one graph application together: preferences and
// flags, the stats source, the graph engine, and the Wayland session
// with its double-buffered icon surface.
package dockapp

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/phkaeser/wlmaker-sub002/config"
	"github.com/phkaeser/wlmaker-sub002/internal/graph"
	"github.com/phkaeser/wlmaker-sub002/internal/render"
	"github.com/phkaeser/wlmaker-sub002/internal/wlclient"
)

// Config describes one graph application binary.
type Config struct {
	// Name is the binary name; it also selects the preferences file
	// and forms the app id.
	Name string
	Mode graph.AccumulationMode
	// LUT fixes the palette; when nil the --color-mode flag selects
	// between the heat and alpha palettes.
	LUT *[256]uint32
	// HasLabel enables the label flags; the source must then implement
	// graph.Labeler.
	HasLabel bool
	// NewSource builds the stats source once options are final.
	NewSource func(interval time.Duration) (graph.Source, error)
}

// logEnv selects the logrus level, e.g. WLM_GRAPH_LOG=debug.
const logEnv = "WLM_GRAPH_LOG"

func setupLogging() {
	lvl := os.Getenv(logEnv)
	if lvl == "" {
		return
	}
	parsed, err := logrus.ParseLevel(lvl)
	if err != nil {
		logrus.WithField("level", lvl).Warnln("unknown log level, keeping default")
		return
	}
	logrus.SetLevel(parsed)
}

// Main runs the application and returns the process exit code.
func Main(cfg Config) int {
	setupLogging()
	prefs, err := config.Load(cfg.Name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	opts, err := parseOptions(&cfg, prefs, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	src, err := cfg.NewSource(opts.Interval)
	if err != nil {
		logrus.WithError(err).Errorln("stats source unavailable")
		return 1
	}
	defer src.Close()
	if err := run(cfg, opts, src); err != nil {
		logrus.WithError(err).Errorln("terminated")
		return 1
	}
	return 0
}

// app is the per-run state. Everything runs on one goroutine; the
// Wayland callbacks fire from inside DispatchUntil.
type app struct {
	cfg  Config
	opts Options
	src  graph.Source

	conn    *wlclient.Conn
	shm     *wlclient.Shm
	surface *wlclient.Surface
	dbl     *wlclient.DblBuf

	eng     *graph.Graph
	canvas  *render.Canvas
	labeler graph.Labeler
	fontPx  float64

	width, height      int
	pendingW, pendingH int32
	configured         bool
	quit               bool
	fatal              error

	nextTick time.Time
}

func run(cfg Config, opts Options, src graph.Source) error {
	conn, err := wlclient.Connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	comp, err := conn.BindCompositor()
	if err != nil {
		return err
	}
	shm, err := conn.BindShm()
	if err != nil {
		return err
	}
	wm, err := conn.BindXdgWmBase()
	if err != nil {
		return err
	}

	var lut [256]uint32
	switch {
	case cfg.LUT != nil:
		lut = *cfg.LUT
	case opts.ColorMode == "alpha":
		lut = graph.AlphaLUT()
	default:
		lut = graph.HeatLUT()
	}

	a := &app{
		cfg:  cfg,
		opts: opts,
		src:  src,
		conn: conn,
		shm:  shm,
		eng:  graph.New(cfg.Mode, lut, opts.BezelMargin),
	}
	if cfg.HasLabel && !opts.NoLabel {
		if l, ok := src.(graph.Labeler); ok {
			a.labeler = l
		}
	}

	a.surface = comp.CreateSurface()
	xs := wm.GetXdgSurface(a.surface)
	top := xs.GetToplevel()
	top.SetAppID("org.wlmaker." + cfg.Name)
	top.SetTitle(cfg.Name)
	top.SetMinSize(16, 16)
	top.OnConfigure = func(w, h int32) { a.pendingW, a.pendingH = w, h }
	top.OnClose = func() { a.quit = true }
	xs.OnConfigure = func(uint32) { a.onConfigured() }
	a.surface.Commit()

	for !a.configured && !a.quit && a.fatal == nil {
		if err := conn.Roundtrip(); err != nil {
			return err
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	a.nextTick = time.Now()
	for !a.quit && a.fatal == nil {
		select {
		case <-sig:
			logrus.Infoln("shutting down on signal")
			a.quit = true
			continue
		default:
		}
		if !time.Now().Before(a.nextTick) {
			a.tick()
		}
		if err := conn.DispatchUntil(dispatchDeadline(time.Now(), a.nextTick)); err != nil {
			return err
		}
	}

	if a.dbl != nil {
		a.dbl.Destroy()
	}
	top.Destroy()
	xs.Destroy()
	a.surface.Destroy()
	return a.fatal
}

// dispatchDeadline bounds one dispatch pass to a second so the signal
// channel is polled promptly even with multi-minute sample intervals.
func dispatchDeadline(now, next time.Time) time.Time {
	if wake := now.Add(time.Second); next.After(wake) {
		return wake
	}
	return next
}

// onConfigured applies the size from the latest configure sequence,
// rebuilding the buffer pair when it changed. A zero size leaves the
// choice to the client.
func (a *app) onConfigured() {
	w, h := int(a.pendingW), int(a.pendingH)
	if w == 0 || h == 0 {
		w, h = graph.BaseIconSize, graph.BaseIconSize
	}
	a.configured = true
	if a.dbl != nil {
		if w == a.width && h == a.height {
			return
		}
		a.dbl.Destroy()
		a.dbl = nil
	}
	a.width, a.height = w, h
	dbl, err := wlclient.CreateDblBuf(a.cfg.Name, a.surface, a.shm, w, h)
	if err != nil {
		a.fatal = errors.Wrap(err, "creating icon buffers")
		return
	}
	a.dbl = dbl
	a.dbl.RegisterReadyCallback(a.renderFrame)
}

// tick samples the source and asks for the next frame. The deadline
// set here is a backstop; a successful render moves it again.
func (a *app) tick() {
	a.eng.Tick(a.src)
	a.nextTick = time.Now().Add(a.opts.Interval)
	if a.dbl != nil {
		a.dbl.RegisterReadyCallback(a.renderFrame)
	}
}

// renderFrame assembles one icon frame: transparent ground, bezel,
// graph pixels, label.
func (a *app) renderFrame(buf *render.Buffer) bool {
	iw, ih := a.eng.IconSize()
	if buf.Width != iw || buf.Height != ih {
		a.eng.Resize(buf.Width, buf.Height)
		a.canvas = render.NewCanvas(buf.Width, buf.Height)
		if a.labeler != nil {
			a.fontPx = a.opts.Font.Size * float64(buf.Width) / graph.BaseIconSize
			if err := a.canvas.SetFont(a.opts.Font, a.fontPx); err != nil {
				logrus.WithError(err).Warnln("label disabled")
				a.labeler = nil
			}
		}
	}
	buf.Clear()
	a.canvas.Begin()
	m := a.eng.MarginPx()
	if m > 0 {
		a.canvas.DrawBezel(m)
	}
	if gw, gh := a.eng.GraphSize(); gw > 0 && gh > 0 {
		a.eng.BlitTo(buf, m, m)
	}
	if a.labeler != nil {
		if text, ok := a.labeler.Label(); ok {
			a.canvas.DrawLabel(text, float64(m)+2, float64(m)+a.fontPx, 0xffffffff)
		}
	}
	a.canvas.CompositeOver(buf)
	a.nextTick = time.Now().Add(a.opts.Interval)
	return true
}
