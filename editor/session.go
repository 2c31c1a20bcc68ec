// Package editor wires a document to the components that edit and display
// it: undo history, viewport, tools, playback and rendering.
//
// A Session is the explicit context object of one open document. Nothing in
// this module keeps document state in package variables; every component
// receives what it needs from the Session that owns it.
package editor

import (
	"image"
	"io"

	"golang.org/x/image/draw"

	"github.com/gogpu/pixart"
	"github.com/gogpu/pixart/anim"
	"github.com/gogpu/pixart/config"
	"github.com/gogpu/pixart/history"
	"github.com/gogpu/pixart/project"
	"github.com/gogpu/pixart/render"
	"github.com/gogpu/pixart/tool"
	"github.com/gogpu/pixart/viewport"
)

// Shortcut keys handled by the session rather than by the tools.
const (
	KeyUndo tool.Key = "ctrl+z"
	KeyRedo tool.Key = "ctrl+y"
)

// Options configures a Session. The zero value is usable.
type Options struct {
	// HistoryMax caps the undo history; below 1 means the default.
	HistoryMax int
	// PixelSize is the display size of one logical pixel; below 1 means
	// the viewport default.
	PixelSize float64
	// Scheduler drives playback. Nil means a ManualScheduler.
	Scheduler anim.Scheduler
	// Onion configures onion skinning during playback.
	Onion anim.OnionSettings
	// Scaler resamples imported images. Nil means nearest neighbor.
	Scaler draw.Scaler
}

// OptionsFromConfig translates the history, canvas, animation and import
// settings of a valid configuration.
func OptionsFromConfig(cfg *config.Config, sched anim.Scheduler) Options {
	scaler, _ := project.ScalerByName(cfg.Import.Scaler)
	return Options{
		HistoryMax: cfg.History.MaxEntries,
		PixelSize:  float64(cfg.Canvas.PixelSize),
		Scheduler:  sched,
		Onion:      cfg.Animation.Onion(),
		Scaler:     scaler,
	}
}

// Session is one open document and its editing machinery.
//
// Session is not safe for concurrent use. With an anim.Loop scheduler, call
// it only from the loop's Run goroutine.
type Session struct {
	Doc      *pixart.Document
	History  *history.History
	View     *viewport.Viewport
	Tools    *tool.Manager
	Player   *anim.Player
	Renderer render.Renderer

	scaler draw.Scaler
}

// New opens doc. The current state of its live stack becomes the undo
// baseline.
func New(doc *pixart.Document, opts Options) *Session {
	if opts.Scheduler == nil {
		opts.Scheduler = anim.NewManualScheduler()
	}
	s := &Session{
		Doc:     doc,
		History: history.New(doc, opts.HistoryMax),
		View:    viewport.New(opts.PixelSize),
		scaler:  opts.Scaler,
	}
	s.Tools = tool.NewManager(doc, s.View, s.History)
	s.Player = anim.NewPlayer(doc, opts.Scheduler)
	s.Player.Onion = opts.Onion
	s.Renderer.PixelSize = int(s.View.PixelSize())
	return s
}

// Handle dispatches one input event. Undo and redo shortcuts are handled
// here; everything else goes to the tools.
func (s *Session) Handle(ev tool.Event) {
	if ev.Type == tool.EventKey {
		switch ev.Key {
		case KeyUndo:
			s.Undo()
			return
		case KeyRedo:
			s.Redo()
			return
		}
	}
	s.Tools.Handle(ev)
}

// Undo reverts the live stack to the previous history entry. A drag in
// progress is finished first so it lands in history.
func (s *Session) Undo() bool {
	s.Tools.Leave()
	return s.History.Undo()
}

// Redo reapplies the next history entry.
func (s *Session) Redo() bool {
	s.Tools.Leave()
	return s.History.Redo()
}

// Edit runs fn against the document and commits one history entry if fn
// succeeds. Use it for layer stack operations.
//
//	err := s.Edit(func(d *pixart.Document) error { return d.MergeDown(1) })
func (s *Session) Edit(fn func(*pixart.Document) error) error {
	s.Tools.Leave()
	if err := fn(s.Doc); err != nil {
		return err
	}
	s.History.Commit()
	return nil
}

// Import adds r as a new "Imported Image" layer scaled to the canvas and
// commits it.
func (s *Session) Import(r io.Reader) (*pixart.Layer, error) {
	var l *pixart.Layer
	err := s.Edit(func(d *pixart.Document) error {
		var err error
		l, err = project.ImportImage(d, r, s.scaler)
		return err
	})
	return l, err
}

// Frame operations store the live stack into the current frame before
// switching, so edits are never lost, and restart history from the newly
// loaded frame since snapshots belong to one frame's stack.

// SelectFrame makes frame i current. Undo history starts over at the
// loaded frame; edits made before the switch can no longer be undone.
func (s *Session) SelectFrame(i int) error {
	return s.frameOp(func(d *pixart.Document) error { return d.LoadFrame(i) })
}

// AddFrame appends a frame, blank or copied from the live stack, and makes
// it current. Like every frame operation it clears the undo history.
func (s *Session) AddFrame(copyCurrent bool) error {
	return s.frameOp(func(d *pixart.Document) error {
		d.AddFrame(copyCurrent)
		return nil
	})
}

// DuplicateFrame inserts a copy of frame i after it and makes it current.
// The undo history is cleared.
func (s *Session) DuplicateFrame(i int) error {
	return s.frameOp(func(d *pixart.Document) error {
		_, err := d.DuplicateFrame(i)
		return err
	})
}

// DeleteFrame removes frame i and clears the undo history.
func (s *Session) DeleteFrame(i int) error {
	return s.frameOp(func(d *pixart.Document) error { return d.DeleteFrame(i) })
}

func (s *Session) frameOp(fn func(*pixart.Document) error) error {
	s.Tools.Leave()
	s.Player.Stop()
	s.Doc.CaptureFrame()
	if err := fn(s.Doc); err != nil {
		return err
	}
	s.History.Clear()
	return nil
}

// Play starts playback after storing the live stack into the current frame.
func (s *Session) Play() {
	if s.Player.Playing() {
		return
	}
	s.Tools.Leave()
	s.Doc.CaptureFrame()
	s.Player.Play()
}

// Stop ends playback on the frame being shown and restarts history there.
func (s *Session) Stop() {
	if !s.Player.Playing() {
		return
	}
	s.Player.Stop()
	s.History.Clear()
}

// Render draws the live stack, with onion-skin ghosts while playing, onto
// surface.
func (s *Session) Render(surface render.Surface) {
	s.Renderer.Render(surface, s.Doc, s.Player.Ghosts())
}

// Present renders the document magnified by the renderer's pixel size.
func (s *Session) Present() *image.RGBA {
	return s.Renderer.Present(s.Doc, s.Player.Ghosts())
}
