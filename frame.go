package pixart

import (
	"fmt"
	"time"
)

// Frame is one animation frame: a display duration and its own deep copy of
// a layer stack. Frames never share buffers with each other, with the live
// stack or with history.
type Frame struct {
	ID       int64
	Name     string
	Duration time.Duration
	Layers   []*Layer
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := *f
	c.Layers = CloneLayers(f.Layers)
	return &c
}

// Frames returns the frames in playback order. The slice is a copy; the
// frames are the document's own.
func (d *Document) Frames() []*Frame {
	out := make([]*Frame, len(d.frames))
	copy(out, d.frames)
	return out
}

// FrameCount returns the number of frames.
func (d *Document) FrameCount() int { return len(d.frames) }

// Frame returns frame i, or nil.
func (d *Document) Frame(i int) *Frame {
	if i < 0 || i >= len(d.frames) {
		return nil
	}
	return d.frames[i]
}

// CurrentFrameIndex returns the index of the displayed frame.
func (d *Document) CurrentFrameIndex() int { return d.current }

// CurrentFrame returns the displayed frame.
func (d *Document) CurrentFrame() *Frame { return d.Frame(d.current) }

// FrameDuration returns the duration given to new frames.
func (d *Document) FrameDuration() time.Duration { return d.frameDuration }

// AddFrame appends a new frame and makes it current. With copyCurrent the
// frame holds a deep copy of the live stack; otherwise a single blank layer.
func (d *Document) AddFrame(copyCurrent bool) *Frame {
	var snapshot []*Layer
	if copyCurrent {
		snapshot = CloneLayers(d.layers)
	} else {
		snapshot = []*Layer{NewLayer(d.NewID(), "Blank Layer", d.width, d.height)}
	}
	f := &Frame{
		ID:       d.NewID(),
		Name:     fmt.Sprintf("Frame %d", len(d.frames)+1),
		Duration: d.frameDuration,
		Layers:   snapshot,
	}
	d.frames = append(d.frames, f)
	d.loadFrame(len(d.frames) - 1)
	return f
}

// DuplicateFrame inserts a deep copy of frame i right after it and makes the
// copy current. Copied layers receive new ids.
func (d *Document) DuplicateFrame(i int) (*Frame, error) {
	src := d.Frame(i)
	if src == nil {
		return nil, d.reject(ErrIndexOutOfRange, "duplicate frame", "index", i)
	}
	f := src.Clone()
	f.ID = d.NewID()
	f.Name = src.Name + " Copy"
	for _, l := range f.Layers {
		l.ID = d.NewID()
	}
	d.frames = insertAt(d.frames, i+1, f)
	d.loadFrame(i + 1)
	return f, nil
}

// DeleteFrame removes frame i. The last remaining frame cannot be deleted.
// The current index stays where it is when still valid, otherwise it moves
// to the last frame; the resulting current frame is loaded.
func (d *Document) DeleteFrame(i int) error {
	if len(d.frames) <= 1 {
		return d.reject(ErrLastFrame, "delete frame", "index", i)
	}
	if i < 0 || i >= len(d.frames) {
		return d.reject(ErrIndexOutOfRange, "delete frame", "index", i)
	}
	d.frames = append(d.frames[:i], d.frames[i+1:]...)
	if d.current >= len(d.frames) {
		d.current = len(d.frames) - 1
	}
	d.loadFrame(d.current)
	return nil
}

// LoadFrame makes frame i current and replaces the live stack with deep
// copies of its layers. The first layer becomes active.
func (d *Document) LoadFrame(i int) error {
	if d.Frame(i) == nil {
		return d.reject(ErrIndexOutOfRange, "load frame", "index", i)
	}
	d.loadFrame(i)
	return nil
}

func (d *Document) loadFrame(i int) {
	d.current = i
	d.layers = CloneLayers(d.frames[i].Layers)
	d.active = 0
}

// MoveFrame moves frame from to index to. The current index follows the
// current frame; the live stack is untouched.
func (d *Document) MoveFrame(from, to int) error {
	n := len(d.frames)
	if from < 0 || from >= n || to < 0 || to >= n {
		return d.reject(ErrIndexOutOfRange, "move frame", "from", from, "to", to)
	}
	if from == to {
		return nil
	}
	d.frames = moveItem(d.frames, from, to)
	d.current = followMove(d.current, from, to)
	return nil
}

// CaptureFrame stores a deep copy of the live stack into the current frame.
func (d *Document) CaptureFrame() {
	d.frames[d.current].Layers = CloneLayers(d.layers)
}

// SetFrameDuration sets how long frame i is displayed during playback.
func (d *Document) SetFrameDuration(i int, dur time.Duration) error {
	f := d.Frame(i)
	if f == nil {
		return d.reject(ErrIndexOutOfRange, "set frame duration", "index", i)
	}
	if dur <= 0 {
		return d.reject(ErrInvalidDuration, "set frame duration", "duration", dur)
	}
	f.Duration = dur
	return nil
}

// RenameFrame renames frame i. Blank names are ignored.
func (d *Document) RenameFrame(i int, name string) error {
	f := d.Frame(i)
	if f == nil {
		return d.reject(ErrIndexOutOfRange, "rename frame", "index", i)
	}
	f.Name = normalizeName(name, f.Name)
	return nil
}
