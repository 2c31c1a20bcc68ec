package tool

import (
	"image"
	"math"

	"github.com/gogpu/pixart"
	"github.com/gogpu/pixart/viewport"
)

// EventType is the kind of an input event.
type EventType uint8

// Event types.
const (
	EventPress EventType = iota
	EventMove
	EventRelease
	EventLeave
	EventKey
)

// Event is one input event in screen coordinates. Key is set for EventKey.
type Event struct {
	Type EventType
	X, Y float64
	Key  Key
}

// Manager owns one instance of every tool and routes events to the tool
// selected in the document.
//
// A drag stays with the tool that started it: switching tools mid-drag does
// not strand the stroke, the next release or leave still finishes it.
type Manager struct {
	env     *Env
	view    *viewport.Viewport
	tools   [pixart.ToolCount]Tool
	engaged Tool
}

// NewManager creates the tools for doc. view converts screen coordinates;
// with a nil view, event coordinates are logical pixels. history may be nil.
func NewManager(doc *pixart.Document, view *viewport.Viewport, history Committer) *Manager {
	env := &Env{Doc: doc, History: history}
	m := &Manager{env: env, view: view}
	m.tools = [pixart.ToolCount]Tool{
		pixart.ToolBrush:           NewBrush(env),
		pixart.ToolEraser:          NewEraser(env),
		pixart.ToolFill:            NewFill(env),
		pixart.ToolEyedropper:      NewEyedropper(env),
		pixart.ToolLine:            NewShape(env, KindLine),
		pixart.ToolRectangle:       NewShape(env, KindRectangle),
		pixart.ToolFilledRectangle: NewShape(env, KindFilledRectangle),
		pixart.ToolEllipse:         NewShape(env, KindEllipse),
		pixart.ToolSelection:       NewSelection(env),
	}
	return m
}

// Tool returns the instance implementing t, or nil for an invalid t.
func (m *Manager) Tool(t pixart.Tool) Tool {
	if !t.Valid() {
		return nil
	}
	return m.tools[t]
}

// Current returns the tool selected in the document.
func (m *Manager) Current() Tool {
	return m.Tool(m.env.Doc.Tool())
}

// Engaged returns the tool with a drag in progress, or nil.
func (m *Manager) Engaged() Tool { return m.engaged }

// Handle converts ev to logical coordinates and dispatches it.
func (m *Manager) Handle(ev Event) {
	p := m.logical(ev.X, ev.Y)
	switch ev.Type {
	case EventPress:
		m.Press(p)
	case EventMove:
		m.Move(p)
	case EventRelease:
		m.Release(p)
	case EventLeave:
		m.Leave()
	case EventKey:
		m.Key(ev.Key)
	}
}

// Press starts an operation with the current tool.
func (m *Manager) Press(p image.Point) {
	if m.engaged != nil {
		// A press without a release: finish the previous drag first.
		m.Leave()
	}
	t := m.Current()
	if t == nil {
		return
	}
	t.Press(p)
	if t.Active() {
		m.engaged = t
	}
}

// Move forwards pointer movement to the engaged tool.
func (m *Manager) Move(p image.Point) {
	if m.engaged != nil {
		m.engaged.Move(p)
	}
}

// Release finishes the drag in progress.
func (m *Manager) Release(p image.Point) {
	if t := m.engaged; t != nil {
		m.engaged = nil
		t.Release(p)
	}
}

// Leave finishes the drag in progress as if released.
func (m *Manager) Leave() {
	if t := m.engaged; t != nil {
		m.engaged = nil
		t.Leave()
	}
}

// Key forwards a key to the engaged tool, or to the current tool when idle.
func (m *Manager) Key(k Key) {
	t := m.engaged
	if t == nil {
		t = m.Current()
	}
	if t == nil {
		return
	}
	t.Key(k)
	if m.engaged != nil && !m.engaged.Active() {
		m.engaged = nil
	}
}

func (m *Manager) logical(x, y float64) image.Point {
	if m.view == nil {
		return image.Pt(int(math.Floor(x)), int(math.Floor(y)))
	}
	lx, ly := m.view.ScreenToLogical(x, y)
	return image.Pt(lx, ly)
}
