// Package tool implements the editing tools as pointer-event state machines.
//
// Every tool shares the same shape: Idle until a press, Active while a drag
// is in progress, Idle again after release or leave. Hooks a tool does not
// need are inherited as no-ops from Base. Tools edit the document's active
// layer in place and commit one history entry per finished operation.
//
// Leaving the canvas mid-drag finishes the operation exactly like a release;
// there is no rollback of an in-progress stroke. Only Escape on a shape tool
// abandons the drag, and at that point nothing has been written yet.
//
// Coordinates are logical pixels. [Manager] converts screen coordinates
// through a viewport and dispatches to the tool selected in the document.
package tool

import (
	"image"

	"github.com/gogpu/pixart"
)

// Committer records a finished edit. history.History implements it.
type Committer interface {
	Commit()
}

// Key identifies a keyboard key delivered to the active tool.
type Key string

// Keys understood by the built-in tools.
const (
	KeyEscape       Key = "Escape"
	KeyBracketLeft  Key = "["
	KeyBracketRight Key = "]"
)

// Tool is the capability set shared by every editing tool.
type Tool interface {
	Press(p image.Point)
	Move(p image.Point)
	Release(p image.Point)
	Leave()
	Key(k Key)

	// Active reports whether a drag is in progress.
	Active() bool
}

// Env is what a tool edits: the document and where to commit finished edits.
// History may be nil, in which case edits are not recorded.
type Env struct {
	Doc     *pixart.Document
	History Committer
}

// Base provides no-op hooks and the Idle/Active state. Tools embed it and
// override the hooks they need.
type Base struct {
	env    *Env
	active bool
}

// NewBase returns a Base bound to env.
func NewBase(env *Env) Base { return Base{env: env} }

// Press does nothing.
func (b *Base) Press(image.Point) {}

// Move does nothing.
func (b *Base) Move(image.Point) {}

// Release does nothing.
func (b *Base) Release(image.Point) {}

// Leave does nothing.
func (b *Base) Leave() {}

// Key does nothing.
func (b *Base) Key(Key) {}

// Active reports whether a drag is in progress.
func (b *Base) Active() bool { return b.active }

// Doc returns the edited document.
func (b *Base) Doc() *pixart.Document { return b.env.Doc }

// layer returns the active layer, logging when there is none.
func (b *Base) layer(op string) *pixart.Layer {
	l := b.env.Doc.ActiveLayer()
	if l == nil {
		pixart.Logger().Debug("tool: no active layer", "op", op)
	}
	return l
}

// commit records one history entry.
func (b *Base) commit() {
	if b.env.History != nil {
		b.env.History.Commit()
	}
}
