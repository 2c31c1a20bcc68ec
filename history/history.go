// Package history implements linear undo/redo over snapshots of a document's
// live layer stack.
//
// Every entry is a deep copy of the whole stack, including pixel buffers and
// layer metadata. Entries never share memory with the document: Commit copies
// out, Undo and Redo copy back in.
//
//	h := history.New(doc, history.DefaultMaxEntries) // seeds a baseline
//	doc.ActiveLayer().Pixels.SetPixel(1, 1, pixart.Red)
//	h.Commit()
//	h.Undo() // pixel (1,1) is transparent again
package history

import (
	"github.com/gogpu/pixart"
)

// DefaultMaxEntries is the default cap on the number of stored snapshots.
const DefaultMaxEntries = 50

// History is an undo/redo stack bound to one document.
//
// The stack always holds at least one entry after New or Clear; the entry at
// Index is the state the live stack was last committed to or restored from.
type History struct {
	doc     *pixart.Document
	entries []entry
	index   int
	max     int
}

// entry is one snapshot: the layer stack and the canvas size it was taken at.
type entry struct {
	width, height int
	layers        []*pixart.Layer
}

// New creates a history for doc holding at most maxEntries snapshots and
// commits the document's current state as the baseline. A maxEntries below 1
// selects DefaultMaxEntries.
func New(doc *pixart.Document, maxEntries int) *History {
	if maxEntries < 1 {
		maxEntries = DefaultMaxEntries
	}
	h := &History{doc: doc, max: maxEntries}
	h.Clear()
	return h
}

// Commit records the live layer stack as a new entry. Entries after the
// current one are discarded. When the cap is exceeded the oldest entry is
// evicted, so the new entry stays addressable as the current one.
func (h *History) Commit() {
	e := entry{width: h.doc.Width(), height: h.doc.Height(), layers: h.doc.Snapshot()}
	h.entries = append(h.entries[:h.index+1], e)
	if len(h.entries) > h.max {
		// Drop the reference so the evicted buffers can be collected.
		h.entries[0] = entry{}
		h.entries = h.entries[1:]
	}
	h.index = len(h.entries) - 1
	pixart.Logger().Debug("history commit", "entries", len(h.entries), "index", h.index)
}

// Undo restores the previous entry. It reports whether anything changed.
func (h *History) Undo() bool {
	if !h.CanUndo() {
		return false
	}
	h.index--
	h.apply()
	return true
}

// Redo restores the next entry. It reports whether anything changed.
func (h *History) Redo() bool {
	if !h.CanRedo() {
		return false
	}
	h.index++
	h.apply()
	return true
}

// Clear drops every entry and commits the current state as the new baseline.
func (h *History) Clear() {
	h.entries = nil
	h.index = -1
	h.Commit()
}

// CanUndo reports whether Undo would change the document.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether Redo would change the document.
func (h *History) CanRedo() bool { return h.index < len(h.entries)-1 }

// Len returns the number of stored entries.
func (h *History) Len() int { return len(h.entries) }

// Index returns the position of the current entry.
func (h *History) Index() int { return h.index }

// Max returns the entry cap.
func (h *History) Max() int { return h.max }

// apply restores the canvas size of the current entry before its layers, so
// undoing a resize brings the old size back with the old pixels.
func (h *History) apply() {
	e := h.entries[h.index]
	if e.width != h.doc.Width() || e.height != h.doc.Height() {
		if err := h.doc.Resize(e.width, e.height); err != nil {
			return
		}
	}
	h.doc.RestoreLayers(e.layers)
	pixart.Logger().Debug("history restore", "index", h.index, "entries", len(h.entries))
}
