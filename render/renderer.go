// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/pixart"
	"github.com/gogpu/pixart/anim"
)

// Default overlay colors.
var (
	DefaultGridColor      = pixart.Hex("#888888")
	DefaultSelectionColor = pixart.Color{R: 0, G: 123, B: 255, A: 204}
)

// Renderer draws a document's live layer stack onto a Surface.
//
// The zero Renderer is ready to use. Renderers hold no per-frame state and
// may be reused across documents.
type Renderer struct {
	// PixelSize is the magnification applied by Present. Values below 1
	// mean 1.
	PixelSize int

	// Grid draws cell boundaries in Present output.
	Grid      bool
	GridColor pixart.Color

	// Selection outlines the document selection in Present output.
	Selection      bool
	SelectionColor pixart.Color
}

// Render clears the canvas area of s, draws the onion-skin ghosts and then
// every visible layer bottom to top at its opacity.
//
// Each ghost frame is flattened into a scratch buffer without regard to its
// layers' visibility or opacity, and the buffer is drawn at the ghost alpha.
// Nothing in doc or ghosts is modified.
func (r *Renderer) Render(s Surface, doc *pixart.Document, ghosts []anim.Ghost) {
	s.ClearRect(doc.Bounds())

	var scratch *pixart.Pixmap
	for _, g := range ghosts {
		if g.Alpha <= 0 || len(g.Layers) == 0 {
			continue
		}
		if scratch == nil {
			scratch = s.NewBuffer(doc.Width(), doc.Height())
		} else {
			scratch.Clear(pixart.Transparent)
		}
		for _, l := range g.Layers {
			if l != nil {
				pixart.DrawOver(scratch, l.Pixels, 1)
			}
		}
		s.DrawPixmap(scratch, 0, 0, g.Alpha)
	}

	for _, l := range doc.Layers() {
		if !l.Visible || l.Opacity <= 0 || l.Pixels == nil {
			continue
		}
		s.DrawPixmap(l.Pixels, 0, 0, l.Opacity)
	}
}

// Present renders doc into a fresh image magnified by PixelSize and draws
// the enabled overlays on top.
func (r *Renderer) Present(doc *pixart.Document, ghosts []anim.Ghost) *image.RGBA {
	s := NewImageSurface(doc.Width(), doc.Height())
	r.Render(s, doc, ghosts)

	ps := max(r.PixelSize, 1)
	img := s.Scaled(ps)
	if r.Grid && ps > 1 {
		drawGrid(img, ps, orDefault(r.GridColor, DefaultGridColor))
	}
	if sel, ok := doc.Selection(); r.Selection && ok {
		outline(img, image.Rectangle{Min: sel.Min.Mul(ps), Max: sel.Max.Mul(ps)},
			orDefault(r.SelectionColor, DefaultSelectionColor))
	}
	return img
}

func orDefault(c, def pixart.Color) pixart.Color {
	if c.A == 0 {
		return def
	}
	return c
}

// drawGrid draws one-pixel lines on the interior cell boundaries.
func drawGrid(img *image.RGBA, cell int, c pixart.Color) {
	b := img.Bounds()
	src := image.NewUniform(c)
	for x := b.Min.X + cell; x < b.Max.X; x += cell {
		draw.Draw(img, image.Rect(x, b.Min.Y, x+1, b.Max.Y), src, image.Point{}, draw.Over)
	}
	for y := b.Min.Y + cell; y < b.Max.Y; y += cell {
		draw.Draw(img, image.Rect(b.Min.X, y, b.Max.X, y+1), src, image.Point{}, draw.Over)
	}
}

// outline draws the one-pixel border just inside r.
func outline(img *image.RGBA, r image.Rectangle, c pixart.Color) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1),
		image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1),
	}
	for _, e := range edges {
		draw.Draw(img, e, src, image.Point{}, draw.Over)
	}
}
