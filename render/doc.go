// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws documents onto display surfaces.
//
// The editing core needs only three primitives from a platform graphics
// layer, captured by [Surface]: allocate a blank buffer, composite a buffer
// at an offset with a global alpha, and clear a rectangle. [ImageSurface]
// implements them in memory over *image.RGBA so documents can be rendered
// without a window.
//
// # Usage
//
//	s := render.NewImageSurface(doc.Width(), doc.Height())
//	var r render.Renderer
//	r.Render(s, doc, player.Ghosts())
//	img := s.Image()
//
// [Renderer.Present] additionally magnifies the result by an integer pixel
// size with nearest-neighbor sampling and overlays the pixel grid and the
// selection outline.
package render
