// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/pixart"
)

// ImageSurface is a CPU-based surface that renders to an *image.RGBA.
//
// ImageSurface is not safe for concurrent use.
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA
}

// NewImageSurface creates a transparent surface with the given dimensions.
// Dimensions below 1 are raised to 1.
func NewImageSurface(width, height int) *ImageSurface {
	width = max(width, 1)
	height = max(height, 1)
	return &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Bounds returns the surface rectangle in surface coordinates.
func (s *ImageSurface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// Image returns the underlying image. It is not a copy.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// NewBuffer implements Surface.
func (s *ImageSurface) NewBuffer(width, height int) *pixart.Pixmap {
	return pixart.NewPixmap(max(width, 0), max(height, 0))
}

// DrawPixmap implements Surface.
func (s *ImageSurface) DrawPixmap(pm *pixart.Pixmap, x, y int, alpha float64) {
	if pm == nil || alpha <= 0 {
		return
	}
	dst := pm.Bounds().Add(image.Pt(x, y)).Intersect(s.Bounds())
	if dst.Empty() {
		return
	}
	src := pm.ToImage()
	sp := dst.Min.Sub(image.Pt(x, y))
	dst = dst.Add(s.img.Bounds().Min)
	if alpha >= 1 {
		draw.Draw(s.img, dst, src, sp, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha16{A: uint16(alpha*0xffff + 0.5)})
	draw.DrawMask(s.img, dst, src, sp, mask, image.Point{}, draw.Over)
}

// ClearRect implements Surface.
func (s *ImageSurface) ClearRect(r image.Rectangle) {
	r = r.Intersect(s.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r.Add(s.img.Bounds().Min), image.Transparent, image.Point{}, draw.Src)
}

// Clear clears the whole surface.
func (s *ImageSurface) Clear() {
	s.ClearRect(s.Bounds())
}

// Snapshot returns the surface content as a straight-alpha pixmap.
func (s *ImageSurface) Snapshot() *pixart.Pixmap {
	return pixart.FromImage(s.img)
}

// Scaled returns a copy of the surface magnified by factor with
// nearest-neighbor sampling, so every pixel becomes a factor x factor block.
// A factor below 1 is treated as 1.
func (s *ImageSurface) Scaled(factor int) *image.RGBA {
	factor = max(factor, 1)
	out := image.NewRGBA(image.Rect(0, 0, s.width*factor, s.height*factor))
	draw.NearestNeighbor.Scale(out, out.Bounds(), s.img, s.img.Bounds(), draw.Src, nil)
	return out
}
