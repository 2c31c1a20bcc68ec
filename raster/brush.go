// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"

	"github.com/gogpu/pixart"
)

// BrushPixels returns the footprint of a brush of diameter size centered at
// (cx, cy). With radius = size/2 every offset in [-radius, radius]^2 is
// considered; a circle keeps only offsets with dx^2+dy^2 <= (radius+0.5)^2.
// Points are ordered row-major, by dy then dx. Sizes below 1 are treated as 1.
func BrushPixels(cx, cy, size int, shape pixart.BrushShape) []image.Point {
	radius := max(size, 1) / 2
	limit := (float64(radius) + 0.5) * (float64(radius) + 0.5)

	pts := make([]image.Point, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if shape == pixart.ShapeCircle && float64(dx*dx+dy*dy) > limit {
				continue
			}
			pts = append(pts, image.Pt(cx+dx, cy+dy))
		}
	}
	return pts
}

// Stamp writes c to every point of pts. Points outside pm are ignored.
func Stamp(pm *pixart.Pixmap, pts []image.Point, c pixart.Color) {
	for _, p := range pts {
		pm.SetPixel(p.X, p.Y, c)
	}
}

// StampBrush writes the brush footprint centered at (cx, cy).
func StampBrush(pm *pixart.Pixmap, cx, cy, size int, shape pixart.BrushShape, c pixart.Color) {
	Stamp(pm, BrushPixels(cx, cy, size, shape), c)
}

// SmoothStroke walks the Bresenham line from (x0, y0) to (x1, y1) and calls
// plot with the brush footprint at every point, so fast pointer movement
// leaves no gaps. Overlapping footprints are reported once per line point.
func SmoothStroke(x0, y0, x1, y1, size int, shape pixart.BrushShape, plot func(footprint []image.Point)) {
	for _, p := range LinePixels(x0, y0, x1, y1) {
		plot(BrushPixels(p.X, p.Y, size, shape))
	}
}

// StrokeLine draws a smooth stroke of color c onto pm.
func StrokeLine(pm *pixart.Pixmap, x0, y0, x1, y1, size int, shape pixart.BrushShape, c pixart.Color) {
	SmoothStroke(x0, y0, x1, y1, size, shape, func(fp []image.Point) {
		Stamp(pm, fp, c)
	})
}
