// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "image"

// box normalizes two corner points into inclusive min/max corners.
func box(a, b image.Point) (lo, hi image.Point) {
	return image.Pt(min(a.X, b.X), min(a.Y, b.Y)), image.Pt(max(a.X, b.X), max(a.Y, b.Y))
}

// FilledRectPixels returns every pixel of the box spanned by corners a and b,
// both inclusive, row-major.
func FilledRectPixels(a, b image.Point) []image.Point {
	lo, hi := box(a, b)
	pts := make([]image.Point, 0, (hi.X-lo.X+1)*(hi.Y-lo.Y+1))
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			pts = append(pts, image.Pt(x, y))
		}
	}
	return pts
}

// RectPixels returns the outline of the box spanned by corners a and b. Each
// boundary pixel appears exactly once; degenerate boxes (a single row or
// column) yield that row or column.
func RectPixels(a, b image.Point) []image.Point {
	lo, hi := box(a, b)
	if lo.X == hi.X || lo.Y == hi.Y {
		return FilledRectPixels(lo, hi)
	}

	pts := make([]image.Point, 0, 2*(hi.X-lo.X+1)+2*(hi.Y-lo.Y-1))
	for x := lo.X; x <= hi.X; x++ {
		pts = append(pts, image.Pt(x, lo.Y))
	}
	for y := lo.Y + 1; y < hi.Y; y++ {
		pts = append(pts, image.Pt(lo.X, y), image.Pt(hi.X, y))
	}
	for x := lo.X; x <= hi.X; x++ {
		pts = append(pts, image.Pt(x, hi.Y))
	}
	return pts
}

// EllipsePixels returns the outline of the ellipse inscribed in the box
// spanned by corners a and b, each pixel once.
func EllipsePixels(a, b image.Point) []image.Point {
	lo, hi := box(a, b)
	x0, y0, x1, y1 := int64(lo.X), int64(lo.Y), int64(hi.X), int64(hi.Y)

	rx, ry := x1-x0, y1-y0
	odd := ry & 1
	dx := 4 * (1 - rx) * ry * ry
	dy := 4 * (odd + 1) * rx * rx
	err := dx + dy + odd*rx*rx

	y0 += (ry + 1) / 2
	y1 = y0 - odd
	stepX := 8 * rx * rx
	stepY := 8 * ry * ry

	set := newPointSet(int(2 * (rx + ry + 2)))
	for {
		set.add(x1, y0)
		set.add(x0, y0)
		set.add(x0, y1)
		set.add(x1, y1)
		e2 := 2 * err
		if e2 <= dy {
			y0++
			y1--
			dy += stepX
			err += dy
		}
		if e2 >= dx || 2*err > dy {
			x0++
			x1--
			dx += stepY
			err += dx
		}
		if x0 > x1 {
			break
		}
	}
	// Flat ellipses finish the tips.
	for y0-y1 <= ry {
		set.add(x0-1, y0)
		set.add(x1+1, y0)
		set.add(x0-1, y1)
		set.add(x1+1, y1)
		y0++
		y1--
	}
	return set.pts
}

// pointSet collects points in insertion order without duplicates.
type pointSet struct {
	seen map[image.Point]struct{}
	pts  []image.Point
}

func newPointSet(capacity int) *pointSet {
	return &pointSet{
		seen: make(map[image.Point]struct{}, capacity),
		pts:  make([]image.Point, 0, capacity),
	}
}

func (s *pointSet) add(x, y int64) {
	p := image.Pt(int(x), int(y))
	if _, ok := s.seen[p]; ok {
		return
	}
	s.seen[p] = struct{}{}
	s.pts = append(s.pts, p)
}
