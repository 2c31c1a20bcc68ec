// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"

	"github.com/gogpu/pixart"
)

// FloodFill replaces the 4-connected region around (x, y) with c and returns
// the number of pixels written.
//
// The region is every pixel reachable from the start whose color matches the
// start color: exactly when tolerance is 0, otherwise when the mean absolute
// difference of the four channels is at most tolerance. When c equals the
// start color nothing is written. A start point outside pm fills nothing.
//
// The fill is an iterative breadth-first search; each coordinate is visited
// at most once, regardless of the colors written.
func FloodFill(pm *pixart.Pixmap, x, y int, c pixart.Color, tolerance int) int {
	if pm == nil || !pm.InBounds(x, y) {
		return 0
	}
	target := pm.GetPixel(x, y)
	if target == c {
		return 0
	}

	w, h := pm.Width(), pm.Height()
	visited := make([]bool, w*h)
	visited[y*w+x] = true
	queue := []image.Point{{X: x, Y: y}}
	dirs := [4]image.Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

	changed := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		pm.SetPixel(cur.X, cur.Y, c)
		changed++

		for _, d := range dirs {
			nx, ny := cur.X+d.X, cur.Y+d.Y
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			i := ny*w + nx
			if visited[i] {
				continue
			}
			visited[i] = true
			if Matches(pm.GetPixel(nx, ny), target, tolerance) {
				queue = append(queue, image.Pt(nx, ny))
			}
		}
	}
	return changed
}

// Matches reports whether a belongs to a fill region sampled at b. Tolerance
// 0 requires an exact match; otherwise the mean absolute per-channel
// difference over R, G, B and A must not exceed tolerance.
func Matches(a, b pixart.Color, tolerance int) bool {
	if tolerance <= 0 {
		return a == b
	}
	sum := absDiff(a.R, b.R) + absDiff(a.G, b.G) + absDiff(a.B, b.B) + absDiff(a.A, b.A)
	return float64(sum)/4 <= float64(tolerance)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
