// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster generates the pixel sets drawn by the editing tools.
//
// Generators return logical pixel coordinates and never touch a buffer;
// [Stamp] and [FloodFill] are the only functions that write pixels. Points
// outside a pixmap are clipped by [pixart.Pixmap.SetPixel], so generators may
// freely produce coordinates beyond the canvas edges.
//
// Algorithms:
//   - Brush footprint: square or circle of diameter size, row-major order
//   - Line: integer Bresenham, both endpoints included
//   - Flood fill: iterative 4-connected BFS with per-coordinate visited set
//   - Rectangles: outline without doubled corners, filled box
//   - Ellipse: integer midpoint ellipse inscribed in a bounding box
//     (A. Zingl, "A Rasterizing Algorithm for Drawing Curves", 2012)
package raster
