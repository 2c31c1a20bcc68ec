// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/gogpu/pixart"
)

// Surface is a display target for document rendering.
//
// Implementations clip every operation to their own bounds.
type Surface interface {
	// NewBuffer allocates a fully transparent width x height buffer that
	// can later be passed to DrawPixmap.
	NewBuffer(width, height int) *pixart.Pixmap

	// DrawPixmap composites pm with its top-left corner at (x, y) using the
	// source-over operator, scaling every source alpha by alpha in [0, 1].
	DrawPixmap(pm *pixart.Pixmap, x, y int, alpha float64)

	// ClearRect sets every pixel in r to transparent.
	ClearRect(r image.Rectangle)
}
