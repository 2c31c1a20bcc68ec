// Package viewport maps between screen coordinates and logical pixels.
//
// A logical pixel is drawn as a square of Zoom*PixelSize screen units. The
// canvas is placed at its on-screen origin plus the pan offset:
//
//	screen = origin + pan + logical*Zoom*PixelSize
//
// Pan is measured in screen units; PixelSize is the base magnification,
// independent of zoom.
package viewport

import (
	"math"

	"github.com/gogpu/pixart"
)

// Zoom limits and defaults.
const (
	MinZoom          = 0.1
	MaxZoom          = 5.0
	DefaultPixelSize = 10
	WheelStep        = 1.1
)

// Viewport holds the zoom, pan and base pixel size of one canvas view.
// The zero value is not usable; create viewports with New.
type Viewport struct {
	zoom      float64
	panX      float64
	panY      float64
	pixelSize float64
	originX   float64
	originY   float64
}

// New returns a viewport at zoom 1 with no pan. A pixelSize below 1 selects
// DefaultPixelSize.
func New(pixelSize float64) *Viewport {
	v := &Viewport{zoom: 1}
	v.SetPixelSize(pixelSize)
	return v
}

// Zoom returns the zoom level.
func (v *Viewport) Zoom() float64 { return v.zoom }

// Pan returns the pan offset in screen units.
func (v *Viewport) Pan() (x, y float64) { return v.panX, v.panY }

// PixelSize returns the base magnification.
func (v *Viewport) PixelSize() float64 { return v.pixelSize }

// Origin returns the screen position of the canvas element.
func (v *Viewport) Origin() (x, y float64) { return v.originX, v.originY }

// Scale returns the size of one logical pixel in screen units.
func (v *Viewport) Scale() float64 { return v.zoom * v.pixelSize }

// SetZoom sets the zoom level, clamped to [MinZoom, MaxZoom].
func (v *Viewport) SetZoom(z float64) {
	v.zoom = clampZoom(z)
}

// SetPan sets the pan offset.
func (v *Viewport) SetPan(x, y float64) {
	v.panX, v.panY = x, y
}

// PanBy moves the pan offset.
func (v *Viewport) PanBy(dx, dy float64) {
	v.panX += dx
	v.panY += dy
}

// SetPixelSize sets the base magnification. Values below 1 select
// DefaultPixelSize.
func (v *Viewport) SetPixelSize(size float64) {
	if !(size >= 1) {
		size = DefaultPixelSize
	}
	v.pixelSize = size
}

// SetOrigin records where the canvas element sits on screen. Pointer
// coordinates passed to ScreenToLogical are relative to the same space.
func (v *Viewport) SetOrigin(x, y float64) {
	v.originX, v.originY = x, y
}

// Reset restores zoom 1 and removes the pan.
func (v *Viewport) Reset() {
	v.zoom = 1
	v.panX, v.panY = 0, 0
}

// Transform returns the logical to screen mapping: scale by zoom and pixel
// size, then shift by the pan and the canvas origin.
func (v *Viewport) Transform() Transform {
	scale := Transform{S: v.Scale()}
	shift := Transform{S: 1, TX: v.originX + v.panX, TY: v.originY + v.panY}
	return scale.Then(shift)
}

// ScreenToLogical returns the logical pixel under a screen point. The result
// may lie outside the canvas; callers clip.
func (v *Viewport) ScreenToLogical(sx, sy float64) (x, y int) {
	lx, ly := v.logical(sx, sy)
	return int(math.Floor(lx)), int(math.Floor(ly))
}

// logical returns the unrounded logical position of a screen point.
func (v *Viewport) logical(sx, sy float64) (float64, float64) {
	s := v.Scale()
	return (sx - v.originX - v.panX) / s, (sy - v.originY - v.panY) / s
}

// LogicalToScreen returns the screen position of a logical point. The top
// left corner of pixel (x, y) is LogicalToScreen(x, y).
func (v *Viewport) LogicalToScreen(x, y float64) (sx, sy float64) {
	return v.Transform().Apply(x, y)
}

// ZoomAt multiplies the zoom by factor, clamped to the zoom limits, and moves
// the pan so the logical point under (sx, sy) stays under it.
func (v *Viewport) ZoomAt(sx, sy, factor float64) {
	if !(factor > 0) {
		return
	}
	lx, ly := v.logical(sx, sy)
	v.zoom = clampZoom(v.zoom * factor)
	s := v.Scale()
	v.panX = sx - v.originX - lx*s
	v.panY = sy - v.originY - ly*s
	pixart.Logger().Debug("viewport zoom", "zoom", v.zoom, "panX", v.panX, "panY", v.panY)
}

// Wheel zooms in one WheelStep for a negative deltaY and out for a positive
// one, anchored at (sx, sy).
func (v *Viewport) Wheel(sx, sy, deltaY float64) {
	switch {
	case deltaY < 0:
		v.ZoomAt(sx, sy, WheelStep)
	case deltaY > 0:
		v.ZoomAt(sx, sy, 1/WheelStep)
	}
}

// DisplaySize returns the on-screen size of a width x height canvas.
func (v *Viewport) DisplaySize(width, height int) (w, h float64) {
	s := v.Scale()
	return float64(width) * s, float64(height) * s
}

func clampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	return min(max(z, MinZoom), MaxZoom)
}
