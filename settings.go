package pixart

import "fmt"

// Palette returns a copy of the palette.
func (d *Document) Palette() []Color {
	out := make([]Color, len(d.palette))
	copy(out, d.palette)
	return out
}

// SetPalette replaces the palette. Duplicates are dropped, first occurrence wins.
func (d *Document) SetPalette(colors []Color) {
	seen := make(map[Color]bool, len(colors))
	out := make([]Color, 0, len(colors))
	for _, c := range colors {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	d.palette = out
}

// AddPaletteColor appends c to the palette.
func (d *Document) AddPaletteColor(c Color) error {
	for _, p := range d.palette {
		if p == c {
			return d.reject(ErrDuplicateColor, "add palette color", "color", c.Hex())
		}
	}
	d.palette = append(d.palette, c)
	return nil
}

// RemovePaletteColor removes c from the palette.
func (d *Document) RemovePaletteColor(c Color) error {
	for i, p := range d.palette {
		if p == c {
			d.palette = append(d.palette[:i], d.palette[i+1:]...)
			return nil
		}
	}
	return d.reject(ErrColorNotFound, "remove palette color", "color", c.Hex())
}

// Tool returns the active tool.
func (d *Document) Tool() Tool { return d.tool }

// SetTool selects the active tool.
func (d *Document) SetTool(t Tool) error {
	if !t.Valid() {
		return d.reject(fmt.Errorf("unknown tool %d", uint8(t)), "set tool")
	}
	d.tool = t
	return nil
}

// ActiveColor returns the drawing color.
func (d *Document) ActiveColor() Color { return d.color }

// SetActiveColor sets the drawing color.
func (d *Document) SetActiveColor(c Color) { d.color = c }

// BrushSize returns the brush diameter in pixels.
func (d *Document) BrushSize() int { return d.brushSize }

// SetBrushSize sets the brush diameter. Sizes below 1 become 1.
func (d *Document) SetBrushSize(size int) { d.brushSize = max(size, 1) }

// BrushShape returns the brush footprint shape.
func (d *Document) BrushShape() BrushShape { return d.brushShape }

// SetBrushShape sets the brush footprint shape. Unknown shapes are ignored.
func (d *Document) SetBrushShape(s BrushShape) {
	if s == ShapeSquare || s == ShapeCircle {
		d.brushShape = s
	}
}

// FillTolerance returns the flood fill tolerance in [0, 255].
func (d *Document) FillTolerance() int { return d.tolerance }

// SetFillTolerance sets the flood fill tolerance, clamped to [0, 255].
func (d *Document) SetFillTolerance(t int) { d.tolerance = min(max(t, 0), 255) }
