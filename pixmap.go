package pixart

import (
	"bytes"
	"image"
	"image/color"
)

// Pixmap is a width x height grid of straight-alpha RGBA pixels stored row
// by row, four bytes per pixel. Pixel (x, y) starts at byte (y*width+x)*4.
//
// Pixmap implements image.Image with the NRGBA color model.
type Pixmap struct {
	width, height int
	data          []uint8
}

// NewPixmap returns a fully transparent pixmap.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{width: width, height: height, data: make([]uint8, width*height*4)}
}

// Width returns the number of columns.
func (p *Pixmap) Width() int { return p.width }

// Height returns the number of rows.
func (p *Pixmap) Height() int { return p.height }

// Data returns the backing bytes. Writes through it are visible in p.
func (p *Pixmap) Data() []uint8 { return p.data }

// InBounds reports whether (x, y) addresses a pixel of p.
func (p *Pixmap) InBounds(x, y int) bool {
	return x >= 0 && x < p.width && y >= 0 && y < p.height
}

func (p *Pixmap) offset(x, y int) int { return (y*p.width + x) * 4 }

// SetPixel writes c at (x, y). Writes outside the pixmap are dropped, so
// brushes may overhang the canvas edge.
func (p *Pixmap) SetPixel(x, y int, c Color) {
	if p.InBounds(x, y) {
		i := p.offset(x, y)
		copy(p.data[i:i+4], []uint8{c.R, c.G, c.B, c.A})
	}
}

// GetPixel reads the pixel at (x, y). Reading outside the pixmap is a caller
// error and panics; use InBounds to check.
func (p *Pixmap) GetPixel(x, y int) Color {
	if !p.InBounds(x, y) {
		panic("pixart: GetPixel out of bounds")
	}
	px := p.data[p.offset(x, y):]
	return Color{R: px[0], G: px[1], B: px[2], A: px[3]}
}

// Clear sets every pixel to c.
func (p *Pixmap) Clear(c Color) {
	if len(p.data) == 0 {
		return
	}
	copy(p.data, []uint8{c.R, c.G, c.B, c.A})
	for n := 4; n < len(p.data); n *= 2 {
		copy(p.data[n:], p.data[:n])
	}
}

// Clone returns a deep copy.
func (p *Pixmap) Clone() *Pixmap {
	return &Pixmap{width: p.width, height: p.height, data: bytes.Clone(p.data)}
}

// Equal reports whether p and o have the same size and pixels. Two nil
// pixmaps are equal.
func (p *Pixmap) Equal(o *Pixmap) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.width == o.width && p.height == o.height && bytes.Equal(p.data, o.data)
}

// Resize returns a width x height copy of p anchored at the origin. Content
// outside the new size is cut off and new area is transparent; nothing is
// scaled.
func (p *Pixmap) Resize(width, height int) *Pixmap {
	out := NewPixmap(width, height)
	row := min(p.width, width) * 4
	for y := range min(p.height, height) {
		copy(out.data[y*width*4:], p.data[y*p.width*4:y*p.width*4+row])
	}
	return out
}

// ToImage copies p into a new image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(p.Bounds())
	copy(img.Pix, p.data)
	return img
}

// FromImage copies img into a new pixmap the size of its bounds. NRGBA
// images are copied row by row; anything else goes through FromColor.
func FromImage(img image.Image) *Pixmap {
	b := img.Bounds()
	pm := NewPixmap(b.Dx(), b.Dy())
	row := b.Dx() * 4

	if n, ok := img.(*image.NRGBA); ok {
		for y := range b.Dy() {
			off := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(pm.data[y*row:], n.Pix[off:off+row])
		}
		return pm
	}
	for y := range b.Dy() {
		for x := range b.Dx() {
			pm.SetPixel(x, y, FromColor(img.At(b.Min.X+x, b.Min.Y+y)))
		}
	}
	return pm
}

// At implements image.Image. Outside the bounds it returns Transparent.
func (p *Pixmap) At(x, y int) color.Color {
	if !p.InBounds(x, y) {
		return Transparent
	}
	return p.GetPixel(x, y)
}

// Bounds implements image.Image.
func (p *Pixmap) Bounds() image.Rectangle { return image.Rect(0, 0, p.width, p.height) }

// ColorModel implements image.Image.
func (p *Pixmap) ColorModel() color.Model { return color.NRGBAModel }
