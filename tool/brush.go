package tool

import (
	"image"

	"github.com/gogpu/pixart"
	"github.com/gogpu/pixart/raster"
)

// Brush paints the brush footprint along the pointer path. As an eraser it
// paints fully transparent pixels instead of the active color.
type Brush struct {
	Base
	erase bool
	last  image.Point
}

// NewBrush returns a brush painting with the document's active color.
func NewBrush(env *Env) *Brush {
	return &Brush{Base: NewBase(env)}
}

// NewEraser returns a brush painting transparency.
func NewEraser(env *Env) *Brush {
	return &Brush{Base: NewBase(env), erase: true}
}

func (b *Brush) color() pixart.Color {
	if b.erase {
		return pixart.Transparent
	}
	return b.Doc().ActiveColor()
}

// Press stamps the footprint and starts a stroke.
func (b *Brush) Press(p image.Point) {
	l := b.layer("brush press")
	if l == nil {
		return
	}
	doc := b.Doc()
	raster.StampBrush(l.Pixels, p.X, p.Y, doc.BrushSize(), doc.BrushShape(), b.color())
	b.active = true
	b.last = p
}

// Move continues the stroke from the previous point without gaps.
func (b *Brush) Move(p image.Point) {
	if !b.active {
		return
	}
	l := b.layer("brush move")
	if l == nil {
		return
	}
	doc := b.Doc()
	raster.StrokeLine(l.Pixels, b.last.X, b.last.Y, p.X, p.Y, doc.BrushSize(), doc.BrushShape(), b.color())
	b.last = p
}

// Release ends the stroke and commits it as one history entry.
func (b *Brush) Release(image.Point) { b.finish() }

// Leave ends the stroke like a release.
func (b *Brush) Leave() { b.finish() }

func (b *Brush) finish() {
	if !b.active {
		return
	}
	b.active = false
	b.commit()
}

// Key changes the brush size with [ and ].
func (b *Brush) Key(k Key) {
	doc := b.Doc()
	switch k {
	case KeyBracketLeft:
		doc.SetBrushSize(doc.BrushSize() - 1)
	case KeyBracketRight:
		doc.SetBrushSize(doc.BrushSize() + 1)
	}
}
