package tool

import (
	"image"

	"github.com/gogpu/pixart"
	"github.com/gogpu/pixart/raster"
)

// Fill flood-fills the region under the pointer. It acts on press only.
type Fill struct {
	Base
}

// NewFill returns a fill tool.
func NewFill(env *Env) *Fill {
	return &Fill{Base: NewBase(env)}
}

// Press fills with the active color and the document's tolerance. A history
// entry is committed only when pixels changed.
func (f *Fill) Press(p image.Point) {
	l := f.layer("fill")
	if l == nil || !l.Pixels.InBounds(p.X, p.Y) {
		return
	}
	doc := f.Doc()
	c := doc.ActiveColor()
	if l.Pixels.GetPixel(p.X, p.Y) == c {
		return
	}
	n := raster.FloodFill(l.Pixels, p.X, p.Y, c, doc.FillTolerance())
	pixart.Logger().Debug("fill", "x", p.X, "y", p.Y, "pixels", n)
	if n > 0 {
		f.commit()
	}
}
