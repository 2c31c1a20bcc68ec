package tool

import (
	"image"

	"github.com/gogpu/pixart"
)

// Eyedropper picks the color under the pointer and switches back to the brush.
type Eyedropper struct {
	Base
}

// NewEyedropper returns an eyedropper tool.
func NewEyedropper(env *Env) *Eyedropper {
	return &Eyedropper{Base: NewBase(env)}
}

// Press scans visible layers from the top and takes the first pixel with
// nonzero alpha as the active color, made opaque. The document is not
// edited and no history entry is recorded. When every layer is transparent
// at p nothing changes.
func (e *Eyedropper) Press(p image.Point) {
	doc := e.Doc()
	if !p.In(doc.Bounds()) {
		return
	}
	for i := doc.LayerCount() - 1; i >= 0; i-- {
		l := doc.Layer(i)
		if !l.Visible {
			continue
		}
		c := l.Pixels.GetPixel(p.X, p.Y)
		if c.A == 0 {
			continue
		}
		doc.SetActiveColor(c.Opaque())
		_ = doc.SetTool(pixart.ToolBrush)
		return
	}
	pixart.Logger().Debug("eyedropper: nothing to pick", "x", p.X, "y", p.Y)
}
