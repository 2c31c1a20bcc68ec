package pixart

import (
	"github.com/gogpu/pixart/internal/blend"
)

// Composite flattens a layer stack into a single width x height pixmap.
//
// Layers are blended bottom to top with the source-over operator, using each
// layer's pixel alpha scaled by its opacity. Invisible layers and layers whose
// size does not match are skipped entirely.
func Composite(width, height int, layers []*Layer) *Pixmap {
	out := NewPixmap(width, height)
	for _, l := range layers {
		if l == nil || !l.Visible || l.Opacity <= 0 || l.Pixels == nil {
			continue
		}
		if l.Pixels.width != width || l.Pixels.height != height {
			Logger().Debug("composite: skipping layer with mismatched size",
				"layer", l.ID, "width", l.Pixels.width, "height", l.Pixels.height)
			continue
		}
		blend.SourceOver(out.data, l.Pixels.data, l.Opacity)
	}
	return out
}

// DrawOver blends src onto dst in place with the given opacity. Both
// pixmaps must have the same size; otherwise DrawOver does nothing.
func DrawOver(dst, src *Pixmap, opacity float64) {
	if dst == nil || src == nil || dst.width != src.width || dst.height != src.height {
		return
	}
	blend.SourceOver(dst.data, src.data, opacity)
}
