package tool

import (
	"image"

	"github.com/gogpu/pixart"
	"github.com/gogpu/pixart/raster"
)

// ShapeKind selects what a Shape tool rasterizes.
type ShapeKind uint8

// Shape kinds.
const (
	KindLine ShapeKind = iota
	KindRectangle
	KindFilledRectangle
	KindEllipse
)

// Shape is a rubber-band tool: press anchors, move tracks the opposite
// point, release draws the final shape onto the active layer.
//
// Lines are drawn with the brush footprint; rectangles and ellipses are one
// pixel wide.
type Shape struct {
	Base
	kind    ShapeKind
	anchor  image.Point
	current image.Point
}

// NewShape returns a shape tool of the given kind.
func NewShape(env *Env, kind ShapeKind) *Shape {
	return &Shape{Base: NewBase(env), kind: kind}
}

// Press anchors the shape.
func (s *Shape) Press(p image.Point) {
	if s.layer("shape press") == nil {
		return
	}
	s.anchor, s.current = p, p
	s.active = true
}

// Move updates the rubber band.
func (s *Shape) Move(p image.Point) {
	if s.active {
		s.current = p
	}
}

// Release draws from the anchor to p and commits.
func (s *Shape) Release(p image.Point) {
	if !s.active {
		return
	}
	s.current = p
	s.finish()
}

// Leave draws to the last tracked point and commits.
func (s *Shape) Leave() {
	if s.active {
		s.finish()
	}
}

// Key abandons the drag on Escape. Nothing has been drawn yet.
func (s *Shape) Key(k Key) {
	if k == KeyEscape && s.active {
		s.active = false
	}
}

// Preview returns the pixels the shape would cover if released now.
func (s *Shape) Preview() ([]image.Point, bool) {
	if !s.active {
		return nil, false
	}
	return s.pixels(), true
}

func (s *Shape) finish() {
	s.active = false
	l := s.layer("shape release")
	if l == nil {
		return
	}
	raster.Stamp(l.Pixels, s.pixels(), s.Doc().ActiveColor())
	s.commit()
}

func (s *Shape) pixels() []image.Point {
	a, b := s.anchor, s.current
	switch s.kind {
	case KindRectangle:
		return raster.RectPixels(a, b)
	case KindFilledRectangle:
		return raster.FilledRectPixels(a, b)
	case KindEllipse:
		return raster.EllipsePixels(a, b)
	}
	doc := s.Doc()
	var pts []image.Point
	seen := make(map[image.Point]bool)
	raster.SmoothStroke(a.X, a.Y, b.X, b.Y, doc.BrushSize(), doc.BrushShape(), func(fp []image.Point) {
		for _, p := range fp {
			if !seen[p] {
				seen[p] = true
				pts = append(pts, p)
			}
		}
	})
	return pts
}

// Selection drags out the document's selection rectangle. It never touches
// pixels or history.
type Selection struct {
	Base
	anchor  image.Point
	current image.Point
}

// NewSelection returns a selection tool.
func NewSelection(env *Env) *Selection {
	return &Selection{Base: NewBase(env)}
}

// Press anchors the rectangle.
func (s *Selection) Press(p image.Point) {
	s.anchor, s.current = p, p
	s.active = true
}

// Move updates the rectangle.
func (s *Selection) Move(p image.Point) {
	if s.active {
		s.current = p
	}
}

// Release replaces the document selection with the dragged rectangle.
func (s *Selection) Release(p image.Point) {
	if !s.active {
		return
	}
	s.current = p
	s.finish()
}

// Leave selects up to the last tracked point.
func (s *Selection) Leave() {
	if s.active {
		s.finish()
	}
}

// Key clears the selection on Escape.
func (s *Selection) Key(k Key) {
	if k == KeyEscape {
		s.active = false
		s.Doc().ClearSelection()
	}
}

// Rect returns the rectangle being dragged; both corners are inclusive.
func (s *Selection) Rect() image.Rectangle {
	return pixelBox(s.anchor, s.current)
}

func (s *Selection) finish() {
	s.active = false
	doc := s.Doc()
	r := s.Rect().Intersect(doc.Bounds())
	doc.SetSelection(r)
	pixart.Logger().Debug("selection", "rect", r)
}

// pixelBox returns the half-open rectangle covering both pixels and all
// pixels between them.
func pixelBox(a, b image.Point) image.Rectangle {
	return image.Rect(min(a.X, b.X), min(a.Y, b.Y), max(a.X, b.X)+1, max(a.Y, b.Y)+1)
}
