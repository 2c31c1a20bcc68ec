package pixart

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Layer is one raster plane of the document. The layer stack is ordered
// bottom to top; the first layer is drawn first.
//
// A Layer and its Pixels are owned by exactly one container: the live stack,
// a frame snapshot, or a history entry. Use Clone to move data between them.
type Layer struct {
	ID      int64
	Name    string
	Visible bool
	Opacity float64 // [0, 1]
	Pixels  *Pixmap
}

// NewLayer creates a visible, fully opaque, transparent-filled layer.
func NewLayer(id int64, name string, width, height int) *Layer {
	return &Layer{
		ID:      id,
		Name:    name,
		Visible: true,
		Opacity: 1,
		Pixels:  NewPixmap(width, height),
	}
}

// Clone returns a deep copy of the layer, including its pixel buffer.
func (l *Layer) Clone() *Layer {
	c := *l
	if l.Pixels != nil {
		c.Pixels = l.Pixels.Clone()
	}
	return &c
}

// CloneLayers deep-copies a layer stack. The result shares no memory with
// the input.
func CloneLayers(layers []*Layer) []*Layer {
	out := make([]*Layer, len(layers))
	for i, l := range layers {
		out[i] = l.Clone()
	}
	return out
}

// clampUnit restricts a value to [0, 1].
func clampUnit(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// normalizeName trims and NFC-normalizes a user supplied name, falling back
// when nothing is left.
func normalizeName(name, fallback string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return fallback
	}
	return name
}
