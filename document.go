package pixart

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// Document errors. Edits rejected with one of these leave the document
// unchanged.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pixart: invalid dimensions")

	// ErrLastLayer is returned when deleting the only remaining layer.
	ErrLastLayer = errors.New("pixart: cannot delete the last layer")

	// ErrLastFrame is returned when deleting the only remaining frame.
	ErrLastFrame = errors.New("pixart: cannot delete the last frame")

	// ErrIndexOutOfRange is returned for layer or frame indices outside the stack.
	ErrIndexOutOfRange = errors.New("pixart: index out of range")

	// ErrNoLayerBelow is returned when merging down the bottom layer.
	ErrNoLayerBelow = errors.New("pixart: no layer below to merge into")

	// ErrDuplicateColor is returned when adding a color already in the palette.
	ErrDuplicateColor = errors.New("pixart: color already in palette")

	// ErrColorNotFound is returned when removing a color not in the palette.
	ErrColorNotFound = errors.New("pixart: color not in palette")

	// ErrInvalidDuration is returned for non-positive frame durations.
	ErrInvalidDuration = errors.New("pixart: frame duration must be positive")
)

// DefaultFrameDuration is the display time given to new frames.
const DefaultFrameDuration = 100 * time.Millisecond

// Document is the complete editable state: canvas size, palette, tool
// settings, the live layer stack and the animation frames.
//
// Document is not safe for concurrent use. Every component that edits it
// receives it explicitly; there is no package-level document.
type Document struct {
	width  int
	height int

	palette    []Color
	tool       Tool
	color      Color
	brushSize  int
	brushShape BrushShape
	tolerance  int

	layers []*Layer
	active int

	frames        []*Frame
	current       int
	frameDuration time.Duration

	selection    image.Rectangle
	hasSelection bool

	lastID int64
}

// DocumentOption configures a Document during creation.
type DocumentOption func(*Document)

// WithPalette sets the initial palette. Duplicates are dropped.
func WithPalette(colors []Color) DocumentOption {
	return func(d *Document) {
		d.SetPalette(colors)
	}
}

// WithBrush sets the initial brush size and shape.
func WithBrush(size int, shape BrushShape) DocumentOption {
	return func(d *Document) {
		d.SetBrushSize(size)
		d.SetBrushShape(shape)
	}
}

// WithFillTolerance sets the initial flood fill tolerance.
func WithFillTolerance(tolerance int) DocumentOption {
	return func(d *Document) {
		d.SetFillTolerance(tolerance)
	}
}

// WithFrameDuration sets the duration given to newly created frames.
func WithFrameDuration(dur time.Duration) DocumentOption {
	return func(d *Document) {
		if dur > 0 {
			d.frameDuration = dur
		}
	}
}

// WithActiveColor sets the initial drawing color.
func WithActiveColor(c Color) DocumentOption {
	return func(d *Document) {
		d.color = c
	}
}

// NewDocument creates a document with one blank layer "Layer 1" and one
// frame "Frame 1" holding a copy of it. Non-positive dimensions are raised
// to 1.
func NewDocument(width, height int, opts ...DocumentOption) *Document {
	width = max(width, 1)
	height = max(height, 1)

	d := &Document{
		width:         width,
		height:        height,
		palette:       DefaultPalette(),
		tool:          ToolBrush,
		color:         Black,
		brushSize:     1,
		brushShape:    ShapeSquare,
		frameDuration: DefaultFrameDuration,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.layers = []*Layer{NewLayer(d.NewID(), "Layer 1", width, height)}
	d.frames = []*Frame{{
		ID:       d.NewID(),
		Name:     "Frame 1",
		Duration: d.frameDuration,
		Layers:   CloneLayers(d.layers),
	}}
	return d
}

// Assemble builds a document from already decoded parts, as a project import
// does. The slices are adopted, not copied. Every layer buffer must match the
// canvas size, the layer stack and every frame must be non-empty. When frames
// is empty a single frame holding a copy of layers is created.
func Assemble(width, height int, palette []Color, layers []*Layer, frames []*Frame) (*Document, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(layers) == 0 {
		return nil, errors.New("pixart: document needs at least one layer")
	}

	d := &Document{
		width:         width,
		height:        height,
		tool:          ToolBrush,
		color:         Black,
		brushSize:     1,
		brushShape:    ShapeSquare,
		frameDuration: DefaultFrameDuration,
	}
	d.SetPalette(palette)

	check := func(where string, stack []*Layer) error {
		for i, l := range stack {
			if l == nil || l.Pixels == nil {
				return fmt.Errorf("pixart: %s layer %d has no pixels", where, i)
			}
			if l.Pixels.width != width || l.Pixels.height != height {
				return fmt.Errorf("%w: %s layer %d is %dx%d, canvas is %dx%d", ErrInvalidDimensions,
					where, i, l.Pixels.width, l.Pixels.height, width, height)
			}
			l.Opacity = clampUnit(l.Opacity)
			d.lastID = max(d.lastID, l.ID)
		}
		return nil
	}

	if err := check("live", layers); err != nil {
		return nil, err
	}
	for i, f := range frames {
		if f == nil || len(f.Layers) == 0 {
			return nil, fmt.Errorf("pixart: frame %d has no layers", i)
		}
		if f.Duration <= 0 {
			return nil, fmt.Errorf("%w: frame %d", ErrInvalidDuration, i)
		}
		if err := check(fmt.Sprintf("frame %d", i), f.Layers); err != nil {
			return nil, err
		}
		d.lastID = max(d.lastID, f.ID)
	}

	d.layers = layers
	d.frames = frames
	if len(d.frames) == 0 {
		d.frames = []*Frame{{
			ID:       d.NewID(),
			Name:     "Frame 1",
			Duration: d.frameDuration,
			Layers:   CloneLayers(layers),
		}}
	}
	return d, nil
}

// NewID returns a fresh identifier, unique within this document.
func (d *Document) NewID() int64 {
	d.lastID++
	return d.lastID
}

// Width returns the canvas width in logical pixels.
func (d *Document) Width() int { return d.width }

// Height returns the canvas height in logical pixels.
func (d *Document) Height() int { return d.height }

// Bounds returns the canvas rectangle.
func (d *Document) Bounds() image.Rectangle { return image.Rect(0, 0, d.width, d.height) }

// Layers returns the live layer stack, bottom first. The slice is a copy;
// the layers are the live ones.
func (d *Document) Layers() []*Layer {
	out := make([]*Layer, len(d.layers))
	copy(out, d.layers)
	return out
}

// LayerCount returns the number of live layers.
func (d *Document) LayerCount() int { return len(d.layers) }

// Layer returns the live layer at index i, or nil.
func (d *Document) Layer(i int) *Layer {
	if i < 0 || i >= len(d.layers) {
		return nil
	}
	return d.layers[i]
}

// ActiveLayer returns the layer edited by tools, or nil when there is none.
func (d *Document) ActiveLayer() *Layer {
	return d.Layer(d.active)
}

// ActiveLayerIndex returns the index of the active layer.
func (d *Document) ActiveLayerIndex() int { return d.active }

// SetActiveLayer selects the layer edited by tools.
func (d *Document) SetActiveLayer(i int) error {
	if i < 0 || i >= len(d.layers) {
		return d.reject(ErrIndexOutOfRange, "set active layer", "index", i)
	}
	d.active = i
	return nil
}

// Snapshot returns a deep copy of the live layer stack.
func (d *Document) Snapshot() []*Layer {
	return CloneLayers(d.layers)
}

// RestoreLayers replaces the live stack with a deep copy of layers. Buffers
// of another size are fitted to the canvas at the origin. The active index
// is clamped to the new stack. An empty stack is ignored.
func (d *Document) RestoreLayers(layers []*Layer) {
	if len(layers) == 0 {
		return
	}
	d.layers = CloneLayers(layers)
	for _, l := range d.layers {
		if l.Pixels == nil || l.Pixels.Width() != d.width || l.Pixels.Height() != d.height {
			l.Pixels = resizeOrBlank(l.Pixels, d.width, d.height)
		}
	}
	if d.active >= len(d.layers) {
		d.active = len(d.layers) - 1
	}
}

// Composite flattens the live stack.
func (d *Document) Composite() *Pixmap {
	return Composite(d.width, d.height, d.layers)
}

// AddLayer appends a blank layer on top of the stack and makes it active.
func (d *Document) AddLayer(name string) *Layer {
	name = normalizeName(name, fmt.Sprintf("Layer %d", len(d.layers)+1))
	l := NewLayer(d.NewID(), name, d.width, d.height)
	return d.PushLayer(l)
}

// PushLayer appends an existing layer on top of the stack and makes it
// active. The layer is adopted; it must match the canvas size.
func (d *Document) PushLayer(l *Layer) *Layer {
	if l.Pixels == nil || l.Pixels.width != d.width || l.Pixels.height != d.height {
		l.Pixels = resizeOrBlank(l.Pixels, d.width, d.height)
	}
	d.layers = append(d.layers, l)
	d.active = len(d.layers) - 1
	return l
}

// DuplicateLayer inserts a copy of layer i directly above it and makes the
// copy active.
func (d *Document) DuplicateLayer(i int) (*Layer, error) {
	if i < 0 || i >= len(d.layers) {
		return nil, d.reject(ErrIndexOutOfRange, "duplicate layer", "index", i)
	}
	c := d.layers[i].Clone()
	c.ID = d.NewID()
	c.Name = d.layers[i].Name + " Copy"
	d.layers = insertAt(d.layers, i+1, c)
	d.active = i + 1
	return c, nil
}

// DeleteLayer removes layer i. The last remaining layer cannot be deleted.
func (d *Document) DeleteLayer(i int) error {
	if len(d.layers) <= 1 {
		return d.reject(ErrLastLayer, "delete layer", "index", i)
	}
	if i < 0 || i >= len(d.layers) {
		return d.reject(ErrIndexOutOfRange, "delete layer", "index", i)
	}
	d.layers = append(d.layers[:i], d.layers[i+1:]...)
	if i < d.active || d.active >= len(d.layers) {
		d.active--
	}
	return nil
}

// MoveLayer moves the layer at from to index to. The active index follows
// the active layer.
func (d *Document) MoveLayer(from, to int) error {
	n := len(d.layers)
	if from < 0 || from >= n || to < 0 || to >= n {
		return d.reject(ErrIndexOutOfRange, "move layer", "from", from, "to", to)
	}
	if from == to {
		return nil
	}
	d.layers = moveItem(d.layers, from, to)
	d.active = followMove(d.active, from, to)
	return nil
}

// MergeDown blends layer i onto the layer below it using layer i's opacity,
// removes layer i and activates the merged layer.
func (d *Document) MergeDown(i int) error {
	if i < 0 || i >= len(d.layers) {
		return d.reject(ErrIndexOutOfRange, "merge down", "index", i)
	}
	if i == 0 {
		return d.reject(ErrNoLayerBelow, "merge down", "index", i)
	}
	top, below := d.layers[i], d.layers[i-1]
	DrawOver(below.Pixels, top.Pixels, top.Opacity)
	d.layers = append(d.layers[:i], d.layers[i+1:]...)
	d.active = i - 1
	return nil
}

// SetLayerOpacity sets the opacity of layer i, clamped to [0, 1].
func (d *Document) SetLayerOpacity(i int, opacity float64) error {
	l := d.Layer(i)
	if l == nil {
		return d.reject(ErrIndexOutOfRange, "set layer opacity", "index", i)
	}
	l.Opacity = clampUnit(opacity)
	return nil
}

// SetLayerVisible shows or hides layer i.
func (d *Document) SetLayerVisible(i int, visible bool) error {
	l := d.Layer(i)
	if l == nil {
		return d.reject(ErrIndexOutOfRange, "set layer visibility", "index", i)
	}
	l.Visible = visible
	return nil
}

// ToggleLayerVisibility flips the visibility of layer i.
func (d *Document) ToggleLayerVisibility(i int) error {
	l := d.Layer(i)
	if l == nil {
		return d.reject(ErrIndexOutOfRange, "toggle layer visibility", "index", i)
	}
	l.Visible = !l.Visible
	return nil
}

// RenameLayer renames layer i. Blank names are ignored.
func (d *Document) RenameLayer(i int, name string) error {
	l := d.Layer(i)
	if l == nil {
		return d.reject(ErrIndexOutOfRange, "rename layer", "index", i)
	}
	l.Name = normalizeName(name, l.Name)
	return nil
}

// ClearLayer makes every pixel of layer i transparent.
func (d *Document) ClearLayer(i int) error {
	l := d.Layer(i)
	if l == nil {
		return d.reject(ErrIndexOutOfRange, "clear layer", "index", i)
	}
	l.Pixels.Clear(Transparent)
	return nil
}

// Resize changes the canvas size. Every live layer and every frame snapshot
// keeps its content at the origin, clipped or padded with transparency.
func (d *Document) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return d.reject(ErrInvalidDimensions, "resize", "width", width, "height", height)
	}
	for _, l := range d.layers {
		l.Pixels = l.Pixels.Resize(width, height)
	}
	for _, f := range d.frames {
		for _, l := range f.Layers {
			l.Pixels = l.Pixels.Resize(width, height)
		}
	}
	d.width, d.height = width, height
	if d.hasSelection {
		d.selection = d.selection.Intersect(d.Bounds())
		d.hasSelection = !d.selection.Empty()
	}
	Logger().Info("canvas resized", "width", width, "height", height)
	return nil
}

// Selection returns the current selection rectangle, if any.
func (d *Document) Selection() (image.Rectangle, bool) {
	return d.selection, d.hasSelection
}

// SetSelection replaces the selection. An empty rectangle clears it.
// The selection is advisory and does not clip drawing.
func (d *Document) SetSelection(r image.Rectangle) {
	r = r.Canon()
	if r.Empty() {
		d.ClearSelection()
		return
	}
	d.selection = r
	d.hasSelection = true
}

// ClearSelection removes the selection.
func (d *Document) ClearSelection() {
	d.selection = image.Rectangle{}
	d.hasSelection = false
}

// reject logs a refused edit and returns err wrapped with context.
func (d *Document) reject(err error, op string, args ...any) error {
	Logger().Warn(op+" rejected: "+err.Error(), append(args, "doc", d)...)
	return fmt.Errorf("%s: %w", op, err)
}

// resizeOrBlank fits pm to the canvas, allocating a blank buffer when pm is nil.
func resizeOrBlank(pm *Pixmap, width, height int) *Pixmap {
	if pm == nil {
		return NewPixmap(width, height)
	}
	return pm.Resize(width, height)
}

func insertAt[T any](s []T, i int, v T) []T {
	s = append(s, v)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func moveItem[T any](s []T, from, to int) []T {
	v := s[from]
	s = append(s[:from], s[from+1:]...)
	return insertAt(s, to, v)
}

// followMove returns where index idx ends up after moving from -> to.
func followMove(idx, from, to int) int {
	switch {
	case idx == from:
		return to
	case from < to && idx > from && idx <= to:
		return idx - 1
	case from > to && idx >= to && idx < from:
		return idx + 1
	}
	return idx
}
