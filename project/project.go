// Package project reads and writes documents: the JSON project format,
// PNG/GIF/PDF exports and raster image import.
//
// The JSON shape is
//
//	{
//	  "canvasWidth": 16, "canvasHeight": 16,
//	  "palette": ["#000000", ...],
//	  "layers": [{"id": 1, "name": "Layer 1", "visible": true, "opacity": 1, "pixelData": [0, 0, 0, 0, ...]}],
//	  "frames": [{"id": 2, "name": "Frame 1", "duration": 100, "layerDataSnapshot": [...]}]
//	}
//
// pixelData is the flat row-major RGBA byte sequence of a layer and duration
// is in milliseconds. Decoding a document produced by Encode reproduces every
// layer and frame buffer byte for byte.
package project

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/pixart"
)

// MaxDimension bounds the canvas size accepted on import.
const MaxDimension = 4096

// ErrInvalidProject is wrapped by every error Decode returns for a
// well-formed JSON value that does not describe a valid document.
var ErrInvalidProject = errors.New("project: invalid project")

// File is the serialized form of a document.
type File struct {
	CanvasWidth  int      `json:"canvasWidth"`
	CanvasHeight int      `json:"canvasHeight"`
	Palette      []string `json:"palette"`
	Layers       []Layer  `json:"layers"`
	Frames       []Frame  `json:"frames"`
}

// Layer is the serialized form of a pixart.Layer.
//
// Ids are JSON numbers. Documents written by the browser editor give the
// layers of a duplicated frame fractional ids; Document keeps integral ids
// and assigns fresh ones to the rest.
type Layer struct {
	ID        float64   `json:"id"`
	Name      string    `json:"name"`
	Visible   bool      `json:"visible"`
	Opacity   float64   `json:"opacity"`
	PixelData PixelData `json:"pixelData"`
}

// Frame is the serialized form of a pixart.Frame. Duration is in
// milliseconds.
type Frame struct {
	ID                float64 `json:"id"`
	Name              string  `json:"name"`
	Duration          float64 `json:"duration"`
	LayerDataSnapshot []Layer `json:"layerDataSnapshot"`
}

// FromDocument captures doc in serializable form. The pixel data is copied.
func FromDocument(doc *pixart.Document) *File {
	f := &File{
		CanvasWidth:  doc.Width(),
		CanvasHeight: doc.Height(),
		Palette:      make([]string, 0, len(doc.Palette())),
		Layers:       fromLayers(doc.Layers()),
	}
	for _, c := range doc.Palette() {
		f.Palette = append(f.Palette, c.Hex())
	}
	for _, fr := range doc.Frames() {
		f.Frames = append(f.Frames, Frame{
			ID:                float64(fr.ID),
			Name:              fr.Name,
			Duration:          float64(fr.Duration) / float64(time.Millisecond),
			LayerDataSnapshot: fromLayers(fr.Layers),
		})
	}
	return f
}

func fromLayers(layers []*pixart.Layer) []Layer {
	out := make([]Layer, 0, len(layers))
	for _, l := range layers {
		out = append(out, Layer{
			ID:        float64(l.ID),
			Name:      l.Name,
			Visible:   l.Visible,
			Opacity:   l.Opacity,
			PixelData: PixelData(append([]byte(nil), l.Pixels.Data()...)),
		})
	}
	return out
}

// Document validates f and builds a new document from it. The live layer
// stack is f.Layers and frame 0 is current. Errors wrap ErrInvalidProject.
func (f *File) Document() (*pixart.Document, error) {
	w, h := f.CanvasWidth, f.CanvasHeight
	if w <= 0 || h <= 0 || w > MaxDimension || h > MaxDimension {
		return nil, fmt.Errorf("%w: canvas size %dx%d", ErrInvalidProject, w, h)
	}

	palette := make([]pixart.Color, 0, len(f.Palette))
	for i, s := range f.Palette {
		c, err := pixart.ParseHex(s)
		if err != nil {
			return nil, fmt.Errorf("%w: palette entry %d: %w", ErrInvalidProject, i, err)
		}
		palette = append(palette, c)
	}

	if len(f.Layers) == 0 {
		return nil, fmt.Errorf("%w: no layers", ErrInvalidProject)
	}
	ids := newIDMap(f)
	layers, err := toLayers("layers", f.Layers, w, h, ids)
	if err != nil {
		return nil, err
	}

	frames := make([]*pixart.Frame, 0, len(f.Frames))
	frameIDs := make(map[int64]bool, len(f.Frames))
	for i, fr := range f.Frames {
		id := ids.id(fr.ID)
		if frameIDs[id] {
			return nil, fmt.Errorf("%w: duplicate frame id %v", ErrInvalidProject, fr.ID)
		}
		frameIDs[id] = true
		if !(fr.Duration > 0) || math.IsInf(fr.Duration, 0) {
			return nil, fmt.Errorf("%w: frame %d duration %v", ErrInvalidProject, i, fr.Duration)
		}
		if len(fr.LayerDataSnapshot) == 0 {
			return nil, fmt.Errorf("%w: frame %d has no layers", ErrInvalidProject, i)
		}
		snap, err := toLayers(fmt.Sprintf("frame %d", i), fr.LayerDataSnapshot, w, h, ids)
		if err != nil {
			return nil, err
		}
		frames = append(frames, &pixart.Frame{
			ID:       id,
			Name:     fr.Name,
			Duration: max(time.Duration(math.Round(fr.Duration*float64(time.Millisecond))), 1),
			Layers:   snap,
		})
	}

	doc, err := pixart.Assemble(w, h, palette, layers, frames)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProject, err)
	}
	return doc, nil
}

func toLayers(where string, in []Layer, w, h int, idm *idMap) ([]*pixart.Layer, error) {
	want := w * h * 4
	ids := make(map[int64]bool, len(in))
	out := make([]*pixart.Layer, 0, len(in))
	for i, l := range in {
		id := idm.id(l.ID)
		if ids[id] {
			return nil, fmt.Errorf("%w: %s: duplicate layer id %v", ErrInvalidProject, where, l.ID)
		}
		ids[id] = true
		if len(l.PixelData) != want {
			return nil, fmt.Errorf("%w: %s: layer %d has %d bytes of pixel data, want %d",
				ErrInvalidProject, where, i, len(l.PixelData), want)
		}
		if math.IsNaN(l.Opacity) {
			return nil, fmt.Errorf("%w: %s: layer %d opacity is NaN", ErrInvalidProject, where, i)
		}
		pm := pixart.NewPixmap(w, h)
		copy(pm.Data(), l.PixelData)
		out = append(out, &pixart.Layer{
			ID:      id,
			Name:    l.Name,
			Visible: l.Visible,
			Opacity: l.Opacity,
			Pixels:  pm,
		})
	}
	return out, nil
}

// maxExactID is the largest integer a JSON number read as float64 holds
// exactly.
const maxExactID = 1 << 53

// idMap converts serialized ids to document ids. Integral ids are kept, so
// re-encoding reproduces them. Every distinct fractional id gets a fresh id
// above all kept ones.
type idMap struct {
	next  int64
	fresh map[float64]int64
}

func newIDMap(f *File) *idMap {
	m := &idMap{fresh: make(map[float64]int64)}
	note := func(v float64) {
		if n, ok := integralID(v); ok {
			m.next = max(m.next, n)
		}
	}
	for _, l := range f.Layers {
		note(l.ID)
	}
	for _, fr := range f.Frames {
		note(fr.ID)
		for _, l := range fr.LayerDataSnapshot {
			note(l.ID)
		}
	}
	return m
}

func integralID(v float64) (int64, bool) {
	if v != math.Trunc(v) || math.Abs(v) > maxExactID {
		return 0, false
	}
	return int64(v), true
}

func (m *idMap) id(v float64) int64 {
	if n, ok := integralID(v); ok {
		return n
	}
	if n, ok := m.fresh[v]; ok {
		return n
	}
	m.next++
	m.fresh[v] = m.next
	return m.next
}

// Encode writes doc as compact JSON.
func Encode(w io.Writer, doc *pixart.Document) error {
	if err := json.NewEncoder(w).Encode(FromDocument(doc)); err != nil {
		return fmt.Errorf("project: encode: %w", err)
	}
	return nil
}

// Decode reads a JSON project. Malformed JSON is reported as is; a
// structurally invalid project wraps ErrInvalidProject. Nothing is returned
// on error.
func Decode(r io.Reader) (*pixart.Document, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("project: decode: %w", err)
	}
	doc, err := f.Document()
	if err != nil {
		pixart.Logger().Warn("project rejected", "err", err)
		return nil, err
	}
	pixart.Logger().Debug("project decoded",
		"width", doc.Width(), "height", doc.Height(),
		"layers", doc.LayerCount(), "frames", doc.FrameCount())
	return doc, nil
}

// Save writes doc to path. The file is replaced atomically.
func Save(path string, doc *pixart.Document) error {
	return writeFile(path, func(w io.Writer) error { return Encode(w, doc) })
}

// Load reads a JSON project from path.
func Load(path string) (*pixart.Document, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("project: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(bufio.NewReader(f))
}

// fileMode is the permission of written files. CreateTemp makes files
// owner-only, so it is set explicitly before the rename.
const fileMode = 0o644

// writeFile writes through a temporary file in the target directory and
// renames it over path once encode succeeds.
func writeFile(path string, encode func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("project: create file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = encode(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("project: write file: %w", err)
	}
	if err = tmp.Chmod(fileMode); err != nil {
		return fmt.Errorf("project: write file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("project: write file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("project: write file: %w", err)
	}
	pixart.Logger().Debug("file written", "path", path)
	return nil
}
