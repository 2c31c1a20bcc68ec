package project

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	// Decoders for ImportImage.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/pixart"
)

// Image errors.
var (
	// ErrUnsupportedFormat is returned when an imported file is not a
	// recognized raster image.
	ErrUnsupportedFormat = errors.New("project: unsupported image format")

	// ErrUnknownScaler is returned by ScalerByName for unknown names.
	ErrUnknownScaler = errors.New("project: unknown scaler")
)

// ImportedLayerName is the name given to layers created by ImportImage.
const ImportedLayerName = "Imported Image"

// ScalerByName returns the interpolator for name: "nearest",
// "approxbilinear", "bilinear" or "catmullrom". The empty name means
// "nearest".
func ScalerByName(name string) (draw.Scaler, error) {
	switch strings.ToLower(name) {
	case "", "nearest":
		return draw.NearestNeighbor, nil
	case "approxbilinear":
		return draw.ApproxBiLinear, nil
	case "bilinear":
		return draw.BiLinear, nil
	case "catmullrom":
		return draw.CatmullRom, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScaler, name)
}

// EncodePNG writes the composite of doc's live layer stack as a PNG.
func EncodePNG(w io.Writer, doc *pixart.Document) error {
	if err := png.Encode(w, doc.Composite().ToImage()); err != nil {
		return fmt.Errorf("project: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the composite of doc to path.
func SavePNG(path string, doc *pixart.Document) error {
	return writeFile(path, func(w io.Writer) error { return EncodePNG(w, doc) })
}

// ImportImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image, scales it
// to exactly fill the canvas and pushes it onto the live stack as a new,
// active top layer. A nil scaler means nearest neighbor. The document is
// unchanged on error.
func ImportImage(doc *pixart.Document, r io.Reader, scaler draw.Scaler) (*pixart.Layer, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedFormat
		}
		return nil, fmt.Errorf("project: decode image: %w", err)
	}
	if src.Bounds().Empty() {
		return nil, fmt.Errorf("project: decode image: empty %s image", format)
	}
	if scaler == nil {
		scaler = draw.NearestNeighbor
	}

	dst := image.NewNRGBA(doc.Bounds())
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	l := pixart.NewLayer(doc.NewID(), ImportedLayerName, doc.Width(), doc.Height())
	l.Pixels = pixart.FromImage(dst)
	doc.PushLayer(l)
	pixart.Logger().Info("image imported",
		"format", format, "from", src.Bounds().Size(), "to", doc.Bounds().Size(), "layer", l.ID)
	return l, nil
}

// FrameImages flattens every frame. The current frame is taken from the
// live stack, so edits not yet captured into it are included.
func FrameImages(doc *pixart.Document) []*pixart.Pixmap {
	out := make([]*pixart.Pixmap, 0, doc.FrameCount())
	for i, f := range doc.Frames() {
		if i == doc.CurrentFrameIndex() {
			out = append(out, doc.Composite())
			continue
		}
		out = append(out, pixart.Composite(doc.Width(), doc.Height(), f.Layers))
	}
	return out
}

// magnify returns pm scaled up by factor with nearest-neighbor sampling.
func magnify(pm *pixart.Pixmap, factor int) *image.NRGBA {
	src := pm.ToImage()
	if factor <= 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
