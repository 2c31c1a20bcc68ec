package project

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"time"

	"golang.org/x/image/draw"

	"github.com/gogpu/pixart"
)

// alphaThreshold is the alpha below which a pixel is transparent in GIF
// output; GIF has no partial transparency.
const alphaThreshold = 128

// EncodeGIF writes doc as an endlessly looping animated GIF with one image
// per frame, each magnified by scale and shown for its frame duration.
//
// Frames using at most 255 distinct colors are encoded exactly. Others are
// dithered onto the web-safe palette.
func EncodeGIF(w io.Writer, doc *pixart.Document, scale int) error {
	scale = max(scale, 1)
	g := &gif.GIF{
		Config: image.Config{
			Width:  doc.Width() * scale,
			Height: doc.Height() * scale,
		},
	}
	frames := doc.Frames()
	for i, pm := range FrameImages(doc) {
		img := paletted(magnify(pm, scale))
		g.Image = append(g.Image, img)
		g.Delay = append(g.Delay, centiseconds(frames[i].Duration))
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}
	if err := gif.EncodeAll(w, g); err != nil {
		return fmt.Errorf("project: encode gif: %w", err)
	}
	return nil
}

// SaveGIF writes doc as an animated GIF to path.
func SaveGIF(path string, doc *pixart.Document, scale int) error {
	return writeFile(path, func(w io.Writer) error { return EncodeGIF(w, doc, scale) })
}

// centiseconds converts a frame duration to a GIF delay, at least 1.
func centiseconds(d time.Duration) int {
	return max(int((d+5*time.Millisecond)/(10*time.Millisecond)), 1)
}

// paletted converts img to a paletted image whose index 0 is transparent.
func paletted(img *image.NRGBA) *image.Paletted {
	b := img.Bounds()
	pal := color.Palette{color.Transparent}
	index := make(map[color.NRGBA]uint8)
	exact := true
	for i := 0; i+3 < len(img.Pix); i += 4 {
		if img.Pix[i+3] < alphaThreshold {
			continue
		}
		c := color.NRGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: 255}
		if _, ok := index[c]; ok {
			continue
		}
		if len(pal) == 256 {
			exact = false
			break
		}
		index[c] = uint8(len(pal))
		pal = append(pal, c)
	}

	if exact {
		out := image.NewPaletted(b, pal)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := img.NRGBAAt(x, y)
				if c.A < alphaThreshold {
					continue
				}
				c.A = 255
				out.SetColorIndex(x, y, index[c])
			}
		}
		return out
	}

	pal = append(color.Palette{color.Transparent}, palette.WebSafe...)
	opaque := image.NewNRGBA(b)
	copy(opaque.Pix, img.Pix)
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 255
	}
	out := image.NewPaletted(b, pal)
	draw.FloydSteinberg.Draw(out, b, opaque, b.Min)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y).A < alphaThreshold {
				out.SetColorIndex(x, y, 0)
			}
		}
	}
	return out
}
