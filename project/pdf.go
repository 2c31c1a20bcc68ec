package project

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"

	"github.com/gogpu/pixart"
)

// EncodePDF writes doc as a flipbook: one page per frame, each showing the
// frame magnified by scale.
func EncodePDF(w io.Writer, doc *pixart.Document, scale int) error {
	scale = max(scale, 1)
	pages := FrameImages(doc)
	imgs := make([]io.Reader, 0, len(pages))
	for i, pm := range pages {
		var buf bytes.Buffer
		if err := png.Encode(&buf, magnify(pm, scale)); err != nil {
			return fmt.Errorf("project: encode pdf page %d: %w", i+1, err)
		}
		imgs = append(imgs, &buf)
	}

	imp := pdfcpu.DefaultImportConfig()
	if err := api.ImportImages(nil, w, imgs, imp, nil); err != nil {
		return fmt.Errorf("project: encode pdf: %w", err)
	}
	pixart.Logger().Debug("pdf written", "pages", len(imgs))
	return nil
}

// SavePDF writes doc as a PDF flipbook to path.
func SavePDF(path string, doc *pixart.Document, scale int) error {
	return writeFile(path, func(w io.Writer) error { return EncodePDF(w, doc, scale) })
}
