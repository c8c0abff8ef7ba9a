package bindery

import (
	"bytes"
	"fmt"
	"image/png"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// pdfEpoch is the fixed creation date stamped into every generated PDF.
// A wall-clock date would break byte-identical reproduction.
var pdfEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// AssembleInterior embeds the ordered assets into a single multi-page PDF.
// Each asset becomes one page at trim size in points, with the raster drawn
// to fill the full page; when interleave is true a blank page follows each
// content page, giving crayon bleed-through a sacrificial back.
//
// Every asset must match the spec's pixel dimensions exactly. The first
// missing or mismatched asset aborts the whole document, reporting its
// index; nothing is emitted.
func AssembleInterior(assets []Asset, spec PageSpec, interleave bool) ([]byte, error) {
	if len(assets) == 0 {
		// A zero-page PDF is not a valid document; refuse rather than let
		// gofpdf pad the output with an implicit blank page on Close.
		return nil, ErrNoAssets
	}
	for i, a := range assets {
		if a.Image == nil && a.Path == "" {
			return nil, fmt.Errorf("%w: index %d", ErrAssetMissing, i)
		}
		if a.Width != spec.PixelWidth() || a.Height != spec.PixelHeight() {
			return nil, fmt.Errorf("%w: index %d has %dx%d, spec requires %dx%d",
				ErrDimensionMismatch, i, a.Width, a.Height, spec.PixelWidth(), spec.PixelHeight())
		}
	}

	pdf := newTrimPDF(spec)
	for i, a := range assets {
		pdf.AddPage()
		if err := drawAssetPage(pdf, a, fmt.Sprintf("page-%d", i), spec); err != nil {
			return nil, err
		}
		if interleave {
			pdf.AddPage()
		}
	}

	want := len(assets)
	if interleave {
		want *= 2
	}
	if pdf.PageCount() != want {
		return nil, fmt.Errorf("%w: produced %d pages, expected %d", ErrPDFGeneration, pdf.PageCount(), want)
	}

	return outputPDF(pdf)
}

// newTrimPDF creates a point-unit document sized to the trim box with no
// margins and no automatic page breaks.
func newTrimPDF(spec PageSpec) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: spec.PointWidth(), Ht: spec.PointHeight()},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(pdfEpoch)
	return pdf
}

// drawAssetPage registers the asset raster under name and draws it across
// the current page. In-memory images are encoded to PNG; path-backed assets
// are read from disk.
func drawAssetPage(pdf *gofpdf.Fpdf, a Asset, name string, spec PageSpec) error {
	opts := gofpdf.ImageOptions{ImageType: "PNG"}

	if a.Image != nil {
		var buf bytes.Buffer
		if err := png.Encode(&buf, a.Image); err != nil {
			return fmt.Errorf("%w: encoding %s: %v", ErrPDFGeneration, name, err)
		}
		pdf.RegisterImageOptionsReader(name, opts, &buf)
	} else {
		pdf.RegisterImageOptions(a.Path, opts)
		name = a.Path
	}

	pdf.ImageOptions(name, 0, 0, spec.PointWidth(), spec.PointHeight(), false, opts, 0, "")
	if pdf.Err() {
		return fmt.Errorf("%w: %v", ErrPDFGeneration, pdf.Error())
	}
	return nil
}

// outputPDF serializes the document, surfacing any deferred gofpdf error.
func outputPDF(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	return buf.Bytes(), nil
}
