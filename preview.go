package bindery

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Preview defaults.
const (
	DefaultPreviewCellWidth  = 400
	DefaultPreviewCellHeight = 500
	DefaultPreviewPadding    = 16
	previewJPEGQuality       = 90
)

// PreviewGrid describes the marketing preview layout. All dimensions are
// pixels.
type PreviewGrid struct {
	Rows       int
	Cols       int
	CellWidth  int
	CellHeight int
	Padding    int
}

// DefaultPreviewGrid returns a grid sized for sampleCount cells using
// GridFor with the default cell geometry.
func DefaultPreviewGrid(sampleCount int) PreviewGrid {
	rows, cols := GridFor(sampleCount, DefaultPreviewCells)
	return PreviewGrid{
		Rows:       rows,
		Cols:       cols,
		CellWidth:  DefaultPreviewCellWidth,
		CellHeight: DefaultPreviewCellHeight,
		Padding:    DefaultPreviewPadding,
	}
}

// GridFor computes a near-square grid for up to maxCells samples:
// cols = ceil(sqrt(min(sampleCount, maxCells))), rows = ceil(n/cols).
func GridFor(sampleCount, maxCells int) (rows, cols int) {
	n := sampleCount
	if maxCells > 0 && n > maxCells {
		n = maxCells
	}
	if n < 1 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return rows, cols
}

// Validate checks the grid dimensions.
func (g PreviewGrid) Validate() error {
	if g.Rows < 1 || g.Cols < 1 || g.CellWidth < 1 || g.CellHeight < 1 || g.Padding < 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidGrid, g)
	}
	return nil
}

// ComposePreview arranges sample assets into the grid and returns a
// flattened JPEG. Placement is row-major: index 0 lands at row 0, col 0,
// increasing column-first. Each cell aspect-fits its raster and centers it.
// The output is fully deterministic: identical inputs and grid produce
// byte-identical bytes.
//
// Assets beyond Rows*Cols are ignored; the preview is a bounded sample.
func ComposePreview(assets []Asset, grid PreviewGrid) ([]byte, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, ErrNoSamples
	}
	if max := grid.Rows * grid.Cols; len(assets) > max {
		assets = assets[:max]
	}

	canvasW := grid.Cols*(grid.CellWidth+grid.Padding) + grid.Padding
	canvasH := grid.Rows*(grid.CellHeight+grid.Padding) + grid.Padding
	canvas := imaging.New(canvasW, canvasH, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	for i, a := range assets {
		img, err := assetImage(a)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}

		fitted := imaging.Fit(img, grid.CellWidth, grid.CellHeight, imaging.Lanczos)

		row := i / grid.Cols
		col := i % grid.Cols
		cellX := grid.Padding + col*(grid.CellWidth+grid.Padding)
		cellY := grid.Padding + row*(grid.CellHeight+grid.Padding)
		x := cellX + (grid.CellWidth-fitted.Bounds().Dx())/2
		y := cellY + (grid.CellHeight-fitted.Bounds().Dy())/2

		canvas = imaging.Paste(canvas, fitted, image.Pt(x, y))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.JPEG, imaging.JPEGQuality(previewJPEGQuality)); err != nil {
		return nil, fmt.Errorf("encoding preview: %w", err)
	}
	return buf.Bytes(), nil
}

// assetImage returns the asset's raster, loading it from disk when only a
// path is present.
func assetImage(a Asset) (image.Image, error) {
	if a.Image != nil {
		return a.Image, nil
	}
	if a.Path == "" {
		return nil, ErrAssetMissing
	}
	img, err := imaging.Open(a.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetMissing, a.Path, err)
	}
	return img, nil
}
