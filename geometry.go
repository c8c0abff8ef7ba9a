package bindery

import (
	"fmt"
	"math"
)

// ResolvePageSpec converts a trim size key plus bleed and DPI into a
// concrete PageSpec. Pass DefaultBleedIn and DefaultDPI for the standard
// print-on-demand setup. Pure function, no state.
func ResolvePageSpec(trimKey string, bleedIn float64, dpi int) (PageSpec, error) {
	trim, err := LookupTrimSize(trimKey)
	if err != nil {
		return PageSpec{}, err
	}
	if bleedIn < 0 {
		return PageSpec{}, fmt.Errorf("%w: %.3f (must be >= 0)", ErrInvalidBleed, bleedIn)
	}
	if dpi <= 0 {
		return PageSpec{}, fmt.Errorf("%w: %d (must be > 0)", ErrInvalidDPI, dpi)
	}
	return PageSpec{Trim: trim, BleedIn: bleedIn, DPI: dpi}, nil
}

// PixelWidth is the raster width including bleed on both edges:
// round((trim_w + 2*bleed) * dpi).
func (s PageSpec) PixelWidth() int {
	return int(math.Round((s.Trim.WidthIn + 2*s.BleedIn) * float64(s.DPI)))
}

// PixelHeight is the raster height including bleed on both edges.
func (s PageSpec) PixelHeight() int {
	return int(math.Round((s.Trim.HeightIn + 2*s.BleedIn) * float64(s.DPI)))
}

// PointWidth is the trim width in PDF points (1in = 72pt). Bleed is
// excluded: interior pages are laid out at trim size.
func (s PageSpec) PointWidth() float64 {
	return s.Trim.WidthIn * PointsPerInch
}

// PointHeight is the trim height in PDF points.
func (s PageSpec) PointHeight() float64 {
	return s.Trim.HeightIn * PointsPerInch
}

// BleedPoints is the bleed in PDF points.
func (s PageSpec) BleedPoints() float64 {
	return s.BleedIn * PointsPerInch
}
