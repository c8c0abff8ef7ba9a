package bindery

import (
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Cover text layout constants, in points unless noted.
const (
	// coverTitleFraction caps each wrapped title line at this fraction of
	// the full wraparound canvas width.
	coverTitleFraction = 0.20
	coverTitleSize     = 34.0
	coverSubtitleSize  = 16.0
	coverLineSpacing   = 1.25
	// subtitleOffset separates the subtitle block from the title block.
	subtitleOffset = 36.0
)

// SpineInches derives the spine width from page count and paper stock.
// Strictly increasing in page count for a fixed stock, since every stock
// thickness in a valid table is positive.
func SpineInches(pageCount int, stock string, table StockTable) (float64, error) {
	if pageCount < 1 {
		return 0, fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidPageCount, pageCount)
	}
	perPage, ok := table.InchesPerPage[stock]
	if !ok || perPage <= 0 {
		return 0, fmt.Errorf("%w: %q (table version %s)", ErrUnknownPaperStock, stock, table.Version)
	}
	return float64(pageCount) * perPage, nil
}

// CoverInput carries everything the composer needs for one wraparound.
type CoverInput struct {
	Title     string
	Subtitle  string
	PageCount int
	Paper     string
	Spec      PageSpec
	Direction string // ltr or rtl; empty means ltr
	FontPath  string // optional TTF for the title; must exist if set
}

// CoverLayout is the computed wraparound geometry in points.
// TotalW = FrontPanelW + BackPanelW + SpineW + 2*bleed.
type CoverLayout struct {
	FrontPanelW float64
	BackPanelW  float64
	SpineW      float64
	TotalW      float64
	TotalH      float64
	// FrontPanelX is the left edge of the front panel: the right half for
	// left-to-right books, the left half for right-to-left.
	FrontPanelX float64
}

// ComputeCoverLayout resolves the wraparound canvas geometry. Pure.
func ComputeCoverLayout(in CoverInput, table StockTable) (CoverLayout, error) {
	spineIn, err := SpineInches(in.PageCount, in.Paper, table)
	if err != nil {
		return CoverLayout{}, err
	}

	trimW := in.Spec.PointWidth()
	bleed := in.Spec.BleedPoints()
	layout := CoverLayout{
		FrontPanelW: trimW,
		BackPanelW:  trimW,
		SpineW:      spineIn * PointsPerInch,
		TotalH:      in.Spec.PointHeight() + 2*bleed,
	}
	layout.TotalW = layout.FrontPanelW + layout.BackPanelW + layout.SpineW + 2*bleed

	switch in.Direction {
	case DirectionRTL:
		layout.FrontPanelX = bleed
	case DirectionLTR, "":
		layout.FrontPanelX = bleed + layout.BackPanelW + layout.SpineW
	default:
		return CoverLayout{}, fmt.Errorf("%w: %q", ErrUnknownDirection, in.Direction)
	}
	return layout, nil
}

// ComposeCover renders the single-page wraparound cover PDF: back panel,
// spine, and front panel on one canvas, with the title greedily wrapped
// and vertically centered in the front panel and the subtitle a fixed
// offset below. A missing font resource is fatal, never skipped.
func ComposeCover(in CoverInput, table StockTable) ([]byte, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrEmptyTitle
	}
	layout, err := ComputeCoverLayout(in, table)
	if err != nil {
		return nil, err
	}

	// Orientation "P" keeps Wd/Ht as given; "L" would swap them even for
	// an explicit size.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: layout.TotalW, Ht: layout.TotalH},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(pdfEpoch)
	pdf.AddPage()

	family, style, err := coverFont(pdf, in.FontPath)
	if err != nil {
		return nil, err
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(family, style, coverTitleSize)
	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrFontLoad, pdf.Error())
	}

	maxLineW := layout.TotalW * coverTitleFraction
	titleLines := wrapToWidth(pdf, in.Title, maxLineW)

	titleLineH := coverTitleSize * coverLineSpacing
	blockH := float64(len(titleLines)) * titleLineH
	blockTop := (layout.TotalH - blockH) / 2

	for i, line := range titleLines {
		baseline := blockTop + float64(i)*titleLineH + coverTitleSize
		drawCenteredLine(pdf, line, layout.FrontPanelX, layout.FrontPanelW, baseline)
	}

	if in.Subtitle != "" {
		pdf.SetFont(family, "", coverSubtitleSize)
		subLines := wrapToWidth(pdf, in.Subtitle, maxLineW)
		subLineH := coverSubtitleSize * coverLineSpacing
		subTop := blockTop + blockH + subtitleOffset
		for i, line := range subLines {
			baseline := subTop + float64(i)*subLineH + coverSubtitleSize
			drawCenteredLine(pdf, line, layout.FrontPanelX, layout.FrontPanelW, baseline)
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, pdf.Error())
	}
	return outputPDF(pdf)
}

// coverFont loads the configured title font, falling back to the built-in
// Helvetica bold when no path is set.
func coverFont(pdf *gofpdf.Fpdf, fontPath string) (family, style string, err error) {
	if fontPath == "" {
		return "Helvetica", "B", nil
	}
	if _, statErr := os.Stat(fontPath); statErr != nil {
		return "", "", fmt.Errorf("%w: %s: %v", ErrFontLoad, fontPath, statErr)
	}
	pdf.AddUTF8Font("cover", "", fontPath)
	if pdf.Err() {
		return "", "", fmt.Errorf("%w: %s: %v", ErrFontLoad, fontPath, pdf.Error())
	}
	return "cover", "", nil
}

// wrapToWidth greedily packs words into lines no wider than maxW as
// measured by the current font. A single word wider than maxW gets its own
// line; fonts cannot split words.
func wrapToWidth(pdf *gofpdf.Fpdf, text string, maxW float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if pdf.GetStringWidth(candidate) <= maxW {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// drawCenteredLine centers one text line horizontally within a panel.
func drawCenteredLine(pdf *gofpdf.Fpdf, line string, panelX, panelW, baseline float64) {
	x := panelX + (panelW-pdf.GetStringWidth(line))/2
	pdf.Text(x, baseline, line)
}
