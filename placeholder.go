package bindery

import (
	"context"
	"hash/fnv"

	"github.com/fogleman/gg"
	"github.com/google/uuid"
)

// PlaceholderName identifies placeholder output in Asset.Provider and
// catalog records, so downstream tooling can tell it apart from real art.
const PlaceholderName = "placeholder"

// PlaceholderProvider renders deterministic line-art stand-ins locally.
// The motif is derived from an FNV hash of the prompt, so identical inputs
// produce identical rasters across runs and machines. It exists for tests,
// dry runs, and layout proofing; it is never a silent fallback for a real
// provider.
type PlaceholderProvider struct{}

// Name implements AssetProvider.
func (PlaceholderProvider) Name() string { return PlaceholderName }

// Generate implements AssetProvider. It always returns a raster sized
// exactly to the spec and never fails except on context cancellation.
func (PlaceholderProvider) Generate(ctx context.Context, prompt string, spec PageSpec) (Asset, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}

	w := spec.PixelWidth()
	h := spec.PixelHeight()
	dc := gg.NewContext(w, h)

	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)

	// Frame at the trim line so bleed is visible when proofing.
	inset := spec.BleedIn * float64(spec.DPI)
	dc.SetLineWidth(3)
	dc.DrawRectangle(inset, inset, float64(w)-2*inset, float64(h)-2*inset)
	dc.Stroke()

	// Prompt-seeded motif: a fixed number of circles in a linear
	// congruential walk. No ambient randomness anywhere.
	seed := fnv64(prompt)
	dc.SetLineWidth(2)
	for i := 0; i < 9; i++ {
		seed = seed*6364136223846793005 + 1442695040888963407
		cx := inset + float64(seed%1000)/1000*(float64(w)-2*inset)
		seed = seed*6364136223846793005 + 1442695040888963407
		cy := inset + float64(seed%1000)/1000*(float64(h)-2*inset)
		seed = seed*6364136223846793005 + 1442695040888963407
		r := float64(w) * (0.03 + float64(seed%100)/100*0.08)
		dc.DrawCircle(cx, cy, r)
		dc.Stroke()
	}

	label := prompt
	if len(label) > 64 {
		label = label[:64]
	}
	dc.DrawStringAnchored(label, float64(w)/2, inset+float64(spec.DPI)/10, 0.5, 0.5)

	return Asset{
		ID:       uuid.NewString(),
		Image:    dc.Image(),
		Width:    w,
		Height:   h,
		Provider: PlaceholderName,
	}, nil
}

func fnv64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
