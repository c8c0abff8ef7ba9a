package bindery

// Notes:
// - ResolvePageSpec: tests trim key lookup and bleed/DPI validation
// - PixelWidth/PixelHeight: tests the round((trim+2*bleed)*dpi) math
// - PointWidth/PointHeight: tests that points cover trim only, no bleed

import (
	"errors"
	"math"
	"testing"
)

// ---------------------------------------------------------------------------
// TestResolvePageSpec - Trim Key Resolution and Validation
// ---------------------------------------------------------------------------

func TestResolvePageSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		trimKey string
		bleedIn float64
		dpi     int
		wantErr error
	}{
		{
			name:    "standard letter with default bleed",
			trimKey: "8.5x11",
			bleedIn: DefaultBleedIn,
			dpi:     DefaultDPI,
			wantErr: nil,
		},
		{
			name:    "square trim",
			trimKey: "8.25x8.25",
			bleedIn: DefaultBleedIn,
			dpi:     300,
			wantErr: nil,
		},
		{
			name:    "zero bleed is legal",
			trimKey: "6x9",
			bleedIn: 0,
			dpi:     300,
			wantErr: nil,
		},
		{
			name:    "unknown trim key",
			trimKey: "4x6",
			bleedIn: DefaultBleedIn,
			dpi:     300,
			wantErr: ErrUnknownTrimSize,
		},
		{
			name:    "empty trim key",
			trimKey: "",
			bleedIn: DefaultBleedIn,
			dpi:     300,
			wantErr: ErrUnknownTrimSize,
		},
		{
			name:    "negative bleed",
			trimKey: "8.5x11",
			bleedIn: -0.125,
			dpi:     300,
			wantErr: ErrInvalidBleed,
		},
		{
			name:    "zero dpi",
			trimKey: "8.5x11",
			bleedIn: DefaultBleedIn,
			dpi:     0,
			wantErr: ErrInvalidDPI,
		},
		{
			name:    "negative dpi",
			trimKey: "8.5x11",
			bleedIn: DefaultBleedIn,
			dpi:     -300,
			wantErr: ErrInvalidDPI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			spec, err := ResolvePageSpec(tt.trimKey, tt.bleedIn, tt.dpi)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolvePageSpec() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePageSpec() unexpected error: %v", err)
			}
			if spec.Trim.Name != tt.trimKey {
				t.Errorf("Trim.Name = %q, want %q", spec.Trim.Name, tt.trimKey)
			}
			if spec.BleedIn != tt.bleedIn || spec.DPI != tt.dpi {
				t.Errorf("spec = %+v, want bleed %v dpi %d", spec, tt.bleedIn, tt.dpi)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPageSpec_PixelDimensions - Raster Geometry
// ---------------------------------------------------------------------------

func TestPageSpec_PixelDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		trimKey string
		bleedIn float64
		dpi     int
		wantW   int
		wantH   int
	}{
		{
			name:    "letter at 300dpi with bleed",
			trimKey: "8.5x11",
			bleedIn: 0.125,
			dpi:     300,
			wantW:   2625, // (8.5 + 0.25) * 300
			wantH:   3375, // (11 + 0.25) * 300
		},
		{
			name:    "letter at 300dpi without bleed",
			trimKey: "8.5x11",
			bleedIn: 0,
			dpi:     300,
			wantW:   2550,
			wantH:   3300,
		},
		{
			name:    "6x9 at 150dpi with bleed",
			trimKey: "6x9",
			bleedIn: 0.125,
			dpi:     150,
			wantW:   938, // 6.25 * 150 = 937.5, rounds up
			wantH:   1388, // 9.25 * 150 = 1387.5, rounds up
		},
		{
			name:    "square trim at 300dpi",
			trimKey: "8.25x8.25",
			bleedIn: 0.125,
			dpi:     300,
			wantW:   2550,
			wantH:   2550,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			spec, err := ResolvePageSpec(tt.trimKey, tt.bleedIn, tt.dpi)
			if err != nil {
				t.Fatalf("ResolvePageSpec() error: %v", err)
			}
			if got := spec.PixelWidth(); got != tt.wantW {
				t.Errorf("PixelWidth() = %d, want %d", got, tt.wantW)
			}
			if got := spec.PixelHeight(); got != tt.wantH {
				t.Errorf("PixelHeight() = %d, want %d", got, tt.wantH)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPageSpec_PointDimensions - PDF Geometry
// ---------------------------------------------------------------------------

func TestPageSpec_PointDimensions(t *testing.T) {
	t.Parallel()

	spec, err := ResolvePageSpec("8.5x11", 0.125, 300)
	if err != nil {
		t.Fatalf("ResolvePageSpec() error: %v", err)
	}

	// Points cover the trim box only; bleed never leaks into page size.
	if got := spec.PointWidth(); got != 8.5*72 {
		t.Errorf("PointWidth() = %v, want %v", got, 8.5*72)
	}
	if got := spec.PointHeight(); got != 11*72 {
		t.Errorf("PointHeight() = %v, want %v", got, 11*72)
	}
	if got := spec.BleedPoints(); math.Abs(got-9) > 1e-9 {
		t.Errorf("BleedPoints() = %v, want 9", got)
	}
}

// ---------------------------------------------------------------------------
// TestResolvePageSpec_Reproducible - Determinism
// ---------------------------------------------------------------------------

func TestResolvePageSpec_Reproducible(t *testing.T) {
	t.Parallel()

	first, err := ResolvePageSpec("7x10", 0.125, 300)
	if err != nil {
		t.Fatalf("ResolvePageSpec() error: %v", err)
	}
	second, err := ResolvePageSpec("7x10", 0.125, 300)
	if err != nil {
		t.Fatalf("ResolvePageSpec() error: %v", err)
	}
	if first != second {
		t.Errorf("identical inputs resolved differently: %+v vs %+v", first, second)
	}
}

// ---------------------------------------------------------------------------
// TestTrimSizeNames - Registry Listing
// ---------------------------------------------------------------------------

func TestTrimSizeNames(t *testing.T) {
	t.Parallel()

	names := TrimSizeNames()
	if len(names) != len(trimSizes) {
		t.Fatalf("TrimSizeNames() returned %d names, want %d", len(names), len(trimSizes))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
	for _, name := range names {
		if _, err := LookupTrimSize(name); err != nil {
			t.Errorf("LookupTrimSize(%q) error: %v", name, err)
		}
	}
}
