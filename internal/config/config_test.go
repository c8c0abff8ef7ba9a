package config

// Notes:
// - LoadConfig: tests parsing, strict unknown-field rejection, and the
//   missing-file sentinel
// - Validate: tests structural limits only; per-entry semantics belong to
//   the library
// - ToPublicationConfig: tests the omission-aware bleed default

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bindery/bindery"
)

// writeConfig drops a YAML batch file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

const validYAML = `outputRoot: out
workers: 2
maxConcurrentPublications: 1
publications:
  - kind: coloring-book
    theme: dinosaurs
    style: cute
    trimSize: 8.5x11
    units: 30
    interleaveBlanks: true
  - kind: clipart-bundle
    theme: woodland
    style: watercolor
    units: 12
    variations: 3
    bleed: 0
`

// ---------------------------------------------------------------------------
// TestLoadConfig
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("valid batch file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfig(writeConfig(t, validYAML))
		if err != nil {
			t.Fatalf("LoadConfig() error: %v", err)
		}
		if cfg.OutputRoot != "out" || cfg.Workers != 2 || cfg.MaxConcurrentPublications != 1 {
			t.Errorf("shared settings = %+v", cfg)
		}
		if len(cfg.Publications) != 2 {
			t.Fatalf("got %d publications, want 2", len(cfg.Publications))
		}
		if cfg.Publications[0].Theme != "dinosaurs" || !cfg.Publications[0].InterleaveBlanks {
			t.Errorf("first publication = %+v", cfg.Publications[0])
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, `publications:
  - theme: dinosaurs
    unitz: 30
`))
		if !errors.Is(err, ErrConfigParse) {
			t.Fatalf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "publications: [\n"))
		if !errors.Is(err, ErrConfigParse) {
			t.Fatalf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("no publications", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "outputRoot: out\npublications: []\n"))
		if !errors.Is(err, ErrNoPublications) {
			t.Fatalf("LoadConfig() error = %v, want ErrNoPublications", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Structural Limits
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		return &Config{Publications: []Publication{{Theme: "dinosaurs", Units: 10}}}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name: "theme too long",
			mutate: func(c *Config) {
				c.Publications[0].Theme = strings.Repeat("a", MaxThemeLength+1)
			},
			wantErr: ErrFieldTooLong,
		},
		{
			name: "style too long",
			mutate: func(c *Config) {
				c.Publications[0].Style = strings.Repeat("a", MaxStyleLength+1)
			},
			wantErr: ErrFieldTooLong,
		},
		{
			name: "subtitle too long",
			mutate: func(c *Config) {
				c.Publications[0].Subtitle = strings.Repeat("a", MaxSubtitleLength+1)
			},
			wantErr: ErrFieldTooLong,
		},
		{
			name: "too many publications",
			mutate: func(c *Config) {
				c.Publications = make([]Publication, MaxPublications+1)
			},
			wantErr: ErrTooManyEntries,
		},
		{
			name: "non-positive thickness override",
			mutate: func(c *Config) {
				c.PaperStocks = &StockConfig{
					Version:       "test",
					InchesPerPage: map[string]float64{"white": 0},
				}
			},
			wantErr: ErrInvalidThickness,
		},
		{
			name: "unknown trim key passes structural validation",
			mutate: func(c *Config) {
				// Semantic errors are the library's job, per publication.
				c.Publications[0].TrimSize = "11x17"
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPublication_ToPublicationConfig - Bleed Default
// ---------------------------------------------------------------------------

func TestPublication_ToPublicationConfig(t *testing.T) {
	t.Parallel()

	t.Run("omitted bleed defaults", func(t *testing.T) {
		t.Parallel()

		p := Publication{Theme: "dinosaurs", Units: 10}
		got := p.ToPublicationConfig()
		if got.BleedIn != bindery.DefaultBleedIn {
			t.Errorf("BleedIn = %v, want default %v", got.BleedIn, bindery.DefaultBleedIn)
		}
	})

	t.Run("explicit zero bleed survives", func(t *testing.T) {
		t.Parallel()

		zero := 0.0
		p := Publication{Theme: "dinosaurs", Units: 10, Bleed: &zero}
		got := p.ToPublicationConfig()
		if got.BleedIn != 0 {
			t.Errorf("BleedIn = %v, want explicit 0", got.BleedIn)
		}
	})

	t.Run("field mapping", func(t *testing.T) {
		t.Parallel()

		p := Publication{
			Kind:       "clipart-bundle",
			Theme:      "woodland",
			Style:      "watercolor",
			TrimSize:   "6x9",
			DPI:        600,
			Units:      12,
			Variations: 3,
			Paper:      "cream",
			Resolution: "print",
			Direction:  "rtl",
			Seed:       42,
		}
		got := p.ToPublicationConfig()
		if got.Kind != "clipart-bundle" || got.TrimKey != "6x9" || got.UnitCount != 12 ||
			got.VariationsPerUnit != 3 || got.ResolutionTier != "print" ||
			got.ReadingDirection != "rtl" || got.Seed != 42 {
			t.Errorf("mapped config = %+v", got)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConfig_StockTable
// ---------------------------------------------------------------------------

func TestConfig_StockTable(t *testing.T) {
	t.Parallel()

	t.Run("nil override uses the default table", func(t *testing.T) {
		t.Parallel()

		c := &Config{}
		if got := c.StockTable(); got.Version != bindery.DefaultStockTable().Version {
			t.Errorf("version = %q, want default", got.Version)
		}
	})

	t.Run("override replaces the table", func(t *testing.T) {
		t.Parallel()

		c := &Config{PaperStocks: &StockConfig{
			Version:       "vendor-2026.2",
			InchesPerPage: map[string]float64{"white": 0.0023},
		}}
		got := c.StockTable()
		if got.Version != "vendor-2026.2" || got.InchesPerPage["white"] != 0.0023 {
			t.Errorf("table = %+v", got)
		}
	})
}
