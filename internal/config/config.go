// Package config loads and validates batch configuration files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/bindery/bindery"
	"github.com/bindery/bindery/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound   = errors.New("config file not found")
	ErrConfigParse      = errors.New("failed to parse config")
	ErrNoPublications   = errors.New("config lists no publications")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
	ErrTooManyEntries   = errors.New("too many publications in one batch")
	ErrInvalidThickness = errors.New("paper thickness must be positive")
)

// Field length limits, to keep hostile configs from abusing titles/paths.
const (
	MaxThemeLength    = 100
	MaxStyleLength    = 50
	MaxSubtitleLength = 200
	MaxPathLength     = 1024
	MaxPublications   = 100
)

// Config is one batch file: shared settings plus the publication list.
type Config struct {
	OutputRoot                string       `yaml:"outputRoot"`
	Workers                   int          `yaml:"workers"`
	MaxConcurrentPublications int          `yaml:"maxConcurrentPublications"`
	PaperStocks               *StockConfig `yaml:"paperStocks"`
	Publications              []Publication `yaml:"publications"`
}

// StockConfig overrides the built-in paper thickness table. Version names
// the vendor revision the numbers came from.
type StockConfig struct {
	Version       string             `yaml:"version"`
	InchesPerPage map[string]float64 `yaml:"inchesPerPage"`
}

// Publication mirrors bindery.PublicationConfig with YAML tags and
// omission-aware defaults (a nil bleed means 0.125in; an explicit 0 means
// no bleed).
type Publication struct {
	Kind             string   `yaml:"kind"`
	Theme            string   `yaml:"theme"`
	Style            string   `yaml:"style"`
	Difficulty       string   `yaml:"difficulty"`
	AgeGroup         string   `yaml:"ageGroup"`
	TrimSize         string   `yaml:"trimSize"`
	Bleed            *float64 `yaml:"bleed"`
	DPI              int      `yaml:"dpi"`
	Units            int      `yaml:"units"`
	InterleaveBlanks bool     `yaml:"interleaveBlanks"`
	Variations       int      `yaml:"variations"`
	Paper            string   `yaml:"paper"`
	Resolution       string   `yaml:"resolution"`
	Direction        string   `yaml:"direction"`
	Subtitle         string   `yaml:"subtitle"`
	TitleFont        string   `yaml:"titleFont"`
	Seed             int64    `yaml:"seed"`
}

// LoadConfig reads, parses, and validates a batch file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-supplied config path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks structural limits. Publication semantics (trim keys,
// paper names, unit counts) are validated by the library per publication,
// so a single bad entry fails alone instead of rejecting the whole batch.
func (c *Config) Validate() error {
	if len(c.Publications) == 0 {
		return ErrNoPublications
	}
	if len(c.Publications) > MaxPublications {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyEntries, len(c.Publications), MaxPublications)
	}
	for i, p := range c.Publications {
		if err := validateFieldLength(fmt.Sprintf("publications[%d].theme", i), p.Theme, MaxThemeLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("publications[%d].style", i), p.Style, MaxStyleLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("publications[%d].subtitle", i), p.Subtitle, MaxSubtitleLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("publications[%d].titleFont", i), p.TitleFont, MaxPathLength); err != nil {
			return err
		}
	}
	if c.PaperStocks != nil {
		for stock, thickness := range c.PaperStocks.InchesPerPage {
			if thickness <= 0 {
				return fmt.Errorf("%w: %s = %f", ErrInvalidThickness, stock, thickness)
			}
		}
	}
	return nil
}

// validateFieldLength checks a single field against its limit.
func validateFieldLength(field, value string, max int) error {
	if len(value) > max {
		return fmt.Errorf("%w: %s is %d chars (max %d)", ErrFieldTooLong, field, len(value), max)
	}
	return nil
}

// StockTable resolves the effective paper thickness table.
func (c *Config) StockTable() bindery.StockTable {
	if c.PaperStocks == nil {
		return bindery.DefaultStockTable()
	}
	return bindery.StockTable{
		Version:       c.PaperStocks.Version,
		InchesPerPage: c.PaperStocks.InchesPerPage,
	}
}

// PublicationConfigs converts every entry to a library config.
func (c *Config) PublicationConfigs() []bindery.PublicationConfig {
	configs := make([]bindery.PublicationConfig, len(c.Publications))
	for i, p := range c.Publications {
		configs[i] = p.ToPublicationConfig()
	}
	return configs
}

// ToPublicationConfig maps one YAML entry to the library type, applying
// the omission-aware bleed default.
func (p Publication) ToPublicationConfig() bindery.PublicationConfig {
	bleed := bindery.DefaultBleedIn
	if p.Bleed != nil {
		bleed = *p.Bleed
	}
	return bindery.PublicationConfig{
		Kind:              p.Kind,
		Theme:             p.Theme,
		Style:             p.Style,
		Difficulty:        p.Difficulty,
		AgeGroup:          p.AgeGroup,
		TrimKey:           p.TrimSize,
		BleedIn:           bleed,
		DPI:               p.DPI,
		UnitCount:         p.Units,
		InterleaveBlanks:  p.InterleaveBlanks,
		VariationsPerUnit: p.Variations,
		Paper:             p.Paper,
		ResolutionTier:    p.Resolution,
		ReadingDirection:  p.Direction,
		Subtitle:          p.Subtitle,
		TitleFont:         p.TitleFont,
		Seed:              p.Seed,
	}
}
