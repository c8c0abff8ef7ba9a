package bindery

import (
	"fmt"
	"sort"
)

// Publication kind constants.
const (
	KindColoringBook  = "coloring-book"
	KindClipartBundle = "clipart-bundle"
)

// Difficulty constants. DifficultyMixed draws a per-asset level from the
// publication's seeded random source, so batches stay reproducible.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyMixed  = "mixed"
)

// Reading direction constants. Direction decides which half of the
// wraparound cover is the front panel.
const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

// Paper stock constants.
const (
	PaperWhite = "white"
	PaperCream = "cream"
)

// Resolution tier constants.
const (
	ResolutionStandard = "standard"
	ResolutionHigh     = "high"
	ResolutionPrint    = "print"
)

// Geometry defaults and unit conversion.
const (
	DefaultBleedIn = 0.125
	DefaultDPI     = 300
	PointsPerInch  = 72.0
)

// TrimSize is a finished page size after the bleed is cut away.
type TrimSize struct {
	Name     string
	WidthIn  float64
	HeightIn float64
}

// trimSizes is the registry of supported trim sizes, keyed by name.
var trimSizes = map[string]TrimSize{
	"8.5x11":    {Name: "8.5x11", WidthIn: 8.5, HeightIn: 11},
	"8.25x8.25": {Name: "8.25x8.25", WidthIn: 8.25, HeightIn: 8.25},
	"8x10":      {Name: "8x10", WidthIn: 8, HeightIn: 10},
	"7x10":      {Name: "7x10", WidthIn: 7, HeightIn: 10},
	"6x9":       {Name: "6x9", WidthIn: 6, HeightIn: 9},
	"5x8":       {Name: "5x8", WidthIn: 5, HeightIn: 8},
}

// TrimSizeNames returns the supported trim size keys in sorted order,
// for error messages and shell completion.
func TrimSizeNames() []string {
	names := make([]string, 0, len(trimSizes))
	for name := range trimSizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupTrimSize resolves a trim size key.
func LookupTrimSize(key string) (TrimSize, error) {
	ts, ok := trimSizes[key]
	if !ok {
		return TrimSize{}, fmt.Errorf("%w: %q (supported: %v)", ErrUnknownTrimSize, key, TrimSizeNames())
	}
	return ts, nil
}

// PageSpec is a trim size plus bleed and DPI. Derived pixel and point
// dimensions live in geometry.go.
type PageSpec struct {
	Trim    TrimSize
	BleedIn float64
	DPI     int
}

// StockTable maps paper stocks to per-page thickness in inches. The table
// is versioned because print vendors revise these numbers periodically;
// swapping in an updated table is a data change, not a code change.
type StockTable struct {
	Version      string
	InchesPerPage map[string]float64
}

// DefaultStockTable returns the current vendor thickness table.
func DefaultStockTable() StockTable {
	return StockTable{
		Version: "kdp-2024.1",
		InchesPerPage: map[string]float64{
			PaperWhite: 0.002252,
			PaperCream: 0.0025,
		},
	}
}

// PriceTier binds a minimum unit count to a base price.
type PriceTier struct {
	MinUnits int
	Price    float64
}

// PriceModel derives a listing price from unit count and resolution tier.
// Tiers must be sorted ascending by MinUnits and monotonic non-decreasing
// in price; DefaultPriceModel satisfies both.
type PriceModel struct {
	Tiers       []PriceTier
	Multipliers map[string]float64
}

// DefaultPriceModel returns the standard marketplace pricing.
func DefaultPriceModel() PriceModel {
	return PriceModel{
		Tiers: []PriceTier{
			{MinUnits: 1, Price: 3.99},
			{MinUnits: 25, Price: 5.99},
			{MinUnits: 50, Price: 7.99},
			{MinUnits: 100, Price: 9.99},
		},
		Multipliers: map[string]float64{
			ResolutionStandard: 1.0,
			ResolutionHigh:     1.15,
			ResolutionPrint:    1.3,
		},
	}
}

// PublicationConfig describes one publication to produce. It is treated as
// immutable once the pipeline starts: the Service works on a defaulted copy
// and never writes back.
type PublicationConfig struct {
	Kind       string // "coloring-book" or "clipart-bundle"
	Theme      string // subject matter, also the output directory slug
	Style      string // e.g. "cute", "realistic", "mandala"
	Difficulty string // easy, medium, hard, or mixed (default: medium)
	AgeGroup   string // optional, keys the title suffix

	TrimKey string  // registry key (default: "8.5x11")
	BleedIn float64 // inches; zero is a legal explicit value
	DPI     int     // default: 300

	UnitCount        int  // pages (coloring book) or elements (clipart)
	InterleaveBlanks bool // blank back behind each content page
	VariationsPerUnit int // clipart color variations per element

	Paper            string // white or cream (default: white)
	ResolutionTier   string // standard, high, or print (default: standard)
	ReadingDirection string // ltr or rtl (default: ltr)

	Subtitle  string // optional cover subtitle; derived from counts if empty
	TitleFont string // optional TTF path for the cover title
	Seed      int64  // seeds mixed-difficulty and variation ordering
}

// withDefaults returns a copy with empty fields resolved to defaults.
// BleedIn is not defaulted here: zero bleed is meaningful, so the 0.125in
// default is applied by config loading, where "omitted" is observable.
func (c PublicationConfig) withDefaults() PublicationConfig {
	if c.TrimKey == "" {
		c.TrimKey = "8.5x11"
	}
	if c.DPI == 0 {
		c.DPI = DefaultDPI
	}
	if c.Difficulty == "" {
		c.Difficulty = DifficultyMedium
	}
	if c.Paper == "" {
		c.Paper = PaperWhite
	}
	if c.ResolutionTier == "" {
		c.ResolutionTier = ResolutionStandard
	}
	if c.ReadingDirection == "" {
		c.ReadingDirection = DirectionLTR
	}
	return c
}

// Validate checks the configuration before any generation call.
// Defaults are applied first, so a sparse config validates the same way
// the pipeline will actually run it.
func (c PublicationConfig) Validate() error {
	d := c.withDefaults()

	if d.Theme == "" {
		return ErrEmptyTheme
	}
	switch d.Kind {
	case KindColoringBook, KindClipartBundle:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}
	if _, err := LookupTrimSize(d.TrimKey); err != nil {
		return err
	}
	if d.BleedIn < 0 {
		return fmt.Errorf("%w: %.3f (must be >= 0)", ErrInvalidBleed, d.BleedIn)
	}
	if d.DPI <= 0 {
		return fmt.Errorf("%w: %d (must be > 0)", ErrInvalidDPI, d.DPI)
	}
	if d.UnitCount < 1 {
		return fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidUnitCount, d.UnitCount)
	}
	if d.VariationsPerUnit < 0 {
		return fmt.Errorf("%w: negative variations per unit", ErrInvalidUnitCount)
	}
	switch d.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyMixed:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDifficulty, d.Difficulty)
	}
	switch d.Paper {
	case PaperWhite, PaperCream:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPaperStock, d.Paper)
	}
	switch d.ResolutionTier {
	case ResolutionStandard, ResolutionHigh, ResolutionPrint:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownResolutionTier, d.ResolutionTier)
	}
	switch d.ReadingDirection {
	case DirectionLTR, DirectionRTL:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDirection, d.ReadingDirection)
	}
	return nil
}

// interiorPageCount is the assembled interior page count for this config.
func (c PublicationConfig) interiorPageCount() int {
	if c.InterleaveBlanks {
		return c.UnitCount * 2
	}
	return c.UnitCount
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	workers      int
	retry        RetryPolicy
	stock        StockTable
	price        PriceModel
	previewCells int
}

// Service defaults.
const (
	DefaultWorkers      = 4
	DefaultPreviewCells = 6
)

// WithWorkers bounds the per-publication asset generation pool.
// Panics if n < 1 (programmer error, similar to time.NewTicker).
func WithWorkers(n int) Option {
	if n < 1 {
		panic("bindery: WithWorkers count must be positive")
	}
	return func(s *Service) {
		s.cfg.workers = n
	}
}

// WithRetryPolicy sets the provider retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(s *Service) {
		s.cfg.retry = p
	}
}

// WithStockTable replaces the paper thickness table.
func WithStockTable(t StockTable) Option {
	return func(s *Service) {
		s.cfg.stock = t
	}
}

// WithPriceModel replaces the pricing model.
func WithPriceModel(m PriceModel) Option {
	return func(s *Service) {
		s.cfg.price = m
	}
}

// WithPreviewCells bounds how many sample assets land in the preview grid.
// Panics if n < 1.
func WithPreviewCells(n int) Option {
	if n < 1 {
		panic("bindery: WithPreviewCells count must be positive")
	}
	return func(s *Service) {
		s.cfg.previewCells = n
	}
}
