package bindery

import (
	"fmt"
	"math"
	"strings"
)

// MaxMarketplaceTags is the hard marketplace tag limit.
const MaxMarketplaceTags = 13

// CatalogFiles holds the artifact paths, relative to the publication
// directory. Interior is empty for clipart bundles.
type CatalogFiles struct {
	Interior string `json:"interior,omitempty"`
	Cover    string `json:"cover"`
	Preview  string `json:"preview"`
}

// Catalog is the listing record consumed by marketplace tooling. Every
// field is derived deterministically from configuration and final counts;
// no free-text generation is involved.
type Catalog struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Tags        []string     `json:"tags"`
	Price       float64      `json:"price"`
	Files       CatalogFiles `json:"files"`
	UnitCount   int          `json:"unitCount"`
}

// ageSuffixes maps age group keys to title suffixes.
var ageSuffixes = map[string]string{
	"kids-2-4":  " for Toddlers Ages 2-4",
	"kids-4-8":  " for Kids Ages 4-8",
	"kids-8-12": " for Kids Ages 8-12",
	"teens":     " for Teens",
	"adults":    " for Adults",
}

// productNouns maps publication kinds to their title noun.
var productNouns = map[string]string{
	KindColoringBook:  "Coloring Book",
	KindClipartBundle: "Clipart Bundle",
}

// BuildCatalog derives the full catalog record for a finished publication.
func BuildCatalog(cfg PublicationConfig, files CatalogFiles, model PriceModel) (Catalog, error) {
	cfg = cfg.withDefaults()

	price, err := PriceFor(cfg.UnitCount, cfg.ResolutionTier, model)
	if err != nil {
		return Catalog{}, err
	}

	return Catalog{
		Title:       TitleFor(cfg),
		Description: buildDescription(cfg),
		Tags:        buildTags(cfg),
		Price:       price,
		Files:       files,
		UnitCount:   cfg.UnitCount,
	}, nil
}

// TitleFor renders the fixed title template
// "{Style} {Theme} {ProductType}{AgeSuffix}" with title-case applied to
// the style and theme words.
func TitleFor(cfg PublicationConfig) string {
	cfg = cfg.withDefaults()

	noun := productNouns[cfg.Kind]
	if noun == "" {
		noun = "Bundle"
	}

	parts := make([]string, 0, 3)
	if s := titleCase(cfg.Style); s != "" {
		parts = append(parts, s)
	}
	if t := titleCase(cfg.Theme); t != "" {
		parts = append(parts, t)
	}
	parts = append(parts, noun)

	return strings.Join(parts, " ") + ageSuffixes[cfg.AgeGroup]
}

// titleCase upper-cases the first letter of each word and lower-cases the
// rest. Fixed ASCII rule; marketplace titles are English.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// buildDescription renders the deterministic listing description.
func buildDescription(cfg PublicationConfig) string {
	switch cfg.Kind {
	case KindClipartBundle:
		variations := ""
		if cfg.VariationsPerUnit > 0 {
			variations = fmt.Sprintf(" with %d color variations each", cfg.VariationsPerUnit)
		}
		return fmt.Sprintf(
			"%d %s %s clipart elements%s, delivered as high-resolution PNG files on transparent-friendly white backgrounds.",
			cfg.UnitCount, strings.ToLower(cfg.Style), strings.ToLower(cfg.Theme), variations,
		)
	default:
		pages := fmt.Sprintf("%d single-sided pages", cfg.UnitCount)
		if cfg.InterleaveBlanks {
			pages = fmt.Sprintf("%d pages, each backed by a blank sheet to prevent bleed-through", cfg.UnitCount)
		}
		return fmt.Sprintf(
			"A %s coloring book with %s of %s line art, %s difficulty, print-ready at %s.",
			strings.ToLower(cfg.Style), pages, strings.ToLower(cfg.Theme), cfg.Difficulty, cfg.TrimKey,
		)
	}
}

// baseTagPools maps kinds to their fixed base tag pool.
var baseTagPools = map[string][]string{
	KindColoringBook:  {"coloring book", "coloring pages", "printable", "activity book"},
	KindClipartBundle: {"clipart", "png", "digital download", "commercial use"},
}

// useCaseTags are appended after the config-derived tags.
var useCaseTags = []string{"gift idea", "craft project", "classroom", "party"}

// buildTags concatenates the base, style, theme, and use-case pools in a
// fixed order, de-duplicates preserving first occurrence, and truncates to
// the marketplace maximum.
func buildTags(cfg PublicationConfig) []string {
	pool := make([]string, 0, 2*MaxMarketplaceTags)
	pool = append(pool, baseTagPools[cfg.Kind]...)

	style := strings.ToLower(strings.TrimSpace(cfg.Style))
	theme := strings.ToLower(strings.TrimSpace(cfg.Theme))
	if style != "" {
		pool = append(pool, style, style+" art")
	}
	if theme != "" {
		pool = append(pool, theme, theme+" coloring", theme+" printable")
	}
	pool = append(pool, useCaseTags...)

	seen := make(map[string]struct{}, len(pool))
	tags := make([]string, 0, MaxMarketplaceTags)
	for _, tag := range pool {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
		if len(tags) == MaxMarketplaceTags {
			break
		}
	}
	return tags
}

// PriceFor computes base_price_for(count_tier) * resolution multiplier,
// rounded half-up to cents. Monotonic non-decreasing in both unit count
// and resolution tier as long as the model's tables are.
func PriceFor(unitCount int, resolutionTier string, model PriceModel) (float64, error) {
	if unitCount < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidUnitCount, unitCount)
	}
	mult, ok := model.Multipliers[resolutionTier]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownResolutionTier, resolutionTier)
	}

	base := 0.0
	found := false
	for _, tier := range model.Tiers {
		if unitCount >= tier.MinUnits {
			base = tier.Price
			found = true
		}
	}
	if !found {
		return 0, fmt.Errorf("%w: %d below lowest tier", ErrInvalidUnitCount, unitCount)
	}

	return roundHalfUpCents(base * mult), nil
}

// roundHalfUpCents rounds to 2 decimal places with ties going up.
func roundHalfUpCents(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}
