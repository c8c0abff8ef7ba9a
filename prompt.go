package bindery

import (
	"fmt"
	"math/rand"
)

// promptFor builds the deterministic generation prompt for one unit.
// Providers across runs see identical prompts for identical configs, which
// keeps the placeholder provider byte-reproducible and real providers
// cache-friendly.
func promptFor(cfg PublicationConfig, index int, difficulty string) string {
	switch cfg.Kind {
	case KindClipartBundle:
		return fmt.Sprintf(
			"%s clipart element, %s theme, element %d, isolated on white background, %s detail",
			cfg.Style, cfg.Theme, index+1, difficulty,
		)
	default:
		return fmt.Sprintf(
			"black and white line art coloring page, %s theme, %s style, %s detail, page %d, clean outlines, no shading",
			cfg.Theme, cfg.Style, difficulty, index+1,
		)
	}
}

// variationPromptFor builds the prompt for the k-th color variation of a
// clipart element.
func variationPromptFor(cfg PublicationConfig, index, variation int) string {
	return fmt.Sprintf(
		"%s clipart element, %s theme, element %d, color variation %d, isolated on white background",
		cfg.Style, cfg.Theme, index+1, variation+1,
	)
}

// difficultySequence pre-draws one difficulty per unit from the seeded
// source. For anything but "mixed" the sequence is constant; for "mixed"
// the draws happen up front, in index order, so concurrent generation
// cannot perturb them.
func difficultySequence(cfg PublicationConfig, rng *rand.Rand) []string {
	levels := []string{DifficultyEasy, DifficultyMedium, DifficultyHard}
	seq := make([]string, cfg.UnitCount)
	for i := range seq {
		if cfg.Difficulty == DifficultyMixed {
			seq[i] = levels[rng.Intn(len(levels))]
		} else {
			seq[i] = cfg.Difficulty
		}
	}
	return seq
}
