package bindery

import (
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/bindery/bindery/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Artifact names within a publication directory.
const (
	InteriorFileName = "interior.pdf"
	CoverFileName    = "cover.pdf"
	PreviewFileName  = "preview.jpg"
	CatalogFileName  = "catalog.json"
)

// Service runs the publication pipeline: geometry resolution, asset
// generation through the configured provider, interior assembly, cover
// composition, preview compositing, and catalog generation.
type Service struct {
	cfg      serviceConfig
	provider AssetProvider
}

// New creates a Service around the given asset provider. The provider is
// explicit by design: whether output is real or placeholder art is a
// caller decision, never a silent fallback. Use options to customize
// behavior (e.g., WithWorkers, WithStockTable).
func New(provider AssetProvider, opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			workers:      DefaultWorkers,
			retry:        DefaultRetryPolicy(),
			stock:        DefaultStockTable(),
			price:        DefaultPriceModel(),
			previewCells: DefaultPreviewCells,
		},
		provider: provider,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Produce runs the full pipeline for one publication and returns its
// catalog record. All artifacts are written to a hidden staging directory
// under outputRoot and renamed to outputRoot/{slug} only on full success;
// cancellation or any stage failure removes the staging directory, so the
// expected output paths never hold partial results. An existing directory
// for the same slug is replaced.
func (s *Service) Produce(ctx context.Context, cfg PublicationConfig, outputRoot string) (Catalog, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Catalog{}, stageErr(StageConfig, err)
	}
	spec, err := ResolvePageSpec(cfg.TrimKey, cfg.BleedIn, cfg.DPI)
	if err != nil {
		return Catalog{}, stageErr(StageConfig, err)
	}
	slug, err := fileutil.Slug(cfg.Theme)
	if err != nil {
		return Catalog{}, stageErr(StageConfig, err)
	}

	if err := os.MkdirAll(outputRoot, dirPermissions); err != nil {
		return Catalog{}, stageErr(StageWrite, fmt.Errorf("creating output root: %w", err))
	}
	staging, err := os.MkdirTemp(outputRoot, ".bindery-")
	if err != nil {
		return Catalog{}, stageErr(StageWrite, fmt.Errorf("creating staging directory: %w", err))
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.RemoveAll(staging)
		}
	}()

	assets, err := s.generateAssets(ctx, cfg, spec, staging)
	if err != nil {
		return Catalog{}, stageErr(StageGenerate, err)
	}

	files := CatalogFiles{Cover: CoverFileName, Preview: PreviewFileName}

	if cfg.Kind == KindColoringBook {
		interior, err := AssembleInterior(assets, spec, cfg.InterleaveBlanks)
		if err != nil {
			return Catalog{}, stageErr(StageAssemble, err)
		}
		if err := fileutil.WriteFileAtomic(filepath.Join(staging, InteriorFileName), interior, filePermissions); err != nil {
			return Catalog{}, stageErr(StageWrite, err)
		}
		files.Interior = InteriorFileName
	}

	cover, err := ComposeCover(CoverInput{
		Title:     TitleFor(cfg),
		Subtitle:  subtitleFor(cfg),
		PageCount: cfg.interiorPageCount(),
		Paper:     cfg.Paper,
		Spec:      spec,
		Direction: cfg.ReadingDirection,
		FontPath:  cfg.TitleFont,
	}, s.cfg.stock)
	if err != nil {
		return Catalog{}, stageErr(StageCover, err)
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(staging, CoverFileName), cover, filePermissions); err != nil {
		return Catalog{}, stageErr(StageWrite, err)
	}

	sample := assets
	if len(sample) > s.cfg.previewCells {
		sample = sample[:s.cfg.previewCells]
	}
	preview, err := ComposePreview(sample, DefaultPreviewGrid(len(sample)))
	if err != nil {
		return Catalog{}, stageErr(StagePreview, err)
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(staging, PreviewFileName), preview, filePermissions); err != nil {
		return Catalog{}, stageErr(StageWrite, err)
	}

	catalog, err := BuildCatalog(cfg, files, s.cfg.price)
	if err != nil {
		return Catalog{}, stageErr(StageCatalog, err)
	}
	record, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return Catalog{}, stageErr(StageCatalog, err)
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(staging, CatalogFileName), append(record, '\n'), filePermissions); err != nil {
		return Catalog{}, stageErr(StageWrite, err)
	}

	final := filepath.Join(outputRoot, slug)
	if err := os.RemoveAll(final); err != nil {
		return Catalog{}, stageErr(StageWrite, fmt.Errorf("replacing %s: %w", final, err))
	}
	if err := os.Rename(staging, final); err != nil {
		return Catalog{}, stageErr(StageWrite, fmt.Errorf("publishing %s: %w", final, err))
	}
	committed = true

	return catalog, nil
}

// generateAssets fans unit generation out across the worker pool and
// writes each page raster into the staging directory. Prompts and mixed
// difficulties are pre-drawn from the seeded source in index order before
// any goroutine starts, so concurrency cannot perturb the sequence.
func (s *Service) generateAssets(ctx context.Context, cfg PublicationConfig, spec PageSpec, staging string) ([]Asset, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	difficulties := difficultySequence(cfg, rng)

	prompts := make([]string, cfg.UnitCount)
	variationPrompts := make([][]string, cfg.UnitCount)
	for i := 0; i < cfg.UnitCount; i++ {
		prompts[i] = promptFor(cfg, i, difficulties[i])
		if cfg.Kind == KindClipartBundle && cfg.VariationsPerUnit > 0 {
			variationPrompts[i] = make([]string, cfg.VariationsPerUnit)
			for v := range variationPrompts[i] {
				variationPrompts[i][v] = variationPromptFor(cfg, i, v)
			}
		}
	}

	provider := NewRetryProvider(s.provider, s.cfg.retry)
	assets := make([]Asset, cfg.UnitCount)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.workers)
	for i := 0; i < cfg.UnitCount; i++ {
		g.Go(func() error {
			asset, err := s.generateUnit(gctx, provider, prompts[i], spec, staging, pageFileName(i, -1))
			if err != nil {
				return fmt.Errorf("unit %d: %w", i, err)
			}
			asset.Tags = AssetTags{Theme: cfg.Theme, Style: cfg.Style, Difficulty: difficulties[i]}

			for v, prompt := range variationPrompts[i] {
				variation, err := s.generateUnit(gctx, provider, prompt, spec, staging, pageFileName(i, v))
				if err != nil {
					return fmt.Errorf("unit %d variation %d: %w", i, v, err)
				}
				asset.Variations = append(asset.Variations, variation)
			}

			assets[i] = asset
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return assets, nil
}

// generateUnit produces one raster and persists it under the staging
// directory. Dimension violations are caught here, before assembly, so a
// misbehaving provider fails the publication with the offending unit named.
func (s *Service) generateUnit(ctx context.Context, provider AssetProvider, prompt string, spec PageSpec, staging, fileName string) (Asset, error) {
	asset, err := provider.Generate(ctx, prompt, spec)
	if err != nil {
		return Asset{}, err
	}
	if asset.Image == nil {
		return Asset{}, ErrAssetMissing
	}
	if asset.Width != spec.PixelWidth() || asset.Height != spec.PixelHeight() {
		return Asset{}, fmt.Errorf("%w: provider returned %dx%d, spec requires %dx%d",
			ErrDimensionMismatch, asset.Width, asset.Height, spec.PixelWidth(), spec.PixelHeight())
	}

	path := filepath.Join(staging, fileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePermissions)
	if err != nil {
		return Asset{}, fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, asset.Image); err != nil {
		_ = f.Close()
		return Asset{}, fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return Asset{}, fmt.Errorf("closing %s: %w", path, err)
	}

	asset.Path = path
	return asset, nil
}

// pageFileName names page rasters: page-001.png, with variations as
// page-001-var-01.png. Pages are numbered from 1.
func pageFileName(index, variation int) string {
	if variation < 0 {
		return fmt.Sprintf("page-%03d.png", index+1)
	}
	return fmt.Sprintf("page-%03d-var-%02d.png", index+1, variation+1)
}

// subtitleFor returns the configured subtitle, or a deterministic default
// derived from the unit count.
func subtitleFor(cfg PublicationConfig) string {
	if cfg.Subtitle != "" {
		return cfg.Subtitle
	}
	noun := "Coloring Pages"
	if cfg.Kind == KindClipartBundle {
		noun = "Clipart Elements"
	}
	return fmt.Sprintf("%d Unique %s", cfg.UnitCount, noun)
}
