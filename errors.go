package bindery

import "errors"

// Sentinel errors for library operations.
var (
	// Configuration errors, raised before any generation call.
	ErrUnknownTrimSize       = errors.New("unknown trim size")
	ErrInvalidBleed          = errors.New("invalid bleed")
	ErrInvalidDPI            = errors.New("invalid DPI")
	ErrInvalidUnitCount      = errors.New("invalid unit count")
	ErrUnknownPaperStock     = errors.New("unknown paper stock")
	ErrUnknownResolutionTier = errors.New("unknown resolution tier")
	ErrUnknownKind           = errors.New("unknown publication kind")
	ErrUnknownDifficulty     = errors.New("unknown difficulty")
	ErrUnknownDirection      = errors.New("unknown reading direction")
	ErrEmptyTheme            = errors.New("theme cannot be empty")

	// Asset generation errors. RateLimited and Timeout are transient and
	// retried at the provider boundary; exhausted retries surface as
	// ErrRetriesExhausted and fail the whole publication.
	ErrRateLimited      = errors.New("provider rate limited")
	ErrProviderTimeout  = errors.New("provider timed out")
	ErrProviderFailure  = errors.New("provider failure")
	ErrRetriesExhausted = errors.New("asset generation retries exhausted")

	// Assembly errors. Any of these aborts the document; nothing is written.
	ErrNoAssets          = errors.New("no assets to assemble")
	ErrAssetMissing      = errors.New("asset has no raster data")
	ErrDimensionMismatch = errors.New("asset dimensions do not match page spec")

	// Cover composition errors.
	ErrInvalidPageCount = errors.New("invalid page count")
	ErrEmptyTitle       = errors.New("cover title cannot be empty")
	ErrFontLoad         = errors.New("cover font could not be loaded")

	// Preview composition errors.
	ErrNoSamples   = errors.New("no sample assets for preview")
	ErrInvalidGrid = errors.New("invalid preview grid")

	// PDF backend errors.
	ErrPDFGeneration = errors.New("PDF generation failed")
)

// Pipeline stage identifiers, used by PublicationError to name where a
// publication failed.
type Stage string

// Stages in pipeline order.
const (
	StageConfig   Stage = "config"
	StageGenerate Stage = "generate"
	StageAssemble Stage = "assemble"
	StageCover    Stage = "cover"
	StagePreview  Stage = "preview"
	StageCatalog  Stage = "catalog"
	StageWrite    Stage = "write"
)

// PublicationError reports a failed publication together with the pipeline
// stage that failed. It wraps the underlying error, so errors.Is works
// against the sentinels above.
type PublicationError struct {
	Stage Stage
	Err   error
}

func (e *PublicationError) Error() string {
	return string(e.Stage) + ": " + e.Err.Error()
}

func (e *PublicationError) Unwrap() error { return e.Err }

// stageErr wraps err with its pipeline stage, passing nil through.
func stageErr(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &PublicationError{Stage: stage, Err: err}
}
