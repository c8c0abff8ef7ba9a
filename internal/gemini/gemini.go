// Package gemini implements the asset provider contract on top of Google
// Gemini image generation.
package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // decode provider output
	_ "image/png"  // decode provider output
	"net/http"
	"os"

	"github.com/disintegration/imaging"
	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/bindery/bindery"
)

// DefaultModel is the image-capable Gemini model used when none is set.
const DefaultModel = "gemini-2.0-flash-preview-image-generation"

// APIKeyEnv is the environment variable holding the Gemini API key.
const APIKeyEnv = "GEMINI_API_KEY"

// ErrNoAPIKey is returned when the environment carries no credentials.
var ErrNoAPIKey = fmt.Errorf("%s environment variable not set", APIKeyEnv)

// Provider generates rasters through the Gemini API. It is safe for
// concurrent use; each call creates its own client.
type Provider struct {
	model  string
	apiKey string
}

// New builds a provider from the environment. An empty model selects
// DefaultModel.
func New(model string) (*Provider, error) {
	apiKey := os.Getenv(APIKeyEnv)
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	return &Provider{model: model, apiKey: apiKey}, nil
}

// Name implements bindery.AssetProvider.
func (p *Provider) Name() string { return "gemini" }

// Generate implements bindery.AssetProvider. The returned raster is
// resampled to the exact pixel dimensions of the spec; Gemini does not
// honor arbitrary output sizes.
func (p *Provider) Generate(ctx context.Context, prompt string, spec bindery.PageSpec) (bindery.Asset, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return bindery.Asset{}, classify(fmt.Errorf("creating gemini client: %w", err))
	}
	defer client.Close()

	model := client.GenerativeModel(p.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return bindery.Asset{}, classify(err)
	}

	raw, err := firstImagePart(resp)
	if err != nil {
		return bindery.Asset{}, err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return bindery.Asset{}, fmt.Errorf("%w: decoding image: %v", bindery.ErrProviderFailure, err)
	}

	w := spec.PixelWidth()
	h := spec.PixelHeight()
	resized := imaging.Resize(img, w, h, imaging.Lanczos)

	return bindery.Asset{
		ID:       uuid.NewString(),
		Image:    resized,
		Width:    w,
		Height:   h,
		Provider: p.Name(),
	}, nil
}

// firstImagePart extracts the first inline image from a response.
func firstImagePart(resp *genai.GenerateContentResponse) ([]byte, error) {
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				return blob.Data, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: response contains no image data", bindery.ErrProviderFailure)
}

// classify maps transport errors onto the library's provider error classes
// so the retry boundary can tell transient failures from permanent ones.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", bindery.ErrProviderTimeout, err)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %v", bindery.ErrRateLimited, err)
		}
		if apiErr.Code >= http.StatusInternalServerError {
			return fmt.Errorf("%w: %v", bindery.ErrProviderFailure, err)
		}
	}
	return fmt.Errorf("%w: %v", bindery.ErrProviderFailure, err)
}
