package media

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/phrazzld/studyhub-api/internal/config"
)

// ImageLookup resolves a keyword or descriptive prompt to a display image
// URL for flashcard illustration. Failures are non-fatal to callers: a card
// simply renders without art.
type ImageLookup interface {
	Lookup(ctx context.Context, prompt string) (string, error)
}

// PollinationsLookup implements ImageLookup against the pollinations.ai
// prompt-to-image endpoint. The image is rendered lazily by the service when
// the URL is first fetched, so Lookup warms it with a HEAD request; a failed
// warm-up is logged and the URL returned anyway.
type PollinationsLookup struct {
	client *resty.Client
	cfg    config.ImageConfig
	logger *slog.Logger
	seed   func() int
}

// NewPollinationsLookup creates a lookup using the configured base URL and
// render dimensions.
func NewPollinationsLookup(cfg config.ImageConfig, logger *slog.Logger) *PollinationsLookup {
	if logger == nil {
		logger = slog.Default()
	}
	return &PollinationsLookup{
		client: resty.New(),
		cfg:    cfg,
		logger: logger.With(slog.String("component", "image_lookup")),
		seed:   func() int { return rand.Intn(1000) },
	}
}

// Lookup builds the render URL for the prompt and warms it.
func (p *PollinationsLookup) Lookup(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("image prompt cannot be empty")
	}

	imageURL := fmt.Sprintf("%s/prompt/%s?width=%d&height=%d&nologo=true&seed=%d",
		p.cfg.BaseURL,
		url.PathEscape(prompt),
		p.cfg.Width,
		p.cfg.Height,
		p.seed())

	resp, err := p.client.R().SetContext(ctx).Head(imageURL)
	if err != nil {
		p.logger.WarnContext(ctx, "image warm-up request failed",
			slog.String("error", err.Error()))
		return imageURL, nil
	}
	if resp.IsError() {
		p.logger.WarnContext(ctx, "image warm-up returned error status",
			slog.Int("status", resp.StatusCode()))
	}

	return imageURL, nil
}

// stylePrompts maps an illustration style to the prompt suffix sent to the
// renderer.
var stylePrompts = map[string]string{
	"hand_drawn": "hand drawn sketch, pencil style, doodle, educational, white background",
	"cartoon":    "cute cartoon, flat design, colorful, vector art, simple",
	"realistic":  "realistic photography, high quality, 4k",
	"minimal":    "minimalist icon, line art, simple, clean",
}

// StyledPrompt renders a descriptive image prompt through the style template
// for the given style key, with the standard no-text suffix.
func StyledPrompt(description, style string) string {
	suffix, ok := stylePrompts[style]
	if !ok {
		suffix = "educational illustration"
	}
	return fmt.Sprintf("%s, %s, no text, no letters", description, suffix)
}
