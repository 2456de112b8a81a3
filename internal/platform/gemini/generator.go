package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/phrazzld/studyhub-api/internal/config"
	"github.com/phrazzld/studyhub-api/internal/generation"
)

// Verify interface compliance at compile time.
var _ generation.Generator = (*Generator)(nil)

// Generator implements generation.Generator using the Gemini API.
// It holds no session state; every call is independent.
type Generator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// NewGenerator creates a Gemini-backed generator from the LLM configuration.
// A missing API key fails here, before any network attempt, so the process
// refuses to start half-configured rather than failing on first use.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key is empty", generation.ErrMissingCredential)
	}

	model := cfg.ModelName
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", generation.ErrTransportFailure, err)
	}

	return &Generator{
		logger: logger.With(slog.String("component", "gemini_generator")),
		client: client,
		model:  model,
	}, nil
}

// Generate sends the prompt parts with the response schema attached as a
// generation constraint and returns the raw JSON the model produced.
//
// The response is checked to be parseable JSON and nothing more; required
// fields the model omitted are the caller's problem to detect, per the
// structured-generation contract.
func (g *Generator) Generate(ctx context.Context, req generation.Request) (json.RawMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   toGenAISchema(req.Schema),
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(toGenAIParts(req.Parts), genai.RoleUser),
	}

	g.logger.DebugContext(ctx, "calling gemini",
		slog.String("model", g.model),
		slog.Int("part_count", len(req.Parts)))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		g.logger.ErrorContext(ctx, "gemini call failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", generation.ErrTransportFailure, err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty response text", generation.ErrMalformedResponse)
	}

	raw := json.RawMessage(text)
	if !json.Valid(raw) {
		g.logger.WarnContext(ctx, "gemini returned non-JSON text",
			slog.Int("response_length", len(text)))
		return nil, fmt.Errorf("%w: response is not valid JSON", generation.ErrMalformedResponse)
	}

	g.logger.DebugContext(ctx, "gemini call succeeded",
		slog.Int("response_length", len(text)))

	return raw, nil
}
