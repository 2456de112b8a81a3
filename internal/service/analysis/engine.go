package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/studyhub-api/internal/domain"
	"github.com/phrazzld/studyhub-api/internal/events"
	"github.com/phrazzld/studyhub-api/internal/generation"
	"github.com/phrazzld/studyhub-api/internal/media"
)

// ErrNoResult is returned when playback is requested before any analysis
// has produced a summary.
var ErrNoResult = errors.New("no analysis result to play")

const xpAnalysis = 30

// Input is the material to analyze: pasted text or a captured page image.
// Exactly one of Text and Image should be set; when both are, the image
// wins and the text is treated as extra context.
type Input struct {
	Text          string
	Image         []byte
	ImageMIMEType string
}

// Engine runs content analyses and holds the latest result. Each successful
// analysis replaces the previous result wholesale. Not self-locking; the
// transport layer serializes access.
type Engine struct {
	gen     generation.Generator
	player  *media.Player
	emitter events.Emitter
	logger  *slog.Logger

	result *domain.ContentAnalysisResult
}

// NewEngine creates an analysis engine with no result yet.
func NewEngine(gen generation.Generator, player *media.Player, emitter events.Emitter, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		gen:     gen,
		player:  player,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "analysis_engine")),
	}
}

// nodeSchema builds the depth-bounded mindmap node schema. The generation
// contract has no recursion, so the levels are nested out explicitly:
// levels above the last require children, the leaf level has none.
func nodeSchema(depth int) *generation.Schema {
	props := map[string]*generation.Schema{
		"id":    generation.String("short unique identifier"),
		"label": generation.String("concise node title, at most a few words"),
		"color": generation.String("a hex color for the node, e.g. #4f46e5"),
	}
	required := []string{"id", "label", "color"}
	if depth > 1 {
		props["note"] = generation.String("an optional one-sentence elaboration")
		props["children"] = generation.Array(nodeSchema(depth - 1))
		required = append(required, "children")
	}
	return generation.Object(props, required...)
}

func analysisSchema(opts domain.AnalysisOptions) *generation.Schema {
	root := nodeSchema(domain.MaxMindMapDepth)
	root.Nullable = true
	root.Description = "the mindmap root; null when no mindmap was requested"

	return generation.Object(map[string]*generation.Schema{
		"summary":  generation.String("the summary of the material, in Vietnamese"),
		"keywords": generation.Array(generation.String("one key term from the material")),
		"rootNode": root,
	}, "summary", "keywords")
}

func summaryBand(length domain.SummaryLength) string {
	switch length {
	case domain.SummaryShort:
		return "30 to 50 words"
	case domain.SummaryLong:
		return "180 to 250 words"
	default:
		return "80 to 120 words"
	}
}

// generated mirrors the generator's field names before mapping onto the
// domain result.
type generated struct {
	Summary  string              `json:"summary"`
	Keywords []string            `json:"keywords"`
	RootNode *domain.MindMapNode `json:"rootNode"`
}

// Analyze runs one analysis over the input and replaces the held result on
// success. On failure the previous result survives.
func (e *Engine) Analyze(ctx context.Context, input Input, opts domain.AnalysisOptions) (*domain.ContentAnalysisResult, error) {
	if strings.TrimSpace(input.Text) == "" && len(input.Image) == 0 {
		return nil, fmt.Errorf("%w: nothing to analyze", generation.ErrEmptyInput)
	}

	var sb strings.Builder
	sb.WriteString("Analyze the following study material for a Vietnamese student.\n")
	fmt.Fprintf(&sb, "Write a summary of %s in Vietnamese and list the key terms.\n", summaryBand(opts.SummaryLength))
	if opts.WantsMindmap() {
		sb.WriteString("Also build a mindmap of the material: a root topic with up to two levels of sub-topics.\n")
	} else {
		sb.WriteString("Do not build a mindmap; set rootNode to null.\n")
	}
	if input.Text != "" {
		sb.WriteString("\nMaterial:\n")
		sb.WriteString(input.Text)
	}

	parts := make([]generation.Part, 0, 2)
	if len(input.Image) > 0 {
		mime := input.ImageMIMEType
		if mime == "" {
			mime = "image/jpeg"
		}
		parts = append(parts, generation.BlobPart(mime, input.Image))
	}
	parts = append(parts, generation.TextPart(sb.String()))

	raw, err := e.gen.Generate(ctx, generation.Request{
		Parts:  parts,
		Schema: analysisSchema(opts),
	})
	if err != nil {
		return nil, err
	}

	var out generated
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrSchemaViolation, err)
	}

	result := &domain.ContentAnalysisResult{
		Summary:  out.Summary,
		Keywords: out.Keywords,
		RootNode: out.RootNode,
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrSchemaViolation, err)
	}

	// The mode decides whether a tree is kept, whatever the generator sent.
	if !opts.WantsMindmap() {
		result.RootNode = nil
	}
	result.RootNode.ClampDepth(domain.MaxMindMapDepth)

	e.result = result
	if err := events.EmitXP(ctx, e.emitter, xpAnalysis, "content_analysis"); err != nil {
		e.logger.WarnContext(ctx, "failed to emit xp", slog.String("error", err.Error()))
	}
	e.logger.InfoContext(ctx, "analysis completed",
		slog.String("mode", string(opts.Mode)),
		slog.Int("keyword_count", len(result.Keywords)),
		slog.Bool("has_mindmap", result.RootNode != nil))
	return result, nil
}

// Result returns the latest analysis, or nil before the first success.
func (e *Engine) Result() *domain.ContentAnalysisResult { return e.result }

// PlaySummaryAudio toggles spoken playback of the current summary. It
// reports whether playback is now active.
func (e *Engine) PlaySummaryAudio(ctx context.Context, lang string) (bool, error) {
	if e.result == nil || e.result.Summary == "" {
		return false, ErrNoResult
	}
	return e.player.Toggle(ctx, e.result.Summary, lang)
}

// StopAudio cancels summary playback if any.
func (e *Engine) StopAudio() error {
	return e.player.Stop()
}
