package writing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/studyhub-api/internal/domain"
	"github.com/phrazzld/studyhub-api/internal/events"
	"github.com/phrazzld/studyhub-api/internal/generation"
)

const xpAssessment = 20

// Input is the submission to assess: typed text or a photographed page.
// When an image is provided the generator reads the handwriting itself.
type Input struct {
	Text          string
	Image         []byte
	ImageMIMEType string
	Topic         string
}

// Service runs writing assessments. It is stateless beyond its
// collaborators, so one instance serves all submissions.
type Service struct {
	gen     generation.Generator
	emitter events.Emitter
	logger  *slog.Logger
}

// NewService creates a writing assessment service.
func NewService(gen generation.Generator, emitter events.Emitter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		gen:     gen,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "writing_service")),
	}
}

func assessmentSchema() *generation.Schema {
	mistake := generation.Object(map[string]*generation.Schema{
		"original":    generation.String("the mistaken phrase as written"),
		"correction":  generation.String("the corrected phrase"),
		"explanation": generation.String("a one-sentence explanation in Vietnamese"),
	}, "original", "correction", "explanation")

	return generation.Object(map[string]*generation.Schema{
		"score":          generation.Number("overall score from 0 to 10"),
		"vocabScore":     generation.Number("vocabulary score from 0 to 10"),
		"grammarScore":   generation.Number("grammar score from 0 to 10"),
		"coherenceScore": generation.Number("coherence and structure score from 0 to 10"),
		"feedback":       generation.String("overall feedback in Vietnamese"),
		"correctedText":  generation.String("the full corrected version of the text"),
		"mistakes":       generation.Array(mistake),
	}, "score", "vocabScore", "grammarScore", "coherenceScore", "feedback", "correctedText", "mistakes")
}

// Assess grades one written submission.
func (s *Service) Assess(ctx context.Context, input Input) (*domain.WritingAnalysis, error) {
	if strings.TrimSpace(input.Text) == "" && len(input.Image) == 0 {
		return nil, fmt.Errorf("%w: nothing to assess", generation.ErrEmptyInput)
	}

	var sb strings.Builder
	sb.WriteString("Assess this English writing from a Vietnamese student.\n")
	if input.Topic != "" {
		fmt.Fprintf(&sb, "The assigned topic was: %q.\n", input.Topic)
	}
	sb.WriteString(`Score the overall quality, vocabulary, grammar, and coherence from 0 to 10.
Write the feedback in Vietnamese, produce a fully corrected version of the
text, and itemize each mistake with a Vietnamese explanation.`)
	if len(input.Image) > 0 {
		sb.WriteString("\nThe submission is the handwritten page in the attached image; read it first.")
	} else {
		sb.WriteString("\n\nSubmission:\n")
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

	raw, err := s.gen.Generate(ctx, generation.Request{
		Parts:  parts,
		Schema: assessmentSchema(),
	})
	if err != nil {
		return nil, err
	}

	var result domain.WritingAnalysis
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrSchemaViolation, err)
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrSchemaViolation, err)
	}

	if err := events.EmitXP(ctx, s.emitter, xpAssessment, "writing_assessment"); err != nil {
		s.logger.WarnContext(ctx, "failed to emit xp", slog.String("error", err.Error()))
	}
	s.logger.InfoContext(ctx, "writing assessed",
		slog.Float64("score", result.Score),
		slog.Int("mistake_count", len(result.Mistakes)))
	return &result, nil
}
