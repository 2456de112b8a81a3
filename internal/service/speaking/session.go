package speaking

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/studyhub-api/internal/domain"
	"github.com/phrazzld/studyhub-api/internal/events"
	"github.com/phrazzld/studyhub-api/internal/generation"
	"github.com/phrazzld/studyhub-api/internal/media"
)

// Mode selects which practice surface a submission feeds.
type Mode string

const (
	ModeFree  Mode = "free"
	ModeTopic Mode = "topic"
	ModeChat  Mode = "chat"
)

// audioMIMEType is the single encoding Capture produces.
const audioMIMEType = "audio/wav"

const (
	xpFreeAssessment = 20
	xpDialogueLine   = 10
	xpChatTurn       = 15
)

// Session is one speaking-practice session. Each mode keeps its own state:
// switching modes cancels an in-flight recording but preserves the free
// feedback slot, the dialogue, and the chat history. Not self-locking; the
// transport layer serializes access.
type Session struct {
	gen     generation.Generator
	capture media.Capture
	emitter events.Emitter
	logger  *slog.Logger

	mode         Mode
	recording    bool
	freeFeedback *domain.SpeakingFeedback
	dialogue     []domain.DialogueLine
	chat         []domain.ChatMessage
}

// NewSession creates a speaking session starting in free mode.
func NewSession(gen generation.Generator, capture media.Capture, emitter events.Emitter, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		gen:     gen,
		capture: capture,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "speaking_session")),
		mode:    ModeFree,
	}
}

// SetMode switches the practice surface, cancelling any in-flight recording.
func (s *Session) SetMode(mode Mode) {
	s.CancelRecording()
	s.mode = mode
}

// Mode returns the active practice surface.
func (s *Session) Mode() Mode { return s.mode }

// StartRecording opens the audio device. Only one recording can be in
// flight at a time.
func (s *Session) StartRecording(ctx context.Context) error {
	if s.recording {
		return media.ErrAlreadyRecording
	}
	if err := s.capture.Start(ctx); err != nil {
		return err
	}
	s.recording = true
	return nil
}

// CancelRecording discards an in-flight recording. Cancelling when idle is
// a no-op.
func (s *Session) CancelRecording() {
	if !s.recording {
		return
	}
	s.capture.Cancel()
	s.recording = false
}

// Recording reports whether a recording is in flight.
func (s *Session) Recording() bool { return s.recording }

// stopRecording consumes the in-flight recording. The recording is spent
// whether or not the device yields usable audio.
func (s *Session) stopRecording() ([]byte, error) {
	if !s.recording {
		return nil, ErrNoRecording
	}
	s.recording = false
	audio, err := s.capture.Stop()
	if err != nil {
		return nil, err
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: recording produced no audio", generation.ErrEmptyInput)
	}
	return audio, nil
}

func feedbackSchema() *generation.Schema {
	return generation.Object(map[string]*generation.Schema{
		"transcript":    generation.String("what the student actually said, word for word"),
		"score":         generation.Number("pronunciation and fluency score from 0 to 10"),
		"comment":       generation.String("short assessment of the delivery, in Vietnamese"),
		"mistakes":      generation.Array(generation.String("one pronunciation or grammar mistake")),
		"correction":    generation.String("the corrected version of what was said"),
		"encouragement": generation.String("one encouraging sentence in Vietnamese"),
	}, "transcript", "score", "comment", "mistakes", "correction", "encouragement")
}

// assess sends one recording plus an instruction to the generator and
// validates the returned feedback.
func (s *Session) assess(ctx context.Context, audio []byte, instruction string) (*domain.SpeakingFeedback, error) {
	raw, err := s.gen.Generate(ctx, generation.Request{
		Parts: []generation.Part{
			generation.BlobPart(audioMIMEType, audio),
			generation.TextPart(instruction),
		},
		Schema: feedbackSchema(),
	})
	if err != nil {
		return nil, err
	}

	var feedback domain.SpeakingFeedback
	if err := json.Unmarshal(raw, &feedback); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrSchemaViolation, err)
	}
	if err := feedback.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrSchemaViolation, err)
	}
	return &feedback, nil
}

// SubmitFree assesses the in-flight recording as free-form speech. Each
// successful submission replaces the previous free feedback.
func (s *Session) SubmitFree(ctx context.Context) (*domain.SpeakingFeedback, error) {
	audio, err := s.stopRecording()
	if err != nil {
		return nil, err
	}

	feedback, err := s.assess(ctx, audio,
		`Listen to this English speech from a Vietnamese student and assess it.
Transcribe exactly what was said, score pronunciation and fluency from 0 to 10,
list concrete mistakes, give a corrected version, and end with encouragement.
Comment and encouragement must be in Vietnamese.`)
	if err != nil {
		return nil, err
	}

	s.freeFeedback = feedback
	if err := events.EmitXP(ctx, s.emitter, xpFreeAssessment, "speaking_free"); err != nil {
		s.logger.WarnContext(ctx, "failed to emit xp", slog.String("error", err.Error()))
	}
	return feedback, nil
}

// FreeFeedback returns the latest free-form assessment, if any.
func (s *Session) FreeFeedback() *domain.SpeakingFeedback { return s.freeFeedback }

// dialogueItem is the generator's shape for one dialogue line.
type dialogueItem struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

func dialogueSchema() *generation.Schema {
	return generation.Array(generation.Object(map[string]*generation.Schema{
		"speaker": generation.StringEnum(string(domain.SpeakerStudent), string(domain.SpeakerAI)),
		"text":    generation.String("one short spoken line in English"),
	}, "speaker", "text"))
}

// GenerateDialogue replaces the practice dialogue with a fresh script for
// the topic. On failure the previous dialogue survives.
func (s *Session) GenerateDialogue(ctx context.Context, topic string) ([]domain.DialogueLine, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("%w: topic is required", generation.ErrEmptyInput)
	}

	prompt := fmt.Sprintf(`Write a short English practice dialogue about %q between a Student and an AI partner.
Requirements:
- 6 to 8 lines total, strictly alternating between Student and AI.
- The Student speaks first.
- Each line is one or two simple sentences suitable for a Vietnamese high-school student.`,
		topic)

	raw, err := s.gen.Generate(ctx, generation.Request{
		Parts:  []generation.Part{generation.TextPart(prompt)},
		Schema: dialogueSchema(),
	})
	if err != nil {
		return nil, err
	}

	var items []dialogueItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrSchemaViolation, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no dialogue lines in response", generation.ErrSchemaViolation)
	}

	lines := make([]domain.DialogueLine, 0, len(items))
	for i, item := range items {
		speaker := domain.Speaker(item.Speaker)
		if speaker != domain.SpeakerStudent && speaker != domain.SpeakerAI {
			return nil, fmt.Errorf("%w: line %d has speaker %q", generation.ErrSchemaViolation, i, item.Speaker)
		}
		if item.Text == "" {
			return nil, fmt.Errorf("%w: line %d is empty", generation.ErrSchemaViolation, i)
		}
		lines = append(lines, domain.DialogueLine{
			ID:      domain.NewID("dlg"),
			Speaker: speaker,
			Text:    item.Text,
		})
	}

	s.dialogue = lines
	s.logger.InfoContext(ctx, "dialogue generated",
		slog.String("topic", topic),
		slog.Int("line_count", len(lines)))
	return s.Dialogue(), nil
}

// SubmitForLine assesses the in-flight recording against a dialogue line.
// A new recording for the same line overwrites its previous feedback. The
// line is resolved before the recording is consumed, so submitting for an
// unknown line leaves the recording in flight.
func (s *Session) SubmitForLine(ctx context.Context, lineID string) (*domain.SpeakingFeedback, error) {
	if len(s.dialogue) == 0 {
		return nil, ErrNoDialogue
	}
	idx := -1
	for i := range s.dialogue {
		if s.dialogue[i].ID == lineID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrDialogueLineNotFound, lineID)
	}

	audio, err := s.stopRecording()
	if err != nil {
		return nil, err
	}

	feedback, err := s.assess(ctx, audio, fmt.Sprintf(
		`Listen to this recording of a Vietnamese student reading the line: %q.
Transcribe exactly what was said, score how closely the pronunciation matches
the line from 0 to 10, list concrete mistakes, give a corrected version, and
end with encouragement. Comment and encouragement must be in Vietnamese.`,
		s.dialogue[idx].Text))
	if err != nil {
		return nil, err
	}

	s.dialogue[idx].Feedback = feedback
	if err := events.EmitXP(ctx, s.emitter, xpDialogueLine, "speaking_line"); err != nil {
		s.logger.WarnContext(ctx, "failed to emit xp", slog.String("error", err.Error()))
	}
	return feedback, nil
}

// Dialogue returns a copy of the practice dialogue.
func (s *Session) Dialogue() []domain.DialogueLine {
	out := make([]domain.DialogueLine, len(s.dialogue))
	copy(out, s.dialogue)
	return out
}

// chatTurn is the generator's shape for one conversation exchange.
type chatTurn struct {
	UserTranscript string                 `json:"userTranscript"`
	Reply          string                 `json:"reply"`
	Correction     *domain.ChatCorrection `json:"correction"`
}

func chatTurnSchema() *generation.Schema {
	correction := generation.Object(map[string]*generation.Schema{
		"original":    generation.String("the mistaken phrase as spoken"),
		"fixed":       generation.String("the corrected phrase"),
		"explanation": generation.String("a one-sentence explanation in Vietnamese"),
	}, "original", "fixed", "explanation")
	correction.Nullable = true
	correction.Description = "null when the student made no mistake worth correcting"

	return generation.Object(map[string]*generation.Schema{
		"userTranscript": generation.String("what the student actually said, word for word"),
		"reply":          generation.String("a natural conversational reply in simple English"),
		"correction":     correction,
	}, "userTranscript", "reply")
}

// SubmitTurn feeds the in-flight recording into the open conversation. On
// success the history grows by exactly one user/AI pair; any correction is
// attached to the user message. On failure the history is untouched.
func (s *Session) SubmitTurn(ctx context.Context) ([]domain.ChatMessage, error) {
	audio, err := s.stopRecording()
	if err != nil {
		return nil, err
	}

	var history strings.Builder
	for _, msg := range s.chat {
		history.WriteString(string(msg.Sender))
		history.WriteString(": ")
		history.WriteString(msg.Text)
		history.WriteString("\n")
	}

	prompt := fmt.Sprintf(`You are having a friendly spoken English conversation with a Vietnamese student.
Conversation so far:
%s
Listen to the student's next turn. Transcribe it exactly, reply naturally in
simple English, and if the student made a language mistake worth fixing,
fill in the correction with a Vietnamese explanation; otherwise leave it null.`,
		history.String())

	raw, err := s.gen.Generate(ctx, generation.Request{
		Parts: []generation.Part{
			generation.BlobPart(audioMIMEType, audio),
			generation.TextPart(prompt),
		},
		Schema: chatTurnSchema(),
	})
	if err != nil {
		return nil, err
	}

	var turn chatTurn
	if err := json.Unmarshal(raw, &turn); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrSchemaViolation, err)
	}
	if turn.UserTranscript == "" || turn.Reply == "" {
		return nil, fmt.Errorf("%w: transcript or reply missing", generation.ErrSchemaViolation)
	}

	s.chat = append(s.chat,
		domain.ChatMessage{
			ID:         domain.NewID("msg"),
			Sender:     domain.SenderUser,
			Text:       turn.UserTranscript,
			Correction: turn.Correction,
		},
		domain.ChatMessage{
			ID:     domain.NewID("msg"),
			Sender: domain.SenderAI,
			Text:   turn.Reply,
		},
	)

	if err := events.EmitXP(ctx, s.emitter, xpChatTurn, "chat_turn"); err != nil {
		s.logger.WarnContext(ctx, "failed to emit xp", slog.String("error", err.Error()))
	}
	return s.Chat(), nil
}

// Chat returns a copy of the conversation history.
func (s *Session) Chat() []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(s.chat))
	copy(out, s.chat)
	return out
}
