package api

import (
	"errors"

	"github.com/phrazzld/studyhub-api/internal/domain"
)

// GenerateDeckRequest asks for a fresh deck from a topic or a word list.
// Exactly one of the two must be provided.
type GenerateDeckRequest struct {
	Topic string   `json:"topic"`
	Words []string `json:"words"`
}

// Validate enforces the topic/words exclusivity.
func (r *GenerateDeckRequest) Validate() error {
	hasTopic := r.Topic != ""
	hasWords := len(r.Words) > 0
	if hasTopic == hasWords {
		return errors.New("provide exactly one of topic or words")
	}
	return nil
}

// GenerateCardRequest asks for a single preview card.
type GenerateCardRequest struct {
	Word  string `json:"word"  validate:"required"`
	Topic string `json:"topic"`
	Level string `json:"level" validate:"omitempty,oneof=easy medium hard"`
	Style string `json:"style" validate:"omitempty,oneof=hand_drawn cartoon realistic minimal"`
}

// ReviewRequest records the outcome for the current card.
type ReviewRequest struct {
	Mastered bool `json:"mastered"`
}

// QuizAnswerRequest selects an option for the current question.
type QuizAnswerRequest struct {
	Option string `json:"option" validate:"required"`
}

// SpeakingModeRequest switches the speaking practice surface.
type SpeakingModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=free topic chat"`
}

// AudioSubmitRequest carries one recorded clip, base64-encoded WAV.
type AudioSubmitRequest struct {
	Audio string `json:"audio" validate:"required"`
}

// DialogueRequest asks for a practice dialogue on a topic.
type DialogueRequest struct {
	Topic string `json:"topic" validate:"required"`
}

// AnalyzeRequest submits study material for analysis. Text or image (or
// both, with the image taking precedence) must be provided.
type AnalyzeRequest struct {
	Text          string `json:"text"`
	Image         string `json:"image"` // base64
	ImageMIMEType string `json:"image_mime_type"`
	SummaryLength string `json:"summary_length" validate:"omitempty,oneof=short medium long"`
	Mode          string `json:"mode"           validate:"omitempty,oneof=summary mindmap both"`
}

// PlayAudioRequest toggles spoken playback of the current summary.
type PlayAudioRequest struct {
	Lang string `json:"lang"`
}

// WritingRequest submits written work for assessment, typed or as a
// photographed page.
type WritingRequest struct {
	Text          string `json:"text"`
	Image         string `json:"image"` // base64
	ImageMIMEType string `json:"image_mime_type"`
	Topic         string `json:"topic"`
}

// DeckResponse is the full flashcard session view.
type DeckResponse struct {
	State        string             `json:"state"`
	Cards        []domain.Flashcard `json:"cards"`
	CurrentIndex int                `json:"current_index"`
	Flipped      bool               `json:"flipped"`
	Preview      *domain.Flashcard  `json:"preview,omitempty"`
}

// QuizResponse is the quiz session view. The correct answer and explanation
// for the current question are withheld until it has been answered.
type QuizResponse struct {
	Questions    []QuizQuestionView `json:"questions"`
	CurrentIndex int                `json:"current_index"`
	Score        int                `json:"score"`
	Selected     *string            `json:"selected,omitempty"`
	Completed    bool               `json:"completed"`
}

// QuizQuestionView is one question as shown to the client.
type QuizQuestionView struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	Type          string   `json:"type"`
	Difficulty    string   `json:"difficulty"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

// SpeakingResponse is the speaking session view.
type SpeakingResponse struct {
	Mode         string                   `json:"mode"`
	FreeFeedback *domain.SpeakingFeedback `json:"free_feedback,omitempty"`
	Dialogue     []domain.DialogueLine    `json:"dialogue,omitempty"`
	Chat         []domain.ChatMessage     `json:"chat,omitempty"`
}

// PlaybackResponse reports whether summary playback is now active.
type PlaybackResponse struct {
	Playing bool `json:"playing"`
}
