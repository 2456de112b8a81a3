package domain

import "errors"

// Speaking validation errors.
var (
	// ErrFeedbackIncomplete is returned when a generated assessment is
	// missing its transcript or correction.
	ErrFeedbackIncomplete = errors.New("speaking feedback is missing required fields")

	// ErrDialogueLineNotFound is returned when a recording is submitted for
	// a dialogue line that does not exist in the current dialogue.
	ErrDialogueLineNotFound = errors.New("dialogue line not found")
)

// SpeakingFeedback is the generator's assessment of one spoken submission,
// either free-form or against a reference line.
type SpeakingFeedback struct {
	Transcript    string   `json:"transcript"`
	Score         float64  `json:"score"` // 0-10
	Comment       string   `json:"comment"`
	Mistakes      []string `json:"mistakes"`
	Correction    string   `json:"correction"`
	Encouragement string   `json:"encouragement"`
}

// Validate checks the fields an assessment cannot function without. Score 0
// is legitimate, so only textual fields are checked.
func (f *SpeakingFeedback) Validate() error {
	if f.Transcript == "" || f.Comment == "" {
		return ErrFeedbackIncomplete
	}
	return nil
}

// Speaker identifies who a dialogue line belongs to.
type Speaker string

const (
	SpeakerStudent Speaker = "Student"
	SpeakerAI      Speaker = "AI"
)

// DialogueLine is one line of a generated practice dialogue. Feedback is
// attached only after the student records the line, and only to Student
// lines in practice; each new recording for the line overwrites it.
type DialogueLine struct {
	ID       string            `json:"id"`
	Speaker  Speaker           `json:"speaker"`
	Text     string            `json:"text"`
	Feedback *SpeakingFeedback `json:"feedback,omitempty"`
}
