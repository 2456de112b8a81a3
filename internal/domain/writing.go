package domain

import "errors"

// Writing validation errors.
var (
	// ErrWritingFeedbackIncomplete is returned when a generated writing
	// assessment is missing its feedback or corrected text.
	ErrWritingFeedbackIncomplete = errors.New("writing analysis is missing required fields")
)

// WritingMistake is one identified error in a submitted text.
type WritingMistake struct {
	Original    string `json:"original"`
	Correction  string `json:"correction"`
	Explanation string `json:"explanation"`
}

// WritingAnalysis is the generator's assessment of a written submission,
// typed or photographed handwriting.
type WritingAnalysis struct {
	Score          float64          `json:"score"` // 0-10 overall
	VocabScore     float64          `json:"vocabScore"`
	GrammarScore   float64          `json:"grammarScore"`
	CoherenceScore float64          `json:"coherenceScore"`
	Feedback       string           `json:"feedback"`
	CorrectedText  string           `json:"correctedText"`
	Mistakes       []WritingMistake `json:"mistakes"`
}

// Validate checks the fields an assessment cannot function without.
func (w *WritingAnalysis) Validate() error {
	if w.Feedback == "" || w.CorrectedText == "" {
		return ErrWritingFeedbackIncomplete
	}
	return nil
}
