package domain

import "errors"

// Quiz validation errors.
var (
	// ErrQuestionIncomplete is returned when a generated question is missing
	// a required field.
	ErrQuestionIncomplete = errors.New("quiz question is missing required fields")
)

// QuestionType classifies what a quiz question exercises.
type QuestionType string

const (
	QuestionTypeMeaning   QuestionType = "meaning"
	QuestionTypeFillBlank QuestionType = "fill-blank"
	QuestionTypeSynonym   QuestionType = "synonym"
	QuestionTypeAntonym   QuestionType = "antonym"
)

// Difficulty grades a quiz question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuizQuestion is one generated multiple-choice question.
//
// CorrectAnswer is supposed to be a member of Options per the generation
// contract. The engines do not reject a violating question; answer matching
// then simply never succeeds for it.
type QuizQuestion struct {
	ID            string       `json:"id"`
	Question      string       `json:"question"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
	Type          QuestionType `json:"type"`
	Difficulty    Difficulty   `json:"difficulty"`
}

// Validate checks that all required fields arrived from the generator.
func (q *QuizQuestion) Validate() error {
	if q.Question == "" || q.CorrectAnswer == "" || q.Explanation == "" {
		return ErrQuestionIncomplete
	}
	if len(q.Options) != 4 {
		return ErrQuestionIncomplete
	}
	if q.Type == "" || q.Difficulty == "" {
		return ErrQuestionIncomplete
	}
	return nil
}
