package domain

import "errors"

// Flashcard validation errors.
var (
	// ErrFlashcardWordEmpty is returned when a card has no headword.
	ErrFlashcardWordEmpty = errors.New("flashcard word cannot be empty")

	// ErrFlashcardMeaningEmpty is returned when a card has no meaning.
	ErrFlashcardMeaningEmpty = errors.New("flashcard meaning cannot be empty")
)

// CardStatus is caller-facing review metadata; the engines never branch on it.
type CardStatus string

const (
	CardStatusNew      CardStatus = "new"
	CardStatusLearning CardStatus = "learning"
	CardStatusMastered CardStatus = "mastered"
)

// CardLevel grades the target-language difficulty of a generated card.
type CardLevel string

const (
	CardLevelEasy   CardLevel = "easy"
	CardLevelMedium CardLevel = "medium"
	CardLevelHard   CardLevel = "hard"
)

// CardStyle selects the illustration style for single-card generation.
type CardStyle string

const (
	CardStyleHandDrawn CardStyle = "hand_drawn"
	CardStyleCartoon   CardStyle = "cartoon"
	CardStyleRealistic CardStyle = "realistic"
	CardStyleMinimal   CardStyle = "minimal"
)

// Flashcard is one vocabulary card in a deck. Identity is the ID; the word
// need not be unique across a deck.
type Flashcard struct {
	ID            string     `json:"id"`
	Word          string     `json:"word"`
	Pronunciation string     `json:"pronunciation"`
	Meaning       string     `json:"meaning"`
	Example       string     `json:"example"`
	ImageRef      string     `json:"image_ref,omitempty"`
	Status        CardStatus `json:"status"`
	Topic         string     `json:"topic,omitempty"`
	Level         CardLevel  `json:"level,omitempty"`
}

// Validate checks the fields a card cannot function without.
func (f *Flashcard) Validate() error {
	if f.Word == "" {
		return ErrFlashcardWordEmpty
	}
	if f.Meaning == "" {
		return ErrFlashcardMeaningEmpty
	}
	return nil
}

// ValidCardStyle reports whether s is one of the supported illustration styles.
func ValidCardStyle(s CardStyle) bool {
	switch s {
	case CardStyleHandDrawn, CardStyleCartoon, CardStyleRealistic, CardStyleMinimal:
		return true
	default:
		return false
	}
}
