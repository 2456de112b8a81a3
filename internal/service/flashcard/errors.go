package flashcard

import "errors"

var (
	// ErrNoDeck is returned when a review operation runs without a deck.
	ErrNoDeck = errors.New("no deck in session")

	// ErrNoPreview is returned when committing or discarding without a
	// generated preview card.
	ErrNoPreview = errors.New("no preview card to commit")

	// ErrUnknownStyle is returned for an unsupported illustration style.
	ErrUnknownStyle = errors.New("unknown card style")
)
