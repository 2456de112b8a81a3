// Package flashcard owns the lifecycle of a vocabulary deck: generation from
// a topic or word list, single-card creation with a preview step, sequential
// review, and the transition into quiz mode.
package flashcard
