// Package media defines the non-generator collaborators of the study
// engines: flashcard illustration lookup, speech synthesis with its
// play/cancel toggle, and audio capture. Engines depend on the interfaces;
// the browser client or platform adapters supply the implementations.
package media
