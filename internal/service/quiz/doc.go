// Package quiz turns a flashcard deck into a scored multiple-choice session.
// A Builder requests the questions from the generator; the resulting Session
// is a small state machine over question progression, scoring, and
// completion.
package quiz
