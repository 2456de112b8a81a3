// Package api implements the HTTP handlers for the study sessions: deck
// generation and review, quizzes, speaking practice, content analysis,
// writing assessment, and progress.
//
// The session engines are single-user state machines and are not
// self-locking, so each handler serializes access to its engine with a
// mutex.
package api
