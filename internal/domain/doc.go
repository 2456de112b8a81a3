// Package domain holds the core entities of the study session engines:
// flashcards, quiz questions, speaking feedback, chat transcripts, content
// analysis results, and user progress stats. All entities are ephemeral
// session state; nothing here is persisted.
package domain
