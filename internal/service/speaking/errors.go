package speaking

import "errors"

var (
	// ErrNoRecording is returned when a submission runs without an active
	// recording to consume.
	ErrNoRecording = errors.New("no recording in progress")

	// ErrNoDialogue is returned when a line submission runs before a
	// dialogue has been generated.
	ErrNoDialogue = errors.New("no dialogue in session")
)
