package media

import "errors"

var (
	// ErrPermissionDenied is returned when audio-device access is refused.
	// It is raised before any network call.
	ErrPermissionDenied = errors.New("audio device access denied")

	// ErrNotPlaying is returned when Cancel is called on an idle player.
	ErrNotPlaying = errors.New("no utterance is playing")

	// ErrAlreadyRecording is returned when a recording is started while one
	// is in flight.
	ErrAlreadyRecording = errors.New("a recording is already in progress")
)
