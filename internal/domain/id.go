package domain

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// idLength is the nanoid length for entity IDs; short enough to read in
// transcripts, long enough to never collide within a session.
const idLength = 10

// NewID returns a prefixed identifier such as "fc-V1StGXR8_Z".
func NewID(prefix string) string {
	id, err := gonanoid.New(idLength)
	if err != nil {
		// gonanoid only fails when the OS entropy source does; at that
		// point the process has bigger problems.
		panic(fmt.Sprintf("id generation failed: %v", err))
	}
	return prefix + "-" + id
}
