package media

import "context"

// Verify interface compliance at compile time.
var (
	_ Capture     = (*BufferCapture)(nil)
	_ Synthesizer = (*NoopSynthesizer)(nil)
)

// BufferCapture is a Capture fed by the transport instead of a device: the
// handler arms it, loads the uploaded audio, and the session consumes it
// through the usual Stop path.
type BufferCapture struct {
	audio  []byte
	denied bool
}

// Deny makes subsequent Start calls fail with ErrPermissionDenied.
func (c *BufferCapture) Deny(denied bool) { c.denied = denied }

// SetAudio loads the bytes the next Stop will yield.
func (c *BufferCapture) SetAudio(audio []byte) { c.audio = audio }

func (c *BufferCapture) Start(context.Context) error {
	if c.denied {
		return ErrPermissionDenied
	}
	return nil
}

func (c *BufferCapture) Stop() ([]byte, error) {
	audio := c.audio
	c.audio = nil
	return audio, nil
}

func (c *BufferCapture) Cancel() { c.audio = nil }

// NoopSynthesizer is a Synthesizer for deployments where the actual audio
// plays on the client; the server only mirrors toggle state.
type NoopSynthesizer struct{}

func (NoopSynthesizer) Speak(context.Context, string, string) error { return nil }

func (NoopSynthesizer) Cancel() {}
