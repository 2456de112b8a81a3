package media

import "context"

// Capture is the external audio-recording collaborator. Start may fail with
// ErrPermissionDenied when device access is refused; Stop yields the
// completed recording as opaque bytes in a single encoding (WAV).
type Capture interface {
	Start(ctx context.Context) error
	Stop() ([]byte, error)
	Cancel()
}
