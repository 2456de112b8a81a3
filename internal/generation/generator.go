package generation

import (
	"context"
	"encoding/json"
	"fmt"
)

// Part is one element of a prompt: either plain text or an opaque binary
// attachment (audio or image) with its declared MIME type.
type Part struct {
	Text     string
	Data     []byte
	MIMEType string
}

// TextPart wraps a prompt string as a Part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// BlobPart wraps binary data (audio, image) as a Part.
func BlobPart(mimeType string, data []byte) Part {
	return Part{Data: data, MIMEType: mimeType}
}

// Request describes a single structured-generation call.
type Request struct {
	// Parts is the ordered prompt content. At least one part is required.
	Parts []Part

	// Schema constrains the shape of the JSON the generator should return.
	Schema *Schema

	// SystemInstruction optionally sets the generator's role for this call.
	SystemInstruction string
}

// Validate checks that the request is well-formed before any network call.
func (r Request) Validate() error {
	if len(r.Parts) == 0 {
		return fmt.Errorf("%w: request has no prompt parts", ErrEmptyInput)
	}
	for i, p := range r.Parts {
		if p.Text == "" && len(p.Data) == 0 {
			return fmt.Errorf("%w: part %d is empty", ErrEmptyInput, i)
		}
		if len(p.Data) > 0 && p.MIMEType == "" {
			return fmt.Errorf("%w: part %d has binary data without a MIME type", ErrEmptyInput, i)
		}
	}
	return nil
}

// Generator is the single network dependency of the session engines. It sends
// a prompt with a required output schema and returns the provider's response
// parsed as raw JSON. Implementations hold no session state.
type Generator interface {
	// Generate performs one structured-generation call. The returned bytes
	// are guaranteed to be valid JSON; schema conformance beyond that is the
	// caller's responsibility to verify.
	Generate(ctx context.Context, req Request) (json.RawMessage, error)
}
