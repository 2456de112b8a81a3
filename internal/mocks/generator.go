package mocks

import (
	"context"
	"encoding/json"

	"github.com/phrazzld/studyhub-api/internal/generation"
)

// Verify interface compliance at compile time.
var _ generation.Generator = (*Generator)(nil)

// Generator is a stub generation.Generator driven by a caller-supplied
// function. Requests are recorded for assertions.
type Generator struct {
	GenerateFn func(ctx context.Context, req generation.Request) (json.RawMessage, error)
	Requests   []generation.Request
}

// Generate records the request and delegates to GenerateFn.
func (g *Generator) Generate(ctx context.Context, req generation.Request) (json.RawMessage, error) {
	g.Requests = append(g.Requests, req)
	if g.GenerateFn == nil {
		return json.RawMessage(`{}`), nil
	}
	return g.GenerateFn(ctx, req)
}

// RespondWith returns a Generator that always succeeds with the given JSON.
func RespondWith(raw string) *Generator {
	return &Generator{
		GenerateFn: func(context.Context, generation.Request) (json.RawMessage, error) {
			return json.RawMessage(raw), nil
		},
	}
}

// FailWith returns a Generator that always fails with the given error.
func FailWith(err error) *Generator {
	return &Generator{
		GenerateFn: func(context.Context, generation.Request) (json.RawMessage, error) {
			return nil, err
		},
	}
}
