// Package gemini implements the generation.Generator interface on top of
// Google's Gemini API via the google.golang.org/genai SDK. It translates the
// provider-independent schema and prompt-part types from internal/generation
// into the SDK's request shapes and maps provider failures onto the
// generation error taxonomy.
package gemini
