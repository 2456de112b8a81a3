// Package generation defines the boundary between the study session engines
// and the structured-output content generator. It models prompts, binary
// attachments, and declarative output schemas independently of any concrete
// provider, so engines can be retargeted to a different generator
// implementation without changes. The Gemini-backed implementation lives in
// internal/platform/gemini.
package generation
