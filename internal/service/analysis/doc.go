// Package analysis turns study material, pasted text or a photographed page,
// into a summary with keywords and an optional mindmap tree, and can read
// the summary aloud.
package analysis
