// Package speaking drives pronunciation practice: free-form speech
// assessment, scripted dialogue practice with per-line feedback, and an
// open-ended voice conversation with inline corrections.
package speaking
