// Package writing assesses written English, typed text or a photographed
// handwritten page, returning per-dimension scores, a corrected version,
// and itemized mistakes.
package writing
