package domain

import "errors"

// Content analysis validation errors.
var (
	// ErrSummaryEmpty is returned when the generator produced an analysis
	// without a summary.
	ErrSummaryEmpty = errors.New("analysis summary cannot be empty")
)

// MaxMindMapDepth is the deepest nesting the generation contract allows:
// the root plus two descendant levels.
const MaxMindMapDepth = 3

// SummaryLength selects the requested word-count band for a summary.
type SummaryLength string

const (
	SummaryShort  SummaryLength = "short"  // 30-50 words
	SummaryMedium SummaryLength = "medium" // 80-120 words
	SummaryLong   SummaryLength = "long"   // 180-250 words
)

// AnalysisMode selects which outputs an analysis should produce.
type AnalysisMode string

const (
	ModeSummary AnalysisMode = "summary"
	ModeMindmap AnalysisMode = "mindmap"
	ModeBoth    AnalysisMode = "both"
)

// AnalysisOptions configures a content analysis request.
type AnalysisOptions struct {
	SummaryLength SummaryLength `json:"summary_length"`
	Mode          AnalysisMode  `json:"mode"`
}

// WantsMindmap reports whether the mode includes mindmap output.
func (o AnalysisOptions) WantsMindmap() bool {
	return o.Mode == ModeMindmap || o.Mode == ModeBoth
}

// MindMapNode is one node of a generated mindmap tree. The tree is acyclic
// by construction; it comes from a freshly generated document and is never
// user-edited.
type MindMapNode struct {
	ID       string         `json:"id"`
	Label    string         `json:"label"`
	Color    string         `json:"color"`
	Note     string         `json:"note,omitempty"`
	Children []*MindMapNode `json:"children,omitempty"`
}

// ClampDepth drops descendants below the given depth, counting this node as
// depth 1. Generators constrained by the depth-bounded schema should never
// exceed it, but a returned tree is untrusted input like everything else.
func (n *MindMapNode) ClampDepth(depth int) {
	if n == nil {
		return
	}
	if depth <= 1 {
		n.Children = nil
		return
	}
	for _, child := range n.Children {
		child.ClampDepth(depth - 1)
	}
}

// ContentAnalysisResult is the combined output of one analysis call.
// RootNode is nil when the analysis mode excludes mindmap output.
type ContentAnalysisResult struct {
	Summary  string       `json:"summary"`
	Keywords []string     `json:"keywords"`
	RootNode *MindMapNode `json:"root_node,omitempty"`
}

// Validate checks the fields an analysis result cannot function without.
func (r *ContentAnalysisResult) Validate() error {
	if r.Summary == "" {
		return ErrSummaryEmpty
	}
	return nil
}
