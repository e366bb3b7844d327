// Package types provides type definitions for structured data used throughout the resume-aligner system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Band is a qualitative match strength
type Band string

// Bands in descending strength
const (
	BandStrong  Band = "strong"
	BandMedium  Band = "medium"
	BandWeak    Band = "weak"
	BandMissing Band = "missing"
)

// Rank orders bands: missing < weak < medium < strong. Unknown bands rank below missing.
func (b Band) Rank() int {
	switch b {
	case BandStrong:
		return 3
	case BandMedium:
		return 2
	case BandWeak:
		return 1
	case BandMissing:
		return 0
	default:
		return -1
	}
}

// Covered reports whether the band counts toward coverage (strong or medium)
func (b Band) Covered() bool {
	return b == BandStrong || b == BandMedium
}

// AlignmentItem is the per-term alignment record
type AlignmentItem struct {
	Term       string   `json:"term"`
	Evidence   []string `json:"evidence"` // reserved for span citations, currently always empty
	Strength   Band     `json:"strength"`
	Confidence float64  `json:"confidence"`
}

// ResponsibilityCoverage is the raw score for one job responsibility
type ResponsibilityCoverage struct {
	JDItem      string   `json:"jd_item"`
	EvidenceIDs []string `json:"evidence_ids"`
	Coverage    float64  `json:"coverage"`
}

// Gap is an unmet skill requirement
type Gap struct {
	Term       string `json:"term"`
	Reason     string `json:"reason"`
	Suggestion string `json:"suggestion"`
}

// Alignment is the full result of aligning a resume against job terms
type Alignment struct {
	Skills           []AlignmentItem          `json:"skills"`
	Tools            []AlignmentItem          `json:"tools"`
	Responsibilities []ResponsibilityCoverage `json:"responsibilities"`
	Gaps             []Gap                    `json:"gaps"`
}

// Coverage holds the required and preferred coverage ratios
type Coverage struct {
	Required  float64 `json:"required"`
	Preferred float64 `json:"preferred"`
}
