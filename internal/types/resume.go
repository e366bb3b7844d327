// Package types provides type definitions for structured data used throughout the resume-aligner system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Bullet is a single resume bullet with optional token and span annotations
type Bullet struct {
	ID            string           `json:"id"`
	Text          string           `json:"text"`
	Tokens        []string         `json:"tokens"`
	EvidenceSpans []map[string]int `json:"evidence_spans"`
}

// ExperienceItem represents one role in the candidate's work history
type ExperienceItem struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	NormalizedTitle string   `json:"normalized_title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	StartDate       *string  `json:"start_date"` // YYYY-MM
	EndDate         *string  `json:"end_date"`   // YYYY-MM or null
	Current         bool     `json:"current"`
	Bullets         []Bullet `json:"bullets"`
	Skills          []string `json:"skills"`
	Tools           []string `json:"tools"`
	Domains         []string `json:"domains"`
}

// EducationItem represents one education entry
type EducationItem struct {
	School    string  `json:"school"`
	Degree    string  `json:"degree"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// Skills groups the skills listed on a resume
type Skills struct {
	Hard           []string `json:"hard"`
	Soft           []string `json:"soft"`
	Certifications []string `json:"certifications"`
	Languages      []string `json:"languages"`
}

// Resume is a parsed candidate resume. RawText is the input to alignment scoring.
type Resume struct {
	PII        map[string]any   `json:"pii"`
	Summary    string           `json:"summary"`
	Experience []ExperienceItem `json:"experience"`
	Education  []EducationItem  `json:"education"`
	Skills     Skills           `json:"skills"`
	Projects   []map[string]any `json:"projects"`
	RawText    string           `json:"raw_text"`
	SourceMeta map[string]any   `json:"source_meta"`
}

// NewResume returns a Resume with every collection initialized so it
// serializes with empty arrays and objects instead of nulls.
func NewResume() *Resume {
	return &Resume{
		PII:        map[string]any{},
		Experience: []ExperienceItem{},
		Education:  []EducationItem{},
		Skills: Skills{
			Hard:           []string{},
			Soft:           []string{},
			Certifications: []string{},
			Languages:      []string{},
		},
		Projects:   []map[string]any{},
		SourceMeta: map[string]any{},
	}
}

// PIIString returns a PII field as a string, or "" when it is absent or not a string.
func (r *Resume) PIIString(key string) string {
	if r == nil || r.PII == nil {
		return ""
	}
	if s, ok := r.PII[key].(string); ok {
		return s
	}
	return ""
}
