// Package types provides type definitions for structured data used throughout the resume-aligner system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ATSCheck is the outcome of one ATS-compatibility rule
type ATSCheck struct {
	Rule string `json:"rule"`
	Pass bool   `json:"pass"`
}

// EditItem is a proposed change to the resume
type EditItem struct {
	Type     string   `json:"type"` // rewrite or reorder
	SourceID *string  `json:"source_id,omitempty"`
	Section  *string  `json:"section,omitempty"`
	Order    []string `json:"order,omitempty"`
	NewText  *string  `json:"new_text,omitempty"`
}

// Edit types
const (
	EditRewrite = "rewrite"
	EditReorder = "reorder"
)

// Report summarizes an alignment run for rendering
type Report struct {
	Coverage     Coverage           `json:"coverage"`
	Gaps         []string           `json:"gaps"`
	ATSChecklist []ATSCheck         `json:"ats_checklist"`
	Changelog    []map[string]any   `json:"changelog"`
	Readability  map[string]float64 `json:"readability"`
}

// Settings holds user preferences for tailoring. Clients send them with
// alignment requests; they are validated but do not change any result.
type Settings struct {
	Seniority   string  `json:"seniority" validate:"omitempty,oneof=junior mid senior lead exec"`
	Tone        string  `json:"tone" validate:"omitempty,oneof=concise impactful formal"`
	LengthPages int     `json:"length_pages" validate:"omitempty,oneof=1 2"`
	Region      string  `json:"region" validate:"omitempty,oneof=US UK EU"`
	Industry    *string `json:"industry,omitempty"`
	LinkedInURL *string `json:"linkedin_url,omitempty" validate:"omitempty,url"`
}
