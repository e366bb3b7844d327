// Package types provides type definitions for structured data used throughout the resume-aligner system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobEntities holds the term sets extracted from a job posting
type JobEntities struct {
	RequiredSkills   []string `json:"required_skills"`
	PreferredSkills  []string `json:"preferred_skills"`
	Responsibilities []string `json:"responsibilities"`
	Tools            []string `json:"tools"`
	Certifications   []string `json:"certifications"`
	Domains          []string `json:"domains"`
	Keywords         []string `json:"keywords"`
}

// NewJobEntities returns JobEntities with all term sets initialized to empty slices
func NewJobEntities() JobEntities {
	return JobEntities{
		RequiredSkills:   []string{},
		PreferredSkills:  []string{},
		Responsibilities: []string{},
		Tools:            []string{},
		Certifications:   []string{},
		Domains:          []string{},
		Keywords:         []string{},
	}
}

// WithEmptyLists returns a copy of e whose nil term sets are replaced by empty slices
func (e JobEntities) WithEmptyLists() JobEntities {
	for _, list := range []*[]string{
		&e.RequiredSkills, &e.PreferredSkills, &e.Responsibilities,
		&e.Tools, &e.Certifications, &e.Domains, &e.Keywords,
	} {
		if *list == nil {
			*list = []string{}
		}
	}
	return e
}

// JobDescription represents a parsed job posting
type JobDescription struct {
	Title      string         `json:"title"`
	Company    string         `json:"company"`
	Entities   JobEntities    `json:"entities"`
	RawText    string         `json:"raw_text"`
	SourceMeta map[string]any `json:"source_meta"`
}

// NewJobDescription returns an empty JobDescription with initialized collections
func NewJobDescription() *JobDescription {
	return &JobDescription{
		Entities:   NewJobEntities(),
		SourceMeta: map[string]any{},
	}
}

// TermSets is the structured input of alignment scoring: ordered term lists
// produced by job description extraction.
type TermSets struct {
	Required         []string `json:"required_skills"`
	Preferred        []string `json:"preferred_skills"`
	Tools            []string `json:"tools"`
	Responsibilities []string `json:"responsibilities"`
}

// TermSets returns the scoring input derived from the job description entities
func (jd *JobDescription) TermSets() TermSets {
	if jd == nil {
		return TermSets{}
	}
	return TermSets{
		Required:         jd.Entities.RequiredSkills,
		Preferred:        jd.Entities.PreferredSkills,
		Tools:            jd.Entities.Tools,
		Responsibilities: jd.Entities.Responsibilities,
	}
}
