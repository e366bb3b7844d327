// Package schemas embeds the JSON Schemas for the service's documents.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names
const (
	Resume           = "resume.schema.json"
	JobDescription   = "job_description.schema.json"
	TermSets         = "term_sets.schema.json"
	AlignmentRequest = "alignment_request.schema.json"
	Alignment        = "alignment.schema.json"
)

// All lists the embedded schema names
func All() []string {
	return []string{Resume, JobDescription, TermSets, AlignmentRequest, Alignment}
}
