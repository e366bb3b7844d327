package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-aligner/internal/prompts"
)

// ExtractionSchema describes the JSON object a prompt asks the model to fill
type ExtractionSchema struct {
	Name        string
	Description string
	Fields      []SchemaField
}

// SchemaField is one key of the expected JSON output
type SchemaField struct {
	Name        string
	Type        string // type hint shown to the model, e.g. ["string"]
	Description string
	Required    bool
}

// BuildExtractionPrompt renders schema and the input text into a single prompt
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var fields strings.Builder
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		fmt.Fprintf(&fields, "  %q: %s", field.Name, typeHint)
		if field.Required {
			fields.WriteString(" (required)")
		}
		if field.Description != "" {
			fmt.Fprintf(&fields, " // %s", field.Description)
		}
		if i < len(schema.Fields)-1 {
			fields.WriteString(",")
		}
		fields.WriteString("\n")
	}

	return prompts.Format(prompts.MustGet(prompts.ExtractionFile, "extract-json"), map[string]string{
		"Description": schema.Description,
		"Fields":      fields.String(),
		"Input":       inputText,
	})
}

// JobEntitiesSchema asks for the term categories used by alignment scoring.
// Field names match the JSON tags of types.JobEntities.
func JobEntitiesSchema() ExtractionSchema {
	list := `["string"]`
	return ExtractionSchema{
		Name:        "JobEntities",
		Description: prompts.MustGet(prompts.ExtractionFile, "job-entities"),
		Fields: []SchemaField{
			{Name: "title", Type: `"string"`, Description: "Job title as written"},
			{Name: "company", Type: `"string"`, Description: "Hiring company name"},
			{Name: "required_skills", Type: list, Description: "Skills listed as required or must-have", Required: true},
			{Name: "preferred_skills", Type: list, Description: "Skills listed as preferred, bonus or nice-to-have", Required: true},
			{Name: "responsibilities", Type: list, Description: "Duties in posting order", Required: true},
			{Name: "tools", Type: list, Description: "Named products, platforms and frameworks", Required: true},
			{Name: "certifications", Type: list, Description: "Certifications or licenses"},
			{Name: "domains", Type: list, Description: "Industry or problem domains"},
			{Name: "keywords", Type: list, Description: "Other notable terms, including years of experience"},
		},
	}
}
