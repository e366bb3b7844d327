package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	schemafiles "github.com/jonathan/resume-aligner/schemas"
)

func TestEmbeddedSchemasCompile(t *testing.T) {
	for _, name := range schemafiles.All() {
		t.Run(name, func(t *testing.T) {
			_, err := load(name)
			require.NoError(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		schema    string
		doc       string
		wantField string
	}{
		{"empty resume", schemafiles.Resume, `{}`, ""},
		{"full resume", schemafiles.Resume, `{"summary":"x","raw_text":"python","skills":{"hard":["Go"]},"experience":[{"title":"Eng","bullets":[{"text":"Built"}]}]}`, ""},
		{"resume not object", schemafiles.Resume, `"text"`, "(root)"},
		{"raw_text wrong type", schemafiles.Resume, `{"raw_text":42}`, "raw_text"},
		{"skill not string", schemafiles.Resume, `{"skills":{"hard":[1]}}`, "skills.hard.0"},
		{"bullet missing text", schemafiles.Resume, `{"experience":[{"bullets":[{"id":"b1"}]}]}`, "experience.0.bullets.0"},
		{"jd entities", schemafiles.JobDescription, `{"entities":{"required_skills":["Python"]}}`, ""},
		{"jd entities wrong type", schemafiles.JobDescription, `{"entities":{"tools":"docker"}}`, "entities.tools"},
		{"queue request", schemafiles.AlignmentRequest, `{"id":"r1","terms":{"required_skills":["SQL"]}}`, ""},
		{"queue request without id", schemafiles.AlignmentRequest, `{"resume_text":"x"}`, "(root)"},
		{"invalid json", schemafiles.Resume, `{`, "(root)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.schema, []byte(tt.doc))
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.NotEmpty(t, ve.Errors)
			assert.Equal(t, tt.wantField, ve.Errors[0].Field)
			assert.Equal(t, tt.schema, ve.Schema)
		})
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", []byte(`{}`))
	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"raw_text":"python"}`), 0644))
	assert.NoError(t, ValidateFile(schemafiles.Resume, path))

	err := ValidateFile(schemafiles.Resume, filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read")
}

