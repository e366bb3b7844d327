package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkillName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Golang to Go", "Golang", "Go"},
		{"GOLANG to Go", "GOLANG", "Go"},
		{"go lang to Go", "go lang", "Go"},
		{"JS to JavaScript", "JS", "JavaScript"},
		{"ts to TypeScript", "ts", "TypeScript"},
		{"k8s to Kubernetes", "k8s", "Kubernetes"},
		{"reactjs to React", "reactjs", "React"},
		{"nodejs to Node.js", "nodejs", "Node.js"},
		{"postgres alias", "Postgres", "PostgreSQL"},
		{"sql alias", "sql", "SQL"},
		{"lower single word capitalized", "python", "Python"},
		{"shouting single word", "PYTHON", "Python"},
		{"mixed case untouched", "GraphQL", "GraphQL"},
		{"multi-word untouched", "distributed systems", "distributed systems"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"single upper letter untouched", "R", "R"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSkillName(tt.input))
		})
	}
}

func TestNormalizeTerms(t *testing.T) {
	got := NormalizeTerms([]string{" Golang ", "Go", "", "k8s", "Kubernetes", "python", "Python"})
	assert.Equal(t, []string{"Golang", "k8s", "python"}, got)
	assert.Empty(t, NormalizeTerms(nil))
}
