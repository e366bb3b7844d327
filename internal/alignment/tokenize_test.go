package alignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty input", "", []string{}},
		{"whitespace only", "   \n\t ", []string{}},
		{"lowercases and splits on punctuation", "Python, SQL & C++!", []string{"python", "sql", "c++"}},
		{"keeps dots inside tokens", "Node.js/React", []string{"node.js", "react"}},
		{"keeps hash and leading dot", "C# .NET", []string{"c#", ".net"}},
		{"keeps hyphen and digits", "e-mail 2024", []string{"e-mail", "2024"}},
		{"trailing period sticks to word", "for Snowflake.", []string{"for", "snowflake."}},
		{"non-ascii letters split runs", "Café", []string{"caf"}},
		{"duplicates are kept", "go go Go", []string{"go", "go", "go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestTokenize_Idempotent(t *testing.T) {
	text := "Built ETL in Python 3.11 and C++ for AWS/GCP."
	first := Tokenize(text)
	assert.Equal(t, first, Tokenize(text))
}
