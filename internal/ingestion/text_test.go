package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"headings kept", "  # Title\n## Subtitle\nContent here", "# Title\n## Subtitle\nContent here"},
		{"bullets keep indentation", "- Item 1\n  - Nested\n* Item 3", "- Item 1\n  - Nested\n* Item 3"},
		{"inner spaces collapse", "Line    with    multiple    spaces", "Line with multiple spaces"},
		{"blank lines capped", "Line 1\n\n\n\n\nLine 2", "Line 1\n\nLine 2"},
		{"line endings normalized", "Line 1\r\nLine 2\rLine 3", "Line 1\nLine 2\nLine 3"},
		{"whitespace-only lines emptied", "a\n   \t\nb", "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(input))
}

func TestIngestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\n\nBuilt   Go services"), 0644))

	text, meta, err := IngestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe Built Go services", text)
	assert.Equal(t, "resume.txt", meta.Filename)
	assert.Equal(t, "txt", meta.Format)
	assert.Equal(t, ContentHash(text), meta.Hash)
}

func TestIngestFromFile_Missing(t *testing.T) {
	_, _, err := IngestFromFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}
