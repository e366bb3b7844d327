package parsing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResume(t *testing.T) {
	resume, err := ParseResume("jane.txt", []byte("Jane Doe\nI built ETL in Python and SQL for Snowflake."))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe I built ETL in Python and SQL for Snowflake.", resume.RawText)
	assert.Equal(t, resume.RawText, resume.Summary)
	assert.Equal(t, "jane.txt", resume.SourceMeta["filename"])
	assert.Equal(t, "txt", resume.SourceMeta["format"])
	assert.NotNil(t, resume.Experience)
	assert.Empty(t, resume.Experience)
	assert.NotNil(t, resume.Skills.Hard)
}

func TestParseResume_SummaryTruncated(t *testing.T) {
	long := strings.Repeat("é", SummaryMaxRunes+50)
	resume, err := ParseResume("cv.txt", []byte(long))
	require.NoError(t, err)
	assert.Equal(t, SummaryMaxRunes, len([]rune(resume.Summary)))
}

func TestParseResume_Empty(t *testing.T) {
	resume, err := ParseResume("empty.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, "", resume.RawText)
	assert.Equal(t, "", resume.Summary)
}

func TestParseResume_BadPDF(t *testing.T) {
	_, err := ParseResume("cv.pdf", []byte("nope"))
	assert.Error(t, err)
}

func TestParseResumeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jane.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\nSQL and Snowflake."), 0644))

	resume, err := ParseResumeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe SQL and Snowflake.", resume.RawText)
	assert.Equal(t, "jane.txt", resume.SourceMeta["filename"])
	assert.Equal(t, "txt", resume.SourceMeta["format"])

	_, err = ParseResumeFile(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorContains(t, err, "file not found")
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "second", firstLine("\n  \n second \nthird", 300))
	assert.Equal(t, "ab", firstLine("abcdef", 2))
	assert.Equal(t, "", firstLine("", 10))
}
