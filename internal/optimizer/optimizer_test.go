package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-aligner/internal/types"
)

func resumeWith(text, summary string) *types.Resume {
	r := types.NewResume()
	r.RawText = text
	r.Summary = summary
	return r
}

func TestRewriteBullets(t *testing.T) {
	r := resumeWith("Built ETL pipelines in Python. Short. Migrated warehouse to Snowflake. Ran on-call rotation. Fourth long sentence here.", "")
	edits := RewriteBullets(r)

	require.Len(t, edits, 3)
	expected := []string{
		"Led: Built ETL pipelines in Python",
		"Built: Migrated warehouse to Snowflake",
		"Automated: Ran on-call rotation",
	}
	for i, e := range edits {
		assert.Equal(t, types.EditRewrite, e.Type)
		require.NotNil(t, e.SourceID)
		require.NotNil(t, e.NewText)
		assert.Equal(t, expected[i], *e.NewText)
	}
	assert.Equal(t, "exp.1.b1", *edits[0].SourceID)
	assert.Equal(t, "exp.1.b3", *edits[2].SourceID)
}

func TestRewriteBullets_Boundaries(t *testing.T) {
	// exactly 8 characters is dropped, 9 is kept
	edits := RewriteBullets(resumeWith("12345678. 123456789.", ""))
	require.Len(t, edits, 1)
	assert.Equal(t, "Led: 123456789", *edits[0].NewText)

	assert.Empty(t, RewriteBullets(resumeWith("", "")))
	assert.NotNil(t, RewriteBullets(nil))
}

func TestBuildTailoredResume(t *testing.T) {
	original := resumeWith("Built ETL in Python and SQL for Snowflake. 2019", "Data engineer")
	jd := types.NewJobDescription()
	jd.Entities.RequiredSkills = []string{"Python", "Snowflake", "AWS"}
	jd.Entities.PreferredSkills = []string{"SQL"}
	jd.Entities.Keywords = []string{"2019"}

	tailored := BuildTailoredResume(original, jd)

	// "snowflake." keeps its period as a token, so Snowflake does not match
	assert.Equal(t, "Data engineer — Python | SQL | 2019", tailored.Summary)
	assert.Equal(t, "Data engineer", original.Summary, "input must not be mutated")
	assert.Equal(t, original.RawText, tailored.RawText)
}

func TestBuildTailoredResume_Fallback(t *testing.T) {
	jd := types.NewJobDescription()
	jd.Entities.RequiredSkills = []string{"Rust"}

	assert.Equal(t, "Data engineer — Aligned to target role.",
		BuildTailoredResume(resumeWith("python", "Data engineer"), jd).Summary)
	assert.Equal(t, "Aligned to target role.",
		BuildTailoredResume(resumeWith("python", ""), jd).Summary)
}

func TestBuildTailoredResume_CapsTerms(t *testing.T) {
	jd := types.NewJobDescription()
	for _, s := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		jd.Entities.RequiredSkills = append(jd.Entities.RequiredSkills, s)
	}
	tailored := BuildTailoredResume(resumeWith("a b c d e f g h i j k l", ""), jd)
	assert.Equal(t, "a | b | c | d | e | f | g | h | i | j", tailored.Summary)
}

func TestCoverLetter(t *testing.T) {
	r := types.NewResume()
	r.PII["name"] = "Jane Doe"
	jd := types.NewJobDescription()
	jd.Title = "Data Engineer"
	jd.Entities.RequiredSkills = []string{"Python", "SQL", "Snowflake", "AWS"}

	letter, err := CoverLetter(r, jd)
	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Manager,\n\n"+
		"I am excited to apply for the Data Engineer role. My background aligns with your needs, including: Python, SQL, Snowflake.\n\n"+
		"Best regards,\nJane Doe\n", letter)
}

func TestCoverLetter_Defaults(t *testing.T) {
	letter, err := CoverLetter(types.NewResume(), types.NewJobDescription())
	require.NoError(t, err)
	assert.Contains(t, letter, "for the target role.")
	assert.Contains(t, letter, "including: .")
	assert.True(t, len(letter) > 0 && letter[len(letter)-1] == '\n')
}
