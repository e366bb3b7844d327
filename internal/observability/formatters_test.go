package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-aligner/internal/types"
)

func TestPrintBox_FixedWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.printBox("TITLE", "short\n"+strings.Repeat("é", 100))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 6)
	for _, line := range lines {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
	assert.Contains(t, lines[4], "...")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
}

func TestPrintAlignment(t *testing.T) {
	var buf bytes.Buffer
	a := &types.Alignment{
		Skills: []types.AlignmentItem{
			{Term: "Python", Strength: types.BandStrong, Confidence: 1},
			{Term: "Go", Strength: types.BandMissing, Confidence: 0},
		},
		Tools: []types.AlignmentItem{{Term: "Docker", Strength: types.BandWeak, Confidence: 0.4}},
		Gaps:  []types.Gap{{Term: "Go", Reason: "not found"}},
	}
	NewPrinter(&buf).PrintAlignment(a, types.Coverage{Required: 0.5, Preferred: 1})

	out := buf.String()
	assert.Contains(t, out, "ALIGNMENT")
	assert.Contains(t, out, "required 50%  preferred 100%")
	assert.Contains(t, out, "Python")
	assert.Contains(t, out, "Docker")
	assert.Contains(t, out, "• Go (not found)")
}

func TestPrintAlignment_NoGaps(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAlignment(&types.Alignment{}, types.Coverage{Required: 1, Preferred: 1})
	assert.Contains(t, buf.String(), "No gaps")
}

func TestPrinter_NilInputsPrintNothing(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintAlignment(nil, types.Coverage{})
	p.PrintResume(nil)
	p.PrintJobDescription(nil)
	p.PrintATSChecklist(nil)
	p.PrintEdits(nil)
	assert.Zero(t, buf.Len())
}

func TestPrintJobDescription_TruncatesLists(t *testing.T) {
	var buf bytes.Buffer
	jd := types.NewJobDescription()
	jd.Title = "Data Engineer"
	jd.Entities.RequiredSkills = []string{"a", "b", "c", "d", "e", "f", "g"}
	NewPrinter(&buf).PrintJobDescription(jd)

	out := buf.String()
	assert.Contains(t, out, "Data Engineer")
	assert.Contains(t, out, "... and 2 more")
}

func TestPrintATSChecklist(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintATSChecklist([]types.ATSCheck{{Rule: "No tables", Pass: true}, {Rule: "Dates detectable"}})
	assert.Contains(t, buf.String(), "✓ No tables")
	assert.Contains(t, buf.String(), "✗ Dates detectable")
}

func TestPrintEdits(t *testing.T) {
	var buf bytes.Buffer
	text := "Led: Built pipelines"
	NewPrinter(&buf).PrintEdits([]types.EditItem{{Type: types.EditRewrite, NewText: &text}})
	assert.Contains(t, buf.String(), "Proposed 1 edits")
	assert.Contains(t, buf.String(), "Led: Built pipelines")
}
