// Package report assembles alignment results into a Report and renders it
// as Markdown or HTML.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-aligner/internal/types"
)

// Input is everything a report is built from. Any field may be nil.
type Input struct {
	Resume    *types.Resume
	Alignment *types.Alignment
	Coverage  types.Coverage
	ATS       []types.ATSCheck
	Edits     []types.EditItem
}

// Build collects coverage, formatted gaps ("term – reason"), the ATS
// checklist, proposed edits as a changelog, and readability figures for
// the resume text.
func Build(in Input) types.Report {
	r := types.Report{
		Coverage:     in.Coverage,
		Gaps:         []string{},
		ATSChecklist: []types.ATSCheck{},
		Changelog:    []map[string]any{},
		Readability:  map[string]float64{},
	}

	if in.Alignment != nil {
		for _, g := range in.Alignment.Gaps {
			r.Gaps = append(r.Gaps, FormatGap(g))
		}
	}
	if in.ATS != nil {
		r.ATSChecklist = in.ATS
	}
	for _, e := range in.Edits {
		entry := map[string]any{"type": e.Type}
		if e.SourceID != nil {
			entry["source_id"] = *e.SourceID
		}
		if e.NewText != nil {
			entry["new_text"] = *e.NewText
		}
		if e.Section != nil {
			entry["section"] = *e.Section
		}
		if len(e.Order) > 0 {
			entry["order"] = e.Order
		}
		r.Changelog = append(r.Changelog, entry)
	}
	if in.Resume != nil {
		r.Readability = Readability(in.Resume.RawText)
	}
	return r
}

// FormatGap renders a gap as "term – reason"
func FormatGap(g types.Gap) string {
	return fmt.Sprintf("%s – %s", g.Term, g.Reason)
}

// Readability returns word, sentence and average-sentence-length counts
// for text. Sentences end at '.', '!' or '?'; trailing text without a
// terminator counts as one more sentence.
func Readability(text string) map[string]float64 {
	words := len(strings.Fields(text))
	sentences := 0
	open := false
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if open {
				sentences++
				open = false
			}
		case ' ', '\t', '\n', '\r':
		default:
			open = true
		}
	}
	if open {
		sentences++
	}

	avg := 0.0
	if sentences > 0 {
		avg = math.Round(float64(words)/float64(sentences)*100) / 100
	}
	return map[string]float64{
		"words":              float64(words),
		"sentences":          float64(sentences),
		"avg_sentence_words": avg,
	}
}
