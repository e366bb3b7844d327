// Package optimizer proposes resume edits and builds a tailored copy of a
// resume for a job description.
package optimizer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-aligner/internal/alignment"
	"github.com/jonathan/resume-aligner/internal/types"
)

// ActionVerbs prefix rewritten bullets, cycling in order
var ActionVerbs = []string{
	"led", "built", "automated", "designed", "implemented", "optimized", "launched", "improved", "delivered",
	"migrated", "developed", "analyzed", "reduced", "increased", "collaborated", "owned", "drove",
}

const (
	maxRewrites       = 3
	minSentenceRunes  = 9
	maxSummaryTerms   = 10
	summarySeparator  = " — "
	fallbackAddendum  = "Aligned to target role."
	termJoinSeparator = " | "
)

// RewriteBullets proposes rewrites for the first three sentences of the
// resume text that are longer than eight characters. Each is prefixed with
// an action verb and addressed as exp.1.b<n>.
func RewriteBullets(resume *types.Resume) []types.EditItem {
	edits := []types.EditItem{}
	if resume == nil {
		return edits
	}

	for _, raw := range strings.Split(resume.RawText, ".") {
		if len(edits) == maxRewrites {
			break
		}
		sentence := strings.TrimSpace(raw)
		if utf8.RuneCountInString(sentence) < minSentenceRunes {
			continue
		}

		idx := len(edits)
		sourceID := fmt.Sprintf("exp.1.b%d", idx+1)
		newText := capitalize(ActionVerbs[idx%len(ActionVerbs)]) + ": " + sentence
		edits = append(edits, types.EditItem{
			Type:     types.EditRewrite,
			SourceID: &sourceID,
			NewText:  &newText,
		})
	}
	return edits
}

// BuildTailoredResume returns a copy of resume whose summary is extended
// with the job's required, preferred and keyword terms that already appear
// as tokens in the resume text (at most ten, " | " separated). The input is
// not modified.
func BuildTailoredResume(resume *types.Resume, jd *types.JobDescription) *types.Resume {
	tailored := types.NewResume()
	if resume != nil {
		copied := *resume
		tailored = &copied
	}

	existing := make(map[string]bool)
	for _, tok := range alignment.Tokenize(tailored.RawText) {
		existing[tok] = true
	}

	var candidates []string
	if jd != nil {
		candidates = append(candidates, jd.Entities.RequiredSkills...)
		candidates = append(candidates, jd.Entities.PreferredSkills...)
		candidates = append(candidates, jd.Entities.Keywords...)
	}

	var keep []string
	for _, term := range candidates {
		if existing[strings.ToLower(term)] {
			keep = append(keep, term)
		}
	}

	addendum := fallbackAddendum
	if len(keep) > 0 {
		if len(keep) > maxSummaryTerms {
			keep = keep[:maxSummaryTerms]
		}
		addendum = strings.Join(keep, termJoinSeparator)
	}

	tailored.Summary = strings.Trim(tailored.Summary+summarySeparator+addendum, " —")
	return tailored
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
