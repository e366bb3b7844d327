package alignment

import "github.com/jonathan/resume-aligner/internal/types"

// CoverageScores returns the fraction of required and preferred terms whose
// alignment record is banded strong or medium. An empty term list is fully
// covered. A term with no record in a.Skills counts as uncovered.
func CoverageScores(a *types.Alignment, required, preferred []string) types.Coverage {
	var skills []types.AlignmentItem
	if a != nil {
		skills = a.Skills
	}
	return types.Coverage{
		Required:  coverageRatio(skills, required),
		Preferred: coverageRatio(skills, preferred),
	}
}

func coverageRatio(skills []types.AlignmentItem, terms []string) float64 {
	if len(terms) == 0 {
		return 1.0
	}
	covered := 0
	for _, term := range terms {
		if item, ok := lookup(skills, term); ok && item.Strength.Covered() {
			covered++
		}
	}
	return round2(float64(covered) / float64(len(terms)))
}

// lookup returns the first record whose term matches exactly
func lookup(skills []types.AlignmentItem, term string) (types.AlignmentItem, bool) {
	for _, item := range skills {
		if item.Term == term {
			return item, true
		}
	}
	return types.AlignmentItem{}, false
}
