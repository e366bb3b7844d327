package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// skillAliases maps lower-cased variants to a canonical display name
var skillAliases = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"gcp":        "GCP",
	"aws":        "AWS",
	"sql":        "SQL",
}

// NormalizeSkillName maps a skill to its canonical display form. Known
// aliases win; otherwise single lower-case or shouting words get an initial
// capital and anything already mixed-case is left alone.
func NormalizeSkillName(skillName string) string {
	name := strings.TrimSpace(skillName)
	if name == "" {
		return ""
	}

	lower := strings.ToLower(name)
	if canonical, ok := skillAliases[lower]; ok {
		return canonical
	}
	if strings.Contains(name, " ") {
		return name
	}

	upper := strings.ToUpper(name)
	switch {
	case name == upper && utf8.RuneCountInString(name) > 1:
		return capitalize(lower)
	case name == lower:
		return capitalize(name)
	default:
		return name
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// NormalizeTerms trims each term, drops empties and collapses terms that
// normalize to the same skill name, keeping the first spelling seen.
func NormalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		key := strings.ToLower(NormalizeSkillName(term))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, term)
	}
	return out
}
