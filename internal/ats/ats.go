// Package ats runs applicant-tracking-system compatibility checks over resume text.
package ats

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-aligner/internal/types"
)

// Rule names, in evaluation order
const (
	RuleNoTables       = "No tables"
	RuleBulletChars    = "Bullet characters allowed"
	RuleDatesPresent   = "Dates detectable"
	RuleContactPresent = "Contact info present"
)

var (
	yearRe  = regexp.MustCompile(`(20\d{2}|19\d{2})`)
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
)

// Rule is a named pass/fail check over raw resume text
type Rule struct {
	Name  string
	Check func(text string) bool
}

// DefaultRules returns the built-in checks in report order.
func DefaultRules() []Rule {
	return []Rule{
		// " | " between cells is how tables survive text extraction
		{Name: RuleNoTables, Check: func(text string) bool { return !strings.Contains(text, " | ") }},
		// generated documents only use "•" and "-"
		{Name: RuleBulletChars, Check: func(string) bool { return true }},
		{Name: RuleDatesPresent, Check: yearRe.MatchString},
		{Name: RuleContactPresent, Check: HasContactInfo},
	}
}

// HasContactInfo reports whether text contains an email address or a phone number
func HasContactInfo(text string) bool {
	return emailRe.MatchString(text) || phoneRe.MatchString(text)
}

// CheckText evaluates rules against text, preserving rule order.
func CheckText(text string, rules []Rule) []types.ATSCheck {
	out := make([]types.ATSCheck, 0, len(rules))
	for _, r := range rules {
		out = append(out, types.ATSCheck{Rule: r.Name, Pass: r.Check(text)})
	}
	return out
}

// Check runs DefaultRules over the resume's raw text. A nil resume is checked as empty text.
func Check(resume *types.Resume) []types.ATSCheck {
	text := ""
	if resume != nil {
		text = resume.RawText
	}
	return CheckText(text, DefaultRules())
}

// Passed counts passing checks
func Passed(checks []types.ATSCheck) int {
	n := 0
	for _, c := range checks {
		if c.Pass {
			n++
		}
	}
	return n
}
