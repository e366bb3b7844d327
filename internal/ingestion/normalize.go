// Package ingestion turns uploaded documents and fetched pages into the
// normalized plain text that parsing and scoring operate on.
package ingestion

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SafeBullet is the single bullet glyph every bullet variant is folded into
const SafeBullet = "•"

var (
	bulletReplacer  = strings.NewReplacer("•", SafeBullet, "*", SafeBullet)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// NormalizeText applies NFKC compatibility folding, unifies bullets to
// SafeBullet, collapses every whitespace run (newlines included) into a
// single space and trims the result.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	s = bulletReplacer.Replace(s)
	s = whitespaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
