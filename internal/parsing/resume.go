// Package parsing builds Resume and JobDescription values from uploads,
// pasted text and job posting URLs.
package parsing

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-aligner/internal/ingestion"
	"github.com/jonathan/resume-aligner/internal/types"
)

// SummaryMaxRunes bounds the summary taken from the first line of a resume
const SummaryMaxRunes = 300

// ParseResume extracts the text of an uploaded resume. Only raw_text,
// summary and source_meta are populated; sections are left for the user to fill in.
func ParseResume(filename string, content []byte) (*types.Resume, error) {
	text, err := ingestion.ParseDocument(filename, content)
	if err != nil {
		return nil, err
	}

	meta := ingestion.NewMetadata(text)
	meta.Filename = filename
	meta.Format = string(ingestion.DetectFormat(filename))

	return newResume(text, meta), nil
}

// ParseResumeFile reads and parses the resume document at path
func ParseResumeFile(path string) (*types.Resume, error) {
	text, meta, err := ingestion.IngestFromFile(path)
	if err != nil {
		return nil, err
	}
	return newResume(text, meta), nil
}

func newResume(text string, meta *ingestion.Metadata) *types.Resume {
	resume := types.NewResume()
	resume.RawText = text
	resume.Summary = firstLine(text, SummaryMaxRunes)
	resume.SourceMeta = meta.SourceMeta()
	return resume
}

// firstLine returns the first non-blank line of text, trimmed and cut to max runes
func firstLine(text string, max int) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > max {
			return string([]rune(line)[:max])
		}
		return line
	}
	return ""
}
