package rendering

import (
	"strings"

	"github.com/jonathan/resume-aligner/internal/ingestion"
	"github.com/jonathan/resume-aligner/internal/types"
)

// TextMaxRunes bounds the plain text export
const TextMaxRunes = 6000

// RenderText returns a plain text export: an optional header line, the
// summary, a blank line and the raw resume text tidied for reading.
func RenderText(resume *types.Resume) string {
	if resume == nil {
		return ""
	}

	var sb strings.Builder
	if header := contactLine(resume); header != "" {
		sb.WriteString(header)
		sb.WriteString("\n\n")
	}
	sb.WriteString(resume.Summary)
	sb.WriteString("\n\n")
	sb.WriteString(ingestion.CleanText(resume.RawText))
	return truncateRunes(sb.String(), TextMaxRunes)
}

// contactLine joins the non-empty name and email with " | "
func contactLine(resume *types.Resume) string {
	var parts []string
	for _, key := range []string{"name", "email"} {
		if v := strings.TrimSpace(resume.PIIString(key)); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " | ")
}
