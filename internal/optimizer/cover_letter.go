package optimizer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/jonathan/resume-aligner/internal/types"
)

const coverLetterTemplate = `Dear Hiring Manager,

I am excited to apply for the {{.Title}} role. My background aligns with your needs, including: {{.Skills}}.

Best regards,
{{.Name}}
`

var coverLetterTmpl = template.Must(template.New("cover_letter").Parse(coverLetterTemplate))

// CoverLetter renders a short plain-text letter naming the job title
// ("target" when blank), the first three required skills and the
// candidate's name from PII.
func CoverLetter(resume *types.Resume, jd *types.JobDescription) (string, error) {
	title := ""
	var required []string
	if jd != nil {
		title = strings.TrimSpace(jd.Title)
		required = jd.Entities.RequiredSkills
	}
	if title == "" {
		title = "target"
	}
	if len(required) > 3 {
		required = required[:3]
	}

	data := struct {
		Title  string
		Skills string
		Name   string
	}{
		Title:  title,
		Skills: strings.Join(required, ", "),
		Name:   resume.PIIString("name"),
	}

	var buf bytes.Buffer
	if err := coverLetterTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render cover letter: %w", err)
	}
	return buf.String(), nil
}
