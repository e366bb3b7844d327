package rendering

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/jonathan/resume-aligner/internal/types"
)

//go:embed templates/resume.tex templates/blank.docx
var templateFS embed.FS

// BodyMaxRunes bounds how much raw resume text is exported when the resume
// has no structured experience
const BodyMaxRunes = 2000

// TemplateData is the escaped view of a resume passed to the LaTeX template
type TemplateData struct {
	Name       string
	Contact    string
	Summary    string
	Skills     string
	Experience []ExperienceSection
	Education  []EducationSection
	Body       []string
}

// ExperienceSection is one role
type ExperienceSection struct {
	Title   string
	Company string
	Dates   string
	Bullets []string
}

// EducationSection is one education entry
type EducationSection struct {
	School string
	Degree string
	Dates  string
}

// RenderLaTeX renders resume with the embedded default template
func RenderLaTeX(resume *types.Resume) (string, error) {
	content, err := templateFS.ReadFile("templates/resume.tex")
	if err != nil {
		return "", &FormatError{Format: "latex", Op: "read embedded template", Cause: err}
	}
	tmpl, err := parseTemplate(string(content))
	if err != nil {
		return "", err
	}
	return execute(tmpl, resume)
}

// RenderLaTeXWithTemplate renders resume with the template file at templatePath
func RenderLaTeXWithTemplate(resume *types.Resume, templatePath string) (string, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("%w: %s", ErrTemplateNotFound, templatePath)
		}
		return "", &FormatError{Format: "latex", Op: "read template", Cause: err}
	}
	tmpl, err := parseTemplate(string(content))
	if err != nil {
		return "", err
	}
	return execute(tmpl, resume)
}

func parseTemplate(content string) (*template.Template, error) {
	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
	}).Parse(content)
	if err != nil {
		return nil, &FormatError{Format: "latex", Op: "parse template", Cause: err}
	}
	return tmpl, nil
}

func execute(tmpl *template.Template, resume *types.Resume) (string, error) {
	var out strings.Builder
	if err := tmpl.Execute(&out, BuildTemplateData(resume)); err != nil {
		return "", &FormatError{Format: "latex", Op: "execute template", Cause: err}
	}
	return out.String(), nil
}

// BuildTemplateData escapes every resume field used by the template.
// Body is only filled when there is no structured experience.
func BuildTemplateData(resume *types.Resume) *TemplateData {
	if resume == nil {
		resume = types.NewResume()
	}

	data := &TemplateData{
		Name:    EscapeLaTeX(resume.PIIString("name")),
		Summary: EscapeLaTeX(strings.TrimSpace(resume.Summary)),
		Skills:  strings.Join(escapeAll(resume.Skills.Hard), ", "),
	}
	if data.Name == "" {
		data.Name = "Resume"
	}

	var contact []string
	for _, key := range []string{"email", "phone", "location"} {
		if v := strings.TrimSpace(resume.PIIString(key)); v != "" {
			contact = append(contact, EscapeLaTeX(v))
		}
	}
	data.Contact = strings.Join(contact, ` $\cdot$ `)

	for _, exp := range resume.Experience {
		bullets := make([]string, 0, len(exp.Bullets))
		for _, b := range exp.Bullets {
			if text := strings.TrimSpace(b.Text); text != "" {
				bullets = append(bullets, EscapeLaTeX(text))
			}
		}
		data.Experience = append(data.Experience, ExperienceSection{
			Title:   EscapeLaTeX(exp.Title),
			Company: EscapeLaTeX(exp.Company),
			Dates:   formatDates(exp.StartDate, exp.EndDate, exp.Current),
			Bullets: bullets,
		})
	}
	for _, edu := range resume.Education {
		data.Education = append(data.Education, EducationSection{
			School: EscapeLaTeX(edu.School),
			Degree: EscapeLaTeX(edu.Degree),
			Dates:  formatDates(edu.StartDate, edu.EndDate, false),
		})
	}

	if len(data.Experience) == 0 {
		data.Body = escapeAll(strings.Split(truncateRunes(resume.RawText, BodyMaxRunes), "\n"))
	}
	return data
}

func formatDates(start, end *string, current bool) string {
	s, e := deref(start), deref(end)
	if current || (s != "" && e == "") {
		e = "Present"
	}
	switch {
	case s == "" && e == "":
		return ""
	case s == "":
		return EscapeLaTeX(e)
	default:
		return EscapeLaTeX(s) + " -- " + EscapeLaTeX(e)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
