package rendering

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-aligner/internal/ingestion"
	"github.com/jonathan/resume-aligner/internal/types"
)

func strPtr(s string) *string { return &s }

func sampleResume() *types.Resume {
	r := types.NewResume()
	r.PII["name"] = "Ada Lovelace"
	r.PII["email"] = "ada@example.com"
	r.Summary = "Data engineer & analyst"
	r.RawText = "Built ETL pipelines in Python.\nOwned 100% of on-call."
	return r
}

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"R&D", `R\&D`},
		{"100%", `100\%`},
		{"C#", `C\#`},
		{"a_b", `a\_b`},
		{`x\y`, `x\textbackslash{}y`},
		{"{}", `\{\}`},
		{"~^$", `\textasciitilde{}\textasciicircum{}\$`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.in))
		})
	}
}

func TestBuildTemplateData(t *testing.T) {
	r := sampleResume()
	r.Skills.Hard = []string{"Python", " ", "C#"}
	data := BuildTemplateData(r)

	assert.Equal(t, "Ada Lovelace", data.Name)
	assert.Equal(t, "ada@example.com", data.Contact)
	assert.Equal(t, `Data engineer \& analyst`, data.Summary)
	assert.Equal(t, `Python, C\#`, data.Skills)
	assert.Equal(t, []string{"Built ETL pipelines in Python.", `Owned 100\% of on-call.`}, data.Body)
	assert.Empty(t, data.Experience)
}

func TestBuildTemplateData_Experience(t *testing.T) {
	r := types.NewResume()
	r.RawText = "ignored"
	r.Experience = []types.ExperienceItem{{
		Title:     "Engineer",
		Company:   "Acme_Co",
		StartDate: strPtr("2020-01"),
		Current:   true,
		Bullets:   []types.Bullet{{ID: "b1", Text: "Shipped"}, {ID: "b2", Text: "  "}},
	}}
	r.Education = []types.EducationItem{{School: "MIT", StartDate: strPtr("2014-09"), EndDate: strPtr("2018-06")}}

	data := BuildTemplateData(r)
	assert.Equal(t, "Resume", data.Name)
	require.Len(t, data.Experience, 1)
	assert.Equal(t, `Acme\_Co`, data.Experience[0].Company)
	assert.Equal(t, "2020-01 -- Present", data.Experience[0].Dates)
	assert.Equal(t, []string{"Shipped"}, data.Experience[0].Bullets)
	assert.Equal(t, "2014-09 -- 2018-06", data.Education[0].Dates)
	assert.Nil(t, data.Body)
}

func TestRenderLaTeX(t *testing.T) {
	out, err := RenderLaTeX(sampleResume())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `\documentclass`))
	assert.Contains(t, out, `{\LARGE\bfseries Ada Lovelace}`)
	assert.Contains(t, out, `\sectiontitle{Summary}`)
	assert.Contains(t, out, `Owned 100\% of on-call.`)
	assert.Contains(t, out, `\end{document}`)
	assert.NotContains(t, out, "<no value>")
}

func TestRenderLaTeXWithTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.tex")
	require.NoError(t, os.WriteFile(path, []byte(`Name: {{.Name}} / {{escape "50%"}}`), 0644))

	out, err := RenderLaTeXWithTemplate(sampleResume(), path)
	require.NoError(t, err)
	assert.Equal(t, `Name: Ada Lovelace / 50\%`, out)

	_, err = RenderLaTeXWithTemplate(sampleResume(), filepath.Join(dir, "missing.tex"))
	var fmtErr *FormatError
	require.ErrorAs(t, err, &fmtErr)
	assert.Equal(t, "read template", fmtErr.Op)
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	bad := filepath.Join(dir, "bad.tex")
	require.NoError(t, os.WriteFile(bad, []byte(`{{.Name`), 0644))
	_, err = RenderLaTeXWithTemplate(sampleResume(), bad)
	require.ErrorAs(t, err, &fmtErr)
	assert.Equal(t, "parse template", fmtErr.Op)
}

func TestRenderDOCX_RoundTrip(t *testing.T) {
	data, err := RenderDOCX(sampleResume())
	require.NoError(t, err)

	text, err := ingestion.ParseDocument("resume.docx", data)
	require.NoError(t, err)
	assert.Contains(t, text, "Ada Lovelace | ada@example.com")
	assert.Contains(t, text, "Data engineer & analyst")
	assert.Contains(t, text, "Built ETL pipelines in Python.")
}

func TestRenderText(t *testing.T) {
	assert.Equal(t, "", RenderText(nil))

	r := sampleResume()
	out := RenderText(r)
	assert.True(t, strings.HasPrefix(out, "Ada Lovelace | ada@example.com\n\nData engineer & analyst\n\n"))

	r.PII = map[string]any{"email": "only@example.com"}
	assert.True(t, strings.HasPrefix(RenderText(r), "only@example.com\n\n"))

	r.RawText = strings.Repeat("x", TextMaxRunes*2)
	assert.Len(t, []rune(RenderText(r)), TextMaxRunes)
}

func TestRenderText_TidiesRawText(t *testing.T) {
	r := types.NewResume()
	r.Summary = "Summary"
	r.RawText = "Built   ETL\r\n\n\n\n- shipped  dashboards  \r\n"

	assert.Equal(t, "Summary\n\nBuilt ETL\n\n- shipped dashboards", RenderText(r))
}

func TestCompileLaTeX_MissingCompiler(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	assert.False(t, PDFLaTeXAvailable())

	_, err := CompileLaTeX(context.Background(), `\documentclass{article}`)
	var compErr *CompilationError
	require.ErrorAs(t, err, &compErr)
	assert.Contains(t, err.Error(), "pdflatex not found")
}

func TestCompilationError_LogTail(t *testing.T) {
	err := &CompilationError{Message: "failed", LogOutput: "a\nb\nc\n"}
	assert.Equal(t, "b\nc", err.LogTail(2))
	assert.Equal(t, "a\nb\nc", err.LogTail(10))
}

type memStore struct {
	objects map[string][]byte
}

func (m *memStore) Put(_ context.Context, name, _ string, data []byte) (string, error) {
	m.objects[name] = data
	return "/files/" + name, nil
}

func (m *memStore) Get(_ context.Context, name string) ([]byte, error) {
	return m.objects[name], nil
}

func TestExporter_Export(t *testing.T) {
	store := &memStore{objects: map[string][]byte{}}
	e := NewExporter(store, false, nil)
	e.newID = func() string { return "fixed" }

	res, err := e.Export(context.Background(), sampleResume())
	require.NoError(t, err)
	assert.Equal(t, &ExportResult{
		DocxURL: "/files/resume_fixed.docx",
		TexURL:  "/files/resume_fixed.tex",
		TextURL: "/files/resume_fixed.txt",
	}, res)
	assert.Len(t, store.objects, 3)
	assert.Contains(t, string(store.objects["resume_fixed.tex"]), "Ada Lovelace")
}

func TestExporter_Export_CustomTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.tex")
	require.NoError(t, os.WriteFile(path, []byte(`\documentclass{article}% {{.Name}}`), 0644))

	store := &memStore{objects: map[string][]byte{}}
	e := NewExporter(store, false, nil)
	e.newID = func() string { return "tmpl" }
	e.Template = path

	_, err := e.Export(context.Background(), sampleResume())
	require.NoError(t, err)
	assert.Equal(t, `\documentclass{article}% Ada Lovelace`, string(store.objects["resume_tmpl.tex"]))

	e.Template = filepath.Join(t.TempDir(), "missing.tex")
	_, err = e.Export(context.Background(), sampleResume())
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}
