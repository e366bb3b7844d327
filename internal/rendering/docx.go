package rendering

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/resume-aligner/internal/types"
)

const (
	docxOpen  = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" + `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	docxClose = `<w:sectPr><w:pgSz w:w="12240" w:h="15840"/><w:pgMar w:top="1008" w:right="1008" w:bottom="1008" w:left="1008"/></w:sectPr></w:body></w:document>`
)

// RenderDOCX produces a Word document with the contact line, summary and
// the first BodyMaxRunes of raw text as the experience section.
func RenderDOCX(resume *types.Resume) ([]byte, error) {
	if resume == nil {
		resume = types.NewResume()
	}

	tmpl, err := docx.ReadDocxFromFS("templates/blank.docx", templateFS)
	if err != nil {
		return nil, &FormatError{Format: "docx", Op: "open template", Cause: err}
	}
	defer func() { _ = tmpl.Close() }()

	var body strings.Builder
	body.WriteString(docxOpen)

	if header := contactLine(resume); header != "" {
		writeParagraph(&body, header, false)
	}
	if s := strings.TrimSpace(resume.Summary); s != "" {
		writeParagraph(&body, "Summary", true)
		writeParagraph(&body, s, false)
	}
	writeParagraph(&body, "Experience", true)
	for _, line := range strings.Split(truncateRunes(resume.RawText, BodyMaxRunes), "\n") {
		writeParagraph(&body, line, false)
	}
	body.WriteString(docxClose)

	doc := tmpl.Editable()
	doc.SetContent(body.String())

	var out bytes.Buffer
	if err := doc.Write(&out); err != nil {
		return nil, &FormatError{Format: "docx", Op: "write document", Cause: err}
	}
	return out.Bytes(), nil
}

func writeParagraph(sb *strings.Builder, text string, bold bool) {
	sb.WriteString("<w:p><w:r>")
	if bold {
		sb.WriteString(`<w:rPr><w:b/><w:sz w:val="28"/></w:rPr>`)
	}
	sb.WriteString(`<w:t xml:space="preserve">`)
	_ = xml.EscapeText(sb, []byte(text))
	sb.WriteString("</w:t></w:r></w:p>")
}
