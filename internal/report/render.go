package report

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/jonathan/resume-aligner/internal/types"
)

// Title heads every rendered report
const Title = "Alignment Report"

// Document is a report plus the alignment detail shown alongside it
type Document struct {
	Report      types.Report
	Alignment   *types.Alignment
	GeneratedAt time.Time
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// markdownEscaper backslash-escapes characters that would change the
// structure of a table cell or list item. Line breaks become spaces so a
// value stays on its row.
var markdownEscaper = strings.NewReplacer(
	"\r\n", " ", "\n", " ", "\r", " ",
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"<", `\<`, ">", `\>`, "#", `\#`, "|", `\|`,
)

func esc(s string) string {
	return markdownEscaper.Replace(s)
}

// RenderMarkdown renders the document as GitHub-flavoured Markdown
func RenderMarkdown(doc Document) string {
	var sb strings.Builder
	r := doc.Report

	fmt.Fprintf(&sb, "# %s\n\n", Title)
	fmt.Fprintf(&sb, "Generated: %s\n\n", doc.GeneratedAt.UTC().Format(time.RFC3339))

	sb.WriteString("## Coverage\n\n| Set | Coverage |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Required | %.2f |\n| Preferred | %.2f |\n\n", r.Coverage.Required, r.Coverage.Preferred)

	if doc.Alignment != nil {
		writeItems(&sb, "Skills", doc.Alignment.Skills)
		writeItems(&sb, "Tools", doc.Alignment.Tools)
		if len(doc.Alignment.Responsibilities) > 0 {
			sb.WriteString("## Responsibilities\n\n| Responsibility | Coverage |\n|---|---|\n")
			for _, rc := range doc.Alignment.Responsibilities {
				fmt.Fprintf(&sb, "| %s | %.2f |\n", esc(rc.JDItem), rc.Coverage)
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("## Gaps\n\n")
	if len(r.Gaps) == 0 {
		sb.WriteString("No gaps.\n\n")
	} else {
		for _, g := range r.Gaps {
			fmt.Fprintf(&sb, "- %s\n", esc(g))
		}
		sb.WriteString("\n")
	}

	if len(r.ATSChecklist) > 0 {
		sb.WriteString("## ATS Checklist\n\n")
		for _, c := range r.ATSChecklist {
			mark := "FAIL"
			if c.Pass {
				mark = "PASS"
			}
			fmt.Fprintf(&sb, "- **%s** %s\n", mark, esc(c.Rule))
		}
		sb.WriteString("\n")
	}

	if len(r.Changelog) > 0 {
		sb.WriteString("## Suggested Edits\n\n")
		for _, entry := range r.Changelog {
			id, _ := entry["source_id"].(string)
			text, _ := entry["new_text"].(string)
			fmt.Fprintf(&sb, "- `%v` %s: %s\n", entry["type"], esc(id), esc(text))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeItems(sb *strings.Builder, heading string, items []types.AlignmentItem) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n| Term | Strength | Confidence |\n|---|---|---|\n", heading)
	for _, it := range items {
		fmt.Fprintf(sb, "| %s | %s | %.2f |\n", esc(it.Term), it.Strength, it.Confidence)
	}
	sb.WriteString("\n")
}

// RenderHTML converts the Markdown rendering into a standalone HTML page.
// Raw HTML in terms is never passed through.
func RenderHTML(doc Document) (string, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(RenderMarkdown(doc)), &body); err != nil {
		return "", fmt.Errorf("failed to render report HTML: %w", err)
	}

	var page strings.Builder
	page.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	fmt.Fprintf(&page, "<title>%s</title>", html.EscapeString(Title))
	page.WriteString("</head><body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body></html>\n")
	return page.String(), nil
}
