// Package observability provides logging setup and the formatted
// summaries printed in verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-aligner/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, ending in "..." when cut
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", heading)
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintResume outputs a short summary of a parsed resume
func (p *Printer) PrintResume(r *types.Resume) {
	if r == nil {
		return
	}
	var sb strings.Builder
	if name := r.PIIString("name"); name != "" {
		fmt.Fprintf(&sb, "Name:     %s\n", name)
	}
	fmt.Fprintf(&sb, "Summary:  %s\n", r.Summary)
	fmt.Fprintf(&sb, "Words:    %d", len(strings.Fields(r.RawText)))
	p.printBox("PARSED RESUME", sb.String())
}

// PrintJobDescription outputs the extracted term sets of a job description
func (p *Printer) PrintJobDescription(jd *types.JobDescription) {
	if jd == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Company:  %s\n", jd.Company)
	fmt.Fprintf(&sb, "Role:     %s\n\n", jd.Title)
	writeList(&sb, "Required skills", jd.Entities.RequiredSkills, maxItemsToShow)
	writeList(&sb, "Preferred skills", jd.Entities.PreferredSkills, 3)
	writeList(&sb, "Tools", jd.Entities.Tools, 3)
	writeList(&sb, "Keywords", jd.Entities.Keywords, 3)
	p.printBox("PARSED JOB DESCRIPTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAlignment outputs per-term bands, coverage and gaps
func (p *Printer) PrintAlignment(a *types.Alignment, cov types.Coverage) {
	if a == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Coverage: required %.0f%%  preferred %.0f%%\n\n", cov.Required*100, cov.Preferred*100)

	items := append(append([]types.AlignmentItem{}, a.Skills...), a.Tools...)
	if len(items) > 0 {
		sb.WriteString("Terms:\n")
		for _, it := range items[:min(len(items), maxItemsToShow*2)] {
			fmt.Fprintf(&sb, "  %-28s %-8s %.2f\n", truncate(it.Term, 28), it.Strength, it.Confidence)
		}
		if len(items) > maxItemsToShow*2 {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(items)-maxItemsToShow*2)
		}
		sb.WriteString("\n")
	}

	gaps := make([]string, 0, len(a.Gaps))
	for _, g := range a.Gaps {
		gaps = append(gaps, fmt.Sprintf("%s (%s)", g.Term, g.Reason))
	}
	if len(gaps) == 0 {
		sb.WriteString("No gaps")
	}
	writeList(&sb, "Gaps", gaps, maxItemsToShow)
	p.printBox("ALIGNMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintATSChecklist outputs pass or fail per rule
func (p *Printer) PrintATSChecklist(checks []types.ATSCheck) {
	if len(checks) == 0 {
		return
	}
	var sb strings.Builder
	for _, c := range checks {
		mark := "✗"
		if c.Pass {
			mark = "✓"
		}
		fmt.Fprintf(&sb, "%s %s\n", mark, c.Rule)
	}
	p.printBox("ATS CHECKLIST", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEdits outputs proposed bullet rewrites
func (p *Printer) PrintEdits(edits []types.EditItem) {
	if len(edits) == 0 {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Proposed %d edits:\n\n", len(edits))
	for _, e := range edits[:min(len(edits), maxItemsToShow)] {
		text := ""
		if e.NewText != nil {
			text = *e.NewText
		}
		fmt.Fprintf(&sb, "• %s\n", text)
	}
	p.printBox("SUGGESTED EDITS", strings.TrimSuffix(sb.String(), "\n"))
}
