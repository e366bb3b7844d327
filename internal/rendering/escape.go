package rendering

import "strings"

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"{", `\{`,
	"}", `\}`,
	"$", `\$`,
	"&", `\&`,
	"%", `\%`,
	"#", `\#`,
	"^", `\textasciicircum{}`,
	"_", `\_`,
	"~", `\textasciitilde{}`,
)

// EscapeLaTeX escapes the LaTeX special characters \ { } $ & % # ^ _ ~
func EscapeLaTeX(text string) string {
	return latexEscaper.Replace(text)
}

func escapeAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, EscapeLaTeX(s))
		}
	}
	return out
}
