package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"uxguard/internal/compose"
	"uxguard/internal/knowledge"
	"uxguard/internal/regulatory"
)

// Severity palette, same colors as the web UI badges.
var (
	badgeLow      = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#1b5e20")).Background(lipgloss.Color("#e8f5e9"))
	badgeModerate = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#e65100")).Background(lipgloss.Color("#fff8e1"))
	badgeHigh     = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#b71c1c")).Background(lipgloss.Color("#ffebee"))
	badgeVeryHigh = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#bf360c")).Background(lipgloss.Color("#fbe9e7"))

	headerStyle = lipgloss.NewStyle().Bold(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	metaStyle   = lipgloss.NewStyle().Faint(true)
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e65100"))
)

// priorityBadge renders the colored severity chip.
func priorityBadge(p knowledge.Priority) string {
	switch p {
	case knowledge.PriorityLow:
		return badgeLow.Render(string(p))
	case knowledge.PriorityModerate:
		return badgeModerate.Render(string(p))
	case knowledge.PriorityHigh:
		return badgeHigh.Render(string(p))
	case knowledge.PriorityVeryHigh:
		return badgeVeryHigh.Render(string(p))
	}
	return string(p)
}

// renderMarkdown runs glamour when a terminal style is available and falls
// back to the raw text otherwise.
func renderMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// renderAnswer prints the match summary with severity chips, the briefing
// body, and the disclaimer. Callers print their own header lines first.
func renderAnswer(w io.Writer, ans *compose.FormattedAnswer, frameworks bool) {
	for _, m := range ans.Result.Matches {
		fmt.Fprintf(w, "%s %s %s\n",
			priorityBadge(m.Risk.Priority),
			titleStyle.Render(m.Risk.Title),
			metaStyle.Render("("+m.Risk.Phase.Display()+")"))
	}
	fmt.Fprintln(w)

	if ans.Composed {
		fmt.Fprintln(w, metaStyle.Render("Briefing (model-phrased; facts from the curated base):"))
	}
	fmt.Fprint(w, renderMarkdown(ans.Markdown))

	if frameworks {
		fmt.Fprintln(w, metaStyle.Render(regulatory.FrameworksNote()))
	}
	fmt.Fprintln(w, metaStyle.Render(regulatory.Disclaimer))
}
