package compose

import (
	"fmt"
	"strings"

	"uxguard/internal/retrieval"
)

// Curated lists cap at five items each, matching what the UI shows.
const maxListItems = 5

// systemPrompt pins the model to its one job: rephrasing. Facts, priorities,
// and citation numbers come from the curated entries and must survive
// verbatim.
const systemPrompt = `You are the phrasing layer of a UX risk review tool.
Rewrite the curated risk entries you are given into one concise briefing.
Rules:
- Use ONLY the provided entries. Add no risks, facts, numbers, mitigations, or references of your own.
- Keep every priority label and citation number exactly as given.
- Keep the briefing under 400 words, plain markdown, one section per risk.
- Regulatory notes stay advisory; this is not legal advice.`

// BuildPrompt serializes a retrieval result into the user prompt. The model
// sees exactly the markdown the fallback path would render.
func BuildPrompt(res *retrieval.QueryResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Query: %s\n\n", res.Query)
	b.WriteString("Curated entries:\n\n")
	b.WriteString(CuratedMarkdown(res))
	b.WriteString("\nCompose the briefing now.")
	return b.String()
}

// CuratedMarkdown renders the result straight from the store: the fallback
// answer when composition fails, and the context the model rephrases when it
// succeeds. Citation numbers run on across entries so the briefing reads as
// one document.
func CuratedMarkdown(res *retrieval.QueryResult) string {
	var b strings.Builder
	citation := 0
	for i, m := range res.Matches {
		r := m.Risk
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", r.Title)
		fmt.Fprintf(&b, "**Priority:** %s | **Phase:** %s\n\n", r.Priority, r.Phase.Display())
		if r.Justification != "" {
			b.WriteString(r.Justification)
			b.WriteString("\n\n")
		}
		writeList(&b, "Mitigations (HCL)", r.Mitigations)
		writeList(&b, "Evidence Summary", r.Evidence)
		if len(m.References) > 0 {
			b.WriteString("**References:**\n\n")
			for _, ref := range m.References {
				citation++
				fmt.Fprintf(&b, "- [%d] %s %s\n", citation, ref.Citation(), ref.Link())
			}
			b.WriteString("\n")
		}
		if len(m.Annotations) > 0 {
			b.WriteString("**Frameworks:**\n\n")
			for _, a := range m.Annotations {
				fmt.Fprintf(&b, "- %s, %s: %s\n", a.Framework, a.Ref, a.Note)
			}
			b.WriteString("\n")
		}
		if r.AIActNote != "" {
			fmt.Fprintf(&b, "*EU AI Act note: %s*\n", r.AIActNote)
		}
	}
	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	if len(items) > maxListItems {
		items = items[:maxListItems]
	}
	fmt.Fprintf(b, "**%s:**\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
