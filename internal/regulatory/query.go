package regulatory

import "strings"

// ActTier is the EU AI Act risk tier a query's subject likely falls under.
type ActTier struct {
	Tag  string
	Note string
}

// Keyword groups for tier classification, checked most severe first.
var (
	prohibitedTerms = []string{"biometric", "surveillance", "social scoring"}
	highRiskTerms   = []string{"recruit", "hiring", "credit", "loan", "education", "health"}
	limitedTerms    = []string{"chatbot", "content generation", "assistive", "ux writing", "summarize", "persona"}
)

// ClassifyQuery maps a free-text query onto an indicative EU AI Act tier.
// The match is deliberately coarse keyword detection; it flags conversations
// to have, it does not classify systems.
func ClassifyQuery(query string) ActTier {
	q := strings.ToLower(query)
	if containsAny(q, prohibitedTerms) {
		return ActTier{
			Tag:  "Prohibited / High-Risk",
			Note: "Biometric identification/surveillance features can fall under high-risk or prohibited categories under the EU AI Act.",
		}
	}
	if containsAny(q, highRiskTerms) {
		return ActTier{
			Tag:  "High-Risk",
			Note: "Impacts access to essential services or fundamental rights; stricter obligations apply (risk mgmt, data quality, human oversight).",
		}
	}
	if containsAny(q, limitedTerms) {
		return ActTier{
			Tag:  "Limited-Risk",
			Note: "Likely transparency obligations (disclose AI use), log events, provide oversight mechanisms.",
		}
	}
	return ActTier{
		Tag:  "Minimal-Risk",
		Note: "General-purpose UX support with low rights impact; follow good practices and basic transparency.",
	}
}

// FrameworksNote is the one-line pointer to the non-AI-Act frameworks, shown
// when the user asks for the wider mapping.
func FrameworksNote() string {
	return "GDPR: assess lawful basis, purpose limitation, data minimization. " +
		"NIST AI RMF: Govern → Map → Measure → Manage; document risks and controls. " +
		"OECD AI: Inclusive growth, human-centered values, transparency, robustness, accountability."
}

// outOfScopeTerms mark queries about regulated domains this tool does not
// cover.
var outOfScopeTerms = []string{"medical", "diagnosis", "trading", "finance advice", "tax"}

// Disclaimer accompanies every regulatory annotation the tool surfaces.
const Disclaimer = "This tool is not legal advice."

// ScopeWarning is shown alongside results for out-of-scope queries.
const ScopeWarning = "This app focuses on UX + AI ethics. Your query seems out of scope."

// OutOfScope reports whether the query strays into domains the knowledge
// base does not cover. Results still render; the caller adds ScopeWarning.
func OutOfScope(query string) bool {
	return containsAny(strings.ToLower(query), outOfScopeTerms)
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
