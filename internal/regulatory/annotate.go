// Package regulatory derives framework annotations for risk entries and
// queries. Everything here is a pure lookup over static tables: annotations
// are computed on demand and never stored.
//
// This tool is not legal advice; the notes point at the relevant duty, they
// do not interpret it.
package regulatory

import "uxguard/internal/knowledge"

// Framework names a regulatory or governance framework.
type Framework string

const (
	FrameworkEUAIAct Framework = "EU AI Act"
	FrameworkGDPR    Framework = "GDPR"
	FrameworkNIST    Framework = "NIST AI RMF"
	FrameworkOECD    Framework = "OECD AI"
)

// Annotation links one risk tag to one framework duty.
type Annotation struct {
	Framework Framework
	Tag       string // the risk tag that triggered the annotation
	Ref       string // article, function, or principle within the framework
	Note      string // one line on what the duty means here
}

// tagTable maps risk tags to their framework annotation. Tags without an
// entry are simply not annotated.
var tagTable = map[string]Annotation{
	"bias": {
		Framework: FrameworkEUAIAct,
		Ref:       "Art. 10 data governance",
		Note:      "Training and evaluation data must be relevant, representative, and examined for bias in high-risk uses.",
	},
	"computer-vision": {
		Framework: FrameworkEUAIAct,
		Ref:       "Annex III screening",
		Note:      "Vision systems near identification or monitoring sit close to the high-risk categories; classify early.",
	},
	"transparency": {
		Framework: FrameworkEUAIAct,
		Ref:       "Art. 52 transparency",
		Note:      "Users must be told when they are interacting with or reading output from an AI system.",
	},
	"human-oversight": {
		Framework: FrameworkEUAIAct,
		Ref:       "Art. 14 human oversight",
		Note:      "High-risk systems need effective human oversight designed in, not bolted on.",
	},
	"logging": {
		Framework: FrameworkEUAIAct,
		Ref:       "Art. 12 record-keeping",
		Note:      "High-risk systems must log events automatically so results stay traceable.",
	},
	"manipulation": {
		Framework: FrameworkEUAIAct,
		Ref:       "Art. 5 prohibited practices",
		Note:      "Techniques that materially distort behavior and cause harm are banned outright.",
	},
	"accessibility": {
		Framework: FrameworkEUAIAct,
		Ref:       "Accessibility acts",
		Note:      "Accessibility duties from the European Accessibility Act carry into AI-mediated interfaces.",
	},
	"privacy": {
		Framework: FrameworkGDPR,
		Ref:       "Art. 5 minimization",
		Note:      "Collect only what the stated purpose needs; personal data in prompts counts as processing.",
	},
	"consent": {
		Framework: FrameworkGDPR,
		Ref:       "Art. 7 consent",
		Note:      "Consent must be informed and freely given; AI processing has to be named, not implied.",
	},
	"data-governance": {
		Framework: FrameworkGDPR,
		Ref:       "Art. 5 purpose limitation",
		Note:      "Data gathered for research cannot silently become model training input.",
	},
	"fairness": {
		Framework: FrameworkNIST,
		Ref:       "Measure 2.11",
		Note:      "Fairness is measured with documented metrics and disaggregated results.",
	},
	"accountability": {
		Framework: FrameworkNIST,
		Ref:       "Govern 1",
		Note:      "Risk ownership and sign-off paths are assigned before the system ships.",
	},
	"explainability": {
		Framework: FrameworkNIST,
		Ref:       "Measure 2.9",
		Note:      "Model explanations are documented at a level the output's users can act on.",
	},
	"measurement": {
		Framework: FrameworkNIST,
		Ref:       "Measure 1",
		Note:      "Metrics are selected deliberately and their limitations documented.",
	},
	"inclusion": {
		Framework: FrameworkOECD,
		Ref:       "Inclusive growth",
		Note:      "AI should benefit people broadly; design reviews ask who is left out.",
	},
	"autonomy": {
		Framework: FrameworkOECD,
		Ref:       "Human-centred values",
		Note:      "Systems must respect autonomy and avoid steering users toward ends they would not choose.",
	},
}

// Annotate returns one annotation per entry tag that has a table entry, in
// the entry's tag order. Unknown tags are skipped without error. Pure: same
// entry, same sequence.
func Annotate(entry knowledge.RiskEntry) []Annotation {
	var out []Annotation
	for _, tag := range entry.Tags {
		a, ok := tagTable[tag]
		if !ok {
			continue
		}
		a.Tag = tag
		out = append(out, a)
	}
	return out
}

// KnownTags returns the tags the table covers. Useful for curation checks.
func KnownTags() []string {
	out := make([]string, 0, len(tagTable))
	for tag := range tagTable {
		out = append(out, tag)
	}
	return out
}
