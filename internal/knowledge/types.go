// Package knowledge loads and serves the curated risk base: risk entries,
// the literature they cite, and the embedded set used when no knowledge
// documents are present on disk. The store is immutable after load, so
// concurrent readers need no locking.
package knowledge

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Phase identifies a stage of the user-centred design cycle.
type Phase string

const (
	PhaseUnderstand Phase = "understand"
	PhaseSpecify    Phase = "specify"
	PhaseCreate     Phase = "create"
	PhaseEvaluate   Phase = "evaluate"
)

// Phases lists the four cycle phases in process order.
var Phases = []Phase{PhaseUnderstand, PhaseSpecify, PhaseCreate, PhaseEvaluate}

// ParsePhase canonicalizes a phase name. Any casing is accepted, as is the
// "phase:" prefix used by query routing.
func ParsePhase(s string) (Phase, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "phase:")
	for _, p := range Phases {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// Display returns the phase name capitalized for UI and report output.
func (p Phase) Display() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// UnmarshalYAML enforces the closed phase set at load time.
func (p *Phase) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, ok := ParsePhase(raw)
	if !ok {
		return fmt.Errorf("unknown phase %q (valid: understand, specify, create, evaluate)", raw)
	}
	*p = parsed
	return nil
}

// Priority grades how urgently a risk needs attention. The scale is closed:
// exactly four levels, anything else fails the load.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityModerate Priority = "Moderate"
	PriorityHigh     Priority = "High"
	PriorityVeryHigh Priority = "Very High"
)

// Priorities lists the four levels from least to most urgent.
var Priorities = []Priority{PriorityLow, PriorityModerate, PriorityHigh, PriorityVeryHigh}

// ParsePriority canonicalizes a priority label. Only the four levels are
// accepted; casing and surrounding space are forgiven.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, true
	case "moderate":
		return PriorityModerate, true
	case "high":
		return PriorityHigh, true
	case "very high":
		return PriorityVeryHigh, true
	}
	return "", false
}

// Rank orders priorities from Low (0) to Very High (3).
func (p Priority) Rank() int {
	for i, level := range Priorities {
		if p == level {
			return i
		}
	}
	return -1
}

// UnmarshalYAML enforces the closed priority scale at load time.
func (p *Priority) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, ok := ParsePriority(raw)
	if !ok {
		return fmt.Errorf("unknown priority %q (valid: Low, Moderate, High, Very High)", raw)
	}
	*p = parsed
	return nil
}

// RiskEntry is one curated risk: what can go wrong when AI enters a UX
// process, why it matters, and what the literature says to do about it.
// The document format keeps the original "severity" key for the priority
// field.
type RiskEntry struct {
	ID            string   `yaml:"id"`
	Phase         Phase    `yaml:"phase"`
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Priority      Priority `yaml:"severity"`
	Justification string   `yaml:"justification"`
	Evidence      []string `yaml:"evidence"`
	Tags          []string `yaml:"tags"`
	Mitigations   []string `yaml:"mitigations"`
	References    []string `yaml:"references"`
	AIActNote     string   `yaml:"ai_act_note"`
}

// ReferenceEntry is one literature citation that risk entries can point at.
type ReferenceEntry struct {
	ID      string `yaml:"id"`
	Authors string `yaml:"authors"`
	Year    int    `yaml:"year"`
	Title   string `yaml:"title"`
	Venue   string `yaml:"venue"`
	DOI     string `yaml:"doi"`
	URL     string `yaml:"url"`
}

// Citation renders the reference as a single line: authors (year), title,
// venue. Ampersands become "and" so the line survives markdown, HTML, and
// PDF encoders untouched.
func (r ReferenceEntry) Citation() string {
	authors := strings.ReplaceAll(r.Authors, "&", "and")
	year := "?"
	if r.Year != 0 {
		year = fmt.Sprintf("%d", r.Year)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s). %s.", authors, year, r.Title)
	if r.Venue != "" {
		fmt.Fprintf(&b, " %s.", r.Venue)
	}
	return b.String()
}

// Link returns the canonical URL for the reference: the DOI resolver when a
// DOI is present, the plain URL otherwise.
func (r ReferenceEntry) Link() string {
	if r.DOI != "" {
		return "https://doi.org/" + r.DOI
	}
	return r.URL
}
