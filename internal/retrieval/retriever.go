package retrieval

import (
	"fmt"
	"sort"
	"strings"

	"uxguard/internal/knowledge"
	"uxguard/internal/regulatory"
)

// Result size bounds. Up to maxMatches entries come back; a store with at
// least minMatches hits always fills that floor because every hit above the
// threshold is kept until the cap.
const (
	minMatches = 3
	maxMatches = 5
)

// Field weights for term hits. A term counts once, at the best field it
// appears in.
const (
	weightTag         = 1.0
	weightTitle       = 0.9
	weightDescription = 0.8
	weightBody        = 0.5
)

// NoMatchError means no entry scored above the relevance threshold. Callers
// render a "no result" state, never an empty success.
type NoMatchError struct {
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no knowledge entry matches %q; try rephrasing", e.Query)
}

// Match pairs a selected risk entry with everything the presentation layer
// needs: resolved references and framework annotations.
type Match struct {
	Risk        knowledge.RiskEntry
	Score       float64
	Terms       []string // query terms that hit this entry
	References  []knowledge.ReferenceEntry
	Annotations []regulatory.Annotation
}

// QueryResult is the ordered outcome of one retrieval. Transient: built per
// request, never stored.
type QueryResult struct {
	Query   string
	Phase   knowledge.Phase // set when the query routed to a phase preset
	Matches []Match
}

// Config tunes the retriever.
type Config struct {
	MaxResults int
	MinScore   float64
}

// DefaultConfig returns the standard bounds.
func DefaultConfig() *Config {
	return &Config{
		MaxResults: maxMatches,
		MinScore:   weightBody, // a single body hit is enough to surface
	}
}

// Retriever scores the knowledge base against queries. Stateless beyond its
// configuration; safe for concurrent use.
type Retriever struct {
	store      *knowledge.Store
	maxResults int
	minScore   float64
}

// New creates a retriever over the given store.
func New(store *knowledge.Store, cfg *Config) *Retriever {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	max := cfg.MaxResults
	if max <= 0 || max > maxMatches {
		max = maxMatches
	}
	if max < minMatches {
		max = minMatches
	}
	return &Retriever{
		store:      store,
		maxResults: max,
		minScore:   cfg.MinScore,
	}
}

// Store exposes the underlying knowledge base.
func (r *Retriever) Store() *knowledge.Store { return r.store }

// Retrieve routes a query: phase selectors go to the fixed per-phase sets,
// everything else is scored lexically.
func (r *Retriever) Retrieve(query string) (*QueryResult, error) {
	if phase, ok := phaseSelector(query); ok {
		return r.RetrievePhase(phase)
	}
	return r.retrieveScored(query)
}

// phaseSelector recognizes a query that is really a phase shortcut: either
// the bare phase name or a "phase:<name>" token anywhere in the query.
func phaseSelector(query string) (knowledge.Phase, bool) {
	if p, ok := knowledge.ParsePhase(query); ok {
		return p, true
	}
	for _, f := range strings.Fields(strings.ToLower(query)) {
		if strings.HasPrefix(f, "phase:") {
			if p, ok := knowledge.ParsePhase(f); ok {
				return p, true
			}
		}
	}
	return "", false
}

// RetrievePhase returns the fixed set for one cycle phase, document order,
// no scoring. Idempotent: the same phase always yields the same result.
func (r *Retriever) RetrievePhase(phase knowledge.Phase) (*QueryResult, error) {
	entries := r.store.RisksByPhase(phase)
	if len(entries) > r.maxResults {
		entries = entries[:r.maxResults]
	}
	if len(entries) == 0 {
		return nil, &NoMatchError{Query: "phase:" + string(phase)}
	}

	res := &QueryResult{
		Query:   "phase:" + string(phase),
		Phase:   phase,
		Matches: make([]Match, 0, len(entries)),
	}
	for _, e := range entries {
		res.Matches = append(res.Matches, r.newMatch(e, 0, nil))
	}
	return res, nil
}

// retrieveScored scores every entry and keeps the best. All hits above the
// threshold survive up to the cap, so three or more matching entries always
// produce at least three results.
func (r *Retriever) retrieveScored(query string) (*QueryResult, error) {
	terms := ExtractTerms(query)
	if len(terms) == 0 {
		return nil, &NoMatchError{Query: query}
	}

	type scored struct {
		entry knowledge.RiskEntry
		score float64
		terms []string
	}
	var hits []scored
	for _, e := range r.store.Risks() {
		score, hit := scoreEntry(e, terms)
		if score >= r.minScore {
			hits = append(hits, scored{entry: e, score: score, terms: hit})
		}
	}
	if len(hits) == 0 {
		return nil, &NoMatchError{Query: query}
	}

	// Best first; stable sort keeps document order on ties.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if len(hits) > r.maxResults {
		hits = hits[:r.maxResults]
	}

	res := &QueryResult{
		Query:   query,
		Matches: make([]Match, 0, len(hits)),
	}
	for _, h := range hits {
		res.Matches = append(res.Matches, r.newMatch(h.entry, h.score, h.terms))
	}
	return res, nil
}

// newMatch attaches references (declared order, capped at load) and
// framework annotations to a selected entry.
func (r *Retriever) newMatch(e knowledge.RiskEntry, score float64, terms []string) Match {
	return Match{
		Risk:        e,
		Score:       score,
		Terms:       terms,
		References:  r.store.Resolve(e),
		Annotations: regulatory.Annotate(e),
	}
}

// scoreEntry computes the weighted overlap between query terms and one
// entry. Each term scores once at the best field it appears in; entries
// matching several distinct terms get a boost.
func scoreEntry(e knowledge.RiskEntry, terms []string) (float64, []string) {
	tags := strings.ToLower(strings.Join(e.Tags, " "))
	title := strings.ToLower(e.Title)
	desc := strings.ToLower(e.Description)
	body := strings.ToLower(e.Justification + " " +
		strings.Join(e.Evidence, " ") + " " +
		strings.Join(e.Mitigations, " "))

	var score float64
	var hit []string
	for _, t := range terms {
		var w float64
		switch {
		case strings.Contains(tags, t):
			w = weightTag
		case strings.Contains(title, t):
			w = weightTitle
		case strings.Contains(desc, t):
			w = weightDescription
		case strings.Contains(body, t):
			w = weightBody
		}
		if w > 0 {
			score += w
			hit = append(hit, t)
		}
	}

	// Boost for multiple distinct term hits.
	if len(hit) > 1 {
		score *= 1.0 + float64(len(hit)-1)*0.2
	}
	return score, hit
}
