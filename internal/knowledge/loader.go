package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// maxEntryReferences caps how many citations one risk entry carries. Extra
// IDs are dropped at load, first five win.
const maxEntryReferences = 5

// LoadError reports a knowledge document that could not be read, parsed, or
// validated. Loading stops at the first bad document: the store is either
// complete or absent, never partial.
type LoadError struct {
	Doc  string // "risks" or "references"
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("knowledge: %s document: %v", e.Doc, e.Err)
	}
	return fmt.Sprintf("knowledge: %s document %s: %v", e.Doc, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// riskDocument and referenceDocument mirror the YAML file layout.
type riskDocument struct {
	Risks []RiskEntry `yaml:"risks"`
}

type referenceDocument struct {
	References []ReferenceEntry `yaml:"references"`
}

// Store is the in-memory knowledge base. Built once by Load or Embedded,
// read-only afterwards.
type Store struct {
	risks    map[string]RiskEntry
	refs     map[string]ReferenceEntry
	order    []string // risk IDs in document order
	refOrder []string
	embedded bool
}

// Locate resolves the risk and reference document paths under base. A file
// directly under base wins over the same name under base/data, matching how
// the documents were laid out historically.
func Locate(base string) (risksPath, refsPath string) {
	resolve := func(name string) string {
		root := filepath.Join(base, name)
		if _, err := os.Stat(root); err == nil {
			return root
		}
		return filepath.Join(base, "data", name)
	}
	return resolve("risks.yaml"), resolve("references.yaml")
}

// Load reads the two knowledge documents and builds the store. Both
// documents parse in parallel. When neither file exists the embedded base is
// returned; a path that exists but does not parse or validate is a
// *LoadError, never a silent fallback.
func Load(risksPath, refsPath string) (*Store, error) {
	risksExist := fileExists(risksPath)
	refsExist := fileExists(refsPath)

	if !risksExist && !refsExist {
		return Embedded(), nil
	}
	if !risksExist {
		return nil, &LoadError{Doc: "risks", Path: risksPath, Err: os.ErrNotExist}
	}
	if !refsExist {
		return nil, &LoadError{Doc: "references", Path: refsPath, Err: os.ErrNotExist}
	}

	var rdoc riskDocument
	var refdoc referenceDocument

	var g errgroup.Group
	g.Go(func() error {
		return readDocument(risksPath, "risks", &rdoc)
	})
	g.Go(func() error {
		return readDocument(refsPath, "references", &refdoc)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return build(rdoc.Risks, refdoc.References, false)
}

// readDocument reads and parses one YAML document into out.
func readDocument(path, doc string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Doc: doc, Path: path, Err: err}
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return &LoadError{Doc: doc, Path: path, Err: err}
	}
	return nil
}

// build validates entries and assembles the store. References are checked
// first so risk entries can be validated against them.
func build(risks []RiskEntry, refs []ReferenceEntry, embedded bool) (*Store, error) {
	s := &Store{
		risks:    make(map[string]RiskEntry, len(risks)),
		refs:     make(map[string]ReferenceEntry, len(refs)),
		order:    make([]string, 0, len(risks)),
		refOrder: make([]string, 0, len(refs)),
		embedded: embedded,
	}

	for i, ref := range refs {
		if ref.ID == "" {
			return nil, &LoadError{Doc: "references", Err: fmt.Errorf("entry %d: missing id", i)}
		}
		if ref.Title == "" {
			return nil, &LoadError{Doc: "references", Err: fmt.Errorf("entry %q: missing title", ref.ID)}
		}
		if _, dup := s.refs[ref.ID]; dup {
			return nil, &LoadError{Doc: "references", Err: fmt.Errorf("duplicate id %q", ref.ID)}
		}
		s.refs[ref.ID] = ref
		s.refOrder = append(s.refOrder, ref.ID)
	}

	if len(risks) == 0 {
		return nil, &LoadError{Doc: "risks", Err: fmt.Errorf("no risk entries")}
	}

	for i, r := range risks {
		if r.ID == "" {
			return nil, &LoadError{Doc: "risks", Err: fmt.Errorf("entry %d: missing id", i)}
		}
		if r.Title == "" {
			return nil, &LoadError{Doc: "risks", Err: fmt.Errorf("entry %q: missing title", r.ID)}
		}
		if r.Priority == "" {
			return nil, &LoadError{Doc: "risks", Err: fmt.Errorf("entry %q: missing priority", r.ID)}
		}
		if r.Phase == "" {
			return nil, &LoadError{Doc: "risks", Err: fmt.Errorf("entry %q: missing phase", r.ID)}
		}
		if _, dup := s.risks[r.ID]; dup {
			return nil, &LoadError{Doc: "risks", Err: fmt.Errorf("duplicate id %q", r.ID)}
		}
		if len(r.References) > maxEntryReferences {
			r.References = r.References[:maxEntryReferences]
		}
		for _, rid := range r.References {
			if _, ok := s.refs[rid]; !ok {
				return nil, &LoadError{Doc: "risks", Err: fmt.Errorf("entry %q: unknown reference %q", r.ID, rid)}
			}
		}
		s.risks[r.ID] = r
		s.order = append(s.order, r.ID)
	}

	return s, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsEmbedded reports whether the store came from the compiled-in base rather
// than documents on disk.
func (s *Store) IsEmbedded() bool { return s.embedded }

// Len returns the number of risk entries.
func (s *Store) Len() int { return len(s.order) }

// NumReferences returns the number of reference entries.
func (s *Store) NumReferences() int { return len(s.refOrder) }

// Risk returns the entry with the given ID.
func (s *Store) Risk(id string) (RiskEntry, bool) {
	r, ok := s.risks[id]
	return r, ok
}

// Risks returns all risk entries in document order.
func (s *Store) Risks() []RiskEntry {
	out := make([]RiskEntry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.risks[id])
	}
	return out
}

// RisksByPhase returns the entries for one cycle phase in document order.
func (s *Store) RisksByPhase(p Phase) []RiskEntry {
	var out []RiskEntry
	for _, id := range s.order {
		if r := s.risks[id]; r.Phase == p {
			out = append(out, r)
		}
	}
	return out
}

// Reference returns the reference with the given ID.
func (s *Store) Reference(id string) (ReferenceEntry, bool) {
	r, ok := s.refs[id]
	return r, ok
}

// References returns all reference entries in document order.
func (s *Store) References() []ReferenceEntry {
	out := make([]ReferenceEntry, 0, len(s.refOrder))
	for _, id := range s.refOrder {
		out = append(out, s.refs[id])
	}
	return out
}

// Resolve returns the reference entries an entry cites, in the order the
// entry declares them. IDs were validated at load, so misses only happen on
// hand-built entries and are skipped.
func (s *Store) Resolve(r RiskEntry) []ReferenceEntry {
	ids := r.References
	if len(ids) > maxEntryReferences {
		ids = ids[:maxEntryReferences]
	}
	out := make([]ReferenceEntry, 0, len(ids))
	for _, id := range ids {
		if ref, ok := s.refs[id]; ok {
			out = append(out, ref)
		}
	}
	return out
}

// LookupByTopic returns the entries whose title, description, or tags
// overlap the query, best first. Ties keep document order. An empty result
// means no entry mentioned any query term.
func (s *Store) LookupByTopic(query string) []RiskEntry {
	type scored struct {
		idx   int
		score int
	}
	var hits []scored
	for i, id := range s.order {
		r := s.risks[id]
		blob := strings.ToLower(r.Title + " " + r.Description + " " + strings.Join(r.Tags, " "))
		if n := overlap(query, blob); n > 0 {
			hits = append(hits, scored{idx: i, score: n})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	out := make([]RiskEntry, 0, len(hits))
	for _, h := range hits {
		out = append(out, s.risks[s.order[h.idx]])
	}
	return out
}

// overlap counts how many query terms occur in text. Terms come from
// lowercasing the query and splitting on spaces, with hyphens treated as
// spaces so "computer-vision" matches both halves.
func overlap(query, text string) int {
	query = strings.ToLower(strings.ReplaceAll(query, "-", " "))
	n := 0
	for _, t := range strings.Fields(query) {
		if strings.Contains(text, t) {
			n++
		}
	}
	return n
}
