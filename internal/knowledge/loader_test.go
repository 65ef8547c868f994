package knowledge

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testReferencesYAML = `references:
  - id: doe2024
    authors: "Doe, J."
    year: 2024
    title: "A Study of Examples"
    venue: "Journal of Examples"
    doi: "10.1000/example"
  - id: roe2023
    authors: "Roe, R."
    year: 2023
    title: "Another Study"
    venue: "Elsewhere"
    url: "https://example.com/roe"
`

const testRisksYAML = `risks:
  - id: risk_one
    phase: Understand
    title: "Checkout form confuses screen readers"
    description: "Generated form layouts break accessibility assumptions"
    severity: High
    justification: "Users on assistive tech are blocked from paying."
    evidence:
      - "Screen reader order diverges from visual order."
    tags: [accessibility, bias]
    mitigations:
      - "Audit generated layouts with assistive tech."
    references: [doe2024]
  - id: risk_two
    phase: create
    title: "Generated copy overpromises"
    severity: Moderate
    justification: "Marketing copy drifts from actual capability."
    tags: [transparency]
    references: [doe2024, roe2023]
`

func writeKB(t *testing.T, risks, refs string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	risksPath := filepath.Join(dir, "risks.yaml")
	refsPath := filepath.Join(dir, "references.yaml")
	if risks != "" {
		if err := os.WriteFile(risksPath, []byte(risks), 0644); err != nil {
			t.Fatalf("write risks: %v", err)
		}
	}
	if refs != "" {
		if err := os.WriteFile(refsPath, []byte(refs), 0644); err != nil {
			t.Fatalf("write refs: %v", err)
		}
	}
	return risksPath, refsPath
}

func TestLoadFromFiles(t *testing.T) {
	risksPath, refsPath := writeKB(t, testRisksYAML, testReferencesYAML)

	store, err := Load(risksPath, refsPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if store.IsEmbedded() {
		t.Error("store loaded from files should not report embedded")
	}
	if store.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", store.Len())
	}
	if store.NumReferences() != 2 {
		t.Fatalf("NumReferences() = %d, want 2", store.NumReferences())
	}

	r, ok := store.Risk("risk_one")
	if !ok {
		t.Fatal("risk_one not found")
	}
	want := RiskEntry{
		ID:            "risk_one",
		Phase:         PhaseUnderstand,
		Title:         "Checkout form confuses screen readers",
		Description:   "Generated form layouts break accessibility assumptions",
		Priority:      PriorityHigh,
		Justification: "Users on assistive tech are blocked from paying.",
		Evidence:      []string{"Screen reader order diverges from visual order."},
		Tags:          []string{"accessibility", "bias"},
		Mitigations:   []string{"Audit generated layouts with assistive tech."},
		References:    []string{"doe2024"},
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("risk_one mismatch (-want +got):\n%s", diff)
	}

	// Document order survives the map-backed store.
	ids := make([]string, 0, 2)
	for _, risk := range store.Risks() {
		ids = append(ids, risk.ID)
	}
	if !reflect.DeepEqual(ids, []string{"risk_one", "risk_two"}) {
		t.Errorf("document order = %v", ids)
	}
}

func TestLoadEmbeddedWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	store, err := Load(filepath.Join(dir, "risks.yaml"), filepath.Join(dir, "references.yaml"))
	if err != nil {
		t.Fatalf("Load() with no files: %v", err)
	}
	if !store.IsEmbedded() {
		t.Error("expected embedded store when neither document exists")
	}
	if store.Len() == 0 {
		t.Error("embedded store is empty")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		risks   string
		refs    string
		wantDoc string
		wantMsg string
	}{
		{
			name:    "risks file missing",
			risks:   "",
			refs:    testReferencesYAML,
			wantDoc: "risks",
		},
		{
			name:    "references file missing",
			risks:   testRisksYAML,
			refs:    "",
			wantDoc: "references",
		},
		{
			name:    "malformed yaml",
			risks:   "risks: [unclosed",
			refs:    testReferencesYAML,
			wantDoc: "risks",
		},
		{
			name: "unknown priority",
			risks: `risks:
  - id: r1
    phase: create
    title: "T"
    severity: Extreme
`,
			refs:    testReferencesYAML,
			wantDoc: "risks",
			wantMsg: "unknown priority",
		},
		{
			name: "unknown phase",
			risks: `risks:
  - id: r1
    phase: deploy
    title: "T"
    severity: Low
`,
			refs:    testReferencesYAML,
			wantDoc: "risks",
			wantMsg: "unknown phase",
		},
		{
			name: "missing title",
			risks: `risks:
  - id: r1
    phase: create
    severity: Low
`,
			refs:    testReferencesYAML,
			wantDoc: "risks",
			wantMsg: "missing title",
		},
		{
			name: "missing priority",
			risks: `risks:
  - id: r1
    phase: create
    title: "T"
`,
			refs:    testReferencesYAML,
			wantDoc: "risks",
			wantMsg: "missing priority",
		},
		{
			name: "dangling reference",
			risks: `risks:
  - id: r1
    phase: create
    title: "T"
    severity: Low
    references: [ghost2020]
`,
			refs:    testReferencesYAML,
			wantDoc: "risks",
			wantMsg: "unknown reference",
		},
		{
			name: "duplicate risk id",
			risks: `risks:
  - id: r1
    phase: create
    title: "T"
    severity: Low
  - id: r1
    phase: create
    title: "T again"
    severity: Low
`,
			refs:    testReferencesYAML,
			wantDoc: "risks",
			wantMsg: "duplicate id",
		},
		{
			name:  "duplicate reference id",
			risks: testRisksYAML,
			refs: `references:
  - id: doe2024
    title: "A"
  - id: doe2024
    title: "B"
`,
			wantDoc: "references",
			wantMsg: "duplicate id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			risksPath, refsPath := writeKB(t, tt.risks, tt.refs)
			_, err := Load(risksPath, refsPath)
			if err == nil {
				t.Fatal("expected error")
			}
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("error %v is not a *LoadError", err)
			}
			if le.Doc != tt.wantDoc {
				t.Errorf("LoadError.Doc = %q, want %q", le.Doc, tt.wantDoc)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestReferenceTruncation(t *testing.T) {
	refs := `references:
  - {id: a, title: "A"}
  - {id: b, title: "B"}
  - {id: c, title: "C"}
  - {id: d, title: "D"}
  - {id: e, title: "E"}
  - {id: f, title: "F"}
`
	risks := `risks:
  - id: r1
    phase: evaluate
    title: "Over-cited risk"
    severity: Low
    references: [a, b, c, d, e, f]
`
	risksPath, refsPath := writeKB(t, risks, refs)
	store, err := Load(risksPath, refsPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	r, _ := store.Risk("r1")
	if len(r.References) != maxEntryReferences {
		t.Errorf("stored reference count = %d, want %d", len(r.References), maxEntryReferences)
	}
	resolved := store.Resolve(r)
	if len(resolved) != maxEntryReferences {
		t.Fatalf("Resolve() count = %d, want %d", len(resolved), maxEntryReferences)
	}
	// First five in declared order.
	for i, want := range []string{"a", "b", "c", "d", "e"} {
		if resolved[i].ID != want {
			t.Errorf("resolved[%d] = %q, want %q", i, resolved[i].ID, want)
		}
	}
}

func TestRisksByPhase(t *testing.T) {
	risksPath, refsPath := writeKB(t, testRisksYAML, testReferencesYAML)
	store, err := Load(risksPath, refsPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	create := store.RisksByPhase(PhaseCreate)
	if len(create) != 1 || create[0].ID != "risk_two" {
		t.Errorf("RisksByPhase(create) = %v", create)
	}
	if got := store.RisksByPhase(PhaseEvaluate); len(got) != 0 {
		t.Errorf("RisksByPhase(evaluate) = %v, want empty", got)
	}
}

func TestLookupByTopic(t *testing.T) {
	risksPath, refsPath := writeKB(t, testRisksYAML, testReferencesYAML)
	store, err := Load(risksPath, refsPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	got := store.LookupByTopic("screen readers accessibility")
	if len(got) == 0 || got[0].ID != "risk_one" {
		t.Errorf("LookupByTopic ranked %v, want risk_one first", got)
	}

	// Hyphens split into separate terms.
	got = store.LookupByTopic("screen-readers")
	if len(got) == 0 || got[0].ID != "risk_one" {
		t.Errorf("hyphenated lookup returned %v", got)
	}

	if got := store.LookupByTopic("quantum blockchain"); len(got) != 0 {
		t.Errorf("unrelated lookup returned %v, want empty", got)
	}
}

func TestLocate(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "data"), 0755); err != nil {
		t.Fatal(err)
	}
	dataRisks := filepath.Join(base, "data", "risks.yaml")
	if err := os.WriteFile(dataRisks, []byte("risks: []"), 0644); err != nil {
		t.Fatal(err)
	}

	risksPath, refsPath := Locate(base)
	if risksPath != dataRisks {
		t.Errorf("risks path = %q, want data/ fallback %q", risksPath, dataRisks)
	}
	if refsPath != filepath.Join(base, "data", "references.yaml") {
		t.Errorf("refs path = %q", refsPath)
	}

	// A file at the base root wins over data/.
	rootRisks := filepath.Join(base, "risks.yaml")
	if err := os.WriteFile(rootRisks, []byte("risks: []"), 0644); err != nil {
		t.Fatal(err)
	}
	risksPath, _ = Locate(base)
	if risksPath != rootRisks {
		t.Errorf("risks path = %q, want root %q", risksPath, rootRisks)
	}
}
