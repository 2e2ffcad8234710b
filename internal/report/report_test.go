package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spigell/resume-ranker/internal/ranking"
	"github.com/spigell/resume-ranker/internal/resume"
)

func testDocs() []resume.Document {
	return []resume.Document{
		{ID: "alice", Source: "in/alice.json"},
		{ID: "bob", Source: "in/bob.json"},
		{ID: "carol", Source: "in/carol.json"},
	}
}

func testCandidates(t *testing.T) *Candidates {
	t.Helper()

	// already sorted by total; Index points at testDocs
	records := []ranking.ScoreRecord{
		{Name: "Bob", SkillScore: 0.9, ExperienceScore: 0.8, EducationScore: 0.4, KeywordScore: 0.2, TotalScore: 0.76, Index: 1},
		{Name: "  ", SkillScore: 0.5, ExperienceScore: 0.9, EducationScore: 0.1, KeywordScore: 0.6, TotalScore: 0.63, Index: 2},
		{Name: "Unknown Candidate 1", TotalScore: 0.1, Index: 0},
	}

	candidates, err := Decorate(records, testDocs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return candidates
}

func TestDecorateMatchesDocumentsByIndex(t *testing.T) {
	candidates := testCandidates(t)

	want := []struct {
		name, id string
	}{
		{"Bob (bob)", "bob"},
		{"Candidate_carol", "carol"},
		{"Unknown Candidate 1 (alice)", "alice"},
	}
	for i, w := range want {
		got := candidates.Items[i]
		if got.Name != w.name || got.DocumentID != w.id {
			t.Fatalf("candidate %d: got %q/%q, want %q/%q", i, got.Name, got.DocumentID, w.name, w.id)
		}
	}

	if _, err := Decorate([]ranking.ScoreRecord{{Index: 5}}, testDocs()); err == nil {
		t.Fatalf("expected error for record without document")
	}
}

func TestSummaryAndDetails(t *testing.T) {
	candidates := testCandidates(t)

	lines := candidates.Summary(2)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", lines)
	}
	if lines[0] != "#1: Bob (bob) (Score: 0.76)" {
		t.Fatalf("unexpected headline %q", lines[0])
	}
	if len(candidates.Summary(0)) != 3 {
		t.Fatalf("expected all candidates without a limit")
	}

	details := candidates.Items[1].Details(2)
	for _, want := range []string{"#2: Candidate_carol (Score: 0.63)", "Skill: 0.50", "Keyword Match: 0.60", "Source: in/carol.json"} {
		if !strings.Contains(details, want) {
			t.Fatalf("expected %q in details:\n%s", want, details)
		}
	}
}

func TestByComponent(t *testing.T) {
	report := testCandidates(t).ByComponent()

	for _, key := range ComponentOrder() {
		if len(report[key]) != 3 {
			t.Fatalf("component %q: expected 3 entries, got %d", key, len(report[key]))
		}
	}

	experience := report[ranking.ComponentExperience]
	if experience[0].Candidate != "Candidate_carol" || experience[0].Score != 0.9 {
		t.Fatalf("expected experience to be sorted by score, got %+v", experience)
	}
	if report[ComponentTotal][0].Candidate != "Bob (bob)" {
		t.Fatalf("unexpected total order %+v", report[ComponentTotal])
	}
}

func TestFilteringHelpersKeepOrder(t *testing.T) {
	candidates := testCandidates(t)
	if removed := candidates.Exclude([]string{"carol", "nobody"}); len(removed) != 1 || removed[0] != "carol" {
		t.Fatalf("unexpected removed ids %v", removed)
	}
	if candidates.Items[0].DocumentID != "bob" || candidates.Items[1].DocumentID != "alice" {
		t.Fatalf("order changed after exclude: %v", candidates.Records())
	}

	candidates = testCandidates(t)
	shortlist := candidates.Copy()
	shortlist.Truncate(1)
	if candidates.Len() != 3 || shortlist.Len() != 1 {
		t.Fatalf("copy must not share the list: %d/%d", candidates.Len(), shortlist.Len())
	}
	if low := candidates.ExcludeBelow(0.5); len(low) != 1 || low[0] != "alice" {
		t.Fatalf("unexpected low scorers %v", low)
	}

	candidates = testCandidates(t)
	if dropped := candidates.Truncate(1); len(dropped) != 2 || candidates.Len() != 1 {
		t.Fatalf("unexpected truncate result %v, left %d", dropped, candidates.Len())
	}
	if dropped := candidates.Truncate(10); dropped != nil {
		t.Fatalf("expected nothing dropped, got %v", dropped)
	}

	if candidates.FindByDocumentID("bob") == nil || candidates.FindByDocumentID("zed") != nil {
		t.Fatalf("unexpected lookup result")
	}
}

func TestExcludeBelowKeepsHighScorerWithSharedID(t *testing.T) {
	docs := []resume.Document{
		{ID: "alice", Source: "first/alice.json"},
		{ID: "alice", Source: "second/alice.json"},
	}
	records := []ranking.ScoreRecord{
		{Name: "Alice A", TotalScore: 0.9, Index: 0},
		{Name: "Alice B", TotalScore: 0.1, Index: 1},
	}

	candidates, err := Decorate(records, docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	low := candidates.ExcludeBelow(0.5)
	if len(low) != 1 || low[0] != "alice" {
		t.Fatalf("unexpected low scorers %v", low)
	}
	if candidates.Len() != 1 || candidates.Items[0].Source != "first/alice.json" {
		t.Fatalf("expected the high scorer to stay, got %+v", candidates.Items)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := testCandidates(t).WriteJSON(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "[\n  {\n    \"Name\": \"Bob (bob)\"") {
		t.Fatalf("expected indented array output, got:\n%s", buf.String())
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded) != 3 || len(decoded[0]) != 6 {
		t.Fatalf("expected 3 flat records with 6 keys, got %v", decoded)
	}
	if decoded[1]["Keyword Match Score"] != 0.6 {
		t.Fatalf("unexpected keyword score %v", decoded[1]["Keyword Match Score"])
	}
}

func TestToFileAndDump(t *testing.T) {
	candidates := testCandidates(t)

	path := filepath.Join(t.TempDir(), DefaultExportFile)
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), 4096), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := candidates.ToFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded []ranking.ScoreRecord
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("previous content must be replaced: %v", err)
	}

	dumped, err := candidates.DumpToTmpFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Remove(dumped)
	if !strings.HasSuffix(dumped, ".json") {
		t.Fatalf("unexpected dump file name %q", dumped)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		score float64
		width int
		want  string
	}{
		{0, 4, "...."},
		{0.5, 4, "##.."},
		{1, 4, "####"},
		{1.5, 2, "##"},
		{0.3, 0, ""},
	}
	for _, tt := range tests {
		if got := Bar(tt.score, tt.width); got != tt.want {
			t.Fatalf("Bar(%v, %d) = %q, want %q", tt.score, tt.width, got, tt.want)
		}
	}
}
