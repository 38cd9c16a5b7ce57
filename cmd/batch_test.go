package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSplitPayloadName(t *testing.T) {
	tests := []struct {
		name, id, kind string
		ok             bool
	}{
		{"NA1_123.match.json", "NA1_123", "match", true},
		{"NA1_123.timeline.json.zst", "NA1_123", "timeline", true},
		{"EUW1_9.match.json.gz", "EUW1_9", "match", true},
		{"NA1_123.json", "", "", false},
		{".match.json", "", "", false},
		{"notes.txt", "", "", false},
	}
	for _, tc := range tests {
		id, kind, ok := splitPayloadName(tc.name)
		if id != tc.id || kind != tc.kind || ok != tc.ok {
			t.Errorf("splitPayloadName(%q) = %q, %q, %v; want %q, %q, %v",
				tc.name, id, kind, ok, tc.id, tc.kind, tc.ok)
		}
	}
}

func TestPairPayloads(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"NA1_2.match.json.zst", "NA1_2.timeline.json.zst",
		"NA1_1.match.json", "NA1_1.timeline.json.gz",
		"NA1_3.match.json",
		"README.md",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	pairs, incomplete, err := pairPayloads(dir)
	if err != nil {
		t.Fatalf("pairPayloads: %v", err)
	}
	if len(pairs) != 2 || pairs[0].MatchID != "NA1_1" || pairs[1].MatchID != "NA1_2" {
		t.Fatalf("pairs = %+v", pairs)
	}
	if filepath.Base(pairs[0].TimelinePath) != "NA1_1.timeline.json.gz" {
		t.Errorf("timeline path = %s", pairs[0].TimelinePath)
	}
	if len(incomplete) != 1 || incomplete[0] != "NA1_3" {
		t.Errorf("incomplete = %v, want [NA1_3]", incomplete)
	}
}
