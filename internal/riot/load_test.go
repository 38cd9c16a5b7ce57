package riot

import (
	"path/filepath"
	"testing"
)

func TestSaveAndLoad_Compressed(t *testing.T) {
	dir := t.TempDir()
	tl := &TimelineResponse{
		Metadata: TimelineMetadata{MatchID: "NA1_9"},
		Info: TimelineInfo{
			FrameInterval: 60000,
			Frames: []TimelineFrame{{
				Timestamp: 0,
				ParticipantFrames: map[string]ParticipantFrame{
					"1": {ParticipantID: 1, MinionsKilled: 3},
				},
				Events: []TimelineEvent{{Type: EventWardPlaced, Timestamp: 500, CreatorID: 1, WardType: "CONTROL_WARD"}},
			}},
		},
	}

	for _, name := range []string{"tl.json", "tl.json.zst"} {
		path := filepath.Join(dir, name)
		if err := SaveJSON(path, tl); err != nil {
			t.Fatalf("SaveJSON(%s): %v", name, err)
		}
		got, err := LoadTimeline(path)
		if err != nil {
			t.Fatalf("LoadTimeline(%s): %v", name, err)
		}
		if got.Metadata.MatchID != "NA1_9" {
			t.Errorf("%s: match id = %q", name, got.Metadata.MatchID)
		}
		pf := got.Info.Frames[0].ParticipantFrames["1"]
		if pf.MinionsKilled != 3 {
			t.Errorf("%s: minions = %d, want 3", name, pf.MinionsKilled)
		}
		if got.Info.Frames[0].Events[0].WardType != "CONTROL_WARD" {
			t.Errorf("%s: ward type lost", name)
		}
	}
}

func TestLoadMatch_MissingFile(t *testing.T) {
	if _, err := LoadMatch(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
