package detector

import (
	"math"
	"testing"

	"github.com/pable/lol-coach/internal/matchtest"
	"github.com/pable/lol-coach/internal/model"
)

// laneMatch returns a 31-frame match where the target (1, TOP) holds
// constant CS and the opponent (6, TOP) leads by oppLead[minute].
func laneMatch(oppLead map[int]int) *model.Match {
	m := matchtest.NewMatch(31)
	matchtest.SetCS(m, 1, func(int) int { return 100 })
	matchtest.SetCS(m, 6, func(minute int) int { return 100 + oppLead[minute] })
	return m
}

func TestDetectCS_PersistentDeficitReportedOnce(t *testing.T) {
	m := laneMatch(map[int]int{10: 16, 15: 18, 20: 20})

	res := DetectCS(m)

	if len(res.Errors) != 1 {
		t.Fatalf("expected exactly 1 cs-missing error, got %d", len(res.Errors))
	}
	e := res.Errors[0]
	if e.Type != model.ErrorCSMissing || e.Severity != model.SeverityMedium {
		t.Errorf("unexpected error %s/%s", e.Type, e.Severity)
	}
	if e.Timestamp != 600 {
		t.Errorf("timestamp = %d, want 600", e.Timestamp)
	}
	if e.Context.CSState == nil || e.Context.CSState.Differential != -16 {
		t.Errorf("csState = %+v, want differential -16", e.Context.CSState)
	}
	if e.Context.GoldLost != 16*21 {
		t.Errorf("goldLost = %d, want %d", e.Context.GoldLost, 16*21)
	}
	if res.Stats.WorstDifferential != -20 {
		t.Errorf("WorstDifferential = %d, want -20", res.Stats.WorstDifferential)
	}
	if res.Stats.OpponentID != 6 || res.Stats.BenchmarkOnly {
		t.Errorf("expected head-to-head against 6, got %+v", res.Stats)
	}
}

func TestDetectCS_WorseningDeficitReportedAgain(t *testing.T) {
	m := laneMatch(map[int]int{10: 16, 15: 26, 20: 40})

	res := DetectCS(m)

	if len(res.Errors) != 3 {
		t.Fatalf("expected 3 errors for -16, -26, -40, got %d", len(res.Errors))
	}
	want := []model.Severity{model.SeverityMedium, model.SeverityMedium, model.SeverityHigh}
	for i, e := range res.Errors {
		if e.Severity != want[i] {
			t.Errorf("error %d severity = %s, want %s", i, e.Severity, want[i])
		}
	}
}

func TestDetectCS_SmallDeficitIgnored(t *testing.T) {
	m := laneMatch(map[int]int{5: 15, 10: 15, 15: 15})

	if res := DetectCS(m); len(res.Errors) != 0 {
		t.Errorf("a deficit of exactly 15 should not be reported, got %d errors", len(res.Errors))
	}
}

func TestDetectCS_JunglerUsesBenchmarks(t *testing.T) {
	m := matchtest.NewMatch(31)
	matchtest.SetTarget(m, 2)
	matchtest.SetCS(m, 2, matchtest.LinearCS(4))

	res := DetectCS(m)

	if !res.Stats.BenchmarkOnly {
		t.Error("jungler should be benchmark-only")
	}
	if len(res.Warnings) != 0 {
		t.Errorf("jungler should not warn about a missing opponent: %+v", res.Warnings)
	}
	// Checkpoint 5 is skipped; 10..30 are all under the floor at 4/min.
	if len(res.Errors) != 5 {
		t.Fatalf("expected 5 benchmark errors, got %d", len(res.Errors))
	}
	first := res.Errors[0]
	if first.Timestamp != 600 || first.Severity != model.SeverityMedium {
		t.Errorf("first error at %d/%s, want 600/medium", first.Timestamp, first.Severity)
	}
	if first.Context.ExpectedCS != 60 {
		t.Errorf("ExpectedCS = %d, want 60", first.Context.ExpectedCS)
	}
}

func TestDetectCS_MissingOpponentWarns(t *testing.T) {
	m := matchtest.NewMatch(31)
	matchtest.SetPosition(m, 6, model.PositionJungle)
	matchtest.SetCS(m, 1, matchtest.LinearCS(8))

	res := DetectCS(m)

	if !res.Stats.BenchmarkOnly {
		t.Error("expected benchmark-only mode without an opponent")
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Code != model.WarnMissingOpponent {
		t.Errorf("expected one missing-opponent warning, got %+v", res.Warnings)
	}
	if len(res.Errors) != 0 {
		t.Errorf("8 CS/min should clear every benchmark, got %d errors", len(res.Errors))
	}
}

func TestDetectCS_IndexHeuristicWhenNoPositions(t *testing.T) {
	m := matchtest.NewMatch(31)
	for id := 1; id <= 10; id++ {
		matchtest.SetPosition(m, id, "")
	}
	matchtest.SetCS(m, 6, func(minute int) int {
		if minute == 10 {
			return 40
		}
		return 0
	})

	res := DetectCS(m)

	if !res.Stats.OpponentHeuristic || res.Stats.OpponentID != 6 {
		t.Errorf("expected heuristic opponent 6, got %+v", res.Stats)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Code != model.WarnOpponentHeuristic {
		t.Errorf("expected opponent-heuristic warning, got %+v", res.Warnings)
	}
	if len(res.Errors) != 1 || res.Errors[0].Severity != model.SeverityHigh {
		t.Errorf("expected one high deficit error, got %+v", res.Errors)
	}
}

func TestDetectCS_SkipsCheckpointsBeyondFrames(t *testing.T) {
	m := matchtest.NewMatch(12)

	res := DetectCS(m)

	if res.Stats.CheckpointsRead != 2 {
		t.Errorf("CheckpointsRead = %d, want 2 (minutes 5 and 10)", res.Stats.CheckpointsRead)
	}
}

func TestDetectCS_AvgCSPerMinUsesLastFrame(t *testing.T) {
	for _, frames := range []int{12, 25, 31, 38} {
		m := matchtest.NewMatch(frames)
		matchtest.SetCS(m, 1, matchtest.LinearCS(7.3))
		last := m.Frames[frames-1].Participants[1]
		last.JungleMinionsKilled = 4
		m.Frames[frames-1].Participants[1] = last

		res := DetectCS(m)

		want := math.Round(float64(last.MinionsKilled+last.JungleMinionsKilled)/float64(frames)*10) / 10
		if res.Stats.AvgCSPerMin != want {
			t.Errorf("frames=%d: AvgCSPerMin = %v, want %v", frames, res.Stats.AvgCSPerMin, want)
		}
		if res.Stats.FinalCS != last.CS() {
			t.Errorf("frames=%d: FinalCS = %d, want %d", frames, res.Stats.FinalCS, last.CS())
		}
	}
}
