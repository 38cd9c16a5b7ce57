package scoring

import (
	"fmt"
	"testing"

	"github.com/pable/lol-coach/internal/model"
)

func tenPlayers() []model.Participant {
	var ps []model.Participant
	for id := 1; id <= 10; id++ {
		team := model.TeamBlue
		if id > 5 {
			team = model.TeamRed
		}
		ps = append(ps, model.Participant{
			ParticipantID:               id,
			PUUID:                       fmt.Sprintf("p%d", id),
			TeamID:                      team,
			Kills:                       id % 4,
			Deaths:                      (id + 1) % 3,
			Assists:                     id % 5,
			Win:                         team == model.TeamBlue,
			GoldEarned:                  8000 + id*300,
			TotalDamageDealtToChampions: 10000 + (id*3700)%9000,
			TotalMinionsKilled:          100 + id*15,
			VisionScore:                 10 + id*2,
		})
	}
	return ps
}

func TestKDAScore(t *testing.T) {
	tests := []struct {
		k, d, a int
		want    float64
	}{
		{10, 0, 5, 100},
		{4, 2, 2, 30},
		{3, 3, 3, 20},
		{0, 5, 0, 0},
		{20, 1, 0, 100},
	}
	for _, tc := range tests {
		if got := KDAScore(tc.k, tc.d, tc.a); got != tc.want {
			t.Errorf("KDAScore(%d/%d/%d) = %v, want %v", tc.k, tc.d, tc.a, got, tc.want)
		}
	}
}

func TestScore_WinBonus(t *testing.T) {
	ps := tenPlayers()
	ps[0].Kills, ps[0].Deaths, ps[0].Assists = 10, 0, 5

	won := Score(ps, 1800)[0]
	ps[0].Win = false
	lost := Score(ps, 1800)[0]

	if won.SubScores.KDA != 100 {
		t.Errorf("kda sub-score = %v, want 100", won.SubScores.KDA)
	}
	if !won.WinBonusApplied || lost.WinBonusApplied {
		t.Errorf("WinBonusApplied won=%v lost=%v", won.WinBonusApplied, lost.WinBonusApplied)
	}
	// Sub-scores are identical, so the ratio is the multiplier up to rounding.
	if diff := won.TotalScore - lost.TotalScore*winMultiplier; diff > 0.2 || diff < -0.2 {
		t.Errorf("won %v vs lost %v: bonus not applied", won.TotalScore, lost.TotalScore)
	}
}

func TestScore_ClampedTo100(t *testing.T) {
	ps := []model.Participant{{
		PUUID: "solo", TeamID: model.TeamBlue, Kills: 30, Assists: 5, Win: true,
		GoldEarned: 20000, TotalDamageDealtToChampions: 50000,
		TotalMinionsKilled: 400, VisionScore: 80,
	}}

	s := Score(ps, 1200)[0]

	if s.TotalScore != 100 {
		t.Errorf("TotalScore = %v, want 100", s.TotalScore)
	}
}

func TestScore_ZeroDurationAndNoKills(t *testing.T) {
	ps := []model.Participant{{PUUID: "a", TeamID: model.TeamBlue}, {PUUID: "b", TeamID: model.TeamRed}}

	for _, s := range Score(ps, 0) {
		if s.TotalScore != 0 {
			t.Errorf("%s: TotalScore = %v, want 0", s.PUUID, s.TotalScore)
		}
	}
}

func TestScore_Participation(t *testing.T) {
	ps := tenPlayers()
	teamKills := 0
	for _, p := range ps[:5] {
		teamKills += p.Kills
	}

	s := Score(ps, 1800)[1]

	want := round1(float64(ps[1].Kills+ps[1].Assists) / float64(teamKills) * 100)
	if want > 100 {
		want = 100
	}
	if s.SubScores.Participation != want {
		t.Errorf("participation = %v, want %v", s.SubScores.Participation, want)
	}
}

func TestRank_TotalOrder(t *testing.T) {
	ranks := Rank(Score(tenPlayers(), 1800))

	if len(ranks) != 10 {
		t.Fatalf("got %d ranks, want 10", len(ranks))
	}
	seen := make(map[int]bool)
	for puuid, r := range ranks {
		if r < 1 || r > 10 {
			t.Errorf("%s has rank %d outside 1..10", puuid, r)
		}
		if seen[r] {
			t.Errorf("rank %d assigned twice", r)
		}
		seen[r] = true
	}
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	scores := []model.PerformanceScore{
		{PUUID: "a", Composite: 50},
		{PUUID: "b", Composite: 70},
		{PUUID: "c", Composite: 50},
		{PUUID: "d", Composite: 50},
	}

	for i := 0; i < 20; i++ {
		ranks := Rank(scores)
		if ranks["b"] != 1 || ranks["a"] != 2 || ranks["c"] != 3 || ranks["d"] != 4 {
			t.Fatalf("run %d: ranks = %v", i, ranks)
		}
	}
}

func TestRank_ClampedWinnersOrderedByComposite(t *testing.T) {
	ps := tenPlayers()
	// Two winners who both clear 100 after the bonus. p2 out-damages and
	// out-earns p1 slightly.
	for i, dmg := range []int{49500, 50000} {
		p := &ps[i]
		p.Kills, p.Deaths, p.Assists = 10, 0, 10
		p.TotalMinionsKilled, p.NeutralMinionsKilled = 300, 0
		p.VisionScore = 150
		p.TotalDamageDealtToChampions = dmg
		p.GoldEarned = dmg * 2 / 5
	}
	for i := 2; i < 5; i++ {
		ps[i].Kills = 0
	}

	scores := Score(ps, 1800)
	ranks := Rank(scores)

	if scores[0].TotalScore != 100 || scores[1].TotalScore != 100 {
		t.Fatalf("totals = %v/%v, want both clamped to 100", scores[0].TotalScore, scores[1].TotalScore)
	}
	if scores[1].Composite <= scores[0].Composite {
		t.Fatalf("composites = %v/%v, want p2 ahead", scores[0].Composite, scores[1].Composite)
	}
	if ranks["p2"] != 1 || ranks["p1"] != 2 {
		t.Errorf("ranks p1=%d p2=%d, want p2 MVP", ranks["p1"], ranks["p2"])
	}
}
