package detector

import (
	"testing"

	"github.com/pable/lol-coach/internal/matchtest"
	"github.com/pable/lol-coach/internal/model"
)

var farAway = model.Position{X: 1000, Y: 1000}

func enemyMonster(ts int64, monster, sub string) model.EliteMonsterKill {
	return model.EliteMonsterKill{
		TimestampMs:    ts,
		KillerID:       7,
		KillerTeamID:   model.TeamRed,
		MonsterType:    monster,
		MonsterSubType: sub,
	}
}

func TestDetectObjectives(t *testing.T) {
	tests := []struct {
		name         string
		event        model.EliteMonsterKill
		pos          model.Position
		death        int64 // target death timestamp, 0 for none
		wantSeverity model.Severity
		wantErr      bool
		want         model.ObjectiveStats
	}{
		{
			name:         "early dragon while far",
			event:        enemyMonster(matchtest.Min(8), model.MonsterDragon, "FIRE_DRAGON"),
			pos:          farAway,
			wantErr:      true,
			wantSeverity: model.SeverityMedium,
			want:         model.ObjectiveStats{DragonsLost: 1},
		},
		{
			name:  "dragon while near the pit",
			event: enemyMonster(matchtest.Min(8), model.MonsterDragon, "FIRE_DRAGON"),
			pos:   model.Position{X: 9000, Y: 5000},
			want:  model.ObjectiveStats{DragonsLost: 1, ExcusedByProximity: 1},
		},
		{
			name:  "dragon while dead",
			event: enemyMonster(matchtest.Sec(5*60+10), model.MonsterDragon, "FIRE_DRAGON"),
			pos:   farAway,
			death: matchtest.Sec(5 * 60),
			want:  model.ObjectiveStats{DragonsLost: 1, ExcusedByDeath: 1},
		},
		{
			name:         "dragon after respawn",
			event:        enemyMonster(matchtest.Sec(5*60+20), model.MonsterDragon, "FIRE_DRAGON"),
			pos:          farAway,
			death:        matchtest.Sec(5 * 60),
			wantErr:      true,
			wantSeverity: model.SeverityMedium,
			want:         model.ObjectiveStats{DragonsLost: 1},
		},
		{
			name:         "late dragon",
			event:        enemyMonster(matchtest.Min(27), model.MonsterDragon, "WATER_DRAGON"),
			pos:          farAway,
			wantErr:      true,
			wantSeverity: model.SeverityHigh,
			want:         model.ObjectiveStats{DragonsLost: 1},
		},
		{
			name:         "elder dragon",
			event:        enemyMonster(matchtest.Min(33), model.MonsterDragon, model.SubTypeElder),
			pos:          farAway,
			wantErr:      true,
			wantSeverity: model.SeverityCritical,
			want:         model.ObjectiveStats{DragonsLost: 1},
		},
		{
			name:         "baron",
			event:        enemyMonster(matchtest.Min(26), model.MonsterBaron, ""),
			pos:          model.Position{X: 12000, Y: 3000},
			wantErr:      true,
			wantSeverity: model.SeverityCritical,
			want:         model.ObjectiveStats{BaronsLost: 1},
		},
		{
			name:         "early herald",
			event:        enemyMonster(matchtest.Min(9), model.MonsterHerald, ""),
			pos:          model.Position{X: 12000, Y: 3000},
			wantErr:      true,
			wantSeverity: model.SeverityMedium,
			want:         model.ObjectiveStats{HeraldsContested: 1},
		},
		{
			name:  "mid game herald ignored",
			event: enemyMonster(matchtest.Min(15), model.MonsterHerald, ""),
			pos:   farAway,
			want:  model.ObjectiveStats{},
		},
		{
			name: "own team dragon ignored",
			event: model.EliteMonsterKill{
				TimestampMs: matchtest.Min(8), KillerID: 2, KillerTeamID: model.TeamBlue,
				MonsterType: model.MonsterDragon,
			},
			pos:  farAway,
			want: model.ObjectiveStats{},
		},
		{
			name: "unresolved killer team ignored",
			event: model.EliteMonsterKill{
				TimestampMs: matchtest.Min(8), MonsterType: model.MonsterDragon,
			},
			pos:  farAway,
			want: model.ObjectiveStats{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := matchtest.NewMatch(40)
			matchtest.SetFramePosition(m, 1, 0, tc.pos)
			if tc.death > 0 {
				matchtest.AddEvents(m, model.ChampionKill{TimestampMs: tc.death, KillerID: 8, VictimID: 1})
			}
			matchtest.AddEvents(m, tc.event)

			res := DetectObjectives(m)

			if res.Stats != tc.want {
				t.Errorf("stats = %+v, want %+v", res.Stats, tc.want)
			}
			if !tc.wantErr {
				if len(res.Errors) != 0 {
					t.Errorf("expected no errors, got %+v", res.Errors)
				}
				return
			}
			if len(res.Errors) != 1 {
				t.Fatalf("expected 1 error, got %d", len(res.Errors))
			}
			e := res.Errors[0]
			if e.Type != model.ErrorObjective || e.Severity != tc.wantSeverity {
				t.Errorf("got %s/%s, want objective/%s", e.Type, e.Severity, tc.wantSeverity)
			}
			if e.Timestamp != int(tc.event.TimestampMs/1000) {
				t.Errorf("timestamp = %d, want %d", e.Timestamp, tc.event.TimestampMs/1000)
			}
			if e.Context.MapState == nil || e.Context.MapState.PlayerPosition != tc.pos {
				t.Errorf("mapState = %+v, want position %+v", e.Context.MapState, tc.pos)
			}
			if e.Context.Distance <= contestRange {
				t.Errorf("distance %.1f should exceed the contest range", e.Context.Distance)
			}
		})
	}
}

func TestDetectObjectives_UsesFrameOfTheKill(t *testing.T) {
	m := matchtest.NewMatch(30)
	matchtest.SetFramePosition(m, 1, 0, farAway)
	matchtest.SetFramePosition(m, 1, 20, model.Position{X: 9800, Y: 4400})
	matchtest.AddEvents(m,
		enemyMonster(matchtest.Min(10.5), model.MonsterDragon, "AIR_DRAGON"),
		enemyMonster(matchtest.Min(20.5), model.MonsterDragon, "AIR_DRAGON"),
	)

	res := DetectObjectives(m)

	if len(res.Errors) != 1 || res.Errors[0].Timestamp != 630 {
		t.Fatalf("expected one error at 630s, got %+v", res.Errors)
	}
	if res.Stats.DragonsLost != 2 || res.Stats.ExcusedByProximity != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
}

func TestClock(t *testing.T) {
	if got := clock(matchtest.Sec(25*60 + 7)); got != "25:07" {
		t.Errorf("clock = %q, want 25:07", got)
	}
}
