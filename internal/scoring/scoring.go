// Package scoring rates every participant of a match on a 0-100 scale and
// ranks them from MVP to worst.
package scoring

import (
	"math"
	"sort"

	"github.com/pable/lol-coach/internal/model"
)

// Sub-score weights; they sum to 1.
const (
	weightKDA           = 0.25
	weightDamage        = 0.25
	weightGold          = 0.15
	weightCS            = 0.10
	weightVision        = 0.10
	weightParticipation = 0.15

	winMultiplier = 1.05
)

// Score computes a PerformanceScore for every participant, in input order.
func Score(participants []model.Participant, durationSec int) []model.PerformanceScore {
	minutes := float64(durationSec) / 60

	var maxDamage, maxGold int
	teamKills := make(map[int]int)
	for _, p := range participants {
		maxDamage = max(maxDamage, p.TotalDamageDealtToChampions)
		maxGold = max(maxGold, p.GoldEarned)
		teamKills[p.TeamID] += p.Kills
	}

	scores := make([]model.PerformanceScore, 0, len(participants))
	for _, p := range participants {
		sub := model.SubScores{
			KDA:           KDAScore(p.Kills, p.Deaths, p.Assists),
			Damage:        ratio(p.TotalDamageDealtToChampions, maxDamage),
			Gold:          ratio(p.GoldEarned, maxGold),
			CS:            perMinute(p.CS(), minutes, 10),
			Vision:        perMinute(p.VisionScore, minutes, 20),
			Participation: participation(p.Kills+p.Assists, teamKills[p.TeamID]),
		}
		total := sub.KDA*weightKDA +
			sub.Damage*weightDamage +
			sub.Gold*weightGold +
			sub.CS*weightCS +
			sub.Vision*weightVision +
			sub.Participation*weightParticipation
		if p.Win {
			total *= winMultiplier
		}
		scores = append(scores, model.PerformanceScore{
			PUUID:           p.PUUID,
			ParticipantID:   p.ParticipantID,
			ChampionName:    p.ChampionName,
			SubScores:       roundSubScores(sub),
			TotalScore:      round1(clamp(total)),
			WinBonusApplied: p.Win,
			Composite:       total,
		})
	}
	return scores
}

// KDAScore is min(kda*10, 100), where a deathless game counts (k+a)*1.2.
func KDAScore(kills, deaths, assists int) float64 {
	var kda float64
	if deaths == 0 {
		kda = float64(kills+assists) * 1.2
	} else {
		kda = float64(kills+assists) / float64(deaths)
	}
	return math.Min(kda*10, 100)
}

// Rank orders scores by composite descending, keeping input order on ties,
// and returns puuid -> rank starting at 1. TotalScore is not used: clamping
// and rounding can tie players whose composites differ.
func Rank(scores []model.PerformanceScore) map[string]int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]].Composite > scores[order[b]].Composite
	})
	ranks := make(map[string]int, len(scores))
	for rank, idx := range order {
		ranks[scores[idx].PUUID] = rank + 1
	}
	return ranks
}

func ratio(v, maxV int) float64 {
	if maxV <= 0 {
		return 0
	}
	return float64(v) / float64(maxV) * 100
}

func perMinute(v int, minutes, factor float64) float64 {
	if minutes <= 0 {
		return 0
	}
	return math.Min(float64(v)/minutes*factor, 100)
}

func participation(involved, teamKills int) float64 {
	if teamKills <= 0 {
		return 0
	}
	return math.Min(float64(involved)/float64(teamKills)*100, 100)
}

func clamp(v float64) float64 { return math.Max(0, math.Min(v, 100)) }

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func roundSubScores(s model.SubScores) model.SubScores {
	return model.SubScores{
		KDA:           round1(s.KDA),
		Damage:        round1(s.Damage),
		Gold:          round1(s.Gold),
		CS:            round1(s.CS),
		Vision:        round1(s.Vision),
		Participation: round1(s.Participation),
	}
}
