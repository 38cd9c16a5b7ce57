// Package coaching selects a short, prioritized list of tips from a static
// catalog based on the mistakes found in a match.
package coaching

import (
	"fmt"
	"sort"

	"github.com/pable/lol-coach/internal/model"
)

// MaxTips caps the number of tips in a report.
const MaxTips = 5

const maxRelated = 3

// Aggregate picks up to MaxTips tips. Error types are served by frequency
// (first appearance breaks ties), then the weakest categories fill any
// remaining slots.
func Aggregate(errs []model.DetectedError, categoryScores map[model.Category]int) []model.CoachingTip {
	counts := make(map[model.ErrorType]int)
	var types []model.ErrorType
	for _, e := range errs {
		if counts[e.Type] == 0 {
			types = append(types, e.Type)
		}
		counts[e.Type]++
	}
	sort.SliceStable(types, func(i, j int) bool { return counts[types[i]] > counts[types[j]] })

	var (
		tips []model.CoachingTip
		used = make(map[string]bool)
	)
	add := func(t model.CoachingTip, related []string) {
		if len(tips) >= MaxTips || used[t.ID] {
			return
		}
		used[t.ID] = true
		t.RelatedErrors = related
		tips = append(tips, t)
	}

	for _, typ := range types {
		related := relatedErrors(errs, func(e model.DetectedError) bool { return e.Type == typ })
		for _, t := range byErrorType[typ] {
			add(t, related)
		}
	}

	if len(tips) < MaxTips {
		cats := append([]model.Category(nil), model.Categories...)
		sort.SliceStable(cats, func(i, j int) bool { return categoryScores[cats[i]] < categoryScores[cats[j]] })
		for _, cat := range cats {
			related := relatedErrors(errs, func(e model.DetectedError) bool { return model.CategoryOf(e.Type) == cat })
			for _, t := range byCategory[cat] {
				add(t, related)
			}
		}
	}

	for i := range tips {
		tips[i].Priority = i + 1
	}
	return tips
}

func relatedErrors(errs []model.DetectedError, match func(model.DetectedError) bool) []string {
	var refs []string
	for _, e := range errs {
		if len(refs) == maxRelated {
			break
		}
		if match(e) {
			refs = append(refs, fmt.Sprintf("%s@%d", e.Type, e.Timestamp))
		}
	}
	return refs
}
