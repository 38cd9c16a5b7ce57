// Package detector holds the per-signal mistake detectors. Each detector is a
// pure function of a normalized match and reads only the match's target
// player; it allocates and returns its own result.
package detector

import (
	"fmt"
	"math"

	"github.com/pable/lol-coach/internal/model"
)

// Result is one detector's output for one player.
type Result[S any] struct {
	Errors   []model.DetectedError
	Stats    S
	Warnings []model.Warning
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func distance(a, b model.Position) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func seconds(ms int64) int { return int(ms / 1000) }

// clock formats game milliseconds as m:ss.
func clock(ms int64) string {
	s := ms / 1000
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
