// Package phase buckets in-game time into early, mid and late game. Every
// detector selects its benchmark thresholds through Classify.
package phase

// Phase is a coarse game-time bucket.
type Phase string

const (
	Early Phase = "early"
	Mid   Phase = "mid"
	Late  Phase = "late"
)

const (
	midStartMs  int64 = 14 * 60 * 1000
	lateStartMs int64 = 25 * 60 * 1000
)

// Classify maps an in-game timestamp in milliseconds to its phase.
func Classify(timestampMs int64) Phase {
	switch {
	case timestampMs < midStartMs:
		return Early
	case timestampMs < lateStartMs:
		return Mid
	default:
		return Late
	}
}

// AtMinute classifies the start of the given game minute.
func AtMinute(minute int) Phase {
	return Classify(int64(minute) * 60 * 1000)
}
