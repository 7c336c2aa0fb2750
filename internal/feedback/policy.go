// Package feedback learns from issued quotes: a global margin nudge driven
// by recent accept/reject outcomes, and per-(city, task) labor productivity
// multipliers smoothed from realized hours.
package feedback

import "github.com/alexanderramin/renovo/internal/domain"

const (
	// NudgeWindow is how many of the latest outcomes drive the margin nudge.
	NudgeWindow = 5
	// NudgeStep is the size of a margin nudge in either direction.
	NudgeStep = 0.02
	// LowAcceptRatio and HighAcceptRatio are exclusive thresholds.
	LowAcceptRatio  = 0.40
	HighAcceptRatio = 0.80

	// Alpha is the weight of a new realized/estimated ratio in the
	// productivity moving average.
	Alpha = 0.30
	// MinMultiplier and MaxMultiplier bound every productivity multiplier.
	MinMultiplier = 0.85
	MaxMultiplier = 1.15
	// DefaultMultiplier applies to (city, task) pairs without observations.
	DefaultMultiplier = 1.0

	// MaxHistory caps the stored outcome log.
	MaxHistory = 500
)

// MarginNudge computes the additive margin adjustment from history, which
// is ordered oldest first. Only the last NudgeWindow records count; an empty
// history yields 0.
func MarginNudge(history []domain.FeedbackRecord) float64 {
	if len(history) == 0 {
		return 0
	}
	window := history
	if len(window) > NudgeWindow {
		window = window[len(window)-NudgeWindow:]
	}

	accepted := 0
	for _, h := range window {
		if h.Accepted {
			accepted++
		}
	}
	ratio := float64(accepted) / float64(len(window))

	switch {
	case ratio < LowAcceptRatio:
		return -NudgeStep
	case ratio > HighAcceptRatio:
		return NudgeStep
	default:
		return 0
	}
}

// SmoothMultiplier folds one realized/estimated ratio into the current
// multiplier: clamp(α·ratio + (1−α)·current, 0.85, 1.15).
func SmoothMultiplier(current, ratio float64) float64 {
	return ClampMultiplier(Alpha*ratio + (1-Alpha)*current)
}

// ClampMultiplier bounds m to [MinMultiplier, MaxMultiplier].
func ClampMultiplier(m float64) float64 {
	if m < MinMultiplier {
		return MinMultiplier
	}
	if m > MaxMultiplier {
		return MaxMultiplier
	}
	return m
}
