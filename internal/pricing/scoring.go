package pricing

import (
	"math"

	"github.com/alexanderramin/renovo/internal/domain"
	"github.com/alexanderramin/renovo/internal/rules"
)

// Confidence flags.
const (
	FlagAreaDefaulted   = "area_defaulted"
	FlagCityDefaulted   = "city_defaulted"
	FlagMixedScope      = "mixed_scope"
	FlagNoTasksDetected = "no_tasks_detected"
)

// Trust flags.
const (
	FlagCityUnrecognized        = "city_unrecognized"
	FlagNoSupplierAnchor        = "no_supplier_anchor"
	FlagMarginOutOfPolicy       = "margin_out_of_policy"
	FlagImplausibleDuration     = "implausible_duration"
	FlagFeedbackStateUnreadable = "feedback_state_unreadable"
)

const (
	confidenceBase       = 0.50
	maxConfidencePenalty = 0.30
	trustBase            = 1.00
)

// ConfidenceInput is what the transcript told us.
type ConfidenceInput struct {
	Signals       domain.Signals
	TasksDetected int
}

type scoreFactor[T any] func(T) (delta float64, flag string)

var confidenceBonuses = []scoreFactor[ConfidenceInput]{
	func(in ConfidenceInput) (float64, string) {
		if in.Signals.AreaM2.IsDetected() {
			return 0.20, ""
		}
		return 0, ""
	},
	func(in ConfidenceInput) (float64, string) {
		if in.TasksDetected > 0 {
			return 0.20, ""
		}
		return 0, ""
	},
	func(in ConfidenceInput) (float64, string) {
		if in.Signals.City.IsDetected() {
			return 0.05, ""
		}
		return 0, ""
	},
	func(in ConfidenceInput) (float64, string) {
		if in.Signals.BudgetConscious.IsDetected() {
			return 0.05, ""
		}
		return 0, ""
	},
}

var confidencePenalties = []scoreFactor[ConfidenceInput]{
	func(in ConfidenceInput) (float64, string) {
		if in.Signals.AreaM2.IsDefaulted() {
			return 0.10, FlagAreaDefaulted
		}
		return 0, ""
	},
	func(in ConfidenceInput) (float64, string) {
		if in.Signals.City.IsDefaulted() {
			return 0.05, FlagCityDefaulted
		}
		return 0, ""
	},
	func(in ConfidenceInput) (float64, string) {
		if in.Signals.MixedScope.Value {
			return 0.10, FlagMixedScope
		}
		return 0, ""
	},
	func(in ConfidenceInput) (float64, string) {
		if in.TasksDetected == 0 {
			return 0.10, FlagNoTasksDetected
		}
		return 0, ""
	},
}

// Confidence scores input quality. Bonuses reward detected facts; penalties
// for suspicious input are capped so that a noisy transcript cannot wipe
// out what was detected.
func Confidence(in ConfidenceInput) domain.Score {
	score := confidenceBase
	for _, f := range confidenceBonuses {
		d, _ := f(in)
		score += d
	}

	flags := []string{}
	var penalty float64
	for _, f := range confidencePenalties {
		d, flag := f(in)
		if flag == "" {
			continue
		}
		penalty += d
		flags = append(flags, flag)
	}
	score -= math.Min(penalty, maxConfidencePenalty)

	return domain.Score{Score: clampScore(score), Flags: flags}
}

// TrustInput is the priced quote plus context the quote itself does not
// carry.
type TrustInput struct {
	Quote            *domain.Quote
	CityDefaulted    bool
	FeedbackDegraded bool
	Policy           rules.MarginPolicy
}

var trustChecks = []scoreFactor[TrustInput]{
	checkCityRecognized,
	checkSupplierAnchor,
	checkMarginPolicy,
	checkDurations,
	checkFeedbackState,
}

// Trust scores pricing sanity. Each failed check lowers the score and adds
// its flag.
func Trust(in TrustInput) domain.Score {
	score := trustBase
	flags := []string{}
	for _, check := range trustChecks {
		d, flag := check(in)
		if flag == "" {
			continue
		}
		score -= d
		flags = append(flags, flag)
	}
	return domain.Score{Score: clampScore(score), Flags: flags}
}

func checkCityRecognized(in TrustInput) (float64, string) {
	if in.CityDefaulted {
		return 0.15, FlagCityUnrecognized
	}
	for _, z := range in.Quote.Zones {
		if _, known := rules.CityIndex(z.City); !known {
			return 0.15, FlagCityUnrecognized
		}
	}
	return 0, ""
}

// checkSupplierAnchor passes when at least one task's material cost per unit
// lands near a live supplier price.
func checkSupplierAnchor(in TrustInput) (float64, string) {
	for _, z := range in.Quote.Zones {
		for _, t := range z.Tasks {
			anchor, ok := rules.SupplierAnchor(t.Task, z.City)
			if !ok {
				continue
			}
			perUnit := t.Materials.Cost / math.Max(t.Quantity, 1)
			if rules.AnchorHolds(perUnit, anchor.UnitPrice) {
				return 0, ""
			}
		}
	}
	return 0.10, FlagNoSupplierAnchor
}

func checkMarginPolicy(in TrustInput) (float64, string) {
	for _, t := range in.Quote.AllTasks() {
		if !in.Policy.Within(t.Pricing.Margin) {
			return 0.25, FlagMarginOutOfPolicy
		}
	}
	return 0, ""
}

// checkDurations rejects zero-day tasks and tasks that take far longer than
// their quantity suggests.
func checkDurations(in TrustInput) (float64, string) {
	for _, t := range in.Quote.AllTasks() {
		limit := MaxDurationSlackDays + int(math.Ceil(t.Quantity))
		if t.EstimatedDurationDays < 1 || t.EstimatedDurationDays > limit {
			return 0.15, FlagImplausibleDuration
		}
	}
	return 0, ""
}

func checkFeedbackState(in TrustInput) (float64, string) {
	if in.FeedbackDegraded {
		return 0.10, FlagFeedbackStateUnreadable
	}
	return 0, ""
}

func clampScore(s float64) float64 {
	return round2(math.Max(0, math.Min(1, s)))
}
