// Package cycle implements the menstrual-cycle phase inference engine.
// The calculation is pure: it depends only on the user's typed facts and
// the injected clock, performs no I/O and never mutates its input.
package cycle

import "time"

// Phase is one of the four stages of a nominal 28-day cycle.
type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulation  Phase = "ovulation"
	PhaseLuteal     Phase = "luteal"
)

// PhaseResult is the sole output contract of the calculator.
// HasData=false implies Phase is empty and Message explains what is missing;
// HasData=true implies Phase is set and Message is empty.
type PhaseResult struct {
	Phase        Phase     `json:"phase,omitempty"`
	HasData      bool      `json:"has_data"`
	Message      string    `json:"message,omitempty"`
	CalculatedAt time.Time `json:"calculated_at"`
}

const (
	msgNoData      = "No menstrual health data available"
	msgNoDuration  = "Period duration not provided"
	msgNoDate      = "Last period date not provided"
	msgInvalidDate = "Invalid date format for last period"
)

const (
	dateLayout    = "2006-01-02"
	cycleLength   = 28
	ovulationDays = 3
)

// periodLengths maps the bucketed duration answers to a representative
// day count. Unrecognized answers fall back to 5.
var periodLengths = map[string]int{
	"3-5":  4,
	"5-7":  6,
	"7-10": 8,
	"10+":  10,
}

// Calculator derives the current cycle phase from a fact set.
type Calculator struct {
	clock Clock
}

func NewCalculator(clock Clock) Calculator {
	if clock == nil {
		clock = RealClock{}
	}
	return Calculator{clock: clock}
}

// CalculatePhase maps the user's facts to the current phase.
// Missing or malformed input is reported through the result, never as an error.
func (c Calculator) CalculatePhase(facts []Fact) PhaseResult {
	now := c.clock.Now()
	res := PhaseResult{CalculatedAt: now}

	if len(facts) == 0 {
		res.Message = msgNoData
		return res
	}

	duration := Answer(facts, FactPeriodDuration, "")
	if duration == "" {
		res.Message = msgNoDuration
		return res
	}

	dateStr := Answer(facts, FactLastPeriodStart, "")
	if dateStr == "" {
		res.Message = msgNoDate
		return res
	}

	start, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		res.Message = msgInvalidDate
		return res
	}

	days := daysSince(start, now)
	if days >= cycleLength {
		// Stale data is folded into the current cycle position assuming a
		// fixed 28-day cycle. This intentionally ignores the reported period
		// length; the approximation is a documented compatibility constraint.
		days %= cycleLength
	}

	periodLen, ok := periodLengths[duration]
	if !ok {
		periodLen = 5
	}
	follicularLen := 14 - periodLen
	if follicularLen < 0 {
		follicularLen = 0
	}

	// Half-open windows: each threshold uses strict less-than.
	switch {
	case days < periodLen:
		res.Phase = PhaseMenstrual
	case days < periodLen+follicularLen:
		res.Phase = PhaseFollicular
	case days < periodLen+follicularLen+ovulationDays:
		res.Phase = PhaseOvulation
	default:
		res.Phase = PhaseLuteal
	}
	res.HasData = true
	return res
}

// daysSince counts whole calendar days from start to now.
// Both values are anchored to midnight so time-of-day never shifts the count.
func daysSince(start, now time.Time) int {
	a := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}
