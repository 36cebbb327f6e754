// Package advisor generates phase-aware recommendations and event
// suggestions by combining the cycle calculator's output with a single
// call to the text-generation collaborator.
package advisor

import (
	"context"
	"errors"

	"bloom-wellness-backend/internal/cycle"
)

var (
	// ErrInsufficientData means the phase could not be determined from the
	// user's facts. Surfaced as a client error; the collaborator is never
	// called in this case.
	ErrInsufficientData = errors.New("insufficient menstrual data")

	// ErrBadReply means the collaborator's reply did not match the
	// requested shape. Surfaced as a server error, never retried.
	ErrBadReply = errors.New("malformed generation reply")
)

// Completer is the text-generation collaborator contract.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ExistingEvent is a calendar entry already on the user's schedule,
// rendered into the suggestion prompt.
type ExistingEvent struct {
	Title string
	Start string
	End   string
}

// Profile carries the user attributes both generators consume.
type Profile struct {
	Age        int
	Profession string
	Interests  []string
	Events     []ExistingEvent
	Facts      []cycle.Fact
}

// Service runs the two generation pipelines.
type Service struct {
	ai    Completer
	calc  cycle.Calculator
	clock cycle.Clock
}

func NewService(completer Completer, clock cycle.Clock) *Service {
	if clock == nil {
		clock = cycle.RealClock{}
	}
	return &Service{
		ai:    completer,
		calc:  cycle.NewCalculator(clock),
		clock: clock,
	}
}

// CalculatePhase exposes the underlying phase calculation for the API layer.
func (s *Service) CalculatePhase(facts []cycle.Fact) cycle.PhaseResult {
	return s.calc.CalculatePhase(facts)
}
