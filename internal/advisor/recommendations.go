package advisor

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"bloom-wellness-backend/internal/cycle"
)

// recommendationItems is the fixed size of each recommendation list the
// prompt asks for; replies with a different count are rejected.
const recommendationItems = 6

// Recommendation is one generated set of phase-specific guidance.
type Recommendation struct {
	Phase                   cycle.Phase `json:"phase"`
	DietRecommendations     []string    `json:"diet_recommendations"`
	ExerciseRecommendations []string    `json:"exercise_recommendations"`
	SymptomsToWatch         []string    `json:"symptoms_to_watch"`
	Affirmation             string      `json:"affirmation"`
	GeneratedAt             time.Time   `json:"generated_at"`
}

// GetRecommendations builds one generation request from the user's phase,
// mood and confidence facts and parses the reply into a Recommendation.
// Returns ErrInsufficientData without calling the collaborator when the
// phase cannot be determined.
func (s *Service) GetRecommendations(ctx context.Context, p Profile) (Recommendation, error) {
	phase := s.calc.CalculatePhase(p.Facts)
	if !phase.HasData {
		return Recommendation{}, ErrInsufficientData
	}

	mood := cycle.Answer(p.Facts, cycle.FactRecentMood, "neutral")
	confident := strings.EqualFold(cycle.Answer(p.Facts, cycle.FactHealthConfidence, ""), "yes")

	prompt := buildRecommendationPrompt(p.Age, phase.Phase, mood, confident)
	reply, err := s.ai.Complete(ctx, prompt)
	if err != nil {
		return Recommendation{}, err
	}

	parsed, err := parseRecommendations(reply)
	if err != nil {
		logrus.WithError(err).WithField("raw_reply", reply).
			Error("failed to parse recommendation reply")
		return Recommendation{}, err
	}

	return Recommendation{
		Phase:                   phase.Phase,
		DietRecommendations:     parsed.DietRecommendations,
		ExerciseRecommendations: parsed.ExerciseRecommendations,
		SymptomsToWatch:         parsed.SymptomsToWatch,
		Affirmation:             parsed.Affirmation,
		GeneratedAt:             s.clock.Now(),
	}, nil
}
