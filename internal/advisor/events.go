package advisor

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SuggestedEvent is a proposed calendar entry. It is never persisted;
// accepting one converts it into a plain event on the user's schedule.
type SuggestedEvent struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Color  string `json:"color"`
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// eventColors maps activity categories to display colors.
var eventColors = map[string]string{
	"wellness":     "#4CAF50",
	"productivity": "#2196F3",
	"rest":         "#9C27B0",
	"social":       "#FF9800",
	"learning":     "#795548",
}

// defaultEventColor is the neutral gray used for unrecognized categories.
const defaultEventColor = "#607D8B"

// ColorFor resolves the display color for an activity category.
func ColorFor(eventType string) string {
	if c, ok := eventColors[strings.ToLower(eventType)]; ok {
		return c
	}
	return defaultEventColor
}

// GetSuggestedEvents builds one generation request from the user's phase,
// interests and current schedule, and parses the reply into suggestions
// for the coming week. Returns ErrInsufficientData without calling the
// collaborator when the phase cannot be determined.
func (s *Service) GetSuggestedEvents(ctx context.Context, p Profile) ([]SuggestedEvent, error) {
	phase := s.calc.CalculatePhase(p.Facts)
	if !phase.HasData {
		return nil, ErrInsufficientData
	}

	today := s.clock.Now()
	weekStart := today.Format("2006-01-02")
	weekEnd := today.AddDate(0, 0, 6).Format("2006-01-02")

	prompt := buildSuggestionPrompt(p, phase.Phase, weekStart, weekEnd)
	reply, err := s.ai.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	parsed, err := parseSuggestions(reply)
	if err != nil {
		logrus.WithError(err).WithField("raw_reply", reply).
			Error("failed to parse event suggestion reply")
		return nil, err
	}

	suggestions := make([]SuggestedEvent, 0, len(parsed.SuggestedEvents))
	for _, ev := range parsed.SuggestedEvents {
		suggestions = append(suggestions, SuggestedEvent{
			ID:     "sugg_" + uuid.NewString(),
			Title:  ev.Title,
			Start:  ev.Start,
			End:    ev.End,
			Color:  ColorFor(ev.Type),
			Type:   ev.Type,
			Reason: ev.Reason,
		})
	}
	return suggestions, nil
}
