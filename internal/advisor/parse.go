package advisor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractJSON pulls the JSON object out of a free-text generation reply.
// Replies regularly arrive wrapped in code fences or surrounded by prose,
// so everything outside the outermost braces is discarded.
func extractJSON(reply string) ([]byte, error) {
	s := strings.TrimSpace(reply)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object found", ErrBadReply)
	}

	raw := []byte(s[start : end+1])
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrBadReply)
	}
	return raw, nil
}

type recommendationPayload struct {
	DietRecommendations     []string `json:"diet_recommendations"`
	ExerciseRecommendations []string `json:"exercise_recommendations"`
	SymptomsToWatch         []string `json:"symptoms_to_watch"`
	Affirmation             string   `json:"affirmation"`
}

func parseRecommendations(reply string) (recommendationPayload, error) {
	var p recommendationPayload

	raw, err := extractJSON(reply)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrBadReply, err)
	}

	for name, items := range map[string][]string{
		"diet_recommendations":     p.DietRecommendations,
		"exercise_recommendations": p.ExerciseRecommendations,
		"symptoms_to_watch":        p.SymptomsToWatch,
	} {
		if len(items) != recommendationItems {
			return p, fmt.Errorf("%w: expected %d %s, got %d",
				ErrBadReply, recommendationItems, name, len(items))
		}
	}
	if strings.TrimSpace(p.Affirmation) == "" {
		return p, fmt.Errorf("%w: missing affirmation", ErrBadReply)
	}
	return p, nil
}

type suggestionPayload struct {
	SuggestedEvents []struct {
		Title  string `json:"title"`
		Start  string `json:"start"`
		End    string `json:"end"`
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"suggested_events"`
}

func parseSuggestions(reply string) (suggestionPayload, error) {
	var p suggestionPayload

	raw, err := extractJSON(reply)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrBadReply, err)
	}

	if len(p.SuggestedEvents) == 0 {
		return p, fmt.Errorf("%w: no suggested events", ErrBadReply)
	}
	for i, ev := range p.SuggestedEvents {
		if ev.Title == "" || ev.Start == "" || ev.End == "" || ev.Type == "" || ev.Reason == "" {
			return p, fmt.Errorf("%w: suggestion %d is missing required fields", ErrBadReply, i)
		}
	}
	return p, nil
}
