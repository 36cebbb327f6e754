package advisor

import (
	"fmt"
	"strings"

	"bloom-wellness-backend/internal/cycle"
)

const recommendationPrompt = `As a menstrual health expert, provide personalized recommendations for a %d-year-old person in their %s phase who is feeling %s.
Their confidence in menstrual health knowledge is %s.

Return the response in the following JSON format:
{
    "diet_recommendations": [
        // 6 specific diet recommendations including:
        // - General nutrition
        // - Specific foods to include
        // - Foods to avoid
        // - Meal timing
        // - Hydration
        // - Nutrients/supplements
    ],
    "exercise_recommendations": [
        // 6 specific, phase-appropriate exercise recommendations
        // Consider age and energy levels
    ],
    "symptoms_to_watch": [
        // 6 phase-specific symptoms to be aware of
        // Include both common and less common signs
    ],
    "affirmation": "One phase and mood appropriate affirmation"
}

Make recommendations specific, actionable, and appropriate for their age and knowledge level.
If confidence is low, include brief explanations.
Ensure each point is clear and self-contained.
Use natural, encouraging language.`

const suggestionPrompt = `As an event planning expert, suggest 5-6 personalized events for a %d-year-old %s
who is in their %s phase of menstrual cycle. Consider their interests: %s.

Current schedule for reference:
%s

Generate suggestions for the week of %s to %s.

Return the response in the following JSON format:
{
    "suggested_events": [
        {
            "title": "Event title",
            "start": "YYYY-MM-DD HH:MM",
            "end": "YYYY-MM-DD HH:MM",
            "type": "type of activity (wellness/productivity/rest/social/learning)",
            "reason": "Brief explanation of why this event is suggested"
        }
    ]
}

Guidelines:
1. Consider phase-appropriate activities (e.g., lighter activities during menstrual phase)
2. Account for age and profession (%s)
3. Incorporate user's interests where relevant
4. Suggest a mix of different activity types
5. Keep time slots reasonable (30-90 minutes)
6. Use 24-hour format for times

Make suggestions specific, actionable, and appropriate for their phase and age.`

func buildRecommendationPrompt(age int, phase cycle.Phase, mood string, confident bool) string {
	confidence := "low"
	if confident {
		confidence = "high"
	}
	return fmt.Sprintf(recommendationPrompt, age, phase, mood, confidence)
}

func buildSuggestionPrompt(p Profile, phase cycle.Phase, weekStart, weekEnd string) string {
	interests := "no specific interests listed"
	if len(p.Interests) > 0 {
		interests = strings.Join(p.Interests, ", ")
	}

	var schedule strings.Builder
	for _, ev := range p.Events {
		schedule.WriteString("- ")
		schedule.WriteString(ev.Title)
		schedule.WriteString(" from ")
		schedule.WriteString(ev.Start)
		schedule.WriteString(" to ")
		schedule.WriteString(ev.End)
		schedule.WriteString("\n")
	}

	return fmt.Sprintf(suggestionPrompt,
		p.Age, p.Profession, phase, interests,
		schedule.String(), weekStart, weekEnd, p.Profession)
}
