package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloom-wellness-backend/internal/cycle"
)

// fakeCompleter returns a scripted reply and records every prompt it sees.
type fakeCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)

func testProfile(daysAgo int) Profile {
	start := testNow.AddDate(0, 0, -daysAgo).Format("2006-01-02")
	return Profile{
		Age:        24,
		Profession: "Graduate Student",
		Interests:  []string{"Research", "Hiking"},
		Events: []ExistingEvent{
			{Title: "Team meeting", Start: "2024-05-15 10:00", End: "2024-05-15 11:00"},
		},
		Facts: []cycle.Fact{
			{Kind: cycle.FactLastPeriodStart, Answer: start},
			{Kind: cycle.FactPeriodDuration, Answer: "3-5"},
			{Kind: cycle.FactRecentMood, Answer: "optimistic"},
			{Kind: cycle.FactHealthConfidence, Answer: "Yes"},
		},
	}
}

func sixItems(prefix string) string {
	items := make([]string, 6)
	for i := range items {
		items[i] = fmt.Sprintf("%q", fmt.Sprintf("%s %d", prefix, i+1))
	}
	return "[" + strings.Join(items, ",") + "]"
}

func validRecommendationReply() string {
	return fmt.Sprintf(`{
		"diet_recommendations": %s,
		"exercise_recommendations": %s,
		"symptoms_to_watch": %s,
		"affirmation": "I trust my body"
	}`, sixItems("diet"), sixItems("exercise"), sixItems("symptom"))
}

const validSuggestionReply = `{
	"suggested_events": [
		{"title": "Light Evening Walk", "start": "2024-05-16 17:00", "end": "2024-05-16 17:30", "type": "wellness", "reason": "Gentle movement suits this phase"},
		{"title": "Study Sprint", "start": "2024-05-17 09:00", "end": "2024-05-17 10:30", "type": "Productivity", "reason": "Morning focus window"},
		{"title": "Stargazing", "start": "2024-05-18 21:00", "end": "2024-05-18 22:00", "type": "unwinding", "reason": "Relaxing end to the week"}
	]
}`

func TestGetRecommendations_InsufficientData(t *testing.T) {
	fake := &fakeCompleter{reply: validRecommendationReply()}
	svc := NewService(fake, fixedClock{now: testNow})

	_, err := svc.GetRecommendations(context.Background(), Profile{Age: 24})
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Empty(t, fake.prompts, "collaborator must not be called without phase data")
}

func TestGetRecommendations_Success(t *testing.T) {
	fake := &fakeCompleter{reply: validRecommendationReply()}
	svc := NewService(fake, fixedClock{now: testNow})

	// Day 14 with the "3-5" bucket lands in the ovulation window.
	rec, err := svc.GetRecommendations(context.Background(), testProfile(14))
	require.NoError(t, err)

	assert.Equal(t, cycle.PhaseOvulation, rec.Phase)
	assert.Len(t, rec.DietRecommendations, 6)
	assert.Len(t, rec.ExerciseRecommendations, 6)
	assert.Len(t, rec.SymptomsToWatch, 6)
	assert.Equal(t, "I trust my body", rec.Affirmation)
	assert.Equal(t, testNow, rec.GeneratedAt)

	require.Len(t, fake.prompts, 1)
	prompt := fake.prompts[0]
	assert.Contains(t, prompt, "24-year-old")
	assert.Contains(t, prompt, "ovulation phase")
	assert.Contains(t, prompt, "feeling optimistic")
	assert.Contains(t, prompt, "knowledge is high")
}

func TestGetRecommendations_DefaultMoodAndConfidence(t *testing.T) {
	fake := &fakeCompleter{reply: validRecommendationReply()}
	svc := NewService(fake, fixedClock{now: testNow})

	p := testProfile(2)
	p.Facts = p.Facts[:2] // keep only the two required facts

	_, err := svc.GetRecommendations(context.Background(), p)
	require.NoError(t, err)

	prompt := fake.prompts[0]
	assert.Contains(t, prompt, "feeling neutral")
	assert.Contains(t, prompt, "knowledge is low")
}

func TestGetRecommendations_CompleterError(t *testing.T) {
	wantErr := errors.New("upstream down")
	fake := &fakeCompleter{err: wantErr}
	svc := NewService(fake, fixedClock{now: testNow})

	_, err := svc.GetRecommendations(context.Background(), testProfile(2))
	assert.ErrorIs(t, err, wantErr)
}

func TestGetRecommendations_BadReplies(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"empty reply", ""},
		{"plain prose", "Here are some tips: eat well and rest."},
		{"truncated JSON", `{"diet_recommendations": ["a", "b"`},
		{"missing affirmation", fmt.Sprintf(`{"diet_recommendations": %s, "exercise_recommendations": %s, "symptoms_to_watch": %s}`,
			sixItems("d"), sixItems("e"), sixItems("s"))},
		{"wrong field names", fmt.Sprintf(`{"diet": %s, "exercise": %s, "symptoms": %s, "affirmation": "x"}`,
			sixItems("d"), sixItems("e"), sixItems("s"))},
		{"short lists", `{"diet_recommendations": ["a"], "exercise_recommendations": ["b"], "symptoms_to_watch": ["c"], "affirmation": "x"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeCompleter{reply: tc.reply}
			svc := NewService(fake, fixedClock{now: testNow})

			_, err := svc.GetRecommendations(context.Background(), testProfile(2))
			assert.ErrorIs(t, err, ErrBadReply)
		})
	}
}

func TestGetRecommendations_ReplyWrappedInProse(t *testing.T) {
	fake := &fakeCompleter{reply: "Sure! Here you go:\n```json\n" + validRecommendationReply() + "\n```\nHope this helps."}
	svc := NewService(fake, fixedClock{now: testNow})

	rec, err := svc.GetRecommendations(context.Background(), testProfile(2))
	require.NoError(t, err)
	assert.Len(t, rec.DietRecommendations, 6)
}

func TestGetSuggestedEvents_InsufficientData(t *testing.T) {
	fake := &fakeCompleter{reply: validSuggestionReply}
	svc := NewService(fake, fixedClock{now: testNow})

	_, err := svc.GetSuggestedEvents(context.Background(), Profile{Age: 24})
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Empty(t, fake.prompts)
}

func TestGetSuggestedEvents_Success(t *testing.T) {
	fake := &fakeCompleter{reply: validSuggestionReply}
	svc := NewService(fake, fixedClock{now: testNow})

	events, err := svc.GetSuggestedEvents(context.Background(), testProfile(2))
	require.NoError(t, err)
	require.Len(t, events, 3)

	for _, ev := range events {
		assert.True(t, strings.HasPrefix(ev.ID, "sugg_"), "id %q", ev.ID)
	}
	assert.Equal(t, "#4CAF50", events[0].Color)
	// Category matching is case-insensitive.
	assert.Equal(t, "#2196F3", events[1].Color)
	// Unknown categories fall back to the neutral gray.
	assert.Equal(t, "#607D8B", events[2].Color)
	assert.Equal(t, "Gentle movement suits this phase", events[0].Reason)

	require.Len(t, fake.prompts, 1)
	prompt := fake.prompts[0]
	assert.Contains(t, prompt, "week of 2024-05-15 to 2024-05-21")
	assert.Contains(t, prompt, "Research, Hiking")
	assert.Contains(t, prompt, "- Team meeting from 2024-05-15 10:00 to 2024-05-15 11:00")
	assert.Contains(t, prompt, "menstrual phase")
}

func TestGetSuggestedEvents_NoInterestsPlaceholder(t *testing.T) {
	fake := &fakeCompleter{reply: validSuggestionReply}
	svc := NewService(fake, fixedClock{now: testNow})

	p := testProfile(2)
	p.Interests = nil

	_, err := svc.GetSuggestedEvents(context.Background(), p)
	require.NoError(t, err)
	assert.Contains(t, fake.prompts[0], "no specific interests listed")
}

func TestGetSuggestedEvents_BadReplies(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"empty reply", ""},
		{"empty list", `{"suggested_events": []}`},
		{"missing start", `{"suggested_events": [{"title": "Walk", "end": "2024-05-16 18:00", "type": "wellness", "reason": "r"}]}`},
		{"missing reason", `{"suggested_events": [{"title": "Walk", "start": "2024-05-16 17:00", "end": "2024-05-16 18:00", "type": "wellness"}]}`},
		{"truncated JSON", `{"suggested_events": [{"title": "Walk"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeCompleter{reply: tc.reply}
			svc := NewService(fake, fixedClock{now: testNow})

			events, err := svc.GetSuggestedEvents(context.Background(), testProfile(2))
			assert.ErrorIs(t, err, ErrBadReply)
			assert.Nil(t, events)
		})
	}
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, "#4CAF50", ColorFor("wellness"))
	assert.Equal(t, "#4CAF50", ColorFor("Wellness"))
	assert.Equal(t, "#2196F3", ColorFor("productivity"))
	assert.Equal(t, "#9C27B0", ColorFor("rest"))
	assert.Equal(t, "#FF9800", ColorFor("social"))
	assert.Equal(t, "#795548", ColorFor("learning"))
	assert.Equal(t, "#607D8B", ColorFor("gardening"))
	assert.Equal(t, "#607D8B", ColorFor(""))
}
