// Package users persists user profiles, their question/answer facts and
// their calendar events.
package users

import (
	"time"

	"bloom-wellness-backend/internal/cycle"
)

// QAPair is one onboarding question and the user's free-text answer.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Event is a persisted calendar entry.
type Event struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
	Color string `json:"color"`
}

type User struct {
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Profession  string    `json:"profession,omitempty"`
	University  string    `json:"university,omitempty"`
	Location    string    `json:"location,omitempty"`
	Age         int       `json:"age"`
	Coins       int       `json:"coins"`
	Skills      []string  `json:"skills"`
	Interests   []string  `json:"interests"`
	CanvasToken string    `json:"canvas_token,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// factKind maps a fixed onboarding question string to its typed kind.
// The mapping happens once here, at the store boundary, so the cycle
// logic never depends on question wording.
func factKind(question string) cycle.FactKind {
	switch question {
	case "When was the first day of your last period?":
		return cycle.FactLastPeriodStart
	case "How long does your period typically last?":
		return cycle.FactPeriodDuration
	case "How would you describe your mood recently?":
		return cycle.FactRecentMood
	case "Do you feel confident about your knowledge about your menstrual health":
		return cycle.FactHealthConfidence
	}
	return cycle.FactUnknown
}

// FactsFromPairs converts raw QA pairs into typed facts.
// Unrecognized questions map to cycle.FactUnknown and are ignored downstream.
func FactsFromPairs(pairs []QAPair) []cycle.Fact {
	facts := make([]cycle.Fact, 0, len(pairs))
	for _, p := range pairs {
		facts = append(facts, cycle.Fact{
			Kind:   factKind(p.Question),
			Answer: p.Answer,
		})
	}
	return facts
}
