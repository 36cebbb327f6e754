// Package journal persists journal entries and their emotion analyses.
package journal

import "time"

// EmotionAnalysis is a classifier result attached to a journal entry.
type EmotionAnalysis struct {
	Emotions        map[string]float64 `json:"emotions"`
	DominantEmotion string             `json:"dominant_emotion"`
	Timestamp       time.Time          `json:"timestamp"`
	EntryID         string             `json:"entry_id"`
}

type Journal struct {
	ID              string           `json:"id"`
	Email           string           `json:"email"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Date            string           `json:"date"` // MM-DD-YYYY
	BgColor         string           `json:"bgColor"`
	EmotionAnalysis *EmotionAnalysis `json:"emotion_analysis,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
