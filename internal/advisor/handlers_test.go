package advisor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromoteDropsCategoryAndReason(t *testing.T) {
	event := promote(SuggestedEvent{
		ID:     "sugg_7f3a",
		Title:  "Morning yoga",
		Start:  "2024-05-16 07:00",
		End:    "2024-05-16 07:45",
		Color:  "#4CAF50",
		Type:   "wellness",
		Reason: "gentle movement suits the luteal phase",
	})

	assert.Equal(t, "Morning yoga", event.Title)
	assert.Equal(t, "2024-05-16 07:00", event.Start)
	assert.Equal(t, "2024-05-16 07:45", event.End)
	assert.Equal(t, "#4CAF50", event.Color)

	assert.NotEmpty(t, event.ID)
	assert.NotEqual(t, "sugg_7f3a", event.ID)
	assert.False(t, strings.HasPrefix(event.ID, "sugg_"))
}

func TestPromoteFillsColorFromType(t *testing.T) {
	event := promote(SuggestedEvent{
		Title: "Deep work block",
		Start: "2024-05-16 09:00",
		End:   "2024-05-16 11:00",
		Type:  "productivity",
	})
	assert.Equal(t, "#2196F3", event.Color)
}

func TestPromoteAssignsFreshIDs(t *testing.T) {
	s := SuggestedEvent{Title: "Walk", Start: "a", End: "b"}
	assert.NotEqual(t, promote(s).ID, promote(s).ID)
}
