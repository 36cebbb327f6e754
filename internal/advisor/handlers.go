package advisor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bloom-wellness-backend/internal/ai"
	"bloom-wellness-backend/internal/auth"
	"bloom-wellness-backend/internal/users"
)

var errUnauthorized = errors.New("unauthorized")

type Handler struct {
	Service *Service
	Users   *users.Store
}

func NewHandler(service *Service, userStore *users.Store) *Handler {
	return &Handler{Service: service, Users: userStore}
}

// profileFor assembles the generation input for the authenticated user.
func (h *Handler) profileFor(r *http.Request) (Profile, error) {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		return Profile{}, errUnauthorized
	}

	u, err := h.Users.Get(r.Context(), email)
	if err != nil {
		return Profile{}, err
	}
	facts, err := h.Users.Facts(r.Context(), email)
	if err != nil {
		return Profile{}, err
	}
	events, err := h.Users.ListEvents(r.Context(), email)
	if err != nil {
		return Profile{}, err
	}

	existing := make([]ExistingEvent, 0, len(events))
	for _, e := range events {
		existing = append(existing, ExistingEvent{Title: e.Title, Start: e.Start, End: e.End})
	}

	return Profile{
		Age:        u.Age,
		Profession: u.Profession,
		Interests:  u.Interests,
		Events:     existing,
		Facts:      facts,
	}, nil
}

// Phase handles GET /menstrual-health/phase.
func (h *Handler) Phase(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	facts, err := h.Users.Facts(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.Service.CalculatePhase(facts))
}

// Recommendations handles GET /menstrual-health/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	profile, err := h.profileFor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := h.Service.GetRecommendations(r.Context(), profile)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rec)
}

// Suggestions handles GET /events/suggestions.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	profile, err := h.profileFor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	suggestions, err := h.Service.GetSuggestedEvents(r.Context(), profile)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(suggestions)
}

// Accept handles POST /events/accept: promotes a suggestion into a plain
// calendar event. The category and reason are dropped and the event gets
// a fresh identity; the suggestion itself is never stored.
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var suggestion SuggestedEvent
	if err := json.NewDecoder(r.Body).Decode(&suggestion); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if suggestion.Title == "" || suggestion.Start == "" || suggestion.End == "" {
		http.Error(w, "title, start and end are required", http.StatusBadRequest)
		return
	}

	event := promote(suggestion)
	if err := h.Users.AppendEvent(r.Context(), email, event); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(event)
}

// promote turns an accepted suggestion into a plain calendar event.
func promote(s SuggestedEvent) users.Event {
	color := s.Color
	if color == "" {
		color = ColorFor(s.Type)
	}
	return users.Event{
		ID:    uuid.NewString(),
		Title: s.Title,
		Start: s.Start,
		End:   s.End,
		Color: color,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, users.ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, ErrInsufficientData):
		http.Error(w, "insufficient menstrual data", http.StatusBadRequest)
	case errors.Is(err, ErrBadReply), errors.Is(err, ai.ErrUnavailable):
		http.Error(w, "generation service failed", http.StatusBadGateway)
	default:
		logrus.WithError(err).Error("advisor failure")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
