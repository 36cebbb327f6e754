package journal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bloom-wellness-backend/internal/auth"
	"bloom-wellness-backend/internal/emotion"
)

// Classifier is the emotion-analysis collaborator contract.
type Classifier interface {
	Analyze(ctx context.Context, text string) (emotion.Analysis, error)
}

type Handler struct {
	Store      *Store
	Classifier Classifier
}

func NewHandler(store *Store, classifier Classifier) *Handler {
	return &Handler{Store: store, Classifier: classifier}
}

// Collection handles /journals: GET lists the caller's entries with
// skip/limit pagination, POST creates one.
func (h *Handler) Collection(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		skip := queryInt(r, "skip", 0)
		limit := queryInt(r, "limit", 100)
		if limit > 100 {
			limit = 100
		}

		journals, err := h.Store.ListByEmail(r.Context(), email, skip, limit)
		if err != nil {
			writeError(w, err)
			return
		}
		if journals == nil {
			journals = []Journal{}
		}
		_ = json.NewEncoder(w).Encode(journals)

	case http.MethodPost:
		var j Journal
		if err := json.NewDecoder(r.Body).Decode(&j); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if j.Title == "" {
			http.Error(w, "title is required", http.StatusBadRequest)
			return
		}
		j.ID = uuid.NewString()
		j.Email = email
		j.EmotionAnalysis = nil

		created, err := h.Store.Create(r.Context(), j)
		if err != nil {
			writeError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(created)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item handles /journals/{id}: GET, PATCH (partial edit), DELETE.
func (h *Handler) Item(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.EmailFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id := r.PathValue("id")
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		j, err := h.Store.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(j)

	case http.MethodPatch:
		var body struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			Date        *string `json:"date"`
			BgColor     *string `json:"bgColor"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		j, err := h.Store.Update(r.Context(), id, body.Title, body.Description, body.Date, body.BgColor)
		if err != nil {
			writeError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(j)

	case http.MethodDelete:
		if err := h.Store.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "journal deleted"})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// Analyze handles POST /journals/{id}/analyze: runs the emotion
// classifier over the entry's text and stores the result.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.EmailFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.PathValue("id")

	j, err := h.Store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	analysis, err := h.Classifier.Analyze(r.Context(), j.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.Store.SetEmotionAnalysis(r.Context(), id, EmotionAnalysis{
		Emotions:        analysis.Emotions,
		DominantEmotion: analysis.DominantEmotion,
		Timestamp:       analysis.Timestamp,
		EntryID:         uuid.NewString(),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(updated)
}

// AnalyzeText handles POST /sentiment/analyze: classifies a free-text
// block without touching stored entries.
func (h *Handler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if body.Content == "" {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	analysis, err := h.Classifier.Analyze(r.Context(), body.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "success",
		"analysis": analysis,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "journal not found", http.StatusNotFound)
	case errors.Is(err, emotion.ErrUnavailable):
		logrus.WithError(err).Error("emotion classifier failure")
		http.Error(w, "sentiment analysis unavailable", http.StatusBadGateway)
	default:
		logrus.WithError(err).Error("journal store failure")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
