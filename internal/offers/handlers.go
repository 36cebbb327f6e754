package offers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bloom-wellness-backend/internal/auth"
)

type Handler struct {
	Store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

type createRequest struct {
	Title     string `json:"title"`
	Detail    string `json:"detail"`
	Skill     string `json:"skill"`
	PointCost int    `json:"pointCost"`
	Duration  int    `json:"duration"`
}

func (r createRequest) validate() string {
	switch {
	case r.Title == "" || len(r.Title) > 100:
		return "title must be 1-100 characters"
	case r.Detail == "" || len(r.Detail) > 1000:
		return "detail must be 1-1000 characters"
	case r.Skill == "" || len(r.Skill) > 50:
		return "skill must be 1-50 characters"
	case r.PointCost <= 0:
		return "pointCost must be positive"
	case r.Duration <= 0:
		return "duration must be positive"
	}
	return ""
}

// Collection handles /offers: GET lists all offers, POST creates one.
func (h *Handler) Collection(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		offers, err := h.Store.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if offers == nil {
			offers = []Offer{}
		}
		_ = json.NewEncoder(w).Encode(offers)

	case http.MethodPost:
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if msg := req.validate(); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		created, err := h.Store.Create(r.Context(), Offer{
			ID:        uuid.NewString(),
			Email:     email,
			Title:     req.Title,
			Detail:    req.Detail,
			Skill:     req.Skill,
			PointCost: req.PointCost,
			Duration:  req.Duration,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(created)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item handles /offers/{id}: GET, PATCH (partial edit), DELETE.
func (h *Handler) Item(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.EmailFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id := r.PathValue("id")
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		o, err := h.Store.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(o)

	case http.MethodPatch:
		var body struct {
			Title     *string `json:"title"`
			Detail    *string `json:"detail"`
			Skill     *string `json:"skill"`
			PointCost *int    `json:"pointCost"`
			Duration  *int    `json:"duration"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := h.Store.Update(r.Context(), id, body.Title, body.Detail, body.Skill, body.PointCost, body.Duration)
		if err != nil {
			writeError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(o)

	case http.MethodDelete:
		if err := h.Store.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "offer deleted"})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "offer not found", http.StatusNotFound)
		return
	}
	logrus.WithError(err).Error("offer store failure")
	http.Error(w, "internal error", http.StatusInternalServerError)
}
