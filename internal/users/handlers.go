package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"bloom-wellness-backend/internal/authctx"
)

type Handler struct {
	Store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// Me handles /users/me: GET returns the profile, PUT replaces it,
// DELETE removes the account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	email, ok := authctx.EmailFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		u, err := h.Store.Get(r.Context(), email)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(u)

	case http.MethodPut:
		var u User
		if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		u.Email = email
		if err := h.Store.Update(r.Context(), u); err != nil {
			writeStoreError(w, err)
			return
		}
		updated, err := h.Store.Get(r.Context(), email)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(updated)

	case http.MethodDelete:
		if err := h.Store.Delete(r.Context(), email); err != nil {
			writeStoreError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "user deleted"})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// Facts handles /users/me/facts: GET lists the QA pairs, PUT replaces them.
func (h *Handler) Facts(w http.ResponseWriter, r *http.Request) {
	email, ok := authctx.EmailFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		pairs, err := h.Store.ListQAPairs(r.Context(), email)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if pairs == nil {
			pairs = []QAPair{}
		}
		_ = json.NewEncoder(w).Encode(pairs)

	case http.MethodPut:
		var pairs []QAPair
		if err := json.NewDecoder(r.Body).Decode(&pairs); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := h.Store.ReplaceQAPairs(r.Context(), email, pairs); err != nil {
			writeStoreError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(pairs)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// Events handles GET /users/me/events.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	email, ok := authctx.EmailFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	events, err := h.Store.ListEvents(r.Context(), email)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if events == nil {
		events = []Event{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	logrus.WithError(err).Error("user store failure")
	http.Error(w, "internal error", http.StatusInternalServerError)
}
