package canvas

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"bloom-wellness-backend/internal/auth"
	"bloom-wellness-backend/internal/users"
)

type Handler struct {
	Client *Client
	Users  *users.Store
}

func NewHandler(client *Client, userStore *users.Store) *Handler {
	return &Handler{Client: client, Users: userStore}
}

// Assignments handles GET /canvas/assignments for the authenticated user.
func (h *Handler) Assignments(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	u, err := h.Users.Get(r.Context(), email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if u.CanvasToken == "" {
		http.Error(w, "no canvas token on profile", http.StatusBadRequest)
		return
	}

	assignments, err := h.Client.Assignments(r.Context(), u.CanvasToken)
	if err != nil {
		logrus.WithError(err).Error("canvas fetch failure")
		http.Error(w, "canvas unavailable", http.StatusBadGateway)
		return
	}
	if assignments == nil {
		assignments = []Assignment{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(assignments)
}
