// Package auth implements registration, login and token middleware.
package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"bloom-wellness-backend/internal/users"
)

type Handler struct {
	Store    *users.Store
	Secret   []byte
	TokenTTL time.Duration
}

type signUpRequest struct {
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Age        int      `json:"age"`
	Profession string   `json:"profession"`
	University string   `json:"university"`
	Skills     []string `json:"skills"`
	Interests  []string `json:"interests"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Email == "" || len(req.Password) < 8 {
		http.Error(w, "email and a password of at least 8 characters are required", http.StatusBadRequest)
		return
	}

	if _, err := h.Store.Get(r.Context(), req.Email); err == nil {
		http.Error(w, "email already exists", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	u := users.User{
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Age:        req.Age,
		Profession: req.Profession,
		University: req.University,
		Skills:     req.Skills,
		Interests:  req.Interests,
	}
	if err := h.Store.Create(r.Context(), u, string(hash)); err != nil {
		logrus.WithError(err).Error("failed to create user")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	token, err := GenerateToken(h.Secret, req.Email, h.TokenTTL)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(tokenResponse{Token: token})
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	hash, err := h.Store.PasswordHash(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			http.Error(w, "invalid credentials", http.StatusForbidden)
			return
		}
		logrus.WithError(err).Error("failed to load credentials")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusForbidden)
		return
	}

	token, err := GenerateToken(h.Secret, req.Email, h.TokenTTL)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(tokenResponse{Token: token})
}
