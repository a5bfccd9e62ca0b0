package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/shardwallet/shardwallet/internal/orchestrator/authn"
	"github.com/shardwallet/shardwallet/internal/orchestrator/db"
)

// Signup validates the request, hashes the password, and inserts a
// User row. A unique-constraint violation maps to 422 (spec.md section
// 7's "Duplicate username/email" row).
func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusUnprocessableEntity)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	hash, err := authn.HashPassword(req.Password)
	if err != nil {
		s.log.Errorf("hashing password: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	user := &db.User{Username: req.Username, PasswordHash: hash, Email: req.Email}
	if err := s.users.Create(r.Context(), user); err != nil {
		s.log.Warnf("signup conflict for %s: %v", req.Username, err)
		http.Error(w, "username or email already exists", http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login validates credentials and issues a bearer token.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusUnprocessableEntity)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	user, err := s.users.ByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		s.log.Errorf("looking up user %s: %v", req.Username, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if !authn.VerifyPassword(user.PasswordHash, req.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := s.issuer.Issue(user.ID, user.Username)
	if err != nil {
		s.log.Errorf("issuing token for %s: %v", req.Username, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Token string `json:"token"`
	}{Token: token})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
