package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/shardwallet/shardwallet/internal/orchestrator/authn"
)

// GetUser returns the requested user if the caller is asking about
// themselves (spec.md section 8 scenario 1: "GET /api/users/<id> with
// token -> 200").
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := authn.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusUnprocessableEntity)
		return
	}
	if id != claims.UserID {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	user, err := s.users.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		s.log.Errorf("looking up user %d: %v", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
