package api

import "net/http"

// ReconcileStatus reports the orphan-share cleanup queue depth for
// shardctl's reconcile-status command (SPEC_FULL.md section B). It is
// deliberately unauthenticated, matching spec.md section 6.4's scope:
// operator tooling runs against the same trust boundary as the
// orchestrator process itself, not as an end-user API.
func (s *Server) ReconcileStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		PendingCount int `json:"pending_count"`
	}{PendingCount: s.reconcile.Len()})
}
