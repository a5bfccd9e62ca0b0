// Package relay implements the standalone message-relay HTTP service:
// per-ceremony ordered append logs with live SSE fan-out and
// reconnect-safe catch-up (spec.md section 4.3).
package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/decred/slog"
	"github.com/gorilla/mux"
)

var errSubscriptionClosed = errors.New("relay: subscription closed")

// Server is the relay's HTTP handler, wired into a gorilla/mux router.
type Server struct {
	registry *Registry
	log      slog.Logger
}

// NewServer builds a relay HTTP handler backed by a fresh room registry.
func NewServer(log slog.Logger) *Server {
	return &Server{registry: NewRegistry(), log: log}
}

// Registry exposes the room registry for the operator CLI and tests.
func (s *Server) Registry() *Registry { return s.registry }

// Router builds the mux.Router exposing the three room endpoints of
// spec.md section 6.1.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/rooms/{room_id}/subscribe", s.handleSubscribe).Methods(http.MethodGet)
	r.HandleFunc("/rooms/{room_id}/broadcast", s.handleBroadcast).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{room_id}/issue_unique_idx", s.handleIssueUniqueIdx).Methods(http.MethodPost)
	r.HandleFunc("/internal/rooms", s.handleListRooms).Methods(http.MethodGet)
	return r
}

// roomSummary is what shardctl's relay-rooms command renders.
type roomSummary struct {
	RoomID      string `json:"room_id"`
	Messages    int    `json:"messages"`
	Subscribers int32  `json:"subscribers"`
}

func (s *Server) handleListRooms(w http.ResponseWriter, req *http.Request) {
	ids := s.registry.RoomIDs()
	summaries := make([]roomSummary, 0, len(ids))
	for _, id := range ids {
		room, ok := s.registry.Lookup(id)
		if !ok {
			continue
		}
		summaries = append(summaries, roomSummary{
			RoomID:      id,
			Messages:    room.Len(),
			Subscribers: room.SubscriberCount(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}

func (s *Server) handleSubscribe(w http.ResponseWriter, req *http.Request) {
	roomID := mux.Vars(req)["room_id"]
	room := s.registry.GetOrCreate(roomID)

	var from uint32
	if last := req.Header.Get("Last-Event-ID"); last != "" {
		v, err := strconv.ParseUint(last, 10, 16)
		if err != nil {
			http.Error(w, "invalid Last-Event-ID", http.StatusBadRequest)
			return
		}
		from = uint32(v) + 1
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Retry", "5000")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := room.Subscribe(from)
	defer sub.Close()

	s.log.Debugf("subscribe room=%s from=%d", roomID, from)

	for {
		ids, bodies, err := sub.Next(req.Context().Done())
		if err != nil {
			return
		}
		for i, id := range ids {
			fmt.Fprintf(w, "event: new-message\nid: %d\ndata: %s\n\n", id, bodies[i])
		}
		flusher.Flush()
	}
}

func (s *Server) handleBroadcast(w http.ResponseWriter, req *http.Request) {
	roomID := mux.Vars(req)["room_id"]
	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "reading body", http.StatusBadRequest)
		return
	}
	room := s.registry.GetOrCreate(roomID)
	idx := room.Broadcast(body)
	s.log.Debugf("broadcast room=%s idx=%d len=%d", roomID, idx, len(body))
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleIssueUniqueIdx(w http.ResponseWriter, req *http.Request) {
	roomID := mux.Vars(req)["room_id"]
	room := s.registry.GetOrCreate(roomID)
	idx := room.IssueUniqueIdx()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		UniqueIdx uint32 `json:"unique_idx"`
	}{UniqueIdx: idx})
}
