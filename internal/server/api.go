package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/palemoky/blackjack/internal/game/room"
)

// maxLeaderboardLimit 排行榜单次最多返回条数
const maxLeaderboardLimit = 100

// handleRoomList GET /api/rooms
func (s *Server) handleRoomList(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.roomManager.GetRoomList())
}

// handleRoomSnapshot GET /api/rooms/{room}：最近一次结算后的快照
func (s *Server) handleRoomSnapshot(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["room"]
	if !room.ValidName(name) {
		http.Error(w, "Invalid room name", http.StatusBadRequest)
		return
	}
	if s.redisStore == nil {
		http.Error(w, "Snapshots disabled", http.StatusNotImplemented)
		return
	}

	data, err := s.redisStore.LoadRoom(r.Context(), name)
	if err != nil {
		s.logger.Error("load room failed", "room", name, "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, http.StatusOK, data)
}

// handleStats GET /api/stats/{name}
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.redisStore == nil {
		http.Error(w, "Stats disabled", http.StatusNotImplemented)
		return
	}

	name := mux.Vars(r)["name"]
	stats, err := s.redisStore.GetStats(r.Context(), name)
	if err != nil {
		s.logger.Error("get stats failed", "name", name, "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if stats == nil {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// handleLeaderboard GET /api/leaderboard?limit=N
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.redisStore == nil {
		http.Error(w, "Stats disabled", http.StatusNotImplemented)
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxLeaderboardLimit)
	}

	entries, err := s.redisStore.GetLeaderboard(r.Context(), limit)
	if err != nil {
		s.logger.Error("get leaderboard failed", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response failed", "err", err)
	}
}
