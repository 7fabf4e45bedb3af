// Package api provides the HTTP API over a running simulation.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (admin control plane).
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/talverin/tradewinds/internal/archipelago"
	"github.com/talverin/tradewinds/internal/engine"
	"github.com/talverin/tradewinds/internal/persistence"
)

// maxBatchSeasons caps one admin batch request.
const maxBatchSeasons = 500

// Server serves the trade network over HTTP. The simulation itself is
// not synchronized, so every access goes through mu: read handlers take
// the read lock, season runs and resets take the write lock.
type Server struct {
	Sim      *engine.Simulation
	DB       *persistence.DB // Optional archive. Nil = no archiving.
	Hub      *Hub            // Optional live feed. Nil = no websocket endpoint.
	Scenario string          // Scenario name recorded with archive runs.
	RunID    string          // Current archive run. Empty = not archiving.
	AdminKey string          // Bearer token for POST endpoints. Empty = POST disabled.

	mu sync.RWMutex
}

// Handler returns the route table wrapped in the CORS middleware. The
// caller owns the http.Server lifecycle.
func (s *Server) Handler() http.Handler {
	adminLimiter := NewRateLimiter(60, time.Minute)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only — anyone can watch the network).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/islands", s.handleIslands)
	mux.HandleFunc("/api/v1/islands/", s.handleIslandDetail)
	mux.HandleFunc("/api/v1/routes", s.handleRoutes)
	mux.HandleFunc("/api/v1/seasons", s.handleSeasons)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/stats", s.handleStats)

	// Websocket live feed.
	mux.HandleFunc("/api/v1/live", s.handleLive)

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/admin/season", RateLimitMiddleware(adminLimiter, s.adminOnly(s.handleAdminSeason)))
	mux.HandleFunc("/api/v1/admin/batch", RateLimitMiddleware(adminLimiter, s.adminOnly(s.handleAdminBatch)))
	mux.HandleFunc("/api/v1/admin/reset", RateLimitMiddleware(adminLimiter, s.adminOnly(s.handleAdminReset)))

	return corsMiddleware(mux)
}

// RunSeason runs one season under the write lock, archives the result
// when an archive run is open, and feeds the live hub. The season
// ticker and the admin endpoint both mutate through this one path.
func (s *Server) RunSeason() (engine.SeasonResult, error) {
	s.mu.Lock()
	result, err := s.Sim.RunSeason()
	runID := s.RunID
	s.mu.Unlock()
	if err != nil {
		return engine.SeasonResult{}, err
	}

	// Archive failures are logged, not surfaced: the archive is an
	// audit trail and must never stall the season loop.
	if s.DB != nil && runID != "" {
		if err := s.DB.SaveSeason(runID, result); err != nil {
			slog.Error("season archive failed", "error", err, "season", result.Season)
		}
	}
	if s.Hub != nil {
		s.Hub.Broadcast("season", result)
	}
	return result, nil
}

// CloseRun writes a final island snapshot to the open archive run.
// No-op when archiving is off. Waits out any in-flight season.
func (s *Server) CloseRun() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.DB == nil || s.RunID == "" {
		return
	}
	if err := s.DB.SaveIslandStats(s.RunID, s.Sim.NetworkStats().Islands); err != nil {
		slog.Error("final snapshot failed", "error", err, "run", s.RunID)
	}
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS env var to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require POST with the admin bearer token.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no TRADEWINDS_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	status := map[string]any{
		"name":           "Tradewinds",
		"run_id":         s.RunID,
		"seed":           s.Sim.Seed(),
		"cycle":          s.Sim.Cycle(),
		"monsoon":        s.Sim.Wind().String(),
		"seasons":        s.Sim.SeasonCount(),
		"islands":        s.Sim.IslandCount(),
		"routes":         s.Sim.RouteCount(),
		"trade_total":    s.Sim.TradeTotal(),
		"cultural_total": s.Sim.CulturalTotal(),
	}
	s.mu.RUnlock()
	writeJSON(w, status)
}

func (s *Server) handleIslands(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	stats := s.Sim.NetworkStats()
	s.mu.RUnlock()
	writeJSON(w, stats.Islands)
}

func (s *Server) handleIslandDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/islands/")
	if id == "" {
		http.Error(w, "missing island id", http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	stats := s.Sim.NetworkStats()
	s.mu.RUnlock()

	for _, entry := range stats.Islands {
		if entry.ID == archipelago.IslandID(id) {
			writeJSON(w, entry)
			return
		}
	}
	http.Error(w, "island not found", http.StatusNotFound)
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	routes := s.Sim.Routes()
	s.mu.RUnlock()
	writeJSON(w, routes)
}

func (s *Server) handleSeasons(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	history := s.Sim.History()
	s.mu.RUnlock()

	// Optional ?limit= returns only the most recent seasons.
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n < len(history) {
			history = history[len(history)-n:]
		}
	}
	writeJSON(w, history)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	s.mu.RLock()
	events := s.Sim.Events(limit)
	s.mu.RUnlock()
	writeJSON(w, events)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	stats := s.Sim.NetworkStats()
	s.mu.RUnlock()
	writeJSON(w, stats)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	if s.Hub == nil {
		http.Error(w, "live feed not running", http.StatusServiceUnavailable)
		return
	}
	s.Hub.ServeWs(w, r)
}

func (s *Server) handleAdminSeason(w http.ResponseWriter, r *http.Request) {
	result, err := s.RunSeason()
	if err != nil {
		if errors.Is(err, engine.ErrTooFewIslands) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		slog.Error("admin season failed", "error", err)
		http.Error(w, "season failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleAdminBatch(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("n"))
	if err != nil || n <= 0 {
		http.Error(w, "n must be a positive integer", http.StatusBadRequest)
		return
	}
	if n > maxBatchSeasons {
		http.Error(w, "max 500 seasons per batch", http.StatusBadRequest)
		return
	}

	results := make([]engine.SeasonResult, 0, n)
	for i := 0; i < n; i++ {
		result, err := s.RunSeason()
		if err != nil {
			if errors.Is(err, engine.ErrTooFewIslands) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			slog.Error("admin batch failed", "error", err, "completed", i)
			http.Error(w, "batch failed", http.StatusInternalServerError)
			return
		}
		results = append(results, result)
	}
	writeJSON(w, results)
}

// handleAdminReset clears all emergent state. The outgoing archive run
// is closed with a final island snapshot and a fresh run is opened, so
// season numbering stays unique per run.
func (s *Server) handleAdminReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.DB != nil && s.RunID != "" {
		if err := s.DB.SaveIslandStats(s.RunID, s.Sim.NetworkStats().Islands); err != nil {
			slog.Error("final snapshot failed", "error", err, "run", s.RunID)
		}
	}

	s.Sim.Reset()

	if s.DB != nil {
		id, err := s.DB.BeginRun(s.Sim.Seed(), s.Scenario)
		if err != nil {
			slog.Error("new archive run failed", "error", err)
			s.RunID = ""
		} else {
			s.RunID = id
		}
	}
	runID := s.RunID
	s.mu.Unlock()

	if s.Hub != nil {
		s.Hub.Broadcast("reset", nil)
	}
	writeJSON(w, map[string]any{
		"message": "network reset",
		"run_id":  runID,
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
