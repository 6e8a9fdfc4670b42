// Package api exposes an Engine over HTTP: GET endpoints read an agent's
// current state or event history, POST endpoints submit commands and
// advance simulated time. POST endpoints require a bearer token; GET
// endpoints are open for dashboards and bots polling state.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/laundroverse/simcore/internal/commands"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/engine"
	"github.com/laundroverse/simcore/internal/idgen"
)

// Server serves one Engine's agents over HTTP.
type Server struct {
	Eng      *engine.Engine
	Port     int
	AdminKey string // Bearer token required on POST endpoints. Empty disables them.
}

// Start begins serving the HTTP API in a goroutine. It does not block.
func (s *Server) Start() {
	commandLimiter := NewRateLimiter(60, time.Minute)
	advanceLimiter := NewRateLimiter(10, time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/agents/", s.handleAgentRoutes)
	mux.HandleFunc("/api/v1/agents", s.adminOnly(s.handleCreateAgent))
	mux.HandleFunc("/api/v1/commands", s.adminOnly(RateLimitMiddleware(commandLimiter, s.handleCommand)))
	mux.HandleFunc("/api/v1/advance", s.adminOnly(RateLimitMiddleware(advanceLimiter, s.handleAdvance)))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("simcore HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware allows browser dashboards on another origin to poll the
// read endpoints. Set CORS_ORIGINS to a comma-separated allowlist; with it
// unset, only localhost dev origins are permitted.
func corsMiddleware(next http.Handler) http.Handler {
	allowed := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowed[origin] = true
			}
		}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); allowed[origin] {
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

func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly requires a valid bearer token on POST requests. GET requests
// (status checks against a mutating route) pass through unauthenticated.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "mutating endpoints disabled (no admin key configured)", http.StatusForbidden)
				return
			}
			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

// handleAgentRoutes dispatches GET /api/v1/agents/:id/state and
// GET /api/v1/agents/:id/history.
func (s *Server) handleAgentRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/agents/")
	agentID, rest, _ := strings.Cut(path, "/")
	if agentID == "" {
		http.Error(w, "missing agent id", http.StatusBadRequest)
		return
	}

	switch rest {
	case "", "state":
		s.handleAgentState(w, r, agentID)
	case "history":
		s.handleAgentHistory(w, r, agentID)
	default:
		http.Error(w, "unknown agent route", http.StatusNotFound)
	}
}

func (s *Server) handleAgentState(w http.ResponseWriter, r *http.Request, agentID string) {
	st, err := s.Eng.GetCurrentState(r.Context(), agentID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, agentStateView(st))
}

func (s *Server) handleAgentHistory(w http.ResponseWriter, r *http.Request, agentID string) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	stream, err := s.Eng.GetHistory(r.Context(), agentID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if limit > 0 && len(stream) > limit {
		stream = stream[len(stream)-limit:]
	}
	writeJSON(w, map[string]any{"agent_id": agentID, "events": stream, "count": len(stream)})
}

type createAgentRequest struct {
	AgentID     string  `json:"agent_id"`
	InitialCash float64 `json:"initial_cash"`
}

func (s *Server) handleCreateAgent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req createAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.AgentID == "" {
		http.Error(w, "agent_id required", http.StatusBadRequest)
		return
	}
	st, err := s.Eng.CreateAgent(r.Context(), req.AgentID, req.InitialCash)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, agentStateView(st))
}

type commandRequest struct {
	AgentID string `json:"agent_id"`
	Kind    string `json:"kind"`
	Payload any    `json:"payload"`
}

// handleCommand decodes one command envelope and runs it through the
// engine's full validate-dispatch-apply-mirror pipeline.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.AgentID == "" || req.Kind == "" {
		http.Error(w, "agent_id and kind required", http.StatusBadRequest)
		return
	}

	payload, err := decodeCommandPayload(commands.Kind(req.Kind), req.Payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cmd := commands.Command{
		CommandID: idgen.NewCommandID(),
		Kind:      commands.Kind(req.Kind),
		AgentID:   req.AgentID,
		Payload:   payload,
	}

	produced, st, err := s.Eng.ExecuteCommand(r.Context(), cmd)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"command_id": cmd.CommandID,
		"events":     produced,
		"state":      agentStateView(st),
	})
}

type advanceRequest struct {
	AgentID string `json:"agent_id"`
	Days    int    `json:"days"`
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.AgentID == "" || req.Days <= 0 {
		http.Error(w, "agent_id required and days must be positive", http.StatusBadRequest)
		return
	}
	st, err := s.Eng.AdvanceTime(r.Context(), req.AgentID, req.Days)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, agentStateView(st))
}

// agentStateViewResponse adds a couple of human-readable fields alongside
// the raw numeric state, the way a dashboard would want to render it.
type agentStateViewResponse struct {
	*domain.AgentState
	CashDisplay string `json:"cash_display"`
	AgeDisplay  string `json:"age_display"`
}

func agentStateView(st *domain.AgentState) agentStateViewResponse {
	weeks := st.CurrentWeek
	return agentStateViewResponse{
		AgentState:  st,
		CashDisplay: "$" + humanize.Commaf(st.CashBalance),
		AgeDisplay:  english.Plural(weeks, "week", "weeks"),
	}
}

// writeEngineError maps a domain-level error to an HTTP status. Caller-
// visible errors (bad command, insufficient funds, unknown entity) become
// 4xx; anything else is an internal failure.
func writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch err.(type) {
	case *domain.InsufficientFundsError, *domain.InvalidStateError, *domain.CreditError,
		*domain.ContractViolationError:
		status = http.StatusBadRequest
	case *domain.LocationNotFoundError, *domain.MachineNotFoundError,
		*domain.VendorNotFoundError, *domain.StaffNotFoundError:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		slog.Error("engine request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}

// decodeCommandPayload re-marshals the raw JSON payload into the concrete
// struct registered for kind, so handlers see the same typed payloads
// whether a command arrived over HTTP or was constructed in Go directly.
func decodeCommandPayload(kind commands.Kind, raw any) (any, error) {
	blob, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	zero, ok := newPayload(kind)
	if !ok {
		return nil, fmt.Errorf("unknown command kind %q", kind)
	}
	if err := json.Unmarshal(blob, zero); err != nil {
		return nil, fmt.Errorf("decode payload for %q: %w", kind, err)
	}
	return reflect.ValueOf(zero).Elem().Interface(), nil
}
