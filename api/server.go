package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/wricardo/circuit-lab/circuit/engine"
	"github.com/wricardo/circuit-lab/circuit/service"
	"github.com/wricardo/circuit-lab/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.CircuitService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(circuitService service.CircuitService, hub *websocket.Hub) *Server {
	s := &Server{
		service: circuitService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// API routes with clean REST patterns
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Circuit operations
	api.HandleFunc("/sessions/{id}/state", s.handleGetCircuitState).Methods("GET")
	api.HandleFunc("/sessions/{id}/components", s.handlePlaceComponent).Methods("POST")
	api.HandleFunc("/sessions/{id}/components/{componentId}/move", s.handleMoveComponent).Methods("POST")
	api.HandleFunc("/sessions/{id}/components/{componentId}/toggle", s.handleToggleSwitch).Methods("POST")
	api.HandleFunc("/sessions/{id}/components/{componentId}", s.handleRemoveComponent).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/wires", s.handleConnectTerminals).Methods("POST")
	api.HandleFunc("/sessions/{id}/wires/{wireId}", s.handleDisconnectWire).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/hit-terminal", s.handleHitTerminal).Methods("GET")
	api.HandleFunc("/sessions/{id}/challenges", s.handleGetChallenges).Methods("GET")
	api.HandleFunc("/sessions/{id}/challenges/{challengeId}/solve", s.handleSolveChallenge).Methods("POST")
	api.HandleFunc("/sessions/{id}/reset", s.handleReset).Methods("POST")
	api.HandleFunc("/sessions/{id}/history", s.handleGetHistory).Methods("GET")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"` // Deprecated, use config_id
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	// Support both new and old parameter names, but prefer config_id
	configID := req.ConfigID
	if configID == "" && req.ConfigName != "" {
		configID = req.ConfigName
	}

	session, err := s.service.CreateSession(r.Context(), configID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of sessions to return

	// Set defaults
	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	// Sort sessions
	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else { // "accessed"
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj) // desc
	})

	// Apply limit if specified
	limit := len(sessions)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			limit = l
		}
	}
	sessions = sessions[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    len(sessions),
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	session, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	err := s.service.DeleteSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Circuit Operation Handlers

func (s *Server) handleGetCircuitState(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	state, err := s.service.GetCircuitState(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handlePlaceComponent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	var req struct {
		Type string  `json:"type"`
		X    float64 `json:"x"`
		Y    float64 `json:"y"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.PlaceComponent(r.Context(), sessionID, engine.ComponentType(req.Type), req.X, req.Y)
	if err != nil {
		respondError(w, statusForMutationError(err), err.Error())
		return
	}

	s.broadcast(sessionID, result.CircuitState)

	// Compact server log for observability
	if result.Component != nil {
		fmt.Printf("[PLACE] session=%s type=%s id=%d at=(%g,%g)\n",
			sessionID, result.Component.Type, result.Component.ID, result.Component.X, result.Component.Y)
	}

	respondJSON(w, http.StatusCreated, result)
}

func (s *Server) handleMoveComponent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	componentID, err := strconv.Atoi(vars["componentId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid component id")
		return
	}

	var req struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.MoveComponent(r.Context(), sessionID, componentID, req.X, req.Y)
	if err != nil {
		respondError(w, statusForMutationError(err), err.Error())
		return
	}

	s.broadcast(sessionID, result.CircuitState)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleToggleSwitch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	componentID, err := strconv.Atoi(vars["componentId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid component id")
		return
	}

	result, err := s.service.ToggleSwitch(r.Context(), sessionID, componentID)
	if err != nil {
		respondError(w, statusForMutationError(err), err.Error())
		return
	}

	s.broadcast(sessionID, result.CircuitState)

	fmt.Printf("[TOGGLE] session=%s id=%d powered=%v\n",
		sessionID, componentID, result.CircuitState.Powered)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRemoveComponent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	componentID, err := strconv.Atoi(vars["componentId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid component id")
		return
	}

	result, err := s.service.RemoveComponent(r.Context(), sessionID, componentID)
	if err != nil {
		respondError(w, statusForMutationError(err), err.Error())
		return
	}

	s.broadcast(sessionID, result.CircuitState)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleConnectTerminals(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	var req struct {
		From engine.TerminalRef `json:"from"`
		To   engine.TerminalRef `json:"to"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.ConnectTerminals(r.Context(), sessionID, req.From, req.To)
	if err != nil {
		respondError(w, statusForMutationError(err), err.Error())
		return
	}

	s.broadcast(sessionID, result.CircuitState)

	// Compact server log for observability
	if result.Wire != nil {
		fmt.Printf("[WIRE] session=%s id=%d %d.%s<->%d.%s powered=%v\n",
			sessionID, result.Wire.ID,
			result.Wire.From.ComponentID, result.Wire.From.Terminal,
			result.Wire.To.ComponentID, result.Wire.To.Terminal,
			result.CircuitState.Powered)
	}

	respondJSON(w, http.StatusCreated, result)
}

func (s *Server) handleDisconnectWire(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	wireID, err := strconv.Atoi(vars["wireId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid wire id")
		return
	}

	result, err := s.service.DisconnectWire(r.Context(), sessionID, wireID)
	if err != nil {
		respondError(w, statusForMutationError(err), err.Error())
		return
	}

	s.broadcast(sessionID, result.CircuitState)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleHitTerminal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	query := r.URL.Query()
	x, errX := strconv.ParseFloat(query.Get("x"), 64)
	y, errY := strconv.ParseFloat(query.Get("y"), 64)
	if errX != nil || errY != nil {
		respondError(w, http.StatusBadRequest, "x and y query parameters are required")
		return
	}

	result, err := s.service.HitTerminal(r.Context(), sessionID, x, y)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetChallenges(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	challenges, err := s.service.GetChallenges(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, challenges)
}

func (s *Server) handleSolveChallenge(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]
	challengeID := vars["challengeId"]

	result, err := s.service.SolveChallenge(r.Context(), sessionID, challengeID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	fmt.Printf("[SOLVE] session=%s challenge=%s solvable=%t tried=%d\n",
		sessionID, challengeID, result.Solvable, result.Tried)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	state, err := s.service.Reset(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcast(sessionID, state)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Circuit reset successfully",
		"state":   state,
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	// Parse query parameters
	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetActionHistory(r.Context(), sessionID, opts)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	configName := vars["name"]

	// Remove .json extension if present
	configName = strings.TrimSuffix(configName, ".json")

	config, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	// Decode directly into engine.LabConfig which has the correct structure
	var labConfig engine.LabConfig

	if err := json.NewDecoder(r.Body).Decode(&labConfig); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validate required fields
	if labConfig.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	// Save configuration
	if err := s.service.SaveConfig(r.Context(), labConfig.Name, &labConfig); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": labConfig.Name,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	// Verify session exists
	_, err := s.service.GetSession(context.Background(), sessionID)
	if err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	// Upgrade to WebSocket
	s.hub.ServeWS(w, r, sessionID)
}

// broadcast pushes a state snapshot to WebSocket clients of the session
func (s *Server) broadcast(sessionID string, state *engine.CircuitState) {
	if s.hub != nil && state != nil {
		s.hub.BroadcastToSession(sessionID, state)
	}
}

// statusForMutationError maps engine sentinel errors to HTTP status codes
func statusForMutationError(err error) int {
	switch {
	case isAny(err, engine.ErrComponentNotFound, engine.ErrWireNotFound):
		return http.StatusNotFound
	case isAny(err, engine.ErrDuplicateWire, engine.ErrSelfLoop):
		return http.StatusConflict
	case isAny(err, engine.ErrUnknownComponentType, engine.ErrInvalidTerminal,
		engine.ErrNotASwitch, engine.ErrPaletteExhausted):
		return http.StatusBadRequest
	case strings.Contains(err.Error(), "session not found"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func isAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
