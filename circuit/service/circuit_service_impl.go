package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/circuit-lab/circuit/engine"
	"github.com/wricardo/circuit-lab/circuit/solver"
)

// circuitServiceImpl implements the CircuitService interface
type circuitServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewCircuitService creates a new circuit service instance
func NewCircuitService(sessions SessionManager, configs ConfigManager) CircuitService {
	return &circuitServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *circuitServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new lab session
func (s *circuitServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.LabConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Determine the config identifier to return - prefer the input configName if provided,
	// otherwise look up the config_id by display name
	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID, // Return the config_id, not the display name
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		CircuitState:   session.Engine.GetState(),
		LabConfig:      session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *circuitServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name), // Return config_id consistently
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		CircuitState:   session.Engine.GetState(),
		LabConfig:      session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *circuitServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name), // Return config_id consistently
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			CircuitState:   sess.Engine.GetState(),
			LabConfig:      sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *circuitServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// PlaceComponent places a new component for a session
func (s *circuitServiceImpl) PlaceComponent(ctx context.Context, sessionID string, t engine.ComponentType, x, y float64) (*MutationResult, error) {
	return s.mutate(sessionID, func(sess *Session, result *MutationResult) error {
		c, err := sess.Engine.PlaceComponent(t, x, y)
		if err != nil {
			return err
		}
		result.Component = c
		result.Message = fmt.Sprintf("Placed %s at (%g,%g)", c.Type, c.X, c.Y)
		return nil
	})
}

// MoveComponent moves an existing component for a session
func (s *circuitServiceImpl) MoveComponent(ctx context.Context, sessionID string, id int, x, y float64) (*MutationResult, error) {
	return s.mutate(sessionID, func(sess *Session, result *MutationResult) error {
		if err := sess.Engine.MoveComponent(id, x, y); err != nil {
			return err
		}
		result.Message = fmt.Sprintf("Moved component #%d", id)
		return nil
	})
}

// ToggleSwitch flips a switch for a session
func (s *circuitServiceImpl) ToggleSwitch(ctx context.Context, sessionID string, id int) (*MutationResult, error) {
	return s.mutate(sessionID, func(sess *Session, result *MutationResult) error {
		closed, err := sess.Engine.ToggleSwitch(id)
		if err != nil {
			return err
		}
		if closed {
			result.Message = fmt.Sprintf("Switch #%d closed", id)
		} else {
			result.Message = fmt.Sprintf("Switch #%d opened", id)
		}
		return nil
	})
}

// ConnectTerminals adds a wire between two terminals for a session
func (s *circuitServiceImpl) ConnectTerminals(ctx context.Context, sessionID string, from, to engine.TerminalRef) (*MutationResult, error) {
	return s.mutate(sessionID, func(sess *Session, result *MutationResult) error {
		w, err := sess.Engine.ConnectTerminals(from, to)
		if err != nil {
			return err
		}
		result.Wire = w
		result.Message = fmt.Sprintf("Connected wire #%d", w.ID)
		return nil
	})
}

// DisconnectWire removes a wire for a session
func (s *circuitServiceImpl) DisconnectWire(ctx context.Context, sessionID string, wireID int) (*MutationResult, error) {
	return s.mutate(sessionID, func(sess *Session, result *MutationResult) error {
		if err := sess.Engine.DisconnectWire(wireID); err != nil {
			return err
		}
		result.Message = fmt.Sprintf("Disconnected wire #%d", wireID)
		return nil
	})
}

// RemoveComponent removes a component (and its wires) for a session
func (s *circuitServiceImpl) RemoveComponent(ctx context.Context, sessionID string, id int) (*MutationResult, error) {
	return s.mutate(sessionID, func(sess *Session, result *MutationResult) error {
		if err := sess.Engine.RemoveComponent(id); err != nil {
			return err
		}
		result.Message = fmt.Sprintf("Removed component #%d", id)
		return nil
	})
}

// mutate runs one engine mutation under the write lock: it snapshots the
// powered set and challenge statuses before the change, applies it, and
// derives events from the difference. The session is persisted afterwards.
func (s *circuitServiceImpl) mutate(sessionID string, op func(*Session, *MutationResult) error) (*MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	prevPowered := poweredSet(sess.Engine.Powered())
	prevChallenges := sess.Engine.EvaluateChallenges()

	result := &MutationResult{Success: true, Events: []LabEvent{}}
	if err := op(sess, result); err != nil {
		return nil, err
	}

	result.CircuitState = sess.Engine.GetState()
	result.Challenges = sess.Engine.EvaluateChallenges()
	result.Events = append(result.Events, s.extractEvents(sess, prevPowered, prevChallenges, result.Challenges)...)

	// Auto-save session after mutation
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after mutation: %v\n", sessionID, err)
	}

	return result, nil
}

// Reset resets a lab session to its starting circuit
func (s *circuitServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.CircuitState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Reset()

	// Auto-save session after reset
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after reset: %v\n", sessionID, err)
	}

	return state, nil
}

// GetCircuitState retrieves the current circuit state
func (s *circuitServiceImpl) GetCircuitState(ctx context.Context, sessionID string) (*engine.CircuitState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// HitTerminal finds the terminal near a point, if any
func (s *circuitServiceImpl) HitTerminal(ctx context.Context, sessionID string, x, y float64) (*HitResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	ref, ok := sess.Engine.HitTerminal(x, y)
	if !ok {
		return &HitResult{Hit: false}, nil
	}

	result := &HitResult{Hit: true, Terminal: &ref}
	if c, found := engine.FindComponent(sess.Engine.GetState().Components, ref.ComponentID); found {
		if pos, valid := engine.TerminalPosition(c, ref.Terminal); valid {
			result.Position = &pos
		}
	}
	return result, nil
}

// GetChallenges evaluates the session's challenges against its circuit
func (s *circuitServiceImpl) GetChallenges(ctx context.Context, sessionID string) ([]engine.ChallengeStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.EvaluateChallenges(), nil
}

// SolveChallenge searches switch assignments for one that satisfies the
// named challenge, without modifying the session's circuit.
func (s *circuitServiceImpl) SolveChallenge(ctx context.Context, sessionID, challengeID string) (*SolveResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	var challenge *engine.Challenge
	for _, c := range sess.Engine.Challenges() {
		if c.ID == challengeID {
			challenge = &c
			break
		}
	}
	if challenge == nil {
		return nil, fmt.Errorf("challenge '%s' not found in lab '%s'", challengeID, sess.Config.Name)
	}

	state := sess.Engine.GetState()
	solution, err := solver.Solve(state.Components, state.Wires, *challenge)
	if err != nil {
		return nil, fmt.Errorf("solver failed: %w", err)
	}

	result := &SolveResult{
		Solvable:    solution.Found,
		ChallengeID: challengeID,
		Switches:    solution.Switches,
		Tried:       solution.Tried,
	}
	if solution.Found {
		result.Message = "Challenge is solvable with the switch settings shown"
	} else {
		result.Message = "No switch assignment satisfies this challenge with the current wiring"
	}
	return result, nil
}

// GetActionHistory returns paginated action history
func (s *circuitServiceImpl) GetActionHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	// Get the slice of actions
	var actions []engine.ActionEntry
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			actions = append(actions, history[i])
		}
	} else {
		// Normal chronological order
		if start < total {
			actions = history[start:end]
		}
	}

	// Ensure actions is not nil
	if actions == nil {
		actions = []engine.ActionEntry{}
	}

	return &HistoryResponse{
		Actions:      actions,
		TotalActions: total,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
	}, nil
}

// ListConfigs returns available lab configurations
func (s *circuitServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific lab configuration
func (s *circuitServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.LabConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a lab configuration to disk
func (s *circuitServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.LabConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// extractEvents derives events from the before/after difference of a mutation
func (s *circuitServiceImpl) extractEvents(sess *Session, prevPowered map[int]bool, prevChallenges, currChallenges []engine.ChallengeStatus) []LabEvent {
	events := []LabEvent{}
	state := sess.Engine.GetState()

	currPowered := poweredSet(state.Powered)
	for _, c := range state.Components {
		if currPowered[c.ID] && !prevPowered[c.ID] {
			events = append(events, LabEvent{
				Type:      "powered_on",
				Message:   fmt.Sprintf("%s #%d powered on", c.Type, c.ID),
				Timestamp: time.Now(),
				Component: c.ID,
			})
		} else if !currPowered[c.ID] && prevPowered[c.ID] {
			events = append(events, LabEvent{
				Type:      "powered_off",
				Message:   fmt.Sprintf("%s #%d powered off", c.Type, c.ID),
				Timestamp: time.Now(),
				Component: c.ID,
			})
		}
	}

	prevPassed := make(map[string]bool, len(prevChallenges))
	for _, c := range prevChallenges {
		prevPassed[c.ID] = c.Passed
	}

	allPassed := len(currChallenges) > 0
	for _, c := range currChallenges {
		if c.Passed && !prevPassed[c.ID] {
			events = append(events, LabEvent{
				Type:      "challenge_passed",
				Message:   fmt.Sprintf("Challenge complete: %s", c.Title),
				Timestamp: time.Now(),
				Challenge: c.ID,
			})
		}
		if !c.Passed {
			allPassed = false
		}
	}

	if allPassed {
		// Only announce once: skip when everything already passed before
		alreadyDone := len(prevChallenges) > 0
		for _, c := range prevChallenges {
			if !c.Passed {
				alreadyDone = false
			}
		}
		if !alreadyDone {
			events = append(events, LabEvent{
				Type:      "all_challenges_passed",
				Message:   sess.Config.Messages.AllChallengesPassed,
				Timestamp: time.Now(),
			})
		}
	}

	return events
}

func poweredSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
