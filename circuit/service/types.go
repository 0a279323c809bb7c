package service

import (
	"time"

	"github.com/wricardo/circuit-lab/circuit/engine"
)

// SessionInfo provides information about a lab session
type SessionInfo struct {
	ID             string               `json:"id"`
	ConfigName     string               `json:"config_name"`
	CreatedAt      time.Time            `json:"created_at"`
	LastAccessedAt time.Time            `json:"last_accessed_at"`
	CircuitState   *engine.CircuitState `json:"circuit_state"`
	LabConfig      *engine.LabConfig    `json:"lab_config"`
}

// MutationResult contains the result of a circuit mutation: the fresh state
// snapshot, the events the mutation produced, and the challenge statuses
// after the change.
type MutationResult struct {
	Success      bool                     `json:"success"`
	CircuitState *engine.CircuitState     `json:"circuit_state"`
	Message      string                   `json:"message,omitempty"`
	Events       []LabEvent               `json:"events,omitempty"`
	Challenges   []engine.ChallengeStatus `json:"challenges,omitempty"`
	Component    *engine.Component        `json:"component,omitempty"`
	Wire         *engine.Wire             `json:"wire,omitempty"`
}

// HitResult contains the result of a terminal hit-test query
type HitResult struct {
	Hit      bool                `json:"hit"`
	Terminal *engine.TerminalRef `json:"terminal,omitempty"`
	Position *engine.Point       `json:"position,omitempty"`
}

// LabEvent represents something that happened as a consequence of a mutation
type LabEvent struct {
	Type      string    `json:"type"` // "powered_on", "powered_off", "challenge_passed", "all_challenges_passed", "reset"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Component int       `json:"component,omitempty"`
	Challenge string    `json:"challenge,omitempty"`
}

// HistoryOptions configures action history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated action history
type HistoryResponse struct {
	Actions      []engine.ActionEntry `json:"actions"`
	TotalActions int                  `json:"total_actions"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
	TotalPages   int                  `json:"total_pages"`
	HasNext      bool                 `json:"has_next"`
	HasPrevious  bool                 `json:"has_previous"`
}

// ConfigInfo provides information about a lab configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Challenges  int    `json:"challenges"`
	Starting    int    `json:"starting_components"`
}

// SolveResult contains the result of a challenge solver run
type SolveResult struct {
	Solvable    bool         `json:"solvable"`
	ChallengeID string       `json:"challenge_id"`
	Switches    map[int]bool `json:"switches,omitempty"` // switch id -> closed
	Tried       int          `json:"assignments_tried"`
	Message     string       `json:"message,omitempty"`
}
