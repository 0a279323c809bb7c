package service

import (
	"context"
	"time"

	"github.com/wricardo/circuit-lab/circuit/engine"
)

// CircuitService defines all lab-related operations
type CircuitService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Circuit Mutations
	PlaceComponent(ctx context.Context, sessionID string, t engine.ComponentType, x, y float64) (*MutationResult, error)
	MoveComponent(ctx context.Context, sessionID string, id int, x, y float64) (*MutationResult, error)
	ToggleSwitch(ctx context.Context, sessionID string, id int) (*MutationResult, error)
	ConnectTerminals(ctx context.Context, sessionID string, from, to engine.TerminalRef) (*MutationResult, error)
	DisconnectWire(ctx context.Context, sessionID string, wireID int) (*MutationResult, error)
	RemoveComponent(ctx context.Context, sessionID string, id int) (*MutationResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.CircuitState, error)

	// Circuit Queries
	GetCircuitState(ctx context.Context, sessionID string) (*engine.CircuitState, error)
	HitTerminal(ctx context.Context, sessionID string, x, y float64) (*HitResult, error)
	GetChallenges(ctx context.Context, sessionID string) ([]engine.ChallengeStatus, error)
	SolveChallenge(ctx context.Context, sessionID, challengeID string) (*SolveResult, error)
	GetActionHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.LabConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.LabConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.LabConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.LabConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles lab configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.LabConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.LabConfig
	SaveConfig(name string, config *engine.LabConfig) error
}

// Session represents an active lab session
type Session struct {
	ID             string
	Engine         *engine.CircuitEngine
	Config         *engine.LabConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
