package engine

import (
	"errors"
	"fmt"
	"time"
)

// Mutation errors reported by the engine. The underlying store functions in
// wires.go stay permissive; the engine is the layer that enforces the
// placement and wiring contract.
var (
	ErrUnknownComponentType = errors.New("unknown component type")
	ErrComponentNotFound    = errors.New("component not found")
	ErrWireNotFound         = errors.New("wire not found")
	ErrNotASwitch           = errors.New("component is not a switch")
	ErrInvalidTerminal      = errors.New("invalid terminal reference")
	ErrDuplicateWire        = errors.New("wire already exists")
	ErrSelfLoop             = errors.New("wire endpoints are the same terminal")
	ErrPaletteExhausted     = errors.New("palette does not allow more components of this type")
)

// Engine is the interface for circuit operations.
type Engine interface {
	// Circuit state management
	GetState() *CircuitState
	SetState(state *CircuitState) error
	Reset() *CircuitState

	// Mutations (each one refreshes the powered set)
	PlaceComponent(t ComponentType, x, y float64) (*Component, error)
	MoveComponent(id int, x, y float64) error
	ToggleSwitch(id int) (bool, error)
	ConnectTerminals(from, to TerminalRef) (*Wire, error)
	DisconnectWire(id int) error
	RemoveComponent(id int) error

	// Queries
	HitTerminal(x, y float64) (TerminalRef, bool)
	Powered() []int
	IsPowered(id int) bool
	EvaluateChallenges() []ChallengeStatus

	// Configuration
	GetConfig() *LabConfig
	SetConfig(config *LabConfig) error

	// History
	GetHistory() []ActionEntry
	GetLastAction() *ActionEntry
}

// CircuitEngine implements the Engine interface for one circuit.
type CircuitEngine struct {
	state        *CircuitState
	config       *LabConfig
	challenges   []Challenge
	componentIDs *IDAllocator
	wireIDs      *IDAllocator
}

// NewEngine creates an engine for the provided lab configuration.
func NewEngine(config *LabConfig) (*CircuitEngine, error) {
	if err := ValidateLabConfig(config); err != nil {
		return nil, err
	}

	// Rules were just validated, BuildChallenges cannot fail here.
	challenges, _ := BuildChallenges(config.Challenges)

	state := InitCircuitStateFromConfig(config)
	return &CircuitEngine{
		state:        state,
		config:       config,
		challenges:   challenges,
		componentIDs: NewIDAllocator(state.NextComponentID),
		wireIDs:      NewIDAllocator(state.NextWireID),
	}, nil
}

// NewEngineWithDefaults creates an engine with the built-in default lab.
func NewEngineWithDefaults() *CircuitEngine {
	eng, err := NewEngine(DefaultLabConfig())
	if err != nil {
		// The built-in config is static and valid.
		panic(fmt.Sprintf("default lab config invalid: %v", err))
	}
	return eng
}

// GetState returns the current circuit state.
func (e *CircuitEngine) GetState() *CircuitState {
	return e.state
}

// SetState replaces the circuit state (used for persistence loading) and
// restores the id allocators from its cursors.
func (e *CircuitEngine) SetState(state *CircuitState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	e.state = state
	e.componentIDs = NewIDAllocator(state.NextComponentID)
	e.wireIDs = NewIDAllocator(state.NextWireID)
	e.refresh()
	return nil
}

// Reset restores the starting circuit from the config. Cumulative action
// history and totals survive the reset.
func (e *CircuitEngine) Reset() *CircuitState {
	prevHistory := e.state.History
	prevTotal := e.state.TotalActions

	e.state = InitCircuitStateFromConfig(e.config)
	e.componentIDs = NewIDAllocator(e.state.NextComponentID)
	e.wireIDs = NewIDAllocator(e.state.NextWireID)

	e.state.History = prevHistory
	e.state.TotalActions = prevTotal
	e.addAction("reset", "circuit reset to starting state", true)

	return e.state
}

// PlaceComponent snaps (x,y) to the grid and adds a new component of the
// given type, honoring the lab's palette limits. New switches start open.
func (e *CircuitEngine) PlaceComponent(t ComponentType, x, y float64) (*Component, error) {
	if !t.Valid() {
		e.addAction("place", fmt.Sprintf("rejected: unknown type %q", t), false)
		return nil, ErrUnknownComponentType
	}
	if !e.config.PaletteAllows(e.state.Components, t) {
		e.addAction("place", fmt.Sprintf("rejected: palette exhausted for %s", t), false)
		return nil, ErrPaletteExhausted
	}

	c := Component{
		ID:   e.componentIDs.Next(),
		Type: t,
		X:    Snap(x),
		Y:    Snap(y),
	}
	e.state.Components = append(e.state.Components, c)
	e.addAction("place", fmt.Sprintf("%s #%d at (%g,%g)", t, c.ID, c.X, c.Y), true)
	e.refresh()
	return &c, nil
}

// MoveComponent snaps (x,y) to the grid and moves an existing component.
// Terminal positions follow because they are derived, and wires follow
// because they reference terminals by id, not by position.
func (e *CircuitEngine) MoveComponent(id int, x, y float64) error {
	for i := range e.state.Components {
		if e.state.Components[i].ID == id {
			e.state.Components[i].X = Snap(x)
			e.state.Components[i].Y = Snap(y)
			e.addAction("move", fmt.Sprintf("component #%d to (%g,%g)", id, Snap(x), Snap(y)), true)
			e.refresh()
			return nil
		}
	}
	e.addAction("move", fmt.Sprintf("component #%d not found", id), false)
	return ErrComponentNotFound
}

// ToggleSwitch flips the open/closed state of a switch and returns the new
// state (true = closed).
func (e *CircuitEngine) ToggleSwitch(id int) (bool, error) {
	for i := range e.state.Components {
		if e.state.Components[i].ID != id {
			continue
		}
		if e.state.Components[i].Type != Switch {
			e.addAction("toggle", fmt.Sprintf("component #%d is not a switch", id), false)
			return false, ErrNotASwitch
		}
		e.state.Components[i].State = !e.state.Components[i].State
		newState := e.state.Components[i].State
		e.addAction("toggle", fmt.Sprintf("switch #%d now closed=%t", id, newState), true)
		e.refresh()
		return newState, nil
	}
	e.addAction("toggle", fmt.Sprintf("component #%d not found", id), false)
	return false, ErrComponentNotFound
}

// HitTerminal finds the terminal nearest to (x,y) within HitRadius.
func (e *CircuitEngine) HitTerminal(x, y float64) (TerminalRef, bool) {
	return HitTerminal(e.state.Components, x, y)
}

// ConnectTerminals adds a wire between two terminals. Both endpoints must
// reference an existing component and a terminal valid for its type.
// Self-loops and duplicates (in either orientation) are rejected here, at
// the caller layer; the wire store itself stays permissive.
func (e *CircuitEngine) ConnectTerminals(from, to TerminalRef) (*Wire, error) {
	if err := e.validateTerminal(from); err != nil {
		e.addAction("connect", fmt.Sprintf("rejected from endpoint: %v", err), false)
		return nil, err
	}
	if err := e.validateTerminal(to); err != nil {
		e.addAction("connect", fmt.Sprintf("rejected to endpoint: %v", err), false)
		return nil, err
	}
	if from == to {
		e.addAction("connect", "rejected: self-loop", false)
		return nil, ErrSelfLoop
	}
	if IsDuplicateWire(e.state.Wires, from, to) {
		e.addAction("connect", "rejected: duplicate wire", false)
		return nil, ErrDuplicateWire
	}

	w := Wire{ID: e.wireIDs.Next(), From: from, To: to}
	e.state.Wires = append(e.state.Wires, w)
	e.addAction("connect", fmt.Sprintf("wire #%d: #%d.%s to #%d.%s",
		w.ID, from.ComponentID, from.Terminal, to.ComponentID, to.Terminal), true)
	e.refresh()
	return &w, nil
}

// DisconnectWire removes a wire by id.
func (e *CircuitEngine) DisconnectWire(id int) error {
	wires, removed := RemoveWire(e.state.Wires, id)
	if !removed {
		e.addAction("disconnect", fmt.Sprintf("wire #%d not found", id), false)
		return ErrWireNotFound
	}
	e.state.Wires = wires
	e.addAction("disconnect", fmt.Sprintf("wire #%d removed", id), true)
	e.refresh()
	return nil
}

// RemoveComponent removes a component and cascade-removes every wire that
// references it.
func (e *CircuitEngine) RemoveComponent(id int) error {
	wiresBefore := len(e.state.Wires)
	components, wires, removed := RemoveComponent(e.state.Components, e.state.Wires, id)
	if !removed {
		e.addAction("remove", fmt.Sprintf("component #%d not found", id), false)
		return ErrComponentNotFound
	}
	e.state.Components = components
	e.state.Wires = wires
	e.addAction("remove", fmt.Sprintf("component #%d removed with %d wires", id, wiresBefore-len(wires)), true)
	e.refresh()
	return nil
}

// Powered returns the cached powered set as sorted component ids.
func (e *CircuitEngine) Powered() []int {
	return e.state.Powered
}

// IsPowered reports whether a component id is in the powered set.
func (e *CircuitEngine) IsPowered(id int) bool {
	for _, p := range e.state.Powered {
		if p == id {
			return true
		}
	}
	return false
}

// Challenges returns the compiled challenges of the lab.
func (e *CircuitEngine) Challenges() []Challenge {
	return e.challenges
}

// EvaluateChallenges evaluates every challenge against the current circuit.
func (e *CircuitEngine) EvaluateChallenges() []ChallengeStatus {
	statuses := make([]ChallengeStatus, 0, len(e.challenges))
	for _, c := range e.challenges {
		statuses = append(statuses, c.Evaluate(e.state.Components, e.state.Wires))
	}
	return statuses
}

// GetConfig returns the current lab configuration.
func (e *CircuitEngine) GetConfig() *LabConfig {
	return e.config
}

// SetConfig switches to a new lab configuration and resets the circuit.
func (e *CircuitEngine) SetConfig(config *LabConfig) error {
	if err := ValidateLabConfig(config); err != nil {
		return err
	}
	challenges, _ := BuildChallenges(config.Challenges)

	e.config = config
	e.challenges = challenges
	e.state = InitCircuitStateFromConfig(config)
	e.componentIDs = NewIDAllocator(e.state.NextComponentID)
	e.wireIDs = NewIDAllocator(e.state.NextWireID)
	return nil
}

// GetHistory returns the cumulative action history.
func (e *CircuitEngine) GetHistory() []ActionEntry {
	return e.state.History
}

// GetLastAction returns the most recent history entry, or nil.
func (e *CircuitEngine) GetLastAction() *ActionEntry {
	if len(e.state.History) == 0 {
		return nil
	}
	return &e.state.History[len(e.state.History)-1]
}

// validateTerminal checks that a terminal reference points at an existing
// component and a terminal name valid for its type.
func (e *CircuitEngine) validateTerminal(ref TerminalRef) error {
	c, ok := FindComponent(e.state.Components, ref.ComponentID)
	if !ok {
		return fmt.Errorf("%w: component #%d", ErrComponentNotFound, ref.ComponentID)
	}
	if !c.Type.HasTerminal(ref.Terminal) {
		return fmt.Errorf("%w: %s has no terminal %q", ErrInvalidTerminal, c.Type, ref.Terminal)
	}
	return nil
}

// refresh recomputes the derived powered set and allocator cursors. Called
// after every mutation so clients always see a fresh snapshot.
func (e *CircuitEngine) refresh() {
	e.state.Powered = PoweredIDs(e.state.Components, e.state.Wires)
	e.state.NextComponentID = e.componentIDs.Peek()
	e.state.NextWireID = e.wireIDs.Peek()
}

// addAction appends an entry to the cumulative action history.
func (e *CircuitEngine) addAction(action, detail string, success bool) {
	e.state.TotalActions++
	e.state.History = append(e.state.History, ActionEntry{
		Action:       action,
		Detail:       detail,
		Success:      success,
		Timestamp:    time.Now().Unix(),
		ActionNumber: e.state.TotalActions,
	})
}
