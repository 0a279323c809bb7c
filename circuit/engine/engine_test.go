package engine

import (
	"errors"
	"testing"
)

func TestNewEngine(t *testing.T) {
	config := createTestConfig()
	eng, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	state := eng.GetState()
	if len(state.Components) != 2 {
		t.Errorf("Expected 2 starting components, got %d", len(state.Components))
	}
	if len(eng.Powered()) != 0 {
		t.Errorf("Expected nothing powered initially, got %v", eng.Powered())
	}
	if len(eng.Challenges()) != 1 {
		t.Errorf("Expected 1 compiled challenge, got %d", len(eng.Challenges()))
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := createTestConfig()
	config.Name = ""

	if _, err := NewEngine(config); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	eng := NewEngineWithDefaults()
	if eng == nil {
		t.Fatal("Expected engine to be non-nil")
	}
	if eng.GetConfig().Name != "default" {
		t.Errorf("Expected default lab, got %q", eng.GetConfig().Name)
	}
}

func TestEngine_PlaceComponent(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())

	c, err := eng.PlaceComponent(Switch, 93, 107)
	if err != nil {
		t.Fatalf("Failed to place switch: %v", err)
	}
	if c.X != Snap(93) || c.Y != Snap(107) {
		t.Errorf("Placement not snapped: (%g,%g)", c.X, c.Y)
	}
	if c.State {
		t.Error("New switch should start open")
	}

	if _, err := eng.PlaceComponent("resistor", 0, 0); !errors.Is(err, ErrUnknownComponentType) {
		t.Errorf("Expected ErrUnknownComponentType, got %v", err)
	}

	// Test palette exhausted: config allows a single battery and one is
	// already on the board.
	if _, err := eng.PlaceComponent(Battery, 0, 0); !errors.Is(err, ErrPaletteExhausted) {
		t.Errorf("Expected ErrPaletteExhausted, got %v", err)
	}

	history := eng.GetHistory()
	if len(history) != 3 {
		t.Fatalf("Expected 3 history entries, got %d", len(history))
	}
	if last := eng.GetLastAction(); last == nil || last.Success {
		t.Error("Expected last action to be a recorded failure")
	}
}

func TestEngine_MoveComponent(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())
	id := eng.GetState().Components[0].ID

	if err := eng.MoveComponent(id, 207, 193); err != nil {
		t.Fatalf("Failed to move component: %v", err)
	}
	c, _ := FindComponent(eng.GetState().Components, id)
	if c.X != Snap(207) || c.Y != Snap(193) {
		t.Errorf("Move not snapped: (%g,%g)", c.X, c.Y)
	}

	if err := eng.MoveComponent(999, 0, 0); !errors.Is(err, ErrComponentNotFound) {
		t.Errorf("Expected ErrComponentNotFound, got %v", err)
	}
}

func TestEngine_ToggleSwitch(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())

	sw, err := eng.PlaceComponent(Switch, 0, 0)
	if err != nil {
		t.Fatalf("Failed to place switch: %v", err)
	}

	closed, err := eng.ToggleSwitch(sw.ID)
	if err != nil {
		t.Fatalf("Failed to toggle: %v", err)
	}
	if !closed {
		t.Error("Expected switch to be closed after first toggle")
	}

	closed, _ = eng.ToggleSwitch(sw.ID)
	if closed {
		t.Error("Expected switch to be open after second toggle")
	}

	bulbID := eng.GetState().Components[1].ID
	if _, err := eng.ToggleSwitch(bulbID); !errors.Is(err, ErrNotASwitch) {
		t.Errorf("Expected ErrNotASwitch, got %v", err)
	}
	if _, err := eng.ToggleSwitch(999); !errors.Is(err, ErrComponentNotFound) {
		t.Errorf("Expected ErrComponentNotFound, got %v", err)
	}
}

func TestEngine_ConnectTerminals(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())
	state := eng.GetState()
	battery := state.Components[0]
	bulb := state.Components[1]

	pos := TerminalRef{ComponentID: battery.ID, Terminal: TerminalPos}
	neg := TerminalRef{ComponentID: battery.ID, Terminal: TerminalNeg}
	left := TerminalRef{ComponentID: bulb.ID, Terminal: TerminalLeft}
	right := TerminalRef{ComponentID: bulb.ID, Terminal: TerminalRight}

	w, err := eng.ConnectTerminals(pos, left)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	if w.ID != 1 {
		t.Errorf("Expected first wire id 1, got %d", w.ID)
	}

	// Duplicate in either orientation is rejected.
	if _, err := eng.ConnectTerminals(left, pos); !errors.Is(err, ErrDuplicateWire) {
		t.Errorf("Expected ErrDuplicateWire, got %v", err)
	}

	// Self-loop is rejected by the engine layer.
	if _, err := eng.ConnectTerminals(pos, pos); !errors.Is(err, ErrSelfLoop) {
		t.Errorf("Expected ErrSelfLoop, got %v", err)
	}

	// Dangling component and invalid terminal name are rejected.
	if _, err := eng.ConnectTerminals(pos, TerminalRef{ComponentID: 99, Terminal: TerminalLeft}); !errors.Is(err, ErrComponentNotFound) {
		t.Errorf("Expected ErrComponentNotFound, got %v", err)
	}
	if _, err := eng.ConnectTerminals(pos, TerminalRef{ComponentID: bulb.ID, Terminal: "anode"}); !errors.Is(err, ErrInvalidTerminal) {
		t.Errorf("Expected ErrInvalidTerminal, got %v", err)
	}

	// Close the loop: battery and bulb power up.
	if _, err := eng.ConnectTerminals(right, neg); err != nil {
		t.Fatalf("Failed to close loop: %v", err)
	}
	if !eng.IsPowered(battery.ID) || !eng.IsPowered(bulb.ID) {
		t.Errorf("Expected closed loop to power both components, powered=%v", eng.Powered())
	}
}

func TestEngine_DisconnectWire(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())
	state := eng.GetState()
	battery := state.Components[0]
	bulb := state.Components[1]

	w1, _ := eng.ConnectTerminals(
		TerminalRef{battery.ID, TerminalPos}, TerminalRef{bulb.ID, TerminalLeft})
	eng.ConnectTerminals(
		TerminalRef{bulb.ID, TerminalRight}, TerminalRef{battery.ID, TerminalNeg})

	if len(eng.Powered()) != 2 {
		t.Fatalf("Expected powered loop before disconnect, got %v", eng.Powered())
	}

	if err := eng.DisconnectWire(w1.ID); err != nil {
		t.Fatalf("Failed to disconnect: %v", err)
	}
	if len(eng.Powered()) != 0 {
		t.Errorf("Expected nothing powered after disconnect, got %v", eng.Powered())
	}

	if err := eng.DisconnectWire(w1.ID); !errors.Is(err, ErrWireNotFound) {
		t.Errorf("Expected ErrWireNotFound, got %v", err)
	}
}

func TestEngine_RemoveComponent_Cascades(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())
	state := eng.GetState()
	battery := state.Components[0]
	bulb := state.Components[1]

	eng.ConnectTerminals(
		TerminalRef{battery.ID, TerminalPos}, TerminalRef{bulb.ID, TerminalLeft})
	eng.ConnectTerminals(
		TerminalRef{bulb.ID, TerminalRight}, TerminalRef{battery.ID, TerminalNeg})

	if err := eng.RemoveComponent(bulb.ID); err != nil {
		t.Fatalf("Failed to remove component: %v", err)
	}
	if len(eng.GetState().Wires) != 0 {
		t.Errorf("Expected cascade to remove both wires, got %v", eng.GetState().Wires)
	}
	if len(eng.Powered()) != 0 {
		t.Errorf("Expected nothing powered after removal, got %v", eng.Powered())
	}

	if err := eng.RemoveComponent(bulb.ID); !errors.Is(err, ErrComponentNotFound) {
		t.Errorf("Expected ErrComponentNotFound, got %v", err)
	}
}

func TestEngine_HitTerminal(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())
	battery := eng.GetState().Components[0]

	// Query right at the battery's pos terminal.
	ref, ok := eng.HitTerminal(battery.X+ComponentWidth, battery.Y+ComponentHeight/2)
	if !ok {
		t.Fatal("Expected a hit at the pos terminal")
	}
	if ref.ComponentID != battery.ID || ref.Terminal != TerminalPos {
		t.Errorf("Expected battery pos terminal, got %v", ref)
	}

	if _, ok := eng.HitTerminal(-1000, -1000); ok {
		t.Error("Expected no hit far from the circuit")
	}
}

func TestEngine_EvaluateChallenges(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())
	state := eng.GetState()
	battery := state.Components[0]
	bulb := state.Components[1]

	statuses := eng.EvaluateChallenges()
	if len(statuses) != 1 {
		t.Fatalf("Expected 1 challenge status, got %d", len(statuses))
	}
	if statuses[0].Passed {
		t.Error("Challenge should fail before wiring")
	}

	eng.ConnectTerminals(
		TerminalRef{battery.ID, TerminalPos}, TerminalRef{bulb.ID, TerminalLeft})
	eng.ConnectTerminals(
		TerminalRef{bulb.ID, TerminalRight}, TerminalRef{battery.ID, TerminalNeg})

	statuses = eng.EvaluateChallenges()
	if !statuses[0].Passed {
		t.Error("Challenge should pass with the loop closed")
	}

	// Stateless and idempotent: re-evaluation gives the same answer.
	again := eng.EvaluateChallenges()
	if again[0].Passed != statuses[0].Passed {
		t.Error("Re-evaluation changed the result")
	}
}

func TestEngine_Reset(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())
	state := eng.GetState()
	battery := state.Components[0]
	bulb := state.Components[1]

	eng.ConnectTerminals(
		TerminalRef{battery.ID, TerminalPos}, TerminalRef{bulb.ID, TerminalLeft})
	eng.PlaceComponent(Switch, 0, 0)
	actionsBefore := len(eng.GetHistory())

	newState := eng.Reset()
	if newState == nil {
		t.Fatal("Expected reset to return state")
	}
	if len(newState.Wires) != 0 {
		t.Errorf("Expected wires cleared after reset, got %d", len(newState.Wires))
	}
	if len(newState.Components) != 2 {
		t.Errorf("Expected starting components restored, got %d", len(newState.Components))
	}
	// Cumulative history survives the reset (plus the reset entry itself).
	if len(eng.GetHistory()) != actionsBefore+1 {
		t.Errorf("Expected %d history entries after reset, got %d", actionsBefore+1, len(eng.GetHistory()))
	}
}

func TestEngine_SetState_RestoresAllocators(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())
	eng.PlaceComponent(Switch, 0, 0)
	saved := *eng.GetState()

	restored := NewEngineWithDefaults()
	if err := restored.SetState(&saved); err != nil {
		t.Fatalf("Failed to set state: %v", err)
	}

	// Ids must continue past the restored cursor, never collide.
	c, err := restored.PlaceComponent(WireNode, 0, 0)
	if err != nil {
		t.Fatalf("Failed to place after restore: %v", err)
	}
	for _, existing := range saved.Components {
		if existing.ID == c.ID {
			t.Errorf("Restored allocator reissued id %d", c.ID)
		}
	}

	if err := restored.SetState(nil); err == nil {
		t.Error("Expected error for nil state")
	}
}

func TestEngine_SetConfig(t *testing.T) {
	eng, _ := NewEngine(createTestConfig())
	eng.PlaceComponent(Switch, 0, 0)

	newConfig := createTestConfig()
	newConfig.Name = "Second Lab"
	if err := eng.SetConfig(newConfig); err != nil {
		t.Fatalf("Failed to set config: %v", err)
	}
	if eng.GetState().ConfigName != "Second Lab" {
		t.Errorf("Expected new config name, got %q", eng.GetState().ConfigName)
	}
	if len(eng.GetState().Components) != 2 {
		t.Error("Expected circuit re-initialized from new config")
	}

	bad := createTestConfig()
	bad.Name = ""
	if err := eng.SetConfig(bad); err == nil {
		t.Error("Expected error for invalid config")
	}
}
