package engine

import "testing"

func TestHitTerminal_NoMatchWhenEmpty(t *testing.T) {
	if _, ok := HitTerminal(nil, 10, 10); ok {
		t.Error("Expected no match on empty roster")
	}
}

func TestHitTerminal_NoMatchOutsideRadius(t *testing.T) {
	components := []Component{{ID: 1, Type: Bulb, X: 0, Y: 0}}

	// Far away from both terminals at (0,10) and (40,10).
	if ref, ok := HitTerminal(components, 500, 500); ok {
		t.Errorf("Expected no match far from terminals, got %v", ref)
	}
}

func TestHitTerminal_StrictThreshold(t *testing.T) {
	components := []Component{{ID: 1, Type: Bulb, X: 0, Y: 0}}

	// Left terminal sits at (0, ComponentHeight/2). Exactly HitRadius away
	// must not match; just inside must.
	if _, ok := HitTerminal(components, HitRadius, ComponentHeight/2); ok {
		t.Error("Distance exactly HitRadius should not match")
	}
	if _, ok := HitTerminal(components, HitRadius-0.01, ComponentHeight/2); !ok {
		t.Error("Distance just inside HitRadius should match")
	}
}

func TestHitTerminal_ClosestWins(t *testing.T) {
	components := []Component{
		{ID: 1, Type: Bulb, X: 0, Y: 0},
		{ID: 2, Type: Bulb, X: GridUnit / 2, Y: 0},
	}

	// Query right on top of component 2's left terminal.
	ref, ok := HitTerminal(components, GridUnit/2, ComponentHeight/2)
	if !ok {
		t.Fatal("Expected a match")
	}
	if ref.ComponentID != 2 || ref.Terminal != TerminalLeft {
		t.Errorf("Expected component 2 left terminal, got %v", ref)
	}
}

func TestHitTerminal_TieKeepsFirstEncountered(t *testing.T) {
	// Two components stacked so their left terminals coincide exactly.
	components := []Component{
		{ID: 5, Type: Bulb, X: 0, Y: 0},
		{ID: 9, Type: Motor, X: 0, Y: 0},
	}

	ref, ok := HitTerminal(components, 1, ComponentHeight/2)
	if !ok {
		t.Fatal("Expected a match")
	}
	if ref.ComponentID != 5 {
		t.Errorf("Tie should resolve to roster order, got component %d", ref.ComponentID)
	}
}

func TestHitTerminal_NodeTerminals(t *testing.T) {
	components := []Component{{ID: 1, Type: WireNode, X: 100, Y: 100}}

	// Near the top terminal a at (100+W/2, 100).
	ref, ok := HitTerminal(components, 100+ComponentWidth/2+3, 98)
	if !ok {
		t.Fatal("Expected a match near node terminal a")
	}
	if ref.Terminal != TerminalA {
		t.Errorf("Expected terminal a, got %s", ref.Terminal)
	}
}
