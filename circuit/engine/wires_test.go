package engine

import "testing"

func TestIsDuplicateWire(t *testing.T) {
	a := TerminalRef{ComponentID: 1, Terminal: TerminalPos}
	b := TerminalRef{ComponentID: 2, Terminal: TerminalLeft}
	c := TerminalRef{ComponentID: 2, Terminal: TerminalRight}

	wires := []Wire{{ID: 1, From: a, To: b}}

	if !IsDuplicateWire(wires, a, b) {
		t.Error("Expected duplicate for same orientation")
	}
	if !IsDuplicateWire(wires, b, a) {
		t.Error("Expected duplicate for swapped orientation")
	}
	if IsDuplicateWire(wires, a, c) {
		t.Error("Did not expect duplicate for different pair")
	}
	if IsDuplicateWire(nil, a, b) {
		t.Error("Did not expect duplicate in empty store")
	}
}

func TestIsDuplicateWire_SelfLoopTolerated(t *testing.T) {
	// The store itself does not forbid a wire whose endpoints are the same
	// terminal; preventing that is the engine's job.
	a := TerminalRef{ComponentID: 1, Terminal: TerminalPos}
	wires := []Wire{{ID: 1, From: a, To: a}}

	if !IsDuplicateWire(wires, a, a) {
		t.Error("Expected self-loop wire to be found as duplicate of itself")
	}
}

func TestRemoveWire(t *testing.T) {
	wires := []Wire{
		{ID: 1, From: TerminalRef{1, TerminalPos}, To: TerminalRef{2, TerminalLeft}},
		{ID: 2, From: TerminalRef{2, TerminalRight}, To: TerminalRef{1, TerminalNeg}},
	}

	got, removed := RemoveWire(wires, 1)
	if !removed {
		t.Fatal("Expected wire 1 to be removed")
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("Expected only wire 2 to remain, got %v", got)
	}

	got, removed = RemoveWire(got, 99)
	if removed {
		t.Error("Did not expect removal for unknown wire id")
	}
	if len(got) != 1 {
		t.Errorf("Wire list changed on failed removal: %v", got)
	}
}

func TestRemoveComponent_CascadesWires(t *testing.T) {
	components := []Component{
		{ID: 1, Type: Battery},
		{ID: 2, Type: Bulb},
		{ID: 3, Type: Motor},
	}
	wires := []Wire{
		{ID: 1, From: TerminalRef{1, TerminalPos}, To: TerminalRef{2, TerminalLeft}},
		{ID: 2, From: TerminalRef{2, TerminalRight}, To: TerminalRef{3, TerminalLeft}},
		{ID: 3, From: TerminalRef{3, TerminalRight}, To: TerminalRef{1, TerminalNeg}},
	}

	gotComponents, gotWires, removed := RemoveComponent(components, wires, 2)
	if !removed {
		t.Fatal("Expected component 2 to be removed")
	}
	if len(gotComponents) != 2 {
		t.Errorf("Expected 2 components left, got %d", len(gotComponents))
	}
	if len(gotWires) != 1 || gotWires[0].ID != 3 {
		t.Errorf("Expected only wire 3 to survive the cascade, got %v", gotWires)
	}
}

func TestRemoveComponent_NotFound(t *testing.T) {
	components := []Component{{ID: 1, Type: Battery}}
	wires := []Wire{{ID: 1, From: TerminalRef{1, TerminalPos}, To: TerminalRef{1, TerminalNeg}}}

	gotComponents, gotWires, removed := RemoveComponent(components, wires, 42)
	if removed {
		t.Error("Did not expect removal for unknown component id")
	}
	if len(gotComponents) != 1 || len(gotWires) != 1 {
		t.Error("Roster or wires changed on failed removal")
	}
}

func TestCountComponentsOfType(t *testing.T) {
	components := []Component{
		{ID: 1, Type: Bulb},
		{ID: 2, Type: Bulb},
		{ID: 3, Type: Battery},
	}

	if n := CountComponentsOfType(components, Bulb); n != 2 {
		t.Errorf("Expected 2 bulbs, got %d", n)
	}
	if n := CountComponentsOfType(components, Switch); n != 0 {
		t.Errorf("Expected 0 switches, got %d", n)
	}
}
