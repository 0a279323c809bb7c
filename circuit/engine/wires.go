package engine

// IsDuplicateWire reports whether an existing wire already connects the
// unordered terminal pair {a,b}. Both orientations count as the same wire.
func IsDuplicateWire(wires []Wire, a, b TerminalRef) bool {
	for _, w := range wires {
		if w.Connects(a, b) {
			return true
		}
	}
	return false
}

// FindComponent returns the component with the given id from the roster.
func FindComponent(components []Component, id int) (Component, bool) {
	for _, c := range components {
		if c.ID == id {
			return c, true
		}
	}
	return Component{}, false
}

// FindWire returns the wire with the given id.
func FindWire(wires []Wire, id int) (Wire, bool) {
	for _, w := range wires {
		if w.ID == id {
			return w, true
		}
	}
	return Wire{}, false
}

// RemoveWire returns the wire list without the wire of the given id. The
// boolean reports whether anything was removed.
func RemoveWire(wires []Wire, id int) ([]Wire, bool) {
	for i, w := range wires {
		if w.ID == id {
			return append(wires[:i:i], wires[i+1:]...), true
		}
	}
	return wires, false
}

// RemoveComponent removes the component with the given id from the roster and
// cascade-removes every wire with an endpoint referencing it. The cascade is
// an explicit step here, never an implicit side effect of dropping the
// component: wires hold plain ids and would otherwise dangle.
func RemoveComponent(components []Component, wires []Wire, id int) ([]Component, []Wire, bool) {
	removed := false
	for i, c := range components {
		if c.ID == id {
			components = append(components[:i:i], components[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		return components, wires, false
	}

	kept := make([]Wire, 0, len(wires))
	for _, w := range wires {
		if !w.Touches(id) {
			kept = append(kept, w)
		}
	}
	return components, kept, true
}

// CountComponentsOfType counts roster components of the given type.
func CountComponentsOfType(components []Component, t ComponentType) int {
	n := 0
	for _, c := range components {
		if c.Type == t {
			n++
		}
	}
	return n
}
