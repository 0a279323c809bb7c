package engine

import "math"

// HitTerminal finds the terminal closest to (x,y) across all components.
// It returns the terminal reference and true when the closest terminal lies
// strictly within HitRadius; otherwise the zero reference and false.
//
// Ties resolve to the first terminal encountered, scanning the roster in
// order and each component's terminals in their fixed layout order, so the
// result is deterministic for a given roster.
func HitTerminal(components []Component, x, y float64) (TerminalRef, bool) {
	best := TerminalRef{}
	bestSq := HitRadius * HitRadius
	found := false

	for _, c := range components {
		for _, t := range TerminalsOf(c) {
			dx := t.Pos.X - x
			dy := t.Pos.Y - y
			distSq := dx*dx + dy*dy
			if distSq < bestSq {
				bestSq = distSq
				best = t.Ref
				found = true
			}
		}
	}

	return best, found
}

// TerminalDistance returns the Euclidean distance from (x,y) to a named
// terminal of a component, or +Inf when the terminal does not exist.
func TerminalDistance(c Component, terminal string, x, y float64) float64 {
	pos, ok := TerminalPosition(c, terminal)
	if !ok {
		return math.Inf(1)
	}
	return math.Hypot(pos.X-x, pos.Y-y)
}
