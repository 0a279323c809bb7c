package engine

import "sort"

// CheckPowered computes the set of powered component ids for a circuit.
//
// The circuit is modeled as a graph whose nodes are terminals. External edges
// come from wires; internal edges depend on the owning component's type:
//
//   - wire_node: every terminal pair is linked (a perfect hub)
//   - bulb / motor / buzzer: left and right are always linked; passive
//     devices conduct, they never block traversal as loads
//   - switch: left and right are linked only while closed (state == true)
//   - battery: pos and neg are never linked internally; a battery is a
//     source, traversal must not cross it
//
// For each battery a breadth-first search starts at its pos terminal. The
// battery powers its sub-circuit when the search reaches the battery's own
// neg terminal through at least one edge; the trivial zero-length identity
// does not count. On success every component whose terminal the search
// enqueued is committed to the powered set, including branches that
// dead-ended off the closed loop. This over-approximation is deliberate and
// load-bearing: callers display partially wired branches as lit when they
// share a loop with the battery. On failure the battery's tentative visits
// are discarded entirely.
//
// Wire endpoints referencing a missing component or an invalid terminal name
// are treated as dead ends; the function never fails.
func CheckPowered(components []Component, wires []Wire) map[int]bool {
	byID := make(map[int]Component, len(components))
	for _, c := range components {
		byID[c.ID] = c
	}

	adjacency := make(map[TerminalRef][]TerminalRef, len(wires)*2)
	for _, w := range wires {
		adjacency[w.From] = append(adjacency[w.From], w.To)
		adjacency[w.To] = append(adjacency[w.To], w.From)
	}

	powered := make(map[int]bool)

	for _, c := range components {
		if c.Type != Battery {
			continue
		}

		start := TerminalRef{ComponentID: c.ID, Terminal: TerminalPos}
		goal := TerminalRef{ComponentID: c.ID, Terminal: TerminalNeg}

		// Visited set and queue are local to this battery's search.
		visited := map[TerminalRef]bool{start: true}
		queue := []TerminalRef{start}
		closed := false

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			neighbors := adjacency[current]
			neighbors = append(neighbors, internalNeighbors(byID, current)...)

			for _, next := range neighbors {
				if visited[next] {
					continue
				}
				visited[next] = true
				if next == goal {
					closed = true
				}
				queue = append(queue, next)
			}
		}

		if !closed {
			continue
		}

		for ref := range visited {
			if _, exists := byID[ref.ComponentID]; exists {
				powered[ref.ComponentID] = true
			}
		}
	}

	return powered
}

// PoweredIDs returns the powered set as a sorted id slice, the shape cached
// on CircuitState and sent to clients.
func PoweredIDs(components []Component, wires []Wire) []int {
	powered := CheckPowered(components, wires)
	ids := make([]int, 0, len(powered))
	for id := range powered {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// internalNeighbors returns the terminals reachable from ref through the
// owning component's internal links. A dangling reference (missing component
// or terminal name invalid for its type) has no internal links.
func internalNeighbors(byID map[int]Component, ref TerminalRef) []TerminalRef {
	c, ok := byID[ref.ComponentID]
	if !ok || !c.Type.HasTerminal(ref.Terminal) {
		return nil
	}

	switch {
	case c.Type == Battery:
		return nil
	case c.Type == Switch && !c.State:
		return nil
	default:
		terminals := c.Type.Terminals()
		linked := make([]TerminalRef, 0, len(terminals)-1)
		for _, name := range terminals {
			if name != ref.Terminal {
				linked = append(linked, TerminalRef{ComponentID: c.ID, Terminal: name})
			}
		}
		return linked
	}
}
