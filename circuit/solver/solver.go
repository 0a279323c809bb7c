// Package solver searches switch assignments for one that satisfies a
// challenge. The circuit wiring is taken as given; only the open/closed
// state of switches varies. With at most a handful of switches on the
// board the exhaustive search is instant.
package solver

import (
	"fmt"

	"github.com/wricardo/circuit-lab/circuit/engine"
)

// Solution is the result of a solver run.
type Solution struct {
	// Found reports whether any assignment satisfied the challenge.
	Found bool
	// Switches maps switch component id to the closed state of the first
	// satisfying assignment. Nil when Found is false.
	Switches map[int]bool
	// Tried is the number of assignments evaluated.
	Tried int
}

// Solve enumerates switch assignments over the given circuit until one
// satisfies the challenge. The inputs are not modified. Returns an error
// when the circuit carries more switches than the search can enumerate.
func Solve(components []engine.Component, wires []engine.Wire, challenge engine.Challenge) (*Solution, error) {
	var switchIDs []int
	for _, c := range components {
		if c.Type == engine.Switch {
			switchIDs = append(switchIDs, c.ID)
		}
	}
	if len(switchIDs) > engine.MaxSolverSwitches {
		return nil, fmt.Errorf("too many switches to enumerate: %d (limit %d)", len(switchIDs), engine.MaxSolverSwitches)
	}

	// Work on a copy so toggling never leaks into the caller's circuit.
	scratch := make([]engine.Component, len(components))
	copy(scratch, components)

	index := make(map[int]int, len(switchIDs))
	for i := range scratch {
		if scratch[i].Type == engine.Switch {
			index[scratch[i].ID] = i
		}
	}

	solution := &Solution{}
	total := 1 << len(switchIDs)
	for mask := 0; mask < total; mask++ {
		for bit, id := range switchIDs {
			scratch[index[id]].State = mask&(1<<bit) != 0
		}
		solution.Tried++

		if challenge.Require(scratch, wires) {
			solution.Found = true
			solution.Switches = make(map[int]bool, len(switchIDs))
			for bit, id := range switchIDs {
				solution.Switches[id] = mask&(1<<bit) != 0
			}
			return solution, nil
		}
	}

	return solution, nil
}
