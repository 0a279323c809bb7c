package engine

// ComponentType identifies the kind of an electrical component
type ComponentType string

const (
	Battery  ComponentType = "battery"
	Bulb     ComponentType = "bulb"
	Switch   ComponentType = "switch"
	Motor    ComponentType = "motor"
	Buzzer   ComponentType = "buzzer"
	WireNode ComponentType = "wire_node"
)

// Terminal names used by the layout table
const (
	TerminalPos   = "pos"
	TerminalNeg   = "neg"
	TerminalLeft  = "left"
	TerminalRight = "right"
	TerminalA     = "a"
	TerminalB     = "b"
	TerminalC     = "c"
	TerminalD     = "d"
)

const (
	// GridUnit is the spacing of the placement grid. Component bounding
	// boxes are ComponentWidth x ComponentHeight on this grid.
	GridUnit        = 20.0
	ComponentWidth  = 2 * GridUnit
	ComponentHeight = GridUnit

	// HitRadius is the maximum distance at which a terminal hit-test
	// matches. The comparison is strict: a terminal exactly HitRadius
	// away does not match.
	HitRadius = 12.0

	// Validation constants
	MaxSolverSwitches   = 16
	WebSocketBufferSize = 256
)

// typeInfo describes the fixed terminal set and behavior flags of a
// component type.
type typeInfo struct {
	terminals []string
	hasState  bool
	isNode    bool
}

// componentTypes is the closed set of supported component types. Adding a
// new type means adding a row here and a layout in terminalLayouts.
var componentTypes = map[ComponentType]typeInfo{
	Battery:  {terminals: []string{TerminalNeg, TerminalPos}},
	Bulb:     {terminals: []string{TerminalLeft, TerminalRight}},
	Switch:   {terminals: []string{TerminalLeft, TerminalRight}, hasState: true},
	Motor:    {terminals: []string{TerminalLeft, TerminalRight}},
	Buzzer:   {terminals: []string{TerminalLeft, TerminalRight}},
	WireNode: {terminals: []string{TerminalA, TerminalB, TerminalC, TerminalD}, isNode: true},
}

// allComponentTypes fixes an iteration order for listings and validation.
var allComponentTypes = []ComponentType{Battery, Bulb, Switch, Motor, Buzzer, WireNode}

// AllComponentTypes returns every supported component type in a fixed order.
func AllComponentTypes() []ComponentType {
	out := make([]ComponentType, len(allComponentTypes))
	copy(out, allComponentTypes)
	return out
}

// Valid reports whether t is a known component type.
func (t ComponentType) Valid() bool {
	_, ok := componentTypes[t]
	return ok
}

// Terminals returns the ordered terminal names of the type, or nil for an
// unknown type.
func (t ComponentType) Terminals() []string {
	info, ok := componentTypes[t]
	if !ok {
		return nil
	}
	return info.terminals
}

// HasState reports whether the type carries an open/closed state (switches).
func (t ComponentType) HasState() bool {
	return componentTypes[t].hasState
}

// IsNode reports whether the type is a junction whose terminals are all
// mutually connected.
func (t ComponentType) IsNode() bool {
	return componentTypes[t].isNode
}

// HasTerminal reports whether name is a valid terminal for the type.
func (t ComponentType) HasTerminal(name string) bool {
	for _, term := range t.Terminals() {
		if term == name {
			return true
		}
	}
	return false
}

// Component is a placed electrical component. X,Y is the top-left corner of
// its bounding box and is always a multiple of GridUnit. State is meaningful
// only for switches: false = open (non-conducting), true = closed.
type Component struct {
	ID    int           `json:"id"`
	Type  ComponentType `json:"type"`
	X     float64       `json:"x"`
	Y     float64       `json:"y"`
	State bool          `json:"state,omitempty"`
}

// TerminalRef identifies one terminal of one component.
type TerminalRef struct {
	ComponentID int    `json:"component_id"`
	Terminal    string `json:"terminal"`
}

// Wire is an undirected connection between two terminals. Endpoints hold
// component ids only; removing a component must cascade-remove its wires.
type Wire struct {
	ID   int         `json:"id"`
	From TerminalRef `json:"from"`
	To   TerminalRef `json:"to"`
}

// Connects reports whether the wire links the unordered terminal pair {a,b}.
func (w Wire) Connects(a, b TerminalRef) bool {
	return (w.From == a && w.To == b) || (w.From == b && w.To == a)
}

// Touches reports whether either endpoint references the component id.
func (w Wire) Touches(componentID int) bool {
	return w.From.ComponentID == componentID || w.To.ComponentID == componentID
}

// Point is a position in grid coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Terminal pairs a terminal reference with its derived position.
type Terminal struct {
	Ref TerminalRef `json:"ref"`
	Pos Point       `json:"pos"`
}

// CircuitState is the complete serializable state of one circuit. Powered is
// derived and refreshed after every mutation. The Next* cursors belong to the
// circuit-scoped id allocators so a restored state keeps allocating unique
// ids.
type CircuitState struct {
	Components      []Component   `json:"components"`
	Wires           []Wire        `json:"wires"`
	Powered         []int         `json:"powered"`
	ConfigName      string        `json:"config_name"`
	Message         string        `json:"message,omitempty"`
	History         []ActionEntry `json:"history"`
	TotalActions    int           `json:"total_actions"`
	NextComponentID int           `json:"next_component_id"`
	NextWireID      int           `json:"next_wire_id"`
}

// ActionEntry records a single mutation in the circuit history.
type ActionEntry struct {
	Action       string `json:"action"`
	Detail       string `json:"detail,omitempty"`
	Success      bool   `json:"success"`
	Timestamp    int64  `json:"timestamp"`
	ActionNumber int    `json:"action_number"`
}

// ChallengeStatus is the evaluation outcome of one challenge.
type ChallengeStatus struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Passed      bool   `json:"passed"`
}
