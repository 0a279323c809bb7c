package engine

import "math"

// Snap maps a continuous coordinate to the nearest multiple of GridUnit.
// Ties resolve toward positive infinity (round half up), so Snap is
// idempotent and Snap(k*GridUnit - GridUnit/2) == k*GridUnit.
func Snap(v float64) float64 {
	return math.Floor(v/GridUnit+0.5) * GridUnit
}

// SnapPoint snaps both coordinates of a position.
func SnapPoint(x, y float64) (float64, float64) {
	return Snap(x), Snap(y)
}

// terminalOffset places a named terminal relative to a component's top-left
// corner.
type terminalOffset struct {
	name   string
	dx, dy float64
}

// terminalLayouts fixes terminal positions per type over the 2G x G bounding
// box. Order here is the deterministic terminal order used by hit-testing.
var terminalLayouts = map[ComponentType][]terminalOffset{
	Battery: {
		{TerminalNeg, 0, ComponentHeight / 2},
		{TerminalPos, ComponentWidth, ComponentHeight / 2},
	},
	Bulb: {
		{TerminalLeft, 0, ComponentHeight / 2},
		{TerminalRight, ComponentWidth, ComponentHeight / 2},
	},
	Switch: {
		{TerminalLeft, 0, ComponentHeight / 2},
		{TerminalRight, ComponentWidth, ComponentHeight / 2},
	},
	Motor: {
		{TerminalLeft, 0, ComponentHeight / 2},
		{TerminalRight, ComponentWidth, ComponentHeight / 2},
	},
	Buzzer: {
		{TerminalLeft, 0, ComponentHeight / 2},
		{TerminalRight, ComponentWidth, ComponentHeight / 2},
	},
	WireNode: {
		{TerminalA, ComponentWidth / 2, 0},
		{TerminalB, ComponentWidth, ComponentHeight / 2},
		{TerminalC, ComponentWidth / 2, ComponentHeight},
		{TerminalD, 0, ComponentHeight / 2},
	},
}

// TerminalsOf derives the terminals of a component from its type and
// position. The result is translation-equivariant: moving the component by
// (dx,dy) moves every terminal by the same offset. Unknown types yield nil.
func TerminalsOf(c Component) []Terminal {
	layout, ok := terminalLayouts[c.Type]
	if !ok {
		return nil
	}

	terminals := make([]Terminal, 0, len(layout))
	for _, off := range layout {
		terminals = append(terminals, Terminal{
			Ref: TerminalRef{ComponentID: c.ID, Terminal: off.name},
			Pos: Point{X: c.X + off.dx, Y: c.Y + off.dy},
		})
	}
	return terminals
}

// TerminalPosition returns the position of one named terminal of a component.
// The boolean is false when the terminal name is not valid for the type.
func TerminalPosition(c Component, terminal string) (Point, bool) {
	for _, t := range TerminalsOf(c) {
		if t.Ref.Terminal == terminal {
			return t.Pos, true
		}
	}
	return Point{}, false
}
