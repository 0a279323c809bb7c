// Package engine provides the core circuit logic for the Circuit Lab.
//
// The engine package implements the connectivity and power-propagation
// mechanics including:
//   - Grid snapping and terminal topology resolution
//   - Terminal hit-testing with a fixed tolerance
//   - Undirected wire storage with duplicate detection and cascade deletion
//   - Breadth-first power propagation per battery
//   - Challenge predicates over the powered set
//
// Core Types:
//
// The Engine interface defines the main contract for circuit operations,
// implemented by CircuitEngine. CircuitState represents the current circuit
// (component roster, wire set, derived powered set), while LabConfig defines
// the lab rules, starting components, and challenges loaded from JSON files.
//
// Usage:
//
//	eng, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	battery, _ := eng.PlaceComponent(engine.Battery, 40, 40)
//	bulb, _ := eng.PlaceComponent(engine.Bulb, 40, 120)
//	eng.ConnectTerminals(
//		engine.TerminalRef{ComponentID: battery.ID, Terminal: engine.TerminalPos},
//		engine.TerminalRef{ComponentID: bulb.ID, Terminal: engine.TerminalLeft},
//	)
//	powered := eng.Powered()
//
// Power Model:
//
// The engine answers a boolean reachability question only: a component is
// powered when a battery's pos terminal reaches its own neg terminal through
// wires and type-dependent internal links of nonzero length. Passive devices
// conduct unconditionally, switches conduct while closed, batteries are never
// crossed internally. There is no current, voltage, or resistance model.
package engine
