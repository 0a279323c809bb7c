// Package mcp provides a Model Context Protocol interface for the Circuit Lab.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for every circuit operation
//   - A thin proxy that forwards all requests to the REST API
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - circuit_state: Get the current circuit (components, wires, powered set)
//   - place_component: Place a component; positions snap to the grid
//   - move_component: Move an existing component
//   - toggle_switch: Open or close a switch
//   - connect_wire: Connect two component terminals
//   - disconnect_wire: Remove a wire
//   - remove_component: Remove a component and its wires
//   - hit_terminal: Find the terminal nearest a point
//   - challenges: List challenges with pass/fail status
//   - solve_challenge: Search switch assignments for a challenge
//   - reset_circuit: Reset to the lab's starting layout
//   - action_history: Retrieve action history with pagination
//   - create_session: Create a new lab session with config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available lab configurations
//   - lab_instructions: Full rules and strategy notes
//
// Architecture:
//
// The client holds no circuit state of its own. Every tool call becomes an
// HTTP request against the REST API, so MCP clients and browser clients
// always see the same session state.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Build and rewire circuits autonomously
//   - Check challenge status after each mutation
//   - Use the solver to distinguish wiring problems from switch problems
//   - Manage multiple lab sessions independently
package mcp
