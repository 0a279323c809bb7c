// Package websocket provides WebSocket transport for the Circuit Lab.
//
// The websocket package implements:
//   - Real-time state broadcasting to connected clients
//   - Session-aware connection routing
//   - Event fan-out for power and challenge changes
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded and carry either a full circuit state
// snapshot or a single event:
//   - State: {session_id: "abc1", circuit_state: {...}}
//   - Event: {session_id: "abc1", event: "challenge_passed", data: {...}}
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?sessionId=abc1) when establishing the connection.
// State updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// After a mutation:
//	hub.BroadcastToSession(sessionID, result.CircuitState)
//	for _, event := range result.Events {
//		hub.BroadcastEvent(sessionID, event.Type, event)
//	}
//
// Connection Lifecycle:
//
//  1. Client connects with session ID
//  2. Connection registered with hub
//  3. Initial state sent to client
//  4. Client receives state and event updates as the circuit changes
//  5. Disconnection triggers cleanup
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive messages
// simultaneously without blocking each other.
package websocket
