// Package api provides HTTP REST API handlers for the Circuit Lab.
//
// The api package implements:
//   - RESTful endpoints for circuit operations
//   - Session management endpoints
//   - Configuration listing and creation
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (optional config name in body)
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Circuit Operations:
//   - GET /api/sessions/{id}/state - Get current circuit state
//   - POST /api/sessions/{id}/components - Place a component
//   - POST /api/sessions/{id}/components/{componentId}/move - Move a component
//   - POST /api/sessions/{id}/components/{componentId}/toggle - Toggle a switch
//   - DELETE /api/sessions/{id}/components/{componentId} - Remove component and its wires
//   - POST /api/sessions/{id}/wires - Connect two terminals
//   - DELETE /api/sessions/{id}/wires/{wireId} - Disconnect a wire
//   - GET /api/sessions/{id}/hit-terminal?x=..&y=.. - Terminal hit-test
//   - POST /api/sessions/{id}/reset - Reset circuit to starting layout
//   - GET /api/sessions/{id}/history - Get action history with pagination
//
// Challenges:
//   - GET /api/sessions/{id}/challenges - Current challenge statuses
//   - POST /api/sessions/{id}/challenges/{challengeId}/solve - Run the switch solver
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a new configuration
//   - GET /api/configs/{name} - Get a configuration by id
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Mutations return a MutationResult
// with the fresh circuit state, the events the change produced, and the
// challenge statuses after the change:
//
//	{
//	  "success": true,
//	  "circuit_state": { ... },
//	  "events": [{"type": "powered_on", "component": 2, ...}],
//	  "challenges": [{"id": "light-bulb", "passed": true, ...}]
//	}
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	server := api.NewServer(circuitService, hub)
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message",
//	  "code": 404
//	}
//
// Engine sentinel errors map to statuses: not-found errors to 404, duplicate
// wires and self-loops to 409, and invalid input (unknown type, bad terminal,
// palette exhausted, not a switch) to 400.
package api
