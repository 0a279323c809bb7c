// Package service provides the business logic layer for the Circuit Lab.
//
// The service package implements:
//   - Multi-session circuit management
//   - Configuration management and loading
//   - Mutation processing with event extraction
//   - Challenge evaluation and solving
//   - Action history tracking
//
// Core Interfaces:
//
// CircuitService is the main service interface providing high-level lab
// operations. SessionManager handles session creation, retrieval, and
// lifecycle. ConfigManager manages lab configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the circuit engine, providing session isolation, configuration management,
// and business logic orchestration. Each session maintains its own engine
// instance with independent state.
//
// Events:
//
// Every mutation compares the powered set and challenge statuses before and
// after the change and emits LabEvents for the differences: powered_on and
// powered_off per component, challenge_passed per newly satisfied challenge,
// and all_challenges_passed once when the last one falls. Transports forward
// these to clients without re-deriving them.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	circuitService := service.NewCircuitService(sessionMgr, configMgr)
//
//	// Create a new session
//	sessionInfo, err := circuitService.CreateSession(ctx, "intro")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Mutate the circuit
//	result, err := circuitService.ConnectTerminals(ctx, sessionInfo.ID, from, to)
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain independent
// circuit state. Multiple sessions can run concurrently with different
// configurations. Sessions track creation time, last access time, and action
// history, and are persisted after every successful mutation.
package service
