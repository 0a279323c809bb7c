// Package session provides session management for the Circuit Lab.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - File-based session persistence
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// FilePersistence stores session snapshots as JSON files so circuits survive
// server restarts. SessionPersistence is the interface between the two, which
// lets the manager run fully in-memory when no persistence is configured.
//
// Session Identifiers:
//
// Sessions use 4-character alphanumeric IDs for easy reference. The manager
// ensures IDs are unique and provides collision-resistant generation using
// cryptographic randomness.
//
// Persistence:
//
// When constructed with NewManagerWithPersistence, every Create, Save, and
// Delete is mirrored to disk. Get falls back to loading from disk when a
// session is not in memory, and LoadPersistedSessions restores everything at
// startup. Snapshots store the circuit state and the config id; the engine is
// rebuilt from both on load.
//
// Concurrency:
//
// The session manager is thread-safe and supports concurrent operations.
// Multiple goroutines can safely create, retrieve, and modify different
// sessions simultaneously. Internal locking ensures data consistency.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions", configManager)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//
//	// Restore sessions from a previous run
//	if err := manager.LoadPersistedSessions(); err != nil {
//		log.Printf("Warning: %v", err)
//	}
//
//	// Create a new session
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Cleanup:
//
// Sessions can be explicitly deleted or expire based on inactivity via
// CleanupExpiredSessions. DeleteFromMemory evicts a session without touching
// its file, which the server uses to mirror external file deletions.
package session
