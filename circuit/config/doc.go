// Package config provides configuration management for the Circuit Lab.
//
// The config package handles:
//   - Loading lab configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Lab configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Palette limits per component type (empty palette = unrestricted)
//   - Starting components pre-placed on the board
//   - Challenge rules (powered_type, powered_count, all_types_powered)
//   - Lab messages for various events
//
// Available Configurations:
//
// The package ships with labs of increasing difficulty:
//   - intro: battery and bulb, one wire loop to close
//   - switch: adds a switch the user must close
//   - series: two bulbs in series on a restricted palette
//   - all_three: bulb, motor, and buzzer all powered at once
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	labConfig, err := manager.LoadConfig("intro")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for:
//   - Known component types in palette and starting layout
//   - Grid-aligned starting positions
//   - Well-formed challenge rules with unique ids
//   - Required message templates
package config
