// Command validate provides a small CLI that validates lab configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Known component types in palette and starting layout
//   - Grid alignment of starting positions
//   - Overlapping starting components
//   - Challenge rule structure and duplicate challenge ids
//   - Required message keys
//   - Satisfiability: each challenge's required types are available via the
//     palette or the starting layout
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/circuit-lab/circuit/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
// It performs structural checks, starting layout validation, message
// presence, and challenge satisfiability analysis.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.LabConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	// Structural validation shared with the engine
	if err := engine.ValidateLabConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
	}

	// Overlapping starting components
	seen := map[string]int{}
	for i, pc := range config.Starting {
		key := fmt.Sprintf("%g,%g", engine.Snap(pc.X), engine.Snap(pc.Y))
		if prev, ok := seen[key]; ok {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Starting components %d and %d overlap at (%s)", prev+1, i+1, key))
		}
		seen[key] = i
	}

	// Duplicate challenge ids
	ids := map[string]bool{}
	for _, rule := range config.Challenges {
		if rule.ID == "" {
			continue // already reported by ValidateLabConfig
		}
		if ids[rule.ID] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Duplicate challenge id: %s", rule.ID))
		}
		ids[rule.ID] = true
	}

	// Validate messages
	messages := map[string]string{
		"welcome":               config.Messages.Welcome,
		"challenge_passed":      config.Messages.ChallengePassed,
		"all_challenges_passed": config.Messages.AllChallengesPassed,
		"duplicate_wire":        config.Messages.DuplicateWire,
		"no_terminal":           config.Messages.NoTerminal,
		"palette_exhausted":     config.Messages.PaletteExhausted,
	}
	for key, value := range messages {
		if value == "" {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Missing required message: %s", key))
		}
	}

	// Satisfiability validation - check each challenge against the palette
	if result.Valid {
		satResult := validateSatisfiability(&config)
		result.Errors = append(result.Errors, satResult.Errors...)
		if !satResult.Valid {
			result.Valid = false
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		if len(config.Palette) == 0 {
			result.Errors = append(result.Errors, "✓ Palette: unrestricted")
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Palette: %d restricted types", len(config.Palette)))
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Starting components: %d", len(config.Starting)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Challenges: %d", len(config.Challenges)))
	}

	return result
}

// validateSatisfiability checks that every challenge can be completed with
// the components the lab makes available. A component type is available when
// the palette is unrestricted, when the palette grants at least the required
// count, or when enough units already sit in the starting layout. It also
// requires a battery to be available, since nothing conducts without one.
func validateSatisfiability(config *engine.LabConfig) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	starting := map[engine.ComponentType]int{}
	for _, pc := range config.Starting {
		starting[pc.Type]++
	}

	// available returns the maximum number of components of the type the
	// user can have on the board at once.
	available := func(t engine.ComponentType) int {
		if len(config.Palette) == 0 {
			return 1 << 16 // unrestricted
		}
		limit := config.Palette[t]
		if count := starting[t]; count > limit {
			// Starting components exist regardless of the palette.
			limit = count
		}
		return limit
	}

	if len(config.Challenges) > 0 && available(engine.Battery) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Challenges exist but no battery is available from the palette or starting layout")
	}

	for _, rule := range config.Challenges {
		switch rule.Kind {
		case engine.RulePoweredType:
			if available(rule.Type) == 0 {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Challenge %s requires a powered %s but none is available", rule.ID, rule.Type))
			}
		case engine.RulePoweredCount:
			if got := available(rule.Type); got < rule.Count {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Challenge %s requires %d powered %s but only %d available", rule.ID, rule.Count, rule.Type, got))
			}
		case engine.RuleAllTypesPowered:
			for _, t := range rule.Types {
				if available(t) == 0 {
					result.Valid = false
					result.Errors = append(result.Errors, fmt.Sprintf("Challenge %s requires a powered %s but none is available", rule.ID, t))
				}
			}
		}
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Satisfiability: all %d challenges achievable with the available components", len(config.Challenges)))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
