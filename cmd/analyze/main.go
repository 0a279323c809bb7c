// Command analyze prints quick, human-readable heuristics about lab
// configuration files in the project's configs directory. It summarizes the
// palette, starting layout, bounding box, and challenge list, and highlights
// challenges the starting circuit already satisfies before the user touches
// anything.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wricardo/circuit-lab/circuit/engine"
)

func main() {
	configs := []string{
		"intro.json",
		"switch.json",
		"series.json",
		"all_three.json",
	}

	for _, configFile := range configs {
		fmt.Printf("\n=== Analyzing %s ===\n", configFile)
		analyzeConfig(filepath.Join("configs", configFile))
	}
}

func analyzeConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var config engine.LabConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Description: %s\n", config.Description)

	// Palette summary
	if len(config.Palette) == 0 {
		fmt.Printf("Palette: unrestricted (every type placeable)\n")
	} else {
		fmt.Printf("Palette:\n")
		for _, t := range engine.AllComponentTypes() {
			if limit, ok := config.Palette[t]; ok {
				fmt.Printf("  %-10s max %d\n", t, limit)
			}
		}
	}

	// Starting layout summary
	state := engine.InitCircuitStateFromConfig(&config)
	counts := map[engine.ComponentType]int{}
	switches := 0
	for _, c := range state.Components {
		counts[c.Type]++
		if c.Type == engine.Switch {
			switches++
		}
	}

	fmt.Printf("Starting components: %d\n", len(state.Components))
	for _, t := range engine.AllComponentTypes() {
		if counts[t] > 0 {
			fmt.Printf("  %-10s %d\n", t, counts[t])
		}
	}

	if minX, minY, maxX, maxY, ok := engine.BoundingBox(state.Components); ok {
		fmt.Printf("Bounding box: (%g, %g) to (%g, %g)\n", minX, minY, maxX, maxY)
	}

	if switches > engine.MaxSolverSwitches {
		fmt.Printf("⚠️  WARNING: %d switches in starting layout exceeds the solver limit of %d\n",
			switches, engine.MaxSolverSwitches)
	}

	// Challenge summary and pre-pass check
	challenges, err := engine.BuildChallenges(config.Challenges)
	if err != nil {
		fmt.Printf("⚠️  WARNING: invalid challenges: %v\n", err)
		return
	}

	fmt.Printf("Challenges: %d\n", len(challenges))
	prePassed := 0
	for _, challenge := range challenges {
		status := challenge.Evaluate(state.Components, state.Wires)
		marker := " "
		if status.Passed {
			marker = "⚠"
			prePassed++
		}
		fmt.Printf("  %s %s — %s\n", marker, status.Title, status.Description)
	}

	if prePassed > 0 {
		fmt.Printf("⚠️  WARNING: %d/%d challenges already pass with the starting layout alone\n",
			prePassed, len(challenges))
	} else if len(challenges) > 0 {
		fmt.Printf("✅ No challenge passes before the user builds anything\n")
	}
}
