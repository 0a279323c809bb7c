package engine

import "testing"

func createTestConfig() *LabConfig {
	config := &LabConfig{
		Name:        "Engine Test Lab",
		Description: "Configuration for engine integration tests",
		Palette: map[ComponentType]int{
			Battery:  1,
			Bulb:     2,
			Switch:   1,
			Motor:    1,
			Buzzer:   1,
			WireNode: 4,
		},
		Starting: []PlacedComponent{
			{Type: Battery, X: 2 * GridUnit, Y: 2 * GridUnit},
			{Type: Bulb, X: 2 * GridUnit, Y: 6 * GridUnit},
		},
		Challenges: []ChallengeRule{
			{ID: "light-bulb", Title: "Light the bulb", Kind: RulePoweredType, Type: Bulb},
		},
	}
	config.Messages.Welcome = "Welcome to the test lab!"
	config.Messages.ChallengePassed = "Challenge complete: %s"
	config.Messages.AllChallengesPassed = "All done!"
	config.Messages.DuplicateWire = "Already connected"
	config.Messages.NoTerminal = "Nothing there"
	config.Messages.PaletteExhausted = "No more %s left"
	return config
}

func TestValidateLabConfig(t *testing.T) {
	if err := ValidateLabConfig(createTestConfig()); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*LabConfig)
	}{
		{"nil handled separately", nil},
		{"empty name", func(c *LabConfig) { c.Name = "" }},
		{"unknown palette type", func(c *LabConfig) { c.Palette["resistor"] = 1 }},
		{"zero palette limit", func(c *LabConfig) { c.Palette[Bulb] = 0 }},
		{"unknown starting type", func(c *LabConfig) { c.Starting[0].Type = "capacitor" }},
		{"off-grid starting position", func(c *LabConfig) { c.Starting[0].X = 17 }},
		{"closed on stateless type", func(c *LabConfig) { c.Starting[1].Closed = true }},
		{"bad challenge rule", func(c *LabConfig) { c.Challenges[0].Kind = "nope" }},
	}

	if err := ValidateLabConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}

	for _, tt := range tests {
		if tt.mutate == nil {
			continue
		}
		config := createTestConfig()
		tt.mutate(config)
		if err := ValidateLabConfig(config); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestInitCircuitStateFromConfig(t *testing.T) {
	config := createTestConfig()
	state := InitCircuitStateFromConfig(config)

	if len(state.Components) != 2 {
		t.Fatalf("Expected 2 starting components, got %d", len(state.Components))
	}
	if state.Components[0].ID == state.Components[1].ID {
		t.Error("Starting components share an id")
	}
	if state.NextComponentID != 3 {
		t.Errorf("Expected next component id 3, got %d", state.NextComponentID)
	}
	if state.NextWireID != 1 {
		t.Errorf("Expected next wire id 1, got %d", state.NextWireID)
	}
	if len(state.Wires) != 0 {
		t.Errorf("Expected no starting wires, got %d", len(state.Wires))
	}
	if len(state.Powered) != 0 {
		t.Errorf("Expected nothing powered initially, got %v", state.Powered)
	}
	if state.ConfigName != config.Name {
		t.Errorf("Expected config name %q, got %q", config.Name, state.ConfigName)
	}
	if state.Message != config.Messages.Welcome {
		t.Errorf("Expected welcome message, got %q", state.Message)
	}
}

func TestInitCircuitStateFromConfig_NilUsesDefault(t *testing.T) {
	state := InitCircuitStateFromConfig(nil)
	if state.ConfigName != "default" {
		t.Errorf("Expected default lab, got %q", state.ConfigName)
	}
	if len(state.Components) == 0 {
		t.Error("Expected default lab to pre-place components")
	}
}

func TestDefaultLabConfig_Valid(t *testing.T) {
	if err := ValidateLabConfig(DefaultLabConfig()); err != nil {
		t.Errorf("Built-in default lab config is invalid: %v", err)
	}
}

func TestPaletteAllows(t *testing.T) {
	config := createTestConfig()
	components := []Component{{ID: 1, Type: Battery}}

	if config.PaletteAllows(components, Battery) {
		t.Error("Palette limit of 1 battery should be exhausted")
	}
	if !config.PaletteAllows(components, Bulb) {
		t.Error("Bulbs should still be available")
	}

	// A type absent from a non-empty palette is not placeable...
	config.Palette = map[ComponentType]int{Bulb: 1}
	if config.PaletteAllows(components, Battery) {
		t.Error("Type absent from palette should not be placeable")
	}

	// ...but an empty palette allows everything.
	config.Palette = nil
	if !config.PaletteAllows(components, Battery) {
		t.Error("Empty palette should allow every type")
	}
}

func TestBoundingBox(t *testing.T) {
	if _, _, _, _, ok := BoundingBox(nil); ok {
		t.Error("Expected no bounding box for empty roster")
	}

	components := []Component{
		{ID: 1, Type: Battery, X: 0, Y: 0},
		{ID: 2, Type: Bulb, X: 100, Y: 60},
	}
	minX, minY, maxX, maxY, ok := BoundingBox(components)
	if !ok {
		t.Fatal("Expected a bounding box")
	}
	if minX != 0 || minY != 0 {
		t.Errorf("Expected min corner (0,0), got (%g,%g)", minX, minY)
	}
	if maxX != 100+ComponentWidth || maxY != 60+ComponentHeight {
		t.Errorf("Expected max corner (%g,%g), got (%g,%g)",
			100+ComponentWidth, 60+ComponentHeight, maxX, maxY)
	}
}
