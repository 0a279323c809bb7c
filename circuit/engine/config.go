package engine

import (
	"fmt"
	"math"
)

// PlacedComponent is a component pre-placed by a lab config before the user
// starts wiring. Closed applies to switches only.
type PlacedComponent struct {
	Type   ComponentType `json:"type"`
	X      float64       `json:"x"`
	Y      float64       `json:"y"`
	Closed bool          `json:"closed,omitempty"`
}

// LabConfig describes one pedagogical lab: which components the user may
// place, what is already on the board, and which challenges to evaluate.
type LabConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Palette limits placement per component type. An empty palette allows
	// every type without limit; otherwise a type must appear here to be
	// placeable and its value is the maximum count on the board.
	Palette map[ComponentType]int `json:"palette,omitempty"`

	Starting   []PlacedComponent `json:"starting,omitempty"`
	Challenges []ChallengeRule   `json:"challenges"`

	Messages struct {
		Welcome             string `json:"welcome"`
		ChallengePassed     string `json:"challenge_passed"`
		AllChallengesPassed string `json:"all_challenges_passed"`
		DuplicateWire       string `json:"duplicate_wire"`
		NoTerminal          string `json:"no_terminal"`
		PaletteExhausted    string `json:"palette_exhausted"`
	} `json:"messages"`
}

// ValidateLabConfig checks a lab config for structural problems: unknown
// component types, off-grid starting positions, non-positive palette limits,
// and invalid challenge rules.
func ValidateLabConfig(config *LabConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config name is required")
	}

	for t, limit := range config.Palette {
		if !t.Valid() {
			return fmt.Errorf("palette: unknown component type %q", t)
		}
		if limit < 1 {
			return fmt.Errorf("palette: limit for %s must be positive, got %d", t, limit)
		}
	}

	for i, pc := range config.Starting {
		if !pc.Type.Valid() {
			return fmt.Errorf("starting component %d: unknown type %q", i+1, pc.Type)
		}
		if pc.X != Snap(pc.X) || pc.Y != Snap(pc.Y) {
			return fmt.Errorf("starting component %d: position (%g,%g) is not grid-aligned", i+1, pc.X, pc.Y)
		}
		if pc.Closed && !pc.Type.HasState() {
			return fmt.Errorf("starting component %d: %s has no open/closed state", i+1, pc.Type)
		}
	}

	if _, err := BuildChallenges(config.Challenges); err != nil {
		return err
	}

	return nil
}

// InitCircuitStateFromConfig builds the initial circuit state: starting
// components placed with freshly allocated ids, an empty wire set, and the
// derived powered set.
func InitCircuitStateFromConfig(config *LabConfig) *CircuitState {
	if config == nil {
		config = DefaultLabConfig()
	}

	ids := NewIDAllocator(1)
	components := make([]Component, 0, len(config.Starting))
	for _, pc := range config.Starting {
		components = append(components, Component{
			ID:    ids.Next(),
			Type:  pc.Type,
			X:     Snap(pc.X),
			Y:     Snap(pc.Y),
			State: pc.Closed && pc.Type.HasState(),
		})
	}

	return &CircuitState{
		Components:      components,
		Wires:           []Wire{},
		Powered:         PoweredIDs(components, nil),
		ConfigName:      config.Name,
		Message:         config.Messages.Welcome,
		History:         []ActionEntry{},
		NextComponentID: ids.Peek(),
		NextWireID:      1,
	}
}

// DefaultLabConfig returns a minimal built-in lab: a free palette, one
// battery and one bulb on the board, and a single light-the-bulb challenge.
func DefaultLabConfig() *LabConfig {
	config := &LabConfig{
		Name:        "default",
		Description: "Free play: light a bulb",
		Starting: []PlacedComponent{
			{Type: Battery, X: 2 * GridUnit, Y: 2 * GridUnit},
			{Type: Bulb, X: 2 * GridUnit, Y: 6 * GridUnit},
		},
		Challenges: []ChallengeRule{
			{
				ID:          "light-bulb",
				Title:       "Light the bulb",
				Description: "Wire the battery to the bulb so it lights up",
				Kind:        RulePoweredType,
				Type:        Bulb,
			},
		},
	}
	config.Messages.Welcome = "Welcome to the circuit lab!"
	config.Messages.ChallengePassed = "Challenge complete: %s"
	config.Messages.AllChallengesPassed = "All challenges complete!"
	config.Messages.DuplicateWire = "Those terminals are already connected"
	config.Messages.NoTerminal = "No terminal near that point"
	config.Messages.PaletteExhausted = "No more %s components available"
	return config
}

// PaletteAllows reports whether the config permits placing another component
// of the type given the current roster.
func (config *LabConfig) PaletteAllows(components []Component, t ComponentType) bool {
	if len(config.Palette) == 0 {
		return true
	}
	limit, ok := config.Palette[t]
	if !ok {
		return false
	}
	return CountComponentsOfType(components, t) < limit
}

// BoundingBox returns the extent of the placed circuit, used by clients to
// fit the view. Returns false for an empty roster.
func BoundingBox(components []Component) (minX, minY, maxX, maxY float64, ok bool) {
	if len(components) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, c := range components {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X+ComponentWidth)
		maxY = math.Max(maxY, c.Y+ComponentHeight)
	}
	return minX, minY, maxX, maxY, true
}
