package engine

import "fmt"

// Challenge is a named pass/fail predicate over a circuit. Predicates are
// pure and stateless: they recompute the powered set from the inputs and can
// be re-evaluated after every mutation. Ordering and unlocking of challenges
// is a caller concern.
type Challenge struct {
	ID          string
	Title       string
	Description string
	Require     func(components []Component, wires []Wire) bool
}

// Evaluate runs the predicate and wraps the result for transport.
func (c Challenge) Evaluate(components []Component, wires []Wire) ChallengeStatus {
	return ChallengeStatus{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Passed:      c.Require(components, wires),
	}
}

// poweredTypes collects the component types present in the powered set.
func poweredTypes(components []Component, wires []Wire) map[ComponentType]int {
	powered := CheckPowered(components, wires)
	counts := make(map[ComponentType]int)
	for _, c := range components {
		if powered[c.ID] {
			counts[c.Type]++
		}
	}
	return counts
}

// PoweredTypeChallenge requires at least one powered component of the type.
func PoweredTypeChallenge(id, title, description string, t ComponentType) Challenge {
	return Challenge{
		ID:          id,
		Title:       title,
		Description: description,
		Require: func(components []Component, wires []Wire) bool {
			return poweredTypes(components, wires)[t] > 0
		},
	}
}

// PoweredCountChallenge requires at least count powered components of the type.
func PoweredCountChallenge(id, title, description string, t ComponentType, count int) Challenge {
	return Challenge{
		ID:          id,
		Title:       title,
		Description: description,
		Require: func(components []Component, wires []Wire) bool {
			return poweredTypes(components, wires)[t] >= count
		},
	}
}

// AllTypesPoweredChallenge requires a powered component of every listed type
// simultaneously.
func AllTypesPoweredChallenge(id, title, description string, types ...ComponentType) Challenge {
	required := make([]ComponentType, len(types))
	copy(required, types)
	return Challenge{
		ID:          id,
		Title:       title,
		Description: description,
		Require: func(components []Component, wires []Wire) bool {
			counts := poweredTypes(components, wires)
			for _, t := range required {
				if counts[t] == 0 {
					return false
				}
			}
			return true
		},
	}
}

// Challenge rule kinds understood by BuildChallenge.
const (
	RulePoweredType     = "powered_type"
	RulePoweredCount    = "powered_count"
	RuleAllTypesPowered = "all_types_powered"
)

// ChallengeRule is the declarative JSON form of a challenge in a lab config.
type ChallengeRule struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Kind        string          `json:"kind"`
	Type        ComponentType   `json:"type,omitempty"`
	Types       []ComponentType `json:"types,omitempty"`
	Count       int             `json:"count,omitempty"`
}

// BuildChallenge compiles a declarative rule into a Challenge.
func BuildChallenge(rule ChallengeRule) (Challenge, error) {
	if rule.ID == "" {
		return Challenge{}, fmt.Errorf("challenge rule missing id")
	}

	switch rule.Kind {
	case RulePoweredType:
		if !rule.Type.Valid() {
			return Challenge{}, fmt.Errorf("challenge %s: unknown component type %q", rule.ID, rule.Type)
		}
		return PoweredTypeChallenge(rule.ID, rule.Title, rule.Description, rule.Type), nil

	case RulePoweredCount:
		if !rule.Type.Valid() {
			return Challenge{}, fmt.Errorf("challenge %s: unknown component type %q", rule.ID, rule.Type)
		}
		if rule.Count < 1 {
			return Challenge{}, fmt.Errorf("challenge %s: count must be positive, got %d", rule.ID, rule.Count)
		}
		return PoweredCountChallenge(rule.ID, rule.Title, rule.Description, rule.Type, rule.Count), nil

	case RuleAllTypesPowered:
		if len(rule.Types) == 0 {
			return Challenge{}, fmt.Errorf("challenge %s: types list is empty", rule.ID)
		}
		for _, t := range rule.Types {
			if !t.Valid() {
				return Challenge{}, fmt.Errorf("challenge %s: unknown component type %q", rule.ID, t)
			}
		}
		return AllTypesPoweredChallenge(rule.ID, rule.Title, rule.Description, rule.Types...), nil

	default:
		return Challenge{}, fmt.Errorf("challenge %s: unknown kind %q", rule.ID, rule.Kind)
	}
}

// BuildChallenges compiles every rule, failing on the first invalid one.
func BuildChallenges(rules []ChallengeRule) ([]Challenge, error) {
	challenges := make([]Challenge, 0, len(rules))
	for _, rule := range rules {
		challenge, err := BuildChallenge(rule)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, challenge)
	}
	return challenges, nil
}
