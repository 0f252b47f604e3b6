// Package animation models the catalog's closed animation-state enumeration.
//
// The fourteen states are seeded into the animation_states table with their
// default sprite-sheet playback settings. Fixtures, manifest validation, and
// integrity checks all resolve state names through this package so the
// enumeration has a single authoritative definition in code.
package animation

import "strings"

// State identifies one of the catalog's animation states. The numeric value
// is the seeded state_id column and must never be reordered.
type State int

const (
	StateIdle State = iota
	StateWalking
	StateRunning
	StateAttacking1
	StateAttacking2
	StateAttacking3
	StateHurt
	StateDead
	StateSpecialSkill
	StateJumping
	StateRunningAttack
	StateProjectile
	StateEffect
	StateDying
)

// StateCount is the size of the closed enumeration.
const StateCount = 14

type stateSpec struct {
	name             string
	defaultFrameRate float64
	defaultLoop      bool
}

var stateSpecs = [StateCount]stateSpec{
	StateIdle:          {name: "idle", defaultFrameRate: 12, defaultLoop: true},
	StateWalking:       {name: "walking", defaultFrameRate: 24, defaultLoop: true},
	StateRunning:       {name: "running", defaultFrameRate: 24, defaultLoop: true},
	StateAttacking1:    {name: "attacking_1", defaultFrameRate: 20},
	StateAttacking2:    {name: "attacking_2", defaultFrameRate: 20},
	StateAttacking3:    {name: "attacking_3", defaultFrameRate: 20},
	StateHurt:          {name: "hurt", defaultFrameRate: 15},
	StateDead:          {name: "dead", defaultFrameRate: 10},
	StateSpecialSkill:  {name: "special_skill", defaultFrameRate: 20},
	StateJumping:       {name: "jumping", defaultFrameRate: 15},
	StateRunningAttack: {name: "running_attack", defaultFrameRate: 20},
	StateProjectile:    {name: "projectile", defaultFrameRate: 24, defaultLoop: true},
	StateEffect:        {name: "effect", defaultFrameRate: 24},
	StateDying:         {name: "dying", defaultFrameRate: 10},
}

// States lists all canonical states in state_id order.
func States() []State {
	states := make([]State, StateCount)
	for i := range states {
		states[i] = State(i)
	}
	return states
}

// NormalizeState parses a state name into a canonical value.
func NormalizeState(value string) (State, bool) {
	name := strings.ToLower(strings.TrimSpace(value))
	for i, spec := range stateSpecs {
		if spec.name == name {
			return State(i), true
		}
	}
	return 0, false
}

// Valid reports whether the state is in the closed enumeration.
func (s State) Valid() bool {
	return s >= 0 && int(s) < StateCount
}

// String returns the canonical state name.
func (s State) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return stateSpecs[s].name
}

// DefaultFrameRate returns the seeded fallback frame rate for the state.
func (s State) DefaultFrameRate() float64 {
	if !s.Valid() {
		return 0
	}
	return stateSpecs[s].defaultFrameRate
}

// DefaultLoop reports whether the state loops by default.
func (s State) DefaultLoop() bool {
	if !s.Valid() {
		return false
	}
	return stateSpecs[s].defaultLoop
}
