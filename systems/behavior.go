package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savanna/components"
)

// Action is what an animal ended up doing on its turn.
type Action uint8

const (
	ActionIdle   Action = iota // Nothing happened
	ActionWander               // Random step
	ActionStalk                // Step toward prey
	ActionKill                 // Ate adjacent prey
	ActionGraze                // Ate adjacent plant
	ActionBirth                // Produced offspring
)

var actionNames = [...]string{"idle", "wander", "stalk", "kill", "graze", "birth"}

// String returns the lower-case action name used in logs.
func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Outcome reports one turn so callers can record telemetry.
type Outcome struct {
	Action   Action
	Charging bool       // Predator was charging (paid the charge cost) this turn
	Trampled bool       // A plant was destroyed by the move
	Gain     int        // Energy gained from eating
	Eaten    ecs.Entity // Herbivore or plant removed by the move
	Child    ecs.Entity // Offspring, when Action is ActionBirth
}

// Wander steps e onto a uniformly random neighbor cell. Off-grid or occupied
// picks are absorbed: e stays put and false is returned.
func Wander(pop *Population, rng Rand, e ecs.Entity) bool {
	pos := *pop.Position(e)
	dest := pos.Add(neighborhood[rng.Intn(len(neighborhood))])
	if !pop.Grid().IsEmpty(dest.X, dest.Y) {
		return false
	}
	pop.Relocate(e, dest)
	return true
}

// takeCell removes the occupant of dest and moves e into its cell.
func takeCell(pop *Population, e ecs.Entity, dest components.Position, occupant ecs.Entity) {
	pop.Remove(occupant)
	pop.Relocate(e, dest)
}
