// Package components defines ECS components for the simulation.
package components

// Kind identifies what occupies a grid cell.
type Kind uint8

const (
	KindNone Kind = iota
	KindPredator
	KindHerbivore
	KindPlant
)

// IsAnimal reports whether entities of this kind take turns.
func (k Kind) IsAnimal() bool {
	return k == KindPredator || k == KindHerbivore
}

// ChargeState is the predator's movement mode.
type ChargeState uint8

const (
	NotCharging ChargeState = iota
	Charging
)

// Vitals holds the state shared by every living entity.
type Vitals struct {
	Energy    int // May dip below zero after a birth debit until the lifecycle pass
	MaxEnergy int
	Age       int
	Moved     bool // Already acted this tick; newborns start true
}

// Predator holds carnivore-specific state.
type Predator struct {
	VisionRadius int
	Charge       ChargeState
}

// Herbivore marks a grazing animal.
type Herbivore struct {
	Grazed int // Plants eaten over its lifetime
}

// Plant marks flora. Plants never move; they only grow and spread.
type Plant struct {
	Seeded int // Seedlings produced over its lifetime
}
