package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/config"
)

// Fate is the result of the end-of-tick lifecycle check.
type Fate uint8

const (
	FateAlive Fate = iota
	FateStarved
	FateAged
)

// String returns the lower-case fate name used in logs.
func (f Fate) String() string {
	switch f {
	case FateStarved:
		return "starved"
	case FateAged:
		return "aged"
	}
	return "alive"
}

// LifecycleSystem ages entities, charges animal upkeep, caps energy at
// capacity and decides who dies. It never removes entities itself.
type LifecycleSystem struct {
	pop       *Population
	predators *PredatorSystem
	cfg       *config.Config
}

// NewLifecycleSystem creates the lifecycle system.
// Predator aging is delegated so vision changes with age.
func NewLifecycleSystem(pop *Population, predators *PredatorSystem, cfg *config.Config) *LifecycleSystem {
	return &LifecycleSystem{pop: pop, predators: predators, cfg: cfg}
}

// Update runs the end-of-tick bookkeeping for e and clears its moved flag.
func (s *LifecycleSystem) Update(e ecs.Entity, kind components.Kind) Fate {
	var maxAge int
	switch kind {
	case components.KindPredator:
		s.predators.Age(e)
		maxAge = s.cfg.Predator.MaxAge
	case components.KindHerbivore:
		s.pop.Vitals(e).Age++
		maxAge = s.cfg.Herbivore.MaxAge
	case components.KindPlant:
		s.pop.Vitals(e).Age++
		maxAge = s.cfg.Plant.MaxAge
	}

	v := s.pop.Vitals(e)
	v.Moved = false
	if kind.IsAnimal() {
		v.Energy -= s.cfg.Metabolism.CostPerTick
	}
	v.Energy = min(v.Energy, v.MaxEnergy)

	switch {
	case v.Energy <= 0:
		return FateStarved
	case v.Age > maxAge:
		return FateAged
	}
	return FateAlive
}
