package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/config"
)

// PredatorSystem runs the carnivore turn: keep charging, else breed, else hunt
// when hungry, else wander.
type PredatorSystem struct {
	pop    *Population
	rng    Rand
	cfg    config.PredatorConfig
	charge Charge
	birth  BirthRule
}

// NewPredatorSystem creates the predator system.
func NewPredatorSystem(pop *Population, rng Rand, cfg *config.Config) *PredatorSystem {
	c := cfg.Predator
	return &PredatorSystem{
		pop:    pop,
		rng:    rng,
		cfg:    c,
		charge: NewCharge(c),
		birth: BirthRule{
			MinAge:    c.BirthMinAge,
			MaxAge:    c.BirthMaxAge,
			MinEnergy: c.BirthMinEnergy,
			Cost:      c.BirthCost,
		},
	}
}

// Hungry reports whether the predator wants to hunt.
func (s *PredatorSystem) Hungry(v *components.Vitals) bool {
	return v.Energy < s.cfg.HungerThreshold
}

// Act runs one turn for predator e.
func (s *PredatorSystem) Act(e ecs.Entity) Outcome {
	pred := s.pop.Predator(e)
	vitals := s.pop.Vitals(e)

	// A running charge skips breeding and wandering entirely.
	if s.charge.Sustain(pred, vitals) {
		out, _ := s.Hunt(e)
		out.Charging = true
		return out
	}

	child, born := s.GiveBirth(e)
	roll := s.rng.Intn(10)
	if born {
		return Outcome{Action: ActionBirth, Child: child}
	}
	if roll >= s.cfg.MoveChance {
		return Outcome{Action: ActionIdle}
	}

	if s.Hungry(s.pop.Vitals(e)) {
		if out, ok := s.Hunt(e); ok {
			return out
		}
	}
	if Wander(s.pop, s.rng, e) {
		return Outcome{Action: ActionWander}
	}
	return Outcome{Action: ActionIdle}
}

// GiveBirth attempts to place an offspring next to e.
func (s *PredatorSystem) GiveBirth(e ecs.Entity) (ecs.Entity, bool) {
	return GiveBirth(s.pop, e, s.birth)
}

// Hunt looks for the nearest herbivore within e's vision. Adjacent prey is
// eaten on the spot and leaves the charge state alone. Farther prey is
// approached one step along the best ranked move, charging when it is within
// charge distance. It returns false when no prey is visible or every move is
// blocked.
func (s *PredatorSystem) Hunt(e ecs.Entity) (Outcome, bool) {
	grid := s.pop.Grid()
	pred := s.pop.Predator(e)
	pos := *s.pop.Position(e)

	target, found := FindNearest(grid, pos, pred.VisionRadius, OfKind(components.KindHerbivore))
	if !found {
		pred.Charge = components.NotCharging
		return Outcome{Action: ActionIdle}, false
	}

	if target.Adjacent() {
		dest := pos.Add(target)
		prey, _ := grid.At(dest.X, dest.Y)
		gain := s.cfg.EatBase + s.pop.Vitals(prey.Entity).Energy/2
		s.pop.Vitals(e).Energy += gain
		takeCell(s.pop, e, dest, prey.Entity)
		return Outcome{Action: ActionKill, Gain: gain, Eaten: prey.Entity}, true
	}

	s.charge.Sighted(pred, target.DistSq())
	state := pred.Charge

	for _, m := range RankMoves(target) {
		dest := pos.Add(m)
		c, ok := grid.At(dest.X, dest.Y)
		if !ok || !CanEnter(state, c) {
			continue
		}
		if c.Kind == components.KindPlant {
			takeCell(s.pop, e, dest, c.Entity)
			return Outcome{Action: ActionStalk, Trampled: true, Eaten: c.Entity}, true
		}
		s.pop.Relocate(e, dest)
		return Outcome{Action: ActionStalk}, true
	}
	return Outcome{Action: ActionIdle}, false
}

// Age advances e by one tick. Vision sharpens until the peak age and then
// fades without a floor, so old predators eventually go blind.
func (s *PredatorSystem) Age(e ecs.Entity) {
	vitals := s.pop.Vitals(e)
	pred := s.pop.Predator(e)
	vitals.Age++
	if vitals.Age <= s.cfg.VisionPeakAge {
		pred.VisionRadius++
	} else {
		pred.VisionRadius--
	}
}
