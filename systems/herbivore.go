package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/config"
)

// HerbivoreSystem runs the grazer turn: breed, else graze when hungry, else wander.
type HerbivoreSystem struct {
	pop   *Population
	rng   Rand
	cfg   config.HerbivoreConfig
	birth BirthRule
}

// NewHerbivoreSystem creates the herbivore system.
func NewHerbivoreSystem(pop *Population, rng Rand, cfg *config.Config) *HerbivoreSystem {
	c := cfg.Herbivore
	return &HerbivoreSystem{
		pop: pop,
		rng: rng,
		cfg: c,
		birth: BirthRule{
			MinAge:    c.BirthMinAge,
			MaxAge:    c.BirthMaxAge,
			MinEnergy: c.BirthMinEnergy,
			Cost:      c.BirthCost,
		},
	}
}

// Hungry reports whether the herbivore wants to graze.
func (s *HerbivoreSystem) Hungry(v *components.Vitals) bool {
	return v.Energy < s.cfg.HungerThreshold
}

// Act runs one turn for herbivore e.
func (s *HerbivoreSystem) Act(e ecs.Entity) Outcome {
	child, born := GiveBirth(s.pop, e, s.birth)
	roll := s.rng.Intn(10)
	if born {
		return Outcome{Action: ActionBirth, Child: child}
	}
	if roll >= s.cfg.MoveChance {
		return Outcome{Action: ActionIdle}
	}

	if s.Hungry(s.pop.Vitals(e)) {
		if out, ok := s.Graze(e); ok {
			return out
		}
	}
	if Wander(s.pop, s.rng, e) {
		return Outcome{Action: ActionWander}
	}
	return Outcome{Action: ActionIdle}
}

// Graze eats the first adjacent plant in scan order and steps onto its cell.
func (s *HerbivoreSystem) Graze(e ecs.Entity) (Outcome, bool) {
	grid := s.pop.Grid()
	pos := *s.pop.Position(e)

	for _, o := range neighborhood {
		dest := pos.Add(o)
		c, ok := grid.At(dest.X, dest.Y)
		if !ok || c.Kind != components.KindPlant {
			continue
		}
		gain := s.cfg.GrazeGain + s.pop.Vitals(c.Entity).Energy/2
		s.pop.Vitals(e).Energy += gain
		s.pop.Herbivore(e).Grazed++
		takeCell(s.pop, e, dest, c.Entity)
		return Outcome{Action: ActionGraze, Gain: gain, Eaten: c.Entity}, true
	}
	return Outcome{Action: ActionIdle}, false
}
