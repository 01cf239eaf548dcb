package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savanna/components"
)

// BirthRule decides when an animal may reproduce and what it pays.
type BirthRule struct {
	MinAge    int
	MaxAge    int
	MinEnergy int
	Cost      int
}

// Eligible reports whether an animal with these vitals may give birth.
func (r BirthRule) Eligible(v *components.Vitals) bool {
	return v.Age >= r.MinAge && v.Age <= r.MaxAge && v.Energy >= r.MinEnergy
}

// FindBirthSite returns the first empty in-bounds cell around origin,
// scanning dx ascending then dy ascending. The origin is never returned.
func FindBirthSite(g *Grid, origin components.Position) (components.Position, bool) {
	for _, o := range neighborhood {
		site := origin.Add(o)
		if g.IsEmpty(site.X, site.Y) {
			return site, true
		}
	}
	return components.Position{}, false
}

// GiveBirth places an offspring of parent's kind in the first free neighbor
// cell, debiting the birth cost from the parent. The newborn is marked as
// having moved so the scheduler skips it for the rest of the tick.
func GiveBirth(pop *Population, parent ecs.Entity, rule BirthRule) (ecs.Entity, bool) {
	v := pop.Vitals(parent)
	if !rule.Eligible(v) {
		return ecs.Entity{}, false
	}
	site, ok := FindBirthSite(pop.Grid(), *pop.Position(parent))
	if !ok {
		return ecs.Entity{}, false
	}

	// Debit before spawning: the spawn may move component storage.
	v.Energy -= rule.Cost
	child := pop.Spawn(pop.Kind(parent), site, true)
	return child, true
}
