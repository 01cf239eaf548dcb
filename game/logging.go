package game

import (
	"log/slog"

	"github.com/pthm-cable/savanna/components"
)

// LogSummary logs the current world state: population counts and a
// breakdown of the predator population.
func (g *Game) LogSummary() {
	predators, herbivores, plants := g.Counts()

	var charging, blind, hungry, oldest, visionSum int
	query := g.predFilter.Query()
	for query.Next() {
		v, p := query.Get()
		if p.Charge == components.Charging {
			charging++
		}
		if p.VisionRadius <= 0 {
			blind++
		}
		if g.predators.Hungry(v) {
			hungry++
		}
		oldest = max(oldest, v.Age)
		visionSum += p.VisionRadius
	}

	var meanVision float64
	if predators > 0 {
		meanVision = float64(visionSum) / float64(predators)
	}

	slog.Info("world",
		"tick", g.tick,
		"predators", predators,
		"herbivores", herbivores,
		"plants", plants,
		"charging", charging,
		"hungry", hungry,
		"blind", blind,
		"oldest_predator", oldest,
		"mean_vision", meanVision,
	)
}

// logSelection logs the entity picked in the graphical viewer.
func (g *Game) logSelection() {
	if !g.hasSelected {
		return
	}
	e := g.selected
	kind := g.pop.Kind(e)
	v := g.pop.Vitals(e)
	pos := g.pop.Position(e)

	attrs := []any{
		"tick", g.tick,
		"kind", kind.String(),
		"x", pos.X,
		"y", pos.Y,
		"energy", v.Energy,
		"age", v.Age,
	}
	if kind == components.KindPredator {
		p := g.pop.Predator(e)
		attrs = append(attrs, "vision", p.VisionRadius, "charge", p.Charge.String())
	}
	if s := g.lifetimeTracker.Get(uint32(e.ID())); s != nil {
		attrs = append(attrs, "kills", s.Kills, "children", s.Children)
	}
	slog.Info("selected", attrs...)
}
