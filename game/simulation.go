package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/systems"
	"github.com/pthm-cable/savanna/telemetry"
)

// simulationStep runs a single tick: flora, animals, lifecycle, cleanup, telemetry.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseFlora)
	g.updateFlora()

	g.perfCollector.StartPhase(telemetry.PhaseAnimals)
	g.updateAnimals()

	g.perfCollector.StartPhase(telemetry.PhaseLifecycle)
	dead := g.updateLifecycle()

	g.perfCollector.StartPhase(telemetry.PhaseCleanup)
	g.cleanupDead(dead)

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// updateFlora grows every plant that existed at the start of the tick.
// Seedlings wait until the next tick.
func (g *Game) updateFlora() {
	var plants []ecs.Entity
	query := g.plantFilter.Query()
	for query.Next() {
		plants = append(plants, query.Entity())
	}

	g.perfCollector.AddWork(len(plants))
	for _, e := range plants {
		seedling, ok := g.flora.Grow(e)
		if !ok {
			continue
		}
		g.collector.RecordBirth(components.KindPlant)
		g.emit(telemetry.NewBirthEvent(g.tick, uint32(seedling.ID()), components.KindPlant, *g.pop.Position(seedling)))
	}
}

// updateAnimals walks the live grid x ascending then y ascending and gives
// every animal that has not moved yet its turn. The moved flag is set before
// acting, so an animal that steps onto a cell later in the scan is skipped.
func (g *Game) updateAnimals() {
	for x := 0; x < g.grid.Width(); x++ {
		for y := 0; y < g.grid.Height(); y++ {
			c, _ := g.grid.At(x, y)
			if !c.Kind.IsAnimal() {
				continue
			}
			v := g.pop.Vitals(c.Entity)
			if v.Moved {
				continue
			}
			v.Moved = true
			g.perfCollector.AddWork(1)

			var out systems.Outcome
			if c.Kind == components.KindPredator {
				out = g.predators.Act(c.Entity)
			} else {
				out = g.herbivores.Act(c.Entity)
			}
			g.recordOutcome(c.Entity, c.Kind, out)
		}
	}
}

// recordOutcome turns one animal turn into telemetry.
func (g *Game) recordOutcome(e ecs.Entity, kind components.Kind, out systems.Outcome) {
	id := uint32(e.ID())
	pos := *g.pop.Position(e)

	if out.Charging {
		g.collector.RecordCharge()
		g.lifetimeTracker.RecordCharge(id)
	}
	if out.Eaten != (ecs.Entity{}) {
		g.lifetimeTracker.Remove(uint32(out.Eaten.ID()))
		if g.hasSelected && g.selected == out.Eaten {
			g.hasSelected = false
		}
	}

	switch {
	case out.Action == systems.ActionKill:
		g.collector.RecordKill()
		g.emit(telemetry.NewKillEvent(g.tick, id, pos, out.Gain))
	case out.Action == systems.ActionGraze:
		g.collector.RecordGraze()
		g.emit(telemetry.NewGrazeEvent(g.tick, id, pos, out.Gain))
	case out.Trampled:
		g.collector.RecordTrample()
		g.emit(telemetry.NewTrampleEvent(g.tick, id, pos))
	case out.Action == systems.ActionBirth:
		g.collector.RecordBirth(kind)
		g.lifetimeTracker.RecordChild(id)
		g.lifetimeTracker.Register(uint32(out.Child.ID()), g.tick)
		g.emit(telemetry.NewBirthEvent(g.tick, uint32(out.Child.ID()), kind, *g.pop.Position(out.Child)))
	}

	g.lifetimeTracker.UpdateEnergy(id, g.pop.Vitals(e).Energy)
}
