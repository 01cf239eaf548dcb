package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/systems"
	"github.com/pthm-cable/savanna/telemetry"
)

// spawnInitialPopulation seeds plants in noise patches, then drops predators
// and herbivores onto uniformly random empty cells.
func (g *Game) spawnInitialPopulation(seed int64) {
	cfg := g.cfg

	systems.SeedFlora(g.pop, seed, cfg.Population.PlantDensity, cfg.Population.PlantNoiseScale)

	var empty []components.Position
	for x := 0; x < g.grid.Width(); x++ {
		for y := 0; y < g.grid.Height(); y++ {
			if g.grid.IsEmpty(x, y) {
				empty = append(empty, components.Position{X: x, Y: y})
			}
		}
	}
	g.rng.Shuffle(len(empty), func(i, j int) { empty[i], empty[j] = empty[j], empty[i] })

	want := cfg.Population.Predators + cfg.Population.Herbivores
	if want > len(empty) {
		slog.Warn("not enough empty cells for initial animals", "want", want, "empty", len(empty))
	}

	for i := 0; i < want && i < len(empty); i++ {
		kind := components.KindHerbivore
		if i < cfg.Population.Predators {
			kind = components.KindPredator
		}
		e := g.pop.Spawn(kind, empty[i], false)
		g.lifetimeTracker.Register(uint32(e.ID()), 0)
	}
}

// deadInfo records an entity the lifecycle pass condemned.
type deadInfo struct {
	entity ecs.Entity
	kind   components.Kind
	fate   systems.Fate
}

// updateLifecycle ages, charges upkeep and checks death for every entity.
// Entities are collected first since the world is locked during queries.
func (g *Game) updateLifecycle() []deadInfo {
	type entry struct {
		entity ecs.Entity
		kind   components.Kind
	}
	var all []entry

	pq := g.predFilter.Query()
	for pq.Next() {
		all = append(all, entry{pq.Entity(), components.KindPredator})
	}
	hq := g.herbFilter.Query()
	for hq.Next() {
		all = append(all, entry{hq.Entity(), components.KindHerbivore})
	}
	fq := g.plantFilter.Query()
	for fq.Next() {
		all = append(all, entry{fq.Entity(), components.KindPlant})
	}

	g.perfCollector.AddWork(len(all))
	var dead []deadInfo
	for _, en := range all {
		if fate := g.lifecycle.Update(en.entity, en.kind); fate != systems.FateAlive {
			dead = append(dead, deadInfo{entity: en.entity, kind: en.kind, fate: fate})
		}
	}
	return dead
}

// cleanupDead removes condemned entities from the grid and the world.
func (g *Game) cleanupDead(dead []deadInfo) {
	g.perfCollector.AddWork(len(dead))
	for _, d := range dead {
		cause := telemetry.CauseAged
		if d.fate == systems.FateStarved {
			cause = telemetry.CauseStarved
		}
		id := uint32(d.entity.ID())
		pos := *g.pop.Position(d.entity)

		g.collector.RecordDeath(d.kind, cause)
		if d.kind == components.KindPredator {
			g.collector.RecordLifespan(g.pop.Vitals(d.entity).Age)
		}
		g.emit(telemetry.NewDeathEvent(g.tick, id, d.kind, pos, cause))
		g.lifetimeTracker.Remove(id)

		if g.hasSelected && g.selected == d.entity {
			g.hasSelected = false
		}
		g.pop.Remove(d.entity)
	}
}
