package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/config"
)

// Rand is the randomness the systems need: uniform integers in [0, n).
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Population owns every entity: components live in the ECS world, occupancy
// in the grid. All structural changes go through it so the two never disagree.
type Population struct {
	world *ecs.World
	grid  *Grid
	cfg   *config.Config

	predators  *ecs.Map3[components.Position, components.Vitals, components.Predator]
	herbivores *ecs.Map3[components.Position, components.Vitals, components.Herbivore]
	plants     *ecs.Map3[components.Position, components.Vitals, components.Plant]

	posMap    *ecs.Map[components.Position]
	vitalsMap *ecs.Map[components.Vitals]
	predMap   *ecs.Map[components.Predator]
	herbMap   *ecs.Map[components.Herbivore]
	plantMap  *ecs.Map[components.Plant]
}

// NewPopulation creates an entity store over the given world and grid.
func NewPopulation(world *ecs.World, grid *Grid, cfg *config.Config) *Population {
	return &Population{
		world:      world,
		grid:       grid,
		cfg:        cfg,
		predators:  ecs.NewMap3[components.Position, components.Vitals, components.Predator](world),
		herbivores: ecs.NewMap3[components.Position, components.Vitals, components.Herbivore](world),
		plants:     ecs.NewMap3[components.Position, components.Vitals, components.Plant](world),
		posMap:     ecs.NewMap[components.Position](world),
		vitalsMap:  ecs.NewMap[components.Vitals](world),
		predMap:    ecs.NewMap[components.Predator](world),
		herbMap:    ecs.NewMap[components.Herbivore](world),
		plantMap:   ecs.NewMap[components.Plant](world),
	}
}

// Grid returns the occupancy grid.
func (p *Population) Grid() *Grid { return p.grid }

// World returns the ECS world.
func (p *Population) World() *ecs.World { return p.world }

// Config returns the configuration the population was built with.
func (p *Population) Config() *config.Config { return p.cfg }

// SpawnPredator creates a predator with default stats at pos.
// moved marks it as having already acted this tick.
func (p *Population) SpawnPredator(pos components.Position, moved bool) ecs.Entity {
	c := p.cfg.Predator
	vitals := components.Vitals{Energy: c.InitialEnergy, MaxEnergy: c.MaxEnergy, Moved: moved}
	pred := components.Predator{VisionRadius: c.VisionRadius, Charge: components.NotCharging}
	e := p.predators.NewEntity(&pos, &vitals, &pred)
	p.grid.Place(pos, Cell{Kind: components.KindPredator, Entity: e})
	return e
}

// SpawnHerbivore creates a herbivore with default stats at pos.
func (p *Population) SpawnHerbivore(pos components.Position, moved bool) ecs.Entity {
	c := p.cfg.Herbivore
	vitals := components.Vitals{Energy: c.InitialEnergy, MaxEnergy: c.MaxEnergy, Moved: moved}
	herb := components.Herbivore{}
	e := p.herbivores.NewEntity(&pos, &vitals, &herb)
	p.grid.Place(pos, Cell{Kind: components.KindHerbivore, Entity: e})
	return e
}

// SpawnPlant creates a plant holding energy at pos.
func (p *Population) SpawnPlant(pos components.Position, energy int) ecs.Entity {
	vitals := components.Vitals{Energy: energy, MaxEnergy: p.cfg.Plant.MaxEnergy}
	plant := components.Plant{}
	e := p.plants.NewEntity(&pos, &vitals, &plant)
	p.grid.Place(pos, Cell{Kind: components.KindPlant, Entity: e})
	return e
}

// Spawn creates an entity of the given kind with default stats.
func (p *Population) Spawn(kind components.Kind, pos components.Position, moved bool) ecs.Entity {
	switch kind {
	case components.KindPredator:
		return p.SpawnPredator(pos, moved)
	case components.KindHerbivore:
		return p.SpawnHerbivore(pos, moved)
	case components.KindPlant:
		return p.SpawnPlant(pos, p.cfg.Plant.InitialEnergy)
	}
	panic(fmt.Sprintf("population: cannot spawn %s", kind))
}

// Kind returns the kind of a live entity.
func (p *Population) Kind(e ecs.Entity) components.Kind {
	switch {
	case p.predMap.Has(e):
		return components.KindPredator
	case p.herbMap.Has(e):
		return components.KindHerbivore
	case p.plantMap.Has(e):
		return components.KindPlant
	}
	return components.KindNone
}

// Alive reports whether e still exists.
func (p *Population) Alive(e ecs.Entity) bool {
	return p.world.Alive(e)
}

// Position returns e's position. The pointer is valid until the next spawn or removal.
func (p *Population) Position(e ecs.Entity) *components.Position {
	return p.posMap.Get(e)
}

// Vitals returns e's vitals. The pointer is valid until the next spawn or removal.
func (p *Population) Vitals(e ecs.Entity) *components.Vitals {
	return p.vitalsMap.Get(e)
}

// Predator returns e's predator state. The pointer is valid until the next spawn or removal.
func (p *Population) Predator(e ecs.Entity) *components.Predator {
	return p.predMap.Get(e)
}

// Herbivore returns e's herbivore state.
func (p *Population) Herbivore(e ecs.Entity) *components.Herbivore {
	return p.herbMap.Get(e)
}

// Plant returns e's plant state.
func (p *Population) Plant(e ecs.Entity) *components.Plant {
	return p.plantMap.Get(e)
}

// Remove deletes e from the grid and the world.
func (p *Population) Remove(e ecs.Entity) {
	pos := *p.posMap.Get(e)
	p.checkOccupancy(e, pos)
	p.grid.Clear(pos)
	p.world.RemoveEntity(e)
}

// Relocate moves e to an adjacent cell in one step: the old cell is cleared,
// the new cell set and the stored position updated. The destination must be
// empty or already vacated by the caller.
func (p *Population) Relocate(e ecs.Entity, to components.Position) {
	pos := p.posMap.Get(e)
	p.checkOccupancy(e, *pos)
	dst, ok := p.grid.At(to.X, to.Y)
	if !ok {
		panic(fmt.Sprintf("population: relocate to (%d,%d) outside grid", to.X, to.Y))
	}
	if !dst.Empty() {
		panic(fmt.Sprintf("population: relocate onto (%d,%d) held by %s", to.X, to.Y, dst.Kind))
	}
	cell, _ := p.grid.At(pos.X, pos.Y)
	p.grid.Move(*pos, to, cell)
	*pos = to
}

// checkOccupancy asserts that the grid agrees with e's stored position.
func (p *Population) checkOccupancy(e ecs.Entity, pos components.Position) {
	c, ok := p.grid.At(pos.X, pos.Y)
	if !ok || c.Entity != e {
		panic(fmt.Sprintf("population: entity stored at (%d,%d) but grid holds %s", pos.X, pos.Y, c.Kind))
	}
}

// Count returns the number of live entities of a kind.
func (p *Population) Count(kind components.Kind) int {
	return p.grid.Count(kind)
}
