package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/config"
)

func init() {
	config.MustInit("")
}

// scriptedRand returns queued values in order, then zeros.
type scriptedRand struct {
	vals []int
	used int
}

func (r *scriptedRand) Intn(n int) int {
	if r.used >= len(r.vals) {
		r.used++
		return 0
	}
	v := r.vals[r.used] % n
	r.used++
	return v
}

func newTestPopulation(t *testing.T, w, h int) *Population {
	t.Helper()
	return NewPopulation(ecs.NewWorld(), NewGrid(w, h), config.Cfg())
}

// spawnPredatorWith places a predator and overrides its stats.
func spawnPredatorWith(pop *Population, x, y, energy, age, vision int) ecs.Entity {
	e := pop.SpawnPredator(components.Position{X: x, Y: y}, false)
	v := pop.Vitals(e)
	v.Energy = energy
	v.Age = age
	pop.Predator(e).VisionRadius = vision
	return e
}

// spawnHerbivoreWith places a herbivore with the given energy.
func spawnHerbivoreWith(pop *Population, x, y, energy int) ecs.Entity {
	e := pop.SpawnHerbivore(components.Position{X: x, Y: y}, false)
	pop.Vitals(e).Energy = energy
	return e
}

func cellKind(t *testing.T, g *Grid, x, y int) components.Kind {
	t.Helper()
	c, ok := g.At(x, y)
	if !ok {
		t.Fatalf("(%d,%d) out of bounds", x, y)
	}
	return c.Kind
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
