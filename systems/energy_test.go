package systems

import (
	"testing"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/config"
)

func newLifecycle(pop *Population) *LifecycleSystem {
	cfg := config.Cfg()
	return NewLifecycleSystem(pop, NewPredatorSystem(pop, &scriptedRand{}, cfg), cfg)
}

func TestLifecycleUpdate(t *testing.T) {
	tests := []struct {
		name       string
		kind       components.Kind
		energy     int
		age        int
		wantEnergy int
		wantAge    int
		wantFate   Fate
	}{
		{"predator upkeep", components.KindPredator, 10, 0, 9, 1, FateAlive},
		{"predator capped", components.KindPredator, 25, 0, 18, 1, FateAlive},
		{"predator starves", components.KindPredator, 1, 3, 0, 4, FateStarved},
		{"predator too old", components.KindPredator, 10, 30, 9, 31, FateAged},
		{"herbivore upkeep", components.KindHerbivore, 6, 2, 5, 3, FateAlive},
		{"herbivore too old", components.KindHerbivore, 6, 25, 5, 26, FateAged},
		{"plant no upkeep", components.KindPlant, 3, 0, 3, 1, FateAlive},
		{"plant too old", components.KindPlant, 3, 60, 3, 61, FateAged},
		{"starving beats old age", components.KindHerbivore, 1, 25, 0, 26, FateStarved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pop := newTestPopulation(t, 4, 4)
			e := pop.Spawn(tt.kind, components.Position{X: 1, Y: 1}, true)
			v := pop.Vitals(e)
			v.Energy = tt.energy
			v.Age = tt.age

			fate := newLifecycle(pop).Update(e, tt.kind)

			v = pop.Vitals(e)
			if fate != tt.wantFate {
				t.Errorf("fate = %v, want %v", fate, tt.wantFate)
			}
			if v.Energy != tt.wantEnergy {
				t.Errorf("energy = %d, want %d", v.Energy, tt.wantEnergy)
			}
			if v.Age != tt.wantAge {
				t.Errorf("age = %d, want %d", v.Age, tt.wantAge)
			}
			if v.Moved {
				t.Error("moved flag not cleared")
			}
		})
	}
}

func TestLifecycleAgesPredatorVision(t *testing.T) {
	pop := newTestPopulation(t, 4, 4)
	e := spawnPredatorWith(pop, 1, 1, 10, 0, 8)

	newLifecycle(pop).Update(e, components.KindPredator)

	if got := pop.Predator(e).VisionRadius; got != 9 {
		t.Errorf("vision = %d, want 9", got)
	}
}

func TestFateString(t *testing.T) {
	for fate, want := range map[Fate]string{FateAlive: "alive", FateStarved: "starved", FateAged: "aged"} {
		if got := fate.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", fate, got, want)
		}
	}
}
