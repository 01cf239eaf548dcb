package systems

import (
	"testing"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/config"
)

func TestGrazeEatsFirstPlantInScanOrder(t *testing.T) {
	pop := newTestPopulation(t, 10, 10)
	s := NewHerbivoreSystem(pop, &scriptedRand{}, config.Cfg())
	herb := spawnHerbivoreWith(pop, 5, 5, 4)
	first := pop.SpawnPlant(components.Position{X: 4, Y: 6}, 5)
	second := pop.SpawnPlant(components.Position{X: 6, Y: 4}, 8)

	out, ok := s.Graze(herb)
	if !ok || out.Action != ActionGraze {
		t.Fatalf("graze = %+v, %v; want graze", out, ok)
	}
	if out.Gain != 5 {
		t.Errorf("gain = %d, want 3 + 5/2 = 5", out.Gain)
	}
	if got := pop.Vitals(herb).Energy; got != 9 {
		t.Errorf("energy = %d, want 9", got)
	}
	if pop.Alive(first) {
		t.Error("grazed plant still alive")
	}
	if !pop.Alive(second) {
		t.Error("second plant eaten")
	}
	if got := *pop.Position(herb); got != (components.Position{X: 4, Y: 6}) {
		t.Errorf("position = %v, want (4,6)", got)
	}
	if got := pop.Herbivore(herb).Grazed; got != 1 {
		t.Errorf("grazed = %d, want 1", got)
	}
}

func TestGrazeWithoutPlantsFails(t *testing.T) {
	pop := newTestPopulation(t, 10, 10)
	s := NewHerbivoreSystem(pop, &scriptedRand{}, config.Cfg())
	herb := spawnHerbivoreWith(pop, 5, 5, 4)
	pop.SpawnPlant(components.Position{X: 5, Y: 7}, 5) // two cells away

	if _, ok := s.Graze(herb); ok {
		t.Error("grazed a plant out of reach")
	}
}

func TestHerbivoreAct(t *testing.T) {
	tests := []struct {
		name       string
		energy     int
		age        int
		rolls      []int
		plant      bool
		wantAction Action
		wantPos    components.Position
	}{
		{"hungry grazes", 4, 0, []int{0}, true, ActionGraze, components.Position{X: 5, Y: 6}},
		{"sated wanders past food", 10, 0, []int{0, 6}, true, ActionWander, components.Position{X: 6, Y: 5}},
		{"hungry without food wanders", 4, 0, []int{0, 0}, false, ActionWander, components.Position{X: 4, Y: 4}},
		{"resting", 4, 0, []int{8}, true, ActionIdle, components.Position{X: 5, Y: 5}},
		{"breeding", 9, 4, []int{0}, false, ActionBirth, components.Position{X: 5, Y: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pop := newTestPopulation(t, 10, 10)
			rng := &scriptedRand{vals: tt.rolls}
			s := NewHerbivoreSystem(pop, rng, config.Cfg())
			herb := spawnHerbivoreWith(pop, 5, 5, tt.energy)
			pop.Vitals(herb).Age = tt.age
			if tt.plant {
				pop.SpawnPlant(components.Position{X: 5, Y: 6}, 2)
			}

			out := s.Act(herb)

			if out.Action != tt.wantAction {
				t.Errorf("action = %v, want %v", out.Action, tt.wantAction)
			}
			if got := *pop.Position(herb); got != tt.wantPos {
				t.Errorf("position = %v, want %v", got, tt.wantPos)
			}
		})
	}
}

func TestHerbivoreBirthCostsEnergy(t *testing.T) {
	pop := newTestPopulation(t, 10, 10)
	s := NewHerbivoreSystem(pop, &scriptedRand{}, config.Cfg())
	herb := spawnHerbivoreWith(pop, 5, 5, 9)
	pop.Vitals(herb).Age = 4

	out := s.Act(herb)
	if out.Action != ActionBirth {
		t.Fatalf("action = %v, want birth", out.Action)
	}
	if got := pop.Vitals(herb).Energy; got != 6 {
		t.Errorf("parent energy = %d, want 6", got)
	}
	if k := pop.Kind(out.Child); k != components.KindHerbivore {
		t.Errorf("child kind = %v, want herbivore", k)
	}
}
