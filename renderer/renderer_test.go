package renderer

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/config"
	"github.com/pthm-cable/savanna/systems"
	"github.com/pthm-cable/savanna/telemetry"
)

type fakeSim struct {
	grid  *systems.Grid
	pop   *systems.Population
	tick  int
	steps int
}

func newFakeSim(t *testing.T) *fakeSim {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	grid := systems.NewGrid(6, 4)
	pop := systems.NewPopulation(ecs.NewWorld(), grid, cfg)
	return &fakeSim{grid: grid, pop: pop}
}

func (f *fakeSim) Step() { f.tick++; f.steps++ }
func (f *fakeSim) Tick() int { return f.tick }
func (f *fakeSim) Grid() *systems.Grid { return f.grid }
func (f *fakeSim) Population() *systems.Population { return f.pop }
func (f *fakeSim) Extinct() bool { return false }
func (f *fakeSim) Counts() (int, int, int) {
	return f.pop.Count(components.KindPredator), f.pop.Count(components.KindHerbivore), f.pop.Count(components.KindPlant)
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	s.SetSize(20, 6)
	t.Cleanup(s.Fini)
	return s
}

func TestDrawGlyphs(t *testing.T) {
	sim := newFakeSim(t)
	sim.pop.SpawnPredator(components.Position{X: 1, Y: 0}, false)
	sim.pop.SpawnHerbivore(components.Position{X: 2, Y: 3}, false)
	sim.pop.SpawnPlant(components.Position{X: 5, Y: 1}, 2)

	screen := newScreen(t)
	term := NewTerminal(screen, sim, time.Millisecond, 0)
	term.Draw()

	tests := []struct {
		x, y int
		want rune
	}{
		{1, 0, '@'},
		{2, 3, '&'},
		{5, 1, '*'},
		{0, 0, '.'},
	}
	for _, tt := range tests {
		got, _, _, _ := screen.GetContent(tt.x, tt.y)
		if got != tt.want {
			t.Errorf("(%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}

	// Status line sits on the last row.
	if got, _, _, _ := screen.GetContent(1, 5); got != 't' {
		t.Errorf("status line starts with %q, want 't'", got)
	}
}

func TestChargingPredatorStyle(t *testing.T) {
	sim := newFakeSim(t)
	e := sim.pop.SpawnPredator(components.Position{X: 0, Y: 0}, false)
	if got := cellStyle(sim.pop, systems.Cell{Kind: components.KindPredator, Entity: e}); got != stylePredator {
		t.Error("resting predator should use the predator style")
	}

	sim.pop.Predator(e).Charge = components.Charging
	if got := cellStyle(sim.pop, systems.Cell{Kind: components.KindPredator, Entity: e}); got != styleCharging {
		t.Error("charging predator should use the charging style")
	}
}

func TestHandleEvent(t *testing.T) {
	sim := newFakeSim(t)
	term := NewTerminal(newScreen(t), sim, time.Millisecond, 0)

	if term.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone)) {
		t.Fatal("n should not quit")
	}
	if sim.steps != 0 {
		t.Error("n stepped while running")
	}

	term.handleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !term.paused {
		t.Fatal("space did not pause")
	}
	term.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	if sim.steps != 1 {
		t.Errorf("steps = %d, want 1 after n while paused", sim.steps)
	}

	if !term.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
	if !term.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape should quit")
	}
}

func TestTerminalStopsAtMaxTicks(t *testing.T) {
	sim := newFakeSim(t)
	screen := tcell.NewSimulationScreen("")
	term := NewTerminal(screen, sim, time.Millisecond, 3)

	if err := term.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sim.Tick() != 3 {
		t.Errorf("tick = %d, want 3", sim.Tick())
	}
}

func TestPumpEventsExitsWhenDone(t *testing.T) {
	screen := newScreen(t)
	events := make(chan tcell.Event) // nobody reads
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		pumpEvents(screen, events, done)
		close(exited)
	}()

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	close(done)

	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("event pump still blocked after done was closed")
	}
}

func TestKillSoundCountsKillsOnly(t *testing.T) {
	k := NewKillSound()

	k.OnEvent(telemetry.NewGrazeEvent(1, 1, components.Position{}, 3))
	k.OnEvent(telemetry.NewKillEvent(1, 2, components.Position{}, 9))
	k.OnEvent(telemetry.NewKillEvent(2, 2, components.Position{}, 7))

	if got := k.Played(); got != 2 {
		t.Errorf("played = %d, want 2", got)
	}
}

func TestKillSoundInitWrapsSpeakerError(t *testing.T) {
	errNoDevice := errors.New("no audio device")
	k := NewKillSound()
	k.openSpeaker = func(beep.SampleRate, int) error { return errNoDevice }

	err := k.Init()
	if !errors.Is(err, errNoDevice) {
		t.Fatalf("Init error = %v, want wrapped %v", err, errNoDevice)
	}
	if got, want := err.Error(), "initializing speaker: no audio device"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}

	// Still usable silently.
	k.OnEvent(telemetry.NewKillEvent(1, 2, components.Position{}, 9))
	if k.Played() != 1 {
		t.Errorf("played = %d, want 1", k.Played())
	}
}
