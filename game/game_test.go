package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/config"
	"github.com/pthm-cable/savanna/telemetry"
)

func init() {
	config.MustInit("")
}

func smallConfig() *config.Config {
	cfg := config.Cfg().Clone()
	cfg.World.Width = 20
	cfg.World.Height = 20
	cfg.Population.Predators = 5
	cfg.Population.Herbivores = 30
	cfg.Population.PlantDensity = 0.3
	cfg.Telemetry.StatsWindow = 10
	return cfg
}

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := NewGameWithOptions(Options{Seed: seed, Headless: true, Config: smallConfig()})
	t.Cleanup(g.Unload)
	return g
}

func TestNewGameSeedsPopulation(t *testing.T) {
	g := newTestGame(t, 1)

	predators, herbivores, plants := g.Counts()
	if predators != 5 || herbivores != 30 {
		t.Errorf("animals = %d/%d, want 5/30", predators, herbivores)
	}
	if plants != 120 {
		t.Errorf("plants = %d, want 120", plants)
	}
	if g.Tick() != 0 {
		t.Errorf("tick = %d, want 0", g.Tick())
	}
}

// checkConsistency verifies that the grid and the ECS world agree.
func checkConsistency(t *testing.T, g *Game) {
	t.Helper()

	for x := 0; x < g.grid.Width(); x++ {
		for y := 0; y < g.grid.Height(); y++ {
			c, _ := g.grid.At(x, y)
			if c.Empty() {
				continue
			}
			if !g.pop.Alive(c.Entity) {
				t.Fatalf("tick %d: dead entity on (%d,%d)", g.tick, x, y)
			}
			if got := g.pop.Kind(c.Entity); got != c.Kind {
				t.Fatalf("tick %d: cell (%d,%d) says %v, entity is %v", g.tick, x, y, c.Kind, got)
			}
			if pos := *g.pop.Position(c.Entity); pos != (components.Position{X: x, Y: y}) {
				t.Fatalf("tick %d: entity on (%d,%d) thinks it is at %v", g.tick, x, y, pos)
			}
			v := g.pop.Vitals(c.Entity)
			if v.Moved {
				t.Fatalf("tick %d: moved flag left set on (%d,%d)", g.tick, x, y)
			}
			if v.Energy > v.MaxEnergy {
				t.Fatalf("tick %d: energy %d above capacity %d on (%d,%d)", g.tick, v.Energy, v.MaxEnergy, x, y)
			}
		}
	}

	census := g.census()
	predators, herbivores, _ := g.Counts()
	if census.Predators != predators || census.Herbivores != herbivores {
		t.Fatalf("tick %d: world has %d/%d animals, grid %d/%d",
			g.tick, census.Predators, census.Herbivores, predators, herbivores)
	}
}

func TestStepKeepsGridAndWorldConsistent(t *testing.T) {
	g := newTestGame(t, 7)

	for i := 0; i < 150; i++ {
		g.Step()
		checkConsistency(t, g)
	}
	if g.Tick() != 150 {
		t.Errorf("tick = %d, want 150", g.Tick())
	}
}

func TestSameSeedSameRun(t *testing.T) {
	a := newTestGame(t, 99)
	b := newTestGame(t, 99)

	for i := 0; i < 80; i++ {
		a.Step()
		b.Step()
	}

	for x := 0; x < a.grid.Width(); x++ {
		for y := 0; y < a.grid.Height(); y++ {
			ca, _ := a.grid.At(x, y)
			cb, _ := b.grid.At(x, y)
			if ca.Kind != cb.Kind {
				t.Fatalf("(%d,%d): %v vs %v", x, y, ca.Kind, cb.Kind)
			}
		}
	}
}

func TestStatsWindowFlushes(t *testing.T) {
	g := newTestGame(t, 3)

	var windows []telemetry.WindowStats
	g.SetStatsCallback(func(s telemetry.WindowStats) {
		windows = append(windows, s)
	})

	for i := 0; i < 35; i++ {
		g.Step()
	}

	if len(windows) != 3 {
		t.Fatalf("flushed %d windows, want 3", len(windows))
	}
	for i, w := range windows {
		if want := (i + 1) * 10; w.WindowEndTick != want {
			t.Errorf("window %d ends at %d, want %d", i, w.WindowEndTick, want)
		}
	}
	last := windows[len(windows)-1]
	if last != g.LastStats() {
		t.Error("LastStats does not match the latest flushed window")
	}
}

func TestEventsReachHandlers(t *testing.T) {
	g := newTestGame(t, 11)

	counts := map[telemetry.EventType]int{}
	g.AddEventHandler(func(ev telemetry.Event) {
		counts[ev.Type]++
		if !g.grid.InBounds(ev.Pos.X, ev.Pos.Y) {
			t.Errorf("%v event outside the grid at %v", ev.Type, ev.Pos)
		}
	})

	var kills int
	g.SetStatsCallback(func(s telemetry.WindowStats) { kills += s.Kills })

	for i := 0; i < 50; i++ {
		g.Step()
	}

	if counts[telemetry.EventKill] != kills {
		t.Errorf("kill events = %d, collector kills = %d", counts[telemetry.EventKill], kills)
	}
	if counts[telemetry.EventDeath]+counts[telemetry.EventBirth]+counts[telemetry.EventGraze] == 0 {
		t.Error("no events in 50 ticks")
	}
}

func TestOutputDirWritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	g := NewGameWithOptions(Options{Seed: 5, Headless: true, OutputDir: dir, Config: smallConfig()})

	for i := 0; i < 20; i++ {
		g.Step()
	}
	g.Unload()

	for _, name := range []string{"telemetry.csv", "perf.csv", "bookmarks.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestSelectionClearsWhenEntityDies(t *testing.T) {
	g := newTestGame(t, 2)

	q := g.predFilter.Query()
	if !q.Next() {
		t.Fatal("no predator in the world")
	}
	pred := q.Entity()
	q.Close()

	g.Select(pred)
	if _, ok := g.Selected(); !ok {
		t.Fatal("selection not set")
	}

	// Starve it so the lifecycle removes it.
	g.pop.Vitals(pred).Energy = -50
	g.Step()

	if g.pop.Alive(pred) {
		t.Fatal("starved predator survived")
	}
	if _, ok := g.Selected(); ok {
		t.Error("selection survived the entity")
	}
}

func TestCellAtUsesCamera(t *testing.T) {
	g := newTestGame(t, 4)

	// 20x20 grid in a (1280-230)x800 viewport fits at 40 px per cell.
	p, ok := g.cellAt(525, 400)
	if !ok || p != (components.Position{X: 10, Y: 10}) {
		t.Errorf("viewport center = %v (%v), want (10,10)", p, ok)
	}
	if _, ok := g.cellAt(5, 400); ok {
		t.Error("margin left of the grid should not map to a cell")
	}
}

func TestPerfCountsWorkPerPhase(t *testing.T) {
	g := newTestGame(t, 5)
	deaths := 0
	g.AddEventHandler(func(ev telemetry.Event) {
		if ev.Type == telemetry.EventDeath {
			deaths++
		}
	})

	g.Step()
	perf := g.perfCollector.Stats()

	if got := perf.WorkPerTick[telemetry.PhaseFlora]; got != 120 {
		t.Errorf("plants grown = %v, want 120", got)
	}
	if got := perf.WorkPerTick[telemetry.PhaseAnimals]; got < 1 || got > 35 {
		t.Errorf("animals acted = %v, want 1..35", got)
	}
	if got := perf.WorkPerTick[telemetry.PhaseCleanup]; got != float64(deaths) {
		t.Errorf("removed = %v, want %d deaths", got, deaths)
	}
}
