// Package game wires the grid, the per-tick systems and telemetry into a
// runnable simulation with graphical, terminal and headless front ends.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savanna/camera"
	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/config"
	"github.com/pthm-cable/savanna/systems"
	"github.com/pthm-cable/savanna/telemetry"
)

// Options configures a new game.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int

	// Config overrides the global config when set.
	Config *config.Config
}

// EventHandler receives every telemetry event as it happens.
type EventHandler func(telemetry.Event)

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	grid *systems.Grid
	pop  *systems.Population

	// Systems
	flora      *systems.FloraSystem
	herbivores *systems.HerbivoreSystem
	predators  *systems.PredatorSystem
	lifecycle  *systems.LifecycleSystem
	registry   *systems.SystemRegistry

	// Filters for snapshots and census
	plantFilter *ecs.Filter2[components.Vitals, components.Plant]
	predFilter  *ecs.Filter2[components.Vitals, components.Predator]
	herbFilter  *ecs.Filter2[components.Vitals, components.Herbivore]

	// Telemetry
	collector        *telemetry.Collector
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	lifetimeTracker  *telemetry.LifetimeTracker
	outputManager    *telemetry.OutputManager
	eventHandlers    []EventHandler
	statsCallback    func(telemetry.WindowStats)
	lastStats        telemetry.WindowStats

	// State
	tick           int
	paused         bool
	logStats       bool
	headless       bool
	stepsPerUpdate int
	extinct        bool

	// Viewer state
	cam         *camera.Camera
	selected    ecs.Entity
	hasSelected bool
}

// NewGameWithOptions creates a new game and seeds its world.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	world := ecs.NewWorld()
	grid := systems.NewGrid(cfg.World.Width, cfg.World.Height)
	pop := systems.NewPopulation(world, grid, cfg)
	rng := rand.New(rand.NewSource(opts.Seed))
	predators := systems.NewPredatorSystem(pop, rng, cfg)

	g := &Game{
		cfg:        cfg,
		world:      world,
		rng:        rng,
		grid:       grid,
		pop:        pop,
		flora:      systems.NewFloraSystem(pop, rng, cfg),
		herbivores: systems.NewHerbivoreSystem(pop, rng, cfg),
		predators:  predators,
		lifecycle:  systems.NewLifecycleSystem(pop, predators, cfg),
		registry:   systems.NewSystemRegistry(),

		plantFilter: ecs.NewFilter2[components.Vitals, components.Plant](world),
		predFilter:  ecs.NewFilter2[components.Vitals, components.Predator](world),
		herbFilter:  ecs.NewFilter2[components.Vitals, components.Herbivore](world),

		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),

		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config snapshot", "error", err)
			}
		}
	}

	g.cam = camera.New(float32(cfg.Screen.Width-panelWidth), float32(cfg.Screen.Height),
		float32(cfg.World.Width), float32(cfg.World.Height))
	if cfg.Screen.CellSize > 0 {
		g.cam.SetZoom(float32(cfg.Derived.CellSize))
	}

	g.spawnInitialPopulation(opts.Seed)

	slog.Info("world seeded",
		"seed", opts.Seed,
		"width", cfg.World.Width,
		"height", cfg.World.Height,
		"predators", pop.Count(components.KindPredator),
		"herbivores", pop.Count(components.KindHerbivore),
		"plants", pop.Count(components.KindPlant),
	)

	return g
}

// Update handles input and runs steps-per-update ticks unless paused.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs steps-per-update ticks without touching the window.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Step runs exactly one tick.
func (g *Game) Step() {
	g.simulationStep()
}

// AddEventHandler registers a callback for telemetry events.
func (g *Game) AddEventHandler(h EventHandler) {
	g.eventHandlers = append(g.eventHandlers, h)
}

// SetStatsCallback registers a callback invoked on every stats window flush.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int {
	return g.tick
}

// Grid returns the occupancy grid for viewers.
func (g *Game) Grid() *systems.Grid {
	return g.grid
}

// Population returns the entity store.
func (g *Game) Population() *systems.Population {
	return g.pop
}

// Counts returns the live predator, herbivore and plant counts.
func (g *Game) Counts() (predators, herbivores, plants int) {
	return g.pop.Count(components.KindPredator),
		g.pop.Count(components.KindHerbivore),
		g.pop.Count(components.KindPlant)
}

// LastStats returns the most recently flushed stats window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}

// Extinct reports whether either animal population has died out.
func (g *Game) Extinct() bool {
	return g.extinct
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// TogglePause flips the paused state.
func (g *Game) TogglePause() {
	g.paused = !g.paused
}

// SetStepsPerUpdate changes the simulation speed, clamped to [1, 50].
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(1, min(n, 50))
}

// StepsPerUpdate returns the current simulation speed.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// Unload flushes and closes output files.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

func (g *Game) emit(ev telemetry.Event) {
	g.lifetimeTracker.Record(ev)
	for _, h := range g.eventHandlers {
		h(ev)
	}
}
