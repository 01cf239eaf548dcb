package main

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/savanna/config"
	"github.com/pthm-cable/savanna/game"
	"github.com/pthm-cable/savanna/renderer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	terminal := flag.Bool("terminal", false, "Draw the world in the terminal instead of a window")
	sound := flag.Bool("sound", false, "Play a tone on every kill (terminal mode)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	tickInterval := flag.Duration("tick-interval", 100*time.Millisecond, "Delay between ticks in terminal mode")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// JSON to stdout, except in terminal mode where stdout is the screen
	var logOut io.Writer = os.Stdout
	if *terminal {
		logOut = io.Discard
		if *outputDir != "" {
			if err := os.MkdirAll(*outputDir, 0755); err == nil {
				if f, err := os.Create(filepath.Join(*outputDir, "savanna.log")); err == nil {
					defer f.Close()
					logOut = f
				}
			}
		}
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		Headless:       *headless || *terminal,
		StepsPerUpdate: *stepsPerUpdate,
	}

	switch {
	case *headless:
		runHeadless(opts, *maxTicks)
	case *terminal:
		runTerminal(opts, *maxTicks, *tickInterval, *sound)
	default:
		runWindow(cfg, opts, *maxTicks)
	}
}

// runHeadless steps the world as fast as possible until the tick limit or an
// extinction.
func runHeadless(opts game.Options, maxTicks int) {
	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for {
		g.UpdateHeadless()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
		if g.Extinct() {
			slog.Info("stopping after extinction", "tick", g.Tick())
			break
		}
	}
	g.LogSummary()
}

func runTerminal(opts game.Options, maxTicks int, interval time.Duration, withSound bool) {
	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	if withSound {
		ks := renderer.NewKillSound()
		if err := ks.Init(); err != nil {
			// Non-fatal, the world runs silently
			slog.Warn("audio initialization failed", "error", err)
		}
		g.AddEventHandler(ks.OnEvent)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("failed to create terminal screen", "error", err)
		os.Exit(1)
	}
	if err := renderer.NewTerminal(screen, g, interval, maxTicks).Run(); err != nil {
		slog.Error("terminal viewer failed", "error", err)
		os.Exit(1)
	}
	g.LogSummary()
}

func runWindow(cfg *config.Config, opts game.Options, maxTicks int) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Savanna")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}
}
