package main

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/config"
	"github.com/pthm-cable/savanna/systems"
)

func TestLargestPatch(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	grid := systems.NewGrid(6, 6)
	pop := systems.NewPopulation(ecs.NewWorld(), grid, cfg)

	// An L of three plus a separate pair; diagonals do not connect.
	for _, p := range []components.Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 3, Y: 3}, {X: 3, Y: 4}, {X: 2, Y: 2}} {
		pop.SpawnPlant(p, 2)
	}

	if got := largestPatch(grid); got != 3 {
		t.Errorf("largest patch = %d, want 3", got)
	}
}

func TestSeedWorldMatchesDensity(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.World.Width, cfg.World.Height = 20, 10

	grid, planted := seedWorld(cfg, FloraParams{Density: 0.25, Scale: 0.1, Seed: 3})
	if planted != 50 {
		t.Errorf("planted = %d, want 50", planted)
	}
	if got := grid.Count(components.KindPlant); got != planted {
		t.Errorf("grid holds %d plants, seeding reported %d", got, planted)
	}
}
