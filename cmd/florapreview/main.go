// Flora preview tool - interactive view of initial plant seeding with sliders.
//
// Usage: go run ./cmd/florapreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/config"
	"github.com/pthm-cable/savanna/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// FloraParams holds the seeding parameters under preview.
type FloraParams struct {
	Density float32
	Scale   float32
	Seed    int64
}

// seedWorld plants a fresh grid with the given parameters.
func seedWorld(cfg *config.Config, params FloraParams) (*systems.Grid, int) {
	grid := systems.NewGrid(cfg.World.Width, cfg.World.Height)
	pop := systems.NewPopulation(ecs.NewWorld(), grid, cfg)
	planted := systems.SeedFlora(pop, params.Seed, float64(params.Density), float64(params.Scale))
	return grid, planted
}

// largestPatch returns the size of the biggest 4-connected plant patch.
func largestPatch(grid *systems.Grid) int {
	seen := make(map[components.Position]bool)
	best := 0
	grid.Each(func(p components.Position, c systems.Cell) {
		if c.Kind != components.KindPlant || seen[p] {
			return
		}
		size := 0
		stack := []components.Position{p}
		seen[p] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++
			for _, o := range []components.Offset{{DX: 1}, {DX: -1}, {DY: 1}, {DY: -1}} {
				n := cur.Add(o)
				nc, ok := grid.At(n.X, n.Y)
				if !ok || nc.Kind != components.KindPlant || seen[n] {
					continue
				}
				seen[n] = true
				stack = append(stack, n)
			}
		}
		best = max(best, size)
	})
	return best
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	rl.InitWindow(windowWidth, windowHeight, "Flora Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := FloraParams{
		Density: float32(cfg.Population.PlantDensity),
		Scale:   float32(cfg.Population.PlantNoiseScale),
		Seed:    1,
	}

	grid, planted := seedWorld(cfg, params)
	patch := largestPatch(grid)
	needsRegen := false

	cell := min(float32(previewSize)/float32(cfg.World.Width), float32(previewSize)/float32(cfg.World.Height))

	for !rl.WindowShouldClose() {
		if needsRegen {
			grid, planted = seedWorld(cfg, params)
			patch = largestPatch(grid)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Preview
		rl.DrawRectangle(10, 10, int32(cell*float32(grid.Width())), int32(cell*float32(grid.Height())), rl.Beige)
		grid.Each(func(p components.Position, c systems.Cell) {
			rl.DrawRectangle(10+int32(float32(p.X)*cell), 10+int32(float32(p.Y)*cell),
				int32(cell), int32(cell), rl.DarkGreen)
		})
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Stats
		statsY := int32(previewSize + 25)
		total := grid.Width() * grid.Height()
		rl.DrawText(fmt.Sprintf("Planted: %d / %d (%.1f%%)", planted, total, 100*float32(planted)/float32(total)),
			15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Largest patch: %d cells", patch), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Flora Seeding", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Density (fraction of cells planted)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newDensity := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.0", "1.0",
			params.Density, 0, 1,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Density), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newDensity != params.Density {
			params.Density = newDensity
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Noise scale (patch frequency)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.01", "0.5",
			params.Scale, 0.01, 0.5,
		)
		rl.DrawText(fmt.Sprintf("%.3f", params.Scale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newScale != params.Scale {
			params.Scale = newScale
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "New Seed") {
			params.Seed++
			needsRegen = true
		}
		rl.DrawText(fmt.Sprintf("Seed: %d", params.Seed), int32(panelX+135), int32(panelY+7), 16, rl.DarkGray)
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Save Config") {
			out := cfg.Clone()
			out.Population.PlantDensity = float64(params.Density)
			out.Population.PlantNoiseScale = float64(params.Scale)
			if err := out.WriteYAML("flora_config.yaml"); err != nil {
				log.Printf("failed to save config: %v", err)
			} else {
				log.Printf("saved flora_config.yaml")
			}
		}

		rl.EndDrawing()
	}
}
