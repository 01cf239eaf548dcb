package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/systems"
	"github.com/pthm-cable/savanna/telemetry"
)

var (
	colorGround    = rl.Color{R: 34, G: 30, B: 22, A: 255}
	colorPlant     = rl.Color{R: 70, G: 150, B: 60, A: 255}
	colorHerbivore = rl.Color{R: 230, G: 200, B: 120, A: 255}
	colorPredator  = rl.Color{R: 210, G: 60, B: 50, A: 255}
	colorCharging  = rl.Color{R: 255, G: 140, B: 40, A: 255}
	colorPanel     = rl.Color{R: 0, G: 0, B: 0, A: 180}
)

const panelWidth = 230

// Draw renders the grid, HUD, controls and the selection panel.
func (g *Game) Draw() {
	if g.hasSelected && !g.pop.Alive(g.selected) {
		g.hasSelected = false
	}

	rl.BeginDrawing()
	rl.ClearBackground(colorGround)

	g.drawGrid()
	g.drawSelectionIndicator()
	g.drawHUD()
	g.drawControls()
	if g.hasSelected {
		g.drawInfoPanel()
	}

	rl.EndDrawing()
}

// drawGrid draws one square per visible occupied cell, shaded by energy.
func (g *Game) drawGrid() {
	x0, y0, x1, y1 := g.cam.VisibleCells()
	size := g.cam.Zoom

	sx, sy := g.cam.WorldToScreen(0, 0)
	rl.DrawRectangleLines(int32(sx)-1, int32(sy)-1,
		int32(float32(g.grid.Width())*size)+2, int32(float32(g.grid.Height())*size)+2, rl.DarkGray)

	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			c, _ := g.grid.At(x, y)
			if c.Empty() {
				continue
			}
			sx, sy := g.cam.WorldToScreen(float32(x), float32(y))
			rl.DrawRectangle(int32(sx), int32(sy), int32(size)-1, int32(size)-1, g.cellColor(c))
		}
	}
}

// cellColor picks the color for an occupied cell.
func (g *Game) cellColor(c systems.Cell) rl.Color {
	v := g.pop.Vitals(c.Entity)
	color := colorPlant
	switch c.Kind {
	case components.KindPredator:
		color = colorPredator
		if g.pop.Predator(c.Entity).Charge == components.Charging {
			color = colorCharging
		}
	case components.KindHerbivore:
		color = colorHerbivore
	}
	color.A = energyAlpha(v)
	return color
}

// energyAlpha maps energy to [90, 255] so starving entities fade.
func energyAlpha(v *components.Vitals) uint8 {
	if v.MaxEnergy <= 0 {
		return 255
	}
	frac := float32(max(0, min(v.Energy, v.MaxEnergy))) / float32(v.MaxEnergy)
	return uint8(90 + frac*165)
}

func (g *Game) drawHUD() {
	predators, herbivores, plants := g.Counts()
	x := g.cfg.Screen.Width - panelWidth

	rl.DrawRectangle(int32(x), 0, panelWidth, int32(g.cfg.Screen.Height), colorPanel)
	rl.DrawText(fmt.Sprintf("Tick: %d", g.tick), int32(x+10), 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Predators:  %d", predators), int32(x+10), 40, 18, colorPredator)
	rl.DrawText(fmt.Sprintf("Herbivores: %d", herbivores), int32(x+10), 62, 18, colorHerbivore)
	rl.DrawText(fmt.Sprintf("Plants:     %d", plants), int32(x+10), 84, 18, colorPlant)
	rl.DrawText(fmt.Sprintf("Speed: %dx", g.stepsPerUpdate), int32(x+10), 110, 18, rl.LightGray)

	s := g.lastStats
	rl.DrawText(fmt.Sprintf("Kills/window: %d", s.Kills), int32(x+10), 140, 16, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Trampled:     %d", s.Trampled), int32(x+10), 158, 16, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Charge rate:  %.2f", s.ChargeRate), int32(x+10), 176, 16, rl.LightGray)

	// Phase timing in tick order
	perf := g.perfCollector.Stats()
	y := int32(210)
	rl.DrawText(fmt.Sprintf("%dus/tick  %.0f acted", perf.AvgTick.Microseconds(), perf.WorkPerTick[telemetry.PhaseAnimals]), int32(x+10), y, 16, rl.Gray)
	for _, info := range g.registry.All() {
		y += 18
		rl.DrawText(fmt.Sprintf("%-10s %4.1f%%", info.Name, perf.PhasePct[info.ID]), int32(x+10), y, 14, rl.Gray)
	}

	if g.paused {
		rl.DrawText("PAUSED", int32(x+10), y+30, 20, rl.Yellow)
	}
	if g.extinct {
		rl.DrawText("EXTINCTION", int32(x+10), y+55, 20, rl.Red)
	}
}

// drawControls draws the pause, step and speed buttons.
func (g *Game) drawControls() {
	x := float32(g.cfg.Screen.Width - panelWidth + 10)
	y := float32(g.cfg.Screen.Height - 80)

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 100, Height: 28}, toggleText(g.paused, "Resume", "Pause")) {
		g.TogglePause()
	}
	if gui.Button(rl.Rectangle{X: x + 110, Y: y, Width: 100, Height: 28}, "Step") && g.paused {
		g.simulationStep()
	}

	speed := gui.SliderBar(
		rl.Rectangle{X: x + 20, Y: y + 40, Width: 160, Height: 20},
		"1", "50",
		float32(g.stepsPerUpdate), 1, 50,
	)
	g.SetStepsPerUpdate(int(speed + 0.5))
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}

// drawSelectionIndicator outlines the selected entity and its vision circle.
func (g *Game) drawSelectionIndicator() {
	if !g.hasSelected {
		return
	}
	size := g.cam.Zoom
	pos := g.pop.Position(g.selected)
	sx, sy := g.cam.WorldToScreen(float32(pos.X), float32(pos.Y))

	rl.DrawRectangleLines(int32(sx)-1, int32(sy)-1, int32(size)+1, int32(size)+1, rl.White)
	if g.pop.Kind(g.selected) == components.KindPredator {
		if r := g.pop.Predator(g.selected).VisionRadius; r > 0 {
			rl.DrawCircleLines(int32(sx+size/2), int32(sy+size/2), float32(r)*size, rl.Fade(rl.White, 0.4))
		}
	}
}

// drawInfoPanel shows the selected entity's state and lifetime stats.
func (g *Game) drawInfoPanel() {
	e := g.selected
	kind := g.pop.Kind(e)
	v := g.pop.Vitals(e)
	pos := g.pop.Position(e)

	lines := []string{
		fmt.Sprintf("%s at (%d,%d)", kind, pos.X, pos.Y),
		fmt.Sprintf("Energy: %d / %d", v.Energy, v.MaxEnergy),
		fmt.Sprintf("Age: %d", v.Age),
	}
	if kind == components.KindPredator {
		p := g.pop.Predator(e)
		lines = append(lines,
			fmt.Sprintf("Vision: %d", p.VisionRadius),
			fmt.Sprintf("State: %s", p.Charge),
			fmt.Sprintf("Hungry: %v", g.predators.Hungry(v)),
		)
	}
	if s := g.lifetimeTracker.Get(uint32(e.ID())); s != nil {
		lines = append(lines,
			fmt.Sprintf("Born: tick %d", s.BirthTick),
			fmt.Sprintf("Kills: %d  Grazed: %d", s.Kills, s.Grazed),
			fmt.Sprintf("Trampled: %d  Charges: %d", s.Trampled, s.ChargeTicks),
			fmt.Sprintf("Children: %d  Peak: %d", s.Children, s.PeakEnergy),
		)
	}

	h := int32(len(lines)*18 + 16)
	rl.DrawRectangle(10, 10, 240, h, colorPanel)
	for i, line := range lines {
		rl.DrawText(line, 18, 18+int32(i)*18, 16, rl.White)
	}
}
