package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.TogglePause()
	}

	// Single step while paused
	if rl.IsKeyPressed(rl.KeyN) && g.paused {
		g.simulationStep()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.SetStepsPerUpdate(g.stepsPerUpdate - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.SetStepsPerUpdate(g.stepsPerUpdate + 1)
	}

	if rl.IsKeyPressed(rl.KeyL) {
		g.LogSummary()
	}

	// Camera: arrows or WASD pan, wheel zooms, R resets
	const panSpeed = 12
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		g.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		g.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		g.cam.Pan(0, -panSpeed)
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		g.cam.Pan(0, panSpeed)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.cam.ZoomBy(1 + 0.1*wheel)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.cam.Reset()
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		mouse := rl.GetMousePosition()
		if e, ok := g.entityAt(mouse.X, mouse.Y); ok {
			g.selected, g.hasSelected = e, true
			g.logSelection()
		} else if mouse.X < float32(g.cfg.Screen.Width-panelWidth) {
			g.hasSelected = false
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		g.hasSelected = false
	}
}
