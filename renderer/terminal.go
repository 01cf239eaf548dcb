// Package renderer provides the terminal front end and kill sounds.
package renderer

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/systems"
)

// Simulation is what the terminal needs from a running world.
type Simulation interface {
	Step()
	Tick() int
	Grid() *systems.Grid
	Population() *systems.Population
	Counts() (predators, herbivores, plants int)
	Extinct() bool
}

var (
	stylePredator  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleCharging  = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleHerbivore = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stylePlant     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleEmpty     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// Terminal draws the grid as glyphs and steps the simulation on a ticker.
type Terminal struct {
	screen   tcell.Screen
	sim      Simulation
	interval time.Duration
	maxTicks int
	paused   bool
}

// NewTerminal wraps an uninitialized screen. maxTicks <= 0 runs until quit.
func NewTerminal(screen tcell.Screen, sim Simulation, interval time.Duration, maxTicks int) *Terminal {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Terminal{
		screen:   screen,
		sim:      sim,
		interval: interval,
		maxTicks: maxTicks,
	}
}

// Run owns the screen until the user quits, the tick limit is reached or an
// animal population dies out.
func (t *Terminal) Run() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer t.screen.Fini()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(t.screen, events, done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.Draw()
	for {
		select {
		case ev := <-events:
			if quit := t.handleEvent(ev); quit {
				return nil
			}
			t.Draw()
		case <-ticker.C:
			if t.paused {
				continue
			}
			t.sim.Step()
			t.Draw()
			if t.done() {
				return nil
			}
		}
	}
}

// pumpEvents forwards screen events until the screen is finalized or done
// is closed.
func pumpEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (t *Terminal) done() bool {
	if t.maxTicks > 0 && t.sim.Tick() >= t.maxTicks {
		return true
	}
	return t.sim.Extinct()
}

// handleEvent applies one input event and reports whether to quit.
func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case ' ':
				t.paused = !t.paused
			case 'n':
				if t.paused {
					t.sim.Step()
				}
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return false
}

// Draw renders the visible part of the grid plus a status line.
func (t *Terminal) Draw() {
	t.screen.Clear()

	grid := t.sim.Grid()
	pop := t.sim.Population()
	w, h := t.screen.Size()
	rows := h - 1

	for y := 0; y < grid.Height() && y < rows; y++ {
		for x := 0; x < grid.Width() && x < w; x++ {
			c, _ := grid.At(x, y)
			t.screen.SetContent(x, y, c.Kind.Glyph(), nil, cellStyle(pop, c))
		}
	}

	predators, herbivores, plants := t.sim.Counts()
	status := fmt.Sprintf(" tick %d  pred %d  herb %d  plant %d ", t.sim.Tick(), predators, herbivores, plants)
	if t.paused {
		status += " [paused] "
	}
	drawText(t.screen, 0, h-1, status, styleStatus)

	t.screen.Show()
}

func cellStyle(pop *systems.Population, c systems.Cell) tcell.Style {
	switch c.Kind {
	case components.KindPredator:
		if pop.Predator(c.Entity).Charge == components.Charging {
			return styleCharging
		}
		return stylePredator
	case components.KindHerbivore:
		return styleHerbivore
	case components.KindPlant:
		return stylePlant
	}
	return styleEmpty
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
