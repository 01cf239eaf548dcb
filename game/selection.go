package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savanna/components"
)

// cellAt converts screen coordinates to a grid cell.
func (g *Game) cellAt(screenX, screenY float32) (components.Position, bool) {
	x, y, ok := g.cam.CellAt(screenX, screenY)
	return components.Position{X: x, Y: y}, ok && g.grid.InBounds(x, y)
}

// entityAt returns the entity in the cell under the given screen point.
func (g *Game) entityAt(screenX, screenY float32) (ecs.Entity, bool) {
	p, ok := g.cellAt(screenX, screenY)
	if !ok {
		return ecs.Entity{}, false
	}
	c, _ := g.grid.At(p.X, p.Y)
	if c.Empty() {
		return ecs.Entity{}, false
	}
	return c.Entity, true
}

// Select marks e as the inspected entity.
func (g *Game) Select(e ecs.Entity) {
	if g.pop.Alive(e) {
		g.selected, g.hasSelected = e, true
	}
}

// Selected returns the inspected entity, if any.
func (g *Game) Selected() (ecs.Entity, bool) {
	return g.selected, g.hasSelected
}
