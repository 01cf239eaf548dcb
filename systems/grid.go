// Package systems provides the per-tick simulation systems.
package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savanna/components"
)

// Cell is the content of one grid slot.
// A zero Cell is empty.
type Cell struct {
	Kind   components.Kind
	Entity ecs.Entity
}

// Empty reports whether nothing occupies the cell.
func (c Cell) Empty() bool {
	return c.Kind == components.KindNone
}

// Grid is the bounded 2D occupancy map shared by all systems.
// Indices outside the grid are reported, never wrapped.
type Grid struct {
	width  int
	height int
	cells  []Cell // column-major: x*height + y
}

// NewGrid creates an empty grid.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("grid: invalid size %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at (x, y). The bool is false when (x, y) is out of range.
func (g *Grid) At(x, y int) (Cell, bool) {
	if !g.InBounds(x, y) {
		return Cell{}, false
	}
	return g.cells[x*g.height+y], true
}

// IsEmpty reports whether (x, y) is in range and unoccupied.
func (g *Grid) IsEmpty(x, y int) bool {
	c, ok := g.At(x, y)
	return ok && c.Empty()
}

// Place puts an entity into an empty cell.
func (g *Grid) Place(p components.Position, c Cell) {
	idx := g.mustIndex(p.X, p.Y)
	if !g.cells[idx].Empty() {
		panic(fmt.Sprintf("grid: place %s at (%d,%d) occupied by %s", c.Kind, p.X, p.Y, g.cells[idx].Kind))
	}
	g.cells[idx] = c
}

// Clear empties the cell at p.
func (g *Grid) Clear(p components.Position) {
	g.cells[g.mustIndex(p.X, p.Y)] = Cell{}
}

// Move relocates the occupant of from to to as a single step: the old cell is
// cleared, then the new cell is set. Whatever occupied to is overwritten, so
// callers must have already disposed of it.
func (g *Grid) Move(from, to components.Position, mover Cell) {
	src := g.mustIndex(from.X, from.Y)
	dst := g.mustIndex(to.X, to.Y)
	if g.cells[src] != mover {
		panic(fmt.Sprintf("grid: %s moving from (%d,%d) which holds %s", mover.Kind, from.X, from.Y, g.cells[src].Kind))
	}
	g.cells[src] = Cell{}
	g.cells[dst] = mover
}

// Count returns how many cells hold the given kind.
func (g *Grid) Count(kind components.Kind) int {
	n := 0
	for _, c := range g.cells {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Each calls fn for every occupied cell in scan order (x ascending, then y ascending).
// fn must not mutate the grid.
func (g *Grid) Each(fn func(p components.Position, c Cell)) {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			c := g.cells[x*g.height+y]
			if !c.Empty() {
				fn(components.Position{X: x, Y: y}, c)
			}
		}
	}
}

// Occupants returns the occupied cells of the given kinds in scan order.
// The snapshot lets callers mutate the grid while iterating.
func (g *Grid) Occupants(kinds ...components.Kind) []Cell {
	var out []Cell
	g.Each(func(_ components.Position, c Cell) {
		for _, k := range kinds {
			if c.Kind == k {
				out = append(out, c)
				return
			}
		}
	})
	return out
}

// mustIndex returns the flat index for (x, y), panicking when out of range.
// Writes outside the grid are programming errors.
func (g *Grid) mustIndex(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: (%d,%d) outside %dx%d", x, y, g.width, g.height))
	}
	return x*g.height + y
}
