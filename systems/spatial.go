package systems

import (
	"github.com/pthm-cable/savanna/components"
)

// Match selects grid cells during a scan.
type Match func(c Cell) bool

// OfKind matches cells holding the given kind.
func OfKind(kind components.Kind) Match {
	return func(c Cell) bool { return c.Kind == kind }
}

// FindNearest scans the circular neighborhood of origin with the given radius
// and returns the offset to the closest matching cell.
//
// Offsets are visited dx ascending, then dy ascending; among equally distant
// matches the first visited wins. Offsets outside the grid are skipped and the
// origin itself is never a candidate. found is false when nothing matches.
func FindNearest(g *Grid, origin components.Position, radius int, match Match) (best components.Offset, found bool) {
	radiusSq := radius * radius
	bestDistSq := 0

	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			distSq := dx*dx + dy*dy
			if distSq > radiusSq {
				continue
			}
			c, ok := g.At(origin.X+dx, origin.Y+dy)
			if !ok || !match(c) {
				continue
			}
			if !found || distSq < bestDistSq {
				best = components.Offset{DX: dx, DY: dy}
				bestDistSq = distSq
				found = true
			}
		}
	}

	return best, found
}

// Neighborhood returns the 3x3 offsets around a cell in scan order
// (dx ascending, then dy ascending), excluding the center.
func Neighborhood() [8]components.Offset {
	return neighborhood
}

var neighborhood = [8]components.Offset{
	{DX: -1, DY: -1}, {DX: -1, DY: 0}, {DX: -1, DY: 1},
	{DX: 0, DY: -1}, {DX: 0, DY: 1},
	{DX: 1, DY: -1}, {DX: 1, DY: 0}, {DX: 1, DY: 1},
}
