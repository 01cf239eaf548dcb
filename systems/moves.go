package systems

import (
	"sort"

	"github.com/pthm-cable/savanna/components"
)

// RankMoves orders the 8 unit moves by squared distance from each move to
// target, closest first. Equal distances keep neighborhood scan order.
func RankMoves(target components.Offset) [8]components.Offset {
	moves := neighborhood
	var keys [8]int
	for i, m := range moves {
		dx := target.DX - m.DX
		dy := target.DY - m.DY
		keys[i] = dx*dx + dy*dy
	}

	idx := [8]int{0, 1, 2, 3, 4, 5, 6, 7}
	sort.SliceStable(idx[:], func(a, b int) bool {
		return keys[idx[a]] < keys[idx[b]]
	})

	var ranked [8]components.Offset
	for i, j := range idx {
		ranked[i] = moves[j]
	}
	return ranked
}
