package systems

import (
	"sort"

	"github.com/mlange-42/ark/ecs"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/config"
)

// FloraSystem grows plants and spreads seedlings into free neighbor cells.
type FloraSystem struct {
	pop *Population
	rng Rand
	cfg config.PlantConfig
}

// NewFloraSystem creates the flora system.
func NewFloraSystem(pop *Population, rng Rand, cfg *config.Config) *FloraSystem {
	return &FloraSystem{pop: pop, rng: rng, cfg: cfg.Plant}
}

// Grow adds growth energy to plant e and, once it is mature, may drop a
// seedling next to it. It returns the seedling when one was planted.
func (s *FloraSystem) Grow(e ecs.Entity) (ecs.Entity, bool) {
	v := s.pop.Vitals(e)
	v.Energy = min(v.Energy+s.cfg.Growth, v.MaxEnergy)

	if v.Energy < s.cfg.SpreadMinEnergy || s.rng.Intn(100) >= s.cfg.SpreadChance {
		return ecs.Entity{}, false
	}

	pos := *s.pop.Position(e)
	site := pos.Add(neighborhood[s.rng.Intn(len(neighborhood))])
	if !s.pop.Grid().IsEmpty(site.X, site.Y) {
		return ecs.Entity{}, false
	}

	v.Energy -= s.cfg.InitialEnergy
	s.pop.Plant(e).Seeded++
	return s.pop.SpawnPlant(site, s.cfg.InitialEnergy), true
}

// SeedFlora fills the grid with plants in noise-shaped patches so that
// roughly density of all cells end up planted. Occupied cells are skipped.
func SeedFlora(pop *Population, seed int64, density, scale float64) int {
	if density <= 0 {
		return 0
	}
	grid := pop.Grid()
	noise := opensimplex.NewNormalized(seed)

	// Rank cells by noise value and plant the highest ones so the planted
	// fraction tracks density regardless of the noise distribution.
	type sample struct {
		pos components.Position
		v   float64
	}
	samples := make([]sample, 0, grid.Width()*grid.Height())
	for x := 0; x < grid.Width(); x++ {
		for y := 0; y < grid.Height(); y++ {
			if !grid.IsEmpty(x, y) {
				continue
			}
			samples = append(samples, sample{
				pos: components.Position{X: x, Y: y},
				v:   noise.Eval2(float64(x)*scale, float64(y)*scale),
			})
		}
	}

	want := min(int(density*float64(grid.Width()*grid.Height())), len(samples))
	if want == 0 {
		return 0
	}
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.v
	}
	sort.Float64s(values)
	threshold := values[len(values)-want]

	planted := 0
	for _, s := range samples {
		if planted >= want {
			break
		}
		if s.v >= threshold {
			pop.SpawnPlant(s.pos, pop.Config().Plant.InitialEnergy)
			planted++
		}
	}
	return planted
}
