package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/config"
	"github.com/pthm-cable/savanna/game"
	"github.com/pthm-cable/savanna/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []int64
	baseConfig *config.Config
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// A species below minViablePop for extinctionGraceTicks consecutive ticks
// counts as functionally extinct.
const (
	minViablePop         = 3
	extinctionGraceTicks = 30
	warmupTicks          = 10
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int                     // ticks before functional extinction (or maxTicks if survived)
	lost          components.Kind         // species that collapsed first, KindNone if both lasted
	windowStats   []telemetry.WindowStats // collected via the stats callback each window
}

// Coexistence is one evaluation averaged over its seeds.
type Coexistence struct {
	Fitness  float64
	Survival float64 // mean ticks both species stayed viable
	Quality  qualityParts

	Survived       int // seeds that reached maxTicks
	PredatorsLost  int // seeds where predators collapsed first
	HerbivoresLost int
}

// Evaluate runs every seed in parallel for a raw parameter vector.
// Lower Fitness is better.
func (fe *FitnessEvaluator) Evaluate(x []float64) Coexistence {
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var c Coexistence
	for _, r := range results {
		q := qualityOf(r.windowStats)
		c.Fitness += fitnessOf(r.survivalTicks, q.Score())
		c.Survival += float64(r.survivalTicks)
		c.Quality = c.Quality.add(q)

		switch r.lost {
		case components.KindPredator:
			c.PredatorsLost++
		case components.KindHerbivore:
			c.HerbivoresLost++
		default:
			c.Survived++
		}
	}

	n := float64(len(results))
	c.Fitness /= n
	c.Survival /= n
	c.Quality = c.Quality.scale(1 / n)
	return c
}

// runSimulation executes a single headless simulation run.
// Runs until functional extinction or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}

	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 1,
		Config:         cfg,
	})
	defer g.Unload()
	g.SetStatsCallback(func(stats telemetry.WindowStats) {
		result.windowStats = append(result.windowStats, stats)
	})

	var predBelow, preyBelow int
	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()

		tick := g.Tick()
		if tick < warmupTicks {
			continue
		}

		pred, prey, _ := g.Counts()
		predBelow = belowCount(pred, predBelow)
		preyBelow = belowCount(prey, preyBelow)

		switch {
		case pred == 0 || predBelow >= extinctionGraceTicks:
			result.lost = components.KindPredator
		case prey == 0 || preyBelow >= extinctionGraceTicks:
			result.lost = components.KindHerbivore
		default:
			continue
		}
		result.survivalTicks = tick
		return result
	}

	result.survivalTicks = fe.maxTicks
	return result
}

func belowCount(pop, run int) int {
	if pop < minViablePop {
		return run + 1
	}
	return 0
}

// fitnessOf is -(survivalTicks × (1 + 0.2 × quality)); lower is better.
func fitnessOf(survivalTicks int, quality float64) float64 {
	return -(float64(survivalTicks) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.30
	qualityWeightStability = 0.25
	qualityWeightEnergy    = 0.25
	qualityWeightHunting   = 0.20

	qualityWarmupWindows = 2 // skip first N windows
	qualityMinPop        = 3 // exclude windows where either species < this
	targetPreyPerPred    = 6.0
	targetKillsPerPred   = 1.0 // per window
)

// qualityParts are the per-component ecosystem scores, each in [0, 1].
type qualityParts struct {
	Ratio     float64 // prey per predator near the target
	Stability float64 // low population variation
	Energy    float64 // median predator near the hunger line
	Hunting   float64 // kills per predator per window
}

// Score weights the parts into a single quality in [0, 1].
func (q qualityParts) Score() float64 {
	return clamp01(qualityWeightRatio*q.Ratio +
		qualityWeightStability*q.Stability +
		qualityWeightEnergy*q.Energy +
		qualityWeightHunting*q.Hunting)
}

func (q qualityParts) add(o qualityParts) qualityParts {
	return qualityParts{q.Ratio + o.Ratio, q.Stability + o.Stability, q.Energy + o.Energy, q.Hunting + o.Hunting}
}

func (q qualityParts) scale(f float64) qualityParts {
	return qualityParts{q.Ratio * f, q.Stability * f, q.Energy * f, q.Hunting * f}
}

// qualityOf scores the windows of one run. Warmup windows and windows where
// either species is nearly gone are skipped.
func qualityOf(windows []telemetry.WindowStats) qualityParts {
	if len(windows) <= qualityWarmupWindows {
		return qualityParts{}
	}

	var q qualityParts
	var count int
	var preyCounts, predCounts []float64

	for _, w := range windows[qualityWarmupWindows:] {
		if w.Herbivores < qualityMinPop || w.Predators < qualityMinPop {
			continue
		}
		count++

		preyCounts = append(preyCounts, float64(w.Herbivores))
		predCounts = append(predCounts, float64(w.Predators))

		ratio := float64(w.Herbivores) / float64(w.Predators)
		logErr := math.Log(ratio / targetPreyPerPred)
		q.Ratio += math.Exp(-logErr * logErr)

		q.Energy += math.Exp(-math.Pow((w.PredEnergyP50-12)/4, 2))

		killsPerPred := float64(w.Kills) / float64(w.Predators)
		q.Hunting += 1 - math.Exp(-killsPerPred/targetKillsPerPred)
	}

	if count == 0 {
		return qualityParts{}
	}

	q = q.scale(1 / float64(count))
	if len(preyCounts) >= 2 {
		cvPrey, cvPred := cv(preyCounts), cv(predCounts)
		q.Stability = math.Exp(-(cvPrey*cvPrey + cvPred*cvPred))
	}
	return q
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	mean, std := telemetry.MeanStd(values)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
