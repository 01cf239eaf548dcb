package telemetry

import "github.com/pthm-cable/savanna/components"

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks     int
	windowStartTick int

	// Event counters for the current window
	predBirths     int
	preyBirths     int
	seedlings      int
	predStarved    int
	predAged       int
	preyStarved    int
	preyAged       int
	plantsWithered int
	kills          int
	grazed         int
	trampled       int
	chargeTicks    int
	predLifespans  []float64
}

// NewCollector creates a collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// RecordBirth records a newborn animal or a seedling.
func (c *Collector) RecordBirth(kind components.Kind) {
	switch kind {
	case components.KindPredator:
		c.predBirths++
	case components.KindHerbivore:
		c.preyBirths++
	case components.KindPlant:
		c.seedlings++
	}
}

// RecordDeath records an entity removed by the lifecycle pass.
func (c *Collector) RecordDeath(kind components.Kind, cause DeathCause) {
	switch kind {
	case components.KindPredator:
		if cause == CauseStarved {
			c.predStarved++
		} else {
			c.predAged++
		}
	case components.KindHerbivore:
		if cause == CauseStarved {
			c.preyStarved++
		} else {
			c.preyAged++
		}
	case components.KindPlant:
		c.plantsWithered++
	}
}

// RecordKill records a herbivore eaten by a predator.
func (c *Collector) RecordKill() { c.kills++ }

// RecordGraze records a plant eaten by a herbivore.
func (c *Collector) RecordGraze() { c.grazed++ }

// RecordTrample records a plant destroyed by a charging predator.
func (c *Collector) RecordTrample() { c.trampled++ }

// RecordCharge records one tick spent charging.
func (c *Collector) RecordCharge() { c.chargeTicks++ }

// RecordLifespan records the age of a predator at death.
func (c *Collector) RecordLifespan(age int) {
	c.predLifespans = append(c.predLifespans, float64(age))
}

// ShouldFlush returns true once a full window has elapsed.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Census is the population state sampled at window end.
type Census struct {
	Predators  int
	Herbivores int
	Plants     int

	PredEnergies []float64
	PreyEnergies []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int, census Census) WindowStats {
	predMean, predP10, predP50, predP90 := ComputeEnergyStats(census.PredEnergies)
	preyMean, preyP10, preyP50, preyP90 := ComputeEnergyStats(census.PreyEnergies)
	lifespan, _ := MeanStd(c.predLifespans)

	var chargeRate float64
	if census.Predators > 0 {
		chargeRate = float64(c.chargeTicks) / float64(census.Predators*c.windowTicks)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Predators:  census.Predators,
		Herbivores: census.Herbivores,
		Plants:     census.Plants,

		PredBirths:     c.predBirths,
		PreyBirths:     c.preyBirths,
		Seedlings:      c.seedlings,
		PredStarved:    c.predStarved,
		PredAged:       c.predAged,
		PreyStarved:    c.preyStarved,
		PreyAged:       c.preyAged,
		PlantsWithered: c.plantsWithered,

		Kills:       c.kills,
		Grazed:      c.grazed,
		Trampled:    c.trampled,
		ChargeTicks: c.chargeTicks,
		ChargeRate:  chargeRate,

		PredEnergyMean: predMean,
		PredEnergyP10:  predP10,
		PredEnergyP50:  predP50,
		PredEnergyP90:  predP90,
		PreyEnergyMean: preyMean,
		PreyEnergyP10:  preyP10,
		PreyEnergyP50:  preyP50,
		PreyEnergyP90:  preyP90,

		PredLifespanMean: lifespan,
	}

	c.reset(currentTick)
	return stats
}

func (c *Collector) reset(tick int) {
	*c = Collector{
		windowTicks:     c.windowTicks,
		windowStartTick: tick,
		predLifespans:   c.predLifespans[:0],
	}
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}
