package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/savanna/components"
)

func TestCollector_FlushCountsAndResets(t *testing.T) {
	c := NewCollector(10)

	c.RecordBirth(components.KindPredator)
	c.RecordBirth(components.KindHerbivore)
	c.RecordBirth(components.KindHerbivore)
	c.RecordBirth(components.KindPlant)
	c.RecordDeath(components.KindPredator, CauseStarved)
	c.RecordDeath(components.KindPredator, CauseAged)
	c.RecordDeath(components.KindHerbivore, CauseAged)
	c.RecordDeath(components.KindPlant, CauseAged)
	c.RecordKill()
	c.RecordGraze()
	c.RecordTrample()
	for i := 0; i < 5; i++ {
		c.RecordCharge()
	}
	c.RecordLifespan(10)
	c.RecordLifespan(20)

	if c.ShouldFlush(9) {
		t.Error("flushed before window end")
	}
	if !c.ShouldFlush(10) {
		t.Fatal("window not flushed at its end")
	}

	stats := c.Flush(10, Census{
		Predators:    2,
		Herbivores:   3,
		Plants:       7,
		PredEnergies: []float64{8, 12},
		PreyEnergies: []float64{3, 6, 9},
	})

	if stats.PredBirths != 1 || stats.PreyBirths != 2 || stats.Seedlings != 1 {
		t.Errorf("births = %d/%d/%d, want 1/2/1", stats.PredBirths, stats.PreyBirths, stats.Seedlings)
	}
	if stats.PredStarved != 1 || stats.PredAged != 1 || stats.PreyAged != 1 || stats.PlantsWithered != 1 {
		t.Errorf("deaths = %+v", stats)
	}
	if stats.Kills != 1 || stats.Grazed != 1 || stats.Trampled != 1 {
		t.Errorf("feeding = %d/%d/%d, want 1/1/1", stats.Kills, stats.Grazed, stats.Trampled)
	}
	// 5 charge ticks over 2 predators x 10 ticks
	if math.Abs(stats.ChargeRate-0.25) > 1e-9 {
		t.Errorf("charge rate = %v, want 0.25", stats.ChargeRate)
	}
	if stats.PredEnergyMean != 10 || stats.PreyEnergyP50 != 6 {
		t.Errorf("energy stats = %v / %v, want 10 / 6", stats.PredEnergyMean, stats.PreyEnergyP50)
	}
	if stats.PredLifespanMean != 15 {
		t.Errorf("lifespan mean = %v, want 15", stats.PredLifespanMean)
	}

	next := c.Flush(20, Census{})
	if next.WindowStartTick != 10 {
		t.Errorf("next window starts at %d, want 10", next.WindowStartTick)
	}
	if next.Kills != 0 || next.PredBirths != 0 || next.PredLifespanMean != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}
