package game

import (
	"log/slog"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.census())
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if bm.Type == telemetry.BookmarkPredatorExtinct || bm.Type == telemetry.BookmarkHerbivoreExtinct {
			g.extinct = true
			slog.Warn("extinction", "tick", g.tick, "type", string(bm.Type))
		}
	}
}

// census samples population counts and energy distributions at window end.
func (g *Game) census() telemetry.Census {
	var c telemetry.Census

	pq := g.predFilter.Query()
	for pq.Next() {
		v, _ := pq.Get()
		c.PredEnergies = append(c.PredEnergies, float64(v.Energy))
	}
	hq := g.herbFilter.Query()
	for hq.Next() {
		v, _ := hq.Get()
		c.PreyEnergies = append(c.PreyEnergies, float64(v.Energy))
	}

	c.Predators = len(c.PredEnergies)
	c.Herbivores = len(c.PreyEnergies)
	c.Plants = g.pop.Count(components.KindPlant)
	return c
}
