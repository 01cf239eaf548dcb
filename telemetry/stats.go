package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`

	// Population counts at window end
	Predators  int `csv:"predators"`
	Herbivores int `csv:"herbivores"`
	Plants     int `csv:"plants"`

	// Births and deaths during the window
	PredBirths     int `csv:"pred_births"`
	PreyBirths     int `csv:"prey_births"`
	Seedlings      int `csv:"seedlings"`
	PredStarved    int `csv:"pred_starved"`
	PredAged       int `csv:"pred_aged"`
	PreyStarved    int `csv:"prey_starved"`
	PreyAged       int `csv:"prey_aged"`
	PlantsWithered int `csv:"plants_withered"`

	// Feeding and hunting
	Kills       int     `csv:"kills"`
	Grazed      int     `csv:"grazed"`
	Trampled    int     `csv:"trampled"`
	ChargeTicks int     `csv:"charge_ticks"`
	ChargeRate  float64 `csv:"charge_rate"` // Fraction of predator-ticks spent charging

	// Energy distribution (sampled at window end)
	PredEnergyMean float64 `csv:"pred_energy_mean"`
	PredEnergyP10  float64 `csv:"pred_energy_p10"`
	PredEnergyP50  float64 `csv:"pred_energy_p50"`
	PredEnergyP90  float64 `csv:"pred_energy_p90"`
	PreyEnergyMean float64 `csv:"prey_energy_mean"`
	PreyEnergyP10  float64 `csv:"prey_energy_p10"`
	PreyEnergyP50  float64 `csv:"prey_energy_p50"`
	PreyEnergyP90  float64 `csv:"prey_energy_p90"`

	PredLifespanMean float64 `csv:"pred_lifespan_mean"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeEnergyStats calculates mean and percentiles from energy values.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return stat.Mean(sorted, nil), Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// MeanStd returns the mean and sample standard deviation of values.
// Fewer than two values have zero deviation.
func MeanStd(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("predators", s.Predators),
		slog.Int("herbivores", s.Herbivores),
		slog.Int("plants", s.Plants),
		slog.Int("pred_births", s.PredBirths),
		slog.Int("prey_births", s.PreyBirths),
		slog.Int("seedlings", s.Seedlings),
		slog.Int("pred_starved", s.PredStarved),
		slog.Int("pred_aged", s.PredAged),
		slog.Int("prey_starved", s.PreyStarved),
		slog.Int("prey_aged", s.PreyAged),
		slog.Int("plants_withered", s.PlantsWithered),
		slog.Int("kills", s.Kills),
		slog.Int("grazed", s.Grazed),
		slog.Int("trampled", s.Trampled),
		slog.Int("charge_ticks", s.ChargeTicks),
		slog.Float64("charge_rate", s.ChargeRate),
		slog.Float64("pred_energy_mean", s.PredEnergyMean),
		slog.Float64("pred_energy_p50", s.PredEnergyP50),
		slog.Float64("prey_energy_mean", s.PreyEnergyMean),
		slog.Float64("prey_energy_p50", s.PreyEnergyP50),
		slog.Float64("pred_lifespan_mean", s.PredLifespanMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"predators", s.Predators,
		"herbivores", s.Herbivores,
		"plants", s.Plants,
		"pred_births", s.PredBirths,
		"prey_births", s.PreyBirths,
		"pred_starved", s.PredStarved,
		"pred_aged", s.PredAged,
		"prey_starved", s.PreyStarved,
		"prey_aged", s.PreyAged,
		"kills", s.Kills,
		"grazed", s.Grazed,
		"trampled", s.Trampled,
		"charge_rate", s.ChargeRate,
		"pred_energy_mean", s.PredEnergyMean,
		"prey_energy_mean", s.PreyEnergyMean,
		"pred_lifespan_mean", s.PredLifespanMean,
	)
}
