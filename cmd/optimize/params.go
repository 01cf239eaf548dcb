// Package main provides CMA-ES optimization for savanna simulation parameters.
package main

import (
	"math"

	"github.com/pthm-cable/savanna/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Every config field it touches is an integer; values are rounded on apply.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Predator
			{Name: "pred_hunger_threshold", Path: "predator.hunger_threshold", Min: 6, Max: 18, Default: 12},
			{Name: "pred_charge_distance", Path: "predator.charge_distance", Min: 1, Max: 5, Default: 3},
			{Name: "pred_eat_base", Path: "predator.eat_base", Min: 3, Max: 12, Default: 7},
			{Name: "pred_birth_min_energy", Path: "predator.birth_min_energy", Min: 6, Max: 16, Default: 9},
			{Name: "pred_move_chance", Path: "predator.move_chance", Min: 4, Max: 10, Default: 9},
			// Herbivore
			{Name: "herb_graze_gain", Path: "herbivore.graze_gain", Min: 1, Max: 6, Default: 3},
			{Name: "herb_birth_min_energy", Path: "herbivore.birth_min_energy", Min: 4, Max: 11, Default: 7},
			// Plant
			{Name: "plant_spread_chance", Path: "plant.spread_chance", Min: 2, Max: 30, Default: 8},
			// Population
			{Name: "initial_predators", Path: "population.predators", Min: 5, Max: 120, Default: 40},
			{Name: "plant_density_pct", Path: "population.plant_density", Min: 10, Max: 60, Default: 35},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Max(spec.Min, math.Min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	round := func(i int) int { return int(math.Round(clamped[i])) }

	cfg.Predator.HungerThreshold = round(0)
	cfg.Predator.ChargeDistance = round(1)
	cfg.Predator.EatBase = round(2)
	cfg.Predator.BirthMinEnergy = round(3)
	cfg.Predator.MoveChance = round(4)

	cfg.Herbivore.GrazeGain = round(5)
	cfg.Herbivore.BirthMinEnergy = round(6)

	cfg.Plant.SpreadChance = round(7)

	cfg.Population.Predators = round(8)
	cfg.Population.PlantDensity = float64(round(9)) / 100
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Predator.HungerThreshold),
		float64(cfg.Predator.ChargeDistance),
		float64(cfg.Predator.EatBase),
		float64(cfg.Predator.BirthMinEnergy),
		float64(cfg.Predator.MoveChance),
		float64(cfg.Herbivore.GrazeGain),
		float64(cfg.Herbivore.BirthMinEnergy),
		float64(cfg.Plant.SpreadChance),
		float64(cfg.Population.Predators),
		math.Round(cfg.Population.PlantDensity * 100),
	}
}
