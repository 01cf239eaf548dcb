// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Predator   PredatorConfig   `yaml:"predator"`
	Herbivore  HerbivoreConfig  `yaml:"herbivore"`
	Plant      PlantConfig      `yaml:"plant"`
	Metabolism MetabolismConfig `yaml:"metabolism"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Bookmarks  BookmarksConfig  `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the graphical viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	CellSize  int `yaml:"cell_size"` // Pixels per grid cell (0 = fit to screen)
}

// WorldConfig holds grid dimensions.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PopulationConfig holds starting population parameters.
type PopulationConfig struct {
	Predators       int     `yaml:"predators"`
	Herbivores      int     `yaml:"herbivores"`
	PlantDensity    float64 `yaml:"plant_density"`     // Fraction of cells seeded with plants (0..1)
	PlantNoiseScale float64 `yaml:"plant_noise_scale"` // Noise frequency for plant patches
}

// PredatorConfig holds carnivore behavior parameters.
type PredatorConfig struct {
	InitialEnergy   int `yaml:"initial_energy"`
	MaxEnergy       int `yaml:"max_energy"`
	HungerThreshold int `yaml:"hunger_threshold"` // Hungry while energy < this
	MaxAge          int `yaml:"max_age"`
	VisionRadius    int `yaml:"vision_radius"`   // Vision radius at birth
	VisionPeakAge   int `yaml:"vision_peak_age"` // Vision grows up to and including this age, then shrinks
	ChargeDistance  int `yaml:"charge_distance"`
	ChargeMinEnergy int `yaml:"charge_min_energy"` // Charging continues while energy >= this
	ChargeCost      int `yaml:"charge_cost"`       // Energy paid per charging tick
	EatBase         int `yaml:"eat_base"`          // Gain = eat_base + prey_energy/2
	BirthMinAge     int `yaml:"birth_min_age"`
	BirthMaxAge     int `yaml:"birth_max_age"`
	BirthMinEnergy  int `yaml:"birth_min_energy"`
	BirthCost       int `yaml:"birth_cost"`
	MoveChance      int `yaml:"move_chance"` // Out of 10
}

// HerbivoreConfig holds herbivore behavior parameters.
type HerbivoreConfig struct {
	InitialEnergy   int `yaml:"initial_energy"`
	MaxEnergy       int `yaml:"max_energy"`
	HungerThreshold int `yaml:"hunger_threshold"`
	MaxAge          int `yaml:"max_age"`
	GrazeGain       int `yaml:"graze_gain"` // Gain = graze_gain + plant_energy/2
	BirthMinAge     int `yaml:"birth_min_age"`
	BirthMaxAge     int `yaml:"birth_max_age"`
	BirthMinEnergy  int `yaml:"birth_min_energy"`
	BirthCost       int `yaml:"birth_cost"`
	MoveChance      int `yaml:"move_chance"` // Out of 10
}

// PlantConfig holds flora parameters.
type PlantConfig struct {
	InitialEnergy   int `yaml:"initial_energy"`
	MaxEnergy       int `yaml:"max_energy"`
	Growth          int `yaml:"growth"`            // Energy gained per tick
	SpreadChance    int `yaml:"spread_chance"`     // Out of 100, per tick once mature
	SpreadMinEnergy int `yaml:"spread_min_energy"` // Energy required to spread
	MaxAge          int `yaml:"max_age"`
}

// MetabolismConfig holds per-tick upkeep for animals.
type MetabolismConfig struct {
	CostPerTick int `yaml:"cost_per_tick"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Ticks per stats window
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	PredatorRecovery PredatorRecoveryConfig `yaml:"predator_recovery"`
	PreyCrash        PreyCrashConfig        `yaml:"prey_crash"`
	StableEcosystem  StableEcosystemConfig  `yaml:"stable_ecosystem"`
}

// PredatorRecoveryConfig holds predator recovery detection parameters.
type PredatorRecoveryConfig struct {
	MinPopulation      int `yaml:"min_population"`
	RecoveryMultiplier int `yaml:"recovery_multiplier"`
	MinFinal           int `yaml:"min_final"`
}

// PreyCrashConfig holds prey crash detection parameters.
type PreyCrashConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinDrop     int     `yaml:"min_drop"`
}

// StableEcosystemConfig holds stable ecosystem detection parameters.
type StableEcosystemConfig struct {
	MinPrey       int     `yaml:"min_prey"`
	MinPred       int     `yaml:"min_pred"`
	CVThreshold   float64 `yaml:"cv_threshold"`
	StableWindows int     `yaml:"stable_windows"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Cells     int     // World.Width * World.Height
	CellSize  int32   // Effective pixels per cell in the graphical viewer
	ChargeSq  int     // Predator.ChargeDistance squared
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// validate rejects configurations the simulation cannot run with.
func (c *Config) validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("invalid world size %dx%d", c.World.Width, c.World.Height)
	}
	if c.Population.Predators+c.Population.Herbivores > c.World.Width*c.World.Height {
		return fmt.Errorf("population %d exceeds %d cells",
			c.Population.Predators+c.Population.Herbivores, c.World.Width*c.World.Height)
	}
	if c.Population.PlantDensity < 0 || c.Population.PlantDensity > 1 {
		return fmt.Errorf("plant_density %.2f outside [0,1]", c.Population.PlantDensity)
	}
	if c.Telemetry.StatsWindow <= 0 {
		return fmt.Errorf("stats_window must be positive, got %d", c.Telemetry.StatsWindow)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Cells = c.World.Width * c.World.Height
	c.Derived.ChargeSq = c.Predator.ChargeDistance * c.Predator.ChargeDistance
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// Cell size defaults to the largest square that fits the screen
	cellSize := c.Screen.CellSize
	if cellSize == 0 {
		cellSize = min(c.Screen.Width/c.World.Width, c.Screen.Height/c.World.Height)
		if cellSize < 1 {
			cellSize = 1
		}
	}
	c.Derived.CellSize = int32(cellSize)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
