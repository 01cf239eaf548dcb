package telemetry

import (
	"log/slog"
	"slices"
	"time"
)

// Phase names for the simulation step, in tick order.
const (
	PhaseFlora     = "flora"
	PhaseAnimals   = "animals"
	PhaseLifecycle = "lifecycle"
	PhaseCleanup   = "cleanup"
	PhaseTelemetry = "telemetry"
)

// Phases lists every phase in tick order.
var Phases = []string{PhaseFlora, PhaseAnimals, PhaseLifecycle, PhaseCleanup, PhaseTelemetry}

const phaseCount = 5

func phaseIndex(name string) int {
	return slices.Index(Phases, name)
}

// tickProfile is one tick: wall time per phase and how many entities each
// phase handled (plants grown, animals acted, entities checked, corpses removed).
type tickProfile struct {
	total time.Duration
	spent [phaseCount]time.Duration
	work  [phaseCount]int
}

// PerfCollector profiles ticks over a rolling window.
type PerfCollector struct {
	ring   []tickProfile
	next   int
	filled int

	cur        tickProfile
	phase      int
	tickStart  time.Time
	phaseStart time.Time
}

// NewPerfCollector keeps the last windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]tickProfile, windowSize), phase: -1}
}

// StartTick begins profiling a tick.
func (p *PerfCollector) StartTick() {
	p.cur = tickProfile{}
	p.phase = -1
	p.tickStart = time.Now()
}

// StartPhase closes the running phase and opens the named one. Unknown
// names are timed as part of the tick but not broken out.
func (p *PerfCollector) StartPhase(name string) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phaseIndex(name)
	p.phaseStart = now
}

// AddWork credits n handled entities to the running phase.
func (p *PerfCollector) AddWork(n int) {
	if p.phase >= 0 {
		p.cur.work[p.phase] += n
	}
}

// EndTick closes the tick and stores its profile.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = -1
	p.cur.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.cur.spent[p.phase] += now.Sub(p.phaseStart)
	}
}

// PerfStats summarizes the window.
type PerfStats struct {
	Ticks   int
	AvgTick time.Duration
	P95Tick time.Duration

	PhasePct     map[string]float64 // share of tick time
	WorkPerTick  map[string]float64 // entities handled per tick
	NanosPerUnit map[string]float64 // phase cost per handled entity
}

// Stats aggregates the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		Ticks:        p.filled,
		PhasePct:     make(map[string]float64, phaseCount),
		WorkPerTick:  make(map[string]float64, phaseCount),
		NanosPerUnit: make(map[string]float64, phaseCount),
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var spent [phaseCount]time.Duration
	var work [phaseCount]int
	ticks := make([]float64, 0, p.filled)
	for _, tp := range p.ring[:p.filled] {
		total += tp.total
		ticks = append(ticks, float64(tp.total))
		for i := range phaseCount {
			spent[i] += tp.spent[i]
			work[i] += tp.work[i]
		}
	}
	slices.Sort(ticks)

	s.AvgTick = total / time.Duration(p.filled)
	s.P95Tick = time.Duration(Percentile(ticks, 0.95))

	for i, name := range Phases {
		if total > 0 {
			s.PhasePct[name] = float64(spent[i]) / float64(total) * 100
		}
		s.WorkPerTick[name] = float64(work[i]) / float64(p.filled)
		if work[i] > 0 {
			s.NanosPerUnit[name] = float64(spent[i]) / float64(work[i])
		}
	}
	return s
}

// LogStats logs the window profile.
func (s PerfStats) LogStats() {
	attrs := []any{
		"ticks", s.Ticks,
		"avg_tick_us", s.AvgTick.Microseconds(),
		"p95_tick_us", s.P95Tick.Microseconds(),
		"animals_per_tick", int(s.WorkPerTick[PhaseAnimals]),
		"ns_per_animal", int(s.NanosPerUnit[PhaseAnimals]),
	}
	for _, name := range Phases {
		if pct := s.PhasePct[name]; pct > 0.1 {
			attrs = append(attrs, name+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd      int     `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	P95TickUS      int64   `csv:"p95_tick_us"`
	PlantsPerTick  float64 `csv:"plants_per_tick"`
	AnimalsPerTick float64 `csv:"animals_per_tick"`
	NsPerAnimal    float64 `csv:"ns_per_animal"`
	DeadPerTick    float64 `csv:"dead_per_tick"`
	FloraPct       float64 `csv:"flora_pct"`
	AnimalsPct     float64 `csv:"animals_pct"`
	LifecyclePct   float64 `csv:"lifecycle_pct"`
	CleanupPct     float64 `csv:"cleanup_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV flattens s for the perf file.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTick.Microseconds(),
		P95TickUS:      s.P95Tick.Microseconds(),
		PlantsPerTick:  s.WorkPerTick[PhaseFlora],
		AnimalsPerTick: s.WorkPerTick[PhaseAnimals],
		NsPerAnimal:    s.NanosPerUnit[PhaseAnimals],
		DeadPerTick:    s.WorkPerTick[PhaseCleanup],
		FloraPct:       s.PhasePct[PhaseFlora],
		AnimalsPct:     s.PhasePct[PhaseAnimals],
		LifecyclePct:   s.PhasePct[PhaseLifecycle],
		CleanupPct:     s.PhasePct[PhaseCleanup],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
