package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/savanna/config"
)

// evalRecord is one row of evaluations.csv.
type evalRecord struct {
	Eval           int     `csv:"eval"`
	Fitness        float64 `csv:"fitness"`
	SurvivalTicks  float64 `csv:"survival_ticks"`
	SeedsSurvived  int     `csv:"seeds_survived"`
	PredatorsLost  int     `csv:"predators_lost"`
	HerbivoresLost int     `csv:"herbivores_lost"`
	Quality        float64 `csv:"quality"`
	Ratio          float64 `csv:"q_ratio"`
	Stability      float64 `csv:"q_stability"`
	Energy         float64 `csv:"q_energy"`
	Hunting        float64 `csv:"q_hunting"`
	Params         string  `csv:"params"`
}

// Search runs CMA-ES over the parameter vector and keeps the configuration
// with the longest, healthiest predator/herbivore coexistence.
type Search struct {
	params   *ParamVector
	eval     *FitnessEvaluator
	maxEvals int

	progress      io.Writer
	log           io.Writer
	headerWritten bool

	count   int
	start   time.Time
	best    Coexistence
	bestRaw []float64
}

// NewSearch prints one progress line per evaluation to progress and appends
// a CSV row to evalLog.
func NewSearch(params *ParamVector, eval *FitnessEvaluator, maxEvals int, progress, evalLog io.Writer) *Search {
	return &Search{
		params:   params,
		eval:     eval,
		maxEvals: maxEvals,
		progress: progress,
		log:      evalLog,
		start:    time.Now(),
	}
}

// Run minimizes fitness starting from the parameter defaults.
func (s *Search) Run(popSize int, stepSize float64) error {
	s.start = time.Now()

	problem := optimize.Problem{Func: s.objective}
	settings := &optimize.Settings{FuncEvaluations: s.maxEvals}
	method := &optimize.CmaEsChol{InitStepSize: stepSize, Population: popSize}

	_, err := optimize.Minimize(problem, s.params.Normalize(s.params.DefaultVector()), settings, method)
	if s.bestRaw == nil {
		if err == nil {
			err = errors.New("no evaluation completed")
		}
		return fmt.Errorf("searching: %w", err)
	}
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	return nil
}

// objective evaluates normalized x. Out-of-range proposals are clamped so
// the logged values are the ones actually simulated.
func (s *Search) objective(x []float64) float64 {
	raw := s.params.Clamp(s.params.Denormalize(x))
	c := s.eval.Evaluate(raw)
	s.count++

	if s.bestRaw == nil || c.Fitness < s.best.Fitness {
		s.best, s.bestRaw = c, raw
	}
	if err := s.record(raw, c); err != nil {
		log.Printf("eval %d: %v", s.count, err)
	}
	s.report(c)
	return c.Fitness
}

func (s *Search) record(raw []float64, c Coexistence) error {
	rows := []evalRecord{{
		Eval:           s.count,
		Fitness:        c.Fitness,
		SurvivalTicks:  c.Survival,
		SeedsSurvived:  c.Survived,
		PredatorsLost:  c.PredatorsLost,
		HerbivoresLost: c.HerbivoresLost,
		Quality:        c.Quality.Score(),
		Ratio:          c.Quality.Ratio,
		Stability:      c.Quality.Stability,
		Energy:         c.Quality.Energy,
		Hunting:        c.Quality.Hunting,
		Params:         s.formatParams(raw),
	}}
	write := gocsv.Marshal
	if s.headerWritten {
		write = gocsv.MarshalWithoutHeaders
	}
	if err := write(rows, s.log); err != nil {
		return fmt.Errorf("writing evaluation log: %w", err)
	}
	s.headerWritten = true
	return nil
}

func (s *Search) report(c Coexistence) {
	elapsed := time.Since(s.start)
	remaining := time.Duration(s.maxEvals-s.count) * (elapsed / time.Duration(s.count))
	seeds := len(s.eval.seeds)

	fmt.Fprintf(s.progress, "eval %d/%d: coexisted %d/%d seeds (pred lost %d, herb lost %d) survival=%.0f quality=%.2f [ratio %.2f stab %.2f energy %.2f hunt %.2f] best=%.0f | %s, ETA %s\n",
		s.count, s.maxEvals, c.Survived, seeds, c.PredatorsLost, c.HerbivoresLost,
		c.Survival, c.Quality.Score(), c.Quality.Ratio, c.Quality.Stability, c.Quality.Energy, c.Quality.Hunting,
		s.best.Fitness, formatDuration(elapsed), formatDuration(remaining))
}

func (s *Search) formatParams(raw []float64) string {
	var b strings.Builder
	for i, spec := range s.params.Specs {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%g", spec.Name, raw[i])
	}
	return b.String()
}

// Report summarizes the best evaluation.
type Report struct {
	Evaluations    int                `yaml:"evaluations"`
	Elapsed        string             `yaml:"elapsed"`
	MaxTicks       int                `yaml:"max_ticks"`
	Seeds          []int64            `yaml:"seeds"`
	Fitness        float64            `yaml:"fitness"`
	SurvivalTicks  float64            `yaml:"survival_ticks"`
	SeedsSurvived  int                `yaml:"seeds_survived"`
	PredatorsLost  int                `yaml:"predators_lost"`
	HerbivoresLost int                `yaml:"herbivores_lost"`
	Quality        float64            `yaml:"quality"`
	QualityParts   map[string]float64 `yaml:"quality_parts"`
	Params         map[string]float64 `yaml:"params"`
}

// Report returns the best evaluation so far, or false before any evaluation.
func (s *Search) Report() (Report, bool) {
	if s.bestRaw == nil {
		return Report{}, false
	}
	r := Report{
		Evaluations:    s.count,
		Elapsed:        formatDuration(time.Since(s.start)),
		MaxTicks:       s.eval.maxTicks,
		Seeds:          s.eval.seeds,
		Fitness:        s.best.Fitness,
		SurvivalTicks:  s.best.Survival,
		SeedsSurvived:  s.best.Survived,
		PredatorsLost:  s.best.PredatorsLost,
		HerbivoresLost: s.best.HerbivoresLost,
		Quality:        s.best.Quality.Score(),
		QualityParts: map[string]float64{
			"ratio":     s.best.Quality.Ratio,
			"stability": s.best.Quality.Stability,
			"energy":    s.best.Quality.Energy,
			"hunting":   s.best.Quality.Hunting,
		},
		Params: make(map[string]float64, len(s.bestRaw)),
	}
	for i, spec := range s.params.Specs {
		r.Params[spec.Name] = s.bestRaw[i]
	}
	return r, true
}

// WriteResults saves best_config.yaml (base with the best parameters applied)
// and best_report.yaml into dir.
func (s *Search) WriteResults(dir string, base *config.Config) error {
	report, ok := s.Report()
	if !ok {
		return errors.New("no evaluation to write")
	}

	cfg := base.Clone()
	s.params.ApplyToConfig(cfg, s.bestRaw)
	if err := cfg.WriteYAML(filepath.Join(dir, "best_config.yaml")); err != nil {
		return err
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "best_report.yaml"), data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// formatDuration formats a duration as 1h02m03s or 2m03s.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	sec := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, sec)
	}
	return fmt.Sprintf("%dm%02ds", m, sec)
}
