package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/savanna/config"
)

func newTestSearch(t *testing.T, progress, evalLog *bytes.Buffer) (*Search, *config.Config) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.World.Width, cfg.World.Height = 16, 16
	cfg.Population.Herbivores = 40
	cfg.Telemetry.StatsWindow = 10

	pv := NewParamVector()
	return NewSearch(pv, NewFitnessEvaluator(pv, 30, []int64{3}, cfg), 5, progress, evalLog), cfg
}

func TestSearchObjectiveLogsEveryEvaluation(t *testing.T) {
	var progress, evalLog bytes.Buffer
	s, _ := newTestSearch(t, &progress, &evalLog)

	x := s.params.Normalize(s.params.DefaultVector())
	s.objective(x)
	x[8] = 5 // far above range; clamped to the predator maximum
	s.objective(x)

	lines := strings.Split(strings.TrimSpace(evalLog.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("log lines = %d, want header + 2 rows:\n%s", len(lines), evalLog.String())
	}
	if !strings.HasPrefix(lines[0], "eval,fitness,survival_ticks,seeds_survived,predators_lost,herbivores_lost,quality") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], "initial_predators=120") {
		t.Errorf("second row should log the clamped value: %q", lines[2])
	}
	if got := strings.Count(progress.String(), "\n"); got != 2 {
		t.Errorf("progress lines = %d, want 2", got)
	}
	if s.count != 2 || s.bestRaw == nil {
		t.Errorf("count = %d, best = %v", s.count, s.bestRaw)
	}
}

func TestSearchKeepsBestFitness(t *testing.T) {
	var progress, evalLog bytes.Buffer
	s, _ := newTestSearch(t, &progress, &evalLog)

	x := s.params.Normalize(s.params.DefaultVector())
	first := s.objective(x)
	x[8] = 0
	second := s.objective(x)

	want := min(first, second)
	if s.best.Fitness != want {
		t.Errorf("best = %v, want min(%v, %v)", s.best.Fitness, first, second)
	}
}

func TestSearchWriteResults(t *testing.T) {
	var progress, evalLog bytes.Buffer
	s, cfg := newTestSearch(t, &progress, &evalLog)

	dir := t.TempDir()
	if err := s.WriteResults(dir, cfg); err == nil {
		t.Fatal("WriteResults succeeded before any evaluation")
	}

	s.objective(s.params.Normalize(s.params.DefaultVector()))
	if err := s.WriteResults(dir, cfg); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}

	best, err := config.Load(filepath.Join(dir, "best_config.yaml"))
	if err != nil {
		t.Fatalf("loading best config: %v", err)
	}
	if best.World.Width != 16 || best.Predator.HungerThreshold != 12 {
		t.Errorf("best config width=%d hunger=%d, want 16/12", best.World.Width, best.Predator.HungerThreshold)
	}

	data, err := os.ReadFile(filepath.Join(dir, "best_report.yaml"))
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	var report Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		t.Fatalf("parsing report: %v", err)
	}
	if report.Evaluations != 1 || report.MaxTicks != 30 || len(report.Seeds) != 1 {
		t.Errorf("report = %+v", report)
	}
	if report.Params["pred_hunger_threshold"] != 12 {
		t.Errorf("params = %v", report.Params)
	}
	if n := report.SeedsSurvived + report.PredatorsLost + report.HerbivoresLost; n != 1 {
		t.Errorf("seed outcomes = %d, want 1", n)
	}
	if _, ok := report.QualityParts["hunting"]; !ok {
		t.Errorf("quality parts = %v", report.QualityParts)
	}
}
