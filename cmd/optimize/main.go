// Command optimize searches savanna parameters for long predator/herbivore
// coexistence.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/pthm-cable/savanna/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 2000, "Ticks per run before a seed counts as coexisting")
	seeds := flag.Int("seeds", 3, "Worlds simulated per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = 4 + 3 ln n)")
	stepSize := flag.Float64("step", 0.3, "Initial CMA-ES step in normalized parameter space")
	outputDir := flag.String("output", "", "Directory for evaluations.csv, best_config.yaml and best_report.yaml")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Each evaluation seeds several worlds; keep their logs quiet
	slog.SetDefault(slog.New(slog.NewJSONHandler(io.Discard, nil)))

	params := NewParamVector()
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	logFile, err := os.Create(filepath.Join(*outputDir, "evaluations.csv"))
	if err != nil {
		log.Fatalf("failed to create evaluation log: %v", err)
	}
	defer logFile.Close()

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3*math.Log(float64(params.Dim())))
	}

	search := NewSearch(params, NewFitnessEvaluator(params, *maxTicks, evalSeeds, config.Cfg()), *maxEvals, os.Stdout, logFile)

	fmt.Printf("CMA-ES over %d parameters, population=%d, max_evals=%d, %d seeds x %d ticks\n",
		params.Dim(), popSize, *maxEvals, *seeds, *maxTicks)
	if err := search.Run(popSize, *stepSize); err != nil {
		log.Fatal(err)
	}

	report, _ := search.Report()
	fmt.Printf("\nBest after %d evaluations (%s): coexisted %d/%d seeds, survival %.0f ticks, quality %.2f\n",
		report.Evaluations, report.Elapsed, report.SeedsSurvived, len(report.Seeds), report.SurvivalTicks, report.Quality)
	for _, spec := range params.Specs {
		fmt.Printf("  %-22s %g\n", spec.Name, report.Params[spec.Name])
	}

	if err := search.WriteResults(*outputDir, config.Cfg()); err != nil {
		log.Fatalf("failed to write results: %v", err)
	}
	fmt.Printf("\nResults saved to %s\n", *outputDir)
}
