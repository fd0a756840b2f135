// Command diffusion-sweep runs one simulation per switching probability in
// parallel and exports each run's series, for studying how the switching
// probability moves market share between stability and volatility.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-diffusion/pkg/export"
	"github.com/dd0wney/cluso-diffusion/pkg/logging"
	"github.com/dd0wney/cluso-diffusion/pkg/metrics"
	"github.com/dd0wney/cluso-diffusion/pkg/sim"
	"github.com/dd0wney/cluso-diffusion/pkg/sweep"
)

var (
	okStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF00"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000"))
)

func main() {
	configPath := flag.String("config", "", "YAML scenario file")
	probList := flag.String("p", "0.1,0.9", "Comma-separated switching probabilities")
	workers := flag.Int("workers", 4, "Concurrent simulation runs")
	outDir := flag.String("out", "", "Directory for per-run CSV files")
	compress := flag.Bool("compress", false, "Snappy-compress the CSV output")
	seedFlag := flag.String("seed", "", "Base random seed (default: from clock)")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(*logLevel))

	cfg := sim.DefaultConfig()
	if *configPath != "" {
		loaded, err := sim.LoadConfig(*configPath)
		if err != nil {
			logger.Error("invalid configuration", logging.Error(err))
			os.Exit(1)
		}
		cfg = loaded
	}
	if *seedFlag != "" {
		seed, err := strconv.ParseInt(*seedFlag, 10, 64)
		if err != nil {
			logger.Error("bad seed", logging.Error(err))
			os.Exit(1)
		}
		cfg = cfg.WithSeed(seed)
	}

	probabilities, err := parseProbabilities(*probList)
	if err != nil {
		logger.Error("bad probability list", logging.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := sweep.NewRunner(cfg, *workers)
	runner.SetLogger(logger)
	runner.SetMetrics(metrics.DefaultRegistry())

	runs, err := runner.Sweep(ctx, probabilities)
	if err != nil {
		logger.Error("sweep failed", logging.Error(err))
		os.Exit(1)
	}

	failed := 0
	for _, run := range runs {
		if run.Err != nil {
			failed++
			fmt.Printf("%s p=%.3f: %v\n", failStyle.Render("FAIL"), run.SwitchingProbability, run.Err)
			continue
		}
		line := fmt.Sprintf("p=%.3f seed=%d adopters=%d",
			run.SwitchingProbability, run.Seed, run.Result.Final().Total())
		if *outDir != "" {
			name := fmt.Sprintf("series-p%.3f-%s.csv", run.SwitchingProbability, run.ID[:8])
			path := filepath.Join(*outDir, name)
			if err := export.WriteCSVFile(path, run.Result.Series, *compress); err != nil {
				logger.Error("CSV export failed", logging.RunID(run.ID), logging.Error(err))
				failed++
				continue
			}
			line += " -> " + path
		}
		fmt.Printf("%s %s\n", okStyle.Render("OK"), line)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func parseProbabilities(list string) ([]float64, error) {
	parts := strings.Split(list, ",")
	probs := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("bad probability %q: %w", part, err)
		}
		probs = append(probs, p)
	}
	if len(probs) == 0 {
		return nil, fmt.Errorf("no probabilities given")
	}
	return probs, nil
}
