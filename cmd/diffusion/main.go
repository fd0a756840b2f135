// Command diffusion runs one technology diffusion simulation and exports the
// adoption-count series.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/dd0wney/cluso-diffusion/pkg/export"
	"github.com/dd0wney/cluso-diffusion/pkg/feed"
	"github.com/dd0wney/cluso-diffusion/pkg/logging"
	"github.com/dd0wney/cluso-diffusion/pkg/metrics"
	"github.com/dd0wney/cluso-diffusion/pkg/sim"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	countStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF00"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF00FF"))
)

func main() {
	configPath := flag.String("config", "", "YAML scenario file")
	population := flag.Int("population", 1000, "Number of agents")
	attachment := flag.Int("m", 3, "Preferential-attachment fan-out")
	technologies := flag.Int("technologies", 3, "Number of competing technologies")
	earlyAdopters := flag.Int("early-adopters", 2, "Early adopters per technology")
	probability := flag.Float64("p", 0.9, "Switching probability")
	iterations := flag.Int("iterations", 10000, "Number of iterations")
	seedFlag := flag.String("seed", "", "Random seed (default: from clock)")
	csvPath := flag.String("csv", "", "Write the series to a CSV file")
	compress := flag.Bool("compress", false, "Snappy-compress the CSV output")
	jsonPath := flag.String("json", "", "Write the full result to a JSON file")
	pgURL := flag.String("pg", "", "PostgreSQL URL to store the result")
	feedAddr := flag.String("feed", "", "Publish live snapshots on this address, e.g. tcp://127.0.0.1:9290")
	metricsAddr := flag.String("metrics", "", "Serve prometheus metrics on this address, e.g. :9102")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(*logLevel))

	cfg, err := buildConfig(*configPath, flagOverrides{
		population:    *population,
		attachment:    *attachment,
		technologies:  *technologies,
		earlyAdopters: *earlyAdopters,
		probability:   *probability,
		iterations:    *iterations,
		seed:          *seedFlag,
	})
	if err != nil {
		logger.Error("invalid configuration", logging.Error(err))
		os.Exit(1)
	}

	engine, err := sim.New(cfg)
	if err != nil {
		logger.Error("setup failed", logging.Error(err))
		os.Exit(1)
	}
	engine.SetLogger(logger)

	reg := metrics.DefaultRegistry()
	engine.SetMetrics(reg)
	if net := engine.Network(); net != nil {
		reg.UpdateNetwork(net.NodeCount(), net.EdgeCount())
	}
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", reg.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Error("metrics server stopped", logging.Error(err))
			}
		}()
	}

	if *feedAddr != "" {
		pub, err := feed.NewPublisher(*feedAddr)
		if err != nil {
			logger.Error("feed setup failed", logging.Error(err))
			os.Exit(1)
		}
		defer pub.Close()
		engine.Recorder().Observe(pub.Observer())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, runErr := engine.Run(ctx)
	if runErr != nil {
		logger.Warn("run stopped early", logging.Error(runErr))
	}

	runID := uuid.NewString()
	if *csvPath != "" {
		if err := export.WriteCSVFile(*csvPath, result.Series, *compress); err != nil {
			logger.Error("CSV export failed", logging.Error(err))
			os.Exit(1)
		}
		logger.Info("series exported", logging.String("path", *csvPath))
	}
	if *jsonPath != "" {
		if err := export.WriteJSONFile(*jsonPath, result); err != nil {
			logger.Error("JSON export failed", logging.Error(err))
			os.Exit(1)
		}
		logger.Info("result exported", logging.String("path", *jsonPath))
	}
	if *pgURL != "" {
		sink, err := export.NewPGSink(ctx, *pgURL)
		if err != nil {
			logger.Error("postgres sink setup failed", logging.Error(err))
			os.Exit(1)
		}
		defer sink.Close()
		if err := sink.StoreResult(ctx, runID, result); err != nil {
			logger.Error("postgres store failed", logging.Error(err))
			os.Exit(1)
		}
		logger.Info("result stored", logging.RunID(runID))
	}

	printSummary(result)
}

type flagOverrides struct {
	population    int
	attachment    int
	technologies  int
	earlyAdopters int
	probability   float64
	iterations    int
	seed          string
}

// buildConfig layers explicitly set flags over the scenario file (or the
// defaults when no file is given).
func buildConfig(path string, o flagOverrides) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if path != "" {
		loaded, err := sim.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["population"] {
		cfg.PopulationSize = o.population
	}
	if set["m"] {
		cfg.AttachmentM = o.attachment
	}
	if set["technologies"] {
		cfg.TechnologyCount = o.technologies
	}
	if set["early-adopters"] {
		cfg.EarlyAdoptersPerTech = o.earlyAdopters
	}
	if set["p"] {
		cfg.SwitchingProbability = o.probability
	}
	if set["iterations"] {
		cfg.Iterations = o.iterations
	}
	if o.seed != "" {
		seed, err := strconv.ParseInt(o.seed, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("bad seed %q: %w", o.seed, err)
		}
		cfg = cfg.WithSeed(seed)
	}
	return cfg, nil
}

// printSummary renders the final adopter counts as a small bar chart.
func printSummary(result *sim.Result) {
	final := result.Final()

	fmt.Println()
	fmt.Println(titleStyle.Render("Technology adoption after " +
		strconv.Itoa(result.Config.Iterations) + " iterations"))

	maxCount := 1
	for _, c := range final.Counts {
		if c > maxCount {
			maxCount = c
		}
	}
	for tech, count := range final.Counts {
		width := count * 40 / maxCount
		fmt.Printf("  %s %s %s\n",
			labelStyle.Render(fmt.Sprintf("technology-%d", tech+1)),
			barStyle.Render(strings.Repeat("█", width)),
			countStyle.Render(strconv.Itoa(count)),
		)
	}
	fmt.Printf("  %s %s of %d agents adopted\n",
		labelStyle.Render("total:"),
		countStyle.Render(strconv.Itoa(final.Total())),
		result.Config.PopulationSize,
	)
}
