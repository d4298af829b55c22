package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/limaJavier/alignments/internal/config"
	"github.com/limaJavier/alignments/internal/history"
	"github.com/limaJavier/alignments/internal/input"
	"github.com/limaJavier/alignments/internal/metrics"
	"github.com/limaJavier/alignments/internal/preprocess"
	"github.com/limaJavier/alignments/internal/render"
	"github.com/limaJavier/alignments/pkg/model"
	"github.com/limaJavier/alignments/pkg/sat"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	exitSolved             = 10
	exitVerificationFailed = 15
	exitNoSolution         = 20
)

var solvers = map[string]func(path string) sat.SATSolver{
	"gini":          func(string) sat.SATSolver { return sat.NewGiniSolver() },
	"kissat":        sat.NewKissatSolver,
	"cadical":       sat.NewCadicalSolver,
	"cryptominisat": sat.NewCryptominisatSolver,
}

func main() {
	// Define arguments
	configPathPtr := flag.String("config", "", "Path to a JSON config file; explicitly set flags take precedence over its values")
	filePathPtr := flag.String("file", "", "Path to the input CSV file (header row, then \"student,specialty,...\")")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	formatPtr := flag.String("format", "json", "Output format. Allowed values are: \"json\" and \"text\", where \"json\" is the default")
	verbosePtr := flag.Bool("verbose", false, "Log debug information to the Standard Error")
	capacityPtr := flag.Int("capacity", 25, "Maximum number of students per group")
	strategyPtr := flag.String("strategy", "heuristic", `Strategy to align the groups. Allowed values are:
- "exact" (backtracking coloring, the fewest slots within range is guaranteed),
- "heuristic" (randomized greedy trials seeded by the most popular specialty triplet) and
- "sat" (k-coloring solved by a SAT-Solver), where "heuristic" is the default`)
	minSlotsPtr := flag.Int("min-slots", 2, "Minimum number of alignments to try")
	maxSlotsPtr := flag.Int("max-slots", 5, "Maximum number of alignments to try")
	trialsPtr := flag.Int("trials", 100, "Heuristic trials per number of alignments")
	workersPtr := flag.Int("workers", 0, "Goroutines running heuristic trials, where 0 means one per CPU")
	seedPtr := flag.Uint64("seed", 0, "Seed of the heuristic trials")
	noAnchorPtr := flag.Bool("no-anchor", false, "Do not pin the most popular specialty triplet before the heuristic trials")
	solverPtr := flag.String("solver", "gini", "SAT-Solver used by the sat strategy. Allowed values are: \"gini\", \"kissat\", \"cadical\", \"cryptominisat\", where \"gini\" is the default")
	solverPathPtr := flag.String("solver-path", "", "Path to the external SAT-Solver binary; if empty, it's looked up in the PATH")
	externalBelowPtr := flag.Int("external-below", 0, "Specialties chosen by fewer students are moved to an external provider, where 0 disables it")
	isolatePtr := flag.String("isolate", "", "Comma-separated specialties scheduled on their own standalone slot")
	historyPtr := flag.String("history", "", "Path to a SQLite database where the run is recorded")
	metricsPtr := flag.String("metrics", "", "Path to a textfile where the run metrics are written")
	flag.Parse()

	logger := newLogger(*verbosePtr)
	defer logger.Sync()

	// Build configuration
	cfg := config.Default()
	if *configPathPtr != "" {
		var err error
		if cfg, err = config.Load(*configPathPtr); err != nil {
			logger.Fatal("cannot load config file", zap.Error(err))
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "capacity":
			cfg.Capacity = *capacityPtr
		case "strategy":
			cfg.Strategy = strings.ToLower(*strategyPtr)
		case "min-slots":
			cfg.MinSlots = *minSlotsPtr
		case "max-slots":
			cfg.MaxSlots = *maxSlotsPtr
		case "trials":
			cfg.Trials = *trialsPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "seed":
			cfg.Seed = *seedPtr
		case "no-anchor":
			cfg.DisableAnchor = *noAnchorPtr
		case "solver":
			cfg.Solver = strings.ToLower(*solverPtr)
		case "solver-path":
			cfg.SolverPath = *solverPathPtr
		case "external-below":
			cfg.ExternalBelow = *externalBelowPtr
		case "isolate":
			cfg.Isolated = splitList(*isolatePtr)
		case "history":
			cfg.HistoryPath = *historyPtr
		case "metrics":
			cfg.MetricsPath = *metricsPtr
		}
	})

	// Validate arguments
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid arguments", zap.Error(err))
	} else if *filePathPtr == "" {
		logger.Fatal("an input file must be specified")
	} else if *formatPtr != "json" && *formatPtr != "text" {
		logger.Fatal("invalid output format", zap.String("format", *formatPtr))
	}

	// Extract input
	choices, err := input.ChoicesFromCsv(*filePathPtr, cfg.MaxChoices)
	if err != nil {
		logger.Fatal("cannot parse input file", zap.Error(err))
	}
	choices, report := preprocess.Apply(choices, preprocess.Options{
		ExternalBelow: cfg.ExternalBelow,
		Isolated:      lo.Map(cfg.Isolated, func(specialty string, _ int) model.Specialty { return model.Specialty(specialty) }),
	})
	logger.Info("input loaded",
		zap.Int("students", len(choices)),
		zap.Any("external", report.External),
		zap.Any("isolated", report.Isolated),
		zap.Int("removed", report.Removed),
	)

	// Search
	registry := prometheus.NewRegistry()
	observer := metrics.New(registry)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	solution, err := model.Search(ctx, choices, cfg.Capacity, model.Options{
		Strategy:      model.Strategy(cfg.Strategy),
		Slots:         model.SlotRange{Min: cfg.MinSlots, Max: cfg.MaxSlots},
		Trials:        cfg.Trials,
		Workers:       cfg.Workers,
		Seed:          cfg.Seed,
		DisableAnchor: cfg.DisableAnchor,
		Solver:        solvers[cfg.Solver](cfg.SolverPath),
		Logger:        logger,
		Observer:      observer,
	})
	writeMetrics(logger, cfg.MetricsPath, registry)
	if err != nil {
		logger.Error("no alignment found", zap.Error(err))
		logger.Sync()
		os.Exit(exitNoSolution)
	}

	// Verify solution correctness
	if !model.VerifySolution(solution, choices, cfg.Capacity) {
		logger.Error("solution verification failed")
		logger.Sync()
		os.Exit(exitVerificationFailed)
	}

	// Build output from solution
	var output []byte
	if *formatPtr == "text" {
		output = []byte(render.Text(solution))
	} else if output, err = render.JSON(solution); err != nil {
		logger.Fatal("an error occurred while building output json", zap.Error(err))
	}

	if cfg.HistoryPath != "" {
		record(ctx, logger, cfg, len(choices), solution)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if *outFilePathPtr == "" {
		fmt.Println(string(output))
	} else if err := os.WriteFile(*outFilePathPtr, output, 0666); err != nil {
		logger.Fatal("an error occurred while writing to the output file", zap.Error(err))
	}

	logger.Sync()
	os.Exit(exitSolved)
}

func newLogger(verbose bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func splitList(list string) []string {
	return lo.Filter(
		lo.Map(strings.Split(list, ","), func(item string, _ int) string { return strings.TrimSpace(item) }),
		func(item string, _ int) bool { return item != "" },
	)
}

func writeMetrics(logger *zap.Logger, path string, gatherer prometheus.Gatherer) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path, gatherer); err != nil {
		logger.Warn("cannot write metrics", zap.String("path", path), zap.Error(err))
	}
}

func record(ctx context.Context, logger *zap.Logger, cfg config.Config, students int, solution model.Solution) {
	store, err := history.NewStore(cfg.HistoryPath)
	if err != nil {
		logger.Warn("cannot open history", zap.Error(err))
		return
	}
	defer store.Close()

	document, err := render.JSON(solution)
	if err != nil {
		logger.Warn("cannot encode solution for history", zap.Error(err))
		return
	}

	run, err := store.Record(ctx, history.Run{
		Strategy: cfg.Strategy,
		Capacity: cfg.Capacity,
		Students: students,
		Slots:    solution.Slots(),
		Score:    solution.Score,
		Drops:    len(solution.Drops),
		Solution: document,
	})
	if err != nil {
		logger.Warn("cannot record run", zap.Error(err))
		return
	}

	best, err := store.Best(ctx, 1)
	if err == nil && len(best) == 1 && best[0].Score > run.Score {
		logger.Info("a previous run scored higher", zap.String("run", best[0].Id), zap.Int("score", best[0].Score))
	}
	logger.Info("run recorded", zap.String("run", run.Id))
}
