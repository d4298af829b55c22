package model

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/limaJavier/alignments/pkg/sat"

	"go.uber.org/zap"
)

type Strategy string

const (
	StrategyExact     Strategy = "exact"
	StrategyHeuristic Strategy = "heuristic"
	StrategySAT       Strategy = "sat"
)

var Strategies = []Strategy{StrategyExact, StrategyHeuristic, StrategySAT}

// SearchObserver is notified of every heuristic trial and of the solution a search returns.
// Trial notifications may come from several goroutines at once
type SearchObserver interface {
	ObserveTrial(slots int, succeeded bool)
	ObserveSolution(strategy Strategy, solution Solution, elapsed time.Duration)
}

type Options struct {
	Strategy      Strategy
	Slots         SlotRange
	Trials        int    // Heuristic trials per slot count
	Workers       int    // Goroutines running heuristic trials
	Seed          uint64 // Trial i with k slots draws from PCG(Seed, k<<32|i)
	DisableAnchor bool
	Solver        sat.SATSolver // Used by the SAT strategy, gini if nil
	Logger        *zap.Logger
	Observer      SearchObserver
}

var DefaultOptions = Options{
	Strategy: StrategyHeuristic,
	Slots:    DefaultSlotRange,
	Trials:   100,
}

func (options Options) withDefaults() Options {
	if options.Strategy == "" {
		options.Strategy = DefaultOptions.Strategy
	}
	if options.Slots == (SlotRange{}) {
		options.Slots = DefaultOptions.Slots
	}
	if options.Trials <= 0 {
		options.Trials = DefaultOptions.Trials
	}
	if options.Workers <= 0 {
		options.Workers = runtime.GOMAXPROCS(0)
	}
	if options.Solver == nil {
		options.Solver = sat.NewGiniSolver()
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return options
}

// Search partitions the chosen specialties into groups of at most capacity students, aligns them with the
// configured strategy using the fewest slots it finds within the slot range, and seats the students.
// The exact and SAT strategies return the single solution of the minimal slot count; the heuristic one
// returns the best scoring trial of the first slot count where any trial succeeds
func Search(ctx context.Context, choices Choices, capacity int, options Options) (Solution, error) {
	options = options.withDefaults()
	logger := options.Logger.With(zap.String("strategy", string(options.Strategy)))
	start := time.Now()

	if err := options.Slots.validate(); err != nil {
		return Solution{}, err
	}

	//** Groups and conflicts
	groups, err := BuildGroups(CountSpecialties(choices), capacity)
	if err != nil {
		return Solution{}, err
	}
	for _, group := range groups {
		if group.Index == 2 {
			logger.Info("specialty split into several groups", zap.String("specialty", string(group.Specialty)))
		}
	}
	graph := BuildConflictGraph(groups, choices)
	logger.Debug("conflict graph built",
		zap.Int("students", len(choices)),
		zap.Int("groups", len(groups)),
		zap.Int("conflicts", len(graph.Edges())),
	)

	//** Alignment and seating
	var solution Solution
	switch options.Strategy {
	case StrategyExact:
		solution, err = searchAligned(ctx, NewExactAligner(options.Slots), choices, groups, graph, capacity)
	case StrategySAT:
		solution, err = searchAligned(ctx, NewSATAligner(options.Solver, options.Slots), choices, groups, graph, capacity)
	case StrategyHeuristic:
		solution, err = searchHeuristic(ctx, choices, groups, graph, capacity, options, logger)
	default:
		return Solution{}, fmt.Errorf("%w: \"%v\"", ErrUnknownStrategy, options.Strategy)
	}
	if err != nil {
		return Solution{}, err
	}

	elapsed := time.Since(start)
	logger.Info("alignment found",
		zap.Int("slots", solution.Slots()),
		zap.Int("score", solution.Score),
		zap.Int("drops", len(solution.Drops)),
		zap.Duration("elapsed", elapsed),
	)
	if options.Observer != nil {
		options.Observer.ObserveSolution(options.Strategy, solution, elapsed)
	}
	return solution, nil
}

func searchAligned(ctx context.Context, aligner Aligner, choices Choices, groups []Group, graph *ConflictGraph, capacity int) (Solution, error) {
	coloring, err := aligner.Align(ctx, groups, graph)
	if err != nil {
		return Solution{}, err
	}
	return AssignAndScore(choices, coloring, groups, capacity)
}

type trialResult struct {
	trial    int
	solution Solution
	ok       bool
}

func searchHeuristic(ctx context.Context, choices Choices, groups []Group, graph *ConflictGraph, capacity int, options Options, logger *zap.Logger) (Solution, error) {
	var anchor *Triplet
	if !options.DisableAnchor {
		if triplet, ok := FindAnchorTriplet(choices); ok {
			anchor = &triplet
			logger.Debug("anchor triplet found", zap.Strings("specialties", []string{string(triplet[0]), string(triplet[1]), string(triplet[2])}))
		}
	}

	for k := options.Slots.Min; k <= options.Slots.Max; k++ {
		solution, found, err := runTrials(ctx, choices, groups, graph, capacity, k, anchor, options)
		if err != nil {
			return Solution{}, err
		} else if found {
			return solution, nil
		}
		logger.Debug("every trial failed", zap.Int("slots", k), zap.Int("trials", options.Trials))
	}

	return Solution{}, fmt.Errorf("%w: %d trials per slot count from %d to %d", ErrNoSolutionFound, options.Trials, options.Slots.Min, options.Slots.Max)
}

// runTrials spreads independent trials over the workers and keeps the best scoring solution.
// Equal scores go to the lowest trial index, so the outcome does not depend on scheduling
func runTrials(ctx context.Context, choices Choices, groups []Group, graph *ConflictGraph, capacity, slots int, anchor *Triplet, options Options) (Solution, bool, error) {
	trials := make(chan int)
	results := make(chan trialResult)

	var wg sync.WaitGroup
	for range options.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for trial := range trials {
				results <- runTrial(choices, groups, graph, capacity, slots, anchor, trial, options)
			}
		}()
	}

	// Feed trials until exhausted or cancelled
	go func() {
		defer close(trials)
		for trial := range options.Trials {
			select {
			case trials <- trial:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var best trialResult
	for result := range results {
		if !result.ok {
			continue
		}
		if !best.ok || result.solution.Score > best.solution.Score ||
			(result.solution.Score == best.solution.Score && result.trial < best.trial) {
			best = result
		}
	}

	if err := ctx.Err(); err != nil {
		return Solution{}, false, err
	}
	return best.solution, best.ok, nil
}

func runTrial(choices Choices, groups []Group, graph *ConflictGraph, capacity, slots int, anchor *Triplet, trial int, options Options) trialResult {
	rng := rand.New(rand.NewPCG(options.Seed, uint64(slots)<<32|uint64(trial)))

	coloring, err := SolveHeuristic(groups, graph, slots, anchor, rng)
	if options.Observer != nil {
		options.Observer.ObserveTrial(slots, err == nil)
	}
	if err != nil {
		return trialResult{trial: trial}
	}

	solution, err := AssignAndScore(choices, coloring, groups, capacity)
	if err != nil {
		return trialResult{trial: trial}
	}
	return trialResult{trial: trial, solution: solution, ok: true}
}
