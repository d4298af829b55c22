package sat

import (
	"context"
	"fmt"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// Interval at which an in-flight gini search checks for cancellation
const giniPollInterval = 5 * time.Millisecond

type giniSolver struct{}

// NewGiniSolver returns an in-process solver, no external executable is required
func NewGiniSolver() SATSolver {
	return &giniSolver{}
}

func (solver *giniSolver) Solve(ctx context.Context, sat SAT) (SATSolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := gini.New()
	explicitVariables := make(map[int64]bool) // Variables that are explicitly stated in the clauses
	for _, clause := range sat.Clauses {
		for _, literal := range clause {
			if literal == 0 {
				return nil, fmt.Errorf("invalid literal 0 inside a clause")
			}
			g.Add(z.Dimacs2Lit(int(literal)))
			explicitVariables[abs(literal)] = true
		}
		g.Add(z.LitNull) // Close clause
	}

	result, err := solve(ctx, g)
	if err != nil {
		return nil, err
	}

	// -1 stands for unsatisfiable
	if result < 0 {
		return nil, nil
	}

	solution := make(SATSolution, 0, sat.Variables)
	for variable := int64(1); variable <= int64(sat.Variables); variable++ {
		// Variables absent from every clause are unconstrained, report them as false
		if explicitVariables[variable] && g.Value(z.Dimacs2Lit(int(variable))) {
			solution = append(solution, variable)
		} else {
			solution = append(solution, -variable)
		}
	}
	return solution, nil
}

// solve runs the search in the background whenever ctx can be cancelled, polling it until gini is done
func solve(ctx context.Context, g *gini.Gini) (int, error) {
	if ctx.Done() == nil {
		return g.Solve(), nil
	}

	search := g.GoSolve()
	ticker := time.NewTicker(giniPollInterval)
	defer ticker.Stop()
	for {
		if result, done := search.Test(); done {
			return result, nil
		}
		select {
		case <-ctx.Done():
			search.Stop()
			return 0, ctx.Err()
		case <-ticker.C:
		}
	}
}

func abs(literal int64) int64 {
	if literal < 0 {
		return -literal
	}
	return literal
}
