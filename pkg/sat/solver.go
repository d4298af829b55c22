package sat

import "context"

type SATSolver interface {
	// Returns a solution of the SAT instance if satisfiable, else returns nil (these are valid outputs where error shall be nil)
	Solve(ctx context.Context, sat SAT) (SATSolution, error)
}
