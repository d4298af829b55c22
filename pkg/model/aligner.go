package model

import (
	"context"

	"github.com/limaJavier/alignments/pkg/sat"
)

// Aligner finds a proper coloring of the conflict graph with the fewest slots it can
type Aligner interface {
	Align(ctx context.Context, groups []Group, graph *ConflictGraph) (Coloring, error)
}

type exactAligner struct {
	slots SlotRange
}

func NewExactAligner(slots SlotRange) Aligner {
	return &exactAligner{slots: slots}
}

func (aligner *exactAligner) Align(ctx context.Context, groups []Group, graph *ConflictGraph) (Coloring, error) {
	return SolveExact(ctx, groups, graph, aligner.slots)
}

type satAligner struct {
	solver sat.SATSolver
	slots  SlotRange
}

func NewSATAligner(solver sat.SATSolver, slots SlotRange) Aligner {
	return &satAligner{
		solver: solver,
		slots:  slots,
	}
}

func (aligner *satAligner) Align(ctx context.Context, groups []Group, graph *ConflictGraph) (Coloring, error) {
	return SolveSAT(ctx, aligner.solver, groups, graph, aligner.slots)
}
