package model

import (
	"context"
	"fmt"

	"github.com/limaJavier/alignments/pkg/sat"
)

// SolveSAT finds the smallest slot count within slots admitting a proper coloring by encoding each
// k-coloring as a SAT instance handed to solver
func SolveSAT(ctx context.Context, solver sat.SATSolver, groups []Group, graph *ConflictGraph, slots SlotRange) (Coloring, error) {
	if err := slots.validate(); err != nil {
		return Coloring{}, err
	}

	for k := slots.Min; k <= slots.Max; k++ {
		indexer := newIndexer(uint64(k))
		instance := buildColoringSat(groups, graph, indexer, k)

		solution, err := solver.Solve(ctx, instance)
		if err != nil {
			return Coloring{}, fmt.Errorf("cannot solve %d-coloring instance: %w", k, err)
		} else if solution == nil { // Not satisfiable, try one more slot
			continue
		}

		coloring := newColoring(len(groups), k)
		for _, variable := range solution.Positives() {
			group, slot := indexer.Attributes(variable)
			coloring.Assignment[group] = int(slot)
		}
		return coloring, nil
	}

	return Coloring{}, fmt.Errorf("%w: tried from %d to %d slots", ErrNoColoringFound, slots.Min, slots.Max)
}

func buildColoringSat(groups []Group, graph *ConflictGraph, indexer indexer, slots int) sat.SAT {
	instance := sat.SAT{
		Variables: uint64(len(groups) * slots),
		Clauses:   make([][]int64, 0),
	}
	literal := func(group uint64, slot int) int64 {
		return int64(indexer.Index(group, uint64(slot)))
	}

	for _, group := range groups {
		// Every group takes at least one slot
		atLeastOne := make([]int64, 0, slots)
		for slot := range slots {
			atLeastOne = append(atLeastOne, literal(group.Id, slot))
		}
		instance.Clauses = append(instance.Clauses, atLeastOne)

		// And at most one
		for slot1 := 0; slot1 < slots-1; slot1++ {
			for slot2 := slot1 + 1; slot2 < slots; slot2++ {
				instance.Clauses = append(instance.Clauses, []int64{-literal(group.Id, slot1), -literal(group.Id, slot2)})
			}
		}
	}

	// Conflicting groups never share a slot
	for _, edge := range graph.Edges() {
		for slot := range slots {
			instance.Clauses = append(instance.Clauses, []int64{-literal(edge[0], slot), -literal(edge[1], slot)})
		}
	}

	return instance
}
