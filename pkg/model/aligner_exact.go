package model

import (
	"context"
	"fmt"
)

// SolveExact searches the smallest slot count within slots admitting a proper coloring, by backtracking
// over the groups from the most to the least conflicting. ctx is checked on every recursive call
func SolveExact(ctx context.Context, groups []Group, graph *ConflictGraph, slots SlotRange) (Coloring, error) {
	if err := slots.validate(); err != nil {
		return Coloring{}, err
	}

	ordered := orderByDegree(groups, graph)
	for k := slots.Min; k <= slots.Max; k++ {
		coloring := newColoring(len(groups), k)

		found, err := backtrack(ctx, ordered, graph, coloring, 0)
		if err != nil {
			return Coloring{}, err
		} else if found {
			return coloring, nil
		}
	}

	return Coloring{}, fmt.Errorf("%w: tried from %d to %d slots", ErrNoColoringFound, slots.Min, slots.Max)
}

func backtrack(ctx context.Context, ordered []Group, graph *ConflictGraph, coloring Coloring, position int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if position == len(ordered) {
		return true, nil
	}

	group := ordered[position].Id
	for slot := range coloring.Slots {
		if !available(graph, coloring, group, slot) {
			continue
		}

		coloring.Assignment[group] = slot
		found, err := backtrack(ctx, ordered, graph, coloring, position+1)
		if err != nil || found {
			return found, err
		}
		coloring.Assignment[group] = unassigned // Undo and try the next slot
	}

	return false, nil
}
