package model

import (
	"fmt"
	"math/rand/v2"
)

// SolveHeuristic runs a single randomized greedy trial with exactly slots slots.
//
// When an anchor is given (and slots >= 3) the groups of its i-th specialty are pinned to slot i before
// anything else; a pinned group conflicting with a group already pinned to the same slot is left to the
// greedy pass. Every other group, from the most to the least conflicting, takes the first free slot of a
// fresh random permutation. A group with no free slot fails the whole trial with ErrTrialFailed
func SolveHeuristic(groups []Group, graph *ConflictGraph, slots int, anchor *Triplet, rng *rand.Rand) (Coloring, error) {
	if slots < 1 {
		return Coloring{}, fmt.Errorf("%w: %d slots", ErrInvalidSlotRange, slots)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(0, 0))
	}

	coloring := newColoring(len(groups), slots)

	//** Pin anchor
	if anchor != nil && slots >= 3 {
		bySpecialty := groupsBySpecialty(groups)
		for slot, specialty := range anchor {
			for _, group := range bySpecialty[specialty] {
				if available(graph, coloring, group.Id, slot) {
					coloring.Assignment[group.Id] = slot
				}
			}
		}
	}

	//** Greedy pass
	for _, group := range orderByDegree(groups, graph) {
		if coloring.Slot(group.Id) != unassigned {
			continue
		}

		placed := false
		for _, slot := range rng.Perm(slots) {
			if available(graph, coloring, group.Id, slot) {
				coloring.Assignment[group.Id] = slot
				placed = true
				break
			}
		}

		if !placed {
			return Coloring{}, fmt.Errorf("%w: group \"%v\" has no free slot among %d", ErrTrialFailed, group.Name(), slots)
		}
	}

	return coloring, nil
}
