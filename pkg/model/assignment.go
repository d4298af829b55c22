package model

import (
	"fmt"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

type DropReason string

const (
	// None of the student's choices could be placed
	MajorConflict DropReason = "major conflict"
	// The specialty was left out so the rest of the student's choices could be placed
	ScheduleConflict DropReason = "schedule conflict"
)

// Score weights: full placements outrank any number of partial ones
const (
	fullPlacementScore   = 1000
	oneShortScore        = 100
	singlePlacementScore = 1
)

// Drop records a chosen specialty the student could not be scheduled into
type Drop struct {
	Student   string
	Specialty Specialty
	Reason    DropReason
}

type Solution struct {
	Groups     []Group
	Coloring   Coloring
	Alignments [][]Group
	Rosters    [][]string // Indexed by group id, students in placement order
	Drops      []Drop
	Score      int

	FullyPlaced int // Students with every choice placed
	OneShort    int // Students missing exactly one choice (at least one placed)
	SinglePlace int // Students with exactly one choice placed, not already counted above
	Unplaced    int // Students with none of their choices placed
}

// Slots returns the number of alignments of the solution
func (solution Solution) Slots() int {
	return solution.Coloring.Slots
}

// AssignAndScore places every student, in lexicographic order, into one group per chosen specialty.
//
// Each student gets the largest subset of its choices that fits: subsets are tried from the full set
// down to single specialties in lexicographic order, and within a subset the candidate groups'
// Cartesian product is scanned for the first combination with free seats in pairwise-distinct slots.
// Omitted specialties are recorded as drops
func AssignAndScore(choices Choices, coloring Coloring, groups []Group, capacity int) (Solution, error) {
	if capacity < 1 {
		return Solution{}, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	bySpecialty := groupsBySpecialty(groups)
	rosters := make([][]string, len(groups))
	for i := range rosters {
		rosters[i] = make([]string, 0)
	}

	solution := Solution{
		Groups:     groups,
		Coloring:   coloring,
		Alignments: coloring.Alignments(groups),
		Drops:      make([]Drop, 0),
	}

	for _, student := range choices.Students() {
		specialties := choices[student]
		if len(specialties) == 0 {
			continue
		}

		subset, placement := placeStudent(specialties, bySpecialty, coloring, rosters, capacity)
		for _, group := range placement {
			rosters[group.Id] = append(rosters[group.Id], student)
		}

		//** Drops
		if len(placement) == 0 {
			for _, specialty := range specialties {
				solution.Drops = append(solution.Drops, Drop{student, specialty, MajorConflict})
			}
		} else {
			for position, specialty := range specialties {
				if !lo.Contains(subset, position) {
					solution.Drops = append(solution.Drops, Drop{student, specialty, ScheduleConflict})
				}
			}
		}

		//** Score
		switch placed := len(placement); {
		case placed == len(specialties):
			solution.FullyPlaced++
		case placed >= 1 && placed == len(specialties)-1:
			solution.OneShort++
		case placed == 1:
			solution.SinglePlace++
		default:
			solution.Unplaced++
		}
	}

	solution.Rosters = rosters
	solution.Score = fullPlacementScore*solution.FullyPlaced + oneShortScore*solution.OneShort + singlePlacementScore*solution.SinglePlace
	return solution, nil
}

// placeStudent returns the positions of the placed specialties together with their groups,
// both empty if not even one specialty can be placed
func placeStudent(specialties []Specialty, bySpecialty map[Specialty][]Group, coloring Coloring, rosters [][]string, capacity int) ([]int, []Group) {
	for size := len(specialties); size >= 1; size-- {
		for _, subset := range combinations(len(specialties), size) {
			candidates := lo.Map(subset, func(position int, _ int) []Group {
				return bySpecialty[specialties[position]]
			})

			if !matchable(candidates, coloring, rosters, capacity) {
				continue
			}
			if combination, ok := firstCombination(candidates, coloring, rosters, capacity); ok {
				return subset, combination
			}
		}
	}
	return nil, nil
}

// combinations returns every size-m subset of {0..n-1} in lexicographic order
func combinations(n, m int) [][]int {
	result := make([][]int, 0)
	if m > n || m <= 0 {
		return result
	}

	current := make([]int, m)
	for i := range current {
		current[i] = i
	}
	for {
		result = append(result, append([]int(nil), current...))

		// Rightmost position that can still move forward
		i := m - 1
		for i >= 0 && current[i] == n-m+i {
			i--
		}
		if i < 0 {
			return result
		}
		current[i]++
		for j := i + 1; j < m; j++ {
			current[j] = current[j-1] + 1
		}
	}
}

// firstCombination scans the Cartesian product of candidates (last position varying fastest) for the
// first combination whose groups all have a free seat and lie in pairwise-distinct slots
func firstCombination(candidates [][]Group, coloring Coloring, rosters [][]string, capacity int) ([]Group, bool) {
	for _, options := range candidates {
		if len(options) == 0 {
			return nil, false
		}
	}

	counters := make([]int, len(candidates))
	for {
		combination := make([]Group, len(candidates))
		for position, counter := range counters {
			combination[position] = candidates[position][counter]
		}
		if fits(combination, coloring, rosters, capacity) {
			return combination, true
		}

		// Advance odometer
		position := len(counters) - 1
		for position >= 0 {
			counters[position]++
			if counters[position] < len(candidates[position]) {
				break
			}
			counters[position] = 0
			position--
		}
		if position < 0 {
			return nil, false
		}
	}
}

func fits(combination []Group, coloring Coloring, rosters [][]string, capacity int) bool {
	usedSlots := make(map[int]bool, len(combination))
	for _, group := range combination {
		slot := coloring.Slot(group.Id)
		if len(rosters[group.Id]) >= capacity || usedSlots[slot] {
			return false
		}
		usedSlots[slot] = true
	}
	return true
}

// matchable checks whether each candidate specialty can get its own slot holding one of its groups with
// a free seat. It is a necessary condition for firstCombination to succeed, used to skip hopeless subsets
func matchable(candidates [][]Group, coloring Coloring, rosters [][]string, capacity int) bool {
	open := func(group Group) bool { return len(rosters[group.Id]) < capacity }

	slots := lo.Uniq(lo.FlatMap(candidates, func(options []Group, _ int) []int {
		return lo.Map(lo.Filter(options, func(group Group, _ int) bool { return open(group) }), func(group Group, _ int) int {
			return coloring.Slot(group.Id)
		})
	}))
	if len(slots) < len(candidates) {
		return false
	}

	// Build neighbors predicate: a specialty reaches a slot holding one of its open groups
	neighbors := func(positionAny any, slotAny any) (bool, error) {
		position := positionAny.(int)
		slot := slotAny.(int)

		return lo.SomeBy(candidates[position], func(group Group) bool {
			return open(group) && coloring.Slot(group.Id) == slot
		}), nil
	}

	positionsAny := lo.Times(len(candidates), func(position int) any { return position })
	slotsAny := lo.Map(slots, func(slot int, _ int) any { return slot })

	graph, err := bipartitegraph.NewBipartiteGraph(positionsAny, slotsAny, neighbors)
	if err != nil {
		return true // Leave the decision to the exhaustive scan
	}
	return len(graph.LargestMatching()) == len(candidates)
}
