package model

import (
	"slices"

	"github.com/samber/lo"
)

// ConflictGraph is an undirected relation over group ids: two adjacent groups can never share a slot.
// Adjacency is kept as a set of neighbor ids per group, built once and queried by index
type ConflictGraph struct {
	adjacency []map[uint64]bool
}

func newConflictGraph(size int) *ConflictGraph {
	adjacency := make([]map[uint64]bool, size)
	for i := range adjacency {
		adjacency[i] = make(map[uint64]bool)
	}
	return &ConflictGraph{adjacency: adjacency}
}

// BuildConflictGraph connects the groups of every pair of specialties chosen together by some student,
// and the groups of a split specialty among themselves. Group ids must index the groups slice
func BuildConflictGraph(groups []Group, choices Choices) *ConflictGraph {
	graph := newConflictGraph(len(groups))
	bySpecialty := groupsBySpecialty(groups)

	//** Students' pairs of specialties
	for _, specialties := range choices {
		for i := 0; i < len(specialties)-1; i++ {
			for j := i + 1; j < len(specialties); j++ {
				for _, group1 := range bySpecialty[specialties[i]] {
					for _, group2 := range bySpecialty[specialties[j]] {
						graph.connect(group1.Id, group2.Id)
					}
				}
			}
		}
	}

	//** Duplicated specialties
	for _, sameSpecialty := range bySpecialty {
		for i := 0; i < len(sameSpecialty)-1; i++ {
			for j := i + 1; j < len(sameSpecialty); j++ {
				graph.connect(sameSpecialty[i].Id, sameSpecialty[j].Id)
			}
		}
	}

	return graph
}

// connect adds the edge in both directions; self-loops are ignored to keep the relation irreflexive
func (graph *ConflictGraph) connect(group1, group2 uint64) {
	if group1 == group2 {
		return
	}
	graph.adjacency[group1][group2] = true
	graph.adjacency[group2][group1] = true
}

// Len returns the number of groups in the graph
func (graph *ConflictGraph) Len() int {
	return len(graph.adjacency)
}

func (graph *ConflictGraph) Conflict(group1, group2 uint64) bool {
	if group1 >= uint64(len(graph.adjacency)) {
		return false
	}
	return graph.adjacency[group1][group2]
}

func (graph *ConflictGraph) Degree(group uint64) int {
	return len(graph.adjacency[group])
}

// Neighbors returns the ids of the groups conflicting with group in increasing order
func (graph *ConflictGraph) Neighbors(group uint64) []uint64 {
	neighbors := lo.Keys(graph.adjacency[group])
	slices.Sort(neighbors)
	return neighbors
}

// Edges returns every edge once as a (smaller id, greater id) pair, sorted
func (graph *ConflictGraph) Edges() [][2]uint64 {
	edges := make([][2]uint64, 0)
	for group := range graph.adjacency {
		for _, neighbor := range graph.Neighbors(uint64(group)) {
			if uint64(group) < neighbor {
				edges = append(edges, [2]uint64{uint64(group), neighbor})
			}
		}
	}
	return edges
}

// orderByDegree sorts a copy of groups from the most to the least conflicting, ties keep the id order
func orderByDegree(groups []Group, graph *ConflictGraph) []Group {
	ordered := slices.Clone(groups)
	slices.SortStableFunc(ordered, func(group1, group2 Group) int {
		return graph.Degree(group2.Id) - graph.Degree(group1.Id)
	})
	return ordered
}
