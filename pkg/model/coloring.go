package model

// unassigned marks a group without slot in a partial coloring
const unassigned = -1

// Coloring maps every group id to a slot in [0, Slots)
type Coloring struct {
	Slots      int
	Assignment []int
}

func newColoring(groups, slots int) Coloring {
	assignment := make([]int, groups)
	for i := range assignment {
		assignment[i] = unassigned
	}
	return Coloring{
		Slots:      slots,
		Assignment: assignment,
	}
}

func (coloring Coloring) Slot(group uint64) int {
	return coloring.Assignment[group]
}

// Alignments groups the colored groups by slot, each slot keeping the groups' order
func (coloring Coloring) Alignments(groups []Group) [][]Group {
	alignments := make([][]Group, coloring.Slots)
	for slot := range alignments {
		alignments[slot] = make([]Group, 0)
	}
	for _, group := range groups {
		if slot := coloring.Slot(group.Id); slot != unassigned {
			alignments[slot] = append(alignments[slot], group)
		}
	}
	return alignments
}

// available checks that none of group's neighbors is already placed in slot
func available(graph *ConflictGraph, coloring Coloring, group uint64, slot int) bool {
	for neighbor := range graph.adjacency[group] {
		if coloring.Assignment[neighbor] == slot {
			return false
		}
	}
	return true
}

// VerifyColoring checks that coloring is total over groups, within its slot count and proper for graph
func VerifyColoring(groups []Group, graph *ConflictGraph, coloring Coloring) bool {
	if len(coloring.Assignment) != len(groups) || graph.Len() != len(groups) {
		return false
	}

	for _, group := range groups {
		if slot := coloring.Slot(group.Id); slot < 0 || slot >= coloring.Slots {
			return false
		}
	}

	for _, edge := range graph.Edges() {
		if coloring.Slot(edge[0]) == coloring.Slot(edge[1]) {
			return false
		}
	}
	return true
}
