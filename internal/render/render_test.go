package render

import (
	"encoding/json"
	"testing"

	"github.com/limaJavier/alignments/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solve(t *testing.T, choices model.Choices, capacity int) model.Solution {
	groups, err := model.BuildGroups(model.CountSpecialties(choices), capacity)
	require.Nil(t, err)
	graph := model.BuildConflictGraph(groups, choices)
	coloring, err := model.SolveExact(t.Context(), groups, graph, model.DefaultSlotRange)
	require.Nil(t, err)
	solution, err := model.AssignAndScore(choices, coloring, groups, capacity)
	require.Nil(t, err)
	return solution
}

func TestJSON(t *testing.T) {
	//** Arrange
	solution := solve(t, model.Choices{
		"s1": {"A", "B"},
		"s2": {"A"},
	}, 1)

	//** Act
	content, err := JSON(solution)
	require.Nil(t, err)
	var document Document
	require.Nil(t, json.Unmarshal(content, &document))

	//** Assert
	assert.Equal(t, solution.Slots(), document.Slots)
	assert.Equal(t, solution.Score, document.Score)
	assert.Len(t, document.Alignments, solution.Slots())
	assert.Equal(t, 1, document.Alignments[0].Slot)

	names := make([]string, 0)
	students := 0
	for _, alignment := range document.Alignments {
		for _, group := range alignment.Groups {
			names = append(names, group.Name)
			students += len(group.Students)
		}
	}
	assert.ElementsMatch(t, []string{"A G1", "A G2", "B G1"}, names)
	assert.Equal(t, 3, students)
}

func TestText(t *testing.T) {
	//** Arrange
	solution := solve(t, model.Choices{
		"s1": {"A", "B"},
		"s2": {"A", "B"},
	}, 1)

	//** Act
	text := Text(solution)

	//** Assert
	assert.Contains(t, text, "A G1 (1 students)")
	assert.Contains(t, text, "B G2 (1 students)")
	assert.Contains(t, text, "Alignment 1")
	assert.Contains(t, text, "No drops")
}

func TestTextDrops(t *testing.T) {
	solution := model.Solution{
		Drops: []model.Drop{{Student: "s1", Specialty: "A", Reason: model.MajorConflict}},
	}

	text := Text(solution)

	assert.Contains(t, text, "s1: A (major conflict)")
}
