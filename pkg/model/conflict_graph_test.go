package model

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildConflictGraph(t *testing.T) {
	t.Run("Students' pairs", func(t *testing.T) {
		//** Arrange
		choices := Choices{
			"ana": {"Art", "Math"},
			"bob": {"Math", "Physics"},
		}
		groups := mustGroups(choices, 25)

		//** Act
		graph := BuildConflictGraph(groups, choices)

		//** Assert
		art, math, physics := groupNamed(groups, "Art G1"), groupNamed(groups, "Math G1"), groupNamed(groups, "Physics G1")
		assert.True(t, graph.Conflict(art.Id, math.Id))
		assert.True(t, graph.Conflict(math.Id, physics.Id))
		assert.False(t, graph.Conflict(art.Id, physics.Id))
		assert.Equal(t, 2, graph.Degree(math.Id))
		assert.Len(t, graph.Edges(), 2)
	})

	t.Run("Duplicated specialties", func(t *testing.T) {
		//** Arrange
		choices := uniformChoices(30, "Art", "Math")
		groups := mustGroups(choices, 25)

		//** Act
		graph := BuildConflictGraph(groups, choices)

		//** Assert
		assert.True(t, graph.Conflict(groupNamed(groups, "Art G1").Id, groupNamed(groups, "Art G2").Id))
		assert.True(t, graph.Conflict(groupNamed(groups, "Math G1").Id, groupNamed(groups, "Math G2").Id))
		// Full bipartite product between Art and Math plus one edge per split specialty
		assert.Len(t, graph.Edges(), 4+2)
	})

	t.Run("Empty input", func(t *testing.T) {
		graph := BuildConflictGraph(nil, Choices{})

		assert.Equal(t, 0, graph.Len())
		assert.Empty(t, graph.Edges())
	})

	t.Run("Symmetric and irreflexive", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(3, 5))
		for range 10 {
			//** Arrange
			choices := generateChoices(rng, rng.IntN(60)+1, 6, 3)
			groups := mustGroups(choices, rng.IntN(15)+1)

			//** Act
			graph := BuildConflictGraph(groups, choices)

			//** Assert
			for _, group1 := range groups {
				assert.False(t, graph.Conflict(group1.Id, group1.Id))
				for _, group2 := range groups {
					assert.Equal(t, graph.Conflict(group1.Id, group2.Id), graph.Conflict(group2.Id, group1.Id))
				}
				assert.Len(t, graph.Neighbors(group1.Id), graph.Degree(group1.Id))
			}
		}
	})
}
