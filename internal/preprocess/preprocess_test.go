package preprocess

import (
	"testing"

	"github.com/limaJavier/alignments/pkg/model"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	//** Arrange
	choices := model.Choices{
		"ana":  {"Art", "Latin", "Math"},
		"bob":  {"Art", "Math", "Physics"},
		"carl": {"Art", "Math", "Physics"},
	}

	//** Act
	derived, report := Apply(choices, Options{
		ExternalBelow: 2,
		Isolated:      []model.Specialty{"Physics", "Music", "Physics"},
	})

	//** Assert
	assert.Equal(t, []model.Specialty{"Latin"}, report.External)
	assert.Equal(t, []model.Specialty{"Physics"}, report.Isolated)
	assert.Equal(t, 3, report.Removed)
	assert.Equal(t, model.Choices{
		"ana":  {"Art", "Math"},
		"bob":  {"Art", "Math"},
		"carl": {"Art", "Math"},
	}, derived)

	// The original choices are left untouched
	assert.Equal(t, []model.Specialty{"Art", "Latin", "Math"}, choices["ana"])
}

func TestApplyWithoutOptions(t *testing.T) {
	choices := model.Choices{"ana": {"Art", "Math"}}

	derived, report := Apply(choices, Options{})

	assert.Equal(t, choices, derived)
	assert.Empty(t, report.External)
	assert.Empty(t, report.Isolated)
	assert.Zero(t, report.Removed)
}
