package main

import (
	"bytes"
	"encoding/csv"
	"math/rand/v2"
	"testing"

	"github.com/limaJavier/alignments/internal/input"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, int64(60*1000+1000+120), parseDuration("00:01:01.12"))
	assert.Equal(t, int64(60*60*1000+60*1000+1000+120), parseDuration("01:01:01.12"))
	assert.Equal(t, int64(60*1000+1000+120), parseDuration("1:01.12"))
	assert.Equal(t, int64(120), parseDuration("0:00.12"))
	assert.Equal(t, int64(120), parseDuration("00:00:00.12"))
}

func TestParseTimeLines(t *testing.T) {
	assert.Equal(t, int64(2500), parseDurationLine("\tElapsed (wall clock) time (h:mm:ss or m:ss): 0:02.50"))
	assert.Equal(t, float32(2), parseMemoryLine("\tMaximum resident set size (kbytes): 2048"))
	assert.Equal(t, int64(187), parseCpuPercentageLine("\tPercent of CPU this job got: 187%"))
}

func TestGenerateCohort(t *testing.T) {
	//** Arrange
	rng := rand.New(rand.NewPCG(7, 0))

	//** Act
	rows := generateCohort(rng, 40, specialties)
	var buffer bytes.Buffer
	require.Nil(t, writeCohort(&buffer, rows))
	choices, err := input.ParseChoices(&buffer, 3)

	//** Assert
	require.Nil(t, err)
	assert.Len(t, choices, 40)
	for _, row := range rows {
		assert.GreaterOrEqual(t, len(row), 2)
		assert.LessOrEqual(t, len(row), 4)
		assert.Len(t, lo.Uniq(row[1:]), len(row)-1)
	}
}

func TestToCsv(t *testing.T) {
	//** Arrange
	results := []BenchmarkResult{
		{
			Strategy: StrategyMetadata{Strategy: "sat", Solver: "gini"},
			Cohort:   CohortMetadata{Name: "cohort_50.csv", Students: 50, Specialties: 10},
			Duration: 120,
			Memory:   3.5,
			Result:   solved,
			Slots:    4,
			Score:    50000,
		},
	}

	//** Act
	var buffer bytes.Buffer
	toCsv(&buffer, results)
	records, err := csv.NewReader(&buffer).ReadAll()

	//** Assert
	require.Nil(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"sat", "gini", "cohort_50.csv", "50", "10", "120", "3.5", "0", "solved", "4", "50000"}, records[1])
}
