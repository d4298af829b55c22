package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/limaJavier/alignments/pkg/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	//** Arrange
	registry := prometheus.NewRegistry()
	metrics := New(registry)
	solution := model.Solution{
		Coloring: model.Coloring{Slots: 4},
		Score:    2100,
		Drops: []model.Drop{
			{Student: "ana", Specialty: "Art", Reason: model.ScheduleConflict},
		},
	}

	//** Act
	metrics.ObserveTrial(3, false)
	metrics.ObserveTrial(4, true)
	metrics.ObserveTrial(4, true)
	metrics.ObserveSolution(model.StrategyHeuristic, solution, 250*time.Millisecond)

	//** Assert
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.TrialsTotal.WithLabelValues("3", "failed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.TrialsTotal.WithLabelValues("4", "succeeded")))
	assert.Equal(t, 2100.0, testutil.ToFloat64(metrics.Score))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.Slots))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Drops.WithLabelValues(string(model.ScheduleConflict))))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.Drops.WithLabelValues(string(model.MajorConflict))))
}

func TestWriteTextfile(t *testing.T) {
	//** Arrange
	registry := prometheus.NewRegistry()
	metrics := New(registry)
	metrics.ObserveTrial(2, true)
	path := filepath.Join(t.TempDir(), "alignments.prom")

	//** Act
	err := WriteTextfile(path, registry)

	//** Assert
	require.Nil(t, err)
	content, err := os.ReadFile(path)
	require.Nil(t, err)
	assert.Contains(t, string(content), `alignments_trials_total{outcome="succeeded",slots="2"} 1`)
}
