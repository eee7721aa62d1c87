package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration(StageCompile, 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult(StageCompile, ResultSuccess)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.SetDeckSize(12, 3)
	pr.IncExtractionResult(false)
	pr.ObserveComparedVersions(3)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)

	names := make(map[string]bool, len(mfs))
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	require.True(t, names["slidedeck_deck_slides"])
	require.True(t, names["slidedeck_extraction_results_total"])
}

func TestPrometheusRecorderNilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveStageDuration(StageCompile, time.Second)
	pr.SetDeckSize(1, 1)
	require.Nil(t, pr.Registry())
	require.NoError(t, pr.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.SetDeckSize(5, 2)

	path := filepath.Join(t.TempDir(), "slidedeck.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "slidedeck_deck_slides 5")
	require.Contains(t, string(data), "slidedeck_deck_topics 2")
}
