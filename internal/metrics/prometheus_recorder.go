package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "slidedeck"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	registry         *prom.Registry
	stageDuration    *prom.HistogramVec
	buildDuration    prom.Histogram
	stageResults     *prom.CounterVec
	buildOutcome     *prom.CounterVec
	deckSlides       prom.Gauge
	deckTopics       prom.Gauge
	extractResults   *prom.CounterVec
	comparedVersions prom.Histogram
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Run outcomes by final status",
		}, []string{"outcome"})
		pr.deckSlides = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "deck_slides",
			Help:      "Slides in the last compiled deck",
		})
		pr.deckTopics = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "deck_topics",
			Help:      "Topics declared in the last compiled registry",
		})
		pr.extractResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_results_total",
			Help:      "Per-revision extraction results by success/failure",
		}, []string{"result"})
		pr.comparedVersions = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "compared_versions",
			Help:      "Versions rendered into a comparison page",
			Buckets:   []float64{2, 3, 5, 10, 20, 50},
		})
		reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome,
			pr.deckSlides, pr.deckTopics, pr.extractResults, pr.comparedVersions)
	})
	return pr
}

// Registry returns the registry the metrics are registered with.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	if p == nil {
		return nil
	}
	return p.registry
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}
func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}
func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}
func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetDeckSize(slides, topics int) {
	if p == nil || p.deckSlides == nil {
		return
	}
	p.deckSlides.Set(float64(slides))
	p.deckTopics.Set(float64(topics))
}

func (p *PrometheusRecorder) IncExtractionResult(success bool) {
	if p == nil || p.extractResults == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.extractResults.WithLabelValues(res).Inc()
}

func (p *PrometheusRecorder) ObserveComparedVersions(n int) {
	if p == nil || p.comparedVersions == nil {
		return
	}
	p.comparedVersions.Observe(float64(n))
}

// WriteTextfile writes the current metric values in the node_exporter
// textfile format. The file is written atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.registry == nil {
		return nil
	}
	return prom.WriteToTextfile(path, p.registry)
}
