package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultWarning ResultLabel = "warning"
	ResultFatal   ResultLabel = "fatal"
)

// BuildOutcomeLabel is the final status of a build or comparison run.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess BuildOutcomeLabel = "success"
	BuildOutcomeWarning BuildOutcomeLabel = "warning"
	BuildOutcomeFailed  BuildOutcomeLabel = "failed"
)

// Stage names used by the deck builder and the comparison renderer.
const (
	StageLoad    = "load_registry"
	StageCompile = "compile"
	StageWrite   = "write_outputs"
	StageAssets  = "check_assets"
	StageHistory = "read_history"
	StageExtract = "extract_versions"
	StageRender  = "render_comparison"
)

// Recorder defines observability hooks for build and comparison runs.
// Implementations may forward to Prometheus; NoopRecorder is the default.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	SetDeckSize(slides, topics int)
	IncExtractionResult(success bool)
	ObserveComparedVersions(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)          {}
func (NoopRecorder) SetDeckSize(int, int)                       {}
func (NoopRecorder) IncExtractionResult(bool)                   {}
func (NoopRecorder) ObserveComparedVersions(int)                {}

// Stage times fn and records its duration and result on r.
func Stage(r Recorder, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	r.ObserveStageDuration(name, time.Since(start))
	if err != nil {
		r.IncStageResult(name, ResultFatal)
		return err
	}
	r.IncStageResult(name, ResultSuccess)
	return nil
}
