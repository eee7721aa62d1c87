package history

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/slidedeck/internal/foundation/errors"
	"git.home.luguber.info/inful/slidedeck/internal/logfields"
	"git.home.luguber.info/inful/slidedeck/internal/metrics"
	"git.home.luguber.info/inful/slidedeck/internal/workspace"
)

// DefaultOutput is the comparison page written when no output is given.
const DefaultOutput = "comparison.html"

const (
	noHistoryMessage       = "no git history found"
	nothingToCompareMsg    = "only one version found, nothing to compare"
	noVersionsExtractedMsg = "no version could be extracted"
)

// ErrNoHistory is matched (errors.Is) by comparisons of untracked assets.
var ErrNoHistory = errors.NotFoundError(noHistoryMessage).Build()

// ErrNothingToCompare is matched by comparisons of assets with one revision.
var ErrNothingToCompare = errors.NotFoundError(nothingToCompareMsg).Build()

// CompareResult summarises a comparison run.
type CompareResult struct {
	Output    string
	Revisions int
	Rendered  int
	Failed    int
}

// Comparer runs the history pipeline: read history, extract every revision
// into a scoped workspace and render the comparison page.
type Comparer struct {
	reader        *Reader
	extractor     *Extractor
	workspaceBase string
	recorder      metrics.Recorder
	logger        *slog.Logger
}

// NewComparer creates a comparer on backend.
func NewComparer(backend Backend) *Comparer {
	return &Comparer{
		reader:    NewReader(backend),
		extractor: NewExtractor(backend),
		recorder:  metrics.NoopRecorder{},
		logger:    slog.Default(),
	}
}

// WithWorkspaceBase sets the parent directory of extraction workspaces
// (os.TempDir by default).
func (c *Comparer) WithWorkspaceBase(dir string) *Comparer {
	c.workspaceBase = dir
	return c
}

// WithRecorder sets the metrics recorder.
func (c *Comparer) WithRecorder(r metrics.Recorder) *Comparer {
	if r != nil {
		c.recorder = r
		c.extractor.WithRecorder(r)
	}
	return c
}

// WithLogger sets the logger.
func (c *Comparer) WithLogger(l *slog.Logger) *Comparer {
	if l != nil {
		c.logger = l
		c.reader.WithLogger(l)
		c.extractor.WithLogger(l)
	}
	return c
}

// Compare writes the comparison page for path to output. Nothing is written
// when the asset has fewer than two revisions or no revision could be
// extracted. The extraction workspace is removed on every return path.
func (c *Comparer) Compare(ctx context.Context, path, output string) (*CompareResult, error) {
	if output == "" {
		output = DefaultOutput
	}
	start := time.Now()
	defer func() { c.recorder.ObserveBuildDuration(time.Since(start)) }()

	var revisions []Revision
	_ = metrics.Stage(c.recorder, metrics.StageHistory, func() error {
		revisions = c.reader.History(ctx, path)
		return nil
	})
	switch {
	case len(revisions) == 0:
		return nil, errors.NotFoundError(noHistoryMessage).
			WithContext(logfields.KeyPath, path).
			Build()
	case len(revisions) < 2:
		return nil, errors.NotFoundError(nothingToCompareMsg).
			WithContext(logfields.KeyPath, path).
			Build()
	}

	ws := workspace.NewManager(c.workspaceBase)
	if err := ws.Create(); err != nil {
		c.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to create extraction workspace").Build()
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			c.logger.Warn("Failed to remove extraction workspace", logfields.Path(ws.GetPath()), logfields.Error(err))
		}
	}()

	var versions []ExtractedVersion
	_ = metrics.Stage(c.recorder, metrics.StageExtract, func() error {
		versions = c.extractor.Extract(ctx, path, revisions, ws)
		return nil
	})

	result := &CompareResult{Output: output, Revisions: len(revisions)}
	cards := make([]Card, 0, len(versions))
	for _, v := range versions {
		if v.Content.IsErr() {
			result.Failed++
			continue
		}
		cards = append(cards, NewCard(v, path))
	}
	result.Rendered = len(cards)

	if len(cards) == 0 {
		c.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return result, errors.ExtractionError(noVersionsExtractedMsg).
			WithContext(logfields.KeyPath, path).
			WithContext(logfields.KeyCount, len(revisions)).
			Build()
	}

	err := metrics.Stage(c.recorder, metrics.StageRender, func() error {
		var buf bytes.Buffer
		if err := RenderPage(&buf, path, cards); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to render comparison page").Build()
		}
		// #nosec G306 -- the comparison page is meant to be opened in a browser
		if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to write comparison page").
				WithContext(logfields.KeyPath, output).
				Build()
		}
		return nil
	})
	if err != nil {
		c.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return nil, err
	}

	c.recorder.ObserveComparedVersions(result.Rendered)
	if result.Failed > 0 {
		c.recorder.IncBuildOutcome(metrics.BuildOutcomeWarning)
	} else {
		c.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	}
	c.logger.Info("Generated comparison",
		logfields.Path(path),
		logfields.File(output),
		logfields.Count(result.Rendered))
	return result, nil
}
