package history

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/slidedeck/internal/foundation"
	"git.home.luguber.info/inful/slidedeck/internal/logfields"
	"git.home.luguber.info/inful/slidedeck/internal/metrics"
)

// DefaultExt is used for extracted files when the asset has no extension.
const DefaultExt = ".png"

// ExtractedVersion is the outcome of extracting one revision.
type ExtractedVersion struct {
	// Index is the 1-based position of the revision in the history.
	Index    int
	Revision Revision
	// File is the extracted copy inside the workspace, empty on failure.
	File    string
	Content foundation.Result[[]byte, error]
}

// Workspace is the scoped directory extracted versions are written to.
type Workspace interface {
	WriteFile(name string, data []byte) (string, error)
}

// Extractor retrieves the content of an asset at each revision.
type Extractor struct {
	backend  Backend
	logger   *slog.Logger
	recorder metrics.Recorder
}

// NewExtractor creates an extractor on backend.
func NewExtractor(backend Backend) *Extractor {
	return &Extractor{backend: backend, logger: slog.Default(), recorder: metrics.NoopRecorder{}}
}

// WithLogger sets the logger.
func (e *Extractor) WithLogger(l *slog.Logger) *Extractor {
	if l != nil {
		e.logger = l
	}
	return e
}

// WithRecorder sets the metrics recorder.
func (e *Extractor) WithRecorder(r metrics.Recorder) *Extractor {
	if r != nil {
		e.recorder = r
	}
	return e
}

// VersionFileName names the extracted copy of revision index i.
func VersionFileName(i int, rev Revision, path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		ext = DefaultExt
	}
	return fmt.Sprintf("v%d_%s%s", i, rev.Short(), ext)
}

// Extract retrieves every revision of path into ws. A failed revision is
// logged and recorded in its ExtractedVersion; it never stops the batch.
func (e *Extractor) Extract(ctx context.Context, path string, revisions []Revision, ws Workspace) []ExtractedVersion {
	versions := make([]ExtractedVersion, 0, len(revisions))
	for i, rev := range revisions {
		v := ExtractedVersion{Index: i + 1, Revision: rev}
		v.File, v.Content = e.extractOne(ctx, path, v.Index, rev, ws)
		if v.Content.IsErr() {
			e.logger.Warn("Failed to extract revision",
				logfields.Path(path),
				logfields.Revision(v.Index),
				logfields.Commit(rev.Short()),
				logfields.Error(v.Content.UnwrapErr()))
		}
		e.recorder.IncExtractionResult(v.Content.IsOk())
		versions = append(versions, v)
	}
	return versions
}

func (e *Extractor) extractOne(ctx context.Context, path string, index int, rev Revision, ws Workspace) (string, foundation.Result[[]byte, error]) {
	if err := ctx.Err(); err != nil {
		return "", foundation.Err[[]byte, error](err)
	}
	shown := e.backend.Show(ctx, path, rev.Commit)
	if shown.IsErr() {
		return "", shown
	}
	file, err := ws.WriteFile(VersionFileName(index, rev, path), shown.Unwrap())
	if err != nil {
		return "", foundation.Err[[]byte, error](err)
	}
	// #nosec G304 -- file was just written inside the scoped workspace
	data, err := os.ReadFile(file)
	return file, foundation.FromTuple(data, err)
}
