package deck

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/slidedeck/internal/foundation/errors"
	"git.home.luguber.info/inful/slidedeck/internal/logfields"
	"git.home.luguber.info/inful/slidedeck/internal/metrics"
	"git.home.luguber.info/inful/slidedeck/internal/registry"
)

// Output file names.
const (
	DeckFile   = "slides.qmd"
	RecentFile = "recent.qmd"
)

// OutputFile describes one written file.
type OutputFile struct {
	Name string
	Path string
	// Fingerprint is the mdfp fingerprint of the document's front matter and
	// body. Identical registries yield identical fingerprints.
	Fingerprint string
	Size        int
}

// Result summarises a build.
type Result struct {
	// ID identifies this build run in logs.
	ID       string
	Files    []OutputFile
	Slides   int
	Topics   int
	Duration time.Duration
}

// Builder writes the compiled documents into an output directory.
type Builder struct {
	outDir      string
	recentCount int
	recorder    metrics.Recorder
	logger      *slog.Logger
}

// NewBuilder creates a builder writing into outDir ("" means the current
// directory).
func NewBuilder(outDir string) *Builder {
	if outDir == "" {
		outDir = "."
	}
	return &Builder{
		outDir:      outDir,
		recentCount: DefaultRecentCount,
		recorder:    metrics.NoopRecorder{},
		logger:      slog.Default(),
	}
}

// WithRecentCount sets how many slides recent.qmd contains.
func (b *Builder) WithRecentCount(n int) *Builder {
	b.recentCount = n
	return b
}

// WithRecorder sets the metrics recorder.
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r != nil {
		b.recorder = r
	}
	return b
}

// WithLogger sets the logger.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	if l != nil {
		b.logger = l
	}
	return b
}

// Build compiles reg and overwrites slides.qmd, recent.qmd and styles.css.
func (b *Builder) Build(ctx context.Context, reg *registry.Registry) (*Result, error) {
	if b.recentCount < 0 {
		return nil, errors.ValidationError("recent count must not be negative").
			WithContext("recent_count", b.recentCount).
			Build()
	}

	start := time.Now()
	var deckDoc, recentDoc Document
	_ = metrics.Stage(b.recorder, metrics.StageCompile, func() error {
		deckDoc = CompileDeck(reg)
		recentDoc = CompileRecent(reg, b.recentCount)
		return nil
	})

	result := &Result{ID: uuid.NewString(), Slides: len(reg.Slides), Topics: len(reg.Topics)}
	logger := b.logger.With(slog.String("build_id", result.ID))
	err := metrics.Stage(b.recorder, metrics.StageWrite, func() error {
		if err := os.MkdirAll(b.outDir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
				WithContext("path", b.outDir).
				Build()
		}
		outputs := []struct {
			name string
			doc  *Document
			raw  string
		}{
			{name: DeckFile, doc: &deckDoc},
			{name: RecentFile, doc: &recentDoc},
			{name: StylesFile, raw: StylesCSS},
		}
		for _, out := range outputs {
			if err := ctx.Err(); err != nil {
				return err
			}
			file := OutputFile{Name: out.name, Path: filepath.Join(b.outDir, out.name)}
			content := out.raw
			if out.doc != nil {
				content = out.doc.Render()
				file.Fingerprint = mdfp.CalculateFingerprintFromParts(out.doc.FrontMatterText(), out.doc.BodyText())
			}
			if err := writeFile(file.Path, content); err != nil {
				return err
			}
			file.Size = len(content)
			result.Files = append(result.Files, file)
			logger.Debug("Wrote output", logfields.Document(out.name), logfields.Path(file.Path))
		}
		return nil
	})

	result.Duration = time.Since(start)
	b.recorder.ObserveBuildDuration(result.Duration)
	if err != nil {
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return nil, err
	}
	b.recorder.SetDeckSize(result.Slides, result.Topics)
	b.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	return result, nil
}

// writeFile replaces path with content via a temporary file and rename.
func writeFile(path, content string) error {
	tmp := path + ".tmp"
	// #nosec G306 -- generated documents are meant to be world-readable
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").
			WithContext("path", path).
			Build()
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to replace output").
			WithContext("path", path).
			Build()
	}
	return nil
}
