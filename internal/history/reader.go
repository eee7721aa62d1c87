package history

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/slidedeck/internal/logfields"
)

// Reader lists the revisions of an asset. Backend failures mean "no
// history" and are not propagated.
type Reader struct {
	backend Backend
	logger  *slog.Logger
}

// NewReader creates a reader on backend.
func NewReader(backend Backend) *Reader {
	return &Reader{backend: backend, logger: slog.Default()}
}

// WithLogger sets the logger.
func (r *Reader) WithLogger(l *slog.Logger) *Reader {
	if l != nil {
		r.logger = l
	}
	return r
}

// History returns the revisions of path, newest first, or an empty list
// when the path is untracked or the backend fails.
func (r *Reader) History(ctx context.Context, path string) []Revision {
	revs, err := r.backend.Log(ctx, path)
	if err != nil {
		r.logger.Debug("No revision history",
			logfields.Path(path),
			logfields.Backend(r.backend.Name()),
			logfields.Error(err))
		return nil
	}
	r.logger.Debug("Read revision history",
		logfields.Path(path),
		logfields.Backend(r.backend.Name()),
		logfields.Count(len(revs)))
	return revs
}
