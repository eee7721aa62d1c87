package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyFile       = "file"
	KeySlideID    = "slide_id"
	KeyTopic      = "topic"
	KeyCommit     = "commit"
	KeyRevision   = "revision"
	KeyCount      = "count"
	KeyBackend    = "backend"
	KeyDocument   = "document"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func SlideID(id string) slog.Attr     { return slog.String(KeySlideID, id) }
func Topic(id string) slog.Attr       { return slog.String(KeyTopic, id) }
func Commit(c string) slog.Attr       { return slog.String(KeyCommit, c) }
func Revision(i int) slog.Attr        { return slog.Int(KeyRevision, i) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Backend(name string) slog.Attr   { return slog.String(KeyBackend, name) }
func Document(name string) slog.Attr  { return slog.String(KeyDocument, name) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
