package registry

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/slidedeck/internal/logfields"
	"git.home.luguber.info/inful/slidedeck/internal/retry"
)

// DefaultPath is the registry file name in a project.
const DefaultPath = "slides.yaml"

// Store binds registry operations to one registry file.
type Store struct {
	path       string
	now        func() time.Time
	lockPolicy retry.Policy
}

// NewStore creates a store for the registry at path (DefaultPath when empty).
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path, now: time.Now, lockPolicy: retry.DefaultPolicy()}
}

// WithLockRetry sets how long Update waits for a lock held by another
// process.
func (s *Store) WithLockRetry(p retry.Policy) *Store {
	s.lockPolicy = p
	return s
}

// WithClock overrides the clock used for creation dates.
func (s *Store) WithClock(now func() time.Time) *Store {
	if now != nil {
		s.now = now
	}
	return s
}

// Path returns the registry file path.
func (s *Store) Path() string { return s.path }

// Load reads the registry fresh from disk.
func (s *Store) Load() (*Registry, error) {
	return Load(s.path)
}

// Update performs a locked read-modify-write. When fn returns an error
// nothing is written.
func (s *Store) Update(fn func(*Registry) error) error {
	var unlock func()
	err := retry.Do(context.Background(), s.lockPolicy, func() error {
		var lerr error
		unlock, lerr = lockRegistry(s.path)
		return lerr
	})
	if err != nil {
		return err
	}
	defer unlock()

	reg, err := Load(s.path)
	if err != nil {
		return err
	}
	if err := fn(reg); err != nil {
		return err
	}
	if err := Save(s.path, reg); err != nil {
		return err
	}
	slog.Debug("Registry saved", logfields.Path(s.path), logfields.Count(len(reg.Slides)))
	return nil
}

func (s *Store) today() string {
	return s.now().Format(DateLayout)
}
