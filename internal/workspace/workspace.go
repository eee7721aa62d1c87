package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/slidedeck/internal/logfields"
	"github.com/google/uuid"
)

// DefaultPrefix names extraction workspaces.
const DefaultPrefix = "slidedeck-history"

// Manager handles one ephemeral workspace directory.
type Manager struct {
	baseDir string
	prefix  string
	dir     string
}

// NewManager creates a workspace manager rooted at baseDir (os.TempDir when empty).
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir, prefix: DefaultPrefix}
}

// WithPrefix overrides the directory name prefix.
func (m *Manager) WithPrefix(prefix string) *Manager {
	if prefix != "" {
		m.prefix = prefix
	}
	return m
}

// Create makes a fresh directory named <prefix>-<timestamp>-<id>.
func (m *Manager) Create() error {
	if m.dir != "" {
		return fmt.Errorf("workspace already created: %s", m.dir)
	}
	timestamp := time.Now().Format("20060102-150405")
	name := fmt.Sprintf("%s-%s-%s", m.prefix, timestamp, uuid.NewString()[:8])
	dir := filepath.Join(m.baseDir, name)

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}
	m.dir = dir
	slog.Debug("Created workspace", logfields.Path(dir))
	return nil
}

// GetPath returns the workspace directory, or "" before Create.
func (m *Manager) GetPath() string {
	return m.dir
}

// WriteFile stores data under name inside the workspace and returns its path.
func (m *Manager) WriteFile(name string, data []byte) (string, error) {
	if m.dir == "" {
		return "", errors.New("workspace not created")
	}
	if name != filepath.Base(name) {
		return "", fmt.Errorf("invalid workspace file name: %q", name)
	}
	p := filepath.Join(m.dir, name)
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return "", fmt.Errorf("write workspace file: %w", err)
	}
	return p, nil
}

// Cleanup removes the workspace directory and everything in it. It is safe
// to call more than once and before Create.
func (m *Manager) Cleanup() error {
	if m.dir == "" {
		return nil
	}
	if err := os.RemoveAll(m.dir); err != nil {
		return fmt.Errorf("failed to cleanup workspace: %w", err)
	}
	slog.Debug("Cleaned up workspace", logfields.Path(m.dir))
	m.dir = ""
	return nil
}
