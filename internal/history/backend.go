package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/slidedeck/internal/foundation"
	"git.home.luguber.info/inful/slidedeck/internal/foundation/errors"
)

// Backend names accepted by NewBackend.
const (
	BackendCLI   = "cli"
	BackendGoGit = "gogit"
)

// Backend is the revision-control capability used by the history pipeline.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string
	// Log lists the revisions that touched path, newest first, following
	// renames.
	Log(ctx context.Context, path string) ([]Revision, error)
	// Show returns the content of path as of commit.
	Show(ctx context.Context, path, commit string) foundation.Result[[]byte, error]
}

// NewBackend returns the backend named kind, operating from dir. binary is
// the git executable for the CLI backend.
func NewBackend(kind, dir, binary string) (Backend, error) {
	switch kind {
	case "", BackendCLI:
		return NewGitCLI(dir).WithBinary(binary), nil
	case BackendGoGit:
		return NewGoGit(dir), nil
	default:
		return nil, errors.ConfigError(fmt.Sprintf("unknown git backend %q", kind)).
			WithContext("valid_backends", []string{BackendCLI, BackendGoGit}).
			Build()
	}
}

// repoRelative converts path (relative to dir, or absolute) into a
// slash-separated path relative to the repository root.
func repoRelative(root, dir, path string) (string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(dir, path)
	}
	abs, err := filepath.Abs(abs)
	if err != nil {
		return "", err
	}
	abs = resolveDir(abs)
	root = resolveDir(root)

	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside repository %s", path, root)
	}
	return filepath.ToSlash(rel), nil
}

// resolveDir resolves symlinks in the directory part of p. The file itself
// may no longer exist in the working tree.
func resolveDir(p string) string {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}
	dir, file := filepath.Split(p)
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return filepath.Join(resolved, file)
	}
	return p
}

func workingDir(dir string) string {
	if dir != "" {
		return dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
