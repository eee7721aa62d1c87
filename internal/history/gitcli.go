package history

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/slidedeck/internal/foundation"
	"git.home.luguber.info/inful/slidedeck/internal/foundation/errors"
	"git.home.luguber.info/inful/slidedeck/internal/logfields"
)

// GitCLI implements Backend by running the git binary.
type GitCLI struct {
	binary string
	dir    string
}

// NewGitCLI creates a CLI backend running git in dir ("" means the current
// directory).
func NewGitCLI(dir string) *GitCLI {
	return &GitCLI{binary: "git", dir: workingDir(dir)}
}

// WithBinary overrides the git executable.
func (g *GitCLI) WithBinary(binary string) *GitCLI {
	if binary != "" {
		g.binary = binary
	}
	return g
}

func (g *GitCLI) Name() string { return BackendCLI }

// Log runs git log --follow for path.
func (g *GitCLI) Log(ctx context.Context, path string) ([]Revision, error) {
	out, err := g.run(ctx, "log", "--format="+LogFormat, "--follow", "--", path)
	if err != nil {
		return nil, err
	}
	return ParseLog(string(out)), nil
}

// Show runs git show <commit>:<repo-relative path>.
func (g *GitCLI) Show(ctx context.Context, path, commit string) foundation.Result[[]byte, error] {
	rel, err := g.repoPath(ctx, path)
	if err != nil {
		return foundation.Err[[]byte, error](err)
	}
	out, err := g.run(ctx, "show", commit+":"+rel)
	if err != nil {
		return foundation.Err[[]byte, error](errors.WrapError(err, errors.CategoryExtraction, "failed to read revision content").
			Warning().
			WithContext(logfields.KeyCommit, ShortCommit(commit)).
			WithContext(logfields.KeyPath, rel).
			Build())
	}
	return foundation.Ok[[]byte, error](out)
}

func (g *GitCLI) repoPath(ctx context.Context, path string) (string, error) {
	out, err := g.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	rel, err := repoRelative(strings.TrimSpace(string(out)), g.dir, path)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryGit, "path is not inside the repository").
			WithContext(logfields.KeyPath, path).
			Build()
	}
	return rel, nil
}

func (g *GitCLI) run(ctx context.Context, args ...string) ([]byte, error) {
	full := append([]string{"-C", g.dir}, args...)
	// #nosec G204 -- invoking git with configured binary and controlled args
	cmd := exec.CommandContext(ctx, g.binary, full...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		b := errors.WrapError(err, errors.CategoryGit, "git "+args[0]+" failed").
			WithContext("args", strings.Join(args, " "))
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			b = b.WithContext("stderr", msg)
		}
		var ee *exec.ExitError
		if !stderrors.As(err, &ee) {
			b = b.Fatal()
		}
		return nil, b.Build()
	}
	return out, nil
}
