package history

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/slidedeck/internal/foundation/errors"
)

var commitBase = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

type figureRepo struct {
	dir     string
	commits []string // newest first
}

// initFigureRepo creates a repository in which figures/a.png is added,
// modified and then renamed to figures/b.png.
func initFigureRepo(t *testing.T) figureRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "figures"), 0o750))

	var commits []string
	commit := func(msg string, hour int) {
		hash, err := wt.Commit(msg, &git.CommitOptions{Author: &object.Signature{
			Name:  "tester",
			Email: "tester@example.com",
			When:  commitBase.Add(time.Duration(hour) * time.Hour),
		}})
		require.NoError(t, err)
		commits = append([]string{hash.String()}, commits...)
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "figures", "a.png"), []byte("version one"), 0o600))
	_, err = wt.Add("figures/a.png")
	require.NoError(t, err)
	commit("Add plot", 0)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "figures", "a.png"), []byte("version two"), 0o600))
	_, err = wt.Add("figures/a.png")
	require.NoError(t, err)
	commit("Tweak colours\n\nLonger body.", 1)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("unrelated"), 0o600))
	_, err = wt.Add("notes.md")
	require.NoError(t, err)
	commit("Unrelated change", 2)

	_, err = wt.Move("figures/a.png", "figures/b.png")
	require.NoError(t, err)
	commit("Rename plot", 3)

	return figureRepo{dir: dir, commits: commits}
}

func TestGoGitLogFollowsRenames(t *testing.T) {
	repo := initFigureRepo(t)
	revs, err := NewGoGit(repo.dir).Log(context.Background(), "figures/b.png")
	require.NoError(t, err)

	require.Equal(t, []Revision{
		{Commit: repo.commits[0], Date: "2024-01-01 13:00:00 +0000", Subject: "Rename plot"},
		{Commit: repo.commits[2], Date: "2024-01-01 11:00:00 +0000", Subject: "Tweak colours"},
		{Commit: repo.commits[3], Date: "2024-01-01 10:00:00 +0000", Subject: "Add plot"},
	}, revs)
}

func TestGoGitShow(t *testing.T) {
	repo := initFigureRepo(t)
	backend := NewGoGit(repo.dir)

	got := backend.Show(context.Background(), "figures/b.png", repo.commits[0])
	require.True(t, got.IsOk())
	require.Equal(t, []byte("version two"), got.Unwrap())

	old := backend.Show(context.Background(), "figures/a.png", ShortCommit(repo.commits[3]))
	require.True(t, old.IsOk())
	require.Equal(t, []byte("version one"), old.Unwrap())

	missing := backend.Show(context.Background(), "figures/b.png", repo.commits[3])
	require.True(t, missing.IsErr())
	require.True(t, ferrors.HasCategory(missing.UnwrapErr(), ferrors.CategoryExtraction))
}

func TestGoGitNotARepository(t *testing.T) {
	_, err := NewGoGit(t.TempDir()).Log(context.Background(), "figures/a.png")
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryGit))
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

func TestGitCLIMatchesGoGit(t *testing.T) {
	requireGit(t)
	repo := initFigureRepo(t)
	ctx := context.Background()

	cli, err := NewGitCLI(repo.dir).Log(ctx, "figures/b.png")
	require.NoError(t, err)
	gogit, err := NewGoGit(repo.dir).Log(ctx, "figures/b.png")
	require.NoError(t, err)
	require.Equal(t, gogit, cli)
}

func TestGitCLIShowFromSubdirectory(t *testing.T) {
	requireGit(t)
	repo := initFigureRepo(t)

	backend := NewGitCLI(filepath.Join(repo.dir, "figures"))
	got := backend.Show(context.Background(), "b.png", repo.commits[0])
	require.True(t, got.IsOk())
	require.Equal(t, []byte("version two"), got.Unwrap())

	missing := backend.Show(context.Background(), "b.png", repo.commits[3])
	require.True(t, missing.IsErr())
}

func TestGitCLIOutsideRepository(t *testing.T) {
	requireGit(t)
	_, err := NewGitCLI(t.TempDir()).Log(context.Background(), "a.png")
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryGit))
}

func TestNewBackend(t *testing.T) {
	b, err := NewBackend("", ".", "")
	require.NoError(t, err)
	require.Equal(t, BackendCLI, b.Name())

	b, err = NewBackend(BackendGoGit, ".", "")
	require.NoError(t, err)
	require.Equal(t, BackendGoGit, b.Name())

	_, err = NewBackend("svn", ".", "")
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}
