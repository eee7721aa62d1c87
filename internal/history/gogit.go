package history

import (
	"context"
	"io"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/slidedeck/internal/foundation"
	"git.home.luguber.info/inful/slidedeck/internal/foundation/errors"
	"git.home.luguber.info/inful/slidedeck/internal/logfields"
)

// GoGit implements Backend in-process with go-git.
type GoGit struct {
	dir string
}

// NewGoGit creates a go-git backend for the repository containing dir.
func NewGoGit(dir string) *GoGit {
	return &GoGit{dir: workingDir(dir)}
}

func (g *GoGit) Name() string { return BackendGoGit }

func (g *GoGit) open(path string) (*git.Repository, string, error) {
	repo, err := git.PlainOpenWithOptions(g.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, "", errors.WrapError(err, errors.CategoryGit, "failed to open repository").
			WithContext(logfields.KeyPath, g.dir).
			Build()
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, "", errors.WrapError(err, errors.CategoryGit, "repository has no worktree").
			WithContext(logfields.KeyPath, g.dir).
			Build()
	}
	rel, err := repoRelative(wt.Filesystem.Root(), g.dir, path)
	if err != nil {
		return nil, "", errors.WrapError(err, errors.CategoryGit, "path is not inside the repository").
			WithContext(logfields.KeyPath, path).
			Build()
	}
	return repo, rel, nil
}

// Log walks first-parent history from HEAD and returns every commit in which
// the content of path differs from its parent. When path first appears in a
// commit that renamed it, the walk continues with the old name.
func (g *GoGit) Log(ctx context.Context, path string) ([]Revision, error) {
	repo, current, err := g.open(path)
	if err != nil {
		return nil, err
	}
	head, err := repo.Head()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "failed to resolve HEAD").Build()
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "failed to read HEAD commit").Build()
	}

	var revs []Revision
	for commit != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var parent *object.Commit
		if commit.NumParents() > 0 {
			parent, err = commit.Parent(0)
			if err != nil {
				return nil, errors.WrapError(err, errors.CategoryGit, "failed to read parent commit").
					WithContext(logfields.KeyCommit, ShortCommit(commit.Hash.String())).
					Build()
			}
		}

		if hash, ok := blobHash(commit, current); ok {
			parentHash, inParent := blobHash(parent, current)
			if !inParent || parentHash != hash {
				revs = append(revs, revisionOf(commit))
			}
			if !inParent && parent != nil {
				if from, renamed := renamedFrom(ctx, parent, commit, current); renamed {
					current = from
				}
			}
		}
		commit = parent
	}
	return revs, nil
}

// Show reads path from the tree of commit.
func (g *GoGit) Show(ctx context.Context, path, commit string) foundation.Result[[]byte, error] {
	repo, rel, err := g.open(path)
	if err != nil {
		return foundation.Err[[]byte, error](err)
	}
	fail := func(err error, msg string) foundation.Result[[]byte, error] {
		return foundation.Err[[]byte, error](errors.WrapError(err, errors.CategoryExtraction, msg).
			Warning().
			WithContext(logfields.KeyCommit, ShortCommit(commit)).
			WithContext(logfields.KeyPath, rel).
			Build())
	}
	if err := ctx.Err(); err != nil {
		return foundation.Err[[]byte, error](err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(commit))
	if err != nil {
		return fail(err, "failed to resolve revision")
	}
	c, err := repo.CommitObject(*hash)
	if err != nil {
		return fail(err, "failed to read commit")
	}
	file, err := c.File(rel)
	if err != nil {
		return fail(err, "failed to read revision content")
	}
	rd, err := file.Reader()
	if err != nil {
		return fail(err, "failed to read revision content")
	}
	defer func() { _ = rd.Close() }()
	data, err := io.ReadAll(rd)
	if err != nil {
		return fail(err, "failed to read revision content")
	}
	return foundation.Ok[[]byte, error](data)
}

func blobHash(c *object.Commit, path string) (plumbing.Hash, bool) {
	if c == nil {
		return plumbing.ZeroHash, false
	}
	tree, err := c.Tree()
	if err != nil {
		return plumbing.ZeroHash, false
	}
	entry, err := tree.FindEntry(path)
	if err != nil {
		return plumbing.ZeroHash, false
	}
	return entry.Hash, true
}

// renamedFrom reports the previous name of path if child renamed it.
func renamedFrom(ctx context.Context, parent, child *object.Commit, path string) (string, bool) {
	from, err := parent.Tree()
	if err != nil {
		return "", false
	}
	to, err := child.Tree()
	if err != nil {
		return "", false
	}
	changes, err := object.DiffTreeWithOptions(ctx, from, to, object.DefaultDiffTreeOptions)
	if err != nil {
		return "", false
	}
	for _, ch := range changes {
		if ch.To.Name == path && ch.From.Name != "" && ch.From.Name != path {
			return ch.From.Name, true
		}
	}
	return "", false
}

func revisionOf(c *object.Commit) Revision {
	subject, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return Revision{
		Commit:  c.Hash.String(),
		Date:    c.Author.When.Format(DateLayout),
		Subject: strings.TrimSpace(subject),
	}
}
