package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/slidedeck/internal/foundation"
)

type fakeBackend struct {
	revs     []Revision
	logErr   error
	contents map[string][]byte
	shown    []string
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Log(context.Context, string) ([]Revision, error) {
	if f.logErr != nil {
		return nil, f.logErr
	}
	return f.revs, nil
}

func (f *fakeBackend) Show(_ context.Context, _ string, commit string) foundation.Result[[]byte, error] {
	f.shown = append(f.shown, commit)
	if data, ok := f.contents[commit]; ok {
		return foundation.Ok[[]byte, error](data)
	}
	return foundation.Err[[]byte, error](errors.New("path not present at " + commit))
}

func threeRevisions() []Revision {
	return []Revision{
		{Commit: "cccccccccccc1111", Date: "2024-03-01 10:00:00 +0000", Subject: "Third <b>bold</b>"},
		{Commit: "bbbbbbbbbbbb2222", Date: "2024-02-01 10:00:00 +0000", Subject: "Second"},
		{Commit: "aaaaaaaaaaaa3333", Date: "2024-01-01 10:00:00 +0000", Subject: "First"},
	}
}

type memWorkspace struct {
	dir   string
	names []string
}

func (m *memWorkspace) WriteFile(name string, data []byte) (string, error) {
	m.names = append(m.names, name)
	p := filepath.Join(m.dir, name)
	return p, os.WriteFile(p, data, 0o600)
}
