package history

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	ferrors "git.home.luguber.info/inful/slidedeck/internal/foundation/errors"
)

type card struct {
	title string
	src   string
}

// parseCards returns the heading and image source of every version card.
func parseCards(t *testing.T, path string) []card {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	doc, err := html.Parse(f)
	require.NoError(t, err)

	var cards []card
	var walk func(n *html.Node, current *card)
	walk = func(n *html.Node, current *card) {
		if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "version-card") {
			cards = append(cards, card{})
			current = &cards[len(cards)-1]
		}
		if current != nil && n.Type == html.ElementNode {
			switch n.Data {
			case "h3":
				current.title = textOf(n)
			case "img":
				current.src = attr(n, "src")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, current)
		}
	}
	walk(doc, nil)
	return cards
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func newTestComparer(t *testing.T, backend Backend) (*Comparer, string) {
	t.Helper()
	base := t.TempDir()
	return NewComparer(backend).WithWorkspaceBase(base), base
}

func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "extraction workspace was not removed")
}

func TestCompareTwoRevisions(t *testing.T) {
	revs := threeRevisions()[:2]
	backend := &fakeBackend{revs: revs, contents: map[string][]byte{
		revs[0].Commit: []byte("new"),
		revs[1].Commit: []byte("old"),
	}}
	cmp, base := newTestComparer(t, backend)
	output := filepath.Join(t.TempDir(), "history.html")

	res, err := cmp.Compare(context.Background(), "figures/plot.png", output)
	require.NoError(t, err)
	require.Equal(t, &CompareResult{Output: output, Revisions: 2, Rendered: 2}, res)

	cards := parseCards(t, output)
	require.Len(t, cards, 2)
	require.Equal(t, "Version 1", cards[0].title)
	require.Equal(t, "Version 2", cards[1].title)
	require.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("new")), cards[0].src)
	require.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("old")), cards[1].src)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	page := string(data)
	require.Contains(t, page, "<title>Figure History: figures/plot.png</title>")
	require.Contains(t, page, "2 versions found (newest first)")
	require.Contains(t, page, "cccccccc")
	require.NotContains(t, page, "cccccccccccc1111")
	require.Contains(t, page, "Third &lt;b&gt;bold&lt;/b&gt;")

	requireEmptyDir(t, base)
}

func TestCompareNoHistory(t *testing.T) {
	cmp, base := newTestComparer(t, &fakeBackend{logErr: errors.New("not tracked")})
	output := filepath.Join(t.TempDir(), "history.html")

	_, err := cmp.Compare(context.Background(), "figures/plot.png", output)
	require.ErrorIs(t, err, ErrNoHistory)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
	require.NoFileExists(t, output)
	requireEmptyDir(t, base)
}

func TestCompareSingleRevision(t *testing.T) {
	revs := threeRevisions()[:1]
	backend := &fakeBackend{revs: revs, contents: map[string][]byte{revs[0].Commit: []byte("x")}}
	cmp, base := newTestComparer(t, backend)
	output := filepath.Join(t.TempDir(), "history.html")

	_, err := cmp.Compare(context.Background(), "figures/plot.png", output)
	require.ErrorIs(t, err, ErrNothingToCompare)
	require.NoFileExists(t, output)
	require.Empty(t, backend.shown)
	requireEmptyDir(t, base)
}

func TestComparePartialFailure(t *testing.T) {
	revs := threeRevisions()
	backend := &fakeBackend{revs: revs, contents: map[string][]byte{
		revs[0].Commit: []byte("third"),
		revs[2].Commit: []byte("first"),
	}}
	cmp, base := newTestComparer(t, backend)
	output := filepath.Join(t.TempDir(), "history.html")

	res, err := cmp.Compare(context.Background(), "figures/plot.svg", output)
	require.NoError(t, err)
	require.Equal(t, 2, res.Rendered)
	require.Equal(t, 1, res.Failed)

	cards := parseCards(t, output)
	require.Len(t, cards, 2)
	require.Equal(t, "Version 1", cards[0].title)
	require.Equal(t, "Version 3", cards[1].title)
	require.True(t, strings.HasPrefix(cards[0].src, "data:image/svg+xml;base64,"))

	requireEmptyDir(t, base)
}

func TestCompareTotalFailure(t *testing.T) {
	backend := &fakeBackend{revs: threeRevisions()}
	cmp, base := newTestComparer(t, backend)
	output := filepath.Join(t.TempDir(), "history.html")

	res, err := cmp.Compare(context.Background(), "figures/plot.png", output)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryExtraction))
	require.Equal(t, 3, res.Failed)
	require.NoFileExists(t, output)
	requireEmptyDir(t, base)
}

func TestCompareUnwritableOutputStillCleansUp(t *testing.T) {
	revs := threeRevisions()[:2]
	backend := &fakeBackend{revs: revs, contents: map[string][]byte{
		revs[0].Commit: []byte("a"),
		revs[1].Commit: []byte("b"),
	}}
	cmp, base := newTestComparer(t, backend)
	output := filepath.Join(t.TempDir(), "missing-dir", "history.html")

	_, err := cmp.Compare(context.Background(), "figures/plot.png", output)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
	requireEmptyDir(t, base)
}
