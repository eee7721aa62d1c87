package deck

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/slidedeck/internal/registry"
)

// AssetSource tells where a missing asset was referenced.
type AssetSource string

const (
	AssetFigure  AssetSource = "figure"
	AssetContent AssetSource = "content"
)

// MissingAsset is a referenced image that does not exist on disk.
type MissingAsset struct {
	SlideID string
	Source  AssetSource
	Path    string
}

// CheckAssets reports slide figures and images referenced from slide content
// that cannot be found relative to root. Remote URLs and absolute URLs are
// not checked.
func CheckAssets(reg *registry.Registry, root string) []MissingAsset {
	var missing []MissingAsset
	for _, s := range reg.Slides {
		if s.Figure != "" && !assetExists(root, s.Figure) {
			missing = append(missing, MissingAsset{SlideID: s.ID, Source: AssetFigure, Path: s.Figure})
		}
		for _, dest := range ContentImages(s.Content) {
			if !assetExists(root, dest) {
				missing = append(missing, MissingAsset{SlideID: s.ID, Source: AssetContent, Path: dest})
			}
		}
	}
	return missing
}

// ContentImages returns the destinations of all images in a markdown body.
func ContentImages(content string) []string {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	body := []byte(content)
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var images []string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if img, ok := n.(*gmast.Image); ok {
			images = append(images, string(img.Destination))
		}
		return gmast.WalkContinue, nil
	})
	return images
}

func assetExists(root, ref string) bool {
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return true
	}
	p := ref
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, filepath.FromSlash(ref))
	}
	_, err := os.Stat(p)
	return err == nil
}
