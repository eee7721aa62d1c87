package registry

import (
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/slidedeck/internal/foundation"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultFiguresDir is the directory figures are copied into and the path
// component topic inference looks for.
const DefaultFiguresDir = "figures"

// InferTopicFromPath returns the directory right after the marker component,
// e.g. figures/data_exploration/plot.png yields "data_exploration". The
// component must be a directory, not the file itself.
func InferTopicFromPath(figurePath, marker string) foundation.Option[string] {
	if marker == "" {
		marker = DefaultFiguresDir
	}
	parts := strings.Split(filepath.ToSlash(figurePath), "/")
	for i, part := range parts {
		if part != marker {
			continue
		}
		if i+1 < len(parts)-1 && parts[i+1] != "" {
			return foundation.Some(parts[i+1])
		}
		break
	}
	return foundation.None[string]()
}

// InferTitleFromFilename turns a file name into a title:
// user_distribution.png yields "User Distribution".
func InferTitleFromFilename(figurePath string) string {
	base := path.Base(filepath.ToSlash(figurePath))
	stem := strings.TrimSuffix(base, path.Ext(base))
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(stem))
	return cases.Title(language.Und).String(strings.Join(words, " "))
}
