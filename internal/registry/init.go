package registry

import (
	"errors"
	"io/fs"
	"os"

	derrors "git.home.luguber.info/inful/slidedeck/internal/foundation/errors"
)

// Starter returns the registry written by `slidedeck init`.
func Starter(title string) *Registry {
	if title == "" {
		title = DefaultTitle
	}
	return &Registry{
		Title: title,
		Topics: []Topic{
			{ID: "introduction", Name: "Introduction", Order: 1},
			{ID: "data_exploration", Name: "Data Exploration", Order: 2},
			{ID: "results", Name: "Results", Order: 3},
		},
	}
}

// Init writes a starter registry to path. An existing file is only replaced
// when force is set.
func Init(path, title string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return derrors.ValidationError("registry already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fsError(err, "failed to inspect registry", path)
	}
	return Save(path, Starter(title))
}
