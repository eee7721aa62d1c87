package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFiles are loaded, in order, before the configuration.
var EnvFiles = []string{".env", ".env.local"}

// LoadEnvFiles loads variables from the env files that exist in dir.
// Variables already set in the process environment are not overridden.
// It returns the files that were loaded.
func LoadEnvFiles(dir string) ([]string, error) {
	var loaded []string
	for _, name := range EnvFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, err
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}
