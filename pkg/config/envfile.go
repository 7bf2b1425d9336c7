package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const defaultEnvFile = ".env"

// locateEnvFile returns the path of name in the working directory or the
// closest parent that has it. An empty name means .env.
func locateEnvFile(name string) (string, error) {
	if name == "" {
		name = defaultEnvFile
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, name)
		if _, statErr := os.Stat(path); statErr == nil {
			return path, nil
		}
		up := filepath.Dir(dir)
		if up == dir {
			return "", fmt.Errorf("%s: %w", name, fs.ErrNotExist)
		}
		dir = up
	}
}
