// Package scaffold generates the .jsbld directory of a JavaScript project.
package scaffold

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// Dir is the name of the build directory created next to package.json.
const Dir = ".jsbld"

// WrapperName is the name of the wrapper script created in the project root.
const WrapperName = "jsbld"

//go:embed templates/config.go.tmpl
var configTemplate string

//go:embed templates/main.go.tmpl
var mainTemplate string

//go:embed templates/gitignore.tmpl
var gitignoreTemplate string

//go:embed templates/wrapper.sh.tmpl
var wrapperTemplate string

// GenerateAll creates the scaffold files in dir.
// One-time files (config.go, .gitignore) are only created if missing.
// main.go is always regenerated.
func GenerateAll(fsys afero.Fs, dir string) error {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	oneTimeFiles := []struct {
		name    string
		content string
	}{
		{"config.go", configTemplate},
		{".gitignore", gitignoreTemplate},
	}
	for _, f := range oneTimeFiles {
		path := filepath.Join(dir, f.name)
		if _, err := fsys.Stat(path); !errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := afero.WriteFile(fsys, path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", f.name, err)
		}
	}

	return RegenerateMain(fsys, dir)
}

// RegenerateMain rewrites main.go without touching the user's config.go.
func RegenerateMain(fsys afero.Fs, dir string) error {
	if err := afero.WriteFile(fsys, filepath.Join(dir, "main.go"), []byte(mainTemplate), 0o644); err != nil {
		return fmt.Errorf("writing main.go: %w", err)
	}
	return nil
}

// WriteWrapper writes the executable wrapper script to root.
func WriteWrapper(fsys afero.Fs, root string) error {
	if err := afero.WriteFile(fsys, filepath.Join(root, WrapperName), []byte(wrapperTemplate), 0o755); err != nil {
		return fmt.Errorf("writing %s wrapper: %w", WrapperName, err)
	}
	return nil
}
