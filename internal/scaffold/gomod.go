package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// ModulePath is the import path of this module, required by generated build
// directories.
const ModulePath = "github.com/fredrikaverpil/jsbld"

// fallbackModule names the build module when package.json has no usable name.
const fallbackModule = "jsbld-build"

// BuildModule returns the module path for the build directory of the project
// described by the package.json contents. Scoped names drop the leading "@".
func BuildModule(packageJSON []byte) string {
	name := gjson.GetBytes(packageJSON, "name").String()
	name = strings.TrimPrefix(name, "@")
	if name == "" {
		return fallbackModule
	}
	path := name + "-build"
	if err := module.CheckImportPath(path); err != nil {
		return fallbackModule
	}
	return path
}

// RequiredVersion reads dir/go.mod and returns the version of ModulePath it
// requires.
func RequiredVersion(fsys afero.Fs, dir string) (string, error) {
	gomodPath := filepath.Join(dir, "go.mod")
	data, err := afero.ReadFile(fsys, gomodPath)
	if err != nil {
		return "", fmt.Errorf("read go.mod: %w", err)
	}

	f, err := modfile.ParseLax(gomodPath, data, nil)
	if err != nil {
		return "", fmt.Errorf("parse go.mod: %w", err)
	}

	for _, r := range f.Require {
		if r.Mod.Path == ModulePath {
			return r.Mod.Version, nil
		}
	}
	return "", fmt.Errorf("%s does not require %s", gomodPath, ModulePath)
}
