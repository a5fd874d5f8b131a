// Package esdoc provides the esdoc documentation task.
package esdoc

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/fredrikaverpil/jsbld"
	"github.com/goyek/goyek/v3"
	"github.com/spf13/afero"
	"github.com/tidwall/sjson"
)

// ConfigNames are the accepted esdoc config file names, in lookup order.
var ConfigNames = []string{".esdocrc", "esdoc.json"}

// Tasks returns the esdoc task. One of ConfigNames must exist in the project root.
func Tasks(cfg *jsbld.Config) ([]jsbld.Operation, error) {
	candidates := make([]string, 0, len(ConfigNames))
	for _, name := range ConfigNames {
		candidates = append(candidates, cfg.FromRoot(name))
	}
	path, ok := jsbld.FirstExisting(cfg.Fs, candidates...)
	if !ok {
		return nil, &jsbld.ConfigError{Path: strings.Join(candidates, " or "), Err: fs.ErrNotExist}
	}

	return []jsbld.Operation{{
		Name:  "esdoc",
		Usage: "generate documentation with esdoc",
		Action: jsbld.Action(func(a *goyek.A) error {
			tmp, err := writeConfig(cfg, path)
			if err != nil {
				return err
			}
			defer func() { _ = cfg.Fs.Remove(tmp) }()
			return cfg.Run(a.Context(), a.Output(), "esdoc", "-c", tmp)
		}),
	}}, nil
}

// writeConfig writes a copy of the esdoc config with jspmRootPath set to the
// project root and returns the path of the copy.
func writeConfig(cfg *jsbld.Config, path string) (string, error) {
	data, err := jsbld.ReadJSONC(cfg.Fs, path)
	if err != nil {
		return "", err
	}
	data, err = sjson.SetBytes(data, "jspmRootPath", cfg.RootPath)
	if err != nil {
		return "", fmt.Errorf("set jspmRootPath: %w", err)
	}

	f, err := afero.TempFile(cfg.Fs, "", "esdoc-*.json")
	if err != nil {
		return "", fmt.Errorf("create esdoc config: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("write esdoc config: %w", err)
	}
	return f.Name(), nil
}
