// Package eslint provides the eslint task.
package eslint

import (
	"errors"
	"io/fs"

	"github.com/fredrikaverpil/jsbld"
	"github.com/goyek/goyek/v3"
)

// ConfigName is the eslint rule file looked up in the project root.
const ConfigName = ".eslintrc"

// Tasks returns the eslint task. The rule file is required.
func Tasks(cfg *jsbld.Config) ([]jsbld.Operation, error) {
	rc := cfg.FromRoot(ConfigName)
	if !jsbld.FileExists(cfg.Fs, rc) {
		return nil, &jsbld.ConfigError{Path: rc, Err: fs.ErrNotExist}
	}
	return []jsbld.Operation{{
		Name:  "eslint",
		Usage: "lint sources with eslint",
		Action: jsbld.Action(func(a *goyek.A) error {
			if len(cfg.SrcGlob) == 0 {
				return errors.New("eslint: no source globs configured")
			}
			args := append([]string{"--config", rc}, cfg.SrcGlob...)
			return cfg.Run(a.Context(), a.Output(), "eslint", args...)
		}),
	}}, nil
}
