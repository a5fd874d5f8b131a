// Package npmscripts provides one task per script in package.json.
package npmscripts

import (
	"errors"

	"github.com/fredrikaverpil/jsbld"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// Tasks returns an npm-run-<script> task for every entry of the package.json
// scripts mapping, in manifest order. package.json is required.
func Tasks(cfg *jsbld.Config) ([]jsbld.Operation, error) {
	path := cfg.FromRoot(jsbld.ManifestName)
	data, err := afero.ReadFile(cfg.Fs, path)
	if err != nil {
		return nil, &jsbld.ConfigError{Path: path, Err: err}
	}
	if !gjson.ValidBytes(data) {
		return nil, &jsbld.ConfigError{Path: path, Err: errors.New("invalid JSON")}
	}

	var ops []jsbld.Operation
	gjson.GetBytes(data, "scripts").ForEach(func(key, _ gjson.Result) bool {
		script := key.String()
		ops = append(ops, jsbld.Operation{
			Name:   "npm-run-" + script,
			Usage:  "run npm run " + script,
			Action: cfg.RunAction("npm", "run", script),
		})
		return true
	})
	return ops, nil
}
