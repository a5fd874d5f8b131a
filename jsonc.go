package jsbld

import (
	"github.com/spf13/afero"
	"github.com/tailscale/hujson"
)

// ReadJSONC reads a JSON file that may contain comments and trailing commas
// and returns it as standard JSON. Read and parse failures are reported as
// *ConfigError.
func ReadJSONC(fsys afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return std, nil
}

// FileExists reports whether path exists on fsys and is a regular file.
func FileExists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}

// FirstExisting returns the first of paths that exists on fsys.
func FirstExisting(fsys afero.Fs, paths ...string) (string, bool) {
	for _, p := range paths {
		if FileExists(fsys, p) {
			return p, true
		}
	}
	return "", false
}
