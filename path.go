// Package jsbld provides core utilities for registering JavaScript build tasks
// with a goyek flow.
package jsbld

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DirName is the name of the jsbld directory inside a project.
	DirName = ".jsbld"
	// ManifestName is the package manifest that marks a project root.
	ManifestName = "package.json"
	// NodeModulesDirName is the name of the installed modules directory.
	NodeModulesDirName = "node_modules"
)

// FindRoot walks up from dir until it finds a directory containing package.json.
// It returns dir itself when no manifest is found.
func FindRoot(dir string) string {
	start := dir
	for {
		if _, err := os.Stat(filepath.Join(dir, ManifestName)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

// FromRoot returns a path relative to the project root.
func (c *Config) FromRoot(elem ...string) string {
	return filepath.Join(append([]string{c.RootPath}, elem...)...)
}

// FromConfigDir returns a path relative to the project's config directory.
func (c *Config) FromConfigDir(elem ...string) string {
	return c.FromRoot(append([]string{c.ConfigDir}, elem...)...)
}

// FromBinDir returns a path relative to node_modules/.bin in the project root.
// If no elements are provided, returns the bin directory itself.
func (c *Config) FromBinDir(elem ...string) string {
	return c.FromRoot(append([]string{NodeModulesDirName, ".bin"}, elem...)...)
}

// RelToRoot returns path relative to the project root, falling back to path
// itself when it lies outside the root.
func (c *Config) RelToRoot(path string) string {
	rel, err := filepath.Rel(c.RootPath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// TrimDotSlash removes a leading "./" (or ".\" on Windows) from a relative path.
func TrimDotSlash(p string) string {
	p = strings.TrimPrefix(p, "./")
	return strings.TrimPrefix(p, `.\`)
}
