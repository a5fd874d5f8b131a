package jsbld

import (
	"io"
	"os"
	"slices"
	"time"

	"github.com/spf13/afero"
)

// DefaultConfigDir is the config directory used when Config.ConfigDir is empty.
const DefaultConfigDir = "config"

// DefaultProbeTimeout bounds each environment probe run during registration.
const DefaultProbeTimeout = 10 * time.Second

// Config defines the configuration for registering tasks in a JavaScript project.
// It is created once per registration and mutated in place by the registrar
// and the task adapters.
type Config struct {
	// RootPath is the directory containing package.json. All tasks run here.
	RootPath string

	// SrcGlob lists the source globs handed to eslint.
	SrcGlob []string

	// ConfigDir is the directory (relative to RootPath) holding task config
	// files such as bundle-config.json.
	// Default: "config"
	ConfigDir string

	// ImportTasks lists the categories to load. Nil means every known category.
	//
	// Example:
	//
	//	ImportTasks: []jsbld.Category{jsbld.ESLint, jsbld.NPM},
	ImportTasks []Category

	// ExcludeTasks lists categories to remove from ImportTasks.
	ExcludeTasks []Category

	// CI selects the CI bundle manifest and forces in-memory bundles.
	CI bool

	// BundleConfig overrides the bundle manifest path (relative to RootPath).
	BundleConfig string

	// JSPMPackagePath overrides the package manifest used to locate the JSPM
	// config file. Default: <RootPath>/package.json
	JSPMPackagePath string

	// ProbeTimeout bounds each blocking environment probe.
	// Default: DefaultProbeTimeout
	ProbeTimeout time.Duration

	// Verbose enables registrar diagnostics on Stdout.
	Verbose bool

	// Stdout and Stderr receive registrar output. Default: os.Stdout, os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	// Fs is the filesystem config files are read from and written to.
	// Default: the OS filesystem.
	Fs afero.Fs

	// Exec runs external commands. Default: ExecCommand.
	Exec Executor

	// Exit terminates the process on fatal configuration errors. Default: os.Exit.
	Exit func(code int)

	// LoadedTasks receives the name of every task defined on the flow.
	LoadedTasks []string

	// ActiveTasks receives the categories that survived exclusion and probing,
	// in dispatch order.
	ActiveTasks []Category

	// TopLevelModules maps installed top-level npm modules to their versions.
	TopLevelModules map[string]string
}

// ApplyDefaults fills in unset fields and resets the registration outputs.
func (c *Config) ApplyDefaults() {
	if c.ConfigDir == "" {
		c.ConfigDir = DefaultConfigDir
	}
	if c.ProbeTimeout <= 0 {
		c.ProbeTimeout = DefaultProbeTimeout
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}
	if c.Fs == nil {
		c.Fs = afero.NewOsFs()
	}
	if c.Exec == nil {
		c.Exec = ExecCommand
	}
	if c.Exit == nil {
		c.Exit = os.Exit
	}
	c.LoadedTasks = []string{}
	c.ActiveTasks = nil
	c.TopLevelModules = map[string]string{}
}

// Imports returns the categories to load before exclusion and probing.
func (c *Config) Imports() []Category {
	if c.ImportTasks == nil {
		return AllCategories()
	}
	return c.ImportTasks
}

// Explicit reports whether the caller listed the categories to import, as
// opposed to relying on the default set.
func (c *Config) Explicit() bool {
	return c.ImportTasks != nil
}

// Active reports whether the category survived exclusion and probing.
func (c *Config) Active(cat Category) bool {
	return slices.Contains(c.ActiveTasks, cat)
}
