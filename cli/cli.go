// Package cli is the entry point shared by cmd/jsbld and the scaffolded
// .jsbld/main.go of a project.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/fredrikaverpil/jsbld"
	"github.com/fredrikaverpil/jsbld/internal/settings"
	"github.com/fredrikaverpil/jsbld/tasks"
	"github.com/goyek/goyek/v3"
	"github.com/goyek/x/boot"
)

// DefineFlags registers the jsbld flags on fs. They sit next to the goyek
// flags (-v, -dry-run, -skip, ...) in the help output.
func DefineFlags(fs *flag.FlagSet) {
	fs.String(settings.KeyRoot, "", "project root containing package.json (default: nearest parent with package.json)")
	fs.String(settings.KeySrc, "", "comma separated source globs linted by eslint")
	fs.String(settings.KeyConfigDir, "", "directory holding task config files, relative to the root (default \"config\")")
	fs.String(settings.KeyImport, "", "comma separated task categories to load (default: all)")
	fs.String(settings.KeyExclude, "", "comma separated task categories to skip")
	fs.Bool(settings.KeyTravis, false, "CI mode: use the CI bundle manifest and in-memory bundles")
	fs.String(settings.KeyBundleConfig, "", "bundle manifest path, relative to the root")
	fs.String(settings.KeyJSPMPackage, "", "package manifest used to locate the JSPM config")
	fs.Duration(settings.KeyProbeTimeout, 0, "timeout for each environment probe")
}

// Main registers the tasks for the project in the working directory on the
// default goyek flow and runs the tasks named on the command line.
// Settings from jsbld.yaml, the environment and flags are applied on top of
// base.
func Main(base jsbld.Config) {
	DefineFlags(flag.CommandLine)
	parseQuietly(flag.CommandLine, os.Args[1:])

	cfg, err := Load(flag.CommandLine, base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		os.Exit(1)
	}
	tasks.Register(goyek.DefaultFlow, cfg)
	boot.Main()
}

// parseQuietly parses args into fs without printing usage or exiting.
// -h and flag errors are left to boot.Main, which parses again after the
// tasks are registered and so can list them.
func parseQuietly(fs *flag.FlagSet, args []string) {
	handling, usage, out := fs.ErrorHandling(), fs.Usage, fs.Output()
	fs.Init(fs.Name(), flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	_ = fs.Parse(args)
	fs.Init(fs.Name(), handling)
	fs.Usage = usage
	fs.SetOutput(out)
}

// Load resolves the configuration for the working directory.
func Load(fs *flag.FlagSet, base jsbld.Config) (*jsbld.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	v, err := settings.New(dir)
	if err != nil {
		return nil, err
	}
	if fs != nil {
		settings.SetFlags(v, fs)
	}
	cfg := base
	settings.Apply(v, dir, &cfg)
	return &cfg, nil
}
