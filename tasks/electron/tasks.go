// Package electron provides tasks for starting and packaging Electron apps.
package electron

import (
	"fmt"
	"strings"

	"github.com/fredrikaverpil/jsbld"
	"github.com/goyek/goyek/v3"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// ConfigName is the packaging config file looked up in the project root.
const ConfigName = "electron.json"

// DebugPort is the inspector port used by electron-start-debug.
const DebugPort = 5858

// Tasks returns the Electron tasks. Nothing is returned unless electron is
// installed locally; packaging also needs electron-packager and electron.json.
func Tasks(cfg *jsbld.Config) ([]jsbld.Operation, error) {
	if !jsbld.FileExists(cfg.Fs, cfg.FromBinDir("electron")) {
		return nil, nil
	}
	ops := []jsbld.Operation{
		{Name: "electron-start", Usage: "start the app with electron", Action: cfg.RunAction("electron", ".")},
		{
			Name:   "electron-start-debug",
			Usage:  fmt.Sprintf("start the app with electron, debugger on port %d", DebugPort),
			Action: cfg.RunAction("electron", fmt.Sprintf("--debug=%d", DebugPort), "."),
		},
	}

	path := cfg.FromRoot(ConfigName)
	if !jsbld.FileExists(cfg.Fs, cfg.FromBinDir("electron-packager")) || !jsbld.FileExists(cfg.Fs, path) {
		return ops, nil
	}
	data, err := jsbld.ReadJSONC(cfg.Fs, path)
	if err != nil {
		return nil, err
	}
	opts, err := ParsePackageOptions(data, appName(cfg))
	if err != nil {
		return nil, &jsbld.ConfigError{Path: path, Err: err}
	}

	return append(ops, jsbld.Operation{
		Name:  "electron-package-" + opts.Platform + "-" + opts.Arch,
		Usage: "package the app with electron-packager",
		Action: jsbld.Action(func(a *goyek.A) error {
			return pack(a, cfg, opts)
		}),
	}), nil
}

// pack runs electron-packager once per platform in opts.Platform. A failed
// platform does not stop the others.
func pack(a *goyek.A, cfg *jsbld.Config, opts *PackageOptions) error {
	w := jsbld.SyncWriter(a.Output())
	ctx := a.Context()
	var g errgroup.Group
	for _, platform := range strings.Split(opts.Platform, ",") {
		platform = strings.TrimSpace(platform)
		g.Go(func() error {
			if err := cfg.Run(ctx, w, "electron-packager", opts.Args(platform)...); err != nil {
				return fmt.Errorf("package %s-%s: %w", platform, opts.Arch, err)
			}
			fmt.Fprintf(w, "Packaging app complete: %s-%s\n", platform, opts.Arch)
			return nil
		})
	}
	return g.Wait()
}

// appName returns the package.json name, or "" when unavailable.
func appName(cfg *jsbld.Config) string {
	data, err := jsbld.ReadJSONC(cfg.Fs, cfg.FromRoot(jsbld.ManifestName))
	if err != nil {
		return ""
	}
	return gjson.GetBytes(data, "name").String()
}
