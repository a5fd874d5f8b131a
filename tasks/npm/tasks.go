// Package npm provides tasks for the npm CLI.
package npm

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fredrikaverpil/jsbld"
	"github.com/goyek/goyek/v3"
	"github.com/spf13/afero"
)

// Tasks returns the npm tasks.
func Tasks(cfg *jsbld.Config) ([]jsbld.Operation, error) {
	return []jsbld.Operation{
		{Name: "npm-install", Usage: "run npm install", Action: cfg.RunAction("npm", "install")},
		{Name: "npm-list-depth-0", Usage: "run npm list --depth=0", Action: cfg.RunAction("npm", "list", "--depth=0")},
		{Name: "npm-outdated", Usage: "run npm outdated", Action: cfg.RunAction("npm", "outdated")},
		{
			Name:  "npm-uninstall",
			Usage: "run npm uninstall for every installed package",
			Action: jsbld.Action(func(a *goyek.A) error {
				return uninstallAll(a, cfg)
			}),
		},
	}, nil
}

// uninstallAll runs npm uninstall once per installed package. Every package
// is attempted; the failures are reported together.
func uninstallAll(a *goyek.A, cfg *jsbld.Config) error {
	pkgs, err := InstalledPackages(cfg.Fs, cfg.FromRoot(jsbld.NodeModulesDirName))
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		a.Log("no installed packages")
		return nil
	}

	var errs []error
	for _, pkg := range pkgs {
		if err := cfg.Run(a.Context(), a.Output(), "npm", "uninstall", pkg); err != nil {
			errs = append(errs, fmt.Errorf("uninstall %s: %w", pkg, err))
		}
	}
	return errors.Join(errs...)
}

// InstalledPackages lists the packages in a node_modules directory in name
// order. Scoped packages are returned as @scope/name; hidden entries such as
// .bin are skipped. A missing directory yields no packages.
func InstalledPackages(fsys afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var pkgs []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.HasPrefix(name, "@") {
			pkgs = append(pkgs, name)
			continue
		}
		scoped, err := afero.ReadDir(fsys, filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", name, err)
		}
		for _, s := range scoped {
			if s.IsDir() && !strings.HasPrefix(s.Name(), ".") {
				pkgs = append(pkgs, name+"/"+s.Name())
			}
		}
	}
	slices.Sort(pkgs)
	return pkgs, nil
}
